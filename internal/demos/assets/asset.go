package assets

import (
	"context"
	"errors"
	"time"
)

var (
	ErrUnknownBackend = errors.New("unknown asset backend")
	ErrRefNotFound    = errors.New("object reference not found")
	ErrAssetTooLarge  = errors.New("asset exceeds max size")
)

// Asset is the cached binary payload of one media URL.
type Asset struct {
	URL         string    `json:"url"`
	ContentType string    `json:"contentType"`
	Data        []byte    `json:"data"`
	StoredAt    time.Time `json:"storedAt"`
}

//go:generate mockgen -source=$GOFILE -destination=asset_mocks_test.go -package=assets_test

// Cache is a durable media URL -> bytes store.
// Put downloads the bytes itself; every failure is reported as false.
type Cache interface {
	Has(ctx context.Context, url string) bool
	Put(ctx context.Context, url string) bool
	Read(ctx context.Context, url string) (*Asset, bool)
	SizeEstimateBytes(ctx context.Context) int64
	DeleteAll(ctx context.Context) error
}
