package demos

import (
	"context"

	"github.com/2beens/gymdemos/internal/demos/assets"
	"github.com/2beens/gymdemos/internal/demos/catalog"
	"github.com/2beens/gymdemos/internal/demos/metadata"
)

//go:generate mockgen -source=$GOFILE -destination=deps_mocks_test.go -package=demos_test

type demoCatalog interface {
	SearchByTerm(ctx context.Context, term string) (catalog.Suggestion, bool)
	FetchVideo(ctx context.Context, catalogID int) (string, bool)
	FetchImage(ctx context.Context, catalogID int) (string, bool)
}

type metadataStore interface {
	Get(ctx context.Context, exerciseKey string) (*metadata.Record, error)
	Put(ctx context.Context, record *metadata.Record) error
	GetAll(ctx context.Context) ([]metadata.Record, error)
	Clear(ctx context.Context) error
}

type assetCache interface {
	Put(ctx context.Context, url string) bool
	Read(ctx context.Context, url string) (*assets.Asset, bool)
	SizeEstimateBytes(ctx context.Context) int64
	DeleteAll(ctx context.Context) error
}

type localRefs interface {
	ReadAsLocalRef(ctx context.Context, url string) (*assets.Ref, bool)
	Open(ctx context.Context, refID string) (*assets.Asset, error)
	Release(refID string) error
	ReleaseAll() int
}

type connectivityChecker interface {
	Online(ctx context.Context) bool
}
