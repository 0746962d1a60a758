package metadata

import (
	"context"
	"errors"
	"time"
)

var (
	ErrUnknownBackend = errors.New("unknown metadata backend")
	ErrInvalidRecord  = errors.New("invalid demo record")
)

type MediaKind string

const (
	MediaKindVideo MediaKind = "video"
	MediaKindImage MediaKind = "image"
)

func (k MediaKind) Valid() bool {
	return k == MediaKindVideo || k == MediaKindImage
}

// Record describes the demo media resolved for one exercise.
// There is at most one record per ExerciseKey.
type Record struct {
	ExerciseKey string    `json:"exerciseKey"`
	MediaKind   MediaKind `json:"mediaKind"`
	SourceURL   string    `json:"sourceUrl"`
	CatalogID   int       `json:"catalogId"`
	ResolvedAt  time.Time `json:"resolvedAt"`
}

func (r *Record) validate() error {
	switch {
	case r == nil:
		return ErrInvalidRecord
	case r.ExerciseKey == "":
		return errors.Join(ErrInvalidRecord, errors.New("empty exercise key"))
	case r.SourceURL == "":
		return errors.Join(ErrInvalidRecord, errors.New("empty source url"))
	case !r.MediaKind.Valid():
		return errors.Join(ErrInvalidRecord, errors.New("unknown media kind: "+string(r.MediaKind)))
	}
	return nil
}

// Store is a durable exercise key -> Record table.
// Get returns nil, nil when there is no record for the key.
// Put is an upsert keyed by ExerciseKey.
type Store interface {
	Get(ctx context.Context, exerciseKey string) (*Record, error)
	Put(ctx context.Context, record *Record) error
	GetAll(ctx context.Context) ([]Record, error)
	Clear(ctx context.Context) error
}
