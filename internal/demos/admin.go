package demos

import (
	"context"
	"fmt"

	"github.com/2beens/gymdemos/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

const bytesInMB = 1024 * 1024

type Stats struct {
	EntryCount      int    `json:"entryCount"`
	ApproxSizeBytes int64  `json:"approxSizeBytes"`
	SizeHuman       string `json:"sizeHuman"`
}

// Admin reports on and wipes both demo caches.
type Admin struct {
	store metadataStore
	cache assetCache
	refs  localRefs
}

func NewAdmin(store metadataStore, cache assetCache, refs localRefs) *Admin {
	return &Admin{
		store: store,
		cache: cache,
		refs:  refs,
	}
}

func (a *Admin) Stats(ctx context.Context) Stats {
	ctx, span := tracing.GlobalTracer.Start(ctx, "demos.admin.stats")
	defer span.End()

	entries := 0
	records, err := a.store.GetAll(ctx)
	if err != nil {
		log.Errorf("admin: list demo records: %s", err)
	} else {
		entries = len(records)
	}

	size := a.cache.SizeEstimateBytes(ctx)

	return Stats{
		EntryCount:      entries,
		ApproxSizeBytes: size,
		SizeHuman:       HumanSize(size),
	}
}

// ClearAll releases every object reference, deletes all cached bytes and then
// all demo records. Every step runs even if an earlier one fails.
func (a *Admin) ClearAll(ctx context.Context) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "demos.admin.clear_all")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	released := a.refs.ReleaseAll()

	if deleteErr := a.cache.DeleteAll(ctx); deleteErr != nil {
		err = multierr.Append(err, fmt.Errorf("delete assets: %w", deleteErr))
	}
	if clearErr := a.store.Clear(ctx); clearErr != nil {
		err = multierr.Append(err, fmt.Errorf("clear metadata: %w", clearErr))
	}

	if err != nil {
		log.Errorf("admin: clear all: %s", err)
		return err
	}

	log.Infof("admin: demo caches cleared, %d references released", released)
	return nil
}

func HumanSize(bytes int64) string {
	return fmt.Sprintf("%.1f MB", float64(bytes)/bytesInMB)
}
