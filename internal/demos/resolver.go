package demos

import (
	"context"
	"time"

	"github.com/2beens/gymdemos/internal/demos/metadata"
	"github.com/2beens/gymdemos/internal/demos/names"
	"github.com/2beens/gymdemos/internal/telemetry/metrics"
	"github.com/2beens/gymdemos/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/singleflight"
)

const (
	outcomeHit         = "hit"
	outcomeRefetched   = "refetched"
	outcomeDegraded    = "degraded"
	outcomeResolved    = "resolved"
	outcomeOfflineMiss = "offline_miss"
	outcomeNotFound    = "not_found"
)

// Result is a displayable demo for one exercise. When Cached is false the
// DisplayURL points to the remote source and RefID is empty.
type Result struct {
	Kind       metadata.MediaKind `json:"kind"`
	DisplayURL string             `json:"displayUrl"`
	SourceURL  string             `json:"sourceUrl"`
	RefID      string             `json:"refId,omitempty"`
	Cached     bool               `json:"cached"`
}

// resolution is the part of a Resolve shared between coalesced callers.
// Object references are not shared; every caller creates its own.
type resolution struct {
	kind        metadata.MediaKind
	sourceURL   string
	bytesCached bool
	outcome     string
}

type Resolver struct {
	catalog      demoCatalog
	store        metadataStore
	cache        assetCache
	refs         localRefs
	connectivity connectivityChecker
	metrics      *metrics.Manager

	// 0 means records never expire
	metadataTTL       time.Duration
	thumbnailFallback bool

	inflight  singleflight.Group
	refetches singleflight.Group
	now       func() time.Time
}

type NewResolverParams struct {
	Catalog      demoCatalog
	Store        metadataStore
	Cache        assetCache
	Refs         localRefs
	Connectivity connectivityChecker
	Metrics      *metrics.Manager

	MetadataTTL       time.Duration
	ThumbnailFallback bool
}

func NewResolver(params NewResolverParams) *Resolver {
	return &Resolver{
		catalog:           params.Catalog,
		store:             params.Store,
		cache:             params.Cache,
		refs:              params.Refs,
		connectivity:      params.Connectivity,
		metrics:           params.Metrics,
		metadataTTL:       params.MetadataTTL,
		thumbnailFallback: params.ThumbnailFallback,
		now:               time.Now,
	}
}

// Resolve returns a displayable demo for the exercise, or nil when there is none
// to show. Catalog, network and storage failures never surface as errors; the
// error is only set when ctx is already done.
func (r *Resolver) Resolve(ctx context.Context, exerciseName string) (_ *Result, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "demos.resolve")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := names.Key(exerciseName)
	span.SetAttributes(attribute.String("exercise.key", key))
	if key == "" {
		return nil, nil
	}

	start := r.now()
	// coalesced work must outlive the first caller's request
	sharedCtx := context.WithoutCancel(ctx)
	v, _, shared := r.inflight.Do(key, func() (any, error) {
		return r.resolve(sharedCtx, exerciseName, key), nil
	})
	res := v.(resolution)
	span.SetAttributes(attribute.Bool("resolve.shared", shared))

	result := r.result(ctx, res)
	if result == nil && res.bytesCached {
		// unreadable bytes are a miss
		log.Warnf("resolver: [%s] cached bytes of %s unreadable, fetching again", key, res.sourceURL)
		v, _, _ = r.refetches.Do(key, func() (any, error) {
			return r.refetch(sharedCtx, key, res, r.connectivity.Online(sharedCtx)), nil
		})
		res = v.(resolution)
		result = r.result(ctx, res)
		if result == nil && res.bytesCached {
			log.Warnf("resolver: [%s] %s still unreadable after refetch, serving remote url", key, res.sourceURL)
			res.bytesCached = false
			res.outcome = outcomeDegraded
			result = r.result(ctx, res)
		}
	}

	span.SetAttributes(attribute.String("resolve.outcome", res.outcome))
	r.observe(res.outcome, start)

	return result, nil
}

// result builds the caller's own view of a shared resolution. It is nil when
// there is nothing to show, or when cached bytes could not be referenced.
func (r *Resolver) result(ctx context.Context, res resolution) *Result {
	if res.sourceURL == "" {
		return nil
	}

	if res.bytesCached {
		ref, ok := r.refs.ReadAsLocalRef(ctx, res.sourceURL)
		if !ok {
			return nil
		}
		return &Result{
			Kind:       res.kind,
			DisplayURL: ref.DisplayURL,
			SourceURL:  res.sourceURL,
			RefID:      ref.ID,
			Cached:     true,
		}
	}

	return &Result{
		Kind:       res.kind,
		DisplayURL: res.sourceURL,
		SourceURL:  res.sourceURL,
		Cached:     false,
	}
}

func (r *Resolver) resolve(ctx context.Context, exerciseName, key string) resolution {
	record, err := r.store.Get(ctx, key)
	if err != nil {
		log.Errorf("resolver: metadata get [%s]: %s", key, err)
		record = nil
	}

	// connectivity is read at most once, and only when the answer matters
	checked, online := false, false
	isOnline := func() bool {
		if !checked {
			online = r.connectivity.Online(ctx)
			checked = true
		}
		return online
	}

	if record != nil && r.expired(record) && isOnline() {
		log.Debugf("resolver: record [%s] from %s expired, resolving again", key, record.ResolvedAt)
		if fresh := r.resolveFromCatalog(ctx, exerciseName, key); fresh.sourceURL != "" {
			return fresh
		}
		// catalog has nothing better, keep serving what we have
	}

	if record != nil {
		return r.resolveKnown(ctx, record, isOnline)
	}

	if !isOnline() {
		log.Debugf("resolver: [%s] not known and offline", key)
		return resolution{outcome: outcomeOfflineMiss}
	}

	return r.resolveFromCatalog(ctx, exerciseName, key)
}

func (r *Resolver) resolveKnown(ctx context.Context, record *metadata.Record, isOnline func() bool) resolution {
	res := resolution{
		kind:      record.MediaKind,
		sourceURL: record.SourceURL,
	}

	// only bytes that can be read back count as cached
	if _, ok := r.cache.Read(ctx, record.SourceURL); ok {
		res.bytesCached = true
		res.outcome = outcomeHit
		return res
	}

	return r.refetch(ctx, record.ExerciseKey, res, isOnline())
}

// refetch downloads the bytes of an already known source again.
func (r *Resolver) refetch(ctx context.Context, key string, res resolution, online bool) resolution {
	if !online {
		log.Debugf("resolver: [%s] bytes not cached and offline", key)
		return resolution{outcome: outcomeOfflineMiss}
	}

	if r.cache.Put(ctx, res.sourceURL) {
		res.bytesCached = true
		res.outcome = outcomeRefetched
		return res
	}

	log.Warnf("resolver: [%s] refetch of %s failed, serving remote url", key, res.sourceURL)
	res.bytesCached = false
	res.outcome = outcomeDegraded
	return res
}

func (r *Resolver) resolveFromCatalog(ctx context.Context, exerciseName, key string) resolution {
	term := names.Normalize(exerciseName)
	log.Debugf("resolver: [%s] searching catalog for [%s], alias: %t", key, term, names.HasAlias(exerciseName))

	suggestion, ok := r.catalog.SearchByTerm(ctx, term)
	if !ok {
		return resolution{outcome: outcomeNotFound}
	}

	kind := metadata.MediaKindVideo
	sourceURL, ok := r.catalog.FetchVideo(ctx, suggestion.ID)
	if !ok {
		kind = metadata.MediaKindImage
		sourceURL, ok = r.catalog.FetchImage(ctx, suggestion.ID)
	}
	if !ok && r.thumbnailFallback && suggestion.ThumbnailURL != "" {
		kind = metadata.MediaKindImage
		sourceURL, ok = suggestion.ThumbnailURL, true
	}
	if !ok {
		log.Debugf("resolver: [%s] catalog entry %d has no media", key, suggestion.ID)
		return resolution{outcome: outcomeNotFound}
	}

	// metadata is written before the bytes; a failed download leaves a record
	// that the next online lookup repairs
	if err := r.store.Put(ctx, &metadata.Record{
		ExerciseKey: key,
		MediaKind:   kind,
		SourceURL:   sourceURL,
		CatalogID:   suggestion.ID,
		ResolvedAt:  r.now(),
	}); err != nil {
		log.Errorf("resolver: metadata put [%s]: %s", key, err)
	}

	res := resolution{
		kind:      kind,
		sourceURL: sourceURL,
	}
	if r.cache.Put(ctx, sourceURL) {
		res.bytesCached = true
		res.outcome = outcomeResolved
		return res
	}

	log.Warnf("resolver: [%s] download of %s failed, serving remote url", key, sourceURL)
	res.outcome = outcomeDegraded
	return res
}

// IsCached reports whether a demo record exists for the exercise.
func (r *Resolver) IsCached(ctx context.Context, exerciseName string) bool {
	key := names.Key(exerciseName)
	if key == "" {
		return false
	}
	record, err := r.store.Get(ctx, key)
	if err != nil {
		log.Errorf("resolver: metadata get [%s]: %s", key, err)
		return false
	}
	return record != nil
}

func (r *Resolver) expired(record *metadata.Record) bool {
	if r.metadataTTL <= 0 || record.ResolvedAt.IsZero() {
		return false
	}
	return r.now().Sub(record.ResolvedAt) > r.metadataTTL
}

func (r *Resolver) observe(outcome string, start time.Time) {
	if r.metrics == nil {
		return
	}
	r.metrics.CounterResolutions.WithLabelValues(outcome).Inc()
	r.metrics.HistResolveDuration.Observe(r.now().Sub(start).Seconds())
}
