package assets

import (
	"container/list"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/2beens/gymdemos/internal/telemetry/metrics"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const DefaultMaxRefs = 256

// Ref is a transient, process-local handle to cached media bytes.
// It is only valid until released and never survives a restart.
type Ref struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	DisplayURL  string    `json:"displayUrl"`
	ContentType string    `json:"contentType"`
	Size        int       `json:"size"`
	CreatedAt   time.Time `json:"createdAt"`
}

// RefRegistry tracks live object references. Once more than maxRefs are
// alive, the oldest ones are released.
type RefRegistry struct {
	mutex         sync.Mutex
	refs          map[string]*list.Element
	order         *list.List
	maxRefs       int
	publicBaseURL string
	metrics       *metrics.Manager
}

func NewRefRegistry(publicBaseURL string, maxRefs int, metricsManager *metrics.Manager) *RefRegistry {
	if maxRefs <= 0 {
		maxRefs = DefaultMaxRefs
	}
	return &RefRegistry{
		refs:          map[string]*list.Element{},
		order:         list.New(),
		maxRefs:       maxRefs,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
		metrics:       metricsManager,
	}
}

func (r *RefRegistry) Create(url, contentType string, size int) *Ref {
	id := uuid.New().String()
	ref := &Ref{
		ID:          id,
		URL:         url,
		DisplayURL:  fmt.Sprintf("%s/media/%s", r.publicBaseURL, id),
		ContentType: contentType,
		Size:        size,
		CreatedAt:   time.Now(),
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.refs[id] = r.order.PushBack(ref)
	for r.order.Len() > r.maxRefs {
		oldest := r.order.Front()
		oldestRef := oldest.Value.(*Ref)
		r.order.Remove(oldest)
		delete(r.refs, oldestRef.ID)
		log.Debugf("refs: max refs reached, released [%s]", oldestRef.ID)
	}
	r.updateGauge()

	return ref
}

func (r *RefRegistry) Get(id string) (*Ref, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	elem, ok := r.refs[id]
	if !ok {
		return nil, ErrRefNotFound
	}
	ref := *elem.Value.(*Ref)
	return &ref, nil
}

func (r *RefRegistry) Release(id string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	elem, ok := r.refs[id]
	if !ok {
		return ErrRefNotFound
	}
	r.order.Remove(elem)
	delete(r.refs, id)
	r.updateGauge()

	return nil
}

// ReleaseAll drops every live reference and returns how many there were.
func (r *RefRegistry) ReleaseAll() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	released := len(r.refs)
	r.refs = map[string]*list.Element{}
	r.order.Init()
	r.updateGauge()

	return released
}

func (r *RefRegistry) Len() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return len(r.refs)
}

func (r *RefRegistry) updateGauge() {
	if r.metrics != nil {
		r.metrics.GaugeLiveRefs.Set(float64(len(r.refs)))
	}
}

// LocalRefs hands out object references to bytes held by an asset cache.
type LocalRefs struct {
	cache    Cache
	registry *RefRegistry
}

func NewLocalRefs(cache Cache, registry *RefRegistry) *LocalRefs {
	return &LocalRefs{
		cache:    cache,
		registry: registry,
	}
}

// ReadAsLocalRef returns a fresh reference when the bytes for url are cached.
func (l *LocalRefs) ReadAsLocalRef(ctx context.Context, url string) (*Ref, bool) {
	asset, ok := l.cache.Read(ctx, url)
	if !ok {
		return nil, false
	}
	return l.registry.Create(url, asset.ContentType, len(asset.Data)), true
}

// Open returns the cached bytes behind a live reference.
func (l *LocalRefs) Open(ctx context.Context, refID string) (*Asset, error) {
	ref, err := l.registry.Get(refID)
	if err != nil {
		return nil, err
	}
	asset, ok := l.cache.Read(ctx, ref.URL)
	if !ok {
		// the bytes are gone, so is the reference
		_ = l.registry.Release(refID)
		return nil, fmt.Errorf("%w: bytes for [%s] no longer cached", ErrRefNotFound, ref.URL)
	}
	return asset, nil
}

func (l *LocalRefs) Release(refID string) error {
	return l.registry.Release(refID)
}

func (l *LocalRefs) ReleaseAll() int {
	return l.registry.ReleaseAll()
}
