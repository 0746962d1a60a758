package assets

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
)

const (
	BackendDisk   = "disk"
	BackendBadger = "badger"
)

type OpenParams struct {
	Backend string
	Dir     string
	Fetcher *Fetcher
}

// Open builds the configured asset cache. The returned close func must be
// called on shutdown.
func Open(params OpenParams) (Cache, func() error, error) {
	backend := strings.ToLower(params.Backend)
	if backend == "" {
		backend = BackendDisk
	}

	fetcher := params.Fetcher
	if fetcher == nil {
		fetcher = NewFetcher(NewFetcherParams{})
	}

	log.Debugf("asset cache: using [%s] backend at [%s]", backend, params.Dir)

	switch backend {
	case BackendDisk:
		diskCache, err := NewDiskCache(params.Dir, fetcher)
		if err != nil {
			return nil, nil, fmt.Errorf("new disk cache: %w", err)
		}
		return diskCache, func() error { return nil }, nil
	case BackendBadger:
		badgerCache, err := OpenBadgerCache(params.Dir, fetcher)
		if err != nil {
			return nil, nil, err
		}
		return badgerCache, badgerCache.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownBackend, params.Backend)
	}
}
