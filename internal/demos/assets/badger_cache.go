package assets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	log "github.com/sirupsen/logrus"
)

const badgerKeyPrefix = "asset:"

var _ Cache = (*BadgerCache)(nil)

// BadgerCache keeps assets in an embedded badger KV store, key = "asset:<url>".
type BadgerCache struct {
	db      *badger.DB
	fetcher *Fetcher
}

// OpenBadgerCache opens the store at path; an empty path keeps everything in memory.
func OpenBadgerCache(path string, fetcher *Fetcher) (*BadgerCache, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if path == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}

	return &BadgerCache{
		db:      db,
		fetcher: fetcher,
	}, nil
}

func (c *BadgerCache) Close() error {
	return c.db.Close()
}

func (c *BadgerCache) Has(_ context.Context, url string) bool {
	err := c.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(badgerKey(url))
		return err
	})
	if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		log.Errorf("badger cache: has [%s]: %s", url, err)
	}
	return err == nil
}

func (c *BadgerCache) Put(ctx context.Context, url string) bool {
	asset, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		log.Warnf("badger cache: fetch [%s]: %s", url, err)
		return false
	}

	buf, err := json.Marshal(asset)
	if err != nil {
		log.Errorf("badger cache: marshal [%s]: %s", url, err)
		return false
	}

	if err := c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(badgerKey(url), buf)
	}); err != nil {
		log.Errorf("badger cache: store [%s]: %s", url, err)
		return false
	}

	log.Debugf("badger cache: stored [%s], %d bytes", url, len(asset.Data))
	return true
}

func (c *BadgerCache) Read(_ context.Context, url string) (*Asset, bool) {
	var asset Asset
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerKey(url))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &asset)
		})
	})
	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) {
			log.Errorf("badger cache: read [%s]: %s", url, err)
		}
		return nil, false
	}
	return &asset, true
}

// SizeEstimateBytes sums the stored value sizes; the on-disk footprint
// reported by badger lags behind until compaction.
func (c *BadgerCache) SizeEstimateBytes(_ context.Context) int64 {
	var total int64
	err := c.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(badgerKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			total += int64(len(item.Key())) + item.ValueSize()
		}
		return nil
	})
	if err != nil {
		log.Errorf("badger cache: size estimate: %s", err)
	}
	return total
}

func (c *BadgerCache) DeleteAll(_ context.Context) error {
	if err := c.db.DropPrefix([]byte(badgerKeyPrefix)); err != nil {
		return fmt.Errorf("badger drop prefix: %w", err)
	}
	return nil
}

func badgerKey(url string) []byte {
	return []byte(badgerKeyPrefix + url)
}
