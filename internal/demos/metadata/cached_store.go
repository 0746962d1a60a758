package metadata

import (
	"context"
	"encoding/json"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const megabyte = 1024 * 1024

var _ Store = (*CachedStore)(nil)

// CachedStore memoizes records of a durable Store in process memory.
// Writes and clears always reach the durable store first; misses are not memoized.
type CachedStore struct {
	backend Store
	memo    *freecache.Cache
	// seconds, 0 means entries only leave the memo when evicted or cleared
	expireSeconds int
}

func NewCachedStore(backend Store, sizeMB, expireSeconds int) *CachedStore {
	if sizeMB <= 0 {
		sizeMB = 1
	}
	return &CachedStore{
		backend:       backend,
		memo:          freecache.NewCache(sizeMB * megabyte),
		expireSeconds: expireSeconds,
	}
}

func (s *CachedStore) Get(ctx context.Context, exerciseKey string) (*Record, error) {
	if recordBytes, err := s.memo.Get([]byte(exerciseKey)); err == nil {
		record := &Record{}
		if err := json.Unmarshal(recordBytes, record); err == nil {
			log.Tracef("cached store: memo hit for [%s]", exerciseKey)
			return record, nil
		} else {
			log.Errorf("cached store: failed to unmarshal memo entry for [%s]: %s", exerciseKey, err)
		}
	}

	record, err := s.backend.Get(ctx, exerciseKey)
	if err != nil || record == nil {
		return record, err
	}

	s.remember(record)
	return record, nil
}

func (s *CachedStore) Put(ctx context.Context, record *Record) error {
	if err := s.backend.Put(ctx, record); err != nil {
		// the durable write failed, so the memo must not claim otherwise
		if record != nil {
			s.memo.Del([]byte(record.ExerciseKey))
		}
		return err
	}
	s.remember(record)
	return nil
}

func (s *CachedStore) GetAll(ctx context.Context) ([]Record, error) {
	return s.backend.GetAll(ctx)
}

func (s *CachedStore) Clear(ctx context.Context) error {
	err := s.backend.Clear(ctx)
	s.memo.Clear()
	return err
}

func (s *CachedStore) remember(record *Record) {
	recordBytes, err := json.Marshal(record)
	if err != nil {
		log.Errorf("cached store: marshal record [%s]: %s", record.ExerciseKey, err)
		return
	}
	if err := s.memo.Set([]byte(record.ExerciseKey), recordBytes, s.expireSeconds); err != nil {
		log.Warnf("cached store: memo set [%s]: %s", record.ExerciseKey, err)
	}
}
