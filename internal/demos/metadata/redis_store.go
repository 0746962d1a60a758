package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/2beens/gymdemos/internal/telemetry/tracing"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const DefaultRedisHashKey = "gymdemos::records"

var _ Store = (*RedisStore)(nil)

// RedisStore keeps all demo records in a single redis hash, field = exercise key.
type RedisStore struct {
	rdb     *redis.Client
	hashKey string
}

func NewRedisStore(rdb *redis.Client, hashKey string) *RedisStore {
	if hashKey == "" {
		hashKey = DefaultRedisHashKey
	}
	return &RedisStore{
		rdb:     rdb,
		hashKey: hashKey,
	}
}

func (s *RedisStore) Get(ctx context.Context, exerciseKey string) (_ *Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "metadata.redis.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	val, err := s.rdb.HGet(ctx, s.hashKey, exerciseKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis hget [%s]: %w", exerciseKey, err)
	}

	record := &Record{}
	if err := json.Unmarshal([]byte(val), record); err != nil {
		return nil, fmt.Errorf("unmarshal demo record [%s]: %w", exerciseKey, err)
	}

	return record, nil
}

func (s *RedisStore) Put(ctx context.Context, record *Record) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "metadata.redis.put")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := record.validate(); err != nil {
		return err
	}

	recordBytes, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal demo record: %w", err)
	}

	if err := s.rdb.HSet(ctx, s.hashKey, record.ExerciseKey, string(recordBytes)).Err(); err != nil {
		return fmt.Errorf("redis hset [%s]: %w", record.ExerciseKey, err)
	}

	return nil
}

func (s *RedisStore) GetAll(ctx context.Context) (_ []Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "metadata.redis.get_all")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	all, err := s.rdb.HGetAll(ctx, s.hashKey).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall: %w", err)
	}

	records := make([]Record, 0, len(all))
	for key, val := range all {
		var record Record
		if err := json.Unmarshal([]byte(val), &record); err != nil {
			// one broken entry should not hide the others from stats
			log.Errorf("redis store: skipping broken demo record [%s]: %s", key, err)
			continue
		}
		records = append(records, record)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].ExerciseKey < records[j].ExerciseKey
	})

	return records, nil
}

func (s *RedisStore) Clear(ctx context.Context) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "metadata.redis.clear")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := s.rdb.Del(ctx, s.hashKey).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
