package metadata

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

type OpenParams struct {
	Backend string

	SQLitePath   string
	PgPool       *pgxpool.Pool
	RedisClient  *redis.Client
	RedisHashKey string

	// MemoSizeMB > 0 puts an in-process memo in front of the durable backend
	MemoSizeMB        int
	MemoExpireSeconds int
}

// Open builds the configured durable store. The returned close func releases
// resources owned by the store itself (not the pg pool or redis client, which
// belong to the caller).
func Open(ctx context.Context, params OpenParams) (Store, func() error, error) {
	var store Store
	closeFunc := func() error { return nil }

	backend := strings.ToLower(params.Backend)
	if backend == "" {
		backend = BackendSQLite
	}

	switch backend {
	case BackendSQLite:
		sqliteStore, err := NewSQLiteStore(params.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("new sqlite store: %w", err)
		}
		store = sqliteStore
		closeFunc = sqliteStore.Close
	case BackendPostgres, "psql":
		if params.PgPool == nil {
			return nil, nil, errors.New("postgres backend: pg pool is nil")
		}
		psqlStore := NewPsqlStore(params.PgPool)
		if err := psqlStore.Migrate(ctx); err != nil {
			return nil, nil, err
		}
		store = psqlStore
	case BackendRedis:
		if params.RedisClient == nil {
			return nil, nil, errors.New("redis backend: redis client is nil")
		}
		store = NewRedisStore(params.RedisClient, params.RedisHashKey)
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownBackend, params.Backend)
	}

	log.Debugf("metadata store: using [%s] backend", backend)

	if params.MemoSizeMB > 0 {
		log.Debugf("metadata store: memo enabled, %d MB", params.MemoSizeMB)
		store = NewCachedStore(store, params.MemoSizeMB, params.MemoExpireSeconds)
	}

	return store, closeFunc, nil
}
