package metadata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/gymdemos/internal/telemetry/tracing"

	_ "modernc.org/sqlite" // pure Go driver, no CGO
)

var _ Store = (*SQLiteStore)(nil)

// SQLiteStore keeps demo records in a local SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		return nil, errors.New("sqlite path cannot be empty")
	}

	// busy_timeout avoids "database locked" errors with concurrent writers
	dsn := fmt.Sprintf(
		"file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)",
		dbPath,
	)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS demo (
		exercise_key TEXT PRIMARY KEY,
		media_kind TEXT NOT NULL CHECK(media_kind IN ('video', 'image')),
		source_url TEXT NOT NULL,
		catalog_id INTEGER NOT NULL DEFAULT 0,
		resolved_at TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Get(ctx context.Context, exerciseKey string) (_ *Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "metadata.sqlite.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	row := s.db.QueryRowContext(
		ctx,
		`SELECT exercise_key, media_kind, source_url, catalog_id, resolved_at FROM demo WHERE exercise_key = ?`,
		exerciseKey,
	)

	record, err := scanSQLiteRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("demo record [%s]: %w", exerciseKey, err)
	}

	return record, nil
}

func (s *SQLiteStore) Put(ctx context.Context, record *Record) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "metadata.sqlite.put")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := record.validate(); err != nil {
		return err
	}

	_, err = s.db.ExecContext(
		ctx,
		`
		INSERT INTO demo (exercise_key, media_kind, source_url, catalog_id, resolved_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(exercise_key) DO UPDATE SET
			media_kind = excluded.media_kind,
			source_url = excluded.source_url,
			catalog_id = excluded.catalog_id,
			resolved_at = excluded.resolved_at
		`,
		record.ExerciseKey,
		string(record.MediaKind),
		record.SourceURL,
		record.CatalogID,
		record.ResolvedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upsert demo record [%s]: %w", record.ExerciseKey, err)
	}

	return nil
}

func (s *SQLiteStore) GetAll(ctx context.Context) (_ []Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "metadata.sqlite.get_all")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT exercise_key, media_kind, source_url, catalog_id, resolved_at FROM demo ORDER BY exercise_key`,
	)
	if err != nil {
		return nil, fmt.Errorf("demo records [query]: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []Record
	for rows.Next() {
		record, err := scanSQLiteRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("demo records [rows scan]: %w", err)
		}
		records = append(records, *record)
	}

	return records, rows.Err()
}

func (s *SQLiteStore) Clear(ctx context.Context) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "metadata.sqlite.clear")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM demo`); err != nil {
		return fmt.Errorf("delete demo records: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteRecord(row rowScanner) (*Record, error) {
	var record Record
	var mediaKind string
	var resolvedAt string
	if err := row.Scan(
		&record.ExerciseKey,
		&mediaKind,
		&record.SourceURL,
		&record.CatalogID,
		&resolvedAt,
	); err != nil {
		return nil, err
	}

	record.MediaKind = MediaKind(mediaKind)
	t, err := time.Parse(time.RFC3339Nano, resolvedAt)
	if err != nil {
		return nil, fmt.Errorf("parse resolved at [%s]: %w", resolvedAt, err)
	}
	record.ResolvedAt = t

	return &record, nil
}
