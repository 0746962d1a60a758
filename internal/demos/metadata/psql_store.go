package metadata

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/gymdemos/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ Store = (*PsqlStore)(nil)

type PsqlStore struct {
	db *pgxpool.Pool
}

func NewPsqlStore(db *pgxpool.Pool) *PsqlStore {
	return &PsqlStore{
		db: db,
	}
}

// Migrate creates the exercise_demo table if it does not exist yet.
func (s *PsqlStore) Migrate(ctx context.Context) error {
	_, err := s.db.Exec(
		ctx,
		`
			CREATE TABLE IF NOT EXISTS exercise_demo
			(
			    exercise_key VARCHAR PRIMARY KEY,
			    media_kind   VARCHAR     NOT NULL,
			    source_url   VARCHAR     NOT NULL,
			    catalog_id   INTEGER     NOT NULL DEFAULT 0,
			    resolved_at  TIMESTAMPTZ NOT NULL
			);
		`,
	)
	if err != nil {
		return fmt.Errorf("create exercise_demo table: %w", err)
	}
	return nil
}

func (s *PsqlStore) Get(ctx context.Context, exerciseKey string) (_ *Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "metadata.psql.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var record Record
	var mediaKind string
	err = s.db.QueryRow(
		ctx,
		`
			SELECT
			    exercise_key, media_kind, source_url, catalog_id, resolved_at
			FROM exercise_demo
			WHERE exercise_key = $1
		`,
		exerciseKey,
	).Scan(
		&record.ExerciseKey,
		&mediaKind,
		&record.SourceURL,
		&record.CatalogID,
		&record.ResolvedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("demo record [query row]: %w", err)
	}

	record.MediaKind = MediaKind(mediaKind)
	return &record, nil
}

func (s *PsqlStore) Put(ctx context.Context, record *Record) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "metadata.psql.put")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := record.validate(); err != nil {
		return err
	}

	_, err = s.db.Exec(
		ctx,
		`
			INSERT INTO exercise_demo
			    (exercise_key, media_kind, source_url, catalog_id, resolved_at)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (exercise_key) DO UPDATE SET
			    media_kind = EXCLUDED.media_kind,
			    source_url = EXCLUDED.source_url,
			    catalog_id = EXCLUDED.catalog_id,
			    resolved_at = EXCLUDED.resolved_at
		`,
		record.ExerciseKey,
		string(record.MediaKind),
		record.SourceURL,
		record.CatalogID,
		record.ResolvedAt,
	)
	if err != nil {
		return fmt.Errorf("demo record [upsert]: %w", err)
	}

	return nil
}

func (s *PsqlStore) GetAll(ctx context.Context) (_ []Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "metadata.psql.get_all")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := s.db.Query(
		ctx,
		`
			SELECT
			    exercise_key, media_kind, source_url, catalog_id, resolved_at
			FROM exercise_demo
			ORDER BY exercise_key
		`,
	)
	if err != nil {
		return nil, fmt.Errorf("demo records [query]: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var record Record
		var mediaKind string
		if err := rows.Scan(
			&record.ExerciseKey,
			&mediaKind,
			&record.SourceURL,
			&record.CatalogID,
			&record.ResolvedAt,
		); err != nil {
			return nil, fmt.Errorf("demo records [rows scan]: %w", err)
		}
		record.MediaKind = MediaKind(mediaKind)
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("demo records [rows error]: %w", err)
	}

	return records, nil
}

func (s *PsqlStore) Clear(ctx context.Context) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "metadata.psql.clear")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if _, err := s.db.Exec(ctx, `DELETE FROM exercise_demo`); err != nil {
		return fmt.Errorf("delete demo records: %w", err)
	}
	return nil
}
