package docstoreimpl

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/reelbites/reelbites/internal/docstore"
	"github.com/reelbites/reelbites/pkg/logger"
)

var sq = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// PgxStore keeps schemaless collections in a single Postgres table:
// documents(collection, id, data jsonb).
type PgxStore struct {
	pool   *pgxpool.Pool
	logger logger.Logger
}

func NewPgxStore(pool *pgxpool.Pool, logger logger.Logger) *PgxStore {
	return &PgxStore{
		pool:   pool,
		logger: logger,
	}
}

func (s *PgxStore) QueryEquals(ctx context.Context, collection, field string, value any) ([]docstore.Document, error) {
	q := s.baseSelect(collection)
	if field == docstore.FieldID {
		q = q.Where(squirrel.Eq{"id": fmt.Sprint(value)})
	} else {
		q = q.Where("data->>? = ?", field, fmt.Sprint(value))
	}
	return s.runSelect(ctx, q)
}

func (s *PgxStore) QueryIn(ctx context.Context, collection, field string, values []string) ([]docstore.Document, error) {
	if err := docstore.CheckFanOut(values); err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, nil
	}

	q := s.baseSelect(collection)
	if field == docstore.FieldID {
		q = q.Where(squirrel.Eq{"id": values})
	} else {
		q = q.Where("data->>? = ANY(?)", field, values)
	}
	return s.runSelect(ctx, q)
}

func (s *PgxStore) QueryAll(ctx context.Context, collection string) ([]docstore.Document, error) {
	return s.runSelect(ctx, s.baseSelect(collection))
}

func (s *PgxStore) Delete(ctx context.Context, collection, id string) error {
	sql, args, err := sq.Delete("documents").
		Where(squirrel.Eq{"collection": collection, "id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	if _, err := s.pool.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to delete document %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *PgxStore) baseSelect(collection string) squirrel.SelectBuilder {
	return sq.Select("id", "data").
		From("documents").
		Where(squirrel.Eq{"collection": collection})
}

func (s *PgxStore) runSelect(ctx context.Context, q squirrel.SelectBuilder) ([]docstore.Document, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var docs []docstore.Document
	for rows.Next() {
		var (
			id   string
			data []byte
		)
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}

		fields := map[string]any{}
		if len(data) > 0 {
			if err := json.Unmarshal(data, &fields); err != nil {
				return nil, fmt.Errorf("failed to decode document %s: %w", id, err)
			}
		}

		docs = append(docs, docstore.Document{ID: id, Fields: fields})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating document rows: %w", err)
	}

	return docs, nil
}

var _ docstore.Store = (*PgxStore)(nil)
