package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/storepulse/storepulse/internal/domain/store"
)

var _ store.Repo = (*StoreRepoImpl)(nil)

type StoreRepoImpl struct {
	db *DB
}

func NewStoreRepo(db *DB) *StoreRepoImpl { return &StoreRepoImpl{db: db} }

const (
	qStoreUpsert = `
INSERT INTO stores (id, timezone)
VALUES ($1, $2)
ON CONFLICT (id) DO UPDATE SET timezone = EXCLUDED.timezone, updated_at = now()
RETURNING id, timezone, created_at, updated_at;
`

	qStoreGetByID = `
SELECT id, timezone, created_at, updated_at
FROM stores
WHERE id = $1;
`

	qStoreList = `
SELECT id, timezone, created_at, updated_at
FROM stores
ORDER BY id;
`
)

func scanStore(row pgx.Row, s *store.Store) error {
	if err := row.Scan(&s.ID, &s.Timezone, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("scan store: %w", err)
	}
	return nil
}

func (r *StoreRepoImpl) Upsert(ctx context.Context, s *store.Store) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	eq := r.db.execQueryer(ctx)
	return scanStore(eq.QueryRow(ctx, qStoreUpsert, s.ID, s.Timezone), s)
}

func (r *StoreRepoImpl) GetByID(ctx context.Context, id string) (*store.Store, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var s store.Store
	if err := scanStore(r.db.Pool.QueryRow(ctx, qStoreGetByID, id), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StoreRepoImpl) List(ctx context.Context) ([]*store.Store, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Pool.Query(ctx, qStoreList)
	if err != nil {
		return nil, fmt.Errorf("query stores: %w", err)
	}
	defer rows.Close()

	var out []*store.Store
	for rows.Next() {
		var s store.Store
		if err := scanStore(rows, &s); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}
