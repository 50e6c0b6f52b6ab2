package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/storepulse/storepulse/internal/domain/status"
)

var _ status.Repo = (*StatusRepoImpl)(nil)

type StatusRepoImpl struct {
	db *DB
}

func NewStatusRepo(db *DB) *StatusRepoImpl { return &StatusRepoImpl{db: db} }

const qSamplesInWindow = `
SELECT store_id, observed_at, local_at, state
FROM status_samples
WHERE store_id = $1 AND observed_at >= $2 AND observed_at < $3
ORDER BY observed_at, id;
`

// BulkInsert streams samples through COPY. The serial id column preserves
// arrival order, which ListInWindow uses to break ties between duplicate
// instants.
func (r *StatusRepoImpl) BulkInsert(ctx context.Context, samples []status.Sample) (int64, error) {
	if len(samples) == 0 {
		return 0, nil
	}

	n, err := r.db.Pool.CopyFrom(ctx,
		pgx.Identifier{"status_samples"},
		[]string{"store_id", "observed_at", "local_at", "state"},
		pgx.CopyFromSlice(len(samples), func(i int) ([]any, error) {
			s := samples[i]
			return []any{s.StoreID, s.ObservedAt, s.LocalAt, s.State.String()}, nil
		}),
	)
	if err != nil {
		return n, fmt.Errorf("copy samples: %w", err)
	}
	return n, nil
}

func (r *StatusRepoImpl) ListInWindow(ctx context.Context, storeID string, from, to time.Time) ([]status.Sample, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Pool.Query(ctx, qSamplesInWindow, storeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("query samples: %w", err)
	}
	defer rows.Close()

	var out []status.Sample
	for rows.Next() {
		var (
			s     status.Sample
			state string
		)
		if err := rows.Scan(&s.StoreID, &s.ObservedAt, &s.LocalAt, &state); err != nil {
			return nil, fmt.Errorf("scan sample: %w", err)
		}
		if s.State, err = status.ParseState(state); err != nil {
			return nil, fmt.Errorf("stored state: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}
