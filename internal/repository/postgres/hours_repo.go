package postgres

import (
	"context"
	"fmt"

	"github.com/storepulse/storepulse/internal/domain/hours"
)

var _ hours.Repo = (*HoursRepoImpl)(nil)

type HoursRepoImpl struct {
	db *DB
}

func NewHoursRepo(db *DB) *HoursRepoImpl { return &HoursRepoImpl{db: db} }

const (
	qHoursDeleteByStore = `DELETE FROM business_hours WHERE store_id = $1;`

	qHoursInsert = `
INSERT INTO business_hours (store_id, day_of_week, open_local, close_local)
VALUES ($1, $2, $3, $4);
`

	qHoursListByStore = `
SELECT store_id, day_of_week, open_local, close_local
FROM business_hours
WHERE store_id = $1
ORDER BY day_of_week, open_local;
`
)

// ReplaceForStore must run inside a transaction (see Transactor); the delete
// and inserts share the tx bound to ctx when one is present.
func (r *HoursRepoImpl) ReplaceForStore(ctx context.Context, storeID string, rules []hours.Rule) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	eq := r.db.execQueryer(ctx)
	if _, err := eq.Exec(ctx, qHoursDeleteByStore, storeID); err != nil {
		return fmt.Errorf("delete business hours: %w", err)
	}
	for _, rule := range rules {
		if _, err := eq.Exec(ctx, qHoursInsert,
			storeID, int(rule.Day), rule.Open.String(), rule.Close.String(),
		); err != nil {
			return fmt.Errorf("insert business hours: %w", err)
		}
	}
	return nil
}

func (r *HoursRepoImpl) ListByStore(ctx context.Context, storeID string) ([]hours.Rule, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Pool.Query(ctx, qHoursListByStore, storeID)
	if err != nil {
		return nil, fmt.Errorf("query business hours: %w", err)
	}
	defer rows.Close()

	var out []hours.Rule
	for rows.Next() {
		var (
			rule       hours.Rule
			day        int
			open, clos string
		)
		if err := rows.Scan(&rule.StoreID, &day, &open, &clos); err != nil {
			return nil, fmt.Errorf("scan business hours: %w", err)
		}
		rule.Day = hours.Weekday(day)
		if rule.Open, err = hours.ParseLocalTime(open); err != nil {
			return nil, fmt.Errorf("stored open time: %w", err)
		}
		if rule.Close, err = hours.ParseLocalTime(clos); err != nil {
			return nil, fmt.Errorf("stored close time: %w", err)
		}
		out = append(out, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}
