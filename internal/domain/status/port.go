package status

import (
	"context"
	"time"
)

type Repo interface {
	BulkInsert(ctx context.Context, samples []Sample) (int64, error)
	// ListInWindow returns samples with ObservedAt in [from, to), ordered by
	// instant ascending. Duplicate instants keep arrival order, so callers
	// receive a total order.
	ListInWindow(ctx context.Context, storeID string, from, to time.Time) ([]Sample, error)
}
