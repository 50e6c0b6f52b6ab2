package repo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/storepulse/storepulse/internal/domain/hours"
	"github.com/storepulse/storepulse/internal/domain/report"
	"github.com/storepulse/storepulse/internal/domain/status"
	"github.com/storepulse/storepulse/internal/domain/store"
)

// Thin adapters narrowing the domain ports to what the worker touches.

type Stores struct{ R store.Repo }
type Hours struct{ R hours.Repo }
type Samples struct{ R status.Repo }
type Reports struct{ R report.Repo }

func (a Stores) List(ctx context.Context) ([]*store.Store, error) {
	return a.R.List(ctx)
}

func (a Hours) ListByStore(ctx context.Context, storeID string) ([]hours.Rule, error) {
	return a.R.ListByStore(ctx, storeID)
}

func (a Samples) ListInWindow(ctx context.Context, storeID string, from, to time.Time) ([]status.Sample, error) {
	return a.R.ListInWindow(ctx, storeID, from, to)
}

func (a Reports) Get(ctx context.Context, id uuid.UUID) (*report.Report, error) {
	return a.R.Get(ctx, id)
}

func (a Reports) MarkRunning(ctx context.Context, id uuid.UUID) error {
	return a.R.MarkRunning(ctx, id)
}

func (a Reports) Complete(ctx context.Context, id uuid.UUID, csv []byte) error {
	return a.R.Complete(ctx, id, csv)
}

func (a Reports) Fail(ctx context.Context, id uuid.UUID) error {
	return a.R.Fail(ctx, id)
}
