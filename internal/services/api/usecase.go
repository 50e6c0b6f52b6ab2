package api

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/storepulse/storepulse/internal/domain/report"
)

// Events is the slice of the kafka publisher the API needs.
type Events interface {
	PublishReportRequested(ctx context.Context, id uuid.UUID, requestedAt time.Time) error
}

type Usecase struct {
	reports report.Repo
	events  Events
	clk     func() time.Time
}

func NewUsecase(reports report.Repo, events Events, clk func() time.Time) *Usecase {
	if clk == nil {
		clk = func() time.Time { return time.Now().UTC() }
	}
	return &Usecase{reports: reports, events: events, clk: clk}
}

// Trigger freezes the reference instant, persists the report in queued state
// and hands the build off to a worker. The identifier is returned
// immediately; the caller polls for completion.
func (u *Usecase) Trigger(ctx context.Context) (uuid.UUID, error) {
	now := u.clk().UTC()
	rep := &report.Report{
		ID:          uuid.New(),
		Status:      report.StatusQueued,
		RequestedAt: now,
	}
	if err := u.reports.Create(ctx, rep); err != nil {
		return uuid.Nil, fmt.Errorf("create report: %w", err)
	}
	if err := u.events.PublishReportRequested(ctx, rep.ID, rep.RequestedAt); err != nil {
		_ = u.reports.Fail(ctx, rep.ID)
		return uuid.Nil, fmt.Errorf("publish report request: %w", err)
	}
	return rep.ID, nil
}

func (u *Usecase) Poll(ctx context.Context, id uuid.UUID) (*report.Report, error) {
	return u.reports.Get(ctx, id)
}
