package reportworker

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/storepulse/storepulse/internal/domain/report"
	"github.com/storepulse/storepulse/internal/domain/store"
	"github.com/storepulse/storepulse/internal/obs"
	"github.com/storepulse/storepulse/internal/services/reportworker/repo"
	"github.com/storepulse/storepulse/internal/uptime"
)

type Usecase struct {
	Log     *zap.Logger
	Stores  repo.Stores
	Hours   repo.Hours
	Samples repo.Samples
	Reports repo.Reports
	Builder *uptime.Builder
	Workers int
}

// Build assembles one report: every store's row is computed independently
// across a bounded pool, rows are collected, sorted by store id and rendered
// to CSV. A single store failing is logged and its row omitted; the report
// still completes. Returns how many stores were processed and how many
// failed.
func (u *Usecase) Build(ctx context.Context, reportID uuid.UUID) (processed, failed int, err error) {
	tr := otel.Tracer("reportworker.uc")
	ctx, span := tr.Start(ctx, "report.build",
		trace.WithAttributes(attribute.String("report.id", reportID.String())),
	)
	defer span.End()

	rep, err := u.Reports.Get(ctx, reportID)
	if err != nil {
		span.RecordError(err)
		return 0, 0, fmt.Errorf("get report: %w", err)
	}
	if rep.Status == report.StatusComplete {
		// Redelivered message; the stored CSV is already final.
		return 0, 0, nil
	}
	if err := u.Reports.MarkRunning(ctx, reportID); err != nil {
		span.RecordError(err)
		return 0, 0, fmt.Errorf("mark running: %w", err)
	}

	stores, err := u.Stores.List(ctx)
	if err != nil {
		span.RecordError(err)
		return 0, 0, fmt.Errorf("list stores: %w", err)
	}
	span.SetAttributes(attribute.Int("report.stores", len(stores)))

	workers := u.Workers
	if workers <= 0 {
		workers = 8
	}

	var (
		mu   sync.Mutex
		rows = make([]report.Row, 0, len(stores))
		errs int
	)

	jobs := make(chan *store.Store)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for st := range jobs {
				row, err := u.buildStore(ctx, st, rep)
				mu.Lock()
				if err != nil {
					errs++
					obs.WithTrace(ctx, u.Log).Warn("store row failed",
						zap.String("store_id", st.ID), zap.Error(err))
				} else {
					rows = append(rows, row)
				}
				mu.Unlock()
			}
		}()
	}
	for _, st := range stores {
		jobs <- st
	}
	close(jobs)
	wg.Wait()

	sort.Slice(rows, func(i, j int) bool { return rows[i].StoreID < rows[j].StoreID })

	csvBytes, err := renderCSV(rows)
	if err != nil {
		span.RecordError(err)
		return len(stores), errs, fmt.Errorf("render csv: %w", err)
	}
	if err := u.Reports.Complete(ctx, reportID, csvBytes); err != nil {
		span.RecordError(err)
		return len(stores), errs, fmt.Errorf("complete report: %w", err)
	}

	span.SetAttributes(
		attribute.Int("report.rows", len(rows)),
		attribute.Int("report.failed_stores", errs),
	)
	return len(stores), errs, nil
}

func (u *Usecase) buildStore(ctx context.Context, st *store.Store, rep *report.Report) (report.Row, error) {
	tr := otel.Tracer("reportworker.uc")
	ctx, span := tr.Start(ctx, "report.store",
		trace.WithAttributes(attribute.String("store.id", st.ID)),
	)
	defer span.End()

	rules, err := u.Hours.ListByStore(ctx, st.ID)
	if err != nil {
		span.RecordError(err)
		return report.Row{}, fmt.Errorf("list business hours: %w", err)
	}

	now := rep.RequestedAt.UTC()
	samples, err := u.Samples.ListInWindow(ctx, st.ID, now.AddDate(0, 0, -7), now)
	if err != nil {
		span.RecordError(err)
		return report.Row{}, fmt.Errorf("list samples: %w", err)
	}

	row, err := u.Builder.Row(uptime.StoreInput{Store: st, Rules: rules, Samples: samples}, now)
	if err != nil {
		span.RecordError(err)
		return report.Row{}, fmt.Errorf("aggregate store %s: %w", st.ID, err)
	}
	return row, nil
}
