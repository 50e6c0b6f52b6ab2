package reportworker

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	kafkax "github.com/storepulse/storepulse/internal/repository/kafka"
)

type Runner struct {
	log  *zap.Logger
	cons *kafkax.Consumer
	uc   *Usecase

	mConsumed    prometheus.Counter
	mCompleted   prometheus.Counter
	mFailed      prometheus.Counter
	mStoreErrors prometheus.Counter
	mBuildDur    prometheus.Histogram
}

func NewRunner(log *zap.Logger, cons *kafkax.Consumer, uc *Usecase) *Runner {
	return &Runner{
		log:  log,
		cons: cons,
		uc:   uc,
		mConsumed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "report_worker_requests_consumed_total", Help: "ReportRequested messages consumed",
		}),
		mCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "report_worker_reports_completed_total", Help: "Reports built and stored",
		}),
		mFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "report_worker_reports_failed_total", Help: "Reports that could not be built",
		}),
		mStoreErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "report_worker_store_errors_total", Help: "Per-store row failures (row omitted, report completed)",
		}),
		mBuildDur: promauto.NewHistogram(prometheus.HistogramOpts{
			Name: "report_worker_build_duration_seconds", Help: "Full report build duration",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		}),
	}
}

func (r *Runner) Run(ctx context.Context) error {
	handler := kafkax.JSONHandler(
		func(ctx context.Context, _ []byte, msg *kafkax.ReportRequested) error {
			r.mConsumed.Inc()
			return r.handle(ctx, msg)
		},
	)

	if err := r.cons.Consume(ctx, handler); err != nil && !errors.Is(err, context.Canceled) {
		r.log.Warn("kafka consume", zap.Error(err))
		return err
	}
	return ctx.Err()
}

func (r *Runner) handle(ctx context.Context, msg *kafkax.ReportRequested) error {
	log := r.log.With(zap.String("report_id", msg.ReportID.String()))

	start := time.Now()
	processed, failed, err := r.uc.Build(ctx, msg.ReportID)
	r.mBuildDur.Observe(time.Since(start).Seconds())
	r.mStoreErrors.Add(float64(failed))

	if err != nil {
		r.mFailed.Inc()
		log.Error("report build failed", zap.Error(err))
		if ferr := r.uc.Reports.Fail(ctx, msg.ReportID); ferr != nil {
			log.Warn("mark failed", zap.Error(ferr))
		}
		return err
	}

	r.mCompleted.Inc()
	log.Info("report complete",
		zap.Int("stores", processed),
		zap.Int("failed_stores", failed),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}
