package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"go.uber.org/zap"

	config "github.com/storepulse/storepulse/internal/config/reportworker"
	"github.com/storepulse/storepulse/internal/obs"
	kafkaRepo "github.com/storepulse/storepulse/internal/repository/kafka"
	pg "github.com/storepulse/storepulse/internal/repository/postgres"
	"github.com/storepulse/storepulse/internal/services/reportworker"
	"github.com/storepulse/storepulse/internal/services/reportworker/repo"
	"github.com/storepulse/storepulse/internal/uptime"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatal(err)
	}

	l, err := obs.NewLogger(cfg.Log.AsLoggerConfig(cfg.App))
	if err != nil {
		log.Fatal(err)
	}
	l.Info("starting report-worker",
		zap.Any("kafka_in", cfg.Kafka),
		zap.Int("workers", cfg.Worker.Workers),
		zap.String("metrics_addr", cfg.Worker.MetricsAddr),
	)

	otelCloser, err := obs.SetupOTel(ctx, cfg.OTEL.AsOTELConfig())
	if err != nil {
		l.Fatal("otel init", zap.Error(err))
	}
	defer func() { _ = otelCloser.Shutdown(context.Background()) }()

	db, err := pg.NewDB(ctx, cfg.DB)
	if err != nil {
		l.Fatal("db connect", zap.Error(err))
	}
	defer db.Close()

	cons := kafkaRepo.NewConsumer(&kafkaRepo.ConsumerConfig{
		Brokers:       cfg.Kafka.Brokers,
		GroupID:       cfg.Kafka.GroupID,
		Topic:         cfg.Kafka.Topic,
		FromBeginning: cfg.Kafka.FromBeginning,
		Logger:        l,
	})
	defer func() { _ = cons.Close() }()

	ms := obs.BootstrapMetricsServer(cfg.Worker.MetricsAddr, func(ctx context.Context) error {
		hctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
		defer cancel()
		return db.Pool.Ping(hctx)
	}, l)

	uc := &reportworker.Usecase{
		Log:     l,
		Stores:  repo.Stores{R: pg.NewStoreRepo(db)},
		Hours:   repo.Hours{R: pg.NewHoursRepo(db)},
		Samples: repo.Samples{R: pg.NewStatusRepo(db)},
		Reports: repo.Reports{R: pg.NewReportRepo(db)},
		Builder: uptime.NewBuilder(uptime.NewZones()),
		Workers: cfg.Worker.Workers,
	}
	runner := reportworker.NewRunner(l, cons, uc)

	errCh := make(chan error, 1)
	go func() { errCh <- runner.Run(ctx) }()

	l.Info("report-worker started")

	select {
	case <-ctx.Done():
	case err = <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			l.Error("runner error", zap.Error(err))
		}
	}

	shCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_ = ms.Shutdown(shCtx)
	l.Info("bye")
}
