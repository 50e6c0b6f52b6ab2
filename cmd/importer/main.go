package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"go.uber.org/zap"

	config "github.com/storepulse/storepulse/internal/config/importer"
	"github.com/storepulse/storepulse/internal/obs"
	pg "github.com/storepulse/storepulse/internal/repository/postgres"
	"github.com/storepulse/storepulse/internal/services/importer"
	"github.com/storepulse/storepulse/internal/uptime"
)

// One-shot: loads the three source CSVs into Postgres and exits. Run it from
// cron or by hand after new source files land.
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
	l.Info("starting importer", zap.Any("files", cfg.Files))

	db, err := pg.NewDB(ctx, cfg.DB)
	if err != nil {
		l.Fatal("db connect", zap.Error(err))
	}
	defer db.Close()

	svc := &importer.Service{
		Log:       l,
		Stores:    pg.NewStoreRepo(db),
		Hours:     pg.NewHoursRepo(db),
		Samples:   pg.NewStatusRepo(db),
		Tx:        pg.NewTransactor(db, l),
		Zones:     uptime.NewZones(),
		BatchSize: cfg.Import.BatchSize,
	}

	if err := svc.Run(ctx, cfg.Files); err != nil {
		l.Fatal("import failed", zap.Error(err))
	}
	l.Info("import complete")
}
