package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	config "github.com/storepulse/storepulse/internal/config/importer"
	"github.com/storepulse/storepulse/internal/domain/hours"
	"github.com/storepulse/storepulse/internal/domain/status"
	"github.com/storepulse/storepulse/internal/domain/store"
	"github.com/storepulse/storepulse/internal/repository/postgres"
	"github.com/storepulse/storepulse/internal/uptime"
)

var (
	mStoresUpserted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "importer_stores_upserted_total", Help: "Store rows upserted",
	})
	mRulesImported = promauto.NewCounter(prometheus.CounterOpts{
		Name: "importer_rules_imported_total", Help: "Business-hours rules written",
	})
	mSamplesImported = promauto.NewCounter(prometheus.CounterOpts{
		Name: "importer_samples_imported_total", Help: "Status samples written",
	})
	mRowsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "importer_rows_rejected_total", Help: "Malformed source rows dropped",
	}, []string{"file"})
)

type Service struct {
	Log       *zap.Logger
	Stores    store.Repo
	Hours     hours.Repo
	Samples   status.Repo
	Tx        postgres.Transactor
	Zones     *uptime.Zones
	BatchSize int

	// zone per store, resolved once per run
	locs map[string]*time.Location
}

// Run executes the three import stages in dependency order: stores first,
// then schedules and samples which both reference them.
func (s *Service) Run(ctx context.Context, files config.Files) error {
	s.locs = make(map[string]*time.Location)

	// Re-imports may ship partial files; stores already known keep working.
	existing, err := s.Stores.List(ctx)
	if err != nil {
		return fmt.Errorf("list stores: %w", err)
	}
	for _, st := range existing {
		if loc, err := s.Zones.Load(st.Timezone); err == nil {
			s.locs[st.ID] = loc
		}
	}

	if err := s.importTimezones(ctx, files.Timezones); err != nil {
		return fmt.Errorf("import timezones: %w", err)
	}
	if err := s.importBusinessHours(ctx, files.BusinessHours); err != nil {
		return fmt.Errorf("import business hours: %w", err)
	}
	if err := s.importStatusSamples(ctx, files.StatusSamples); err != nil {
		return fmt.Errorf("import status samples: %w", err)
	}
	return nil
}

func (s *Service) importTimezones(ctx context.Context, path string) error {
	rd, closefn, err := openCSV(path)
	if err != nil {
		return err
	}
	defer closefn()

	idx, err := readHeader(rd, "store_id", "timezone_str")
	if err != nil {
		return err
	}

	for {
		rec, err := rd.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read row: %w", err)
		}

		if !rowOK(rec, idx) {
			mRowsRejected.WithLabelValues("timezones").Inc()
			continue
		}
		id := rec[idx["store_id"]]
		tz := rec[idx["timezone_str"]]
		if tz == "" {
			// Missing, not malformed: the documented ingestion default.
			tz = store.DefaultTimezone
		}
		loc, err := s.Zones.Load(tz)
		if err != nil {
			mRowsRejected.WithLabelValues("timezones").Inc()
			s.Log.Warn("rejecting store with malformed timezone",
				zap.String("store_id", id), zap.String("timezone", tz))
			continue
		}

		if err := s.Stores.Upsert(ctx, &store.Store{ID: id, Timezone: tz}); err != nil {
			return fmt.Errorf("upsert store %s: %w", id, err)
		}
		s.locs[id] = loc
		mStoresUpserted.Inc()
	}
}

func (s *Service) importBusinessHours(ctx context.Context, path string) error {
	rd, closefn, err := openCSV(path)
	if err != nil {
		return err
	}
	defer closefn()

	idx, err := readHeader(rd, "store_id", "day", "start_time_local", "end_time_local")
	if err != nil {
		return err
	}

	perStore := make(map[string][]hours.Rule)
	for {
		rec, err := rd.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("read row: %w", err)
		}

		if !rowOK(rec, idx) {
			mRowsRejected.WithLabelValues("business_hours").Inc()
			continue
		}
		id := rec[idx["store_id"]]
		if _, known := s.locs[id]; !known {
			mRowsRejected.WithLabelValues("business_hours").Inc()
			s.Log.Warn("schedule row for unknown store", zap.String("store_id", id))
			continue
		}

		day, err := parseDay(rec[idx["day"]])
		if err != nil {
			mRowsRejected.WithLabelValues("business_hours").Inc()
			s.Log.Warn("rejecting schedule row", zap.String("store_id", id), zap.Error(err))
			continue
		}

		open, clos := rec[idx["start_time_local"]], rec[idx["end_time_local"]]
		if open == "" || clos == "" {
			perStore[id] = append(perStore[id], allDayRule(id, day))
			continue
		}

		rule := hours.Rule{StoreID: id, Day: day}
		if rule.Open, err = hours.ParseLocalTime(open); err == nil {
			rule.Close, err = hours.ParseLocalTime(clos)
		}
		if err != nil {
			mRowsRejected.WithLabelValues("business_hours").Inc()
			s.Log.Warn("rejecting schedule row", zap.String("store_id", id), zap.Error(err))
			continue
		}
		perStore[id] = append(perStore[id], rule)
	}

	for id, rules := range perStore {
		rules := rules
		err := s.Tx.WithTx(ctx, func(txCtx context.Context) error {
			return s.Hours.ReplaceForStore(txCtx, id, rules)
		})
		if err != nil {
			return fmt.Errorf("replace rules for %s: %w", id, err)
		}
		mRulesImported.Add(float64(len(rules)))
	}
	return nil
}

func (s *Service) importStatusSamples(ctx context.Context, path string) error {
	rd, closefn, err := openCSV(path)
	if err != nil {
		return err
	}
	defer closefn()

	idx, err := readHeader(rd, "store_id", "status", "timestamp_utc")
	if err != nil {
		return err
	}

	batchSize := s.BatchSize
	if batchSize <= 0 {
		batchSize = 1000
	}
	batch := make([]status.Sample, 0, batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := s.Samples.BulkInsert(ctx, batch)
		if err != nil {
			return fmt.Errorf("bulk insert: %w", err)
		}
		mSamplesImported.Add(float64(n))
		batch = batch[:0]
		return nil
	}

	for {
		rec, err := rd.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("read row: %w", err)
		}

		if !rowOK(rec, idx) {
			mRowsRejected.WithLabelValues("status_samples").Inc()
			continue
		}
		id := rec[idx["store_id"]]
		loc, known := s.locs[id]
		if !known {
			mRowsRejected.WithLabelValues("status_samples").Inc()
			continue
		}

		at, err := parseSampleTime(rec[idx["timestamp_utc"]])
		if err != nil {
			mRowsRejected.WithLabelValues("status_samples").Inc()
			s.Log.Warn("rejecting sample", zap.String("store_id", id), zap.Error(err))
			continue
		}
		st, err := parseState(rec[idx["status"]])
		if err != nil {
			mRowsRejected.WithLabelValues("status_samples").Inc()
			s.Log.Warn("rejecting sample", zap.String("store_id", id), zap.Error(err))
			continue
		}

		batch = append(batch, status.Sample{
			StoreID:    id,
			ObservedAt: at,
			LocalAt:    at.In(loc),
			State:      st,
		})
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	return flush()
}

func openCSV(path string) (*csv.Reader, func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	rd := csv.NewReader(f)
	rd.FieldsPerRecord = -1
	return rd, func() { _ = f.Close() }, nil
}

func readHeader(rd *csv.Reader, cols ...string) (map[string]int, error) {
	header, err := rd.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	return headerIndex(header, cols...)
}
