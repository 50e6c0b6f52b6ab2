package reportworker

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/storepulse/storepulse/internal/domain/report"
)

var csvHeader = []string{
	"store_id",
	"uptime_last_hour",
	"uptime_last_day",
	"uptime_last_week",
	"downtime_last_hour",
	"downtime_last_day",
	"downtime_last_week",
}

// renderCSV assumes rows are already sorted; identical input produces
// byte-identical output.
func renderCSV(rows []report.Row) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, r := range rows {
		rec := []string{
			r.StoreID,
			num(r.UptimeLastHour),
			num(r.UptimeLastDay),
			num(r.UptimeLastWeek),
			num(r.DowntimeLastHour),
			num(r.DowntimeLastDay),
			num(r.DowntimeLastWeek),
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }
