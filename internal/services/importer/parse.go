package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/storepulse/storepulse/internal/domain/hours"
	"github.com/storepulse/storepulse/internal/domain/status"
)

// sampleTimeLayout is the fixed source format, e.g.
// "2023-01-25 10:05:00.123456 UTC". The fractional part may be absent.
const sampleTimeLayout = "2006-01-02 15:04:05.999999 UTC"

func parseSampleTime(s string) (time.Time, error) {
	t, err := time.ParseInLocation(sampleTimeLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse sample timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}

// allDayRule is the explicit 24/7 schedule materialized when a source row
// exists for a store+day but its open/close pair is blank. Absent rows stay
// absent; only blank times mean "always open".
func allDayRule(storeID string, day hours.Weekday) hours.Rule {
	return hours.Rule{
		StoreID: storeID,
		Day:     day,
		Open:    hours.LocalTime{},
		Close:   hours.LocalTime{Hour: 23, Minute: 59, Second: 59},
	}
}

func parseDay(s string) (hours.Weekday, error) {
	d, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || d < 0 || d > 6 {
		return 0, fmt.Errorf("day of week %q: want 0..6", s)
	}
	return hours.Weekday(d), nil
}

func parseState(s string) (status.State, error) {
	return status.ParseState(strings.TrimSpace(strings.ToLower(s)))
}

// rowOK reports whether rec is long enough to carry every mapped column.
// Short rows are rejected, not sliced.
func rowOK(rec []string, idx map[string]int) bool {
	for _, i := range idx {
		if i >= len(rec) {
			return false
		}
	}
	return true
}

// headerIndex maps column names to positions so column order in the source
// files does not matter.
func headerIndex(header []string, cols ...string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(strings.ToLower(name))] = i
	}
	out := make(map[string]int, len(cols))
	for _, c := range cols {
		i, ok := idx[c]
		if !ok {
			return nil, fmt.Errorf("missing column %q", c)
		}
		out[c] = i
	}
	return out, nil
}
