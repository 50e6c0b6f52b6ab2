package uptime

import (
	"time"

	"github.com/storepulse/storepulse/internal/domain/hours"
)

// Resolve returns the business intervals for one weekday, anchored to the
// calendar date of anchor and converted to absolute instants in loc.
//
// No rules for the day means an empty result: a day with genuinely no
// schedule contributes zero duration. The 24/7 fallback for stores missing
// from the source schedule is materialized at ingestion, never here.
// Multiple rules for the same day come back as independent intervals; they
// are not merged even if they overlap.
func Resolve(rules []hours.Rule, anchor time.Time, day hours.Weekday, loc *time.Location) []Interval {
	var out []Interval
	for _, r := range rules {
		if r.Day != day {
			continue
		}
		out = append(out, Interval{
			Start: r.Open.On(anchor, loc),
			End:   r.Close.On(anchor, loc),
		})
	}
	return out
}
