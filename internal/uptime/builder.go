package uptime

import (
	"math"
	"sort"
	"time"

	"github.com/storepulse/storepulse/internal/domain/hours"
	"github.com/storepulse/storepulse/internal/domain/report"
	"github.com/storepulse/storepulse/internal/domain/status"
	"github.com/storepulse/storepulse/internal/domain/store"
)

// StoreInput is the per-store snapshot the builder works from. Samples must
// be ordered by instant and cover at most the last-week window; the builder
// narrows them per window itself.
type StoreInput struct {
	Store   *store.Store
	Rules   []hours.Rule
	Samples []status.Sample
}

// Builder computes one report row per store. It is pure: the reference
// instant is always caller-supplied and repeated calls over the same
// snapshot produce identical rows.
type Builder struct {
	zones *Zones
}

func NewBuilder(zones *Zones) *Builder {
	if zones == nil {
		zones = NewZones()
	}
	return &Builder{zones: zones}
}

// Row computes the six figures for one store relative to now.
//
// Weekday selection per window follows the upstream data pipeline and is
// deliberately asymmetric: the hour window resolves the weekday of its end,
// the day window the weekday of its start, and the week window concatenates
// all seven weekdays. All intervals are anchored to the window start's UTC
// calendar date. This materially changes output near day boundaries and is
// covered by tests; do not "fix" it quietly.
func (b *Builder) Row(in StoreInput, now time.Time) (report.Row, error) {
	loc, err := b.zones.Load(in.Store.Timezone)
	if err != nil {
		return report.Row{}, err
	}

	row := report.Row{StoreID: in.Store.ID}
	now = now.UTC()

	hourWin := Interval{Start: now.Add(-time.Hour), End: now}
	dayWin := Interval{Start: now.AddDate(0, 0, -1), End: now}
	weekWin := Interval{Start: now.AddDate(0, 0, -7), End: now}

	up, down := b.aggregateWindow(in, hourWin, []hours.Weekday{hours.WeekdayOf(hourWin.End)}, loc)
	row.UptimeLastHour = roundTo2(up.Seconds() / 60)
	row.DowntimeLastHour = roundTo2(down.Seconds() / 60)

	up, down = b.aggregateWindow(in, dayWin, []hours.Weekday{hours.WeekdayOf(dayWin.Start)}, loc)
	row.UptimeLastDay = roundTo2(up.Seconds() / 3600)
	row.DowntimeLastDay = roundTo2(down.Seconds() / 3600)

	up, down = b.aggregateWindow(in, weekWin, allWeekdays, loc)
	row.UptimeLastWeek = roundTo2(up.Seconds() / 3600)
	row.DowntimeLastWeek = roundTo2(down.Seconds() / 3600)

	return row, nil
}

var allWeekdays = []hours.Weekday{0, 1, 2, 3, 4, 5, 6}

func (b *Builder) aggregateWindow(in StoreInput, w Interval, days []hours.Weekday, loc *time.Location) (up, down time.Duration) {
	var intervals []Interval
	for _, day := range days {
		intervals = append(intervals, Resolve(in.Rules, w.Start, day, loc)...)
	}
	if len(intervals) == 0 {
		return 0, 0
	}
	return Aggregate(w, intervals, restrict(in.Samples, w))
}

// restrict narrows ordered samples to those observed within [w.Start, w.End).
func restrict(samples []status.Sample, w Interval) []status.Sample {
	lo := sort.Search(len(samples), func(i int) bool {
		return !samples[i].ObservedAt.Before(w.Start)
	})
	hi := sort.Search(len(samples), func(i int) bool {
		return !samples[i].ObservedAt.Before(w.End)
	})
	return samples[lo:hi]
}

// roundTo2 rounds half away from zero, matching strconv.FormatFloat with
// two digits downstream.
func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
