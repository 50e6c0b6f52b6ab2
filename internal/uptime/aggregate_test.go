package uptime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/storepulse/storepulse/internal/domain/status"
)

// All aggregate tests run on one fixed Monday.
var day = time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)

func at(h, m int) time.Time { return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute) }

func sample(h, m int, st status.State) status.Sample {
	return status.Sample{StoreID: "s1", ObservedAt: at(h, m), LocalAt: at(h, m), State: st}
}

func TestAggregateNoIntervals(t *testing.T) {
	w := Interval{Start: at(0, 0), End: at(23, 59)}

	up, down := Aggregate(w, nil, []status.Sample{sample(10, 0, status.Active)})
	require.Zero(t, up)
	require.Zero(t, down)
}

func TestAggregateNoSamplesDefaultsInactive(t *testing.T) {
	w := Interval{Start: at(0, 0), End: at(23, 59)}

	cases := []struct {
		name string
		iv   Interval
		want time.Duration
	}{
		{"zero width", Interval{Start: at(9, 0), End: at(9, 0)}, 0},
		{"one second", Interval{Start: at(9, 0), End: at(9, 0).Add(time.Second)}, time.Second},
		{"multi hour", Interval{Start: at(9, 0), End: at(17, 0)}, 8 * time.Hour},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			up, down := Aggregate(w, []Interval{tc.iv}, nil)
			require.Zero(t, up)
			require.Equal(t, tc.want, down)
		})
	}
}

func TestAggregateScenario(t *testing.T) {
	// Open 09:00-17:00; active 09-12, inactive 12-16, active 16-17.
	w := Interval{Start: at(9, 0), End: at(17, 0)}
	iv := []Interval{{Start: at(9, 0), End: at(17, 0)}}
	samples := []status.Sample{
		sample(9, 0, status.Active),
		sample(12, 0, status.Inactive),
		sample(16, 0, status.Active),
	}

	up, down := Aggregate(w, iv, samples)
	require.Equal(t, 4*time.Hour, up)
	require.Equal(t, 4*time.Hour, down)
}

func TestAggregateClipsToWindow(t *testing.T) {
	// Window ends mid-interval; nothing after the window end counts.
	w := Interval{Start: at(9, 0), End: at(12, 0)}
	iv := []Interval{{Start: at(9, 0), End: at(17, 0)}}
	samples := []status.Sample{sample(9, 0, status.Active)}

	up, down := Aggregate(w, iv, samples)
	require.Equal(t, 3*time.Hour, up)
	require.Zero(t, down)
}

func TestAggregateBoundarySamples(t *testing.T) {
	iv := []Interval{{Start: at(9, 0), End: at(17, 0)}}
	w := Interval{Start: at(0, 0), End: at(23, 59)}

	// A sample exactly on the interval start flips the default immediately.
	up, down := Aggregate(w, iv, []status.Sample{sample(9, 0, status.Active)})
	require.Equal(t, 8*time.Hour, up)
	require.Zero(t, down)

	// A sample exactly on the interval end is out of range and changes nothing.
	up, down = Aggregate(w, iv, []status.Sample{sample(17, 0, status.Active)})
	require.Zero(t, up)
	require.Equal(t, 8*time.Hour, down)
}

func TestAggregateConservation(t *testing.T) {
	iv := []Interval{{Start: at(9, 0), End: at(17, 0)}}
	w := Interval{Start: at(10, 0), End: at(16, 30)}
	clipped := 6*time.Hour + 30*time.Minute

	configs := [][]status.Sample{
		nil,
		{sample(9, 0, status.Active)}, // before clip start
		{sample(10, 0, status.Active)},
		{sample(10, 0, status.Active), sample(10, 0, status.Inactive)}, // duplicate instant
		{sample(11, 15, status.Active), sample(13, 45, status.Inactive), sample(14, 0, status.Active)},
		{sample(16, 30, status.Active)}, // exactly on clip end
		{sample(12, 0, status.Inactive), sample(23, 0, status.Active)},
	}
	for i, samples := range configs {
		up, down := Aggregate(w, iv, samples)
		require.Equal(t, clipped, up+down, "config %d", i)
	}
}

func TestAggregateSumsAcrossIntervals(t *testing.T) {
	// Split shift: 08-12 and 13-18.
	w := Interval{Start: at(0, 0), End: at(23, 59)}
	iv := []Interval{
		{Start: at(8, 0), End: at(12, 0)},
		{Start: at(13, 0), End: at(18, 0)},
	}
	samples := []status.Sample{
		sample(8, 0, status.Active),    // active through the morning
		sample(13, 0, status.Inactive), // down all afternoon
	}

	up, down := Aggregate(w, iv, samples)
	require.Equal(t, 4*time.Hour, up)
	require.Equal(t, 5*time.Hour, down)
}

func TestAggregateDuplicateInstantLastWins(t *testing.T) {
	w := Interval{Start: at(9, 0), End: at(17, 0)}
	iv := []Interval{{Start: at(9, 0), End: at(17, 0)}}
	samples := []status.Sample{
		sample(9, 0, status.Inactive),
		sample(9, 0, status.Active), // same instant, caller-imposed order
	}

	up, down := Aggregate(w, iv, samples)
	require.Equal(t, 8*time.Hour, up)
	require.Zero(t, down)
}
