package uptime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/storepulse/storepulse/internal/domain/hours"
	"github.com/storepulse/storepulse/internal/domain/report"
	"github.com/storepulse/storepulse/internal/domain/status"
	"github.com/storepulse/storepulse/internal/domain/store"
)

func utcStore() *store.Store { return &store.Store{ID: "s1", Timezone: "UTC"} }

func TestBuilderRowUnitConversion(t *testing.T) {
	b := NewBuilder(nil)

	// Monday 2024-01-08, store open Mondays 09:00-17:00 UTC.
	now := time.Date(2024, 1, 8, 10, 0, 0, 0, time.UTC)
	in := StoreInput{
		Store: utcStore(),
		Rules: []hours.Rule{rule(0, "09:00", "17:00")},
		Samples: []status.Sample{
			// Active for exactly one hour at the start of the week window.
			sample(10, 0, status.Active),
			sample(11, 0, status.Inactive),
		},
	}
	// Shift the two samples back to Monday Jan 1.
	for i := range in.Samples {
		in.Samples[i].ObservedAt = in.Samples[i].ObservedAt.AddDate(0, 0, -7)
		in.Samples[i].LocalAt = in.Samples[i].ObservedAt
	}

	row, err := b.Row(in, now)
	require.NoError(t, err)

	// Hour window [09:00,10:00) Monday: open, no samples, inactive by default.
	require.Equal(t, 0.0, row.UptimeLastHour)
	require.Equal(t, 60.0, row.DowntimeLastHour)

	// Day window starts Sunday; no Sunday rule, zero contribution.
	require.Equal(t, 0.0, row.UptimeLastDay)
	require.Equal(t, 0.0, row.DowntimeLastDay)

	// Week window [Jan 1 10:00, Jan 8 10:00): open span clips to
	// [10:00,17:00) on Jan 1; one active hour, six inactive.
	require.Equal(t, 1.0, row.UptimeLastWeek)
	require.Equal(t, 6.0, row.DowntimeLastWeek)
}

func TestBuilderRowFullActiveHour(t *testing.T) {
	b := NewBuilder(nil)

	now := time.Date(2024, 1, 8, 17, 0, 0, 0, time.UTC)
	in := StoreInput{
		Store:   utcStore(),
		Rules:   []hours.Rule{rule(0, "09:00", "17:00")},
		Samples: []status.Sample{sample(16, 0, status.Active)},
	}

	row, err := b.Row(in, now)
	require.NoError(t, err)

	// 3600 accumulated seconds report as 60.00 minutes for the hour window.
	require.Equal(t, 60.0, row.UptimeLastHour)
	require.Equal(t, 0.0, row.DowntimeLastHour)
}

func TestBuilderWeekdayAsymmetry(t *testing.T) {
	b := NewBuilder(nil)

	// Just past midnight Tuesday. The only rule is late Monday.
	now := time.Date(2024, 1, 9, 0, 30, 0, 0, time.UTC)
	in := StoreInput{
		Store: utcStore(),
		Rules: []hours.Rule{rule(0, "23:00", "23:59:59")},
	}

	row, err := b.Row(in, now)
	require.NoError(t, err)

	// The hour window [Mon 23:30, Tue 00:30) overlaps the Monday rule, but
	// weekday resolution uses the window END (Tuesday), so it contributes
	// nothing. The day window resolves its START (Monday) and counts the
	// 23:00-23:59:59 span: 59m59s of default inactive, rounded to 1.00h.
	require.Equal(t, 0.0, row.UptimeLastHour)
	require.Equal(t, 0.0, row.DowntimeLastHour)
	require.Equal(t, 0.0, row.UptimeLastDay)
	require.Equal(t, 1.0, row.DowntimeLastDay)
}

func TestBuilderNoRuleForDayIsZero(t *testing.T) {
	b := NewBuilder(nil)

	now := time.Date(2024, 1, 9, 12, 0, 0, 0, time.UTC) // Tuesday
	in := StoreInput{
		Store:   utcStore(),
		Rules:   nil,
		Samples: []status.Sample{sample(11, 0, status.Active)},
	}

	row, err := b.Row(in, now)
	require.NoError(t, err)
	require.Equal(t, report.Row{StoreID: "s1"}, row)
}

func TestBuilderRowIsIdempotent(t *testing.T) {
	b := NewBuilder(nil)

	now := time.Date(2024, 1, 8, 13, 30, 0, 0, time.UTC)
	in := StoreInput{
		Store: utcStore(),
		Rules: []hours.Rule{rule(0, "09:00", "17:00"), rule(0, "18:00", "20:00")},
		Samples: []status.Sample{
			sample(9, 30, status.Active),
			sample(12, 15, status.Inactive),
		},
	}

	first, err := b.Row(in, now)
	require.NoError(t, err)
	second, err := b.Row(in, now)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestBuilderInvalidTimezone(t *testing.T) {
	b := NewBuilder(nil)

	in := StoreInput{Store: &store.Store{ID: "s1", Timezone: "Nowhere/Nope"}}
	_, err := b.Row(in, time.Date(2024, 1, 8, 12, 0, 0, 0, time.UTC))
	require.ErrorIs(t, err, ErrInvalidTimeZone)
}
