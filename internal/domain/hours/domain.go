package hours

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Weekday is Monday-first: 0 = Monday ... 6 = Sunday.
type Weekday int

// WeekdayOf converts from time.Weekday (Sunday-first) ordering.
func WeekdayOf(t time.Time) Weekday {
	return Weekday((int(t.Weekday()) + 6) % 7)
}

// LocalTime is a wall-clock time of day without a date or zone attached.
type LocalTime struct {
	Hour   int
	Minute int
	Second int
}

// ParseLocalTime accepts "HH:MM" and "HH:MM:SS".
func ParseLocalTime(s string) (LocalTime, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return LocalTime{}, fmt.Errorf("parse local time %q: want HH:MM[:SS]", s)
	}
	var lt LocalTime
	var err error
	if lt.Hour, err = strconv.Atoi(parts[0]); err != nil || lt.Hour < 0 || lt.Hour > 23 {
		return LocalTime{}, fmt.Errorf("parse local time %q: bad hour", s)
	}
	if lt.Minute, err = strconv.Atoi(parts[1]); err != nil || lt.Minute < 0 || lt.Minute > 59 {
		return LocalTime{}, fmt.Errorf("parse local time %q: bad minute", s)
	}
	if len(parts) == 3 {
		if lt.Second, err = strconv.Atoi(parts[2]); err != nil || lt.Second < 0 || lt.Second > 59 {
			return LocalTime{}, fmt.Errorf("parse local time %q: bad second", s)
		}
	}
	return lt, nil
}

// On anchors the wall time to a calendar date in loc. The zone offset is
// resolved for that specific date, so DST transitions are handled.
func (lt LocalTime) On(date time.Time, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, lt.Hour, lt.Minute, lt.Second, 0, loc)
}

func (lt LocalTime) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", lt.Hour, lt.Minute, lt.Second)
}

// Rule is one open interval of a store's weekly schedule. A store may have
// zero, one or several rules per weekday; split shifts are separate rules.
// Open and Close are wall times on the same calendar day, so a rule can
// never span local midnight.
type Rule struct {
	StoreID string    `json:"store_id"`
	Day     Weekday   `json:"day_of_week"`
	Open    LocalTime `json:"open_local"`
	Close   LocalTime `json:"close_local"`
}
