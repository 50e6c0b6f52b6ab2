package uptime

import "time"

// Interval is a half-open UTC time range [Start, End). Both the query
// windows and resolved business intervals use this shape.
type Interval struct {
	Start time.Time
	End   time.Time
}

func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// Clip intersects iv with w. An empty result has Start >= End.
func (iv Interval) Clip(w Interval) Interval {
	out := iv
	if out.Start.Before(w.Start) {
		out.Start = w.Start
	}
	if out.End.After(w.End) {
		out.End = w.End
	}
	return out
}

func (iv Interval) Empty() bool {
	return !iv.Start.Before(iv.End)
}
