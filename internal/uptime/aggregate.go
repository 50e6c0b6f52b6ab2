package uptime

import (
	"time"

	"github.com/storepulse/storepulse/internal/domain/status"
)

// Aggregate integrates active and inactive duration over the intersection
// of w with each business interval.
//
// The samples are a right-continuous step function: a sample's state holds
// from its instant until the next sample or the interval end. Time between
// the interval start and the first in-range sample is attributed to the
// default state, inactive. Samples must be ordered by instant ascending and
// restricted to w by the caller; ordering is trusted, not re-checked.
//
// Invariant: for every interval, the up and down contributions sum to
// exactly the clipped interval length.
func Aggregate(w Interval, intervals []Interval, samples []status.Sample) (up, down time.Duration) {
	for _, bh := range intervals {
		bh = bh.Clip(w)
		if bh.Empty() {
			continue
		}

		cursor := bh.Start
		last := status.Inactive

		for _, s := range samples {
			if s.ObservedAt.Before(bh.Start) {
				continue
			}
			if !s.ObservedAt.Before(bh.End) {
				break
			}
			if d := s.ObservedAt.Sub(cursor); d > 0 {
				if last == status.Active {
					up += d
				} else {
					down += d
				}
			}
			last = s.State
			cursor = s.ObservedAt
		}

		if d := bh.End.Sub(cursor); d > 0 {
			if last == status.Active {
				up += d
			} else {
				down += d
			}
		}
	}
	return up, down
}
