package status

import (
	"fmt"
	"time"
)

// State of a store at one observation. The zero value is Inactive, which is
// also the documented default for time preceding the first sample of a
// business interval.
type State uint8

const (
	Inactive State = iota
	Active
)

func ParseState(s string) (State, error) {
	switch s {
	case "active":
		return Active, nil
	case "inactive":
		return Inactive, nil
	default:
		return Inactive, fmt.Errorf("unknown status %q", s)
	}
}

func (s State) String() string {
	if s == Active {
		return "active"
	}
	return "inactive"
}

// Sample is one observation of a store's poll status. LocalAt is ObservedAt
// reinterpreted in the store's zone, precomputed at ingestion.
type Sample struct {
	StoreID    string    `json:"store_id"`
	ObservedAt time.Time `json:"observed_at"`
	LocalAt    time.Time `json:"local_at"`
	State      State     `json:"state"`
}
