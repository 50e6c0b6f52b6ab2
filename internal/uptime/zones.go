package uptime

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrInvalidTimeZone is returned when an IANA zone identifier cannot be
// resolved. It propagates to the caller; nothing past ingestion is allowed
// to substitute a default zone.
var ErrInvalidTimeZone = errors.New("invalid time zone")

// Zones caches resolved *time.Location by identifier. Lookups hit the OS
// zoneinfo database once per name.
type Zones struct {
	mu     sync.RWMutex
	byName map[string]*time.Location
}

func NewZones() *Zones {
	return &Zones{byName: make(map[string]*time.Location)}
}

func (z *Zones) Load(name string) (*time.Location, error) {
	z.mu.RLock()
	loc, ok := z.byName[name]
	z.mu.RUnlock()
	if ok {
		return loc, nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimeZone, name)
	}

	z.mu.Lock()
	z.byName[name] = loc
	z.mu.Unlock()
	return loc, nil
}
