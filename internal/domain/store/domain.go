package store

import "time"

// DefaultTimezone is substituted at ingestion time when a store record
// arrives without a timezone. Malformed identifiers are never defaulted.
const DefaultTimezone = "America/Chicago"

type Store struct {
	ID        string    `json:"id"`
	Timezone  string    `json:"timezone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
