package report

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusQueued   Status = "queued"
	StatusRunning  Status = "running"
	StatusComplete Status = "complete"
	StatusFailed   Status = "failed"
)

// Report is one generated uptime report. RequestedAt is the reference
// instant, frozen at trigger time; all three windows are computed relative
// to it, never to the worker's clock.
type Report struct {
	ID          uuid.UUID  `json:"id"`
	Status      Status     `json:"status"`
	RequestedAt time.Time  `json:"requested_at"`
	CSV         []byte     `json:"-"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

// Row carries the six derived figures for one store. Hour-window fields are
// minutes, day- and week-window fields are hours, all rounded to 2 decimals.
type Row struct {
	StoreID          string
	UptimeLastHour   float64
	UptimeLastDay    float64
	UptimeLastWeek   float64
	DowntimeLastHour float64
	DowntimeLastDay  float64
	DowntimeLastWeek float64
}
