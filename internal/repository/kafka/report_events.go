package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ReportRequested asks a worker to build one report. RequestedAt carries the
// frozen reference instant so the window math never depends on when the
// message happens to be consumed.
type ReportRequested struct {
	ReportID    uuid.UUID `json:"report_id"`
	RequestedAt time.Time `json:"requested_at"`
}

type ReportEventsKafka struct {
	prod *Producer
}

func NewReportEventsKafka(p *Producer) *ReportEventsKafka {
	return &ReportEventsKafka{prod: p}
}

func (e *ReportEventsKafka) PublishReportRequested(ctx context.Context, id uuid.UUID, requestedAt time.Time) error {
	ev := ReportRequested{ReportID: id, RequestedAt: requestedAt.UTC()}
	return e.prod.PublishJSON(ctx, []byte(id.String()), ev)
}

// JSONHandler decodes the message value into T before handing off.
func JSONHandler[T any](handle func(ctx context.Context, key []byte, msg *T) error) Handler {
	return func(ctx context.Context, key, value []byte) error {
		var msg T
		if err := json.Unmarshal(value, &msg); err != nil {
			return err
		}
		return handle(ctx, key, &msg)
	}
}
