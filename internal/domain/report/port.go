package report

import (
	"context"

	"github.com/google/uuid"
)

type Repo interface {
	Create(ctx context.Context, r *Report) error
	Get(ctx context.Context, id uuid.UUID) (*Report, error)
	MarkRunning(ctx context.Context, id uuid.UUID) error
	Complete(ctx context.Context, id uuid.UUID, csv []byte) error
	Fail(ctx context.Context, id uuid.UUID) error
}
