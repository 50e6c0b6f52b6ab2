package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/storepulse/storepulse/internal/domain/report"
)

var _ report.Repo = (*ReportRepoImpl)(nil)

type ReportRepoImpl struct {
	db *DB
}

func NewReportRepo(db *DB) *ReportRepoImpl { return &ReportRepoImpl{db: db} }

const (
	qReportInsert = `
INSERT INTO reports (id, status, requested_at)
VALUES ($1, $2, $3)
RETURNING id, status, requested_at, csv, created_at, completed_at;
`

	qReportGet = `
SELECT id, status, requested_at, csv, created_at, completed_at
FROM reports
WHERE id = $1;
`

	qReportMarkRunning = `
UPDATE reports SET status = 'running' WHERE id = $1 AND status = 'queued';
`

	qReportComplete = `
UPDATE reports SET status = 'complete', csv = $2, completed_at = now() WHERE id = $1;
`

	qReportFail = `
UPDATE reports SET status = 'failed', completed_at = now() WHERE id = $1;
`
)

func scanReport(row pgx.Row, r *report.Report) error {
	var st string
	if err := row.Scan(&r.ID, &st, &r.RequestedAt, &r.CSV, &r.CreatedAt, &r.CompletedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("scan report: %w", err)
	}
	r.Status = report.Status(st)
	return nil
}

func (r *ReportRepoImpl) Create(ctx context.Context, rep *report.Report) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	row := r.db.Pool.QueryRow(ctx, qReportInsert, rep.ID, string(rep.Status), rep.RequestedAt)
	return scanReport(row, rep)
}

func (r *ReportRepoImpl) Get(ctx context.Context, id uuid.UUID) (*report.Report, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var rep report.Report
	if err := scanReport(r.db.Pool.QueryRow(ctx, qReportGet, id), &rep); err != nil {
		return nil, err
	}
	return &rep, nil
}

func (r *ReportRepoImpl) MarkRunning(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	_, err := r.db.Pool.Exec(ctx, qReportMarkRunning, id)
	return err
}

func (r *ReportRepoImpl) Complete(ctx context.Context, id uuid.UUID, csv []byte) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	cmd, err := r.db.Pool.Exec(ctx, qReportComplete, id, csv)
	if err != nil {
		return fmt.Errorf("complete report: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ReportRepoImpl) Fail(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	_, err := r.db.Pool.Exec(ctx, qReportFail, id)
	return err
}
