package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/ssp-overtime-api/internal/models"
)

// HistoryRepository persists one statistics row per completed full sync.
type HistoryRepository struct {
	db *sqlx.DB
}

// NewHistoryRepository constructs the repository.
func NewHistoryRepository(db *sqlx.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Record appends one sync run.
func (r *HistoryRepository) Record(ctx context.Context, run models.SyncRun) error {
	const query = `INSERT INTO sync_runs (id, start_date, end_date, record_count, total_overtime_hours, submitted_overtime_hours, pending_overtime_hours, anomaly_days, pending_submission_days, discrepancy_count, synced_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	if _, err := r.db.ExecContext(ctx, query,
		run.ID,
		run.StartDate,
		run.EndDate,
		run.RecordCount,
		run.TotalOvertimeHours,
		run.SubmittedOvertimeHours,
		run.PendingOvertimeHours,
		run.AnomalyDays,
		run.PendingSubmissionDays,
		run.DiscrepancyCount,
		run.SyncedAt,
	); err != nil {
		return fmt.Errorf("insert sync run: %w", err)
	}
	return nil
}

// List returns the most recent sync runs, newest first.
func (r *HistoryRepository) List(ctx context.Context, limit int) ([]models.SyncRun, error) {
	if limit <= 0 {
		limit = 50
	}

	const query = `SELECT id, start_date, end_date, record_count, total_overtime_hours, submitted_overtime_hours, pending_overtime_hours, anomaly_days, pending_submission_days, discrepancy_count, synced_at
FROM sync_runs
ORDER BY synced_at DESC
LIMIT $1`

	var runs []models.SyncRun
	if err := r.db.SelectContext(ctx, &runs, query, limit); err != nil {
		return nil, fmt.Errorf("list sync runs: %w", err)
	}
	return runs, nil
}

// Latest returns the most recent run, nil when the table is empty.
func (r *HistoryRepository) Latest(ctx context.Context) (*models.SyncRun, error) {
	runs, err := r.List(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}
