package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ssp-overtime-api/internal/models"
)

func newHistoryRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	cleanup := func() {
		_ = sqlxDB.Close()
		db.Close()
	}
	return sqlxDB, mock, cleanup
}

func TestHistoryRepositoryRecord(t *testing.T) {
	db, mock, cleanup := newHistoryRepoMock(t)
	defer cleanup()
	repo := NewHistoryRepository(db)

	syncedAt := time.Date(2025, 11, 28, 10, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO sync_runs")).
		WithArgs("run-1", "2025/11/20", "2025/11/28", 5, 6.5, 4.0, 1.5, 3, 1, 0, syncedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Record(context.Background(), models.SyncRun{
		ID:                     "run-1",
		StartDate:              "2025/11/20",
		EndDate:                "2025/11/28",
		RecordCount:            5,
		TotalOvertimeHours:     6.5,
		SubmittedOvertimeHours: 4.0,
		PendingOvertimeHours:   1.5,
		AnomalyDays:            3,
		PendingSubmissionDays:  1,
		DiscrepancyCount:       0,
		SyncedAt:               syncedAt,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoryRepositoryList(t *testing.T) {
	db, mock, cleanup := newHistoryRepoMock(t)
	defer cleanup()
	repo := NewHistoryRepository(db)

	columns := []string{"id", "start_date", "end_date", "record_count", "total_overtime_hours", "submitted_overtime_hours", "pending_overtime_hours", "anomaly_days", "pending_submission_days", "discrepancy_count", "synced_at"}
	rows := sqlmock.NewRows(columns).
		AddRow("run-2", "2025/11/20", "2025/11/28", 5, 6.5, 4.0, 1.5, 3, 1, 0, time.Now()).
		AddRow("run-1", "2025/11/10", "2025/11/19", 4, 3.0, 3.0, 0.0, 2, 0, 0, time.Now().Add(-time.Hour))

	mock.ExpectQuery(regexp.QuoteMeta("FROM sync_runs")).
		WithArgs(10).
		WillReturnRows(rows)

	runs, err := repo.List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-2", runs[0].ID)
	assert.InDelta(t, 6.5, runs[0].TotalOvertimeHours, 1e-9)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoryRepositoryListDefaultsLimit(t *testing.T) {
	db, mock, cleanup := newHistoryRepoMock(t)
	defer cleanup()
	repo := NewHistoryRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM sync_runs")).
		WithArgs(50).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	runs, err := repo.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, runs)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoryRepositoryLatestEmpty(t *testing.T) {
	db, mock, cleanup := newHistoryRepoMock(t)
	defer cleanup()
	repo := NewHistoryRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM sync_runs")).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	run, err := repo.Latest(context.Background())
	require.NoError(t, err)
	assert.Nil(t, run)
}
