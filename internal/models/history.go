package models

import "time"

// SyncRun is one persisted history row describing a completed full sync.
type SyncRun struct {
	ID                     string    `db:"id" json:"id"`
	StartDate              string    `db:"start_date" json:"startDate"`
	EndDate                string    `db:"end_date" json:"endDate"`
	RecordCount            int       `db:"record_count" json:"recordCount"`
	TotalOvertimeHours     float64   `db:"total_overtime_hours" json:"totalOvertimeHours"`
	SubmittedOvertimeHours float64   `db:"submitted_overtime_hours" json:"submittedOvertimeHours"`
	PendingOvertimeHours   float64   `db:"pending_overtime_hours" json:"pendingOvertimeHours"`
	AnomalyDays            int       `db:"anomaly_days" json:"anomalyDays"`
	PendingSubmissionDays  int       `db:"pending_submission_days" json:"pendingSubmissionDays"`
	DiscrepancyCount       int       `db:"discrepancy_count" json:"discrepancyCount"`
	SyncedAt               time.Time `db:"synced_at" json:"syncedAt"`
}
