package dto

import "github.com/noah-isme/ssp-overtime-api/internal/models"

// Record list filter values.
const (
	FilterPending   = "pending"
	FilterAnomaly   = "anomaly"
	FilterSubmitted = "submitted"
)

// RecordsQuery filters the unified record listing.
type RecordsQuery struct {
	Filter string `form:"filter"`
	Date   string `form:"date"`
}

// RecordsResponse carries the filtered unified records. The submission
// summary is attached only for the submitted view.
type RecordsResponse struct {
	Records []models.UnifiedOvertimeRecord `json:"records"`
	Count   int                            `json:"count"`
	Summary *models.PersonalRecordSummary  `json:"summary,omitempty"`
}

// StatisticsResponse flattens the aggregate statistics together with their
// derived values, which do not serialize as methods.
type StatisticsResponse struct {
	models.OvertimeStatistics
	AverageOvertimePerDay float64 `json:"averageOvertimePerDay"`
	SubmissionRate        float64 `json:"submissionRate"`
	HasPendingWork        bool    `json:"hasPendingWork"`
}

// NewStatisticsResponse builds the flattened statistics view.
func NewStatisticsResponse(stats models.OvertimeStatistics) StatisticsResponse {
	return StatisticsResponse{
		OvertimeStatistics:    stats,
		AverageOvertimePerDay: stats.AverageOvertimePerDay(),
		SubmissionRate:        stats.SubmissionRate(),
		HasPendingWork:        stats.HasPendingWork(),
	}
}

// HistoryResponse lists persisted sync runs, newest first.
type HistoryResponse struct {
	Runs  []models.SyncRun `json:"runs"`
	Count int              `json:"count"`
}
