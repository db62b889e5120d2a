package models

import "time"

// OvertimeStatistics summarises a unified record list over a date range. It is
// a pure derivation of its inputs and carries no lifecycle of its own.
type OvertimeStatistics struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`

	TotalOvertimeHours     float64 `json:"totalOvertimeHours"`
	SubmittedOvertimeHours float64 `json:"submittedOvertimeHours"`
	PendingOvertimeHours   float64 `json:"pendingOvertimeHours"`

	TotalDays             int `json:"totalDays"`
	WorkdaysWithOvertime  int `json:"workdaysWithOvertime"`
	PendingSubmissionDays int `json:"pendingSubmissionDays"`
	AnomalyDays           int `json:"anomalyDays"`

	DiscrepancyCount int `json:"discrepancyCount"`
}

// AverageOvertimePerDay returns mean overtime across days that had any.
func (s OvertimeStatistics) AverageOvertimePerDay() float64 {
	if s.WorkdaysWithOvertime == 0 {
		return 0
	}
	return s.TotalOvertimeHours / float64(s.WorkdaysWithOvertime)
}

// SubmissionRate is the submitted share of all computed overtime. With no
// overtime at all there is nothing left to file, so the rate is 1.
func (s OvertimeStatistics) SubmissionRate() float64 {
	if s.TotalOvertimeHours == 0 {
		return 1.0
	}
	return s.SubmittedOvertimeHours / s.TotalOvertimeHours
}

// HasPendingWork reports whether anything still needs attention.
func (s OvertimeStatistics) HasPendingWork() bool {
	return s.PendingSubmissionDays > 0 || s.AnomalyDays > 0
}

// AttendanceSnapshot is one reconciled view of the portal data. A snapshot is
// built whole by a full sync and replaced whole by the next one; only the
// incremental status refresh mutates submission fields of cached unified
// records in place.
type AttendanceSnapshot struct {
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate"`
	FetchedAt time.Time `json:"fetchedAt"`

	PunchRecords []PunchRecord    `json:"punchRecords"`
	LeaveRecords []LeaveRecord    `json:"leaveRecords"`
	Quota        *AttendanceQuota `json:"quota,omitempty"`

	UnifiedRecords []UnifiedOvertimeRecord `json:"unifiedRecords"`

	Statistics OvertimeStatistics `json:"statistics"`
}

// IsFresh reports whether the snapshot is younger than maxAge.
func (s *AttendanceSnapshot) IsFresh(maxAge time.Duration) bool {
	return time.Since(s.FetchedAt) < maxAge
}

// RecordCount returns the number of unified records.
func (s *AttendanceSnapshot) RecordCount() int {
	return len(s.UnifiedRecords)
}

// HasData reports whether the snapshot carries any unified records.
func (s *AttendanceSnapshot) HasData() bool {
	return len(s.UnifiedRecords) > 0
}

// RecordByDate returns the unified record for a date, nil when absent.
func (s *AttendanceSnapshot) RecordByDate(date string) *UnifiedOvertimeRecord {
	for i := range s.UnifiedRecords {
		if s.UnifiedRecords[i].Date == date {
			return &s.UnifiedRecords[i]
		}
	}
	return nil
}

// PendingRecords returns records that still need a submission.
func (s *AttendanceSnapshot) PendingRecords() []UnifiedOvertimeRecord {
	out := make([]UnifiedOvertimeRecord, 0)
	for _, r := range s.UnifiedRecords {
		if r.NeedsSubmission() {
			out = append(out, r)
		}
	}
	return out
}

// AnomalyRecords returns records flagged as attendance exceptions.
func (s *AttendanceSnapshot) AnomalyRecords() []UnifiedOvertimeRecord {
	out := make([]UnifiedOvertimeRecord, 0)
	for _, r := range s.UnifiedRecords {
		if r.HasAnomaly {
			out = append(out, r)
		}
	}
	return out
}

// SubmittedRecords returns records with a filed submission.
func (s *AttendanceSnapshot) SubmittedRecords() []UnifiedOvertimeRecord {
	out := make([]UnifiedOvertimeRecord, 0)
	for _, r := range s.UnifiedRecords {
		if r.Submitted {
			out = append(out, r)
		}
	}
	return out
}
