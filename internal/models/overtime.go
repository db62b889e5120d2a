package models

import "math"

// Approval status and report-type labels as the portal renders them.
const (
	StatusPendingApproval = "簽核中"
	StatusApproved        = "完成"

	ReportTypeOvertime     = "加班"
	ReportTypeCompensatory = "調休"
)

// discrepancyThresholdHours is the tolerance between system-computed and
// self-reported overtime before a record counts as a discrepancy.
const discrepancyThresholdHours = 0.1

// AnomalyRecord is one row of the portal's attendance-exception table. The
// portal decides which dates are anomalous; the service never re-derives that.
type AnomalyRecord struct {
	Date          string  `json:"date"`
	PunchRange    string  `json:"punchRange"`
	OvertimeHours float64 `json:"overtimeHours"`
	Description   string  `json:"description"`
}

// PersonalRecord is one row of the self-filed overtime/compensatory
// submission table, including the running totals the portal reported at
// submission time.
type PersonalRecord struct {
	Date           string  `json:"date"`
	Content        string  `json:"content"`
	Status         string  `json:"status"`
	ReportType     string  `json:"reportType"`
	OvertimeHours  float64 `json:"overtimeHours"`
	MonthlyTotal   float64 `json:"monthlyTotal"`
	QuarterlyTotal float64 `json:"quarterlyTotal"`
}

// PersonalRecordSummary aggregates submitted records for display.
type PersonalRecordSummary struct {
	TotalRecords         int     `json:"totalRecords"`
	TotalOvertimeHours   float64 `json:"totalOvertimeHours"`
	AverageOvertimeHours float64 `json:"averageOvertimeHours"`
	MaxOvertimeHours     float64 `json:"maxOvertimeHours"`
	CurrentMonthTotal    float64 `json:"currentMonthTotal"`
	CurrentQuarterTotal  float64 `json:"currentQuarterTotal"`
}

// UnifiedOvertimeRecord merges anomaly and submission facts for one calendar
// date. A reconciled snapshot holds at most one record per date.
type UnifiedOvertimeRecord struct {
	Date string `json:"date"`

	PunchStart              string  `json:"punchStart,omitempty"`
	PunchEnd                string  `json:"punchEnd,omitempty"`
	CalculatedOvertimeHours float64 `json:"calculatedOvertimeHours"`

	HasAnomaly         bool   `json:"hasAnomaly"`
	AnomalyDescription string `json:"anomalyDescription,omitempty"`

	Submitted             bool     `json:"submitted"`
	SubmissionContent     string   `json:"submissionContent,omitempty"`
	SubmissionStatus      string   `json:"submissionStatus,omitempty"`
	SubmissionType        string   `json:"submissionType,omitempty"`
	ReportedOvertimeHours *float64 `json:"reportedOvertimeHours,omitempty"`

	MonthlyTotal   *float64 `json:"monthlyTotal,omitempty"`
	QuarterlyTotal *float64 `json:"quarterlyTotal,omitempty"`
}

// NeedsSubmission reports whether the date still requires a filing.
func (r UnifiedOvertimeRecord) NeedsSubmission() bool {
	return r.HasAnomaly && !r.Submitted && r.CalculatedOvertimeHours > 0
}

// IsPendingApproval reports whether a filed submission awaits sign-off.
func (r UnifiedOvertimeRecord) IsPendingApproval() bool {
	return r.Submitted && r.SubmissionStatus == StatusPendingApproval
}

// IsApproved reports whether a filed submission completed sign-off.
func (r UnifiedOvertimeRecord) IsApproved() bool {
	return r.Submitted && r.SubmissionStatus == StatusApproved
}

// HasDiscrepancy reports whether computed and reported hours disagree beyond
// the tolerance. Unsubmitted records and zero-valued reports never count.
func (r UnifiedOvertimeRecord) HasDiscrepancy() bool {
	if !r.Submitted || r.ReportedOvertimeHours == nil || *r.ReportedOvertimeHours == 0 {
		return false
	}
	return math.Abs(r.CalculatedOvertimeHours-*r.ReportedOvertimeHours) > discrepancyThresholdHours
}

// TimeRange renders the punch range for display, empty when no punches exist.
func (r UnifiedOvertimeRecord) TimeRange() string {
	if r.PunchStart == "" || r.PunchEnd == "" {
		return ""
	}
	return r.PunchStart + "~" + r.PunchEnd
}

// SummarizeSubmissions aggregates the reported figures of submitted unified
// records. Records are expected most recent first, so the first row's running
// totals stand for the current month and quarter.
func SummarizeSubmissions(records []UnifiedOvertimeRecord) PersonalRecordSummary {
	summary := PersonalRecordSummary{TotalRecords: len(records)}
	if len(records) == 0 {
		return summary
	}

	for _, r := range records {
		if r.ReportedOvertimeHours == nil {
			continue
		}
		summary.TotalOvertimeHours += *r.ReportedOvertimeHours
		if *r.ReportedOvertimeHours > summary.MaxOvertimeHours {
			summary.MaxOvertimeHours = *r.ReportedOvertimeHours
		}
	}
	summary.AverageOvertimeHours = summary.TotalOvertimeHours / float64(len(records))
	if records[0].MonthlyTotal != nil {
		summary.CurrentMonthTotal = *records[0].MonthlyTotal
	}
	if records[0].QuarterlyTotal != nil {
		summary.CurrentQuarterTotal = *records[0].QuarterlyTotal
	}
	return summary
}

// AttendanceRecord is one computed entry of an overtime report: the raw punch
// pair plus the policy-derived overtime figure.
type AttendanceRecord struct {
	Date          string  `json:"date"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	TotalMinutes  int     `json:"totalMinutes"`
	OvertimeHours float64 `json:"overtimeHours"`
}

// OvertimeReport aggregates calculator output, most recent date first.
type OvertimeReport struct {
	Records []AttendanceRecord `json:"records"`
}

// TotalDays returns the number of report entries.
func (r OvertimeReport) TotalDays() int {
	return len(r.Records)
}

// OvertimeDays counts entries with a positive overtime figure.
func (r OvertimeReport) OvertimeDays() int {
	count := 0
	for _, rec := range r.Records {
		if rec.OvertimeHours > 0 {
			count++
		}
	}
	return count
}

// TotalOvertimeHours sums overtime across the report.
func (r OvertimeReport) TotalOvertimeHours() float64 {
	total := 0.0
	for _, rec := range r.Records {
		total += rec.OvertimeHours
	}
	return total
}

// AverageOvertimeHours returns the per-day mean, zero for an empty report.
func (r OvertimeReport) AverageOvertimeHours() float64 {
	if len(r.Records) == 0 {
		return 0
	}
	return r.TotalOvertimeHours() / float64(len(r.Records))
}

// MaxOvertime returns the largest single-day figure and its date.
func (r OvertimeReport) MaxOvertime() (float64, string) {
	maxHours := 0.0
	maxDate := ""
	for _, rec := range r.Records {
		if rec.OvertimeHours > maxHours {
			maxHours = rec.OvertimeHours
			maxDate = rec.Date
		}
	}
	return maxHours, maxDate
}
