package service

import (
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/ssp-overtime-api/internal/models"
)

// Reconciler merges the portal's anomaly list with the self-filed submission
// list into one record per date. The anomaly list is authoritative for which
// dates need explaining; the submission list is authoritative for what has
// been filed.
type Reconciler struct {
	calculator *OvertimeCalculator
	logger     *zap.Logger
}

// NewReconciler constructs the reconciler. The calculator fills in a
// punch-derived overtime figure when an anomaly row carries none of its own.
func NewReconciler(calculator *OvertimeCalculator, logger *zap.Logger) *Reconciler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reconciler{calculator: calculator, logger: logger}
}

// Reconcile builds the unified record list, sorted most recent date first,
// with at most one entry per date.
func (r *Reconciler) Reconcile(anomalies []models.AnomalyRecord, personals []models.PersonalRecord) []models.UnifiedOvertimeRecord {
	// Last write wins on a repeated date; the portal table should not
	// produce duplicates.
	byDate := make(map[string]models.PersonalRecord, len(personals))
	for _, p := range personals {
		byDate[p.Date] = p
	}

	unified := make([]models.UnifiedOvertimeRecord, 0, len(anomalies)+len(personals))
	covered := make(map[string]bool, len(anomalies))

	for _, a := range anomalies {
		record := models.UnifiedOvertimeRecord{
			Date:                    a.Date,
			HasAnomaly:              true,
			AnomalyDescription:      a.Description,
			CalculatedOvertimeHours: a.OvertimeHours,
		}

		record.PunchStart, record.PunchEnd = splitPunchRange(a.PunchRange)
		if record.CalculatedOvertimeHours == 0 && a.PunchRange != "" && r.calculator != nil {
			if computed, ok := r.calculator.Calculate(a.Date, a.PunchRange); ok {
				record.CalculatedOvertimeHours = computed.OvertimeHours
			}
		}

		if p, found := byDate[a.Date]; found {
			applySubmission(&record, p)
		}

		unified = append(unified, record)
		covered[a.Date] = true
	}

	// Submissions with no matching anomaly, typically manually-filed
	// compensatory time, still get a row of their own.
	for _, p := range personals {
		if covered[p.Date] {
			continue
		}
		record := models.UnifiedOvertimeRecord{Date: p.Date}
		applySubmission(&record, p)
		unified = append(unified, record)
	}

	r.warnOnMixedDateFormats(unified)
	sort.Slice(unified, func(i, j int) bool { return unified[i].Date > unified[j].Date })

	r.logger.Debug("reconciled records",
		zap.Int("anomalies", len(anomalies)),
		zap.Int("submissions", len(personals)),
		zap.Int("unified", len(unified)))
	return unified
}

// BuildStatistics derives the aggregate summary for a unified record list.
// Submitted hours sum what was actually filed, not the punch-derived figure;
// every unsubmitted record counts as a pending day, zero-hour anomalies such
// as forgotten punches included.
func (r *Reconciler) BuildStatistics(records []models.UnifiedOvertimeRecord, startDate, endDate string) models.OvertimeStatistics {
	stats := models.OvertimeStatistics{
		StartDate: startDate,
		EndDate:   endDate,
		TotalDays: len(records),
	}

	for _, rec := range records {
		stats.TotalOvertimeHours += rec.CalculatedOvertimeHours
		if rec.CalculatedOvertimeHours > 0 {
			stats.WorkdaysWithOvertime++
		}
		if rec.Submitted {
			if rec.ReportedOvertimeHours != nil {
				stats.SubmittedOvertimeHours += *rec.ReportedOvertimeHours
			}
		} else {
			stats.PendingSubmissionDays++
			stats.PendingOvertimeHours += rec.CalculatedOvertimeHours
		}
		if rec.HasAnomaly {
			stats.AnomalyDays++
		}
		if rec.HasDiscrepancy() {
			stats.DiscrepancyCount++
		}
	}

	return stats
}

// DateRange returns the bounds of the unified list. An empty list collapses
// to today for both ends.
func (r *Reconciler) DateRange(records []models.UnifiedOvertimeRecord) (string, string) {
	if len(records) == 0 {
		today := time.Now().Format(dateLayout)
		return today, today
	}

	start, end := records[0].Date, records[0].Date
	for _, rec := range records[1:] {
		if rec.Date < start {
			start = rec.Date
		}
		if rec.Date > end {
			end = rec.Date
		}
	}
	return start, end
}

func applySubmission(record *models.UnifiedOvertimeRecord, p models.PersonalRecord) {
	record.Submitted = true
	record.SubmissionContent = p.Content
	record.SubmissionStatus = p.Status
	record.SubmissionType = p.ReportType

	reported := p.OvertimeHours
	monthly := p.MonthlyTotal
	quarterly := p.QuarterlyTotal
	record.ReportedOvertimeHours = &reported
	record.MonthlyTotal = &monthly
	record.QuarterlyTotal = &quarterly
}

// splitPunchRange returns the start/end halves of a single-tilde range, empty
// strings otherwise.
func splitPunchRange(punchRange string) (string, string) {
	parts := strings.Split(punchRange, "~")
	if len(parts) != 2 {
		return "", ""
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
}

// Lexicographic date ordering is only correct when every record shares one
// zero-padded format. Mixed widths are logged, not normalised.
func (r *Reconciler) warnOnMixedDateFormats(records []models.UnifiedOvertimeRecord) {
	if len(records) < 2 {
		return
	}
	width := len(records[0].Date)
	for _, rec := range records[1:] {
		if len(rec.Date) != width {
			r.logger.Warn("mixed date formats in unified records; descending sort may be unreliable",
				zap.String("first", records[0].Date),
				zap.String("offending", rec.Date))
			return
		}
	}
}
