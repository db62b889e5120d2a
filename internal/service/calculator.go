package service

import (
	"math"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/ssp-overtime-api/internal/models"
	"github.com/noah-isme/ssp-overtime-api/pkg/config"
)

// Timestamp layouts the portal uses: dates are slash-separated and punch
// times carry seconds.
const (
	dateLayout     = "2006/01/02"
	dateTimeLayout = "2006/01/02 15:04:05"
)

// OvertimeCalculator converts raw punch ranges into bounded overtime figures
// under the configured policy.
type OvertimeCalculator struct {
	policy config.PolicyConfig
	logger *zap.Logger
}

// NewOvertimeCalculator constructs the calculator.
func NewOvertimeCalculator(policy config.PolicyConfig, logger *zap.Logger) *OvertimeCalculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OvertimeCalculator{policy: policy, logger: logger}
}

// Calculate derives the overtime figure for one date's punch range. The
// effective start is clamped to the standard start of day so a late arrival
// cannot inflate overtime. Malformed ranges report ok=false and are logged,
// never fatal.
func (c *OvertimeCalculator) Calculate(date, punchRange string) (models.AttendanceRecord, bool) {
	parts := strings.Split(punchRange, "~")
	if len(parts) != 2 {
		c.logger.Warn("punch range malformed", zap.String("date", date), zap.String("range", punchRange))
		return models.AttendanceRecord{}, false
	}

	startRaw := strings.TrimSpace(parts[0])
	endRaw := strings.TrimSpace(parts[1])

	start, err := time.Parse(dateTimeLayout, date+" "+startRaw)
	if err != nil {
		c.logger.Warn("punch start unparsable", zap.String("date", date), zap.String("time", startRaw))
		return models.AttendanceRecord{}, false
	}
	end, err := time.Parse(dateTimeLayout, date+" "+endRaw)
	if err != nil {
		c.logger.Warn("punch end unparsable", zap.String("date", date), zap.String("time", endRaw))
		return models.AttendanceRecord{}, false
	}

	standardStart := time.Date(start.Year(), start.Month(), start.Day(),
		c.policy.StandardStartHour, 0, 0, 0, start.Location())
	effectiveStart := start
	if start.After(standardStart) {
		effectiveStart = standardStart
	}

	elapsedMinutes := int(end.Sub(effectiveStart).Minutes())
	overtimeMinutes := elapsedMinutes - c.policy.LunchBreakMinutes - c.policy.WorkdayMinutes - c.policy.RestMinutes

	hours := roundHours(float64(overtimeMinutes) / 60.0)
	if hours < 0 {
		hours = 0
	}
	if hours > c.policy.MaxOvertimeHours {
		hours = c.policy.MaxOvertimeHours
	}

	return models.AttendanceRecord{
		Date:          date,
		StartTime:     startRaw,
		EndTime:       endRaw,
		TotalMinutes:  elapsedMinutes,
		OvertimeHours: hours,
	}, true
}

// BuildReport runs the calculator over every anomaly row carrying a punch
// range and returns the entries most recent first. Rows that fail to parse
// are absent from the report.
func (c *OvertimeCalculator) BuildReport(anomalies []models.AnomalyRecord) models.OvertimeReport {
	records := make([]models.AttendanceRecord, 0, len(anomalies))
	for _, a := range anomalies {
		if a.PunchRange == "" {
			continue
		}
		record, ok := c.Calculate(a.Date, a.PunchRange)
		if !ok {
			continue
		}
		records = append(records, record)
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Date > records[j].Date })
	return models.OvertimeReport{Records: records}
}

func roundHours(hours float64) float64 {
	return math.Round(hours*100) / 100
}
