package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/ssp-overtime-api/internal/models"
	"github.com/noah-isme/ssp-overtime-api/pkg/config"
)

func testPolicy() config.PolicyConfig {
	return config.PolicyConfig{
		LunchBreakMinutes: 70,
		WorkdayMinutes:    480,
		RestMinutes:       30,
		MaxOvertimeHours:  4,
		StandardStartHour: 9,
	}
}

func TestCalculateLateArrivalClampedToStandardStart(t *testing.T) {
	calc := NewOvertimeCalculator(testPolicy(), zap.NewNop())

	record, ok := calc.Calculate("2025/11/28", "09:15:00~19:30:00")
	require.True(t, ok)

	// Effective start clamps to 09:00, elapsed 630 minutes, 50 of them overtime.
	assert.Equal(t, 630, record.TotalMinutes)
	assert.InDelta(t, 0.83, record.OvertimeHours, 1e-9)
	assert.Equal(t, "09:15:00", record.StartTime)
	assert.Equal(t, "19:30:00", record.EndTime)
}

func TestCalculateCapsAtDailyMaximum(t *testing.T) {
	calc := NewOvertimeCalculator(testPolicy(), zap.NewNop())

	record, ok := calc.Calculate("2025/11/28", "08:00:00~22:00:00")
	require.True(t, ok)
	assert.InDelta(t, 4.0, record.OvertimeHours, 1e-9)
}

func TestCalculateEarlyStartCountsFromActualPunch(t *testing.T) {
	calc := NewOvertimeCalculator(testPolicy(), zap.NewNop())

	record, ok := calc.Calculate("2025/11/28", "08:00:00~19:40:00")
	require.True(t, ok)

	// 08:00 precedes the standard start so it is not clamped: 700 elapsed,
	// 120 overtime minutes.
	assert.Equal(t, 700, record.TotalMinutes)
	assert.InDelta(t, 2.0, record.OvertimeHours, 1e-9)
}

func TestCalculateNegativeFloorsToZero(t *testing.T) {
	calc := NewOvertimeCalculator(testPolicy(), zap.NewNop())

	record, ok := calc.Calculate("2025/11/28", "09:00:00~17:00:00")
	require.True(t, ok)
	assert.Zero(t, record.OvertimeHours)
}

func TestCalculateMalformedRanges(t *testing.T) {
	calc := NewOvertimeCalculator(testPolicy(), zap.NewNop())

	cases := []string{
		"",
		"09:00:00",
		"09:00:00~12:00:00~19:00:00",
		"morning~evening",
	}
	for _, raw := range cases {
		_, ok := calc.Calculate("2025/11/28", raw)
		assert.False(t, ok, "range %q should be rejected", raw)
	}
}

func TestBuildReportSortsDescendingAndSkipsBadRows(t *testing.T) {
	calc := NewOvertimeCalculator(testPolicy(), zap.NewNop())

	report := calc.BuildReport([]models.AnomalyRecord{
		{Date: "2025/11/26", PunchRange: "09:00:00~19:30:00", Description: "late out"},
		{Date: "2025/11/28", PunchRange: "09:15:00~19:30:00", Description: "late out"},
		{Date: "2025/11/27", PunchRange: "", Description: "missing punch"},
		{Date: "2025/11/25", PunchRange: "garbled", Description: "late out"},
	})

	require.Len(t, report.Records, 2)
	assert.Equal(t, "2025/11/28", report.Records[0].Date)
	assert.Equal(t, "2025/11/26", report.Records[1].Date)

	assert.Equal(t, 2, report.TotalDays())
	assert.Equal(t, 2, report.OvertimeDays())
	assert.InDelta(t, 1.66, report.TotalOvertimeHours(), 1e-9)
	assert.InDelta(t, 0.83, report.AverageOvertimeHours(), 1e-9)

	maxHours, maxDate := report.MaxOvertime()
	assert.InDelta(t, 0.83, maxHours, 1e-9)
	assert.NotEmpty(t, maxDate)
}
