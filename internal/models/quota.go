package models

// AttendanceQuota carries the remaining leave quotas from the attendance page.
// ThresholdMinutes is the overtime still required before compensatory-leave
// conversion is allowed.
type AttendanceQuota struct {
	AnnualLeaveDays       int `json:"annualLeaveDays"`
	CompensatoryLeaveDays int `json:"compensatoryLeaveDays"`
	ThresholdMinutes      int `json:"thresholdMinutes"`
}

// ThresholdHours returns the conversion threshold in hours.
func (q AttendanceQuota) ThresholdHours() float64 {
	return float64(q.ThresholdMinutes) / 60.0
}

// HasAnnualLeave reports whether annual-leave days remain.
func (q AttendanceQuota) HasAnnualLeave() bool {
	return q.AnnualLeaveDays > 0
}

// HasCompensatoryLeave reports whether compensatory-leave days remain.
func (q AttendanceQuota) HasCompensatoryLeave() bool {
	return q.CompensatoryLeaveDays > 0
}
