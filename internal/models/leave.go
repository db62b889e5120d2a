package models

import "strings"

// Leave-type labels are portal-controlled free text; classification matches
// substrings and breaks if the portal renames a leave type.
const (
	labelAnnualLeave   = "特休"
	labelSickLeave     = "病假"
	labelPersonalLeave = "事假"
)

// LeaveRecord is one leave-type row from the attendance page leave table.
type LeaveRecord struct {
	LeaveType string `json:"leaveType"`
	Days      int    `json:"days"`
	Hours     int    `json:"hours"`
}

// TotalHours converts the record to hours assuming an 8-hour day.
func (r LeaveRecord) TotalHours() float64 {
	return float64(r.Days)*8 + float64(r.Hours)
}

// IsAnnualLeave reports whether the label names annual leave.
func (r LeaveRecord) IsAnnualLeave() bool {
	return strings.Contains(r.LeaveType, labelAnnualLeave)
}

// IsSickLeave reports whether the label names sick leave.
func (r LeaveRecord) IsSickLeave() bool {
	return strings.Contains(r.LeaveType, labelSickLeave)
}

// IsPersonalLeave reports whether the label names personal leave.
func (r LeaveRecord) IsPersonalLeave() bool {
	return strings.Contains(r.LeaveType, labelPersonalLeave)
}
