package models

// PunchRecord holds every badge punch for one calendar date, parsed from the
// attendance page punch-clock table. Times are HH:MM:SS strings sorted
// ascending; the fixed-width format makes lexicographic order chronological.
type PunchRecord struct {
	Date       string   `json:"date"`
	PunchTimes []string `json:"punchTimes"`
}

// HasPunch reports whether the date carries at least one punch.
func (r PunchRecord) HasPunch() bool {
	return len(r.PunchTimes) > 0
}

// PunchCount returns the number of punches on the date.
func (r PunchRecord) PunchCount() int {
	return len(r.PunchTimes)
}
