package parser

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/noah-isme/ssp-overtime-api/internal/models"
)

// Table identifiers on the attendance page (FW99001Z.aspx). These are fixed
// by the portal's rendering engine.
const (
	punchTableID   = "ContentPlaceHolder1_gvNotes005"
	leaveTableID   = "ContentPlaceHolder1_gvNotes011"
	quotaTableID   = "ContentPlaceHolder1_dvNotes019"
	anomalyTableID = "ContentPlaceHolder1_gvWeb012"
)

// Quota rows are matched by portal phrase, not by position.
const (
	phraseAnnualRemaining       = "目前特休剩餘"
	phraseCompensatoryRemaining = "目前調休剩餘"
	phraseThreshold             = "最低申請時限"
)

// pagerRowClass marks table rows that hold pagination controls, not data.
const pagerRowClass = "PagerStyle"

var (
	numberPattern  = regexp.MustCompile(`(\d+)`)
	hoursPattern   = regexp.MustCompile(`(\d+)\s*小時`)
	minutesPattern = regexp.MustCompile(`(\d+)\s*分鐘`)
)

// AttendanceParser extracts structured records from the attendance page. All
// methods are fail-safe: a missing table degrades to an empty result with a
// warning, and malformed rows are skipped individually.
type AttendanceParser struct {
	logger *zap.Logger
}

// NewAttendanceParser constructs the parser.
func NewAttendanceParser(logger *zap.Logger) *AttendanceParser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceParser{logger: logger}
}

// PunchRecords parses the punch-clock table. Rows sharing a date are grouped
// into one record with times sorted ascending.
func (p *AttendanceParser) PunchRecords(html string) []models.PunchRecord {
	table, ok := p.findTable(html, punchTableID)
	if !ok {
		return nil
	}

	byDate := make(map[string][]string)
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		if p.skipRow(row) {
			return
		}
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		date := strings.TrimSpace(cells.Eq(0).Text())
		punchTime := strings.TrimSpace(cells.Eq(1).Text())
		if date != "" && punchTime != "" {
			byDate[date] = append(byDate[date], punchTime)
		}
	})

	records := make([]models.PunchRecord, 0, len(byDate))
	for date, times := range byDate {
		sort.Strings(times)
		records = append(records, models.PunchRecord{Date: date, PunchTimes: times})
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Date < records[j].Date })

	p.logger.Debug("parsed punch records", zap.Int("dates", len(records)))
	return records
}

// LeaveRecords parses the leave statistics table. Day and hour counts live in
// two separately-tagged spans inside the second cell.
func (p *AttendanceParser) LeaveRecords(html string) []models.LeaveRecord {
	table, ok := p.findTable(html, leaveTableID)
	if !ok {
		return nil
	}

	records := make([]models.LeaveRecord, 0)
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		if p.skipRow(row) {
			return
		}
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}

		leaveType := strings.TrimSpace(cells.Eq(0).Text())
		days := extractNumber(cells.Eq(1).Find("span[id*='lblAbsenceDay']").Text())
		hours := extractNumber(cells.Eq(1).Find("span[id*='lblAbsenceHour']").Text())

		if leaveType != "" && (days > 0 || hours > 0) {
			records = append(records, models.LeaveRecord{LeaveType: leaveType, Days: days, Hours: hours})
		}
	})

	p.logger.Debug("parsed leave records", zap.Int("count", len(records)))
	return records
}

// Quota parses the remaining-quota table by scanning row text for the three
// known phrases. Returns nil when the table is absent.
func (p *AttendanceParser) Quota(html string) *models.AttendanceQuota {
	table, ok := p.findTable(html, quotaTableID)
	if !ok {
		return nil
	}

	quota := &models.AttendanceQuota{}
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		if row.Find("th").Length() > 0 {
			return
		}
		cell := row.Find("td").First()
		if cell.Length() == 0 {
			return
		}
		text := strings.TrimSpace(cell.Text())

		switch {
		case strings.Contains(text, phraseAnnualRemaining):
			quota.AnnualLeaveDays = extractNumber(text)
		case strings.Contains(text, phraseCompensatoryRemaining):
			quota.CompensatoryLeaveDays = extractNumber(text)
		case strings.Contains(text, phraseThreshold):
			quota.ThresholdMinutes = extractMinutes(text)
		}
	})

	p.logger.Debug("parsed quota",
		zap.Int("annual", quota.AnnualLeaveDays),
		zap.Int("compensatory", quota.CompensatoryLeaveDays),
		zap.Int("threshold_minutes", quota.ThresholdMinutes))
	return quota
}

// AnomalyRecords parses the attendance-exception table. The date and punch
// range spans carry identifiers suffixed per row index by the portal, so they
// are located by identifier substring rather than position.
func (p *AttendanceParser) AnomalyRecords(html string) []models.AnomalyRecord {
	table, ok := p.findTable(html, anomalyTableID)
	if !ok {
		return nil
	}

	records := make([]models.AnomalyRecord, 0)
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		if p.skipRow(row) {
			return
		}
		cells := row.Find("td")
		if cells.Length() < 3 {
			return
		}

		date := strings.TrimSpace(cells.Eq(0).Find("span[id*='lblWork_Date']").Text())
		punchRange := strings.TrimSpace(cells.Eq(0).Find("span[id*='lblCard_Time']").Text())
		description := strings.TrimSpace(cells.Eq(2).Text())

		hours, err := ParseHours(cells.Eq(1).Find("span[id*='lblLose_Manhour']").Text())
		if err != nil {
			p.logger.Warn("anomaly overtime figure unparsable", zap.String("date", date), zap.Error(err))
		}

		if date != "" && description != "" {
			records = append(records, models.AnomalyRecord{
				Date:          date,
				PunchRange:    punchRange,
				OvertimeHours: hours,
				Description:   description,
			})
		}
	})

	p.logger.Debug("parsed anomaly records", zap.Int("count", len(records)))
	return records
}

func (p *AttendanceParser) findTable(html, id string) (*goquery.Selection, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		p.logger.Warn("attendance page unparsable", zap.Error(err))
		return nil, false
	}
	table := doc.Find("table#" + id)
	if table.Length() == 0 {
		p.logger.Warn("table not found", zap.String("table", id))
		return nil, false
	}
	return table, true
}

func (p *AttendanceParser) skipRow(row *goquery.Selection) bool {
	return row.Find("th").Length() > 0 || row.HasClass(pagerRowClass)
}

// extractNumber returns the first run of digits in the text, 0 when none.
func extractNumber(text string) int {
	match := numberPattern.FindStringSubmatch(text)
	if match == nil {
		return 0
	}
	n, err := strconv.Atoi(match[1])
	if err != nil {
		return 0
	}
	return n
}

// extractMinutes parses a compound "N 小時 M 分鐘" expression into total
// minutes. Hour and minute phrases are matched independently and default to
// zero, so a bare "45 分鐘" parses as 45.
func extractMinutes(text string) int {
	minutes := 0
	if m := hoursPattern.FindStringSubmatch(text); m != nil {
		if h, err := strconv.Atoi(m[1]); err == nil {
			minutes += h * 60
		}
	}
	if m := minutesPattern.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			minutes += n
		}
	}
	return minutes
}
