package parser

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/noah-isme/ssp-overtime-api/internal/models"
)

// personalTableID names the submission log table on the personal-record page
// (FW21003Z.aspx).
const personalTableID = "ContentPlaceHolder1_gvFlow211"

// Unlike the anomaly table, the submission table's span identifiers are only
// discoverable by constructing the exact index-suffixed name for each row.
// Field lookup is therefore coupled to the literal row order the portal
// rendered; rowField makes that coupling explicit by taking the row index.
const personalIDPrefix = "ContentPlaceHolder1_gvFlow211_"

// PersonalParser extracts self-filed overtime/compensatory submissions from
// the personal-record page.
type PersonalParser struct {
	logger *zap.Logger
}

// NewPersonalParser constructs the parser.
func NewPersonalParser(logger *zap.Logger) *PersonalParser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PersonalParser{logger: logger}
}

// Records parses the submission table. A missing table degrades to an empty
// list with a warning; rows missing their date field are skipped.
func (p *PersonalParser) Records(html string) []models.PersonalRecord {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		p.logger.Warn("personal page unparsable", zap.Error(err))
		return nil
	}

	table := doc.Find("table#" + personalTableID)
	if table.Length() == 0 {
		p.logger.Warn("table not found", zap.String("table", personalTableID))
		return nil
	}

	records := make([]models.PersonalRecord, 0)
	table.Find("tr.RowStyle, tr.AlternatingRowStyle_update").Each(func(index int, row *goquery.Selection) {
		record, ok := p.parseRow(row, index)
		if !ok {
			return
		}
		records = append(records, record)
	})

	p.logger.Debug("parsed personal records", zap.Int("count", len(records)))
	return records
}

// parseRow extracts one submission for the row at the given zero-based index.
func (p *PersonalParser) parseRow(row *goquery.Selection, index int) (models.PersonalRecord, bool) {
	date := rowField(row, "lblOT_Date", index)
	if date == "" {
		p.logger.Warn("personal row missing date", zap.Int("row", index))
		return models.PersonalRecord{}, false
	}

	// The describe span truncates long text via CSS; the title attribute
	// holds the full string when present.
	content := ""
	if span := row.Find("span#" + personalIDPrefix + fmt.Sprintf("lblOT_Describe_%d", index)); span.Length() > 0 {
		if title, exists := span.Attr("title"); exists && title != "" {
			content = title
		} else {
			content = strings.TrimSpace(span.Text())
		}
	}

	overtimeStatus := rowField(row, "Label9", index)
	changeStatus := rowField(row, "lblT_Change", index)

	overtimeHours := p.rowHours(row, "lblOT_Minute", index)
	changeHours := p.rowHours(row, "lblChange_Minute", index)

	// The row carries a pair of sibling amount fields, one for overtime and
	// one for compensatory time; whichever is nonzero decides the report
	// type. When both are nonzero the overtime branch wins by check order,
	// matching the portal's own display. When both are zero the row is a
	// status-only entry and the non-empty status label decides.
	var reportType string
	var totalHours float64
	switch {
	case overtimeHours > 0:
		reportType = overtimeStatus
		if reportType == "" {
			reportType = models.ReportTypeOvertime
		}
		totalHours = overtimeHours
	case changeHours > 0:
		reportType = changeStatus
		if reportType == "" {
			reportType = models.ReportTypeCompensatory
		}
		totalHours = changeHours
	case overtimeStatus != "":
		reportType = overtimeStatus
	case changeStatus != "":
		reportType = changeStatus
	}

	return models.PersonalRecord{
		Date:           date,
		Content:        content,
		Status:         rowField(row, "lblProcess_Flag_Text", index),
		ReportType:     reportType,
		OvertimeHours:  totalHours,
		MonthlyTotal:   p.rowHours(row, "lblOT_Manhour", index),
		QuarterlyTotal: p.rowHours(row, "lblOT_Monhour", index),
	}, true
}

func (p *PersonalParser) rowHours(row *goquery.Selection, field string, index int) float64 {
	raw := rowField(row, field, index)
	hours, err := ParseHours(raw)
	if err != nil {
		p.logger.Warn("personal row hours unparsable",
			zap.Int("row", index),
			zap.String("field", field),
			zap.Error(err))
	}
	return hours
}

// rowField returns the trimmed text of the index-suffixed span for the row.
func rowField(row *goquery.Selection, field string, index int) string {
	return strings.TrimSpace(row.Find(fmt.Sprintf("span#%s%s_%d", personalIDPrefix, field, index)).Text())
}
