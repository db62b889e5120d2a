package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/ssp-overtime-api/internal/dto"
	"github.com/noah-isme/ssp-overtime-api/internal/models"
	"github.com/noah-isme/ssp-overtime-api/pkg/config"
	appErrors "github.com/noah-isme/ssp-overtime-api/pkg/errors"
	"github.com/noah-isme/ssp-overtime-api/pkg/export"
	"github.com/noah-isme/ssp-overtime-api/pkg/response"
	"github.com/noah-isme/ssp-overtime-api/pkg/storage"
)

var exportHeaders = []string{"Date", "Time Range", "Calculated Hours", "Anomaly", "Submitted", "Status", "Type", "Reported Hours"}

// ExportHandler renders the unified report as CSV or PDF.
type ExportHandler struct {
	service overtimeService
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
	storage *storage.LocalStorage
	cfg     config.ExportConfig
	logger  *zap.Logger
}

// ExportHandlerParams groups the export handler dependencies. Storage is
// optional; without it the save flag is ignored.
type ExportHandlerParams struct {
	Service overtimeService
	Storage *storage.LocalStorage
	Config  config.ExportConfig
	Logger  *zap.Logger
}

// NewExportHandler constructs the handler.
func NewExportHandler(p ExportHandlerParams) *ExportHandler {
	if p.Logger == nil {
		p.Logger = zap.NewNop()
	}
	if p.Config.FilenamePrefix == "" {
		p.Config.FilenamePrefix = "overtime_report"
	}
	return &ExportHandler{
		service: p.Service,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
		storage: p.Storage,
		cfg:     p.Config,
		logger:  p.Logger,
	}
}

// Export godoc
// @Summary Export the unified overtime report
// @Tags Export
// @Produce octet-stream
// @Param format query string false "csv (default) or pdf"
// @Param save query bool false "Also persist to the export directory"
// @Success 200 {file} binary
// @Router /overtime/export [get]
func (h *ExportHandler) Export(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}

	format := strings.ToLower(strings.TrimSpace(c.Query("format")))
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "pdf" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf"))
		return
	}

	snapshot, _, err := h.service.SyncAll(c.Request.Context(), false)
	if err != nil {
		response.Error(c, err)
		return
	}

	data := buildDataset(snapshot.UnifiedRecords)
	filename := fmt.Sprintf("%s_%s.%s", h.cfg.FilenamePrefix, time.Now().Format("20060102"), format)

	var payload []byte
	var contentType string
	switch format {
	case "csv":
		payload, err = h.csv.Render(data)
		contentType = "text/csv"
	case "pdf":
		stats := dto.NewStatisticsResponse(snapshot.Statistics)
		summary := []string{
			fmt.Sprintf("Period: %s - %s", snapshot.StartDate, snapshot.EndDate),
			fmt.Sprintf("Total overtime: %.2f h across %d days", stats.TotalOvertimeHours, stats.TotalDays),
			fmt.Sprintf("Pending submissions: %d, discrepancies: %d", stats.PendingSubmissionDays, stats.DiscrepancyCount),
		}
		payload, err = h.pdf.Render(data, "Overtime Report", summary)
		contentType = "application/pdf"
	}
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "report rendering failed"))
		return
	}

	if h.storage != nil && strings.EqualFold(c.Query("save"), "true") {
		if path, saveErr := h.storage.Save(filename, payload); saveErr != nil {
			h.logger.Warn("export save failed", zap.Error(saveErr))
		} else {
			h.logger.Info("export saved", zap.String("path", path))
		}
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, payload)
}

func buildDataset(records []models.UnifiedOvertimeRecord) export.Dataset {
	rows := make([]map[string]string, 0, len(records))
	for _, r := range records {
		reported := ""
		if r.ReportedOvertimeHours != nil {
			reported = fmt.Sprintf("%.2f", *r.ReportedOvertimeHours)
		}
		rows = append(rows, map[string]string{
			"Date":             r.Date,
			"Time Range":       r.TimeRange(),
			"Calculated Hours": fmt.Sprintf("%.2f", r.CalculatedOvertimeHours),
			"Anomaly":          yesNo(r.HasAnomaly),
			"Submitted":        yesNo(r.Submitted),
			"Status":           r.SubmissionStatus,
			"Type":             r.SubmissionType,
			"Reported Hours":   reported,
		})
	}
	return export.Dataset{Headers: exportHeaders, Rows: rows}
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
