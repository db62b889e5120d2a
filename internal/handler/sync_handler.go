package handler

import (
	"context"
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ssp-overtime-api/internal/dto"
	"github.com/noah-isme/ssp-overtime-api/internal/middleware"
	"github.com/noah-isme/ssp-overtime-api/internal/models"
	appErrors "github.com/noah-isme/ssp-overtime-api/pkg/errors"
	"github.com/noah-isme/ssp-overtime-api/pkg/response"
)

type overtimeService interface {
	SyncAll(ctx context.Context, forceRefresh bool) (*models.AttendanceSnapshot, bool, error)
	SyncOvertimeStatus(ctx context.Context) ([]models.UnifiedOvertimeRecord, error)
	ClearCache(ctx context.Context)
}

// SyncHandler exposes the reconciled overtime data over HTTP.
type SyncHandler struct {
	service overtimeService
}

// NewSyncHandler constructs the handler.
func NewSyncHandler(service overtimeService) *SyncHandler {
	return &SyncHandler{service: service}
}

// GetSnapshot godoc
// @Summary Reconciled attendance snapshot
// @Tags Overtime
// @Produce json
// @Param refresh query bool false "Force a fresh portal fetch"
// @Success 200 {object} response.Envelope
// @Router /overtime/snapshot [get]
func (h *SyncHandler) GetSnapshot(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}

	force := strings.EqualFold(c.Query("refresh"), "true")
	snapshot, cacheHit, err := h.service.SyncAll(c.Request.Context(), force)
	if err != nil {
		response.Error(c, err)
		return
	}

	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, snapshot, middleware.ExtractMeta(c))
}

// ListRecords godoc
// @Summary Unified overtime records
// @Tags Overtime
// @Produce json
// @Param filter query string false "pending | anomaly | submitted"
// @Param date query string false "Exact date (YYYY/MM/DD)"
// @Success 200 {object} response.Envelope
// @Router /overtime/records [get]
func (h *SyncHandler) ListRecords(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}

	var query dto.RecordsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid query parameters"))
		return
	}

	snapshot, cacheHit, err := h.service.SyncAll(c.Request.Context(), false)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := dto.RecordsResponse{}
	switch strings.ToLower(strings.TrimSpace(query.Filter)) {
	case "":
		result.Records = snapshot.UnifiedRecords
	case dto.FilterPending:
		result.Records = snapshot.PendingRecords()
	case dto.FilterAnomaly:
		result.Records = snapshot.AnomalyRecords()
	case dto.FilterSubmitted:
		result.Records = snapshot.SubmittedRecords()
		summary := models.SummarizeSubmissions(result.Records)
		result.Summary = &summary
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "filter must be one of pending, anomaly, submitted"))
		return
	}

	if date := strings.TrimSpace(query.Date); date != "" {
		filtered := make([]models.UnifiedOvertimeRecord, 0, 1)
		for _, r := range result.Records {
			if r.Date == date {
				filtered = append(filtered, r)
			}
		}
		result.Records = filtered
	}
	result.Count = len(result.Records)

	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, result, middleware.ExtractMeta(c))
}

// GetRecord godoc
// @Summary Unified record for one date
// @Tags Overtime
// @Produce json
// @Param year path string true "Year (YYYY)"
// @Param month path string true "Month (MM)"
// @Param day path string true "Day (DD)"
// @Success 200 {object} response.Envelope
// @Router /overtime/records/{year}/{month}/{day} [get]
func (h *SyncHandler) GetRecord(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}

	// Dates carry literal slashes, which gin's router cannot express in one
	// path parameter, so the route splits the date into segments.
	year := strings.TrimSpace(c.Param("year"))
	month := strings.TrimSpace(c.Param("month"))
	day := strings.TrimSpace(c.Param("day"))
	if year == "" || month == "" || day == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date is required"))
		return
	}
	date := year + "/" + month + "/" + day

	snapshot, cacheHit, err := h.service.SyncAll(c.Request.Context(), false)
	if err != nil {
		response.Error(c, err)
		return
	}

	record := snapshot.RecordByDate(date)
	if record == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "no record for date "+date))
		return
	}

	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, record, middleware.ExtractMeta(c))
}

// GetStatistics godoc
// @Summary Aggregate overtime statistics
// @Tags Overtime
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /overtime/statistics [get]
func (h *SyncHandler) GetStatistics(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}

	snapshot, cacheHit, err := h.service.SyncAll(c.Request.Context(), false)
	if err != nil {
		response.Error(c, err)
		return
	}

	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, dto.NewStatisticsResponse(snapshot.Statistics), middleware.ExtractMeta(c))
}

// GetPunchRecords godoc
// @Summary Raw punch-clock records
// @Tags Overtime
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /overtime/punches [get]
func (h *SyncHandler) GetPunchRecords(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}

	snapshot, cacheHit, err := h.service.SyncAll(c.Request.Context(), false)
	if err != nil {
		response.Error(c, err)
		return
	}

	records := make([]models.PunchRecord, len(snapshot.PunchRecords))
	copy(records, snapshot.PunchRecords)
	sort.Slice(records, func(i, j int) bool { return records[i].Date > records[j].Date })

	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, records, middleware.ExtractMeta(c))
}

// RefreshStatus godoc
// @Summary Re-fetch submission statuses only
// @Tags Overtime
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /overtime/status/refresh [post]
func (h *SyncHandler) RefreshStatus(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}

	records, err := h.service.SyncOvertimeStatus(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, dto.RecordsResponse{Records: records, Count: len(records)}, middleware.ExtractMeta(c))
}

// ClearCache godoc
// @Summary Discard the cached snapshot
// @Tags Overtime
// @Success 204
// @Router /overtime/cache [delete]
func (h *SyncHandler) ClearCache(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}

	h.service.ClearCache(c.Request.Context())
	response.NoContent(c)
}
