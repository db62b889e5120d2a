package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ssp-overtime-api/internal/dto"
	"github.com/noah-isme/ssp-overtime-api/internal/middleware"
	"github.com/noah-isme/ssp-overtime-api/internal/models"
	appErrors "github.com/noah-isme/ssp-overtime-api/pkg/errors"
	"github.com/noah-isme/ssp-overtime-api/pkg/response"
)

type historyService interface {
	List(ctx context.Context, limit int) ([]models.SyncRun, error)
	Latest(ctx context.Context) (*models.SyncRun, error)
}

// HistoryHandler exposes persisted sync runs.
type HistoryHandler struct {
	repo         historyService
	defaultLimit int
}

// NewHistoryHandler constructs the handler.
func NewHistoryHandler(repo historyService, defaultLimit int) *HistoryHandler {
	if defaultLimit <= 0 {
		defaultLimit = 50
	}
	return &HistoryHandler{repo: repo, defaultLimit: defaultLimit}
}

// List godoc
// @Summary Recent sync runs
// @Tags History
// @Produce json
// @Param limit query int false "Maximum rows to return"
// @Success 200 {object} response.Envelope
// @Router /history [get]
func (h *HistoryHandler) List(c *gin.Context) {
	if h.repo == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "sync history is not enabled"))
		return
	}

	limit := h.defaultLimit
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	runs, err := h.repo.List(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, dto.HistoryResponse{Runs: runs, Count: len(runs)}, middleware.ExtractMeta(c))
}

// Latest godoc
// @Summary Most recent sync run
// @Tags History
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /history/latest [get]
func (h *HistoryHandler) Latest(c *gin.Context) {
	if h.repo == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "sync history is not enabled"))
		return
	}

	run, err := h.repo.Latest(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if run == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "no sync runs recorded yet"))
		return
	}

	response.JSON(c, http.StatusOK, run, middleware.ExtractMeta(c))
}
