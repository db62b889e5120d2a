package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ssp-overtime-api/internal/models"
)

type fakeHistorySrv struct {
	runs      []models.SyncRun
	listErr   error
	lastLimit int
}

func (f *fakeHistorySrv) List(_ context.Context, limit int) ([]models.SyncRun, error) {
	f.lastLimit = limit
	if f.listErr != nil {
		return nil, f.listErr
	}
	if limit < len(f.runs) {
		return f.runs[:limit], nil
	}
	return f.runs, nil
}

func (f *fakeHistorySrv) Latest(ctx context.Context) (*models.SyncRun, error) {
	runs, err := f.List(ctx, 1)
	if err != nil || len(runs) == 0 {
		return nil, err
	}
	return &runs[0], nil
}

func testRuns() []models.SyncRun {
	return []models.SyncRun{
		{ID: "run-2", StartDate: "2025/11/20", EndDate: "2025/11/28", RecordCount: 3, SyncedAt: time.Date(2025, 11, 28, 20, 0, 0, 0, time.UTC)},
		{ID: "run-1", StartDate: "2025/11/13", EndDate: "2025/11/21", RecordCount: 2, SyncedAt: time.Date(2025, 11, 21, 20, 0, 0, 0, time.UTC)},
	}
}

func TestHistoryHandlerList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeHistorySrv{runs: testRuns()}
	handler := NewHistoryHandler(srv, 50)

	rec, _ := performRequest(handler.List, http.MethodGet, "/history")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 50, srv.lastLimit)

	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	var result struct {
		Count int              `json:"count"`
		Runs  []models.SyncRun `json:"runs"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &result))
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, "run-2", result.Runs[0].ID)
}

func TestHistoryHandlerListRejectsBadLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewHistoryHandler(&fakeHistorySrv{}, 50)

	rec, _ := performRequest(handler.List, http.MethodGet, "/history?limit=zero")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHistoryHandlerLatest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewHistoryHandler(&fakeHistorySrv{runs: testRuns()}, 50)

	rec, _ := performRequest(handler.Latest, http.MethodGet, "/history/latest")
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	var run models.SyncRun
	require.NoError(t, json.Unmarshal(envelope.Data, &run))
	assert.Equal(t, "run-2", run.ID)
}

func TestHistoryHandlerLatestEmpty(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewHistoryHandler(&fakeHistorySrv{}, 50)

	rec, _ := performRequest(handler.Latest, http.MethodGet, "/history/latest")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHistoryHandlerDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewHistoryHandler(nil, 0)

	rec, _ := performRequest(handler.List, http.MethodGet, "/history")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = performRequest(handler.Latest, http.MethodGet, "/history/latest")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
