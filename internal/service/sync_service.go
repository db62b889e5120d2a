package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/ssp-overtime-api/internal/models"
	"github.com/noah-isme/ssp-overtime-api/internal/parser"
	"github.com/noah-isme/ssp-overtime-api/pkg/config"
	"github.com/noah-isme/ssp-overtime-api/pkg/errors"
	"github.com/noah-isme/ssp-overtime-api/pkg/fetch"
)

// PageFetcher retrieves the two portal pages. The production implementation
// is the portal client; tests substitute fakes.
type PageFetcher interface {
	FetchAttendancePage(ctx context.Context) (string, error)
	FetchPersonalPage(ctx context.Context) (string, error)
}

// SnapshotStore persists the latest snapshot outside the process so a
// restart can serve stale-but-known data before its first fetch. Optional.
type SnapshotStore interface {
	Save(ctx context.Context, snapshot *models.AttendanceSnapshot) error
	Load(ctx context.Context) (*models.AttendanceSnapshot, error)
	Clear(ctx context.Context) error
}

// HistoryRecorder appends one statistics row per completed full sync.
// Optional.
type HistoryRecorder interface {
	Record(ctx context.Context, run models.SyncRun) error
}

// SyncService owns the snapshot cache and orchestrates the fetch-parse-merge
// pipeline. The cache is guarded by a mutex: the freshness check, the
// wholesale replace, and the in-place status refresh are all
// read-modify-write sequences that must not interleave across callers.
type SyncService struct {
	fetcher       PageFetcher
	attendance    *parser.AttendanceParser
	personal      *parser.PersonalParser
	reconciler    *Reconciler
	pool          *fetch.Pool
	metrics       *MetricsService
	snapshotStore SnapshotStore
	history       HistoryRecorder
	syncCfg       config.SyncConfig
	logger        *zap.Logger

	mu        sync.Mutex
	snapshot  *models.AttendanceSnapshot
	fetchedAt time.Time
}

// SyncServiceParams groups the SyncService dependencies. SnapshotStore,
// History and Metrics may be nil.
type SyncServiceParams struct {
	Fetcher       PageFetcher
	Attendance    *parser.AttendanceParser
	Personal      *parser.PersonalParser
	Reconciler    *Reconciler
	Pool          *fetch.Pool
	Metrics       *MetricsService
	SnapshotStore SnapshotStore
	History       HistoryRecorder
	SyncConfig    config.SyncConfig
	Logger        *zap.Logger
}

// NewSyncService wires the orchestrator.
func NewSyncService(p SyncServiceParams) *SyncService {
	if p.Logger == nil {
		p.Logger = zap.NewNop()
	}
	if p.Attendance == nil {
		p.Attendance = parser.NewAttendanceParser(p.Logger)
	}
	if p.Personal == nil {
		p.Personal = parser.NewPersonalParser(p.Logger)
	}
	if p.Reconciler == nil {
		p.Reconciler = NewReconciler(nil, p.Logger)
	}
	if p.Pool == nil {
		p.Pool = fetch.NewPool(2, p.Logger)
	}
	if p.SyncConfig.FreshnessWindow <= 0 {
		p.SyncConfig.FreshnessWindow = 5 * time.Minute
	}

	return &SyncService{
		fetcher:       p.Fetcher,
		attendance:    p.Attendance,
		personal:      p.Personal,
		reconciler:    p.Reconciler,
		pool:          p.Pool,
		metrics:       p.Metrics,
		snapshotStore: p.SnapshotStore,
		history:       p.History,
		syncCfg:       p.SyncConfig,
		logger:        p.Logger,
	}
}

// WarmStart loads a previously persisted snapshot into the cache, marked as
// already stale so the next SyncAll still fetches. Failure is non-fatal.
func (s *SyncService) WarmStart(ctx context.Context) {
	if s.snapshotStore == nil {
		return
	}
	snapshot, err := s.snapshotStore.Load(ctx)
	if err != nil {
		if errors.FromError(err).Code != errors.ErrCacheMiss.Code {
			s.logger.Warn("snapshot warm start failed", zap.Error(err))
		}
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot == nil {
		s.snapshot = snapshot
		s.fetchedAt = time.Time{}
		s.logger.Info("snapshot warm start", zap.Int("records", snapshot.RecordCount()))
	}
}

// SyncAll returns the reconciled snapshot, serving the cache while it is
// fresh unless forceRefresh is set. On a portal timeout or connection
// failure it falls back to the stale cached snapshot when one exists; any
// other failure propagates.
func (s *SyncService) SyncAll(ctx context.Context, forceRefresh bool) (*models.AttendanceSnapshot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !forceRefresh && s.snapshot != nil && time.Since(s.fetchedAt) < s.syncCfg.FreshnessWindow {
		s.metrics.RecordCacheOperation(true)
		s.metrics.ObserveSync(SyncOutcomeCached)
		return s.snapshot, true, nil
	}
	s.metrics.RecordCacheOperation(false)

	snapshot, err := s.fetchAndBuild(ctx)
	if err != nil {
		if s.snapshot != nil && errors.FromError(err).Code == errors.ErrPortalUnreachable.Code {
			s.logger.Warn("portal unreachable, serving stale snapshot",
				zap.Time("fetched_at", s.fetchedAt),
				zap.Error(err))
			s.metrics.ObserveSync(SyncOutcomeStaleFallback)
			return s.snapshot, true, nil
		}
		s.metrics.ObserveSync(SyncOutcomeError)
		if s.snapshot == nil && errors.FromError(err).Code == errors.ErrPortalUnreachable.Code {
			return nil, false, errors.Clone(errors.ErrNoData, "")
		}
		return nil, false, err
	}

	s.snapshot = snapshot
	s.fetchedAt = time.Now()
	s.metrics.ObserveSync(SyncOutcomeFresh)
	s.metrics.ObserveSnapshot(snapshot.RecordCount())

	s.persistSnapshot(ctx, snapshot)
	s.recordHistory(ctx, snapshot)

	return snapshot, false, nil
}

// SyncOvertimeStatus re-fetches only the personal-record page and overwrites
// the submission fields of matching cached records in place. It never fails:
// on any fetch problem the current cached records are returned unchanged.
// Without a cached snapshot it falls through to a full sync.
func (s *SyncService) SyncOvertimeStatus(ctx context.Context) ([]models.UnifiedOvertimeRecord, error) {
	s.mu.Lock()
	if s.snapshot == nil {
		s.mu.Unlock()
		snapshot, _, err := s.SyncAll(ctx, false)
		if err != nil {
			return nil, err
		}
		return snapshot.UnifiedRecords, nil
	}
	defer s.mu.Unlock()

	html, err := s.fetcher.FetchPersonalPage(ctx)
	if err != nil {
		s.logger.Warn("status refresh fetch failed, keeping cached records", zap.Error(err))
		return s.snapshot.UnifiedRecords, nil
	}

	personals := s.personal.Records(html)
	byDate := make(map[string]models.PersonalRecord, len(personals))
	for _, p := range personals {
		byDate[p.Date] = p
	}

	updated := 0
	for i := range s.snapshot.UnifiedRecords {
		record := &s.snapshot.UnifiedRecords[i]
		p, found := byDate[record.Date]
		if !found {
			continue
		}
		record.Submitted = true
		record.SubmissionStatus = p.Status
		monthly := p.MonthlyTotal
		quarterly := p.QuarterlyTotal
		record.MonthlyTotal = &monthly
		record.QuarterlyTotal = &quarterly
		updated++
	}

	s.metrics.ObserveSync(SyncOutcomeIncremental)
	s.logger.Info("refreshed submission status", zap.Int("updated", updated))
	return s.snapshot.UnifiedRecords, nil
}

// ClearCache discards the cached snapshot so the next SyncAll always
// performs a full fetch. The persisted copy is removed as well.
func (s *SyncService) ClearCache(ctx context.Context) {
	s.mu.Lock()
	s.snapshot = nil
	s.fetchedAt = time.Time{}
	s.mu.Unlock()

	if s.snapshotStore != nil {
		if err := s.snapshotStore.Clear(ctx); err != nil {
			s.logger.Warn("snapshot store clear failed", zap.Error(err))
		}
	}
	s.logger.Info("snapshot cache cleared")
}

// CachedSnapshot returns the current snapshot without triggering any I/O,
// nil when the cache is empty.
func (s *SyncService) CachedSnapshot() *models.AttendanceSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

// fetchAndBuild runs the two page fetches in parallel, parses both, and
// assembles a fresh snapshot. Both fetches are always awaited; if either
// failed the lowest-indexed failure surfaces after both settle.
func (s *SyncService) fetchAndBuild(ctx context.Context) (*models.AttendanceSnapshot, error) {
	var attendanceHTML, personalHTML string

	err := s.pool.Run(ctx,
		func(ctx context.Context) error {
			start := time.Now()
			html, err := s.fetcher.FetchAttendancePage(ctx)
			s.metrics.ObserveFetch("attendance", time.Since(start))
			if err != nil {
				return err
			}
			attendanceHTML = html
			return nil
		},
		func(ctx context.Context) error {
			start := time.Now()
			html, err := s.fetcher.FetchPersonalPage(ctx)
			s.metrics.ObserveFetch("personal", time.Since(start))
			if err != nil {
				return err
			}
			personalHTML = html
			return nil
		},
	)
	if err != nil {
		return nil, err
	}

	punches := s.attendance.PunchRecords(attendanceHTML)
	leaves := s.attendance.LeaveRecords(attendanceHTML)
	quota := s.attendance.Quota(attendanceHTML)
	anomalies := s.attendance.AnomalyRecords(attendanceHTML)
	personals := s.personal.Records(personalHTML)

	s.metrics.ObserveParse("punch", len(punches))
	s.metrics.ObserveParse("leave", len(leaves))
	s.metrics.ObserveParse("anomaly", len(anomalies))
	s.metrics.ObserveParse("personal", len(personals))

	unified := s.reconciler.Reconcile(anomalies, personals)
	startDate, endDate := s.reconciler.DateRange(unified)

	return &models.AttendanceSnapshot{
		StartDate:      startDate,
		EndDate:        endDate,
		FetchedAt:      time.Now(),
		PunchRecords:   punches,
		LeaveRecords:   leaves,
		Quota:          quota,
		UnifiedRecords: unified,
		Statistics:     s.reconciler.BuildStatistics(unified, startDate, endDate),
	}, nil
}

func (s *SyncService) persistSnapshot(ctx context.Context, snapshot *models.AttendanceSnapshot) {
	if s.snapshotStore == nil {
		return
	}
	if err := s.snapshotStore.Save(ctx, snapshot); err != nil {
		s.logger.Warn("snapshot persistence failed", zap.Error(err))
	}
}

func (s *SyncService) recordHistory(ctx context.Context, snapshot *models.AttendanceSnapshot) {
	if s.history == nil {
		return
	}
	run := models.SyncRun{
		ID:                     uuid.NewString(),
		StartDate:              snapshot.StartDate,
		EndDate:                snapshot.EndDate,
		RecordCount:            snapshot.RecordCount(),
		TotalOvertimeHours:     snapshot.Statistics.TotalOvertimeHours,
		SubmittedOvertimeHours: snapshot.Statistics.SubmittedOvertimeHours,
		PendingOvertimeHours:   snapshot.Statistics.PendingOvertimeHours,
		AnomalyDays:            snapshot.Statistics.AnomalyDays,
		PendingSubmissionDays:  snapshot.Statistics.PendingSubmissionDays,
		DiscrepancyCount:       snapshot.Statistics.DiscrepancyCount,
		SyncedAt:               snapshot.FetchedAt,
	}
	if err := s.history.Record(ctx, run); err != nil {
		s.logger.Warn("sync history append failed", zap.Error(err))
	}
}
