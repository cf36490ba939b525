package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/wakeup-planner-api/internal/models"
	appErrors "github.com/noah-isme/wakeup-planner-api/pkg/errors"
)

const timetableCachePrefix = "timetable:"

type timetableFetcher interface {
	Fetch(ctx context.Context, group string) (*models.RawTimetable, error)
}

// TimetableConfig tunes how long fetched timetables are trusted.
type TimetableConfig struct {
	CacheTTL time.Duration
	MaxAge   time.Duration
}

// TimetableService serves a group's raw timetable from the fastest fresh tier:
// Redis, then the stored snapshot, then the feed. When the feed fails, an
// older stored snapshot is served as stale, and failing that an empty grid.
type TimetableService struct {
	feed       timetableFetcher
	store      *DocumentStore
	cache      *CacheService
	normalizer *ScheduleNormalizer
	metrics    *MetricsService
	logger     *zap.Logger
	clock      Clock
	cfg        TimetableConfig
}

// NewTimetableService constructs the service. cache and metrics may be nil.
func NewTimetableService(feed timetableFetcher, store *DocumentStore, cache *CacheService, normalizer *ScheduleNormalizer, metrics *MetricsService, logger *zap.Logger, clock Clock, cfg TimetableConfig) *TimetableService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if clock == nil {
		clock = SystemClock(nil)
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Hour
	}
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = 12 * time.Hour
	}
	return &TimetableService{
		feed:       feed,
		store:      store,
		cache:      cache,
		normalizer: normalizer,
		metrics:    metrics,
		logger:     logger,
		clock:      clock,
		cfg:        cfg,
	}
}

// Snapshot returns the best available timetable for group. It never fails.
func (s *TimetableService) Snapshot(ctx context.Context, group string) *models.TimetableSnapshot {
	group = strings.TrimSpace(group)
	if group == "" {
		return s.serve(emptySnapshot(group))
	}

	var cached models.TimetableSnapshot
	if hit, _ := s.cache.Get(ctx, timetableCachePrefix+group, &cached); hit {
		cached.Source = models.TimetableSourceCache
		return s.serve(&cached)
	}

	stored := s.storedSnapshot(ctx, group)
	if stored != nil && s.clock().Sub(stored.FetchedAt) <= s.cfg.MaxAge {
		_ = s.cache.Set(ctx, timetableCachePrefix+group, stored, s.cfg.CacheTTL)
		stored.Source = models.TimetableSourceStore
		return s.serve(stored)
	}

	fresh, err := s.fetch(ctx, group)
	if err == nil {
		return s.serve(fresh)
	}

	if stored != nil {
		s.logger.Warn("serving stale timetable", zap.String("group", group), zap.Time("fetched_at", stored.FetchedAt), zap.Error(err))
		stored.Source = models.TimetableSourceStale
		return s.serve(stored)
	}

	s.logger.Warn("no timetable available", zap.String("group", group), zap.Error(err))
	return s.serve(emptySnapshot(group))
}

// Refresh downloads the feed for group and replaces the stored snapshot.
func (s *TimetableService) Refresh(ctx context.Context, group string) (*models.TimetableSnapshot, error) {
	group = strings.TrimSpace(group)
	if group == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "group number is not configured")
	}
	snapshot, err := s.fetch(ctx, group)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "failed to refresh timetable")
	}
	return snapshot, nil
}

// Weekly normalises the group's timetable for now and merges custom lessons.
func (s *TimetableService) Weekly(ctx context.Context, group string, custom []models.CustomLesson, now time.Time) (models.WeeklySchedule, *models.TimetableSnapshot) {
	snapshot := s.Snapshot(ctx, group)
	return s.normalizer.Normalize(&snapshot.Timetable, now, custom), snapshot
}

func (s *TimetableService) fetch(ctx context.Context, group string) (*models.TimetableSnapshot, error) {
	start := time.Now()
	raw, err := s.feed.Fetch(ctx, group)
	s.metrics.ObserveFeedFetch(err == nil, time.Since(start))
	if err != nil {
		return nil, err
	}

	snapshot := &models.TimetableSnapshot{
		Group:     group,
		Timetable: *raw,
		FetchedAt: s.clock().UTC(),
	}
	if err := s.store.Save(ctx, models.StoreKeyScheduleCache, snapshot); err != nil {
		s.logger.Warn("failed to persist timetable snapshot", zap.String("group", group), zap.Error(err))
	}
	_ = s.cache.Set(ctx, timetableCachePrefix+group, snapshot, s.cfg.CacheTTL)

	snapshot.Source = models.TimetableSourceFeed
	s.logger.Info("timetable fetched", zap.String("group", group), zap.Int("days", len(raw.Grid)))
	return snapshot, nil
}

func (s *TimetableService) storedSnapshot(ctx context.Context, group string) *models.TimetableSnapshot {
	var snapshot models.TimetableSnapshot
	_, found, err := s.store.Load(ctx, models.StoreKeyScheduleCache, &snapshot)
	if err != nil {
		s.logger.Warn("failed to read stored timetable", zap.Error(err))
		return nil
	}
	if !found || snapshot.Group != group {
		return nil
	}
	return &snapshot
}

func (s *TimetableService) serve(snapshot *models.TimetableSnapshot) *models.TimetableSnapshot {
	s.metrics.RecordTimetableSource(snapshot.Source)
	return snapshot
}

func emptySnapshot(group string) *models.TimetableSnapshot {
	return &models.TimetableSnapshot{Group: group, Source: models.TimetableSourceEmpty}
}
