package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/wakeup-planner-api/internal/models"
	appErrors "github.com/noah-isme/wakeup-planner-api/pkg/errors"
)

type stubFeed struct {
	raw   *models.RawTimetable
	err   error
	calls int
}

func (f *stubFeed) Fetch(ctx context.Context, group string) (*models.RawTimetable, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.raw, nil
}

type memCache struct {
	values map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{values: make(map[string][]byte)}
}

func (m *memCache) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := m.values[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.values[key] = raw
	return nil
}

func (m *memCache) DeleteByPattern(ctx context.Context, pattern string) error {
	m.values = make(map[string][]byte)
	return nil
}

func mondayFeed() *models.RawTimetable {
	return &models.RawTimetable{Grid: map[string]map[string][]json.RawMessage{
		"1": {"1": {json.RawMessage(`{"sbj":"Математика","shortRooms":["пр-1203"]}`)}},
	}}
}

func newTimetableService(feed *stubFeed, repo *memStoreRepo, cache *CacheService, now time.Time) *TimetableService {
	calendar := models.DefaultAcademicCalendar()
	return NewTimetableService(feed, newTestStore(repo, now), cache, NewScheduleNormalizer(calendar), nil, nil, fixedClock(now), TimetableConfig{MaxAge: time.Hour})
}

func TestTimetableServiceFetchesAndStores(t *testing.T) {
	now := monday(8, 0)
	feed := &stubFeed{raw: mondayFeed()}
	repo := newMemStoreRepo()
	svc := newTimetableService(feed, repo, nil, now)

	snapshot := svc.Snapshot(context.Background(), "231-324")
	assert.Equal(t, models.TimetableSourceFeed, snapshot.Source)
	assert.Equal(t, 1, feed.calls)
	assert.Contains(t, repo.entries, models.StoreKeyScheduleCache)

	again := svc.Snapshot(context.Background(), "231-324")
	assert.Equal(t, models.TimetableSourceStore, again.Source)
	assert.Equal(t, 1, feed.calls)
}

func TestTimetableServiceServesFromCache(t *testing.T) {
	now := monday(8, 0)
	feed := &stubFeed{raw: mondayFeed()}
	cache := NewCacheService(newMemCache(), nil, time.Hour, nil, true)
	svc := newTimetableService(feed, newMemStoreRepo(), cache, now)

	svc.Snapshot(context.Background(), "231-324")
	snapshot := svc.Snapshot(context.Background(), "231-324")

	assert.Equal(t, models.TimetableSourceCache, snapshot.Source)
	assert.Equal(t, 1, feed.calls)
}

func TestTimetableServiceFallsBackToStaleThenEmpty(t *testing.T) {
	now := monday(8, 0)
	repo := newMemStoreRepo()
	stale := models.TimetableSnapshot{Group: "231-324", Timetable: *mondayFeed(), FetchedAt: now.Add(-48 * time.Hour)}
	payload, err := json.Marshal(stale)
	require.NoError(t, err)
	repo.entries[models.StoreKeyScheduleCache] = models.StoreEntry{Key: models.StoreKeyScheduleCache, Value: string(payload)}

	feed := &stubFeed{err: errors.New("feed down")}
	svc := newTimetableService(feed, repo, nil, now)

	snapshot := svc.Snapshot(context.Background(), "231-324")
	assert.Equal(t, models.TimetableSourceStale, snapshot.Source)
	assert.Len(t, snapshot.Timetable.Grid, 1)

	other := svc.Snapshot(context.Background(), "999-999")
	assert.Equal(t, models.TimetableSourceEmpty, other.Source)
	assert.Empty(t, other.Timetable.Grid)

	blank := svc.Snapshot(context.Background(), " ")
	assert.Equal(t, models.TimetableSourceEmpty, blank.Source)
}

func TestTimetableServiceWeeklyNormalises(t *testing.T) {
	now := monday(8, 0)
	svc := newTimetableService(&stubFeed{raw: mondayFeed()}, newMemStoreRepo(), nil, now)
	custom := []models.CustomLesson{{ID: "c1", DayNumber: 2, LessonNumber: 1, Time: "09:00-10:30", Subject: "Английский"}}

	schedule, snapshot := svc.Weekly(context.Background(), "231-324", custom, now)

	assert.Equal(t, models.TimetableSourceFeed, snapshot.Source)
	require.Len(t, schedule[1], 1)
	assert.Equal(t, "пр-1203", schedule[1][0].Room)
	require.Len(t, schedule[2], 1)
	assert.True(t, schedule[2][0].Custom)
}

func TestTimetableServiceRefresh(t *testing.T) {
	now := monday(8, 0)
	feed := &stubFeed{err: errors.New("timeout")}
	svc := newTimetableService(feed, newMemStoreRepo(), nil, now)

	_, err := svc.Refresh(context.Background(), "231-324")
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrUpstream))

	_, err = svc.Refresh(context.Background(), "")
	assert.True(t, errors.Is(err, appErrors.ErrValidation))

	feed.err = nil
	feed.raw = mondayFeed()
	snapshot, err := svc.Refresh(context.Background(), "231-324")
	require.NoError(t, err)
	assert.Equal(t, now.UTC(), snapshot.FetchedAt)
}
