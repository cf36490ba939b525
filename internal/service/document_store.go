package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/wakeup-planner-api/internal/models"
	appErrors "github.com/noah-isme/wakeup-planner-api/pkg/errors"
)

// Clock returns the current instant. Services take one so tests can pin time.
type Clock func() time.Time

// SystemClock reads the wall clock in loc.
func SystemClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return func() time.Time { return time.Now().In(loc) }
}

type storeRepository interface {
	Get(ctx context.Context, key string) (*models.StoreEntry, error)
	Put(ctx context.Context, key, value string, updatedAt time.Time) error
	Delete(ctx context.Context, key string) error
}

// DocumentStore keeps JSON documents under the planner's fixed store keys.
type DocumentStore struct {
	repo    storeRepository
	metrics *MetricsService
	logger  *zap.Logger
	clock   Clock
}

// NewDocumentStore wraps a store repository.
func NewDocumentStore(repo storeRepository, metrics *MetricsService, logger *zap.Logger, clock Clock) *DocumentStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	if clock == nil {
		clock = time.Now
	}
	return &DocumentStore{repo: repo, metrics: metrics, logger: logger, clock: clock}
}

// Load decodes the document under key into dest. It reports false with a nil
// error when the key is absent or holds a document that no longer decodes.
func (s *DocumentStore) Load(ctx context.Context, key string, dest interface{}) (time.Time, bool, error) {
	start := time.Now()
	entry, err := s.repo.Get(ctx, key)
	s.metrics.ObserveDBQuery("store_get", time.Since(start))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load "+key)
	}
	if err := json.Unmarshal([]byte(entry.Value), dest); err != nil {
		s.logger.Warn("ignoring undecodable store document", zap.String("key", key), zap.Error(err))
		return time.Time{}, false, nil
	}
	return entry.UpdatedAt, true, nil
}

// Save encodes value and replaces the document under key.
func (s *DocumentStore) Save(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode "+key)
	}
	start := time.Now()
	err = s.repo.Put(ctx, key, string(payload), s.clock())
	s.metrics.ObserveDBQuery("store_put", time.Since(start))
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save "+key)
	}
	return nil
}

// Delete removes the document under key.
func (s *DocumentStore) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := s.repo.Delete(ctx, key)
	s.metrics.ObserveDBQuery("store_delete", time.Since(start))
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete "+key)
	}
	return nil
}
