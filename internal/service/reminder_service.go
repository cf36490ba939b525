package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/wakeup-planner-api/internal/dto"
	"github.com/noah-isme/wakeup-planner-api/internal/models"
	appErrors "github.com/noah-isme/wakeup-planner-api/pkg/errors"
)

// ReminderService manages one-off reminders stored as a single list document.
type ReminderService struct {
	store     *DocumentStore
	validator *validator.Validate
	logger    *zap.Logger
	clock     Clock
	mu        sync.Mutex
}

// NewReminderService constructs the service.
func NewReminderService(store *DocumentStore, validate *validator.Validate, logger *zap.Logger, clock Clock) *ReminderService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if clock == nil {
		clock = SystemClock(nil)
	}
	return &ReminderService{store: store, validator: validate, logger: logger, clock: clock}
}

// List returns every reminder ordered by datetime.
func (s *ReminderService) List(ctx context.Context) ([]models.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Create stores a new reminder with a generated ID.
func (s *ReminderService) Create(ctx context.Context, req dto.ReminderRequest) (*models.Reminder, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid reminder payload")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	reminders, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock().UTC()
	reminder := models.Reminder{
		ID:            uuid.NewString(),
		Title:         strings.TrimSpace(req.Title),
		Address:       strings.TrimSpace(req.Address),
		Datetime:      req.Datetime,
		Type:          models.ReminderType(req.Type),
		RouteDuration: req.RouteDuration,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	reminders = append(reminders, reminder)

	if err := s.store.Save(ctx, models.StoreKeyReminders, reminders); err != nil {
		return nil, err
	}
	s.logger.Info("reminder created", zap.String("reminder_id", reminder.ID), zap.Time("datetime", reminder.Datetime))
	return &reminder, nil
}

// Update replaces every field except ID and CreatedAt.
func (s *ReminderService) Update(ctx context.Context, id string, req dto.ReminderRequest) (*models.Reminder, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid reminder payload")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	reminders, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	idx := indexOfReminder(reminders, id)
	if idx < 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "reminder not found")
	}

	updated := reminders[idx]
	updated.Title = strings.TrimSpace(req.Title)
	updated.Address = strings.TrimSpace(req.Address)
	updated.Datetime = req.Datetime
	updated.Type = models.ReminderType(req.Type)
	updated.RouteDuration = req.RouteDuration
	updated.UpdatedAt = s.clock().UTC()
	reminders[idx] = updated

	if err := s.store.Save(ctx, models.StoreKeyReminders, reminders); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a reminder by ID.
func (s *ReminderService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reminders, err := s.load(ctx)
	if err != nil {
		return err
	}

	idx := indexOfReminder(reminders, id)
	if idx < 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "reminder not found")
	}
	reminders = append(reminders[:idx], reminders[idx+1:]...)

	return s.store.Save(ctx, models.StoreKeyReminders, reminders)
}

func (s *ReminderService) load(ctx context.Context) ([]models.Reminder, error) {
	var reminders []models.Reminder
	if _, _, err := s.store.Load(ctx, models.StoreKeyReminders, &reminders); err != nil {
		return nil, err
	}
	sort.SliceStable(reminders, func(i, j int) bool {
		return reminders[i].Datetime.Before(reminders[j].Datetime)
	})
	return reminders, nil
}

func indexOfReminder(reminders []models.Reminder, id string) int {
	for i := range reminders {
		if reminders[i].ID == id {
			return i
		}
	}
	return -1
}
