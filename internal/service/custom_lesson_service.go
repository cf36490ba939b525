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

// CustomLessonService manages user-defined lessons merged into the week at read time.
type CustomLessonService struct {
	store     *DocumentStore
	calendar  models.AcademicCalendar
	validator *validator.Validate
	logger    *zap.Logger
	clock     Clock
	mu        sync.Mutex
}

// NewCustomLessonService constructs the service.
func NewCustomLessonService(store *DocumentStore, calendar models.AcademicCalendar, validate *validator.Validate, logger *zap.Logger, clock Clock) *CustomLessonService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if clock == nil {
		clock = SystemClock(nil)
	}
	return &CustomLessonService{store: store, calendar: calendar, validator: validate, logger: logger, clock: clock}
}

// List returns custom lessons ordered by day and lesson number.
func (s *CustomLessonService) List(ctx context.Context) ([]models.CustomLesson, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Create stores a custom lesson. A blank time takes the slot's standard range.
func (s *CustomLessonService) Create(ctx context.Context, req dto.CustomLessonRequest) (*models.CustomLesson, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid custom lesson payload")
	}

	lessonTime := strings.TrimSpace(req.Time)
	if lessonTime == "" {
		lessonTime, _ = s.calendar.SlotRange(req.LessonNumber)
	}

	lesson := models.CustomLesson{
		ID:           uuid.NewString(),
		DayNumber:    req.DayNumber,
		LessonNumber: req.LessonNumber,
		Time:         lessonTime,
		Subject:      strings.TrimSpace(req.Subject),
		Type:         orDefault(req.Type, DefaultType),
		Room:         orDefault(req.Room, DefaultRoom),
		Professor:    orDefault(req.Professor, DefaultProfessor),
		CreatedAt:    s.clock().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lessons, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	lessons = append(lessons, lesson)
	if err := s.store.Save(ctx, models.StoreKeyCustomLessons, lessons); err != nil {
		return nil, err
	}
	s.logger.Info("custom lesson added", zap.String("lesson_id", lesson.ID), zap.Int("day", lesson.DayNumber), zap.Int("slot", lesson.LessonNumber))
	return &lesson, nil
}

// Delete removes a custom lesson by ID.
func (s *CustomLessonService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lessons, err := s.load(ctx)
	if err != nil {
		return err
	}
	for i := range lessons {
		if lessons[i].ID == id {
			lessons = append(lessons[:i], lessons[i+1:]...)
			return s.store.Save(ctx, models.StoreKeyCustomLessons, lessons)
		}
	}
	return appErrors.Clone(appErrors.ErrNotFound, "custom lesson not found")
}

func (s *CustomLessonService) load(ctx context.Context) ([]models.CustomLesson, error) {
	var lessons []models.CustomLesson
	if _, _, err := s.store.Load(ctx, models.StoreKeyCustomLessons, &lessons); err != nil {
		return nil, err
	}
	sort.SliceStable(lessons, func(i, j int) bool {
		if lessons[i].DayNumber != lessons[j].DayNumber {
			return lessons[i].DayNumber < lessons[j].DayNumber
		}
		return lessons[i].LessonNumber < lessons[j].LessonNumber
	})
	return lessons, nil
}
