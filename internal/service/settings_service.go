package service

import (
	"context"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/wakeup-planner-api/internal/dto"
	"github.com/noah-isme/wakeup-planner-api/internal/models"
	appErrors "github.com/noah-isme/wakeup-planner-api/pkg/errors"
)

// SettingsService reads and replaces the single settings record.
type SettingsService struct {
	store     *DocumentStore
	calendar  models.AcademicCalendar
	validator *validator.Validate
	logger    *zap.Logger
	mu        sync.Mutex
}

// NewSettingsService constructs the service.
func NewSettingsService(store *DocumentStore, calendar models.AcademicCalendar, validate *validator.Validate, logger *zap.Logger) *SettingsService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsService{store: store, calendar: calendar, validator: validate, logger: logger}
}

// Get returns the stored settings, or defaults on first run.
func (s *SettingsService) Get(ctx context.Context) (*models.Settings, error) {
	settings := models.DefaultSettings(s.calendar)
	_, found, err := s.store.Load(ctx, models.StoreKeySettings, &settings)
	if err != nil {
		return nil, err
	}
	if found {
		settings.CampusAddresses = s.withKnownCampuses(settings.CampusAddresses)
	}
	return &settings, nil
}

// Save validates req and overwrites the stored settings.
func (s *SettingsService) Save(ctx context.Context, req dto.SettingsRequest) (*models.Settings, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid settings payload")
	}

	campuses := make([]models.CampusAddress, 0, len(req.CampusAddresses))
	for _, campus := range req.CampusAddresses {
		code := strings.ToLower(strings.TrimSpace(campus.Code))
		if !s.calendar.IsCampusCode(code) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown campus code "+campus.Code)
		}
		campuses = append(campuses, models.CampusAddress{
			Code:    code,
			Name:    strings.TrimSpace(campus.Name),
			Address: strings.TrimSpace(campus.Address),
		})
	}

	settings := models.Settings{
		MorningRoutine:       req.MorningRoutine,
		ExtraTime:            req.ExtraTime,
		HomeAddress:          strings.TrimSpace(req.HomeAddress),
		CampusAddresses:      s.withKnownCampuses(campuses),
		TransportType:        models.TransportType(req.TransportType),
		GroupNumber:          strings.TrimSpace(req.GroupNumber),
		WeatherNotifications: req.WeatherNotifications,
		TrafficNotifications: req.TrafficNotifications,
		CustomRouteDuration:  req.CustomRouteDuration,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Save(ctx, models.StoreKeySettings, settings); err != nil {
		return nil, err
	}
	s.logger.Info("settings saved", zap.String("group", settings.GroupNumber), zap.String("transport", string(settings.TransportType)))
	return &settings, nil
}

// withKnownCampuses appends a blank entry for every campus missing from list
// and fills in display names.
func (s *SettingsService) withKnownCampuses(list []models.CampusAddress) []models.CampusAddress {
	seen := make(map[string]bool, len(list))
	names := make(map[string]string)
	for _, campus := range s.calendar.Campuses() {
		names[campus.Code] = campus.Name
	}
	out := make([]models.CampusAddress, 0, len(list))
	for _, campus := range list {
		if seen[campus.Code] {
			continue
		}
		seen[campus.Code] = true
		if campus.Name == "" {
			campus.Name = names[campus.Code]
		}
		out = append(out, campus)
	}
	for _, campus := range s.calendar.Campuses() {
		if !seen[campus.Code] {
			out = append(out, models.CampusAddress{Code: campus.Code, Name: campus.Name})
		}
	}
	return out
}
