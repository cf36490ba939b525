package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/wakeup-planner-api/internal/models"
)

type settingsReader interface {
	Get(ctx context.Context) (*models.Settings, error)
}

type reminderLister interface {
	List(ctx context.Context) ([]models.Reminder, error)
}

type customLessonLister interface {
	List(ctx context.Context) ([]models.CustomLesson, error)
}

type weeklyScheduleSource interface {
	Weekly(ctx context.Context, group string, custom []models.CustomLesson, now time.Time) (models.WeeklySchedule, *models.TimetableSnapshot)
}

type routeEstimator interface {
	Estimate(ctx context.Context, settings models.Settings, destination string, arriveBy time.Time) (*models.RouteResult, error)
}

// PlannerService runs the full pipeline: schedule, next event, destination,
// route and alarm.
type PlannerService struct {
	settings   settingsReader
	reminders  reminderLister
	custom     customLessonLister
	timetable  weeklyScheduleSource
	routes     routeEstimator
	resolver   *NextEventResolver
	campuses   *CampusResolver
	calculator *AlarmCalculator
	metrics    *MetricsService
	logger     *zap.Logger
}

// PlannerDeps groups the planner's collaborators.
type PlannerDeps struct {
	Settings  settingsReader
	Reminders reminderLister
	Custom    customLessonLister
	Timetable weeklyScheduleSource
	Routes    routeEstimator
	Metrics   *MetricsService
	Logger    *zap.Logger
}

// NewPlannerService wires the core components over calendar.
func NewPlannerService(calendar models.AcademicCalendar, deps PlannerDeps) *PlannerService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlannerService{
		settings:   deps.Settings,
		reminders:  deps.Reminders,
		custom:     deps.Custom,
		timetable:  deps.Timetable,
		routes:     deps.Routes,
		resolver:   NewNextEventResolver(calendar),
		campuses:   NewCampusResolver(calendar),
		calculator: NewAlarmCalculator(calendar),
		metrics:    deps.Metrics,
		logger:     logger,
	}
}

// NextAlarm computes the plan for the next event after now. A plan without an
// event or alarm is a valid answer, not an error.
func (s *PlannerService) NextAlarm(ctx context.Context, now time.Time) (*models.AlarmPlan, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	custom, err := s.custom.List(ctx)
	if err != nil {
		return nil, err
	}
	reminders, err := s.reminders.List(ctx)
	if err != nil {
		return nil, err
	}

	schedule, snapshot := s.timetable.Weekly(ctx, settings.GroupNumber, custom, now)
	plan := &models.AlarmPlan{GeneratedAt: now, ScheduleSource: snapshot.Source}

	next := s.resolver.FindNext(schedule, reminders, now)
	if next == nil {
		s.logger.Debug("no upcoming events", zap.Time("now", now))
		return plan, nil
	}
	plan.NextEvent = next

	route, err := s.route(ctx, plan, schedule, *settings)
	if err != nil {
		s.logger.Warn("route estimate failed, using default travel time", zap.Error(err))
	}
	plan.Route = route

	plan.Alarm = s.calculator.Calculate(next, *settings, route, now)
	if plan.Alarm != nil {
		s.metrics.RecordAlarm(next.Kind, plan.Alarm.Breakdown.Total)
	}
	return plan, nil
}

// route resolves the destination for the plan's event and estimates travel.
// A reminder's own route duration bypasses estimation.
func (s *PlannerService) route(ctx context.Context, plan *models.AlarmPlan, schedule models.WeeklySchedule, settings models.Settings) (*models.RouteResult, error) {
	next := plan.NextEvent

	if next.Kind == models.EventReminder {
		plan.Destination = next.Address
		if next.RouteDuration != nil && *next.RouteDuration > 0 {
			return &models.RouteResult{
				Origin:      settings.HomeAddress,
				Destination: next.Address,
				Duration:    *next.RouteDuration,
				Mode:        string(settings.TransportType),
				Steps:       []models.RouteStep{},
			}, nil
		}
	} else {
		code, ok := s.campuses.ExtractCampusCode(next.Room)
		if !ok {
			code, ok = s.campuses.GetNextCampus(schedule[next.DayNumber], next.StartsAt)
		}
		if ok {
			plan.CampusCode = code
			plan.Destination, _ = GetCampusAddress(code, settings.CampusAddresses)
		}
	}

	if plan.Destination == "" && settings.CustomRouteDuration == nil {
		return nil, nil
	}
	return s.routes.Estimate(ctx, settings, plan.Destination, next.StartsAt)
}
