package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/wakeup-planner-api/internal/dto"
	"github.com/noah-isme/wakeup-planner-api/internal/models"
	appErrors "github.com/noah-isme/wakeup-planner-api/pkg/errors"
	"github.com/noah-isme/wakeup-planner-api/pkg/jobs"
)

// JobTypeTimetableRefresh identifies background feed refreshes.
const JobTypeTimetableRefresh = "timetable_refresh"

type jobEnqueuer interface {
	Enqueue(job jobs.Job) (bool, error)
}

// ScheduleService renders the week for the configured group.
type ScheduleService struct {
	settings  settingsReader
	custom    customLessonLister
	timetable weeklyScheduleSource
	calendar  models.AcademicCalendar
	queue     jobEnqueuer
	logger    *zap.Logger
}

// NewScheduleService constructs the service. queue may be nil, which disables refresh requests.
func NewScheduleService(settings settingsReader, custom customLessonLister, timetable weeklyScheduleSource, calendar models.AcademicCalendar, queue jobEnqueuer, logger *zap.Logger) *ScheduleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{settings: settings, custom: custom, timetable: timetable, calendar: calendar, queue: queue, logger: logger}
}

// Week returns the normalised schedule for now, one entry per non-empty day.
func (s *ScheduleService) Week(ctx context.Context, now time.Time) (*dto.ScheduleResponse, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	custom, err := s.custom.List(ctx)
	if err != nil {
		return nil, err
	}

	schedule, snapshot := s.timetable.Weekly(ctx, settings.GroupNumber, custom, now)

	days := make([]int, 0, len(schedule))
	for day := range schedule {
		days = append(days, day)
	}
	sort.Ints(days)

	resp := &dto.ScheduleResponse{
		Group:  snapshot.Group,
		Source: snapshot.Source,
		Days:   make([]dto.ScheduleDay, 0, len(days)),
	}
	if !snapshot.FetchedAt.IsZero() {
		fetchedAt := snapshot.FetchedAt
		resp.FetchedAt = &fetchedAt
	}
	for _, day := range days {
		resp.Days = append(resp.Days, dto.ScheduleDay{
			DayNumber: day,
			Name:      s.calendar.WeekdayName(day),
			Lessons:   schedule[day],
		})
	}
	return resp, nil
}

// RequestRefresh queues a feed refresh for the configured group. Concurrent
// requests for the same group collapse into one job.
func (s *ScheduleService) RequestRefresh(ctx context.Context) (*dto.RefreshResponse, error) {
	if s.queue == nil {
		return nil, appErrors.Clone(appErrors.ErrUnavailable, "background refresh is disabled")
	}
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings.GroupNumber == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "group number is not configured")
	}

	queued, err := s.queue.Enqueue(jobs.Job{
		ID:      fmt.Sprintf("refresh-%s-%d", settings.GroupNumber, time.Now().UnixNano()),
		Type:    JobTypeTimetableRefresh,
		Key:     "group:" + settings.GroupNumber,
		Payload: settings.GroupNumber,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "failed to queue refresh")
	}
	s.logger.Info("timetable refresh requested", zap.String("group", settings.GroupNumber), zap.Bool("queued", queued))
	return &dto.RefreshResponse{Group: settings.GroupNumber, Queued: queued}, nil
}
