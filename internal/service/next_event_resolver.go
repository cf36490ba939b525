package service

import (
	"time"

	"github.com/noah-isme/wakeup-planner-api/internal/models"
)

// maxLookaheadDays bounds the class search to one full week ahead.
const maxLookaheadDays = 7

// NextEventResolver picks the nearest upcoming class or reminder.
type NextEventResolver struct {
	calendar models.AcademicCalendar
}

// NewNextEventResolver builds a resolver over the given calendar.
func NewNextEventResolver(calendar models.AcademicCalendar) *NextEventResolver {
	return &NextEventResolver{calendar: calendar}
}

// FindNext returns the earliest of the next class and the next reminder after
// now, or nil when there is neither. A class and a reminder starting at the
// same instant resolve to the class.
func (r *NextEventResolver) FindNext(schedule models.WeeklySchedule, reminders []models.Reminder, now time.Time) *models.NextEvent {
	class := r.nextClass(schedule, now)
	reminder := r.nextReminder(reminders, now)

	switch {
	case class == nil:
		return reminder
	case reminder == nil:
		return class
	case reminder.StartsAt.Before(class.StartsAt):
		return reminder
	default:
		return class
	}
}

func (r *NextEventResolver) nextClass(schedule models.WeeklySchedule, now time.Time) *models.NextEvent {
	today := NormalizeWeekday(now.Weekday())
	nowMinute := minuteOfDay(now)

	for _, lesson := range schedule[today] {
		if ParseTimeToMinutes(lesson.Time) > nowMinute {
			return r.classEvent(lesson, today, now, models.LabelToday)
		}
	}

	for offset := 1; offset <= maxLookaheadDays; offset++ {
		date := now.AddDate(0, 0, offset)
		day := NormalizeWeekday(date.Weekday())
		lessons := schedule[day]
		if len(lessons) == 0 {
			continue
		}
		label := r.calendar.WeekdayName(day)
		if offset == 1 {
			label = models.LabelTomorrow
		}
		return r.classEvent(lessons[0], day, date, label)
	}

	return nil
}

func (r *NextEventResolver) classEvent(lesson models.Lesson, day int, date time.Time, label string) *models.NextEvent {
	startsAt, ok := ParseTimeToDate(lesson.Time, date)
	if !ok {
		startsAt = dateOnly(date)
	}
	return &models.NextEvent{
		Kind:         models.EventClass,
		Time:         lesson.Time,
		Date:         label,
		DayNumber:    day,
		StartsAt:     startsAt,
		Title:        lesson.Subject,
		Type:         lesson.Type,
		Room:         lesson.Room,
		Professor:    lesson.Professor,
		LessonID:     lesson.ID,
		LessonNumber: lesson.LessonNumber,
	}
}

func (r *NextEventResolver) nextReminder(reminders []models.Reminder, now time.Time) *models.NextEvent {
	var best *models.Reminder
	for i := range reminders {
		candidate := &reminders[i]
		if !candidate.Datetime.After(now) {
			continue
		}
		if best == nil || candidate.Datetime.Before(best.Datetime) {
			best = candidate
		}
	}
	if best == nil {
		return nil
	}

	local := best.Datetime.In(now.Location())
	return &models.NextEvent{
		Kind:          models.EventReminder,
		Time:          local.Format("15:04"),
		Date:          relativeDayLabel(r.calendar, now, local),
		DayNumber:     NormalizeWeekday(local.Weekday()),
		StartsAt:      local,
		Title:         best.Title,
		Type:          string(best.Type),
		Address:       best.Address,
		ReminderID:    best.ID,
		RouteDuration: best.RouteDuration,
	}
}
