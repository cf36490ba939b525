package service

import (
	"time"

	"github.com/noah-isme/wakeup-planner-api/internal/models"
)

// NormalizeWeekday converts a calendar weekday (Sunday=0) to the app's
// numbering where Monday=1 and Sunday=7.
func NormalizeWeekday(day time.Weekday) int {
	if day == time.Sunday {
		return 7
	}
	return int(day)
}

// DaysForward returns how many days ahead target falls after from. The result
// is always in 1..7: the same weekday means next week.
func DaysForward(target, from int) int {
	diff := (target - from) % 7
	if diff <= 0 {
		diff += 7
	}
	return diff
}

// dateOnly truncates t to midnight in its own location.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// calendarDaysBetween counts midnights from a to b, ignoring DST shifts.
func calendarDaysBetween(a, b time.Time) int {
	b = b.In(a.Location())
	from := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

// relativeDayLabel names t relative to now: today, tomorrow, a weekday within
// the coming week, or a dd.mm.yyyy date.
func relativeDayLabel(calendar models.AcademicCalendar, now, t time.Time) string {
	days := calendarDaysBetween(now, t)
	switch {
	case days == 0:
		return models.LabelToday
	case days == 1:
		return models.LabelTomorrow
	case days > 1 && days < 7:
		return calendar.WeekdayName(NormalizeWeekday(t.In(now.Location()).Weekday()))
	default:
		return t.In(now.Location()).Format("02.01.2006")
	}
}
