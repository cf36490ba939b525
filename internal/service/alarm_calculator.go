package service

import (
	"time"

	"github.com/noah-isme/wakeup-planner-api/internal/models"
)

// DefaultTravelMinutes is assumed when no route estimate is available.
const DefaultTravelMinutes = 30

// AlarmCalculator derives the wake-up time for an event.
type AlarmCalculator struct {
	calendar models.AcademicCalendar
}

// NewAlarmCalculator builds a calculator over the given calendar.
func NewAlarmCalculator(calendar models.AcademicCalendar) *AlarmCalculator {
	return &AlarmCalculator{calendar: calendar}
}

// Calculate subtracts routine, travel and buffer minutes from the event start.
// It returns nil when there is no event or its time cannot be parsed.
//
// The start is first placed on now's date. Events on a later day are then
// moved to their own date, keeping the computed offset, so an alarm for
// tomorrow's class never lands in today's past or today's future.
func (c *AlarmCalculator) Calculate(next *models.NextEvent, settings models.Settings, route *models.RouteResult, now time.Time) *models.AlarmResult {
	if next == nil {
		return nil
	}
	classStart, ok := ParseTimeToDate(next.Time, now)
	if !ok {
		return nil
	}

	breakdown := Breakdown(settings, route)
	offset := time.Duration(breakdown.Total) * time.Minute
	alarm := classStart.Add(-offset)

	if next.Date != models.LabelToday {
		eventStart, ok := ParseTimeToDate(next.Time, c.eventDate(next, now))
		if ok {
			alarm = eventStart.Add(-offset)
		}
	}

	return &models.AlarmResult{
		Time:      alarm.Format("15:04"),
		Date:      relativeDayLabel(c.calendar, now, alarm),
		FullDate:  alarm,
		ClassTime: next.Time,
		ClassName: next.Title,
		ClassType: next.Type,
		Breakdown: breakdown,
	}
}

// eventDate resolves the calendar day an event falls on.
func (c *AlarmCalculator) eventDate(next *models.NextEvent, now time.Time) time.Time {
	if !next.StartsAt.IsZero() {
		return next.StartsAt.In(now.Location())
	}
	return now.AddDate(0, 0, DaysForward(next.DayNumber, NormalizeWeekday(now.Weekday())))
}

// Breakdown itemises the offset: routine + (route duration, 30 when unknown,
// plus traffic surcharge) + extra buffer.
func Breakdown(settings models.Settings, route *models.RouteResult) models.AlarmBreakdown {
	travel := DefaultTravelMinutes
	if route != nil && route.Duration > 0 {
		travel = route.Duration
	}
	if route != nil && route.TrafficInfo != nil {
		travel += route.TrafficInfo.AdditionalTime
	}
	return models.AlarmBreakdown{
		MorningRoutine: settings.MorningRoutine,
		TravelTime:     travel,
		ExtraTime:      settings.ExtraTime,
		Total:          settings.MorningRoutine + travel + settings.ExtraTime,
	}
}
