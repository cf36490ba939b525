package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/wakeup-planner-api/internal/models"
)

// 2025-01-06 is a Monday.
func monday(hour, minute int) time.Time {
	return time.Date(2025, 1, 6, hour, minute, 0, 0, time.UTC)
}

func sampleWeek() models.WeeklySchedule {
	return models.WeeklySchedule{
		1: {{ID: "1-1-0", Time: "09:00-10:30", Subject: "Математика", Type: "Лекция", Room: "пр-1203", LessonNumber: 1}},
		2: {{ID: "2-2-0", Time: "10:40-12:10", Subject: "Физика", Type: "Практика", Room: "пк-401", LessonNumber: 2}},
	}
}

func TestFindNextReturnsTodayLesson(t *testing.T) {
	r := NewNextEventResolver(models.DefaultAcademicCalendar())

	next := r.FindNext(sampleWeek(), nil, monday(8, 0))

	require.NotNil(t, next)
	assert.Equal(t, models.EventClass, next.Kind)
	assert.Equal(t, "Математика", next.Title)
	assert.Equal(t, models.LabelToday, next.Date)
	assert.Equal(t, 1, next.DayNumber)
	assert.Equal(t, monday(9, 0), next.StartsAt)
}

func TestFindNextReturnsTomorrowLesson(t *testing.T) {
	r := NewNextEventResolver(models.DefaultAcademicCalendar())

	next := r.FindNext(sampleWeek(), nil, monday(23, 0))

	require.NotNil(t, next)
	assert.Equal(t, "Физика", next.Title)
	assert.Equal(t, models.LabelTomorrow, next.Date)
	assert.Equal(t, 2, next.DayNumber)
	assert.Equal(t, time.Date(2025, 1, 7, 10, 40, 0, 0, time.UTC), next.StartsAt)
}

func TestFindNextSkipsEmptyDaysAndUsesWeekdayName(t *testing.T) {
	r := NewNextEventResolver(models.DefaultAcademicCalendar())
	schedule := models.WeeklySchedule{
		4: {{Time: "12:20-13:50", Subject: "Химия", LessonNumber: 3}},
	}

	next := r.FindNext(schedule, nil, monday(10, 0))

	require.NotNil(t, next)
	assert.Equal(t, "Четверг", next.Date)
	assert.Equal(t, 4, next.DayNumber)
	assert.Equal(t, time.Date(2025, 1, 9, 12, 20, 0, 0, time.UTC), next.StartsAt)
}

func TestFindNextWrapsToSameWeekdayNextWeek(t *testing.T) {
	r := NewNextEventResolver(models.DefaultAcademicCalendar())
	schedule := models.WeeklySchedule{
		1: {{Time: "09:00-10:30", Subject: "Математика", LessonNumber: 1}},
	}

	next := r.FindNext(schedule, nil, monday(12, 0))

	require.NotNil(t, next)
	assert.Equal(t, "Понедельник", next.Date)
	assert.Equal(t, time.Date(2025, 1, 13, 9, 0, 0, 0, time.UTC), next.StartsAt)
}

func TestFindNextFromSundayLooksAtMonday(t *testing.T) {
	r := NewNextEventResolver(models.DefaultAcademicCalendar())
	sunday := time.Date(2025, 1, 5, 20, 0, 0, 0, time.UTC)

	next := r.FindNext(sampleWeek(), nil, sunday)

	require.NotNil(t, next)
	assert.Equal(t, models.LabelTomorrow, next.Date)
	assert.Equal(t, 1, next.DayNumber)
}

func TestFindNextFromSaturdayNamesMonday(t *testing.T) {
	r := NewNextEventResolver(models.DefaultAcademicCalendar())
	saturday := time.Date(2025, 1, 11, 22, 0, 0, 0, time.UTC)

	next := r.FindNext(sampleWeek(), nil, saturday)

	require.NotNil(t, next)
	assert.Equal(t, 1, next.DayNumber)
	assert.Equal(t, "Понедельник", next.Date)
	assert.Equal(t, time.Date(2025, 1, 13, 9, 0, 0, 0, time.UTC), next.StartsAt)
}

func TestFindNextPrefersEarlierReminder(t *testing.T) {
	r := NewNextEventResolver(models.DefaultAcademicCalendar())
	duration := 25
	reminders := []models.Reminder{
		{ID: "past", Title: "Прошло", Datetime: monday(7, 0), Type: models.ReminderEvent},
		{ID: "late", Title: "Позже", Datetime: monday(18, 0), Type: models.ReminderEvent},
		{ID: "soon", Title: "Врач", Address: "ул. Ленина, 1", Datetime: monday(8, 30), Type: models.ReminderAppointment, RouteDuration: &duration},
	}

	next := r.FindNext(sampleWeek(), reminders, monday(8, 0))

	require.NotNil(t, next)
	assert.Equal(t, models.EventReminder, next.Kind)
	assert.Equal(t, "soon", next.ReminderID)
	assert.Equal(t, "08:30", next.Time)
	assert.Equal(t, models.LabelToday, next.Date)
	assert.Equal(t, "appointment", next.Type)
	assert.Equal(t, "ул. Ленина, 1", next.Address)
	require.NotNil(t, next.RouteDuration)
	assert.Equal(t, 25, *next.RouteDuration)
}

func TestFindNextTieFavoursClass(t *testing.T) {
	r := NewNextEventResolver(models.DefaultAcademicCalendar())
	reminders := []models.Reminder{{ID: "same", Title: "Встреча", Datetime: monday(9, 0), Type: models.ReminderMeeting}}

	next := r.FindNext(sampleWeek(), reminders, monday(8, 0))

	require.NotNil(t, next)
	assert.Equal(t, models.EventClass, next.Kind)
}

func TestFindNextReminderOnlyWhenNoClasses(t *testing.T) {
	r := NewNextEventResolver(models.DefaultAcademicCalendar())
	reminders := []models.Reminder{{ID: "r1", Title: "Собеседование", Datetime: monday(8, 0).AddDate(0, 0, 10), Type: models.ReminderMeeting}}

	next := r.FindNext(nil, reminders, monday(8, 0))

	require.NotNil(t, next)
	assert.Equal(t, "r1", next.ReminderID)
	assert.Equal(t, "16.01.2025", next.Date)
}

func TestFindNextReturnsNilWithoutEvents(t *testing.T) {
	r := NewNextEventResolver(models.DefaultAcademicCalendar())
	assert.Nil(t, r.FindNext(models.WeeklySchedule{}, nil, monday(8, 0)))
}
