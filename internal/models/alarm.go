package models

import "time"

// EventKind distinguishes timetable classes from personal reminders.
type EventKind string

const (
	EventClass    EventKind = "class"
	EventReminder EventKind = "reminder"
)

// NextEvent is the nearest upcoming class or reminder.
type NextEvent struct {
	Kind          EventKind `json:"kind"`
	Time          string    `json:"time"`
	Date          string    `json:"date"`
	DayNumber     int       `json:"dayNumber"`
	StartsAt      time.Time `json:"startsAt"`
	Title         string    `json:"title"`
	Type          string    `json:"type"`
	Room          string    `json:"room,omitempty"`
	Professor     string    `json:"professor,omitempty"`
	Address       string    `json:"address,omitempty"`
	LessonID      string    `json:"lessonId,omitempty"`
	LessonNumber  int       `json:"lessonNumber,omitempty"`
	ReminderID    string    `json:"reminderId,omitempty"`
	RouteDuration *int      `json:"routeDuration,omitempty"`
}

// AlarmBreakdown itemises the minutes subtracted from the event start.
type AlarmBreakdown struct {
	MorningRoutine int `json:"morningRoutine"`
	TravelTime     int `json:"travelTime"`
	ExtraTime      int `json:"extraTime"`
	Total          int `json:"total"`
}

// AlarmResult is the computed wake-up time. It is derived, never persisted.
type AlarmResult struct {
	Time      string         `json:"time"`
	Date      string         `json:"date"`
	FullDate  time.Time      `json:"fullDate"`
	ClassTime string         `json:"classTime"`
	ClassName string         `json:"className"`
	ClassType string         `json:"classType"`
	Breakdown AlarmBreakdown `json:"breakdown"`
}

// AlarmPlan is the full pipeline output: the event, the route used and the alarm.
type AlarmPlan struct {
	GeneratedAt    time.Time    `json:"generatedAt"`
	NextEvent      *NextEvent   `json:"nextEvent"`
	CampusCode     string       `json:"campusCode,omitempty"`
	Destination    string       `json:"destination,omitempty"`
	Route          *RouteResult `json:"route,omitempty"`
	Alarm          *AlarmResult `json:"alarm"`
	ScheduleSource string       `json:"scheduleSource,omitempty"`
}
