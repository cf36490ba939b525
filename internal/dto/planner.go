package dto

import (
	"time"

	"github.com/noah-isme/wakeup-planner-api/internal/models"
)

// CampusAddressRequest sets the address used for one campus.
type CampusAddressRequest struct {
	Code    string `json:"code" validate:"required,min=2,max=2"`
	Name    string `json:"name" validate:"max=128"`
	Address string `json:"address" validate:"max=512"`
}

// SettingsRequest replaces the stored settings wholesale.
type SettingsRequest struct {
	MorningRoutine       int                    `json:"morningRoutine" validate:"min=0,max=480"`
	ExtraTime            int                    `json:"extraTime" validate:"min=0,max=240"`
	HomeAddress          string                 `json:"homeAddress" validate:"max=512"`
	CampusAddresses      []CampusAddressRequest `json:"campusAddresses" validate:"dive"`
	TransportType        string                 `json:"transportType" validate:"required,oneof=public car walk"`
	GroupNumber          string                 `json:"groupNumber" validate:"max=32"`
	WeatherNotifications bool                   `json:"weatherNotifications"`
	TrafficNotifications bool                   `json:"trafficNotifications"`
	CustomRouteDuration  *int                   `json:"customRouteDuration" validate:"omitempty,min=1,max=600"`
}

// ReminderRequest creates or replaces a reminder.
type ReminderRequest struct {
	Title         string    `json:"title" validate:"required,max=200"`
	Address       string    `json:"address" validate:"max=512"`
	Datetime      time.Time `json:"datetime" validate:"required"`
	Type          string    `json:"type" validate:"required,oneof=meeting event appointment"`
	RouteDuration *int      `json:"routeDuration" validate:"omitempty,min=1,max=600"`
}

// CustomLessonRequest adds a user-defined lesson to the week.
type CustomLessonRequest struct {
	DayNumber    int    `json:"dayNumber" validate:"required,min=1,max=6"`
	LessonNumber int    `json:"lessonNumber" validate:"required,min=1,max=7"`
	Time         string `json:"time" validate:"max=32"`
	Subject      string `json:"subject" validate:"required,max=200"`
	Type         string `json:"type" validate:"max=64"`
	Room         string `json:"room" validate:"max=128"`
	Professor    string `json:"professor" validate:"max=128"`
}

// ScheduleDay is one weekday of the rendered schedule.
type ScheduleDay struct {
	DayNumber int             `json:"dayNumber"`
	Name      string          `json:"name"`
	Lessons   []models.Lesson `json:"lessons"`
}

// ScheduleResponse is the normalised week plus where it came from.
type ScheduleResponse struct {
	Group     string        `json:"group"`
	Source    string        `json:"source"`
	FetchedAt *time.Time    `json:"fetchedAt,omitempty"`
	Days      []ScheduleDay `json:"days"`
}

// RefreshResponse reports whether a refresh job was queued.
type RefreshResponse struct {
	Group  string `json:"group"`
	Queued bool   `json:"queued"`
}
