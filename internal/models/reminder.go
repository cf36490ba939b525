package models

import "time"

// ReminderType classifies a one-off reminder.
type ReminderType string

const (
	ReminderMeeting     ReminderType = "meeting"
	ReminderEvent       ReminderType = "event"
	ReminderAppointment ReminderType = "appointment"
)

// Reminder is a single absolute appointment; it never recurs.
type Reminder struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Address       string       `json:"address"`
	Datetime      time.Time    `json:"datetime"`
	Type          ReminderType `json:"type"`
	RouteDuration *int         `json:"routeDuration"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}
