package models

import "time"

// Keys of the planner's key-value store.
const (
	StoreKeySettings      = "settings"
	StoreKeyScheduleCache = "schedule_cache"
	StoreKeyLastRoute     = "last_route"
	StoreKeyReminders     = "reminders"
	StoreKeyCustomLessons = "custom_lessons"
)

// StoreEntry is one JSON document in the key-value store.
type StoreEntry struct {
	Key       string    `db:"store_key" json:"key"`
	Value     string    `db:"value" json:"value"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
