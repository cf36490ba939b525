package models

import (
	"encoding/json"
	"time"
)

// RawTimetable mirrors the university feed: day -> slot -> lesson entries.
// Entries stay raw so that malformed items can be skipped one by one.
type RawTimetable struct {
	Grid map[string]map[string][]json.RawMessage `json:"grid"`
}

// RawAuditory is one entry of the long-form room list.
type RawAuditory struct {
	Title string `json:"title"`
	Color string `json:"color,omitempty"`
}

// RawLesson is a single lesson as published by the feed.
type RawLesson struct {
	Sbj        string        `json:"sbj"`
	Type       string        `json:"type"`
	Teacher    string        `json:"teacher"`
	ShortRooms []string      `json:"shortRooms"`
	Auditories []RawAuditory `json:"auditories"`
	Aud        string        `json:"aud"`
	Auditoria  string        `json:"auditoria"`
	Df         string        `json:"df"`
	Dt         string        `json:"dt"`
}

// Timetable sources reported alongside a snapshot.
const (
	TimetableSourceCache = "cache"
	TimetableSourceStore = "store"
	TimetableSourceFeed  = "feed"
	TimetableSourceStale = "stale"
	TimetableSourceEmpty = "empty"
)

// TimetableSnapshot is a fetched feed stamped with its group and fetch time.
type TimetableSnapshot struct {
	Group     string       `json:"group"`
	Timetable RawTimetable `json:"timetable"`
	FetchedAt time.Time    `json:"fetchedAt"`
	Source    string       `json:"source,omitempty"`
}
