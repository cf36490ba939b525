package models

import "time"

// Lesson is one normalised class occurrence within a weekday.
type Lesson struct {
	ID           string     `json:"id"`
	Time         string     `json:"time"`
	Subject      string     `json:"subject"`
	Type         string     `json:"type"`
	Room         string     `json:"room"`
	Professor    string     `json:"professor"`
	LessonNumber int        `json:"lessonNumber"`
	DateFrom     *time.Time `json:"dateFrom,omitempty"`
	DateTo       *time.Time `json:"dateTo,omitempty"`
	Custom       bool       `json:"custom,omitempty"`
}

// WeeklySchedule maps an app weekday (1=Monday..6=Saturday) to its lessons
// ordered by lesson number. Absent keys mean no classes.
type WeeklySchedule map[int][]Lesson

// CustomLesson is a user-defined lesson merged into the weekly schedule at read time.
type CustomLesson struct {
	ID           string    `json:"id"`
	DayNumber    int       `json:"dayNumber"`
	LessonNumber int       `json:"lessonNumber"`
	Time         string    `json:"time"`
	Subject      string    `json:"subject"`
	Type         string    `json:"type"`
	Room         string    `json:"room"`
	Professor    string    `json:"professor"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Lesson converts the custom entry into its schedule form.
func (c CustomLesson) Lesson() Lesson {
	return Lesson{
		ID:           c.ID,
		Time:         c.Time,
		Subject:      c.Subject,
		Type:         c.Type,
		Room:         c.Room,
		Professor:    c.Professor,
		LessonNumber: c.LessonNumber,
		Custom:       true,
	}
}
