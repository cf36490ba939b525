package service

import (
	"regexp"
	"strings"
	"time"

	"github.com/noah-isme/wakeup-planner-api/internal/models"
)

var campusPrefix = regexp.MustCompile(`^(\p{L}{2})-`)

// CampusResolver maps room strings to configured campus addresses.
type CampusResolver struct {
	calendar models.AcademicCalendar
}

// NewCampusResolver builds a resolver over the calendar's campus codes.
func NewCampusResolver(calendar models.AcademicCalendar) *CampusResolver {
	return &CampusResolver{calendar: calendar}
}

// ExtractCampusCode returns the lowercase two-letter building prefix of a room
// such as "пр-123" or "<b>ПК-401</b>". Unknown prefixes report false.
func (r *CampusResolver) ExtractCampusCode(room string) (string, bool) {
	cleaned := strings.ToLower(stripTags(room))
	m := campusPrefix.FindStringSubmatch(cleaned)
	if m == nil || !r.calendar.IsCampusCode(m[1]) {
		return "", false
	}
	return m[1], true
}

// GetCampusAddress looks up the address configured for code. Blank addresses
// count as missing.
func GetCampusAddress(code string, campuses []models.CampusAddress) (string, bool) {
	for _, campus := range campuses {
		if campus.Code != code {
			continue
		}
		address := strings.TrimSpace(campus.Address)
		return address, address != ""
	}
	return "", false
}

// GetNextCampus returns the campus of the first lesson whose slot has not yet
// ended at now, falling back to the first lesson of the day with a known campus.
func (r *CampusResolver) GetNextCampus(day []models.Lesson, now time.Time) (string, bool) {
	nowMinute := minuteOfDay(now)
	for _, lesson := range day {
		if ParseTimeToMinutes(lesson.Time)+r.calendar.SlotMinutes() < nowMinute {
			continue
		}
		if code, ok := r.ExtractCampusCode(lesson.Room); ok {
			return code, true
		}
	}
	for _, lesson := range day {
		if code, ok := r.ExtractCampusCode(lesson.Room); ok {
			return code, true
		}
	}
	return "", false
}
