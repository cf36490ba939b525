package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/noah-isme/wakeup-planner-api/internal/models"
)

// Placeholders rendered when the feed omits a field.
const (
	DefaultSubject   = "Неизвестный предмет"
	DefaultType      = "Занятие"
	DefaultProfessor = "Преподаватель не указан"
	DefaultRoom      = "Аудитория не указана"
)

// roomRule extracts a room string from one of the feed's alternate fields.
type roomRule struct {
	field   string
	extract func(models.RawLesson) string
}

// defaultRoomRules are tried in order; the short form wins over the HTML long form.
var defaultRoomRules = []roomRule{
	{field: "shortRooms", extract: func(l models.RawLesson) string { return joinNonBlank(l.ShortRooms, stripTags) }},
	{field: "aud", extract: func(l models.RawLesson) string { return stripTags(l.Aud) }},
	{field: "auditoria", extract: func(l models.RawLesson) string { return stripTags(l.Auditoria) }},
	{field: "auditories", extract: func(l models.RawLesson) string {
		titles := make([]string, 0, len(l.Auditories))
		for _, a := range l.Auditories {
			titles = append(titles, a.Title)
		}
		return joinNonBlank(titles, stripTags)
	}},
}

// ScheduleNormalizer turns the raw feed grid into a WeeklySchedule.
type ScheduleNormalizer struct {
	calendar  models.AcademicCalendar
	roomRules []roomRule
}

// NewScheduleNormalizer builds a normalizer over the given calendar.
func NewScheduleNormalizer(calendar models.AcademicCalendar) *ScheduleNormalizer {
	return &ScheduleNormalizer{calendar: calendar, roomRules: defaultRoomRules}
}

// Normalize filters the raw grid to lessons active on now's date, fills
// placeholder fields, merges custom lessons and orders each day by lesson
// number. It never fails: malformed entries are skipped. Inputs are not modified.
func (n *ScheduleNormalizer) Normalize(raw *models.RawTimetable, now time.Time, custom []models.CustomLesson) models.WeeklySchedule {
	schedule := make(models.WeeklySchedule)
	today := dateOnly(now)

	if raw != nil {
		// Keys like "1" and "01" fold into the same day or slot; entries are
		// numbered per folded slot so IDs stay unique.
		consumed := make(map[[2]int]int)
		for _, dayKey := range sortedNumericKeys(mapKeys(raw.Grid)) {
			day, ok := parseDayKey(dayKey)
			if !ok {
				continue
			}
			slots := raw.Grid[dayKey]
			for _, slotKey := range sortedNumericKeys(mapKeys(slots)) {
				slot, _ := strconv.Atoi(strings.TrimSpace(slotKey))
				offset := consumed[[2]int{day, slot}]
				for index, entry := range slots[slotKey] {
					lesson, ok := n.normalizeEntry(entry, day, slot, offset+index, today)
					if !ok {
						continue
					}
					schedule[day] = append(schedule[day], lesson)
				}
				consumed[[2]int{day, slot}] = offset + len(slots[slotKey])
			}
		}
	}

	for _, c := range custom {
		if c.DayNumber < 1 || c.DayNumber > 6 {
			continue
		}
		schedule[c.DayNumber] = append(schedule[c.DayNumber], c.Lesson())
	}

	for day, lessons := range schedule {
		sort.SliceStable(lessons, func(i, j int) bool {
			return lessons[i].LessonNumber < lessons[j].LessonNumber
		})
		schedule[day] = lessons
	}

	return schedule
}

func (n *ScheduleNormalizer) normalizeEntry(entry json.RawMessage, day, slot, index int, today time.Time) (models.Lesson, bool) {
	trimmed := bytes.TrimSpace(entry)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return models.Lesson{}, false
	}
	var raw models.RawLesson
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return models.Lesson{}, false
	}

	from := parseFeedDate(raw.Df, today.Location())
	to := parseFeedDate(raw.Dt, today.Location())
	if from != nil && today.Before(*from) {
		return models.Lesson{}, false
	}
	if to != nil && today.After(*to) {
		return models.Lesson{}, false
	}

	slotTime, _ := n.calendar.SlotRange(slot)

	return models.Lesson{
		ID:           fmt.Sprintf("%d-%d-%d", day, slot, index),
		Time:         slotTime,
		Subject:      orDefault(raw.Sbj, DefaultSubject),
		Type:         orDefault(raw.Type, DefaultType),
		Room:         orDefault(n.room(raw), DefaultRoom),
		Professor:    orDefault(raw.Teacher, DefaultProfessor),
		LessonNumber: slot,
		DateFrom:     from,
		DateTo:       to,
	}, true
}

func (n *ScheduleNormalizer) room(raw models.RawLesson) string {
	for _, rule := range n.roomRules {
		if room := rule.extract(raw); room != "" {
			return room
		}
	}
	return ""
}

// parseDayKey accepts the feed's academic days 1..6.
func parseDayKey(key string) (int, bool) {
	day, err := strconv.Atoi(strings.TrimSpace(key))
	if err != nil || day < 1 || day > 6 {
		return 0, false
	}
	return day, true
}

func mapKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	return keys
}

// sortedNumericKeys orders numeric keys ascending, ties broken by the raw
// key, and drops the rest.
func sortedNumericKeys(keys []string) []string {
	type numbered struct {
		raw string
		n   int
	}
	parsed := make([]numbered, 0, len(keys))
	for _, key := range keys {
		if n, err := strconv.Atoi(strings.TrimSpace(key)); err == nil {
			parsed = append(parsed, numbered{raw: key, n: n})
		}
	}
	sort.Slice(parsed, func(i, j int) bool {
		if parsed[i].n != parsed[j].n {
			return parsed[i].n < parsed[j].n
		}
		return parsed[i].raw < parsed[j].raw
	})
	out := make([]string, len(parsed))
	for i, p := range parsed {
		out[i] = p.raw
	}
	return out
}

// parseFeedDate reads a "2006-01-02" prefix; anything else means no bound.
func parseFeedDate(raw string, loc *time.Location) *time.Time {
	raw = strings.TrimSpace(raw)
	if len(raw) < len("2006-01-02") {
		return nil
	}
	d, err := time.ParseInLocation("2006-01-02", raw[:10], loc)
	if err != nil {
		return nil
	}
	return &d
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func joinNonBlank(values []string, clean func(string) string) string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if c := clean(v); c != "" {
			out = append(out, c)
		}
	}
	return strings.Join(out, ", ")
}
