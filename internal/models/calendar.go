package models

import "sort"

// Relative day labels shown to the user.
const (
	LabelToday    = "Сегодня"
	LabelTomorrow = "Завтра"
)

// SlotTime is the fixed start/end of a numbered academic period.
type SlotTime struct {
	Number int
	Start  string
	End    string
}

// Range renders the slot as "HH:MM-HH:MM".
func (s SlotTime) Range() string {
	return s.Start + "-" + s.End
}

// Campus describes a known building prefix used in room codes.
type Campus struct {
	Code string
	Name string
}

// AcademicCalendar holds the lookup tables used to normalise and resolve a
// timetable. It is a value type with unexported maps; accessors never expose
// the maps themselves, so a calendar cannot be mutated after construction.
type AcademicCalendar struct {
	slots        map[int]SlotTime
	weekdayNames map[int]string
	campuses     map[string]string
	slotMinutes  int
}

// NewAcademicCalendar copies the provided tables into a calendar.
func NewAcademicCalendar(slots []SlotTime, weekdayNames map[int]string, campuses []Campus, slotMinutes int) AcademicCalendar {
	cal := AcademicCalendar{
		slots:        make(map[int]SlotTime, len(slots)),
		weekdayNames: make(map[int]string, len(weekdayNames)),
		campuses:     make(map[string]string, len(campuses)),
		slotMinutes:  slotMinutes,
	}
	for _, slot := range slots {
		cal.slots[slot.Number] = slot
	}
	for day, name := range weekdayNames {
		cal.weekdayNames[day] = name
	}
	for _, campus := range campuses {
		cal.campuses[campus.Code] = campus.Name
	}
	return cal
}

// DefaultAcademicCalendar returns the university's seven 90-minute periods,
// Russian weekday names and campus codes.
func DefaultAcademicCalendar() AcademicCalendar {
	return NewAcademicCalendar(
		[]SlotTime{
			{Number: 1, Start: "09:00", End: "10:30"},
			{Number: 2, Start: "10:40", End: "12:10"},
			{Number: 3, Start: "12:20", End: "13:50"},
			{Number: 4, Start: "14:30", End: "16:00"},
			{Number: 5, Start: "16:10", End: "17:40"},
			{Number: 6, Start: "17:50", End: "19:20"},
			{Number: 7, Start: "19:30", End: "21:00"},
		},
		map[int]string{
			1: "Понедельник",
			2: "Вторник",
			3: "Среда",
			4: "Четверг",
			5: "Пятница",
			6: "Суббота",
			7: "Воскресенье",
		},
		[]Campus{
			{Code: "пр", Name: "Прянишникова"},
			{Code: "пк", Name: "Павла Корчагина"},
			{Code: "ав", Name: "Автозаводская"},
			{Code: "бс", Name: "Большая Семёновская"},
			{Code: "мх", Name: "Михалковская"},
		},
		90,
	)
}

// SlotRange returns the display time for a lesson number.
func (c AcademicCalendar) SlotRange(number int) (string, bool) {
	slot, ok := c.slots[number]
	if !ok {
		return "", false
	}
	return slot.Range(), true
}

// SlotMinutes is the length of one academic period.
func (c AcademicCalendar) SlotMinutes() int {
	return c.slotMinutes
}

// WeekdayName returns the display name for an app weekday (1=Monday..7=Sunday).
func (c AcademicCalendar) WeekdayName(day int) string {
	return c.weekdayNames[day]
}

// IsCampusCode reports whether code is one of the known building prefixes.
func (c AcademicCalendar) IsCampusCode(code string) bool {
	_, ok := c.campuses[code]
	return ok
}

// Campuses lists the known campuses ordered by code.
func (c AcademicCalendar) Campuses() []Campus {
	out := make([]Campus, 0, len(c.campuses))
	for code, name := range c.campuses {
		out = append(out, Campus{Code: code, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
