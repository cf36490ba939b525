package service

import (
	"regexp"
	"strconv"
	"time"
)

var clockPattern = regexp.MustCompile(`(\d{1,2}):(\d{2})`)

// firstClock finds the first valid H:MM or HH:MM anywhere in s. Impossible
// clocks such as 25:00 or 99:99 are skipped and the next valid one is used.
func firstClock(s string) (hour, minute int, ok bool) {
	for _, m := range clockPattern.FindAllStringSubmatch(s, -1) {
		h, _ := strconv.Atoi(m[1])
		mm, _ := strconv.Atoi(m[2])
		if h < 24 && mm < 60 {
			return h, mm, true
		}
	}
	return 0, 0, false
}

// ParseTimeToMinutes returns the minutes since midnight of the first clock time
// in s. It returns 0 when s holds no time; callers treat that as the earliest
// possible start, not as a failure.
func ParseTimeToMinutes(s string) int {
	h, m, ok := firstClock(s)
	if !ok {
		return 0
	}
	return h*60 + m
}

// ParseTimeToDate places the first clock time in s on base's calendar day,
// zeroing seconds. Unlike ParseTimeToMinutes it reports a missing time.
func ParseTimeToDate(s string, base time.Time) (time.Time, bool) {
	h, m, ok := firstClock(s)
	if !ok {
		return time.Time{}, false
	}
	return time.Date(base.Year(), base.Month(), base.Day(), h, m, 0, 0, base.Location()), true
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
