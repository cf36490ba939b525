package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeToMinutes(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  int
	}{
		{name: "range", input: "09:00-10:30", want: 540},
		{name: "single digit hour", input: "9:05", want: 545},
		{name: "first of several", input: "до 09:05, потом 10:00", want: 545},
		{name: "embedded", input: "начало в 14:30", want: 870},
		{name: "no time", input: "скоро", want: 0},
		{name: "empty", input: "", want: 0},
		{name: "skips invalid clock", input: "99:99 then 10:40", want: 640},
		{name: "skips out of range hour", input: "25:00 or 08:15", want: 495},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseTimeToMinutes(tc.input))
		})
	}
}

func TestParseTimeToDate(t *testing.T) {
	base := time.Date(2025, 3, 10, 7, 42, 31, 0, time.UTC)

	got, ok := ParseTimeToDate("10:40-12:10", base)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 3, 10, 10, 40, 0, 0, time.UTC), got)

	_, ok = ParseTimeToDate("без времени", base)
	assert.False(t, ok)
}

func TestParseTimeToDateKeepsLocation(t *testing.T) {
	loc := time.FixedZone("MSK", 3*60*60)
	base := time.Date(2025, 3, 10, 23, 0, 0, 0, loc)

	got, ok := ParseTimeToDate("09:00", base)
	require.True(t, ok)
	assert.Equal(t, loc, got.Location())
	assert.Equal(t, 10, got.Day())
}
