package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/wakeup-planner-api/internal/models"
)

func TestNormalizeWeekday(t *testing.T) {
	assert.Equal(t, 7, NormalizeWeekday(time.Sunday))
	assert.Equal(t, 1, NormalizeWeekday(time.Monday))
	assert.Equal(t, 6, NormalizeWeekday(time.Saturday))
}

func TestDaysForward(t *testing.T) {
	assert.Equal(t, 5, DaysForward(3, 5))
	assert.Equal(t, 7, DaysForward(3, 3))
	assert.Equal(t, 1, DaysForward(1, 7))
	assert.Equal(t, 6, DaysForward(6, 7))

	for from := 1; from <= 7; from++ {
		for target := 1; target <= 7; target++ {
			got := DaysForward(target, from)
			assert.GreaterOrEqual(t, got, 1)
			assert.LessOrEqual(t, got, 7)
		}
	}
}

func TestRelativeDayLabel(t *testing.T) {
	cal := models.DefaultAcademicCalendar()
	// Wednesday
	now := time.Date(2025, 1, 15, 22, 0, 0, 0, time.UTC)

	assert.Equal(t, models.LabelToday, relativeDayLabel(cal, now, now.Add(time.Hour)))
	assert.Equal(t, models.LabelTomorrow, relativeDayLabel(cal, now, now.Add(3*time.Hour)))
	assert.Equal(t, "Пятница", relativeDayLabel(cal, now, now.AddDate(0, 0, 2)))
	assert.Equal(t, "22.01.2025", relativeDayLabel(cal, now, now.AddDate(0, 0, 7)))
}
