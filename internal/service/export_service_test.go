package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/wakeup-planner-api/internal/dto"
	"github.com/noah-isme/wakeup-planner-api/internal/models"
	appErrors "github.com/noah-isme/wakeup-planner-api/pkg/errors"
	"github.com/noah-isme/wakeup-planner-api/pkg/export"
)

type stubWeek struct {
	week *dto.ScheduleResponse
}

func (s stubWeek) Week(ctx context.Context, now time.Time) (*dto.ScheduleResponse, error) {
	return s.week, nil
}

type recordingPDF struct {
	title string
	rows  int
}

func (r *recordingPDF) Render(data export.Dataset, title string) ([]byte, error) {
	r.title = title
	r.rows = len(data.Rows)
	return []byte("%PDF-1.3"), nil
}

func sampleScheduleResponse() *dto.ScheduleResponse {
	return &dto.ScheduleResponse{
		Group: "231-324",
		Days: []dto.ScheduleDay{{
			DayNumber: 1,
			Name:      "Понедельник",
			Lessons: []models.Lesson{
				{LessonNumber: 1, Time: "09:00-10:30", Subject: "Математика", Type: "Лекция", Room: "пр-1203", Professor: "Петрова А.А."},
				{LessonNumber: 3, Time: "12:20-13:50", Subject: "Физика", Type: "Практика", Room: "пк-401", Professor: "Иванов И.И."},
			},
		}},
	}
}

func TestExportServiceCSV(t *testing.T) {
	svc := NewExportService(stubWeek{week: sampleScheduleResponse()}, nil, &recordingPDF{}, nil)

	result, err := svc.Export(context.Background(), "", monday(8, 0))
	require.NoError(t, err)
	assert.Equal(t, "schedule_231-324_20250106.csv", result.Filename)
	assert.Equal(t, "text/csv; charset=utf-8", result.ContentType)

	lines := strings.Split(strings.TrimSpace(strings.TrimPrefix(string(result.Body), "\ufeff")), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "День,Пара,Время,Предмет,Тип,Аудитория,Преподаватель", lines[0])
	assert.Equal(t, "Понедельник,1,09:00-10:30,Математика,Лекция,пр-1203,Петрова А.А.", lines[1])
}

func TestExportServicePDF(t *testing.T) {
	pdf := &recordingPDF{}
	svc := NewExportService(stubWeek{week: sampleScheduleResponse()}, export.NewCSVExporter(), pdf, nil)

	result, err := svc.Export(context.Background(), "PDF", monday(8, 0))
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.Equal(t, "Расписание 231-324", pdf.title)
	assert.Equal(t, 2, pdf.rows)
}

func TestExportServiceRejectsUnknownFormat(t *testing.T) {
	svc := NewExportService(stubWeek{week: sampleScheduleResponse()}, nil, nil, nil)

	_, err := svc.Export(context.Background(), "xlsx", monday(8, 0))
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}
