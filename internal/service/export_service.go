package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/wakeup-planner-api/internal/dto"
	appErrors "github.com/noah-isme/wakeup-planner-api/pkg/errors"
	"github.com/noah-isme/wakeup-planner-api/pkg/export"
)

// Export formats.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

var scheduleHeaders = []string{"День", "Пара", "Время", "Предмет", "Тип", "Аудитория", "Преподаватель"}

type weekRenderer interface {
	Week(ctx context.Context, now time.Time) (*dto.ScheduleResponse, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportResult is a rendered schedule file.
type ExportResult struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ExportService renders the weekly schedule as CSV or PDF.
type ExportService struct {
	schedule weekRenderer
	csv      csvRenderer
	pdf      pdfRenderer
	logger   *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(schedule weekRenderer, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter("")
	}
	return &ExportService{schedule: schedule, csv: csv, pdf: pdf, logger: logger}
}

// Export renders the week containing now in the requested format.
func (s *ExportService) Export(ctx context.Context, format string, now time.Time) (*ExportResult, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = ExportFormatCSV
	}
	if format != ExportFormatCSV && format != ExportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}

	week, err := s.schedule.Week(ctx, now)
	if err != nil {
		return nil, err
	}
	dataset := buildScheduleDataset(week)
	filename := fmt.Sprintf("schedule_%s_%s.%s", sanitizeFilename(week.Group), now.Format("20060102"), format)

	var (
		body        []byte
		contentType string
	)
	switch format {
	case ExportFormatPDF:
		title := "Расписание"
		if week.Group != "" {
			title += " " + week.Group
		}
		body, err = s.pdf.Render(dataset, title)
		contentType = "application/pdf"
	default:
		body, err = s.csv.Render(dataset)
		contentType = "text/csv; charset=utf-8"
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render schedule export")
	}

	s.logger.Info("schedule exported", zap.String("format", format), zap.Int("rows", len(dataset.Rows)))
	return &ExportResult{Filename: filename, ContentType: contentType, Body: body}, nil
}

func buildScheduleDataset(week *dto.ScheduleResponse) export.Dataset {
	dataset := export.Dataset{Headers: scheduleHeaders}
	for _, day := range week.Days {
		for _, lesson := range day.Lessons {
			dataset.Rows = append(dataset.Rows, map[string]string{
				"День":          day.Name,
				"Пара":          strconv.Itoa(lesson.LessonNumber),
				"Время":         lesson.Time,
				"Предмет":       lesson.Subject,
				"Тип":           lesson.Type,
				"Аудитория":     lesson.Room,
				"Преподаватель": lesson.Professor,
			})
		}
	}
	return dataset
}

func sanitizeFilename(raw string) string {
	if raw == "" {
		return "na"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "..", ".", "__", "_")
	result := replacer.Replace(raw)
	if len(result) > 100 {
		return result[:100]
	}
	return result
}
