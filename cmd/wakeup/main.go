// Command wakeup computes the next alarm offline from local JSON files.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/wakeup-planner-api/internal/dto"
	"github.com/noah-isme/wakeup-planner-api/internal/models"
	"github.com/noah-isme/wakeup-planner-api/internal/repository"
	"github.com/noah-isme/wakeup-planner-api/internal/service"
	"github.com/noah-isme/wakeup-planner-api/pkg/config"
	"github.com/noah-isme/wakeup-planner-api/pkg/database"
	"github.com/noah-isme/wakeup-planner-api/pkg/logger"
)

const localGroup = "local"

type options struct {
	feedPath      string
	settingsPath  string
	remindersPath string
	customPath    string
	storePath     string
	at            string
	timezone      string
	travel        int
	logLevel      string
}

func main() {
	var opts options
	flag.StringVar(&opts.feedPath, "feed", "", "Path to a timetable feed JSON file ({\"grid\": ...})")
	flag.StringVar(&opts.settingsPath, "settings", "", "Path to a settings JSON file")
	flag.StringVar(&opts.remindersPath, "reminders", "", "Path to a JSON array of reminders")
	flag.StringVar(&opts.customPath, "custom", "", "Path to a JSON array of custom lessons")
	flag.StringVar(&opts.storePath, "store", ":memory:", "SQLite store path")
	flag.StringVar(&opts.at, "at", "", "Reference time (RFC 3339), defaults to now")
	flag.StringVar(&opts.timezone, "tz", "Europe/Moscow", "Timezone used for lesson times")
	flag.IntVar(&opts.travel, "travel", 0, "Fixed travel time in minutes, overrides route estimation")
	flag.StringVar(&opts.logLevel, "log-level", "warn", "Log level")
	flag.Parse()

	logr, err := logger.New(&config.Config{Env: config.EnvDevelopment, Timezone: opts.timezone, Log: config.LogConfig{Level: opts.logLevel, Format: "console"}})
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	plan, err := run(context.Background(), opts, logr)
	if err != nil {
		logr.Sugar().Fatalw("planning failed", "error", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(plan); err != nil {
		logr.Sugar().Fatalw("failed to write plan", "error", err)
	}
}

func run(ctx context.Context, opts options, logr *zap.Logger) (*models.AlarmPlan, error) {
	loc, err := time.LoadLocation(opts.timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", opts.timezone, err)
	}
	now := time.Now().In(loc)
	if opts.at != "" {
		parsed, err := time.Parse(time.RFC3339, opts.at)
		if err != nil {
			return nil, fmt.Errorf("parse -at: %w", err)
		}
		now = parsed.In(loc)
	}
	clock := func() time.Time { return now }

	db, err := database.NewSQLite(config.DatabaseConfig{SQLitePath: opts.storePath})
	if err != nil {
		return nil, err
	}
	defer db.Close()

	repo := repository.NewStoreRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, err
	}

	calendar := models.DefaultAcademicCalendar()
	validate := validator.New()
	store := service.NewDocumentStore(repo, nil, logr, clock)

	settingsSvc := service.NewSettingsService(store, calendar, validate, logr)
	reminderSvc := service.NewReminderService(store, validate, logr, clock)
	customSvc := service.NewCustomLessonService(store, calendar, validate, logr, clock)

	if err := seedSettings(ctx, settingsSvc, opts); err != nil {
		return nil, err
	}
	if err := seedReminders(ctx, reminderSvc, opts.remindersPath); err != nil {
		return nil, err
	}
	if err := seedCustomLessons(ctx, customSvc, opts.customPath); err != nil {
		return nil, err
	}

	timetableSvc := service.NewTimetableService(fileFeed{path: opts.feedPath}, store, nil, service.NewScheduleNormalizer(calendar), nil, logr, clock, service.TimetableConfig{})
	planner := service.NewPlannerService(calendar, service.PlannerDeps{
		Settings:  settingsSvc,
		Reminders: reminderSvc,
		Custom:    customSvc,
		Timetable: timetableSvc,
		Routes:    service.NewRouteService(nil, store, logr, clock, 0),
		Logger:    logr,
	})
	return planner.NextAlarm(ctx, now)
}

func seedSettings(ctx context.Context, svc *service.SettingsService, opts options) error {
	current, err := svc.Get(ctx)
	if err != nil {
		return err
	}
	req := dto.SettingsRequest{
		MorningRoutine:       current.MorningRoutine,
		ExtraTime:            current.ExtraTime,
		TransportType:        string(current.TransportType),
		TrafficNotifications: current.TrafficNotifications,
	}
	if opts.settingsPath != "" {
		if err := readJSON(opts.settingsPath, &req); err != nil {
			return err
		}
	}
	if req.GroupNumber == "" && opts.feedPath != "" {
		req.GroupNumber = localGroup
	}
	if opts.travel > 0 {
		travel := opts.travel
		req.CustomRouteDuration = &travel
	}
	_, err = svc.Save(ctx, req)
	return err
}

func seedReminders(ctx context.Context, svc *service.ReminderService, path string) error {
	if path == "" {
		return nil
	}
	var reqs []dto.ReminderRequest
	if err := readJSON(path, &reqs); err != nil {
		return err
	}
	for _, req := range reqs {
		if _, err := svc.Create(ctx, req); err != nil {
			return fmt.Errorf("reminder %q: %w", req.Title, err)
		}
	}
	return nil
}

func seedCustomLessons(ctx context.Context, svc *service.CustomLessonService, path string) error {
	if path == "" {
		return nil
	}
	var reqs []dto.CustomLessonRequest
	if err := readJSON(path, &reqs); err != nil {
		return err
	}
	for _, req := range reqs {
		if _, err := svc.Create(ctx, req); err != nil {
			return fmt.Errorf("custom lesson %q: %w", req.Subject, err)
		}
	}
	return nil
}

// fileFeed serves a saved feed response in place of the live timetable.
type fileFeed struct {
	path string
}

func (f fileFeed) Fetch(ctx context.Context, group string) (*models.RawTimetable, error) {
	if f.path == "" {
		return nil, repository.ErrFeedNotConfigured
	}
	var raw models.RawTimetable
	if err := readJSON(f.path, &raw); err != nil {
		return nil, err
	}
	return &raw, nil
}

func readJSON(path string, dest interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
