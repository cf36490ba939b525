package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/wakeup-planner-api/internal/models"
)

const (
	feedUserAgent = "wakeup-planner/1.0"
	// maxFeedBytes caps a timetable response; real feeds are well under 1 MiB.
	maxFeedBytes = 8 << 20
)

// ErrFeedNotConfigured is returned when no feed URL was provided.
var ErrFeedNotConfigured = errors.New("timetable feed url not configured")

type feedEnvelope struct {
	Status  string                                  `json:"status"`
	Message string                                  `json:"message"`
	Grid    map[string]map[string][]json.RawMessage `json:"grid"`
}

// TimetableFeedRepository downloads a group's raw timetable over HTTP.
type TimetableFeedRepository struct {
	baseURL string
	referer string
	client  *http.Client
	logger  *zap.Logger
}

// NewTimetableFeedRepository builds a feed client. A zero timeout falls back to 10s.
func NewTimetableFeedRepository(baseURL, referer string, timeout time.Duration, logger *zap.Logger) *TimetableFeedRepository {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimetableFeedRepository{
		baseURL: strings.TrimSpace(baseURL),
		referer: referer,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Fetch retrieves the timetable for group.
func (r *TimetableFeedRepository) Fetch(ctx context.Context, group string) (*models.RawTimetable, error) {
	if r.baseURL == "" {
		return nil, ErrFeedNotConfigured
	}

	endpoint, err := url.Parse(r.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse feed url: %w", err)
	}
	query := endpoint.Query()
	query.Set("group", group)
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", feedUserAgent)
	if r.referer != "" {
		req.Header.Set("Referer", r.referer)
	}

	start := time.Now()
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch timetable for %s: %w", group, err)
	}
	defer resp.Body.Close()

	r.logger.Debug("timetable feed responded",
		zap.String("group", group),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("timetable feed returned status %d", resp.StatusCode)
	}

	var envelope feedEnvelope
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxFeedBytes)).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode timetable for %s: %w", group, err)
	}
	if strings.EqualFold(envelope.Status, "error") {
		return nil, fmt.Errorf("timetable feed error: %s", envelope.Message)
	}

	return &models.RawTimetable{Grid: envelope.Grid}, nil
}
