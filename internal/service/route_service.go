package service

import (
	"context"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/wakeup-planner-api/internal/models"
)

// RouteProvider produces a travel estimate between two addresses.
type RouteProvider interface {
	Estimate(ctx context.Context, req models.RouteRequest) (*models.RouteResult, error)
}

type modeProfile struct {
	minutes   int
	speedKmh  float64
	stepLabel string
}

var modeProfiles = map[models.TransportType]modeProfile{
	models.TransportPublic: {minutes: 40, speedKmh: 22, stepLabel: "Общественный транспорт"},
	models.TransportCar:    {minutes: 30, speedKmh: 32, stepLabel: "На автомобиле"},
	models.TransportWalk:   {minutes: 60, speedKmh: 5, stepLabel: "Пешком"},
}

// RouteEstimator is the offline provider: fixed per-mode durations with a
// rush-hour surcharge. Its results are never marked as real routes.
type RouteEstimator struct{}

// Estimate implements RouteProvider.
func (RouteEstimator) Estimate(_ context.Context, req models.RouteRequest) (*models.RouteResult, error) {
	profile, ok := modeProfiles[req.Mode]
	if !ok {
		profile = modeProfiles[models.TransportPublic]
		req.Mode = models.TransportPublic
	}
	distance := math.Round(float64(profile.minutes)/60*profile.speedKmh*10) / 10

	return &models.RouteResult{
		Origin:      req.Origin,
		Destination: req.Destination,
		Distance:    distance,
		Duration:    profile.minutes,
		Mode:        string(req.Mode),
		Steps: []models.RouteStep{{
			Instruction: profile.stepLabel,
			Mode:        string(req.Mode),
			Duration:    profile.minutes,
			Distance:    distance,
		}},
		TrafficInfo: trafficFor(req.Mode, req.ArriveBy),
	}, nil
}

// trafficFor models the Moscow rush hours 07:00-10:00 and 17:00-20:00.
func trafficFor(mode models.TransportType, arriveBy time.Time) *models.TrafficInfo {
	if mode == models.TransportWalk || arriveBy.IsZero() {
		return &models.TrafficInfo{Level: models.TrafficLow}
	}
	hour := arriveBy.Hour()
	rush := (hour >= 7 && hour < 10) || (hour >= 17 && hour < 20)
	switch {
	case rush && mode == models.TransportCar:
		return &models.TrafficInfo{Level: models.TrafficHigh, AdditionalTime: 20}
	case rush:
		return &models.TrafficInfo{Level: models.TrafficMedium, AdditionalTime: 10}
	default:
		return &models.TrafficInfo{Level: models.TrafficLow}
	}
}

// RouteService picks the travel estimate used for an alarm. A configured fixed
// duration wins, then a fresh cached route, then the live provider, and
// finally the built-in estimator.
type RouteService struct {
	provider  RouteProvider
	estimator RouteEstimator
	store     *DocumentStore
	logger    *zap.Logger
	clock     Clock
	maxAge    time.Duration
}

// NewRouteService constructs the service. provider may be nil.
func NewRouteService(provider RouteProvider, store *DocumentStore, logger *zap.Logger, clock Clock, maxAge time.Duration) *RouteService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if clock == nil {
		clock = SystemClock(nil)
	}
	if maxAge <= 0 {
		maxAge = 30 * time.Minute
	}
	return &RouteService{provider: provider, store: store, logger: logger, clock: clock, maxAge: maxAge}
}

// Estimate returns the route from the home address to destination arriving by arriveBy.
func (s *RouteService) Estimate(ctx context.Context, settings models.Settings, destination string, arriveBy time.Time) (*models.RouteResult, error) {
	req := models.RouteRequest{
		Origin:      strings.TrimSpace(settings.HomeAddress),
		Destination: strings.TrimSpace(destination),
		Mode:        settings.TransportType,
		ArriveBy:    arriveBy,
	}
	if req.Mode == "" {
		req.Mode = models.TransportPublic
	}

	if settings.CustomRouteDuration != nil && *settings.CustomRouteDuration > 0 {
		return &models.RouteResult{
			Origin:       req.Origin,
			Destination:  req.Destination,
			Duration:     *settings.CustomRouteDuration,
			Mode:         string(req.Mode),
			Steps:        []models.RouteStep{},
			CalculatedAt: s.clock().UTC(),
		}, nil
	}

	if cached := s.cachedRoute(ctx, req); cached != nil {
		return withTraffic(cached, settings.TrafficNotifications), nil
	}

	route := s.live(ctx, req)
	if route == nil {
		route, _ = s.estimator.Estimate(ctx, req)
	}
	if route.Mode == "" {
		route.Mode = string(req.Mode)
	}
	route.Origin = req.Origin
	route.Destination = req.Destination
	route.CalculatedAt = s.clock().UTC()

	if err := s.store.Save(ctx, models.StoreKeyLastRoute, route); err != nil {
		s.logger.Warn("failed to cache route", zap.Error(err))
	}
	return withTraffic(route, settings.TrafficNotifications), nil
}

func (s *RouteService) live(ctx context.Context, req models.RouteRequest) *models.RouteResult {
	if s.provider == nil || req.Origin == "" || req.Destination == "" {
		return nil
	}
	route, err := s.provider.Estimate(ctx, req)
	if err != nil || route == nil || route.Duration <= 0 {
		s.logger.Warn("route provider failed, using estimate", zap.String("destination", req.Destination), zap.Error(err))
		return nil
	}
	route.IsRealRoute = true
	return route
}

func (s *RouteService) cachedRoute(ctx context.Context, req models.RouteRequest) *models.RouteResult {
	var cached models.RouteResult
	_, found, err := s.store.Load(ctx, models.StoreKeyLastRoute, &cached)
	if err != nil || !found {
		return nil
	}
	if cached.Origin != req.Origin || cached.Destination != req.Destination || cached.Mode != string(req.Mode) {
		return nil
	}
	if s.clock().Sub(cached.CalculatedAt) > s.maxAge {
		return nil
	}
	// The surcharge belongs to the arrival time, not to the cached trip.
	cached.TrafficInfo = trafficFor(req.Mode, req.ArriveBy)
	return &cached
}

// withTraffic drops the congestion surcharge when the user turned it off.
func withTraffic(route *models.RouteResult, enabled bool) *models.RouteResult {
	if !enabled {
		route.TrafficInfo = nil
	}
	return route
}
