package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/wakeup-planner-api/internal/models"
)

type stubProvider struct {
	route *models.RouteResult
	err   error
	calls int
}

func (p *stubProvider) Estimate(ctx context.Context, req models.RouteRequest) (*models.RouteResult, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	copied := *p.route
	return &copied, nil
}

func routeSettings(mode models.TransportType) models.Settings {
	return models.Settings{HomeAddress: "ул. Тверская, 1", TransportType: mode, TrafficNotifications: true}
}

func TestRouteEstimatorModes(t *testing.T) {
	ctx := context.Background()
	offPeak := monday(13, 0)

	public, err := RouteEstimator{}.Estimate(ctx, models.RouteRequest{Mode: models.TransportPublic, ArriveBy: offPeak})
	require.NoError(t, err)
	assert.Equal(t, 40, public.Duration)
	assert.Equal(t, models.TrafficLow, public.TrafficInfo.Level)
	assert.False(t, public.IsRealRoute)
	require.Len(t, public.Steps, 1)

	car, err := RouteEstimator{}.Estimate(ctx, models.RouteRequest{Mode: models.TransportCar, ArriveBy: monday(9, 0)})
	require.NoError(t, err)
	assert.Equal(t, 30, car.Duration)
	assert.Equal(t, models.TrafficHigh, car.TrafficInfo.Level)
	assert.Equal(t, 20, car.TrafficInfo.AdditionalTime)

	walk, err := RouteEstimator{}.Estimate(ctx, models.RouteRequest{Mode: models.TransportWalk, ArriveBy: monday(9, 0)})
	require.NoError(t, err)
	assert.Equal(t, 60, walk.Duration)
	assert.Equal(t, 0, walk.TrafficInfo.AdditionalTime)

	unknown, err := RouteEstimator{}.Estimate(ctx, models.RouteRequest{Mode: "rocket"})
	require.NoError(t, err)
	assert.Equal(t, string(models.TransportPublic), unknown.Mode)
}

func TestRouteServiceCustomDurationWins(t *testing.T) {
	now := monday(7, 0)
	provider := &stubProvider{route: &models.RouteResult{Duration: 55}}
	svc := NewRouteService(provider, newTestStore(newMemStoreRepo(), now), nil, fixedClock(now), time.Hour)
	settings := routeSettings(models.TransportPublic)
	fixed := 25
	settings.CustomRouteDuration = &fixed

	route, err := svc.Estimate(context.Background(), settings, "ул. Прянишникова, 2А", monday(9, 0))
	require.NoError(t, err)
	assert.Equal(t, 25, route.Duration)
	assert.Nil(t, route.TrafficInfo)
	assert.Equal(t, 0, provider.calls)
}

func TestRouteServiceUsesProviderAndCaches(t *testing.T) {
	now := monday(7, 0)
	provider := &stubProvider{route: &models.RouteResult{Duration: 55, Distance: 14.2, Mode: "public"}}
	svc := NewRouteService(provider, newTestStore(newMemStoreRepo(), now), nil, fixedClock(now), time.Hour)
	settings := routeSettings(models.TransportPublic)

	first, err := svc.Estimate(context.Background(), settings, "ул. Прянишникова, 2А", monday(9, 0))
	require.NoError(t, err)
	assert.Equal(t, 55, first.Duration)
	assert.True(t, first.IsRealRoute)

	second, err := svc.Estimate(context.Background(), settings, "ул. Прянишникова, 2А", monday(9, 0))
	require.NoError(t, err)
	assert.Equal(t, 55, second.Duration)
	assert.Equal(t, 1, provider.calls)

	_, err = svc.Estimate(context.Background(), settings, "ул. Павла Корчагина, 22", monday(9, 0))
	require.NoError(t, err)
	assert.Equal(t, 2, provider.calls)
}

func TestRouteServiceFallsBackToEstimator(t *testing.T) {
	now := monday(7, 0)
	provider := &stubProvider{err: errors.New("quota exceeded")}
	svc := NewRouteService(provider, newTestStore(newMemStoreRepo(), now), nil, fixedClock(now), time.Hour)

	route, err := svc.Estimate(context.Background(), routeSettings(models.TransportCar), "ул. Прянишникова, 2А", monday(9, 0))
	require.NoError(t, err)
	assert.Equal(t, 30, route.Duration)
	assert.False(t, route.IsRealRoute)
	require.NotNil(t, route.TrafficInfo)
	assert.Equal(t, 20, route.TrafficInfo.AdditionalTime)
}

func TestRouteServiceDropsTrafficWhenDisabled(t *testing.T) {
	now := monday(7, 0)
	svc := NewRouteService(nil, newTestStore(newMemStoreRepo(), now), nil, fixedClock(now), time.Hour)
	settings := routeSettings(models.TransportCar)
	settings.TrafficNotifications = false

	route, err := svc.Estimate(context.Background(), settings, "ул. Прянишникова, 2А", monday(9, 0))
	require.NoError(t, err)
	assert.Nil(t, route.TrafficInfo)
}

func TestRouteServiceExpiresCachedRoute(t *testing.T) {
	now := monday(7, 0)
	repo := newMemStoreRepo()
	provider := &stubProvider{route: &models.RouteResult{Duration: 55}}
	settings := routeSettings(models.TransportPublic)

	first := NewRouteService(provider, newTestStore(repo, now), nil, fixedClock(now), 30*time.Minute)
	_, err := first.Estimate(context.Background(), settings, "ул. Прянишникова, 2А", monday(9, 0))
	require.NoError(t, err)

	later := now.Add(time.Hour)
	second := NewRouteService(provider, newTestStore(repo, later), nil, fixedClock(later), 30*time.Minute)
	_, err = second.Estimate(context.Background(), settings, "ул. Прянишникова, 2А", monday(9, 0))
	require.NoError(t, err)
	assert.Equal(t, 2, provider.calls)
}

func TestRouteServiceCachedRouteTakesTrafficFromArrival(t *testing.T) {
	now := monday(7, 0)
	svc := NewRouteService(nil, newTestStore(newMemStoreRepo(), now), nil, fixedClock(now), time.Hour)
	settings := routeSettings(models.TransportCar)

	rush, err := svc.Estimate(context.Background(), settings, "ул. Прянишникова, 2А", monday(9, 0))
	require.NoError(t, err)
	require.NotNil(t, rush.TrafficInfo)
	assert.Equal(t, 20, rush.TrafficInfo.AdditionalTime)

	offPeak, err := svc.Estimate(context.Background(), settings, "ул. Прянишникова, 2А", monday(14, 30))
	require.NoError(t, err)
	require.NotNil(t, offPeak.TrafficInfo)
	assert.Equal(t, models.TrafficLow, offPeak.TrafficInfo.Level)
	assert.Equal(t, 0, offPeak.TrafficInfo.AdditionalTime)
	assert.True(t, rush.CalculatedAt.Equal(offPeak.CalculatedAt))
}
