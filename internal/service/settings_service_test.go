package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/wakeup-planner-api/internal/dto"
	"github.com/noah-isme/wakeup-planner-api/internal/models"
	appErrors "github.com/noah-isme/wakeup-planner-api/pkg/errors"
)

func TestSettingsServiceReturnsDefaults(t *testing.T) {
	svc := NewSettingsService(newTestStore(newMemStoreRepo(), monday(8, 0)), models.DefaultAcademicCalendar(), nil, nil)

	settings, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 60, settings.MorningRoutine)
	assert.Equal(t, 10, settings.ExtraTime)
	assert.Equal(t, models.TransportPublic, settings.TransportType)
	assert.True(t, settings.TrafficNotifications)
	assert.Len(t, settings.CampusAddresses, 5)
}

func TestSettingsServiceSaveOverwritesWholesale(t *testing.T) {
	repo := newMemStoreRepo()
	svc := NewSettingsService(newTestStore(repo, monday(8, 0)), models.DefaultAcademicCalendar(), nil, nil)
	custom := 45

	saved, err := svc.Save(context.Background(), dto.SettingsRequest{
		MorningRoutine:      45,
		ExtraTime:           5,
		HomeAddress:         " ул. Тверская, 1 ",
		CampusAddresses:     []dto.CampusAddressRequest{{Code: "ПР", Address: "ул. Прянишникова, 2А"}},
		TransportType:       "car",
		GroupNumber:         "231-324",
		CustomRouteDuration: &custom,
	})
	require.NoError(t, err)
	assert.Equal(t, "ул. Тверская, 1", saved.HomeAddress)
	require.Len(t, saved.CampusAddresses, 5)
	assert.Equal(t, "пр", saved.CampusAddresses[0].Code)
	assert.Equal(t, "Прянишникова", saved.CampusAddresses[0].Name)

	loaded, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 45, loaded.MorningRoutine)
	assert.Equal(t, models.TransportCar, loaded.TransportType)
	assert.False(t, loaded.TrafficNotifications)
	require.NotNil(t, loaded.CustomRouteDuration)
	assert.Equal(t, 45, *loaded.CustomRouteDuration)
	address, ok := GetCampusAddress("пр", loaded.CampusAddresses)
	assert.True(t, ok)
	assert.Equal(t, "ул. Прянишникова, 2А", address)
}

func TestSettingsServiceRejectsInvalidPayload(t *testing.T) {
	svc := NewSettingsService(newTestStore(newMemStoreRepo(), monday(8, 0)), models.DefaultAcademicCalendar(), nil, nil)

	_, err := svc.Save(context.Background(), dto.SettingsRequest{MorningRoutine: 30, TransportType: "bike"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrValidation))

	_, err = svc.Save(context.Background(), dto.SettingsRequest{
		TransportType:   "walk",
		CampusAddresses: []dto.CampusAddressRequest{{Code: "zz", Address: "nowhere"}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}
