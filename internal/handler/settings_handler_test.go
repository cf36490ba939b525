package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/wakeup-planner-api/internal/dto"
	"github.com/noah-isme/wakeup-planner-api/internal/models"
	appErrors "github.com/noah-isme/wakeup-planner-api/pkg/errors"
)

type settingsServiceMock struct {
	current *models.Settings
	getErr  error
	saveErr error
	saved   *dto.SettingsRequest
}

func (m *settingsServiceMock) Get(ctx context.Context) (*models.Settings, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.current, nil
}

func (m *settingsServiceMock) Save(ctx context.Context, req dto.SettingsRequest) (*models.Settings, error) {
	if m.saveErr != nil {
		return nil, m.saveErr
	}
	m.saved = &req
	return &models.Settings{MorningRoutine: req.MorningRoutine, TransportType: models.TransportType(req.TransportType)}, nil
}

func TestSettingsHandlerGet(t *testing.T) {
	handler := NewSettingsHandler(&settingsServiceMock{current: &models.Settings{MorningRoutine: 45, TransportType: models.TransportCar}})
	c, w := newTestContext(http.MethodGet, "/settings", nil)

	handler.Get(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"morningRoutine":45`)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestSettingsHandlerGetStoreFailure(t *testing.T) {
	handler := NewSettingsHandler(&settingsServiceMock{getErr: errors.New("disk gone")})
	c, w := newTestContext(http.MethodGet, "/settings", nil)

	handler.Get(c)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestSettingsHandlerUpdateInvalidBody(t *testing.T) {
	mock := &settingsServiceMock{}
	handler := NewSettingsHandler(mock)
	c, w := newTestContext(http.MethodPut, "/settings", `invalid`)

	handler.Update(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, mock.saved)
}

func TestSettingsHandlerUpdateValidationError(t *testing.T) {
	handler := NewSettingsHandler(&settingsServiceMock{saveErr: appErrors.Clone(appErrors.ErrValidation, "unknown campus code")})
	c, w := newTestContext(http.MethodPut, "/settings", dto.SettingsRequest{TransportType: "public"})

	handler.Update(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, appErrors.ErrValidation.Code, decodeEnvelope(t, w).Error.Code)
}

func TestSettingsHandlerUpdate(t *testing.T) {
	mock := &settingsServiceMock{}
	handler := NewSettingsHandler(mock)
	c, w := newTestContext(http.MethodPut, "/settings", dto.SettingsRequest{MorningRoutine: 50, ExtraTime: 5, TransportType: "walk"})

	handler.Update(c)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, mock.saved)
	assert.Equal(t, 50, mock.saved.MorningRoutine)
	assert.Equal(t, "walk", mock.saved.TransportType)
}
