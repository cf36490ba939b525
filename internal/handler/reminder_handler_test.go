package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/wakeup-planner-api/internal/dto"
	"github.com/noah-isme/wakeup-planner-api/internal/models"
	appErrors "github.com/noah-isme/wakeup-planner-api/pkg/errors"
)

type reminderServiceMock struct {
	items     []models.Reminder
	updatedID string
	deleteErr error
}

func (m *reminderServiceMock) List(ctx context.Context) ([]models.Reminder, error) {
	return m.items, nil
}

func (m *reminderServiceMock) Create(ctx context.Context, req dto.ReminderRequest) (*models.Reminder, error) {
	return &models.Reminder{ID: "r-1", Title: req.Title, Datetime: req.Datetime, Type: models.ReminderType(req.Type)}, nil
}

func (m *reminderServiceMock) Update(ctx context.Context, id string, req dto.ReminderRequest) (*models.Reminder, error) {
	m.updatedID = id
	return &models.Reminder{ID: id, Title: req.Title}, nil
}

func (m *reminderServiceMock) Delete(ctx context.Context, id string) error {
	return m.deleteErr
}

func reminderPayload() dto.ReminderRequest {
	return dto.ReminderRequest{
		Title:    "Стоматолог",
		Address:  "ул. Ленина, 1",
		Datetime: time.Date(2025, time.January, 7, 10, 0, 0, 0, time.UTC),
		Type:     string(models.ReminderAppointment),
	}
}

func TestReminderHandlerList(t *testing.T) {
	handler := NewReminderHandler(&reminderServiceMock{items: []models.Reminder{{ID: "a"}, {ID: "b"}}})
	c, w := newTestContext(http.MethodGet, "/reminders", nil)

	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, decodeEnvelope(t, w).Meta["total"])
}

func TestReminderHandlerCreate(t *testing.T) {
	handler := NewReminderHandler(&reminderServiceMock{})
	c, w := newTestContext(http.MethodPost, "/reminders", reminderPayload())

	handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Стоматолог")
}

func TestReminderHandlerCreateInvalidBody(t *testing.T) {
	handler := NewReminderHandler(&reminderServiceMock{})
	c, w := newTestContext(http.MethodPost, "/reminders", `{"datetime":"next week"}`)

	handler.Create(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReminderHandlerUpdateUsesPathID(t *testing.T) {
	mock := &reminderServiceMock{}
	handler := NewReminderHandler(mock)
	c, w := newTestContext(http.MethodPut, "/reminders/r-9", reminderPayload())
	c.Params = gin.Params{{Key: "id", Value: "r-9"}}

	handler.Update(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "r-9", mock.updatedID)
}

func TestReminderHandlerDelete(t *testing.T) {
	handler := NewReminderHandler(&reminderServiceMock{})
	c, _ := newTestContext(http.MethodDelete, "/reminders/r-1", nil)
	c.Params = gin.Params{{Key: "id", Value: "r-1"}}

	handler.Delete(c)
	assert.Equal(t, http.StatusNoContent, c.Writer.Status())
}

func TestReminderHandlerDeleteMissing(t *testing.T) {
	handler := NewReminderHandler(&reminderServiceMock{deleteErr: appErrors.Clone(appErrors.ErrNotFound, "reminder not found")})
	c, w := newTestContext(http.MethodDelete, "/reminders/x", nil)
	c.Params = gin.Params{{Key: "id", Value: "x"}}

	handler.Delete(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
