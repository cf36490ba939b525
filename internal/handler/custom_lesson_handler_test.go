package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/wakeup-planner-api/internal/dto"
	"github.com/noah-isme/wakeup-planner-api/internal/models"
)

type customLessonServiceMock struct {
	items     []models.CustomLesson
	created   *dto.CustomLessonRequest
	deletedID string
}

func (m *customLessonServiceMock) List(ctx context.Context) ([]models.CustomLesson, error) {
	return m.items, nil
}

func (m *customLessonServiceMock) Create(ctx context.Context, req dto.CustomLessonRequest) (*models.CustomLesson, error) {
	m.created = &req
	return &models.CustomLesson{ID: "c-1", DayNumber: req.DayNumber, LessonNumber: req.LessonNumber, Subject: req.Subject}, nil
}

func (m *customLessonServiceMock) Delete(ctx context.Context, id string) error {
	m.deletedID = id
	return nil
}

func TestCustomLessonHandlerList(t *testing.T) {
	handler := NewCustomLessonHandler(&customLessonServiceMock{items: []models.CustomLesson{{ID: "c-1", Subject: "Йога"}}})
	c, w := newTestContext(http.MethodGet, "/custom-lessons", nil)

	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	assert.EqualValues(t, 1, env.Meta["total"])
	assert.Contains(t, string(env.Data), "Йога")
}

func TestCustomLessonHandlerCreate(t *testing.T) {
	mock := &customLessonServiceMock{}
	handler := NewCustomLessonHandler(mock)
	c, w := newTestContext(http.MethodPost, "/custom-lessons", dto.CustomLessonRequest{DayNumber: 3, LessonNumber: 2, Subject: "Йога"})

	handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, mock.created)
	assert.Equal(t, 3, mock.created.DayNumber)
}

func TestCustomLessonHandlerCreateInvalidBody(t *testing.T) {
	mock := &customLessonServiceMock{}
	handler := NewCustomLessonHandler(mock)
	c, w := newTestContext(http.MethodPost, "/custom-lessons", `[]`)

	handler.Create(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, mock.created)
}

func TestCustomLessonHandlerDelete(t *testing.T) {
	mock := &customLessonServiceMock{}
	handler := NewCustomLessonHandler(mock)
	c, _ := newTestContext(http.MethodDelete, "/custom-lessons/c-1", nil)
	c.Params = gin.Params{{Key: "id", Value: "c-1"}}

	handler.Delete(c)
	assert.Equal(t, http.StatusNoContent, c.Writer.Status())
	assert.Equal(t, "c-1", mock.deletedID)
}
