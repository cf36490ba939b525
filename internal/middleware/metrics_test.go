package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type observation struct {
	method string
	path   string
	status int
}

type recordingObserver struct {
	seen []observation
}

func (r *recordingObserver) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	r.seen = append(r.seen, observation{method: method, path: path, status: status})
}

func TestMetricsUsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	observer := &recordingObserver{}
	r := gin.New()
	r.Use(Metrics(observer))
	r.DELETE("/reminders/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/reminders/abc", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	require.Len(t, observer.seen, 2)
	assert.Equal(t, observation{method: http.MethodDelete, path: "/reminders/:id", status: http.StatusNoContent}, observer.seen[0])
	assert.Equal(t, "unmatched", observer.seen[1].path)
	assert.Equal(t, http.StatusNotFound, observer.seen[1].status)
}

func TestMetricsNilObserver(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Metrics(nil))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
