package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/wakeup-planner-api/internal/middleware"
)

var testNow = time.Date(2025, time.January, 6, 7, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func newTestContext(method, target string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader *bytes.Reader
	switch v := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(v))
	default:
		raw, _ := json.Marshal(v)
		reader = bytes.NewReader(raw)
	}
	req, _ := http.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	middleware.WithResponseMeta()(c)
	return c, w
}

type envelope struct {
	Data  json.RawMessage        `json:"data"`
	Error *struct {
		Code string `json:"code"`
	} `json:"error"`
	Meta map[string]interface{} `json:"meta"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}
