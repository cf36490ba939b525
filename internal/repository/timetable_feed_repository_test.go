package repository

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimetableFeedRepositoryFetch(t *testing.T) {
	var gotGroup, gotReferer string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotGroup = r.URL.Query().Get("group")
		gotReferer = r.Header.Get("Referer")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok","grid":{"1":{"1":[{"sbj":"Математика"}]}}}`))
	}))
	defer server.Close()

	repo := NewTimetableFeedRepository(server.URL+"?session=0", "https://rasp.example.org/", time.Second, nil)
	raw, err := repo.Fetch(context.Background(), "231-324")

	require.NoError(t, err)
	assert.Equal(t, "231-324", gotGroup)
	assert.Equal(t, "https://rasp.example.org/", gotReferer)
	require.Contains(t, raw.Grid, "1")
	assert.Len(t, raw.Grid["1"]["1"], 1)
}

func TestTimetableFeedRepositoryErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("group") {
		case "down":
			w.WriteHeader(http.StatusBadGateway)
		case "bad":
			_, _ = w.Write([]byte(`{"status":"error","message":"group not found"}`))
		default:
			_, _ = w.Write([]byte(`not json`))
		}
	}))
	defer server.Close()

	repo := NewTimetableFeedRepository(server.URL, "", time.Second, nil)

	_, err := repo.Fetch(context.Background(), "down")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")

	_, err = repo.Fetch(context.Background(), "bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "group not found")

	_, err = repo.Fetch(context.Background(), "garbled")
	require.Error(t, err)

	_, err = NewTimetableFeedRepository("", "", 0, nil).Fetch(context.Background(), "x")
	assert.True(t, errors.Is(err, ErrFeedNotConfigured))
}
