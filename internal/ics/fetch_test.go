package ics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	start := time.Now().UTC().Add(24 * time.Hour)
	body := wrap(vevent(
		"UID:remote-1",
		"SUMMARY:Remote Event",
		"DTSTART:"+start.Format("20060102T150405Z"),
	))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "text/calendar", r.Header.Get("Accept"))
		w.Write([]byte(body))
	}))
	defer srv.Close()

	fetcher := NewFetcher(5*time.Second, testLogger())
	events, err := fetcher.Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Remote Event", events[0].Summary)
}

func TestFetcher_FetchNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	fetcher := NewFetcher(5*time.Second, testLogger())
	events, err := fetcher.Fetch(context.Background(), srv.URL)

	require.Error(t, err)
	assert.Empty(t, events)
}

func TestFetcher_FetchNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	fetcher := NewFetcher(time.Second, testLogger())
	_, err := fetcher.Fetch(context.Background(), srv.URL)

	require.Error(t, err)
}
