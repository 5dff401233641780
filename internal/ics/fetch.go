package ics

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/prestomation/calendar-ripper-sub001/internal/domain"
)

// Fetcher retrieves and parses external ICS feeds.
type Fetcher struct {
	httpClient *http.Client
	logger     *slog.Logger
}

func NewFetcher(timeout time.Duration, logger *slog.Logger) *Fetcher {
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Fetcher{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Fetch GETs url and returns its in-window events. A network failure or
// non-2xx status yields an error; callers treat that as "nothing to
// contribute" plus one ImportError on the owning aggregate, never as a
// reason to abort the run or retry indefinitely.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]domain.CalendarEvent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/calendar")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		f.logger.Error("external feed fetch failed", "url", url, "error", err)
		return nil, fmt.Errorf("fetch external calendar: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		f.logger.Error("external feed returned non-2xx", "url", url, "status", resp.StatusCode)
		return nil, fmt.Errorf("fetch external calendar: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read external calendar body: %w", err)
	}

	events := ParseExternalCalendarEvents(string(body), time.Now(), f.logger)
	f.logger.Debug("external feed parsed", "url", url, "events", len(events))
	return events, nil
}
