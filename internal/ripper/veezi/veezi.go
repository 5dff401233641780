// Package veezi extracts cinema screenings from the Veezi ticketing API.
package veezi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/prestomation/calendar-ripper-sub001/internal/config"
	"github.com/prestomation/calendar-ripper-sub001/internal/domain"
	"github.com/prestomation/calendar-ripper-sub001/internal/ripper"
)

const (
	RipperName = "veezi"

	// idPrefix keeps veezi ids globally unique across merged sources.
	idPrefix = "veezi-"

	// defaultDuration is used when the API reports a zero-length feature.
	defaultDuration = 2 * time.Hour

	startLayout = "2006-01-02T15:04:05"

	// dateSlot in a configured URL marks the endpoint as date-paged; one
	// request is made per day over the configured lookahead.
	dateSlot = "{yyyy-MM-dd}"
)

// Config holds Veezi ripper construction options.
type Config struct {
	Timeout time.Duration
}

// Ripper implements ripper.Ripper for Veezi-powered cinemas. Each configured
// calendar is one venue with its own API token. Screenings repeat across the
// date pages Veezi serves, so deduplication is scoped to the whole run.
type Ripper struct {
	httpClient *http.Client
	dedup      *ripper.Dedup
	logger     *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Ripper {
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &Ripper{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		dedup:      ripper.NewDedup(ripper.ScopePerRun),
		logger:     logger.With("ripper", RipperName),
	}
}

func (r *Ripper) Name() string {
	return RipperName
}

// BeginRun clears the run-scoped dedup context. The pipeline calls it at
// the start of every generation run; without it a long-lived instance in
// scheduler mode would dedupe still-live screenings into empty calendars.
func (r *Ripper) BeginRun() {
	r.dedup.BeginRun()
}

// Rip extracts one calendar per configured venue. A venue whose fetch fails
// still yields a calendar carrying an ImportError so the rest of the run
// proceeds.
func (r *Ripper) Rip(ctx context.Context, cfg config.RipperConfig) ([]domain.Calendar, error) {
	r.dedup.BeginCall()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}

	calendars := make([]domain.Calendar, 0, len(cfg.Calendars))
	for _, cc := range cfg.Calendars {
		cal := domain.Calendar{
			Name:         cc.Name,
			FriendlyName: cc.FriendlyName,
			Tags:         cc.Tags,
			Recurring:    cc.Recurring,
		}

		sessions, err := r.fetchAllSessions(ctx, cfg, cc.Config["token"], loc)
		if err != nil {
			r.logger.Error("fetch sessions failed", "calendar", cc.Name, "error", err)
			cal.Errors = append(cal.Errors, domain.ExtractionError{
				Kind:   domain.ImportError,
				Reason: err.Error(),
				Path:   cfg.URL,
			})
			calendars = append(calendars, cal)
			continue
		}

		results := r.transform(sessions, loc, cfg.DefaultLocation)
		cal.Events, cal.Errors = domain.Partition(results)

		r.logger.Debug("ripped calendar",
			"calendar", cc.Name,
			"sessions", len(sessions),
			"events", len(cal.Events),
			"errors", len(cal.Errors),
		)
		calendars = append(calendars, cal)
	}

	return calendars, nil
}

// fetchAllSessions fetches the venue's sessions. A URL carrying the
// {yyyy-MM-dd} slot is date-paged: one request per day over the configured
// lookahead, starting today in the venue's timezone. Screenings repeated
// across pages collapse in the dedup context.
func (r *Ripper) fetchAllSessions(ctx context.Context, cfg config.RipperConfig, token string, loc *time.Location) ([]Session, error) {
	if !strings.Contains(cfg.URL, dateSlot) {
		return r.fetchSessions(ctx, cfg.URL, token)
	}

	days := cfg.LookaheadDays
	if days <= 0 {
		days = 1
	}

	today := time.Now().In(loc)
	var all []Session
	for i := 0; i < days; i++ {
		date := today.AddDate(0, 0, i).Format("2006-01-02")
		sessions, err := r.fetchSessions(ctx, strings.ReplaceAll(cfg.URL, dateSlot, date), token)
		if err != nil {
			return nil, fmt.Errorf("page %s: %w", date, err)
		}
		all = append(all, sessions...)
	}
	return all, nil
}

func (r *Ripper) fetchSessions(ctx context.Context, url, token string) ([]Session, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("VeeziAccessToken", token)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var sessions []Session
	if err := json.NewDecoder(resp.Body).Decode(&sessions); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return sessions, nil
}

// transform converts sessions to extraction results. A failure on one
// session becomes an ExtractionError and extraction continues.
func (r *Ripper) transform(sessions []Session, loc *time.Location, defaultLocation string) []domain.Result {
	now := time.Now()
	results := make([]domain.Result, 0, len(sessions))

	for _, s := range sessions {
		if !s.SalesVia.WWW {
			continue
		}

		id := fmt.Sprintf("%s%d", idPrefix, s.ID)
		if r.dedup.Seen(id) {
			continue
		}

		start, err := time.ParseInLocation(startLayout, s.FeatureStartTime, loc)
		if err != nil {
			results = append(results, domain.ExtractionError{
				Kind:    domain.InvalidDateError,
				Reason:  fmt.Sprintf("bad feature start time %q", s.FeatureStartTime),
				Context: s.Title,
			})
			continue
		}

		duration := time.Duration(s.Duration) * time.Minute
		if duration <= 0 {
			duration = defaultDuration
		}

		location := s.ScreenName
		if location == "" {
			location = defaultLocation
		}

		results = append(results, domain.CalendarEvent{
			ID:          id,
			ExtractedAt: now,
			Start:       start,
			Duration:    duration,
			Summary:     s.Title,
			Location:    location,
		})
	}

	return results
}
