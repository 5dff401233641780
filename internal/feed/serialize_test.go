package feed

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prestomation/calendar-ripper-sub001/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mustLocation(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func TestSerialize_UTCStart(t *testing.T) {
	loc := mustLocation(t, "America/Los_Angeles")
	cal := domain.Calendar{
		Name:         "venue-a",
		FriendlyName: "Venue A",
		Events: []domain.CalendarEvent{{
			ID:          "veezi-1",
			ExtractedAt: time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC),
			Start:       time.Date(2026, 9, 1, 19, 30, 0, 0, loc),
			Duration:    2 * time.Hour,
			Summary:     "Opening Night",
		}},
	}

	out := Serialize(cal, testLogger())

	assert.Contains(t, out, "PRODID:-//calendar-ripper//EN")
	assert.Contains(t, out, "METHOD:PUBLISH")
	assert.Contains(t, out, "UID:veezi-1")
	// 19:30 PDT is 02:30 UTC the next day.
	assert.Contains(t, out, "DTSTART:20260902T023000Z")
	assert.Contains(t, out, "DTEND:20260902T043000Z")
	assert.Contains(t, out, "TRANSP:TRANSPARENT")
	assert.NotContains(t, out, "RRULE")
}

func TestSerialize_RecurringUsesLocalTimeWithTZID(t *testing.T) {
	loc := mustLocation(t, "America/Los_Angeles")
	cal := domain.Calendar{
		Name: "recurring",
		Events: []domain.CalendarEvent{{
			ID:             "rec-1",
			ExtractedAt:    time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC),
			Start:          time.Date(2026, 9, 1, 19, 0, 0, 0, loc),
			Duration:       time.Hour,
			Summary:        "Weekly Meetup",
			RecurrenceRule: "FREQ=WEEKLY;BYDAY=TU",
		}},
	}

	out := Serialize(cal, testLogger())

	assert.Contains(t, out, "DTSTART;TZID=America/Los_Angeles:20260901T190000")
	assert.Contains(t, out, "DTEND;TZID=America/Los_Angeles:20260901T200000")
	assert.Contains(t, out, "RRULE:FREQ=WEEKLY;BYDAY=TU")
}

func TestSerialize_InvalidRecurrenceRuleDropped(t *testing.T) {
	cal := domain.Calendar{
		Name: "broken-rule",
		Events: []domain.CalendarEvent{{
			ID:             "rec-2",
			ExtractedAt:    time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC),
			Start:          time.Date(2026, 9, 1, 19, 0, 0, 0, time.UTC),
			Duration:       time.Hour,
			Summary:        "Broken",
			RecurrenceRule: "FREQ=NOPE",
		}},
	}

	out := Serialize(cal, testLogger())

	assert.NotContains(t, out, "RRULE")
	// Falls back to the precise-instant form.
	assert.Contains(t, out, "DTSTART:20260901T190000Z")
}

func TestSerialize_URLOnlyWhenAbsolute(t *testing.T) {
	base := domain.CalendarEvent{
		ExtractedAt: time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC),
		Start:       time.Date(2026, 9, 1, 19, 0, 0, 0, time.UTC),
		Duration:    time.Hour,
		Summary:     "S",
	}

	absolute := base
	absolute.ID = "u-1"
	absolute.URL = "https://example.com/tickets"
	relative := base
	relative.ID = "u-2"
	relative.URL = "/tickets/123"

	out := Serialize(domain.Calendar{Name: "urls", Events: []domain.CalendarEvent{absolute, relative}}, testLogger())

	assert.Contains(t, out, "URL:https://example.com/tickets")
	assert.NotContains(t, out, "URL:/tickets/123")
}

func TestIsAbsoluteHTTP(t *testing.T) {
	assert.True(t, isAbsoluteHTTP("https://example.com/x"))
	assert.True(t, isAbsoluteHTTP("http://example.com"))
	assert.False(t, isAbsoluteHTTP(""))
	assert.False(t, isAbsoluteHTTP("/relative/path"))
	assert.False(t, isAbsoluteHTTP("ftp://example.com/x"))
	assert.False(t, isAbsoluteHTTP("mailto:someone@example.com"))
}

func TestWriter_WriteCalendar(t *testing.T) {
	dir := t.TempDir()
	writer, err := NewWriter(dir, testLogger())
	require.NoError(t, err)

	cal := domain.Calendar{
		Name:         "venue-a",
		FriendlyName: "Venue A",
		Events: []domain.CalendarEvent{{
			ID:          "veezi-1",
			ExtractedAt: time.Now().UTC(),
			Start:       time.Now().UTC().Add(24 * time.Hour),
			Duration:    2 * time.Hour,
			Summary:     "Show",
		}},
		Errors: []domain.ExtractionError{{Kind: domain.ParseError, Reason: "one bad listing"}},
	}

	filename, err := writer.WriteCalendar(cal)
	require.NoError(t, err)
	assert.Equal(t, "venue-a.ics", filename)

	data, err := os.ReadFile(filepath.Join(dir, filename))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "BEGIN:VCALENDAR"))
	assert.Contains(t, string(data), "Show")
}

func TestWriter_EmptyCalendarStillWritten(t *testing.T) {
	dir := t.TempDir()
	writer, err := NewWriter(dir, testLogger())
	require.NoError(t, err)

	filename, err := writer.WriteCalendar(domain.Calendar{Name: "tag-quiet"})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, filename))
	require.NoError(t, err)
}
