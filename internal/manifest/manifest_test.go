package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prestomation/calendar-ripper-sub001/internal/domain"
)

func sampleEvent() domain.CalendarEvent {
	return domain.CalendarEvent{
		ID:       "veezi-1",
		Start:    time.Date(2026, 9, 1, 19, 0, 0, 0, time.UTC),
		Duration: time.Hour,
		Summary:  "Show",
	}
}

func TestBuild(t *testing.T) {
	sources := []Source{{
		Name: "veezi",
		Calendars: []domain.Calendar{
			{Name: "grand-cinema", Events: []domain.CalendarEvent{sampleEvent()}},
			{Name: "empty-venue"},
			{Name: "open-mic", Recurring: true, Events: []domain.CalendarEvent{sampleEvent()}},
		},
	}}
	externals := []domain.ExternalCalendar{
		{Name: "town", FriendlyName: "Town Hall", IcsURL: "https://example.com/town.ics", Tags: []string{"Civic"}},
		{Name: "hidden", Disabled: true},
	}

	m := Build(sources, externals, []string{"Civic", "Film"})

	require.Len(t, m.Rippers, 1)
	require.Len(t, m.Rippers[0].Calendars, 1)
	assert.Equal(t, "grand-cinema.ics", m.Rippers[0].Calendars[0].IcsURL)

	require.Len(t, m.RecurringCalendars, 1)
	assert.Equal(t, "open-mic.ics", m.RecurringCalendars[0].IcsURL)

	require.Len(t, m.ExternalCalendars, 1)
	assert.Equal(t, "town.ics", m.ExternalCalendars[0].IcsURL)
	assert.Equal(t, "Town Hall", m.ExternalCalendars[0].FriendlyName)

	assert.Equal(t, []string{"Civic", "Film"}, m.Tags)
}

func TestICSFilenames(t *testing.T) {
	m := Manifest{
		Rippers: []Ripper{{
			Name:      "veezi",
			Calendars: []Calendar{{Name: "grand-cinema", IcsURL: "grand-cinema.ics"}},
		}},
		RecurringCalendars: []Calendar{{Name: "open-mic", IcsURL: "open-mic.ics"}},
		ExternalCalendars:  []External{{Name: "town", IcsURL: "town.ics"}},
		Tags:               []string{"Beacon Hill", "Film"},
	}

	names := m.ICSFilenames()

	assert.ElementsMatch(t, []string{
		"grand-cinema.ics",
		"open-mic.ics",
		"town.ics",
		"tag-beacon-hill.ics",
		"tag-film.ics",
	}, names)
}

func TestWriteAndParseRoundTrip(t *testing.T) {
	dir := t.TempDir()
	m := Build([]Source{}, nil, []string{"Music"})

	require.NoError(t, Write(dir, m))

	data, err := os.ReadFile(filepath.Join(dir, Filename))
	require.NoError(t, err)

	parsed, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"Music"}, parsed.Tags)

	// Empty collections serialize as [] rather than null for the UI.
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "[]", string(raw["rippers"]))
	assert.Equal(t, "[]", string(raw["externalCalendars"]))
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse([]byte("{not json"))
	require.Error(t, err)
}
