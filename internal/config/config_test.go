package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("VEEZI_TOKEN", "secret-token")

	path := writeConfig(t, `
output_dir: out
log_level: debug
fetch:
  timeout: 30s
rippers:
  - name: veezi
    friendly_name: Veezi Cinemas
    timezone: America/New_York
    lookahead_days: 14
    tags: [Film]
    calendars:
      - name: grand-cinema
        friendly_name: Grand Cinema
        tags: [Tacoma]
        config:
          token: ${VEEZI_TOKEN}
external_calendars:
  - name: town-hall
    ics_url: https://example.com/town.ics
    tags: [Civic]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.Fetch.Timeout)

	require.Len(t, cfg.Rippers, 1)
	r := cfg.Rippers[0]
	assert.Equal(t, "veezi", r.Name)
	assert.Equal(t, "America/New_York", r.Timezone)
	assert.Equal(t, 14, r.LookaheadDays)

	require.Len(t, r.Calendars, 1)
	assert.Equal(t, "secret-token", r.Calendars[0].Config["token"])

	require.Len(t, cfg.ExternalCalendars, 1)
	assert.Equal(t, "https://example.com/town.ics", cfg.ExternalCalendars[0].IcsURL)
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
rippers:
  - name: veezi
    calendars:
      - name: grand-cinema
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "dist", cfg.OutputDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 15*time.Second, cfg.Fetch.Timeout)

	r := cfg.Rippers[0]
	assert.Equal(t, "America/Los_Angeles", r.Timezone)
	assert.Equal(t, 30, r.LookaheadDays)
	assert.Equal(t, "veezi", r.FriendlyName)
	assert.Equal(t, "grand-cinema", r.Calendars[0].FriendlyName)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "rippers: [unclosed")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadDuplicateCalendarName(t *testing.T) {
	path := writeConfig(t, `
rippers:
  - name: veezi
    calendars:
      - name: grand-cinema
  - name: other
    calendars:
      - name: grand-cinema
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate calendar name")
}

func TestLoadExternalRequiresURL(t *testing.T) {
	path := writeConfig(t, `
external_calendars:
  - name: town-hall
`)

	_, err := Load(path)
	assert.Error(t, err)
}
