package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/prestomation/calendar-ripper-sub001/internal/domain"
)

type Config struct {
	OutputDir         string                   `yaml:"output_dir"`
	Rippers           []RipperConfig           `yaml:"rippers"`
	ExternalCalendars []ExternalCalendarConfig `yaml:"external_calendars"`
	Fetch             FetchConfig              `yaml:"fetch"`
	LogLevel          string                   `yaml:"log_level"`
}

// RipperConfig describes one scraped source and the calendars it produces.
type RipperConfig struct {
	Name         string `yaml:"name"`
	FriendlyName string `yaml:"friendly_name"`
	// URL is the listing endpoint; a literal `{yyyy-MM-dd}` slot is replaced
	// with the reference date by the ripper.
	URL string `yaml:"url"`
	// Timezone is the IANA zone events from this source are anchored to.
	Timezone        string           `yaml:"timezone"`
	DefaultLocation string           `yaml:"default_location"`
	LookaheadDays   int              `yaml:"lookahead_days"`
	Tags            []string         `yaml:"tags"`
	Calendars       []CalendarConfig `yaml:"calendars"`
}

type CalendarConfig struct {
	Name         string            `yaml:"name"`
	FriendlyName string            `yaml:"friendly_name"`
	Tags         []string          `yaml:"tags"`
	Recurring    bool              `yaml:"recurring"`
	Config       map[string]string `yaml:"config"`
}

type ExternalCalendarConfig struct {
	Name         string   `yaml:"name"`
	FriendlyName string   `yaml:"friendly_name"`
	IcsURL       string   `yaml:"ics_url"`
	InfoURL      string   `yaml:"info_url"`
	Description  string   `yaml:"description"`
	Disabled     bool     `yaml:"disabled"`
	Tags         []string `yaml:"tags"`
}

// Domain converts the configuration entry into its domain representation.
func (e ExternalCalendarConfig) Domain() domain.ExternalCalendar {
	return domain.ExternalCalendar{
		Name:         e.Name,
		FriendlyName: e.FriendlyName,
		IcsURL:       e.IcsURL,
		InfoURL:      e.InfoURL,
		Description:  e.Description,
		Disabled:     e.Disabled,
		Tags:         e.Tags,
	}
}

type FetchConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.OutputDir == "" {
		c.OutputDir = "dist"
	}
	if c.Fetch.Timeout == 0 {
		c.Fetch.Timeout = 15 * time.Second
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	for i := range c.Rippers {
		r := &c.Rippers[i]
		if r.Timezone == "" {
			r.Timezone = "America/Los_Angeles"
		}
		if r.LookaheadDays <= 0 {
			r.LookaheadDays = 30
		}
		if r.FriendlyName == "" {
			r.FriendlyName = r.Name
		}
		for j := range r.Calendars {
			cc := &r.Calendars[j]
			if cc.FriendlyName == "" {
				cc.FriendlyName = cc.Name
			}
		}
	}
}

func (c *Config) validate() error {
	seen := make(map[string]struct{})
	for _, r := range c.Rippers {
		if r.Name == "" {
			return fmt.Errorf("ripper with empty name")
		}
		for _, cc := range r.Calendars {
			if cc.Name == "" {
				return fmt.Errorf("ripper %q: calendar with empty name", r.Name)
			}
			if _, dup := seen[cc.Name]; dup {
				return fmt.Errorf("duplicate calendar name %q", cc.Name)
			}
			seen[cc.Name] = struct{}{}
		}
	}
	for _, e := range c.ExternalCalendars {
		if e.Name == "" || e.IcsURL == "" {
			return fmt.Errorf("external calendar %q: name and ics_url are required", e.Name)
		}
	}
	return nil
}
