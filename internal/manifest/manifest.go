// Package manifest builds and parses manifest.json, the machine-readable
// index of every published feed. It is written once per generation run and
// read back by the deploy check against the previously published site.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/prestomation/calendar-ripper-sub001/internal/aggregate"
	"github.com/prestomation/calendar-ripper-sub001/internal/domain"
)

// Filename is the well-known manifest name at the site root.
const Filename = "manifest.json"

type Calendar struct {
	Name   string `json:"name"`
	IcsURL string `json:"icsUrl"`
}

type Ripper struct {
	Name      string     `json:"name"`
	Calendars []Calendar `json:"calendars"`
}

type External struct {
	Name         string   `json:"name"`
	FriendlyName string   `json:"friendlyName"`
	IcsURL       string   `json:"icsUrl"`
	InfoURL      string   `json:"infoUrl,omitempty"`
	Description  string   `json:"description,omitempty"`
	Tags         []string `json:"tags"`
}

type Manifest struct {
	Rippers            []Ripper   `json:"rippers"`
	RecurringCalendars []Calendar `json:"recurringCalendars"`
	ExternalCalendars  []External `json:"externalCalendars"`
	Tags               []string   `json:"tags"`
}

// Source groups the calendars one ripper produced.
type Source struct {
	Name      string
	Calendars []domain.Calendar
}

// Build assembles the manifest for one run. Calendars with no events are
// omitted here even though their files are still written; subscribers keep
// a working (empty) feed while the browsing UI hides it.
func Build(sources []Source, externals []domain.ExternalCalendar, tags []string) Manifest {
	m := Manifest{
		Rippers:            []Ripper{},
		RecurringCalendars: []Calendar{},
		ExternalCalendars:  []External{},
		Tags:               tags,
	}
	if m.Tags == nil {
		m.Tags = []string{}
	}

	for _, src := range sources {
		rip := Ripper{Name: src.Name, Calendars: []Calendar{}}
		for _, cal := range src.Calendars {
			if len(cal.Events) == 0 {
				continue
			}
			entry := Calendar{Name: cal.Name, IcsURL: cal.Name + ".ics"}
			if cal.Recurring {
				m.RecurringCalendars = append(m.RecurringCalendars, entry)
				continue
			}
			rip.Calendars = append(rip.Calendars, entry)
		}
		m.Rippers = append(m.Rippers, rip)
	}

	for _, ext := range externals {
		if ext.Disabled {
			continue
		}
		tags := ext.Tags
		if tags == nil {
			tags = []string{}
		}
		m.ExternalCalendars = append(m.ExternalCalendars, External{
			Name:         ext.Name,
			FriendlyName: ext.FriendlyName,
			IcsURL:       ext.Name + ".ics",
			InfoURL:      ext.InfoURL,
			Description:  ext.Description,
			Tags:         tags,
		})
	}

	return m
}

// Parse decodes a manifest document.
func Parse(data []byte) (Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parse manifest: %w", err)
	}
	return m, nil
}

// Write serializes the manifest atomically into dir.
func Write(dir string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".manifest-*.tmp")
	if err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write manifest: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	if err := os.Rename(tmpName, filepath.Join(dir, Filename)); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// ICSFilenames returns every feed filename the manifest implies: each
// listed calendar, each external calendar, and the predicted aggregate
// filename for each tag. Prediction uses the identical slug rule the
// aggregation engine names feeds with; any divergence between the two is
// the latent bug class the deploy check exists to catch.
func (m Manifest) ICSFilenames() []string {
	var names []string
	add := func(icsURL string) {
		if icsURL == "" {
			return
		}
		names = append(names, icsURL)
	}

	for _, rip := range m.Rippers {
		for _, cal := range rip.Calendars {
			add(cal.IcsURL)
		}
	}
	for _, cal := range m.RecurringCalendars {
		add(cal.IcsURL)
	}
	for _, ext := range m.ExternalCalendars {
		add(ext.IcsURL)
	}
	for _, tag := range m.Tags {
		names = append(names, aggregate.AggregateName(tag)+".ics")
	}
	return names
}
