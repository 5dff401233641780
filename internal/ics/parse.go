// Package ics ingests third-party iCalendar feeds. Parsing is a deliberate
// five-field text scan over VEVENT blocks rather than a full RFC 5545
// parser: only UID, SUMMARY, DESCRIPTION, LOCATION, URL and the start/end
// times are needed, and a malformed block must only ever cost that block.
package ics

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/prestomation/calendar-ripper-sub001/internal/domain"
)

const (
	// Window bounds for external events relative to the reference time.
	windowBackDays      = 7
	windowForwardMonths = 3

	defaultDuration = time.Hour

	fallbackSummary = "Untitled Event"

	timestampLayout    = "20060102T150405"
	timestampUTCLayout = "20060102T150405Z"
	dateLayout         = "20060102"
)

// ParseExternalCalendarEvents extracts in-window events from raw ICS text.
// now is the single reference instant for the whole parse, so the time
// window is consistent across every block and the result is a pure function
// of the text and the reference time. Events starting before now minus 7
// days or after now plus 3 months are discarded. A block that cannot be
// parsed is skipped and logged, never surfaced as an error.
func ParseExternalCalendarEvents(icsText string, now time.Time, logger *slog.Logger) []domain.CalendarEvent {
	windowStart := now.AddDate(0, 0, -windowBackDays)
	windowEnd := now.AddDate(0, windowForwardMonths, 0)

	normalized := strings.ReplaceAll(icsText, "\r\n", "\n")
	blocks := strings.Split(normalized, "BEGIN:VEVENT")
	if len(blocks) < 2 {
		return nil
	}

	var events []domain.CalendarEvent
	for i, block := range blocks[1:] {
		if end := strings.Index(block, "END:VEVENT"); end >= 0 {
			block = block[:end]
		}

		ev, err := parseEventBlock(block, i, now)
		if err != nil {
			logger.Debug("skipping malformed VEVENT block", "index", i, "error", err)
			continue
		}

		if ev.Start.Before(windowStart) || ev.Start.After(windowEnd) {
			continue
		}
		events = append(events, ev)
	}

	return events
}

func parseEventBlock(block string, index int, now time.Time) (domain.CalendarEvent, error) {
	startParams, startValue, ok := propertyLine(block, "DTSTART")
	if !ok {
		return domain.CalendarEvent{}, errors.New("missing DTSTART")
	}

	start, err := parseICSTime(startValue, startParams)
	if err != nil {
		return domain.CalendarEvent{}, fmt.Errorf("parse DTSTART: %w", err)
	}

	uid := propertyValue(block, "UID")
	if uid == "" {
		// Display aggregates only need a unique id, not a canonical one.
		uid = fmt.Sprintf("external-%d-%d", now.UnixMilli(), index)
	}

	summary := propertyValue(block, "SUMMARY")
	if summary == "" {
		summary = fallbackSummary
	}

	duration := defaultDuration
	if endParams, endValue, ok := propertyLine(block, "DTEND"); ok {
		if end, err := parseICSTime(endValue, endParams); err == nil {
			duration = roundUpToHour(end.Sub(start))
		}
	}

	return domain.CalendarEvent{
		ID:          uid,
		ExtractedAt: now,
		Start:       start,
		Duration:    duration,
		Summary:     summary,
		Description: propertyValue(block, "DESCRIPTION"),
		Location:    propertyValue(block, "LOCATION"),
		URL:         propertyValue(block, "URL"),
	}, nil
}

// propertyLine finds the first line whose property name matches name,
// tolerating an optional ;PARAM=... segment before the colon. It returns
// the raw parameter segment (";TZID=..." style, possibly empty) and the
// value after the colon.
func propertyLine(block, name string) (params, value string, ok bool) {
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimRight(line, "\r")
		colon := strings.Index(line, ":")
		if colon < 0 {
			continue
		}
		head := line[:colon]
		if head != name && !strings.HasPrefix(head, name+";") {
			continue
		}
		return head[len(name):], strings.TrimSpace(line[colon+1:]), true
	}
	return "", "", false
}

func propertyValue(block, name string) string {
	_, value, _ := propertyLine(block, name)
	return value
}

// paramValue extracts one parameter from a raw segment like
// ";TZID=America/Los_Angeles;VALUE=DATE-TIME".
func paramValue(params, key string) string {
	for _, part := range strings.Split(strings.TrimPrefix(params, ";"), ";") {
		if v, ok := strings.CutPrefix(part, key+"="); ok {
			return v
		}
	}
	return ""
}

// parseICSTime parses the timestamp form (YYYYMMDDTHHMMSS with optional
// trailing Z) and the date-only all-day form (YYYYMMDD, midnight UTC).
// A TZID parameter anchors non-UTC timestamps; unknown zones fall back to
// UTC rather than failing the block.
func parseICSTime(value, params string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New("empty time value")
	}

	if strings.HasSuffix(value, "Z") {
		return time.Parse(timestampUTCLayout, value)
	}

	if strings.Contains(value, "T") {
		loc := time.UTC
		if tz := paramValue(params, "TZID"); tz != "" {
			if l, err := time.LoadLocation(tz); err == nil {
				loc = l
			}
		}
		return time.ParseInLocation(timestampLayout, value, loc)
	}

	return time.ParseInLocation(dateLayout, value, time.UTC)
}

// roundUpToHour rounds a positive duration up to the next whole hour and
// clamps negative durations to zero.
func roundUpToHour(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	rounded := d.Truncate(time.Hour)
	if rounded < d {
		rounded += time.Hour
	}
	return rounded
}
