package domain

import (
	"fmt"
	"time"
)

// ErrorKind classifies extraction failures.
type ErrorKind string

const (
	// FileParseError means a required configuration or data file was
	// missing or unreadable.
	FileParseError ErrorKind = "FileParseError"
	// ParseError means a single listing within a batch could not be
	// interpreted. It never aborts the surrounding batch.
	ParseError ErrorKind = "ParseError"
	// ImportError means fetching or parsing an external dependency
	// (e.g. a third-party ICS feed) failed.
	ImportError ErrorKind = "ImportError"
	// InvalidDateError means a date value was present but semantically invalid.
	InvalidDateError ErrorKind = "InvalidDateError"
)

// CalendarEvent is a successfully extracted event. Start always carries an
// explicit IANA timezone and Duration is non-negative.
type CalendarEvent struct {
	ID          string
	ExtractedAt time.Time
	Start       time.Time
	Duration    time.Duration
	Summary     string
	Description string
	Location    string
	URL         string
	Image       string

	// RecurrenceRule is an RFC 5545 RRULE value, passed through verbatim.
	RecurrenceRule string

	// SourceCalendar and SourceCalendarName are provenance fields set when
	// the event is merged into an aggregate calendar. Empty on events still
	// owned by their originating calendar.
	SourceCalendar     string
	SourceCalendarName string
}

// ExtractionError is a structured extraction failure. It carries enough
// context to diagnose without re-running the scrape.
type ExtractionError struct {
	Kind    ErrorKind
	Reason  string
	Context string
	// Path is the offending file path or URL, set for FileParseError and
	// ImportError.
	Path string
}

func (e ExtractionError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Reason, e.Path)
	}
	if e.Context != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Reason, e.Context)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

// Result is a single extractor output: either a CalendarEvent or an
// ExtractionError. Downstream code partitions by variant via Partition,
// never by probing optional fields.
type Result interface {
	result()
}

func (CalendarEvent) result()   {}
func (ExtractionError) result() {}

// Partition splits a result sequence into events and errors, preserving
// the relative order within each variant.
func Partition(results []Result) ([]CalendarEvent, []ExtractionError) {
	var events []CalendarEvent
	var errs []ExtractionError
	for _, r := range results {
		switch v := r.(type) {
		case CalendarEvent:
			events = append(events, v)
		case ExtractionError:
			errs = append(errs, v)
		}
	}
	return events, errs
}
