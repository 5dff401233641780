// Package feed serializes calendars to iCalendar text and publishes them to
// the output directory.
package feed

import (
	"log/slog"
	"net/url"

	ics "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"github.com/prestomation/calendar-ripper-sub001/internal/domain"
)

// ProdID identifies this tool in every emitted VCALENDAR.
const ProdID = "-//calendar-ripper//EN"

const localLayout = "20060102T150405"

// Serialize renders a calendar as iCalendar text.
//
// DTSTART is emitted as a UTC instant unless the event carries a recurrence
// rule, in which case it is emitted as local time with an explicit TZID so
// RRULE expansion stays anchored to wall-clock time across DST transitions.
func Serialize(cal domain.Calendar, logger *slog.Logger) string {
	c := ics.NewCalendar()
	c.SetProductId(ProdID)
	c.SetMethod(ics.MethodPublish)
	c.SetXWRCalName(cal.FriendlyName)

	for _, ev := range cal.Events {
		e := c.AddEvent(ev.ID)
		e.SetDtStampTime(ev.ExtractedAt.UTC())
		e.SetSummary(ev.Summary)
		e.SetTimeTransparency(ics.TransparencyTransparent)

		rule := validRecurrenceRule(ev.RecurrenceRule, logger)
		if rule != "" {
			tzid := &ics.KeyValues{
				Key:   string(ics.ParameterTzid),
				Value: []string{ev.Start.Location().String()},
			}
			e.SetProperty(ics.ComponentPropertyDtStart, ev.Start.Format(localLayout), tzid)
			e.SetProperty(ics.ComponentPropertyDtEnd, ev.Start.Add(ev.Duration).Format(localLayout), tzid)
			e.AddRrule(rule)
		} else {
			e.SetStartAt(ev.Start.UTC())
			e.SetEndAt(ev.Start.Add(ev.Duration).UTC())
		}

		if ev.Description != "" {
			e.SetDescription(ev.Description)
		}
		if ev.Location != "" {
			e.SetLocation(ev.Location)
		}
		if isAbsoluteHTTP(ev.URL) {
			e.SetURL(ev.URL)
		}
		if ev.Image != "" {
			e.SetProperty(ics.ComponentProperty("IMAGE"), ev.Image, &ics.KeyValues{
				Key:   "VALUE",
				Value: []string{"URI"},
			})
		}
	}

	return c.Serialize()
}

// validRecurrenceRule returns rule when it parses as an RFC 5545 RRULE,
// empty otherwise. Recurrence rules are passthrough values from extractors;
// a broken one is dropped with a log instead of corrupting the feed.
func validRecurrenceRule(rule string, logger *slog.Logger) string {
	if rule == "" {
		return ""
	}
	if _, err := rrule.StrToRRule(rule); err != nil {
		logger.Warn("dropping invalid recurrence rule", "rrule", rule, "error", err)
		return ""
	}
	return rule
}

// isAbsoluteHTTP reports whether raw is an absolute http(s) URL. Relative
// and non-web URLs are omitted from the feed entirely.
func isAbsoluteHTTP(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
