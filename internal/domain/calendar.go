package domain

// Calendar is one named, independently publishable set of events. Its
// Events slice is owned by the pipeline run that produced it and is never
// mutated after construction.
type Calendar struct {
	// Name is the stable slug used for the published filename.
	Name         string
	FriendlyName string
	Events       []CalendarEvent
	Errors       []ExtractionError
	Tags         []string
	// Recurring marks hand-maintained recurring-event calendars, which are
	// listed separately in the manifest.
	Recurring bool
}

// ExternalCalendar is a third-party feed consumed (not produced) by this
// system.
type ExternalCalendar struct {
	Name         string
	FriendlyName string
	IcsURL       string
	InfoURL      string
	Description  string
	Disabled     bool
	Tags         []string
}

// TaggedCalendar pairs a calendar with its fully resolved tag set.
// Created fresh each aggregation run, never persisted.
type TaggedCalendar struct {
	Calendar Calendar
	Tags     []string
}

// TaggedExternalCalendar pairs an external calendar with its tag set.
type TaggedExternalCalendar struct {
	External ExternalCalendar
	Tags     []string
}
