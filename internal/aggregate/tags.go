package aggregate

import (
	"sort"

	"github.com/prestomation/calendar-ripper-sub001/internal/domain"
)

// PrepareTaggedCalendars resolves each calendar's final tag set: the
// deduplicated union of its source-level and calendar-level declarations.
// Both maps default to empty for unknown names. A tag declared at both
// levels appears once.
func PrepareTaggedCalendars(calendars []domain.Calendar, sourceTagsByName, calendarTagsByName map[string][]string) []domain.TaggedCalendar {
	tagged := make([]domain.TaggedCalendar, 0, len(calendars))
	for _, cal := range calendars {
		tags := unionTags(sourceTagsByName[cal.Name], calendarTagsByName[cal.Name])
		tagged = append(tagged, domain.TaggedCalendar{Calendar: cal, Tags: tags})
	}
	return tagged
}

// PrepareTaggedExternalCalendars pairs enabled external calendars with
// their tags. Disabled entries are filtered here, exactly once, so they can
// never contribute events or appear in any aggregate downstream.
func PrepareTaggedExternalCalendars(externals []domain.ExternalCalendar) []domain.TaggedExternalCalendar {
	tagged := make([]domain.TaggedExternalCalendar, 0, len(externals))
	for _, ext := range externals {
		if ext.Disabled {
			continue
		}
		tags := ext.Tags
		if tags == nil {
			tags = []string{}
		}
		tagged = append(tagged, domain.TaggedExternalCalendar{External: ext, Tags: tags})
	}
	return tagged
}

// CollectAllTags returns every distinct tag appearing on any internal or
// external calendar, sorted for reproducible output.
func CollectAllTags(tagged []domain.TaggedCalendar, externals []domain.TaggedExternalCalendar) []string {
	seen := make(map[string]struct{})
	var tags []string
	add := func(ts []string) {
		for _, t := range ts {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			tags = append(tags, t)
		}
	}
	for _, tc := range tagged {
		add(tc.Tags)
	}
	for _, te := range externals {
		add(te.Tags)
	}
	sort.Strings(tags)
	return tags
}

func unionTags(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, t := range append(append([]string{}, a...), b...) {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
