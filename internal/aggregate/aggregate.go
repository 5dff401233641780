// Package aggregate merges tagged internal calendars and external ICS feeds
// into one synthesized calendar per tag.
package aggregate

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/prestomation/calendar-ripper-sub001/internal/domain"
)

// prefetchLimit bounds concurrent external feed fetches.
const prefetchLimit = 4

// ExternalFetcher retrieves the in-window events of one external ICS feed.
type ExternalFetcher interface {
	Fetch(ctx context.Context, url string) ([]domain.CalendarEvent, error)
}

// Engine synthesizes aggregate calendars. Construct one per run.
type Engine struct {
	fetcher ExternalFetcher
	logger  *slog.Logger
}

func NewEngine(fetcher ExternalFetcher, logger *slog.Logger) *Engine {
	return &Engine{fetcher: fetcher, logger: logger}
}

type fetchOutcome struct {
	events []domain.CalendarEvent
	err    error
}

// Result is everything one engine run produces.
type Result struct {
	// Aggregates holds one calendar per distinct tag.
	Aggregates []domain.Calendar
	// ExternalFeeds holds one locally republished calendar per enabled
	// external source, so subscribers get a stable URL independent of the
	// third party's.
	ExternalFeeds []domain.Calendar
}

// Run prefetches every distinct external feed once, republishes each
// enabled external calendar as its own feed, and builds one aggregate per
// tag from the shared cache.
func (e *Engine) Run(ctx context.Context, tagged []domain.TaggedCalendar, externals []domain.TaggedExternalCalendar) Result {
	cache := e.prefetchExternals(ctx, externals)

	var res Result
	tags := CollectAllTags(tagged, externals)
	for _, tag := range tags {
		res.Aggregates = append(res.Aggregates, e.buildAggregate(tag, tagged, externals, cache))
	}

	for _, te := range externals {
		cal := domain.Calendar{
			Name:         te.External.Name,
			FriendlyName: te.External.FriendlyName,
			Tags:         te.Tags,
		}
		outcome := cache[te.External.IcsURL]
		if outcome.err != nil {
			cal.Errors = append(cal.Errors, domain.ExtractionError{
				Kind:   domain.ImportError,
				Reason: outcome.err.Error(),
				Path:   te.External.IcsURL,
			})
		}
		cal.Events = outcome.events
		res.ExternalFeeds = append(res.ExternalFeeds, cal)
	}

	return res
}

// CreateAggregateCalendars builds one aggregate calendar per distinct tag.
// Every aggregate is emitted even when its event list is empty; the deploy
// check relies on the file continuing to exist for subscribers. External
// feeds are fetched at most once per run regardless of how many tags
// reference them, and a failed feed degrades to one ImportError per owning
// aggregate rather than aborting the run.
func (e *Engine) CreateAggregateCalendars(ctx context.Context, tagged []domain.TaggedCalendar, externals []domain.TaggedExternalCalendar) []domain.Calendar {
	return e.Run(ctx, tagged, externals).Aggregates
}

// prefetchExternals fetches each distinct ICS URL once, concurrently. The
// resulting cache is scoped to this run and discarded with it.
func (e *Engine) prefetchExternals(ctx context.Context, externals []domain.TaggedExternalCalendar) map[string]fetchOutcome {
	cache := make(map[string]fetchOutcome)
	if e.fetcher == nil {
		return cache
	}

	var urls []string
	for _, te := range externals {
		url := te.External.IcsURL
		if _, ok := cache[url]; ok {
			continue
		}
		cache[url] = fetchOutcome{}
		urls = append(urls, url)
	}

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(prefetchLimit)

	for _, url := range urls {
		url := url
		g.Go(func() error {
			events, err := e.fetcher.Fetch(ctx, url)
			mu.Lock()
			cache[url] = fetchOutcome{events: events, err: err}
			mu.Unlock()
			return nil
		})
	}
	// Goroutines report failures through the cache, never as group errors.
	_ = g.Wait()

	return cache
}

func (e *Engine) buildAggregate(tag string, tagged []domain.TaggedCalendar, externals []domain.TaggedExternalCalendar, cache map[string]fetchOutcome) domain.Calendar {
	agg := domain.Calendar{
		Name:         AggregateName(tag),
		FriendlyName: tag,
	}

	for _, tc := range tagged {
		if !containsTag(tc.Tags, tag) {
			continue
		}
		for _, ev := range tc.Calendar.Events {
			agg.Events = append(agg.Events, annotate(ev, tc.Calendar.FriendlyName, tc.Calendar.Name))
		}
		agg.Errors = append(agg.Errors, tc.Calendar.Errors...)
	}

	for _, te := range externals {
		if !containsTag(te.Tags, tag) {
			continue
		}
		outcome := cache[te.External.IcsURL]
		if outcome.err != nil {
			agg.Errors = append(agg.Errors, domain.ExtractionError{
				Kind:   domain.ImportError,
				Reason: outcome.err.Error(),
				Path:   te.External.IcsURL,
			})
			continue
		}
		for _, ev := range outcome.events {
			agg.Events = append(agg.Events, annotate(ev, te.External.FriendlyName, te.External.Name))
		}
	}

	// Epoch-second granularity, stable on ties: two events at the same
	// instant keep their input order.
	sort.SliceStable(agg.Events, func(i, j int) bool {
		return agg.Events[i].Start.Unix() < agg.Events[j].Start.Unix()
	})

	e.logger.Debug("built aggregate", "tag", tag, "name", agg.Name, "events", len(agg.Events), "errors", len(agg.Errors))
	return agg
}

// annotate copies ev with provenance fields set and the disclosure suffix
// appended to its description, so aggregated events always name their
// origin even without an original description.
func annotate(ev domain.CalendarEvent, friendlyName, name string) domain.CalendarEvent {
	ev.SourceCalendar = friendlyName
	ev.SourceCalendarName = name
	ev.Description = ev.Description + "\n\nFrom " + friendlyName
	return ev
}
