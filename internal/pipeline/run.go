// Package pipeline orchestrates one full generation run: rip every
// configured source, aggregate by tag, publish feeds and the manifest.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/prestomation/calendar-ripper-sub001/internal/aggregate"
	"github.com/prestomation/calendar-ripper-sub001/internal/config"
	"github.com/prestomation/calendar-ripper-sub001/internal/domain"
	"github.com/prestomation/calendar-ripper-sub001/internal/manifest"
	"github.com/prestomation/calendar-ripper-sub001/internal/ripper"
)

type Service struct {
	cfg      *config.Config
	registry *ripper.Registry
	engine   Aggregator
	writer   FeedWriter
	logger   *slog.Logger
}

func NewService(
	cfg *config.Config,
	registry *ripper.Registry,
	engine Aggregator,
	writer FeedWriter,
	logger *slog.Logger,
) *Service {
	return &Service{
		cfg:      cfg,
		registry: registry,
		engine:   engine,
		writer:   writer,
		logger:   logger,
	}
}

// Run performs one generation run. A ripper whose extraction fails costs
// only its own calendars; the run proceeds and publishes everything else.
// Only an unwritable output directory aborts the run.
func (s *Service) Run(ctx context.Context) (*domain.RunStats, error) {
	startTime := time.Now()
	stats := &domain.RunStats{RunID: uuid.NewString()}
	logger := s.logger.With("run_id", stats.RunID)

	logger.Info("starting generation run",
		"rippers", len(s.cfg.Rippers),
		"external_calendars", len(s.cfg.ExternalCalendars),
	)

	// Run-scoped ripper state (dedup contexts) is reset here, not at
	// construction: in scheduler mode the same instances serve every run.
	s.registry.BeginRun()

	sourceTags := make(map[string][]string)
	calendarTags := make(map[string][]string)
	var sources []manifest.Source
	var calendars []domain.Calendar

	for _, rc := range s.cfg.Rippers {
		impl, ok := s.registry.Get(rc.Name)
		if !ok {
			logger.Error("no ripper registered for configured source", "ripper", rc.Name)
			stats.Errors++
			continue
		}

		cals, err := impl.Rip(ctx, rc)
		if err != nil {
			logger.Error("ripper failed", "ripper", rc.Name, "error", err)
			stats.Errors++
			continue
		}

		for _, cal := range cals {
			sourceTags[cal.Name] = rc.Tags
			calendarTags[cal.Name] = cal.Tags
			stats.Events += len(cal.Events)
			stats.Errors += len(cal.Errors)
		}
		stats.Calendars += len(cals)
		calendars = append(calendars, cals...)
		sources = append(sources, manifest.Source{Name: rc.Name, Calendars: cals})
	}

	tagged := aggregate.PrepareTaggedCalendars(calendars, sourceTags, calendarTags)

	externals := make([]domain.ExternalCalendar, 0, len(s.cfg.ExternalCalendars))
	for _, ec := range s.cfg.ExternalCalendars {
		externals = append(externals, ec.Domain())
	}
	taggedExternals := aggregate.PrepareTaggedExternalCalendars(externals)

	res := s.engine.Run(ctx, tagged, taggedExternals)
	stats.Aggregates = len(res.Aggregates)
	stats.Externals = len(res.ExternalFeeds)

	toWrite := make([]domain.Calendar, 0, len(calendars)+len(res.ExternalFeeds)+len(res.Aggregates))
	toWrite = append(toWrite, calendars...)
	toWrite = append(toWrite, res.ExternalFeeds...)
	toWrite = append(toWrite, res.Aggregates...)

	for _, cal := range toWrite {
		if _, err := s.writer.WriteCalendar(cal); err != nil {
			return stats, fmt.Errorf("write feed %s: %w", cal.Name, err)
		}
		stats.Written++
	}

	tags := aggregate.CollectAllTags(tagged, taggedExternals)
	if err := manifest.Write(s.cfg.OutputDir, manifest.Build(sources, externals, tags)); err != nil {
		return stats, err
	}

	stats.Duration = time.Since(startTime)

	logger.Info("generation run completed",
		"calendars", stats.Calendars,
		"events", stats.Events,
		"errors", stats.Errors,
		"aggregates", stats.Aggregates,
		"externals", stats.Externals,
		"written", stats.Written,
		"duration", stats.Duration,
	)

	return stats, nil
}
