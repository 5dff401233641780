package pipeline

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks
//go:generate mockgen -destination=mocks/ripper.go -package=mocks github.com/prestomation/calendar-ripper-sub001/internal/ripper Ripper

import (
	"context"

	"github.com/prestomation/calendar-ripper-sub001/internal/aggregate"
	"github.com/prestomation/calendar-ripper-sub001/internal/domain"
)

// Aggregator synthesizes aggregate and republished external calendars.
type Aggregator interface {
	Run(ctx context.Context, tagged []domain.TaggedCalendar, externals []domain.TaggedExternalCalendar) aggregate.Result
}

// FeedWriter publishes one calendar and returns its filename.
type FeedWriter interface {
	WriteCalendar(cal domain.Calendar) (string, error)
}
