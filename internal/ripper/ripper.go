// Package ripper defines the contract every per-source extractor implements
// and the shared deduplication discipline they follow.
package ripper

import (
	"context"
	"sort"
	"sync"

	"github.com/prestomation/calendar-ripper-sub001/internal/config"
	"github.com/prestomation/calendar-ripper-sub001/internal/domain"
)

// Ripper extracts calendars from one source. Implementations must isolate
// per-listing parse failures as domain.ExtractionError values and prefix
// their generated event ids with a short source tag so ids stay globally
// unique once merged into aggregates.
type Ripper interface {
	Name() string
	Rip(ctx context.Context, cfg config.RipperConfig) ([]domain.Calendar, error)
}

// RunStarter is implemented by rippers carrying state scoped to one
// generation run, such as a per-run dedup context. The registry notifies
// them at the start of every run so a long-lived instance serving a
// scheduler does not bleed state across runs.
type RunStarter interface {
	BeginRun()
}

// Registry maps ripper names to implementations.
type Registry struct {
	mu      sync.RWMutex
	rippers map[string]Ripper
}

func NewRegistry() *Registry {
	return &Registry{rippers: make(map[string]Ripper)}
}

func (r *Registry) Register(rip Ripper) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rippers[rip.Name()] = rip
}

func (r *Registry) Get(name string) (Ripper, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rip, ok := r.rippers[name]
	return rip, ok
}

// BeginRun notifies every registered ripper that implements RunStarter
// that a new generation run is starting.
func (r *Registry) BeginRun() {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rip := range r.rippers {
		if s, ok := rip.(RunStarter); ok {
			s.BeginRun()
		}
	}
}

// Names returns the registered ripper names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.rippers))
	for name := range r.rippers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
