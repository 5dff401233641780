package ripper

// DedupScope controls the lifetime of a deduplication context. Some sources
// repeat the same listing across date pages within one extraction call;
// others repeat listings across calls in the same run. Each extractor picks
// its scope explicitly at construction so the intent is testable.
type DedupScope int

const (
	// ScopePerCall dedupes only within a single Rip invocation.
	ScopePerCall DedupScope = iota
	// ScopePerRun dedupes across all Rip invocations sharing the context.
	ScopePerRun
)

// Dedup tracks event keys already emitted by an extractor.
type Dedup struct {
	scope DedupScope
	seen  map[string]struct{}
}

func NewDedup(scope DedupScope) *Dedup {
	return &Dedup{scope: scope, seen: make(map[string]struct{})}
}

// Seen records key and reports whether it was already present. Duplicates
// are dropped silently by callers, never turned into errors.
func (d *Dedup) Seen(key string) bool {
	if _, ok := d.seen[key]; ok {
		return true
	}
	d.seen[key] = struct{}{}
	return false
}

// BeginCall resets the context when it is scoped to a single call.
// Extractors call it at the top of every Rip invocation.
func (d *Dedup) BeginCall() {
	if d.scope == ScopePerCall {
		d.seen = make(map[string]struct{})
	}
}

// BeginRun resets the context unconditionally. A run boundary invalidates
// every scope: a long-lived extractor serving a scheduler must republish
// still-live listings on the next run, not dedupe them away.
func (d *Dedup) BeginRun() {
	d.seen = make(map[string]struct{})
}
