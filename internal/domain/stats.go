package domain

import "time"

// RunStats holds statistics about one full generation run.
type RunStats struct {
	RunID      string
	Calendars  int
	Events     int
	Errors     int
	Aggregates int
	Externals  int
	Written    int
	Duration   time.Duration
}
