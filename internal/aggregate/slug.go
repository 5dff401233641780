package aggregate

import (
	"regexp"
	"strings"
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases tag and collapses every run of characters outside
// [a-z0-9] into a single '-'. Aggregate filenames are derived from this,
// and the deploy check predicts those filenames with the same function, so
// subscribers' URLs stay stable.
func Slugify(tag string) string {
	return slugPattern.ReplaceAllString(strings.ToLower(tag), "-")
}

// AggregateName is the stable calendar name for a tag's aggregate feed.
func AggregateName(tag string) string {
	return "tag-" + Slugify(tag)
}
