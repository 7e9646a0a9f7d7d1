// Package headline provides composable filter predicates over headline
// records.
package headline

import (
	"regexp"
	"strings"

	"tickerboard/internal/domain/models"
)

// Predicate reports whether a headline should be kept.
type Predicate func(models.HeadlineRecord) bool

var (
	yearPattern    = regexp.MustCompile(`\d{4}`)
	yearArgPattern = regexp.MustCompile(`^\d{4}$`)
)

// ValidYear reports whether year is exactly four digits.
func ValidYear(year string) bool {
	return yearArgPattern.MatchString(year)
}

// ByYear keeps a headline iff the first run of four consecutive digits in
// its timestamp equals year. Headlines whose timestamp contains no 4-digit
// run are excluded; a malformed record never aborts the query. The caller
// is responsible for validating year with ValidYear.
func ByYear(year string) Predicate {
	return func(h models.HeadlineRecord) bool {
		return yearPattern.FindString(h.Timestamp) == year
	}
}

// ByText keeps a headline when either the headline or the description
// contains query, case-insensitively. An empty query matches everything.
func ByText(query string) Predicate {
	query = strings.ToLower(query)
	return func(h models.HeadlineRecord) bool {
		if query == "" {
			return true
		}
		return strings.Contains(strings.ToLower(h.Headline), query) ||
			strings.Contains(strings.ToLower(h.Description), query)
	}
}

// BySource keeps headlines from an exact source. The wildcard "all" (or an
// empty source) bypasses the filter entirely.
func BySource(source string) Predicate {
	return func(h models.HeadlineRecord) bool {
		if source == "" || source == models.HeadlineSourceAll {
			return true
		}
		return h.Source == source
	}
}

// Apply returns the headlines matching every predicate.
func Apply(records []models.HeadlineRecord, preds ...Predicate) []models.HeadlineRecord {
	kept := make([]models.HeadlineRecord, 0, len(records))
next:
	for _, rec := range records {
		for _, pred := range preds {
			if !pred(rec) {
				continue next
			}
		}
		kept = append(kept, rec)
	}
	return kept
}
