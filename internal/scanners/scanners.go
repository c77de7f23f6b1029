// Package scanners implements the per-field candidate scanners. Each scanner
// is a pure function over a normalized text blob and returns zero or more
// scored candidates with surrounding context; arbitration between sources
// happens elsewhere.
package scanners

import (
	"sort"
	"strings"

	"github.com/clearledgr/clearledgr-ap/internal/models"
)

// contextRadius is the window, in characters, kept around a match for
// context-sensitive scoring and debugging.
const contextRadius = 50

// PickBest returns the highest-scoring candidate. Exact score ties go to the
// earlier-occurring match; scan order is otherwise preserved.
func PickBest(candidates []models.FieldCandidate) *models.FieldCandidate {
	if len(candidates) == 0 {
		return nil
	}
	sorted := make([]models.FieldCandidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Score != sorted[j].Score {
			return sorted[i].Score > sorted[j].Score
		}
		return sorted[i].Position < sorted[j].Position
	})
	best := sorted[0]
	return &best
}

// contextWindow returns the text surrounding [start, end), clamped to the
// blob's bounds.
func contextWindow(text string, start, end int) string {
	from := start - contextRadius
	if from < 0 {
		from = 0
	}
	to := end + contextRadius
	if to > len(text) {
		to = len(text)
	}
	return text[from:to]
}

// containsAny reports whether any needle occurs in haystack.
func containsAny(haystack string, needles ...string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}

var monthNames = []string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
	"jan", "feb", "mar", "apr", "jun", "jul", "aug", "sep", "sept", "oct", "nov", "dec",
}

// containsMonthName reports whether the text mentions a month, used by the
// amount scanner's year guard and the date shapes.
func containsMonthName(text string) bool {
	return containsAny(text, monthNames...)
}
