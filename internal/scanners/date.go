package scanners

import (
	"regexp"
	"strings"
	"time"

	"github.com/clearledgr/clearledgr-ap/internal/models"
)

// Date label bonuses layered on the base shape score.
const (
	dateShapeBase    = 6
	dateLabelBase    = 10
	issueLabelBonus  = 12
	dueLabelPenalty  = -6
	minPlausibleYear = 1990
	maxPlausibleYear = 2105
)

var (
	issueLabelRe = regexp.MustCompile(`(?i)\b(invoice|issue|issued|document)\s+date\s*:?\s*$`)
	dueLabelRe   = regexp.MustCompile(`(?i)\b(due|expiry|expiration)\s+date\s*:?\s*$|\bdue\s*:?\s*$|\bpay\s+by\s*:?\s*$`)
	bareLabelRe  = regexp.MustCompile(`(?i)\b(date|dated|issued)\s*:?\s*$`)
	periodCtxRe  = regexp.MustCompile(`(?i)\b(billing|statement|service)\s+period\b`)
	idLabelCtxRe = regexp.MustCompile(`(?i)\b(number|no\.?|id|ref|reference|account|order)\s*[:#]?\s*$`)
)

// dateShape is one recognizable textual date form with its parse layouts.
type dateShape struct {
	re      *regexp.Regexp
	layouts []string
}

var dateShapes = []dateShape{
	// 15 March 2024 / 15 Mar 2024 / 15th March, 2024
	{
		regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)?\s+(January|February|March|April|May|June|July|August|September|October|November|December|Jan|Feb|Mar|Apr|Jun|Jul|Aug|Sep|Sept|Oct|Nov|Dec)\.?,?\s+(\d{4})\b`),
		[]string{"2 January 2006", "2 Jan 2006"},
	},
	// March 15, 2024 / Mar 15 2024
	{
		regexp.MustCompile(`(?i)\b(January|February|March|April|May|June|July|August|September|October|November|December|Jan|Feb|Mar|Apr|Jun|Jul|Aug|Sep|Sept|Oct|Nov|Dec)\.?\s+(\d{1,2})(?:st|nd|rd|th)?,?\s+(\d{4})\b`),
		[]string{"January 2 2006", "Jan 2 2006"},
	},
	// 2024-03-15 / 2024/03/15
	{
		regexp.MustCompile(`\b(\d{4})[-/](\d{1,2})[-/](\d{1,2})\b`),
		[]string{"2006-1-2", "2006/1/2"},
	},
	// 03/15/2024 or 15/03/2024 (and dashed): try month-first, then day-first.
	{
		regexp.MustCompile(`\b(\d{1,2})[-/](\d{1,2})[-/](\d{4})\b`),
		[]string{"1/2/2006", "2/1/2006", "1-2-2006", "2-1-2006"},
	},
}

// ScanDates scans text for document date candidates, normalized to ISO 8601.
func ScanDates(text string, source models.Source) []models.FieldCandidate {
	var candidates []models.FieldCandidate
	seen := map[int]struct{}{}

	for _, shape := range dateShapes {
		for _, loc := range shape.re.FindAllStringIndex(text, -1) {
			if _, dup := seen[loc[0]]; dup {
				continue
			}

			raw := text[loc[0]:loc[1]]
			parsed, ok := parseDateToken(raw, shape.layouts)
			if !ok {
				continue
			}
			if y := parsed.Year(); y < minPlausibleYear || y > maxPlausibleYear {
				continue
			}

			before := text[:loc[0]]
			ctx := contextWindow(text, loc[0], loc[1])

			if periodCtxRe.MatchString(ctx) {
				continue
			}
			// A date-shaped token right after an identifier label is part of a
			// reference, not a document date.
			if idLabelCtxRe.MatchString(before) {
				continue
			}

			score := dateShapeBase
			switch {
			case issueLabelRe.MatchString(before):
				score = dateLabelBase + issueLabelBonus
			case dueLabelRe.MatchString(before):
				score = dateLabelBase + dueLabelPenalty
			case bareLabelRe.MatchString(before):
				score = dateLabelBase
			}

			seen[loc[0]] = struct{}{}
			candidates = append(candidates, models.FieldCandidate{
				Field:    models.FieldDocumentDate,
				Value:    parsed.Format("2006-01-02"),
				Raw:      raw,
				Score:    score,
				Position: loc[0],
				Context:  ctx,
				Source:   source,
			})
		}
	}

	return candidates
}

var (
	ordinalRe   = regexp.MustCompile(`(?i)(\d{1,2})(st|nd|rd|th)`)
	monthWordRe = regexp.MustCompile(`(?i)\b(sept|january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sep|oct|nov|dec)\b`)
)

func parseDateToken(raw string, layouts []string) (time.Time, bool) {
	cleaned := ordinalRe.ReplaceAllString(raw, "$1")
	cleaned = strings.NewReplacer(",", "", ".", "", "  ", " ").Replace(cleaned)
	cleaned = strings.TrimSpace(cleaned)
	cleaned = canonicalizeMonths(cleaned)

	for _, layout := range layouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// canonicalizeMonths rewrites month words to the capitalization time.Parse
// expects and maps "Sept" to the parseable "Sep".
func canonicalizeMonths(s string) string {
	return monthWordRe.ReplaceAllStringFunc(s, func(word string) string {
		lower := strings.ToLower(word)
		if lower == "sept" {
			return "Sep"
		}
		return strings.ToUpper(lower[:1]) + lower[1:]
	})
}
