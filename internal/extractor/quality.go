package extractor

import (
	"regexp"
	"strings"
)

// Text-quality bonuses. A clean invoice body reaches the pipeline's
// early-stop threshold from text evidence alone.
const (
	qualityMinChars  = 30
	qualityLenBonus  = 10
	qualityLongChars = 400
	qualityLongBonus = 10
	invoiceWordBonus = 25
	docWordBonus     = 15
	dueBonus         = 20
	currencyBonus    = 15
)

var (
	invoiceWordRe = regexp.MustCompile(`(?i)\binvoice\b`)
	docWordRe     = regexp.MustCompile(`(?i)\b(bill|billing|statement|receipt|remittance)\b`)
	dueWordRe     = regexp.MustCompile(`(?i)\b(total|amount|balance)\s+due\b|\btotal\b`)
	currencyRe    = regexp.MustCompile(`(?i)[$€£]\s?\d|\b(usd|eur|gbp|chf|cad|aud)\b`)
)

// scoreTextQuality estimates how likely the extracted text is a financial
// document. Too-short text scores zero outright.
func scoreTextQuality(text string) int {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < qualityMinChars {
		return 0
	}

	score := qualityLenBonus
	if len(trimmed) >= qualityLongChars {
		score += qualityLongBonus
	}
	if invoiceWordRe.MatchString(trimmed) {
		score += invoiceWordBonus
	} else if docWordRe.MatchString(trimmed) {
		score += docWordBonus
	}
	if dueWordRe.MatchString(trimmed) {
		score += dueBonus
	}
	if currencyRe.MatchString(trimmed) {
		score += currencyBonus
	}
	return score
}
