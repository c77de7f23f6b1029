package scanners

import (
	"regexp"
	"strings"

	"github.com/clearledgr/clearledgr-ap/internal/models"
)

var (
	// Label, optional qualifier, separators, then the identifier token. The
	// token class excludes "." so trailing file extensions drop off; the
	// separator class covers filename forms like "invoice_2847.pdf".
	invoiceLabelRe = regexp.MustCompile(`(?i)\b(invoice|inv|reference|order|statement|bill)(?:\s+(number|num|no\.?|#|id))?[\s:#._-]*([A-Za-z0-9][A-Za-z0-9\-_/]{1,39})`)

	dateLikeTokenRe  = regexp.MustCompile(`^\d{4}[-/]\d{1,2}[-/]\d{1,2}$|^\d{1,2}[-/]\d{1,2}[-/]\d{2,4}$`)
	separatorStripRe = regexp.MustCompile(`[-_/]`)
	anyDigitRe       = regexp.MustCompile(`\d`)
	anyLetterRe      = regexp.MustCompile(`[A-Za-z]`)
)

// ScanInvoiceNumbers scans text for invoice/reference identifiers.
func ScanInvoiceNumbers(text string, source models.Source) []models.FieldCandidate {
	return scanInvoiceNumbers(text, source, 0)
}

// ScanInvoiceFilename scans an attachment filename, which often carries the
// invoice number but is noisier than document text.
func ScanInvoiceFilename(name string, source models.Source) []models.FieldCandidate {
	return scanInvoiceNumbers(name, source, -6)
}

func scanInvoiceNumbers(text string, source models.Source, penalty int) []models.FieldCandidate {
	var candidates []models.FieldCandidate

	for _, loc := range invoiceLabelRe.FindAllStringSubmatchIndex(text, -1) {
		label := strings.ToLower(text[loc[2]:loc[3]])
		qualified := loc[4] >= 0
		token := text[loc[6]:loc[7]]

		if !plausibleInvoiceToken(token) {
			continue
		}

		score := 0
		switch {
		case (label == "invoice" || label == "inv") && qualified:
			score += 20
		case label == "invoice" || label == "inv":
			score += 8
		case qualified:
			score += 10
		default:
			score += 4
		}
		if len(token) >= 8 {
			score += 4
		}
		if anyDigitRe.MatchString(token) && anyLetterRe.MatchString(token) {
			score += 3
		}
		score += penalty

		candidates = append(candidates, models.FieldCandidate{
			Field:    models.FieldInvoiceNumber,
			Value:    strings.ToUpper(token),
			Raw:      token,
			Score:    score,
			Position: loc[0],
			Context:  contextWindow(text, loc[0], loc[1]),
			Source:   source,
		})
	}

	return candidates
}

// plausibleInvoiceToken rejects tokens that cannot be identifiers: no digit,
// too short or long once separators are stripped, or date-shaped.
func plausibleInvoiceToken(token string) bool {
	if !anyDigitRe.MatchString(token) {
		return false
	}
	if dateLikeTokenRe.MatchString(token) {
		return false
	}
	stripped := separatorStripRe.ReplaceAllString(token, "")
	return len(stripped) >= 3 && len(stripped) <= 30
}
