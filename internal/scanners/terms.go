package scanners

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/clearledgr/clearledgr-ap/internal/models"
)

const termsScore = 10

// Ordered by specificity; the first matching pattern wins.
var termsPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bpayment\s+terms\s*:?\s*net\s*(\d{1,3})\b`),
	regexp.MustCompile(`(?i)\bnet\s*(\d{1,3})\b`),
	regexp.MustCompile(`(?i)\bdue\s+in\s+(\d{1,3})\s+days\b`),
	regexp.MustCompile(`(?i)\bdue\s+(?:upon|on)\s+receipt\b`),
}

// ScanPaymentTerms scans text for payment terms. Numeric forms normalize to
// "Net N"; only the first match is reported.
func ScanPaymentTerms(text string, source models.Source) []models.FieldCandidate {
	for _, re := range termsPatterns {
		loc := re.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}

		raw := text[loc[0]:loc[1]]
		value := "Due on receipt"
		if len(loc) > 2 && loc[2] >= 0 {
			days, err := strconv.Atoi(text[loc[2]:loc[3]])
			if err != nil || days == 0 || days > 365 {
				continue
			}
			value = fmt.Sprintf("Net %d", days)
		}

		return []models.FieldCandidate{{
			Field:    models.FieldPaymentTerms,
			Value:    value,
			Raw:      raw,
			Score:    termsScore,
			Position: loc[0],
			Context:  contextWindow(text, loc[0], loc[1]),
			Source:   source,
		}}
	}
	return nil
}
