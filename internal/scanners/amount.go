package scanners

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/clearledgr/clearledgr-ap/internal/models"
)

// Amounts above this bound are rejected outright as misparses.
var maxPlausibleAmount = decimal.NewFromInt(10_000_000)

// minAmountKeepScore is the floor below which a candidate with no currency
// marker is discarded before ranking.
const minAmountKeepScore = 8

const numToken = `\d(?:[\d.,]*\d)?`

// amountPattern is one family of the amount cascade: a regex, its base
// score, and which capture groups hold the currency marker and number token.
type amountPattern struct {
	re       *regexp.Regexp
	base     int
	curGroup int // 0 when the family carries no currency marker
	numGroup int
}

var amountPatterns = []amountPattern{
	// currency code then number: "USD 1,234.56"
	{regexp.MustCompile(`(?i)\b(USD|EUR|GBP|CHF|CAD|AUD)\s?(` + numToken + `)`), 10, 1, 2},
	// number then currency code: "1.234,56 EUR"
	{regexp.MustCompile(`(?i)\b(` + numToken + `)\s?(USD|EUR|GBP|CHF|CAD|AUD)\b`), 10, 2, 1},
	// symbol then number: "$1,234.56"
	{regexp.MustCompile(`([$€£])\s?(` + numToken + `)`), 10, 1, 2},
	// amount keyword then number: "Total: 1,234.56"
	{regexp.MustCompile(`(?i)\b(?:total|amount\s+due|balance\s+due|paid|charged)\b\s*:?\s*(?:of\s+)?([$€£])?\s?(` + numToken + `)`), 8, 1, 2},
	// bare thousands-grouped decimal: "1,234.56" / "1.234,56"
	{regexp.MustCompile(`\b(\d{1,3}(?:,\d{3})+(?:\.\d{1,2})?|\d{1,3}(?:\.\d{3})+(?:,\d{1,2})?)\b`), 3, 0, 1},
}

var (
	amountDueRe     = regexp.MustCompile(`\b(total|amount|balance)\s+due\b`)
	bareTotalRe     = regexp.MustCompile(`\btotal\b`)
	amountKeywordRe = regexp.MustCompile(`\b(total|amount|due|paid|charged|balance|payment)\b`)
	paymentVerbRe   = regexp.MustCompile(`\b(amount|paid|charged|payment)\b`)
	deductionRe     = regexp.MustCompile(`\b(subtotal|tax|vat|shipping|discount|fee|fees)\b`)
	referenceCtxRe  = regexp.MustCompile(`\b(order|account|reference|ref|confirmation)\b`)
)

// ScanAmounts scans a normalized text blob for monetary amount candidates.
func ScanAmounts(text string, source models.Source) []models.FieldCandidate {
	// Best score per number-token position; overlapping families produce
	// duplicate candidates for the same token.
	best := map[int]models.FieldCandidate{}

	for _, p := range amountPatterns {
		for _, loc := range p.re.FindAllStringSubmatchIndex(text, -1) {
			numStart, numEnd := loc[2*p.numGroup], loc[2*p.numGroup+1]
			if numStart < 0 {
				continue
			}
			token := text[numStart:numEnd]

			currency := ""
			if p.curGroup > 0 && loc[2*p.curGroup] >= 0 {
				currency = normalizeCurrency(text[loc[2*p.curGroup]:loc[2*p.curGroup+1]])
			}

			value, err := ParseAmount(token)
			if err != nil {
				continue
			}
			if value.IsNegative() || value.GreaterThan(maxPlausibleAmount) {
				continue
			}

			ctx := contextWindow(text, loc[0], loc[1])
			score := p.base + scoreAmountContext(strings.ToLower(ctx), value, token, currency)

			if score < minAmountKeepScore && currency == "" {
				continue
			}

			money := models.NewMoney(value, currency)
			candidate := models.FieldCandidate{
				Field:    models.FieldAmount,
				Value:    money.String(),
				Raw:      token,
				Money:    &money,
				Score:    score,
				Position: numStart,
				Context:  ctx,
				Source:   source,
			}
			if existing, ok := best[numStart]; !ok || candidate.Score > existing.Score {
				best[numStart] = candidate
			}
		}
	}

	candidates := make([]models.FieldCandidate, 0, len(best))
	for _, c := range best {
		candidates = append(candidates, c)
	}
	return candidates
}

// scoreAmountContext applies the context-sensitive adjustments to a base
// pattern score. ctx must already be lower-cased.
func scoreAmountContext(ctx string, value decimal.Decimal, token, currency string) int {
	score := 0

	hasAmountKeyword := amountKeywordRe.MatchString(ctx)

	switch {
	case amountDueRe.MatchString(ctx):
		score += 45
	case bareTotalRe.MatchString(ctx):
		score += 20
	case paymentVerbRe.MatchString(ctx):
		score += 12
	}

	if deductionRe.MatchString(ctx) {
		score -= 20
	}
	if !hasAmountKeyword && referenceCtxRe.MatchString(ctx) {
		score -= 12
	}
	if currency != "" {
		score += 5
	}

	// A bare 1900-2105 integer near a month name or "date" is almost always a
	// year, not an amount.
	if !strings.ContainsAny(token, ".,") && looksLikeYear(value) && !hasAmountKeyword {
		if containsMonthName(ctx) || strings.Contains(ctx, "date") {
			score -= 50
		}
	}

	if value.GreaterThanOrEqual(decimal.NewFromInt(100)) {
		score += 2
	}
	if value.LessThan(decimal.NewFromInt(2)) {
		score -= 4
	}

	return score
}

var currencyCodeRe = regexp.MustCompile(`^[A-Za-z]{3}$`)

// normalizeCurrency upper-cases three-letter codes and leaves symbols as-is.
func normalizeCurrency(marker string) string {
	if currencyCodeRe.MatchString(marker) {
		return strings.ToUpper(marker)
	}
	return marker
}

func looksLikeYear(value decimal.Decimal) bool {
	if !value.Equal(value.Truncate(0)) {
		return false
	}
	return value.GreaterThanOrEqual(decimal.NewFromInt(1900)) &&
		value.LessThanOrEqual(decimal.NewFromInt(2105))
}

// ParseAmount parses a numeric token, disambiguating comma and period as
// thousands-vs-decimal separators: when both are present the later-occurring
// separator is the decimal point; a lone comma with exactly two trailing
// digits is a decimal comma; otherwise commas group thousands.
func ParseAmount(token string) (decimal.Decimal, error) {
	token = strings.TrimSpace(token)
	hasComma := strings.Contains(token, ",")
	hasDot := strings.Contains(token, ".")

	switch {
	case hasComma && hasDot:
		if strings.LastIndex(token, ",") > strings.LastIndex(token, ".") {
			token = strings.ReplaceAll(token, ".", "")
			idx := strings.LastIndex(token, ",")
			token = strings.ReplaceAll(token[:idx], ",", "") + "." + token[idx+1:]
		} else {
			token = strings.ReplaceAll(token, ",", "")
		}
	case hasComma:
		idx := strings.LastIndex(token, ",")
		if len(token)-idx-1 == 2 {
			token = strings.ReplaceAll(token[:idx], ",", "") + "." + token[idx+1:]
		} else {
			token = strings.ReplaceAll(token, ",", "")
		}
	case hasDot:
		// Multiple periods can only be thousands grouping.
		if strings.Count(token, ".") > 1 {
			token = strings.ReplaceAll(token, ".", "")
		}
	}

	return decimal.NewFromString(token)
}
