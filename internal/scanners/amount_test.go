package scanners

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearledgr/clearledgr-ap/internal/models"
)

func TestParseAmount(t *testing.T) {
	testCases := []struct {
		token    string
		expected string
	}{
		{"1,234.56", "1234.56"},
		{"1.234,56", "1234.56"},
		{"1234,56", "1234.56"},
		{"12,847.32", "12847.32"},
		{"1,234", "1234"},
		{"1.234.567", "1234567"},
		{"1.234.567,89", "1234567.89"},
		{"45.00", "45"},
		{"2024", "2024"},
	}

	for _, tc := range testCases {
		t.Run(tc.token, func(t *testing.T) {
			value, err := ParseAmount(tc.token)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, value.String())
		})
	}
}

func TestScanAmountsTotalDue(t *testing.T) {
	text := "Subtotal: $100.00 for the services rendered during the month of July as detailed below. Total due: $108.25"
	best := PickBest(ScanAmounts(text, models.SourceEmail))

	require.NotNil(t, best)
	assert.Equal(t, "108.25", best.Money.Amount.String())
	assert.Equal(t, "$", best.Money.Currency)
}

func TestScanAmountsDeductionPenalty(t *testing.T) {
	text := "Subtotal: $100.00 covering all line items purchased in this order cycle. Total: $150.00"
	best := PickBest(ScanAmounts(text, models.SourceEmail))

	require.NotNil(t, best)
	assert.Equal(t, "150", best.Money.Amount.String())
}

func TestScanAmountsCurrencyCode(t *testing.T) {
	best := PickBest(ScanAmounts("Amount charged: 1.234,56 EUR", models.SourceAttachment))

	require.NotNil(t, best)
	assert.Equal(t, "1234.56", best.Money.Amount.String())
	assert.Equal(t, "EUR", best.Money.Currency)
}

func TestScanAmountsYearGuard(t *testing.T) {
	// A bare integer in the year range next to a month name is punished hard
	// even when a currency code sits beside it.
	candidates := ScanAmounts("Order date: 15 March USD 2024", models.SourceEmail)

	require.Len(t, candidates, 1)
	assert.Negative(t, candidates[0].Score)
}

func TestScanAmountsRejectsImplausible(t *testing.T) {
	candidates := ScanAmounts("Total: $99,000,000.00", models.SourceEmail)
	assert.Empty(t, candidates)
}

func TestScanAmountsBareNumberNeedsScore(t *testing.T) {
	// A grouped number with no currency and no amount context stays below the
	// keep threshold.
	candidates := ScanAmounts("Tracking code 1,234,567 assigned to your parcel", models.SourceEmail)
	assert.Empty(t, candidates)
}
