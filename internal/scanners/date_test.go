package scanners

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearledgr/clearledgr-ap/internal/models"
)

func TestScanDatesNormalizesToISO(t *testing.T) {
	testCases := []struct {
		name     string
		text     string
		expected string
	}{
		{"month day year", "Issued on March 15, 2024 by accounts payable", "2024-03-15"},
		{"day month year", "Dated: 15 March 2024", "2024-03-15"},
		{"iso", "Date: 2024-03-15", "2024-03-15"},
		{"slash month first", "Date: 03/15/2024", "2024-03-15"},
		{"slash day first", "Date: 15/03/2024", "2024-03-15"},
		{"ordinal", "Invoice date: 3rd March 2024", "2024-03-03"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			best := PickBest(ScanDates(tc.text, models.SourceEmail))
			require.NotNil(t, best)
			assert.Equal(t, tc.expected, best.Value)
		})
	}
}

func TestScanDatesPrefersIssueOverDue(t *testing.T) {
	text := "Invoice date: March 15, 2024. Payment due date: April 14, 2024."
	best := PickBest(ScanDates(text, models.SourceEmail))

	require.NotNil(t, best)
	assert.Equal(t, "2024-03-15", best.Value)
}

func TestScanDatesPayByIsDueLabel(t *testing.T) {
	candidates := ScanDates("Pay by 14 April 2024", models.SourceEmail)
	require.Len(t, candidates, 1)
	assert.Equal(t, "2024-04-14", candidates[0].Value)
	assert.Equal(t, dateLabelBase+dueLabelPenalty, candidates[0].Score)

	text := "Invoice date: March 15, 2024. Pay by April 14, 2024."
	best := PickBest(ScanDates(text, models.SourceEmail))
	require.NotNil(t, best)
	assert.Equal(t, "2024-03-15", best.Value)
}

func TestScanDatesSkipsBillingPeriod(t *testing.T) {
	candidates := ScanDates("Billing period: 2024-03-01", models.SourceAttachment)
	assert.Empty(t, candidates)
}

func TestScanDatesSkipsReferenceContext(t *testing.T) {
	// A date-shaped token right after an identifier label is a reference
	// fragment, not a document date.
	candidates := ScanDates("Order number: 2024-03-15", models.SourceEmail)
	assert.Empty(t, candidates)
}

func TestScanDatesYearBounds(t *testing.T) {
	candidates := ScanDates("Archive snapshot 01/01/1989 restored", models.SourceEmail)
	assert.Empty(t, candidates)
}
