package scanners

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearledgr/clearledgr-ap/internal/models"
)

func TestScanInvoiceNumbersLabeled(t *testing.T) {
	candidates := ScanInvoiceNumbers("Invoice #INV-2024-0892 is now available.", models.SourceEmail)
	best := PickBest(candidates)

	require.NotNil(t, best)
	assert.Equal(t, "INV-2024-0892", best.Value)
	assert.Equal(t, models.FieldInvoiceNumber, best.Field)
}

func TestScanInvoiceNumbersQualifiedOutranksBare(t *testing.T) {
	text := "Reference REF-99182 was assigned to your support case earlier this quarter. Invoice number INV-555 follows."
	best := PickBest(ScanInvoiceNumbers(text, models.SourceEmail))

	require.NotNil(t, best)
	assert.Equal(t, "INV-555", best.Value)
}

func TestScanInvoiceNumbersRejectsTokens(t *testing.T) {
	testCases := []struct {
		name string
		text string
	}{
		{"no digits", "Invoice attached for review"},
		{"date shaped", "Invoice 2024-03-15 period"},
		{"too short", "Invoice #A1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Empty(t, ScanInvoiceNumbers(tc.text, models.SourceEmail))
		})
	}
}

func TestScanInvoiceFilename(t *testing.T) {
	candidates := ScanInvoiceFilename("invoice_2847.pdf", models.SourceAttachment)

	require.Len(t, candidates, 1)
	assert.Equal(t, "2847", candidates[0].Value)

	// Filename matches rank below the same identifier found in body text.
	body := ScanInvoiceNumbers("invoice 2847", models.SourceEmail)
	require.Len(t, body, 1)
	assert.Greater(t, body[0].Score, candidates[0].Score)
}

func TestScanInvoiceNumbersUppercases(t *testing.T) {
	best := PickBest(ScanInvoiceNumbers("invoice no. inv-0042a issued today", models.SourceEmail))

	require.NotNil(t, best)
	assert.Equal(t, "INV-0042A", best.Value)
}
