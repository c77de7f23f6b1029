package scanners

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearledgr/clearledgr-ap/internal/models"
)

func TestScoreVendorName(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected int
	}{
		{"long company name", "Amazon Web Services", 15},
		{"legal suffix", "Acme Corp", 22},
		{"acronym", "AWS", 6},
		{"pure noise word", "Billing", 0},
		{"empty", "", 0},
		{"noise inside name", "Acme Billing Team", 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ScoreVendorName(tc.input))
		})
	}
}

func TestScoreVendorNameRoundTrip(t *testing.T) {
	// Every candidate the scanners emit was admitted with quality above zero,
	// so re-scoring an already chosen vendor never yields zero.
	candidates := ScanVendorEmail(
		"Invoice #INV-2024-0892 from AWS",
		"Thank you for your business.",
		"Amazon Web Services",
		"billing@amazon.com",
	)
	require.NotEmpty(t, candidates)

	for _, c := range candidates {
		assert.Positive(t, ScoreVendorName(c.Value), "candidate %q", c.Value)
	}
}

func TestScanVendorEmailPrefersDisplayName(t *testing.T) {
	candidates := ScanVendorEmail(
		"Invoice #INV-2024-0892 from AWS",
		"Total: $12,847.32",
		"Amazon Web Services",
		"billing@amazon.com",
	)
	best := PickBest(candidates)

	require.NotNil(t, best)
	assert.Equal(t, "Amazon Web Services", best.Value)
}

func TestScanVendorEmailDisplayNameOutranksBodyLabel(t *testing.T) {
	// Sender identity is stronger evidence than a labeled body line when both
	// names are equally plausible.
	candidates := ScanVendorEmail(
		"Your receipt",
		"Merchant: Initech Ltd",
		"Globex GmbH",
		"noreply@globex.com",
	)
	best := PickBest(candidates)

	require.NotNil(t, best)
	assert.Equal(t, "Globex GmbH", best.Value)
}

func TestScanVendorEmailSubjectColonPrefix(t *testing.T) {
	candidates := ScanVendorEmail("Figma Software: your renewal", "", "", "noreply@figma.com")
	best := PickBest(candidates)

	require.NotNil(t, best)
	assert.Equal(t, "Figma Software", best.Value)
}

func TestScanVendorEmailFinancePrefixSkipped(t *testing.T) {
	// "Invoice: ..." is finance phrasing, not a vendor prefix; the domain is
	// the only usable identity left.
	candidates := ScanVendorEmail("Invoice: March renewal", "", "", "billing@figma.com")
	best := PickBest(candidates)

	require.NotNil(t, best)
	assert.Equal(t, "Figma", best.Value)
}

func TestScanVendorEmailSenderNameSplit(t *testing.T) {
	candidates := ScanVendorEmail("Your invoice", "", "John from Acme Corp", "john@acme.io")
	best := PickBest(candidates)

	require.NotNil(t, best)
	assert.Equal(t, "Acme Corp", best.Value)
}

func TestScanVendorEmailNoiseSenderFallsBackToDomain(t *testing.T) {
	candidates := ScanVendorEmail("Receipt", "", "Billing", "billing@stripe.com")
	best := PickBest(candidates)

	require.NotNil(t, best)
	assert.Equal(t, "Stripe", best.Value)
}

func TestScanVendorTextLabeledLine(t *testing.T) {
	text := "Vendor: Globex GmbH Invoice Number: INV-7001"
	candidates := ScanVendorText(text, models.SourceAttachment)
	best := PickBest(candidates)

	require.NotNil(t, best)
	assert.Equal(t, "Globex GmbH", best.Value)
	assert.Equal(t, models.SourceAttachment, best.Source)
}

func TestScanVendorTextLegalSuffix(t *testing.T) {
	text := "Services provided by Initech LLC under master agreement."
	candidates := ScanVendorText(text, models.SourceAttachment)
	best := PickBest(candidates)

	require.NotNil(t, best)
	assert.Equal(t, "Initech LLC", best.Value)
}
