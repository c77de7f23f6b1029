package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clearledgr/clearledgr-ap/internal/logging"
	"github.com/clearledgr/clearledgr-ap/internal/models"
)

func TestClassifyInvoice(t *testing.T) {
	c := New(nil, logging.NewMockLogger())

	result := c.Classify(models.DocumentInput{
		Subject:     "Invoice #INV-2024-0892 from AWS",
		BodyText:    "Total: $12,847.32",
		SenderEmail: "billing@amazon.com",
	})

	assert.Equal(t, models.TypeInvoice, result.Type)
	assert.InDelta(t, 0.9, result.Confidence, 0.001)
	assert.True(t, result.Type.IsFinanceRelevant())
}

func TestClassifySubTypePriority(t *testing.T) {
	c := New(nil, logging.NewMockLogger())

	testCases := []struct {
		name       string
		subject    string
		body       string
		expected   models.DocumentType
		confidence float64
	}{
		{"receipt", "Your receipt from Stripe", "Payment receipt attached, total $20", models.TypeReceipt, 0.85},
		{"payment", "Payment confirmation", "We processed your payment of $50.00", models.TypePayment, 0.85},
		{"statement", "Monthly statement", "Your statement balance due is $10", models.TypeStatement, 0.8},
		{"generic financial", "Remittance advice", "ACH remittance for $1,000", models.TypeFinancial, 0.7},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := c.Classify(models.DocumentInput{Subject: tc.subject, BodyText: tc.body})
			assert.Equal(t, tc.expected, result.Type)
			assert.InDelta(t, tc.confidence, result.Confidence, 0.001)
		})
	}
}

func TestClassifyIgnoredDomain(t *testing.T) {
	c := New([]string{"spam.example.com"}, logging.NewMockLogger())

	// Keyword scores are irrelevant once the sender domain is denylisted.
	result := c.Classify(models.DocumentInput{
		Subject:     "Invoice payment receipt statement",
		BodyText:    "Total due: $999.00",
		SenderEmail: "billing@spam.example.com",
	})

	assert.Equal(t, models.TypeIgnored, result.Type)
	assert.False(t, result.Type.IsFinanceRelevant())
}

func TestClassifyNoSignalsIsUnknown(t *testing.T) {
	c := New(nil, logging.NewMockLogger())

	result := c.Classify(models.DocumentInput{
		Subject:  "Lunch on Thursday?",
		BodyText: "Does noon work for you?",
	})

	assert.Equal(t, models.TypeUnknown, result.Type)
	assert.InDelta(t, 0.5, result.Confidence, 0.001)
}

func TestClassifyNonFinance(t *testing.T) {
	c := New(nil, logging.NewMockLogger())

	result := c.Classify(models.DocumentInput{
		Subject:  "Our spring newsletter",
		BodyText: "Join our webinar! Unsubscribe at any time.",
	})

	assert.Equal(t, models.TypeNonFinance, result.Type)
	assert.False(t, result.Type.IsFinanceRelevant())
}

func TestClassifySingleFinanceSignalWithNoise(t *testing.T) {
	c := New(nil, logging.NewMockLogger())

	// One finance signal plus one noise signal is not decisive.
	result := c.Classify(models.DocumentInput{
		Subject:  "Invoice tips newsletter",
		BodyText: "How to write better invoices.",
	})

	assert.Equal(t, models.TypeUnknown, result.Type)
}

func TestClassifyHTMLBodyFallback(t *testing.T) {
	c := New(nil, logging.NewMockLogger())

	result := c.Classify(models.DocumentInput{
		Subject:  "Your order",
		BodyHTML: "<p>Invoice total: <b>$45.00</b> payment due</p>",
	})

	assert.True(t, result.Type.IsFinanceRelevant())
}
