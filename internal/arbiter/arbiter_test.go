package arbiter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearledgr/clearledgr-ap/internal/logging"
	"github.com/clearledgr/clearledgr-ap/internal/models"
)

func candidate(source models.Source, score int) *models.FieldCandidate {
	return &models.FieldCandidate{
		Field:  models.FieldVendor,
		Value:  "Acme Corp",
		Score:  score,
		Source: source,
	}
}

func TestChoose(t *testing.T) {
	a := New(DefaultMargins(), logging.NewMockLogger())

	testCases := []struct {
		name       string
		email      *models.FieldCandidate
		attachment *models.FieldCandidate
		expected   models.Source
	}{
		{"only email", candidate(models.SourceEmail, 20), nil, models.SourceEmail},
		{"only attachment", nil, candidate(models.SourceAttachment, 20), models.SourceAttachment},
		{"email below floor", candidate(models.SourceEmail, 14), candidate(models.SourceAttachment, 10), models.SourceAttachment},
		{"attachment clears margin", candidate(models.SourceEmail, 20), candidate(models.SourceAttachment, 26), models.SourceAttachment},
		{"attachment within margin", candidate(models.SourceEmail, 20), candidate(models.SourceAttachment, 25), models.SourceEmail},
		{"equal scores keep email", candidate(models.SourceEmail, 20), candidate(models.SourceAttachment, 20), models.SourceEmail},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			choice := a.Choose(models.FieldVendor, tc.email, tc.attachment)
			require.NotNil(t, choice)
			assert.Equal(t, tc.expected, choice.Source)
		})
	}

	assert.Nil(t, a.Choose(models.FieldVendor, nil, nil))
}

func TestChooseAmountMargin(t *testing.T) {
	a := New(DefaultMargins(), logging.NewMockLogger())

	email := candidate(models.SourceEmail, 20)
	attachment := candidate(models.SourceAttachment, 27)

	// 27 beats 20 by the vendor margin of 5 but not by the amount margin of 8.
	assert.Equal(t, models.SourceAttachment, a.Choose(models.FieldVendor, email, attachment).Source)
	assert.Equal(t, models.SourceEmail, a.Choose(models.FieldAmount, email, attachment).Source)
}

func TestSuppressConflicts(t *testing.T) {
	a := New(DefaultMargins(), logging.NewMockLogger())

	money := models.NewMoneyFromFloat(20240892, "")
	data := &models.ExtractedFinancialData{
		Amount: &models.FieldCandidate{
			Field: models.FieldAmount,
			Raw:   "2024-0892",
			Money: &money,
		},
		InvoiceNumber: &models.FieldCandidate{
			Field: models.FieldInvoiceNumber,
			Value: "INV-2024-0892",
			Raw:   "INV-2024-0892",
		},
	}

	a.SuppressConflicts(data)
	assert.Nil(t, data.Amount)
	assert.NotNil(t, data.InvoiceNumber)
}

func TestSuppressConflictsDistinctDigits(t *testing.T) {
	a := New(DefaultMargins(), logging.NewMockLogger())

	money := models.NewMoneyFromFloat(108.25, "$")
	data := &models.ExtractedFinancialData{
		Amount:        &models.FieldCandidate{Field: models.FieldAmount, Raw: "108.25", Money: &money},
		InvoiceNumber: &models.FieldCandidate{Field: models.FieldInvoiceNumber, Raw: "INV-2024-0892", Value: "INV-2024-0892"},
	}

	a.SuppressConflicts(data)
	assert.NotNil(t, data.Amount)
}
