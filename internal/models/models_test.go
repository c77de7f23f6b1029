package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMoneyString(t *testing.T) {
	m := NewMoney(decimal.RequireFromString("12847.32"), "$")
	assert.Equal(t, "12847.32 $", m.String())

	bare := NewMoney(decimal.RequireFromString("45"), "")
	assert.Equal(t, "45.00", bare.String())
	assert.False(t, bare.HasCurrency())
}

func TestMoneyEqual(t *testing.T) {
	a := NewMoneyFromFloat(108.25, "EUR")
	b := NewMoney(decimal.RequireFromString("108.250"), "EUR")
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(NewMoneyFromFloat(108.25, "USD")))
}

func TestFieldCandidateDigits(t *testing.T) {
	c := &FieldCandidate{Raw: "INV-2024-0892"}
	assert.Equal(t, "20240892", c.Digits())

	noRaw := &FieldCandidate{Value: "108.25"}
	assert.Equal(t, "10825", noRaw.Digits())
}

func TestSenderDomain(t *testing.T) {
	assert.Equal(t, "amazon.com", DocumentInput{SenderEmail: "billing@Amazon.com"}.SenderDomain())
	assert.Empty(t, DocumentInput{SenderEmail: "not-an-address"}.SenderDomain())
	assert.Empty(t, DocumentInput{SenderEmail: "trailing@"}.SenderDomain())
}

func TestTransactionRecordEnsureID(t *testing.T) {
	withRef := TransactionRecord{Reference: "REF-1"}
	withRef.EnsureID()
	assert.Equal(t, "REF-1", withRef.TransactionID)

	bare := TransactionRecord{Date: "2024-03-01"}
	bare.EnsureID()
	assert.NotEmpty(t, bare.TransactionID)

	keeps := TransactionRecord{TransactionID: "txn-1", Reference: "REF-2"}
	keeps.EnsureID()
	assert.Equal(t, "txn-1", keeps.TransactionID)
}

func TestVendorNameSentinel(t *testing.T) {
	assert.Equal(t, UnknownVendor, ExtractedFinancialData{}.VendorName())

	data := ExtractedFinancialData{Vendor: &FieldCandidate{Value: "Acme Corp"}}
	assert.Equal(t, "Acme Corp", data.VendorName())
}

func TestIsFinanceRelevant(t *testing.T) {
	assert.True(t, TypeInvoice.IsFinanceRelevant())
	assert.True(t, TypeFinancial.IsFinanceRelevant())
	assert.True(t, TypeUnknown.IsFinanceRelevant())
	assert.False(t, TypeNonFinance.IsFinanceRelevant())
	assert.False(t, TypeIgnored.IsFinanceRelevant())
}
