package models

import (
	"strings"

	"github.com/google/uuid"
)

// TransactionRecord is one transaction-shaped row recovered from a tabular
// attachment (CSV/TSV). Rows without a usable reference get a generated id so
// downstream consumers can always key on TransactionID.
type TransactionRecord struct {
	TransactionID string `json:"transaction_id" csv:"transaction_id"`
	Date          string `json:"date" csv:"date"`
	Amount        string `json:"amount" csv:"amount"`
	Description   string `json:"description" csv:"description"`
	Reference     string `json:"reference" csv:"reference"`
}

// EnsureID fills TransactionID from the reference column, or generates a UUID
// when the row carried none.
func (r *TransactionRecord) EnsureID() {
	if strings.TrimSpace(r.TransactionID) != "" {
		return
	}
	if ref := strings.TrimSpace(r.Reference); ref != "" {
		r.TransactionID = ref
		return
	}
	r.TransactionID = uuid.NewString()
}

// IsEmpty reports whether the row carries no data at all (blank CSV line).
func (r TransactionRecord) IsEmpty() bool {
	return strings.TrimSpace(r.Date) == "" &&
		strings.TrimSpace(r.Amount) == "" &&
		strings.TrimSpace(r.Description) == "" &&
		strings.TrimSpace(r.Reference) == ""
}
