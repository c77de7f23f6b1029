package models

// DocumentType is the finance-relevance judgment for one document.
type DocumentType string

const (
	TypeInvoice    DocumentType = "invoice"
	TypeReceipt    DocumentType = "receipt"
	TypePayment    DocumentType = "payment"
	TypeStatement  DocumentType = "statement"
	TypeFinancial  DocumentType = "financial"
	TypeNonFinance DocumentType = "non-finance"
	TypeIgnored    DocumentType = "ignored"
	TypeUnknown    DocumentType = "unknown"
)

// IsFinanceRelevant reports whether the document should enter the extraction
// pipeline at all. Unknown documents proceed; only a non-finance or ignored
// judgment halts the pipeline.
func (t DocumentType) IsFinanceRelevant() bool {
	switch t {
	case TypeInvoice, TypeReceipt, TypePayment, TypeStatement, TypeFinancial, TypeUnknown:
		return true
	}
	return false
}

// ClassificationResult is the classifier's output. A non-finance or ignored
// type is a hard stop for the rest of the pipeline.
type ClassificationResult struct {
	Type       DocumentType `json:"type"`
	Confidence float64      `json:"confidence"`
	Reason     string       `json:"reason,omitempty"`
}
