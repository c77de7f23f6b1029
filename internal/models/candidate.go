package models

import "strings"

// Source identifies which text blob a candidate was scanned from.
type Source string

const (
	// SourceEmail marks candidates found in the email subject or body.
	SourceEmail Source = "email"
	// SourceAttachment marks candidates found in extracted attachment text.
	SourceAttachment Source = "attachment"
)

// FieldType identifies the financial field a candidate belongs to.
type FieldType string

const (
	FieldVendor        FieldType = "vendor"
	FieldAmount        FieldType = "amount"
	FieldInvoiceNumber FieldType = "invoice_number"
	FieldDocumentDate  FieldType = "document_date"
	FieldPaymentTerms  FieldType = "payment_terms"
)

// FieldCandidate is a provisional value for one field, carrying a heuristic
// score and enough provenance to debug why it won or lost.
type FieldCandidate struct {
	Field FieldType `json:"field"`
	// Value is the normalized candidate value (vendor name, invoice number,
	// ISO date, "Net 30").
	Value string `json:"value"`
	// Raw is the literal matched token before normalization. Used for the
	// amount-vs-invoice digit conflict check.
	Raw string `json:"raw,omitempty"`
	// Money holds the parsed amount for FieldAmount candidates.
	Money *Money `json:"money,omitempty"`
	// Score is an unbounded heuristic score, higher is better.
	Score int `json:"score"`
	// Position is the match offset in the scanned text; earlier matches win
	// exact score ties.
	Position int `json:"-"`
	// Context is the surrounding text window the score was derived from.
	Context string `json:"context,omitempty"`
	Source  Source `json:"source"`
}

// Digits returns the digit sequence of the candidate's raw token (falling
// back to the value), used for cross-field conflict detection.
func (c *FieldCandidate) Digits() string {
	token := c.Raw
	if token == "" {
		token = c.Value
	}
	var b strings.Builder
	for _, r := range token {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ExtractedFinancialData is the engine's aggregate output: one winning
// candidate per field (nil when nothing cleared the acceptance threshold),
// plus derived flags and classification metadata. Immutable once produced.
type ExtractedFinancialData struct {
	Vendor        *FieldCandidate `json:"vendor,omitempty"`
	Amount        *FieldCandidate `json:"amount,omitempty"`
	InvoiceNumber *FieldCandidate `json:"invoice_number,omitempty"`
	DocumentDate  *FieldCandidate `json:"document_date,omitempty"`
	PaymentTerms  *FieldCandidate `json:"payment_terms,omitempty"`

	HasAttachments     bool   `json:"has_attachments"`
	AttachmentTextUsed bool   `json:"attachment_text_used"`
	AttachmentSource   string `json:"attachment_source,omitempty"`

	EmailType            DocumentType `json:"email_type"`
	ClassificationReason string       `json:"classification_reason,omitempty"`

	// Category is the GL-style category suggested by the advisor.
	Category Category `json:"category,omitempty"`

	// Records holds transaction-shaped rows recovered from tabular
	// attachments, when any were present.
	Records []TransactionRecord `json:"records,omitempty"`
}

// VendorName returns the chosen vendor or the unknown sentinel.
func (e ExtractedFinancialData) VendorName() string {
	if e.Vendor == nil || e.Vendor.Value == "" {
		return UnknownVendor
	}
	return e.Vendor.Value
}

// UnknownVendor is the sentinel used when no vendor candidate survived.
const UnknownVendor = "Unknown"
