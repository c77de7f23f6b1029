package models

// DataQuality breaks down which fields were present when a match could not be
// attempted or did not succeed. It is an explainability aid, not ground truth.
type DataQuality struct {
	HasAmount        bool `json:"has_amount"`
	HasVendor        bool `json:"has_vendor"`
	HasInvoiceNumber bool `json:"has_invoice_number"`
	HasDate          bool `json:"has_date"`
}

// MatchedTransaction identifies the ledger transaction a remote match found.
type MatchedTransaction struct {
	Source string `json:"source"`
	ID     string `json:"id"`
}

// MatchResult is the outcome of a match attempt, remote or local. Confidence
// is on a 0-100 scale. Only a remote collaborator may set Found.
type MatchResult struct {
	Found              bool                `json:"found"`
	Confidence         float64             `json:"confidence"`
	MatchedTransaction *MatchedTransaction `json:"matched_transaction,omitempty"`
	DataQuality        *DataQuality        `json:"data_quality,omitempty"`
	Reason             string              `json:"reason,omitempty"`
}
