// Package arbiter merges the best email-sourced and attachment-sourced
// candidates into one winning value per field.
package arbiter

import (
	"github.com/clearledgr/clearledgr-ap/internal/logging"
	"github.com/clearledgr/clearledgr-ap/internal/models"
)

// Margins holds the source-preference tuning. The floor and per-field
// margins are implementation defaults carried in configuration, not fixed
// constants.
type Margins struct {
	EmailScoreFloor int
	Vendor          int
	Amount          int
	Invoice         int
	Date            int
}

// DefaultMargins mirrors the configuration defaults.
func DefaultMargins() Margins {
	return Margins{EmailScoreFloor: 15, Vendor: 5, Amount: 8, Invoice: 5, Date: 5}
}

func (m Margins) forField(field models.FieldType) int {
	switch field {
	case models.FieldAmount:
		return m.Amount
	case models.FieldVendor:
		return m.Vendor
	case models.FieldInvoiceNumber:
		return m.Invoice
	default:
		return m.Date
	}
}

// Arbiter applies the source-preference and conflict-suppression rules.
type Arbiter struct {
	margins Margins
	logger  logging.Logger
}

// New creates an Arbiter with the given margins.
func New(margins Margins, logger logging.Logger) *Arbiter {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Arbiter{margins: margins, logger: logger}
}

// Choose picks between the best email candidate and the best attachment
// candidate for one field. The attachment wins when the email has nothing,
// when the email score sits below the low-confidence floor, or when the
// attachment beats the email by the field's margin. A nil result means no
// candidate exists for the field.
func (a *Arbiter) Choose(field models.FieldType, email, attachment *models.FieldCandidate) *models.FieldCandidate {
	switch {
	case email == nil && attachment == nil:
		return nil
	case email == nil:
		return a.chosen(field, attachment, "no email candidate")
	case attachment == nil:
		return a.chosen(field, email, "no attachment candidate")
	case email.Score < a.margins.EmailScoreFloor:
		return a.chosen(field, attachment, "email below confidence floor")
	case attachment.Score > email.Score+a.margins.forField(field):
		return a.chosen(field, attachment, "attachment cleared margin")
	default:
		return a.chosen(field, email, "email within margin")
	}
}

func (a *Arbiter) chosen(field models.FieldType, c *models.FieldCandidate, reason string) *models.FieldCandidate {
	a.logger.Debug("Arbitrated field",
		logging.Field{Key: logging.FieldField, Value: string(field)},
		logging.Field{Key: logging.FieldSource, Value: string(c.Source)},
		logging.Field{Key: logging.FieldScore, Value: c.Score},
		logging.Field{Key: logging.FieldReason, Value: reason})
	return c
}

// SuppressConflicts drops the amount choice when its digit sequence equals
// the invoice number's digit sequence. The amount scanner misfires on
// numeric-looking invoice numbers, and the same literal token must not serve
// as both values.
func (a *Arbiter) SuppressConflicts(data *models.ExtractedFinancialData) {
	if data.Amount == nil || data.InvoiceNumber == nil {
		return
	}
	amountDigits := data.Amount.Digits()
	if amountDigits == "" || amountDigits != data.InvoiceNumber.Digits() {
		return
	}

	a.logger.Warn("Dropped amount choice conflicting with invoice number",
		logging.Field{Key: "amount", Value: data.Amount.Raw},
		logging.Field{Key: "invoice_number", Value: data.InvoiceNumber.Value})
	data.Amount = nil
}
