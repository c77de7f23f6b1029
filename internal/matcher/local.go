package matcher

import (
	"github.com/clearledgr/clearledgr-ap/internal/logging"
	"github.com/clearledgr/clearledgr-ap/internal/models"
)

// Data-quality weights for the local fallback score.
const (
	localBaseScore     = 40
	localInvoiceBonus  = 25
	localVendorBonus   = 20
	localDateBonus     = 15
	reasonNoAmount     = "no amount detected"
	reasonLocalScoring = "remote matcher unavailable, local data-quality score"
)

// LocalFallback scores "this document likely corresponds to a known
// transaction" from data completeness alone.
type LocalFallback struct {
	logger logging.Logger
}

// NewLocalFallback creates the fallback scorer.
func NewLocalFallback(logger logging.Logger) *LocalFallback {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &LocalFallback{logger: logger}
}

// Score computes the local confidence. Without an amount there is nothing to
// reconcile and the confidence is zero.
func (l *LocalFallback) Score(data *models.ExtractedFinancialData) *models.MatchResult {
	quality := &models.DataQuality{
		HasAmount:        data.Amount != nil,
		HasVendor:        data.Vendor != nil && data.VendorName() != models.UnknownVendor,
		HasInvoiceNumber: data.InvoiceNumber != nil,
		HasDate:          data.DocumentDate != nil,
	}

	if !quality.HasAmount {
		return &models.MatchResult{
			Found:       false,
			Confidence:  0,
			DataQuality: quality,
			Reason:      reasonNoAmount,
		}
	}

	confidence := localBaseScore
	if quality.HasInvoiceNumber {
		confidence += localInvoiceBonus
	}
	if quality.HasVendor {
		confidence += localVendorBonus
	}
	if quality.HasDate {
		confidence += localDateBonus
	}

	l.logger.Debug("Scored local match fallback",
		logging.Field{Key: logging.FieldConfidence, Value: confidence})

	return &models.MatchResult{
		Found:       false,
		Confidence:  float64(confidence),
		DataQuality: quality,
		Reason:      reasonLocalScoring,
	}
}
