// Package categorizer suggests a general-ledger-style account category for an
// extracted document. Strategies are tried in order; the first answer wins
// and a failed strategy never blocks the chain.
package categorizer

import (
	"context"

	"github.com/clearledgr/clearledgr-ap/internal/logging"
	"github.com/clearledgr/clearledgr-ap/internal/models"
)

// Advisor runs an ordered strategy chain with an uncategorized fallback.
type Advisor struct {
	strategies []Strategy
	logger     logging.Logger
}

// NewAdvisor creates an Advisor over the given strategies, tried in order.
func NewAdvisor(logger logging.Logger, strategies ...Strategy) *Advisor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Advisor{strategies: strategies, logger: logger}
}

// Suggest returns the first strategy's answer, or the uncategorized sentinel
// when every strategy passes or fails.
func (a *Advisor) Suggest(ctx context.Context, doc Document) models.Category {
	for _, strategy := range a.strategies {
		category, ok, err := strategy.Categorize(ctx, doc)
		if err != nil {
			a.logger.WithError(err).Warn("Categorization strategy failed",
				logging.Field{Key: "strategy", Value: strategy.Name()})
			continue
		}
		if ok {
			return category
		}
	}
	return models.Category{Name: models.CategoryUncategorized}
}
