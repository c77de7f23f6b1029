package categorizer

import (
	"context"

	"github.com/clearledgr/clearledgr-ap/internal/models"
)

// Strategy defines one method for mapping extracted document fields to a
// general-ledger-style account category.
type Strategy interface {
	// Categorize attempts to categorize the document. Returns the category,
	// whether the strategy produced an answer, and any error encountered.
	Categorize(ctx context.Context, doc Document) (models.Category, bool, error)

	// Name returns the strategy name for logging and debugging.
	Name() string
}

// Document carries the extracted fields the strategies match against.
type Document struct {
	Vendor  string
	Subject string
	Amount  string
}
