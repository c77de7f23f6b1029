// Package matcher talks to the remote reconciliation service and, when it is
// unreachable, degrades to a local confidence-only heuristic. The local path
// never declares a match; only the remote collaborator may.
package matcher

import (
	"context"

	"github.com/clearledgr/clearledgr-ap/internal/models"
)

// RemoteMatcher is the injected reconciliation capability.
type RemoteMatcher interface {
	// CheckHealth reports whether the service is reachable and willing.
	CheckHealth(ctx context.Context) bool
	// MatchDocument asks the service to match the extracted fields against
	// known transactions.
	MatchDocument(ctx context.Context, data *models.ExtractedFinancialData) (*models.MatchResult, error)
}

// Insights is the loosely-structured payload of the vendor-insight service.
type Insights map[string]any

// VendorInsights is the injected vendor-enrichment capability. A nil result
// with a nil error means the service knows nothing about the vendor.
type VendorInsights interface {
	FetchVendorInsights(ctx context.Context, vendorName string) (Insights, error)
}
