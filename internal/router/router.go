// Package router decides what happens to documents that did not match a
// known transaction: flag them for a human, or hand them to an injected
// task-creation capability when auto-routing is enabled.
package router

import (
	"context"

	"github.com/clearledgr/clearledgr-ap/internal/logging"
	"github.com/clearledgr/clearledgr-ap/internal/models"
	"github.com/clearledgr/clearledgr-ap/internal/parsererror"
)

// Outcome of a routing decision.
const (
	StatusRequiresManualReview = "requires_manual_review"
	StatusAutoRoute            = "auto_route"
	StatusMatched              = "matched"
)

// ExceptionTaskCreator is the injected capability that persists an exception
// task in the workflow backend.
type ExceptionTaskCreator interface {
	EnsureExceptionTask(ctx context.Context, data *models.ExtractedFinancialData, match *models.MatchResult) error
}

// Router applies the exception policy to match results.
type Router struct {
	tasks     ExceptionTaskCreator
	autoRoute bool
	logger    logging.Logger
}

// New creates a Router. The task creator may be nil when auto-routing is
// disabled.
func New(tasks ExceptionTaskCreator, autoRoute bool, logger logging.Logger) *Router {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Router{tasks: tasks, autoRoute: autoRoute, logger: logger}
}

// Route decides the outcome for one document. A matched document needs no
// exception handling. Failure to create an exception task is surfaced to the
// caller; exceptions must never be dropped silently.
func (r *Router) Route(ctx context.Context, data *models.ExtractedFinancialData, match *models.MatchResult) (string, error) {
	if match != nil && match.Found {
		return StatusMatched, nil
	}

	if !r.autoRoute || r.tasks == nil {
		r.logger.Info("Document flagged for manual review",
			logging.Field{Key: logging.FieldStatus, Value: StatusRequiresManualReview})
		return StatusRequiresManualReview, nil
	}

	if err := r.tasks.EnsureExceptionTask(ctx, data, match); err != nil {
		return "", &parsererror.RoutingError{Err: err}
	}

	r.logger.Info("Document auto-routed to exception queue",
		logging.Field{Key: logging.FieldStatus, Value: StatusAutoRoute})
	return StatusAutoRoute, nil
}
