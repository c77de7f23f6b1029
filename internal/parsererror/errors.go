// Package parsererror defines the typed errors produced by the extraction
// engine. Every condition here is recoverable; callers decide whether to skip
// a candidate, fall back, or surface the failure.
package parsererror

import "fmt"

// ExtractionError reports that text could not be extracted from an attachment.
type ExtractionError struct {
	Attachment string
	Kind       string
	Reason     string
	Err        error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extraction failed for %s (%s): %s: %v",
			e.Attachment, e.Kind, e.Reason, e.Err)
	}
	return fmt.Sprintf("extraction failed for %s (%s): %s", e.Attachment, e.Kind, e.Reason)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// BudgetExceededError reports that an attachment blew through one of the hard
// extraction caps (bytes, pages or characters).
type BudgetExceededError struct {
	Attachment string
	Limit      string
	Allowed    int
	Actual     int
}

func (e *BudgetExceededError) Error() string {
	return fmt.Sprintf("%s exceeds %s budget: %d > %d",
		e.Attachment, e.Limit, e.Actual, e.Allowed)
}

// CollaboratorError reports a failed call to an injected remote capability
// (match service, vendor insights). The pipeline treats it as a signal to
// fall back, never as fatal.
type CollaboratorError struct {
	Service string
	Err     error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Service, e.Err)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

// RoutingError reports that an exception task could not be created. Unlike
// the other errors in this package it must reach the caller: silently losing
// an exception is unacceptable.
type RoutingError struct {
	Err error
}

func (e *RoutingError) Error() string {
	return fmt.Sprintf("exception routing failed: %v", e.Err)
}

func (e *RoutingError) Unwrap() error {
	return e.Err
}
