package matcher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/clearledgr/clearledgr-ap/internal/logging"
	"github.com/clearledgr/clearledgr-ap/internal/models"
	"github.com/clearledgr/clearledgr-ap/internal/parsererror"
)

// HTTPMatcher implements RemoteMatcher against the reconciliation service's
// JSON API. Calls run through a circuit breaker so a flapping service fails
// fast into the local fallback instead of eating the request timeout every
// document.
type HTTPMatcher struct {
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
	logger  logging.Logger
}

// NewHTTPMatcher creates a matcher for the given base URL.
func NewHTTPMatcher(baseURL string, timeout time.Duration, logger logging.Logger) *HTTPMatcher {
	if logger == nil {
		logger = logging.NewNop()
	}

	settings := gobreaker.Settings{
		Name:     "match-service",
		Interval: 60 * time.Second,
		Timeout:  30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				logging.Field{Key: "breaker", Value: name},
				logging.Field{Key: "from", Value: from.String()},
				logging.Field{Key: "to", Value: to.String()})
		},
	}

	return &HTTPMatcher{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		breaker: gobreaker.NewCircuitBreaker(settings),
		logger:  logger,
	}
}

// CheckHealth probes the service's health endpoint.
func (m *HTTPMatcher) CheckHealth(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := m.client.Do(req)
	if err != nil {
		m.logger.WithError(err).Warn("Match service health check failed")
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

type matchRequest struct {
	Vendor        string `json:"vendor,omitempty"`
	Amount        string `json:"amount,omitempty"`
	Currency      string `json:"currency,omitempty"`
	InvoiceNumber string `json:"invoice_number,omitempty"`
	DocumentDate  string `json:"document_date,omitempty"`
}

type matchResponse struct {
	Matched            bool                       `json:"matched"`
	Confidence         float64                    `json:"confidence"`
	MatchedTransaction *models.MatchedTransaction `json:"matched_transaction,omitempty"`
}

// MatchDocument posts the extracted fields to the match endpoint.
func (m *HTTPMatcher) MatchDocument(ctx context.Context, data *models.ExtractedFinancialData) (*models.MatchResult, error) {
	payload := matchRequest{Vendor: data.VendorName()}
	if data.Amount != nil && data.Amount.Money != nil {
		payload.Amount = data.Amount.Money.Amount.String()
		payload.Currency = data.Amount.Money.Currency
	}
	if data.InvoiceNumber != nil {
		payload.InvoiceNumber = data.InvoiceNumber.Value
	}
	if data.DocumentDate != nil {
		payload.DocumentDate = data.DocumentDate.Value
	}

	result, err := m.breaker.Execute(func() (interface{}, error) {
		return m.post(ctx, payload)
	})
	if err != nil {
		return nil, &parsererror.CollaboratorError{Service: "match-service", Err: err}
	}
	return result.(*models.MatchResult), nil
}

func (m *HTTPMatcher) post(ctx context.Context, payload matchRequest) (*models.MatchResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("error encoding match request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/match", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("match service returned status %d", resp.StatusCode)
	}

	var decoded matchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("error decoding match response: %w", err)
	}

	return &models.MatchResult{
		Found:              decoded.Matched,
		Confidence:         decoded.Confidence,
		MatchedTransaction: decoded.MatchedTransaction,
	}, nil
}

// HTTPVendorInsights implements VendorInsights against the same service.
type HTTPVendorInsights struct {
	baseURL string
	client  *http.Client
	logger  logging.Logger
}

// NewHTTPVendorInsights creates an insights client for the given base URL.
func NewHTTPVendorInsights(baseURL string, timeout time.Duration, logger logging.Logger) *HTTPVendorInsights {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &HTTPVendorInsights{baseURL: baseURL, client: &http.Client{Timeout: timeout}, logger: logger}
}

// FetchVendorInsights queries the vendor-insight endpoint. An unknown vendor
// returns nil insights without error.
func (v *HTTPVendorInsights) FetchVendorInsights(ctx context.Context, vendorName string) (Insights, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+"/vendors/insights", nil)
	if err != nil {
		return nil, err
	}
	q := req.URL.Query()
	q.Set("vendor", vendorName)
	req.URL.RawQuery = q.Encode()

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, &parsererror.CollaboratorError{Service: "vendor-insights", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &parsererror.CollaboratorError{
			Service: "vendor-insights",
			Err:     fmt.Errorf("status %d", resp.StatusCode),
		}
	}

	var insights Insights
	if err := json.NewDecoder(resp.Body).Decode(&insights); err != nil {
		return nil, &parsererror.CollaboratorError{Service: "vendor-insights", Err: err}
	}
	return insights, nil
}
