package matcher

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearledgr/clearledgr-ap/internal/logging"
	"github.com/clearledgr/clearledgr-ap/internal/models"
)

func extracted(amount, vendor, invoice, date bool) *models.ExtractedFinancialData {
	data := &models.ExtractedFinancialData{}
	if amount {
		money := models.NewMoneyFromFloat(108.25, "$")
		data.Amount = &models.FieldCandidate{Field: models.FieldAmount, Money: &money, Value: money.String()}
	}
	if vendor {
		data.Vendor = &models.FieldCandidate{Field: models.FieldVendor, Value: "Acme Corp"}
	}
	if invoice {
		data.InvoiceNumber = &models.FieldCandidate{Field: models.FieldInvoiceNumber, Value: "INV-2024-0892"}
	}
	if date {
		data.DocumentDate = &models.FieldCandidate{Field: models.FieldDocumentDate, Value: "2024-03-15"}
	}
	return data
}

func TestLocalFallbackNoAmount(t *testing.T) {
	l := NewLocalFallback(logging.NewMockLogger())

	result := l.Score(extracted(false, true, true, true))

	assert.False(t, result.Found)
	assert.Zero(t, result.Confidence)
	assert.Equal(t, "no amount detected", result.Reason)
	assert.False(t, result.DataQuality.HasAmount)
}

func TestLocalFallbackScoring(t *testing.T) {
	l := NewLocalFallback(logging.NewMockLogger())

	testCases := []struct {
		name                  string
		vendor, invoice, date bool
		expected              float64
	}{
		{"amount only", false, false, false, 40},
		{"amount and invoice", false, true, false, 65},
		{"amount and vendor", true, false, false, 60},
		{"amount and date", false, false, true, 55},
		{"everything", true, true, true, 100},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := l.Score(extracted(true, tc.vendor, tc.invoice, tc.date))
			assert.False(t, result.Found)
			assert.Equal(t, tc.expected, result.Confidence)
		})
	}
}

func TestLocalFallbackUnknownVendorNoBonus(t *testing.T) {
	l := NewLocalFallback(logging.NewMockLogger())

	data := extracted(true, false, false, false)
	data.Vendor = &models.FieldCandidate{Field: models.FieldVendor, Value: models.UnknownVendor}

	result := l.Score(data)
	assert.Equal(t, float64(40), result.Confidence)
	assert.False(t, result.DataQuality.HasVendor)
}

func TestHTTPMatcherMatchDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/health":
			w.WriteHeader(http.StatusOK)
		case "/match":
			var req map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "Acme Corp", req["vendor"])
			assert.Equal(t, "108.25", req["amount"])

			json.NewEncoder(w).Encode(map[string]any{
				"matched":    true,
				"confidence": 92.5,
				"matched_transaction": map[string]string{
					"source": "ledger", "id": "txn-123",
				},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	m := NewHTTPMatcher(server.URL, 2*time.Second, logging.NewMockLogger())

	assert.True(t, m.CheckHealth(context.Background()))

	result, err := m.MatchDocument(context.Background(), extracted(true, true, true, true))
	require.NoError(t, err)
	assert.True(t, result.Found)
	assert.Equal(t, 92.5, result.Confidence)
	require.NotNil(t, result.MatchedTransaction)
	assert.Equal(t, "txn-123", result.MatchedTransaction.ID)
}

func TestHTTPMatcherUnhealthyService(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	m := NewHTTPMatcher(server.URL, time.Second, logging.NewMockLogger())

	assert.False(t, m.CheckHealth(context.Background()))

	_, err := m.MatchDocument(context.Background(), extracted(true, true, false, false))
	assert.Error(t, err)
}

func TestHTTPVendorInsightsUnknownVendor(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	v := NewHTTPVendorInsights(server.URL, time.Second, logging.NewMockLogger())

	insights, err := v.FetchVendorInsights(context.Background(), "Mystery Vendor")
	require.NoError(t, err)
	assert.Nil(t, insights)
}
