// Package classifier decides whether an inbound document is finance-relevant
// at all. A non-finance or ignored result is a hard stop for the pipeline.
package classifier

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/clearledgr/clearledgr-ap/internal/logging"
	"github.com/clearledgr/clearledgr-ap/internal/models"
	"github.com/clearledgr/clearledgr-ap/internal/textutils"
)

// Fixed sub-type confidences.
const (
	ConfidenceInvoice   = 0.9
	ConfidenceReceipt   = 0.85
	ConfidencePayment   = 0.85
	ConfidenceStatement = 0.8
	ConfidenceFinancial = 0.7
	ConfidenceUnknown   = 0.5
)

// signal is one scored pattern of the finance or non-finance set. Each
// signal contributes at most one point regardless of how often it matches.
type signal struct {
	name    string
	pattern *regexp.Regexp
}

var financeSignals = []signal{
	{"invoice", regexp.MustCompile(`\binvoice\b`)},
	{"payment", regexp.MustCompile(`\bpayment\b|\bpaid\b|\bpay\s+now\b`)},
	{"receipt", regexp.MustCompile(`\breceipt\b`)},
	{"billing", regexp.MustCompile(`\bbilling\b|\bbill\b`)},
	{"statement", regexp.MustCompile(`\bstatement\b`)},
	{"amount due", regexp.MustCompile(`\b(amount|balance|total)\s+due\b|\bdue\s+date\b`)},
	{"currency amount", regexp.MustCompile(`[$€£]\s?\d|\b(usd|eur|gbp|chf|cad|aud)\s?\d`)},
	{"purchase order", regexp.MustCompile(`\bpurchase\s+order\b|\bpo\s*(#|number|no\.?)\b`)},
	{"remittance", regexp.MustCompile(`\bremittance\b`)},
	{"wire/ach", regexp.MustCompile(`\bwire\s+transfer\b|\bach\b|\bdirect\s+debit\b`)},
	{"memo", regexp.MustCompile(`\b(credit|debit)\s+memo\b`)},
}

var nonFinanceSignals = []signal{
	{"unsubscribe", regexp.MustCompile(`\bunsubscribe\b`)},
	{"newsletter", regexp.MustCompile(`\bnewsletter\b`)},
	{"webinar", regexp.MustCompile(`\bwebinar\b|\bregister\s+now\b`)},
	{"password reset", regexp.MustCompile(`\bpassword\s+reset\b|\breset\s+your\s+password\b`)},
	{"verification", regexp.MustCompile(`\bverify\s+your\s+(email|account)\b|\bconfirmation\s+code\b`)},
	{"promotion", regexp.MustCompile(`\b\d+%\s+off\b|\bflash\s+sale\b|\bfree\s+shipping\b`)},
	{"survey", regexp.MustCompile(`\bsurvey\b|\bfeedback\b`)},
	{"social", regexp.MustCompile(`\bfollow\s+us\b|\bnew\s+follower\b|\bfriend\s+request\b`)},
}

// Sub-type priority: first match wins.
var subTypes = []struct {
	keyword    string
	docType    models.DocumentType
	confidence float64
}{
	{"invoice", models.TypeInvoice, ConfidenceInvoice},
	{"receipt", models.TypeReceipt, ConfidenceReceipt},
	{"payment", models.TypePayment, ConfidencePayment},
	{"statement", models.TypeStatement, ConfidenceStatement},
}

// Classifier applies keyword and pattern scoring plus a sender-domain
// denylist.
type Classifier struct {
	ignoredDomains map[string]struct{}
	logger         logging.Logger
}

// New creates a Classifier with the given sender-domain denylist.
func New(ignoredDomains []string, logger logging.Logger) *Classifier {
	if logger == nil {
		logger = logging.NewNop()
	}
	ignored := make(map[string]struct{}, len(ignoredDomains))
	for _, domain := range ignoredDomains {
		ignored[strings.ToLower(strings.TrimSpace(domain))] = struct{}{}
	}
	return &Classifier{ignoredDomains: ignored, logger: logger}
}

// Classify scores the document's subject and body against the finance and
// non-finance signal sets and applies the decision rule.
func (c *Classifier) Classify(doc models.DocumentInput) models.ClassificationResult {
	if domain := doc.SenderDomain(); domain != "" {
		if _, ok := c.ignoredDomains[domain]; ok {
			c.logger.Debug("Sender domain is on the ignore list",
				logging.Field{Key: logging.FieldSender, Value: doc.SenderEmail})
			return models.ClassificationResult{
				Type:       models.TypeIgnored,
				Confidence: 1.0,
				Reason:     fmt.Sprintf("sender domain %s is ignored", domain),
			}
		}
	}

	body := doc.BodyText
	if strings.TrimSpace(body) == "" && doc.BodyHTML != "" {
		body = textutils.StripMarkup(doc.BodyHTML)
	}
	text := strings.ToLower(textutils.Normalize(doc.Subject + " " + body))

	financeScore, financeHits := countSignals(financeSignals, text)
	nonFinanceScore, nonFinanceHits := countSignals(nonFinanceSignals, text)

	c.logger.Debug("Classified document signals",
		logging.Field{Key: "finance_score", Value: financeScore},
		logging.Field{Key: "non_finance_score", Value: nonFinanceScore})

	switch {
	case financeScore >= 2 || (financeScore >= 1 && nonFinanceScore == 0):
		return c.financeResult(text, financeHits)
	case nonFinanceScore >= 2 || (financeScore == 0 && nonFinanceScore > 0):
		return models.ClassificationResult{
			Type:       models.TypeNonFinance,
			Confidence: 0.8,
			Reason:     "non-finance signals: " + strings.Join(nonFinanceHits, ", "),
		}
	default:
		return models.ClassificationResult{
			Type:       models.TypeUnknown,
			Confidence: ConfidenceUnknown,
			Reason:     "no decisive signals",
		}
	}
}

// financeResult picks the finance sub-type by keyword priority.
func (c *Classifier) financeResult(text string, hits []string) models.ClassificationResult {
	for _, st := range subTypes {
		if strings.Contains(text, st.keyword) {
			return models.ClassificationResult{
				Type:       st.docType,
				Confidence: st.confidence,
				Reason:     "finance signals: " + strings.Join(hits, ", "),
			}
		}
	}
	return models.ClassificationResult{
		Type:       models.TypeFinancial,
		Confidence: ConfidenceFinancial,
		Reason:     "finance signals: " + strings.Join(hits, ", "),
	}
}

func countSignals(signals []signal, text string) (int, []string) {
	score := 0
	var hits []string
	for _, s := range signals {
		if s.pattern.MatchString(text) {
			score++
			hits = append(hits, s.name)
		}
	}
	return score, hits
}
