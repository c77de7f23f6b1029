// Package engine wires the pipeline stages into one document-processing
// function: classify, extract attachment text, scan candidates, arbitrate,
// categorize, match, route. One Process call is a pure function of its input
// plus the injected capabilities; concurrent calls share nothing mutable.
package engine

import (
	"context"
	"time"

	"github.com/clearledgr/clearledgr-ap/internal/arbiter"
	"github.com/clearledgr/clearledgr-ap/internal/categorizer"
	"github.com/clearledgr/clearledgr-ap/internal/classifier"
	"github.com/clearledgr/clearledgr-ap/internal/extractor"
	"github.com/clearledgr/clearledgr-ap/internal/logging"
	"github.com/clearledgr/clearledgr-ap/internal/matcher"
	"github.com/clearledgr/clearledgr-ap/internal/models"
	"github.com/clearledgr/clearledgr-ap/internal/router"
	"github.com/clearledgr/clearledgr-ap/internal/scanners"
	"github.com/clearledgr/clearledgr-ap/internal/textutils"
)

// Outcome is the tagged result of one pipeline run. A halted outcome carries
// only the classification; stages after the halt never ran.
type Outcome struct {
	Halted         bool                           `json:"halted"`
	HaltReason     string                         `json:"halt_reason,omitempty"`
	Classification models.ClassificationResult    `json:"classification"`
	Data           *models.ExtractedFinancialData `json:"data,omitempty"`
	Match          *models.MatchResult            `json:"match,omitempty"`
	RoutingStatus  string                         `json:"routing_status,omitempty"`
}

// Engine runs the extraction pipeline over single documents.
type Engine struct {
	classifier *classifier.Classifier
	extractor  *extractor.Extractor
	arbiter    *arbiter.Arbiter
	advisor    *categorizer.Advisor
	local      *matcher.LocalFallback
	remote     matcher.RemoteMatcher
	insights   matcher.VendorInsights
	router     *router.Router
	logger     logging.Logger
}

// New assembles an Engine from its stages. The remote matcher and vendor
// insights are optional; without them every document takes the local path.
func New(
	cls *classifier.Classifier,
	ext *extractor.Extractor,
	arb *arbiter.Arbiter,
	advisor *categorizer.Advisor,
	local *matcher.LocalFallback,
	remote matcher.RemoteMatcher,
	insights matcher.VendorInsights,
	rtr *router.Router,
	logger logging.Logger,
) *Engine {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Engine{
		classifier: cls,
		extractor:  ext,
		arbiter:    arb,
		advisor:    advisor,
		local:      local,
		remote:     remote,
		insights:   insights,
		router:     rtr,
		logger:     logger,
	}
}

// Process runs one document through the full pipeline.
func (e *Engine) Process(ctx context.Context, doc models.DocumentInput) (Outcome, error) {
	started := time.Now()

	classification := e.classifier.Classify(doc)
	e.logger.Info("Classified document",
		logging.Field{Key: logging.FieldType, Value: string(classification.Type)},
		logging.Field{Key: logging.FieldConfidence, Value: classification.Confidence})

	if !classification.Type.IsFinanceRelevant() {
		return Outcome{
			Halted:         true,
			HaltReason:     classification.Reason,
			Classification: classification,
		}, nil
	}

	data := e.extractFields(ctx, doc, classification)

	data.Category = e.advisor.Suggest(ctx, categorizer.Document{
		Vendor:  data.VendorName(),
		Subject: doc.Subject,
		Amount:  e.amountString(data),
	})

	e.fetchInsights(ctx, data)

	match := e.match(ctx, data)

	status, err := e.router.Route(ctx, data, match)
	if err != nil {
		return Outcome{Classification: classification, Data: data, Match: match}, err
	}

	e.logger.Info("Processed document",
		logging.Field{Key: logging.FieldStatus, Value: status},
		logging.Field{Key: logging.FieldDuration, Value: time.Since(started).Milliseconds()})

	return Outcome{
		Classification: classification,
		Data:           data,
		Match:          match,
		RoutingStatus:  status,
	}, nil
}

// extractFields runs extraction, both scanner passes, and arbitration.
func (e *Engine) extractFields(ctx context.Context, doc models.DocumentInput, classification models.ClassificationResult) *models.ExtractedFinancialData {
	body := doc.BodyText
	if body == "" && doc.BodyHTML != "" {
		body = textutils.StripMarkup(doc.BodyHTML)
	}
	emailText := textutils.Normalize(doc.Subject + " " + body)

	data := &models.ExtractedFinancialData{
		HasAttachments:       len(doc.Attachments) > 0,
		EmailType:            classification.Type,
		ClassificationReason: classification.Reason,
	}

	var extraction extractor.Result
	if data.HasAttachments {
		extraction = e.extractor.Extract(ctx, doc.Attachments)
		data.AttachmentTextUsed = extraction.Text != ""
		data.AttachmentSource = extraction.SourceName
		data.Records = extraction.Records
		if extraction.Text == "" && extraction.Reason != "" {
			e.logger.Info("No usable attachment text",
				logging.Field{Key: logging.FieldReason, Value: extraction.Reason})
		}
	}

	email := scanned{
		vendor:  scanners.ScanVendorEmail(doc.Subject, body, doc.SenderName, doc.SenderEmail),
		amount:  scanners.ScanAmounts(emailText, models.SourceEmail),
		invoice: scanners.ScanInvoiceNumbers(emailText, models.SourceEmail),
		date:    scanners.ScanDates(emailText, models.SourceEmail),
		terms:   scanners.ScanPaymentTerms(emailText, models.SourceEmail),
	}

	attachment := scanned{}
	if extraction.Text != "" {
		text := textutils.Normalize(extraction.Text)
		attachment = scanned{
			vendor:  scanners.ScanVendorText(text, models.SourceAttachment),
			amount:  scanners.ScanAmounts(text, models.SourceAttachment),
			invoice: scanners.ScanInvoiceNumbers(text, models.SourceAttachment),
			date:    scanners.ScanDates(text, models.SourceAttachment),
			terms:   scanners.ScanPaymentTerms(text, models.SourceAttachment),
		}
	}
	// File names carry invoice numbers even when their content does not
	// extract.
	for _, ref := range doc.Attachments {
		attachment.invoice = append(attachment.invoice,
			scanners.ScanInvoiceFilename(ref.Name, models.SourceAttachment)...)
	}

	data.Vendor = e.arbiter.Choose(models.FieldVendor,
		scanners.PickBest(email.vendor), scanners.PickBest(attachment.vendor))
	data.Amount = e.arbiter.Choose(models.FieldAmount,
		scanners.PickBest(email.amount), scanners.PickBest(attachment.amount))
	data.InvoiceNumber = e.arbiter.Choose(models.FieldInvoiceNumber,
		scanners.PickBest(email.invoice), scanners.PickBest(attachment.invoice))
	data.DocumentDate = e.arbiter.Choose(models.FieldDocumentDate,
		scanners.PickBest(email.date), scanners.PickBest(attachment.date))

	// Payment terms are single-valued; email phrasing wins when both exist.
	if best := scanners.PickBest(email.terms); best != nil {
		data.PaymentTerms = best
	} else {
		data.PaymentTerms = scanners.PickBest(attachment.terms)
	}

	e.arbiter.SuppressConflicts(data)
	return data
}

type scanned struct {
	vendor  []models.FieldCandidate
	amount  []models.FieldCandidate
	invoice []models.FieldCandidate
	date    []models.FieldCandidate
	terms   []models.FieldCandidate
}

// match tries the remote matcher and falls back to the local data-quality
// score when it is missing, unhealthy, or failing.
func (e *Engine) match(ctx context.Context, data *models.ExtractedFinancialData) *models.MatchResult {
	if e.remote == nil {
		return e.local.Score(data)
	}
	if !e.remote.CheckHealth(ctx) {
		e.logger.Warn("Remote matcher unhealthy, using local fallback")
		return e.local.Score(data)
	}

	result, err := e.remote.MatchDocument(ctx, data)
	if err != nil {
		e.logger.WithError(err).Warn("Remote match failed, using local fallback")
		return e.local.Score(data)
	}
	return result
}

// fetchInsights enriches logs with vendor insights when the capability is
// wired. Failures are observable but never block the pipeline.
func (e *Engine) fetchInsights(ctx context.Context, data *models.ExtractedFinancialData) {
	if e.insights == nil || data.VendorName() == models.UnknownVendor {
		return
	}
	insights, err := e.insights.FetchVendorInsights(ctx, data.VendorName())
	if err != nil {
		e.logger.WithError(err).Warn("Vendor insight lookup failed")
		return
	}
	if insights != nil {
		e.logger.Debug("Fetched vendor insights",
			logging.Field{Key: "vendor", Value: data.VendorName()},
			logging.Field{Key: logging.FieldCount, Value: len(insights)})
	}
}

func (e *Engine) amountString(data *models.ExtractedFinancialData) string {
	if data.Amount == nil {
		return ""
	}
	return data.Amount.Value
}
