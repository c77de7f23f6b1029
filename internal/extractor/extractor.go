// Package extractor ranks attachments by likely financial relevance and
// pulls text out of the most promising ones, under hard byte, page and
// character budgets. Failure to extract is a reported condition, not an
// error: downstream stages fall back to email text alone.
package extractor

import (
	"context"
	"fmt"

	"github.com/clearledgr/clearledgr-ap/internal/logging"
	"github.com/clearledgr/clearledgr-ap/internal/models"
	"github.com/clearledgr/clearledgr-ap/internal/parsererror"
)

// AttachmentFetcher fetches an attachment's raw bytes. Injected capability.
type AttachmentFetcher interface {
	FetchAttachmentBytes(ctx context.Context, ref models.AttachmentRef) ([]byte, error)
}

// Budget holds the hard caps for one extraction call.
type Budget struct {
	MaxAttachments int
	MaxBytes       int
	MaxPages       int
	MaxChars       int
	// QualityEarlyStop stops the attempt loop once a single attempt's text
	// quality reaches it.
	QualityEarlyStop int
}

// DefaultBudget mirrors the configuration defaults.
func DefaultBudget() Budget {
	return Budget{
		MaxAttachments:   3,
		MaxBytes:         10 << 20,
		MaxPages:         20,
		MaxChars:         50_000,
		QualityEarlyStop: 70,
	}
}

// Result is the outcome of one extraction call. Empty Text with a non-empty
// Reason means no attachment yielded usable text.
type Result struct {
	Text       string
	SourceName string
	Quality    int
	Reason     string
	// Records holds transaction rows recovered from tabular attachments.
	Records []models.TransactionRecord
	// Surrogate holds a rendered page image when a document yielded no
	// machine text and a renderer was available.
	Surrogate []byte
}

// Extractor triages attachments and extracts text from the best candidates.
type Extractor struct {
	fetcher  AttachmentFetcher
	pdf      PDFTextExtractor
	renderer PageRenderer
	budget   Budget
	logger   logging.Logger
}

// New creates an Extractor. The renderer may be nil; PDF attachments then
// simply fail over to the next candidate when they yield no text.
func New(fetcher AttachmentFetcher, pdf PDFTextExtractor, renderer PageRenderer, budget Budget, logger logging.Logger) *Extractor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Extractor{fetcher: fetcher, pdf: pdf, renderer: renderer, budget: budget, logger: logger}
}

// Extract attempts the top-ranked attachments in triage order and returns the
// best usable text found, stopping early on a high-confidence attempt.
func (e *Extractor) Extract(ctx context.Context, attachments []models.AttachmentRef) Result {
	candidates := triage(attachments)
	if len(candidates) == 0 {
		return Result{Reason: "no extractable attachments"}
	}
	if len(candidates) > e.budget.MaxAttachments {
		candidates = candidates[:e.budget.MaxAttachments]
	}

	var best Result
	lastReason := ""

	for _, c := range candidates {
		attempt, err := e.attempt(ctx, c)
		if err != nil {
			lastReason = err.Error()
			e.logger.Warn("Attachment extraction attempt failed",
				logging.Field{Key: logging.FieldAttachment, Value: c.ref.Name},
				logging.Field{Key: logging.FieldReason, Value: lastReason})
			continue
		}

		textQuality := scoreTextQuality(attempt.Text)
		attempt.Quality = c.score + textQuality
		e.logger.Debug("Scored extraction attempt",
			logging.Field{Key: logging.FieldAttachment, Value: c.ref.Name},
			logging.Field{Key: logging.FieldScore, Value: attempt.Quality})

		if attempt.Quality > best.Quality || best.Text == "" && attempt.Text != "" {
			best = attempt
		}
		if textQuality >= e.budget.QualityEarlyStop {
			break
		}
	}

	if best.Text == "" && best.Surrogate == nil {
		if lastReason == "" {
			lastReason = "no attachment yielded usable text"
		}
		return Result{Reason: lastReason, Records: best.Records}
	}
	return best
}

// attempt fetches and extracts one attachment, enforcing the byte and
// character budgets as hard caps.
func (e *Extractor) attempt(ctx context.Context, c ranked) (Result, error) {
	data, err := e.fetcher.FetchAttachmentBytes(ctx, c.ref)
	if err != nil {
		return Result{}, &parsererror.ExtractionError{
			Attachment: c.ref.Name, Kind: string(c.kind), Reason: "fetch failed", Err: err,
		}
	}
	if len(data) > e.budget.MaxBytes {
		return Result{}, &parsererror.BudgetExceededError{
			Attachment: c.ref.Name, Limit: "byte", Allowed: e.budget.MaxBytes, Actual: len(data),
		}
	}

	text, records, err := e.extractContent(ctx, c, data)
	if err != nil {
		return Result{}, err
	}

	if c.kind == KindPDF && text == "" && e.renderer != nil {
		surrogate, renderErr := e.renderer.RenderPageToImage(ctx, data, 0)
		if renderErr == nil && len(surrogate) > 0 {
			return Result{SourceName: c.ref.Name, Surrogate: surrogate}, nil
		}
	}

	if len(text) > e.budget.MaxChars {
		text = text[:e.budget.MaxChars]
	}
	return Result{Text: text, SourceName: c.ref.Name, Records: records}, nil
}

func (e *Extractor) extractContent(ctx context.Context, c ranked, data []byte) (string, []models.TransactionRecord, error) {
	if c.kind != KindPDF && c.kind != KindImage && looksBinary(data) {
		return "", nil, &parsererror.ExtractionError{
			Attachment: c.ref.Name, Kind: string(c.kind), Reason: "binary content",
		}
	}

	switch c.kind {
	case KindPDF:
		text, err := e.pdf.ExtractText(ctx, data, e.budget.MaxPages)
		if err != nil {
			return "", nil, &parsererror.ExtractionError{
				Attachment: c.ref.Name, Kind: string(c.kind), Reason: "pdf text extraction failed", Err: err,
			}
		}
		return text, nil, nil
	case KindHTML:
		return extractHTMLText(data), nil, nil
	case KindXML:
		return extractXMLText(data), nil, nil
	case KindJSON:
		return extractJSONText(data), nil, nil
	case KindCSV:
		text, records := extractCSV(data)
		return text, records, nil
	case KindEmail:
		return extractEmailText(data), nil, nil
	case KindText, KindRTF:
		return normalizePlain(data), nil, nil
	case KindImage:
		// No OCR: images only count through a renderer-produced surrogate,
		// which they already are.
		return "", nil, &parsererror.ExtractionError{
			Attachment: c.ref.Name, Kind: string(c.kind), Reason: "image attachments carry no machine text",
		}
	default:
		return "", nil, fmt.Errorf("unhandled attachment kind %q", c.kind)
	}
}
