package scanners

import (
	"regexp"
	"strings"

	"github.com/clearledgr/clearledgr-ap/internal/models"
)

// Vendor heuristics in priority order. Priority is expressed as a base score
// added to the name-quality score; a name whose quality score is zero is
// treated as absent regardless of where it came from.
const (
	baseSubjectColon   = 10
	baseSenderDisplay  = 9
	baseSubjectFrom    = 8
	baseBodyLabel      = 7
	baseSenderSplit    = 6
	baseSenderDomain   = 4
	baseAttachmentName = 9
)

var vendorNoiseWords = map[string]struct{}{
	"billing": {}, "payment": {}, "payments": {}, "support": {}, "noreply": {},
	"no-reply": {}, "notification": {}, "notifications": {}, "admin": {},
	"info": {}, "sales": {}, "alert": {}, "alerts": {}, "invoice": {},
	"invoices": {}, "receipts": {}, "team": {}, "mailer": {}, "accounts": {},
}

var legalSuffixRe = regexp.MustCompile(`(?i)\b(inc|llc|ltd|gmbh|corp|co|ag|sa|srl|bv|plc|sarl)\.?$`)

var subjectFinanceKeywordRe = regexp.MustCompile(`(?i)\b(invoice|receipt|payment|statement|bill|order|re|fwd|fw)\b`)

var (
	subjectFromRe  = regexp.MustCompile(`(?i)\bfrom\s+([A-Z][A-Za-z0-9&.' -]{1,40}?)(?:\s*$|\s+(?:for|regarding|re|on|dated)\b|[,;])`)
	bodyLabelRe    = regexp.MustCompile(`(?i)\b(?:vendor|merchant|payee|supplier|billed\s+by|sold\s+by)\s*:\s*([A-Za-z][A-Za-z0-9&.' -]{1,50}?)(?:\s*$|\s+\w+\s*:|[,;|])`)
	acronymRe      = regexp.MustCompile(`^[A-Z]{2,5}$`)
	digitRe        = regexp.MustCompile(`[0-9]`)
	idLikeTokenRe  = regexp.MustCompile(`\b[A-Za-z]*\d[\dA-Za-z]{5,}\b`)
	attachCorpRe   = regexp.MustCompile(`\b((?:[A-Z][A-Za-z&.']*\s+){1,3}(?:Inc|LLC|Ltd|GmbH|Corp|AG|SA|PLC)\.?)(?:\s|$|[,;])`)
	senderSplitRe  = regexp.MustCompile(`(?i)^(.{2,40}?)\s+(?:from|at|-|–|\|)\s+(.{2,40})$`)
	displayNoiseRe = regexp.MustCompile(`(?i)["<>]|via\b`)
)

// ScoreVendorName scores how plausible a cleaned string is as a vendor name,
// 0 to roughly 40. Zero means "not a vendor name"; a chosen vendor therefore
// always scores above zero by construction.
func ScoreVendorName(name string) int {
	cleaned := CleanVendorName(name)
	if cleaned == "" {
		return 0
	}
	lower := strings.ToLower(cleaned)
	if _, noise := vendorNoiseWords[lower]; noise {
		return 0
	}

	score := 0
	if len(cleaned) >= 4 {
		score += 10
	}
	if len(cleaned) >= 10 {
		score += 5
	}
	if legalSuffixRe.MatchString(cleaned) {
		score += 12
	}
	if acronymRe.MatchString(cleaned) {
		score += 6
	}
	if digitRe.MatchString(cleaned) {
		score -= 10
	}
	if idLikeTokenRe.MatchString(cleaned) {
		score -= 15
	}
	for _, word := range strings.Fields(lower) {
		if _, noise := vendorNoiseWords[word]; noise {
			score -= 12
		}
	}

	if score < 0 {
		return 0
	}
	return score
}

// CleanVendorName trims quotes, brackets and stray punctuation from a raw
// vendor string.
func CleanVendorName(name string) string {
	cleaned := strings.TrimSpace(name)
	cleaned = strings.Trim(cleaned, `"'<>()[]`)
	cleaned = strings.TrimRight(cleaned, " .,;:-")
	cleaned = strings.TrimSpace(cleaned)
	return cleaned
}

// ScanVendorEmail generates vendor candidates from the email's subject,
// body, and sender identity.
func ScanVendorEmail(subject, body, senderName, senderEmail string) []models.FieldCandidate {
	var candidates []models.FieldCandidate
	position := 0

	add := func(raw string, base int) {
		cleaned := CleanVendorName(raw)
		quality := ScoreVendorName(cleaned)
		if quality == 0 {
			position++
			return
		}
		candidates = append(candidates, models.FieldCandidate{
			Field:    models.FieldVendor,
			Value:    cleaned,
			Raw:      raw,
			Score:    base + quality,
			Position: position,
			Context:  raw,
			Source:   models.SourceEmail,
		})
		position++
	}

	// Subject colon prefix: "ACME Corp: your invoice" — unless the prefix is
	// itself finance phrasing.
	if idx := strings.Index(subject, ":"); idx > 0 {
		prefix := subject[:idx]
		if !subjectFinanceKeywordRe.MatchString(prefix) {
			add(prefix, baseSubjectColon)
		} else {
			position++
		}
	} else {
		position++
	}

	// Cleaned sender display name. A "X from Y" style name is handled by the
	// split heuristic below instead of being taken whole.
	display := displayNoiseRe.ReplaceAllString(senderName, " ")
	if senderSplitRe.MatchString(senderName) {
		position++
	} else {
		add(display, baseSenderDisplay)
	}

	// Subject "from X".
	if m := subjectFromRe.FindStringSubmatch(subject); m != nil {
		add(m[1], baseSubjectFrom)
	} else {
		position++
	}

	// Body "vendor:/merchant:/payee:/supplier:" labeled line.
	if m := bodyLabelRe.FindStringSubmatch(body); m != nil {
		add(m[1], baseBodyLabel)
	} else {
		position++
	}

	// Sender name "X from Y" / "X - Y" split: keep the better-scoring side.
	if m := senderSplitRe.FindStringSubmatch(senderName); m != nil {
		left, right := m[1], m[2]
		if ScoreVendorName(right) >= ScoreVendorName(left) {
			add(right, baseSenderSplit)
		} else {
			add(left, baseSenderSplit)
		}
	} else {
		position++
	}

	// Sender email domain, capitalized: billing@acme.com -> Acme.
	add(domainVendor(senderEmail), baseSenderDomain)

	return candidates
}

// ScanVendorText generates vendor candidates from extracted attachment text:
// labeled lines plus company names carrying a legal-entity suffix.
func ScanVendorText(text string, source models.Source) []models.FieldCandidate {
	var candidates []models.FieldCandidate

	for _, loc := range bodyLabelRe.FindAllStringSubmatchIndex(text, -1) {
		raw := text[loc[2]:loc[3]]
		cleaned := CleanVendorName(raw)
		quality := ScoreVendorName(cleaned)
		if quality == 0 {
			continue
		}
		candidates = append(candidates, models.FieldCandidate{
			Field:    models.FieldVendor,
			Value:    cleaned,
			Raw:      raw,
			Score:    baseBodyLabel + quality,
			Position: loc[0],
			Context:  contextWindow(text, loc[0], loc[1]),
			Source:   source,
		})
	}

	for _, loc := range attachCorpRe.FindAllStringSubmatchIndex(text, -1) {
		raw := text[loc[2]:loc[3]]
		cleaned := CleanVendorName(raw)
		quality := ScoreVendorName(cleaned)
		if quality == 0 {
			continue
		}
		candidates = append(candidates, models.FieldCandidate{
			Field:    models.FieldVendor,
			Value:    cleaned,
			Raw:      raw,
			Score:    baseAttachmentName + quality,
			Position: loc[0],
			Context:  contextWindow(text, loc[0], loc[1]),
			Source:   source,
		})
	}

	return candidates
}

// domainVendor turns a sender address into a capitalized domain name
// candidate: "billing@amazon.com" -> "Amazon".
func domainVendor(senderEmail string) string {
	at := strings.LastIndex(senderEmail, "@")
	if at < 0 {
		return ""
	}
	domain := strings.ToLower(senderEmail[at+1:])
	// Drop the public suffix and any subdomains: take the registrable label.
	parts := strings.Split(domain, ".")
	if len(parts) < 2 {
		return ""
	}
	label := parts[len(parts)-2]
	if label == "" {
		return ""
	}
	return strings.ToUpper(label[:1]) + label[1:]
}
