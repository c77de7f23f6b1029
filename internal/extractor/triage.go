package extractor

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/clearledgr/clearledgr-ap/internal/models"
)

// Kind is the coarse attachment type used for triage and extraction routing.
type Kind string

const (
	KindPDF     Kind = "pdf"
	KindText    Kind = "text"
	KindCSV     Kind = "csv"
	KindHTML    Kind = "html"
	KindJSON    Kind = "json"
	KindXML     Kind = "xml"
	KindRTF     Kind = "rtf"
	KindEmail   Kind = "email"
	KindImage   Kind = "image"
	KindUnknown Kind = "unknown"
)

var extKinds = map[string]Kind{
	".pdf":  KindPDF,
	".txt":  KindText,
	".text": KindText,
	".csv":  KindCSV,
	".tsv":  KindCSV,
	".htm":  KindHTML,
	".html": KindHTML,
	".json": KindJSON,
	".xml":  KindXML,
	".rtf":  KindRTF,
	".eml":  KindEmail,
	".msg":  KindEmail,
	".png":  KindImage,
	".jpg":  KindImage,
	".jpeg": KindImage,
	".gif":  KindImage,
	".tiff": KindImage,
	".webp": KindImage,
}

var mimeKinds = map[string]Kind{
	"application/pdf":          KindPDF,
	"text/plain":               KindText,
	"text/csv":                 KindCSV,
	"text/tab-separated-values": KindCSV,
	"text/html":                KindHTML,
	"application/json":         KindJSON,
	"application/xml":          KindXML,
	"text/xml":                 KindXML,
	"application/rtf":          KindRTF,
	"message/rfc822":           KindEmail,
}

// Per-kind triage bonus. Layout documents carry the most signal, images are
// eligible but last in line.
var kindBonus = map[Kind]int{
	KindPDF:   25,
	KindHTML:  18,
	KindText:  16,
	KindCSV:   16,
	KindRTF:   15,
	KindEmail: 15,
	KindJSON:  14,
	KindXML:   14,
	KindImage: 5,
}

var (
	strongNameKeywords = []string{"invoice", "receipt", "statement", "bill", "remittance"}
	mediumNameKeywords = []string{"payment", "order", "subscription"}
)

// ranked is one triaged attachment with its detected kind and score.
type ranked struct {
	ref   models.AttachmentRef
	kind  Kind
	score int
}

// DetectKind classifies an attachment from its file name and MIME type. The
// MIME type wins when both disagree, except that a generic octet-stream
// defers to the extension.
func DetectKind(ref models.AttachmentRef) Kind {
	byExt := extKinds[strings.ToLower(filepath.Ext(ref.Name))]

	mime := strings.ToLower(strings.TrimSpace(ref.MIMEType))
	if idx := strings.Index(mime, ";"); idx >= 0 {
		mime = strings.TrimSpace(mime[:idx])
	}
	if byMime, ok := mimeKinds[mime]; ok {
		return byMime
	}
	if strings.HasPrefix(mime, "image/") {
		return KindImage
	}
	if byExt != "" {
		return byExt
	}
	return KindUnknown
}

// triage ranks attachments by likely financial relevance, dropping unknown
// types. Ties keep the original attachment order.
func triage(attachments []models.AttachmentRef) []ranked {
	var out []ranked
	for _, ref := range attachments {
		kind := DetectKind(ref)
		if kind == KindUnknown {
			continue
		}
		out = append(out, ranked{ref: ref, kind: kind, score: triageScore(ref, kind)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].score > out[j].score
	})
	return out
}

func triageScore(ref models.AttachmentRef, kind Kind) int {
	score := kindBonus[kind]
	name := strings.ToLower(ref.Name)
	for _, kw := range strongNameKeywords {
		if strings.Contains(name, kw) {
			score += 30
			break
		}
	}
	for _, kw := range mediumNameKeywords {
		if strings.Contains(name, kw) {
			score += 15
			break
		}
	}
	return score
}
