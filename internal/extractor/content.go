package extractor

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/gocarina/gocsv"
	"golang.org/x/net/html"
	"gopkg.in/xmlpath.v2"

	"github.com/clearledgr/clearledgr-ap/internal/models"
	"github.com/clearledgr/clearledgr-ap/internal/textutils"
)

// binarySampleSize bounds the binary sniff to the head of the payload.
const binarySampleSize = 512

// looksBinary reports whether the payload is undecodable as text: any null
// byte, or more than 5% control characters in the sample.
func looksBinary(data []byte) bool {
	sample := data
	if len(sample) > binarySampleSize {
		sample = sample[:binarySampleSize]
	}
	if len(sample) == 0 {
		return false
	}

	control := 0
	for _, b := range sample {
		if b == 0 {
			return true
		}
		if b < 0x20 && b != '\n' && b != '\r' && b != '\t' {
			control++
		}
	}
	return control*100 > len(sample)*5
}

// extractHTMLText walks the parsed node tree collecting text, skipping
// script and style subtrees. Parse errors degrade to a regex strip.
func extractHTMLText(data []byte) string {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return textutils.StripMarkup(string(data))
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	return textutils.Normalize(b.String())
}

// extractXMLText returns the concatenated text content of the document root.
func extractXMLText(data []byte) string {
	root, err := xmlpath.Parse(bytes.NewReader(data))
	if err != nil {
		return textutils.StripMarkup(string(data))
	}
	return textutils.Normalize(root.String())
}

// extractJSONText pretty-prints structured data so labeled values end up on
// scannable lines. Invalid JSON passes through as-is.
func extractJSONText(data []byte) string {
	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		return textutils.Normalize(string(data))
	}
	text := out.String()
	text = strings.NewReplacer(`"`, " ", "{", " ", "}", " ", "[", " ", "]", " ", ",", " ").Replace(text)
	return textutils.Normalize(text)
}

// extractEmailText isolates the body after the RFC 822 header/body
// separator, keeping the subject header as context.
func extractEmailText(data []byte) string {
	raw := strings.ReplaceAll(string(data), "\r\n", "\n")

	headers, body, found := strings.Cut(raw, "\n\n")
	if !found {
		return textutils.Normalize(raw)
	}

	subject := ""
	for _, line := range strings.Split(headers, "\n") {
		if strings.HasPrefix(strings.ToLower(line), "subject:") {
			subject = strings.TrimSpace(line[len("subject:"):])
			break
		}
	}
	return textutils.Normalize(subject + " " + body)
}

func normalizePlain(data []byte) string {
	return textutils.Normalize(string(data))
}

// extractCSV decodes tabular rows into transaction-shaped records and
// renders a text blob with the delimiters blanked for the scanners. Rows
// always come back with a non-empty TransactionID.
func extractCSV(data []byte) (string, []models.TransactionRecord) {
	normalized := bytes.ReplaceAll(data, []byte("\t"), []byte(","))

	var records []models.TransactionRecord
	if err := gocsv.UnmarshalBytes(normalized, &records); err != nil {
		records = nil
	}

	kept := records[:0]
	for i := range records {
		if records[i].IsEmpty() {
			continue
		}
		records[i].EnsureID()
		kept = append(kept, records[i])
	}
	if len(kept) == 0 {
		kept = nil
	}

	text := strings.NewReplacer(",", " ", ";", " ", "\t", " ").Replace(string(data))
	return textutils.Normalize(text), kept
}
