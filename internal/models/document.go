// Package models provides the data structures shared by the extraction
// pipeline stages.
package models

import "strings"

// DocumentInput is the immutable input to one pipeline invocation: an inbound
// email plus any attached files. Missing body parts are represented as empty
// strings, never as absent fields.
type DocumentInput struct {
	Subject     string          `json:"subject"`
	BodyText    string          `json:"body_text"`
	BodyHTML    string          `json:"body_html"`
	SenderEmail string          `json:"sender_email"`
	SenderName  string          `json:"sender_name"`
	Attachments []AttachmentRef `json:"attachments,omitempty"`
}

// SenderDomain returns the lower-cased domain part of the sender address, or
// an empty string when the address has no "@".
func (d DocumentInput) SenderDomain() string {
	at := strings.LastIndex(d.SenderEmail, "@")
	if at < 0 || at == len(d.SenderEmail)-1 {
		return ""
	}
	return strings.ToLower(d.SenderEmail[at+1:])
}

// AttachmentRef describes one attached file. Raw bytes are fetched through an
// injected capability, never stored on the ref itself.
type AttachmentRef struct {
	Name     string `json:"name"`
	MIMEType string `json:"mime_type,omitempty"`
	SizeHint int64  `json:"size_hint,omitempty"`
}
