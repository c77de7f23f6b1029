package logging

// Standardized field names for structured logging. Keeping these consistent
// makes pipeline logs easy to filter by stage, field and attachment.
const (
	FieldComponent  = "component"
	FieldStage      = "stage"
	FieldField      = "field"
	FieldSource     = "source"
	FieldScore      = "score"
	FieldAttachment = "attachment"
	FieldReason     = "reason"
	FieldCount      = "count"
	FieldSender     = "sender"
	FieldType       = "type"
	FieldConfidence = "confidence"
	FieldStatus     = "status"
	FieldDuration   = "duration_ms"
)
