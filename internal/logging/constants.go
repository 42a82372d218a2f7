package logging

// Standardized field names for structured logging.
const (
	FieldFile        = "file_path"
	FieldCategory    = "category"
	FieldDescription = "description"
	FieldProvider    = "provider"
	FieldModel       = "model"
	FieldProfile     = "profile"
	FieldReason      = "reason"
	FieldStatus      = "status"
	FieldDuration    = "duration_ms"
	FieldCount       = "count"
	FieldDelimiter   = "delimiter"
	FieldRequestID   = "request_id"
	FieldSource      = "source"
)
