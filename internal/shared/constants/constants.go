package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// HTTP Headers
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXDeviceID     = "X-Device-ID"

	// Content Types
	ContentTypeJSON = "application/json"

	// Context keys
	ContextKeyUserID    = "user_id"
	ContextKeyRequestID = "request_id"

	// Database table names
	TableNotes          = "notes"
	TableNoteDetails    = "note_details"
	TableHistoryEntries = "history_entries"
	TableUsageRecords   = "usage_records"

	// Usage scope kinds as stored
	ScopeKindUser   = "user"
	ScopeKindDevice = "device"
)
