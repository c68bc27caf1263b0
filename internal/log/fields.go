// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldRequestID     = "request_id"
	FieldCorrelationID = "correlation_id"
	FieldRecordID      = "record_id"

	// Process fields
	FieldComponent = "component"

	// Transform fields
	FieldURL     = "url"
	FieldKey     = "key"
	FieldProfile = "profile"
	FieldCount   = "count"

	// Error fields
	FieldErrorKind = "error_kind"

	// Network fields
	FieldListenAddr = "listen_addr"
	FieldRemoteAddr = "remote_addr"
	FieldStatus     = "status"
	FieldDurationMS = "duration_ms"
)
