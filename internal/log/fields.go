// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldService   = "service"
	FieldVersion   = "version"
	FieldRequestID = "request_id"

	// Process fields
	FieldEvent     = "event"
	FieldComponent = "component"

	// Request fields
	FieldMethod     = "method"
	FieldStatus     = "status"
	FieldDurationMS = "duration_ms"
	FieldBytes      = "bytes"
	FieldRemoteAddr = "remote_addr"

	// Path / URL fields
	FieldPath    = "path"
	FieldFrom    = "from"
	FieldTo      = "to"
	FieldSiteDir = "site_dir"
	FieldBaseURL = "base_url"
)
