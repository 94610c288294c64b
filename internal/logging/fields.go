// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"

	// Engine fields.
	FieldMode   = "mode"
	FieldCursor = "cursor"
	FieldKind   = "kind"
	FieldStart  = "start"
	FieldEnd    = "end"
	FieldBytes  = "bytes"
	FieldNodes  = "nodes"
	FieldStyle  = "style"

	// Configuration fields.
	FieldConfig = "config"
	FieldFormat = "format"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
