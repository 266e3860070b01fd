// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"

	// Configuration fields.
	FieldFlavor   = "flavor"
	FieldFormat   = "format"
	FieldMatching = "label_matching"
	FieldWidth    = "width"

	// Render fields.
	FieldNode     = "node"
	FieldLine     = "line"
	FieldColumn   = "column"
	FieldKey      = "key"
	FieldLabel    = "label"
	FieldBlocks   = "blocks"
	FieldLinks    = "links"
	FieldDuration = "duration"
	FieldEvent    = "event"

	// Batch fields.
	FieldFiles      = "files"
	FieldJobs       = "jobs"
	FieldErrored    = "errored"
	FieldUnresolved = "unresolved"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
