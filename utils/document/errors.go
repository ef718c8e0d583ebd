package document

import (
	"fmt"
	"strings"
)

// SchemaError reports a malformed document or one that violates its schema
type SchemaError struct {
	Path       string   // Offending file
	Kind       Kind     // Document kind it was loaded as
	Violations []string // Validator messages
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s validation error in %s: %s", e.Kind, e.Path, strings.Join(e.Violations, "; "))
}

// ReferenceError reports a pipeline or params reference that cannot be loaded
type ReferenceError struct {
	Preset    string // Preset file naming the reference
	Reference string // Reference as written in the preset
	Path      string // Resolved path
	Err       error
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("preset %s: cannot load %q (%s): %v", e.Preset, e.Reference, e.Path, e.Err)
}

func (e *ReferenceError) Unwrap() error {
	return e.Err
}

func schemaErrorf(path string, kind Kind, format string, args ...interface{}) *SchemaError {
	return &SchemaError{Path: path, Kind: kind, Violations: []string{fmt.Sprintf(format, args...)}}
}
