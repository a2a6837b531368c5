package model

import "fmt"

// LineError represents a structural error on a single invoice line
// (missing identifier, malformed value). It is fatal to that line only;
// the rest of the batch proceeds.
type LineError struct {
	Line    int
	Field   string
	Message string
	Cause   error
}

func (e *LineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("line %d: %s: %s (%v)", e.Line, e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("line %d: %s: %s", e.Line, e.Field, e.Message)
}

func (e *LineError) Unwrap() error {
	return e.Cause
}

// NewLineError creates a new line error
func NewLineError(line int, field, message string, cause error) *LineError {
	return &LineError{
		Line:    line,
		Field:   field,
		Message: message,
		Cause:   cause,
	}
}

// ConfigError represents a reference-data gap such as a missing
// declaration code for a qualifying material. It fails the line and is
// surfaced prominently since it requires operator action.
type ConfigError struct {
	Material Material
	Message  string
}

func (e *ConfigError) Error() string {
	if e.Material != MaterialNone {
		return fmt.Sprintf("configuration error [%s]: %s", e.Material, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// NewConfigError creates a new configuration error
func NewConfigError(material Material, message string) *ConfigError {
	return &ConfigError{
		Material: material,
		Message:  message,
	}
}

// SnapshotError represents a corrupt or unreadable reference snapshot.
type SnapshotError struct {
	Source  string
	Message string
	Cause   error
}

func (e *SnapshotError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("reference snapshot [%s]: %s (%v)", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("reference snapshot [%s]: %s", e.Source, e.Message)
}

func (e *SnapshotError) Unwrap() error {
	return e.Cause
}

// NewSnapshotError creates a new snapshot error
func NewSnapshotError(source, message string, cause error) *SnapshotError {
	return &SnapshotError{
		Source:  source,
		Message: message,
		Cause:   cause,
	}
}
