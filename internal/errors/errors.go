// Package errors provides the typed error hierarchy used by brb.
// Every failure carries an ErrorType so callers can tell fatal conditions
// (missing input, unparsable LAS, existing output) from the recoverable ones
// that only degrade the run to a warning.
package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"path/filepath"
)

// ErrorType represents the category of error for classification and handling.
type ErrorType string

// Error type constants. Fatal kinds stop the run; the remaining kinds are
// reported as warnings by the pipeline.
const (
	ErrTypeInputNotFound     ErrorType = "input"
	ErrTypeParse             ErrorType = "parse"
	ErrTypeMissingIdentifier ErrorType = "identifier"
	ErrTypeConfigLoad        ErrorType = "config-load"
	ErrTypeUnknownColumn     ErrorType = "column"
	ErrTypeHeaderConflict    ErrorType = "header-conflict"
	ErrTypeOutputExists      ErrorType = "output-exists"
	ErrTypeOutput            ErrorType = "output"
	ErrTypeConfig            ErrorType = "config"
)

// BrbError is the base error type that provides structured error information.
// Specific error types embed it so they can be matched both by concrete type
// (errors.As) and by category (errors.Is against a BrbError with the same Type).
type BrbError struct {
	Type    ErrorType
	Path    string
	Message string
	Cause   error
}

func (e *BrbError) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s error for %s: %s", e.Type, e.Path, msg)
	}
	return fmt.Sprintf("%s error: %s", e.Type, msg)
}

func (e *BrbError) Unwrap() error {
	return e.Cause
}

// Kind returns the error category. It is promoted to every typed error so
// the category can be recovered through errors.As with a Categorized target.
func (e *BrbError) Kind() ErrorType {
	return e.Type
}

// Categorized is implemented by every error in this package.
type Categorized interface {
	error
	Kind() ErrorType
}

// Is reports whether target is a BrbError of the same category.
func (e *BrbError) Is(target error) bool {
	t, ok := target.(*BrbError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// Sentinels for errors.Is checks by category.
var (
	ErrInputNotFound     = &BrbError{Type: ErrTypeInputNotFound}
	ErrParse             = &BrbError{Type: ErrTypeParse}
	ErrMissingIdentifier = &BrbError{Type: ErrTypeMissingIdentifier}
	ErrConfigLoad        = &BrbError{Type: ErrTypeConfigLoad}
	ErrUnknownColumn     = &BrbError{Type: ErrTypeUnknownColumn}
	ErrHeaderConflict    = &BrbError{Type: ErrTypeHeaderConflict}
	ErrOutputExists      = &BrbError{Type: ErrTypeOutputExists}
	ErrOutput            = &BrbError{Type: ErrTypeOutput}
	ErrConfig            = &BrbError{Type: ErrTypeConfig}
)

// InputNotFoundError is returned when the input path does not resolve to a
// readable regular file.
type InputNotFoundError struct {
	*BrbError
}

// NewInputNotFoundError creates an input not found error.
func NewInputNotFoundError(path string, cause error) *InputNotFoundError {
	return &InputNotFoundError{
		BrbError: &BrbError{
			Type:    ErrTypeInputNotFound,
			Path:    path,
			Message: "cannot open input",
			Cause:   cause,
		},
	}
}

// ParseError wraps the message of the underlying LAS reader.
type ParseError struct {
	*BrbError
	Line int
}

// NewParseError creates a parse error. A line of 0 means the failure is not
// tied to a particular line.
func NewParseError(path string, line int, message string, cause error) *ParseError {
	if line > 0 {
		message = fmt.Sprintf("line %d: %s", line, message)
	}
	return &ParseError{
		BrbError: &BrbError{
			Type:    ErrTypeParse,
			Path:    path,
			Message: message,
			Cause:   cause,
		},
		Line: line,
	}
}

// MissingIdentifierError reports that no usable well name was found.
type MissingIdentifierError struct {
	*BrbError
}

// NewMissingIdentifierError creates a missing identifier error.
func NewMissingIdentifierError(message string) *MissingIdentifierError {
	return &MissingIdentifierError{
		BrbError: &BrbError{
			Type:    ErrTypeMissingIdentifier,
			Message: message,
		},
	}
}

// ConfigLoadError reports that the alias table could not be loaded.
type ConfigLoadError struct {
	*BrbError
}

// NewConfigLoadError creates an alias table load error.
func NewConfigLoadError(path, message string, cause error) *ConfigLoadError {
	return &ConfigLoadError{
		BrbError: &BrbError{
			Type:    ErrTypeConfigLoad,
			Path:    path,
			Message: message,
			Cause:   cause,
		},
	}
}

// UnknownColumnError reports a requested column that the dataset lacks.
type UnknownColumnError struct {
	*BrbError
	Column string
}

// NewUnknownColumnError creates an unknown requested column error.
func NewUnknownColumnError(column string) *UnknownColumnError {
	return &UnknownColumnError{
		BrbError: &BrbError{
			Type:    ErrTypeUnknownColumn,
			Message: fmt.Sprintf("no such column %s", column),
		},
		Column: column,
	}
}

// HeaderConflictError reports a column left unrenamed because its canonical
// name was already taken.
type HeaderConflictError struct {
	*BrbError
	Column    string
	Canonical string
}

// NewHeaderConflictError creates a header conflict error.
func NewHeaderConflictError(column, canonical, message string) *HeaderConflictError {
	return &HeaderConflictError{
		BrbError: &BrbError{
			Type:    ErrTypeHeaderConflict,
			Message: message,
		},
		Column:    column,
		Canonical: canonical,
	}
}

// OutputExistsError is returned instead of overwriting an existing file.
type OutputExistsError struct {
	*BrbError
}

// NewOutputExistsError creates an output exists error.
func NewOutputExistsError(path string) *OutputExistsError {
	return &OutputExistsError{
		BrbError: &BrbError{
			Type:    ErrTypeOutputExists,
			Path:    path,
			Message: "file exists, will not overwrite",
		},
	}
}

// OutputError represents a failure while creating or writing the output.
type OutputError struct {
	*BrbError
}

// NewOutputError creates an output error.
func NewOutputError(path, message string, cause error) *OutputError {
	return &OutputError{
		BrbError: &BrbError{
			Type:    ErrTypeOutput,
			Path:    path,
			Message: message,
			Cause:   cause,
		},
	}
}

// ConfigError represents invalid command line configuration.
type ConfigError struct {
	*BrbError
}

// NewConfigError creates a configuration error without path context.
func NewConfigError(message string, cause error) *ConfigError {
	return &ConfigError{
		BrbError: &BrbError{
			Type:    ErrTypeConfig,
			Message: message,
			Cause:   cause,
		},
	}
}

// NewConfigErrorWithPath creates a configuration error with file context.
func NewConfigErrorWithPath(path, message string, cause error) *ConfigError {
	return &ConfigError{
		BrbError: &BrbError{
			Type:    ErrTypeConfig,
			Path:    path,
			Message: message,
			Cause:   cause,
		},
	}
}

// WrapInputError classifies an error returned while opening or stating the
// input file. Missing files, permission problems and directories all map to
// InputNotFound since none of them resolve to a readable file.
func WrapInputError(path string, err error) error {
	if err == nil {
		return nil
	}

	absPath, absErr := filepath.Abs(path)
	if absErr != nil {
		absPath = path
	}
	switch {
	case stderrors.Is(err, fs.ErrNotExist), stderrors.Is(err, fs.ErrPermission):
		return NewInputNotFoundError(absPath, err)
	default:
		return NewInputNotFoundError(absPath, fmt.Errorf("unreadable input: %w", err))
	}
}

// IsFatal reports whether err terminates a run.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	var ce Categorized
	if !stderrors.As(err, &ce) {
		return true
	}
	switch ce.Kind() {
	case ErrTypeMissingIdentifier, ErrTypeConfigLoad, ErrTypeUnknownColumn, ErrTypeHeaderConflict:
		return false
	default:
		return true
	}
}
