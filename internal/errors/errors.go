// Package errors defines the structured error taxonomy shared by the
// extractor, mutator, renderer, and sandbox.
//
// Parse, transpile, and execution errors are fail-stop for the current
// render cycle: callers render a dedicated error state instead of a partial
// preview. Validation errors are raised before a change reaches the mutator,
// so the mutator itself has no partial-failure mode.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Kind categorizes an error for dispatch and display.
type Kind string

const (
	// KindParse means no renderable component definition could be
	// located in the source text
	KindParse Kind = "parse"
	// KindTranspile means the JSX compiler rejected the source
	KindTranspile Kind = "transpile"
	// KindExecution means compiled code threw during invocation
	KindExecution Kind = "execution"
	// KindValidation means a proposed property value failed a format
	// check before reaching the mutator
	KindValidation Kind = "validation"
	KindIO         Kind = "io"
	KindConfig     Kind = "config"
	KindInternal   Kind = "internal"
)

// ChiselError is a structured error with enough context to render a
// user-facing error state.
type ChiselError struct {
	Kind      Kind
	Code      string
	Message   string
	Cause     error
	Component string
	Context   map[string]any
}

// Error implements the error interface.
func (e *ChiselError) Error() string {
	var parts []string
	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}
	if e.Component != "" {
		parts = append(parts, "component:"+e.Component)
	}
	parts = append(parts, e.Message)
	result := strings.Join(parts, " ")
	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}
	return result
}

// Unwrap returns the underlying cause error.
func (e *ChiselError) Unwrap() error {
	return e.Cause
}

// Is matches errors by kind and code.
func (e *ChiselError) Is(target error) bool {
	var t *ChiselError
	if errors.As(target, &t) {
		return e.Kind == t.Kind && (t.Code == "" || e.Code == t.Code)
	}
	return false
}

// WithContext attaches a key/value pair to the error.
func (e *ChiselError) WithContext(key string, value any) *ChiselError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// WithComponent attaches the component name the error occurred in.
func (e *ChiselError) WithComponent(component string) *ChiselError {
	e.Component = component
	return e
}

// NewParseError creates a parse error.
func NewParseError(code, message string) *ChiselError {
	return &ChiselError{Kind: KindParse, Code: code, Message: message}
}

// NewTranspileError creates a transpile error wrapping the compiler's
// diagnostic.
func NewTranspileError(code, message string, cause error) *ChiselError {
	return &ChiselError{Kind: KindTranspile, Code: code, Message: message, Cause: cause}
}

// NewExecutionError creates an execution error.
func NewExecutionError(code, message string, cause error) *ChiselError {
	return &ChiselError{Kind: KindExecution, Code: code, Message: message, Cause: cause}
}

// NewValidationError creates a validation error.
func NewValidationError(code, message string) *ChiselError {
	return &ChiselError{Kind: KindValidation, Code: code, Message: message}
}

// NewIOError creates an I/O error.
func NewIOError(code, message string, cause error) *ChiselError {
	return &ChiselError{Kind: KindIO, Code: code, Message: message, Cause: cause}
}

// NewConfigError creates a configuration error.
func NewConfigError(code, message string) *ChiselError {
	return &ChiselError{Kind: KindConfig, Code: code, Message: message}
}

// NewInternalError creates an internal error.
func NewInternalError(code, message string, cause error) *ChiselError {
	return &ChiselError{Kind: KindInternal, Code: code, Message: message, Cause: cause}
}

// KindOf returns the kind of err when it is a ChiselError, KindInternal
// otherwise.
func KindOf(err error) Kind {
	var ce *ChiselError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindInternal
}

// IsKind reports whether err is a ChiselError of the given kind.
func IsKind(err error, kind Kind) bool {
	var ce *ChiselError
	return errors.As(err, &ce) && ce.Kind == kind
}
