package errors

import (
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryTemplate Category = "template"
	CategoryRender   Category = "render"
	CategoryRoute    Category = "route"
	CategoryStore    Category = "store"
	CategoryConfig   Category = "config"
	CategoryBuild    Category = "build"
	CategoryDeploy   Category = "deploy"
	CategoryCLI      Category = "cli"
)

// Location represents a position inside a template or config source.
type Location struct {
	File   string
	Line   int
	Column int
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.File == "" {
		if l.Column > 0 {
			return fmt.Sprintf("line %d, column %d", l.Line, l.Column)
		}
		return fmt.Sprintf("line %d", l.Line)
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// GlintError is a structured error with a stable code, a category, and an
// optional fix suggestion.
type GlintError struct {
	// Code is a unique error identifier (e.g., "E101").
	Code string

	// Category is the error type (template, route, config, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Location is where the error occurred, when it came from a source file.
	Location *Location

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *GlintError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Location != nil {
		msg = fmt.Sprintf("%s (%s)", msg, e.Location.String())
	}
	if e.Wrapped != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Wrapped)
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *GlintError) Unwrap() error {
	return e.Wrapped
}

// WithLocation adds a source location to the error.
func (e *GlintError) WithLocation(file string, line, column int) *GlintError {
	e.Location = &Location{File: file, Line: line, Column: column}
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *GlintError) WithDetail(d string) *GlintError {
	e.Detail = d
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *GlintError) WithSuggestion(s string) *GlintError {
	e.Suggestion = s
	return e
}

// Wrap wraps another error.
func (e *GlintError) Wrap(err error) *GlintError {
	e.Wrapped = err
	return e
}

// New creates a GlintError from a registered error code.
func New(code string) *GlintError {
	template, ok := registry[code]
	if !ok {
		return &GlintError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &GlintError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Newf creates a new GlintError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *GlintError {
	return &GlintError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a GlintError with the given code.
func FromError(err error, code string) *GlintError {
	if err == nil {
		return nil
	}
	if ge, ok := err.(*GlintError); ok {
		return ge
	}
	return New(code).Wrap(err)
}

// Is reports whether err carries the given error code.
func Is(err error, code string) bool {
	ge, ok := err.(*GlintError)
	return ok && ge.Code == code
}
