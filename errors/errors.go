// Package errors defines rich compile-time error types with source locations.
package errors

import "fmt"

// SourceLocation represents a position in source code.
type SourceLocation struct {
	Filename string
	Line     int    // 1-based line number
	Column   int    // 1-based column number
	Source   string // The line of source code
}

// String returns a formatted string representation of the source location.
func (s SourceLocation) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// IsZero returns true if the location has not been set.
func (s SourceLocation) IsZero() bool {
	return s.Line == 0 && s.Column == 0
}

// FriendlyError is an interface for errors that have a human friendly message
// in addition to a the lower level default error message.
type FriendlyError interface {
	Error() string
	FriendlyErrorMessage() string
}

// FormattableError is an interface for errors that can be formatted with
// the enhanced error formatter (with colors, source context, etc).
type FormattableError interface {
	Error() string
	ToFormatted() *FormattedError
}
