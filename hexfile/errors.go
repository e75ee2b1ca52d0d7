package hexfile

import (
	"errors"
	"fmt"
)

// FormatError indicates that an image file or one of its lines is malformed.
type FormatError struct {
	// Path is the file being parsed, empty for readers
	Path string

	// Line is the 1-based line number, zero when the error is not tied to a line
	Line int

	// Text is the offending line content
	Text string

	// Reason describes the problem
	Reason string
}

func (e *FormatError) Error() string {
	prefix := "image"
	if e.Path != "" {
		prefix = e.Path
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s: line %d: %s: %q", prefix, e.Line, e.Reason, e.Text)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Reason)
}

// AccessError indicates that an image source could not be opened or read.
type AccessError struct {
	Path string
	Err  error
}

func (e *AccessError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("read image: %v", e.Err)
	}
	return fmt.Sprintf("read image %s: %v", e.Path, e.Err)
}

func (e *AccessError) Unwrap() error {
	return e.Err
}

// IsFormatError returns true if err is or wraps a FormatError.
func IsFormatError(err error) bool {
	var target *FormatError
	return errors.As(err, &target)
}

// IsAccessError returns true if err is or wraps an AccessError.
func IsAccessError(err error) bool {
	var target *AccessError
	return errors.As(err, &target)
}
