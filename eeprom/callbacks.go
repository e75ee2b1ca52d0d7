package eeprom

import "time"

// Progress contains information about the flashing progress.
// Passed to ProgressCallback during Flash.
type Progress struct {
	// Phase describes the current operation phase:
	//   "writing"   - Writing image pages
	//   "verifying" - Reading the image back
	//   "complete"  - Flash finished, see VerifyResult for the outcome
	Phase string

	// CurrentPage is the number of pages written so far
	CurrentPage int

	// TotalPages is the total number of pages to write
	TotalPages int

	// Percentage is the completion percentage (0.0 to 100.0)
	Percentage float64

	// BytesWritten is the total number of bytes written so far
	BytesWritten int

	// ElapsedTime is the time elapsed since flashing started
	ElapsedTime time.Duration
}

// ProgressCallback is called during flashing to report progress.
// Implementations should return quickly; they run between bus transactions.
type ProgressCallback func(Progress)

// Logger is an optional logging interface that can be provided to the programmer.
// This allows integration with any logging framework.
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}

// nopLogger discards everything.
type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
