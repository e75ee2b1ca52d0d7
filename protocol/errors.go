package protocol

import (
	"errors"
	"fmt"
	"strings"
)

// ParseError represents malformed address or value text.
type ParseError struct {
	// Input is the offending text
	Input string

	// Reason describes what is wrong with it
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q: %s", e.Input, e.Reason)
}

// RangeError represents a value outside the bounds of a device or address width.
type RangeError struct {
	// Value is the offending value
	Value int64

	// Limit is the exclusive upper bound that was exceeded
	Limit int64
}

func (e *RangeError) Error() string {
	if e.Value < 0 {
		return fmt.Sprintf("value %d is out of range: must not be negative", e.Value)
	}
	return fmt.Sprintf("value 0x%X is out of range: must be below 0x%X", e.Value, e.Limit)
}

// UnknownDeviceError represents a device name missing from the device table.
type UnknownDeviceError struct {
	Name string
}

func (e *UnknownDeviceError) Error() string {
	return fmt.Sprintf("unknown device %q (supported: %s)", e.Name, strings.Join(Devices(), ", "))
}

// IsParseError returns true if err is or wraps a ParseError.
func IsParseError(err error) bool {
	var target *ParseError
	return errors.As(err, &target)
}

// IsRangeError returns true if err is or wraps a RangeError.
func IsRangeError(err error) bool {
	var target *RangeError
	return errors.As(err, &target)
}

// IsUnknownDeviceError returns true if err is or wraps an UnknownDeviceError.
func IsUnknownDeviceError(err error) bool {
	var target *UnknownDeviceError
	return errors.As(err, &target)
}
