package eeprom

import (
	"errors"
	"fmt"

	"github.com/moffa90/go-i2ceeprom/protocol"
)

// TransportError indicates that the bus port failed a transaction.
// The device address pointer is unknown after such a failure.
type TransportError struct {
	// Op is the transaction that failed, e.g. "page write"
	Op string

	// Address is the memory address the transaction targeted
	Address protocol.Address

	// Err is the error reported by the port
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s at %s: %v", e.Op, e.Address, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// UnsupportedOperationError indicates an operation the device does not expose.
type UnsupportedOperationError struct {
	Device    string
	Operation string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("device %s does not support operation %q", e.Device, e.Operation)
}

// IsTransportError returns true if err is or wraps a TransportError.
func IsTransportError(err error) bool {
	var target *TransportError
	return errors.As(err, &target)
}

// IsUnsupportedOperationError returns true if err is or wraps an UnsupportedOperationError.
func IsUnsupportedOperationError(err error) bool {
	var target *UnsupportedOperationError
	return errors.As(err, &target)
}
