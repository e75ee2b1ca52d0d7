package eeprom

import (
	"github.com/moffa90/go-i2ceeprom/protocol"
)

// Request holds the inputs of one manual operation.
// Only the fields used by the operation are read.
type Request struct {
	// Operation is the operation name, e.g. protocol.OpPageWrite
	Operation string

	// Address is the start address
	Address protocol.Address

	// Data is the payload of a page write
	Data []byte

	// Value is the byte written by a single write
	Value byte

	// Count is the number of bytes to read
	Count int
}

// Session runs manual operations against one device and tracks a cursor.
//
// The cursor follows the device's own address pointer and wraps at the end of
// the array. It only moves when an operation succeeds.
type Session struct {
	port   Port
	device protocol.Device
	cursor protocol.Address
}

// OpenSession issues the device's setup writes and returns a session with the
// cursor at address zero.
func OpenSession(port Port, dev protocol.Device) (*Session, error) {
	if err := Configure(port, dev); err != nil {
		return nil, err
	}

	cursor, err := dev.Address(0)
	if err != nil {
		return nil, err
	}

	return &Session{port: port, device: dev, cursor: cursor}, nil
}

// Device returns the device the session talks to.
func (s *Session) Device() protocol.Device {
	return s.device
}

// Cursor returns the address following the last successful operation.
func (s *Session) Cursor() protocol.Address {
	return s.cursor
}

// Execute runs one operation with the framing from the device table.
func (s *Session) Execute(req Request) (Result, error) {
	if !s.device.Supports(req.Operation) {
		return Result{}, &UnsupportedOperationError{Device: s.device.Name, Operation: req.Operation}
	}

	opts := FramingFor(s.device, req.Operation)

	var (
		res Result
		err error
	)
	switch req.Operation {
	case protocol.OpPageWrite:
		res, err = WritePage(s.port, s.device, req.Address, req.Data, opts...)
	case protocol.OpSingleWrite:
		res, err = WriteByte(s.port, s.device, req.Address, req.Value, opts...)
	case protocol.OpRead:
		res, err = Read(s.port, s.device, req.Address, req.Count, opts...)
	default:
		return Result{}, &UnsupportedOperationError{Device: s.device.Name, Operation: req.Operation}
	}
	if err != nil {
		return Result{}, err
	}

	s.cursor = res.Next.Wrap(s.device.AddressBits)
	return res, nil
}
