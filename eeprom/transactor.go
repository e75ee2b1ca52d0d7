package eeprom

import (
	"github.com/moffa90/go-i2ceeprom/protocol"
)

// Port is the bus capability the transactor needs: one slave, one transaction per call.
// transport.I2CDev and transport.Sim implement it.
type Port interface {
	// Write sends one write transaction
	Write(frame []byte) error

	// Read performs one read transaction of n bytes
	Read(n int) ([]byte, error)

	// Poll checks that the slave acknowledges its address
	Poll() error
}

// Result is the outcome of a transaction: the data transferred and the
// address following it, so callers can chain operations on a cursor.
type Result struct {
	Data []byte
	Next protocol.Address
}

// Framing configures the optional parts of a transaction.
// The zero value sends neither an opcode nor a write-enable sequence.
type Framing struct {
	// Command is prefixed to the transaction when HasCommand is set
	Command    byte
	HasCommand bool

	// WriteEnable is sent as a separate transaction before page writes, when non-empty
	WriteEnable []byte
}

// FrameOption is a functional option for a single transaction.
type FrameOption func(*Framing)

// WithCommand prefixes the transaction with the opcode cmd.
func WithCommand(cmd byte) FrameOption {
	return func(f *Framing) {
		f.Command = cmd
		f.HasCommand = true
	}
}

// WithWriteEnable sends seq as its own transaction before a page write.
func WithWriteEnable(seq []byte) FrameOption {
	return func(f *Framing) {
		f.WriteEnable = seq
	}
}

// FramingFor returns the options the device table prescribes for the named operation.
// Write-enable is included for page writes on devices that need it.
//
// Example:
//
//	res, err := eeprom.WritePage(port, dev, addr, data, eeprom.FramingFor(dev, protocol.OpPageWrite)...)
func FramingFor(dev protocol.Device, name string) []FrameOption {
	var opts []FrameOption

	if op, ok := dev.Operation(name); ok && op.HasOpcode {
		opts = append(opts, WithCommand(op.Opcode))
	}

	if name == protocol.OpPageWrite && dev.NeedsWriteEnable() {
		opts = append(opts, WithWriteEnable(dev.WriteEnable))
	}

	return opts
}

func buildFraming(name string, opts []FrameOption) (protocol.Operation, Framing) {
	var f Framing
	for _, opt := range opts {
		opt(&f)
	}
	return protocol.Operation{Name: name, Opcode: f.Command, HasOpcode: f.HasCommand}, f
}

// WriteByte writes a single byte at addr.
//
// Frame: [CMD?][ADDR][DATA]. No write-enable is sent; the single-byte path is
// only valid on devices exposing "Single Write".
func WriteByte(port Port, dev protocol.Device, addr protocol.Address, b byte, opts ...FrameOption) (Result, error) {
	if !dev.Supports(protocol.OpSingleWrite) {
		return Result{}, &UnsupportedOperationError{Device: dev.Name, Operation: protocol.OpSingleWrite}
	}
	addr, err := deviceAddress(dev, addr)
	if err != nil {
		return Result{}, err
	}

	next, err := addr.Advance(1)
	if err != nil {
		return Result{}, err
	}

	op, _ := buildFraming(protocol.OpSingleWrite, opts)
	if err := port.Write(protocol.BuildWriteFrame(op, addr, []byte{b})); err != nil {
		return Result{}, &TransportError{Op: "single write", Address: addr, Err: err}
	}

	return Result{Data: []byte{b}, Next: next}, nil
}

// WritePage writes data starting at addr in one transaction, preceded by the
// write-enable sequence when one is configured.
//
// Frame: [CMD?][ADDR][DATA...]. Data longer than the device page is sent as is;
// the device will roll over within the page.
func WritePage(port Port, dev protocol.Device, addr protocol.Address, data []byte, opts ...FrameOption) (Result, error) {
	addr, err := deviceAddress(dev, addr)
	if err != nil {
		return Result{}, err
	}

	next, err := addr.Advance(len(data))
	if err != nil {
		return Result{}, err
	}

	op, f := buildFraming(protocol.OpPageWrite, opts)

	if len(f.WriteEnable) > 0 {
		if err := port.Write(f.WriteEnable); err != nil {
			return Result{}, &TransportError{Op: "write enable", Address: addr, Err: err}
		}
	}

	if err := port.Write(protocol.BuildWriteFrame(op, addr, data)); err != nil {
		return Result{}, &TransportError{Op: "page write", Address: addr, Err: err}
	}

	return Result{Data: data, Next: next}, nil
}

// Read sets the device address pointer to addr and reads n bytes.
//
// Frame: [CMD?][ADDR], then a read transaction of n bytes.
func Read(port Port, dev protocol.Device, addr protocol.Address, n int, opts ...FrameOption) (Result, error) {
	addr, err := deviceAddress(dev, addr)
	if err != nil {
		return Result{}, err
	}
	if n < 0 {
		return Result{}, &protocol.RangeError{Value: int64(n), Limit: int64(dev.Size()) + 1}
	}

	next, err := addr.Advance(n)
	if err != nil {
		return Result{}, err
	}

	op, _ := buildFraming(protocol.OpRead, opts)
	if err := port.Write(protocol.BuildAddressFrame(op, addr)); err != nil {
		return Result{}, &TransportError{Op: "read address", Address: addr, Err: err}
	}

	data, err := port.Read(n)
	if err != nil {
		return Result{}, &TransportError{Op: "read", Address: addr, Err: err}
	}

	return Result{Data: data, Next: next}, nil
}

// Configure issues the device's session setup writes, if any.
func Configure(port Port, dev protocol.Device) error {
	for _, setup := range dev.Setup {
		addr, err := dev.Address(setup.Address)
		if err != nil {
			return err
		}

		op := protocol.Operation{Name: protocol.OpSingleWrite, Opcode: setup.Opcode, HasOpcode: setup.HasOpcode}
		if err := port.Write(protocol.BuildWriteFrame(op, addr, []byte{setup.Value})); err != nil {
			return &TransportError{Op: "setup write", Address: addr, Err: err}
		}
	}
	return nil
}

// deviceAddress re-encodes addr in the device's address width.
// Values at or above the device size are rejected with a RangeError.
func deviceAddress(dev protocol.Device, addr protocol.Address) (protocol.Address, error) {
	return dev.Address(addr.Value())
}
