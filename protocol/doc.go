// Package protocol describes the I2C EEPROM device protocols supported by this library.
//
// It is pure data and arithmetic: no I/O happens here. The package provides the
// static device table, the address codec used by every address-bearing operation,
// and builders for the raw transaction frames written to the bus.
//
// # Transaction Frames
//
// Every transaction written to a device has the same shape:
//
//	Write:    [OPCODE?][ADDR_H][ADDR_L][DATA...]
//	Pointer:  [OPCODE?][ADDR_H][ADDR_L]
//
// Where:
//   - OPCODE is a one-byte command, present only for devices that use one
//   - ADDR is the big-endian memory address, as wide as the device requires
//   - DATA is the payload of a write transaction
//
// Some devices additionally require a write-enable sequence as a separate
// transaction before every write-class transaction.
//
// # Devices
//
// Look up a device by name:
//
//	dev, err := protocol.Lookup("ZL30267")
//	if err != nil {
//	    return err
//	}
//	for _, name := range dev.OperationNames() {
//	    fmt.Println(name)
//	}
//
// # Addresses
//
// Addresses are fixed-width big-endian values:
//
//	addr, err := dev.ParseAddress("0x0100")
//	next, err := addr.Advance(32)
//	frame := protocol.BuildWriteFrame(op, addr, data)
//
// Arithmetic never truncates. A result that does not fit in the address width
// is reported as a RangeError.
//
// # Error Handling
//
// Malformed input yields a ParseError, out of bounds values a RangeError and
// unsupported device names an UnknownDeviceError:
//
//	var unknown *protocol.UnknownDeviceError
//	if errors.As(err, &unknown) {
//	    fmt.Println("supported:", protocol.Devices())
//	}
package protocol
