package protocol

import (
	"sort"
	"strings"
)

// Operation is a named device operation bound to an optional leading opcode.
type Operation struct {
	// Name is the operation name shown for interactive selection
	Name string

	// Opcode is the command byte prefixed to the transaction, valid when HasOpcode is set
	Opcode byte

	// HasOpcode reports whether the transaction carries an opcode
	HasOpcode bool
}

// SetupWrite is a single-byte write issued once when a session is opened.
type SetupWrite struct {
	// Address is the memory address written
	Address uint32

	// Value is the byte written
	Value byte

	// Opcode is the command byte prefixed to the write, valid when HasOpcode is set
	Opcode byte

	// HasOpcode reports whether the write carries an opcode
	HasOpcode bool
}

// Device describes the wire protocol of one supported EEPROM.
// Values returned by Lookup are copies; changing them does not affect the table.
type Device struct {
	// Name is the device identifier, e.g. "24LC32"
	Name string

	// AddressBits is the number of significant address bits
	AddressBits int

	// PageSize is the number of bytes accepted by one page-write transaction
	PageSize int

	// WriteEnable is sent as its own transaction before every write-class
	// transaction. Nil when the device needs none.
	WriteEnable []byte

	// Operations lists the operations exposed by the device, in menu order
	Operations []Operation

	// Setup lists the writes issued when a session with the device starts
	Setup []SetupWrite
}

var devices = map[string]Device{
	Device24LC32: {
		Name:        Device24LC32,
		AddressBits: DefaultAddressBits,
		PageSize:    DefaultPageSize,
		Operations: []Operation{
			{Name: OpPageWrite},
			{Name: OpSingleWrite},
			{Name: OpRead},
		},
	},
	DeviceZL30267: {
		Name:        DeviceZL30267,
		AddressBits: DefaultAddressBits,
		PageSize:    DefaultPageSize,
		WriteEnable: []byte{OpcodeWriteEnable},
		Operations: []Operation{
			{Name: OpPageWrite, Opcode: OpcodeWrite, HasOpcode: true},
			{Name: OpRead, Opcode: OpcodeRead, HasOpcode: true},
		},
		Setup: []SetupWrite{
			{Address: 0x0000, Value: SetupControlValue, Opcode: OpcodeWrite, HasOpcode: true},
		},
	},
}

// Lookup returns the protocol descriptor for the named device.
// Names are matched case-insensitively.
//
// Example:
//
//	dev, err := protocol.Lookup("24LC32")
func Lookup(name string) (Device, error) {
	for key, dev := range devices {
		if strings.EqualFold(key, strings.TrimSpace(name)) {
			return dev.clone(), nil
		}
	}
	return Device{}, &UnknownDeviceError{Name: name}
}

// Devices returns the names of all supported devices, sorted.
func Devices() []string {
	names := make([]string, 0, len(devices))
	for name := range devices {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OperationNames returns the operation names in menu order.
func (d Device) OperationNames() []string {
	names := make([]string, len(d.Operations))
	for i, op := range d.Operations {
		names[i] = op.Name
	}
	return names
}

// Operation returns the named operation.
func (d Device) Operation(name string) (Operation, bool) {
	for _, op := range d.Operations {
		if op.Name == name {
			return op, true
		}
	}
	return Operation{}, false
}

// Supports reports whether the device exposes the named operation.
func (d Device) Supports(name string) bool {
	_, ok := d.Operation(name)
	return ok
}

// NeedsWriteEnable reports whether write-class transactions must be unlocked first.
func (d Device) NeedsWriteEnable() bool {
	return len(d.WriteEnable) > 0
}

// MaxAddress returns the exclusive upper bound of the memory array.
func (d Device) MaxAddress() uint32 {
	return uint32(1) << uint(d.AddressBits)
}

// Size returns the capacity of the memory array in bytes.
func (d Device) Size() int {
	return int(d.MaxAddress())
}

// ParseAddress parses hex text into an address valid for this device.
func (d Device) ParseAddress(text string) (Address, error) {
	return ParseAddress(text, d.MaxAddress())
}

// Address returns value as an address valid for this device.
func (d Device) Address(value uint32) (Address, error) {
	return AddressFor(value, d.AddressBits)
}

func (d Device) clone() Device {
	c := d
	if d.WriteEnable != nil {
		c.WriteEnable = append([]byte(nil), d.WriteEnable...)
	}
	c.Operations = append([]Operation(nil), d.Operations...)
	if d.Setup != nil {
		c.Setup = append([]SetupWrite(nil), d.Setup...)
	}
	return c
}
