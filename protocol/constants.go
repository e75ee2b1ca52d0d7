package protocol

// Device names in the static table.
const (
	// Device24LC32 is a plain 32 Kbit EEPROM without opcodes or write-enable
	Device24LC32 = "24LC32"

	// DeviceZL30267 is the ZL30267 configuration EEPROM interface
	DeviceZL30267 = "ZL30267"
)

// Operation names exposed by devices for interactive selection.
const (
	// OpPageWrite writes up to one page of contiguous bytes
	OpPageWrite = "Page Write"

	// OpSingleWrite writes a single byte
	OpSingleWrite = "Single Write"

	// OpRead reads sequential bytes
	OpRead = "Read"
)

// ZL30267 opcodes.
const (
	// OpcodeWriteEnable unlocks programming for the next write-class transaction
	OpcodeWriteEnable = 0x06

	// OpcodeWrite selects a write transaction
	OpcodeWrite = 0x02

	// OpcodeRead selects a read transaction
	OpcodeRead = 0x03

	// SetupControlValue is written to address 0x0000 when a ZL30267 session starts
	SetupControlValue = 0x80
)

// Geometry shared by the supported devices.
const (
	// DefaultAddressBits is the address width of both supported devices
	DefaultAddressBits = 12

	// DefaultPageSize is the page-write size of both supported devices in bytes
	DefaultPageSize = 32

	// MaxAddressWidth is the widest supported address in bytes
	MaxAddressWidth = 4

	// BitsPerByte is the number of bits per byte
	BitsPerByte = 8
)
