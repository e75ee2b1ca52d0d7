package protocol

import (
	"fmt"
	"strconv"
	"strings"
)

// Address is a fixed-width, big-endian memory address.
// The zero value is a one-byte address 0x00.
type Address struct {
	value uint32
	width int
}

// NewAddress returns an address of the given byte width.
// Width must be between 1 and MaxAddressWidth and value must fit in it.
func NewAddress(value uint32, width int) (Address, error) {
	if width < 1 || width > MaxAddressWidth {
		return Address{}, fmt.Errorf("address width %d is invalid: must be 1-%d bytes", width, MaxAddressWidth)
	}
	if limit := widthLimit(width); int64(value) >= limit {
		return Address{}, &RangeError{Value: int64(value), Limit: limit}
	}
	return Address{value: value, width: width}, nil
}

// AddressFor returns an address wide enough for a device with the given address bits.
// Values that do not fit in bits are rejected with a RangeError.
func AddressFor(value uint32, bits int) (Address, error) {
	if bits < 1 || bits > MaxAddressWidth*BitsPerByte-1 {
		return Address{}, fmt.Errorf("address bits %d is invalid", bits)
	}
	limit := uint32(1) << uint(bits)
	if value >= limit {
		return Address{}, &RangeError{Value: int64(value), Limit: int64(limit)}
	}
	return Address{value: value, width: minWidth(limit - 1)}, nil
}

// ParseAddress parses hex text, optionally prefixed with "0x", into an address.
//
// When maxExclusive is non-zero the decoded value must be below it and the
// address is as wide as needed to hold maxExclusive-1. When maxExclusive is
// zero the width follows the number of digits in the text, two per byte.
//
// Example:
//
//	addr, err := protocol.ParseAddress("0x0FFF", 1<<12) // 2-byte address 0x0FFF
func ParseAddress(text string, maxExclusive uint32) (Address, error) {
	digits := strings.TrimSpace(text)
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		digits = digits[2:]
	}

	if digits == "" {
		return Address{}, &ParseError{Input: text, Reason: "no hex digits"}
	}
	if len(digits) > MaxAddressWidth*2 {
		return Address{}, &ParseError{Input: text, Reason: fmt.Sprintf("more than %d hex digits", MaxAddressWidth*2)}
	}

	value, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return Address{}, &ParseError{Input: text, Reason: "not a hex value"}
	}

	if maxExclusive == 0 {
		return Address{value: uint32(value), width: (len(digits) + 1) / 2}, nil
	}

	if value >= uint64(maxExclusive) {
		return Address{}, &RangeError{Value: int64(value), Limit: int64(maxExclusive)}
	}

	return Address{value: uint32(value), width: minWidth(maxExclusive - 1)}, nil
}

// Value returns the numeric value of the address.
func (a Address) Value() uint32 {
	return a.value
}

// Width returns the encoded width of the address in bytes.
func (a Address) Width() int {
	if a.width == 0 {
		return 1
	}
	return a.width
}

// Bytes returns the big-endian encoding of the address, exactly Width bytes long.
func (a Address) Bytes() []byte {
	w := a.Width()
	b := make([]byte, w)
	v := a.value
	for i := w - 1; i >= 0; i-- {
		b[i] = byte(v)
		v >>= BitsPerByte
	}
	return b
}

// Advance returns the address n bytes further on, in the same width.
// Negative n moves backwards. Results outside the width's range are
// reported as a RangeError rather than truncated.
func (a Address) Advance(n int) (Address, error) {
	limit := widthLimit(a.Width())
	next := int64(a.value) + int64(n)
	if next < 0 || next >= limit {
		return a, &RangeError{Value: next, Limit: limit}
	}
	return Address{value: uint32(next), width: a.Width()}, nil
}

// Wrap reduces the address modulo 2^bits, keeping its width.
// It models a device address pointer that rolls over at the end of the array.
func (a Address) Wrap(bits int) Address {
	if bits <= 0 || bits >= a.Width()*BitsPerByte {
		return Address{value: a.value, width: a.Width()}
	}
	return Address{value: a.value & (uint32(1)<<uint(bits) - 1), width: a.Width()}
}

// String formats the address as zero-padded hex, e.g. 0x0100.
func (a Address) String() string {
	return fmt.Sprintf("0x%0*X", a.Width()*2, a.value)
}

// widthLimit returns 256^width.
func widthLimit(width int) int64 {
	return int64(1) << uint(width*BitsPerByte)
}

// minWidth returns the minimal number of bytes that can hold v (at least one).
func minWidth(v uint32) int {
	w := 1
	for v > 0xFF {
		v >>= BitsPerByte
		w++
	}
	return w
}
