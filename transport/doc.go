// Package transport provides bus ports for the eeprom package.
//
// A port moves raw transaction frames to and from one I2C slave. Two ports are
// provided:
//   - I2CDev talks to a real device through the Linux i2c-dev interface
//   - Sim is an in-memory EEPROM that honors a protocol.Device, for tests and dry runs
//
// Both report a missing acknowledgment as ErrNack, so callers can test for it
// with errors.Is regardless of the port in use:
//
//	if errors.Is(err, transport.ErrNack) {
//	    // device did not respond
//	}
package transport
