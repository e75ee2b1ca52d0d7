// Package eeprom drives byte-level transactions against I2C EEPROMs.
//
// # Overview
//
// The package has three layers:
//   - Primitive transactions: WriteByte, WritePage and Read
//   - Programmer: flashes a whole image page by page and verifies it by reading it back
//   - Session: runs manual operations and tracks the address cursor between them
//
// All of them talk to the device through a Port, one transaction per call.
//
// # Basic Usage
//
//	dev, err := protocol.Lookup("ZL30267")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	port, err := transport.OpenI2CDev("/dev/i2c-1", 0x50)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer port.Close()
//
//	img, err := hexfile.Parse("config.txt")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	prog := eeprom.New(port, dev)
//	result, err := prog.Flash(context.Background(), img)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.OK() {
//	    log.Printf("verification failed at offset %d", result.FirstMismatch)
//	}
//
// # Primitive Transactions
//
// Framing is explicit per call. FramingFor returns what the device table prescribes:
//
//	addr, _ := dev.ParseAddress("0x0100")
//	res, err := eeprom.Read(port, dev, addr, 16, eeprom.FramingFor(dev, protocol.OpRead)...)
//	fmt.Printf("% x, next %s\n", res.Data, res.Next)
//
// # Error Handling
//
// The package provides structured error types:
//   - TransportError: the port failed a transaction (unwraps to the port error)
//   - UnsupportedOperationError: the device does not expose the operation
//   - protocol.RangeError: an address outside the device array
//
// Failed transactions are never retried.
package eeprom
