package transport

import (
	"errors"
	"fmt"

	"golang.org/x/exp/io/i2c"
	"golang.org/x/sys/unix"
)

// DefaultBus is the i2c-dev bus used when none is configured.
const DefaultBus = "/dev/i2c-1"

// I2CDev is a port to one slave on a Linux i2c-dev bus.
// The i2c-dev kernel module must be loaded.
type I2CDev struct {
	dev  *i2c.Device
	bus  string
	addr int
}

// OpenI2CDev opens the slave at the 7-bit address addr on bus (e.g. "/dev/i2c-1").
//
// Example:
//
//	port, err := transport.OpenI2CDev("/dev/i2c-1", 0x50)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer port.Close()
func OpenI2CDev(bus string, addr int) (*I2CDev, error) {
	if bus == "" {
		bus = DefaultBus
	}
	if addr < 0 || addr > 0x7F {
		return nil, fmt.Errorf("slave address 0x%X is out of range: must be a 7-bit address", addr)
	}

	dev, err := i2c.Open(&i2c.Devfs{Dev: bus}, addr)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", bus, err)
	}

	return &I2CDev{dev: dev, bus: bus, addr: addr}, nil
}

// Write sends one write transaction.
func (d *I2CDev) Write(frame []byte) error {
	if d.dev == nil {
		return ErrClosed
	}
	return classify(d.dev.Write(frame))
}

// Read performs one read transaction of n bytes.
func (d *I2CDev) Read(n int) ([]byte, error) {
	if d.dev == nil {
		return nil, ErrClosed
	}
	buf := make([]byte, n)
	if n == 0 {
		return buf, nil
	}
	if err := classify(d.dev.Read(buf)); err != nil {
		return nil, err
	}
	return buf, nil
}

// Poll checks that the slave acknowledges its address by reading one byte.
func (d *I2CDev) Poll() error {
	_, err := d.Read(1)
	return err
}

// Close releases the bus file.
func (d *I2CDev) Close() error {
	if d.dev == nil {
		return nil
	}
	err := d.dev.Close()
	d.dev = nil
	return err
}

// String identifies the port, e.g. "/dev/i2c-1@0x50".
func (d *I2CDev) String() string {
	return fmt.Sprintf("%s@0x%02X", d.bus, d.addr)
}

// classify maps kernel errors for an unacknowledged transfer to ErrNack.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, unix.ENXIO) || errors.Is(err, unix.EREMOTEIO) {
		return fmt.Errorf("%w: %w", ErrNack, err)
	}
	return err
}
