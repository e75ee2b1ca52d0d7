package eeprom

import (
	"errors"
	"testing"

	"github.com/moffa90/go-i2ceeprom/protocol"
	"github.com/moffa90/go-i2ceeprom/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingPort records every frame and replays canned read data.
type recordingPort struct {
	writes   [][]byte
	reads    []int
	readData []byte
	writeErr error
	readErr  error
}

func (r *recordingPort) Write(frame []byte) error {
	if r.writeErr != nil {
		return r.writeErr
	}
	r.writes = append(r.writes, append([]byte(nil), frame...))
	return nil
}

func (r *recordingPort) Read(n int) ([]byte, error) {
	r.reads = append(r.reads, n)
	if r.readErr != nil {
		return nil, r.readErr
	}
	out := make([]byte, n)
	copy(out, r.readData)
	return out, nil
}

func (r *recordingPort) Poll() error {
	return nil
}

func mustDevice(t *testing.T, name string) protocol.Device {
	t.Helper()
	dev, err := protocol.Lookup(name)
	require.NoError(t, err)
	return dev
}

func mustAddress(t *testing.T, dev protocol.Device, v uint32) protocol.Address {
	t.Helper()
	addr, err := dev.Address(v)
	require.NoError(t, err)
	return addr
}

func TestWritePageFraming(t *testing.T) {
	tests := []struct {
		name   string
		device string
		want   [][]byte
	}{
		{
			name:   "plain eeprom",
			device: protocol.Device24LC32,
			want:   [][]byte{{0x01, 0x20, 0xAA, 0xBB}},
		},
		{
			name:   "write enable and opcode",
			device: protocol.DeviceZL30267,
			want: [][]byte{
				{protocol.OpcodeWriteEnable},
				{protocol.OpcodeWrite, 0x01, 0x20, 0xAA, 0xBB},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := mustDevice(t, tt.device)
			port := &recordingPort{}

			res, err := WritePage(port, dev, mustAddress(t, dev, 0x120), []byte{0xAA, 0xBB}, FramingFor(dev, protocol.OpPageWrite)...)
			require.NoError(t, err)

			assert.Equal(t, tt.want, port.writes)
			assert.Equal(t, []byte{0xAA, 0xBB}, res.Data)
			assert.Equal(t, uint32(0x122), res.Next.Value())
			assert.Equal(t, 2, res.Next.Width())
		})
	}
}

func TestWritePageExplicitOptions(t *testing.T) {
	dev := mustDevice(t, protocol.Device24LC32)
	port := &recordingPort{}

	_, err := WritePage(port, dev, mustAddress(t, dev, 0), []byte{0x01}, WithCommand(0x42), WithWriteEnable([]byte{0x99, 0x98}))
	require.NoError(t, err)

	assert.Equal(t, [][]byte{{0x99, 0x98}, {0x42, 0x00, 0x00, 0x01}}, port.writes)
}

func TestWritePageLongerThanPage(t *testing.T) {
	dev := mustDevice(t, protocol.Device24LC32)
	port := &recordingPort{}

	data := make([]byte, dev.PageSize+8)
	res, err := WritePage(port, dev, mustAddress(t, dev, 0), data)
	require.NoError(t, err)
	require.Len(t, port.writes, 1)
	assert.Len(t, port.writes[0], 2+len(data))
	assert.Equal(t, uint32(len(data)), res.Next.Value())
}

func TestWriteByte(t *testing.T) {
	dev := mustDevice(t, protocol.Device24LC32)
	port := &recordingPort{}

	res, err := WriteByte(port, dev, mustAddress(t, dev, 0x0FFF), 0x5A)
	require.NoError(t, err)
	assert.Equal(t, [][]byte{{0x0F, 0xFF, 0x5A}}, port.writes)
	assert.Equal(t, []byte{0x5A}, res.Data)
	assert.Equal(t, uint32(0x1000), res.Next.Value())

	zl := mustDevice(t, protocol.DeviceZL30267)
	_, err = WriteByte(port, zl, mustAddress(t, zl, 0), 0x01)
	assert.True(t, IsUnsupportedOperationError(err))
	assert.Len(t, port.writes, 1, "unsupported operation must not touch the bus")
}

func TestRead(t *testing.T) {
	dev := mustDevice(t, protocol.DeviceZL30267)
	port := &recordingPort{readData: []byte{1, 2, 3, 4}}

	res, err := Read(port, dev, mustAddress(t, dev, 0x10), 4, FramingFor(dev, protocol.OpRead)...)
	require.NoError(t, err)

	assert.Equal(t, [][]byte{{protocol.OpcodeRead, 0x00, 0x10}}, port.writes)
	assert.Equal(t, []int{4}, port.reads)
	assert.Equal(t, []byte{1, 2, 3, 4}, res.Data)
	assert.Equal(t, uint32(0x14), res.Next.Value())
}

func TestAddressOutsideDevice(t *testing.T) {
	dev := mustDevice(t, protocol.Device24LC32)
	port := &recordingPort{}

	addr, err := protocol.NewAddress(0x1000, 2)
	require.NoError(t, err)

	_, err = WritePage(port, dev, addr, []byte{1})
	assert.True(t, protocol.IsRangeError(err))
	_, err = Read(port, dev, addr, 1)
	assert.True(t, protocol.IsRangeError(err))
	_, err = Read(port, dev, mustAddress(t, dev, 0), -1)
	assert.True(t, protocol.IsRangeError(err))

	assert.Empty(t, port.writes)
}

func TestAddressReencodedInDeviceWidth(t *testing.T) {
	dev := mustDevice(t, protocol.Device24LC32)

	short, err := protocol.ParseAddress("10", 0)
	require.NoError(t, err)
	require.Equal(t, 1, short.Width())

	tests := []struct {
		name string
		addr protocol.Address
		want uint32
	}{
		{name: "one byte address", addr: short, want: 0x10},
		{name: "zero value", addr: protocol.Address{}, want: 0x00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim := transport.NewSim(dev)

			res, err := WritePage(sim, dev, tt.addr, []byte{0xAA, 0xBB, 0xCC})
			require.NoError(t, err)
			assert.Equal(t, [][]byte{{0x00, byte(tt.want), 0xAA, 0xBB, 0xCC}}, sim.Writes())
			assert.Equal(t, 2, res.Next.Width())
			assert.Equal(t, tt.want+3, res.Next.Value())

			mem := sim.Memory()
			assert.Equal(t, []byte{0xAA, 0xBB, 0xCC}, mem[tt.want:tt.want+3])

			res, err = Read(sim, dev, tt.addr, 3)
			require.NoError(t, err)
			assert.Equal(t, []byte{0xAA, 0xBB, 0xCC}, res.Data)

			_, err = WriteByte(sim, dev, tt.addr, 0x11)
			require.NoError(t, err)
			writes := sim.Writes()
			assert.Equal(t, []byte{0x00, byte(tt.want), 0x11}, writes[len(writes)-1])
		})
	}

	wide, err := protocol.NewAddress(0x10, 4)
	require.NoError(t, err)
	port := &recordingPort{}
	_, err = WritePage(port, dev, wide, []byte{0x01})
	require.NoError(t, err)
	assert.Equal(t, [][]byte{{0x00, 0x10, 0x01}}, port.writes)
}

func TestTransportFailurePropagates(t *testing.T) {
	dev := mustDevice(t, protocol.DeviceZL30267)

	tests := []struct {
		name   string
		after  int
		run    func(port Port, addr protocol.Address) (Result, error)
		wantOp string
	}{
		{
			name:   "write enable",
			after:  0,
			run:    func(port Port, addr protocol.Address) (Result, error) { return WritePage(port, dev, addr, []byte{1}, FramingFor(dev, protocol.OpPageWrite)...) },
			wantOp: "write enable",
		},
		{
			name:   "page write",
			after:  1,
			run:    func(port Port, addr protocol.Address) (Result, error) { return WritePage(port, dev, addr, []byte{1}, FramingFor(dev, protocol.OpPageWrite)...) },
			wantOp: "page write",
		},
		{
			name:   "read address",
			after:  0,
			run:    func(port Port, addr protocol.Address) (Result, error) { return Read(port, dev, addr, 2, FramingFor(dev, protocol.OpRead)...) },
			wantOp: "read address",
		},
		{
			name:   "read data",
			after:  1,
			run:    func(port Port, addr protocol.Address) (Result, error) { return Read(port, dev, addr, 2, FramingFor(dev, protocol.OpRead)...) },
			wantOp: "read",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim := transport.NewSim(dev)
			sim.FailAfter(tt.after, nil)

			cursor := mustAddress(t, dev, 0x40)
			res, err := tt.run(sim, cursor)
			require.Error(t, err)

			var te *TransportError
			require.True(t, errors.As(err, &te))
			assert.Equal(t, tt.wantOp, te.Op)
			assert.Equal(t, cursor, te.Address)
			assert.ErrorIs(t, err, transport.ErrNack)

			assert.Equal(t, Result{}, res)
			assert.Equal(t, uint32(0x40), cursor.Value(), "caller cursor must be unchanged")
			assert.Len(t, sim.Log(), tt.after+1, "failed transaction must not be retried")
		})
	}
}

func TestWritePageThenReadReturnsSameBytes(t *testing.T) {
	for _, name := range protocol.Devices() {
		t.Run(name, func(t *testing.T) {
			dev := mustDevice(t, name)
			sim := transport.NewSim(dev)
			addr := mustAddress(t, dev, 0x0200)
			data := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x00, 0x01}

			_, err := WritePage(sim, dev, addr, data, FramingFor(dev, protocol.OpPageWrite)...)
			require.NoError(t, err)

			res, err := Read(sim, dev, addr, len(data), FramingFor(dev, protocol.OpRead)...)
			require.NoError(t, err)
			assert.Equal(t, data, res.Data)
		})
	}
}

func TestConfigure(t *testing.T) {
	port := &recordingPort{}
	require.NoError(t, Configure(port, mustDevice(t, protocol.Device24LC32)))
	assert.Empty(t, port.writes)

	require.NoError(t, Configure(port, mustDevice(t, protocol.DeviceZL30267)))
	assert.Equal(t, [][]byte{{protocol.OpcodeWrite, 0x00, 0x00, protocol.SetupControlValue}}, port.writes)

	port.writeErr = transport.ErrNack
	err := Configure(port, mustDevice(t, protocol.DeviceZL30267))
	assert.True(t, IsTransportError(err))
}

func TestFramingFor(t *testing.T) {
	plain := mustDevice(t, protocol.Device24LC32)
	assert.Empty(t, FramingFor(plain, protocol.OpPageWrite))
	assert.Empty(t, FramingFor(plain, protocol.OpRead))

	zl := mustDevice(t, protocol.DeviceZL30267)
	_, f := buildFraming(protocol.OpPageWrite, FramingFor(zl, protocol.OpPageWrite))
	assert.Equal(t, Framing{Command: protocol.OpcodeWrite, HasCommand: true, WriteEnable: []byte{protocol.OpcodeWriteEnable}}, f)

	_, f = buildFraming(protocol.OpRead, FramingFor(zl, protocol.OpRead))
	assert.Equal(t, Framing{Command: protocol.OpcodeRead, HasCommand: true}, f)
}
