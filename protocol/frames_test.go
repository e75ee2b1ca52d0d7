package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWriteFrame(t *testing.T) {
	addr, err := NewAddress(0x0123, 2)
	require.NoError(t, err)

	tests := []struct {
		name string
		op   Operation
		data []byte
		want []byte
	}{
		{
			name: "no opcode",
			op:   Operation{Name: OpPageWrite},
			data: []byte{0xAA, 0xBB},
			want: []byte{0x01, 0x23, 0xAA, 0xBB},
		},
		{
			name: "with opcode",
			op:   Operation{Name: OpPageWrite, Opcode: OpcodeWrite, HasOpcode: true},
			data: []byte{0xAA},
			want: []byte{OpcodeWrite, 0x01, 0x23, 0xAA},
		},
		{
			name: "zero opcode is still sent",
			op:   Operation{Name: OpPageWrite, Opcode: 0x00, HasOpcode: true},
			data: nil,
			want: []byte{0x00, 0x01, 0x23},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildWriteFrame(tt.op, addr, tt.data))
		})
	}
}

func TestBuildAddressFrame(t *testing.T) {
	addr, err := NewAddress(0x0F00, 2)
	require.NoError(t, err)

	read := Operation{Name: OpRead, Opcode: OpcodeRead, HasOpcode: true}
	assert.Equal(t, []byte{OpcodeRead, 0x0F, 0x00}, BuildAddressFrame(read, addr))
	assert.Equal(t, []byte{0x0F, 0x00}, BuildAddressFrame(Operation{Name: OpRead}, addr))
}

func TestSplitFrame(t *testing.T) {
	op := Operation{Name: OpPageWrite, Opcode: OpcodeWrite, HasOpcode: true}
	opcode, addr, data, ok := SplitFrame(op, 2, []byte{OpcodeWrite, 0x01, 0x00, 0x55, 0x66})
	require.True(t, ok)
	assert.Equal(t, byte(OpcodeWrite), opcode)
	assert.Equal(t, uint32(0x0100), addr)
	assert.Equal(t, []byte{0x55, 0x66}, data)

	_, _, _, ok = SplitFrame(op, 2, []byte{OpcodeWrite, 0x01})
	assert.False(t, ok)

	_, _, _, ok = SplitFrame(op, 2, nil)
	assert.False(t, ok)
}
