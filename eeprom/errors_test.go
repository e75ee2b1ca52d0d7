package eeprom

import (
	"errors"
	"fmt"
	"testing"

	"github.com/moffa90/go-i2ceeprom/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransportError(t *testing.T) {
	addr, err := protocol.NewAddress(0x0120, 2)
	require.NoError(t, err)

	nack := errors.New("NACK received")
	te := &TransportError{Op: "page write", Address: addr, Err: nack}

	assert.Equal(t, "page write at 0x0120: NACK received", te.Error())
	assert.ErrorIs(t, te, nack)

	wrapped := fmt.Errorf("write page 4: %w", te)
	assert.True(t, IsTransportError(wrapped))
	assert.False(t, IsTransportError(nack))
}

func TestUnsupportedOperationError(t *testing.T) {
	err := &UnsupportedOperationError{Device: "ZL30267", Operation: "Single Write"}
	assert.Contains(t, err.Error(), "ZL30267")
	assert.Contains(t, err.Error(), `"Single Write"`)
	assert.True(t, IsUnsupportedOperationError(fmt.Errorf("menu: %w", err)))
}

func TestErrorTypes(t *testing.T) {
	var _ error = &TransportError{}
	var _ error = &UnsupportedOperationError{}
}
