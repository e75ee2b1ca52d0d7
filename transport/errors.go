package transport

import "errors"

// ErrNack signals that the slave did not acknowledge a transaction.
var ErrNack = errors.New("NACK received")

// ErrClosed signals use of a port after Close.
var ErrClosed = errors.New("port closed")
