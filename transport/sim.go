package transport

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/moffa90/go-i2ceeprom/protocol"
)

// Transaction kinds recorded by Sim.
const (
	KindWrite = "write"
	KindRead  = "read"
	KindPoll  = "poll"
)

// Transaction is one bus transaction seen by Sim.
type Transaction struct {
	// Kind is KindWrite, KindRead or KindPoll
	Kind string

	// Frame is the frame written, or the bytes returned by a read
	Frame []byte

	// Err is the error returned to the caller
	Err error
}

func (t Transaction) String() string {
	return fmt.Sprintf("%s % X > %v", t.Kind, t.Frame, t.Err)
}

// Sim simulates an EEPROM on the bus.
//
// It behaves like a 24xx part: writes roll over within the current page, the
// address pointer auto-increments on reads and wraps at the end of the array.
// Devices with a write-enable sequence ignore writes to the array unless the
// sequence was sent immediately before.
type Sim struct {
	mu sync.Mutex

	dev       protocol.Device
	mem       []byte
	pointer   uint32
	latched   bool
	absent    bool
	failIn    int
	failErr   error
	log       []Transaction
	rollovers []string
}

// NewSim returns a simulated device with every byte set to 0xFF, like an erased part.
func NewSim(dev protocol.Device) *Sim {
	mem := make([]byte, dev.Size())
	for i := range mem {
		mem[i] = 0xFF
	}
	return &Sim{dev: dev, mem: mem, failIn: -1}
}

// Write decodes and executes one write transaction.
func (s *Sim) Write(frame []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.write(frame)
	s.log = append(s.log, Transaction{Kind: KindWrite, Frame: append([]byte(nil), frame...), Err: err})
	return err
}

func (s *Sim) write(frame []byte) error {
	if err := s.fault(); err != nil {
		return err
	}

	if s.dev.NeedsWriteEnable() && bytes.Equal(frame, s.dev.WriteEnable) {
		s.latched = true
		return nil
	}

	latched := s.latched
	s.latched = false

	width := s.addressWidth()
	write, _ := s.dev.Operation(protocol.OpPageWrite)
	read, _ := s.dev.Operation(protocol.OpRead)

	op := write
	if read.HasOpcode && len(frame) > 0 && frame[0] == read.Opcode {
		op = read
	}

	opcode, addr, data, ok := protocol.SplitFrame(op, width, frame)
	if !ok {
		return fmt.Errorf("%w: frame % X too short", ErrNack, frame)
	}
	if op.HasOpcode && opcode != op.Opcode {
		return fmt.Errorf("%w: unknown opcode 0x%02X", ErrNack, opcode)
	}

	s.pointer = addr & s.mask()

	if op.Name == protocol.OpRead {
		if len(data) > 0 {
			return fmt.Errorf("%w: data after read pointer", ErrNack)
		}
		return nil
	}

	if len(data) == 0 {
		return nil
	}

	if s.dev.NeedsWriteEnable() && !latched {
		return nil
	}

	pageSize := uint32(s.dev.PageSize)
	base := s.pointer &^ (pageSize - 1)
	if s.pointer-base+uint32(len(data)) > pageSize {
		s.rollovers = append(s.rollovers, fmt.Sprintf("write of %d bytes at 0x%04X rolled over page 0x%04X", len(data), s.pointer, base))
	}

	for _, b := range data {
		s.mem[s.pointer] = b
		s.pointer = base | ((s.pointer + 1) & (pageSize - 1))
	}

	return nil
}

// Read returns n bytes from the address pointer, advancing it.
func (s *Sim) Read(n int) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fault(); err != nil {
		s.log = append(s.log, Transaction{Kind: KindRead, Err: err})
		return nil, err
	}

	out := make([]byte, n)
	for i := range out {
		out[i] = s.mem[s.pointer]
		s.pointer = (s.pointer + 1) & s.mask()
	}

	s.log = append(s.log, Transaction{Kind: KindRead, Frame: append([]byte(nil), out...)})
	return out, nil
}

// Poll acknowledges unless the device is absent or a fault is pending.
func (s *Sim) Poll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.fault()
	s.log = append(s.log, Transaction{Kind: KindPoll, Err: err})
	return err
}

// SetAbsent makes every following transaction fail with ErrNack.
func (s *Sim) SetAbsent(absent bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.absent = absent
}

// FailAfter lets n transactions succeed, then fails the next one with err.
// A nil err fails with ErrNack.
func (s *Sim) FailAfter(n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		err = ErrNack
	}
	s.failIn = n
	s.failErr = err
}

func (s *Sim) fault() error {
	if s.absent {
		return ErrNack
	}
	if s.failIn < 0 {
		return nil
	}
	if s.failIn == 0 {
		s.failIn = -1
		return s.failErr
	}
	s.failIn--
	return nil
}

// Load copies data into the array at addr without recording a transaction.
func (s *Sim) Load(addr int, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copy(s.mem[addr:], data)
}

// Memory returns a copy of the whole array.
func (s *Sim) Memory() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.mem...)
}

// Log returns the transactions seen so far.
func (s *Sim) Log() []Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Transaction(nil), s.log...)
}

// Writes returns the frames of successful write transactions, in order.
func (s *Sim) Writes() [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()

	var frames [][]byte
	for _, t := range s.log {
		if t.Kind == KindWrite && t.Err == nil {
			frames = append(frames, t.Frame)
		}
	}
	return frames
}

// PageRollovers describes writes that wrapped around within a page.
func (s *Sim) PageRollovers() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.rollovers...)
}

// ResetLog clears the transaction log.
func (s *Sim) ResetLog() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log = nil
	s.rollovers = nil
}

// String identifies the port, e.g. "sim:24LC32".
func (s *Sim) String() string {
	return "sim:" + s.dev.Name
}

func (s *Sim) addressWidth() int {
	a, err := s.dev.Address(0)
	if err != nil {
		return 1
	}
	return a.Width()
}

func (s *Sim) mask() uint32 {
	return s.dev.MaxAddress() - 1
}
