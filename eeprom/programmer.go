package eeprom

import (
	"context"
	"fmt"
	"time"

	"github.com/moffa90/go-i2ceeprom/hexfile"
	"github.com/moffa90/go-i2ceeprom/protocol"
)

// State is the state of a flash run.
type State int

// Flash run states. Success, Mismatch and Failed are terminal.
const (
	StateIdle State = iota
	StateWriting
	StateVerifying
	StateSuccess
	StateMismatch
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateWriting:
		return "writing"
	case StateVerifying:
		return "verifying"
	case StateSuccess:
		return "success"
	case StateMismatch:
		return "mismatch"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Progress phases.
const (
	PhaseWriting   = "writing"
	PhaseVerifying = "verifying"
	PhaseComplete  = "complete"
)

// VerifyResult reports the outcome of a flash run.
// A mismatch is an outcome, not an error: the device was partially or
// incorrectly programmed and the caller decides whether to flash again.
type VerifyResult struct {
	// State is StateSuccess, StateMismatch or StateFailed
	State State

	// Pages is the number of page writes that completed
	Pages int

	// BytesWritten is the number of image bytes written
	BytesWritten int

	// ReadBack is the data read from the device during verification
	ReadBack []byte

	// FirstMismatch is the offset of the first differing byte, -1 if none
	FirstMismatch int

	// Mismatches is the number of differing bytes
	Mismatches int

	// Elapsed is the duration of the run
	Elapsed time.Duration

	// Err is the failure that ended the run in StateFailed
	Err error
}

// OK reports whether the image was verified byte for byte.
func (r *VerifyResult) OK() bool {
	return r.State == StateSuccess
}

// Programmer writes whole images to an EEPROM and verifies them.
//
// Programmer owns the port for the duration of a run and is not safe for
// concurrent use.
type Programmer struct {
	port   Port
	device protocol.Device
	config Config
	state  State
}

// New creates a Programmer for the given port and device.
//
// Example:
//
//	dev, _ := protocol.Lookup("ZL30267")
//	prog := eeprom.New(port, dev,
//	    eeprom.WithProgressCallback(progressFunc),
//	)
func New(port Port, dev protocol.Device, opts ...Option) *Programmer {
	if port == nil {
		panic("port cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Programmer{
		port:   port,
		device: dev,
		config: cfg,
	}
}

// State returns the state of the current or last run.
func (p *Programmer) State() State {
	return p.state
}

// Flash writes img page by page from address zero, then reads the whole image
// back and compares it:
//  1. Write consecutive PageSize slices with the device's page-write framing
//  2. Read len(img) bytes from address zero with the device's read framing
//  3. Compare byte for byte
//
// A transport failure ends the run in StateFailed; the returned error names
// the page that failed and the device is left partially programmed.
// The context is checked between page writes.
//
// Flash does not issue the device's setup writes; call Configure first for
// devices with a Setup list.
func (p *Programmer) Flash(ctx context.Context, img *hexfile.Image) (*VerifyResult, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	if p.device.PageSize <= 0 {
		return nil, fmt.Errorf("device %s has invalid page size %d", p.device.Name, p.device.PageSize)
	}
	if img.Len() > p.device.Size() {
		return nil, &protocol.RangeError{Value: int64(img.Len()), Limit: int64(p.device.Size()) + 1}
	}

	startTime := time.Now()
	result := &VerifyResult{FirstMismatch: -1}
	totalPages := img.Pages(p.device.PageSize)

	fail := func(err error) (*VerifyResult, error) {
		p.state = StateFailed
		result.State = StateFailed
		result.Err = err
		result.Elapsed = time.Since(startTime)
		p.config.Logger.Error("flash failed", "device", p.device.Name, "pages", result.Pages, "error", err)
		return result, err
	}

	// Phase 1: write pages
	p.state = StateWriting
	p.reportProgress(Progress{Phase: PhaseWriting, TotalPages: totalPages})

	cursor, err := p.device.Address(0)
	if err != nil {
		return fail(err)
	}

	pageOpts := FramingFor(p.device, protocol.OpPageWrite)
	for offset := 0; offset < img.Len(); offset += p.device.PageSize {
		if err := ctx.Err(); err != nil {
			return fail(fmt.Errorf("cancelled: %w", err))
		}

		if offset > 0 && p.config.PageDelay > 0 {
			if err := sleep(ctx, p.config.PageDelay); err != nil {
				return fail(fmt.Errorf("cancelled: %w", err))
			}
		}

		end := offset + p.device.PageSize
		if end > img.Len() {
			end = img.Len()
		}

		res, err := WritePage(p.port, p.device, cursor, img.Data[offset:end], pageOpts...)
		if err != nil {
			return fail(fmt.Errorf("write page %d at %s: %w", result.Pages, cursor, err))
		}

		p.config.Logger.Debug("page written", "address", cursor.String(), "bytes", len(res.Data))

		cursor = res.Next
		result.Pages++
		result.BytesWritten += len(res.Data)

		p.reportProgress(Progress{
			Phase:        PhaseWriting,
			CurrentPage:  result.Pages,
			TotalPages:   totalPages,
			Percentage:   float64(result.Pages) / float64(totalPages) * 90,
			BytesWritten: result.BytesWritten,
			ElapsedTime:  time.Since(startTime),
		})
	}

	// Phase 2: read back
	p.state = StateVerifying
	p.reportProgress(Progress{
		Phase:        PhaseVerifying,
		CurrentPage:  result.Pages,
		TotalPages:   totalPages,
		Percentage:   90,
		BytesWritten: result.BytesWritten,
		ElapsedTime:  time.Since(startTime),
	})

	if img.Len() > 0 {
		start, err := p.device.Address(0)
		if err != nil {
			return fail(err)
		}

		res, err := Read(p.port, p.device, start, img.Len(), FramingFor(p.device, protocol.OpRead)...)
		if err != nil {
			return fail(fmt.Errorf("read back: %w", err))
		}
		result.ReadBack = res.Data
	} else {
		result.ReadBack = []byte{}
	}

	// Phase 3: compare
	result.FirstMismatch, result.Mismatches = compare(img.Data, result.ReadBack)
	if result.Mismatches == 0 {
		result.State = StateSuccess
	} else {
		result.State = StateMismatch
	}
	p.state = result.State
	result.Elapsed = time.Since(startTime)

	p.reportProgress(Progress{
		Phase:        PhaseComplete,
		CurrentPage:  result.Pages,
		TotalPages:   totalPages,
		Percentage:   100,
		BytesWritten: result.BytesWritten,
		ElapsedTime:  result.Elapsed,
	})

	p.config.Logger.Info("flash complete",
		"device", p.device.Name,
		"state", result.State.String(),
		"pages", result.Pages,
		"bytes", result.BytesWritten,
		"mismatches", result.Mismatches,
		"elapsed", result.Elapsed.String(),
	)

	return result, nil
}

// compare returns the first differing offset (-1 if none) and the number of
// differing bytes. A length difference counts every missing byte.
func compare(want, got []byte) (first, count int) {
	first = -1
	n := len(want)
	if len(got) > n {
		n = len(got)
	}
	for i := 0; i < n; i++ {
		if i < len(want) && i < len(got) && want[i] == got[i] {
			continue
		}
		if first < 0 {
			first = i
		}
		count++
	}
	return first, count
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// reportProgress calls the progress callback if configured.
func (p *Programmer) reportProgress(progress Progress) {
	if p.config.ProgressCallback != nil {
		p.config.ProgressCallback(progress)
	}
}
