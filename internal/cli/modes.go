package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/moffa90/go-i2ceeprom/eeprom"
	"github.com/moffa90/go-i2ceeprom/hexfile"
	"github.com/moffa90/go-i2ceeprom/protocol"
)

// Prompts shown in manual and file mode.
const (
	promptAddress   = "Input address byte as 0x0000 or 0000: "
	promptData      = "Input data bytes as hex with spaces ex:(00 01 02): "
	promptByte      = "Input data as a single byte 0x00 or 00: "
	promptCount     = "Input number of bytes to read (int), "
	promptImagePath = "Input file path to use: "
)

// ErrMismatch is returned by file mode when the device content differs from the image.
var ErrMismatch = errors.New("unsuccessful eeprom flash")

// inputError marks a bad answer in manual mode; the menu is shown again.
type inputError struct {
	err error
}

func (e *inputError) Error() string {
	return "invalid input: " + e.err.Error()
}

func (e *inputError) Unwrap() error {
	return e.err
}

// app holds what both modes need once the slave has answered a poll.
type app struct {
	out       io.Writer
	menu      *Menu
	port      eeprom.Port
	device    protocol.Device
	logger    eeprom.Logger
	pageDelay time.Duration
}

// fileMode flashes the image at path, prompting for a path when it is empty,
// and prints the image next to the data read back.
// The image is parsed before the first bus transaction.
func (a *app) fileMode(ctx context.Context, path string) error {
	if path == "" {
		answer, err := a.menu.Prompt(promptImagePath)
		if err != nil {
			return fmt.Errorf("no image file given: %w", err)
		}
		path = answer
	}

	img, err := hexfile.Parse(path)
	if err != nil {
		return err
	}
	a.logger.Debug("image parsed", "path", path, "bytes", img.Len(), "comments", img.Comments)

	if err := eeprom.Configure(a.port, a.device); err != nil {
		return err
	}

	prog := eeprom.New(a.port, a.device,
		eeprom.WithLogger(a.logger),
		eeprom.WithPageDelay(a.pageDelay),
		eeprom.WithProgressCallback(func(p eeprom.Progress) {
			a.logger.Debug("progress", "phase", p.Phase, "page", p.CurrentPage, "pages", p.TotalPages, "percent", p.Percentage)
		}),
	)

	result, err := prog.Flash(ctx, img)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Image file: \n%s\n", img.Hex())
	fmt.Fprintf(a.out, "Data on eeprom: \n% x\n", result.ReadBack)

	if !result.OK() {
		return fmt.Errorf("%w: %d bytes differ, first at offset %d", ErrMismatch, result.Mismatches, result.FirstMismatch)
	}

	fmt.Fprintln(a.out, "Successful eeprom flash")
	return nil
}

// manualMode runs operations picked from the device's menu until the user quits.
func (a *app) manualMode() error {
	session, err := eeprom.OpenSession(a.port, a.device)
	if err != nil {
		return err
	}

	for {
		title := fmt.Sprintf("Pick a command to run on the eeprom, current address is %s", session.Cursor())
		choice, ok, err := a.menu.Choose(title, a.device.OperationNames())
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(a.out, "Program quit")
			return nil
		}

		req, err := a.request(choice)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(a.out, "Program quit")
			return nil
		}
		if err == nil {
			var res eeprom.Result
			res, err = session.Execute(req)
			if err == nil {
				fmt.Fprintf(a.out, "Data in if write, Data out if read: \n% x\n", res.Data)
				continue
			}
			if protocol.IsRangeError(err) {
				err = &inputError{err: err}
			}
		}

		var ie *inputError
		if !errors.As(err, &ie) {
			return err
		}
		fmt.Fprintf(a.out, "Invalid input: %v\n", ie.err)
	}
}

// request prompts for the inputs of the named operation.
func (a *app) request(operation string) (eeprom.Request, error) {
	req := eeprom.Request{Operation: operation}

	text, err := a.menu.Prompt(promptAddress)
	if err != nil {
		return req, err
	}
	if req.Address, err = a.device.ParseAddress(text); err != nil {
		return req, &inputError{err: err}
	}

	switch operation {
	case protocol.OpPageWrite:
		text, err := a.menu.Prompt(promptData)
		if err != nil {
			return req, err
		}
		if req.Data, err = hexfile.ParseHexBytes(text); err != nil {
			return req, &inputError{err: err}
		}
		if len(req.Data) > a.device.PageSize {
			a.logger.Debug("data exceeds page size, the device will roll over", "bytes", len(req.Data), "page_size", a.device.PageSize)
		}

	case protocol.OpSingleWrite:
		text, err := a.menu.Prompt(promptByte)
		if err != nil {
			return req, err
		}
		b, err := protocol.ParseAddress(text, 0x100)
		if err != nil {
			return req, &inputError{err: err}
		}
		req.Value = byte(b.Value())

	case protocol.OpRead:
		text, err := a.menu.Prompt(promptCount)
		if err != nil {
			return req, err
		}
		if req.Count, err = strconv.Atoi(text); err != nil {
			return req, &inputError{err: err}
		}
	}

	return req, nil
}
