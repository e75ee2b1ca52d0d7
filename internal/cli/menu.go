package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Menu reads numbered choices and free-form answers from a line-oriented input.
type Menu struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewMenu returns a menu reading from in and printing to out.
func NewMenu(in io.Reader, out io.Writer) *Menu {
	return &Menu{in: bufio.NewScanner(in), out: out}
}

// Prompt prints text and returns the next line, trimmed.
// It returns io.EOF when the input is exhausted.
func (m *Menu) Prompt(text string) (string, error) {
	fmt.Fprint(m.out, text)
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(m.in.Text()), nil
}

// Choose lists opts under title and returns the selected option.
// ok is false when the user quits: any non-numeric answer, or end of input.
// Out-of-range numbers are reported and the list is shown again.
func (m *Menu) Choose(title string, opts []string) (choice string, ok bool, err error) {
	for {
		fmt.Fprintln(m.out, title)
		for i, opt := range opts {
			fmt.Fprintf(m.out, "\t%d:  %s\n", i+1, opt)
		}
		fmt.Fprintln(m.out, "\tq:  Quit Program")

		answer, err := m.Prompt("Choose option from list above: ")
		if errors.Is(err, io.EOF) {
			return "", false, nil
		}
		if err != nil {
			return "", false, err
		}

		n, err := strconv.Atoi(answer)
		if err != nil {
			return "", false, nil
		}
		if n < 1 || n > len(opts) {
			fmt.Fprintf(m.out, "Invalid choice %d\n", n)
			continue
		}
		return opts[n-1], true, nil
	}
}
