package hexfile

import (
	"bufio"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Constants for image file parsing.
const (
	// Extension is the only file extension accepted by Parse
	Extension = ".txt"

	// CommentMarker marks a line as a comment wherever it appears
	CommentMarker = ";"

	// MaxByteDigits is the maximum number of hex digits for one byte value
	MaxByteDigits = 2

	// DefaultImageCapacity is the default initial capacity for the image data
	DefaultImageCapacity = 4096
)

// Parse parses an image file from the given path.
// The extension is checked before the file is opened.
//
// Example:
//
//	img, err := hexfile.Parse("config.txt")
//	if err != nil {
//	    log.Fatal(err)
//	}
func Parse(path string) (*Image, error) {
	if ext := filepath.Ext(path); ext != Extension {
		return nil, &FormatError{
			Path:   path,
			Reason: "invalid file extension " + strconv.Quote(ext) + ", expected " + strconv.Quote(Extension),
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &AccessError{Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	img, err := parse(f, path)
	if err != nil {
		return nil, err
	}
	img.Source = path

	return img, nil
}

// ParseReader parses an image from any io.Reader.
//
// Example:
//
//	img, err := hexfile.ParseReader(strings.NewReader("; header\n02\n0A\n"))
func ParseReader(r io.Reader) (*Image, error) {
	return parse(r, "")
}

func parse(r io.Reader, path string) (*Image, error) {
	scanner := bufio.NewScanner(r)
	img := &Image{Data: make([]byte, 0, DefaultImageCapacity)}

	for scanner.Scan() {
		img.Lines++
		line := scanner.Text()

		if strings.Contains(line, CommentMarker) {
			img.Comments++
			continue
		}

		text := strings.TrimSpace(line)
		if text == "" {
			continue
		}

		b, ok := parseByte(text)
		if !ok {
			return nil, &FormatError{Path: path, Line: img.Lines, Text: line, Reason: "not a single hex byte value"}
		}

		img.Data = append(img.Data, b)
	}

	if err := scanner.Err(); err != nil {
		return nil, &AccessError{Path: path, Err: err}
	}

	return img, nil
}

// parseByte parses a single hex byte value such as "0A", "a" or "0xFF".
func parseByte(text string) (byte, bool) {
	digits := text
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		digits = digits[2:]
	}

	if digits == "" || len(digits) > MaxByteDigits {
		return 0, false
	}

	v, err := strconv.ParseUint(digits, 16, 8)
	if err != nil {
		return 0, false
	}

	return byte(v), true
}

// ParseHexBytes parses a whitespace-separated hex byte list such as "00 01 02".
// Groups may hold several bytes ("0001 02"), as long as each has an even number of digits.
func ParseHexBytes(text string) ([]byte, error) {
	var out []byte
	for _, field := range strings.Fields(text) {
		b, err := hex.DecodeString(field)
		if err != nil {
			return nil, &FormatError{Text: field, Line: 1, Reason: "invalid hex bytes"}
		}
		out = append(out, b...)
	}

	if len(out) == 0 {
		return nil, &FormatError{Text: text, Line: 1, Reason: "no hex bytes"}
	}

	return out, nil
}
