package hexfile

import "fmt"

// Image is a parsed EEPROM image.
type Image struct {
	// Data holds the image bytes in file order
	Data []byte

	// Source is the path the image was read from, empty for readers
	Source string

	// Lines is the number of lines read
	Lines int

	// Comments is the number of comment lines skipped
	Comments int
}

// Len returns the number of bytes in the image.
func (img *Image) Len() int {
	return len(img.Data)
}

// Pages returns the number of page-write transactions needed to program the image.
func (img *Image) Pages(pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return (len(img.Data) + pageSize - 1) / pageSize
}

// Hex returns the image bytes as space-separated hex, e.g. "02 0a ff".
func (img *Image) Hex() string {
	return fmt.Sprintf("% x", img.Data)
}
