// Package hexfile parses textual EEPROM image listings.
//
// # Image File Format
//
// An image file is plain text with one byte per line, written as hex:
//
//	; ZL30267 configuration image
//	; generated 2024-03-01
//	02
//	0A
//	FF
//
// A line containing the comment marker ';' anywhere is ignored entirely, as
// are blank lines. Every other line must hold exactly one byte value of one or
// two hex digits, optionally prefixed with "0x".
//
// # Usage
//
// Parse an image from disk:
//
//	img, err := hexfile.Parse("config.txt")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d bytes, %d pages\n", img.Len(), img.Pages(32))
//
// Only files with the ".txt" extension are accepted from a path. Parse from any
// io.Reader to bypass that check:
//
//	img, err := hexfile.ParseReader(strings.NewReader("02\n0A\n"))
//
// # Error Handling
//
// A FormatError reports the offending line number and text, an AccessError
// reports a file that could not be opened or read.
package hexfile
