// Package cellref decodes spreadsheet-style cell references such as "B3".
package cellref

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrMalformedCoordinate indicates a reference is not letters followed by digits.
var ErrMalformedCoordinate = errors.New("malformed cell reference")

// Coordinate is a 1-based (row, column) pair. Row 1 is the header row.
type Coordinate struct {
	Row int
	Col int
}

// String renders the coordinate back in spreadsheet notation.
func (c Coordinate) String() string {
	return ColumnLabel(c.Col) + strconv.Itoa(c.Row)
}

// Decode converts a reference like "AA10" into its coordinate (row 10, column 27).
// Letters are case-insensitive and read as a bijective base-26 numeral.
func Decode(ref string) (Coordinate, error) {
	split := 0
	for split < len(ref) && isLetter(ref[split]) {
		split++
	}
	letters, digits := ref[:split], ref[split:]
	if letters == "" || digits == "" {
		return Coordinate{}, fmt.Errorf("%w: %q", ErrMalformedCoordinate, ref)
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return Coordinate{}, fmt.Errorf("%w: %q", ErrMalformedCoordinate, ref)
		}
	}
	row, err := strconv.Atoi(digits)
	if err != nil || row < 1 {
		return Coordinate{}, fmt.Errorf("%w: %q: row must be a positive integer", ErrMalformedCoordinate, ref)
	}
	col := 0
	for i := 0; i < len(letters); i++ {
		if col > (math.MaxInt-26)/26 {
			return Coordinate{}, fmt.Errorf("%w: %q: column out of range", ErrMalformedCoordinate, ref)
		}
		col = col*26 + int(upper(letters[i])-'A'+1)
	}
	return Coordinate{Row: row, Col: col}, nil
}

// ColumnLabel returns the letters for a 1-based column index (27 -> "AA").
// Non-positive indexes yield "".
func ColumnLabel(col int) string {
	var buf []byte
	for col > 0 {
		col--
		buf = append(buf, byte('A'+col%26))
		col /= 26
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}

func isLetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}
