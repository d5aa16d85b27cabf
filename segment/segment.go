// Package segment translates characters to seven-segment bit patterns.
//
// Patterns use the no-decode register layout of the MAX7219 family:
//
//	 --A--
//	|     |
//	F     B
//	|     |
//	 --G--
//	|     |
//	E     C
//	|     |
//	 --D--  .DP
//
// with DP in bit 7, A in bit 6 down to G in bit 0.
package segment

import "unicode"

// Segment bits.
const (
	G  byte = 1 << iota // middle
	F                   // top left
	E                   // bottom left
	D                   // bottom
	C                   // bottom right
	B                   // top right
	A                   // top
	DP                  // decimal point
)

// Blank is the pattern of an unlit cell.
const Blank byte = 0x00

// Undefined is shown for characters without a glyph, an underscore.
const Undefined = D

var glyphs = map[rune]byte{
	' ':  Blank,
	'-':  G,
	'_':  D,
	'=':  D | G,
	'\'': F,
	'"':  B | F,
	'°':  A | B | F | G,
	'0':  A | B | C | D | E | F,
	'1':  B | C,
	'2':  A | B | D | E | G,
	'3':  A | B | C | D | G,
	'4':  B | C | F | G,
	'5':  A | C | D | F | G,
	'6':  A | C | D | E | F | G,
	'7':  A | B | C,
	'8':  A | B | C | D | E | F | G,
	'9':  A | B | C | D | F | G,
	'A':  A | B | C | E | F | G,
	'B':  C | D | E | F | G,
	'C':  A | D | E | F,
	'D':  B | C | D | E | G,
	'E':  A | D | E | F | G,
	'F':  A | E | F | G,
	'G':  A | C | D | E | F,
	'H':  B | C | E | F | G,
	'I':  E | F,
	'J':  B | C | D | E,
	'K':  A | C | E | F | G,
	'L':  D | E | F,
	'M':  A | B | C | E | F,
	'N':  C | E | G,
	'O':  A | B | C | D | E | F,
	'P':  A | B | E | F | G,
	'Q':  A | B | C | F | G,
	'R':  E | G,
	'S':  A | C | D | F | G,
	'T':  D | E | F | G,
	'U':  B | C | D | E | F,
	'V':  C | D | E,
	'W':  B | D | F,
	'X':  B | C | E | F | G,
	'Y':  B | C | D | F | G,
	'Z':  A | B | D | E | G,
	'b':  C | D | E | F | G,
	'c':  D | E | G,
	'd':  B | C | D | E | G,
	'h':  C | E | F | G,
	'i':  C,
	'n':  C | E | G,
	'o':  C | D | E | G,
	'r':  E | G,
	't':  D | E | F | G,
	'u':  C | D | E,
}

// Glyph returns the segment pattern for r. Lower case letters without a
// distinct shape use the upper case pattern.
func Glyph(r rune) (byte, bool) {
	if b, ok := glyphs[r]; ok {
		return b, true
	}
	if b, ok := glyphs[unicode.ToUpper(r)]; ok {
		return b, true
	}
	return Blank, false
}

// Encode returns one pattern per display cell for text.
//
// A '.' lights the decimal point of the preceding cell. A leading '.', or one
// following a cell whose decimal point is already lit, takes a blank cell of
// its own. Characters without a glyph render as Undefined.
func Encode(text string) []byte {
	var (
		cells = make([]byte, 0, len(text))
		merge bool
	)
	for _, r := range text {
		if r == '.' {
			if merge {
				cells[len(cells)-1] |= DP
				merge = false
			} else {
				cells = append(cells, DP)
			}
			continue
		}
		b, ok := Glyph(r)
		if !ok {
			b = Undefined
		}
		cells = append(cells, b)
		merge = true
	}
	return cells
}

// Len returns the number of cells text occupies once encoded.
func Len(text string) int {
	return len(Encode(text))
}
