package sevenseg

import (
	"github.com/fryntiz/sevenseg/pixel"
	"github.com/fryntiz/sevenseg/segment"
)

// SevenSegment renders text into a canvas, one character per digit cell.
type SevenSegment struct {
	canvas Canvas
	text   string
}

// NewSevenSegment returns a text renderer for c.
func NewSevenSegment(c Canvas) *SevenSegment {
	return &SevenSegment{canvas: c}
}

// Canvas returns the canvas text is rendered into.
func (s *SevenSegment) Canvas() Canvas {
	return s.canvas
}

// Text returns the text set last.
func (s *SevenSegment) Text() string {
	return s.text
}

// SetText replaces the canvas contents with text, left aligned, and refreshes
// the canvas. Cells beyond the canvas width are dropped.
func (s *SevenSegment) SetText(text string) error {
	var (
		cells = segment.Encode(text)
		width = s.canvas.Width()
	)
	for x := 0; x < width; x++ {
		var b byte
		if x < len(cells) {
			b = cells[x]
		}
		s.setColumn(x, b)
	}
	s.text = text
	return s.canvas.Refresh()
}

type columnSetter interface {
	SetColumn(x int, b byte)
}

func (s *SevenSegment) setColumn(x int, b byte) {
	if c, ok := s.canvas.(columnSetter); ok {
		c.SetColumn(x, b)
		return
	}
	for y := 0; y < 8; y++ {
		if b&(1<<uint(y)) != 0 {
			s.canvas.Set(x, y, pixel.On)
		} else {
			s.canvas.Set(x, y, pixel.Off)
		}
	}
}
