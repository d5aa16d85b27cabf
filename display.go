// Package sevenseg drives seven-segment LED displays built on the MAX7219.
//
// The package is layered the same way the hardware is: a [Conn] carries
// register writes over SPI, a [Device] keeps a framebuffer with one column per
// digit cell, [SevenSegment] renders text into any [Canvas], [Viewport] gives a
// movable window over a canvas wider than the display, and [Controller] offers
// the high level operations (date, time, fixed text, scrolling, brightness).
package sevenseg

import (
	"errors"
	"os"

	"github.com/fryntiz/sevenseg/draw"
)

var debug bool

func init() {
	debug = os.Getenv("SEVENSEG_DEBUG") != ""
}

// DigitsPerUnit is the number of digit cells driven by one chip.
const DigitsPerUnit = 8

// Errors
var (
	ErrTooLong    = errors.New("sevenseg: text exceeds display length")
	ErrBrightness = errors.New("sevenseg: brightness must be between 0 and 15")
	ErrCascaded   = errors.New("sevenseg: cascaded device count must be at least 1")
	ErrSPISpeed   = errors.New("sevenseg: invalid SPI speed")
	ErrClosed     = errors.New("sevenseg: device is closed")
)

// Canvas is a framebuffer that text can be rendered into.
type Canvas interface {
	draw.Image

	// Width in digit cells.
	Width() int

	// Refresh pushes the framebuffer to wherever it is displayed.
	Refresh() error
}

// Device is a seven-segment display.
type Device interface {
	Canvas

	// Close the display driver.
	Close() error

	// Clear the display buffer.
	Clear()

	// Show toggles the display on or off.
	Show(bool) error

	// SetContrast adjusts the contrast level.
	SetContrast(level uint8) error
}
