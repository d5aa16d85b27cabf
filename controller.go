package sevenseg

import (
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/fryntiz/sevenseg/segment"
)

// Date and time layouts, DD-MM-YY and HH-MM-SS.
const (
	DateLayout = "02-01-06"
	TimeLayout = "15-04-05"
)

// MaxBrightness is the highest brightness level accepted by SetBrightness.
const MaxBrightness = 15

// Controller offers high level operations on a seven-segment display.
//
// A Controller is not safe for concurrent use; scrolling blocks the calling
// goroutine until the animation is done.
type Controller struct {
	device   Device
	seg      *SevenSegment
	cascaded int
	clock    clockwork.Clock
	log      zerolog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock sets the clock used for the date, the time and scroll delays.
func WithClock(clock clockwork.Clock) Option {
	return func(c *Controller) {
		c.clock = clock
	}
}

// WithLogger sets the logger diagnostics are written to.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Controller) {
		c.log = logger
	}
}

// WithCascaded sets the number of chained units, which determines how much
// text ShowFixed accepts.
func WithCascaded(cascaded int) Option {
	return func(c *Controller) {
		if cascaded > 0 {
			c.cascaded = cascaded
		}
	}
}

// NewLogger returns the default diagnostics logger, writing to stdout.
func NewLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
}

// New returns a Controller for device.
func New(device Device, options ...Option) *Controller {
	c := newController(options)
	c.attach(device)
	return c
}

func newController(options []Option) *Controller {
	c := &Controller{
		clock: clockwork.NewRealClock(),
		log:   NewLogger(),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// attach binds device, the unit count defaults to what its width holds.
func (c *Controller) attach(device Device) {
	c.device = device
	c.seg = NewSevenSegment(device)
	if c.cascaded < 1 {
		c.cascaded = device.Width() / DigitsPerUnit
	}
	if c.cascaded < 1 {
		c.cascaded = 1
	}
}

// Open opens the SPI connection and MAX7219 chain described by config, nil
// uses DefaultConfig. The device logs its register writes to the Controller
// logger when config.Debug is set.
func Open(config *Config, options ...Option) (*Controller, error) {
	if config == nil {
		config = new(Config)
		*config = DefaultConfig
	}

	c := newController(append([]Option{WithCascaded(config.Cascaded)}, options...))
	if config.Debug {
		c.log = c.log.Level(zerolog.DebugLevel)
	}

	conn, err := OpenSPI(config.SPIConfig())
	if err != nil {
		return nil, err
	}

	deviceConfig := *config
	deviceConfig.Logger = &c.log
	device, err := MAX7219(conn, &deviceConfig)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	c.attach(device)
	c.log.Debug().Str("device", fmt.Sprint(device)).Msg("opened display")

	if config.Brightness >= 0 {
		if err = c.SetBrightness(config.Brightness); err != nil {
			_ = device.Close()
			return nil, err
		}
	}
	return c, nil
}

// Device returns the display device.
func (c *Controller) Device() Device {
	return c.device
}

// Capacity is the number of characters ShowFixed accepts.
func (c *Controller) Capacity() int {
	return DigitsPerUnit * c.cascaded
}

// Text returns the text shown last.
func (c *Controller) Text() string {
	return c.seg.Text()
}

// ShowDate shows the current date as DD-MM-YY.
func (c *Controller) ShowDate() error {
	return c.seg.SetText(c.clock.Now().Format(DateLayout))
}

// ShowTime shows the current time as HH-MM-SS.
func (c *Controller) ShowTime() error {
	return c.seg.SetText(c.clock.Now().Format(TimeLayout))
}

// ShowFixed shows text in upper case without animation. Text longer than the
// display capacity is not shown; a diagnostic is logged and ErrTooLong is
// returned.
func (c *Controller) ShowFixed(text string) error {
	// The length is that of text as given, before case folding.
	if n := utf8.RuneCountInString(text); n > c.Capacity() {
		c.log.Warn().
			Str("text", text).
			Int("length", n).
			Int("cells", segment.Len(text)).
			Int("capacity", c.Capacity()).
			Msg("text exceeds display length")
		return fmt.Errorf("%w: %d > %d", ErrTooLong, n, c.Capacity())
	}
	return c.seg.SetText(strings.ToUpper(text))
}

func pad(text string, width int) string {
	padding := strings.Repeat(" ", width)
	return padding + strings.ToUpper(text) + padding
}

// ScrollOnce scrolls text across the display once: it enters on the right
// and leaves on the left, waiting delay between steps.
//
// The text is padded with a display width of blanks on both sides. Step i,
// counting down from n-width-1 to 0, shows the window starting n-width-i
// cells into the padded text, so the first step puts the first character in
// the rightmost cell and the last one leaves the display blank.
func (c *Controller) ScrollOnce(text string, delay time.Duration) error {
	var (
		width  = c.device.Width()
		padded = pad(text, width)
		n      = utf8.RuneCountInString(padded)
	)

	c.log.Info().Str("text", padded).Msg("scrolling message")

	virtual := NewViewport(c.device, n, max7219Height)
	if err := NewSevenSegment(virtual).SetText(padded); err != nil {
		return err
	}
	for i := n - width - 1; i >= 0; i-- {
		if err := virtual.SetPosition(n-width-i, 0); err != nil {
			return err
		}
		c.clock.Sleep(delay)
	}
	return nil
}

// ScrollOnce2 scrolls text by writing successive slices of it to the
// display, waiting delay between steps.
func (c *Controller) ScrollOnce2(text string, delay time.Duration) error {
	var (
		width  = c.seg.Canvas().Width()
		padded = []rune(pad(text, width))
	)
	for i := range padded {
		end := i + width
		if end > len(padded) {
			end = len(padded)
		}
		if err := c.seg.SetText(string(padded[i:end])); err != nil {
			return err
		}
		c.clock.Sleep(delay)
	}
	return nil
}

// SetBrightness sets the brightness to level, 0 to 15. Out of range levels
// are logged and ErrBrightness is returned, the brightness is left as is.
func (c *Controller) SetBrightness(level int) error {
	if level < 0 || level > MaxBrightness {
		c.log.Warn().Int("level", level).Msg("brightness out of range, only 0-15 allowed")
		return fmt.Errorf("%w, got %d", ErrBrightness, level)
	}
	c.log.Info().Int("level", level).Msg("setting brightness")
	return c.device.SetContrast(uint8(level * 16))
}

// Clear blanks the display.
func (c *Controller) Clear() error {
	return c.seg.SetText("")
}

// Show turns the display on or off, keeping its contents.
func (c *Controller) Show(on bool) error {
	return c.device.Show(on)
}

// Close turns the display off and releases the connection.
func (c *Controller) Close() error {
	return c.device.Close()
}
