package sevenseg

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/fryntiz/sevenseg/pixel"
)

const (
	max7219NoOp        = 0x00
	max7219Digit0      = 0x01 // digits 0-7 are 0x01-0x08
	max7219DecodeMode  = 0x09
	max7219Intensity   = 0x0A
	max7219ScanLimit   = 0x0B
	max7219Shutdown    = 0x0C
	max7219DisplayTest = 0x0F

	max7219DefaultContrast = 0x70
	max7219Height          = 8
)

// max7219 drives one or more daisy chained MAX7219 chips in no-decode mode.
//
// Column x of the framebuffer is digit cell x counted from the left. The unit
// closest to the SPI master shows the rightmost eight cells, so every frame
// starts with the register pair of the leftmost unit. Within a unit digit
// register 0 is the rightmost cell.
type max7219 struct {
	*pixel.MonoVerticalLSBImage
	c        Conn
	cascaded int
	frame    []byte
	log      zerolog.Logger
	halted   bool
	closed   bool
}

// MAX7219 sets up the chips behind conn and returns the cleared, lit display.
// A nil config uses DefaultConfig.
//
// Every register write is logged at debug level to config.Logger when
// config.Debug is set.
func MAX7219(conn Conn, config *Config) (Device, error) {
	if config == nil {
		config = new(Config)
		*config = DefaultConfig
	}
	if config.Cascaded < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrCascaded, config.Cascaded)
	}

	logger := zerolog.Nop()
	if config.Logger != nil {
		logger = *config.Logger
	}
	if config.Debug || debug {
		logger = logger.Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
	}

	width := config.Cascaded * DigitsPerUnit
	d := &max7219{
		MonoVerticalLSBImage: pixel.NewMonoVerticalLSBImage(width, max7219Height),
		c:                    conn,
		cascaded:             config.Cascaded,
		frame:                make([]byte, 2*config.Cascaded),
		log:                  logger,
	}

	if err := d.init(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *max7219) init() (err error) {
	if err = d.command(max7219ScanLimit, 0x07); err != nil {
		return
	}
	if err = d.command(max7219DecodeMode, 0x00); err != nil {
		return
	}
	if err = d.command(max7219DisplayTest, 0x00); err != nil {
		return
	}
	if err = d.Refresh(); err != nil {
		return
	}
	if err = d.SetContrast(max7219DefaultContrast); err != nil {
		return
	}
	return d.Show(true)
}

func (d *max7219) String() string {
	return fmt.Sprintf("MAX7219 %d digit seven-segment (%d cascaded) on %s", d.Width(), d.cascaded, d.c)
}

// command writes the same register value to every unit in the chain.
func (d *max7219) command(register, value byte) error {
	for i := 0; i < d.cascaded; i++ {
		d.frame[2*i] = register
		d.frame[2*i+1] = value
	}
	return d.send()
}

func (d *max7219) send() error {
	if d.closed {
		return ErrClosed
	}
	d.log.Debug().Hex("frame", d.frame).Msg("max7219: write")
	return d.c.Tx(d.frame, nil)
}

func (d *max7219) Width() int {
	return d.cascaded * DigitsPerUnit
}

func (d *max7219) Refresh() error {
	for digit := 0; digit < DigitsPerUnit; digit++ {
		for unit := 0; unit < d.cascaded; unit++ {
			d.frame[2*unit] = max7219Digit0 + byte(digit)
			d.frame[2*unit+1] = d.Column(unit*DigitsPerUnit + DigitsPerUnit - 1 - digit)
		}
		if err := d.send(); err != nil {
			return err
		}
	}
	return nil
}

// SetContrast maps the 0-255 level onto the 16 intensity steps of the chip.
func (d *max7219) SetContrast(level uint8) error {
	return d.command(max7219Intensity, level>>4)
}

func (d *max7219) Show(show bool) error {
	if show {
		d.halted = false
		return d.command(max7219Shutdown, 0x01)
	}
	d.halted = true
	return d.command(max7219Shutdown, 0x00)
}

func (d *max7219) Close() error {
	if d.closed {
		return nil
	}
	if !d.halted {
		if err := d.Show(false); err != nil {
			_ = d.c.Close()
			d.closed = true
			return err
		}
	}
	d.closed = true
	return d.c.Close()
}
