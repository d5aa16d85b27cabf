package sevenseg

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"

	"github.com/fryntiz/sevenseg/conn"
)

// Conn is the connection interface for communicating with hardware.
type Conn interface {
	String() string

	// Close the connection.
	Close() error

	// Tx does a single transaction, r may be nil for write only transfers.
	Tx(w, r []byte) error
}

// SPIConfig describes the SPI bus configuration.
type SPIConfig struct {
	// Bus is the SPI port number.
	Bus int

	// Device is the chip select on the bus.
	Device int

	// SpeedHz is the clock speed, it must be one of ValidSPISpeeds.
	SpeedHz uint32

	// Raw uses the spidev node directly instead of the periph.io registry.
	Raw bool

	// CS is an optional GPIO used as chip select, driven low during transfers.
	CS gpio.PinOut
}

// DefaultSPIConfig are the default configuration values.
var DefaultSPIConfig = SPIConfig{
	Bus:     0,
	Device:  0,
	SpeedHz: 10_000_000,
}

// ValidSPISpeeds are the SPI bus speeds the MAX7219 copes with.
var ValidSPISpeeds = []uint32{
	500_000,
	1_000_000,
	2_000_000,
	4_000_000,
	5_000_000,
	8_000_000,
	10_000_000,
}

// OpenSPI opens the SPI port described by config, nil uses DefaultSPIConfig.
//
// Unless Raw is set, the periph.io host drivers must have been initialised
// (see host.Init) before calling OpenSPI.
func OpenSPI(config *SPIConfig) (Conn, error) {
	if config == nil {
		config = new(SPIConfig)
		*config = DefaultSPIConfig
	}
	if config.SpeedHz == 0 {
		config.SpeedHz = DefaultSPIConfig.SpeedHz
	}
	if err := validSPISpeed(config.SpeedHz); err != nil {
		return nil, err
	}

	if config.Raw {
		return openRawSPI(config)
	}

	port, err := spireg.Open(fmt.Sprintf("SPI%d.%d", config.Bus, config.Device))
	if err != nil {
		return nil, err
	}
	c, err := NewSPIConn(port, config)
	if err != nil {
		_ = port.Close()
		return nil, err
	}
	return c, nil
}

func validSPISpeed(hz uint32) error {
	for _, speed := range ValidSPISpeeds {
		if speed == hz {
			return nil
		}
	}
	return fmt.Errorf("%w %dHz", ErrSPISpeed, hz)
}

type spiConn struct {
	port spi.PortCloser
	conn spi.Conn
	cs   gpio.PinOut
}

// NewSPIConn connects to an opened periph.io SPI port in mode 0 with 8 bits
// per word. Closing the returned Conn closes the port.
func NewSPIConn(port spi.PortCloser, config *SPIConfig) (Conn, error) {
	if config == nil {
		config = new(SPIConfig)
		*config = DefaultSPIConfig
	}
	speed := config.SpeedHz
	if speed == 0 {
		speed = DefaultSPIConfig.SpeedHz
	}

	c, err := port.Connect(physic.Frequency(speed)*physic.Hertz, spi.Mode0, 8)
	if err != nil {
		return nil, err
	}
	if err = deselect(config.CS); err != nil {
		return nil, err
	}
	return &spiConn{
		port: port,
		conn: c,
		cs:   config.CS,
	}, nil
}

func (c *spiConn) String() string {
	return fmt.Sprintf("SPI bus %s", c.conn)
}

func (c *spiConn) Close() error {
	return c.port.Close()
}

func (c *spiConn) Tx(w, r []byte) (err error) {
	return withCS(c.cs, func() error {
		return c.conn.Tx(w, r)
	})
}

type rawSPIConn struct {
	bus *conn.SPI
	cs  gpio.PinOut
}

func openRawSPI(config *SPIConfig) (Conn, error) {
	c, err := conn.OpenSPI(config.Bus, config.Device)
	if err != nil {
		return nil, err
	}
	if err = c.SetMode(conn.SPIMode0); err != nil {
		_ = c.Close()
		return nil, err
	}
	if err = c.SetBitsPerWord(8); err != nil {
		_ = c.Close()
		return nil, err
	}
	if err = c.SetMaxSpeed(int(config.SpeedHz)); err != nil {
		_ = c.Close()
		return nil, err
	}
	if err = deselect(config.CS); err != nil {
		_ = c.Close()
		return nil, err
	}
	return &rawSPIConn{
		bus: c,
		cs:  config.CS,
	}, nil
}

func (c *rawSPIConn) String() string {
	return fmt.Sprintf("SPI bus %s", c.bus)
}

func (c *rawSPIConn) Close() error {
	return c.bus.Close()
}

func (c *rawSPIConn) Tx(w, r []byte) error {
	return withCS(c.cs, func() error {
		return c.bus.Tx(w, r)
	})
}

func deselect(cs gpio.PinOut) error {
	if cs == nil || cs == gpio.INVALID {
		return nil
	}
	return cs.Out(gpio.High)
}

func withCS(cs gpio.PinOut, tx func() error) (err error) {
	if cs == nil || cs == gpio.INVALID {
		return tx()
	}
	if err = cs.Out(gpio.Low); err != nil {
		return
	}
	if err = tx(); err != nil {
		_ = cs.Out(gpio.High)
		return
	}
	return cs.Out(gpio.High)
}
