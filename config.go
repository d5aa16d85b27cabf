package sevenseg

import (
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Config is the display configuration.
type Config struct {
	// Cascaded is the number of chained MAX7219 units, each driving 8 digits.
	Cascaded int `yaml:"cascaded"`

	// Port is the SPI bus number.
	Port int `yaml:"port"`

	// Device is the SPI chip select on the bus.
	Device int `yaml:"device"`

	// SpeedHz is the SPI clock speed.
	SpeedHz uint32 `yaml:"speed_hz"`

	// Brightness applied after opening, 0-15. Negative leaves the chip default.
	Brightness int `yaml:"brightness"`

	// Raw uses the spidev node directly instead of the periph.io registry.
	Raw bool `yaml:"raw"`

	// Debug enables debug logging, including every register write.
	Debug bool `yaml:"debug"`

	// Logger receives the device diagnostics, nil discards them. Open sets it
	// to the Controller logger.
	Logger *zerolog.Logger `yaml:"-"`

	// LogFile is where the command line tools write their log, empty for stderr.
	LogFile string `yaml:"log_file"`
}

// DefaultConfig holds the configuration defaults.
var DefaultConfig = Config{
	Cascaded:   1,
	Port:       0,
	Device:     0,
	SpeedHz:    DefaultSPIConfig.SpeedHz,
	Brightness: -1,
}

// LoadConfig reads a YAML configuration file. Keys missing from the file keep
// their DefaultConfig value.
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(b)
}

// ParseConfig parses YAML configuration data on top of DefaultConfig.
func ParseConfig(data []byte) (*Config, error) {
	c := new(Config)
	*c = DefaultConfig
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// SPIConfig returns the SPI bus configuration for c.
func (c *Config) SPIConfig() *SPIConfig {
	return &SPIConfig{
		Bus:     c.Port,
		Device:  c.Device,
		SpeedHz: c.SpeedHz,
		Raw:     c.Raw,
	}
}
