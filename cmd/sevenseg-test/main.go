package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
	"periph.io/x/host/v3"

	"github.com/fryntiz/sevenseg"
)

const usage = `Usage: %s [flags] <command> [args]

Commands:
  date              show the current date
  time              show the current time
  clock             show the time, updated every second
  fixed <text>      show text without animation
  scroll <text>     scroll text through a viewport
  scroll2 <text>    scroll text by slicing it
  brightness <n>    set the brightness, 0-15

Flags:
`

func main() {
	configFlag := flag.String("config", "", "YAML configuration file")
	cascadedFlag := flag.Int("cascaded", 0, "Number of cascaded MAX7219 units (default from config)")
	portFlag := flag.Int("port", -1, "SPI port (default from config)")
	deviceFlag := flag.Int("device", -1, "SPI device (default from config)")
	speedFlag := flag.Uint("speed", 0, "SPI speed in Hz (default from config)")
	rawFlag := flag.Bool("raw", false, "Use the spidev node directly")
	delayFlag := flag.Duration("delay", time.Second, "Delay between scroll steps")
	logFlag := flag.String("log", "", "Log file (default: stderr)")
	debugFlag := flag.Bool("debug", false, "Enable debug logging")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), usage, os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	config := new(sevenseg.Config)
	*config = sevenseg.DefaultConfig
	if *configFlag != "" {
		var err error
		if config, err = sevenseg.LoadConfig(*configFlag); err != nil {
			fatal(err)
		}
	}
	if *cascadedFlag > 0 {
		config.Cascaded = *cascadedFlag
	}
	if *portFlag >= 0 {
		config.Port = *portFlag
	}
	if *deviceFlag >= 0 {
		config.Device = *deviceFlag
	}
	if *speedFlag > 0 {
		config.SpeedHz = uint32(*speedFlag)
	}
	if *rawFlag {
		config.Raw = true
	}
	if *debugFlag {
		config.Debug = true
	}
	if *logFlag != "" {
		config.LogFile = *logFlag
	}

	logger := newLogger(config)

	if !config.Raw {
		if _, err := host.Init(); err != nil {
			fatal(err)
		}
	}

	display, err := sevenseg.Open(config, sevenseg.WithLogger(logger))
	if err != nil {
		fatal(err)
	}
	defer display.Close()
	logger.Info().Str("device", fmt.Sprint(display.Device())).Msg("using display")

	if err = run(display, flag.Arg(0), flag.Args()[1:], *delayFlag); err != nil {
		display.Close()
		fatal(err)
	}
}

func newLogger(config *sevenseg.Config) zerolog.Logger {
	var w io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
	if config.LogFile != "" {
		w = &lumberjack.Logger{
			Filename:   config.LogFile,
			MaxSize:    1, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
	}
	level := zerolog.InfoLevel
	if config.Debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

func run(display *sevenseg.Controller, command string, args []string, delay time.Duration) error {
	text := strings.Join(args, " ")
	switch command {
	case "date":
		return display.ShowDate()
	case "time":
		return display.ShowTime()
	case "clock":
		return clock(display)
	case "fixed":
		return display.ShowFixed(text)
	case "scroll":
		return display.ScrollOnce(text, delay)
	case "scroll2":
		return display.ScrollOnce2(text, delay)
	case "brightness":
		if len(args) != 1 {
			return fmt.Errorf("brightness takes one argument, got %d", len(args))
		}
		level, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid brightness %q: %w", args[0], err)
		}
		return display.SetBrightness(level)
	default:
		return fmt.Errorf("unsupported command %q", command)
	}
}

func clock(display *sevenseg.Controller) error {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	fmt.Println("hit control-c to stop...")
	for {
		if err := display.ShowTime(); err != nil {
			return err
		}
		select {
		case <-ticker.C:
		case <-interrupt:
			return display.Clear()
		}
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}
