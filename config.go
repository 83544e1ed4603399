package pvdata

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/stewi1014/pvdata/bytebuf"
	"github.com/stewi1014/pvdata/encio"
	"github.com/stewi1014/pvdata/pvarray"
)

const (
	// EnvLogLevel overrides Config.Log.Level when set.
	EnvLogLevel = "PVDATA_LOG_LEVEL"

	// DefaultBufferSize is the buffer size used when none is configured.
	DefaultBufferSize = 16 * 1024

	// MinBufferSize is the smallest buffer that can hold an encoded size or any single element.
	MinBufferSize = pvarray.MaxWidth
)

// Config defines configuration for Encoders and Decoders.
// The zero value is not valid; start from DefaultConfig or LoadConfig.
type Config struct {
	// ByteOrder is "big", "little" or "native".
	ByteOrder string `toml:"byte_order"`

	// BufferSize is the size in bytes of the transport buffer values are streamed through.
	// Values larger than the buffer are sent in several flushes.
	BufferSize int `toml:"buffer_size"`

	Log LogConfig `toml:"log"`

	// Metrics registers stream counters with the default prometheus registry.
	Metrics bool `toml:"metrics"`
}

// LogConfig configures where soft failures and warnings are logged.
type LogConfig struct {
	Level     string `toml:"level"`
	Timestamp bool   `toml:"timestamp"`
	Console   bool   `toml:"console"`
}

// DefaultConfig returns the configuration used for a nil *Config.
func DefaultConfig() Config {
	return Config{
		ByteOrder:  "big",
		BufferSize: DefaultBufferSize,
		Log: LogConfig{
			Level:     "info",
			Timestamp: true,
		},
	}
}

// LoadConfig reads a TOML config file. Missing keys keep their DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config load failed (%s)", path)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, errors.WithMessagef(err, "config %s", path)
	}
	return cfg, nil
}

// ParseConfig parses TOML config data. Missing keys keep their DefaultConfig values.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "config parse failed")
	}
	applyEnvOverrides(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if lvl := strings.TrimSpace(os.Getenv(EnvLogLevel)); lvl != "" {
		cfg.Log.Level = lvl
	}
}

// Validate checks that the config can be used.
func (c *Config) Validate() error {
	if _, err := bytebuf.ParseByteOrder(c.ByteOrder); err != nil {
		return errors.WithMessage(err, "byte_order")
	}
	if c.BufferSize < MinBufferSize {
		return encio.NewError(
			encio.ErrBadArgument,
			fmt.Sprintf("buffer_size %v is smaller than the minimum of %v", c.BufferSize, MinBufferSize),
			0,
		)
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level)); err != nil {
		return errors.Wrap(err, "log.level")
	}
	return nil
}

// Order returns the configured byte order.
func (c *Config) Order() (bytebuf.ByteOrder, error) {
	return bytebuf.ParseByteOrder(c.ByteOrder)
}

// NewBuffer returns a ByteBuffer of the configured size and byte order.
func (c *Config) NewBuffer() (*bytebuf.ByteBuffer, error) {
	order, err := c.Order()
	if err != nil {
		return nil, err
	}
	return bytebuf.New(c.BufferSize, order)
}

// NewLogger returns a logger writing to w at the configured level.
func (c *Config) NewLogger(w io.Writer) zerolog.Logger {
	if c.Log.Console {
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		}
	}

	level, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}

	ctx := zerolog.New(w).Level(level).With().Str("lib", "pvdata")
	if c.Log.Timestamp {
		ctx = ctx.Timestamp()
	}
	return ctx.Logger()
}

// ConfigureLogging sends pvdata's warnings and soft failure reports to w, as configured by cfg.
// A nil cfg uses DefaultConfig. It should be called once, before any values are used.
func ConfigureLogging(cfg *Config, w io.Writer) {
	cfg = cfg.copyAndFill()
	logger := cfg.NewLogger(w)
	encio.Warnings = logger
	encio.DefaultRequester = encio.NewLogRequester("pvdata", logger)
}

// copyAndFill returns a copy of c, or DefaultConfig if c is nil.
func (c *Config) copyAndFill() *Config {
	config := DefaultConfig()
	if c != nil {
		config = *c
	}
	return &config
}
