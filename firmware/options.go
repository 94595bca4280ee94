package firmware

import "github.com/rs/zerolog"

// DefaultMaxLineLength is the default limit for a single line of a text firmware file.
const DefaultMaxLineLength = 1 << 20

// LoadConfig holds the loader configuration.
type LoadConfig struct {
	// Logger receives debug events for every decoded record
	Logger zerolog.Logger

	// MaxLineLength is the longest line a text loader accepts, in bytes
	MaxLineLength int
}

// DefaultLoadConfig returns the default configuration.
func DefaultLoadConfig() LoadConfig {
	return LoadConfig{
		Logger:        zerolog.Nop(),
		MaxLineLength: DefaultMaxLineLength,
	}
}

// LoadOption is a functional option for configuring a loader.
type LoadOption func(*LoadConfig)

// NewLoadConfig applies opts on top of DefaultLoadConfig.
func NewLoadConfig(opts ...LoadOption) LoadConfig {
	cfg := DefaultLoadConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithLogger sets a logger for the load operation.
//
// Example:
//
//	log := zerolog.New(os.Stderr).Level(zerolog.DebugLevel)
//	img, err := ihex.Load("app.hex", firmware.WithLogger(log))
func WithLogger(logger zerolog.Logger) LoadOption {
	return func(c *LoadConfig) {
		c.Logger = logger
	}
}

// WithMaxLineLength sets the longest accepted line. Values <= 0 are ignored.
//
// Example:
//
//	img, err := srec.LoadReader(r, firmware.WithMaxLineLength(4096))
func WithMaxLineLength(n int) LoadOption {
	return func(c *LoadConfig) {
		if n > 0 {
			c.MaxLineLength = n
		}
	}
}
