package eeprom

import "time"

// DefaultPageDelay is the pause between page writes, covering the device's
// internal program cycle.
const DefaultPageDelay = 10 * time.Millisecond

// Config holds the programmer configuration.
type Config struct {
	// ProgressCallback is called during flashing to report progress (optional)
	ProgressCallback ProgressCallback

	// Logger is used for logging operations (optional)
	Logger Logger

	// PageDelay is the pause between consecutive page writes
	PageDelay time.Duration
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Logger:    nopLogger{},
		PageDelay: DefaultPageDelay,
	}
}

// Option is a functional option for configuring the Programmer.
type Option func(*Config)

// WithProgressCallback sets a callback function to track flashing progress.
//
// Example:
//
//	prog := eeprom.New(port, dev,
//	    eeprom.WithProgressCallback(func(p eeprom.Progress) {
//	        fmt.Printf("%.1f%% complete\n", p.Percentage)
//	    }),
//	)
func WithProgressCallback(callback ProgressCallback) Option {
	return func(c *Config) {
		c.ProgressCallback = callback
	}
}

// WithLogger sets a logger for the programmer operations.
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		if logger != nil {
			c.Logger = logger
		}
	}
}

// WithPageDelay sets the pause between page writes. Negative values are ignored.
//
// Example:
//
//	prog := eeprom.New(port, dev, eeprom.WithPageDelay(5*time.Millisecond))
func WithPageDelay(d time.Duration) Option {
	return func(c *Config) {
		if d >= 0 {
			c.PageDelay = d
		}
	}
}
