package chip8

import (
	"fmt"

	"github.com/retroenv/retrogolib/log"
)

const (
	/// DefaultSpeed is how many instructions run per 60 Hz frame (600
	/// instructions per second).
	///
	DefaultSpeed = 10

	/// MinSpeed and MaxSpeed bound the instructions per frame.
	///
	MinSpeed = 1
	MaxSpeed = 1000
)

/// Config holds the configuration parameters for a CHIP_8 instance.
///
type Config struct {
	/// Speed is the number of instructions executed per frame.
	///
	Speed int

	/// Random is the source of RND bytes. A time seeded source is used
	/// when nil.
	///
	Random RandomSource

	/// Logger receives machine events. A default logger is used when nil.
	///
	Logger *log.Logger
}

/// DefaultConfig returns the settings used when nothing is specified.
///
func DefaultConfig() Config {
	return Config{
		Speed: DefaultSpeed,
	}
}

/// Validate returns an error when the settings aren't valid.
///
func (c *Config) Validate() error {
	if c.Speed < MinSpeed || c.Speed > MaxSpeed {
		return fmt.Errorf("speed must be between %d and %d, got %d", MinSpeed, MaxSpeed, c.Speed)
	}

	return nil
}
