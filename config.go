package holdrepeat

import (
	"errors"
	"fmt"
	"math"
	"time"
)

const (
	DefaultHoldTime   = 400 * time.Millisecond
	DefaultRepeatTime = 200 * time.Millisecond

	// ActuationThreshold is the control magnitude at which a control counts as pressed.
	ActuationThreshold = 0.5
)

var (
	ErrNegativeHoldTime      = errors.New("hold time must not be negative")
	ErrNonPositiveRepeatTime = errors.New("repeat time must be positive")
)

// Config holds the three knobs an interaction exposes to its host.
type Config struct {
	HoldTime       time.Duration `json:"holdTime" yaml:"holdTime"`
	RepeatTime     time.Duration `json:"repeatTime" yaml:"repeatTime"`
	PressImmediate bool          `json:"pressImmediate" yaml:"pressImmediate"`
}

// DefaultConfig returns 400ms hold, 200ms repeat, no press-immediate.
func DefaultConfig() Config {
	return Config{
		HoldTime:   DefaultHoldTime,
		RepeatTime: DefaultRepeatTime,
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.HoldTime < 0 {
		return fmt.Errorf("%w: %v", ErrNegativeHoldTime, c.HoldTime)
	}
	if c.RepeatTime <= 0 {
		return fmt.Errorf("%w: %v", ErrNonPositiveRepeatTime, c.RepeatTime)
	}
	return nil
}

// Seconds converts host float seconds into a Duration.
func Seconds(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}
