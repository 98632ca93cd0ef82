package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/comalice/holdrepeat"
	"github.com/comalice/holdrepeat/internal/primitives"
	"github.com/comalice/holdrepeat/internal/production"
)

var errNonPositiveTickRate = errors.New("tick rate must be positive")

// settings are read from the environment first; flags override them.
type settings struct {
	HoldTime       time.Duration `env:"HOLDREPEAT_HOLD_TIME"       envDefault:"400ms"`
	RepeatTime     time.Duration `env:"HOLDREPEAT_REPEAT_TIME"     envDefault:"200ms"`
	PressImmediate bool          `env:"HOLDREPEAT_PRESS_IMMEDIATE"`
	TickRate       time.Duration `env:"HOLDREPEAT_TICK_RATE"       envDefault:"16667us"`
	ReleaseAfter   time.Duration `env:"HOLDREPEAT_RELEASE_AFTER"   envDefault:"650ms"`
	Profile        string        `env:"HOLDREPEAT_PROFILE"`
	LogFile        string        `env:"HOLDREPEAT_LOG"`
	Sound          bool          `env:"HOLDREPEAT_SOUND"`
}

func loadSettings(args []string, output io.Writer) (settings, error) {
	var s settings
	if err := env.Parse(&s); err != nil {
		return s, fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet("holdrepeat-demo", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&s.Profile, "config", s.Profile, "profile file (.yaml, .yml or .toml), reloaded when it changes")
	fs.DurationVar(&s.HoldTime, "hold", s.HoldTime, "hold time for the built-in profile")
	fs.DurationVar(&s.RepeatTime, "repeat", s.RepeatTime, "repeat time for the built-in profile")
	fs.BoolVar(&s.PressImmediate, "press-immediate", s.PressImmediate, "also perform on press in the built-in profile")
	fs.DurationVar(&s.TickRate, "tick", s.TickRate, "frame period")
	fs.DurationVar(&s.ReleaseAfter, "release-after", s.ReleaseAfter, "treat a key as released after this long without autorepeat")
	fs.StringVar(&s.LogFile, "log", s.LogFile, "append signal logs to this file")
	fs.BoolVar(&s.Sound, "sound", s.Sound, "beep on every perform")
	if err := fs.Parse(args); err != nil {
		return s, err
	}

	if s.TickRate <= 0 {
		return s, fmt.Errorf("%w: %v", errNonPositiveTickRate, s.TickRate)
	}
	return s, nil
}

func (s settings) interaction() (holdrepeat.Config, error) {
	return holdrepeat.NewBuilder().
		HoldTime(s.HoldTime).
		RepeatTime(s.RepeatTime).
		PressImmediate(s.PressImmediate).
		Build()
}

// profile loads the configured profile file, or builds the arrow-key
// profile from the interaction settings.
func (s settings) profile() (*primitives.ProfileConfig, error) {
	if s.Profile != "" {
		return production.LoadProfile(s.Profile)
	}

	cfg, err := s.interaction()
	if err != nil {
		return nil, err
	}
	p := primitives.NewProfileConfig("arrows").
		AddBinding(primitives.FromInteraction("up", cfg).WithKey("Up")).
		AddBinding(primitives.FromInteraction("down", cfg).WithKey("Down"))
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// openLog returns a logger writing to path, or a discarding logger. The
// terminal belongs to the UI, so nothing is ever logged to stderr.
func openLog(path string) (*log.Logger, func() error, error) {
	if path == "" {
		return log.New(io.Discard, "", 0), func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	return log.New(f, "holdrepeat-demo ", log.LstdFlags|log.Lmicroseconds), f.Close, nil
}
