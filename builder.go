package holdrepeat

import "time"

// Builder provides a fluent API for assembling a Config. Unset fields keep
// the values of DefaultConfig.
type Builder struct {
	cfg Config
}

// NewBuilder creates a builder seeded with DefaultConfig.
func NewBuilder() *Builder {
	return &Builder{cfg: DefaultConfig()}
}

// HoldTime sets how long the control must stay actuated before it is held.
func (b *Builder) HoldTime(d time.Duration) *Builder {
	b.cfg.HoldTime = d
	return b
}

// RepeatTime sets the interval between repeats while held.
func (b *Builder) RepeatTime(d time.Duration) *Builder {
	b.cfg.RepeatTime = d
	return b
}

// HoldSeconds is HoldTime for hosts that keep float seconds.
func (b *Builder) HoldSeconds(s float64) *Builder {
	return b.HoldTime(Seconds(s))
}

// RepeatSeconds is RepeatTime for hosts that keep float seconds.
func (b *Builder) RepeatSeconds(s float64) *Builder {
	return b.RepeatTime(Seconds(s))
}

// PressImmediate toggles the extra Perform on press.
func (b *Builder) PressImmediate(on bool) *Builder {
	b.cfg.PressImmediate = on
	return b
}

// Build validates and returns the configuration.
func (b *Builder) Build() (Config, error) {
	if err := b.cfg.Validate(); err != nil {
		return Config{}, err
	}
	return b.cfg, nil
}
