package primitives

import (
	"fmt"

	"github.com/comalice/holdrepeat"
)

// BindingConfig holds the interaction parameters of one bound action.
// Nil times fall back to holdrepeat defaults.
type BindingConfig struct {
	ID             string   `json:"id,omitempty" yaml:"id,omitempty" toml:"id,omitempty"`
	Key            string   `json:"key,omitempty" yaml:"key,omitempty" toml:"key,omitempty"`
	HoldTime       *float64 `json:"holdTime,omitempty" yaml:"holdTime,omitempty" toml:"holdTime,omitempty"`
	RepeatTime     *float64 `json:"repeatTime,omitempty" yaml:"repeatTime,omitempty" toml:"repeatTime,omitempty"`
	PressImmediate bool     `json:"pressImmediate,omitempty" yaml:"pressImmediate,omitempty" toml:"pressImmediate,omitempty"`
}

// NewBindingConfig creates a binding with default timing.
func NewBindingConfig(id string) *BindingConfig {
	return &BindingConfig{ID: id}
}

// WithKey sets the key or control path the binding listens to.
func (b *BindingConfig) WithKey(key string) *BindingConfig {
	b.Key = key
	return b
}

// WithHoldTime sets the hold time in seconds.
func (b *BindingConfig) WithHoldTime(seconds float64) *BindingConfig {
	b.HoldTime = &seconds
	return b
}

// WithRepeatTime sets the repeat interval in seconds.
func (b *BindingConfig) WithRepeatTime(seconds float64) *BindingConfig {
	b.RepeatTime = &seconds
	return b
}

// WithPressImmediate toggles the perform on press.
func (b *BindingConfig) WithPressImmediate(on bool) *BindingConfig {
	b.PressImmediate = on
	return b
}

// Interaction converts the binding into a validated interaction config.
func (b *BindingConfig) Interaction() (holdrepeat.Config, error) {
	builder := holdrepeat.NewBuilder().PressImmediate(b.PressImmediate)
	if b.HoldTime != nil {
		builder.HoldSeconds(*b.HoldTime)
	}
	if b.RepeatTime != nil {
		builder.RepeatSeconds(*b.RepeatTime)
	}
	cfg, err := builder.Build()
	if err != nil {
		return holdrepeat.Config{}, fmt.Errorf("binding %q: %w", b.ID, err)
	}
	return cfg, nil
}

// Validate checks that the binding has an ID and valid timing.
func (b *BindingConfig) Validate() error {
	if b.ID == "" {
		return ErrMissingBindingID
	}
	_, err := b.Interaction()
	return err
}

// FromInteraction builds a binding from an interaction config.
func FromInteraction(id string, cfg holdrepeat.Config) *BindingConfig {
	return NewBindingConfig(id).
		WithHoldTime(cfg.HoldTime.Seconds()).
		WithRepeatTime(cfg.RepeatTime.Seconds()).
		WithPressImmediate(cfg.PressImmediate)
}
