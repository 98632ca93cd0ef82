package primitives

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrMissingProfileID = errors.New("profile ID is required")
	ErrMissingBindingID = errors.New("binding ID is required")
	ErrNoBindings       = errors.New("bindings map is required and cannot be empty")
	ErrDuplicateKey     = errors.New("key bound more than once")
)

// ProfileConfig is a named set of bindings.
type ProfileConfig struct {
	Version  string                    `json:"version,omitempty" yaml:"version,omitempty" toml:"version,omitempty"`
	ID       string                    `json:"id" yaml:"id" toml:"id"`
	Bindings map[string]*BindingConfig `json:"bindings" yaml:"bindings" toml:"bindings"`
}

// NewProfileConfig creates an empty profile.
func NewProfileConfig(id string) *ProfileConfig {
	return &ProfileConfig{
		ID:       id,
		Bindings: make(map[string]*BindingConfig),
	}
}

// AddBinding adds b under its ID, replacing any previous binding.
func (p *ProfileConfig) AddBinding(b *BindingConfig) *ProfileConfig {
	if p.Bindings == nil {
		p.Bindings = make(map[string]*BindingConfig)
	}
	p.Bindings[b.ID] = b
	return p
}

// Normalize fills empty binding IDs from their map keys.
func (p *ProfileConfig) Normalize() {
	for id, b := range p.Bindings {
		if b != nil && b.ID == "" {
			b.ID = id
		}
	}
}

// Validate validates the profile:
// - Non-empty ID and at least one binding
// - Binding IDs match their map keys
// - Each binding has valid timing
// - Keys are unique across bindings
func (p *ProfileConfig) Validate() error {
	if p.ID == "" {
		return ErrMissingProfileID
	}
	if len(p.Bindings) == 0 {
		return ErrNoBindings
	}

	keys := make(map[string]string)
	for _, id := range p.BindingIDs() {
		b := p.Bindings[id]
		if b == nil {
			return fmt.Errorf("binding %q: %w", id, ErrMissingBindingID)
		}
		if b.ID != id {
			return fmt.Errorf("binding %q has mismatched ID %q", id, b.ID)
		}
		if err := b.Validate(); err != nil {
			return fmt.Errorf("binding %q validation failed: %w", id, err)
		}
		if b.Key == "" {
			continue
		}
		if other, dup := keys[b.Key]; dup {
			return fmt.Errorf("key %q on %q and %q: %w", b.Key, other, id, ErrDuplicateKey)
		}
		keys[b.Key] = id
	}

	return nil
}

// BindingIDs returns binding IDs in sorted order.
func (p *ProfileConfig) BindingIDs() []string {
	ids := make([]string, 0, len(p.Bindings))
	for id := range p.Bindings {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// BindingForKey returns the binding listening to key, or nil.
func (p *ProfileConfig) BindingForKey(key string) *BindingConfig {
	for _, id := range p.BindingIDs() {
		if b := p.Bindings[id]; b != nil && b.Key == key {
			return b
		}
	}
	return nil
}
