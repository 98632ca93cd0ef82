// Package core provides a minimal host action framework around
// hold-repeat interactions: named actions grouped in maps that can be
// enabled and disabled, with signal fan-out to listeners.
//
// Nothing here is safe for concurrent use. Drive a map from the goroutine
// that runs its scheduler, e.g. through realtime.Runtime.Submit.
package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/comalice/holdrepeat"
	"github.com/comalice/holdrepeat/internal/primitives"
)

var (
	ErrDuplicateAction = errors.New("action already exists")
	ErrUnknownAction   = errors.New("action not found")
)

// Option applies configuration to ActionMap via functional options pattern.
type Option func(*ActionMap)

// WithListener subscribes l to every signal of the map.
func WithListener(l Listener) Option {
	return func(m *ActionMap) {
		m.listeners = append(m.listeners, l)
	}
}

// WithClock sets the timestamp source for signals.
func WithClock(now func() time.Time) Option {
	return func(m *ActionMap) {
		m.now = now
	}
}

// WithSinkWrapper decorates the sink each interaction reports to.
func WithSinkWrapper(wrap func(action string, sink holdrepeat.Sink) holdrepeat.Sink) Option {
	return func(m *ActionMap) {
		m.wrapSink = wrap
	}
}

// ActionMap groups actions that are enabled and disabled together.
type ActionMap struct {
	name      string
	enabled   bool
	scheduler holdrepeat.Scheduler

	actions map[string]*Action
	order   []string

	listeners []Listener
	now       func() time.Time
	wrapSink  func(string, holdrepeat.Sink) holdrepeat.Sink
}

// NewActionMap creates an enabled, empty map whose interactions tick on scheduler.
func NewActionMap(name string, scheduler holdrepeat.Scheduler, opts ...Option) *ActionMap {
	m := &ActionMap{
		name:      name,
		enabled:   true,
		scheduler: scheduler,
		actions:   make(map[string]*Action),
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

func (m *ActionMap) Name() string { return m.name }

// Enabled reports whether the map is enabled.
func (m *ActionMap) Enabled() bool { return m.enabled }

// Enable re-enables the map. Actions resume on their next reading.
func (m *ActionMap) Enable() { m.enabled = true }

// Disable disables the map; held actions cancel on the next tick.
func (m *ActionMap) Disable() { m.enabled = false }

// Subscribe adds a listener after construction.
func (m *ActionMap) Subscribe(l Listener) {
	m.listeners = append(m.listeners, l)
}

// AddAction creates an action with a hold-repeat interaction.
func (m *ActionMap) AddAction(name string, cfg holdrepeat.Config) (*Action, error) {
	if _, exists := m.actions[name]; exists {
		return nil, fmt.Errorf("%s/%s: %w", m.name, name, ErrDuplicateAction)
	}

	a := &Action{m: m, name: name}
	var sink holdrepeat.Sink = a
	if m.wrapSink != nil {
		sink = m.wrapSink(name, a)
	}

	ia, err := holdrepeat.New(cfg, a, sink, m.scheduler)
	if err != nil {
		return nil, fmt.Errorf("%s/%s: %w", m.name, name, err)
	}
	a.interaction = ia

	m.actions[name] = a
	m.order = append(m.order, name)
	return a, nil
}

// Action returns the named action.
func (m *ActionMap) Action(name string) (*Action, error) {
	a, ok := m.actions[name]
	if !ok {
		return nil, fmt.Errorf("%s/%s: %w", m.name, name, ErrUnknownAction)
	}
	return a, nil
}

// Actions returns actions in creation order.
func (m *ActionMap) Actions() []*Action {
	out := make([]*Action, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.actions[name])
	}
	return out
}

// ApplyProfile creates missing actions and reconfigures existing ones.
// The profile is validated first; on error nothing changes.
func (m *ActionMap) ApplyProfile(p *primitives.ProfileConfig) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("apply profile %q: %w", p.ID, err)
	}

	configs := make(map[string]holdrepeat.Config, len(p.Bindings))
	for _, id := range p.BindingIDs() {
		cfg, err := p.Bindings[id].Interaction()
		if err != nil {
			return fmt.Errorf("apply profile %q: %w", p.ID, err)
		}
		configs[id] = cfg
	}

	for _, id := range p.BindingIDs() {
		if a, ok := m.actions[id]; ok {
			if err := a.interaction.SetConfig(configs[id]); err != nil {
				return fmt.Errorf("apply profile %q: %w", p.ID, err)
			}
			continue
		}
		if _, err := m.AddAction(id, configs[id]); err != nil {
			return fmt.Errorf("apply profile %q: %w", p.ID, err)
		}
	}
	return nil
}

// ResetAll force-cancels every action's episode.
func (m *ActionMap) ResetAll() {
	for _, a := range m.Actions() {
		a.Reset()
	}
}

func (m *ActionMap) publish(sig Signal) {
	sig.Map = m.name
	sig.At = m.now()
	for _, l := range m.listeners {
		l(sig)
	}
}
