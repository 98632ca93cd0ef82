// Package benchmarks provides shared helpers for benchmark tests.
package benchmarks

import (
	"fmt"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/comalice/holdrepeat"
	"github.com/comalice/holdrepeat/internal/core"
	"github.com/comalice/holdrepeat/internal/primitives"
)

// GenProfile creates a profile with n bindings on keys k0..kn-1.
func GenProfile(n int) *primitives.ProfileConfig {
	if n < 1 {
		n = 1
	}
	p := primitives.NewProfileConfig(fmt.Sprintf("bench_%d", n))
	for i := 0; i < n; i++ {
		p.AddBinding(primitives.NewBindingConfig(fmt.Sprintf("a%d", i)).
			WithKey(fmt.Sprintf("k%d", i)).
			WithHoldTime(0.4).
			WithRepeatTime(0.2))
	}
	return p
}

// GenProfileYAML returns GenProfile(n) encoded as YAML.
func GenProfileYAML(n int) ([]byte, error) {
	return yaml.Marshal(GenProfile(n))
}

// GenProfileTOML returns GenProfile(n) encoded as TOML.
func GenProfileTOML(n int) ([]byte, error) {
	return toml.Marshal(GenProfile(n))
}

// NewHeldMap creates a map with n actions that are all pressed.
func NewHeldMap(n int, s holdrepeat.Scheduler) (*core.ActionMap, error) {
	m := core.NewActionMap("bench", s, core.WithClock(func() time.Time { return time.Time{} }))
	if err := m.ApplyProfile(GenProfile(n)); err != nil {
		return nil, err
	}
	for _, a := range m.Actions() {
		a.Press()
	}
	return m, nil
}

// nopControl is always actuated and in no phase.
type nopControl struct{ phase holdrepeat.Phase }

func (c *nopControl) Actuated(float64) bool   { return true }
func (c *nopControl) Phase() holdrepeat.Phase { return c.phase }
func (c *nopControl) Enabled() bool           { return true }

// nopSink tracks the phase and counts performs.
type nopSink struct {
	control  *nopControl
	performs int
}

func (s *nopSink) Started()                 { s.control.phase = holdrepeat.Started }
func (s *nopSink) PerformedAndStayStarted() { s.performs++ }
func (s *nopSink) Canceled()                { s.control.phase = holdrepeat.Canceled }

// nopScheduler accepts registrations and never ticks.
type nopScheduler struct{}

func (nopScheduler) Register(holdrepeat.TickHandler)   {}
func (nopScheduler) Unregister(holdrepeat.TickHandler) {}
