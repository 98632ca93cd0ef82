package core

import (
	"math"

	"github.com/google/uuid"

	"github.com/comalice/holdrepeat"
)

// Action is one bound control with its interaction. It is the interaction's
// Control and, unless wrapped, its Sink.
type Action struct {
	m           *ActionMap
	name        string
	value       float64
	phase       holdrepeat.Phase
	disabled    bool
	episode     uuid.UUID
	interaction *holdrepeat.Interaction
}

var (
	_ holdrepeat.Control = (*Action)(nil)
	_ holdrepeat.Sink    = (*Action)(nil)
)

func (a *Action) Name() string                         { return a.name }
func (a *Action) Value() float64                       { return a.value }
func (a *Action) Interaction() *holdrepeat.Interaction { return a.interaction }

// Episode is the ID of the episode in progress, or uuid.Nil.
func (a *Action) Episode() uuid.UUID { return a.episode }

// SetValue records a new control reading and lets the interaction react.
// Readings are ignored while the action or its map is disabled.
func (a *Action) SetValue(v float64) {
	a.value = v
	if a.disabled || !a.m.enabled {
		return
	}
	a.interaction.Process()
}

// Press and Release are SetValue(1) and SetValue(0).
func (a *Action) Press()   { a.SetValue(1) }
func (a *Action) Release() { a.SetValue(0) }

// Cancel cancels the action from outside the interaction. The interaction
// notices on its next tick and ends the episode without a second signal.
func (a *Action) Cancel() {
	if a.phase.InProgress() {
		a.phase = holdrepeat.Canceled
		a.publish(SignalCanceled)
		a.episode = uuid.Nil
	}
}

// Reset force-terminates the interaction's episode.
func (a *Action) Reset() {
	a.interaction.Reset()
}

// Disable disables just this action.
func (a *Action) Disable() { a.disabled = true }

// Enable re-enables the action.
func (a *Action) Enable() { a.disabled = false }

// Actuated reports whether the control magnitude reaches threshold.
func (a *Action) Actuated(threshold float64) bool {
	return math.Abs(a.value) >= threshold
}

func (a *Action) Phase() holdrepeat.Phase {
	if a.disabled {
		return holdrepeat.Disabled
	}
	return a.phase
}

// Enabled reports whether the owning map is enabled.
func (a *Action) Enabled() bool { return a.m.enabled }

func (a *Action) Started() {
	a.phase = holdrepeat.Started
	a.episode = uuid.New()
	a.publish(SignalStarted)
}

func (a *Action) PerformedAndStayStarted() {
	a.phase = holdrepeat.Started
	a.publish(SignalPerformed)
}

func (a *Action) Canceled() {
	a.phase = holdrepeat.Canceled
	a.publish(SignalCanceled)
	a.episode = uuid.Nil
}

func (a *Action) publish(kind SignalKind) {
	a.m.publish(Signal{
		Action:   a.name,
		Kind:     kind,
		Episode:  a.episode,
		HeldTime: a.interaction.HeldTime(),
	})
}
