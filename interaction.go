package holdrepeat

import (
	"errors"
	"fmt"
	"time"
)

var ErrMissingCollaborator = errors.New("control, sink and scheduler are required")

// Control is the host's view of the bound control and its action.
type Control interface {
	// Actuated reports whether the control magnitude is at or above threshold.
	Actuated(threshold float64) bool
	Phase() Phase
	// Enabled reports whether the owning action map is enabled.
	Enabled() bool
}

// Sink receives the lifecycle signals of an interaction.
type Sink interface {
	Started()
	PerformedAndStayStarted()
	Canceled()
}

// TickHandler is called once per host frame with the frame's elapsed time.
type TickHandler interface {
	OnTick(delta time.Duration)
}

// Scheduler is the per-tick update source. Register must be idempotent
// per handler and Unregister of an absent handler must be a no-op.
type Scheduler interface {
	Register(h TickHandler)
	Unregister(h TickHandler)
}

// Interaction emits Perform signals after a control has been held for
// HoldTime and every RepeatTime after that, optionally also on press.
//
// An Interaction is not safe for concurrent use. The host must call
// Process, OnTick and Reset from a single goroutine.
type Interaction struct {
	cfg       Config
	control   Control
	sink      Sink
	scheduler Scheduler

	// Episode state, zeroed on cancel.
	heldTime         time.Duration
	nextEventTime    time.Duration
	firstRepeatSent  bool
	performedOnPress bool

	active    bool
	canceling bool
}

// New validates cfg and wires the interaction to its host collaborators.
func New(cfg Config, control Control, sink Sink, scheduler Scheduler) (*Interaction, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("hold-repeat interaction: %w", err)
	}
	if control == nil || sink == nil || scheduler == nil {
		return nil, ErrMissingCollaborator
	}
	return &Interaction{
		cfg:       cfg,
		control:   control,
		sink:      sink,
		scheduler: scheduler,
	}, nil
}

// Process handles a new control reading. A press while no episode is in
// progress starts one; anything else is left to OnTick.
func (i *Interaction) Process() {
	if i.control.Phase().InProgress() || !i.control.Actuated(ActuationThreshold) {
		return
	}

	i.heldTime = 0
	i.nextEventTime = 0
	i.firstRepeatSent = false
	i.performedOnPress = false

	i.sink.Started()
	if i.cfg.PressImmediate {
		i.sink.PerformedAndStayStarted()
		i.performedOnPress = true
	}

	// Unregister first so a repeated start never leaves two entries.
	i.scheduler.Unregister(i)
	i.scheduler.Register(i)
	i.active = true
}

// OnTick advances the episode by delta. At most one Perform is emitted
// per call, and none on the frame that already fired on press.
func (i *Interaction) OnTick(delta time.Duration) {
	actuated := i.control.Actuated(ActuationThreshold)
	phase := i.control.Phase()

	if delta > 0 {
		i.heldTime += delta
	}
	firedOnPress := i.performedOnPress
	i.performedOnPress = false

	if phase == Canceled || phase == Disabled || !i.control.Enabled() || (!actuated && phase.InProgress()) {
		i.cancel()
		return
	}

	if i.heldTime < i.cfg.HoldTime || firedOnPress {
		return
	}

	if !i.firstRepeatSent {
		i.sink.PerformedAndStayStarted()
		i.nextEventTime = i.heldTime + i.cfg.RepeatTime
		i.firstRepeatSent = true
		return
	}

	if i.heldTime >= i.nextEventTime {
		i.sink.PerformedAndStayStarted()
		i.nextEventTime = i.heldTime + i.cfg.RepeatTime
	}
}

// Reset force-terminates the current episode.
func (i *Interaction) Reset() {
	i.cancel()
}

func (i *Interaction) cancel() {
	if i.canceling {
		return
	}

	i.scheduler.Unregister(i)
	i.active = false

	i.heldTime = 0
	i.nextEventTime = 0
	i.firstRepeatSent = false
	i.performedOnPress = false

	if i.control.Phase() != Canceled {
		i.emitCanceled()
	}
}

// emitCanceled holds the guard for the duration of the sink call; the
// sink may reach Reset again before it returns.
func (i *Interaction) emitCanceled() {
	i.canceling = true
	defer func() { i.canceling = false }()
	i.sink.Canceled()
}

// SetConfig replaces the configuration. An episode in progress picks the
// new values up on its next tick.
func (i *Interaction) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("hold-repeat interaction: %w", err)
	}
	i.cfg = cfg
	return nil
}

func (i *Interaction) Config() Config { return i.cfg }

// HeldTime is the time accumulated in the current episode.
func (i *Interaction) HeldTime() time.Duration { return i.heldTime }

// NextEventTime is the HeldTime threshold of the next repeat.
func (i *Interaction) NextEventTime() time.Duration { return i.nextEventTime }

func (i *Interaction) FirstRepeatSent() bool { return i.firstRepeatSent }

// Active reports whether the interaction is registered for ticks.
func (i *Interaction) Active() bool { return i.active }
