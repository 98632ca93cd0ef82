package testutil

import (
	"github.com/comalice/holdrepeat"
)

// Signal kinds recorded by Host.
const (
	SignalStarted   = "started"
	SignalPerformed = "performed"
	SignalCanceled  = "canceled"
)

// Record is one signal observed by Host.
type Record struct {
	Kind  string
	Frame int // frames advanced before the signal
}

// Host is a scripted stand-in for the host input framework. It implements
// both holdrepeat.Control and holdrepeat.Sink and tracks the phase the way
// an action would.
type Host struct {
	Value      float64
	MapEnabled bool

	phase   holdrepeat.Phase
	frame   int
	records []Record

	// Hooks run after the matching signal is recorded.
	OnStarted   func()
	OnPerformed func()
	OnCanceled  func()
}

// NewHost returns a released control on an enabled map.
func NewHost() *Host {
	return &Host{MapEnabled: true}
}

func (h *Host) Press()   { h.Value = 1 }
func (h *Host) Release() { h.Value = 0 }

// SetPhase overrides the phase, e.g. to cancel or disable externally.
func (h *Host) SetPhase(p holdrepeat.Phase) { h.phase = p }

// NextFrame marks the start of a new frame for subsequent records.
func (h *Host) NextFrame() { h.frame++ }

func (h *Host) Actuated(threshold float64) bool { return h.Value >= threshold }
func (h *Host) Phase() holdrepeat.Phase         { return h.phase }
func (h *Host) Enabled() bool                   { return h.MapEnabled }

func (h *Host) Started() {
	h.phase = holdrepeat.Started
	h.record(SignalStarted, h.OnStarted)
}

func (h *Host) PerformedAndStayStarted() {
	h.phase = holdrepeat.Started
	h.record(SignalPerformed, h.OnPerformed)
}

func (h *Host) Canceled() {
	h.phase = holdrepeat.Canceled
	h.record(SignalCanceled, h.OnCanceled)
}

func (h *Host) record(kind string, hook func()) {
	h.records = append(h.records, Record{Kind: kind, Frame: h.frame})
	if hook != nil {
		hook()
	}
}

// Records returns a copy of everything recorded so far.
func (h *Host) Records() []Record {
	out := make([]Record, len(h.records))
	copy(out, h.records)
	return out
}

// Count returns how many signals of kind were recorded.
func (h *Host) Count(kind string) int {
	n := 0
	for _, r := range h.records {
		if r.Kind == kind {
			n++
		}
	}
	return n
}

// Frames returns the frame numbers at which kind was recorded.
func (h *Host) Frames(kind string) []int {
	var out []int
	for _, r := range h.records {
		if r.Kind == kind {
			out = append(out, r.Frame)
		}
	}
	return out
}

// Clear drops recorded signals but keeps phase and frame.
func (h *Host) Clear() {
	h.records = h.records[:0]
}
