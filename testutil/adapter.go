package testutil

import (
	"time"

	"github.com/comalice/holdrepeat"
	"github.com/comalice/holdrepeat/realtime"
)

// SchedulerAdapter lets the same scenario run against every scheduler
// implementation.
type SchedulerAdapter interface {
	holdrepeat.Scheduler
	Advance(delta time.Duration)
	Len() int
}

// NewManualAdapter wraps a fresh ManualScheduler.
func NewManualAdapter() SchedulerAdapter {
	return NewManualScheduler()
}

// RealtimeAdapter drives a realtime.Runtime one synchronous step at a time.
type RealtimeAdapter struct {
	*realtime.Runtime
}

// NewRealtimeAdapter creates a stepped runtime with the given tick rate.
func NewRealtimeAdapter(tickRate time.Duration) *RealtimeAdapter {
	return &RealtimeAdapter{
		Runtime: realtime.NewRuntime(realtime.Config{TickRate: tickRate}),
	}
}

func (a *RealtimeAdapter) Advance(delta time.Duration) {
	a.Runtime.Step(delta)
}

// Adapters returns one of each scheduler for table-driven tests.
func Adapters() map[string]func() SchedulerAdapter {
	return map[string]func() SchedulerAdapter{
		"Manual":   NewManualAdapter,
		"Realtime": newRealtimeAdapter,
	}
}

func newRealtimeAdapter() SchedulerAdapter {
	return NewRealtimeAdapter(100 * time.Millisecond)
}

// Drive advances s by delta n times, marking a new frame on h before each
// tick.
func Drive(s SchedulerAdapter, h *Host, delta time.Duration, n int) {
	for k := 0; k < n; k++ {
		h.NextFrame()
		s.Advance(delta)
	}
}
