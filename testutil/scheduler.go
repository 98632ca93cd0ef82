package testutil

import (
	"time"

	"github.com/comalice/holdrepeat"
)

// ManualScheduler is a holdrepeat.Scheduler advanced explicitly by tests.
// Handlers run in registration order.
type ManualScheduler struct {
	handlers []holdrepeat.TickHandler

	Registrations   int
	Unregistrations int
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (s *ManualScheduler) Register(h holdrepeat.TickHandler) {
	s.Registrations++
	if s.index(h) >= 0 {
		return
	}
	s.handlers = append(s.handlers, h)
}

func (s *ManualScheduler) Unregister(h holdrepeat.TickHandler) {
	s.Unregistrations++
	if i := s.index(h); i >= 0 {
		s.handlers = append(s.handlers[:i], s.handlers[i+1:]...)
	}
}

// Advance runs one tick. Handlers removed during the tick are skipped.
func (s *ManualScheduler) Advance(delta time.Duration) {
	snapshot := append([]holdrepeat.TickHandler(nil), s.handlers...)
	for _, h := range snapshot {
		if s.index(h) < 0 {
			continue
		}
		h.OnTick(delta)
	}
}

// Registered reports whether h is currently subscribed.
func (s *ManualScheduler) Registered(h holdrepeat.TickHandler) bool {
	return s.index(h) >= 0
}

func (s *ManualScheduler) Len() int { return len(s.handlers) }

func (s *ManualScheduler) index(h holdrepeat.TickHandler) int {
	for i, x := range s.handlers {
		if x == h {
			return i
		}
	}
	return -1
}
