package extensibility

import (
	"context"
	"fmt"
	"time"
)

// Reading is one control sample addressed to an action.
type Reading struct {
	Action string
	Value  float64
}

// Submitter queues work onto the goroutine that owns the interactions.
// realtime.Runtime implements it.
type Submitter interface {
	Submit(fn func()) error
}

// ChannelSource pumps readings produced on other goroutines onto the tick
// goroutine.
type ChannelSource struct {
	ch <-chan Reading
}

// NewChannelSource creates a ChannelSource reading from ch.
// The channel should be buffered if producers are bursty.
func NewChannelSource(ch <-chan Reading) *ChannelSource {
	return &ChannelSource{ch: ch}
}

// Run forwards readings to apply via sub until ctx is done or the channel
// closes. A rejected submission stops the pump and is returned.
func (s *ChannelSource) Run(ctx context.Context, sub Submitter, apply func(Reading)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case r, ok := <-s.ch:
			if !ok {
				return nil
			}
			if err := sub.Submit(func() { apply(r) }); err != nil {
				return fmt.Errorf("submit reading for %q: %w", r.Action, err)
			}
		}
	}
}

// AutoRepeatLatch turns a stream of key autorepeat events into a held
// state for inputs that never report a release. The key is held from the
// first event until no event arrives for Timeout.
type AutoRepeatLatch struct {
	Timeout time.Duration

	last time.Time
	held bool
}

// Touch records an event at now and reports whether it began a hold.
func (l *AutoRepeatLatch) Touch(now time.Time) bool {
	l.last = now
	if l.held {
		return false
	}
	l.held = true
	return true
}

// Expire releases the latch if Timeout has passed since the last event
// and reports whether it did.
func (l *AutoRepeatLatch) Expire(now time.Time) bool {
	if !l.held || now.Sub(l.last) < l.Timeout {
		return false
	}
	l.held = false
	return true
}

// Held reports whether the key is considered down.
func (l *AutoRepeatLatch) Held() bool { return l.held }
