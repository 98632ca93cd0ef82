package production

import (
	"context"
	"sync/atomic"

	"github.com/comalice/holdrepeat/internal/core"
)

// ChannelPublisher forwards signals to a Go channel.
// Publish never blocks; signals are dropped while the channel is full.
type ChannelPublisher struct {
	ch      chan<- core.Signal
	dropped atomic.Uint64
}

// NewChannelPublisher creates a ChannelPublisher with the given output channel.
func NewChannelPublisher(ch chan<- core.Signal) *ChannelPublisher {
	return &ChannelPublisher{ch: ch}
}

func (p *ChannelPublisher) Publish(ctx context.Context, sig core.Signal) error {
	select {
	case p.ch <- sig:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		p.dropped.Add(1)
		return nil
	}
}

// Listener adapts the publisher to core.WithListener.
func (p *ChannelPublisher) Listener() core.Listener {
	return func(sig core.Signal) {
		_ = p.Publish(context.Background(), sig) // never blocks; drops are counted
	}
}

// Dropped returns how many signals were dropped on a full channel.
func (p *ChannelPublisher) Dropped() uint64 {
	return p.dropped.Load()
}

func (p *ChannelPublisher) Close() error {
	close(p.ch)
	return nil
}
