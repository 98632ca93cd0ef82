package core

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SignalKind identifies one of the three interaction signals.
type SignalKind int

const (
	SignalStarted SignalKind = iota
	SignalPerformed
	SignalCanceled
)

func (k SignalKind) String() string {
	switch k {
	case SignalStarted:
		return "started"
	case SignalPerformed:
		return "performed"
	case SignalCanceled:
		return "canceled"
	default:
		return fmt.Sprintf("SignalKind(%d)", int(k))
	}
}

// Signal is published to listeners for every sink call of an action.
type Signal struct {
	Map      string        `json:"map" yaml:"map"`
	Action   string        `json:"action" yaml:"action"`
	Kind     SignalKind    `json:"kind" yaml:"kind"`
	Episode  uuid.UUID     `json:"episode" yaml:"episode"`
	HeldTime time.Duration `json:"heldTime" yaml:"heldTime"`
	At       time.Time     `json:"at" yaml:"at"`
}

// Listener observes signals. It runs synchronously on the tick goroutine.
type Listener func(Signal)
