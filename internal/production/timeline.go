package production

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/comalice/holdrepeat/internal/core"
)

// Timeline collects signals and renders them relative to an origin.
type Timeline struct {
	origin  time.Time
	signals []core.Signal
}

// NewTimeline creates a timeline whose offsets are measured from origin.
func NewTimeline(origin time.Time) *Timeline {
	return &Timeline{origin: origin}
}

// Record appends a signal. It satisfies core.Listener.
func (t *Timeline) Record(sig core.Signal) {
	t.signals = append(t.signals, sig)
}

// Signals returns the recorded signals.
func (t *Timeline) Signals() []core.Signal {
	return t.signals
}

// Count returns how many signals of kind were recorded.
func (t *Timeline) Count(kind core.SignalKind) int {
	n := 0
	for _, s := range t.signals {
		if s.Kind == kind {
			n++
		}
	}
	return n
}

// Render writes one aligned line per signal:
//
//	+0.400s  gameplay/scroll  performed  held=0.400s
func (t *Timeline) Render(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, s := range t.signals {
		_, err := fmt.Fprintf(tw, "+%.3fs\t%s/%s\t%s\theld=%.3fs\n",
			s.At.Sub(t.origin).Seconds(), s.Map, s.Action, s.Kind, s.HeldTime.Seconds())
		if err != nil {
			return err
		}
	}
	return tw.Flush()
}
