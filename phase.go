package holdrepeat

import "fmt"

// Phase is the lifecycle stage of the action an interaction drives.
// The host tracks it; the interaction only reads it.
type Phase int

const (
	NotStarted Phase = iota
	Started
	Performed
	Canceled
	Disabled
)

var phaseNames = [...]string{
	NotStarted: "NotStarted",
	Started:    "Started",
	Performed:  "Performed",
	Canceled:   "Canceled",
	Disabled:   "Disabled",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseNames[p]
}

// InProgress reports whether a hold episode owns the phase.
func (p Phase) InProgress() bool {
	return p == Started || p == Performed
}

// ParsePhase returns the phase with the given name.
func ParsePhase(s string) (Phase, error) {
	for i, name := range phaseNames {
		if name == s {
			return Phase(i), nil
		}
	}
	return NotStarted, fmt.Errorf("unknown phase %q", s)
}
