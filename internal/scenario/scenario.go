// Package scenario replays scripted control input against a hold-repeat
// action, one fixed frame at a time, so the same script always yields the
// same signals.
package scenario

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/comalice/holdrepeat"
	"github.com/comalice/holdrepeat/internal/core"
	"github.com/comalice/holdrepeat/internal/extensibility"
	"github.com/comalice/holdrepeat/internal/production"
	"github.com/comalice/holdrepeat/realtime"
)

var ErrNoSteps = errors.New("scenario has no steps")

// Step applies its markers and value, then advances Frames frames.
type Step struct {
	Value      *float64 `yaml:"value,omitempty"`
	Frames     int      `yaml:"frames,omitempty"`
	DisableMap bool     `yaml:"disableMap,omitempty"`
	EnableMap  bool     `yaml:"enableMap,omitempty"`
	Cancel     bool     `yaml:"cancel,omitempty"`
	Reset      bool     `yaml:"reset,omitempty"`
}

// Scenario is a scripted input session for a single action.
type Scenario struct {
	Name        string            `yaml:"name"`
	FrameDelta  time.Duration     `yaml:"frameDelta"`
	Interaction holdrepeat.Config `yaml:"interaction"`
	Steps       []Step            `yaml:"steps"`
}

// Parse decodes a YAML scenario. Missing interaction fields keep defaults
// and a missing frame delta is 60 FPS.
func Parse(data []byte) (*Scenario, error) {
	s := &Scenario{Interaction: holdrepeat.DefaultConfig()}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if s.FrameDelta <= 0 {
		s.FrameDelta = realtime.DefaultTickRate
	}
	if err := s.Interaction.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q: %w", s.Name, ErrNoSteps)
	}
	return s, nil
}

// Load reads and parses the scenario at path.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(data)
}

// Options tune a run.
type Options struct {
	Logger *log.Logger // when set, every signal is also logged
}

// Run replays s and returns the recorded timeline.
func Run(s *Scenario, opts Options) (*production.Timeline, error) {
	origin := time.Unix(0, 0).UTC()
	now := origin
	timeline := production.NewTimeline(origin)

	rt := realtime.NewRuntime(realtime.Config{TickRate: s.FrameDelta, Logger: opts.Logger})

	mapOpts := []core.Option{
		core.WithListener(timeline.Record),
		core.WithClock(func() time.Time { return now }),
	}
	if opts.Logger != nil {
		mapOpts = append(mapOpts, core.WithSinkWrapper(extensibility.LoggingWrapper(opts.Logger)))
	}
	m := core.NewActionMap(mapName(s), rt, mapOpts...)

	a, err := m.AddAction("action", s.Interaction)
	if err != nil {
		return nil, err
	}

	for _, step := range s.Steps {
		if step.DisableMap {
			m.Disable()
		}
		if step.EnableMap {
			m.Enable()
		}
		if step.Cancel {
			a.Cancel()
		}
		if step.Reset {
			a.Reset()
		}
		if step.Value != nil {
			a.SetValue(*step.Value)
		}
		for i := 0; i < step.Frames; i++ {
			now = now.Add(s.FrameDelta)
			rt.Step(s.FrameDelta)
		}
	}

	return timeline, nil
}

// Report writes the timeline followed by a signal summary.
func Report(w io.Writer, s *Scenario, tl *production.Timeline) error {
	if _, err := fmt.Fprintf(w, "scenario %s (hold=%v repeat=%v pressImmediate=%v frame=%v)\n",
		mapName(s), s.Interaction.HoldTime, s.Interaction.RepeatTime, s.Interaction.PressImmediate, s.FrameDelta); err != nil {
		return err
	}
	if err := tl.Render(w); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "started=%d performed=%d canceled=%d\n",
		tl.Count(core.SignalStarted), tl.Count(core.SignalPerformed), tl.Count(core.SignalCanceled))
	return err
}

func mapName(s *Scenario) string {
	if s.Name == "" {
		return "scenario"
	}
	return s.Name
}
