package holdrepeat_test

import (
	"errors"
	"testing"
	"time"

	"github.com/comalice/holdrepeat"
	"github.com/comalice/holdrepeat/testutil"
)

const frame = 100 * time.Millisecond

func newInteraction(t *testing.T, cfg holdrepeat.Config, s holdrepeat.Scheduler) (*holdrepeat.Interaction, *testutil.Host) {
	t.Helper()
	host := testutil.NewHost()
	ia, err := holdrepeat.New(cfg, host, host, s)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return ia, host
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// TestHoldThenRepeat tests the 0.4s hold / 0.2s repeat scenario at 0.1s frames
func TestHoldThenRepeat(t *testing.T) {
	for name, newAdapter := range testutil.Adapters() {
		t.Run(name, func(t *testing.T) {
			s := newAdapter()
			ia, host := newInteraction(t, holdrepeat.DefaultConfig(), s)

			host.Press()
			ia.Process()
			if host.Count(testutil.SignalStarted) != 1 {
				t.Fatalf("Expected 1 start, got %d", host.Count(testutil.SignalStarted))
			}
			if !ia.Active() {
				t.Fatal("Expected interaction to be active after press")
			}

			testutil.Drive(s, host, frame, 3)
			if host.Count(testutil.SignalPerformed) != 0 {
				t.Fatalf("Expected no perform before hold time, got %d", host.Count(testutil.SignalPerformed))
			}

			testutil.Drive(s, host, frame, 1)
			if ia.NextEventTime() != 600*time.Millisecond {
				t.Errorf("Expected next event at 600ms, got %v", ia.NextEventTime())
			}

			testutil.Drive(s, host, frame, 4)
			want := []int{4, 6, 8}
			if got := host.Frames(testutil.SignalPerformed); !equalInts(got, want) {
				t.Errorf("Expected performs at frames %v, got %v", want, got)
			}
			if ia.HeldTime() != 800*time.Millisecond {
				t.Errorf("Expected held time 800ms, got %v", ia.HeldTime())
			}
			if host.Phase() != holdrepeat.Started {
				t.Errorf("Expected phase Started while held, got %v", host.Phase())
			}
		})
	}
}

// TestPressImmediate tests the extra perform on press
func TestPressImmediate(t *testing.T) {
	for name, newAdapter := range testutil.Adapters() {
		t.Run(name, func(t *testing.T) {
			s := newAdapter()
			cfg := holdrepeat.DefaultConfig()
			cfg.PressImmediate = true
			ia, host := newInteraction(t, cfg, s)

			host.Press()
			ia.Process()
			if got := host.Frames(testutil.SignalPerformed); !equalInts(got, []int{0}) {
				t.Fatalf("Expected one perform on press, got %v", got)
			}

			testutil.Drive(s, host, frame, 8)
			want := []int{0, 4, 6, 8}
			if got := host.Frames(testutil.SignalPerformed); !equalInts(got, want) {
				t.Errorf("Expected performs at frames %v, got %v", want, got)
			}
		})
	}
}

// TestPressImmediateReleasedEarly tests that the press perform does not depend on holding
func TestPressImmediateReleasedEarly(t *testing.T) {
	s := testutil.NewManualScheduler()
	cfg := holdrepeat.DefaultConfig()
	cfg.PressImmediate = true
	ia, host := newInteraction(t, cfg, s)

	host.Press()
	ia.Process()
	testutil.Drive(s, host, frame, 1)
	host.Release()
	ia.Process()
	testutil.Drive(s, host, frame, 5)

	if n := host.Count(testutil.SignalPerformed); n != 1 {
		t.Errorf("Expected exactly 1 perform, got %d", n)
	}
	if n := host.Count(testutil.SignalCanceled); n != 1 {
		t.Errorf("Expected exactly 1 cancel, got %d", n)
	}
}

// TestZeroHoldTime tests repeat starting on the first tick
func TestZeroHoldTime(t *testing.T) {
	s := testutil.NewManualScheduler()
	ia, host := newInteraction(t, holdrepeat.Config{RepeatTime: 2 * frame}, s)

	host.Press()
	ia.Process()
	testutil.Drive(s, host, frame, 5)

	want := []int{1, 3, 5}
	if got := host.Frames(testutil.SignalPerformed); !equalInts(got, want) {
		t.Errorf("Expected performs at frames %v, got %v", want, got)
	}
}

// TestOnePerformPerFrame tests that a press perform defers the hold perform
func TestOnePerformPerFrame(t *testing.T) {
	s := testutil.NewManualScheduler()
	ia, host := newInteraction(t, holdrepeat.Config{RepeatTime: 2 * frame, PressImmediate: true}, s)

	host.Press()
	ia.Process()
	testutil.Drive(s, host, frame, 4)

	want := []int{0, 2, 4}
	if got := host.Frames(testutil.SignalPerformed); !equalInts(got, want) {
		t.Errorf("Expected performs at frames %v, got %v", want, got)
	}
}

// TestLargeDelta tests that a long frame fires once instead of catching up
func TestLargeDelta(t *testing.T) {
	s := testutil.NewManualScheduler()
	ia, host := newInteraction(t, holdrepeat.DefaultConfig(), s)

	host.Press()
	ia.Process()
	testutil.Drive(s, host, 5*time.Second, 1)
	if n := host.Count(testutil.SignalPerformed); n != 1 {
		t.Fatalf("Expected 1 perform after a 5s frame, got %d", n)
	}
	if ia.NextEventTime() != 5*time.Second+holdrepeat.DefaultRepeatTime {
		t.Errorf("Expected next event relative to held time, got %v", ia.NextEventTime())
	}

	testutil.Drive(s, host, 5*time.Second, 1)
	if n := host.Count(testutil.SignalPerformed); n != 2 {
		t.Errorf("Expected 2 performs after two long frames, got %d", n)
	}
}

// TestRepeatSpacingUnderJitter tests hold and repeat thresholds with uneven frames
func TestRepeatSpacingUnderJitter(t *testing.T) {
	s := testutil.NewManualScheduler()
	cfg := holdrepeat.DefaultConfig()
	ia, host := newInteraction(t, cfg, s)

	var fired []time.Duration
	host.OnPerformed = func() { fired = append(fired, ia.HeldTime()) }

	deltas := []time.Duration{16 * time.Millisecond, 33 * time.Millisecond, 7 * time.Millisecond, 41 * time.Millisecond}
	var maxDelta time.Duration
	for _, d := range deltas {
		maxDelta = max(maxDelta, d)
	}

	host.Press()
	ia.Process()
	for i := 0; i < 400; i++ {
		host.NextFrame()
		s.Advance(deltas[i%len(deltas)])
	}

	if len(fired) < 10 {
		t.Fatalf("Expected many performs, got %d", len(fired))
	}
	if fired[0] < cfg.HoldTime || fired[0] >= cfg.HoldTime+maxDelta {
		t.Errorf("First perform at %v, want within [%v, %v)", fired[0], cfg.HoldTime, cfg.HoldTime+maxDelta)
	}
	for i := 1; i < len(fired); i++ {
		gap := fired[i] - fired[i-1]
		if gap < cfg.RepeatTime || gap >= cfg.RepeatTime+maxDelta {
			t.Errorf("Perform %d gap %v, want within [%v, %v)", i, gap, cfg.RepeatTime, cfg.RepeatTime+maxDelta)
		}
	}
}

// TestReleaseCancels tests release ending the episode and a fresh press restarting it
func TestReleaseCancels(t *testing.T) {
	for name, newAdapter := range testutil.Adapters() {
		t.Run(name, func(t *testing.T) {
			s := newAdapter()
			ia, host := newInteraction(t, holdrepeat.DefaultConfig(), s)

			host.Press()
			ia.Process()
			testutil.Drive(s, host, frame, 5)
			if !ia.FirstRepeatSent() {
				t.Fatal("Expected first repeat to be sent")
			}

			host.Release()
			ia.Process()
			testutil.Drive(s, host, frame, 3)

			if n := host.Count(testutil.SignalCanceled); n != 1 {
				t.Fatalf("Expected 1 cancel, got %d", n)
			}
			if ia.HeldTime() != 0 || ia.FirstRepeatSent() || ia.Active() {
				t.Errorf("Expected episode state reset, got held=%v first=%v active=%v", ia.HeldTime(), ia.FirstRepeatSent(), ia.Active())
			}
			if s.Len() != 0 {
				t.Errorf("Expected no subscribers after cancel, got %d", s.Len())
			}

			host.Clear()
			host.Press()
			ia.Process()
			testutil.Drive(s, host, frame, 4)
			if n := host.Count(testutil.SignalStarted); n != 1 {
				t.Errorf("Expected a fresh start, got %d", n)
			}
			if n := host.Count(testutil.SignalPerformed); n != 1 {
				t.Errorf("Expected the hold perform of the new episode, got %d", n)
			}
		})
	}
}

// TestMapDisabledCancels tests that disabling the owning map behaves like a release
func TestMapDisabledCancels(t *testing.T) {
	s := testutil.NewManualScheduler()
	ia, host := newInteraction(t, holdrepeat.DefaultConfig(), s)

	host.Press()
	ia.Process()
	testutil.Drive(s, host, frame, 2)
	host.MapEnabled = false
	testutil.Drive(s, host, frame, 3)

	if n := host.Count(testutil.SignalCanceled); n != 1 {
		t.Errorf("Expected 1 cancel, got %d", n)
	}
	if n := host.Count(testutil.SignalPerformed); n != 0 {
		t.Errorf("Expected no perform, got %d", n)
	}
	if ia.HeldTime() != 0 || s.Registered(ia) {
		t.Errorf("Expected reset and unsubscribed, got held=%v registered=%v", ia.HeldTime(), s.Registered(ia))
	}
}

// TestPhaseDisabledCancels tests an action disabled by the host mid-hold
func TestPhaseDisabledCancels(t *testing.T) {
	s := testutil.NewManualScheduler()
	ia, host := newInteraction(t, holdrepeat.DefaultConfig(), s)

	host.Press()
	ia.Process()
	host.SetPhase(holdrepeat.Disabled)
	testutil.Drive(s, host, frame, 1)

	if n := host.Count(testutil.SignalCanceled); n != 1 {
		t.Errorf("Expected 1 cancel, got %d", n)
	}
	if ia.Active() {
		t.Error("Expected interaction to be inactive")
	}
}

// TestExternalCancel tests that an externally canceled phase ends quietly
func TestExternalCancel(t *testing.T) {
	s := testutil.NewManualScheduler()
	ia, host := newInteraction(t, holdrepeat.DefaultConfig(), s)

	host.Press()
	ia.Process()
	testutil.Drive(s, host, frame, 2)
	host.SetPhase(holdrepeat.Canceled)
	testutil.Drive(s, host, frame, 1)

	if n := host.Count(testutil.SignalCanceled); n != 0 {
		t.Errorf("Expected no cancel signal for an already canceled phase, got %d", n)
	}
	if s.Registered(ia) || ia.HeldTime() != 0 {
		t.Errorf("Expected unsubscribed and reset, got registered=%v held=%v", s.Registered(ia), ia.HeldTime())
	}

	// Still pressed: the next reading starts a new episode.
	ia.Process()
	if n := host.Count(testutil.SignalStarted); n != 2 {
		t.Errorf("Expected a second start, got %d", n)
	}
}

// TestReentrantCancel tests a cancel callback that resets the interaction again
func TestReentrantCancel(t *testing.T) {
	s := testutil.NewManualScheduler()
	ia, host := newInteraction(t, holdrepeat.DefaultConfig(), s)

	hooks := 0
	host.OnCanceled = func() {
		hooks++
		if hooks > 10 {
			t.Fatal("cancel recursed")
		}
		// The host sees its action reset while still canceling.
		host.SetPhase(holdrepeat.Started)
		ia.Reset()
	}

	host.Press()
	ia.Process()
	testutil.Drive(s, host, frame, 2)
	ia.Reset()

	if hooks != 1 {
		t.Errorf("Expected cancel hook once, got %d", hooks)
	}
	if n := host.Count(testutil.SignalCanceled); n != 1 {
		t.Errorf("Expected 1 cancel, got %d", n)
	}
	if s.Registered(ia) {
		t.Error("Expected interaction to be unsubscribed")
	}
}

// TestResetWhileCanceled tests that Reset on a canceled phase emits nothing
func TestResetWhileCanceled(t *testing.T) {
	s := testutil.NewManualScheduler()
	ia, host := newInteraction(t, holdrepeat.DefaultConfig(), s)

	host.SetPhase(holdrepeat.Canceled)
	ia.Reset()
	ia.Reset()

	if n := len(host.Records()); n != 0 {
		t.Errorf("Expected no signals, got %d", n)
	}
}

// TestProcessWhileHeld tests that repeated readings do not restart the episode
func TestProcessWhileHeld(t *testing.T) {
	s := testutil.NewManualScheduler()
	ia, host := newInteraction(t, holdrepeat.DefaultConfig(), s)

	host.Press()
	ia.Process()
	testutil.Drive(s, host, frame, 2)
	ia.Process()
	ia.Process()

	if n := host.Count(testutil.SignalStarted); n != 1 {
		t.Errorf("Expected 1 start, got %d", n)
	}
	if s.Len() != 1 {
		t.Errorf("Expected 1 subscriber, got %d", s.Len())
	}
	if ia.HeldTime() != 2*frame {
		t.Errorf("Expected held time to survive readings, got %v", ia.HeldTime())
	}
}

// TestProcessBelowThreshold tests that a partial actuation does not start
func TestProcessBelowThreshold(t *testing.T) {
	s := testutil.NewManualScheduler()
	ia, host := newInteraction(t, holdrepeat.DefaultConfig(), s)

	host.Value = 0.49
	ia.Process()
	if len(host.Records()) != 0 || ia.Active() {
		t.Fatalf("Expected no episode below threshold, got %v", host.Records())
	}

	host.Value = holdrepeat.ActuationThreshold
	ia.Process()
	if n := host.Count(testutil.SignalStarted); n != 1 {
		t.Errorf("Expected start at threshold, got %d", n)
	}
}

// TestNegativeDelta tests that a bogus delta never rewinds held time
func TestNegativeDelta(t *testing.T) {
	s := testutil.NewManualScheduler()
	ia, host := newInteraction(t, holdrepeat.DefaultConfig(), s)

	host.Press()
	ia.Process()
	s.Advance(frame)
	s.Advance(-time.Second)

	if ia.HeldTime() != frame {
		t.Errorf("Expected held time %v, got %v", frame, ia.HeldTime())
	}
}

// TestNewRejectsInvalid tests construction-time validation
func TestNewRejectsInvalid(t *testing.T) {
	host := testutil.NewHost()
	s := testutil.NewManualScheduler()

	_, err := holdrepeat.New(holdrepeat.Config{HoldTime: -1, RepeatTime: frame}, host, host, s)
	if !errors.Is(err, holdrepeat.ErrNegativeHoldTime) {
		t.Errorf("Expected ErrNegativeHoldTime, got %v", err)
	}
	_, err = holdrepeat.New(holdrepeat.Config{}, host, host, s)
	if !errors.Is(err, holdrepeat.ErrNonPositiveRepeatTime) {
		t.Errorf("Expected ErrNonPositiveRepeatTime, got %v", err)
	}
	_, err = holdrepeat.New(holdrepeat.DefaultConfig(), nil, host, s)
	if !errors.Is(err, holdrepeat.ErrMissingCollaborator) {
		t.Errorf("Expected ErrMissingCollaborator, got %v", err)
	}
}

// TestSetConfig tests replacing the configuration mid-episode
func TestSetConfig(t *testing.T) {
	s := testutil.NewManualScheduler()
	ia, host := newInteraction(t, holdrepeat.DefaultConfig(), s)

	if err := ia.SetConfig(holdrepeat.Config{RepeatTime: 0}); err == nil {
		t.Fatal("Expected invalid config to be rejected")
	}
	if ia.Config() != holdrepeat.DefaultConfig() {
		t.Fatalf("Expected config unchanged, got %+v", ia.Config())
	}

	host.Press()
	ia.Process()
	testutil.Drive(s, host, frame, 1)
	if err := ia.SetConfig(holdrepeat.Config{HoldTime: 2 * frame, RepeatTime: frame}); err != nil {
		t.Fatalf("SetConfig failed: %v", err)
	}
	testutil.Drive(s, host, frame, 3)

	want := []int{2, 3, 4}
	if got := host.Frames(testutil.SignalPerformed); !equalInts(got, want) {
		t.Errorf("Expected performs at frames %v, got %v", want, got)
	}
}
