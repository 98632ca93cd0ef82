// Package holdrepeat implements a hold-then-repeat input interaction.
//
// An Interaction watches one binary control. When the control is pressed it
// signals Started, optionally followed by an immediate Perform. While the
// control stays actuated it signals Perform once HoldTime has accumulated and
// again every RepeatTime after that. Releasing the control, disabling the
// action or its map, or canceling the action externally ends the episode with
// a single Canceled signal.
//
// # Host wiring
//
// The host supplies three collaborators at construction:
//   - Control: actuation, phase and map-enabled accessors
//   - Sink: receives Started, PerformedAndStayStarted and Canceled
//   - Scheduler: the per-tick update source the interaction registers with
//     while a hold episode is in progress
//
// The host calls Process whenever a new control reading arrives; the
// scheduler calls OnTick once per frame with the frame delta.
//
//	rt := realtime.NewRuntime(realtime.Config{TickRate: 16667 * time.Microsecond})
//	ia, err := holdrepeat.New(holdrepeat.DefaultConfig(), control, sink, rt)
//	...
//	rt.Submit(ia.Process)
//
// # Timing
//
// Repeats are scheduled against the total time held rather than a countdown
// reset every frame. Held time is accumulated as a time.Duration, so the sum
// of fixed frame deltas is exact. At most one Perform is emitted per frame;
// a frame that already fired on press defers the hold Perform to the next one.
package holdrepeat
