// Package realtime provides the per-tick update source that drives
// hold-repeat interactions.
//
// Runtime differs from a plain frame callback list in two ways:
//   - Host work (control samples) is queued with Submit and applied at the
//     start of the next tick, so Process, OnTick and Reset always run on the
//     tick goroutine
//   - Registered handlers are dispatched in registration order, so a replay
//     of the same inputs produces the same signals
//
// # Example Usage
//
//	rt := realtime.NewRuntime(realtime.Config{
//		TickRate: 16667 * time.Microsecond, // 60 FPS
//	})
//	ia, _ := holdrepeat.New(holdrepeat.DefaultConfig(), control, sink, rt)
//	rt.Start(ctx)
//	defer rt.Stop()
//	rt.Submit(func() { control.Set(1); ia.Process() })
//
// # Tick Phases
//
// Each tick:
//  1. Collects the queued tasks atomically
//  2. Orders them by priority, then submission sequence
//  3. Runs the tasks
//  4. Dispatches OnTick(delta) to every handler registered before the tick
//     started and still registered when its turn comes
//
// # Frame Delta
//
// With no Clock configured every tick reports the fixed TickRate as its
// delta (fixed time-step). With a Clock the delta is the measured time since
// the previous tick, which lets hosts that drop frames keep held time honest.
//
// # Deterministic Stepping
//
// Step runs one tick synchronously with an explicit delta. Tests and the
// scenario simulator use it instead of Start; the two must not be mixed on
// the same Runtime.
package realtime
