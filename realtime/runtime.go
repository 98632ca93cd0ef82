package realtime

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"time"

	"github.com/comalice/holdrepeat"
)

var (
	ErrQueueFull      = errors.New("task queue full")
	ErrAlreadyStarted = errors.New("runtime already started")
)

const (
	DefaultTickRate        = 16667 * time.Microsecond // 60 FPS
	DefaultMaxTasksPerTick = 1000
)

// Config configures the runtime.
type Config struct {
	TickRate        time.Duration // Tick period and, without a Clock, the reported delta
	MaxTasksPerTick int           // Task queue capacity (default: 1000)
	Clock           Clock         // Measures deltas between ticks; nil means fixed step
	Logger          *log.Logger   // Receives recovered panics; nil discards
}

// Runtime is a holdrepeat.Scheduler that dispatches OnTick at a fixed rate.
type Runtime struct {
	tickRate time.Duration
	clock    Clock
	logger   *log.Logger

	// Task batching
	tasks       []Task
	taskMu      sync.Mutex
	sequenceNum uint64
	tickNum     uint64

	// Registered handlers mapped to their registration sequence
	handlers   map[holdrepeat.TickHandler]uint64
	handlerSeq uint64
	handlerMu  sync.Mutex

	// Control
	ticker     *time.Ticker
	lastTick   time.Time
	tickCtx    context.Context
	tickCancel context.CancelFunc
	stopped    chan struct{}
	started    bool
}

var _ holdrepeat.Scheduler = (*Runtime)(nil)

// NewRuntime creates a runtime. It does not tick until Start or Step.
func NewRuntime(cfg Config) *Runtime {
	if cfg.MaxTasksPerTick <= 0 {
		cfg.MaxTasksPerTick = DefaultMaxTasksPerTick
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = DefaultTickRate
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard, "", 0)
	}

	return &Runtime{
		tickRate: cfg.TickRate,
		clock:    cfg.Clock,
		logger:   cfg.Logger,
		tasks:    make([]Task, 0, cfg.MaxTasksPerTick),
		handlers: make(map[holdrepeat.TickHandler]uint64),
		stopped:  make(chan struct{}),
	}
}

// Register subscribes h to OnTick. Registering a subscribed handler is a no-op.
func (rt *Runtime) Register(h holdrepeat.TickHandler) {
	rt.handlerMu.Lock()
	defer rt.handlerMu.Unlock()

	if _, ok := rt.handlers[h]; ok {
		return
	}
	rt.handlers[h] = rt.handlerSeq
	rt.handlerSeq++
}

// Unregister removes h. Removing an absent handler is a no-op.
func (rt *Runtime) Unregister(h holdrepeat.TickHandler) {
	rt.handlerMu.Lock()
	defer rt.handlerMu.Unlock()
	delete(rt.handlers, h)
}

// Registered reports whether h is subscribed.
func (rt *Runtime) Registered(h holdrepeat.TickHandler) bool {
	rt.handlerMu.Lock()
	defer rt.handlerMu.Unlock()
	_, ok := rt.handlers[h]
	return ok
}

// Len returns the number of subscribed handlers.
func (rt *Runtime) Len() int {
	rt.handlerMu.Lock()
	defer rt.handlerMu.Unlock()
	return len(rt.handlers)
}

// Start begins ticking at TickRate until ctx is done or Stop is called.
func (rt *Runtime) Start(ctx context.Context) error {
	if rt.started {
		return ErrAlreadyStarted
	}
	rt.started = true

	rt.tickCtx, rt.tickCancel = context.WithCancel(ctx)
	rt.ticker = time.NewTicker(rt.tickRate)
	if rt.clock != nil {
		rt.lastTick = rt.clock.Now()
	}

	go rt.tickLoop()

	return nil
}

// Stop halts the tick loop and waits for it to exit.
func (rt *Runtime) Stop() error {
	if !rt.started {
		return nil
	}
	rt.tickCancel()
	rt.ticker.Stop()

	<-rt.stopped
	return nil
}

// Done is closed once the tick loop has exited.
func (rt *Runtime) Done() <-chan struct{} {
	return rt.stopped
}

func (rt *Runtime) tickLoop() {
	defer close(rt.stopped)

	for {
		select {
		case <-rt.tickCtx.Done():
			return
		case <-rt.ticker.C:
			rt.Step(rt.nextDelta())
		}
	}
}

func (rt *Runtime) nextDelta() time.Duration {
	if rt.clock == nil {
		return rt.tickRate
	}
	now := rt.clock.Now()
	delta := now.Sub(rt.lastTick)
	rt.lastTick = now
	return delta
}

// Step runs one complete tick with the given delta on the calling goroutine.
// A panic in a task or handler is logged and ends that tick early.
func (rt *Runtime) Step(delta time.Duration) {
	func() {
		defer func() {
			if r := recover(); r != nil {
				rt.logger.Printf("realtime: recovered panic in tick %d: %v", rt.TickNumber(), r)
			}
		}()
		rt.processTick(delta)
	}()

	rt.taskMu.Lock()
	rt.tickNum++
	rt.taskMu.Unlock()
}

// Submit queues fn to run at the start of the next tick (thread-safe).
func (rt *Runtime) Submit(fn func()) error {
	return rt.SubmitWithPriority(fn, 0)
}

// SubmitWithPriority queues fn with a priority; higher runs first.
func (rt *Runtime) SubmitWithPriority(fn func(), priority int) error {
	rt.taskMu.Lock()
	defer rt.taskMu.Unlock()

	if len(rt.tasks) >= cap(rt.tasks) {
		return ErrQueueFull
	}

	rt.tasks = append(rt.tasks, Task{
		Fn:          fn,
		SequenceNum: rt.sequenceNum,
		Priority:    priority,
	})
	rt.sequenceNum++

	return nil
}

// TickNumber returns the number of completed ticks.
func (rt *Runtime) TickNumber() uint64 {
	rt.taskMu.Lock()
	defer rt.taskMu.Unlock()
	return rt.tickNum
}
