package realtime

import (
	"sort"
	"time"

	"github.com/comalice/holdrepeat"
)

type handlerEntry struct {
	h   holdrepeat.TickHandler
	seq uint64
}

// processTick processes one complete tick
func (rt *Runtime) processTick(delta time.Duration) {
	// Phase 1: Collect tasks atomically
	tasks := rt.collectTasks()

	// Phase 2: Sort for deterministic order
	sortTasks(tasks)

	// Phase 3: Apply host work
	for _, t := range tasks {
		if t.Fn != nil {
			t.Fn()
		}
	}

	// Phase 4: Dispatch to subscribers
	rt.dispatch(delta)
}

// collectTasks atomically retrieves and clears the task batch
func (rt *Runtime) collectTasks() []Task {
	rt.taskMu.Lock()
	defer rt.taskMu.Unlock()

	tasks := rt.tasks
	rt.tasks = make([]Task, 0, cap(rt.tasks))

	return tasks
}

// dispatch calls OnTick on the handlers registered when the tick began.
// Handlers are called without holding the lock so they may register or
// unregister themselves and others.
func (rt *Runtime) dispatch(delta time.Duration) {
	for _, e := range rt.snapshotHandlers() {
		if !rt.stillRegistered(e) {
			continue
		}
		e.h.OnTick(delta)
	}
}

func (rt *Runtime) snapshotHandlers() []handlerEntry {
	rt.handlerMu.Lock()
	defer rt.handlerMu.Unlock()

	entries := make([]handlerEntry, 0, len(rt.handlers))
	for h, seq := range rt.handlers {
		entries = append(entries, handlerEntry{h: h, seq: seq})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].seq < entries[j].seq
	})
	return entries
}

// stillRegistered is false for handlers removed, or removed and re-added,
// since the snapshot was taken.
func (rt *Runtime) stillRegistered(e handlerEntry) bool {
	rt.handlerMu.Lock()
	defer rt.handlerMu.Unlock()
	seq, ok := rt.handlers[e.h]
	return ok && seq == e.seq
}
