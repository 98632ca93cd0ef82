package main

import (
	"time"

	"github.com/comalice/holdrepeat/internal/core"
	"github.com/comalice/holdrepeat/internal/extensibility"
	"github.com/comalice/holdrepeat/internal/primitives"
	"github.com/comalice/holdrepeat/realtime"
)

// router feeds terminal key events to actions. Terminals report key
// presses and autorepeats but never releases, so each bound action gets
// an AutoRepeatLatch and is released when its key goes quiet.
//
// All methods must run on the tick goroutine.
type router struct {
	m       *core.ActionMap
	clock   realtime.Clock
	timeout time.Duration

	keys    map[string]string // key name -> action
	latches map[string]*extensibility.AutoRepeatLatch
}

func newRouter(m *core.ActionMap, clock realtime.Clock, timeout time.Duration) *router {
	return &router{
		m:       m,
		clock:   clock,
		timeout: timeout,
		keys:    make(map[string]string),
		latches: make(map[string]*extensibility.AutoRepeatLatch),
	}
}

// Bind replaces the key table with the bindings of p.
func (r *router) Bind(p *primitives.ProfileConfig) {
	r.keys = make(map[string]string, len(p.Bindings))
	for _, id := range p.BindingIDs() {
		if key := p.Bindings[id].Key; key != "" {
			r.keys[key] = id
		}
	}
}

// Key handles one press or autorepeat of the named key and reports
// whether it is bound.
func (r *router) Key(name string) bool {
	id, ok := r.keys[name]
	if !ok {
		return false
	}
	a, err := r.m.Action(id)
	if err != nil {
		return false
	}

	l, ok := r.latches[id]
	if !ok {
		l = &extensibility.AutoRepeatLatch{Timeout: r.timeout}
		r.latches[id] = l
	}
	if l.Touch(r.clock.Now()) {
		a.Press()
	}
	return true
}

// OnTick releases actions whose keys went quiet. The router is registered
// before any action, so a release is seen by the interaction in the same
// frame.
func (r *router) OnTick(time.Duration) {
	now := r.clock.Now()
	for id, l := range r.latches {
		if !l.Expire(now) {
			continue
		}
		if a, err := r.m.Action(id); err == nil {
			a.Release()
		}
	}
}

// Held reports whether the action's key is considered down.
func (r *router) Held(id string) bool {
	l, ok := r.latches[id]
	return ok && l.Held()
}
