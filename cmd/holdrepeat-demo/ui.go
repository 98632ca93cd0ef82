package main

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/comalice/holdrepeat/internal/core"
	"github.com/comalice/holdrepeat/internal/primitives"
)

const (
	menuSize   = 40
	historyLen = 8
)

var (
	styleText     = tcell.StyleDefault
	styleDim      = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleCursor   = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow)
	styleStarted  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	stylePerform  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleCanceled = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

// menu is the UI state. It is owned by the main goroutine and changes only
// in response to signals.
type menu struct {
	items    []string
	cursor   int
	history  []core.Signal
	origin   time.Time
	profile  *primitives.ProfileConfig
	disabled bool
	status   string
}

func newMenu(p *primitives.ProfileConfig) *menu {
	items := make([]string, menuSize)
	for i := range items {
		items[i] = fmt.Sprintf("Item %02d", i+1)
	}
	return &menu{items: items, profile: p, origin: time.Now()}
}

// Apply moves the cursor on performs and records the signal.
func (m *menu) Apply(sig core.Signal) {
	if sig.Kind == core.SignalPerformed {
		switch sig.Action {
		case "up":
			m.cursor = max(m.cursor-1, 0)
		case "down":
			m.cursor = min(m.cursor+1, len(m.items)-1)
		}
	}

	m.history = append(m.history, sig)
	if len(m.history) > historyLen {
		m.history = m.history[len(m.history)-historyLen:]
	}
}

func (m *menu) Draw(s tcell.Screen) {
	s.Clear()
	w, h := s.Size()

	drawText(s, 0, 0, styleText, "hold-repeat demo: hold a bound key to scroll")
	drawText(s, 0, 1, styleDim, "q/Esc quit  Tab toggle map  r reset")

	y := 3
	for _, id := range m.profile.BindingIDs() {
		b := m.profile.Bindings[id]
		cfg, err := b.Interaction()
		if err != nil {
			continue
		}
		drawText(s, 0, y, styleDim, fmt.Sprintf("%-8s key=%-6s hold=%v repeat=%v pressImmediate=%v",
			id, b.Key, cfg.HoldTime, cfg.RepeatTime, cfg.PressImmediate))
		y++
	}
	if m.disabled {
		drawText(s, 0, y, styleCanceled, "map disabled")
		y++
	}
	y++

	rows := max(h-y-historyLen-2, 1)
	first := max(m.cursor-rows/2, 0)
	first = min(first, max(len(m.items)-rows, 0))
	for i := first; i < len(m.items) && i < first+rows; i++ {
		style := styleText
		if i == m.cursor {
			style = styleCursor
		}
		drawText(s, 2, y, style, m.items[i])
		y++
	}

	y = max(y+1, h-historyLen-1)
	for _, sig := range m.history {
		drawText(s, 0, y, signalStyle(sig.Kind), fmt.Sprintf("+%7.3fs %-6s %-9s held=%.3fs",
			sig.At.Sub(m.origin).Seconds(), sig.Action, sig.Kind, sig.HeldTime.Seconds()))
		y++
	}

	if m.status != "" {
		drawText(s, 0, h-1, styleCanceled, truncate(m.status, w))
	}
	s.Show()
}

func signalStyle(kind core.SignalKind) tcell.Style {
	switch kind {
	case core.SignalStarted:
		return styleStarted
	case core.SignalPerformed:
		return stylePerform
	default:
		return styleCanceled
	}
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		s.SetContent(x+i, y, r, nil, style)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// keyName is the name bindings use for a key: the rune for printable keys,
// otherwise tcell's key name, e.g. "Up" or "PgDn".
func keyName(ev *tcell.EventKey) string {
	if ev.Key() == tcell.KeyRune {
		return string(ev.Rune())
	}
	if name, ok := tcell.KeyNames[ev.Key()]; ok {
		return name
	}
	return ev.Name()
}
