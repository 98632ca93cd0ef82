// Command holdrepeat-demo is an interactive terminal menu scrolled by
// hold-repeat actions.
//
// Hold an arrow key: the cursor moves after the hold time and then once
// per repeat time until the key is let go. Timing comes from the
// HOLDREPEAT_* environment variables, flags, or a profile file given with
// -config, which is reloaded whenever it changes.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/comalice/holdrepeat/internal/core"
	"github.com/comalice/holdrepeat/internal/extensibility"
	"github.com/comalice/holdrepeat/internal/primitives"
	"github.com/comalice/holdrepeat/internal/production"
	"github.com/comalice/holdrepeat/realtime"
)

func main() {
	err := run(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "holdrepeat-demo: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	s, err := loadSettings(args, os.Stderr)
	if err != nil {
		return err
	}

	logger, closeLog, err := openLog(s.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	profile, err := s.profile()
	if err != nil {
		return err
	}

	snd, err := newBeeper(s.Sound)
	if err != nil {
		logger.Printf("sound disabled: %v", err)
	}
	defer snd.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	signals := make(chan core.Signal, 64)
	pub := production.NewChannelPublisher(signals)

	clock := realtime.SystemClock{}
	rt := realtime.NewRuntime(realtime.Config{
		TickRate: s.TickRate,
		Clock:    clock,
		Logger:   logger,
	})
	actions := core.NewActionMap("menu", rt,
		core.WithListener(pub.Listener()),
		core.WithSinkWrapper(extensibility.LoggingWrapper(logger)),
	)

	keys := newRouter(actions, clock, s.ReleaseAfter)
	rt.Register(keys)
	if err := actions.ApplyProfile(profile); err != nil {
		return err
	}
	keys.Bind(profile)

	if err := rt.Start(ctx); err != nil {
		return err
	}
	defer rt.Stop()

	var (
		reloads    <-chan *primitives.ProfileConfig
		reloadErrs <-chan error
	)
	if s.Profile != "" {
		w, err := production.NewWatcher(s.Profile)
		if err != nil {
			return err
		}
		defer w.Close()
		w.Seed(profile)
		go w.Run(ctx)
		reloads, reloadErrs = w.Profiles(), w.Errors()
	}

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ui := newMenu(profile)
	ui.Draw(screen)

	submit := func(fn func()) {
		if err := rt.Submit(fn); err != nil {
			logger.Printf("submit: %v", err)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
					(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
					return nil
				}
				switch {
				case ev.Key() == tcell.KeyTab:
					ui.disabled = !ui.disabled
					disable := ui.disabled
					submit(func() {
						if disable {
							actions.Disable()
						} else {
							actions.Enable()
						}
					})
				case ev.Key() == tcell.KeyRune && ev.Rune() == 'r':
					submit(actions.ResetAll)
				default:
					name := keyName(ev)
					submit(func() { keys.Key(name) })
				}
			case *tcell.EventResize:
				screen.Sync()
			}

		case sig := <-signals:
			ui.Apply(sig)
			if sig.Kind == core.SignalPerformed {
				snd.Tone(toneFor(sig.Action))
			}

		case p := <-reloads:
			submit(func() { applyProfile(actions, keys, p, logger) })
			ui.profile = p
			ui.status = fmt.Sprintf("reloaded profile %q", p.ID)

		case err := <-reloadErrs:
			ui.status = err.Error()
			logger.Printf("reload: %v", err)
		}

		ui.Draw(screen)
	}
}

// applyProfile runs on the tick goroutine.
func applyProfile(m *core.ActionMap, keys *router, p *primitives.ProfileConfig, logger *log.Logger) {
	if err := m.ApplyProfile(p); err != nil {
		logger.Printf("apply: %v", err)
		return
	}
	keys.Bind(p)
	logger.Printf("applied profile %q version %s", p.ID, primitives.ComputeVersion(p))
}
