package production

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/comalice/holdrepeat/internal/primitives"
)

// Watcher reloads a profile whenever its file changes.
// Invalid reloads are reported on Errors and never delivered as profiles.
type Watcher struct {
	path     string
	fsw      *fsnotify.Watcher
	profiles chan *primitives.ProfileConfig
	errs     chan error
	last     string
}

// NewWatcher watches the directory holding path, so editors that replace
// the file by rename are still seen.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		path:     abs,
		fsw:      fsw,
		profiles: make(chan *primitives.ProfileConfig, 1),
		errs:     make(chan error, 1),
	}, nil
}

// Seed records the currently active profile so an unchanged rewrite is not
// delivered again.
func (w *Watcher) Seed(p *primitives.ProfileConfig) {
	w.last = primitives.Fingerprint(p)
}

// Profiles delivers each successfully reloaded, changed profile.
func (w *Watcher) Profiles() <-chan *primitives.ProfileConfig { return w.profiles }

// Errors delivers reload failures.
func (w *Watcher) Errors() <-chan error { return w.errs }

// Run processes file events until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			w.reload(ctx)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.report(ctx, fmt.Errorf("watch %s: %w", w.path, err))
		}
	}
}

func (w *Watcher) reload(ctx context.Context) {
	p, err := LoadProfile(w.path)
	if err != nil {
		w.report(ctx, err)
		return
	}

	fp := primitives.Fingerprint(p)
	if fp == w.last {
		return
	}
	w.last = fp

	select {
	case w.profiles <- p:
	case <-ctx.Done():
	}
}

// report drops the error if the previous one has not been read yet.
func (w *Watcher) report(ctx context.Context, err error) {
	select {
	case w.errs <- err:
	case <-ctx.Done():
	default:
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
