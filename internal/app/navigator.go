// Package app hosts the drawer navigator that owns the lifetime of the
// collection screens.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

const (
	ScreenCollection = "collection"
	ScreenHistory    = "history"
)

// Screen is a view model whose initial fetch is bound to its mount.
type Screen interface {
	Load(ctx context.Context) error
}

// closer is implemented by screens holding timers or other pending work.
type closer interface {
	Close()
}

type mount struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Navigator mounts a screen on its first visit and keeps it mounted until
// Shutdown. Mounting starts the screen's cancellable load in the background.
type Navigator struct {
	logger *slog.Logger

	mu       sync.Mutex
	screens  map[string]Screen
	mounted  map[string]*mount
	shutdown bool
}

func NewNavigator(logger *slog.Logger) *Navigator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Navigator{
		logger:  logger.With(slog.String("component", "navigator")),
		screens: make(map[string]Screen),
		mounted: make(map[string]*mount),
	}
}

func (n *Navigator) Register(name string, screen Screen) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.screens[name] = screen
}

// Visit mounts the named screen if it is not mounted yet. It reports whether
// this visit performed the mount.
func (n *Navigator) Visit(ctx context.Context, name string) (bool, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.shutdown {
		return false, fmt.Errorf("navigator is shut down")
	}
	screen, ok := n.screens[name]
	if !ok {
		return false, fmt.Errorf("unknown screen %q", name)
	}
	if _, ok := n.mounted[name]; ok {
		return false, nil
	}

	mountCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	m := &mount{cancel: cancel, done: make(chan struct{})}
	n.mounted[name] = m
	n.logger.InfoContext(ctx, "Mounting screen", slog.String("screen", name))

	go func() {
		defer close(m.done)
		if err := screen.Load(mountCtx); err != nil {
			n.logger.WarnContext(mountCtx, "Initial screen load failed", slog.String("screen", name), slog.Any("error", err))
		}
	}()
	return true, nil
}

func (n *Navigator) Mounted(name string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, ok := n.mounted[name]
	return ok
}

// Shutdown unmounts every screen: all pending mount loads are cancelled at
// once, then awaited until ctx expires. Screens holding pending work are
// closed even when their load has not drained in time.
func (n *Navigator) Shutdown(ctx context.Context) error {
	n.mu.Lock()
	n.shutdown = true
	mounted := n.mounted
	n.mounted = make(map[string]*mount)
	screens := make(map[string]Screen, len(mounted))
	for name := range mounted {
		screens[name] = n.screens[name]
	}
	n.mu.Unlock()

	for _, m := range mounted {
		m.cancel()
	}

	var errs []error
	for name, m := range mounted {
		select {
		case <-m.done:
			n.logger.InfoContext(ctx, "Screen unmounted", slog.String("screen", name))
		case <-ctx.Done():
			n.logger.WarnContext(ctx, "Mount load still draining at shutdown", slog.String("screen", name))
			errs = append(errs, fmt.Errorf("unmounting screen %q: %w", name, ctx.Err()))
		}
		if c, ok := screens[name].(closer); ok {
			c.Close()
		}
	}
	return errors.Join(errs...)
}
