package app

import (
	"context"
	"log/slog"

	"spreadscope/internal/core/watcher"
)

// StartWatcher re-runs the analysis whenever the input file changes. Results
// are delivered through the result callback.
func (a *App) StartWatcher(ctx context.Context) error {
	w, err := watcher.NewWatcher(
		a.Config.Watch.Debounce,
		a.Config.Watch.Exclude,
		func(paths []string) { a.HandleChanges(ctx, paths) },
	)
	if err != nil {
		return err
	}
	a.mu.Lock()
	a.activeWatcher = w
	a.mu.Unlock()
	return w.Watch([]string{a.Config.Input.Path})
}

// HandleChanges runs one analysis for a batch of changed files.
func (a *App) HandleChanges(ctx context.Context, paths []string) {
	if ctx.Err() != nil {
		return
	}
	slog.Info("input changed, re-running analysis", "paths", paths)
	if _, err := a.Run(ctx); err != nil {
		slog.Warn("re-run failed", "error", err)
	}
}

func (a *App) Close() error {
	a.mu.Lock()
	w := a.activeWatcher
	a.activeWatcher = nil
	a.mu.Unlock()
	if w == nil {
		return nil
	}
	return w.Close()
}
