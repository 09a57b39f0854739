package blueprint

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/libovin/cocos-skills/internal/foundation/errors"
	"github.com/libovin/cocos-skills/internal/logfields"
)

// DefaultDebounce coalesces editor save bursts into one rebuild.
const DefaultDebounce = 500 * time.Millisecond

// ChangeFunc receives each successfully reloaded blueprint.
type ChangeFunc func(ctx context.Context, bp *Blueprint) error

// Watcher reloads a blueprint file whenever it changes.
type Watcher struct {
	path     string
	debounce time.Duration
	onChange ChangeFunc
	watcher  *fsnotify.Watcher
}

// NewWatcher watches path. A debounce of zero selects DefaultDebounce.
func NewWatcher(path string, debounce time.Duration, onChange ChangeFunc) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.FileSystemError("failed to resolve blueprint path").WithCause(err).WithContext("path", path).Build()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.FileSystemError("failed to create file watcher").WithCause(err).Build()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{path: absPath, debounce: debounce, onChange: onChange, watcher: fw}, nil
}

// Run blocks until ctx is done. Each change is loaded and handed to the
// ChangeFunc; load and handler errors are logged and watching continues.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() { _ = w.watcher.Close() }()

	// Watch the directory: editors replace files on save, which drops a
	// watch on the file itself.
	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		return errors.FileSystemError("failed to watch blueprint directory").WithCause(err).WithContext("path", dir).Build()
	}
	slog.Info("Watching blueprint", logfields.Path(w.path))

	name := filepath.Base(w.path)
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			switch {
			case event.Op.Has(fsnotify.Write), event.Op.Has(fsnotify.Create), event.Op.Has(fsnotify.Rename):
				slog.Debug("Blueprint change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))
				timer.Reset(w.debounce)
			case event.Op.Has(fsnotify.Remove):
				slog.Warn("Blueprint removed", logfields.Path(event.Name))
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("Blueprint watcher error", logfields.Error(err))
		case <-timer.C:
			w.reload(ctx)
		}
	}
}

func (w *Watcher) reload(ctx context.Context) {
	bp, err := Load(w.path)
	if err != nil {
		slog.Error("Failed to reload blueprint", logfields.Path(w.path), logfields.Error(err))
		return
	}
	if err := w.onChange(ctx, bp); err != nil {
		slog.Error("Blueprint rebuild failed", logfields.Path(w.path), logfields.Error(err))
	}
}
