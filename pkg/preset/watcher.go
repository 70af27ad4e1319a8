package preset

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads a preset file whenever it changes
type Watcher struct {
	path   string
	logger *zap.Logger
}

// NewWatcher watches path. A nil logger discards output.
func NewWatcher(path string, logger *zap.Logger) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{path: path, logger: logger}
}

// Watch delivers each successfully reloaded preset on the returned channel
// until ctx is done, then closes it. Files that fail to parse are logged
// and skipped.
func (w *Watcher) Watch(ctx context.Context) (<-chan *Preset, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	// Watch the directory so editors that replace the file are still seen
	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	out := make(chan *Preset)
	go w.loop(ctx, fw, out)
	return out, nil
}

func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher, out chan<- *Preset) {
	defer close(out)
	defer func() { _ = fw.Close() }()

	target := filepath.Clean(w.path)
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			p, err := Load(w.path)
			if err != nil {
				w.logger.Warn("preset reload failed", zap.String("path", w.path), zap.Error(err))
				continue
			}
			w.logger.Info("preset reloaded", zap.String("path", w.path), zap.String("name", p.Name))

			select {
			case out <- p:
			case <-ctx.Done():
				return
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", zap.Error(err))
		}
	}
}
