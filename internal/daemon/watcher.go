package daemon

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultReloadDebounce = 250 * time.Millisecond

// ConfigWatcher reloads the configuration when the config file or one of
// its includes changes. Directories are watched rather than files so
// editors that save by rename are noticed.
type ConfigWatcher struct {
	files    []string
	reload   func() error
	debounce time.Duration
	logger   *slog.Logger
}

// NewConfigWatcher watches files (the config path and every file it
// included) and calls reload once writes settle.
func NewConfigWatcher(files []string, reload func() error, logger *slog.Logger) *ConfigWatcher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &ConfigWatcher{
		files:    files,
		reload:   reload,
		debounce: defaultReloadDebounce,
		logger:   logger,
	}
}

func (w *ConfigWatcher) String() string { return "config-watcher" }

// Serve watches until ctx is cancelled.
func (w *ConfigWatcher) Serve(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, dir := range w.dirs() {
		if err := watcher.Add(dir); err != nil {
			w.logger.Debug("cannot watch config dir", "dir", dir, "error", err)
			continue
		}
		w.logger.Debug("watching config dir", "dir", dir)
	}

	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return errors.New("config watcher closed")
			}
			if !w.relevant(ev) {
				continue
			}
			if pending && !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			pending = true
			timer.Reset(w.debounce)
		case <-timer.C:
			pending = false
			if err := w.reload(); err != nil {
				w.logger.Warn("config reload failed; keeping previous config", "error", err)
				continue
			}
			w.logger.Info("config reloaded")
		case err, ok := <-watcher.Errors:
			if !ok {
				return errors.New("config watcher closed")
			}
			w.logger.Warn("config watch error", "error", err)
		}
	}
}

func (w *ConfigWatcher) dirs() []string {
	set := make(map[string]struct{}, len(w.files))
	for _, f := range w.files {
		if f == "" {
			continue
		}
		set[filepath.Dir(f)] = struct{}{}
	}
	dirs := make([]string, 0, len(set))
	for d := range set {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)
	return dirs
}

// relevant reports whether ev touches a watched file or a YAML file that
// a directory include would pick up.
func (w *ConfigWatcher) relevant(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	name := filepath.Clean(ev.Name)
	for _, f := range w.files {
		if name == filepath.Clean(f) {
			return true
		}
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
