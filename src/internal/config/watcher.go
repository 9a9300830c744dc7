package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/maksimkurb/keen-tray/src/internal/log"
)

const watchDebounce = 200 * time.Millisecond

// Watcher reloads the configuration file when it changes on disk and passes
// the new configuration to a callback.
//
// The parent directory is watched rather than the file itself so that
// editors replacing the file atomically are noticed. Events are debounced,
// and reloads that do not change the configuration (see Config.Hash) or that
// fail to parse are not reported.
type Watcher struct {
	path     string
	onChange func(*Config)

	watcher  *fsnotify.Watcher
	lastHash string
	stopCh   chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewWatcher creates a watcher for the file at path. current is the
// configuration the caller already has; it is not reported again.
func NewWatcher(path string, current *Config, onChange func(*Config)) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	w := &Watcher{
		path:     absPath,
		onChange: onChange,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
	if current != nil {
		if hash, err := current.Hash(); err == nil {
			w.lastHash = hash
		}
	}
	return w, nil
}

// Start begins watching in a background goroutine.
func (w *Watcher) Start() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(w.path), err)
	}
	w.watcher = watcher

	log.Debugf("Watching configuration file %s", w.path)
	go w.loop()
	return nil
}

// Stop stops watching and waits for the background goroutine to exit.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		if w.watcher != nil {
			_ = w.watcher.Close()
			<-w.done
		}
	})
}

func (w *Watcher) loop() {
	defer close(w.done)

	timer := time.NewTimer(watchDebounce)
	timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			log.Debugf("Configuration file event: %s", event.Op)
			timer.Reset(watchDebounce)

		case <-timer.C:
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warnf("Configuration watcher error: %v", err)

		case <-w.stopCh:
			timer.Stop()
			return
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := LoadConfig(w.path)
	if err != nil {
		log.Warnf("Ignoring configuration change: %v", err)
		return
	}
	if err := cfg.ValidateConfig(); err != nil {
		log.Warnf("Ignoring invalid configuration change: %v", err)
		return
	}

	hash, err := cfg.Hash()
	if err != nil {
		log.Warnf("Failed to hash configuration: %v", err)
		return
	}
	if hash == w.lastHash {
		log.Debugf("Configuration file touched without changes")
		return
	}
	w.lastHash = hash

	log.Infof("Configuration reloaded: %d router(s)", len(cfg.Routers))
	w.onChange(cfg)
}
