// Copyright 2025 Tom Barlow
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Store holds the live configuration. Readers always see a complete
// Config; reloads swap it atomically.
type Store struct {
	current atomic.Pointer[Config]
	path    string
}

// NewStore returns a Store seeded with cfg, reloading from path.
func NewStore(cfg *Config, path string) *Store {
	if cfg == nil {
		cfg = Default()
	}
	s := &Store{path: path}
	s.current.Store(cfg)
	return s
}

// Current returns the active configuration.
func (s *Store) Current() *Config {
	return s.current.Load()
}

// Path returns the file the store reloads from.
func (s *Store) Path() string {
	return s.path
}

// Defaults returns the active input defaults keyed by input name.
func (s *Store) Defaults() map[string]string {
	return s.Current().Defaults.Inputs()
}

// Reload loads the file again and swaps it in. On error the previous
// configuration stays active.
func (s *Store) Reload() error {
	cfg, err := Load(s.path)
	if err != nil {
		return err
	}
	s.current.Store(cfg)
	return nil
}

// Watcher reloads a Store when its config file changes.
type Watcher struct {
	// fsWatcher is the underlying filesystem watcher
	fsWatcher *fsnotify.Watcher

	// store receives reloaded configuration
	store *Store

	// target is the absolute path of the watched file
	target string

	// onReload is called after each successful reload (optional)
	onReload func(*Config)

	logger        *slog.Logger
	debounceDelay time.Duration

	// mu protects pending
	mu      sync.Mutex
	pending *time.Timer

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// WatcherConfig configures the file watcher.
type WatcherConfig struct {
	// Store is the configuration store to reload
	Store *Store

	// Logger is used for structured logging (optional)
	Logger *slog.Logger

	// DebounceDelay is the delay before reloading after file changes (defaults to 200ms)
	DebounceDelay time.Duration

	// OnReload is called with the new configuration after a reload (optional)
	OnReload func(*Config)
}

// NewWatcher starts watching the store's config file. The parent directory
// is watched so editors that replace the file by rename are picked up.
func NewWatcher(cfg WatcherConfig) (*Watcher, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if cfg.Store.Path() == "" {
		return nil, fmt.Errorf("store has no config file to watch")
	}

	target, err := filepath.Abs(cfg.Store.Path())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", cfg.Store.Path(), err)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fsWatcher.Add(filepath.Dir(target)); err != nil {
		_ = fsWatcher.Close()
		return nil, fmt.Errorf("failed to watch path %s: %w", filepath.Dir(target), err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	debounceDelay := cfg.DebounceDelay
	if debounceDelay == 0 {
		debounceDelay = 200 * time.Millisecond
	}

	ctx, cancel := context.WithCancel(context.Background())

	w := &Watcher{
		fsWatcher:     fsWatcher,
		store:         cfg.Store,
		target:        target,
		onReload:      cfg.OnReload,
		logger:        logger,
		debounceDelay: debounceDelay,
		ctx:           ctx,
		cancel:        cancel,
	}

	w.wg.Add(1)
	go w.processEvents()

	logger.Debug("watching config file", "path", target)
	return w, nil
}

// processEvents processes filesystem events and schedules reloads.
func (w *Watcher) processEvents() {
	defer w.wg.Done()

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if abs, err := filepath.Abs(event.Name); err != nil || abs != w.target {
				continue
			}
			w.scheduleReload()

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("file watcher error", "error", err)

		case <-w.ctx.Done():
			return
		}
	}
}

// scheduleReload restarts the debounce timer.
func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pending != nil {
		w.pending.Stop()
	}
	w.pending = time.AfterFunc(w.debounceDelay, w.reload)
}

func (w *Watcher) reload() {
	if w.ctx.Err() != nil {
		return
	}

	if err := w.store.Reload(); err != nil {
		w.logger.Error("config reload failed, keeping previous configuration",
			"path", w.target,
			"error", err,
		)
		return
	}

	w.logger.Info("config reloaded", "path", w.target)
	if w.onReload != nil {
		w.onReload(w.store.Current())
	}
}

// Close shuts down the watcher.
func (w *Watcher) Close() error {
	w.cancel()

	w.mu.Lock()
	if w.pending != nil {
		w.pending.Stop()
	}
	w.mu.Unlock()

	w.wg.Wait()

	return w.fsWatcher.Close()
}
