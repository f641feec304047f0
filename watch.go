// FILE: lixenwraith/siteconfig/watch.go
package siteconfig

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

const DefaultMaxSubscribers = 100

// Watcher events delivered on subscriber channels
const (
	EventReloaded           = "reloaded"
	EventFileDeleted        = "file_deleted"
	EventPermissionsChanged = "permissions_changed"
	EventReloadTimeout      = "reload_timeout"
	eventReloadErrorPrefix  = "reload_error:"
)

// WatchOptions configures file watching behavior
type WatchOptions struct {
	// PollInterval for file stat checks (minimum 100ms)
	PollInterval time.Duration

	// Debounce duration to coalesce rapid writes
	Debounce time.Duration

	// MaxSubscribers limits concurrent subscriber channels
	MaxSubscribers int

	// ReloadTimeout bounds a single rebuild
	ReloadTimeout time.Duration

	// VerifyPermissions refuses to reload after group/world permission changes
	VerifyPermissions bool
}

// DefaultWatchOptions returns defaults for file watching
func DefaultWatchOptions() WatchOptions {
	return WatchOptions{
		PollInterval:      DefaultPollInterval,
		Debounce:          DefaultDebounce,
		MaxSubscribers:    DefaultMaxSubscribers,
		ReloadTimeout:     DefaultReloadTimeout,
		VerifyPermissions: true,
	}
}

// Watcher keeps a Config in step with its file. Every change produces a
// freshly built Config; a failed rebuild keeps the previous one. Built
// Configs are never mutated.
type Watcher struct {
	current atomic.Pointer[Config]

	ctx      context.Context
	cancel   context.CancelFunc
	opts     WatchOptions
	load     LoadOptions
	logger   *zap.Logger
	filePath string

	lastModTime time.Time
	lastSize    int64
	lastMode    os.FileMode

	watching         atomic.Bool
	reloadInProgress atomic.Bool

	mu            sync.RWMutex
	subscribers   map[int64]chan string
	subscriberID  atomic.Int64
	debounceTimer *time.Timer
}

// Watch builds the configuration at path and starts polling it for changes.
func Watch(path string, opts WatchOptions, load LoadOptions) (*Watcher, error) {
	if opts.PollInterval < MinPollInterval {
		opts.PollInterval = MinPollInterval
	}
	if opts.MaxSubscribers <= 0 {
		opts.MaxSubscribers = DefaultMaxSubscribers
	}
	if opts.ReloadTimeout <= 0 {
		opts.ReloadTimeout = DefaultReloadTimeout
	}

	cfg, err := NewWithOptions(path, load)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		ctx:         ctx,
		cancel:      cancel,
		opts:        opts,
		load:        load,
		logger:      load.logger(),
		filePath:    path,
		subscribers: make(map[int64]chan string),
	}
	w.current.Store(cfg)

	if info, err := os.Stat(path); err == nil {
		w.lastModTime = info.ModTime()
		w.lastSize = info.Size()
		w.lastMode = info.Mode()
	}

	w.watching.Store(true)
	go w.watchLoop()
	return w, nil
}

// Current returns the most recently built Config.
func (w *Watcher) Current() *Config {
	return w.current.Load()
}

// IsWatching reports whether the poll loop is running.
func (w *Watcher) IsWatching() bool {
	return w.watching.Load()
}

// Subscribe returns a channel receiving watcher events. The channel is
// closed when the watcher stops.
func (w *Watcher) Subscribe() <-chan string {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.subscribers) >= w.opts.MaxSubscribers || w.ctx.Err() != nil {
		ch := make(chan string)
		close(ch)
		return ch
	}

	ch := make(chan string, 10)
	id := w.subscriberID.Add(1)
	w.subscribers[id] = ch

	go func() {
		<-w.ctx.Done()
		w.mu.Lock()
		delete(w.subscribers, id)
		close(ch)
		w.mu.Unlock()
	}()

	return ch
}

// Stop terminates polling and closes subscriber channels.
func (w *Watcher) Stop() {
	w.cancel()

	w.mu.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
		w.debounceTimer = nil
	}
	w.mu.Unlock()

	deadline := time.Now().Add(ShutdownTimeout)
	for w.watching.Load() && time.Now().Before(deadline) {
		time.Sleep(SpinWaitInterval)
	}
}

// watchLoop is the main polling loop
func (w *Watcher) watchLoop() {
	defer w.watching.Store(false)

	ticker := time.NewTicker(w.opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			w.checkAndReload()
		}
	}
}

// checkAndReload schedules a debounced rebuild when the file changed
func (w *Watcher) checkAndReload() {
	info, err := os.Stat(w.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			w.notify(EventFileDeleted)
		}
		return
	}

	if w.opts.VerifyPermissions && w.lastMode != 0 && info.Mode() != w.lastMode {
		if (info.Mode() & 0077) != (w.lastMode & 0077) {
			w.logger.Warn("config file permissions changed, reload skipped",
				zap.String("file", w.filePath),
				zap.Stringer("old_mode", w.lastMode),
				zap.Stringer("new_mode", info.Mode()),
			)
			w.notify(EventPermissionsChanged)
			return
		}
	}

	if info.ModTime().Equal(w.lastModTime) && info.Size() == w.lastSize {
		return
	}

	w.lastModTime = info.ModTime()
	w.lastSize = info.Size()
	w.lastMode = info.Mode()

	w.mu.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.opts.Debounce, w.performReload)
	w.mu.Unlock()
}

// performReload rebuilds the configuration and publishes it on success
func (w *Watcher) performReload() {
	if !w.reloadInProgress.CompareAndSwap(false, true) {
		return
	}
	defer w.reloadInProgress.Store(false)

	ctx, cancel := context.WithTimeout(w.ctx, w.opts.ReloadTimeout)
	defer cancel()

	type result struct {
		cfg *Config
		err error
	}
	done := make(chan result, 1)
	go func() {
		cfg, err := NewWithOptions(w.filePath, w.load)
		done <- result{cfg: cfg, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			reloadsTotal.WithLabelValues("error").Inc()
			w.logger.Error("config reload failed", zap.String("file", w.filePath), zap.Error(res.err))
			w.notify(fmt.Sprintf("%s%v", eventReloadErrorPrefix, res.err))
			return
		}
		w.current.Store(res.cfg)
		reloadsTotal.WithLabelValues("success").Inc()
		w.logger.Info("config reloaded", zap.String("file", w.filePath))
		w.notify(EventReloaded)

	case <-ctx.Done():
		reloadsTotal.WithLabelValues("timeout").Inc()
		w.notify(EventReloadTimeout)
	}
}

// notify sends an event to every subscriber without blocking
func (w *Watcher) notify(event string) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for _, ch := range w.subscribers {
		select {
		case ch <- event:
		default:
			// subscriber is full, drop
		}
	}
}
