package transcript

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/diogo/ixview/internal/models"
)

// DefaultDebounce is how long the watcher waits after the last change
// before reloading.
const DefaultDebounce = 250 * time.Millisecond

// Update is a reload result delivered by a Watcher.
type Update struct {
	Messages []models.Message
	Err      error
}

var errWatcherStopped = errors.New("watcher stopped")

// Watcher reloads a transcript file whenever it changes.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   *zap.Logger

	watcher *fsnotify.Watcher
	updates chan Update

	mu      sync.Mutex
	pending time.Time
	running bool

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// WatchOption configures a Watcher.
type WatchOption func(*Watcher)

// WithDebounce sets the quiet period before a reload.
func WithDebounce(d time.Duration) WatchOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithWatchLogger sets the logger for watch events.
func WithWatchLogger(logger *zap.Logger) WatchOption {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewWatcher creates a watcher for the transcript at path. It watches the
// parent directory so files replaced by rename are still seen.
func NewWatcher(path string, opts ...WatchOption) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{
		path:     abs,
		debounce: DefaultDebounce,
		logger:   zap.NewNop(),
		watcher:  fw,
		updates:  make(chan Update, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Updates returns the channel of reload results. It is closed when the
// watcher stops.
func (w *Watcher) Updates() <-chan Update {
	return w.updates
}

// Start begins watching. It returns once the watch is registered; events are
// processed until ctx is done or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	select {
	case <-w.stopCh:
		w.mu.Unlock()
		return errWatcherStopped
	default:
	}
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		_ = w.watcher.Close()
		close(w.updates)
		close(w.doneCh)
		return fmt.Errorf("failed to watch %s: %w", w.path, err)
	}
	w.logger.Debug("watching transcript", zap.String("path", w.path))

	go w.run(ctx)
	return nil
}

// Stop ends watching and waits for the event loop to exit. A watcher that
// was never started releases its resources and closes Updates here.
func (w *Watcher) Stop() {
	w.mu.Lock()
	w.stopOnce.Do(func() { close(w.stopCh) })
	if !w.running {
		w.running = true
		w.mu.Unlock()
		if err := w.watcher.Close(); err != nil {
			w.logger.Warn("error closing watcher", zap.Error(err))
		}
		close(w.updates)
		close(w.doneCh)
		return
	}
	w.mu.Unlock()
	<-w.doneCh
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)
	defer close(w.updates)
	defer func() {
		if err := w.watcher.Close(); err != nil {
			w.logger.Warn("error closing watcher", zap.Error(err))
		}
	}()

	tick := w.debounce / 5
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", zap.Error(err))
		case <-ticker.C:
			if !w.due() {
				continue
			}
			msgs, err := Load(w.path)
			w.logger.Debug("transcript reloaded",
				zap.Int("messages", len(msgs)),
				zap.Error(err))
			select {
			case w.updates <- Update{Messages: msgs, Err: err}:
			case <-ctx.Done():
				return
			case <-w.stopCh:
				return
			}
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}
	w.mu.Lock()
	w.pending = time.Now()
	w.mu.Unlock()
}

// due reports whether a pending change has been quiet for the debounce
// period, clearing it if so.
func (w *Watcher) due() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending.IsZero() || time.Since(w.pending) < w.debounce {
		return false
	}
	w.pending = time.Time{}
	return true
}
