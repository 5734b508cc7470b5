package backend

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/atomicstack/product-catalog/internal/catalog"
	"github.com/atomicstack/product-catalog/internal/logging/events"
	"github.com/fsnotify/fsnotify"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	KindSeed Kind = iota
)

// Event conveys updated data or an error from a reload.
type Event struct {
	Kind Kind
	Data interface{}
	Err  error
}

// Loader reads the watched file.
type Loader func(path string) ([]catalog.Product, error)

// Watcher reloads a seed file whenever it changes on disk and publishes the
// result. Bursts of writes are debounced into a single reload, and reloads
// are at least minInterval apart.
type Watcher struct {
	path        string
	debounce    time.Duration
	minInterval time.Duration
	load        Loader
	fs          *fsnotify.Watcher

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher starts watching path. The containing directory is watched so
// editors that replace the file on save are still noticed.
func NewWatcher(path string, debounce time.Duration, load Loader) (*Watcher, error) {
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
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		path:        abs,
		debounce:    debounce,
		minInterval: 4 * debounce,
		load:        load,
		fs:          fsw,
		ctx:         ctx,
		cancel:      cancel,
		events:      make(chan Event, 16),
	}

	w.wg.Add(1)
	go w.run()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w, nil
}

// Events returns a channel of reload events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Stop cancels the watcher. A reload already in progress completes first;
// use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the watch goroutine has exited and the events channel
// is closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) matches(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	// a rename away leaves no file; the reload reports that as an error
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}

func (w *Watcher) run() {
	defer w.wg.Done()
	defer w.fs.Close()

	throttle := newThrottle(w.minInterval)
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !w.matches(ev) {
				continue
			}
			events.Seed.Change(ev.Name, ev.Op.String())
			timer.Reset(w.debounce)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			if !w.emit(Event{Kind: KindSeed, Err: err}) {
				return
			}
		case <-timer.C:
			if !throttle.wait(w.ctx) {
				return
			}
			products, err := w.load(w.path)
			evt := Event{Kind: KindSeed, Err: err}
			if err == nil {
				evt.Data = products
			} else {
				events.Seed.Error(w.path, err)
			}
			if !w.emit(evt) {
				return
			}
		}
	}
}

func (w *Watcher) emit(evt Event) bool {
	select {
	case <-w.ctx.Done():
		return false
	case w.events <- evt:
		return true
	}
}
