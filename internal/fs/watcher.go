package fs

import (
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/kk-code-lab/rpane/internal/location"
)

const watchDebounceDelay = 100 * time.Millisecond

// Watcher reports directories whose contents changed. Bursts of events are
// coalesced and delivered once per directory after a short quiet period.
type Watcher struct {
	fsw      *fsnotify.Watcher
	goos     string
	delay    time.Duration
	onChange func(location.Location)
	onError  func(error)

	mu      sync.Mutex
	watched map[location.Location]struct{}
	pending map[location.Location]struct{}
	timer   *time.Timer
	closed  bool
	done    chan struct{}
}

// NewWatcher starts a watcher. onChange runs on a timer goroutine and must
// not block; onError may be nil.
func NewWatcher(onChange func(location.Location), onError func(error)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fsw:      fsw,
		goos:     runtime.GOOS,
		delay:    watchDebounceDelay,
		onChange: onChange,
		onError:  onError,
		watched:  make(map[location.Location]struct{}),
		pending:  make(map[location.Location]struct{}),
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Watch replaces the watched set with locs.
func (w *Watcher) Watch(locs []location.Location) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}

	want := make(map[location.Location]struct{}, len(locs))
	for _, loc := range locs {
		if !loc.IsZero() {
			want[loc] = struct{}{}
		}
	}

	for loc := range w.watched {
		if _, keep := want[loc]; !keep {
			_ = w.fsw.Remove(loc.Native(w.goos))
			delete(w.watched, loc)
		}
	}

	var firstErr error
	for loc := range want {
		if _, ok := w.watched[loc]; ok {
			continue
		}
		if err := w.fsw.Add(loc.Native(w.goos)); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		w.watched[loc] = struct{}{}
	}
	return firstErr
}

// Watched returns the currently watched locations in sorted order.
func (w *Watcher) Watched() []location.Location {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]location.Location, 0, len(w.watched))
	for loc := range w.watched {
		out = append(out, loc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			w.enqueue(location.Normalize(filepath.Dir(event.Name)))
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if w.onError != nil {
				w.onError(err)
			}
		}
	}
}

func (w *Watcher) enqueue(dir location.Location) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.pending[dir] = struct{}{}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.delay, w.flush)
}

func (w *Watcher) flush() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	dirs := make([]location.Location, 0, len(w.pending))
	for loc := range w.pending {
		dirs = append(dirs, loc)
	}
	w.pending = make(map[location.Location]struct{})
	w.mu.Unlock()

	sort.Slice(dirs, func(i, j int) bool { return dirs[i] < dirs[j] })
	for _, dir := range dirs {
		w.onChange(dir)
	}
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	err := w.fsw.Close()
	<-w.done
	return err
}
