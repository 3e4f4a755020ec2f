package prefabs

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports changed prefab and script files on Events. A file is
// reported once it has been quiet for the debounce window, so an editor that
// truncates and then writes produces one event after the final write.
type Watcher struct {
	watcher  *fsnotify.Watcher
	Events   chan string
	Errors   chan error
	closeCh  chan struct{}
	done     chan struct{}
	once     sync.Once
	debounce time.Duration
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher:  w,
		Events:   make(chan string, 16),
		Errors:   make(chan error, 1),
		closeCh:  make(chan struct{}),
		done:     make(chan struct{}),
		debounce: 100 * time.Millisecond,
	}
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher and waits for its goroutine to exit. Events and
// Errors are closed afterwards.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) run() {
	defer func() {
		close(w.Events)
		close(w.Errors)
		close(w.done)
	}()

	pending := make(map[string]time.Time)
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !isSpecFile(event.Name) && !isScriptFile(event.Name) {
				continue
			}
			pending[event.Name] = time.Now()
			w.arm(timer, pending)
		case now := <-timer.C:
			for _, name := range settled(pending, now, w.debounce) {
				select {
				case w.Events <- name:
				case <-w.closeCh:
					return
				}
			}
			w.arm(timer, pending)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

// arm points timer at the moment the oldest pending file goes quiet.
func (w *Watcher) arm(timer *time.Timer, pending map[string]time.Time) {
	if len(pending) == 0 {
		return
	}
	var oldest time.Time
	for _, t := range pending {
		if oldest.IsZero() || t.Before(oldest) {
			oldest = t
		}
	}
	timer.Reset(time.Until(oldest.Add(w.debounce)))
}

// settled removes and returns the pending files quiet for at least debounce.
func settled(pending map[string]time.Time, now time.Time, debounce time.Duration) []string {
	var out []string
	for name, t := range pending {
		if now.Sub(t) >= debounce {
			out = append(out, name)
			delete(pending, name)
		}
	}
	sort.Strings(out)
	return out
}

func isSpecFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func isScriptFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".tengo"
}
