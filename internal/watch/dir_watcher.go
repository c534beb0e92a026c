package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// DirWatcher dosya seçicinin gösterdiği tek dizini fsnotify ile izler.
// Ardışık olaylar tek bir sinyalde birleştirilir.
type DirWatcher struct {
	fs *fsnotify.Watcher

	mu  sync.Mutex
	dir string

	events chan struct{}
	done   chan struct{}
	once   sync.Once
}

// NewDirWatcher izleyiciyi oluşturur; dizin Switch ile seçilir.
func NewDirWatcher() (*DirWatcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &DirWatcher{
		fs:     fs,
		events: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Switch izlenen dizini değiştirir.
func (w *DirWatcher) Switch(dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("izlenecek yol dizin olmalıdır: %s", abs)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.dir == abs {
		return nil
	}
	if w.dir != "" {
		_ = w.fs.Remove(w.dir)
	}
	if err := w.fs.Add(abs); err != nil {
		w.dir = ""
		return err
	}
	w.dir = abs
	return nil
}

// Dir izlenen dizindir.
func (w *DirWatcher) Dir() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dir
}

// Events dizin içeriği değiştiğinde sinyal verir.
func (w *DirWatcher) Events() <-chan struct{} {
	return w.events
}

func (w *DirWatcher) Close() error {
	w.once.Do(func() {
		close(w.done)
	})
	return w.fs.Close()
}

func (w *DirWatcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case evt, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if evt.Op == fsnotify.Chmod {
				continue
			}
			w.signal()
		case _, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			// Hata sonrası listeyi yine de yenile.
			w.signal()
		}
	}
}

func (w *DirWatcher) signal() {
	select {
	case w.events <- struct{}{}:
	default:
	}
}
