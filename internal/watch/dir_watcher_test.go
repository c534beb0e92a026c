package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func waitSignal(t *testing.T, w *DirWatcher) {
	t.Helper()
	select {
	case <-w.Events():
	case <-time.After(3 * time.Second):
		t.Fatalf("expected a change signal")
	}
}

func TestDirWatcherSignalsOnCreate(t *testing.T) {
	dir := t.TempDir()
	w, err := NewDirWatcher()
	if err != nil {
		t.Fatalf("NewDirWatcher failed: %v", err)
	}
	defer w.Close()

	if err := w.Switch(dir); err != nil {
		t.Fatalf("Switch failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "clip.mp4"), []byte("x"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	waitSignal(t, w)
}

func TestDirWatcherSwitchFollowsNewDirectory(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	w, err := NewDirWatcher()
	if err != nil {
		t.Fatalf("NewDirWatcher failed: %v", err)
	}
	defer w.Close()

	if err := w.Switch(first); err != nil {
		t.Fatalf("Switch failed: %v", err)
	}
	if err := w.Switch(second); err != nil {
		t.Fatalf("Switch failed: %v", err)
	}
	abs, _ := filepath.Abs(second)
	if w.Dir() != abs {
		t.Fatalf("unexpected watched dir: %s", w.Dir())
	}
	if err := os.Mkdir(filepath.Join(second, "sub"), 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	waitSignal(t, w)
}

func TestDirWatcherRejectsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "a.txt")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	w, err := NewDirWatcher()
	if err != nil {
		t.Fatalf("NewDirWatcher failed: %v", err)
	}
	defer w.Close()
	if err := w.Switch(file); err == nil {
		t.Fatalf("expected error for non-directory")
	}
}
