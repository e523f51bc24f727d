package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cards.json")

	reloaded := make(chan *Catalog, 1)
	w, err := NewWatcher(path, func(c *Catalog) {
		select {
		case reloaded <- c:
		default:
		}
	}, nil)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer func() { _ = w.Close() }()

	if err := WriteFile(path, []Card{{ID: "a", Name: "First", CollectorNumber: "1"}}); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	select {
	case cat := <-reloaded:
		if cat.Len() != 1 {
			t.Errorf("reloaded catalog has %d cards, want 1", cat.Len())
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcherReportsLoadErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cards.json")

	errs := make(chan error, 1)
	w, err := NewWatcher(path, func(*Catalog) {
		t.Error("malformed file must not trigger a reload")
	}, func(err error) {
		select {
		case errs <- err:
		default:
		}
	})
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer func() { _ = w.Close() }()

	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	select {
	case <-errs:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for load error")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cards.json")

	reloaded := make(chan *Catalog, 1)
	w, err := NewWatcher(path, func(c *Catalog) { reloaded <- c }, nil)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer func() { _ = w.Close() }()

	if err := os.WriteFile(filepath.Join(dir, "other.json"), []byte("[]"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	select {
	case <-reloaded:
		t.Fatal("unrelated file triggered a reload")
	case <-time.After(700 * time.Millisecond):
	}
}
