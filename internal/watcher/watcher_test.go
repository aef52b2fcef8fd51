package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestWatcherDebouncesMatchingWrites(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "streakd.db")

	var calls int32
	fired := make(chan struct{}, 4)
	w, err := ForDatabase(db, func() {
		atomic.AddInt32(&calls, 1)
		fired <- struct{}{}
	})
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Close()
	w.SetDebounce(50 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx, nil)

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(db+"-wal", []byte{byte(i)}, 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for callback")
	}
	time.Sleep(150 * time.Millisecond)
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected one debounced callback, got %d", got)
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	fired := make(chan struct{}, 1)
	w, err := ForDatabase(filepath.Join(dir, "streakd.db"), func() { fired <- struct{}{} })
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Close()
	w.SetDebounce(20 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx, nil)

	if err := os.WriteFile(filepath.Join(dir, "activity.jsonl"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	select {
	case <-fired:
		t.Fatal("unexpected callback for unrelated file")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestNewFailsForMissingDirectory(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "missing"), nil, func() {}); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
