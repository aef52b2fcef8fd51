package filelock

import (
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestLockSerialisesHolders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "streakd.lock")
	unlock, err := Lock(path)
	if err != nil {
		t.Fatalf("first lock: %v", err)
	}

	var wg sync.WaitGroup
	acquired := make(chan time.Time, 1)
	wg.Add(1)
	go func() {
		defer wg.Done()
		second, err := Lock(path)
		if err != nil {
			t.Errorf("second lock: %v", err)
			return
		}
		acquired <- time.Now()
		_ = second()
	}()

	time.Sleep(50 * time.Millisecond)
	released := time.Now()
	if err := unlock(); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	wg.Wait()

	select {
	case at := <-acquired:
		if at.Before(released) {
			t.Fatal("second holder acquired the lock before release")
		}
	default:
		t.Fatal("second holder never acquired the lock")
	}
}
