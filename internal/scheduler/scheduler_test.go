package scheduler

import (
	"sync"
	"testing"
	"time"

	"github.com/synheart-ai/synheart-core/internal/hsimodel"
)

func TestSchedulerFiresImmediateTickForEveryWindowType(t *testing.T) {
	s, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	var mu sync.Mutex
	seen := make(map[hsimodel.WindowType]bool)
	var wg sync.WaitGroup
	wg.Add(len(hsimodel.AllWindowTypes()))

	err = s.Start(func(w hsimodel.WindowType) {
		mu.Lock()
		first := !seen[w]
		seen[w] = true
		mu.Unlock()
		if first {
			wg.Done()
		}
	})
	if err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	defer s.Stop()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		mu.Lock()
		defer mu.Unlock()
		t.Fatalf("timed out waiting for immediate tick on all window types, saw: %v", seen)
	}
}

func TestSchedulerStopPreventsFurtherCallbacks(t *testing.T) {
	s, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	var mu sync.Mutex
	count := 0
	err = s.Start(func(hsimodel.WindowType) {
		mu.Lock()
		count++
		mu.Unlock()
	})
	if err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	time.Sleep(100 * time.Millisecond)
	if err := s.Stop(); err != nil {
		t.Fatalf("Stop() error: %v", err)
	}

	mu.Lock()
	afterStop := count
	mu.Unlock()

	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if count != afterStop {
		t.Errorf("callback fired after Stop(): count went from %d to %d", afterStop, count)
	}
}
