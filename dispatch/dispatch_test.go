package dispatch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/NeaveEng/usbd/pkg"
)

// waitFor polls cond until it returns true or the timeout expires.
func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestLoop_StartStop(t *testing.T) {
	loop := NewLoop(0)
	if loop.IsRunning() {
		t.Error("new loop reports running")
	}

	if err := loop.Start(context.Background()); err != nil {
		t.Fatalf("Start error: %v", err)
	}
	if !loop.IsRunning() {
		t.Error("started loop reports not running")
	}

	if err := loop.Stop(); err != nil {
		t.Fatalf("Stop error: %v", err)
	}
	if loop.IsRunning() {
		t.Error("stopped loop reports running")
	}
}

func TestLoop_DoubleStart(t *testing.T) {
	loop := NewLoop(0)
	if err := loop.Start(context.Background()); err != nil {
		t.Fatalf("Start error: %v", err)
	}
	defer loop.Stop()

	if err := loop.Start(context.Background()); !errors.Is(err, pkg.ErrAlreadyRunning) {
		t.Errorf("expected ErrAlreadyRunning, got %v", err)
	}
}

func TestLoop_StopIdempotent(t *testing.T) {
	loop := NewLoop(0)
	if err := loop.Stop(); err != nil {
		t.Errorf("Stop on new loop: %v", err)
	}

	if err := loop.Start(context.Background()); err != nil {
		t.Fatalf("Start error: %v", err)
	}
	if err := loop.Stop(); err != nil {
		t.Errorf("first Stop: %v", err)
	}
	if err := loop.Stop(); err != nil {
		t.Errorf("second Stop: %v", err)
	}
}

func TestLoop_DispatchExecutes(t *testing.T) {
	loop := NewLoop(0)
	if err := loop.Start(context.Background()); err != nil {
		t.Fatalf("Start error: %v", err)
	}
	defer loop.Stop()

	done := make(chan struct{})
	loop.Dispatch(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("dispatched call did not execute")
	}
}

func TestLoop_DispatchBeforeStart(t *testing.T) {
	loop := NewLoop(0)

	done := make(chan struct{})
	loop.Dispatch(func() { close(done) })

	if err := loop.Start(context.Background()); err != nil {
		t.Fatalf("Start error: %v", err)
	}
	defer loop.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("call enqueued before Start did not execute")
	}
}

func TestLoop_Serialized(t *testing.T) {
	loop := NewLoop(64)
	if err := loop.Start(context.Background()); err != nil {
		t.Fatalf("Start error: %v", err)
	}
	defer loop.Stop()

	var mutex sync.Mutex
	var active, maxActive, calls int

	const total = 32
	for i := 0; i < total; i++ {
		loop.Dispatch(func() {
			mutex.Lock()
			active++
			if active > maxActive {
				maxActive = active
			}
			mutex.Unlock()

			time.Sleep(time.Millisecond)

			mutex.Lock()
			active--
			calls++
			mutex.Unlock()
		})
	}

	waitFor(t, 5*time.Second, func() bool {
		mutex.Lock()
		defer mutex.Unlock()
		return calls == total
	})

	mutex.Lock()
	defer mutex.Unlock()
	if maxActive != 1 {
		t.Errorf("max concurrent calls = %d, want 1", maxActive)
	}
}

func TestLoop_DispatchFullQueueDrops(t *testing.T) {
	loop := NewLoop(1)

	// Not started: the single queue slot fills, further calls drop.
	loop.Dispatch(func() {})
	loop.Dispatch(func() {})
	loop.Dispatch(func() {})

	if got := loop.Dropped(); got != 2 {
		t.Errorf("dropped = %d, want 2", got)
	}
}

func TestLoop_StopWaitsForInflight(t *testing.T) {
	loop := NewLoop(0)
	if err := loop.Start(context.Background()); err != nil {
		t.Fatalf("Start error: %v", err)
	}

	started := make(chan struct{})
	finished := make(chan struct{})
	loop.Dispatch(func() {
		close(started)
		time.Sleep(50 * time.Millisecond)
		close(finished)
	})

	<-started
	if err := loop.Stop(); err != nil {
		t.Fatalf("Stop error: %v", err)
	}

	select {
	case <-finished:
	default:
		t.Error("Stop returned before in-flight call finished")
	}
}

func TestLoop_ContextCancellation(t *testing.T) {
	loop := NewLoop(0)
	ctx, cancel := context.WithCancel(context.Background())
	if err := loop.Start(ctx); err != nil {
		t.Fatalf("Start error: %v", err)
	}

	cancel()

	// The goroutine exits on its own; Stop still cleans up state.
	waitFor(t, time.Second, func() bool {
		select {
		case <-loop.done:
			return true
		default:
			return false
		}
	})

	if err := loop.Stop(); err != nil {
		t.Fatalf("Stop error: %v", err)
	}
}
