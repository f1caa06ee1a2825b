package dispatch

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/NeaveEng/usbd/pkg"
)

// DefaultQueueDepth is the queue depth used when none is specified.
// A coalescing runner needs only one slot; the default leaves headroom
// for additional deferred calls sharing the loop.
const DefaultQueueDepth = 8

// Loop is a serialized deferred-call dispatcher backed by a single
// goroutine draining a buffered channel. It satisfies the runner's
// Dispatcher contract: Dispatch never blocks, and dispatched calls
// execute one at a time in submission order.
type Loop struct {
	queue chan func()

	// State
	running bool
	mutex   sync.Mutex

	// Context for cancellation
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	dropped atomic.Uint64
}

// NewLoop creates a dispatch loop with the given queue depth.
// A depth of zero or less selects [DefaultQueueDepth].
func NewLoop(depth int) *Loop {
	if depth <= 0 {
		depth = DefaultQueueDepth
	}
	return &Loop{
		queue: make(chan func(), depth),
	}
}

// Start starts the dispatch loop. Calls enqueued before Start execute
// once the loop is running. Returns [pkg.ErrAlreadyRunning] if the
// loop is already started.
func (l *Loop) Start(ctx context.Context) error {
	l.mutex.Lock()
	if l.running {
		l.mutex.Unlock()
		return pkg.ErrAlreadyRunning
	}
	l.ctx, l.cancel = context.WithCancel(ctx)
	l.done = make(chan struct{})
	l.running = true
	l.mutex.Unlock()

	pkg.LogDebug(pkg.ComponentDispatch, "dispatch loop started")

	go l.run()

	return nil
}

// Stop stops the dispatch loop and waits for the in-flight call, if
// any, to finish. Queued calls that have not started are abandoned.
// Stopping a loop that is not running is a no-op.
func (l *Loop) Stop() error {
	l.mutex.Lock()
	if !l.running {
		l.mutex.Unlock()
		return nil
	}
	l.running = false
	cancel := l.cancel
	done := l.done
	l.mutex.Unlock()

	cancel()
	<-done

	pkg.LogDebug(pkg.ComponentDispatch, "dispatch loop stopped")
	return nil
}

// IsRunning returns true if the loop is running.
func (l *Loop) IsRunning() bool {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return l.running
}

// Dispatch enqueues fn for deferred execution. It never blocks: if the
// queue is full the call is dropped and counted. Callers relying on a
// pending flag must fall back to polling when drops occur.
func (l *Loop) Dispatch(fn func()) {
	select {
	case l.queue <- fn:
	default:
		l.dropped.Add(1)
		pkg.LogWarn(pkg.ComponentDispatch, "dispatch queue full, call dropped")
	}
}

// Dropped returns the number of calls dropped due to a full queue.
func (l *Loop) Dropped() uint64 {
	return l.dropped.Load()
}

// run drains the queue until the context is cancelled.
func (l *Loop) run() {
	defer close(l.done)
	for {
		select {
		case <-l.ctx.Done():
			return
		case fn := <-l.queue:
			fn()
		}
	}
}
