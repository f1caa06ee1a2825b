package usbd

import (
	"sync/atomic"

	"github.com/NeaveEng/usbd/pkg"
)

// Servicer is the external USB device protocol engine serviced by the
// runner. The engine owns enumeration, transfer completion, and
// descriptor serving; the runner only decides when a servicing pass
// happens.
type Servicer interface {
	// Service performs exactly one servicing pass of the device stack.
	// If more work remains afterwards, the engine is expected to raise
	// another hardware event, which re-triggers scheduling.
	Service()
}

// Deiniter is implemented by engines that support disabling the USB
// device stack at runtime. Engines without runtime-disable support
// simply do not implement it.
type Deiniter interface {
	// Deinit releases any resources acquired by the device stack.
	Deinit() error
}

// Dispatcher is the host runtime's deferred-call facility. The runner
// hands it work requested from interrupt context; the dispatcher
// executes that work later in deferred-task context.
//
// Dispatch must be non-blocking and allocation-free so it is safe to
// invoke from any interrupt priority the USB hardware interrupt can
// occur at. The dispatcher must execute dispatched calls serialized,
// never concurrently with each other.
type Dispatcher interface {
	Dispatch(fn func())
}

// Stats reports runner activity counters.
type Stats struct {
	Runs      uint64 // Completed service passes
	Triggers  uint64 // Total Schedule calls
	Coalesced uint64 // Schedule calls absorbed by an already-pending run
}

// Runner moves USB device-stack servicing out of interrupt context.
//
// Interrupt handlers (or polling code) call [Runner.Schedule] when USB
// activity is detected. The runner coalesces redundant triggers into a
// single pending run, submits it to the dispatcher, and performs one
// engine service pass per [Runner.RunTask] invocation.
//
// The pending flag is the only state shared between the trigger and
// task contexts. Schedule may be called from any goroutine; RunTask is
// invoked only from the dispatcher's serialized context.
//
// A Service call that blocks indefinitely stalls the deferred-task
// context; guarding against that is the embedding runtime's concern
// (a watchdog, if any), not the runner's.
type Runner struct {
	servicer   Servicer
	dispatcher Dispatcher

	// pending is true while a dispatched run has not yet started.
	pending atomic.Bool

	runs      atomic.Uint64
	triggers  atomic.Uint64
	coalesced atomic.Uint64

	// run is bound once so Schedule stays allocation-free.
	run func()
}

// NewRunner creates a runner servicing the given engine through the
// given dispatcher. Both must be non-nil.
func NewRunner(servicer Servicer, dispatcher Dispatcher) *Runner {
	r := &Runner{
		servicer:   servicer,
		dispatcher: dispatcher,
	}
	r.run = r.RunTask
	return r
}

// Schedule requests that a servicing pass happen soon.
//
// If no run is pending, one is marked pending and submitted to the
// dispatcher; otherwise Schedule is a no-op, so any number of triggers
// before the next run results in exactly one dispatched run. Schedule
// is non-blocking, allocation-free, and never fails. If the dispatcher
// drops the submission the pending run is lost until the next trigger
// or a fallback poll; that policy belongs to the caller.
func (r *Runner) Schedule() {
	r.triggers.Add(1)
	if !r.pending.CompareAndSwap(false, true) {
		r.coalesced.Add(1)
		return
	}
	r.dispatcher.Dispatch(r.run)
}

// RunTask performs one engine service pass. It is invoked by the
// dispatcher and must never be invoked concurrently with itself;
// back-to-back invocations are fine.
//
// The pending flag is cleared before servicing begins. A trigger
// arriving mid-service therefore wins a fresh dispatch instead of
// being lost.
func (r *Runner) RunTask() {
	r.pending.Store(false)
	r.servicer.Service()
	r.runs.Add(1)
}

// Pending reports whether a dispatched run has not yet started.
func (r *Runner) Pending() bool {
	return r.pending.Load()
}

// Deinit disables the USB device stack at runtime. Any pending run is
// discarded. Returns [pkg.ErrNotSupported] if the engine does not
// support runtime disable.
//
// Deinit does not reach into the dispatcher: a run already sitting in
// its queue will still invoke Service on the deinitialized engine.
// The caller must quiesce the dispatcher (stop it, or let queued runs
// finish) before calling Deinit.
func (r *Runner) Deinit() error {
	r.pending.Store(false)
	d, ok := r.servicer.(Deiniter)
	if !ok {
		return pkg.ErrNotSupported
	}
	if err := d.Deinit(); err != nil {
		return err
	}
	pkg.LogDebug(pkg.ComponentRunner, "device stack deinitialized")
	return nil
}

// Stats returns a snapshot of the runner's activity counters.
func (r *Runner) Stats() Stats {
	return Stats{
		Runs:      r.runs.Load(),
		Triggers:  r.triggers.Load(),
		Coalesced: r.coalesced.Load(),
	}
}
