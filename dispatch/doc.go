// Package dispatch provides a serialized deferred-call loop for
// hosted and test builds of the usbd servicing layer.
//
// On bare-metal targets the embedding runtime supplies its own
// deferred-call facility and wires it to the runner directly. This
// package is the hosted analog: a single goroutine draining a
// buffered channel, giving the same guarantees the runner requires
// from any dispatcher:
//
//   - Dispatch never blocks (a full queue drops the call)
//   - Dispatched calls execute serialized, in submission order
//
// # Usage
//
//	loop := dispatch.NewLoop(0)
//	if err := loop.Start(ctx); err != nil {
//	    // already running
//	}
//	defer loop.Stop()
//
//	runner := usbd.NewRunner(engine, loop)
//	runner.Schedule()
//
// Stop waits for the in-flight call to finish; queued calls that have
// not started are abandoned with the loop's context.
package dispatch
