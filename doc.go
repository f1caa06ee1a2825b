// Package usbd implements deferred servicing for an embedded USB
// device stack.
//
// USB controller interrupts must stay short, but a device protocol
// engine's servicing work (enumeration, transfer completion,
// descriptor serving) is not interrupt-safe. This package bridges the
// two execution contexts: interrupt handlers request servicing, and
// the actual work runs later in a deferred-task context controlled by
// the embedding runtime.
//
// # Architecture
//
// The package is organized around three small responsibilities:
//
//   - [Runner] coalesces servicing triggers and performs one engine
//     service pass per dispatched run
//   - [Servicer] and [Dispatcher] are the contracts presented by the
//     external protocol engine and the host runtime's deferred-call
//     facility
//   - Identity helpers build the serial number string descriptor from
//     the platform's Port implementation, defined in the
//     [github.com/NeaveEng/usbd/port] package
//
// Data flows hardware interrupt → [Runner.Schedule] → dispatcher →
// [Runner.RunTask] → [Servicer.Service].
//
// # Coalescing
//
// Any number of Schedule calls before the next run executes produce
// exactly one dispatched run. The runner clears its pending flag
// before servicing, so a trigger arriving mid-service schedules a
// fresh run rather than being lost. The flag is manipulated with a
// single atomic compare-and-swap; no other state crosses the
// interrupt/task boundary.
//
// # Zero-Allocation Design
//
// The trigger path performs no heap allocation and never blocks, so it
// is safe from interrupt context on bare-metal and TinyGo targets.
// Identity helpers write into caller-provided buffers following the
// same discipline.
//
// # Example
//
//	loop := dispatch.NewLoop(0)
//	loop.Start(ctx)
//
//	runner := usbd.NewRunner(engine, loop)
//
//	// From the USB interrupt handler:
//	runner.Schedule()
//
//	// During descriptor construction:
//	var desc [usbd.MaxSerialDescriptorSize]byte
//	n, err := usbd.SerialDescriptorTo(desc[:], port.UniqueID(uniqueID))
//
// A channel-based dispatcher for hosted and test builds is available
// in [github.com/NeaveEng/usbd/dispatch].
package usbd
