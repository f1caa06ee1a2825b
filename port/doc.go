// Package port defines the platform capability interface for the usbd
// servicing layer.
//
// A port is the platform-specific half of a USB device firmware: the
// code that knows the hardware's unique-ID registers, interrupt
// controller, and clock tree. The servicing layer is
// platform-agnostic and reaches the port only through the [Port]
// interface, implemented once per target.
//
// # Implementing a Port
//
// The only required operation is supplying a serial number for the
// device's string descriptors:
//
//	type myPort struct{}
//
//	func (myPort) SerialNumber(buf []byte) (int, error) {
//	    return port.WriteHex(buf, readUniqueID())
//	}
//
// Two ready-made implementations cover the common cases:
//
//   - [UniqueID] hex-encodes a hardware unique-ID byte region
//   - [Static] returns a fixed string, for hosted and simulated devices
//
// # Zero-Allocation Design
//
// All operations write into caller-provided buffers and perform no
// heap allocation, so they are usable from descriptor-construction
// paths on bare-metal targets.
package port
