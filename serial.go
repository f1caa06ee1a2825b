package usbd

import (
	"github.com/NeaveEng/usbd/pkg"
	"github.com/NeaveEng/usbd/port"
)

// MaxSerialLength is the maximum length in bytes of a device serial
// number string.
const MaxSerialLength = 40

// SerialNumber invokes the port's serial number hook and validates the
// result. buf must have capacity for at least [MaxSerialLength] bytes;
// the hook sees exactly that much of it. Returns the number of bytes
// written.
//
// Returns [pkg.ErrBufferTooSmall] if buf is too small and
// [pkg.ErrInvalidParameter] if the port produces a length outside
// [0, MaxSerialLength] or non-printable content.
func SerialNumber(p port.Port, buf []byte) (int, error) {
	if len(buf) < MaxSerialLength {
		return 0, pkg.ErrBufferTooSmall
	}
	n, err := p.SerialNumber(buf[:MaxSerialLength])
	if err != nil {
		return 0, err
	}
	if n < 0 || n > MaxSerialLength {
		return 0, pkg.ErrInvalidParameter
	}
	for _, c := range buf[:n] {
		// USB string descriptors carry the serial verbatim; restrict the
		// port to printable ASCII.
		if c < 0x20 || c > 0x7E {
			return 0, pkg.ErrInvalidParameter
		}
	}
	return n, nil
}

// SerialDescriptorTo writes the USB string descriptor for the port's
// serial number into buf and returns the number of bytes written. The
// serial text is encoded as UTF-16LE per the USB string descriptor
// layout. buf must have capacity for 2 + 2*n bytes, where n is the
// serial length; [MaxSerialDescriptorSize] always suffices.
func SerialDescriptorTo(buf []byte, p port.Port) (int, error) {
	var serial [MaxSerialLength]byte
	n, err := SerialNumber(p, serial[:])
	if err != nil {
		return 0, err
	}

	length, err := ASCIIDescriptorTo(buf, serial[:n])
	if err != nil {
		return 0, err
	}

	pkg.LogDebug(pkg.ComponentDescriptor, "serial descriptor built",
		"length", length)

	return length, nil
}

// MaxSerialDescriptorSize is the size in bytes of the largest serial
// number string descriptor.
const MaxSerialDescriptorSize = 2 + 2*MaxSerialLength
