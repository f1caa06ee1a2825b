package port

import (
	"encoding/hex"

	"github.com/NeaveEng/usbd/pkg"
)

// Port supplies platform identity to the servicing layer.
//
// Exactly one implementation exists per target platform. The layer
// calls SerialNumber once during descriptor construction; it never
// retains buf after the call returns.
type Port interface {
	// SerialNumber writes the device serial number into buf and returns
	// the number of bytes written. The content must be printable ASCII
	// suitable for a USB string descriptor. Returns
	// [pkg.ErrBufferTooSmall] if buf cannot hold the serial number.
	SerialNumber(buf []byte) (int, error)
}

// WriteHex writes the lowercase hexadecimal encoding of src into dst
// and returns the number of bytes written (always 2*len(src)).
// Bytes are encoded in order, two digits per byte, no separators.
// Returns [pkg.ErrBufferTooSmall] if dst is shorter than 2*len(src).
//
// Most ports derive their serial number from a hardware unique-ID
// byte region; this is the helper for that.
func WriteHex(dst, src []byte) (int, error) {
	if len(dst) < hex.EncodedLen(len(src)) {
		return 0, pkg.ErrBufferTooSmall
	}
	return hex.Encode(dst, src), nil
}

// UniqueID implements [Port] by hex-encoding a hardware unique-ID
// region. The region is read only during the SerialNumber call; no
// copy is retained.
type UniqueID []byte

// SerialNumber writes the hex encoding of the unique-ID region.
func (u UniqueID) SerialNumber(buf []byte) (int, error) {
	return WriteHex(buf, u)
}

// Static implements [Port] with a fixed serial string, for hosted and
// simulated devices.
type Static string

// SerialNumber copies the fixed serial string into buf.
func (s Static) SerialNumber(buf []byte) (int, error) {
	if len(buf) < len(s) {
		return 0, pkg.ErrBufferTooSmall
	}
	return copy(buf, s), nil
}
