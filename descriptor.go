package usbd

import (
	"encoding/binary"

	"github.com/NeaveEng/usbd/pkg"
)

// DescriptorTypeString is the USB string descriptor type
// (USB 2.0 Spec Table 9-5).
const DescriptorTypeString = 0x03

// LangIDUSEnglish is the language ID for US English.
const LangIDUSEnglish = 0x0409

// maxStringUnits is the number of UTF-16 code units that fit in a
// string descriptor: bLength is one byte, so the payload is capped at
// 255 - 2 header bytes, rounded down to whole units.
const maxStringUnits = (255 - 2) / 2

// ASCIIDescriptorTo writes a USB string descriptor for ASCII text to
// buf without allocating. Each input byte becomes one UTF-16LE unit.
// text longer than the descriptor payload limit returns
// [pkg.ErrInvalidParameter]. Returns the number of bytes written and
// [pkg.ErrBufferTooSmall] if buf cannot hold the descriptor.
func ASCIIDescriptorTo(buf []byte, text []byte) (int, error) {
	if len(text) > maxStringUnits {
		return 0, pkg.ErrInvalidParameter
	}
	length := 2 + len(text)*2
	if len(buf) < length {
		return 0, pkg.ErrBufferTooSmall
	}
	buf[0] = uint8(length)
	buf[1] = DescriptorTypeString
	for i, c := range text {
		binary.LittleEndian.PutUint16(buf[2+i*2:], uint16(c))
	}
	return length, nil
}

// StringDescriptorTo writes a USB string descriptor to buf.
// Returns the number of bytes written. The descriptor encodes the
// string as UTF-16LE, one unit per rune; strings too long to encode
// are truncated to a whole number of units (bLength 254).
// If buf is too small, returns 0.
func StringDescriptorTo(buf []byte, s string) int {
	runes := []rune(s)
	if len(runes) > maxStringUnits {
		runes = runes[:maxStringUnits]
	}
	length := 2 + len(runes)*2
	if len(buf) < length {
		return 0
	}
	buf[0] = uint8(length)
	buf[1] = DescriptorTypeString
	for i, r := range runes {
		binary.LittleEndian.PutUint16(buf[2+i*2:], uint16(r))
	}
	return length
}

// LanguageDescriptorTo writes the language ID string descriptor to buf.
// Standard language ID for US English is 0x0409.
// Returns the number of bytes written. If buf is too small, returns 0.
func LanguageDescriptorTo(buf []byte, langIDs ...uint16) int {
	length := 2 + len(langIDs)*2
	if len(buf) < length {
		return 0
	}
	buf[0] = uint8(length)
	buf[1] = DescriptorTypeString
	for i, id := range langIDs {
		binary.LittleEndian.PutUint16(buf[2+i*2:], id)
	}
	return length
}
