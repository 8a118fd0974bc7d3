package grf

import (
	"fmt"
)

// Label is a four-character code such as a cargo, rail type or list label.
// In memory the first character occupies the most significant byte, so that
// "PASS" compares and prints naturally. On disk labels are stored in reading
// order, which a little-endian doubleword read reverses; ReadLabel performs
// the byte swap.
type Label uint32

// MakeLabel builds a Label from its natural reading order string. Only the
// first four bytes are used; shorter strings are padded with NUL.
func MakeLabel(s string) Label {
	var l Label
	for i := 0; i < 4; i++ {
		l <<= 8
		if i < len(s) {
			l |= Label(s[i])
		}
	}
	return l
}

// ReadLabel reads a four-character code from the payload, undoing the
// on-disk byte order.
func (r *Reader) ReadLabel() Label {
	return Label(swap32(r.ReadDWord()))
}

// SwappedLabel builds a Label from a doubleword that was read in on-disk
// byte order, for callers that only discover after the read that the value
// is a label.
func SwappedLabel(v uint32) Label {
	return Label(swap32(v))
}

func swap32(v uint32) uint32 {
	return v<<24 | v<<8&0x00FF0000 | v>>8&0x0000FF00 | v>>24
}

// Swapped returns the label in on-disk byte order, for writing or for
// comparison against raw doubleword reads.
func (l Label) Swapped() uint32 {
	return swap32(uint32(l))
}

// String renders the label as four characters, escaping bytes outside the
// printable ASCII range.
func (l Label) String() string {
	b := [4]byte{byte(l >> 24), byte(l >> 16), byte(l >> 8), byte(l)}
	out := make([]byte, 0, 16)
	for _, c := range b {
		if c >= 0x20 && c < 0x7F {
			out = append(out, c)
		} else {
			out = append(out, fmt.Sprintf("\\x%02X", c)...)
		}
	}
	return string(out)
}
