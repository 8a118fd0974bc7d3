package grf

import (
	"fmt"
)

// OutOfBounds is the signal value raised when a read would run past the end
// of a pseudo-sprite payload. It is thrown as a panic and recovered in
// exactly one place, the action dispatch loop, which treats it as a malformed
// record and disables the offending file. It never escapes the decoder.
type OutOfBounds struct {
	Pos  int
	Want int
	Len  int
}

func (e OutOfBounds) Error() string {
	return fmt.Sprintf("read of %d bytes at offset %d exceeds pseudo-sprite length %d", e.Want, e.Pos, e.Len)
}

// Reader is a cursor over a single pseudo-sprite payload.
//
// All multi-byte reads are little-endian. Every read checks the remaining
// length first and panics with OutOfBounds on underrun, so decoding code can
// consume fields without per-read error plumbing.
type Reader struct {
	data []byte
	pos  int
}

// NewReader returns a cursor over data. The slice is aliased, not copied.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

func (r *Reader) check(n int) {
	if r.pos+n > len(r.data) {
		panic(OutOfBounds{Pos: r.pos, Want: n, Len: len(r.data)})
	}
}

func (r *Reader) ReadByte() uint8 {
	r.check(1)
	b := r.data[r.pos]
	r.pos++
	return b
}

func (r *Reader) ReadWord() uint16 {
	b := uint16(r.ReadByte())
	return b | uint16(r.ReadByte())<<8
}

func (r *Reader) ReadDWord() uint32 {
	w := uint32(r.ReadWord())
	return w | uint32(r.ReadWord())<<16
}

// PeekDWord reads a little-endian doubleword without advancing the cursor.
func (r *Reader) PeekDWord() uint32 {
	pos := r.pos
	v := r.ReadDWord()
	r.pos = pos
	return v
}

// ReadExtendedByte reads a byte-sized value with a word escape: 0xFF means
// the real value follows as a word.
func (r *Reader) ReadExtendedByte() uint16 {
	v := uint16(r.ReadByte())
	if v == 0xFF {
		return r.ReadWord()
	}
	return v
}

// ReadVarSize reads an unsigned value of the given byte width (1, 2 or 4).
// Any other width panics with OutOfBounds semantics as it indicates a
// decoding bug upstream.
func (r *Reader) ReadVarSize(size uint8) uint32 {
	switch size {
	case 1:
		return uint32(r.ReadByte())
	case 2:
		return uint32(r.ReadWord())
	case 4:
		return r.ReadDWord()
	default:
		panic(OutOfBounds{Pos: r.pos, Want: int(size), Len: len(r.data)})
	}
}

// ReadString reads a NUL-terminated byte string. If no terminator occurs
// before the end of the payload, the rest of the payload is returned and the
// cursor stops at the end; this is not an error.
func (r *Reader) ReadString() string {
	start := r.pos
	for r.pos < len(r.data) && r.data[r.pos] != 0 {
		r.pos++
	}
	s := string(r.data[start:r.pos])
	if r.pos < len(r.data) {
		r.pos++ // consume the NUL
	}
	return s
}

// ReadBytes returns the next n bytes as a subslice of the payload.
func (r *Reader) ReadBytes(n int) []byte {
	r.check(n)
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b
}

func (r *Reader) Skip(n int) {
	r.check(n)
	r.pos += n
}

// HasData reports whether at least n bytes remain; with no argument it
// checks for at least one byte.
func (r *Reader) HasData(n ...int) bool {
	want := 1
	if len(n) > 0 {
		want = n[0]
	}
	return r.Remaining() >= want
}

func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

func (r *Reader) Pos() int {
	return r.pos
}

// ResetReadPosition rewinds (or forwards) the cursor to an absolute payload
// offset previously obtained from Pos.
func (r *Reader) ResetReadPosition(pos int) {
	if pos < 0 || pos > len(r.data) {
		panic(OutOfBounds{Pos: pos, Want: 0, Len: len(r.data)})
	}
	r.pos = pos
}
