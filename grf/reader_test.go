package grf

import (
	"testing"

	"badc0de.net/pkg/go-newgrf/gtesting"
)

func TestReaderScalars(t *testing.T) {
	r := NewReader([]byte{0x12, 0x34, 0x56, 0x78, 0x9A, 0xBC, 0xDE})

	gtesting.AssertEqualInt(t, "byte", int(r.ReadByte()), 0x12)
	gtesting.AssertEqualInt(t, "word is little-endian", int(r.ReadWord()), 0x5634)
	gtesting.AssertEqualUint32(t, "dword is little-endian", r.ReadDWord(), 0xDEBC9A78)
	gtesting.AssertEqualBool(t, "exhausted", r.HasData(), false)
}

func TestReaderExtendedByte(t *testing.T) {
	r := NewReader([]byte{0x04, 0xFE, 0xFF, 0x34, 0x12})

	gtesting.AssertEqualInt(t, "plain value", int(r.ReadExtendedByte()), 0x04)
	gtesting.AssertEqualInt(t, "largest unescaped value", int(r.ReadExtendedByte()), 0xFE)
	gtesting.AssertEqualInt(t, "escaped word", int(r.ReadExtendedByte()), 0x1234)
}

func TestReaderExtendedByteAllValues(t *testing.T) {
	for v := 0; v <= 0xFFFE; v++ {
		var b []byte
		if v < 0xFF {
			b = []byte{byte(v)}
		} else {
			b = []byte{0xFF, byte(v), byte(v >> 8)}
		}
		r := NewReader(b)
		if got := int(r.ReadExtendedByte()); got != v {
			t.Fatalf("value %d decoded as %d", v, got)
		}
		if r.HasData() {
			t.Fatalf("value %d left %d bytes unread", v, r.Remaining())
		}
	}
}

func TestReaderVarSize(t *testing.T) {
	r := NewReader([]byte{0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77})

	gtesting.AssertEqualUint32(t, "size 1", r.ReadVarSize(1), 0x11)
	gtesting.AssertEqualUint32(t, "size 2", r.ReadVarSize(2), 0x3322)
	gtesting.AssertEqualUint32(t, "size 4", r.ReadVarSize(4), 0x77665544)
}

func TestReaderString(t *testing.T) {
	r := NewReader([]byte{'a', 'b', 'c', 0, 'd', 'e'})

	gtesting.AssertEqualString(t, "terminated string", r.ReadString(), "abc")
	gtesting.AssertEqualString(t, "unterminated tail", r.ReadString(), "de")
	gtesting.AssertEqualBool(t, "cursor stops at end", r.HasData(), false)
}

func TestReaderPeekAndReset(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02, 0x03, 0x04, 0x05})

	gtesting.AssertEqualUint32(t, "peek", r.PeekDWord(), 0x04030201)
	gtesting.AssertEqualInt(t, "peek does not advance", r.Pos(), 0)
	r.Skip(3)
	pos := r.Pos()
	r.ReadWord()
	r.ResetReadPosition(pos)
	gtesting.AssertEqualInt(t, "reset rewinds", r.Pos(), 3)
	gtesting.AssertEqualInt(t, "remaining", r.Remaining(), 2)
}

// recoverOutOfBounds runs f and reports whether it panicked with OutOfBounds.
func recoverOutOfBounds(f func()) (oob bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(OutOfBounds); !ok {
				panic(r)
			}
			oob = true
		}
	}()
	f()
	return false
}

func TestReaderBounds(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		read func(r *Reader)
	}{
		{"byte from empty", nil, func(r *Reader) { r.ReadByte() }},
		{"word from one byte", []byte{1}, func(r *Reader) { r.ReadWord() }},
		{"dword from three bytes", []byte{1, 2, 3}, func(r *Reader) { r.ReadDWord() }},
		{"extended byte escape", []byte{0xFF, 0x01}, func(r *Reader) { r.ReadExtendedByte() }},
		{"skip past end", []byte{1, 2}, func(r *Reader) { r.Skip(3) }},
		{"bytes past end", []byte{1, 2}, func(r *Reader) { r.ReadBytes(3) }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := NewReader(c.data)
			if !recoverOutOfBounds(func() { c.read(r) }) {
				t.Errorf("read did not raise OutOfBounds")
			}
		})
	}

	// A read up to the exact end must not raise.
	r := NewReader([]byte{1, 2, 3, 4})
	if recoverOutOfBounds(func() { r.ReadDWord() }) {
		t.Errorf("exact-length read raised OutOfBounds")
	}
}

func TestLabel(t *testing.T) {
	r := NewReader([]byte{'P', 'A', 'S', 'S'})
	l := r.ReadLabel()

	gtesting.AssertEqualUint32(t, "reading order restored", uint32(l), uint32(MakeLabel("PASS")))
	gtesting.AssertEqualString(t, "string form", l.String(), "PASS")
	gtesting.AssertEqualUint32(t, "swapped returns disk order", l.Swapped(), 0x53534150)

	odd := MakeLabel("\x01AB\xFF")
	gtesting.AssertEqualString(t, "escaped string form", odd.String(), "\\x01AB\\xFF")
}
