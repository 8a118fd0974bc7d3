package grf

import (
	"io"
	"testing"

	"badc0de.net/pkg/go-newgrf/gtesting"
)

func word(v uint16) []byte  { return []byte{byte(v), byte(v >> 8)} }
func dword(v uint32) []byte { return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)} }

// buildV1 assembles a container version 1 image from raw record fragments.
func buildV1(records ...[]byte) []byte {
	img := append([]byte{}, word(4)...)
	img = append(img, RECORD_PSEUDO)
	img = append(img, dword(2)...) // claimed record count, ignored
	for _, rec := range records {
		img = append(img, rec...)
	}
	return append(img, word(0)...)
}

func TestContainerV1(t *testing.T) {
	payload := []byte{0x08, 'G', 'R', 'F'}
	pseudo := append(word(uint16(len(payload))), RECORD_PSEUDO)
	pseudo = append(pseudo, payload...)

	// A chunked real sprite: 9 decompressed bytes stored as a 4-byte plain
	// chunk plus a 5-byte repetition chunk. The size field counts the
	// decompressed bytes plus the 8 framing bytes.
	sprite := append(word(9+8), 0x01)
	sprite = append(sprite, make([]byte, 7)...) // xdim, ydim and offsets
	sprite = append(sprite, 0x04, 0xAA, 0xBB, 0xCC, 0xDD)
	sprite = append(sprite, 0xD8, 0x00)

	f, err := NewFile("test.grf", buildV1(pseudo, sprite))
	if err != nil {
		t.Fatalf("failed to parse container: %s", err)
	}
	gtesting.AssertEqualInt(t, "container version", int(f.ContainerVersion()), 1)

	size, typ, err := f.ReadRecordHeader()
	if err != nil {
		t.Fatalf("failed to read first record: %s", err)
	}
	gtesting.AssertEqualInt(t, "pseudo record type", int(typ), int(RECORD_PSEUDO))
	got, err := f.ReadPseudo(size)
	if err != nil {
		t.Fatalf("failed to read payload: %s", err)
	}
	gtesting.AssertEqualString(t, "pseudo payload", string(got), string(payload))

	size, typ, err = f.ReadRecordHeader()
	if err != nil {
		t.Fatalf("failed to read sprite record: %s", err)
	}
	gtesting.AssertEqualInt(t, "sprite record type", int(typ), 0x01)
	if err := f.SkipBytes(7); err != nil {
		t.Fatalf("failed to skip sprite header: %s", err)
	}
	if err := f.SkipSpriteData(typ, int(size)-8); err != nil {
		t.Fatalf("failed to skip sprite data: %s", err)
	}

	if _, _, err := f.ReadRecordHeader(); err != io.EOF {
		t.Errorf("got %v at end of records; want io.EOF", err)
	}

	// A second walk after Restart sees the same first record.
	f.Restart()
	size, typ, err = f.ReadRecordHeader()
	if err != nil || typ != RECORD_PSEUDO || size != uint32(len(payload)) {
		t.Errorf("restart walk got size %d type 0x%02X err %v", size, typ, err)
	}
}

func TestContainerV2(t *testing.T) {
	payload := []byte{0x0C, 0x00}

	var data []byte
	data = append(data, dword(4)...) // obligatory first record
	data = append(data, RECORD_PSEUDO)
	data = append(data, dword(2)...)
	data = append(data, dword(uint32(len(payload)))...)
	data = append(data, RECORD_PSEUDO)
	data = append(data, payload...)
	data = append(data, dword(4)...) // reference into the sprite section
	data = append(data, RECORD_REFERENCE)
	data = append(data, dword(7)...)
	data = append(data, dword(0)...) // end of data section

	var section []byte
	section = append(section, dword(7)...) // sprite 7, first zoom level
	section = append(section, dword(3)...)
	section = append(section, 0x04, 0x01, 0x02)
	section = append(section, dword(7)...) // sprite 7, second zoom level
	section = append(section, dword(1)...)
	section = append(section, 0x04)
	section = append(section, dword(0)...)

	img := append([]byte{0, 0}, containerV2Sig[:]...)
	img = append(img, dword(uint32(1+len(data)))...) // relative to end of this dword
	img = append(img, 0x00)                          // compression
	img = append(img, data...)
	img = append(img, section...)

	f, err := NewFile("test.grf", img)
	if err != nil {
		t.Fatalf("failed to parse container: %s", err)
	}
	gtesting.AssertEqualInt(t, "container version", int(f.ContainerVersion()), 2)

	size, typ, err := f.ReadRecordHeader()
	if err != nil {
		t.Fatalf("failed to read first record: %s", err)
	}
	gtesting.AssertEqualInt(t, "pseudo record type", int(typ), int(RECORD_PSEUDO))
	gtesting.AssertEqualInt(t, "pseudo record size", int(size), len(payload))
	if _, err := f.ReadPseudo(size); err != nil {
		t.Fatalf("failed to read payload: %s", err)
	}

	size, typ, err = f.ReadRecordHeader()
	if err != nil {
		t.Fatalf("failed to read reference record: %s", err)
	}
	gtesting.AssertEqualInt(t, "reference record type", int(typ), int(RECORD_REFERENCE))
	ref, err := f.ReadPseudo(size)
	if err != nil {
		t.Fatalf("failed to read reference payload: %s", err)
	}
	gtesting.AssertEqualUint32(t, "referenced sprite id", NewReader(ref).ReadDWord(), 7)

	if _, _, err := f.ReadRecordHeader(); err != io.EOF {
		t.Errorf("got %v at end of records; want io.EOF", err)
	}

	index, count, err := f.ReadSpriteSectionIndex()
	if err != nil {
		t.Fatalf("failed to index sprite section: %s", err)
	}
	gtesting.AssertEqualInt(t, "section entry count", count, 2)
	gtesting.AssertEqualInt(t, "distinct sprite ids", len(index), 1)
	gtesting.AssertEqualUint32(t, "first entry wins", index[7].Size, 3)
}

func TestContainerErrors(t *testing.T) {
	cases := []struct {
		name string
		img  []byte
	}{
		{"bad signature", append([]byte{0, 0}, []byte("GRFnotsig!")...)},
		{"bad first record", buildV1()[2:]},
		{"truncated", word(10)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := NewFile("test.grf", c.img); err == nil {
				t.Errorf("NewFile accepted a malformed container")
			}
		})
	}

	// Non-zero compression is refused.
	img := append([]byte{0, 0}, containerV2Sig[:]...)
	img = append(img, dword(1)...)
	img = append(img, 0x01)
	if _, err := NewFile("test.grf", img); err == nil {
		t.Errorf("NewFile accepted unsupported compression")
	}
}
