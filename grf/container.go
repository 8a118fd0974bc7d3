package grf

// This file contains code directly related to decoding the GRF container
// formats: record framing, the version 2 header, and real-sprite skipping.

import (
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"
)

// Container format versions. Version 0 marks a file that carries the
// version 2 lead-in but a corrupt signature.
const (
	CONTAINER_INVALID uint8 = 0
	CONTAINER_V1      uint8 = 1
	CONTAINER_V2      uint8 = 2
)

// The version 2 signature, following the zero word that terminates version 1
// readers early.
var containerV2Sig = [8]byte{'G', 'R', 'F', 0x82, 0x0D, 0x0A, 0x1A, 0x0A}

// Record type bytes with special meaning in the data section. Any other
// value marks an inline real sprite (container version 1 only).
const (
	RECORD_PSEUDO    uint8 = 0xFF
	RECORD_REFERENCE uint8 = 0xFD
)

// File is a GRF container held in memory, with a read position over its
// data-section records.
//
// Each loading stage walks the records from the beginning; Restart rewinds
// to the first record. Record payloads returned by ReadPseudo alias the
// underlying buffer and must not be modified.
type File struct {
	path string
	data []byte
	pos  int

	containerVersion uint8
	recordStart      int
	spriteSection    int // absolute offset, -1 for container version 1
	compression      uint8
}

// SectionEntry locates one entry of the version 2 sprite section.
type SectionEntry struct {
	Offset int
	Size   uint32
}

// Open reads the file at path into memory and parses the container header.
func Open(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening grf: %s", err)
	}
	return NewFile(path, data)
}

// NewFile parses the container header of an in-memory GRF image. The path is
// used for log and error messages only.
func NewFile(path string, data []byte) (*File, error) {
	f := &File{path: path, data: data, spriteSection: -1}

	ver, err := f.sniffVersion()
	if err != nil {
		return nil, err
	}
	f.containerVersion = ver
	glog.V(2).Infof("%s: container version %d", path, ver)

	if ver == CONTAINER_V2 {
		// Offset of the sprite section, counted from the end of this
		// doubleword, followed by the data-section compression byte.
		off, err := f.readDWord()
		if err != nil {
			return nil, fmt.Errorf("%s: reading sprite section offset: %s", path, err)
		}
		f.spriteSection = f.pos + int(off)
		comp, err := f.readByte()
		if err != nil {
			return nil, fmt.Errorf("%s: reading compression byte: %s", path, err)
		}
		if comp != 0 {
			return nil, fmt.Errorf("%s: unsupported data section compression 0x%02X", path, comp)
		}
		f.compression = comp
	}

	if err := f.readDummyRecord(); err != nil {
		return nil, err
	}
	f.recordStart = f.pos
	return f, nil
}

func (f *File) sniffVersion() (uint8, error) {
	w, err := f.readWord()
	if err != nil {
		return CONTAINER_INVALID, fmt.Errorf("%s: reading container lead-in: %s", f.path, err)
	}
	if w != 0 {
		// Version 1 has no header; the word was the first record size.
		f.pos = 0
		return CONTAINER_V1, nil
	}
	var sig [8]byte
	if copy(sig[:], f.data[f.pos:]) != 8 || sig != containerV2Sig {
		return CONTAINER_INVALID, fmt.Errorf("%s: bad container signature", f.path)
	}
	f.pos += 8
	return CONTAINER_V2, nil
}

// readDummyRecord consumes the obligatory first record: a four-byte pseudo
// sprite holding a doubleword record count that nothing trusts.
func (f *File) readDummyRecord() error {
	size, typ, err := f.ReadRecordHeader()
	if err != nil {
		return fmt.Errorf("%s: reading first record: %s", f.path, err)
	}
	if size != 4 || typ != RECORD_PSEUDO {
		return fmt.Errorf("%s: unexpected first record (size %d, type 0x%02X)", f.path, size, typ)
	}
	if _, err := f.readDWord(); err != nil {
		return fmt.Errorf("%s: reading first record: %s", f.path, err)
	}
	return nil
}

func (f *File) Path() string { return f.path }

func (f *File) ContainerVersion() uint8 { return f.containerVersion }

// Restart rewinds the read position to the first record after the header,
// for the next loading stage.
func (f *File) Restart() { f.pos = f.recordStart }

func (f *File) Pos() int { return f.pos }

// SeekTo moves the read position to an absolute offset previously obtained
// from Pos.
func (f *File) SeekTo(pos int) { f.pos = pos }

func (f *File) readByte() (uint8, error) {
	if f.pos >= len(f.data) {
		return 0, io.ErrUnexpectedEOF
	}
	b := f.data[f.pos]
	f.pos++
	return b, nil
}

func (f *File) readWord() (uint16, error) {
	if f.pos+2 > len(f.data) {
		return 0, io.ErrUnexpectedEOF
	}
	v := uint16(f.data[f.pos]) | uint16(f.data[f.pos+1])<<8
	f.pos += 2
	return v, nil
}

func (f *File) readDWord() (uint32, error) {
	if f.pos+4 > len(f.data) {
		return 0, io.ErrUnexpectedEOF
	}
	v := uint32(f.data[f.pos]) | uint32(f.data[f.pos+1])<<8 |
		uint32(f.data[f.pos+2])<<16 | uint32(f.data[f.pos+3])<<24
	f.pos += 4
	return v, nil
}

// ReadRecordHeader reads the next record's size and type. A zero size marks
// the end of the data section and is reported as io.EOF; the type byte is
// not read in that case.
func (f *File) ReadRecordHeader() (size uint32, typ uint8, err error) {
	if f.containerVersion >= CONTAINER_V2 {
		size, err = f.readDWord()
	} else {
		var w uint16
		w, err = f.readWord()
		size = uint32(w)
	}
	if err != nil {
		return 0, 0, fmt.Errorf("%s: reading record size: %s", f.path, err)
	}
	if size == 0 {
		return 0, 0, io.EOF
	}
	typ, err = f.readByte()
	if err != nil {
		return 0, 0, fmt.Errorf("%s: reading record type: %s", f.path, err)
	}
	return size, typ, nil
}

// ReadPseudo returns the next size bytes as the payload of a pseudo-sprite
// or reference record. The slice aliases the file buffer.
func (f *File) ReadPseudo(size uint32) ([]byte, error) {
	if f.pos+int(size) > len(f.data) {
		return nil, fmt.Errorf("%s: record of %d bytes truncated at offset %d", f.path, size, f.pos)
	}
	b := f.data[f.pos : f.pos+int(size)]
	f.pos += int(size)
	return b, nil
}

// SkipBytes advances the read position without interpreting the data.
func (f *File) SkipBytes(n int) error {
	if n < 0 || f.pos+n > len(f.data) {
		return fmt.Errorf("%s: skip of %d bytes at offset %d exceeds file size %d", f.path, n, f.pos, len(f.data))
	}
	f.pos += n
	return nil
}

// SkipSpriteData skips the pixel data of an inline real sprite in a version 1
// container. The type byte selects between plainly stored rows and the
// chunked transparency encoding; num counts the remaining record bytes after
// the 8-byte sprite header.
func (f *File) SkipSpriteData(typ uint8, num int) error {
	if typ&2 != 0 {
		return f.SkipBytes(num)
	}
	for num > 0 {
		b, err := f.readByte()
		if err != nil {
			return fmt.Errorf("%s: reading sprite chunk header: %s", f.path, err)
		}
		i := int8(b)
		if i >= 0 {
			size := int(i)
			if size == 0 {
				size = 0x80
			}
			if size > num {
				return fmt.Errorf("%s: sprite chunk of %d bytes overruns record (%d left)", f.path, size, num)
			}
			num -= size
			if err := f.SkipBytes(size); err != nil {
				return err
			}
		} else {
			size := int(-(i >> 3))
			num -= size
			if _, err := f.readByte(); err != nil {
				return fmt.Errorf("%s: reading sprite chunk offset: %s", f.path, err)
			}
		}
	}
	return nil
}

// ReadSpriteSectionIndex walks the version 2 sprite section and returns the
// offset and size of the first entry for each sprite ID, plus the total
// entry count. Later entries for the same ID hold further zoom levels and
// keep the first entry's slot.
func (f *File) ReadSpriteSectionIndex() (map[uint32]SectionEntry, int, error) {
	if f.containerVersion < CONTAINER_V2 {
		return nil, 0, fmt.Errorf("%s: container version %d has no sprite section", f.path, f.containerVersion)
	}
	save := f.pos
	defer func() { f.pos = save }()
	f.pos = f.spriteSection

	index := make(map[uint32]SectionEntry)
	count := 0
	for {
		id, err := f.readDWord()
		if err != nil {
			return nil, 0, fmt.Errorf("%s: reading sprite section entry: %s", f.path, err)
		}
		if id == 0 {
			return index, count, nil
		}
		size, err := f.readDWord()
		if err != nil {
			return nil, 0, fmt.Errorf("%s: reading sprite section entry size: %s", f.path, err)
		}
		if _, ok := index[id]; !ok {
			index[id] = SectionEntry{Offset: f.pos - 8, Size: size}
		}
		count++
		if err := f.SkipBytes(int(size)); err != nil {
			return nil, 0, err
		}
	}
}
