package entities

import (
	"github.com/golang/glog"
)

// SoundID indexes the global sound effect pool. The stock samples occupy
// the first ORIGINAL_SAMPLE_COUNT slots; files append after them.
type SoundID uint16

const (
	ORIGINAL_SAMPLE_COUNT         = 73
	INVALID_SOUND         SoundID = 0xFFFF
)

// SoundEntry describes one sound effect. File-supplied entries remember
// where their sample data lives so a player can fetch it later.
type SoundEntry struct {
	GRFID    uint32
	Name     string
	Volume   uint8
	Priority uint8

	// Location of the sample inside its container. For the old container
	// the data follows the record inline at Offset; for the new container
	// SectionID names the entry in the trailing data section.
	Path      string
	Offset    int
	Size      uint32
	SectionID uint32
}

// SoundPool is the global sound table.
type SoundPool struct {
	entries []*SoundEntry
}

// NewSoundPool returns a pool preseeded with the stock samples.
func NewSoundPool() *SoundPool {
	p := &SoundPool{}
	for i := 0; i < ORIGINAL_SAMPLE_COUNT; i++ {
		p.entries = append(p.entries, &SoundEntry{Volume: 128})
	}
	return p
}

// Append adds a file-supplied sound and returns its id.
func (p *SoundPool) Append(e *SoundEntry) SoundID {
	id := SoundID(len(p.entries))
	if e.Volume == 0 {
		e.Volume = 128
	}
	p.entries = append(p.entries, e)
	glog.V(3).Infof("sound %d: %q from %08X", id, e.Name, e.GRFID)
	return id
}

// Entry returns the sound with the given id, or nil.
func (p *SoundPool) Entry(id SoundID) *SoundEntry {
	if int(id) >= len(p.entries) {
		return nil
	}
	return p.entries[id]
}

// Len returns the number of sounds in the pool.
func (p *SoundPool) Len() int { return len(p.entries) }
