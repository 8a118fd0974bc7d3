package grftext

import (
	"github.com/golang/glog"
)

// GRFStringID is a string identifier in a GRF's own numbering, as used by
// action 4 and by string-valued properties. Wire identifiers are at most a
// word; the upper bits hold a feature overlay that keeps per-feature entity
// names from colliding in the shared table.
type GRFStringID uint32

// StringID is a host string table slot. GRF-provided strings occupy the
// window starting at TAB_NEWGRF_START; identifiers outside all GRF windows
// refer to the base game's own table and pass through unchanged.
type StringID uint16

const (
	STR_EMPTY     StringID = 0x0000
	STR_UNDEFINED StringID = 0xFFFF

	// TAB_NEWGRF_START is the first host slot handed to GRF strings, and
	// TAB_NEWGRF_SIZE the number of available slots.
	TAB_NEWGRF_START StringID = 0xD000
	TAB_NEWGRF_SIZE  int      = 0x0800
)

// Language identifiers of the version 7 scheme. Files older than version 7
// address languages as a bitmask instead; see the conversion in AddString.
const (
	GRFLX_AMERICAN    uint8 = 0x00
	GRFLX_ENGLISH     uint8 = 0x01
	GRFLX_GERMAN      uint8 = 0x02
	GRFLX_FRENCH      uint8 = 0x03
	GRFLX_SPANISH     uint8 = 0x04
	GRFLX_UNSPECIFIED uint8 = 0x7F
)

const (
	grflbAmerican uint8 = 0x01
	grflbEnglish  uint8 = 0x02
	grflbGerman   uint8 = 0x04
	grflbFrench   uint8 = 0x08
	grflbSpanish  uint8 = 0x10
)

// LangText is one translation of an entry.
type LangText struct {
	LangID uint8
	Text   string
}

type entry struct {
	grfid    uint32
	stringid GRFStringID
	texts    []LangText
}

type entryKey struct {
	grfid    uint32
	stringid GRFStringID
}

// Table stores the decoded texts of all loaded files, one slot per
// (grfid, string id) pair with any number of translations each.
type Table struct {
	entries []entry
	index   map[entryKey]int
}

func NewTable() *Table {
	return &Table{index: make(map[entryKey]int)}
}

// AddString decodes raw and stores it under the file's string id, returning
// the host slot. newScheme selects the version 7 language numbering; older
// files pass a language bitmask, where any English bit makes the text the
// English one and other bits add separate translations. A full table logs
// the loss and returns STR_EMPTY.
func (t *Table) AddString(grfid uint32, stringid GRFStringID, langID uint8, newScheme bool, allowNewlines bool, raw []byte) StringID {
	if !newScheme {
		if langID&(grflbAmerican|grflbEnglish) != 0 {
			langID = GRFLX_ENGLISH
		} else {
			ret := STR_EMPTY
			if langID&grflbGerman != 0 {
				ret = t.AddString(grfid, stringid, GRFLX_GERMAN, true, allowNewlines, raw)
			}
			if langID&grflbFrench != 0 {
				ret = t.AddString(grfid, stringid, GRFLX_FRENCH, true, allowNewlines, raw)
			}
			if langID&grflbSpanish != 0 {
				ret = t.AddString(grfid, stringid, GRFLX_SPANISH, true, allowNewlines, raw)
			}
			return ret
		}
	}
	langID &= 0x7F

	key := entryKey{grfid, stringid}
	slot, ok := t.index[key]
	if !ok {
		if len(t.entries) >= TAB_NEWGRF_SIZE {
			glog.Errorf("AddString: string table full, dropping grf %08X string 0x%X", grfid, stringid)
			return STR_EMPTY
		}
		slot = len(t.entries)
		t.entries = append(t.entries, entry{grfid: grfid, stringid: stringid})
		t.index[key] = slot
	}

	text := TranslateTTDPatchCodes(grfid, langID, allowNewlines, raw)
	e := &t.entries[slot]
	replaced := false
	for i := range e.texts {
		if e.texts[i].LangID == langID {
			e.texts[i].Text = text
			replaced = true
			break
		}
	}
	if !replaced {
		e.texts = append(e.texts, LangText{LangID: langID, Text: text})
	}

	id := TAB_NEWGRF_START + StringID(slot)
	glog.V(3).Infof("AddString: slot 0x%X: grfid %08X string 0x%X lang 0x%02X text %q", slot, grfid, stringid, langID, text)
	return id
}

// GetStringID returns the host slot holding the file's string id, or
// STR_UNDEFINED when the file never defined it.
func (t *Table) GetStringID(grfid uint32, stringid GRFStringID) StringID {
	if slot, ok := t.index[entryKey{grfid, stringid}]; ok {
		return TAB_NEWGRF_START + StringID(slot)
	}
	return STR_UNDEFINED
}

// GetString resolves a host slot to its text in the requested language,
// falling back to the unspecified-language text and then to any translation.
func (t *Table) GetString(id StringID, langID uint8) (string, bool) {
	slot := int(id) - int(TAB_NEWGRF_START)
	if slot < 0 || slot >= len(t.entries) {
		return "", false
	}
	var def *LangText
	e := &t.entries[slot]
	for i := range e.texts {
		switch {
		case e.texts[i].LangID == langID:
			return e.texts[i].Text, true
		case e.texts[i].LangID == GRFLX_UNSPECIFIED:
			def = &e.texts[i]
		}
	}
	if def != nil {
		return def.Text, true
	}
	if len(e.texts) > 0 {
		return e.texts[0].Text, true
	}
	return "", false
}

// Translations returns all stored texts for a host slot, for dump tooling.
func (t *Table) Translations(id StringID) []LangText {
	slot := int(id) - int(TAB_NEWGRF_START)
	if slot < 0 || slot >= len(t.entries) {
		return nil
	}
	return t.entries[slot].texts
}

// Len returns the number of allocated slots.
func (t *Table) Len() int { return len(t.entries) }

// MapGRFStringID resolves a string id read from a file into a host slot.
// Identifiers in the GRF text windows 0xD000..0xD7FF and 0xD800..0xDFFF bind
// to the file's own table; anything else names a base game string and is
// passed through.
func (t *Table) MapGRFStringID(grfid uint32, stringid GRFStringID) StringID {
	if stringid >= 0xD000 && stringid < 0xE000 {
		return t.GetStringID(grfid, stringid)
	}
	return StringID(stringid)
}
