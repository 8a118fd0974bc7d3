package newgrf

import (
	"github.com/golang/glog"

	"badc0de.net/pkg/go-newgrf/grf"
)

// Font sizes glyph blocks can target.
const (
	FONT_NORMAL uint8 = iota
	FONT_SMALL
	FONT_LARGE
	FONT_MONO
	FONT_END
)

// loadFontGlyph records the glyph blocks following the declaration (action
// 0x12). Each block claims sprite ids for a run of characters in one font
// size; the sprites themselves follow as real sprite records.
func loadFontGlyph(l *Loader, r *grf.Reader) {
	numDefs := int(r.ReadByte())
	f := l.cur.file

	for i := 0; i < numDefs; i++ {
		size := r.ReadByte()
		numChars := r.ReadByte()
		baseChar := r.ReadWord()

		if size >= FONT_END {
			glog.V(1).Infof("loadFontGlyph: invalid font size %d, still consuming its sprites", size)
		}
		glog.V(3).Infof("loadFontGlyph: %d glyphs in font %d starting at U+%04X", numChars, size, baseChar)

		first := l.spriteID
		for c := 0; c < int(numChars); c++ {
			if _, ok := l.loadNextSprite(); !ok {
				l.disableGRF("unexpected end of file", nil)
				return
			}
		}
		if size < FONT_END {
			f.glyphs = append(f.glyphs, glyphRange{
				FontSize:    size,
				BaseChar:    baseChar,
				NumChars:    numChars,
				FirstSprite: first,
			})
		}
	}
}
