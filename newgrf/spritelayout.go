package newgrf

import (
	"github.com/golang/glog"

	"badc0de.net/pkg/go-newgrf/entities"
	"badc0de.net/pkg/go-newgrf/grf"
	"badc0de.net/pkg/go-newgrf/spritegroup"
)

// The question mark sprite of the original art, drawn for references to
// invalid sprite sets.
const spriteImgQuery uint32 = 718

// mapSpriteMappingRecolour folds the recolour bits of the raw layout words
// into the sprite's modifier bits.
func mapSpriteMappingRecolour(s *spritegroup.PalSpriteID) {
	if s.Pal&(1<<14) != 0 {
		s.Pal &^= 1 << 14
		s.Sprite |= spritegroup.PALETTE_MODIFIER_TRANSPARENT
	}
	if s.Sprite&(1<<14) != 0 {
		s.Sprite &^= 1 << 14
		s.Sprite |= spritegroup.PALETTE_MODIFIER_COLOUR
	}
	if s.Sprite&(1<<15) != 0 {
		s.Sprite &^= 1 << 15
		s.Sprite |= spritegroup.SPRITE_MODIFIER_OPAQUE
	}
}

// readLayoutSprite reads one sprite and palette pair of a tile layout,
// plus its register flags when the layout carries them. A set bit 15 of
// the palette word (inverted for the old station format) marks a sprite
// from the file's own sets: resolved right away when useCurrentSets is
// set, kept as a relative index otherwise. The flags are returned
// unvalidated; the caller knows which ones its layout position allows.
func (l *Loader) readLayoutSprite(r *grf.Reader, readFlags, invertAction1, useCurrentSets bool, feature entities.Feature, out *spritegroup.PalSpriteID, maxSpriteOffset, maxPaletteOffset *uint16) spritegroup.TileLayoutFlags {
	out.Sprite = uint32(r.ReadWord())
	out.Pal = uint32(r.ReadWord())
	flags := spritegroup.TLF_NOTHING
	if readFlags {
		flags = spritegroup.TileLayoutFlags(r.ReadWord())
	}

	mapSpriteMappingRecolour(out)

	f := l.cur.file
	customSprite := (out.Pal&(1<<15) != 0) != invertAction1
	out.Pal &^= 1 << 15
	if customSprite {
		index := uint16(out.Sprite) & 0x3FFF
		if useCurrentSets && (!f.isValidSpriteSet(feature, index) || f.spriteSetNumEnts(feature, index) == 0) {
			glog.V(1).Infof("readLayoutSprite: sprite set %d invalid", index)
			out.Sprite = spriteImgQuery
			out.Pal = 0
		} else {
			if useCurrentSets {
				out.Sprite = f.spriteSetFirst(feature, index)
				if maxSpriteOffset != nil {
					*maxSpriteOffset = f.spriteSetNumEnts(feature, index)
				}
			} else {
				out.Sprite = uint32(index)
				if maxSpriteOffset != nil {
					*maxSpriteOffset = 0xFFFF
				}
			}
			out.Sprite |= spritegroup.SPRITE_MODIFIER_CUSTOM
		}
	}

	if flags&spritegroup.TLF_CUSTOM_PALETTE != 0 {
		index := uint16(out.Pal) & 0x3FFF
		if useCurrentSets && (!f.isValidSpriteSet(feature, index) || f.spriteSetNumEnts(feature, index) == 0) {
			glog.V(1).Infof("readLayoutSprite: palette sprite set %d invalid", index)
			out.Pal = 0
		} else {
			if useCurrentSets {
				out.Pal = f.spriteSetFirst(feature, index)
				if maxPaletteOffset != nil {
					*maxPaletteOffset = f.spriteSetNumEnts(feature, index)
				}
			} else {
				out.Pal = uint32(index)
				if maxPaletteOffset != nil {
					*maxPaletteOffset = 0xFFFF
				}
			}
			out.Pal |= spritegroup.SPRITE_MODIFIER_CUSTOM
		}
	}

	return flags
}

// readLayoutRegisters reads the register numbers the flags select into
// entry index of the layout's register table.
func (l *Loader) readLayoutRegisters(r *grf.Reader, flags spritegroup.TileLayoutFlags, isParent bool, tl *spritegroup.TileLayout, index int) {
	if flags&spritegroup.TLF_DRAWING_FLAGS == 0 {
		return
	}
	tl.AllocateRegisters()
	regs := &tl.Registers[index]
	regs.Flags = flags & spritegroup.TLF_DRAWING_FLAGS

	if flags&spritegroup.TLF_DODRAW != 0 {
		regs.DoDraw = r.ReadByte()
	}
	if flags&spritegroup.TLF_SPRITE != 0 {
		regs.Sprite = r.ReadByte()
	}
	if flags&spritegroup.TLF_PALETTE != 0 {
		regs.Palette = r.ReadByte()
	}

	if isParent {
		if flags&spritegroup.TLF_BB_XY_OFFSET != 0 {
			regs.Delta[0] = r.ReadByte()
			regs.Delta[1] = r.ReadByte()
		}
		if flags&spritegroup.TLF_BB_Z_OFFSET != 0 {
			regs.Delta[2] = r.ReadByte()
		}
	} else {
		if flags&spritegroup.TLF_CHILD_X_OFFSET != 0 {
			regs.Delta[0] = r.ReadByte()
		}
		if flags&spritegroup.TLF_CHILD_Y_OFFSET != 0 {
			regs.Delta[1] = r.ReadByte()
		}
	}

	if flags&spritegroup.TLF_SPRITE_VAR10 != 0 {
		regs.SpriteVar10 = r.ReadByte()
		if regs.SpriteVar10 > spritegroup.TLR_MAX_VAR10 {
			glog.V(1).Infof("readLayoutRegisters: sprite register selects chain %d, at most %d allowed",
				regs.SpriteVar10, spritegroup.TLR_MAX_VAR10)
			l.disableGRF("invalid sprite layout", nil)
			return
		}
	}
	if flags&spritegroup.TLF_PALETTE_VAR10 != 0 {
		regs.PaletteVar10 = r.ReadByte()
		if regs.PaletteVar10 > spritegroup.TLR_MAX_VAR10 {
			glog.V(1).Infof("readLayoutRegisters: palette register selects chain %d, at most %d allowed",
				regs.PaletteVar10, spritegroup.TLR_MAX_VAR10)
			l.disableGRF("invalid sprite layout", nil)
			return
		}
	}
}

// readSpriteLayout reads an advanced tile layout: the ground sprite plus
// numSprites building sprites, each optionally followed by register
// selections. Bit 6 of the raw sprite count marks the presence of
// per-sprite flag words. Returns false when the read disabled the file.
func (l *Loader) readSpriteLayout(r *grf.Reader, numSprites uint8, useCurrentSets bool, feature entities.Feature, allowVar10, noZPosition bool, tl *spritegroup.TileLayout) bool {
	hasFlags := numSprites&(1<<6) != 0
	numSprites &^= 1 << 6

	validFlags := spritegroup.TLF_KNOWN_FLAGS
	if !allowVar10 {
		validFlags &^= spritegroup.TLF_VAR10_FLAGS
	}

	tl.Seq = make([]spritegroup.DrawTileSeqStruct, numSprites)

	maxSpriteOffset := make([]uint16, int(numSprites)+1)
	maxPaletteOffset := make([]uint16, int(numSprites)+1)

	flags := l.readLayoutSprite(r, hasFlags, false, useCurrentSets, feature, &tl.Ground,
		&maxSpriteOffset[0], &maxPaletteOffset[0])
	if l.cur.skipSprites < 0 {
		return false
	}
	if bad := flags &^ (validFlags &^ spritegroup.TLF_NON_GROUND_FLAGS); bad != 0 {
		glog.V(1).Infof("readSpriteLayout: invalid ground sprite flags 0x%X", uint16(bad))
		l.disableGRF("invalid sprite layout", nil)
		return false
	}
	l.readLayoutRegisters(r, flags, false, tl, 0)
	if l.cur.skipSprites < 0 {
		return false
	}

	for i := 0; i < int(numSprites); i++ {
		seq := &tl.Seq[i]

		flags = l.readLayoutSprite(r, hasFlags, false, useCurrentSets, feature, &seq.Image,
			&maxSpriteOffset[i+1], &maxPaletteOffset[i+1])
		if l.cur.skipSprites < 0 {
			return false
		}
		if bad := flags &^ validFlags; bad != 0 {
			glog.V(1).Infof("readSpriteLayout: unknown layout flags 0x%X", uint16(bad))
			l.disableGRF("invalid sprite layout", nil)
			return false
		}

		seq.DeltaX = int8(r.ReadByte())
		seq.DeltaY = int8(r.ReadByte())
		if !noZPosition {
			seq.DeltaZ = int8(r.ReadByte())
		}
		if seq.IsParentSprite() {
			seq.SizeX = r.ReadByte()
			seq.SizeY = r.ReadByte()
			seq.SizeZ = r.ReadByte()
		}

		l.readLayoutRegisters(r, flags, seq.IsParentSprite(), tl, i+1)
		if l.cur.skipSprites < 0 {
			return false
		}
	}

	// The layout can skip resolve-time preprocessing only when every
	// referenced set has the same size.
	consistent := true
	tl.ConsistentMaxOffset = 0
	for i := 0; i <= int(numSprites); i++ {
		for _, off := range [2]uint16{maxSpriteOffset[i], maxPaletteOffset[i]} {
			if off == 0 {
				continue
			}
			if tl.ConsistentMaxOffset == 0 {
				tl.ConsistentMaxOffset = off
			} else if tl.ConsistentMaxOffset != off {
				consistent = false
			}
		}
	}

	if !consistent || tl.Registers != nil {
		tl.ConsistentMaxOffset = 0
		tl.AllocateRegisters()
		for i := 0; i <= int(numSprites); i++ {
			tl.Registers[i].MaxSpriteOffset = maxSpriteOffset[i]
			tl.Registers[i].MaxPaletteOffset = maxPaletteOffset[i]
		}
	}
	return true
}
