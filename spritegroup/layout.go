package spritegroup

// Sprite and palette identifiers carry modifier bits above the 24-bit id.
const (
	SPRITE_MASK uint32 = (1 << 24) - 1

	SPRITE_MODIFIER_OPAQUE       uint32 = 1 << 28 // never draw translucent
	SPRITE_MODIFIER_CUSTOM       uint32 = 1 << 29 // id indexes the file's spritesets
	PALETTE_MODIFIER_COLOUR      uint32 = 1 << 30
	PALETTE_MODIFIER_TRANSPARENT uint32 = 1 << 31
)

// PalSpriteID pairs a sprite with the palette it is drawn with.
type PalSpriteID struct {
	Sprite uint32
	Pal    uint32
}

// TileLayoutFlags describe which per-sprite registers an extended layout
// sprite reads at resolve time.
type TileLayoutFlags uint16

const (
	TLF_NOTHING        TileLayoutFlags = 0
	TLF_DODRAW         TileLayoutFlags = 1 << 0
	TLF_SPRITE         TileLayoutFlags = 1 << 1
	TLF_PALETTE        TileLayoutFlags = 1 << 2
	TLF_CUSTOM_PALETTE TileLayoutFlags = 1 << 3
	TLF_BB_XY_OFFSET   TileLayoutFlags = 1 << 4
	TLF_BB_Z_OFFSET    TileLayoutFlags = 1 << 5
	TLF_CHILD_X_OFFSET TileLayoutFlags = 1 << 6
	TLF_CHILD_Y_OFFSET TileLayoutFlags = 1 << 7
	TLF_SPRITE_VAR10   TileLayoutFlags = 1 << 8
	TLF_PALETTE_VAR10  TileLayoutFlags = 1 << 9

	TLF_KNOWN_FLAGS TileLayoutFlags = 0x3FF

	// Flags that cannot apply to the ground sprite.
	TLF_NON_GROUND_FLAGS = TLF_BB_XY_OFFSET | TLF_BB_Z_OFFSET | TLF_CHILD_X_OFFSET | TLF_CHILD_Y_OFFSET

	// Flags selecting a different graphics chain via variable 10.
	TLF_VAR10_FLAGS = TLF_SPRITE_VAR10 | TLF_PALETTE_VAR10

	// Flags that require resolving the graphics chain for the sprite or the
	// palette respectively, even when the sprite itself is not custom.
	TLF_SPRITE_REG_FLAGS  = TLF_DODRAW | TLF_SPRITE | TLF_BB_XY_OFFSET | TLF_BB_Z_OFFSET | TLF_CHILD_X_OFFSET | TLF_CHILD_Y_OFFSET
	TLF_PALETTE_REG_FLAGS = TLF_PALETTE

	// Flags that still matter after decoding; TLF_CUSTOM_PALETTE is folded
	// into the palette value itself.
	TLF_DRAWING_FLAGS = TLF_KNOWN_FLAGS &^ TLF_CUSTOM_PALETTE
)

// Highest graphics chain selectable through a var10 register.
const TLR_MAX_VAR10 uint8 = 7

// TileLayoutRegisters lists the temporary-storage registers one layout
// sprite reads, as selected by its flags.
type TileLayoutRegisters struct {
	Flags   TileLayoutFlags
	DoDraw  uint8
	Sprite  uint8
	Palette uint8

	// Offset bounds for sprites resolving through a graphics chain, filled
	// when the layout's offsets are not consistent.
	MaxSpriteOffset  uint16
	MaxPaletteOffset uint16

	// Register numbers for the offset deltas: x, y and z for parent
	// sprites, x and y for child sprites.
	Delta [3]uint8

	SpriteVar10  uint8
	PaletteVar10 uint8
}

// DrawTileSeqStruct is one non-ground sprite of a tile layout.
type DrawTileSeqStruct struct {
	DeltaX int8
	DeltaY int8
	DeltaZ int8 // 0x80 marks a child sprite
	SizeX  uint8
	SizeY  uint8
	SizeZ  uint8
	Image  PalSpriteID
}

// IsParentSprite reports whether the sprite carries its own bounding box.
func (d *DrawTileSeqStruct) IsParentSprite() bool {
	return uint8(d.DeltaZ) != 0x80
}

// TileLayout is a tile's ground sprite plus a sequence of building sprites,
// optionally with per-sprite registers.
//
// When every graphics-chain reference in the layout resolves sets of the
// same size, ConsistentMaxOffset holds that size and Registers stays nil;
// otherwise each sprite's register entry carries its own bounds.
type TileLayout struct {
	Ground    PalSpriteID
	Seq       []DrawTileSeqStruct
	Registers []TileLayoutRegisters // len(Seq)+1 entries, ground first

	ConsistentMaxOffset uint16
}

// AllocateRegisters gives the layout its register table, one entry per
// sprite including the ground sprite.
func (tl *TileLayout) AllocateRegisters() {
	if tl.Registers == nil {
		tl.Registers = make([]TileLayoutRegisters, len(tl.Seq)+1)
	}
}

// NeedsPreprocessing reports whether resolving this layout must consult
// registers instead of using it directly.
func (tl *TileLayout) NeedsPreprocessing() bool {
	return tl.Registers != nil
}
