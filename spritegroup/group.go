// Package spritegroup models the graphics chains NewGRF files build: real
// sprite selections, decision trees, random switches, callback results,
// industry production rules and tile sprite layouts.
//
// The package only holds the decoded graph. Walking it against live game
// state is a renderer concern and out of scope here.
package spritegroup

// Kind tags a Group node.
type Kind uint8

const (
	REAL Kind = iota
	DETERMINISTIC
	RANDOMIZED
	CALLBACK
	RESULT
	TILE_LAYOUT
	INDUSTRY_PRODUCTION
)

func (k Kind) String() string {
	switch k {
	case REAL:
		return "real"
	case DETERMINISTIC:
		return "deterministic"
	case RANDOMIZED:
		return "randomized"
	case CALLBACK:
		return "callback result"
	case RESULT:
		return "sprite result"
	case TILE_LAYOUT:
		return "tile layout"
	case INDUSTRY_PRODUCTION:
		return "industry production"
	}
	return "unknown"
}

// CALLBACK_FAILED is the resolution result when no chain answers a callback.
const CALLBACK_FAILED uint16 = 0xFFFF

// Group is one node of a file's graphics graph. Kind selects which of the
// payload fields is meaningful.
type Group struct {
	Kind Kind

	// Record number the node was defined at, for diagnostics.
	NFOLine int

	Real          *RealGroup
	Deterministic *DeterministicGroup
	Randomized    *RandomizedGroup
	Production    *IndustryProduction
	Layout        *TileLayout

	// CALLBACK: the fixed answer.
	CallbackValue uint16

	// RESULT: a run of real sprites from the file's sprite sets.
	FirstSprite uint32
	NumSprites  uint16
}

// RealGroup selects between the loading-stage and loaded-stage sprite sets
// of a vehicle or station.
type RealGroup struct {
	Loaded  []*Group
	Loading []*Group
}

// IndustryProduction carries a production callback's input and output
// amounts. Version 0 stores immediate words, version 1 stores register
// numbers, version 2 stores register numbers with explicit cargo slots.
type IndustryProduction struct {
	Version     uint8
	Inputs      []ProductionAmount
	Outputs     []ProductionAmount
	AgainValue  uint8
	AgainIsReg  bool
}

// ProductionAmount is one input subtraction or output addition.
type ProductionAmount struct {
	// Cargo slot in the industry's cargo arrays (versions 0 and 1) or in
	// the global cargo table (version 2).
	Cargo uint8

	// Immediate amount (version 0) or register number (versions 1 and 2).
	Value uint16
}

// TransformCallbackResult converts a wire callback value into the stored
// result. Before version 8 a result had its high byte forced to 0xFF and
// only the low byte carried the answer; newer files use the full 15 bits.
func TransformCallbackResult(value uint16, grfVersion8 bool) uint16 {
	if !grfVersion8 && value>>8 == 0xFF {
		return value & 0xFF
	}
	return value &^ 0x8000
}

// Builder creates groups for one file, interning callback results so
// identical answers share a node.
type Builder struct {
	callbackCache map[uint16]*Group
	count         int
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{callbackCache: make(map[uint16]*Group)}
}

// CallbackResult returns the node answering a callback with value,
// transforming the wire value per the file's version first.
func (b *Builder) CallbackResult(value uint16, grfVersion8 bool) *Group {
	v := TransformCallbackResult(value, grfVersion8)
	if g, ok := b.callbackCache[v]; ok {
		return g
	}
	g := &Group{Kind: CALLBACK, CallbackValue: v}
	b.callbackCache[v] = g
	b.count++
	return g
}

// New returns a fresh node of the given kind, counting it.
func (b *Builder) New(kind Kind, nfoLine int) *Group {
	b.count++
	return &Group{Kind: kind, NFOLine: nfoLine}
}

// Count returns how many nodes the builder created.
func (b *Builder) Count() int { return b.count }
