package entities

import (
	"github.com/golang/glog"

	"badc0de.net/pkg/go-newgrf/grftext"
)

// IndustryID and IndustryGfx index the global industry and industry tile
// pools.
type IndustryID uint16
type IndustryGfx uint16

const (
	ORIGINAL_INDUSTRIES     = 37
	ORIGINAL_INDUSTRY_TILES = 175

	// Cargo slots per industry.
	INDUSTRY_NUM_INPUTS  = 16
	INDUSTRY_NUM_OUTPUTS = 16

	INVALID_INDUSTRY      IndustryID  = 0xFFFF
	INVALID_INDUSTRY_TILE IndustryGfx = 0xFFFF

	// A layout tile holding this gfx id is no tile at all: it only demands
	// that the map has water there.
	GFX_WATERTILE_SPECIALCHECK IndustryGfx = 0xFF
)

// IndustryLayoutTile places one tile of an industry construction layout.
type IndustryLayoutTile struct {
	X, Y int8
	Gfx  IndustryGfx
	// Local is set when Gfx indexes the defining file's industry tiles
	// rather than the global pool; the reference is resolved during
	// finalization.
	Local bool
}

// IndustryLayout is one construction footprint.
type IndustryLayout []IndustryLayoutTile

// IndustrySpec describes one industry type.
type IndustrySpec struct {
	Props GRFProps

	SubstituteID IndustryID
	OverrideID   IndustryID

	Layouts []IndustryLayout

	LifeType           uint8
	ClosureText        grftext.StringID
	ProductionUpText   grftext.StringID
	ProductionDownText grftext.StringID
	NewIndustryText    grftext.StringID
	Name               grftext.StringID
	StationName        grftext.StringID

	CostMultiplier        uint8
	RemovalCostMultiplier uint32
	ProspectingChance     uint32
	ProducedCargo         []CargoType
	AcceptedCargo         []CargoType
	ProductionRates       []uint8
	MinimalDistributed    uint8
	Sounds                []uint8
	Conflicting           [3]IndustryID
	AppearCreation        uint8
	AppearInGame          uint8
	MapColour             uint8
	BehaviourFlags        uint32
	CallbackMask          uint16
	InputMultipliers      [][]uint16 // accepted x produced matrix, 8.8 fixed point
	Badges                []BadgeID

	Enabled bool
}

// IndustryTileSpec describes one industry tile type.
type IndustryTileSpec struct {
	Props GRFProps

	SubstituteID IndustryGfx
	OverrideID   IndustryGfx

	Acceptance    [3]CargoAcceptance
	SlopesRefused uint8
	CallbackMask  uint8
	Animation     AnimationInfo
	SpecialFlags  uint8
	Badges        []BadgeID

	Enabled bool
}

// IndustryPool is the global industry registry.
type IndustryPool struct {
	specs []*IndustrySpec
}

func NewIndustryPool() *IndustryPool {
	p := &IndustryPool{}
	for i := 0; i < ORIGINAL_INDUSTRIES; i++ {
		p.specs = append(p.specs, &IndustrySpec{
			SubstituteID: IndustryID(i),
			OverrideID:   INVALID_INDUSTRY,
			Name:         grftext.STR_UNDEFINED,
			Enabled:      true,
		})
	}
	return p
}

func (p *IndustryPool) Spec(id IndustryID) *IndustrySpec {
	if int(id) >= len(p.specs) {
		return nil
	}
	return p.specs[id]
}

func (p *IndustryPool) Append(is *IndustrySpec) IndustryID {
	id := IndustryID(len(p.specs))
	p.specs = append(p.specs, is)
	return id
}

func (p *IndustryPool) Len() int             { return len(p.specs) }
func (p *IndustryPool) All() []*IndustrySpec { return p.specs }

// ResolveOverrides rebinds original industries to the GRF types that
// declared an override on them.
func (p *IndustryPool) ResolveOverrides() {
	for id, is := range p.specs {
		if is == nil || IndustryID(id) < ORIGINAL_INDUSTRIES || is.OverrideID == INVALID_INDUSTRY {
			continue
		}
		if is.OverrideID >= ORIGINAL_INDUSTRIES {
			glog.Warningf("ResolveOverrides: industry %d overrides non-original %d, ignoring", id, is.OverrideID)
			continue
		}
		target := p.specs[is.OverrideID]
		if target.Props.HasGRF() {
			glog.V(2).Infof("ResolveOverrides: industry %d already overridden, keeping first", is.OverrideID)
			continue
		}
		target.Props = is.Props
	}
}

// IndustryTilePool is the global industry tile registry.
type IndustryTilePool struct {
	specs []*IndustryTileSpec
}

func NewIndustryTilePool() *IndustryTilePool {
	p := &IndustryTilePool{}
	for i := 0; i < ORIGINAL_INDUSTRY_TILES; i++ {
		p.specs = append(p.specs, &IndustryTileSpec{
			SubstituteID: IndustryGfx(i),
			OverrideID:   INVALID_INDUSTRY_TILE,
			Animation:    AnimationInfo{Status: ANIM_STATUS_NO_ANIMATION},
			Enabled:      true,
		})
	}
	return p
}

func (p *IndustryTilePool) Spec(id IndustryGfx) *IndustryTileSpec {
	if int(id) >= len(p.specs) {
		return nil
	}
	return p.specs[id]
}

func (p *IndustryTilePool) Append(ts *IndustryTileSpec) IndustryGfx {
	id := IndustryGfx(len(p.specs))
	p.specs = append(p.specs, ts)
	return id
}

func (p *IndustryTilePool) Len() int                 { return len(p.specs) }
func (p *IndustryTilePool) All() []*IndustryTileSpec { return p.specs }

func (p *IndustryTilePool) ResolveOverrides() {
	for id, ts := range p.specs {
		if ts == nil || IndustryGfx(id) < ORIGINAL_INDUSTRY_TILES || ts.OverrideID == INVALID_INDUSTRY_TILE {
			continue
		}
		if ts.OverrideID >= ORIGINAL_INDUSTRY_TILES {
			glog.Warningf("ResolveOverrides: industry tile %d overrides non-original %d, ignoring", id, ts.OverrideID)
			continue
		}
		target := p.specs[ts.OverrideID]
		if target.Props.HasGRF() {
			glog.V(2).Infof("ResolveOverrides: industry tile %d already overridden, keeping first", ts.OverrideID)
			continue
		}
		target.Props = ts.Props
	}
}
