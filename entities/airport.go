package entities

import (
	"badc0de.net/pkg/go-newgrf/grftext"
)

// AirportID and AirportTileID index the airport and airport tile pools.
type AirportID uint8
type AirportTileID uint16

const (
	ORIGINAL_AIRPORTS      = 10
	ORIGINAL_AIRPORT_TILES = 74

	INVALID_AIRPORT      AirportID     = 0xFF
	INVALID_AIRPORT_TILE AirportTileID = 0xFFFF
)

// AirportLayoutTile places one tile of an airport layout. A tile with
// Local set references the defining file's airport tiles and is resolved
// during finalization.
type AirportLayoutTile struct {
	X, Y  int8
	Gfx   AirportTileID
	Local bool
}

// AirportLayout is one rotation of an airport footprint.
type AirportLayout struct {
	Rotation uint8
	Tiles    []AirportLayoutTile
}

// AirportSpec describes one airport type.
type AirportSpec struct {
	Props GRFProps

	// The original airport whose slot this design takes, INVALID_AIRPORT
	// for a new airport.
	OverrideID AirportID

	Layouts []AirportLayout

	TTDType         uint8
	Name            grftext.StringID
	CatchmentRadius uint8
	NoiseLevel      uint8
	MinYear         uint16
	MaxYear         uint16
	MaintenanceCost uint16
	Badges          []BadgeID

	Enabled bool
}

// AirportTileSpec describes one airport tile type.
type AirportTileSpec struct {
	Props GRFProps

	SubstituteID AirportTileID
	OverrideID   AirportTileID

	CallbackMask uint8
	Animation    AnimationInfo
	Badges       []BadgeID

	Enabled bool
}

// AirportPool is the global airport registry.
type AirportPool struct {
	specs []*AirportSpec
}

func NewAirportPool() *AirportPool {
	p := &AirportPool{}
	for i := 0; i < ORIGINAL_AIRPORTS; i++ {
		p.specs = append(p.specs, &AirportSpec{
			OverrideID: INVALID_AIRPORT,
			TTDType:    uint8(i),
			Name:       grftext.STR_UNDEFINED,
			Enabled:    true,
		})
	}
	return p
}

func (p *AirportPool) Spec(id AirportID) *AirportSpec {
	if int(id) >= len(p.specs) {
		return nil
	}
	return p.specs[id]
}

func (p *AirportPool) Append(as *AirportSpec) AirportID {
	id := AirportID(len(p.specs))
	p.specs = append(p.specs, as)
	return id
}

func (p *AirportPool) Len() int            { return len(p.specs) }
func (p *AirportPool) All() []*AirportSpec { return p.specs }

// AirportTilePool is the global airport tile registry.
type AirportTilePool struct {
	specs []*AirportTileSpec
}

func NewAirportTilePool() *AirportTilePool {
	p := &AirportTilePool{}
	for i := 0; i < ORIGINAL_AIRPORT_TILES; i++ {
		p.specs = append(p.specs, &AirportTileSpec{
			SubstituteID: AirportTileID(i),
			OverrideID:   INVALID_AIRPORT_TILE,
			Animation:    AnimationInfo{Status: ANIM_STATUS_NO_ANIMATION},
			Enabled:      true,
		})
	}
	return p
}

func (p *AirportTilePool) Spec(id AirportTileID) *AirportTileSpec {
	if int(id) >= len(p.specs) {
		return nil
	}
	return p.specs[id]
}

func (p *AirportTilePool) Append(ts *AirportTileSpec) AirportTileID {
	id := AirportTileID(len(p.specs))
	p.specs = append(p.specs, ts)
	return id
}

func (p *AirportTilePool) Len() int                { return len(p.specs) }
func (p *AirportTilePool) All() []*AirportTileSpec { return p.specs }
