package entities

import (
	"github.com/golang/glog"

	"badc0de.net/pkg/go-newgrf/grftext"
)

// HouseID indexes the global town building pool.
type HouseID uint16

const (
	// Number of building types in the original set; GRF-defined buildings
	// are appended after them.
	ORIGINAL_HOUSES = 110

	INVALID_HOUSE HouseID = 0xFFFF
)

// House building flag bits, property 0x08..ish semantics: size and town
// zone behavior.
const (
	HOUSE_SIZE_1X1 uint8 = 1 << 0
	HOUSE_SIZE_2X1 uint8 = 1 << 1
	HOUSE_SIZE_1X2 uint8 = 1 << 2
	HOUSE_SIZE_2X2 uint8 = 1 << 3
	HOUSE_ANIMATE  uint8 = 1 << 5
	HOUSE_CHURCH   uint8 = 1 << 6
	HOUSE_STADIUM  uint8 = 1 << 7
)

// HOUSE_NUM_ACCEPTS is the number of cargo acceptance slots per building.
// The original types fill at most the first three.
const HOUSE_NUM_ACCEPTS = 16

// CargoAcceptance is one accepted cargo slot of a building or industry tile.
type CargoAcceptance struct {
	Cargo  CargoType
	Amount uint8
}

// HouseSpec describes one town building type.
type HouseSpec struct {
	Props GRFProps

	// The original building this design substitutes; its spec seeds all
	// fields not set by properties.
	SubstituteID HouseID

	// Another building this design overrides visually, resolved during
	// finalization.
	OverrideID HouseID

	BuildingFlags         uint8
	BuildingAvailability  uint16
	MinYear               uint16
	MaxYear               uint16
	Population            uint8
	MailGeneration        uint8
	RemovalRatingDecrease uint16
	RemovalCost           uint8
	Acceptance            [HOUSE_NUM_ACCEPTS]CargoAcceptance
	BuildingName          grftext.StringID
	Probability           uint8
	ExtraFlags            uint8
	BuildingClass         uint8
	CallbackMask          uint16
	Animation             AnimationInfo
	ProcessingTime        uint8
	MinimumLife           uint8
	WatchedCargoes        CargoMask
	RandomColours         [4]uint8
	Badges                []BadgeID

	Enabled bool
}

// HousePool is the global building registry: the original set followed by
// everything the loaded files add.
type HousePool struct {
	specs []*HouseSpec
}

func NewHousePool() *HousePool {
	p := &HousePool{specs: make([]*HouseSpec, 0, ORIGINAL_HOUSES)}
	for i := 0; i < ORIGINAL_HOUSES; i++ {
		p.specs = append(p.specs, &HouseSpec{
			SubstituteID:  HouseID(i),
			OverrideID:    INVALID_HOUSE,
			BuildingFlags: HOUSE_SIZE_1X1,
			BuildingName:  grftext.STR_UNDEFINED,
			Probability:   1,
			Enabled:       true,
		})
	}
	return p
}

// Spec returns the pool entry, or nil when out of range.
func (p *HousePool) Spec(id HouseID) *HouseSpec {
	if int(id) >= len(p.specs) {
		return nil
	}
	return p.specs[id]
}

// Append adds a finalized GRF building to the pool and returns its id.
func (p *HousePool) Append(hs *HouseSpec) HouseID {
	id := HouseID(len(p.specs))
	p.specs = append(p.specs, hs)
	return id
}

// Len returns the number of registered building types.
func (p *HousePool) Len() int { return len(p.specs) }

// All returns the pool in id order.
func (p *HousePool) All() []*HouseSpec { return p.specs }

// ResolveOverrides points original buildings at the GRF designs that
// declared an override on them, first declaration winning.
func (p *HousePool) ResolveOverrides() {
	for id, hs := range p.specs {
		if hs == nil || HouseID(id) < ORIGINAL_HOUSES || hs.OverrideID == INVALID_HOUSE {
			continue
		}
		if int(hs.OverrideID) >= int(ORIGINAL_HOUSES) {
			glog.Warningf("ResolveOverrides: house %d overrides non-original %d, ignoring", id, hs.OverrideID)
			continue
		}
		target := p.specs[hs.OverrideID]
		if target.Props.HasGRF() {
			glog.V(2).Infof("ResolveOverrides: house %d already overridden, keeping first", hs.OverrideID)
			continue
		}
		target.Props = hs.Props
	}
}
