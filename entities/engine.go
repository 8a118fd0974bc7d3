package entities

import (
	"fmt"

	"github.com/golang/glog"

	"badc0de.net/pkg/go-newgrf/grftext"
	"badc0de.net/pkg/go-newgrf/spritegroup"
)

// VehicleKind distinguishes the four vehicle entity kinds.
type VehicleKind uint8

const (
	VEH_TRAIN    VehicleKind = 0
	VEH_ROAD     VehicleKind = 1
	VEH_SHIP     VehicleKind = 2
	VEH_AIRCRAFT VehicleKind = 3

	VEH_KIND_END = 4
)

func (k VehicleKind) String() string {
	switch k {
	case VEH_TRAIN:
		return "train"
	case VEH_ROAD:
		return "road vehicle"
	case VEH_SHIP:
		return "ship"
	case VEH_AIRCRAFT:
		return "aircraft"
	}
	return fmt.Sprintf("vehicle kind %d", uint8(k))
}

// EngineID indexes the engine pool across all vehicle kinds.
type EngineID uint16

const INVALID_ENGINE EngineID = 0xFFFF

// Numbers of engines in the original sets, per kind.
var originalEngineCounts = [VEH_KIND_END]uint16{116, 88, 11, 41}

// OriginalEngineCount returns the size of the original set of a kind.
func OriginalEngineCount(kind VehicleKind) uint16 {
	return originalEngineCounts[kind]
}

// EngineInfo holds the fields shared by all vehicle kinds.
type EngineInfo struct {
	IntroDate           int32 // days since year zero
	BaseLife            uint8 // years
	LifeLength          uint8 // years past BaseLife before forced retirement
	DecaySpeed          uint8
	LoadAmount          uint8
	ClimateAvailability uint8
	CargoType           CargoType
	RefitMask           CargoMask
	RefitCost           uint8
	CallbackMask        uint16
	RetireEarly         int8
	MiscFlags           uint8
	CargoAgePeriod      uint16
	Name                grftext.StringID
	VariantID           EngineID
	ExtraFlags          uint32
}

// Rail engine classes, the traction groups of the rail vehicle engine
// class property.
const (
	RAIL_ENGINE_STEAM    uint8 = 0
	RAIL_ENGINE_DIESEL   uint8 = 1
	RAIL_ENGINE_ELECTRIC uint8 = 2
	RAIL_ENGINE_MONORAIL uint8 = 3
	RAIL_ENGINE_MAGLEV   uint8 = 4
)

// RailVehicleInfo.Flags bits. Exactly one of dual-headed, wagon or neither
// (a single-headed engine) holds at a time.
const (
	RVF_DUAL_HEADED uint8 = 1 << 0
	RVF_WAGON       uint8 = 1 << 1
)

type RailVehicleInfo struct {
	ImageIndex     uint8
	Flags          uint8
	TrackType      uint8 // slot in the rail type table
	CostFactor     uint16
	Speed          uint16
	Power          uint16
	Weight         uint16
	RunningCost    uint8
	RunningClass   uint8
	EngineClass    uint8
	Capacity       uint8
	TractiveEffort uint8
	AirDrag        uint8
	ShortenFactor  uint8
	VisualEffect   uint8
	CurveSpeedMod  int16
	ExtraPower     uint16 // power added by wagons
	ExtraWeight    uint8
	UserDefData    uint8
}

type RoadVehicleInfo struct {
	ImageIndex     uint8
	CostFactor     uint8
	RunningCost    uint8
	RunningClass   uint8
	Speed          uint16
	Capacity       uint8
	Weight         uint16
	Power          uint16
	TractiveEffort uint8
	AirDrag        uint8
	ShortenFactor  uint8
	VisualEffect   uint8
	SFX            uint8
	IsTram         bool
	TrackType      uint8 // slot in the road or tram type table
}

type ShipVehicleInfo struct {
	ImageIndex     uint8
	CostFactor     uint8
	RunningCost    uint8
	Speed          uint16
	Capacity       uint16
	VisualEffect   uint8
	SFX            uint8
	OceanSpeedFrac uint8
	CanalSpeedFrac uint8
	AccelType      uint8
	ApplyWaterDrag bool
}

// Aircraft subtypes, property 0x09 low bits.
const (
	AIR_HELICOPTER uint8 = 0
	AIR_SMALL      uint8 = 1
	AIR_LARGE      uint8 = 3
)

type AircraftVehicleInfo struct {
	ImageIndex        uint8
	SubType           uint8
	CostFactor        uint8
	RunningCost       uint8
	Speed             uint16
	Acceleration      uint8
	PassengerCapacity uint16
	MailCapacity      uint8
	SFX               uint8
	Range             uint16
}

// Engine is one vehicle design. Exactly one of the per-kind info structs is
// meaningful, selected by Kind.
type Engine struct {
	Kind       VehicleKind
	InternalID uint16
	ID         EngineID

	Props     GRFProps
	Info      EngineInfo
	Badges    []BadgeID
	Overrides []WagonOverride

	Rail RailVehicleInfo
	Road RoadVehicleInfo
	Ship ShipVehicleInfo
	Air  AircraftVehicleInfo
}

// WagonOverride is a graphics chain that applies to this engine only while it
// is attached to one of the listed lead engines. Overrides are stored on the
// wagon and scanned in declaration order, first match wins.
type WagonOverride struct {
	Engines []EngineID
	Cargo   uint16
	Group   *spritegroup.Group
}

// AddWagonOverride registers an override chain for the given cargo key.
func (e *Engine) AddWagonOverride(engines []EngineID, cargo uint16, g *spritegroup.Group) {
	e.Overrides = append(e.Overrides, WagonOverride{Engines: engines, Cargo: cargo, Group: g})
}

// WagonOverrideGroup returns the first override chain matching the lead
// engine and cargo key, or nil.
func (e *Engine) WagonOverrideGroup(lead EngineID, cargo uint16) *spritegroup.Group {
	for i := range e.Overrides {
		wo := &e.Overrides[i]
		if wo.Cargo != cargo {
			continue
		}
		for _, id := range wo.Engines {
			if id == lead {
				return wo.Group
			}
		}
	}
	return nil
}

type engineKey struct {
	kind     VehicleKind
	grfid    uint32
	internal uint16
}

// EnginePool allocates and resolves engines. Engines of the original sets
// are preseeded with a zero scope GRFID; a file defining such an internal id
// claims the slot for its scope. The override map redirects one file's
// definitions into another file's scope so add-on sets can modify a base
// set's engines.
type EnginePool struct {
	engines   []*Engine
	index     map[engineKey]EngineID
	overrides map[uint32]uint32
}

func NewEnginePool() *EnginePool {
	p := &EnginePool{
		index:     make(map[engineKey]EngineID),
		overrides: make(map[uint32]uint32),
	}
	for kind := VehicleKind(0); kind < VEH_KIND_END; kind++ {
		for internal := uint16(0); internal < originalEngineCounts[kind]; internal++ {
			p.allocate(kind, internal, 0)
		}
	}
	return p
}

func (p *EnginePool) allocate(kind VehicleKind, internal uint16, scope uint32) *Engine {
	e := defaultEngine(kind, internal)
	e.ID = EngineID(len(p.engines))
	p.engines = append(p.engines, e)
	p.index[engineKey{kind, scope, internal}] = e.ID
	return e
}

// defaultEngine builds the starting state of a pool slot. Internal ids
// beyond the original set default to wagon-like entries so that designs
// without an explicit power still work.
func defaultEngine(kind VehicleKind, internal uint16) *Engine {
	e := &Engine{
		Kind:       kind,
		InternalID: internal,
		Info: EngineInfo{
			ClimateAvailability: 0x0F,
			BaseLife:            40,
			CargoType:           INVALID_CARGO,
			Name:                grftext.STR_UNDEFINED,
			VariantID:           INVALID_ENGINE,
		},
	}
	if internal >= originalEngineCounts[kind] {
		e.Info.BaseLife = 0xFF
		switch kind {
		case VEH_TRAIN:
			e.Rail.Flags |= RVF_WAGON
		case VEH_ROAD:
			e.Road.TractiveEffort = 0x4C
		}
	}
	return e
}

// AddOverride redirects definitions of the source file into the target
// file's engine scope. The first registered target for a source wins.
func (p *EnginePool) AddOverride(source, target uint32) {
	if cur, ok := p.overrides[source]; ok {
		if cur != target {
			glog.Warningf("AddOverride: grf %08X already overrides to %08X, ignoring %08X", source, cur, target)
		}
		return
	}
	glog.V(2).Infof("AddOverride: grf %08X now defines engines of %08X", source, target)
	p.overrides[source] = target
}

// ScopeGRFID maps a file's GRFID to the scope its engine definitions land
// in, following the override table.
func (p *EnginePool) ScopeGRFID(grfid uint32) uint32 {
	if target, ok := p.overrides[grfid]; ok {
		return target
	}
	return grfid
}

// GetID resolves (kind, internal) in the given scope without allocating.
func (p *EnginePool) GetID(kind VehicleKind, internal uint16, scope uint32) EngineID {
	if id, ok := p.index[engineKey{kind, scope, internal}]; ok {
		return id
	}
	return INVALID_ENGINE
}

// GetOrCreate resolves (kind, internal) in the given scope, claiming an
// unreserved original slot or allocating a new one as needed. With
// staticAccess set no slot is claimed or allocated; resolution beyond an
// exact match fails with nil.
func (p *EnginePool) GetOrCreate(kind VehicleKind, internal uint16, scope uint32, staticAccess bool) *Engine {
	if id, ok := p.index[engineKey{kind, scope, internal}]; ok {
		return p.engines[id]
	}

	// An entry still keyed to the zero scope is an unclaimed original.
	if id, ok := p.index[engineKey{kind, 0, internal}]; ok && scope != 0 {
		if staticAccess {
			return p.engines[id]
		}
		delete(p.index, engineKey{kind, 0, internal})
		p.index[engineKey{kind, scope, internal}] = id
		glog.V(3).Infof("GetOrCreate: %s %d claimed by scope %08X as engine %d", kind, internal, scope, id)
		return p.engines[id]
	}

	if staticAccess {
		return nil
	}
	if len(p.engines) >= int(INVALID_ENGINE) {
		glog.Errorf("GetOrCreate: engine pool exhausted, cannot allocate %s %d", kind, internal)
		return nil
	}
	e := p.allocate(kind, internal, scope)
	glog.V(3).Infof("GetOrCreate: %s %d allocated for scope %08X as engine %d", kind, internal, scope, e.ID)
	return e
}

// Engine returns the pool entry, or nil when out of range.
func (p *EnginePool) Engine(id EngineID) *Engine {
	if int(id) >= len(p.engines) {
		return nil
	}
	return p.engines[id]
}

// Len returns the number of allocated engines.
func (p *EnginePool) Len() int { return len(p.engines) }

// All returns the pool in allocation order, for finalize passes and dump
// tooling.
func (p *EnginePool) All() []*Engine { return p.engines }
