// Package entities holds the entity registries a NewGRF load fills in:
// cargo, vehicle, station, town building, industry, airport, object, track
// type, canal, sound, badge and price tables.
//
// The registries know nothing about the GRF wire format; package newgrf
// reads the files and mutates these tables through their allocation and
// lookup methods.
package entities

import (
	"github.com/golang/glog"

	"badc0de.net/pkg/go-newgrf/grf"
	"badc0de.net/pkg/go-newgrf/grftext"
	"badc0de.net/pkg/go-newgrf/spritegroup"
)

// CargoType is a slot in the cargo table.
type CargoType uint8

const (
	NUM_CARGO     = 64
	INVALID_CARGO CargoType = 0xFF

	// The bit number of a spec that was never assigned one.
	INVALID_CARGO_BITNUM uint8 = 0xFF
)

// CargoClasses is the bitmask of cargo classes a cargo belongs to.
type CargoClasses uint16

const (
	CC_PASSENGERS   CargoClasses = 1 << 0
	CC_MAIL         CargoClasses = 1 << 1
	CC_EXPRESS      CargoClasses = 1 << 2
	CC_ARMOURED     CargoClasses = 1 << 3
	CC_BULK         CargoClasses = 1 << 4
	CC_PIECE_GOODS  CargoClasses = 1 << 5
	CC_LIQUID       CargoClasses = 1 << 6
	CC_REFRIGERATED CargoClasses = 1 << 7
	CC_HAZARDOUS    CargoClasses = 1 << 8
	CC_COVERED      CargoClasses = 1 << 9
	CC_OVERSIZED    CargoClasses = 1 << 10
	CC_POTABLE      CargoClasses = 1 << 11
	CC_NON_POTABLE  CargoClasses = 1 << 12
	CC_SPECIAL      CargoClasses = 1 << 15
)

// Town growth effects of delivering a cargo.
const (
	TAE_NONE       uint8 = 0
	TAE_PASSENGERS uint8 = 1
	TAE_MAIL       uint8 = 2
	TAE_GOODS      uint8 = 3
	TAE_WATER      uint8 = 4
	TAE_FOOD       uint8 = 5
)

// Town production effects, deciding which cargos towns generate.
const (
	TPE_NONE       uint8 = 0
	TPE_PASSENGERS uint8 = 1
	TPE_MAIL       uint8 = 2
)

// CargoSpec describes one cargo slot.
type CargoSpec struct {
	Label  grf.Label
	BitNum uint8 // climate-independent cargo bit

	Classes              CargoClasses
	Weight               uint8 // per unit, in 1/16 t
	Multiplier           uint16
	InitialPayment       uint32
	TransitPeriods       [2]uint8
	TownAcceptanceEffect uint8
	TownProductionEffect uint8
	TownProductionMult   uint16
	IsFreight            bool
	CallbackMask         uint8

	LegendColour uint8
	RatingColour uint8

	Name        grftext.StringID
	NameSingle  grftext.StringID
	UnitsVolume grftext.StringID
	Quantifier  grftext.StringID
	Abbrev      grftext.StringID
	IconSprite  uint32

	GRFID uint32 // file that (re)defined the slot, 0 for defaults

	// Icon graphics chain, rebound freely by later files.
	Group *spritegroup.Group
}

// IsValid reports whether the slot holds a usable cargo.
func (cs *CargoSpec) IsValid() bool {
	return cs != nil && cs.BitNum != INVALID_CARGO_BITNUM
}

// defaultCargo rows seed the table for a climate.
type defaultCargo struct {
	label   string
	bitnum  uint8
	classes CargoClasses
	freight bool
	tae     uint8
}

// The original cargo sets. The bit numbers follow the climate-independent
// numbering old files use to address cargo without a translation table.
var defaultCargoSets = map[uint8][]defaultCargo{
	LT_TEMPERATE: {
		{"PASS", 0, CC_PASSENGERS, false, TAE_PASSENGERS},
		{"COAL", 1, CC_BULK, true, TAE_NONE},
		{"MAIL", 2, CC_MAIL, false, TAE_MAIL},
		{"OIL_", 3, CC_LIQUID, true, TAE_NONE},
		{"LVST", 4, CC_PIECE_GOODS, true, TAE_NONE},
		{"GOOD", 5, CC_EXPRESS, true, TAE_GOODS},
		{"GRAI", 6, CC_BULK, true, TAE_NONE},
		{"WOOD", 7, CC_PIECE_GOODS, true, TAE_NONE},
		{"IORE", 8, CC_BULK, true, TAE_NONE},
		{"STEL", 9, CC_PIECE_GOODS, true, TAE_NONE},
		{"VALU", 10, CC_EXPRESS | CC_ARMOURED, false, TAE_NONE},
	},
	LT_ARCTIC: {
		{"PASS", 0, CC_PASSENGERS, false, TAE_PASSENGERS},
		{"COAL", 1, CC_BULK, true, TAE_NONE},
		{"MAIL", 2, CC_MAIL, false, TAE_MAIL},
		{"OIL_", 3, CC_LIQUID, true, TAE_NONE},
		{"LVST", 4, CC_PIECE_GOODS, true, TAE_NONE},
		{"GOOD", 5, CC_EXPRESS, true, TAE_GOODS},
		{"WHEA", 6, CC_BULK, true, TAE_NONE},
		{"WOOD", 7, CC_PIECE_GOODS, true, TAE_NONE},
		{"PAPR", 9, CC_PIECE_GOODS, true, TAE_NONE},
		{"GOLD", 10, CC_EXPRESS | CC_ARMOURED, false, TAE_NONE},
		{"FOOD", 11, CC_EXPRESS | CC_REFRIGERATED, true, TAE_FOOD},
	},
	LT_TROPIC: {
		{"PASS", 0, CC_PASSENGERS, false, TAE_PASSENGERS},
		{"RUBR", 1, CC_LIQUID, true, TAE_NONE},
		{"MAIL", 2, CC_MAIL, false, TAE_MAIL},
		{"OIL_", 3, CC_LIQUID, true, TAE_NONE},
		{"FRUT", 4, CC_BULK | CC_REFRIGERATED, true, TAE_NONE},
		{"GOOD", 5, CC_EXPRESS, true, TAE_GOODS},
		{"MAIZ", 6, CC_BULK, true, TAE_NONE},
		{"WOOD", 7, CC_PIECE_GOODS, true, TAE_NONE},
		{"COPR", 8, CC_PIECE_GOODS, true, TAE_NONE},
		{"WATR", 9, CC_LIQUID | CC_POTABLE, true, TAE_WATER},
		{"DIAM", 10, CC_EXPRESS | CC_ARMOURED, false, TAE_NONE},
		{"FOOD", 11, CC_EXPRESS | CC_REFRIGERATED, true, TAE_FOOD},
	},
	LT_TOYLAND: {
		{"PASS", 0, CC_PASSENGERS, false, TAE_PASSENGERS},
		{"SUGR", 1, CC_BULK, true, TAE_NONE},
		{"MAIL", 2, CC_MAIL, false, TAE_MAIL},
		{"TOYS", 3, CC_PIECE_GOODS, true, TAE_NONE},
		{"BATT", 4, CC_PIECE_GOODS, true, TAE_NONE},
		{"SWET", 5, CC_EXPRESS, true, TAE_GOODS},
		{"TOFF", 6, CC_BULK, true, TAE_NONE},
		{"COLA", 7, CC_LIQUID, true, TAE_NONE},
		{"CTCD", 8, CC_EXPRESS, true, TAE_NONE},
		{"BUBL", 9, CC_PIECE_GOODS, true, TAE_NONE},
		{"PLST", 10, CC_LIQUID, true, TAE_NONE},
		{"FZDR", 11, CC_LIQUID, false, TAE_FOOD},
	},
}

// CargoTable is the global cargo registry, NUM_CARGO slots.
type CargoTable struct {
	specs [NUM_CARGO]CargoSpec
}

// NewCargoTable returns a table seeded with the default cargo set of the
// given climate.
func NewCargoTable(climate uint8) *CargoTable {
	ct := &CargoTable{}
	ct.SetupForClimate(climate)
	return ct
}

// SetupForClimate clears the table and seeds the climate's default cargos.
func (ct *CargoTable) SetupForClimate(climate uint8) {
	for i := range ct.specs {
		ct.specs[i] = CargoSpec{BitNum: INVALID_CARGO_BITNUM}
	}
	set, ok := defaultCargoSets[climate]
	if !ok {
		glog.Warningf("SetupForClimate: unknown climate %d, using temperate", climate)
		set = defaultCargoSets[LT_TEMPERATE]
	}
	for i, d := range set {
		ct.specs[i] = CargoSpec{
			Label:                grf.MakeLabel(d.label),
			BitNum:               d.bitnum,
			Classes:              d.classes,
			IsFreight:            d.freight,
			TownAcceptanceEffect: d.tae,
			Weight:               16,
			Multiplier:           0x100,
		}
		// Towns generate the passenger and mail slots in every climate.
		switch d.label {
		case "PASS":
			ct.specs[i].TownProductionEffect = TPE_PASSENGERS
		case "MAIL":
			ct.specs[i].TownProductionEffect = TPE_MAIL
		}
	}
}

// Spec returns the slot, or nil when out of range. Callers check IsValid
// for slots that are in range but unused.
func (ct *CargoTable) Spec(t CargoType) *CargoSpec {
	if int(t) >= len(ct.specs) {
		return nil
	}
	return &ct.specs[t]
}

// LabelLookup finds the cargo with the given label, INVALID_CARGO if none.
func (ct *CargoTable) LabelLookup(l grf.Label) CargoType {
	for i := range ct.specs {
		if ct.specs[i].IsValid() && ct.specs[i].Label == l {
			return CargoType(i)
		}
	}
	return INVALID_CARGO
}

// BitnumLookup finds the cargo with the given climate-independent bit
// number, INVALID_CARGO if none.
func (ct *CargoTable) BitnumLookup(bitnum uint8) CargoType {
	for i := range ct.specs {
		if ct.specs[i].IsValid() && ct.specs[i].BitNum == bitnum {
			return CargoType(i)
		}
	}
	return INVALID_CARGO
}

// ValidMask returns the bitmask of slots holding valid cargos.
func (ct *CargoTable) ValidMask() CargoMask {
	var m CargoMask
	for i := range ct.specs {
		if ct.specs[i].IsValid() {
			m |= 1 << uint(i)
		}
	}
	return m
}

// CargoMask is a bitmask over cargo table slots.
type CargoMask uint64

// ClassMask returns the bitmask of valid cargos that match any of the
// wanted classes and none of the unwanted ones.
func (ct *CargoTable) ClassMask(wanted, unwanted CargoClasses) CargoMask {
	var m CargoMask
	for i := range ct.specs {
		cs := &ct.specs[i]
		if cs.IsValid() && cs.Classes&wanted != 0 && cs.Classes&unwanted == 0 {
			m |= 1 << uint(i)
		}
	}
	return m
}
