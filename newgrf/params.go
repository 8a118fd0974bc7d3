package newgrf

import (
	"github.com/golang/glog"

	"badc0de.net/pkg/go-newgrf/entities"
)

// Decode-wide limits and anchors.
const (
	// Last sprite id of the original graphics set. Replacement actions may
	// not write past it, and new sprites are numbered from here.
	originalSpriteEnd = 4896

	// Hard ceiling on resource ids handed out through reservations.
	grmSpriteLimit = 16384

	// Pseudo records larger than this disable the file.
	maxPseudoRecordSize = 1024 * 1024
)

// Decoder version reported through global variable 0x21. Nibble-packed the
// way version-gated files test it: major, minor, build, release flag, then
// the revision number in the low bits.
const decoderNewGRFVersion uint32 = 1<<28 | 15<<24 | 0<<20 | 1<<19 | 28004

// Sprite numbers for graphics families living outside the classic block.
// Files anchor their overlays on these through patch variables.
const (
	spriteBaseSlopes uint32 = 5120
	spriteBaseShore  uint32 = 5248
	spriteBase2CC    uint32 = 5376
)

// Game modes reported through global variable 0x12.
const (
	GM_MENU   uint8 = 0
	GM_NORMAL uint8 = 1
	GM_EDITOR uint8 = 2
)

// Env fixes the world a decode session reports through global and patch
// variables. Every field has a sensible default so two runs over the same
// files make the same decisions.
type Env struct {
	Year  int   // calendar year
	Month uint8 // 0 is January
	Day   uint8 // 1 based

	Climate  uint8 // entities.LT_TEMPERATE and friends
	RoadSide uint8 // 0 drives left, 1 drives right
	GameMode uint8

	SnowLine    uint8 // in height levels
	HeightLimit uint8

	AnimationCounter uint16
	DateFract        uint16

	StartYear            int
	FreightTrainsFactor  uint8
	PlaneSpeedFactor     uint8 // 1 is 25%, 4 is 100%
	MapLogX, MapLogY     uint8
	GenerationSeed       uint32
	DisableElectricRails bool
}

// DefaultEnv is a mid-century temperate game on a 256x256 map.
func DefaultEnv() Env {
	return Env{
		Year:                1950,
		Month:               0,
		Day:                 1,
		Climate:             entities.LT_TEMPERATE,
		RoadSide:            1,
		GameMode:            GM_NORMAL,
		SnowLine:            10,
		HeightLimit:         15,
		StartYear:           1950,
		FreightTrainsFactor: 1,
		PlaneSpeedFactor:    4,
		MapLogX:             8,
		MapLogY:             8,
	}
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// daysTill counts the days in all years before the given one, matching the
// original calendar where day zero is the first of year zero.
func daysTill(year int) int {
	return 365*year + year/4 - year/100 + year/400
}

var daysBeforeMonth = [12]uint16{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}

// dayOfYear is zero based.
func (e Env) dayOfYear() int {
	d := int(daysBeforeMonth[e.Month%12]) + int(e.Day) - 1
	if e.Month >= 2 && isLeapYear(e.Year) {
		d++
	}
	return d
}

// date is the long format day number.
func (e Env) date() int {
	return daysTill(e.Year) + e.dayOfYear()
}

// Capability bits published to version tests against variable 0x85.
// The table photographs the fixed feature set of this decoder, grouped in
// four dwords the way the original patch published them.
var ttdpatchFlags = [8]uint32{
	// Airports, stations, signalling and engine lifetime handling.
	0: 1<<0x0C | 1<<0x0D | 1<<0x0E | 1<<0x0F | 1<<0x12 | 1<<0x13 | 1<<0x16 | 1<<0x1B | 1<<0x1D | 1<<0x1E,
	// Vehicle family support and refitting.
	1: 1<<0x07 | 1<<0x08 | 1<<0x09 | 1<<0x0C | 1<<0x14 | 1<<0x16 | 1<<0x17 | 1<<0x18 | 1<<0x19 | 1<<0x1A | 1<<0x1C,
	// Construction features, canals, houses, bridges and town names.
	2: 1<<0x03 | 1<<0x0B | 1<<0x0D | 1<<0x0E | 1<<0x12 | 1<<0x13 | 1<<0x14 | 1<<0x15 | 1<<0x16 | 1<<0x17 | 1<<0x19 | 1<<0x1A | 1<<0x1B | 1<<0x1C | 1<<0x1D | 1<<0x1E,
	// Industries, cargo types, sounds and vehicle behaviour refinements.
	3: 1<<0x06 | 1<<0x07 | 1<<0x0A | 1<<0x0B | 1<<0x0C | 1<<0x0D | 1<<0x0E | 1<<0x0F | 1<<0x10 | 1<<0x11 | 1<<0x12 | 1<<0x13 | 1<<0x16 | 1<<0x17 | 1<<0x18,
}

// getGlobalVariable answers the variables shared between the parameter
// actions and deterministic chains. ok is false for ids this table does
// not cover.
func (l *Loader) getGlobalVariable(v uint8, f *File) (uint32, bool) {
	e := l.Env
	switch v {
	case 0x00: // days since 1920
		d := e.date() - daysTill(1920)
		if d < 0 {
			d = 0
		}
		return uint32(d), true

	case 0x01: // years since 1920, clamped to the original range
		y := e.Year
		if y < 1920 {
			y = 1920
		}
		if y > 2090 {
			y = 2090
		}
		return uint32(y - 1920), true

	case 0x02: // month, day of month, leap flag and day of year packed
		value := uint32(e.Month) | uint32(e.Day-1)<<8 | uint32(e.dayOfYear())<<16
		if isLeapYear(e.Year) {
			value |= 1 << 15
		}
		return value, true

	case 0x03:
		return uint32(e.Climate), true

	case 0x06: // traffic side, bit 4 set means right
		return uint32(e.RoadSide) << 4, true

	case 0x09:
		return uint32(e.DateFract) * 885, true

	case 0x0A:
		return uint32(e.AnimationCounter), true

	case 0x0B: // version of the original patch, 2.6.1 build 1382
		return 2<<24 | 6<<20 | 1<<16 | 1382, true

	case 0x0D: // base set flavour, 0 DOS, 1 Windows
		if f != nil {
			return uint32(f.Config.Palette & GRFP_USE_MASK), true
		}
		return 0, true

	case 0x0E: // vertical offset for train sprites
		if f != nil {
			return uint32(int32(f.trainPitch)), true
		}
		return 0, true

	case 0x0F: // rail cost factors
		return l.railCostFactors(), true

	case 0x11: // current rail tool, fixed to keep decodes reproducible
		return 0, true

	case 0x12:
		return uint32(e.GameMode), true

	case 0x1A:
		return 0xFFFFFFFF, true

	case 0x1B: // display options, fixed
		return 0x3F, true

	case 0x1D: // platform, 1 means not the original patch
		return 1, true

	case 0x1E:
		value := l.miscFeatures
		if f != nil && f.trainWide {
			value |= 1 << GMB_TRAIN_WIDTH_32_PIXELS
		}
		return value, true

	case 0x20: // snow line height, 0xFF when not applicable
		if e.Climate == entities.LT_ARCTIC && e.SnowLine <= e.HeightLimit {
			h := uint32(e.SnowLine)
			if f == nil || f.grfVersion < 8 {
				h *= 8 // height levels to pixels for older files
			}
			if h > 0xFE {
				h = 0xFE
			}
			return h, true
		}
		return 0xFF, true

	case 0x21:
		return decoderNewGRFVersion, true

	case 0x22: // difficulty level, fixed to custom
		return 3, true

	case 0x23:
		return uint32(e.date()), true

	case 0x24:
		return uint32(e.Year), true

	default:
		return 0, false
	}
}

// getParamVal reads one source operand of a parameter action. condVal
// carries the comparison value of conditional actions so capability bit
// tests can steer it into the right dword; it is nil for assignments.
func (l *Loader) getParamVal(param uint8, condVal *uint32) uint32 {
	if value, ok := l.getGlobalVariable(param-0x80, l.cur.file); ok {
		return value
	}

	switch param {
	case 0x84: // loading stage bits
		var res uint32
		if l.stage > GLS_INIT {
			res |= 1 << 0
		}
		if l.stage == GLS_RESERVE {
			res |= 1 << 8
		}
		if l.stage == GLS_ACTIVATION {
			res |= 1 << 9
		}
		return res

	case 0x85: // capability bits, only meaningful for bit tests
		if condVal == nil {
			return 0
		}
		index := *condVal / 0x20
		*condVal %= 0x20
		if index >= uint32(len(ttdpatchFlags)) {
			return 0
		}
		return ttdpatchFlags[index]

	case 0x88: // file id tests read the target through GetGRFConfig instead
		return 0

	default:
		if param < 0x80 {
			return l.cur.file.Param(param)
		}
		glog.V(1).Infof("%s: unsupported in-game variable 0x%02X", l.cur.cfg.GetName(), param)
		return 0xFFFFFFFF
	}
}

// getPatchVariable answers reads of original patch settings through
// parameter assignments.
func (l *Loader) getPatchVariable(v uint8) uint32 {
	e := l.Env
	switch v {
	case 0x0B: // start year since 1920
		y := e.StartYear
		if y < 1920 {
			y = 1920
		}
		return uint32(y - 1920)

	case 0x0E: // freight train weight factor
		return uint32(e.FreightTrainsFactor)

	case 0x0F: // empty wagon speed increase, never implemented
		return 0

	case 0x10:
		return uint32(e.PlaneSpeedFactor)

	case 0x11: // base sprite of the two company colour map
		return spriteBase2CC

	case 0x13: // map size summary, -MABXYSS
		logX := e.MapLogX - 6
		logY := e.MapLogY - 6
		var mapBits uint32
		maxEdge, minEdge := logX, logY
		if logX == logY {
			mapBits = 1 << 0
		} else if logY > logX {
			mapBits = 1 << 1
			maxEdge, minEdge = logY, logX
		} else {
			maxEdge, minEdge = logX, logY
		}
		return mapBits<<24 | uint32(minEdge)<<20 | uint32(maxEdge)<<16 |
			uint32(logX)<<12 | uint32(logY)<<8 | uint32(logX+logY)

	case 0x14:
		return uint32(e.HeightLimit)

	case 0x15: // base sprite of the extra foundations
		return spriteBaseSlopes

	case 0x16: // base sprite of the shore tiles
		return spriteBaseShore

	case 0x17:
		return e.GenerationSeed

	default:
		glog.V(2).Infof("%s: unknown patch variable 0x%02X", l.cur.cfg.GetName(), v)
		return 0
	}
}

// railCostFactors packs the construction cost bytes of the classic rail
// types the way variable 0x0F and its matching assignment target lay them
// out. Without electric rails the monorail byte moves down a slot.
func (l *Loader) railCostFactors() uint32 {
	cost := func(id entities.TrackTypeID) uint32 {
		info := l.Tables.RailTypes.Info(id)
		if info == nil {
			return 0
		}
		return uint32(info.ConstructionCost & 0xFF)
	}
	value := cost(0)
	if l.Env.DisableElectricRails {
		value |= cost(2) << 8
	} else {
		value |= cost(1) << 8
	}
	value |= cost(3) << 16
	return value
}

// setRailCostFactors applies an assignment to the cost factor word.
func (l *Loader) setRailCostFactors(res uint32) {
	set := func(id entities.TrackTypeID, v uint32) {
		if info := l.Tables.RailTypes.Info(id); info != nil {
			info.ConstructionCost = uint16(v & 0xFF)
		}
	}
	set(0, res)
	if l.Env.DisableElectricRails {
		set(1, res)
		set(2, res>>8)
	} else {
		set(1, res>>8)
	}
	set(3, res>>16)
}

// Miscellaneous feature bits shared by every loaded file through variable
// 0x1E and its matching assignment target.
const (
	GMB_DESERT_TREES_FIELDS    = 0
	GMB_DESERT_PAVED_ROADS     = 1
	GMB_TRAIN_WIDTH_32_PIXELS  = 3
	GMB_AMBIENT_SOUND_CALLBACK = 4
	GMB_SECOND_ROCKY_TILE_SET  = 6
)
