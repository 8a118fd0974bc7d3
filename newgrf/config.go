package newgrf

import (
	"path/filepath"
)

// GRFStatus tracks how far a file made it through loading.
type GRFStatus uint8

const (
	GCS_UNKNOWN     GRFStatus = iota // no stage has touched the file yet
	GCS_DISABLED                     // an error stopped the file for good
	GCS_NOT_FOUND                    // the file is missing on disk
	GCS_INITIALISED                  // identified; activation still pending
	GCS_ACTIVATED                    // the file's action 8 ran in activation
)

var statusNames = []string{"unknown", "disabled", "not found", "initialised", "activated"}

func (s GRFStatus) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "invalid"
}

// Config flag bits.
const (
	GCF_SYSTEM    uint8 = 1 << 0 // GRFID reserved for internal use
	GCF_UNSAFE    uint8 = 1 << 1 // the safety scan rejected the file
	GCF_STATIC    uint8 = 1 << 2 // loaded outside the synchronized set
	GCF_INVALID   uint8 = 1 << 3 // carries an unsupported format version
	GCF_RESERVED  uint8 = 1 << 4 // between the reserve and activation stage
	GCF_INIT_ONLY uint8 = 1 << 5 // the file asks not to be activated
)

// Palette declaration bits, combining what the file was written for with
// what the load should use.
const (
	GRFP_USE_DOS     uint8 = 0x0
	GRFP_USE_WINDOWS uint8 = 0x1
	GRFP_USE_MASK    uint8 = 0x1

	GRFP_GRF_UNSET   uint8 = 0x0 << 2
	GRFP_GRF_DOS     uint8 = 0x1 << 2
	GRFP_GRF_WINDOWS uint8 = 0x2 << 2
	GRFP_GRF_ANY     uint8 = GRFP_GRF_DOS | GRFP_GRF_WINDOWS
	GRFP_GRF_MASK    uint8 = GRFP_GRF_ANY

	GRFP_BLT_UNSET uint8 = 0x0 << 4
	GRFP_BLT_32BPP uint8 = 0x1 << 4
	GRFP_BLT_MASK  uint8 = GRFP_BLT_32BPP
)

// Parameter slots one file can address.
const MAX_NUM_PARAMS = 0x80

// ParamInfo is the action 14 description of one settable parameter.
type ParamInfo struct {
	Name string
	Desc string

	Type         uint8 // 0 scalar, 1 bit mask
	MinValue     uint32
	MaxValue     uint32
	DefaultValue uint32

	// Slot and bit window of the setting inside the file's parameter block.
	Param    uint8
	FirstBit uint8
	NumBits  uint8

	// Value labels keyed by raw value.
	ValueNames map[uint32]string
}

// Config identifies one file of a load set and collects everything the
// identification stages learn about it.
type Config struct {
	Path  string
	GRFID uint32

	Name string // action 8 or meta info name, best language available
	Info string
	URL  string

	Version            uint32
	MinLoadableVersion uint32

	Flags   uint8
	Palette uint8
	Status  GRFStatus

	// Parameter values the caller supplied, and how many of the slots the
	// file declares as meaningful (0xFF when undeclared).
	Params    []uint32
	NumParams uint8
	ParamInfo []*ParamInfo

	Error *LoadError

	// Remap declarations from the file's meta info. They are collected
	// during the scan and shared into the decode state of every stage.
	remaps remapTables
}

// GetName returns the file's self-declared name, or its base filename
// before any action 8 has run.
func (c *Config) GetName() string {
	if c.Name != "" {
		return c.Name
	}
	return filepath.Base(c.Path)
}

// HasFlag reports whether the given GCF flag bit is set.
func (c *Config) HasFlag(flag uint8) bool { return c.Flags&flag != 0 }

// SetParamInfo grows the descriptor table to hold index and returns the
// slot, allocating the descriptor on first use.
func (c *Config) SetParamInfo(index int) *ParamInfo {
	for len(c.ParamInfo) <= index {
		c.ParamInfo = append(c.ParamInfo, nil)
	}
	if c.ParamInfo[index] == nil {
		c.ParamInfo[index] = &ParamInfo{
			Type:     0,
			MaxValue: 0xFFFFFFFF,
			Param:    uint8(index),
			NumBits:  32,
		}
	}
	return c.ParamInfo[index]
}
