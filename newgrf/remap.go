package newgrf

import (
	"github.com/golang/glog"

	"badc0de.net/pkg/go-newgrf/entities"
	"badc0de.net/pkg/go-newgrf/grf"
)

// Files written against a newer property or feature vocabulary declare
// their ids through meta info remap tables, binding a symbolic name to a
// raw id of their choosing. The decoder resolves names it knows and applies
// the declared fallback to the rest.

// remapFallback selects what a use of an unresolved name does.
type remapFallback uint8

const (
	REMAP_IGNORE      remapFallback = 0 // skip each use, log the first
	REMAP_DISABLE     remapFallback = 1 // disable the file when used
	REMAP_DISABLE_NOW remapFallback = 2 // disable the file immediately
)

// Raw property ids from this value up are reserved for remapping; their
// payload is length-prefixed so unresolved ones can be skipped exactly.
const firstRemappableProperty uint8 = 0x80

// The raw property id announcing an inline extended id.
const extendedPropertySentinel uint8 = 0xFF

// Extended property ids handled by the per-feature appliers. They live
// above the one-byte space and are only reachable through a remap
// declaration or the inline extended form.
const (
	PROP_SIGNALS_DEFINE_STYLE      uint16 = 0x100
	PROP_SIGNALS_STYLE_NAME        uint16 = 0x101
	PROP_SIGNALS_STYLE_FLAGS       uint16 = 0x102
	PROP_SIGNALS_EXTRA_ASPECTS     uint16 = 0x103
	PROP_LANDSCAPE_ENABLE_RECOLOUR uint16 = 0x110
	PROP_LANDSCAPE_SNOWY_ROCKS     uint16 = 0x111
)

// The symbolic vocabulary this decoder resolves.

var remappableFeatureNames = map[string]entities.Feature{
	"road_stops":    entities.GSF_ROADSTOPS,
	"new_signals":   entities.GSF_SIGNALS,
	"new_landscape": entities.GSF_NEWLANDSCAPE,
	"badges":        entities.GSF_BADGES,
}

type propTarget struct {
	feature entities.Feature
	prop    uint16
}

var remappablePropertyNames = map[string]propTarget{
	"signals_define_style":          {entities.GSF_SIGNALS, PROP_SIGNALS_DEFINE_STYLE},
	"signals_style_name":            {entities.GSF_SIGNALS, PROP_SIGNALS_STYLE_NAME},
	"signals_style_flags":           {entities.GSF_SIGNALS, PROP_SIGNALS_STYLE_FLAGS},
	"signals_extra_aspects":         {entities.GSF_SIGNALS, PROP_SIGNALS_EXTRA_ASPECTS},
	"new_landscape_enable_recolour": {entities.GSF_NEWLANDSCAPE, PROP_LANDSCAPE_ENABLE_RECOLOUR},
	"new_landscape_snowy_rocks":     {entities.GSF_NEWLANDSCAPE, PROP_LANDSCAPE_SNOWY_ROCKS},
}

type varTarget struct {
	feature  entities.Feature
	variable uint8
}

var remappableVariableNames = map[string]varTarget{
	"new_landscape_terrain_type": {entities.GSF_NEWLANDSCAPE, 0x60},
	"new_landscape_tile_slope":   {entities.GSF_NEWLANDSCAPE, 0x61},
	"signals_signal_context":     {entities.GSF_SIGNALS, 0x60},
	"signals_signal_side":        {entities.GSF_SIGNALS, 0x61},
}

var remappableAction5Names = map[string]uint8{
	"road_waypoints":       0x1C,
	"programmable_signals": 0x1D,
}

type featureRemap struct {
	name     string
	target   entities.Feature
	known    bool
	fallback remapFallback
	warned   bool
}

type propKey struct {
	feature entities.Feature
	raw     uint8
}

type propertyRemap struct {
	name     string
	target   uint16
	known    bool
	fallback remapFallback
	warned   bool
}

type variableRemap struct {
	name        string
	target      uint8
	inputShift  uint8
	inputMask   uint32
	outputShift uint8
	outputMask  uint32
	outputParam uint8
	known       bool
	fallback    remapFallback
	warned      bool
}

type action5Remap struct {
	name     string
	target   uint8
	known    bool
	fallback remapFallback
	warned   bool
}

// paramPreset is a success-report parameter value a remap declaration asked
// for, replayed into every decode state built from the config.
type paramPreset struct {
	slot  uint8
	value uint32
}

// remapTables holds all remap declarations of one file.
type remapTables struct {
	features   map[uint8]*featureRemap
	properties map[propKey]*propertyRemap
	variables  map[propKey]*variableRemap
	action5    map[uint8]*action5Remap

	paramPresets []paramPreset
}

func newRemapTables() remapTables {
	return remapTables{
		features:   make(map[uint8]*featureRemap),
		properties: make(map[propKey]*propertyRemap),
		variables:  make(map[propKey]*variableRemap),
		action5:    make(map[uint8]*action5Remap),
	}
}

// resolveFeature maps a raw feature byte through the file's declarations.
// The second result is false when the byte belongs to an unresolved name
// whose fallback says to skip the record.
func (l *Loader) resolveFeature(raw uint8) (entities.Feature, bool) {
	f := l.cur.file
	if f == nil {
		return entities.Feature(raw), true
	}
	entry, ok := f.remaps.features[raw]
	if !ok {
		return entities.Feature(raw), true
	}
	if entry.known {
		return entry.target, true
	}
	if entry.fallback == REMAP_DISABLE {
		l.disableGRF("unresolved feature \""+entry.name+"\" used", nil)
	} else if !entry.warned {
		glog.Warningf("%s: ignoring uses of unresolved feature %q", f.Config.GetName(), entry.name)
		entry.warned = true
	}
	return entities.GSF_INVALID, false
}

// Sentinel results of readPropertyID.
const (
	propIgnored uint16 = 0xFFFE // consumed, nothing to apply
	propFailed  uint16 = 0xFFFF // the file was disabled
)

// readPropertyID reads one property id, resolving remap declarations and
// the inline extended form. Remapped and extended properties carry their
// payload length-prefixed; for those, payload is returned as a cursor over
// exactly the declared bytes. Plain properties return a nil payload and
// the caller reads the action stream directly.
func (l *Loader) readPropertyID(r *grf.Reader, feature entities.Feature) (prop uint16, payload *grf.Reader) {
	raw := r.ReadByte()
	f := l.cur.file

	if raw == extendedPropertySentinel {
		prop = r.ReadWord()
		length := int(r.ReadExtendedByte())
		payload = grf.NewReader(r.ReadBytes(length))
		return prop, payload
	}

	entry, remapped := f.remaps.properties[propKey{feature, raw}]
	if !remapped {
		return uint16(raw), nil
	}

	length := int(r.ReadExtendedByte())
	payload = grf.NewReader(r.ReadBytes(length))
	if entry.known {
		return entry.target, payload
	}
	if entry.fallback == REMAP_DISABLE {
		l.disableGRF("unresolved property \""+entry.name+"\" used", nil)
		return propFailed, nil
	}
	if !entry.warned {
		glog.Warningf("%s: ignoring uses of unresolved property %q", f.Config.GetName(), entry.name)
		entry.warned = true
	}
	return propIgnored, payload
}

// resolveAction5Type maps a raw graphics replacement type through the
// file's declarations. ok is false when the type should be skipped.
func (l *Loader) resolveAction5Type(raw uint8) (uint8, bool) {
	f := l.cur.file
	entry, remapped := f.remaps.action5[raw]
	if !remapped {
		return raw, true
	}
	if entry.known {
		return entry.target, true
	}
	if entry.fallback == REMAP_DISABLE {
		l.disableGRF("unresolved graphics type \""+entry.name+"\" used", nil)
		return 0, false
	}
	if !entry.warned {
		glog.Warningf("%s: ignoring uses of unresolved graphics type %q", f.Config.GetName(), entry.name)
		entry.warned = true
	}
	return 0, false
}

// resolveVariable maps a raw chain variable through the file's
// declarations. Unresolved variables fall back to a constant-zero read so
// the chain keeps its shape.
func (f *File) resolveVariable(feature entities.Feature, raw uint8) (uint8, *variableRemap) {
	entry, remapped := f.remaps.variables[propKey{feature, raw}]
	if !remapped {
		return raw, nil
	}
	if entry.known {
		return entry.target, entry
	}
	if !entry.warned {
		glog.Warningf("%s: unresolved chain variable %q reads as zero", f.Config.GetName(), entry.name)
		entry.warned = true
	}
	return 0x1A, entry // constant variable
}
