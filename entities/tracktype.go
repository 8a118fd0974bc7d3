package entities

import (
	"github.com/golang/glog"

	"badc0de.net/pkg/go-newgrf/grf"
	"badc0de.net/pkg/go-newgrf/grftext"
	"badc0de.net/pkg/go-newgrf/spritegroup"
)

// TrackTypeID is a slot in the rail type table or in the shared
// road/tram type table.
type TrackTypeID uint8

const (
	NUM_RAILTYPES = 64
	NUM_ROADTYPES = 63

	INVALID_TRACK_TYPE TrackTypeID = 0xFF

	// Slots the stock types occupy in freshly seeded tables.
	RAILTYPE_RAIL     TrackTypeID = 0
	RAILTYPE_ELECTRIC TrackTypeID = 1
	RAILTYPE_MONO     TrackTypeID = 2
	RAILTYPE_MAGLEV   TrackTypeID = 3
	ROADTYPE_ROAD     TrackTypeID = 0
	ROADTYPE_TRAM     TrackTypeID = 1
)

// Labels of the stock track types, for files that predate the translation
// tables.
var (
	RAILTYPE_LABEL_RAIL     = grf.MakeLabel("RAIL")
	RAILTYPE_LABEL_ELECTRIC = grf.MakeLabel("ELRL")
	RAILTYPE_LABEL_MONO     = grf.MakeLabel("MONO")
	RAILTYPE_LABEL_MAGLEV   = grf.MakeLabel("MGLV")

	ROADTYPE_LABEL_ROAD = grf.MakeLabel("ROAD")
)

// TrackTypeInfo describes one rail, road or tram type. Compatibility and
// power relations are kept as the raw label lists from the defining file
// and resolved into slot masks during finalization.
type TrackTypeInfo struct {
	Label           grf.Label
	AlternateLabels []grf.Label

	Name           grftext.StringID
	ToolbarCaption grftext.StringID
	MenuText       grftext.StringID
	BuildCaption   grftext.StringID
	Autoreplace    grftext.StringID
	NewEngineText  grftext.StringID

	CompatibleLabels []grf.Label
	PoweredLabels    []grf.Label

	CompatibleMask uint64
	PoweredMask    uint64

	MaxSpeed         uint16
	Flags            uint8
	CurveSpeed       uint8
	StationGraphics  uint8
	ConstructionCost uint16
	MaintenanceMult  uint16
	AccelerationType uint8
	MapColour        uint8
	IntroDate        int32
	SortOrder        uint8
	Badges           []BadgeID

	RequiresLabels   []grf.Label // introduction prerequisites
	IntroducesLabels []grf.Label

	// Graphics chains keyed by the chain kind byte of the binding action.
	// Later files overwrite earlier bindings per kind.
	Groups map[uint8]*spritegroup.Group

	IsTram bool
}

// BindGroup attaches a graphics chain for one chain kind, replacing any
// earlier binding.
func (i *TrackTypeInfo) BindGroup(kind uint8, g *spritegroup.Group) {
	if i.Groups == nil {
		i.Groups = make(map[uint8]*spritegroup.Group)
	}
	i.Groups[kind] = g
}

// TrackTypeTable is a label-addressed table of track types.
type TrackTypeTable struct {
	kind    string
	types   []TrackTypeInfo
	max     int
	byLabel map[grf.Label]TrackTypeID
}

func newTrackTypeTable(kind string, max int, stock []string) *TrackTypeTable {
	t := &TrackTypeTable{kind: kind, max: max, byLabel: make(map[grf.Label]TrackTypeID)}
	for _, s := range stock {
		id := TrackTypeID(len(t.types))
		l := grf.MakeLabel(s)
		t.types = append(t.types, TrackTypeInfo{Label: l, Name: grftext.STR_UNDEFINED})
		t.byLabel[l] = id
	}
	return t
}

// NewRailTypeTable seeds the table with the original rail types.
func NewRailTypeTable() *TrackTypeTable {
	return newTrackTypeTable("rail", NUM_RAILTYPES, []string{"RAIL", "ELRL", "MONO", "MGLV"})
}

// NewRoadTypeTable seeds the shared road and tram table with the original
// road type and the compatibility tram label.
func NewRoadTypeTable() *TrackTypeTable {
	t := newTrackTypeTable("road", NUM_ROADTYPES, []string{"ROAD"})
	tram := t.Allocate(grf.MakeLabel("ELRL"))
	t.types[tram].IsTram = true
	return t
}

// Allocate returns the slot holding the label, creating one if needed.
// A full table reports INVALID_TRACK_TYPE.
func (t *TrackTypeTable) Allocate(label grf.Label) TrackTypeID {
	if id, ok := t.byLabel[label]; ok {
		return id
	}
	if len(t.types) >= t.max {
		glog.Errorf("TrackTypeTable: %s type table full, cannot allocate %s", t.kind, label)
		return INVALID_TRACK_TYPE
	}
	id := TrackTypeID(len(t.types))
	t.types = append(t.types, TrackTypeInfo{Label: label, Name: grftext.STR_UNDEFINED})
	t.byLabel[label] = id
	return id
}

// LabelLookup finds the slot holding the label, consulting alternate labels
// after primary ones. INVALID_TRACK_TYPE if absent.
func (t *TrackTypeTable) LabelLookup(label grf.Label) TrackTypeID {
	if id, ok := t.byLabel[label]; ok {
		return id
	}
	for i := range t.types {
		for _, alt := range t.types[i].AlternateLabels {
			if alt == label {
				return TrackTypeID(i)
			}
		}
	}
	return INVALID_TRACK_TYPE
}

// Info returns the slot, or nil when out of range.
func (t *TrackTypeTable) Info(id TrackTypeID) *TrackTypeInfo {
	if int(id) >= len(t.types) {
		return nil
	}
	return &t.types[id]
}

func (t *TrackTypeTable) Len() int { return len(t.types) }

// ResolveMasks converts the raw label lists of every slot into slot
// bitmasks. Labels that no file defined resolve to nothing, and in the
// shared road table power cannot cross between roads and trams.
func (t *TrackTypeTable) ResolveMasks() {
	for i := range t.types {
		info := &t.types[i]
		info.CompatibleMask = 1 << uint(i)
		info.PoweredMask = 0
		for _, l := range info.CompatibleLabels {
			if id := t.LabelLookup(l); id != INVALID_TRACK_TYPE {
				info.CompatibleMask |= 1 << uint(id)
			}
		}
		for _, l := range info.PoweredLabels {
			id := t.LabelLookup(l)
			if id == INVALID_TRACK_TYPE {
				continue
			}
			if t.types[id].IsTram != info.IsTram {
				glog.V(1).Infof("ResolveMasks: %s type %s powers %s of the other kind, ignoring",
					t.kind, info.Label, l)
				continue
			}
			info.PoweredMask |= 1 << uint(id)
		}
		// Powered implies compatible.
		info.CompatibleMask |= info.PoweredMask
	}
}
