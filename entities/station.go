package entities

import (
	"github.com/golang/glog"

	"badc0de.net/pkg/go-newgrf/grf"
	"badc0de.net/pkg/go-newgrf/grftext"
	"badc0de.net/pkg/go-newgrf/spritegroup"
)

// ClassID indexes a class list (stations, objects, road stops).
type ClassID uint16

const (
	INVALID_CLASS ClassID = 0xFFFF
	MAX_CLASSES   int     = 255
)

// StationSpec describes one custom station design.
type StationSpec struct {
	Props GRFProps
	Class ClassID

	Name      grftext.StringID
	ClassName grftext.StringID

	// Tile layouts in definition order. Layouts 0 and 1 are the X and Y
	// orientation of the default platform tile.
	Layouts []*spritegroup.TileLayout

	// Platform arrangements keyed by length, then platform count.
	Platforms map[uint8]map[uint8][]uint8

	DisallowedPlatforms uint8
	DisallowedLengths   uint8
	CallbackMask        uint8
	Flags               uint8

	// Masks of tile positions that get pylons, no catenary wires, or are
	// blocked for trains.
	Pylons  uint8
	Wires   uint8
	Blocked uint8

	CargoThreshold uint32
	CargoTriggers  CargoMask

	Animation AnimationInfo

	Badges []BadgeID
}

// SetPlatformLayout stores one platform arrangement of the given length and
// platform count.
func (s *StationSpec) SetPlatformLayout(length, count uint8, tiles []uint8) {
	if s.Platforms == nil {
		s.Platforms = make(map[uint8]map[uint8][]uint8)
	}
	if s.Platforms[length] == nil {
		s.Platforms[length] = make(map[uint8][]uint8)
	}
	s.Platforms[length][count] = tiles
}

// stationClass groups station designs under a label for the build picker.
type stationClass struct {
	label grf.Label
	name  grftext.StringID
	specs []*StationSpec
}

// StationClassList allocates station classes and the designs within them.
// Classes DFLT and WAYP always exist.
type StationClassList struct {
	classes []stationClass
	byLabel map[grf.Label]ClassID
}

func NewStationClassList() *StationClassList {
	l := &StationClassList{byLabel: make(map[grf.Label]ClassID)}
	l.Allocate(grf.MakeLabel("DFLT"))
	l.Allocate(grf.MakeLabel("WAYP"))
	return l
}

// Allocate returns the class with the given label, creating it if needed.
// A full class table reports INVALID_CLASS.
func (l *StationClassList) Allocate(label grf.Label) ClassID {
	if id, ok := l.byLabel[label]; ok {
		return id
	}
	if len(l.classes) >= MAX_CLASSES {
		glog.Errorf("StationClassList: class table full, cannot allocate %s", label)
		return INVALID_CLASS
	}
	id := ClassID(len(l.classes))
	l.classes = append(l.classes, stationClass{label: label, name: grftext.STR_UNDEFINED})
	l.byLabel[label] = id
	return id
}

// SetName names a class for the build picker.
func (l *StationClassList) SetName(id ClassID, name grftext.StringID) {
	if int(id) < len(l.classes) {
		l.classes[id].name = name
	}
}

// Insert adds a design to its class.
func (l *StationClassList) Insert(spec *StationSpec) {
	if int(spec.Class) >= len(l.classes) {
		glog.Errorf("StationClassList: spec %d references unknown class %d", spec.Props.LocalID, spec.Class)
		return
	}
	l.classes[spec.Class].specs = append(l.classes[spec.Class].specs, spec)
}

// Label returns the label of a class.
func (l *StationClassList) Label(id ClassID) grf.Label {
	if int(id) >= len(l.classes) {
		return 0
	}
	return l.classes[id].label
}

// Specs returns the designs of a class in insertion order.
func (l *StationClassList) Specs(id ClassID) []*StationSpec {
	if int(id) >= len(l.classes) {
		return nil
	}
	return l.classes[id].specs
}

// Len returns the number of allocated classes.
func (l *StationClassList) Len() int { return len(l.classes) }
