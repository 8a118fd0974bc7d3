package entities

import (
	"github.com/golang/glog"

	"badc0de.net/pkg/go-newgrf/grf"
	"badc0de.net/pkg/go-newgrf/grftext"
)

// Road stop draw modes, property 0x0C.
const (
	ROADSTOP_DRAW_MODE_ROAD     uint8 = 1 << 0
	ROADSTOP_DRAW_MODE_OVERLAY  uint8 = 1 << 1
	ROADSTOP_DRAW_MODE_WAYPOINT uint8 = 1 << 2
)

// RoadStopSpec describes one custom road stop design.
type RoadStopSpec struct {
	Props GRFProps
	Class ClassID

	Name      grftext.StringID
	ClassName grftext.StringID

	StopType        uint8
	DrawMode        uint8
	CargoTriggers   CargoMask
	Animation       AnimationInfo
	CallbackMask    uint8
	Flags           uint16
	BuildCostFactor uint8
	ClearCostFactor uint8
	Badges          []BadgeID
}

type roadStopClass struct {
	label grf.Label
	name  grftext.StringID
	specs []*RoadStopSpec
}

// RoadStopClassList allocates road stop classes. Classes DFLT and WAYP
// always exist.
type RoadStopClassList struct {
	classes []roadStopClass
	byLabel map[grf.Label]ClassID
}

func NewRoadStopClassList() *RoadStopClassList {
	l := &RoadStopClassList{byLabel: make(map[grf.Label]ClassID)}
	l.Allocate(grf.MakeLabel("DFLT"))
	l.Allocate(grf.MakeLabel("WAYP"))
	return l
}

func (l *RoadStopClassList) Allocate(label grf.Label) ClassID {
	if id, ok := l.byLabel[label]; ok {
		return id
	}
	if len(l.classes) >= MAX_CLASSES {
		glog.Errorf("RoadStopClassList: class table full, cannot allocate %s", label)
		return INVALID_CLASS
	}
	id := ClassID(len(l.classes))
	l.classes = append(l.classes, roadStopClass{label: label, name: grftext.STR_UNDEFINED})
	l.byLabel[label] = id
	return id
}

func (l *RoadStopClassList) SetName(id ClassID, name grftext.StringID) {
	if int(id) < len(l.classes) {
		l.classes[id].name = name
	}
}

func (l *RoadStopClassList) Insert(spec *RoadStopSpec) {
	if int(spec.Class) >= len(l.classes) {
		glog.Errorf("RoadStopClassList: spec %d references unknown class %d", spec.Props.LocalID, spec.Class)
		return
	}
	l.classes[spec.Class].specs = append(l.classes[spec.Class].specs, spec)
}

func (l *RoadStopClassList) Label(id ClassID) grf.Label {
	if int(id) >= len(l.classes) {
		return 0
	}
	return l.classes[id].label
}

func (l *RoadStopClassList) Specs(id ClassID) []*RoadStopSpec {
	if int(id) >= len(l.classes) {
		return nil
	}
	return l.classes[id].specs
}

func (l *RoadStopClassList) Len() int { return len(l.classes) }
