package entities

import (
	"github.com/golang/glog"

	"badc0de.net/pkg/go-newgrf/grf"
	"badc0de.net/pkg/go-newgrf/grftext"
)

// ObjectID indexes the map object pool.
type ObjectID uint16

const (
	INVALID_OBJECT ObjectID = 0xFFFF

	// The 1x1 footprint, the default for objects that never set a size.
	OBJECT_SIZE_1X1 uint8 = 0x11
)

// Object behavior flags, property 0x10.
const (
	OBJECT_FLAG_ONLY_IN_SCENEDIT   uint16 = 1 << 0
	OBJECT_FLAG_CANNOT_REMOVE      uint16 = 1 << 1
	OBJECT_FLAG_AUTOREMOVE         uint16 = 1 << 2
	OBJECT_FLAG_BUILT_ON_WATER     uint16 = 1 << 3
	OBJECT_FLAG_CLEAR_INCOME       uint16 = 1 << 4
	OBJECT_FLAG_HAS_NO_FOUNDATION  uint16 = 1 << 5
	OBJECT_FLAG_ANIMATION          uint16 = 1 << 6
	OBJECT_FLAG_ONLY_IN_GAME       uint16 = 1 << 7
	OBJECT_FLAG_2CC_COLOUR         uint16 = 1 << 8
	OBJECT_FLAG_NOT_ON_LAND        uint16 = 1 << 9
	OBJECT_FLAG_DRAW_WATER         uint16 = 1 << 10
	OBJECT_FLAG_ALLOW_UNDER_BRIDGE uint16 = 1 << 11
	OBJECT_FLAG_ANIM_RANDOM_BITS   uint16 = 1 << 12
	OBJECT_FLAG_SCALE_BY_WATER     uint16 = 1 << 13
)

// ObjectSpec describes one map object type.
type ObjectSpec struct {
	Props GRFProps
	Class ClassID

	Name      grftext.StringID
	ClassName grftext.StringID

	ClimateAvailability uint8
	Size                uint8 // high nibble x, low nibble y
	BuildCostFactor     uint8
	ClearCostFactor     uint8
	IntroDate           int32
	EndOfLifeDate       int32
	Flags               uint16
	Animation           AnimationInfo
	CallbackMask        uint16
	Height              uint8
	Views               uint8
	GenerateAmount      uint8
	Badges              []BadgeID

	Enabled bool
}

// objectClass groups objects under a label for the build picker.
type objectClass struct {
	label grf.Label
	name  grftext.StringID
	specs []*ObjectSpec
}

// ObjectClassList allocates object classes.
type ObjectClassList struct {
	classes []objectClass
	byLabel map[grf.Label]ClassID
}

func NewObjectClassList() *ObjectClassList {
	return &ObjectClassList{byLabel: make(map[grf.Label]ClassID)}
}

func (l *ObjectClassList) Allocate(label grf.Label) ClassID {
	if id, ok := l.byLabel[label]; ok {
		return id
	}
	if len(l.classes) >= MAX_CLASSES {
		glog.Errorf("ObjectClassList: class table full, cannot allocate %s", label)
		return INVALID_CLASS
	}
	id := ClassID(len(l.classes))
	l.classes = append(l.classes, objectClass{label: label, name: grftext.STR_UNDEFINED})
	l.byLabel[label] = id
	return id
}

func (l *ObjectClassList) SetName(id ClassID, name grftext.StringID) {
	if int(id) < len(l.classes) {
		l.classes[id].name = name
	}
}

func (l *ObjectClassList) Insert(spec *ObjectSpec) {
	if int(spec.Class) >= len(l.classes) {
		glog.Errorf("ObjectClassList: spec %d references unknown class %d", spec.Props.LocalID, spec.Class)
		return
	}
	l.classes[spec.Class].specs = append(l.classes[spec.Class].specs, spec)
}

func (l *ObjectClassList) Label(id ClassID) grf.Label {
	if int(id) >= len(l.classes) {
		return 0
	}
	return l.classes[id].label
}

func (l *ObjectClassList) Specs(id ClassID) []*ObjectSpec {
	if int(id) >= len(l.classes) {
		return nil
	}
	return l.classes[id].specs
}

func (l *ObjectClassList) Len() int { return len(l.classes) }
