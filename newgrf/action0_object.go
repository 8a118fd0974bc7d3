package newgrf

import (
	"github.com/golang/glog"

	"badc0de.net/pkg/go-newgrf/entities"
	"badc0de.net/pkg/go-newgrf/grf"
	"badc0de.net/pkg/go-newgrf/grftext"
)

// ignoreObjectProperty consumes one object property value without applying
// it.
func ignoreObjectProperty(r *grf.Reader, prop uint16) changeInfoResult {
	switch prop {
	case 0x0B, 0x0C, 0x0D, 0x12, 0x14, 0x16, 0x17, 0x18:
		r.ReadByte()

	case 0x09, 0x0A, 0x10, 0x11, 0x13, 0x15:
		r.ReadWord()

	case 0x08, 0x0E, 0x0F:
		r.ReadDWord()

	case 0x19:
		skipBadgeList(r)

	default:
		return CIR_UNKNOWN
	}
	return CIR_SUCCESS
}

// objectChangeInfo applies action 0 map object properties. Objects carry no
// substitute scheme; the class label definition in property 0x08 creates
// them.
func objectChangeInfo(l *Loader, r *grf.Reader, prop uint16, first, num int) changeInfoResult {
	f := l.cur.file

	if first+num > OBJECTS_PER_GRF {
		glog.V(1).Infof("objectChangeInfo: object %d out of range (max %d per file), ignoring",
			first+num-1, OBJECTS_PER_GRF)
		return CIR_INVALID_ID
	}

	if len(f.objects) < first+num {
		f.objects = append(f.objects, make([]*entities.ObjectSpec, first+num-len(f.objects))...)
	}

	for i := 0; i < num; i++ {
		spec := f.objects[first+i]

		if spec == nil && prop != 0x08 {
			glog.V(2).Infof("objectChangeInfo: property 0x%02X for undefined object %d, ignoring",
				prop, first+i)
			if cir := ignoreObjectProperty(r, prop); cir != CIR_SUCCESS {
				return cir
			}
			continue
		}

		switch prop {
		case 0x08: // class label, defines the object
			if spec == nil {
				spec = &entities.ObjectSpec{
					Views:   1,
					Size:    entities.OBJECT_SIZE_1X1,
					Enabled: true,
				}
				spec.Props.SetGRF(f.grfid, uint16(first+i))
				f.objects[first+i] = spec
			}
			spec.Class = l.Tables.Objects.Allocate(r.ReadLabel())

		case 0x09: // class name
			class := spec.Class
			l.addStringForMapping(grftext.GRFStringID(r.ReadWord()), func(str grftext.StringID) {
				l.Tables.Objects.SetName(class, str)
			})

		case 0x0A:
			s := spec
			l.addStringForMapping(grftext.GRFStringID(r.ReadWord()), func(str grftext.StringID) {
				s.Name = str
			})

		case 0x0B:
			spec.ClimateAvailability = r.ReadByte()

		case 0x0C: // footprint, a nibble per axis
			spec.Size = r.ReadByte()
			if spec.Size&0x0F == 0 || spec.Size&0xF0 == 0 {
				glog.Errorf("objectChangeInfo: object %d requests a degenerate size 0x%02X",
					first+i, spec.Size)
				spec.Size = entities.OBJECT_SIZE_1X1
			}

		case 0x0D:
			spec.BuildCostFactor = r.ReadByte()
			spec.ClearCostFactor = spec.BuildCostFactor

		case 0x0E:
			spec.IntroDate = int32(r.ReadDWord())

		case 0x0F:
			spec.EndOfLifeDate = int32(r.ReadDWord())

		case 0x10:
			spec.Flags = r.ReadWord()

		case 0x11:
			spec.Animation.Frames = r.ReadByte()
			spec.Animation.Status = r.ReadByte()

		case 0x12:
			spec.Animation.Speed = r.ReadByte()

		case 0x13:
			spec.Animation.Triggers = r.ReadWord()

		case 0x14:
			spec.ClearCostFactor = r.ReadByte()

		case 0x15:
			spec.CallbackMask = r.ReadWord()

		case 0x16:
			spec.Height = r.ReadByte()

		case 0x17:
			spec.Views = r.ReadByte()
			if spec.Views != 1 && spec.Views != 2 && spec.Views != 4 {
				glog.V(2).Infof("objectChangeInfo: object %d requests %d views, resetting to 1",
					first+i, spec.Views)
				spec.Views = 1
			}

		case 0x18:
			spec.GenerateAmount = r.ReadByte()

		case 0x19:
			spec.Badges = readBadgeList(l, r, entities.GSF_OBJECTS)

		default:
			return CIR_UNKNOWN
		}
	}
	return CIR_SUCCESS
}

// ignoreRoadStopProperty consumes one road stop property value without
// applying it.
func ignoreRoadStopProperty(r *grf.Reader, prop uint16) changeInfoResult {
	switch prop {
	case 0x09, 0x0C, 0x0F, 0x11:
		r.ReadByte()

	case 0x0A, 0x0B, 0x10, 0x15:
		r.ReadWord()

	case 0x08, 0x0D, 0x12:
		r.ReadDWord()

	case 0x16:
		skipBadgeList(r)

	default:
		return CIR_UNKNOWN
	}
	return CIR_SUCCESS
}

// roadStopChangeInfo applies action 0 road stop properties.
func roadStopChangeInfo(l *Loader, r *grf.Reader, prop uint16, first, num int) changeInfoResult {
	f := l.cur.file

	if first+num > ROAD_STOPS_PER_GRF {
		glog.V(1).Infof("roadStopChangeInfo: road stop %d out of range (max %d per file), ignoring",
			first+num-1, ROAD_STOPS_PER_GRF)
		return CIR_INVALID_ID
	}

	if len(f.roadStops) < first+num {
		f.roadStops = append(f.roadStops, make([]*entities.RoadStopSpec, first+num-len(f.roadStops))...)
	}

	for i := 0; i < num; i++ {
		spec := f.roadStops[first+i]

		if spec == nil && prop != 0x08 {
			glog.V(1).Infof("roadStopChangeInfo: property 0x%02X for undefined road stop %d, ignoring",
				prop, first+i)
			if cir := ignoreRoadStopProperty(r, prop); cir != CIR_SUCCESS {
				return cir
			}
			continue
		}

		switch prop {
		case 0x08: // class label, defines the stop
			if spec == nil {
				spec = &entities.RoadStopSpec{}
				spec.Props.SetGRF(f.grfid, uint16(first+i))
				f.roadStops[first+i] = spec
			}
			spec.Class = l.Tables.RoadStops.Allocate(r.ReadLabel())

		case 0x09:
			spec.StopType = r.ReadByte()

		case 0x0A:
			s := spec
			l.addStringForMapping(grftext.GRFStringID(r.ReadWord()), func(str grftext.StringID) {
				s.Name = str
			})

		case 0x0B: // class name
			class := spec.Class
			l.addStringForMapping(grftext.GRFStringID(r.ReadWord()), func(str grftext.StringID) {
				l.Tables.RoadStops.SetName(class, str)
			})

		case 0x0C:
			spec.DrawMode = r.ReadByte()

		case 0x0D:
			spec.CargoTriggers = l.translateRefitMask(r.ReadDWord())

		case 0x0E:
			spec.Animation.Frames = r.ReadByte()
			spec.Animation.Status = r.ReadByte()

		case 0x0F:
			spec.Animation.Speed = r.ReadByte()

		case 0x10:
			spec.Animation.Triggers = r.ReadWord()

		case 0x11:
			spec.CallbackMask = r.ReadByte()

		case 0x12: // flags, sized a dword for later extension
			spec.Flags = uint16(r.ReadDWord())

		case 0x15:
			spec.BuildCostFactor = r.ReadByte()
			spec.ClearCostFactor = r.ReadByte()

		case 0x16:
			spec.Badges = readBadgeList(l, r, entities.GSF_ROADSTOPS)

		default:
			return CIR_UNKNOWN
		}
	}
	return CIR_SUCCESS
}
