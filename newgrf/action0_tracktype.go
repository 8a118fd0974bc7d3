package newgrf

import (
	"github.com/golang/glog"

	"badc0de.net/pkg/go-newgrf/entities"
	"badc0de.net/pkg/go-newgrf/grf"
	"badc0de.net/pkg/go-newgrf/grftext"
)

// skipLabelList consumes a count-prefixed label list.
func skipLabelList(r *grf.Reader) {
	n := int(r.ReadByte())
	r.Skip(4 * n)
}

func readLabelList(r *grf.Reader) []grf.Label {
	n := int(r.ReadByte())
	out := make([]grf.Label, n)
	for i := range out {
		out[i] = r.ReadLabel()
	}
	return out
}

// railTypeReserveInfo allocates rail type slots for the labels defined in
// property 0x08 and records alternate labels. Every other property is
// consumed here and applied during activation.
func railTypeReserveInfo(l *Loader, r *grf.Reader, prop uint16, first, num int) changeInfoResult {
	f := l.cur.file

	if first+num > entities.NUM_RAILTYPES {
		glog.V(1).Infof("railTypeReserveInfo: rail type %d out of range (max %d), ignoring",
			first+num-1, entities.NUM_RAILTYPES)
		return CIR_INVALID_ID
	}

	for i := 0; i < num; i++ {
		switch prop {
		case 0x08:
			label := r.ReadLabel()
			rt := l.Tables.RailTypes.LabelLookup(label)
			if rt == entities.INVALID_TRACK_TYPE {
				rt = l.Tables.RailTypes.Allocate(label)
			}
			f.railTypeMap[first+i] = rt

		case 0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x13, 0x14, 0x1B, 0x1C:
			r.ReadWord()

		case 0x1D: // alternate labels attach to the reserved slot
			if rt := f.railTypeMap[first+i]; rt != entities.INVALID_TRACK_TYPE {
				info := l.Tables.RailTypes.Info(rt)
				info.AlternateLabels = append(info.AlternateLabels, readLabelList(r)...)
				continue
			}
			glog.V(1).Infof("railTypeReserveInfo: alternate labels for rail type %d ignored, no label set",
				first+i)
			skipLabelList(r)

		case 0x0E, 0x0F, 0x18, 0x19:
			skipLabelList(r)

		case 0x10, 0x11, 0x12, 0x15, 0x16, 0x1A:
			r.ReadByte()

		case 0x17:
			r.ReadDWord()

		case 0x1E:
			skipBadgeList(r)

		default:
			return CIR_UNKNOWN
		}
	}
	return CIR_SUCCESS
}

// railTypeChangeInfo applies action 0 rail type properties to the slots
// reserved earlier. Ids without a reserved slot abort the batch.
func railTypeChangeInfo(l *Loader, r *grf.Reader, prop uint16, first, num int) changeInfoResult {
	f := l.cur.file

	if first+num > entities.NUM_RAILTYPES {
		glog.V(1).Infof("railTypeChangeInfo: rail type %d out of range (max %d), ignoring",
			first+num-1, entities.NUM_RAILTYPES)
		return CIR_INVALID_ID
	}

	table := l.Tables.RailTypes
	for i := 0; i < num; i++ {
		rt := f.railTypeMap[first+i]
		if rt == entities.INVALID_TRACK_TYPE {
			return CIR_INVALID_ID
		}
		info := table.Info(rt)

		switch prop {
		case 0x08: // label, already handled during reservation
			r.ReadDWord()

		case 0x09: // toolbar caption, doubling as the name before version 8
			str := grftext.GRFStringID(r.ReadWord())
			l.addStringForMapping(str, func(s grftext.StringID) {
				table.Info(rt).ToolbarCaption = s
			})
			if f.grfVersion < 8 {
				l.addStringForMapping(str, func(s grftext.StringID) {
					table.Info(rt).Name = s
				})
			}

		case 0x0A:
			l.addStringForMapping(grftext.GRFStringID(r.ReadWord()), func(s grftext.StringID) {
				table.Info(rt).MenuText = s
			})

		case 0x0B:
			l.addStringForMapping(grftext.GRFStringID(r.ReadWord()), func(s grftext.StringID) {
				table.Info(rt).BuildCaption = s
			})

		case 0x0C:
			l.addStringForMapping(grftext.GRFStringID(r.ReadWord()), func(s grftext.StringID) {
				table.Info(rt).Autoreplace = s
			})

		case 0x0D:
			l.addStringForMapping(grftext.GRFStringID(r.ReadWord()), func(s grftext.StringID) {
				table.Info(rt).NewEngineText = s
			})

		case 0x0E:
			info.CompatibleLabels = append(info.CompatibleLabels, readLabelList(r)...)

		case 0x0F:
			info.PoweredLabels = append(info.PoweredLabels, readLabelList(r)...)

		case 0x10:
			info.Flags = r.ReadByte()

		case 0x11:
			info.CurveSpeed = r.ReadByte()

		case 0x12:
			info.StationGraphics = r.ReadByte()
			if info.StationGraphics > 2 {
				info.StationGraphics = 2
			}

		case 0x13:
			info.ConstructionCost = r.ReadWord()

		case 0x14:
			info.MaxSpeed = r.ReadWord()

		case 0x15:
			info.AccelerationType = r.ReadByte()
			if info.AccelerationType > 2 {
				info.AccelerationType = 2
			}

		case 0x16:
			info.MapColour = r.ReadByte()

		case 0x17:
			info.IntroDate = int32(r.ReadDWord())

		case 0x18:
			info.RequiresLabels = append(info.RequiresLabels, readLabelList(r)...)

		case 0x19:
			info.IntroducesLabels = append(info.IntroducesLabels, readLabelList(r)...)

		case 0x1A:
			info.SortOrder = r.ReadByte()

		case 0x1B:
			l.addStringForMapping(grftext.GRFStringID(r.ReadWord()), func(s grftext.StringID) {
				table.Info(rt).Name = s
			})

		case 0x1C:
			info.MaintenanceMult = r.ReadWord()

		case 0x1D: // alternate labels, already handled during reservation
			skipLabelList(r)

		case 0x1E:
			info.Badges = readBadgeList(l, r, entities.GSF_RAILTYPES)

		default:
			return CIR_UNKNOWN
		}
	}
	return CIR_SUCCESS
}

// roadTypeReserveInfo is the road and tram counterpart of
// railTypeReserveInfo; the two features share one type table.
func roadTypeReserveInfo(l *Loader, r *grf.Reader, prop uint16, first, num int, tram bool) changeInfoResult {
	f := l.cur.file
	kind := "road"
	typeMap := &f.roadTypeMap
	if tram {
		kind = "tram"
		typeMap = &f.tramTypeMap
	}

	if first+num > entities.NUM_ROADTYPES {
		glog.V(1).Infof("roadTypeReserveInfo: %s type %d out of range (max %d), ignoring",
			kind, first+num-1, entities.NUM_ROADTYPES)
		return CIR_INVALID_ID
	}

	for i := 0; i < num; i++ {
		switch prop {
		case 0x08:
			label := r.ReadLabel()
			rt := l.Tables.RoadTypes.LabelLookup(label)
			if rt == entities.INVALID_TRACK_TYPE {
				rt = l.Tables.RoadTypes.Allocate(label)
				if info := l.Tables.RoadTypes.Info(rt); info != nil {
					info.IsTram = tram
				}
			} else if l.Tables.RoadTypes.Info(rt).IsTram != tram {
				glog.V(1).Infof("roadTypeReserveInfo: %s type %d redefines %s of the other kind",
					kind, first+i, label)
				return CIR_INVALID_ID
			}
			typeMap[first+i] = rt

		case 0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x13, 0x14, 0x1B, 0x1C:
			r.ReadWord()

		case 0x1D: // alternate labels attach to the reserved slot
			if rt := typeMap[first+i]; rt != entities.INVALID_TRACK_TYPE {
				info := l.Tables.RoadTypes.Info(rt)
				info.AlternateLabels = append(info.AlternateLabels, readLabelList(r)...)
				continue
			}
			glog.V(1).Infof("roadTypeReserveInfo: alternate labels for %s type %d ignored, no label set",
				kind, first+i)
			skipLabelList(r)

		case 0x0E, 0x0F, 0x18, 0x19:
			skipLabelList(r)

		case 0x10, 0x11, 0x12, 0x15, 0x16, 0x1A:
			r.ReadByte()

		case 0x17:
			r.ReadDWord()

		case 0x1E:
			skipBadgeList(r)

		default:
			return CIR_UNKNOWN
		}
	}
	return CIR_SUCCESS
}

func roadTypeChangeInfo(l *Loader, r *grf.Reader, prop uint16, first, num int) changeInfoResult {
	return roadTramTypeChangeInfo(l, r, prop, first, num, false)
}

func tramTypeChangeInfo(l *Loader, r *grf.Reader, prop uint16, first, num int) changeInfoResult {
	return roadTramTypeChangeInfo(l, r, prop, first, num, true)
}

// roadTramTypeChangeInfo applies action 0 road and tram type properties.
// The rail-only properties (curve speed, station graphics, acceleration
// model) are rejected here.
func roadTramTypeChangeInfo(l *Loader, r *grf.Reader, prop uint16, first, num int, tram bool) changeInfoResult {
	f := l.cur.file
	kind := "road"
	feature := entities.GSF_ROADTYPES
	typeMap := &f.roadTypeMap
	if tram {
		kind = "tram"
		feature = entities.GSF_TRAMTYPES
		typeMap = &f.tramTypeMap
	}

	if first+num > entities.NUM_ROADTYPES {
		glog.V(1).Infof("roadTramTypeChangeInfo: %s type %d out of range (max %d), ignoring",
			kind, first+num-1, entities.NUM_ROADTYPES)
		return CIR_INVALID_ID
	}

	table := l.Tables.RoadTypes
	for i := 0; i < num; i++ {
		rt := typeMap[first+i]
		if rt == entities.INVALID_TRACK_TYPE {
			return CIR_INVALID_ID
		}
		info := table.Info(rt)

		switch prop {
		case 0x08: // label, already handled during reservation
			r.ReadDWord()

		case 0x09:
			l.addStringForMapping(grftext.GRFStringID(r.ReadWord()), func(s grftext.StringID) {
				table.Info(rt).ToolbarCaption = s
			})

		case 0x0A:
			l.addStringForMapping(grftext.GRFStringID(r.ReadWord()), func(s grftext.StringID) {
				table.Info(rt).MenuText = s
			})

		case 0x0B:
			l.addStringForMapping(grftext.GRFStringID(r.ReadWord()), func(s grftext.StringID) {
				table.Info(rt).BuildCaption = s
			})

		case 0x0C:
			l.addStringForMapping(grftext.GRFStringID(r.ReadWord()), func(s grftext.StringID) {
				table.Info(rt).Autoreplace = s
			})

		case 0x0D:
			l.addStringForMapping(grftext.GRFStringID(r.ReadWord()), func(s grftext.StringID) {
				table.Info(rt).NewEngineText = s
			})

		case 0x0E: // roads have no compatibility relation
			skipLabelList(r)

		case 0x0F:
			info.PoweredLabels = append(info.PoweredLabels, readLabelList(r)...)

		case 0x10:
			info.Flags = r.ReadByte()

		case 0x13:
			info.ConstructionCost = r.ReadWord()

		case 0x14:
			info.MaxSpeed = r.ReadWord()

		case 0x16:
			info.MapColour = r.ReadByte()

		case 0x17:
			info.IntroDate = int32(r.ReadDWord())

		case 0x18:
			info.RequiresLabels = append(info.RequiresLabels, readLabelList(r)...)

		case 0x19:
			info.IntroducesLabels = append(info.IntroducesLabels, readLabelList(r)...)

		case 0x1A:
			info.SortOrder = r.ReadByte()

		case 0x1B:
			l.addStringForMapping(grftext.GRFStringID(r.ReadWord()), func(s grftext.StringID) {
				table.Info(rt).Name = s
			})

		case 0x1C:
			info.MaintenanceMult = r.ReadWord()

		case 0x1D: // alternate labels, already handled during reservation
			skipLabelList(r)

		case 0x1E:
			info.Badges = readBadgeList(l, r, feature)

		default:
			return CIR_UNKNOWN
		}
	}
	return CIR_SUCCESS
}
