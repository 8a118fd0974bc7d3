package newgrf

import (
	"github.com/golang/glog"

	"badc0de.net/pkg/go-newgrf/entities"
	"badc0de.net/pkg/go-newgrf/grf"
	"badc0de.net/pkg/go-newgrf/grftext"
)

// featureNewName decodes a naming record (action 4): consecutive texts for
// a run of entity ids. Engine names key the shared string table with a
// feature overlay over the global engine id, so equal local ids of
// different kinds stay distinct. Ids in the 0xD000 and 0xD800 windows
// define file-local texts that other records reference; the 0xC4xx, 0xC5xx
// and 0xC9xx pages name this file's station classes, stations and houses.
func featureNewName(l *Loader, r *grf.Reader) {
	f := l.cur.file
	newScheme := f.grfVersion >= 7

	rawFeature := r.ReadByte()
	feature := entities.Feature(rawFeature)
	if rawFeature != 0x48 {
		var ok bool
		feature, ok = l.resolveFeature(rawFeature)
		if !ok {
			return
		}
		if feature >= entities.GSF_END {
			glog.V(1).Infof("featureNewName: unsupported feature 0x%02X, skipping", uint8(feature))
			return
		}
	}

	lang := r.ReadByte()
	num := uint16(r.ReadByte())
	generic := lang&0x80 != 0

	var id uint16
	switch {
	case generic:
		id = r.ReadWord()
	case feature.IsVehicle():
		id = r.ReadExtendedByte()
	default:
		id = uint16(r.ReadByte())
	}
	lang &^= 0x80

	endid := id + num
	glog.V(6).Infof("featureNewName: naming ids 0x%04X..0x%04X of feature 0x%02X in language 0x%02X",
		id, endid-1, uint8(feature), lang)

	for ; id < endid && r.HasData(); id++ {
		name := []byte(r.ReadString())

		if feature.IsVehicle() && !generic {
			e := l.engine(feature.VehicleKind(), id)
			if e == nil {
				continue
			}
			key := grftext.GRFStringID((uint32(feature)+1)<<16 | uint32(e.ID))
			e.Info.Name = l.Strings.AddString(f.grfid, key, lang, newScheme, false, name)
			continue
		}
		if generic {
			l.Strings.AddString(f.grfid, grftext.GRFStringID(id), lang, newScheme, true, name)
			continue
		}

		if (id >= 0xD000 && id < 0xD400) || (id >= 0xD800 && id < 0xE000) {
			l.Strings.AddString(f.grfid, grftext.GRFStringID(id), lang, newScheme, true, name)
			continue
		}

		switch id >> 8 {
		case 0xC4: // station class name
			if int(id&0xFF) >= len(f.stations) || f.stations[id&0xFF] == nil {
				glog.V(1).Infof("featureNewName: attempt to name undefined station 0x%X, ignoring", id&0xFF)
			} else {
				str := l.Strings.AddString(f.grfid, grftext.GRFStringID(id), lang, newScheme, false, name)
				l.Tables.Stations.SetName(f.stations[id&0xFF].Class, str)
			}

		case 0xC5: // station name
			if int(id&0xFF) >= len(f.stations) || f.stations[id&0xFF] == nil {
				glog.V(1).Infof("featureNewName: attempt to name undefined station 0x%X, ignoring", id&0xFF)
			} else {
				f.stations[id&0xFF].Name = l.Strings.AddString(f.grfid, grftext.GRFStringID(id), lang, newScheme, false, name)
			}

		case 0xC9: // house name
			if int(id&0xFF) >= len(f.houses) || f.houses[id&0xFF] == nil {
				glog.V(1).Infof("featureNewName: attempt to name undefined house 0x%X, ignoring", id&0xFF)
			} else {
				f.houses[id&0xFF].BuildingName = l.Strings.AddString(f.grfid, grftext.GRFStringID(id), lang, newScheme, false, name)
			}

		default:
			glog.V(7).Infof("featureNewName: unsupported id 0x%04X", id)
		}
	}
}
