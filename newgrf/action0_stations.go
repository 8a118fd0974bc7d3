package newgrf

import (
	"github.com/golang/glog"

	"badc0de.net/pkg/go-newgrf/entities"
	"badc0de.net/pkg/go-newgrf/grf"
	"badc0de.net/pkg/go-newgrf/grftext"
	"badc0de.net/pkg/go-newgrf/spritegroup"
)

// readOldStationLayout reads the original tile layout format of station
// property 0x09: a ground sprite followed by building sprites up to the
// 0x80 terminator. Building sprites flag original art with the palette
// bit, the reverse of every other layout format.
func (l *Loader) readOldStationLayout(r *grf.Reader, tl *spritegroup.TileLayout) bool {
	// Set sizes are unknown in this format, so no offset limit applies.
	tl.ConsistentMaxOffset = 0xFFFF

	l.readLayoutSprite(r, false, false, false, entities.GSF_STATIONS, &tl.Ground, nil, nil)
	if l.cur.skipSprites < 0 {
		return false
	}

	for {
		delta := r.ReadByte()
		if delta == 0x80 {
			return true
		}
		var dtss spritegroup.DrawTileSeqStruct
		dtss.DeltaX = int8(delta)
		dtss.DeltaY = int8(r.ReadByte())
		dtss.DeltaZ = int8(r.ReadByte())
		dtss.SizeX = r.ReadByte()
		dtss.SizeY = r.ReadByte()
		dtss.SizeZ = r.ReadByte()
		l.readLayoutSprite(r, false, true, false, entities.GSF_STATIONS, &dtss.Image, nil, nil)
		if l.cur.skipSprites < 0 {
			return false
		}
		tl.Seq = append(tl.Seq, dtss)
	}
}

// stationChangeInfo applies action 0 station properties. Property 0x08
// allocates the design; every other property needs it to exist already.
func stationChangeInfo(l *Loader, r *grf.Reader, prop uint16, first, num int) changeInfoResult {
	f := l.cur.file

	if first+num > STATIONS_PER_GRF {
		glog.V(1).Infof("stationChangeInfo: station %d out of range (max %d per file), ignoring",
			first+num-1, STATIONS_PER_GRF)
		return CIR_INVALID_ID
	}

	if len(f.stations) < first+num {
		f.stations = append(f.stations, make([]*entities.StationSpec, first+num-len(f.stations))...)
	}

	for i := 0; i < num; i++ {
		spec := f.stations[first+i]

		if spec == nil && prop != 0x08 {
			glog.V(2).Infof("stationChangeInfo: property 0x%02X for undefined station %d, ignoring",
				prop, first+i)
			return CIR_INVALID_ID
		}

		switch prop {
		case 0x08: // class label, allocates the design
			if spec == nil {
				spec = &entities.StationSpec{}
				spec.Props.SetGRF(f.grfid, uint16(first+i))
				f.stations[first+i] = spec
			}
			spec.Class = l.Tables.Stations.Allocate(r.ReadLabel())

		case 0x09: // tile layouts, original format
			count := int(r.ReadExtendedByte())
			spec.Layouts = make([]*spritegroup.TileLayout, 0, count)
			for t := 0; t < count; t++ {
				tl := &spritegroup.TileLayout{}
				// A zero ground sprite keeps the default platform tile.
				if r.HasData(4) && r.PeekDWord() == 0 {
					r.Skip(4)
					tl.ConsistentMaxOffset = 0xFFFF
					spec.Layouts = append(spec.Layouts, tl)
					continue
				}
				if !l.readOldStationLayout(r, tl) {
					return CIR_DISABLED
				}
				spec.Layouts = append(spec.Layouts, tl)
			}
			if len(spec.Layouts)&1 != 0 {
				glog.V(1).Infof("stationChangeInfo: station %d defines an odd number of layouts, dropping the last",
					first+i)
				spec.Layouts = spec.Layouts[:len(spec.Layouts)-1]
			}

		case 0x0A: // copy tile layouts from another design of this file
			src := int(r.ReadExtendedByte())
			if src >= len(f.stations) || f.stations[src] == nil {
				glog.V(1).Infof("stationChangeInfo: station %d not defined, cannot copy layouts to %d",
					src, first+i)
				continue
			}
			spec.Layouts = append([]*spritegroup.TileLayout(nil), f.stations[src].Layouts...)

		case 0x0B:
			spec.CallbackMask = r.ReadByte()

		case 0x0C:
			spec.DisallowedPlatforms = r.ReadByte()

		case 0x0D:
			spec.DisallowedLengths = r.ReadByte()

		case 0x0E: // platform arrangements
			for r.HasData() {
				length := r.ReadByte()
				number := r.ReadByte()
				if length == 0 || number == 0 {
					break
				}
				tiles := append([]uint8(nil), r.ReadBytes(int(length)*int(number))...)
				// Bit 0 selects the axis and must start clear. The rest is
				// validated at render time once the set sizes are known.
				for j, tile := range tiles {
					if tile&1 != 0 {
						glog.V(1).Infof("stationChangeInfo: invalid tile %d in %dx%d arrangement",
							tile, length, number)
						tiles[j] &^= 1
					}
				}
				spec.SetPlatformLayout(length, number, tiles)
			}

		case 0x0F: // copy platform arrangements from another design
			src := int(r.ReadExtendedByte())
			if src >= len(f.stations) || f.stations[src] == nil {
				glog.V(1).Infof("stationChangeInfo: station %d not defined, cannot copy arrangements to %d",
					src, first+i)
				continue
			}
			spec.Platforms = nil
			for length, byCount := range f.stations[src].Platforms {
				for count, tiles := range byCount {
					spec.SetPlatformLayout(length, count, append([]uint8(nil), tiles...))
				}
			}

		case 0x10:
			spec.CargoThreshold = uint32(r.ReadWord())

		case 0x11:
			spec.Pylons = r.ReadByte()

		case 0x12: // cargo types triggering random graphics
			raw := r.ReadDWord()
			if f.grfVersion >= 7 {
				spec.CargoTriggers = l.translateRefitMask(raw)
			} else {
				spec.CargoTriggers = entities.CargoMask(raw)
			}

		case 0x13:
			spec.Flags = r.ReadByte()

		case 0x14:
			spec.Wires = r.ReadByte()

		case 0x15:
			spec.Blocked = r.ReadByte()

		case 0x16:
			spec.Animation.Frames = r.ReadByte()
			spec.Animation.Status = r.ReadByte()

		case 0x17:
			spec.Animation.Speed = r.ReadByte()

		case 0x18:
			spec.Animation.Triggers = r.ReadWord()

		case 0x1A: // tile layouts, advanced format
			count := int(r.ReadExtendedByte())
			spec.Layouts = make([]*spritegroup.TileLayout, 0, count)
			for t := 0; t < count; t++ {
				tl := &spritegroup.TileLayout{}
				numSprites := r.ReadByte()
				if !l.readSpriteLayout(r, numSprites, false, entities.GSF_STATIONS, true, false, tl) {
					return CIR_DISABLED
				}
				spec.Layouts = append(spec.Layouts, tl)
			}
			if len(spec.Layouts)&1 != 0 {
				glog.V(1).Infof("stationChangeInfo: station %d defines an odd number of layouts, dropping the last",
					first+i)
				spec.Layouts = spec.Layouts[:len(spec.Layouts)-1]
			}

		case 0x1B: // minimum bridge heights, not supported
			r.Skip(8)

		case 0x1C:
			s := spec
			l.addStringForMapping(grftext.GRFStringID(r.ReadWord()), func(str grftext.StringID) {
				s.Name = str
			})

		case 0x1D:
			class := spec.Class
			l.addStringForMapping(grftext.GRFStringID(r.ReadWord()), func(str grftext.StringID) {
				l.Tables.Stations.SetName(class, str)
			})

		case 0x1E:
			spec.Badges = readBadgeList(l, r, entities.GSF_STATIONS)

		default:
			return CIR_UNKNOWN
		}
	}
	return CIR_SUCCESS
}
