package newgrf

import (
	"github.com/golang/glog"

	"badc0de.net/pkg/go-newgrf/entities"
	"badc0de.net/pkg/go-newgrf/grf"
	"badc0de.net/pkg/go-newgrf/grftext"
)

// Largest station catchment radius the simulation supports.
const maxCatchmentRadius = 10

// readAirportLayouts reads the rotated footprint list of airport property
// 0x0A. The declared byte size is ignored; the tile lists carry their own
// terminators.
func (l *Loader) readAirportLayouts(r *grf.Reader, id int) []entities.AirportLayout {
	numLayouts := int(r.ReadByte())
	r.ReadDWord()

	layouts := make([]entities.AirportLayout, numLayouts)
	for j := range layouts {
		// Rotation is one of the four cardinal directions.
		layouts[j].Rotation = r.ReadByte() & 6

		for {
			x := r.ReadByte()
			y := r.ReadByte()
			if x == 0 && y == 0x80 {
				break
			}

			tile := entities.AirportLayoutTile{X: int8(x), Y: int8(y)}
			gfx := r.ReadByte()
			switch gfx {
			case 0xFE: // a tile of this file, resolved after loading
				tile.Gfx = entities.AirportTileID(r.ReadWord())
				tile.Local = true
			case 0xFF: // size marker rather than a tile
				tile.Gfx = entities.AirportTileID(gfx)
				if tile.X == 0 && tile.Y < 0 {
					tile.X = -1
				}
			default:
				tile.Gfx = entities.AirportTileID(gfx)
			}
			layouts[j].Tiles = append(layouts[j].Tiles, tile)
		}
	}
	return layouts
}

// airportChangeInfo applies action 0 airport properties.
func airportChangeInfo(l *Loader, r *grf.Reader, prop uint16, first, num int) changeInfoResult {
	f := l.cur.file

	if first+num > AIRPORTS_PER_GRF {
		glog.V(1).Infof("airportChangeInfo: airport %d out of range (max %d per file), ignoring",
			first+num-1, AIRPORTS_PER_GRF)
		return CIR_INVALID_ID
	}

	if len(f.airports) < first+num {
		f.airports = append(f.airports, make([]*entities.AirportSpec, first+num-len(f.airports))...)
	}

	for i := 0; i < num; i++ {
		spec := f.airports[first+i]

		if spec == nil && prop != 0x08 {
			glog.V(2).Infof("airportChangeInfo: property 0x%02X for undefined airport %d, ignoring",
				prop, first+i)
			return CIR_INVALID_ID
		}

		switch prop {
		case 0x08: // substitute type, defines the airport
			sub := r.ReadByte()
			if sub == 0xFF {
				// Not a definition: disables the original airport with
				// this id instead.
				if first+i < entities.ORIGINAL_AIRPORTS {
					l.Tables.Airports.Spec(entities.AirportID(first+i)).Enabled = false
				}
				continue
			}
			if int(sub) >= entities.ORIGINAL_AIRPORTS {
				glog.V(2).Infof("airportChangeInfo: substitute %d for airport %d is not an original type, ignoring",
					sub, first+i)
				continue
			}
			if spec == nil {
				as := *l.Tables.Airports.Spec(entities.AirportID(sub))
				spec = &as
				spec.Enabled = true
				spec.Props = entities.GRFProps{}
				spec.Props.SetGRF(f.grfid, uint16(first+i))
				// An airport replaces the original it substitutes.
				spec.OverrideID = entities.AirportID(sub)
				f.airports[first+i] = spec
			}

		case 0x0A: // footprint layouts
			spec.Layouts = l.readAirportLayouts(r, first+i)

		case 0x0C: // availability years
			spec.MinYear = r.ReadWord()
			spec.MaxYear = r.ReadWord()

		case 0x0D:
			spec.TTDType = r.ReadByte()

		case 0x0E:
			radius := r.ReadByte()
			if radius < 1 {
				radius = 1
			} else if radius > maxCatchmentRadius {
				radius = maxCatchmentRadius
			}
			spec.CatchmentRadius = radius

		case 0x0F:
			spec.NoiseLevel = r.ReadByte()

		case 0x10:
			s := spec
			l.addStringForMapping(grftext.GRFStringID(r.ReadWord()), func(str grftext.StringID) {
				s.Name = str
			})

		case 0x11:
			spec.MaintenanceCost = r.ReadWord()

		case 0x12:
			spec.Badges = readBadgeList(l, r, entities.GSF_AIRPORTS)

		default:
			return CIR_UNKNOWN
		}
	}
	return CIR_SUCCESS
}

// airportTilesChangeInfo applies action 0 airport tile properties.
func airportTilesChangeInfo(l *Loader, r *grf.Reader, prop uint16, first, num int) changeInfoResult {
	f := l.cur.file

	if first+num > AIRPORT_TILES_PER_GRF {
		glog.V(1).Infof("airportTilesChangeInfo: tile %d out of range (max %d per file), ignoring",
			first+num-1, AIRPORT_TILES_PER_GRF)
		return CIR_INVALID_ID
	}

	if len(f.airportTiles) < first+num {
		f.airportTiles = append(f.airportTiles, make([]*entities.AirportTileSpec, first+num-len(f.airportTiles))...)
	}

	for i := 0; i < num; i++ {
		spec := f.airportTiles[first+i]

		if spec == nil && prop != 0x08 {
			glog.V(2).Infof("airportTilesChangeInfo: property 0x%02X for undefined tile %d, ignoring",
				prop, first+i)
			return CIR_INVALID_ID
		}

		switch prop {
		case 0x08: // substitute type, defines the tile
			sub := r.ReadByte()
			if int(sub) >= entities.ORIGINAL_AIRPORT_TILES {
				glog.V(2).Infof("airportTilesChangeInfo: substitute %d for tile %d is not an original type, ignoring",
					sub, first+i)
				continue
			}
			if spec == nil {
				ts := *l.Tables.AirportTiles.Spec(entities.AirportTileID(sub))
				spec = &ts
				spec.Enabled = true
				spec.Animation = entities.AnimationInfo{Status: entities.ANIM_STATUS_NO_ANIMATION}
				spec.Props = entities.GRFProps{}
				spec.Props.SetGRF(f.grfid, uint16(first+i))
				spec.SubstituteID = entities.AirportTileID(sub)
				spec.OverrideID = entities.INVALID_AIRPORT_TILE
				f.airportTiles[first+i] = spec
			}

		case 0x09: // take over an original tile's appearances
			override := r.ReadByte()
			if int(override) >= entities.ORIGINAL_AIRPORT_TILES {
				glog.V(2).Infof("airportTilesChangeInfo: tile %d cannot override non-original %d, ignoring",
					first+i, override)
				continue
			}
			spec.OverrideID = entities.AirportTileID(override)

		case 0x0E:
			spec.CallbackMask = r.ReadByte()

		case 0x0F:
			spec.Animation.Frames = r.ReadByte()
			spec.Animation.Status = r.ReadByte()

		case 0x10:
			spec.Animation.Speed = r.ReadByte()

		case 0x11:
			spec.Animation.Triggers = uint16(r.ReadByte())

		case 0x12:
			spec.Badges = readBadgeList(l, r, entities.GSF_AIRPORTTILES)

		default:
			return CIR_UNKNOWN
		}
	}
	return CIR_SUCCESS
}
