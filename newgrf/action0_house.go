package newgrf

import (
	"github.com/golang/glog"

	"badc0de.net/pkg/go-newgrf/entities"
	"badc0de.net/pkg/go-newgrf/grf"
	"badc0de.net/pkg/go-newgrf/grftext"
)

// ignoreHouseProperty consumes one building property value without applying
// it, keeping the stream in sync for the remaining ids of the batch.
func ignoreHouseProperty(r *grf.Reader, prop uint16) changeInfoResult {
	switch prop {
	case 0x09, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F, 0x11, 0x14, 0x15, 0x16,
		0x18, 0x19, 0x1A, 0x1B, 0x1C, 0x1D, 0x1F:
		r.ReadByte()

	case 0x0A, 0x10, 0x12, 0x13, 0x21, 0x22:
		r.ReadWord()

	case 0x1E:
		r.ReadDWord()

	case 0x17:
		r.Skip(4)

	case 0x20:
		r.Skip(int(r.ReadByte()))

	case 0x23:
		r.Skip(int(r.ReadByte()) * 2)

	case 0x24:
		skipBadgeList(r)

	default:
		return CIR_UNKNOWN
	}
	return CIR_SUCCESS
}

// townHouseChangeInfo applies action 0 town building properties. Property
// 0x08 picks the original building whose spec seeds the new one. Buildings
// are independent of each other, so a bad id skips just that building.
func townHouseChangeInfo(l *Loader, r *grf.Reader, prop uint16, first, num int) changeInfoResult {
	f := l.cur.file

	if first+num > HOUSES_PER_GRF {
		glog.V(1).Infof("townHouseChangeInfo: building %d out of range (max %d per file), ignoring",
			first+num-1, HOUSES_PER_GRF)
		return CIR_INVALID_ID
	}

	if len(f.houses) < first+num {
		f.houses = append(f.houses, make([]*entities.HouseSpec, first+num-len(f.houses))...)
	}

	for i := 0; i < num; i++ {
		spec := f.houses[first+i]

		if spec == nil && prop != 0x08 {
			glog.V(2).Infof("townHouseChangeInfo: property 0x%02X for undefined building %d, ignoring",
				prop, first+i)
			if cir := ignoreHouseProperty(r, prop); cir != CIR_SUCCESS {
				return cir
			}
			continue
		}

		switch prop {
		case 0x08: // substitute type, defines the building
			sub := r.ReadByte()
			if sub == 0xFF {
				// Not a definition: disables the original building with
				// this id instead.
				if first+i < entities.ORIGINAL_HOUSES {
					l.Tables.Houses.Spec(entities.HouseID(first+i)).Enabled = false
				}
				continue
			}
			if int(sub) >= entities.ORIGINAL_HOUSES {
				glog.V(2).Infof("townHouseChangeInfo: substitute %d for building %d is not an original type, ignoring",
					sub, first+i)
				continue
			}
			// Only the first definition seeds from the substitute; a later
			// redefinition keeps the properties set so far.
			if spec == nil {
				hs := *l.Tables.Houses.Spec(entities.HouseID(sub))
				spec = &hs
				spec.Enabled = true
				spec.Props = entities.GRFProps{}
				spec.Props.SetGRF(f.grfid, uint16(first+i))
				spec.SubstituteID = entities.HouseID(sub)
				spec.OverrideID = entities.INVALID_HOUSE
				// Churches and stadiums never carry over from the substitute.
				spec.BuildingFlags &^= entities.HOUSE_CHURCH | entities.HOUSE_STADIUM
				spec.RandomColours = [4]uint8{4, 8, 12, 6} // red, blue, orange, green
				// The substitute's third acceptance slot may hold a cargo
				// that does not exist in this climate.
				if !l.Tables.Cargo.Spec(spec.Acceptance[2].Cargo).IsValid() {
					spec.Acceptance[2].Amount = 0
				}
				f.houses[first+i] = spec
			}

		case 0x09:
			spec.BuildingFlags = r.ReadByte()

		case 0x0A: // availability years, packed as offsets from 1920
			years := r.ReadWord()
			lo, hi := years&0xFF, years>>8
			spec.MinYear = 0xFFFF
			spec.MaxYear = 0xFFFF
			if lo <= 150 {
				spec.MinYear = 1920 + lo
			}
			if hi <= 150 {
				spec.MaxYear = 1920 + hi
			}

		case 0x0B:
			spec.Population = r.ReadByte()

		case 0x0C:
			spec.MailGeneration = r.ReadByte()

		case 0x0D, 0x0E: // passenger and mail acceptance
			spec.Acceptance[prop-0x0D].Amount = r.ReadByte()

		case 0x0F: // third acceptance slot, negative values pick food
			goods := int8(r.ReadByte())
			var label grf.Label
			switch {
			case goods >= 0 && l.Tables.Climate == entities.LT_TOYLAND:
				label = grf.MakeLabel("SWET")
			case goods >= 0:
				label = grf.MakeLabel("GOOD")
			case l.Tables.Climate == entities.LT_TOYLAND:
				label = grf.MakeLabel("FZDR")
			default:
				label = grf.MakeLabel("FOOD")
			}
			cargo := l.Tables.Cargo.LabelLookup(label)
			amount := int(goods)
			if amount < 0 {
				amount = -amount
			}
			if cargo == entities.INVALID_CARGO {
				amount = 0
			}
			spec.Acceptance[2] = entities.CargoAcceptance{Cargo: cargo, Amount: uint8(amount)}

		case 0x10:
			spec.RemovalRatingDecrease = r.ReadWord()

		case 0x11:
			spec.RemovalCost = r.ReadByte()

		case 0x12:
			s := spec
			l.addStringForMapping(grftext.GRFStringID(r.ReadWord()), func(str grftext.StringID) {
				s.BuildingName = str
			})

		case 0x13:
			spec.BuildingAvailability = r.ReadWord()

		case 0x14:
			spec.CallbackMask = spec.CallbackMask&0xFF00 | uint16(r.ReadByte())

		case 0x15: // take over an original building's appearances
			override := r.ReadByte()
			if int(override) >= entities.ORIGINAL_HOUSES {
				glog.V(2).Infof("townHouseChangeInfo: building %d cannot override non-original %d, ignoring",
					first+i, override)
				continue
			}
			spec.OverrideID = entities.HouseID(override)

		case 0x16: // periodic processing interval
			pt := r.ReadByte()
			if pt > 63 {
				pt = 63
			}
			spec.ProcessingTime = pt

		case 0x17:
			for j := 0; j < 4; j++ {
				spec.RandomColours[j] = r.ReadByte() & 0x0F
			}

		case 0x18:
			spec.Probability = r.ReadByte()

		case 0x19:
			spec.ExtraFlags = r.ReadByte()

		case 0x1A: // animation frame count, bit 7 marks a looping animation
			frames := r.ReadByte()
			spec.Animation.Frames = frames & 0x7F
			spec.Animation.Status = entities.ANIM_STATUS_NON_LOOPING
			if frames&0x80 != 0 {
				spec.Animation.Status = entities.ANIM_STATUS_LOOPING
			}

		case 0x1B:
			speed := r.ReadByte()
			if speed < 2 {
				speed = 2
			}
			if speed > 16 {
				speed = 16
			}
			spec.Animation.Speed = speed

		case 0x1C:
			spec.BuildingClass = r.ReadByte()

		case 0x1D:
			spec.CallbackMask = spec.CallbackMask&0x00FF | uint16(r.ReadByte())<<8

		case 0x1E: // replace the acceptance types of the first three slots
			raw := r.ReadDWord()
			if raw == 0xFFFFFFFF {
				break
			}
			for j := 0; j < 3; j++ {
				cargo := l.cargoTranslation(uint8(raw>>(8*j)), false)
				if cargo == entities.INVALID_CARGO {
					spec.Acceptance[j].Amount = 0
					continue
				}
				spec.Acceptance[j].Cargo = cargo
			}

		case 0x1F:
			spec.MinimumLife = r.ReadByte()

		case 0x20: // cargo types whose deliveries trigger callbacks
			count := int(r.ReadByte())
			for j := 0; j < count; j++ {
				cargo := l.cargoTranslation(r.ReadByte(), false)
				if cargo != entities.INVALID_CARGO {
					spec.WatchedCargoes |= 1 << cargo
				}
			}

		case 0x21:
			spec.MinYear = r.ReadWord()

		case 0x22: // 0xFFFF already means no upper limit
			spec.MaxYear = r.ReadWord()

		case 0x23: // full acceptance list
			count := int(r.ReadByte())
			if count > len(spec.Acceptance) {
				glog.Errorf("townHouseChangeInfo: building %d accepts %d cargo types, at most %d supported",
					first+i, count, len(spec.Acceptance))
				e := l.disableGRF("list property too long", nil)
				if e != nil {
					e.ParamValues = []uint32{uint32(entities.GSF_HOUSES), uint32(prop)}
				}
				return CIR_DISABLED
			}
			for j := range spec.Acceptance {
				if j < count {
					spec.Acceptance[j].Cargo = l.cargoTranslation(r.ReadByte(), false)
					spec.Acceptance[j].Amount = r.ReadByte()
				} else {
					spec.Acceptance[j] = entities.CargoAcceptance{Cargo: entities.INVALID_CARGO}
				}
			}

		case 0x24:
			spec.Badges = readBadgeList(l, r, entities.GSF_HOUSES)

		default:
			return CIR_UNKNOWN
		}
	}
	return CIR_SUCCESS
}
