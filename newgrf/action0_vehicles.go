package newgrf

import (
	"github.com/golang/glog"

	"badc0de.net/pkg/go-newgrf/entities"
	"badc0de.net/pkg/go-newgrf/grf"
)

// Number of original climate-dependent cargo slots, the cargo numbering of
// format versions below 7.
const originalCargoSlots = 12

// Image index values from this one up select the file's own graphics
// chains instead of an original sprite block.
const customImageIndex uint8 = 0xFD

// Visual effect encoding. The all-ones byte asks to keep the default; its
// type bits are cleared so it cannot be mistaken for an explicit choice.
const (
	veTypeMask uint8 = 0x30
	veDefault  uint8 = 0xFF
)

func normalizeVisualEffect(v uint8) uint8 {
	if v == veDefault {
		v &^= veTypeMask
	}
	return v
}

// cargoTranslation resolves a raw cargo value of a definition property.
// Files with a cargo translation table go through it. Without one the
// value is a climate-independent bit number, except in format versions
// below 7, where it picks an original climate-dependent slot directly.
func (l *Loader) cargoTranslation(raw uint8, usebit bool) entities.CargoType {
	f := l.cur.file
	if len(f.cargoList) > 0 {
		if int(raw) >= len(f.cargoList) {
			glog.V(1).Infof("cargoTranslation: %s: cargo %d outside the translation table (%d entries)",
				f.Config.GetName(), raw, len(f.cargoList))
			return entities.INVALID_CARGO
		}
		return l.Tables.Cargo.LabelLookup(f.cargoList[raw])
	}
	if usebit || f.grfVersion >= 7 {
		return l.Tables.Cargo.BitnumLookup(raw)
	}
	if raw >= originalCargoSlots || !l.Tables.Cargo.Spec(entities.CargoType(raw)).IsValid() {
		return entities.INVALID_CARGO
	}
	return entities.CargoType(raw)
}

// translateRefitMask maps a 32 bit refit mask in the file's cargo
// numbering onto the global cargo table. Untranslatable bits are dropped.
func (l *Loader) translateRefitMask(mask uint32) entities.CargoMask {
	var out entities.CargoMask
	for bit := uint8(0); bit < 32; bit++ {
		if mask&(1<<bit) == 0 {
			continue
		}
		if ct := l.cargoTranslation(bit, true); ct != entities.INVALID_CARGO {
			out |= 1 << ct
		}
	}
	return out
}

// readCargoTypeList reads a counted list of translated cargo types into a
// mask, returning the raw entry count as well.
func (l *Loader) readCargoTypeList(r *grf.Reader) (entities.CargoMask, int) {
	var mask entities.CargoMask
	count := int(r.ReadByte())
	for i := 0; i < count; i++ {
		if ct := l.cargoTranslation(r.ReadByte(), false); ct != entities.INVALID_CARGO {
			mask |= 1 << ct
		}
	}
	return mask, count
}

// convertBasePrice maps an original-data memory address of a base price
// record onto the price table index it denotes. Zero selects no price
// class at all.
func convertBasePrice(base uint32, caller string) (entities.PriceKind, bool) {
	if base == 0 {
		return entities.INVALID_PRICE, true
	}
	const first, size = 0x4B34, 6
	if base < first || (base-first)%size != 0 || (base-first)/size >= uint32(entities.PR_END) {
		glog.V(1).Infof("%s: unsupported base price address 0x%04X, ignoring", caller, base)
		return 0, false
	}
	return entities.PriceKind((base - first) / size), true
}

// readImageIndex reads a vehicle image index. Plain values index a 16 bit
// array in the original data and are halved. Road vehicles, ships and
// aircraft historically use 0xFF for the custom graphics marker, trains
// 0xFD; swapFF maps the former onto the latter.
func (l *Loader) readImageIndex(r *grf.Reader, swapFF bool) uint8 {
	id := r.ReadByte()
	if swapFF && id == 0xFF {
		id = customImageIndex
	}
	if id < customImageIndex {
		return id >> 1
	}
	if id != customImageIndex {
		glog.V(1).Infof("%s: invalid vehicle image index 0x%02X, ignoring", l.cur.cfg.GetName(), id)
		return 0
	}
	return id
}

// commonVehicleChangeInfo applies the properties shared by all vehicle
// kinds.
func commonVehicleChangeInfo(info *entities.EngineInfo, r *grf.Reader, prop uint16) changeInfoResult {
	switch prop {
	case 0x00: // introduction date, days since 1920
		info.IntroDate = int32(daysTill(1920)) + int32(r.ReadWord())

	case 0x02:
		info.DecaySpeed = r.ReadByte()

	case 0x03:
		info.LifeLength = r.ReadByte()

	case 0x04:
		info.BaseLife = r.ReadByte()

	case 0x06:
		info.ClimateAvailability = r.ReadByte()

	case 0x07:
		info.LoadAmount = r.ReadByte()

	default:
		return CIR_UNKNOWN
	}
	return CIR_SUCCESS
}

// railVehicleChangeInfo applies action 0 properties to trains.
func railVehicleChangeInfo(l *Loader, r *grf.Reader, prop uint16, first, num int) changeInfoResult {
	f := l.cur.file

	for i := 0; i < num; i++ {
		e := l.engine(entities.VEH_TRAIN, uint16(first+i))
		if e == nil {
			// No slot could be claimed, so none of the following ids can
			// get one either.
			return CIR_INVALID_ID
		}
		info := &e.Info
		rvi := &e.Rail

		// Seed the pending track type label from the engine's current type
		// so the traction property can adjust it.
		if t := l.tempEngine(e.ID); t.railTypeLabel == 0 {
			if rti := l.Tables.RailTypes.Info(entities.TrackTypeID(rvi.TrackType)); rti != nil {
				t.railTypeLabel = rti.Label
			}
		}

		switch prop {
		case 0x05: // track type, resolved once the label tables are final
			raw := r.ReadByte()
			t := l.tempEngine(e.ID)
			if int(raw) < len(f.railTypeList) {
				t.railTypeLabel = f.railTypeList[raw]
				break
			}
			switch raw {
			case 0:
				if rvi.EngineClass >= entities.RAIL_ENGINE_ELECTRIC {
					t.railTypeLabel = entities.RAILTYPE_LABEL_ELECTRIC
				} else {
					t.railTypeLabel = entities.RAILTYPE_LABEL_RAIL
				}
			case 1:
				t.railTypeLabel = entities.RAILTYPE_LABEL_MONO
			case 2:
				t.railTypeLabel = entities.RAILTYPE_LABEL_MAGLEV
			default:
				glog.V(1).Infof("railVehicleChangeInfo: invalid track type %d, ignoring", raw)
			}

		case 0x08: // designed-for-passengers hint, nothing to steer here
			r.ReadByte()

		case 0x09:
			speed := r.ReadWord()
			if speed == 0xFFFF {
				speed = 0
			}
			rvi.Speed = speed

		case 0x0B:
			rvi.Power = r.ReadWord()
			if rvi.Power != 0 {
				rvi.Flags &^= entities.RVF_WAGON
			} else {
				rvi.Flags |= entities.RVF_WAGON
				rvi.Flags &^= entities.RVF_DUAL_HEADED
			}

		case 0x0D:
			rvi.RunningCost = r.ReadByte()

		case 0x0E: // running cost base address
			if class, ok := convertBasePrice(r.ReadDWord(), "railVehicleChangeInfo"); ok {
				rvi.RunningClass = uint8(class)
			}

		case 0x12:
			rvi.ImageIndex = l.readImageIndex(r, false)

		case 0x13: // dual-headed
			if r.ReadByte() != 0 {
				rvi.Flags |= entities.RVF_DUAL_HEADED
				rvi.Flags &^= entities.RVF_WAGON
			} else {
				rvi.Flags &^= entities.RVF_DUAL_HEADED
				if rvi.Power == 0 {
					rvi.Flags |= entities.RVF_WAGON
				} else {
					rvi.Flags &^= entities.RVF_WAGON
				}
			}

		case 0x14:
			rvi.Capacity = r.ReadByte()

		case 0x15: // cargo type
			t := l.tempEngine(e.ID)
			t.defaultCargoFile = f
			raw := r.ReadByte()
			if raw == 0xFF {
				// Specified as "use the first refittable cargo".
				info.CargoType = entities.INVALID_CARGO
			} else {
				info.CargoType = l.cargoTranslation(raw, false)
				if info.CargoType == entities.INVALID_CARGO {
					glog.V(2).Infof("railVehicleChangeInfo: invalid cargo type %d, using first refittable", raw)
				}
			}

		case 0x16: // weight, low byte
			rvi.Weight = rvi.Weight&0xFF00 | uint16(r.ReadByte())

		case 0x17:
			rvi.CostFactor = uint16(r.ReadByte())

		case 0x18: // engine rank for the AI, unused
			r.ReadByte()

		case 0x19: // engine traction type
			raw := r.ReadByte()
			if raw > 0x41 {
				break
			}
			var class uint8
			switch {
			case raw <= 0x07:
				class = entities.RAIL_ENGINE_STEAM
			case raw <= 0x27:
				class = entities.RAIL_ENGINE_DIESEL
			case raw <= 0x31:
				class = entities.RAIL_ENGINE_ELECTRIC
			case raw <= 0x37:
				class = entities.RAIL_ENGINE_MONORAIL
			default:
				class = entities.RAIL_ENGINE_MAGLEV
			}
			if len(f.railTypeList) == 0 {
				// Without a translation table the traction type picks
				// between plain and electrified rail.
				t := l.tempEngine(e.ID)
				if t.railTypeLabel == entities.RAILTYPE_LABEL_RAIL && class >= entities.RAIL_ENGINE_ELECTRIC {
					t.railTypeLabel = entities.RAILTYPE_LABEL_ELECTRIC
				}
				if t.railTypeLabel == entities.RAILTYPE_LABEL_ELECTRIC && class < entities.RAIL_ENGINE_ELECTRIC {
					t.railTypeLabel = entities.RAILTYPE_LABEL_RAIL
				}
			}
			rvi.EngineClass = class

		case 0x1A: // purchase list position, no list to reorder here
			r.ReadExtendedByte()

		case 0x1B:
			rvi.ExtraPower = r.ReadWord()

		case 0x1C:
			info.RefitCost = r.ReadByte()

		case 0x1D: // refittable cargo mask
			t := l.tempEngine(e.ID)
			mask := r.ReadDWord()
			t.updateRefittability(mask != 0)
			info.RefitMask = l.translateRefitMask(mask)
			t.defaultCargoFile = f

		case 0x1E:
			info.CallbackMask = info.CallbackMask&0xFF00 | uint16(r.ReadByte())

		case 0x1F:
			rvi.TractiveEffort = r.ReadByte()

		case 0x20:
			rvi.AirDrag = r.ReadByte()

		case 0x21:
			rvi.ShortenFactor = r.ReadByte()

		case 0x22:
			rvi.VisualEffect = normalizeVisualEffect(r.ReadByte())

		case 0x23:
			rvi.ExtraWeight = r.ReadByte()

		case 0x24: // weight, high byte
			w := r.ReadByte()
			if w > 4 {
				glog.V(2).Infof("railVehicleChangeInfo: nonsensical weight of %d tons, ignoring", uint32(w)<<8)
			} else {
				rvi.Weight = rvi.Weight&0x00FF | uint16(w)<<8
			}

		case 0x25:
			rvi.UserDefData = r.ReadByte()

		case 0x26:
			info.RetireEarly = int8(r.ReadByte())

		case 0x27:
			info.MiscFlags = r.ReadByte()

		case 0x28:
			t := l.tempEngine(e.ID)
			t.cargoAllowed = entities.CargoClasses(r.ReadWord())
			t.updateRefittability(t.cargoAllowed != 0)
			t.defaultCargoFile = f

		case 0x29:
			t := l.tempEngine(e.ID)
			t.cargoDisallowed = entities.CargoClasses(r.ReadWord())
			t.updateRefittability(false)

		case 0x2A: // long format introduction date, days since year 0
			info.IntroDate = int32(r.ReadDWord())

		case 0x2B:
			info.CargoAgePeriod = r.ReadWord()

		case 0x2C, 0x2D: // explicit refit inclusions and exclusions
			t := l.tempEngine(e.ID)
			mask, count := l.readCargoTypeList(r)
			t.updateRefittability(prop == 0x2C && count != 0)
			if prop == 0x2C {
				t.defaultCargoFile = f
				t.cttInclude = mask
			} else {
				t.cttExclude = mask
			}

		case 0x2E:
			rvi.CurveSpeedMod = int16(r.ReadWord())

		case 0x2F: // variant group, still a file-local id at this point
			info.VariantID = entities.EngineID(r.ReadWord())

		case 0x30:
			info.ExtraFlags = r.ReadDWord()

		case 0x31:
			info.CallbackMask = info.CallbackMask&0x00FF | uint16(r.ReadByte())<<8

		case 0x32:
			l.tempEngine(e.ID).cargoAllowedRequired = entities.CargoClasses(r.ReadWord())

		case 0x33:
			e.Badges = readBadgeList(l, r, entities.GSF_TRAINS)

		default:
			if cir := commonVehicleChangeInfo(info, r, prop); cir != CIR_SUCCESS {
				return cir
			}
		}
	}
	return CIR_SUCCESS
}

// roadVehicleChangeInfo applies action 0 properties to road vehicles.
func roadVehicleChangeInfo(l *Loader, r *grf.Reader, prop uint16, first, num int) changeInfoResult {
	f := l.cur.file

	for i := 0; i < num; i++ {
		e := l.engine(entities.VEH_ROAD, uint16(first+i))
		if e == nil {
			return CIR_INVALID_ID
		}
		info := &e.Info
		rvi := &e.Road

		switch prop {
		case 0x05: // road or tram type, resolved during finalization
			l.tempEngine(e.ID).roadTramType = r.ReadByte() + 1

		case 0x08:
			rvi.Speed = uint16(r.ReadByte())

		case 0x09:
			rvi.RunningCost = r.ReadByte()

		case 0x0A: // running cost base address
			if class, ok := convertBasePrice(r.ReadDWord(), "roadVehicleChangeInfo"); ok {
				rvi.RunningClass = uint8(class)
			}

		case 0x0E:
			rvi.ImageIndex = l.readImageIndex(r, true)

		case 0x0F:
			rvi.Capacity = r.ReadByte()

		case 0x10: // cargo type
			t := l.tempEngine(e.ID)
			t.defaultCargoFile = f
			raw := r.ReadByte()
			if raw == 0xFF {
				info.CargoType = entities.INVALID_CARGO
			} else {
				info.CargoType = l.cargoTranslation(raw, false)
				if info.CargoType == entities.INVALID_CARGO {
					glog.V(2).Infof("roadVehicleChangeInfo: invalid cargo type %d, using first refittable", raw)
				}
			}

		case 0x11:
			rvi.CostFactor = r.ReadByte()

		case 0x12:
			rvi.SFX = r.ReadByte()

		case 0x13: // power in 10 hp units
			rvi.Power = uint16(r.ReadByte())

		case 0x14: // weight in quarter tons
			rvi.Weight = uint16(r.ReadByte())

		case 0x15: // speed in its newer unit, converted during finalization
			l.tempEngine(e.ID).rvMaxSpeed = r.ReadByte()

		case 0x16:
			t := l.tempEngine(e.ID)
			mask := r.ReadDWord()
			t.updateRefittability(mask != 0)
			info.RefitMask = l.translateRefitMask(mask)
			t.defaultCargoFile = f

		case 0x17:
			info.CallbackMask = info.CallbackMask&0xFF00 | uint16(r.ReadByte())

		case 0x18:
			rvi.TractiveEffort = r.ReadByte()

		case 0x19:
			rvi.AirDrag = r.ReadByte()

		case 0x1A:
			info.RefitCost = r.ReadByte()

		case 0x1B:
			info.RetireEarly = int8(r.ReadByte())

		case 0x1C:
			info.MiscFlags = r.ReadByte()

		case 0x1D:
			t := l.tempEngine(e.ID)
			t.cargoAllowed = entities.CargoClasses(r.ReadWord())
			t.updateRefittability(t.cargoAllowed != 0)
			t.defaultCargoFile = f

		case 0x1E:
			t := l.tempEngine(e.ID)
			t.cargoDisallowed = entities.CargoClasses(r.ReadWord())
			t.updateRefittability(false)

		case 0x1F:
			info.IntroDate = int32(r.ReadDWord())

		case 0x20: // purchase list position
			r.ReadExtendedByte()

		case 0x21:
			rvi.VisualEffect = normalizeVisualEffect(r.ReadByte())

		case 0x22:
			info.CargoAgePeriod = r.ReadWord()

		case 0x23:
			rvi.ShortenFactor = r.ReadByte()

		case 0x24, 0x25:
			t := l.tempEngine(e.ID)
			mask, count := l.readCargoTypeList(r)
			t.updateRefittability(prop == 0x24 && count != 0)
			if prop == 0x24 {
				t.defaultCargoFile = f
				t.cttInclude = mask
			} else {
				t.cttExclude = mask
			}

		case 0x26:
			info.VariantID = entities.EngineID(r.ReadWord())

		case 0x27:
			info.ExtraFlags = r.ReadDWord()

		case 0x28:
			info.CallbackMask = info.CallbackMask&0x00FF | uint16(r.ReadByte())<<8

		case 0x29:
			l.tempEngine(e.ID).cargoAllowedRequired = entities.CargoClasses(r.ReadWord())

		case 0x2A:
			e.Badges = readBadgeList(l, r, entities.GSF_ROADVEHICLES)

		default:
			if cir := commonVehicleChangeInfo(info, r, prop); cir != CIR_SUCCESS {
				return cir
			}
		}
	}
	return CIR_SUCCESS
}

// shipVehicleChangeInfo applies action 0 properties to ships.
func shipVehicleChangeInfo(l *Loader, r *grf.Reader, prop uint16, first, num int) changeInfoResult {
	f := l.cur.file

	for i := 0; i < num; i++ {
		e := l.engine(entities.VEH_SHIP, uint16(first+i))
		if e == nil {
			return CIR_INVALID_ID
		}
		info := &e.Info
		svi := &e.Ship

		switch prop {
		case 0x08:
			svi.ImageIndex = l.readImageIndex(r, true)

		case 0x09: // refittable flag
			l.tempEngine(e.ID).updateRefittability(r.ReadByte() != 0)

		case 0x0A:
			svi.CostFactor = r.ReadByte()

		case 0x0B:
			svi.Speed = uint16(r.ReadByte())

		case 0x0C: // cargo type
			t := l.tempEngine(e.ID)
			t.defaultCargoFile = f
			raw := r.ReadByte()
			if raw == 0xFF {
				info.CargoType = entities.INVALID_CARGO
			} else {
				info.CargoType = l.cargoTranslation(raw, false)
				if info.CargoType == entities.INVALID_CARGO {
					glog.V(2).Infof("shipVehicleChangeInfo: invalid cargo type %d, using first refittable", raw)
				}
			}

		case 0x0D:
			svi.Capacity = r.ReadWord()

		case 0x0F:
			svi.RunningCost = r.ReadByte()

		case 0x10:
			svi.SFX = r.ReadByte()

		case 0x11:
			t := l.tempEngine(e.ID)
			mask := r.ReadDWord()
			t.updateRefittability(mask != 0)
			info.RefitMask = l.translateRefitMask(mask)
			t.defaultCargoFile = f

		case 0x12:
			info.CallbackMask = info.CallbackMask&0xFF00 | uint16(r.ReadByte())

		case 0x13:
			info.RefitCost = r.ReadByte()

		case 0x14:
			svi.OceanSpeedFrac = r.ReadByte()

		case 0x15:
			svi.CanalSpeedFrac = r.ReadByte()

		case 0x16:
			info.RetireEarly = int8(r.ReadByte())

		case 0x17:
			info.MiscFlags = r.ReadByte()

		case 0x18:
			t := l.tempEngine(e.ID)
			t.cargoAllowed = entities.CargoClasses(r.ReadWord())
			t.updateRefittability(t.cargoAllowed != 0)
			t.defaultCargoFile = f

		case 0x19:
			t := l.tempEngine(e.ID)
			t.cargoDisallowed = entities.CargoClasses(r.ReadWord())
			t.updateRefittability(false)

		case 0x1A:
			info.IntroDate = int32(r.ReadDWord())

		case 0x1B: // purchase list position
			r.ReadExtendedByte()

		case 0x1C:
			svi.VisualEffect = normalizeVisualEffect(r.ReadByte())

		case 0x1D:
			info.CargoAgePeriod = r.ReadWord()

		case 0x1E, 0x1F:
			t := l.tempEngine(e.ID)
			mask, count := l.readCargoTypeList(r)
			t.updateRefittability(prop == 0x1E && count != 0)
			if prop == 0x1E {
				t.defaultCargoFile = f
				t.cttInclude = mask
			} else {
				t.cttExclude = mask
			}

		case 0x20:
			info.VariantID = entities.EngineID(r.ReadWord())

		case 0x21:
			info.ExtraFlags = r.ReadDWord()

		case 0x22:
			info.CallbackMask = info.CallbackMask&0x00FF | uint16(r.ReadByte())<<8

		case 0x23: // speed, the 16 bit form
			svi.Speed = r.ReadWord()

		case 0x24:
			a := r.ReadByte()
			if a == 0 {
				a = 1
			}
			svi.AccelType = a
			svi.ApplyWaterDrag = true

		case 0x25:
			l.tempEngine(e.ID).cargoAllowedRequired = entities.CargoClasses(r.ReadWord())

		case 0x26:
			e.Badges = readBadgeList(l, r, entities.GSF_SHIPS)

		default:
			if cir := commonVehicleChangeInfo(info, r, prop); cir != CIR_SUCCESS {
				return cir
			}
		}
	}
	return CIR_SUCCESS
}

// aircraftVehicleChangeInfo applies action 0 properties to aircraft.
func aircraftVehicleChangeInfo(l *Loader, r *grf.Reader, prop uint16, first, num int) changeInfoResult {
	f := l.cur.file

	for i := 0; i < num; i++ {
		e := l.engine(entities.VEH_AIRCRAFT, uint16(first+i))
		if e == nil {
			return CIR_INVALID_ID
		}
		info := &e.Info
		avi := &e.Air

		switch prop {
		case 0x08:
			avi.ImageIndex = l.readImageIndex(r, true)

		case 0x09: // helicopter flag, inverted
			if r.ReadByte() == 0 {
				avi.SubType = entities.AIR_HELICOPTER
			} else {
				avi.SubType |= 0x01 // fixed-wing
			}

		case 0x0A: // large aircraft flag
			if r.ReadByte() != 0 {
				avi.SubType |= 0x02
			} else {
				avi.SubType &^= 0x02
			}

		case 0x0B:
			avi.CostFactor = r.ReadByte()

		case 0x0C: // speed in units of 8 mph
			avi.Speed = uint16(uint32(r.ReadByte()) * 128 / 10)

		case 0x0D:
			avi.Acceleration = r.ReadByte()

		case 0x0E:
			avi.RunningCost = r.ReadByte()

		case 0x0F:
			avi.PassengerCapacity = r.ReadWord()

		case 0x11:
			avi.MailCapacity = r.ReadByte()

		case 0x12:
			avi.SFX = r.ReadByte()

		case 0x13:
			t := l.tempEngine(e.ID)
			mask := r.ReadDWord()
			t.updateRefittability(mask != 0)
			info.RefitMask = l.translateRefitMask(mask)
			t.defaultCargoFile = f

		case 0x14:
			info.CallbackMask = info.CallbackMask&0xFF00 | uint16(r.ReadByte())

		case 0x15:
			info.RefitCost = r.ReadByte()

		case 0x16:
			info.RetireEarly = int8(r.ReadByte())

		case 0x17:
			info.MiscFlags = r.ReadByte()

		case 0x18:
			t := l.tempEngine(e.ID)
			t.cargoAllowed = entities.CargoClasses(r.ReadWord())
			t.updateRefittability(t.cargoAllowed != 0)
			t.defaultCargoFile = f

		case 0x19:
			t := l.tempEngine(e.ID)
			t.cargoDisallowed = entities.CargoClasses(r.ReadWord())
			t.updateRefittability(false)

		case 0x1A:
			info.IntroDate = int32(r.ReadDWord())

		case 0x1B: // purchase list position
			r.ReadExtendedByte()

		case 0x1C:
			info.CargoAgePeriod = r.ReadWord()

		case 0x1D, 0x1E:
			t := l.tempEngine(e.ID)
			mask, count := l.readCargoTypeList(r)
			t.updateRefittability(prop == 0x1D && count != 0)
			if prop == 0x1D {
				t.defaultCargoFile = f
				t.cttInclude = mask
			} else {
				t.cttExclude = mask
			}

		case 0x1F:
			avi.Range = r.ReadWord()

		case 0x20:
			info.VariantID = entities.EngineID(r.ReadWord())

		case 0x21:
			info.ExtraFlags = r.ReadDWord()

		case 0x22:
			info.CallbackMask = info.CallbackMask&0x00FF | uint16(r.ReadByte())<<8

		case 0x23:
			l.tempEngine(e.ID).cargoAllowedRequired = entities.CargoClasses(r.ReadWord())

		case 0x24:
			e.Badges = readBadgeList(l, r, entities.GSF_AIRCRAFT)

		default:
			if cir := commonVehicleChangeInfo(info, r, prop); cir != CIR_SUCCESS {
				return cir
			}
		}
	}
	return CIR_SUCCESS
}
