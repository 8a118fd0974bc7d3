package newgrf

import (
	"github.com/golang/glog"

	"badc0de.net/pkg/go-newgrf/entities"
	"badc0de.net/pkg/go-newgrf/grf"
	"badc0de.net/pkg/go-newgrf/grftext"
)

// cargoChangeInfo redefines cargo table slots. It runs during reservation so
// that the activation pass of every file, including this one, already sees
// the final cargo set when it translates refit masks.
func cargoChangeInfo(l *Loader, r *grf.Reader, prop uint16, first, num int) changeInfoResult {
	f := l.cur.file

	if first+num > entities.NUM_CARGO {
		glog.V(1).Infof("cargoChangeInfo: cargo %d out of range (max %d), ignoring",
			first+num-1, entities.NUM_CARGO-1)
		return CIR_INVALID_ID
	}

	for id := first; id < first+num; id++ {
		cs := l.Tables.Cargo.Spec(entities.CargoType(id))

		switch prop {
		case 0x08: // climate-independent bit number, 0xFF retires the slot
			cs.BitNum = r.ReadByte()
			if cs.IsValid() {
				cs.GRFID = f.grfid
			}

		case 0x09: // type name
			l.addStringForMapping(grftext.GRFStringID(r.ReadWord()),
				func(s grftext.StringID) { cs.Name = s })

		case 0x0A: // name of one unit
			l.addStringForMapping(grftext.GRFStringID(r.ReadWord()),
				func(s grftext.StringID) { cs.NameSingle = s })

		case 0x0B, 0x1B: // unit label shown with quantities
			l.addStringForMapping(grftext.GRFStringID(r.ReadWord()),
				func(s grftext.StringID) { cs.UnitsVolume = s })

		case 0x0C, 0x1C: // phrase for an amount of the cargo
			l.addStringForMapping(grftext.GRFStringID(r.ReadWord()),
				func(s grftext.StringID) { cs.Quantifier = s })

		case 0x0D: // two letter abbreviation
			l.addStringForMapping(grftext.GRFStringID(r.ReadWord()),
				func(s grftext.StringID) { cs.Abbrev = s })

		case 0x0E: // icon sprite
			cs.IconSprite = uint32(r.ReadWord())

		case 0x0F: // weight per unit, 1/16 t
			cs.Weight = r.ReadByte()

		case 0x10: // payment penalty thresholds
			cs.TransitPeriods[0] = r.ReadByte()

		case 0x11:
			cs.TransitPeriods[1] = r.ReadByte()

		case 0x12: // base payment
			cs.InitialPayment = r.ReadDWord()

		case 0x13: // station rating bar colour
			cs.RatingColour = r.ReadByte()

		case 0x14: // cargo graph colour
			cs.LegendColour = r.ReadByte()

		case 0x15: // freight status
			cs.IsFreight = r.ReadByte() != 0

		case 0x16: // cargo classes
			cs.Classes = entities.CargoClasses(r.ReadWord())

		case 0x17: // label
			cs.Label = r.ReadLabel()

		case 0x18: // town growth substitute slot
			sub := r.ReadByte()
			switch sub {
			case 0x00:
				cs.TownAcceptanceEffect = entities.TAE_PASSENGERS
			case 0x02:
				cs.TownAcceptanceEffect = entities.TAE_MAIL
			case 0x05:
				cs.TownAcceptanceEffect = entities.TAE_GOODS
			case 0x09:
				cs.TownAcceptanceEffect = entities.TAE_WATER
			case 0x0B:
				cs.TownAcceptanceEffect = entities.TAE_FOOD
			case 0xFF:
				cs.TownAcceptanceEffect = entities.TAE_NONE
			default:
				glog.V(1).Infof("cargoChangeInfo: unknown town growth substitute %d, setting none", sub)
				cs.TownAcceptanceEffect = entities.TAE_NONE
			}

		case 0x19: // town growth coefficient, unused by the original engine
			r.ReadWord()

		case 0x1A: // callback mask
			cs.CallbackMask = r.ReadByte()

		case 0x1D: // vehicle capacity multiplier
			mult := r.ReadWord()
			if mult < 1 {
				mult = 1
			}
			cs.Multiplier = mult

		case 0x1E: // town production substitute slot
			sub := r.ReadByte()
			switch sub {
			case 0x00:
				cs.TownProductionEffect = entities.TPE_PASSENGERS
			case 0x02:
				cs.TownProductionEffect = entities.TPE_MAIL
			case 0xFF:
				cs.TownProductionEffect = entities.TPE_NONE
			default:
				glog.V(1).Infof("cargoChangeInfo: unknown town production substitute %d, setting none", sub)
				cs.TownProductionEffect = entities.TPE_NONE
			}

		case 0x1F: // town production multiplier, 8.8 fixed point
			cs.TownProductionMult = r.ReadWord()

		default:
			return CIR_UNKNOWN
		}
	}
	return CIR_SUCCESS
}
