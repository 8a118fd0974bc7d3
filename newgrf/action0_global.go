package newgrf

import (
	"strings"

	"github.com/golang/glog"

	"badc0de.net/pkg/go-newgrf/entities"
	"badc0de.net/pkg/go-newgrf/grf"
	"badc0de.net/pkg/go-newgrf/grftext"
)

// Plural rules past this value belong to no known string scheme.
const maxPluralForms = 16

// readDWordAsString reads four bytes holding a short zero-padded text, such
// as a currency symbol.
func readDWordAsString(r *grf.Reader, grfid uint32) string {
	raw := make([]byte, 0, 4)
	for i := 0; i < 4; i++ {
		if b := r.ReadByte(); b != 0 {
			raw = append(raw, b)
		}
	}
	return grftext.TranslateTTDPatchCodes(grfid, 0x7F, false, raw)
}

// globalVarChangeInfo applies the global variable properties that run at
// activation. The translation tables are accepted here as well, since a
// file may define them conditionally on state that settles only after
// reservation.
func globalVarChangeInfo(l *Loader, r *grf.Reader, prop uint16, first, num int) changeInfoResult {
	f := l.cur.file

	switch prop {
	case 0x09:
		return l.loadTranslationTable(r, first, num, &f.cargoList, "cargo",
			func(t *File) *[]grf.Label { return &t.cargoList })
	case 0x12:
		return l.loadTranslationTable(r, first, num, &f.railTypeList, "rail type",
			func(t *File) *[]grf.Label { return &t.railTypeList })
	case 0x16:
		return l.loadTranslationTable(r, first, num, &f.roadTypeList, "road type",
			func(t *File) *[]grf.Label { return &t.roadTypeList })
	case 0x17:
		return l.loadTranslationTable(r, first, num, &f.tramTypeList, "tram type",
			func(t *File) *[]grf.Label { return &t.tramTypeList })
	}

	for id := first; id < first+num; id++ {
		switch prop {
		case 0x08: // cost base factor
			factor := int(r.ReadByte())
			if id >= int(entities.PR_END) {
				glog.V(1).Infof("globalVarChangeInfo: price %d out of range, ignoring", id)
				break
			}
			// Factors are biased by 8; values above the cap are clamped
			// rather than rejected.
			mod := int8(factor - 8)
			if mod > entities.MAX_PRICE_MODIFIER {
				mod = entities.MAX_PRICE_MODIFIER
			}
			f.priceMultipliers[entities.PriceKind(id)] = mod

		case 0x0A: // currency display name
			source := grftext.GRFStringID(r.ReadWord())
			if id > 0xFF {
				glog.V(1).Infof("globalVarChangeInfo: currency %d out of range, ignoring name", id)
				break
			}
			spec := l.Tables.Currencies.Spec(entities.CurrencyID(id))
			l.addStringForMapping(source, func(s grftext.StringID) { spec.Name = s })

		case 0x0B: // currency conversion rate
			rate := r.ReadDWord()
			if id > 0xFF {
				glog.V(1).Infof("globalVarChangeInfo: currency %d out of range, ignoring rate", id)
				break
			}
			// Rates are declared in thousandths of the base currency.
			l.Tables.Currencies.Spec(entities.CurrencyID(id)).Rate = rate / 1000

		case 0x0C: // currency separator and symbol position
			options := r.ReadWord()
			if id > 0xFF {
				glog.V(1).Infof("globalVarChangeInfo: currency %d out of range, ignoring options", id)
				break
			}
			spec := l.Tables.Currencies.Spec(entities.CurrencyID(id))
			spec.Separator = string([]byte{byte(options)})
			// Only the low bit is defined; higher bits would produce
			// nonsense placements.
			spec.SymbolPos = uint8(options >> 8 & 1)

		case 0x0D: // currency prefix symbol
			prefix := readDWordAsString(r, f.grfid)
			if id > 0xFF {
				glog.V(1).Infof("globalVarChangeInfo: currency %d out of range, ignoring prefix", id)
				break
			}
			l.Tables.Currencies.Spec(entities.CurrencyID(id)).Prefix = prefix

		case 0x0E: // currency suffix symbol
			suffix := readDWordAsString(r, f.grfid)
			if id > 0xFF {
				glog.V(1).Infof("globalVarChangeInfo: currency %d out of range, ignoring suffix", id)
				break
			}
			l.Tables.Currencies.Spec(entities.CurrencyID(id)).Suffix = suffix

		case 0x0F: // euro introduction year
			year := r.ReadWord()
			if id > 0xFF {
				glog.V(1).Infof("globalVarChangeInfo: currency %d out of range, ignoring euro year", id)
				break
			}
			l.Tables.Currencies.Spec(entities.CurrencyID(id)).ToEuro = year

		case 0x10: // snow line height table
			if num > 1 || l.Tables.Snow != nil {
				glog.V(1).Infof("globalVarChangeInfo: the snow line table can only be set once")
				break
			}
			if r.Remaining() < entities.SNOW_LINE_MONTHS*entities.SNOW_LINE_DAYS {
				glog.V(1).Infof("globalVarChangeInfo: snow line table cut short, %d bytes left", r.Remaining())
				break
			}
			var table [entities.SNOW_LINE_MONTHS][entities.SNOW_LINE_DAYS]uint8
			for m := range table {
				for d := range table[m] {
					table[m][d] = r.ReadByte()
				}
			}
			l.Tables.Snow = entities.NewSnowLine(table)

		case 0x11: // engine scope redirection, applied during reservation
			r.Skip(8)

		case 0x13, 0x14: // gender and case tables
			if id >= 0x7F {
				glog.V(1).Infof("globalVarChangeInfo: language %d out of range, skipping its table", id)
				for r.ReadByte() != 0 {
					r.ReadString()
				}
				break
			}
			li := f.languageMap(uint8(id))
			for {
				mapID := r.ReadByte()
				if mapID == 0 {
					break
				}
				// A leading thorn marks UTF-8 text and is not part of the
				// name itself.
				name := strings.TrimPrefix(r.ReadString(), "Þ")
				m := languageMapping{ID: mapID, Name: name}
				if prop == 0x13 {
					li.Genders = append(li.Genders, m)
				} else {
					li.Cases = append(li.Cases, m)
				}
			}

		case 0x15: // plural form
			form := r.ReadByte()
			if id >= 0x7F {
				glog.V(1).Infof("globalVarChangeInfo: language %d out of range, ignoring plural form", id)
				break
			}
			if form >= maxPluralForms {
				glog.V(1).Infof("globalVarChangeInfo: plural form %d out of range, ignoring", form)
				break
			}
			f.languageMap(uint8(id)).PluralForm = form

		default:
			return CIR_UNKNOWN
		}
	}
	return CIR_SUCCESS
}
