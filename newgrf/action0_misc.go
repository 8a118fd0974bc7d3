package newgrf

import (
	"github.com/golang/glog"

	"badc0de.net/pkg/go-newgrf/entities"
	"badc0de.net/pkg/go-newgrf/grf"
	"badc0de.net/pkg/go-newgrf/grftext"
)

// canalChangeInfo customizes the water graphics slots. The slots are
// shared; the last file to write a property wins.
func canalChangeInfo(l *Loader, r *grf.Reader, prop uint16, first, num int) changeInfoResult {
	f := l.cur.file

	if first+num > int(entities.CF_END) {
		glog.V(1).Infof("canalChangeInfo: canal slot %d out of range (max %d), ignoring",
			first+num-1, int(entities.CF_END)-1)
		return CIR_INVALID_ID
	}

	for id := first; id < first+num; id++ {
		cp := &l.Tables.Canals[id]

		switch prop {
		case 0x08: // callback mask
			cp.CallbackMask = r.ReadByte()

		case 0x09: // flags
			cp.Flags = r.ReadByte()

		default:
			return CIR_UNKNOWN
		}
		cp.Props.SetGRF(f.grfid, uint16(id))
	}
	return CIR_SUCCESS
}

const maxSoundVolume = 128

// soundEffectChangeInfo adjusts sounds the file itself imported. The ids
// count from the stock sample count, into the file's own block.
func soundEffectChangeInfo(l *Loader, r *grf.Reader, prop uint16, first, num int) changeInfoResult {
	f := l.cur.file

	if f.soundOffset == 0 {
		glog.V(1).Infof("soundEffectChangeInfo: no sounds defined, skipping")
		return CIR_INVALID_ID
	}
	if first < entities.ORIGINAL_SAMPLE_COUNT {
		glog.V(1).Infof("soundEffectChangeInfo: sound %d is a stock sample, ignoring", first)
		return CIR_INVALID_ID
	}
	if first+num-entities.ORIGINAL_SAMPLE_COUNT > int(f.numSounds) {
		glog.V(1).Infof("soundEffectChangeInfo: sound %d out of range (max %d), ignoring",
			first+num-1, entities.ORIGINAL_SAMPLE_COUNT+int(f.numSounds)-1)
		return CIR_INVALID_ID
	}

	for id := first; id < first+num; id++ {
		sound := l.Tables.Sounds.Entry(f.soundOffset + entities.SoundID(id-entities.ORIGINAL_SAMPLE_COUNT))

		switch prop {
		case 0x08: // relative volume
			v := r.ReadByte()
			if v > maxSoundVolume {
				v = maxSoundVolume
			}
			sound.Volume = v

		case 0x09: // priority
			sound.Priority = r.ReadByte()

		case 0x0A: // replace a stock sound
			orig := entities.SoundID(r.ReadByte())
			if orig >= entities.ORIGINAL_SAMPLE_COUNT {
				glog.V(1).Infof("soundEffectChangeInfo: %d is not a stock sound (max %d), ignoring",
					orig, entities.ORIGINAL_SAMPLE_COUNT-1)
				break
			}
			*l.Tables.Sounds.Entry(orig) = *sound

		default:
			return CIR_UNKNOWN
		}
	}
	return CIR_SUCCESS
}

// Extra signal aspects beyond the classic two are capped at the most any
// drawing style can present.
const maxExtraAspects = 6

// signalsChangeInfo handles the signal styling vocabulary. All of its
// properties arrive through remap declarations; the entity ids on the wire
// carry no meaning. Styles are defined one at a time and the follow-up
// properties apply to the style defined last, or to the default style when
// none was defined yet.
func signalsChangeInfo(l *Loader, r *grf.Reader, prop uint16, first, num int) changeInfoResult {
	f := l.cur.file

	for i := 0; i < num; i++ {
		switch prop {
		case PROP_SIGNALS_DEFINE_STYLE:
			localID := r.ReadByte()
			style := l.Tables.SignalStyles.Allocate(f.grfid, localID)
			if style == nil {
				glog.V(1).Infof("signalsChangeInfo: no free style slots, ignoring style %d", localID)
			}
			f.curSignalStyle = style

		case PROP_SIGNALS_STYLE_NAME:
			source := grftext.GRFStringID(r.ReadWord())
			style := f.curSignalStyle
			if style == nil {
				glog.V(1).Infof("signalsChangeInfo: style name without a style, ignoring")
				break
			}
			l.addStringForMapping(source, func(s grftext.StringID) { style.Name = s })

		case PROP_SIGNALS_STYLE_FLAGS:
			flags := r.ReadWord()
			if f.curSignalStyle == nil {
				glog.V(1).Infof("signalsChangeInfo: style flags without a style, ignoring")
				break
			}
			f.curSignalStyle.Flags = flags

		case PROP_SIGNALS_EXTRA_ASPECTS:
			aspects := r.ReadByte()
			if aspects > maxExtraAspects {
				aspects = maxExtraAspects
			}
			style := f.curSignalStyle
			if style == nil {
				style = l.Tables.SignalStyles.Default()
			}
			style.ExtraAspects = aspects

		default:
			return CIR_UNKNOWN
		}
	}
	return CIR_SUCCESS
}

// badgeChangeInfo interns badge labels and sets their flags. The ids are
// local to the file; the label property binds them to the shared registry.
func badgeChangeInfo(l *Loader, r *grf.Reader, prop uint16, first, num int) changeInfoResult {
	f := l.cur.file

	if first+num > 0xFFFF {
		glog.V(1).Infof("badgeChangeInfo: tag %d out of range, ignoring", first+num-1)
		return CIR_INVALID_ID
	}

	for id := first; id < first+num; id++ {
		var badge *entities.Badge
		if prop != 0x08 {
			bid, ok := f.badgeMap[uint16(id)]
			if !ok {
				glog.V(1).Infof("badgeChangeInfo: tag %d not defined, ignoring", id)
				return CIR_INVALID_ID
			}
			badge = l.Tables.Badges.Badge(bid)
		}

		switch prop {
		case 0x08: // label
			f.badgeMap[uint16(id)] = l.Tables.Badges.GetOrCreate(r.ReadString()).Index

		case 0x09: // flags
			badge.Flags = r.ReadDWord()

		default:
			return CIR_UNKNOWN
		}
	}
	return CIR_SUCCESS
}

// newLandscapeChangeInfo switches the terrain replacement extras on and
// off. Like the signal vocabulary, the properties only exist behind remap
// declarations.
func newLandscapeChangeInfo(l *Loader, r *grf.Reader, prop uint16, first, num int) changeInfoResult {
	for id := first; id < first+num; id++ {
		switch prop {
		case PROP_LANDSCAPE_ENABLE_RECOLOUR:
			v := r.ReadByte() != 0
			if id >= entities.NEW_LANDSCAPE_END {
				glog.V(1).Infof("newLandscapeChangeInfo: slot %d out of range, ignoring", id)
				break
			}
			l.Tables.Landscape[id].EnableRecolour = v

		case PROP_LANDSCAPE_SNOWY_ROCKS:
			v := r.ReadByte() != 0
			if id >= entities.NEW_LANDSCAPE_END {
				glog.V(1).Infof("newLandscapeChangeInfo: slot %d out of range, ignoring", id)
				break
			}
			l.Tables.Landscape[id].EnableDrawSnowyRocks = v

		default:
			return CIR_UNKNOWN
		}
	}
	return CIR_SUCCESS
}
