package newgrf

import (
	"github.com/golang/glog"

	"badc0de.net/pkg/go-newgrf/entities"
	"badc0de.net/pkg/go-newgrf/grf"
)

// skipIf conditionally skips records or jumps to a goto label (actions 0x07
// and 0x09). A skip count of zero stops decoding the rest of the file.
func skipIf(l *Loader, r *grf.Reader) {
	param := r.ReadByte()
	paramsize := r.ReadByte()
	condtype := r.ReadByte()

	if condtype < 2 {
		// Bit tests carry the bit number in a single byte.
		paramsize = 1
	}

	var condVal, mask uint32
	switch paramsize {
	case 8:
		condVal = r.ReadDWord()
		mask = r.ReadDWord()
	case 4:
		condVal = r.ReadDWord()
		mask = 0xFFFFFFFF
	case 2:
		condVal = uint32(r.ReadWord())
		mask = 0x0000FFFF
	case 1:
		condVal = uint32(r.ReadByte())
		mask = 0x000000FF
	}

	f := l.cur.file
	if param < 0x80 && f.ParamEnd() <= int(param) {
		glog.V(7).Infof("skipIf: parameter 0x%02X undefined, skipping test", param)
		return
	}
	glog.V(7).Infof("skipIf: condition type 0x%02X, parameter 0x%02X, value 0x%08X", condtype, param, condVal)

	var result bool
	switch {
	case condtype >= 0x0B:
		// Label presence tests. These ignore the parameter.
		label := grf.SwappedLabel(condVal)
		switch condtype {
		case 0x0B:
			result = l.Tables.Cargo.LabelLookup(label) == entities.INVALID_CARGO
		case 0x0C:
			result = l.Tables.Cargo.LabelLookup(label) != entities.INVALID_CARGO
		case 0x0D:
			result = l.Tables.RailTypes.LabelLookup(label) == entities.INVALID_TRACK_TYPE
		case 0x0E:
			result = l.Tables.RailTypes.LabelLookup(label) != entities.INVALID_TRACK_TYPE
		case 0x0F, 0x10, 0x11, 0x12:
			id := l.Tables.RoadTypes.LabelLookup(label)
			tram := condtype >= 0x11
			present := id != entities.INVALID_TRACK_TYPE && l.Tables.RoadTypes.Info(id).IsTram == tram
			result = present == (condtype == 0x10 || condtype == 0x12)
		default:
			glog.V(1).Infof("skipIf: unsupported condition type 0x%02X, ignoring", condtype)
			return
		}
	case param == 0x88:
		// Tests against the state of another file.
		c := l.GetGRFConfig(condVal, mask)
		if c != nil && c.Flags&GCF_STATIC != 0 && l.cur.cfg.Flags&GCF_STATIC == 0 && l.Networking {
			l.disableStaticInfluence(c)
			c = nil
		}
		// Only the both-ways-inactive test can say anything about a file
		// that is not in the load set at all.
		if condtype != 0x0A && c == nil {
			glog.V(7).Infof("skipIf: grfid %s unknown, skipping test", grf.SwappedLabel(condVal))
			return
		}
		switch condtype {
		case 0x06:
			result = c.Status == GCS_ACTIVATED
		case 0x07:
			result = c.Status != GCS_ACTIVATED
		case 0x08:
			result = c.Status == GCS_INITIALISED
		case 0x09:
			result = c.Status == GCS_ACTIVATED || c.Status == GCS_INITIALISED
		case 0x0A:
			result = c == nil || c.Status == GCS_DISABLED || c.Status == GCS_NOT_FOUND
		default:
			glog.V(1).Infof("skipIf: unsupported grfid condition type 0x%02X, ignoring", condtype)
			return
		}
	default:
		paramVal := l.getParamVal(param, &condVal) // rewrites condVal for variable 0x85
		switch condtype {
		case 0x00:
			result = paramVal&(1<<condVal) != 0
		case 0x01:
			result = paramVal&(1<<condVal) == 0
		case 0x02:
			result = paramVal&mask == condVal
		case 0x03:
			result = paramVal&mask != condVal
		case 0x04:
			result = paramVal&mask < condVal
		case 0x05:
			result = paramVal&mask > condVal
		default:
			glog.V(1).Infof("skipIf: unsupported condition type 0x%02X, ignoring", condtype)
			return
		}
	}

	if !result {
		glog.V(2).Infof("skipIf: test false, not skipping")
		return
	}

	numSprites := r.ReadByte()

	// The count doubles as a goto label, preferring the first matching label
	// after the current record and falling back to the first one anywhere.
	if label := f.label(numSprites, l.cur.nfoLine); label != nil {
		glog.V(2).Infof("skipIf: jumping to label 0x%02X at record %d", label.label, label.nfoLine)
		l.cur.grf.SeekTo(label.pos)
		l.cur.nfoLine = label.nfoLine
		return
	}

	glog.V(2).Infof("skipIf: skipping %d records", numSprites)
	l.cur.skipSprites = int(numSprites)
	if l.cur.skipSprites == 0 {
		// Zero means the rest of the file. When the file has not reached
		// the state expected of it at this stage it is done for good.
		l.cur.skipSprites = -1
		expect := GCS_INITIALISED
		if l.stage >= GLS_RESERVE {
			expect = GCS_ACTIVATED
		}
		if l.cur.cfg.Status != expect {
			l.disableGRF("", nil)
		}
	}
}
