package newgrf

import (
	"github.com/golang/glog"

	"badc0de.net/pkg/go-newgrf/entities"
	"badc0de.net/pkg/go-newgrf/grf"
)

// safeParamSet lets assignments to the file's own parameters through the
// safety scan. Any other target changes shared state.
func safeParamSet(l *Loader, r *grf.Reader) {
	target := r.ReadByte()
	if target < 0x80 || target == 0x9E {
		return
	}
	l.cur.cfg.Flags |= GCF_UNSAFE
	l.cur.skipSprites = -1
}

// engineGRMOffset returns the first slot of a vehicle kind inside the
// shared engine reservation array.
func engineGRMOffset(kind entities.VehicleKind) int {
	off := 0
	for k := entities.VehicleKind(0); k < kind; k++ {
		off += int(entities.OriginalEngineCount(k))
	}
	return off
}

// performGRM services one resource management request over a slot array
// whose entries hold the claiming file's grfid, zero when free. Requests
// that must succeed disable the file on failure.
func (l *Loader) performGRM(grm []uint32, count uint16, op, target uint8, what string) uint32 {
	f := l.cur.file

	if op == 6 {
		// Query which file holds a slot.
		id := f.Param(target)
		if id >= uint32(len(grm)) {
			return 0
		}
		return grm[id]
	}

	var start, size int
	if op == 2 || op == 3 {
		start = int(f.Param(target))
	}
	for i := start; i < len(grm); i++ {
		if grm[i] == 0 {
			size++
		} else {
			// Fixed-position requests fail on the first taken slot.
			if op == 2 || op == 3 {
				break
			}
			start = i + 1
			size = 0
		}
		if size == int(count) {
			break
		}
	}

	if size == int(count) {
		if op == 0 || op == 3 {
			glog.V(2).Infof("performGRM: reserving %d %s at %d", count, what, start)
			for i := 0; i < int(count); i++ {
				grm[start+i] = f.grfid
			}
		}
		return uint32(start)
	}

	if op != 4 && op != 5 {
		glog.Errorf("performGRM: no room for %d %s; try another file order", count, what)
		l.disableGRF("resource allocation failed", nil)
		return 0xFFFFFFFF
	}
	glog.V(1).Infof("performGRM: no room for %d %s", count, what)
	return 0xFFFFFFFF
}

// resourceManagement serves the resource arm of an assignment, selected by
// a source 2 of 0xFE. The request is op over count ids of a feature; sprite
// ids are granted during reservation and handed back during activation.
// ok is false when the assignment must be abandoned.
func (l *Loader) resourceManagement(op, target uint8, data uint32) (uint32, bool) {
	feature, ok := l.resolveFeature(uint8(data >> 8))
	if !ok {
		return 0, false
	}
	count := uint16(data >> 16)

	switch l.stage {
	case GLS_RESERVE:
		if feature == entities.GSF_GLOBALVAR && op == 0 {
			if l.spriteID+uint32(count) >= grmSpriteLimit {
				glog.Errorf("paramSet: cannot reserve %d sprite ids; try another file order", count)
				l.disableGRF("resource allocation failed", nil)
				return 0, false
			}
			glog.V(4).Infof("paramSet: reserved %d sprite ids at %d", count, l.spriteID)
			l.grmSprites[l.location(0)] = grmReservation{first: l.spriteID, count: count}
			l.spriteID += uint32(count)
		}
		// Results only become visible during activation.
		return 0, true

	case GLS_ACTIVATION:
		switch feature {
		case entities.GSF_TRAINS, entities.GSF_ROADVEHICLES, entities.GSF_SHIPS, entities.GSF_AIRCRAFT:
			kind := feature.VehicleKind()
			off := engineGRMOffset(kind)
			num := int(entities.OriginalEngineCount(kind))
			val := l.performGRM(l.grmEngines[off:off+num], count, op, target, "vehicles")
			if l.cur.skipSprites == -1 {
				return 0, false
			}
			return val, true

		case entities.GSF_GLOBALVAR:
			switch op {
			case 0:
				res := l.grmSprites[l.location(0)]
				glog.V(4).Infof("paramSet: using %d sprite ids reserved at %d", res.count, res.first)
				return res.first, true
			case 1:
				return l.spriteID, true
			default:
				glog.V(1).Infof("paramSet: unsupported operation %d for sprite ids", op)
				return 0, false
			}

		case entities.GSF_CARGOES:
			val := l.performGRM(l.grmCargoes[:], count, op, target, "cargoes")
			if l.cur.skipSprites == -1 {
				return 0, false
			}
			return val, true

		default:
			glog.V(1).Infof("paramSet: unsupported resource feature %s", feature)
			return 0, false
		}

	default:
		// The other stages ignore resource management.
		return 0, true
	}
}

// otherFileParam reads a parameter, or with source 0xFE the declared
// version, of the file identified by grfid. Files that are absent or
// disabled read as zero.
func (l *Loader) otherFileParam(src uint8, grfid uint32) uint32 {
	file := l.fileByGRFID(grfid)
	c := l.GetGRFConfig(grfid, 0xFFFFFFFF)
	if c != nil && c.Flags&GCF_STATIC != 0 && l.cur.cfg.Flags&GCF_STATIC == 0 && l.Networking {
		l.disableStaticInfluence(c)
		return 0
	}
	if file == nil || c == nil || c.Status == GCS_DISABLED {
		return 0
	}
	if src == 0xFE {
		return c.Version
	}
	return file.Param(src)
}

// paramSet computes one parameter assignment (action 0x0D). Besides the
// file's own parameters the targets cover a few decode-wide knobs, and a
// source 2 of 0xFE reaches into patch variables, other files' parameters
// and resource management.
func paramSet(l *Loader, r *grf.Reader) {
	target := r.ReadByte()
	oper := r.ReadByte()
	src1 := r.ReadByte()
	src2 := r.ReadByte()

	var data uint32
	if r.Remaining() >= 4 {
		data = r.ReadDWord()
	}

	f := l.cur.file

	// Bit 7 turns the assignment into a default, applied only while the
	// target parameter is still undefined.
	if oper&0x80 != 0 {
		if target < 0x80 && int(target) < f.ParamEnd() {
			glog.V(7).Infof("paramSet: parameter 0x%02X already defined, skipping", target)
			return
		}
		oper &^= 0x80
	}

	var val1, val2 uint32
	if src2 == 0xFE {
		switch {
		case data == 0x0000FFFF:
			val1 = l.getPatchVariable(src1)
		case data&0xFF == 0xFF:
			var ok bool
			val1, ok = l.resourceManagement(src1, target, data)
			if !ok {
				return
			}
		default:
			val1 = l.otherFileParam(src1, data)
		}
	} else {
		if src1 == 0xFF {
			val1 = data
		} else {
			val1 = l.getParamVal(src1, nil)
		}
		if src2 == 0xFF {
			val2 = data
		} else {
			val2 = l.getParamVal(src2, nil)
		}
	}

	var res uint32
	switch oper {
	case 0x00:
		res = val1
	case 0x01:
		res = val1 + val2
	case 0x02:
		res = val1 - val2
	case 0x03:
		res = val1 * val2
	case 0x04:
		res = uint32(int32(val1) * int32(val2))
	case 0x05:
		if int32(val2) < 0 {
			res = val1 >> uint32(-int32(val2))
		} else {
			res = val1 << (val2 & 0x1F)
		}
	case 0x06:
		if int32(val2) < 0 {
			res = uint32(int32(val1) >> uint32(-int32(val2)))
		} else {
			res = uint32(int32(val1) << (val2 & 0x1F))
		}
	case 0x07:
		res = val1 & val2
	case 0x08:
		res = val1 | val2
	case 0x09:
		if val2 == 0 {
			res = val1
		} else {
			res = val1 / val2
		}
	case 0x0A:
		if val2 == 0 {
			res = val1
		} else {
			res = uint32(int32(val1) / int32(val2))
		}
	case 0x0B:
		if val2 == 0 {
			res = val1
		} else {
			res = val1 % val2
		}
	case 0x0C:
		if val2 == 0 {
			res = val1
		} else {
			res = uint32(int32(val1) % int32(val2))
		}
	default:
		glog.Errorf("paramSet: unknown operation 0x%02X, skipping", oper)
		return
	}

	switch target {
	case 0x8E:
		// Vertical offset of train sprites in interface listings.
		f.trainPitch = int8(res)

	case 0x8F:
		l.setRailCostFactors(res)

	case 0x93, 0x94, 0x95, 0x96, 0x97, 0x99, 0x9F:
		// Tile refresh margins, the flat snow line, the global id offset
		// and locale overrides have no effect in this decoder.
		glog.V(7).Infof("paramSet: ignoring target 0x%02X", target)

	case 0x9E:
		f.trainWide = res&(1<<GMB_TRAIN_WIDTH_32_PIXELS) != 0
		res &^= 1 << GMB_TRAIN_WIDTH_32_PIXELS
		if l.cur.cfg.Flags&GCF_STATIC != 0 {
			// Static files may only toggle bits that cannot differ
			// between the machines of a synchronized load.
			safe := uint32(1 << GMB_SECOND_ROCKY_TILE_SET)
			l.miscFeatures = l.miscFeatures&^safe | res&safe
		} else {
			l.miscFeatures = res
		}

	default:
		if target < 0x80 {
			f.SetParam(target, res)
		} else {
			glog.V(7).Infof("paramSet: ignoring unknown target 0x%02X", target)
		}
	}
}
