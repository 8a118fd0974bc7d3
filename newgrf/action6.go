package newgrf

import (
	"github.com/golang/glog"

	"badc0de.net/pkg/go-newgrf/grf"
)

// cfgApply patches the next pseudo record with parameter values before it is
// decoded (action 0x06). The patched copy is stashed per (grfid, line) and
// substituted when the loop reaches that line, in every later stage too.
func cfgApply(l *Loader, r *grf.Reader) {
	container := l.cur.grf
	pos := container.Pos()
	size, typ, err := container.ReadRecordHeader()
	if err != nil || typ != grf.RECORD_PSEUDO {
		glog.V(2).Infof("cfgApply: next record is not a pseudo record, ignoring")
		container.SeekTo(pos)
		return
	}
	data, err := container.ReadPseudo(size)
	container.SeekTo(pos)
	if err != nil {
		return
	}

	override, ok := l.overrides[l.location(1)]
	if !ok {
		// ReadPseudo aliases the container buffer, keep a private copy.
		override = append([]byte(nil), data...)
		l.overrides[l.location(1)] = override
	}

	f := l.cur.file
	for {
		param := r.ReadByte()
		if param == 0xFF {
			break
		}
		length := r.ReadByte()
		addValue := length&0x80 != 0
		length &^= 0x80
		offset := int(r.ReadExtendedByte())

		// A run longer than a dword reads sequential parameters. All of
		// them have to be set; length 0 wraps around and never is.
		last := uint16(param) + (uint16(length)-1)/4
		if param < 0x80 && last >= uint16(f.ParamEnd()) {
			glog.V(2).Infof("cfgApply: parameter 0x%02X not set, ignoring", param)
			break
		}
		glog.V(6).Infof("cfgApply: patching %d bytes from parameter 0x%02X at offset 0x%04X", length, param, offset)

		carry := false
		for i := 0; i < int(length) && offset+i < len(override); i++ {
			value := l.getParamVal(param+uint8(i/4), nil)
			if i%4 == 0 {
				carry = false
			}
			b := byte(value >> ((i % 4) * 8))
			if addValue {
				sum := int(override[offset+i]) + int(b)
				if carry {
					sum++
				}
				override[offset+i] = byte(sum)
				carry = sum >= 256
			} else {
				override[offset+i] = b
			}
		}
	}
}
