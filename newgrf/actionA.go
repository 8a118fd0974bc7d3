package newgrf

import (
	"github.com/golang/glog"

	"badc0de.net/pkg/go-newgrf/grf"
)

// spriteReplace overwrites runs of the original base sprites (action 0x0A).
// The replaced slots are fixed, so the runs consume real sprites without
// assigning new sprite ids.
func spriteReplace(l *Loader, r *grf.Reader) {
	numSets := r.ReadByte()
	for i := uint8(0); i < numSets; i++ {
		numSprites := r.ReadByte()
		first := r.ReadWord()
		glog.V(2).Infof("spriteReplace: set %d replaces %d sprites from slot %d", i, numSprites, first)

		if int(first)+int(numSprites) > originalSpriteEnd {
			l.disableGRF("sprite replacement past the original sprite table", nil)
			return
		}
		for j := uint8(0); j < numSprites; j++ {
			if !l.consumeRecord() {
				l.disableGRF("unexpected end of file", nil)
				return
			}
		}
	}
}
