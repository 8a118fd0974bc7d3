package newgrf

import (
	"github.com/golang/glog"

	"badc0de.net/pkg/go-newgrf/entities"
	"badc0de.net/pkg/go-newgrf/grf"
)

// newSpriteSet decodes a sprite set declaration (action 1). The record is
// followed by numSets*numEnts real sprites, which become the feature's
// current sets and stay addressable until the next declaration for the same
// feature. The extended form with an explicit first set appends to an
// earlier declaration instead of replacing it.
func newSpriteSet(l *Loader, r *grf.Reader) {
	rawFeature := r.ReadByte()
	firstSet := uint16(0)
	numSets := uint16(r.ReadByte())
	if numSets == 0 && r.HasData(3) {
		firstSet = r.ReadExtendedByte()
		numSets = r.ReadExtendedByte()
	}
	numEnts := r.ReadExtendedByte()
	total := int(numSets) * int(numEnts)

	feature, ok := l.resolveFeature(rawFeature)
	if !ok {
		// An unresolved feature with a disabling fallback already set the
		// skip; an ignored one still owns the sprites that follow.
		if l.cur.skipSprites == 0 {
			l.cur.skipSprites = total
		}
		return
	}
	if feature >= entities.GSF_END {
		l.cur.skipSprites = total
		glog.V(1).Infof("newSpriteSet: unsupported feature 0x%02X, skipping %d sprites", uint8(feature), total)
		return
	}

	l.cur.file.addSpriteSets(feature, l.spriteID, firstSet, numSets, numEnts)
	glog.V(7).Infof("newSpriteSet: feature %s, %d sets of %d entries from set %d at sprite %d",
		feature, numSets, numEnts, firstSet, l.spriteID)

	for i := 0; i < total; i++ {
		if _, ok := l.loadNextSprite(); !ok {
			l.disableGRF("unexpected end of file", nil)
			return
		}
	}
}
