package newgrf

import (
	"github.com/golang/glog"

	"badc0de.net/pkg/go-newgrf/grf"
)

// handler decodes one action's record at one stage. The reader starts
// right after the action byte.
type handler func(*Loader, *grf.Reader)

// actionHandlers maps (action, stage) to behaviour. A nil entry skips the
// record at that stage. Graphics actions are followed by real sprites;
// outside activation those are skipped by count, and during activation the
// handler consumes them itself.
var actionHandlers = [0x15][GLS_END]handler{
	0x00: {GLS_SAFETYSCAN: safeChangeInfo, GLS_RESERVE: reserveChangeInfo, GLS_ACTIVATION: featureChangeInfo},
	0x01: {GLS_FILESCAN: skipAct1, GLS_SAFETYSCAN: skipAct1, GLS_LABELSCAN: skipAct1, GLS_INIT: skipAct1, GLS_RESERVE: skipAct1, GLS_ACTIVATION: newSpriteSet},
	0x02: {GLS_ACTIVATION: newSpriteGroup},
	0x03: {GLS_SAFETYSCAN: grfUnsafe, GLS_ACTIVATION: featureMapSpriteGroup},
	0x04: {GLS_ACTIVATION: featureNewName},
	0x05: {GLS_FILESCAN: skipAct5, GLS_SAFETYSCAN: skipAct5, GLS_LABELSCAN: skipAct5, GLS_INIT: skipAct5, GLS_RESERVE: skipAct5, GLS_ACTIVATION: graphicsNew},
	0x06: {GLS_INIT: cfgApply, GLS_RESERVE: cfgApply, GLS_ACTIVATION: cfgApply},
	0x07: {GLS_RESERVE: skipIf, GLS_ACTIVATION: skipIf},
	0x08: {GLS_FILESCAN: scanInfo, GLS_INIT: grfInfo, GLS_RESERVE: grfInfo, GLS_ACTIVATION: grfInfo},
	0x09: {GLS_INIT: skipIf, GLS_RESERVE: skipIf, GLS_ACTIVATION: skipIf},
	0x0A: {GLS_FILESCAN: skipActA, GLS_SAFETYSCAN: skipActA, GLS_LABELSCAN: skipActA, GLS_INIT: skipActA, GLS_RESERVE: skipActA, GLS_ACTIVATION: spriteReplace},
	0x0B: {GLS_INIT: grfLoadError, GLS_RESERVE: grfLoadError, GLS_ACTIVATION: grfLoadError},
	0x0C: {GLS_INIT: grfComment, GLS_ACTIVATION: grfComment},
	0x0D: {GLS_SAFETYSCAN: safeParamSet, GLS_INIT: paramSet, GLS_RESERVE: paramSet, GLS_ACTIVATION: paramSet},
	0x0E: {GLS_SAFETYSCAN: safeGRFInhibit, GLS_INIT: grfInhibit, GLS_RESERVE: grfInhibit, GLS_ACTIVATION: grfInhibit},
	0x0F: {GLS_SAFETYSCAN: grfUnsafe, GLS_INIT: featureTownName},
	0x10: {GLS_LABELSCAN: defineGotoLabel},
	0x11: {GLS_FILESCAN: skipAct11, GLS_SAFETYSCAN: grfUnsafe, GLS_LABELSCAN: skipAct11, GLS_INIT: grfSound, GLS_RESERVE: skipAct11, GLS_ACTIVATION: grfSound},
	0x12: {GLS_FILESCAN: skipAct12, GLS_SAFETYSCAN: skipAct12, GLS_LABELSCAN: skipAct12, GLS_INIT: skipAct12, GLS_RESERVE: skipAct12, GLS_ACTIVATION: loadFontGlyph},
	0x13: {GLS_ACTIVATION: translateGRFStrings},
	0x14: {GLS_FILESCAN: staticGRFInfo},
}

// grfUnsafe rejects the file during the safety scan.
func grfUnsafe(l *Loader, r *grf.Reader) {
	l.cur.cfg.Flags |= GCF_UNSAFE
	l.cur.skipSprites = -1
}

func grfComment(l *Loader, r *grf.Reader) {
	if !r.HasData() {
		return
	}
	glog.V(2).Infof("grfComment: %q", r.ReadString())
}

// defineGotoLabel collects a conditional jump target. The stored position
// points at the record following the label.
func defineGotoLabel(l *Loader, r *grf.Reader) {
	value := r.ReadByte()
	f := l.cur.file
	f.labels = append(f.labels, gotoLabel{
		label:   value,
		nfoLine: l.cur.nfoLine,
		pos:     l.cur.grf.Pos(),
	})
	glog.V(2).Infof("defineGotoLabel: label 0x%02X at record %d", value, l.cur.nfoLine)
}

// skipAct1 counts the sprites a sprite set declaration is followed by.
func skipAct1(l *Loader, r *grf.Reader) {
	r.ReadByte() // feature
	numSets := uint16(r.ReadByte())
	if numSets == 0 && r.HasData(3) {
		r.ReadExtendedByte() // first set
		numSets = r.ReadExtendedByte()
	}
	numEnts := r.ReadExtendedByte()

	l.cur.skipSprites = int(numSets) * int(numEnts)
	glog.V(3).Infof("skipAct1: skipping %d sprites", l.cur.skipSprites)
}

// skipAct5 counts the sprites of a base graphics replacement.
func skipAct5(l *Loader, r *grf.Reader) {
	r.ReadByte() // type
	l.cur.skipSprites = int(r.ReadExtendedByte())
	glog.V(3).Infof("skipAct5: skipping %d sprites", l.cur.skipSprites)
}

// skipActA counts the sprites of every replacement run.
func skipActA(l *Loader, r *grf.Reader) {
	numSets := r.ReadByte()
	for i := uint8(0); i < numSets; i++ {
		l.cur.skipSprites += int(r.ReadByte())
		r.ReadWord() // first replaced sprite
	}
	glog.V(3).Infof("skipActA: skipping %d sprites", l.cur.skipSprites)
}

// skipAct11 counts the sound effect records.
func skipAct11(l *Loader, r *grf.Reader) {
	l.cur.skipSprites = int(r.ReadWord())
	glog.V(3).Infof("skipAct11: skipping %d sound records", l.cur.skipSprites)
}

// skipAct12 counts the glyph sprites of every range.
func skipAct12(l *Loader, r *grf.Reader) {
	numDefs := r.ReadByte()
	for i := uint8(0); i < numDefs; i++ {
		r.ReadByte() // font size
		l.cur.skipSprites += int(r.ReadByte())
		r.ReadWord() // base character
	}
	glog.V(3).Infof("skipAct12: skipping %d glyph sprites", l.cur.skipSprites)
}
