package newgrf

import (
	"github.com/golang/glog"

	"badc0de.net/pkg/go-newgrf/grf"
	"badc0de.net/pkg/go-newgrf/grftext"
)

// featureTownName collects one town name definition (action 0x0F).
// Intermediate definitions only feed later ones; a definition with bit 7
// set is final and carries the style name players pick.
func featureTownName(l *Loader, r *grf.Reader) {
	f := l.cur.file
	grfid := f.grfid
	if f.townNames == nil {
		f.townNames = &townNames{}
	}
	tn := f.townNames

	id := r.ReadByte()
	glog.V(6).Infof("featureTownName: definition 0x%02X", id&0x7F)

	if id&0x80 != 0 {
		id &^= 0x80
		newScheme := f.grfVersion >= 7

		style := grftext.STR_UNDEFINED
		lang := r.ReadByte()
		for {
			lang &^= 0x80
			name := []byte(r.ReadString())
			style = l.Strings.AddString(grfid, grftext.GRFStringID(id), lang, newScheme, false, name)
			lang = r.ReadByte()
			if lang == 0 {
				break
			}
		}
		tn.Styles = append(tn.Styles, townNameStyle{ID: id, Name: style})
	}

	parts := r.ReadByte()
	glog.V(6).Infof("featureTownName: %d parts", parts)

	for partnum := uint8(0); partnum < parts; partnum++ {
		texts := r.ReadByte()
		pl := townNamePartList{
			BitStart: r.ReadByte(),
			BitCount: r.ReadByte(),
		}
		glog.V(6).Infof("featureTownName: part %d holds %d texts keyed by seed bits %d+%d",
			partnum, texts, pl.BitStart, pl.BitCount)

		for textnum := uint8(0); textnum < texts; textnum++ {
			prob := r.ReadByte()
			if prob&0x80 != 0 {
				// Reference to an earlier definition of this file.
				ref := r.ReadByte()
				if ref >= TOWN_NAME_LISTS || len(tn.Lists[ref]) == 0 {
					glog.Errorf("featureTownName: definition 0x%02X does not exist, disabling", ref)
					f.townNames = nil
					l.disableGRF("invalid entity id", nil)
					return
				}
				glog.V(6).Infof("featureTownName: part %d text %d refers to definition 0x%02X", partnum, textnum, ref)
				pl.Parts = append(pl.Parts, townNamePart{Prob: prob, Ref: ref, IsRef: true})
			} else {
				text := grftext.TranslateTTDPatchCodes(grfid, 0, false, []byte(r.ReadString()))
				pl.Parts = append(pl.Parts, townNamePart{Prob: prob, Text: text})
			}
		}
		tn.Lists[id] = append(tn.Lists[id], pl)
	}
}
