package newgrf

import (
	"github.com/golang/glog"

	"badc0de.net/pkg/go-newgrf/grf"
	"badc0de.net/pkg/go-newgrf/grftext"
)

// translateGRFStrings registers texts for another file's string ids (action
// 0x13). Only the file-local windows can be targeted; the texts land in the
// string table under the target file's id so its own references pick them
// up.
func translateGRFStrings(l *Loader, r *grf.Reader) {
	grfid := r.ReadDWord()

	c := l.GetGRFConfig(grfid, 0xFFFFFFFF)
	if c == nil || c.Status == GCS_DISABLED || c.Status == GCS_NOT_FOUND {
		glog.V(7).Infof("translateGRFStrings: target grf %s not loaded, skipping", grf.SwappedLabel(grfid))
		return
	}

	// Before version 8 the records carried no language byte; their texts
	// applied to every language.
	lang := uint8(0x7F)
	if l.cur.file.grfVersion >= 8 {
		lang = r.ReadByte()
	}

	num := uint16(r.ReadByte())
	firstID := r.ReadWord()

	if !((firstID >= 0xD000 && firstID+num <= 0xD400) || (firstID >= 0xD800 && firstID+num <= 0xE000)) {
		glog.V(1).Infof("translateGRFStrings: invalid id range 0x%04X+%d, ignoring", firstID, num)
		return
	}

	for id := firstID; id < firstID+num && r.HasData(); id++ {
		text := []byte(r.ReadString())
		if len(text) == 0 {
			glog.V(7).Infof("translateGRFStrings: ignoring empty text for id 0x%04X", id)
			continue
		}
		l.Strings.AddString(grfid, grftext.GRFStringID(id), lang, true, true, text)
	}
}
