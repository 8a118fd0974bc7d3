package newgrf

import (
	"github.com/golang/glog"

	"badc0de.net/pkg/go-newgrf/grf"
)

// safeGRFInhibit rejects files that deactivate anything but themselves
// during the safety scan.
func safeGRFInhibit(l *Loader, r *grf.Reader) {
	num := r.ReadByte()
	for i := uint8(0); i < num; i++ {
		grfid := r.ReadDWord()
		if grfid != l.cur.cfg.GRFID {
			l.cur.cfg.Flags |= GCF_UNSAFE
			l.cur.skipSprites = -1
			return
		}
	}
}

// grfInhibit deactivates the listed files (action 0x0E).
func grfInhibit(l *Loader, r *grf.Reader) {
	num := r.ReadByte()
	for i := uint8(0); i < num; i++ {
		grfid := r.ReadDWord()
		c := l.GetGRFConfig(grfid, 0xFFFFFFFF)
		if c == nil || c == l.cur.cfg {
			continue
		}
		glog.V(2).Infof("grfInhibit: deactivating %s", c.GetName())
		if e := l.disableGRF("forcefully disabled", c); e != nil {
			e.Data = l.cur.cfg.GetName()
		}
	}
}
