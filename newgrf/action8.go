package newgrf

import (
	"github.com/golang/glog"

	"badc0de.net/pkg/go-newgrf/grf"
	"badc0de.net/pkg/go-newgrf/grftext"
)

// scanInfo reads the identity action during the scan stage (action 0x08).
// The scan wants nothing else from the file, so the rest is skipped.
func scanInfo(l *Loader, r *grf.Reader) {
	c := l.cur.cfg
	version := r.ReadByte()
	grfid := r.ReadDWord()
	name := []byte(r.ReadString())

	c.GRFID = grfid
	if version < 2 || version > 8 {
		c.Flags |= GCF_INVALID
		glog.Errorf("%s: grfid %s declares format version %d, which this decoder cannot load",
			c.Path, grf.SwappedLabel(grfid), version)
	}

	// The first byte in reading order is the last one of the doubleword;
	// 0xFF there marks ids reserved for internal use.
	if grfid&0xFF == 0xFF {
		c.Flags |= GCF_SYSTEM
	}

	// A meta info record earlier in the file carries translations; its
	// choice stands over this action's single fallback text.
	if c.Name == "" {
		c.Name = grftext.TranslateTTDPatchCodes(grfid, 0x7F, false, name)
	}
	if r.HasData() {
		if info := []byte(r.ReadString()); c.Info == "" {
			c.Info = grftext.TranslateTTDPatchCodes(grfid, 0x7F, true, info)
		}
	}

	l.cur.skipSprites = -1
}

// grfInfo runs the identity action in the decode stages (action 0x08).
// Until it has run the file counts as not participating in the stage.
func grfInfo(l *Loader, r *grf.Reader) {
	version := r.ReadByte()
	grfid := r.ReadDWord()
	name := r.ReadString()

	c, f := l.cur.cfg, l.cur.file

	if l.stage < GLS_RESERVE && c.Status != GCS_UNKNOWN {
		l.disableGRF("multiple identity actions in one file", nil)
		return
	}
	if version < 2 || version > 8 {
		c.Flags |= GCF_INVALID
		l.disableGRF(builtinErrorMessages[6], nil)
		return
	}

	if f.grfid != grfid {
		glog.Errorf("grfInfo: grfid %s of the decode stages does not match grfid %s of the scan",
			grf.SwappedLabel(grfid), grf.SwappedLabel(f.grfid))
		delete(l.byGRFID, f.grfid)
		f.grfid = grfid
		l.byGRFID[grfid] = f
	}
	f.grfVersion = version

	if l.stage < GLS_RESERVE {
		c.Status = GCS_INITIALISED
	} else {
		c.Status = GCS_ACTIVATED
	}

	palette := "DOS"
	if c.Palette&GRFP_USE_MASK == GRFP_USE_WINDOWS {
		palette = "Windows"
	}
	glog.V(1).Infof("grfInfo: %s is %q, format version %d, %s palette, file version %d",
		grf.SwappedLabel(grfid), name, version, palette, c.Version)
}
