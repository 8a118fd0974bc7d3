package newgrf

import (
	"github.com/golang/glog"

	"badc0de.net/pkg/go-newgrf/grf"
	"badc0de.net/pkg/go-newgrf/grftext"
)

// checkGrfLangID reports whether a message in the given language should be
// kept. The decoder presents errors in English only.
func checkGrfLangID(lang, grfVersion uint8) bool {
	if grfVersion < 7 {
		// Bitmask scheme. Bit 0 is American, bit 1 English, bit 7 on its
		// own addresses every language.
		return lang&(0x01|0x02|0x80) != 0
	}
	return lang == grftext.GRFLX_AMERICAN || lang == grftext.GRFLX_ENGLISH || lang == grftext.GRFLX_UNSPECIFIED
}

// grfLoadError records a message the file raises about its own load
// conditions (action 0x0B). Severity 3 also stops the file.
func grfLoadError(l *Loader, r *grf.Reader) {
	severity := r.ReadByte()
	lang := r.ReadByte()
	msgid := r.ReadByte()

	f, c := l.cur.file, l.cur.cfg

	if !checkGrfLangID(lang, f.grfVersion) {
		return
	}

	// Without bit 7 the message only applies to the stages that bind data.
	if severity&0x80 == 0 && l.stage == GLS_INIT {
		glog.V(7).Infof("grfLoadError: skipping non-fatal message in stage %s", l.stage)
		return
	}
	severity &^= 0x80

	if severity >= uint8(len(severityNames)) {
		glog.V(7).Infof("grfLoadError: invalid severity %d, treating as error", severity)
		severity = uint8(SEV_ERROR)
	} else if ErrorSeverity(severity) == SEV_FATAL {
		// Stop the file and drop whatever milder message it recorded
		// earlier, fatal errors must not be shadowed.
		l.disableGRF("", nil)
		c.Error = nil
	}

	if msgid != customMessageID && int(msgid) >= len(builtinErrorMessages) {
		glog.V(7).Infof("grfLoadError: invalid message id 0x%02X", msgid)
		return
	}
	if r.Remaining() <= 1 {
		glog.V(7).Infof("grfLoadError: no message data")
		return
	}

	// Only the first message per file is kept.
	if c.Error != nil {
		return
	}
	e := &LoadError{Severity: ErrorSeverity(severity)}
	c.Error = e

	if msgid == customMessageID {
		e.CustomMessage = grftext.TranslateTTDPatchCodes(f.grfid, lang, true, []byte(r.ReadString()))
	} else {
		e.Message = builtinErrorMessages[msgid]
	}

	if r.HasData() {
		e.Data = grftext.TranslateTTDPatchCodes(f.grfid, lang, true, []byte(r.ReadString()))
	}

	// At most two parameter values can be referenced by the message.
	for i := 0; i < 2 && r.HasData(); i++ {
		e.ParamValues = append(e.ParamValues, f.Param(r.ReadByte()))
	}
}
