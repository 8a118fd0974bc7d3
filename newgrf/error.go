package newgrf

import (
	"github.com/golang/glog"
)

// ErrorSeverity grades a file's self-reported load error.
type ErrorSeverity uint8

const (
	SEV_INFO ErrorSeverity = iota
	SEV_WARNING
	SEV_ERROR
	SEV_FATAL
)

var severityNames = []string{"info", "warning", "error", "fatal"}

func (s ErrorSeverity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "invalid"
}

// Built-in error message templates an action 0B can select by id. The
// placeholders are substituted from the file name and the message data.
var builtinErrorMessages = []string{
	"%s requires at least TTDPatch version %s",
	"%s is for the %s version of TTD",
	"%s is designed to be used with %s",
	"invalid parameter for %s: parameter %s",
	"%s must be loaded before %s",
	"%s must be loaded after %s",
	"%s requires a newer version of this decoder",
}

// The message id selecting a custom text instead of a built-in template.
const customMessageID uint8 = 0xFF

// LoadError is one error a file reported about itself, or that the decoder
// raised on its behalf. Only the first error per file is kept.
type LoadError struct {
	Severity ErrorSeverity

	// Message is the built-in template or decoder-supplied text;
	// CustomMessage the file's own translated text when it used one.
	Message       string
	CustomMessage string

	// Data is the extra text operand of the message, already translated.
	Data string

	// Values of the parameters named by the message, at most two.
	ParamValues []uint32
}

func (e *LoadError) String() string {
	msg := e.Message
	if e.CustomMessage != "" {
		msg = e.CustomMessage
	}
	return msg
}

// disableGRF stops a file for the rest of the load. When the file is the
// one currently being decoded, the remainder of its record stream is
// skipped. A non-empty message becomes the file's error unless a fatal
// error is already recorded; the created error is returned for the caller
// to attach operands.
func (l *Loader) disableGRF(message string, c *Config) *LoadError {
	if c == nil {
		c = l.cur.cfg
	}
	c.Status = GCS_DISABLED
	if f := l.byGRFID[c.GRFID]; f != nil {
		f.clearTemporaryData()
	}
	if c == l.cur.cfg {
		l.cur.skipSprites = -1
	}
	glog.Errorf("%s: disabled: %s", c.GetName(), message)

	if message == "" {
		return nil
	}
	c.Error = &LoadError{Severity: SEV_FATAL, Message: message}
	return c.Error
}

// disableStaticInfluence disables a static file whose presence a
// synchronized file tried to observe. Letting the test see the static file
// would make the load depend on local-only configuration.
func (l *Loader) disableStaticInfluence(c *Config) {
	glog.Errorf("%s: static file influences synchronized files; disabling it", c.GetName())
	l.disableGRF("static file influences the synchronized load", c)
}
