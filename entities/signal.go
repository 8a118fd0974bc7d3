package entities

import (
	"badc0de.net/pkg/go-newgrf/grftext"
)

// Signal customization. A file either restyles the default signals or
// registers additional named styles, up to MAX_NEW_SIGNAL_STYLES across
// all files.
const MAX_NEW_SIGNAL_STYLES = 15

const (
	SIGNAL_STYLE_NO_ASPECT_INC    uint16 = 1 << 0
	SIGNAL_STYLE_ALWAYS_RESERVE   uint16 = 1 << 1
	SIGNAL_STYLE_LOOKAHEAD_ASPECT uint16 = 1 << 2
	SIGNAL_STYLE_OPPOSITE_SIDE    uint16 = 1 << 3
	SIGNAL_STYLE_COMBINED_NORMAL  uint16 = 1 << 4
	SIGNAL_STYLE_REALISTIC_BRAKE  uint16 = 1 << 5
)

// SignalStyle is one registered signal drawing style.
type SignalStyle struct {
	Props        GRFProps
	LocalID      uint8
	Name         grftext.StringID
	Flags        uint16
	ExtraAspects uint8
}

// SignalStyleList is the global style table. Style 0 is the unnamed
// default style every file may bind graphics to.
type SignalStyleList struct {
	styles []*SignalStyle
}

// NewSignalStyleList returns a list containing only the default style.
func NewSignalStyleList() *SignalStyleList {
	return &SignalStyleList{styles: []*SignalStyle{{Name: grftext.STR_UNDEFINED}}}
}

// Allocate registers a new style for a file. Returns nil when the global
// limit is reached.
func (l *SignalStyleList) Allocate(grfid uint32, localID uint8) *SignalStyle {
	if len(l.styles) > MAX_NEW_SIGNAL_STYLES {
		return nil
	}
	s := &SignalStyle{LocalID: localID, Name: grftext.STR_UNDEFINED}
	s.Props.SetGRF(grfid, uint16(localID))
	l.styles = append(l.styles, s)
	return s
}

// Find returns the style a file registered under a local id, or nil.
func (l *SignalStyleList) Find(grfid uint32, localID uint8) *SignalStyle {
	for _, s := range l.styles[1:] {
		if s.Props.GRFID == grfid && s.LocalID == localID {
			return s
		}
	}
	return nil
}

// Default returns style 0.
func (l *SignalStyleList) Default() *SignalStyle { return l.styles[0] }

// Style returns the style at a global index, or nil.
func (l *SignalStyleList) Style(i int) *SignalStyle {
	if i < 0 || i >= len(l.styles) {
		return nil
	}
	return l.styles[i]
}

// Len returns the number of styles including the default.
func (l *SignalStyleList) Len() int { return len(l.styles) }
