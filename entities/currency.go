package entities

import (
	"badc0de.net/pkg/go-newgrf/grftext"
)

// CurrencyID is a raw currency slot as the files address it. The classic
// numbering starts with pound, dollar and euro; ids past the classic table
// are taken as-is.
type CurrencyID uint8

// CurrencySpec collects the display parameters a file overrode for one
// currency. Only the fields a file actually wrote differ from their zero
// values; consumers merge them over their own stock currency table.
type CurrencySpec struct {
	Name      grftext.StringID
	Rate      uint32
	Separator string
	SymbolPos uint8
	Prefix    string
	Suffix    string
	ToEuro    uint16
}

// CurrencyTable holds the per-currency overrides, keyed by the raw slot id.
// Slots no file touched are absent.
type CurrencyTable map[CurrencyID]*CurrencySpec

// Spec returns the override record for a currency, creating it on first use.
func (t CurrencyTable) Spec(id CurrencyID) *CurrencySpec {
	s := t[id]
	if s == nil {
		s = &CurrencySpec{Name: grftext.STR_UNDEFINED}
		t[id] = s
	}
	return s
}
