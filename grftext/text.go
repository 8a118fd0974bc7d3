// Package grftext implements decoding and storage of NewGRF strings.
//
// This includes translation of TTDPatch text codes into readable UTF-8 text
// and a registry mapping each file's own string identifiers to host string
// table slots.
package grftext

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/golang/glog"
	"golang.org/x/text/encoding/charmap"
)

// The UTF-8 identifier: a GRF string starting with a capital thorn is
// interpreted as UTF-8 text instead of legacy Latin-1.
const utf8Identifier = 0x00DE

// legacyCharset decodes plain bytes of strings that do not carry the UTF-8
// identifier. TTD's original charset is Latin-1 with a handful of private
// symbols; the two relocated Windows codepoints are handled before this
// table applies.
var legacyCharset = charmap.ISO8859_1

// colourNames follows the palette order of the 0x88..0x99 text colour codes.
var colourNames = []string{
	"BLUE", "SILVER", "GOLD", "RED", "PURPLE", "LTBROWN", "ORANGE", "GREEN",
	"YELLOW", "DKGREEN", "CREAM", "BROWN", "WHITE", "LTBLUE", "GRAY",
	"DKBLUE", "BLACK", "GREY2",
}

// TranslateTTDPatchCodes decodes a raw GRF string into UTF-8 text.
//
// Control codes are rendered as braced tags such as {WORD_U} or {BIGFONT} so
// the result remains printable; codes that carry inline arguments consume
// them from the raw bytes. A newline code in a string that does not allow
// newlines is dropped with a warning. A string truncated in the middle of a
// code loses the code but keeps the text before it.
func TranslateTTDPatchCodes(grfid uint32, langID uint8, allowNewlines bool, raw []byte) string {
	if len(raw) == 0 {
		return ""
	}

	src := raw
	unicode := false
	if r, n := utf8.DecodeRune(src); r == utf8Identifier {
		unicode = true
		src = src[n:]
	}

	var dst strings.Builder
	for len(src) > 0 {
		var c rune
		if n := utf8ByteLen(src[0]); unicode && n != 0 {
			r, size := utf8.DecodeRune(src)
			if r == utf8.RuneError && size <= 1 {
				glog.Warningf("TranslateTTDPatchCodes: grf %08X: invalid UTF-8 sequence, using ?", grfid)
				c, size = '?', 1
			} else {
				c = r
			}
			src = src[size:]
		} else {
			c = rune(src[0])
			src = src[1:]
		}

		switch {
		case c == 0x01: // set X offset
			if len(src) < 1 {
				goto stringEnd
			}
			src = src[1:]
			dst.WriteByte(' ')
		case c == 0x0D:
			if allowNewlines {
				dst.WriteByte(0x0A)
			} else {
				glog.Warningf("TranslateTTDPatchCodes: grf %08X: newline in string that does not allow one (lang 0x%02X)", grfid, langID)
			}
		case c == 0x0E:
			dst.WriteString("{TINYFONT}")
		case c == 0x0F:
			dst.WriteString("{BIGFONT}")
		case c == 0x1F: // set X and Y offset
			if len(src) < 2 {
				goto stringEnd
			}
			src = src[2:]
			dst.WriteByte(' ')
		case c == 0x7B:
			dst.WriteString("{DWORD_S}")
		case c == 0x7C:
			dst.WriteString("{WORD_S}")
		case c == 0x7D:
			dst.WriteString("{BYTE_S}")
		case c == 0x7E:
			dst.WriteString("{WORD_U}")
		case c == 0x7F:
			dst.WriteString("{CURRENCY}")
		case c == 0x80:
			dst.WriteString("{STRING_STACK}")
		case c == 0x81: // inline string reference
			if len(src) < 2 {
				goto stringEnd
			}
			id := uint16(src[0]) | uint16(src[1])<<8
			src = src[2:]
			fmt.Fprintf(&dst, "{STRINL 0x%04X}", id)
		case c == 0x82:
			dst.WriteString("{DATE_LONG}")
		case c == 0x83:
			dst.WriteString("{DATE_SHORT}")
		case c == 0x84:
			dst.WriteString("{VELOCITY}")
		case c == 0x85:
			dst.WriteString("{DISCARD_WORD}")
		case c == 0x86:
			dst.WriteString("{ROTATE_STACK}")
		case c == 0x87:
			dst.WriteString("{VOLUME_LONG}")
		case c >= 0x88 && c <= 0x99:
			fmt.Fprintf(&dst, "{%s}", colourNames[c-0x88])
		case c == 0x9A:
			var ok bool
			src, ok = translateExtendedCode(&dst, grfid, src)
			if !ok {
				goto stringEnd
			}
		case c == 0x9E:
			dst.WriteRune('€')
		case c == 0x9F:
			dst.WriteRune('Ÿ')
		case c < 0x20:
			glog.V(2).Infof("TranslateTTDPatchCodes: grf %08X: unknown control code 0x%02X", grfid, c)
			dst.WriteByte('?')
		default:
			if unicode {
				dst.WriteRune(c)
			} else {
				dst.WriteRune(legacyCharset.DecodeByte(byte(c)))
			}
		}
	}
	return dst.String()

stringEnd:
	glog.Warningf("TranslateTTDPatchCodes: grf %08X: string ends in the middle of a control code", grfid)
	return dst.String()
}

// translateExtendedCode handles one 0x9A xx extended format code. It returns
// the remaining input and false if the input ended inside the code.
func translateExtendedCode(dst *strings.Builder, grfid uint32, src []byte) ([]byte, bool) {
	if len(src) < 1 {
		return src, false
	}
	code := src[0]
	src = src[1:]

	// Argument widths of the codes that carry inline bytes.
	var arg uint16
	switch code {
	case 0x03: // push word onto the text stack
		if len(src) < 2 {
			return src, false
		}
		arg = uint16(src[0]) | uint16(src[1])<<8
		src = src[2:]
	case 0x04, 0x0E, 0x0F, 0x10, 0x11, 0x15: // byte argument
		if len(src) < 1 {
			return src, false
		}
		arg = uint16(src[0])
		src = src[1:]
	}

	switch code {
	case 0x00, 0x01:
		dst.WriteString("{CURRENCY64}")
	case 0x03:
		fmt.Fprintf(dst, "{PUSH_WORD 0x%04X}", arg)
	case 0x04:
		fmt.Fprintf(dst, "{UNPRINT %d}", arg)
	case 0x06:
		dst.WriteString("{BYTE_HEX}")
	case 0x07:
		dst.WriteString("{WORD_HEX}")
	case 0x08:
		dst.WriteString("{DWORD_HEX}")
	case 0x0B:
		dst.WriteString("{QWORD_HEX}")
	case 0x0C:
		dst.WriteString("{STATION_NAME}")
	case 0x0D:
		dst.WriteString("{WEIGHT_LONG}")
	case 0x0E:
		fmt.Fprintf(dst, "{GENDER %d}", arg)
	case 0x0F:
		fmt.Fprintf(dst, "{CASE %d}", arg)
	case 0x10:
		fmt.Fprintf(dst, "{CHOICE_LIST 0x%02X}", arg)
	case 0x11:
		fmt.Fprintf(dst, "{CHOICE 0x%02X}", arg)
	case 0x12:
		dst.WriteString("{END_CHOICE_LIST}")
	case 0x13:
		dst.WriteString("{GENDER_LIST}")
	case 0x14:
		dst.WriteString("{CASE_LIST}")
	case 0x15:
		fmt.Fprintf(dst, "{CHOICE_DEFAULT 0x%02X}", arg)
	case 0x16:
		dst.WriteString("{DATE32_LONG}")
	case 0x17:
		dst.WriteString("{DATE32_SHORT}")
	case 0x18:
		dst.WriteString("{POWER}")
	case 0x19:
		dst.WriteString("{VOLUME_SHORT}")
	case 0x1A:
		dst.WriteString("{WEIGHT_SHORT}")
	case 0x1B:
		dst.WriteString("{CARGO_LONG}")
	case 0x1C:
		dst.WriteString("{CARGO_SHORT}")
	case 0x1D:
		dst.WriteString("{CARGO_TINY}")
	case 0x1E:
		dst.WriteString("{CARGO_NAME}")
	default:
		glog.Warningf("translateExtendedCode: grf %08X: unknown extended code 0x%02X", grfid, code)
		fmt.Fprintf(dst, "{EXT 0x%02X}", code)
	}
	return src, true
}

// utf8ByteLen returns the encoded length implied by a UTF-8 lead byte, or 0
// when the byte cannot start a sequence.
func utf8ByteLen(b byte) int {
	switch {
	case b < 0x80:
		return 1
	case b < 0xC0:
		return 0
	case b < 0xE0:
		return 2
	case b < 0xF0:
		return 3
	case b < 0xF8:
		return 4
	default:
		return 0
	}
}
