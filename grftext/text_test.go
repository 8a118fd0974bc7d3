package grftext

import (
	"testing"

	"badc0de.net/pkg/go-newgrf/gtesting"
)

const testGRFID = 0x11223344

func TestTranslateLegacyCharset(t *testing.T) {
	got := TranslateTTDPatchCodes(testGRFID, GRFLX_UNSPECIFIED, false, []byte{'C', 'a', 'f', 0xE9})
	gtesting.AssertEqualString(t, "latin-1 byte decoded", got, "Café")

	got = TranslateTTDPatchCodes(testGRFID, GRFLX_UNSPECIFIED, false, []byte{0x9E, ' ', '5', 0x9F})
	gtesting.AssertEqualString(t, "relocated codepoints", got, "€ 5Ÿ")
}

func TestTranslateUnicodeMarker(t *testing.T) {
	raw := append([]byte{0xC3, 0x9E}, []byte("Škoda 4ŘE")...)
	got := TranslateTTDPatchCodes(testGRFID, GRFLX_UNSPECIFIED, false, raw)
	gtesting.AssertEqualString(t, "utf-8 body kept", got, "Škoda 4ŘE")

	// An invalid sequence after the marker degrades to a question mark.
	raw = []byte{0xC3, 0x9E, 'a', 0xC3, 'b'}
	got = TranslateTTDPatchCodes(testGRFID, GRFLX_UNSPECIFIED, false, raw)
	gtesting.AssertEqualString(t, "invalid utf-8 replaced", got, "a?b")
}

func TestTranslateControlCodes(t *testing.T) {
	cases := []struct {
		name          string
		raw           []byte
		allowNewlines bool
		want          string
	}{
		{"newline allowed", []byte{'a', 0x0D, 'b'}, true, "a\nb"},
		{"newline dropped", []byte{'a', 0x0D, 'b'}, false, "ab"},
		{"set x offset", []byte{0x01, 0x05, 'x'}, false, " x"},
		{"set xy offset", []byte{0x1F, 0x05, 0x02, 'x'}, false, " x"},
		{"fonts", []byte{0x0E, 'a', 0x0F}, false, "{TINYFONT}a{BIGFONT}"},
		{"stack prints", []byte{0x7E, 0x7B}, false, "{WORD_U}{DWORD_S}"},
		{"inline string", []byte{'A', 0x81, 0x34, 0x12, 'B'}, false, "A{STRINL 0x1234}B"},
		{"colour", []byte{0x88, 'c', 0x94}, false, "{BLUE}c{WHITE}"},
		{"extended push word", []byte{'X', 0x9A, 0x03, 0x10, 0x00}, false, "X{PUSH_WORD 0x0010}"},
		{"extended power", []byte{0x9A, 0x18}, false, "{POWER}"},
		{"extended unknown", []byte{0x9A, 0x52}, false, "{EXT 0x52}"},
		{"truncated code keeps prefix", []byte{'A', 0x81, 0x34}, false, "A"},
		{"stray low byte", []byte{'a', 0x05, 'b'}, false, "a?b"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := TranslateTTDPatchCodes(testGRFID, GRFLX_UNSPECIFIED, c.allowNewlines, c.raw)
			if got != c.want {
				t.Errorf("got %q; want %q", got, c.want)
			}
		})
	}
}

func TestTableAddAndResolve(t *testing.T) {
	tbl := NewTable()

	id := tbl.AddString(testGRFID, 0xD4AB, GRFLX_GERMAN, true, false, []byte("Hallo"))
	if id != TAB_NEWGRF_START {
		t.Fatalf("first slot = 0x%X; want 0x%X", id, TAB_NEWGRF_START)
	}
	id2 := tbl.AddString(testGRFID, 0xD4AB, GRFLX_UNSPECIFIED, true, false, []byte("Hello"))
	gtesting.AssertEqualInt(t, "translation shares slot", int(id2), int(id))
	gtesting.AssertEqualInt(t, "one slot allocated", tbl.Len(), 1)

	got, ok := tbl.GetString(id, GRFLX_GERMAN)
	if !ok || got != "Hallo" {
		t.Errorf("german text = %q, %t; want Hallo", got, ok)
	}
	got, ok = tbl.GetString(id, GRFLX_FRENCH)
	if !ok || got != "Hello" {
		t.Errorf("fallback text = %q, %t; want Hello", got, ok)
	}

	// Same language again replaces the text in place.
	tbl.AddString(testGRFID, 0xD4AB, GRFLX_GERMAN, true, false, []byte("Moin"))
	got, _ = tbl.GetString(id, GRFLX_GERMAN)
	gtesting.AssertEqualString(t, "replacement", got, "Moin")
	gtesting.AssertEqualInt(t, "still one slot", tbl.Len(), 1)
}

func TestTableLegacyLanguageBits(t *testing.T) {
	tbl := NewTable()

	// Any English bit folds the whole mask into the English text.
	id := tbl.AddString(testGRFID, 0xD000, 0x03, false, false, []byte("name"))
	got, ok := tbl.GetString(id, GRFLX_ENGLISH)
	if !ok || got != "name" {
		t.Errorf("english text = %q, %t; want name", got, ok)
	}

	// Without it, each set bit adds its own translation.
	id = tbl.AddString(testGRFID, 0xD001, grflbGerman|grflbFrench, false, false, []byte("nom"))
	for _, lang := range []uint8{GRFLX_GERMAN, GRFLX_FRENCH} {
		if got, _ := tbl.GetString(id, lang); got != "nom" {
			t.Errorf("lang 0x%02X text = %q; want nom", lang, got)
		}
	}
	if _, ok := tbl.GetString(STR_UNDEFINED, GRFLX_ENGLISH); ok {
		t.Errorf("undefined id resolved")
	}
}

func TestMapGRFStringID(t *testing.T) {
	tbl := NewTable()
	id := tbl.AddString(testGRFID, 0xD4AB, GRFLX_UNSPECIFIED, true, false, []byte("x"))

	gtesting.AssertEqualInt(t, "text window binds to table",
		int(tbl.MapGRFStringID(testGRFID, 0xD4AB)), int(id))
	gtesting.AssertEqualInt(t, "undefined window id",
		int(tbl.MapGRFStringID(testGRFID, 0xDCFF)), int(STR_UNDEFINED))
	gtesting.AssertEqualInt(t, "base game id passes through",
		int(tbl.MapGRFStringID(testGRFID, 0x0401)), 0x0401)
}
