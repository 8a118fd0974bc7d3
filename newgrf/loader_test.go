package newgrf

import (
	"os"
	"path/filepath"
	"testing"

	"badc0de.net/pkg/go-newgrf/entities"
	"badc0de.net/pkg/go-newgrf/grf"
	"badc0de.net/pkg/go-newgrf/grftext"
	"badc0de.net/pkg/go-newgrf/gtesting"
)

func word(v uint16) []byte  { return []byte{byte(v), byte(v >> 8)} }
func dword(v uint32) []byte { return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)} }

// pseudo frames the concatenated fragments as one version 1 pseudo record.
func pseudo(fragments ...[]byte) []byte {
	var payload []byte
	for _, f := range fragments {
		payload = append(payload, f...)
	}
	rec := append(word(uint16(len(payload))), grf.RECORD_PSEUDO)
	return append(rec, payload...)
}

// sprite frames a minimal uncompressed real sprite record.
func sprite() []byte {
	rec := append(word(9), 0x02)
	return append(rec, make([]byte, 8)...)
}

// grfImage assembles a version 1 container around the records.
func grfImage(records ...[]byte) []byte {
	img := append([]byte{}, word(4)...)
	img = append(img, grf.RECORD_PSEUDO)
	img = append(img, dword(uint32(len(records)))...)
	for _, rec := range records {
		img = append(img, rec...)
	}
	return append(img, word(0)...)
}

func writeGRF(t *testing.T, records ...[]byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.grf")
	if err := os.WriteFile(path, grfImage(records...), 0o644); err != nil {
		t.Fatalf("failed to write container: %s", err)
	}
	return path
}

func newTestLoader() *Loader {
	return NewLoader(entities.NewTables(entities.LT_TEMPERATE), grftext.NewTable(), DefaultEnv())
}

// loadOne scans and loads a single synthesized file.
func loadOne(t *testing.T, l *Loader, records ...[]byte) *Config {
	t.Helper()
	c, err := l.Scan(writeGRF(t, records...), false)
	if err != nil {
		t.Fatalf("failed to scan: %s", err)
	}
	if err := l.Load([]*Config{c}); err != nil {
		t.Fatalf("failed to load: %s", err)
	}
	return c
}

// action8 builds an identity record.
func action8(version uint8, grfid uint32, name string) []byte {
	return pseudo([]byte{0x08, version}, dword(grfid), []byte(name), []byte{0})
}

func trainEngine(t *testing.T, l *Loader, internal uint16, grfid uint32) *entities.Engine {
	t.Helper()
	id := l.Tables.Engines.GetID(entities.VEH_TRAIN, internal, grfid)
	if id == entities.INVALID_ENGINE {
		t.Fatalf("engine %d of %08X was never allocated", internal, grfid)
	}
	return l.Tables.Engines.Engine(id)
}

func TestRailVehicleProperties(t *testing.T) {
	const grfid = 0x01234567
	l := newTestLoader()

	c := loadOne(t, l,
		action8(8, grfid, "rail test"),
		pseudo([]byte{0x00, 0x00, 3, 1, 5, 0x09}, word(200),
			[]byte{0x0B}, word(1000),
			[]byte{0x15, 0x00}),
	)

	gtesting.AssertEqualInt(t, "status", int(c.Status), int(GCS_ACTIVATED))
	e := trainEngine(t, l, 5, grfid)
	gtesting.AssertEqualInt(t, "speed", int(e.Rail.Speed), 200)
	gtesting.AssertEqualInt(t, "power", int(e.Rail.Power), 1000)
	gtesting.AssertEqualInt(t, "wagon flag cleared", int(e.Rail.Flags&entities.RVF_WAGON), 0)
	gtesting.AssertEqualInt(t, "default cargo", int(e.Info.CargoType), 0)
}

func TestRailVehicleSpeedSentinel(t *testing.T) {
	const grfid = 0x01234568
	l := newTestLoader()

	loadOne(t, l,
		action8(8, grfid, "no speed limit"),
		pseudo([]byte{0x00, 0x00, 2, 1, 9, 0x09}, word(0xFFFF), []byte{0x15, 0x00}),
	)

	e := trainEngine(t, l, 9, grfid)
	gtesting.AssertEqualInt(t, "speed", int(e.Rail.Speed), 0)
}

func TestCargoTranslationTable(t *testing.T) {
	const grfid = 0x44434241
	l := newTestLoader()

	loadOne(t, l,
		action8(8, grfid, "cargo test"),
		pseudo([]byte{0x00, 0x08, 1, 2, 0, 0x09}, []byte("PASSMAIL")),
		pseudo([]byte{0x00, 0x00, 2, 1, 5, 0x15, 0x01, 0x0B}, word(500)),
		pseudo([]byte{0x00, 0x00, 2, 1, 6, 0x15, 0x05, 0x0B}, word(500)),
	)

	// Index 1 of the file's table is MAIL, slot 2 in the temperate set.
	e := trainEngine(t, l, 5, grfid)
	gtesting.AssertEqualInt(t, "translated cargo", int(e.Info.CargoType), 2)

	// Index 5 is outside the two-entry table; with nothing to carry the
	// engine ends up unavailable.
	bad := trainEngine(t, l, 6, grfid)
	gtesting.AssertEqualInt(t, "invalid cargo", int(bad.Info.CargoType), int(entities.INVALID_CARGO))
	gtesting.AssertEqualInt(t, "availability", int(bad.Info.ClimateAvailability), 0)
}

func TestSkipOnOtherFileState(t *testing.T) {
	const grfid = 0x11223344
	l := newTestLoader()
	absent := dword(0x99887766)

	c := loadOne(t, l,
		action8(8, grfid, "skip test"),
		// An activation test against a file outside the load set says
		// nothing, so no skip happens and the next record applies.
		pseudo([]byte{0x07, 0x88, 4, 0x06}, absent, []byte{1}),
		pseudo([]byte{0x00, 0x00, 2, 1, 5, 0x09}, word(100), []byte{0x15, 0x00}),
		// The not-loaded-at-all test is answerable and true, skipping the
		// record that would lower the speed.
		pseudo([]byte{0x07, 0x88, 4, 0x0A}, absent, []byte{1}),
		pseudo([]byte{0x00, 0x00, 1, 1, 5, 0x09}, word(50)),
	)

	gtesting.AssertEqualInt(t, "status", int(c.Status), int(GCS_ACTIVATED))
	e := trainEngine(t, l, 5, grfid)
	gtesting.AssertEqualInt(t, "speed", int(e.Rail.Speed), 100)
}

func TestCanalSlotOutOfRange(t *testing.T) {
	const grfid = 0x31313131
	l := newTestLoader()

	c := loadOne(t, l,
		action8(8, grfid, "canal test"),
		pseudo([]byte{0x00, 0x05, 1, 3, 7, 0x08, 0x01, 0x01, 0x01}),
	)

	gtesting.AssertEqualInt(t, "status", int(c.Status), int(GCS_DISABLED))
	if c.Error == nil {
		t.Fatalf("expected a load error")
	}
	gtesting.AssertEqualString(t, "message", c.Error.Message, "invalid entity id")
}

func TestTranslateGRFStrings(t *testing.T) {
	const (
		grfidA = 0x41414141
		grfidB = 0x42424242
	)
	l := newTestLoader()

	pathA := writeGRF(t, action8(8, grfidA, "base set"))
	pathB := writeGRF(t,
		action8(8, grfidB, "translation set"),
		pseudo([]byte{0x13}, dword(grfidA), []byte{0x7F, 1}, word(0xD000),
			[]byte("Translated"), []byte{0}),
	)

	ca, err := l.Scan(pathA, false)
	if err != nil {
		t.Fatalf("failed to scan: %s", err)
	}
	cb, err := l.Scan(pathB, false)
	if err != nil {
		t.Fatalf("failed to scan: %s", err)
	}
	if err := l.Load([]*Config{ca, cb}); err != nil {
		t.Fatalf("failed to load: %s", err)
	}

	id := l.Strings.GetStringID(grfidA, 0xD000)
	if id == grftext.STR_UNDEFINED {
		t.Fatalf("string 0xD000 was not registered for the target file")
	}
	text, ok := l.Strings.GetString(id, 0x7F)
	gtesting.AssertEqualBool(t, "resolvable", ok, true)
	gtesting.AssertEqualString(t, "text", text, "Translated")
}

func TestSoundEffects(t *testing.T) {
	const grfid = 0x53535353
	l := newTestLoader()
	sample := []byte{0xFF, 0x00, 1, 2, 3, 4, 5, 6, 7, 8}

	c := loadOne(t, l,
		action8(8, grfid, "sound test"),
		pseudo([]byte{0x11}, word(1)),
		pseudo(sample),
	)

	gtesting.AssertEqualInt(t, "status", int(c.Status), int(GCS_ACTIVATED))
	gtesting.AssertEqualInt(t, "pool size", l.Tables.Sounds.Len(), entities.ORIGINAL_SAMPLE_COUNT+1)
	entry := l.Tables.Sounds.Entry(entities.SoundID(entities.ORIGINAL_SAMPLE_COUNT))
	gtesting.AssertEqualUint32(t, "owner", entry.GRFID, grfid)
	gtesting.AssertEqualUint32(t, "sample size", entry.Size, 8)
	if entry.Offset <= 0 {
		t.Errorf("sample offset %d, want a position inside the container", entry.Offset)
	}
}

func TestFontGlyphs(t *testing.T) {
	const grfid = 0x46464646
	l := newTestLoader()

	c := loadOne(t, l,
		action8(8, grfid, "glyph test"),
		pseudo([]byte{0x12, 1, FONT_NORMAL, 2}, word(0x41)),
		sprite(),
		sprite(),
	)

	gtesting.AssertEqualInt(t, "status", int(c.Status), int(GCS_ACTIVATED))
	files := l.Files()
	if len(files) != 1 {
		t.Fatalf("got %d files, want 1", len(files))
	}
	glyphs := files[0].glyphs
	if len(glyphs) != 1 {
		t.Fatalf("got %d glyph ranges, want 1", len(glyphs))
	}
	gtesting.AssertEqualInt(t, "font size", int(glyphs[0].FontSize), int(FONT_NORMAL))
	gtesting.AssertEqualInt(t, "base char", int(glyphs[0].BaseChar), 0x41)
	gtesting.AssertEqualInt(t, "glyph count", int(glyphs[0].NumChars), 2)
}
