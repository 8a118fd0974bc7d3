package newgrf

import (
	"testing"

	"badc0de.net/pkg/go-newgrf/entities"
	"badc0de.net/pkg/go-newgrf/gtesting"
)

// Meta info node builders. The tag is raw bytes because parameter
// descriptors and value names carry a number in the tag position.

func infoT(tag []byte, lang uint8, text string) []byte {
	rec := append([]byte{'T'}, tag...)
	rec = append(rec, lang)
	rec = append(rec, text...)
	return append(rec, 0)
}

func infoB(tag []byte, payload ...[]byte) []byte {
	var p []byte
	for _, f := range payload {
		p = append(p, f...)
	}
	rec := append([]byte{'B'}, tag...)
	rec = append(rec, word(uint16(len(p)))...)
	return append(rec, p...)
}

func infoC(tag []byte, children ...[]byte) []byte {
	rec := append([]byte{'C'}, tag...)
	for _, child := range children {
		rec = append(rec, child...)
	}
	return append(rec, 0)
}

func action14(nodes ...[]byte) []byte {
	var body []byte
	for _, n := range nodes {
		body = append(body, n...)
	}
	return pseudo([]byte{0x14}, body, []byte{0})
}

func scanOne(t *testing.T, l *Loader, records ...[]byte) *Config {
	t.Helper()
	c, err := l.Scan(writeGRF(t, records...), false)
	if err != nil {
		t.Fatalf("failed to scan: %s", err)
	}
	return c
}

func TestMetaInfoScan(t *testing.T) {
	l := newTestLoader()

	info := infoC([]byte("INFO"),
		infoT([]byte("NAME"), 0x7F, "Test Set"),
		infoB([]byte("NPAR"), []byte{2}),
		// Nodes from a newer vocabulary are skipped structurally.
		infoB([]byte("XXXX"), []byte{1, 2, 3}),
		infoC([]byte("YYYY"), infoT([]byte("ZZZZ"), 0x7F, "junk")),
		infoB([]byte("VRSN"), dword(7)),
		infoB([]byte("MINV"), dword(3)),
		infoT([]byte("PALS"), 0x7F, "D"),
		infoC([]byte("PARA"),
			infoC(dword(0),
				infoT([]byte("NAME"), 0x7F, "First"),
				infoB([]byte("TYPE"), []byte{0}),
				infoB([]byte("LIMI"), dword(0), dword(10)),
				infoB([]byte("MASK"), []byte{1, 0, 8}),
				infoB([]byte("DFLT"), dword(4)),
				infoC([]byte("VALU"), infoT(dword(1), 0x7F, "on")),
			),
		),
	)

	c := scanOne(t, l, action14(info), action8(8, 0x4D464E49, "fallback name"))

	gtesting.AssertEqualString(t, "name", c.Name, "Test Set")
	gtesting.AssertEqualInt(t, "declared parameters", int(c.NumParams), 2)
	gtesting.AssertEqualUint32(t, "version", c.Version, 7)
	gtesting.AssertEqualUint32(t, "min loadable version", c.MinLoadableVersion, 3)
	gtesting.AssertEqualInt(t, "palette", int(c.Palette&GRFP_GRF_MASK), int(GRFP_GRF_DOS))

	if len(c.ParamInfo) < 1 || c.ParamInfo[0] == nil {
		t.Fatalf("parameter 0 has no descriptor")
	}
	p := c.ParamInfo[0]
	gtesting.AssertEqualString(t, "parameter name", p.Name, "First")
	gtesting.AssertEqualInt(t, "parameter type", int(p.Type), 0)
	gtesting.AssertEqualUint32(t, "parameter max", p.MaxValue, 10)
	gtesting.AssertEqualUint32(t, "parameter default", p.DefaultValue, 4)
	gtesting.AssertEqualInt(t, "mask slot", int(p.Param), 1)
	gtesting.AssertEqualInt(t, "mask bits", int(p.NumBits), 8)
	gtesting.AssertEqualString(t, "value name", p.ValueNames[1], "on")
}

func TestMetaInfoFeatureRemap(t *testing.T) {
	l := newTestLoader()

	fidm := infoC([]byte("FIDM"),
		infoC([]byte{0, 0, 0, 0},
			infoT([]byte("NAME"), 0x7F, "road_stops"),
			infoB([]byte("FTID"), []byte{0x60}),
		),
		infoC([]byte{0, 0, 0, 1},
			infoT([]byte("NAME"), 0x7F, "flying_cars"),
			infoB([]byte("FTID"), []byte{0x61}),
			infoB([]byte("FLBK"), []byte{0}),
			infoB([]byte("SETT"), []byte{2}),
		),
	)

	c := scanOne(t, l, action14(fidm), action8(8, 0x4D444946, "remap set"))

	known := c.remaps.features[0x60]
	if known == nil {
		t.Fatalf("feature id 0x60 was not declared")
	}
	gtesting.AssertEqualBool(t, "resolved", known.known, true)
	gtesting.AssertEqualInt(t, "target", int(known.target), int(entities.GSF_ROADSTOPS))

	unknown := c.remaps.features[0x61]
	if unknown == nil {
		t.Fatalf("feature id 0x61 was not declared")
	}
	gtesting.AssertEqualBool(t, "unresolved", unknown.known, false)

	// The entry asked for a success report in parameter 2; an unresolved
	// name reports zero.
	var preset *paramPreset
	for i := range c.remaps.paramPresets {
		if c.remaps.paramPresets[i].slot == 2 {
			preset = &c.remaps.paramPresets[i]
		}
	}
	if preset == nil {
		t.Fatalf("no parameter preset for slot 2")
	}
	gtesting.AssertEqualUint32(t, "preset value", preset.value, 0)
}

func TestMetaInfoRemapDisableNow(t *testing.T) {
	l := newTestLoader()

	fidm := infoC([]byte("FIDM"),
		infoC([]byte{0, 0, 0, 0},
			infoT([]byte("NAME"), 0x7F, "flying_cars"),
			infoB([]byte("FTID"), []byte{0x61}),
			infoB([]byte("FLBK"), []byte{2}),
		),
	)

	// The disable stops the scan before the identity action, so the scan
	// itself reports the missing file id.
	c, err := l.Scan(writeGRF(t, action14(fidm), action8(8, 0x573C4C46, "doomed set")), false)
	if err == nil {
		t.Errorf("scan accepted a file its remap table disables")
	}
	gtesting.AssertEqualInt(t, "status", int(c.Status), int(GCS_DISABLED))
}

func TestIgnoredRemappedProperty(t *testing.T) {
	const grfid = 0x4D503041
	l := newTestLoader()

	a0pm := infoC([]byte("A0PM"),
		infoC([]byte{0, 0, 0, 0},
			infoT([]byte("NAME"), 0x7F, "unknown_future_property"),
			infoB([]byte("FEAT"), []byte{0x00}),
			infoB([]byte("PROP"), []byte{0x90}),
			infoB([]byte("FLBK"), []byte{0}),
		),
	)

	c := loadOne(t, l,
		action14(a0pm),
		action8(8, grfid, "future set"),
		// The remapped property carries its length, so the decoder steps
		// over it and still applies the speed that follows.
		pseudo([]byte{0x00, 0x00, 3, 1, 5, 0x90, 0x02, 0xAA, 0xBB, 0x09}, word(120),
			[]byte{0x15, 0x00}),
	)

	gtesting.AssertEqualInt(t, "status", int(c.Status), int(GCS_ACTIVATED))
	e := trainEngine(t, l, 5, grfid)
	gtesting.AssertEqualInt(t, "speed", int(e.Rail.Speed), 120)
}
