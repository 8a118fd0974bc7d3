package entities

import (
	"testing"

	"badc0de.net/pkg/go-newgrf/gtesting"
)

func TestEnginePoolOriginals(t *testing.T) {
	p := NewEnginePool()

	want := int(116 + 88 + 11 + 41)
	gtesting.AssertEqualInt(t, "preseeded count", p.Len(), want)

	e := p.GetOrCreate(VEH_TRAIN, 5, 0, false)
	if e == nil {
		t.Fatal("original train 5 missing")
	}
	gtesting.AssertEqualInt(t, "original base life", int(e.Info.BaseLife), 40)
	gtesting.AssertEqualBool(t, "original is not a wagon", e.Rail.Flags&RVF_WAGON != 0, false)
}

func TestEnginePoolClaiming(t *testing.T) {
	p := NewEnginePool()
	const grfA = 0x41414141
	const grfB = 0x42424242

	// The first file to define an original internal id claims its slot.
	a := p.GetOrCreate(VEH_TRAIN, 10, grfA, false)
	if a == nil {
		t.Fatal("claim failed")
	}
	gtesting.AssertEqualInt(t, "claim keeps pool size", p.Len(), int(116+88+11+41))

	// The claimer resolves to the same engine again.
	a2 := p.GetOrCreate(VEH_TRAIN, 10, grfA, false)
	gtesting.AssertEqualBool(t, "same engine for claimer", a == a2, true)

	// A second file asking for the same internal id gets a fresh slot.
	b := p.GetOrCreate(VEH_TRAIN, 10, grfB, false)
	if b == nil {
		t.Fatal("allocation failed")
	}
	gtesting.AssertEqualBool(t, "second file gets its own engine", a != b, true)
	gtesting.AssertEqualInt(t, "pool grew", p.Len(), int(116+88+11+41)+1)
}

func TestEnginePoolWagonDefaults(t *testing.T) {
	p := NewEnginePool()

	e := p.GetOrCreate(VEH_TRAIN, 200, 0x41414141, false)
	if e == nil {
		t.Fatal("allocation failed")
	}
	gtesting.AssertEqualInt(t, "new train base life", int(e.Info.BaseLife), 0xFF)
	gtesting.AssertEqualBool(t, "new train defaults to wagon", e.Rail.Flags&RVF_WAGON != 0, true)

	r := p.GetOrCreate(VEH_ROAD, 100, 0x41414141, false)
	if r == nil {
		t.Fatal("allocation failed")
	}
	gtesting.AssertEqualInt(t, "new road vehicle tractive effort", int(r.Road.TractiveEffort), 0x4C)
}

func TestEnginePoolStaticAccess(t *testing.T) {
	p := NewEnginePool()
	const grfA = 0x41414141

	// Static access may inspect an unclaimed original but must not claim it.
	e := p.GetOrCreate(VEH_SHIP, 3, grfA, true)
	if e == nil {
		t.Fatal("static access to original failed")
	}
	gtesting.AssertEqualUint32(t, "slot still unclaimed", uint32(p.GetID(VEH_SHIP, 3, 0)), uint32(e.ID))

	// Static access never allocates.
	if got := p.GetOrCreate(VEH_SHIP, 60, grfA, true); got != nil {
		t.Errorf("static access allocated engine %d", got.ID)
	}
}

func TestEnginePoolOverrides(t *testing.T) {
	p := NewEnginePool()
	const base = 0x42415345
	const addon = 0x41444F4E
	const other = 0x4F544852

	p.AddOverride(addon, base)
	// First registration wins.
	p.AddOverride(addon, other)
	gtesting.AssertEqualUint32(t, "scope follows first override", p.ScopeGRFID(addon), base)
	gtesting.AssertEqualUint32(t, "unrelated scope unchanged", p.ScopeGRFID(other), other)

	// Definitions from both files meet in the same engine.
	e1 := p.GetOrCreate(VEH_TRAIN, 30, p.ScopeGRFID(base), false)
	e2 := p.GetOrCreate(VEH_TRAIN, 30, p.ScopeGRFID(addon), false)
	gtesting.AssertEqualBool(t, "override shares the engine", e1 == e2, true)
}
