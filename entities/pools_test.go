package entities

import (
	"testing"

	"badc0de.net/pkg/go-newgrf/grf"
	"badc0de.net/pkg/go-newgrf/gtesting"
)

func TestHousePoolOverrides(t *testing.T) {
	p := NewHousePool()
	gtesting.AssertEqualInt(t, "original count", p.Len(), ORIGINAL_HOUSES)

	first := &HouseSpec{SubstituteID: 4, OverrideID: 4, Enabled: true}
	first.Props.SetGRF(0x41414141, 0)
	second := &HouseSpec{SubstituteID: 4, OverrideID: 4, Enabled: true}
	second.Props.SetGRF(0x42424242, 0)
	p.Append(first)
	p.Append(second)

	p.ResolveOverrides()

	gtesting.AssertEqualUint32(t, "first override wins", p.Spec(4).Props.GRFID, 0x41414141)
	gtesting.AssertEqualBool(t, "other originals untouched", p.Spec(5).Props.HasGRF(), false)
}

func TestStationClassList(t *testing.T) {
	l := NewStationClassList()

	gtesting.AssertEqualInt(t, "preseeded classes", l.Len(), 2)
	gtesting.AssertEqualString(t, "class 0", l.Label(0).String(), "DFLT")
	gtesting.AssertEqualString(t, "class 1", l.Label(1).String(), "WAYP")

	id := l.Allocate(grf.MakeLabel("CITY"))
	gtesting.AssertEqualInt(t, "new class", int(id), 2)
	gtesting.AssertEqualInt(t, "allocate is idempotent", int(l.Allocate(grf.MakeLabel("CITY"))), 2)

	spec := &StationSpec{Class: id}
	l.Insert(spec)
	gtesting.AssertEqualInt(t, "inserted design", len(l.Specs(id)), 1)
}

func TestBadgeRegistry(t *testing.T) {
	r := NewBadgeRegistry()

	flag := r.GetOrCreate("flag")
	nl := r.GetOrCreate("flag/nl")
	de := r.GetOrCreate("flag/de")

	gtesting.AssertEqualInt(t, "class badge is its own class", int(flag.Class), int(flag.Index))
	gtesting.AssertEqualInt(t, "nl in flag class", int(nl.Class), int(flag.Index))
	gtesting.AssertEqualInt(t, "de in flag class", int(de.Class), int(flag.Index))

	gtesting.AssertEqualBool(t, "intern is stable", r.GetOrCreate("flag/nl") == nl, true)
	gtesting.AssertEqualBool(t, "lookup misses unknown", r.Lookup("era/steam") == nil, true)

	// Interning a subordinate label first still creates the class badge.
	era := r.GetOrCreate("era/steam")
	gtesting.AssertEqualString(t, "implied class", r.Badge(era.Class).Label, "era")
}

func TestPriceTable(t *testing.T) {
	pt := NewPriceTable()

	base := pt.Cost(PR_BUILD_VEHICLE_TRAIN)
	pt.ApplyMultiplier(PR_BUILD_VEHICLE_TRAIN, 2)
	gtesting.AssertEqualBool(t, "doubled twice", pt.Cost(PR_BUILD_VEHICLE_TRAIN) == base<<2, true)

	pt.ApplyMultiplier(PR_BUILD_VEHICLE_TRAIN, -1)
	gtesting.AssertEqualBool(t, "multiplier replaces, not stacks", pt.Cost(PR_BUILD_VEHICLE_TRAIN) == base>>1, true)

	// Out of range modifiers are ignored.
	pt.ApplyMultiplier(PR_BUILD_RAIL, 20)
	gtesting.AssertEqualBool(t, "out of range ignored", pt.Cost(PR_BUILD_RAIL) == priceSpecs[PR_BUILD_RAIL].StartCost, true)
}

func TestPriceMultipliers(t *testing.T) {
	m := NewPriceMultipliers()
	for p := PriceKind(0); p < PR_END; p++ {
		if m[p] != INVALID_PRICE_MODIFIER {
			t.Fatalf("slot %d not initialized", p)
		}
	}

	// Fallback wiring of the wagon price.
	spec := PriceSpecFor(PR_BUILD_VEHICLE_WAGON)
	gtesting.AssertEqualInt(t, "wagon fallback", int(spec.Fallback), int(PR_BUILD_VEHICLE_TRAIN))
	gtesting.AssertEqualInt(t, "wagon feature", int(spec.Feature), int(GSF_TRAINS))

	spec = PriceSpecFor(PR_TERRAFORM)
	gtesting.AssertEqualInt(t, "global price feature", int(spec.Feature), int(GSF_END))
}

func TestSoundPool(t *testing.T) {
	p := NewSoundPool()
	gtesting.AssertEqualInt(t, "stock samples", p.Len(), ORIGINAL_SAMPLE_COUNT)

	id := p.Append(&SoundEntry{GRFID: 0x41414141, Name: "horn.wav"})
	gtesting.AssertEqualInt(t, "first appended id", int(id), ORIGINAL_SAMPLE_COUNT)
	gtesting.AssertEqualInt(t, "default volume", int(p.Entry(id).Volume), 128)
	gtesting.AssertEqualBool(t, "out of range is nil", p.Entry(9999) == nil, true)
}

func TestSignalStyles(t *testing.T) {
	l := NewSignalStyleList()
	gtesting.AssertEqualInt(t, "default style only", l.Len(), 1)

	s := l.Allocate(0x41414141, 1)
	if s == nil {
		t.Fatal("allocation failed")
	}
	gtesting.AssertEqualBool(t, "find registered style", l.Find(0x41414141, 1) == s, true)
	gtesting.AssertEqualBool(t, "other file does not see it", l.Find(0x42424242, 1) == nil, true)

	for i := 2; ; i++ {
		if l.Allocate(0x41414141, uint8(i)) == nil {
			break
		}
	}
	gtesting.AssertEqualInt(t, "global style cap", l.Len(), MAX_NEW_SIGNAL_STYLES+1)
}
