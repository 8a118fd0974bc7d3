package entities

import (
	"testing"

	"badc0de.net/pkg/go-newgrf/grf"
	"badc0de.net/pkg/go-newgrf/gtesting"
)

func TestCargoTableDefaults(t *testing.T) {
	ct := NewCargoTable(LT_TEMPERATE)

	gtesting.AssertEqualUint32(t, "valid mask", uint32(ct.ValidMask()), 0x7FF)

	pass := ct.Spec(0)
	gtesting.AssertEqualString(t, "slot 0 label", pass.Label.String(), "PASS")
	gtesting.AssertEqualBool(t, "passengers are not freight", pass.IsFreight, false)
	gtesting.AssertEqualInt(t, "passengers weight", int(pass.Weight), 16)

	gtesting.AssertEqualInt(t, "coal by label", int(ct.LabelLookup(grf.MakeLabel("COAL"))), 1)
	gtesting.AssertEqualInt(t, "valuables by bitnum", int(ct.BitnumLookup(10)), 10)
	gtesting.AssertEqualInt(t, "no food in temperate", int(ct.LabelLookup(grf.MakeLabel("FOOD"))), int(INVALID_CARGO))

	if got := ct.Spec(20); got.IsValid() {
		t.Errorf("slot 20 unexpectedly valid")
	}
}

func TestCargoTableClimates(t *testing.T) {
	ct := NewCargoTable(LT_ARCTIC)

	// In the arctic set paper sits in slot 8 but keeps bit number 9.
	papr := ct.LabelLookup(grf.MakeLabel("PAPR"))
	gtesting.AssertEqualInt(t, "paper slot", int(papr), 8)
	gtesting.AssertEqualInt(t, "paper bitnum", int(ct.Spec(papr).BitNum), 9)
	gtesting.AssertEqualInt(t, "food by bitnum", int(ct.BitnumLookup(11)), 10)

	ct.SetupForClimate(LT_TOYLAND)
	gtesting.AssertEqualInt(t, "fizzy drinks slot", int(ct.LabelLookup(grf.MakeLabel("FZDR"))), 11)

	// Unknown climates fall back to temperate.
	ct.SetupForClimate(9)
	gtesting.AssertEqualInt(t, "fallback has grain", int(ct.LabelLookup(grf.MakeLabel("GRAI"))), 6)
}

func TestCargoClassMask(t *testing.T) {
	ct := NewCargoTable(LT_TEMPERATE)

	bulk := ct.ClassMask(CC_BULK, 0)
	// Coal, grain and iron ore.
	gtesting.AssertEqualUint32(t, "bulk mask", uint32(bulk), 1<<1|1<<6|1<<8)

	express := ct.ClassMask(CC_EXPRESS, CC_ARMOURED)
	// Goods only; valuables are armoured.
	gtesting.AssertEqualUint32(t, "express minus armoured", uint32(express), 1<<5)
}
