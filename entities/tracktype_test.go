package entities

import (
	"testing"

	"badc0de.net/pkg/go-newgrf/grf"
	"badc0de.net/pkg/go-newgrf/gtesting"
)

func TestRailTypeTableStock(t *testing.T) {
	rt := NewRailTypeTable()

	gtesting.AssertEqualInt(t, "stock count", rt.Len(), 4)
	gtesting.AssertEqualInt(t, "plain rail slot", int(rt.LabelLookup(grf.MakeLabel("RAIL"))), 0)
	gtesting.AssertEqualInt(t, "maglev slot", int(rt.LabelLookup(grf.MakeLabel("MGLV"))), 3)
	gtesting.AssertEqualInt(t, "unknown label", int(rt.LabelLookup(grf.MakeLabel("FOOT"))), int(INVALID_TRACK_TYPE))
}

func TestRoadTypeTableStock(t *testing.T) {
	rt := NewRoadTypeTable()

	road := rt.LabelLookup(grf.MakeLabel("ROAD"))
	tram := rt.LabelLookup(grf.MakeLabel("ELRL"))
	gtesting.AssertEqualInt(t, "road slot", int(road), 0)
	gtesting.AssertEqualInt(t, "tram slot", int(tram), 1)
	gtesting.AssertEqualBool(t, "road is not tram", rt.Info(road).IsTram, false)
	gtesting.AssertEqualBool(t, "tram slot is tram", rt.Info(tram).IsTram, true)
}

func TestTrackTypeAllocate(t *testing.T) {
	rt := NewRailTypeTable()

	id := rt.Allocate(grf.MakeLabel("3RDR"))
	gtesting.AssertEqualInt(t, "new slot", int(id), 4)
	gtesting.AssertEqualInt(t, "allocate is idempotent", int(rt.Allocate(grf.MakeLabel("3RDR"))), 4)

	// Alternate labels resolve after primary ones.
	rt.Info(id).AlternateLabels = []grf.Label{grf.MakeLabel("RAIL")}
	gtesting.AssertEqualInt(t, "primary label wins", int(rt.LabelLookup(grf.MakeLabel("RAIL"))), 0)
	rt.Info(0).AlternateLabels = []grf.Label{grf.MakeLabel("OLDR")}
	gtesting.AssertEqualInt(t, "alternate label found", int(rt.LabelLookup(grf.MakeLabel("OLDR"))), 0)
}

func TestTrackTypeResolveMasks(t *testing.T) {
	rt := NewRailTypeTable()

	elrl := rt.LabelLookup(grf.MakeLabel("ELRL"))
	info := rt.Info(elrl)
	info.CompatibleLabels = []grf.Label{grf.MakeLabel("RAIL")}
	info.PoweredLabels = []grf.Label{grf.MakeLabel("ELRL"), grf.MakeLabel("NONE")}

	rt.ResolveMasks()

	// Self plus RAIL compatible, self powered; the unknown label is dropped.
	gtesting.AssertEqualUint32(t, "compatible mask", uint32(info.CompatibleMask), 1<<0|1<<1)
	gtesting.AssertEqualUint32(t, "powered mask", uint32(info.PoweredMask), 1<<1)

	// Powered labels imply compatibility even when not listed as such.
	rail := rt.Info(0)
	rail.PoweredLabels = []grf.Label{grf.MakeLabel("MONO")}
	rt.ResolveMasks()
	gtesting.AssertEqualUint32(t, "powered implies compatible", uint32(rail.CompatibleMask), 1<<0|1<<2)
}
