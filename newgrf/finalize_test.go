package newgrf

import (
	"testing"

	"badc0de.net/pkg/go-newgrf/entities"
	"badc0de.net/pkg/go-newgrf/gtesting"
)

func classWord(c entities.CargoClasses) []byte { return word(uint16(c)) }

func TestRefitMaskFromCargoClasses(t *testing.T) {
	const grfid = 0x52464954
	l := newTestLoader()

	c := loadOne(t, l,
		action8(8, grfid, "refit classes"),
		// Engine 5 refits to the bulk class.
		pseudo([]byte{0x00, 0x00, 1, 1, 5, 0x28}, classWord(entities.CC_BULK)),
		// Engine 6 allows bulk and piece goods but disallows piece goods.
		pseudo([]byte{0x00, 0x00, 2, 1, 6, 0x28},
			classWord(entities.CC_BULK|entities.CC_PIECE_GOODS),
			[]byte{0x29}, classWord(entities.CC_PIECE_GOODS)),
	)
	gtesting.AssertEqualInt(t, "status", int(c.Status), int(GCS_ACTIVATED))

	// Temperate bulk cargos sit in slots 1 (COAL), 6 (GRAI) and 8 (IORE).
	bulk := entities.CargoMask(1<<1 | 1<<6 | 1<<8)

	e := trainEngine(t, l, 5, grfid)
	gtesting.AssertEqualInt(t, "bulk refit mask", int(e.Info.RefitMask), int(bulk))
	gtesting.AssertEqualInt(t, "default cargo", int(e.Info.CargoType), 1)

	e = trainEngine(t, l, 6, grfid)
	gtesting.AssertEqualInt(t, "disallowed class removed", int(e.Info.RefitMask), int(bulk))
}

func TestRefitMaskExplicitlyEmpty(t *testing.T) {
	const grfid = 0x52464955
	l := newTestLoader()

	c := loadOne(t, l,
		action8(8, grfid, "refits to nothing"),
		// Engine 5 talks about refitting without adding any cargo.
		pseudo([]byte{0x00, 0x00, 1, 1, 5, 0x29}, classWord(entities.CC_PASSENGERS)),
		// Engine 6 does the same but names a default cargo.
		pseudo([]byte{0x00, 0x00, 2, 1, 6, 0x29}, classWord(entities.CC_PASSENGERS),
			[]byte{0x15, 0x01}),
	)
	gtesting.AssertEqualInt(t, "status", int(c.Status), int(GCS_ACTIVATED))

	e := trainEngine(t, l, 5, grfid)
	gtesting.AssertEqualInt(t, "refit mask", int(e.Info.RefitMask), 0)
	gtesting.AssertEqualInt(t, "cargo type", int(e.Info.CargoType), int(entities.INVALID_CARGO))
	gtesting.AssertEqualInt(t, "climate availability", int(e.Info.ClimateAvailability), 0)

	e = trainEngine(t, l, 6, grfid)
	gtesting.AssertEqualInt(t, "kept default cargo", int(e.Info.CargoType), 1)
	gtesting.AssertEqualInt(t, "still available", int(e.Info.ClimateAvailability), 0x0F)
}
