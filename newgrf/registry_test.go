package newgrf

import (
	"testing"

	"badc0de.net/pkg/go-newgrf/entities"
	"badc0de.net/pkg/go-newgrf/gtesting"
)

func TestRegistryLoadAndReset(t *testing.T) {
	const grfid = 0x52454731
	path := writeGRF(t,
		action8(8, grfid, "registry test"),
		pseudo([]byte{0x00, 0x00, 1, 1, 5, 0x09}, word(140)),
	)

	r := NewRegistry(DefaultEnv())
	configs, err := r.Load([]string{path})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(configs) != 1 {
		t.Fatalf("Load returned %d configs, want 1", len(configs))
	}

	c := r.ConfigByGRFID(grfid)
	if c == nil {
		t.Fatal("ConfigByGRFID found nothing")
	}
	gtesting.AssertEqualInt(t, "status", int(c.Status), int(GCS_ACTIVATED))
	if r.ConfigByPath(path) != c {
		t.Error("ConfigByPath disagrees with ConfigByGRFID")
	}

	id := r.Tables.Engines.GetID(entities.VEH_TRAIN, 5, grfid)
	if id == entities.INVALID_ENGINE {
		t.Fatal("engine 5 not claimed")
	}
	e := r.Tables.Engines.Engine(id)
	gtesting.AssertEqualInt(t, "speed", int(e.Rail.Speed), 140)

	r.Reset()
	if r.ConfigByGRFID(grfid) != nil {
		t.Error("config survived Reset")
	}
	if got := r.Tables.Engines.GetID(entities.VEH_TRAIN, 5, grfid); got != entities.INVALID_ENGINE {
		t.Errorf("engine claim survived Reset: id %d", got)
	}
}

func TestRegistryErrors(t *testing.T) {
	const grfid = 0x52454732
	path := writeGRF(t,
		action8(8, grfid, "broken file"),
		// Canal slot past the end of the table.
		pseudo([]byte{0x00, 0x05, 1, 3, 7, 0x08, 1, 1, 1}),
	)

	r := NewRegistry(DefaultEnv())
	if _, err := r.Load([]string{path}); err != nil {
		t.Fatalf("Load: %v", err)
	}

	errs := r.Errors()
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1", len(errs))
	}
	gtesting.AssertEqualString(t, "message", errs[0].Message, "invalid entity id")
}
