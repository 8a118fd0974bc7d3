package newgrf

import (
	"testing"

	"github.com/stretchr/testify/require"

	"badc0de.net/pkg/go-newgrf/entities"
	"badc0de.net/pkg/go-newgrf/spritegroup"
)

func TestGraphicsChainBinding(t *testing.T) {
	const grfid = 0x32544341
	l := newTestLoader()

	c := loadOne(t, l,
		action8(8, grfid, "graphics test"),
		// One sprite set of two entries for trains.
		pseudo([]byte{0x01, 0x00, 1, 2}),
		sprite(),
		sprite(),
		// Loaded and loading both point at set 0, so the group collapses
		// into a plain sprite result.
		pseudo([]byte{0x02, 0x00, 0x00, 1, 1}, word(0), word(0)),
		pseudo([]byte{0x03, 0x00, 1, 5, 0}, word(0)),
	)

	require.Equal(t, GCS_ACTIVATED, c.Status)
	e := trainEngine(t, l, 5, grfid)
	g := e.Props.SpriteGroup(entities.SG_DEFAULT)
	require.NotNil(t, g)
	require.Equal(t, spritegroup.RESULT, g.Kind)
	require.EqualValues(t, 2, g.NumSprites)
}

func TestDeterministicChain(t *testing.T) {
	const grfid = 0x32544342
	l := newTestLoader()

	c := loadOne(t, l,
		action8(8, grfid, "switch test"),
		pseudo([]byte{0x01, 0x00, 1, 2}),
		sprite(),
		sprite(),
		pseudo([]byte{0x02, 0x00, 0x00, 1, 1}, word(0), word(0)),
		// A byte-sized self-scoped switch on variable 0x40 with one range
		// answering a callback result and group 0 as the default.
		pseudo([]byte{0x02, 0x00, 0x01, 0x81, 0x40, 0x00, 0xFF, 0x01},
			word(0x8001), []byte{0x00, 0x00}, word(0)),
		pseudo([]byte{0x03, 0x00, 1, 5, 0}, word(1)),
	)

	require.Equal(t, GCS_ACTIVATED, c.Status)
	e := trainEngine(t, l, 5, grfid)
	g := e.Props.SpriteGroup(entities.SG_DEFAULT)
	require.NotNil(t, g)
	require.Equal(t, spritegroup.DETERMINISTIC, g.Kind)

	dg := g.Deterministic
	require.Len(t, dg.Adjusts, 1)
	require.EqualValues(t, 0x40, dg.Adjusts[0].Variable)
	require.Equal(t, spritegroup.SIZE_BYTE, dg.Size)
	require.False(t, dg.CalculatedResult)
	require.NotNil(t, dg.Default)
	require.Equal(t, spritegroup.RESULT, dg.Default.Kind)
	require.EqualValues(t, 2, dg.Default.NumSprites)
}
