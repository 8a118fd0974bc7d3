package spritegroup

import (
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"badc0de.net/pkg/go-newgrf/gtesting"
)

func TestCanonicalizeRangesSimple(t *testing.T) {
	a := &Group{Kind: CALLBACK, CallbackValue: 1}
	def := &Group{Kind: CALLBACK, CallbackValue: 0}

	got := CanonicalizeRanges([]Range{{a, 5, 10}}, def)
	want := []Range{{a, 5, 10}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ranges differ (-want +got):\n%s", diff)
	}
}

func TestCanonicalizeRangesOverlapFirstWins(t *testing.T) {
	a := &Group{Kind: CALLBACK, CallbackValue: 1}
	b := &Group{Kind: CALLBACK, CallbackValue: 2}
	def := &Group{Kind: CALLBACK, CallbackValue: 0}

	got := CanonicalizeRanges([]Range{{a, 0, 10}, {b, 5, 20}}, def)
	want := []Range{{a, 0, 10}, {b, 11, 20}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ranges differ (-want +got):\n%s", diff)
	}
}

func TestCanonicalizeRangesCoalesce(t *testing.T) {
	a := &Group{Kind: CALLBACK, CallbackValue: 1}
	def := &Group{Kind: CALLBACK, CallbackValue: 0}

	got := CanonicalizeRanges([]Range{{a, 0, 4}, {a, 5, 9}}, def)
	want := []Range{{a, 0, 9}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ranges differ (-want +got):\n%s", diff)
	}
}

func TestCanonicalizeRangesDropsDefault(t *testing.T) {
	def := &Group{Kind: CALLBACK, CallbackValue: 0}

	got := CanonicalizeRanges([]Range{{def, 3, 6}}, def)
	if len(got) != 0 {
		t.Errorf("got %d ranges; want none", len(got))
	}
}

func TestCanonicalizeRangesOpenEnded(t *testing.T) {
	a := &Group{Kind: CALLBACK, CallbackValue: 1}
	b := &Group{Kind: CALLBACK, CallbackValue: 2}
	def := &Group{Kind: CALLBACK, CallbackValue: 0}

	got := CanonicalizeRanges([]Range{{a, 10, math.MaxUint32}, {b, 0, 3}}, def)
	want := []Range{{b, 0, 3}, {a, 10, math.MaxUint32}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ranges differ (-want +got):\n%s", diff)
	}
}

func TestTransformCallbackResult(t *testing.T) {
	gtesting.AssertEqualInt(t, "old style strips high byte", int(TransformCallbackResult(0xFF12, false)), 0x12)
	gtesting.AssertEqualInt(t, "old style passes others", int(TransformCallbackResult(0x8123, false)), 0x0123)
	gtesting.AssertEqualInt(t, "new style keeps 15 bits", int(TransformCallbackResult(0xFF12, true)), 0x7F12)
	gtesting.AssertEqualInt(t, "new style strips bit 15", int(TransformCallbackResult(0x8001, true)), 0x0001)
}

func TestBuilderCallbackDedup(t *testing.T) {
	b := NewBuilder()

	g1 := b.CallbackResult(0x8012, true)
	g2 := b.CallbackResult(0x0012, true)
	gtesting.AssertEqualBool(t, "identical results share a node", g1 == g2, true)
	gtesting.AssertEqualInt(t, "node count", b.Count(), 1)

	g3 := b.CallbackResult(0x0013, true)
	gtesting.AssertEqualBool(t, "distinct results differ", g1 != g3, true)
	gtesting.AssertEqualInt(t, "node count grows", b.Count(), 2)
}

func TestRandomizedGroupBits(t *testing.T) {
	rg := &RandomizedGroup{Groups: make([]*Group, 8)}
	gtesting.AssertEqualInt(t, "eight chains use three bits", rg.NumRandbits(), 3)

	rg = &RandomizedGroup{Groups: make([]*Group, 1)}
	gtesting.AssertEqualInt(t, "one chain uses no bits", rg.NumRandbits(), 0)
}

func TestTileLayoutRegisters(t *testing.T) {
	tl := &TileLayout{Seq: make([]DrawTileSeqStruct, 3)}
	gtesting.AssertEqualBool(t, "no registers yet", tl.NeedsPreprocessing(), false)

	tl.AllocateRegisters()
	gtesting.AssertEqualInt(t, "one register slot per sprite plus ground", len(tl.Registers), 4)
	gtesting.AssertEqualBool(t, "registers require preprocessing", tl.NeedsPreprocessing(), true)

	child := DrawTileSeqStruct{DeltaZ: int8(-128)}
	gtesting.AssertEqualBool(t, "0x80 marks a child sprite", child.IsParentSprite(), false)
	parent := DrawTileSeqStruct{DeltaZ: 0}
	gtesting.AssertEqualBool(t, "zero delta z is a parent", parent.IsParentSprite(), true)
}

// rangeTarget resolves a value against declared ranges, first match winning.
func rangeTarget(ranges []Range, def *Group, v uint32) *Group {
	for _, r := range ranges {
		if r.Low <= v && v <= r.High {
			return r.Group
		}
	}
	return def
}

func TestCanonicalizeRangesRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	targets := []*Group{
		{Kind: CALLBACK, CallbackValue: 1},
		{Kind: CALLBACK, CallbackValue: 2},
		{Kind: CALLBACK, CallbackValue: 3},
	}
	def := &Group{Kind: CALLBACK, CallbackValue: 0}

	const domain = 64
	for trial := 0; trial < 200; trial++ {
		ranges := make([]Range, rng.Intn(5))
		for i := range ranges {
			lo := uint32(rng.Intn(domain))
			hi := lo + uint32(rng.Intn(domain-int(lo)))
			ranges[i] = Range{targets[rng.Intn(len(targets))], lo, hi}
		}

		canon := CanonicalizeRanges(ranges, def)
		if diff := cmp.Diff(canon, CanonicalizeRanges(canon, def)); diff != "" {
			t.Fatalf("trial %d: canonicalizing twice changed the result:\n%s", trial, diff)
		}

		for v := uint32(0); v < domain; v++ {
			want := rangeTarget(ranges, def, v)
			got := rangeTarget(canon, def, v)
			if got != want {
				t.Fatalf("trial %d: value %d resolves to callback %d, want %d (declared %v)",
					trial, v, got.CallbackValue, want.CallbackValue, ranges)
			}
		}
	}
}
