package spritegroup

import (
	"math"
	"sort"
)

// ScopeRef selects whose state a decision or random switch consults.
type ScopeRef uint8

const (
	SCOPE_SELF     ScopeRef = 0
	SCOPE_PARENT   ScopeRef = 1
	SCOPE_RELATIVE ScopeRef = 2
)

func (s ScopeRef) String() string {
	switch s {
	case SCOPE_SELF:
		return "self"
	case SCOPE_PARENT:
		return "parent"
	case SCOPE_RELATIVE:
		return "relative"
	}
	return "unknown scope"
}

// Size is the width a decision reads its variable at.
type Size uint8

const (
	SIZE_BYTE  Size = 0
	SIZE_WORD  Size = 1
	SIZE_DWORD Size = 2
)

// Operation combines the accumulator with an adjusted variable value.
type Operation uint8

const (
	OP_ADD Operation = iota
	OP_SUB
	OP_SMIN
	OP_SMAX
	OP_UMIN
	OP_UMAX
	OP_SDIV
	OP_SMOD
	OP_UDIV
	OP_UMOD
	OP_MUL
	OP_AND
	OP_OR
	OP_XOR
	OP_STO
	OP_RST
	OP_STOP
	OP_ROR
	OP_SCMP
	OP_UCMP
	OP_SHL
	OP_SHR
	OP_SAR

	OP_END
)

// AdjustType switches the add/divide/modulo tail of an adjust.
type AdjustType uint8

const (
	ADJUST_NONE AdjustType = 0
	ADJUST_DIV  AdjustType = 1
	ADJUST_MOD  AdjustType = 2
)

// Adjust is one step of a decision's variable evaluation pipeline.
type Adjust struct {
	Operation Operation
	Variable  uint8

	// Extra argument of variables 0x60..0x7F.
	Parameter uint32

	ShiftNum uint8
	Type     AdjustType
	AndMask  uint32
	AddVal   uint32
	DivMod   uint32

	// Chain invoked for variable 0x7E before this adjust evaluates.
	Subroutine *Group
}

// Range maps an interval of decision values to a target chain.
type Range struct {
	Group *Group
	Low   uint32
	High  uint32
}

// DeterministicGroup is a decision tree node: evaluate the adjust pipeline,
// then pick the range holding the result, or the default.
type DeterministicGroup struct {
	Scope ScopeRef
	Size  Size

	Adjusts []Adjust
	Ranges  []Range

	Default *Group

	// Chain consulted when evaluation fails, the first declared range's
	// target or the default for rangeless decisions.
	Error *Group

	// A rangeless decision answers with the computed value itself.
	CalculatedResult bool
}

// CanonicalizeRanges rewrites declared ranges into sorted, disjoint,
// non-default intervals. Overlaps resolve in favor of the first declared
// range, adjacent intervals with the same target coalesce, and intervals
// covered by the default drop out.
func CanonicalizeRanges(ranges []Range, def *Group) []Range {
	if len(ranges) == 0 {
		return nil
	}

	bounds := make([]uint32, 0, len(ranges)*2)
	for _, r := range ranges {
		bounds = append(bounds, r.Low)
		if r.High != math.MaxUint32 {
			bounds = append(bounds, r.High+1)
		}
	}
	sort.Slice(bounds, func(i, j int) bool { return bounds[i] < bounds[j] })
	bounds = dedupUint32(bounds)

	target := make([]*Group, len(bounds))
	for i, b := range bounds {
		target[i] = def
		for _, r := range ranges {
			if r.Low <= b && b <= r.High {
				target[i] = r.Group
				break
			}
		}
	}

	var out []Range
	for i := 0; i < len(bounds); {
		if target[i] == def {
			i++
			continue
		}
		r := Range{Group: target[i], Low: bounds[i]}
		for i < len(bounds) && target[i] == r.Group {
			i++
		}
		if i < len(bounds) {
			r.High = bounds[i] - 1
		} else {
			r.High = math.MaxUint32
		}
		out = append(out, r)
	}
	return out
}

func dedupUint32(s []uint32) []uint32 {
	n := 0
	for i, v := range s {
		if i == 0 || v != s[n-1] {
			s[n] = v
			n++
		}
	}
	return s[:n]
}
