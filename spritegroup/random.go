package spritegroup

// CompareMode decides how a random switch combines its trigger bits with
// the triggers that fired.
type CompareMode uint8

const (
	CMP_ANY CompareMode = 0
	CMP_ALL CompareMode = 1
)

// RandomizedGroup picks one of 2^n chains from an entity's random bits.
type RandomizedGroup struct {
	Scope ScopeRef

	// Raw count byte of the relative form: low nibble the chain length,
	// high bits the counting direction.
	Count uint8

	CmpMode       CompareMode
	Triggers      uint8
	LowestRandbit uint8

	// Length is a power of two.
	Groups []*Group
}

// NumRandbits returns how many random bits the switch consumes.
func (rg *RandomizedGroup) NumRandbits() int {
	n := 0
	for l := len(rg.Groups); l > 1; l >>= 1 {
		n++
	}
	return n
}
