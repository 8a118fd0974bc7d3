package newgrf

import (
	"github.com/golang/glog"

	"badc0de.net/pkg/go-newgrf/entities"
	"badc0de.net/pkg/go-newgrf/grf"
	"badc0de.net/pkg/go-newgrf/spritegroup"
)

// groupFromID resolves a chain reference. References with bit 15 set are
// inline callback results; the rest name a group the file defined earlier.
// An undefined reference leaves a nil member.
func (l *Loader) groupFromID(setid, typ uint8, groupid uint16) *spritegroup.Group {
	f := l.cur.file
	if groupid&0x8000 != 0 {
		return l.Groups.CallbackResult(groupid, f.grfVersion >= 8)
	}
	if groupid > MAX_GROUP_ID {
		glog.V(1).Infof("groupFromID(0x%02X:0x%02X): group 0x%04X does not exist, leaving empty", setid, typ, groupid)
		return nil
	}
	g := f.group(groupid)
	if g == nil {
		glog.V(1).Infof("groupFromID(0x%02X:0x%02X): group 0x%04X does not exist, leaving empty", setid, typ, groupid)
	}
	return g
}

// resultFromSetID resolves a real group member: an inline callback result,
// or a result group over one of the feature's current sprite sets.
func (l *Loader) resultFromSetID(feature entities.Feature, setid, typ uint8, spriteid uint16) *spritegroup.Group {
	f := l.cur.file
	if spriteid&0x8000 != 0 {
		return l.Groups.CallbackResult(spriteid, f.grfVersion >= 8)
	}
	if !f.isValidSpriteSet(feature, spriteid) {
		glog.V(1).Infof("resultFromSetID(0x%02X:0x%02X): sprite set %d invalid", setid, typ, spriteid)
		return nil
	}
	g := l.Groups.New(spritegroup.RESULT, l.cur.nfoLine)
	g.FirstSprite = f.spriteSetFirst(feature, spriteid)
	g.NumSprites = f.spriteSetNumEnts(feature, spriteid)
	return g
}

// foldVariableRemap rewrites an adjust whose variable went through a remap
// declaration. The declared windows relocate a bit field between the file's
// view and the variable's real layout; composing them with the adjust's own
// shift and mask keeps the chain's shape. A window that would need a left
// shift cannot fold and reads as zero instead.
func (l *Loader) foldVariableRemap(adjust *spritegroup.Adjust, rm *variableRemap) {
	if !rm.known {
		adjust.ShiftNum = 0
		adjust.AndMask = 0
		return
	}
	adjust.Parameter = uint32(rm.outputParam)
	if adjust.ShiftNum < rm.inputShift {
		if !rm.warned {
			glog.Warningf("%s: variable %q bit window cannot be composed, reads as zero",
				l.cur.file.Config.GetName(), rm.name)
			rm.warned = true
		}
		adjust.Variable = 0x1A
		adjust.ShiftNum = 0
		adjust.AndMask = 0
		return
	}
	rel := adjust.ShiftNum - rm.inputShift
	adjust.AndMask &= (rm.outputMask >> rel) & (rm.inputMask >> adjust.ShiftNum)
	adjust.ShiftNum = rm.outputShift + rel
}

// newSpriteGroup decodes a chain node definition (action 2). The type byte
// selects between deterministic switches, randomized switches, industry
// production nodes and, for anything else, the feature-shaped default of
// real groups, tile layouts or production rules. The finished node is stored
// under its set id, shadowing any earlier definition.
func newSpriteGroup(l *Loader, r *grf.Reader) {
	f := l.cur.file

	rawFeature := r.ReadByte()
	feature, ok := l.resolveFeature(rawFeature)
	if !ok {
		return
	}
	if feature >= entities.GSF_END {
		glog.V(1).Infof("newSpriteGroup: unsupported feature 0x%02X, skipping", uint8(feature))
		return
	}

	setid := r.ReadByte()
	typ := r.ReadByte()

	var actGroup *spritegroup.Group

	switch typ {
	case 0x81, 0x82, 0x85, 0x86, 0x89, 0x8A:
		actGroup = l.readDeterministicGroup(r, feature, setid, typ)

	case 0x80, 0x83, 0x84:
		actGroup = l.readRandomizedGroup(r, feature, setid, typ)

	default:
		switch feature {
		case entities.GSF_TRAINS, entities.GSF_ROADVEHICLES, entities.GSF_SHIPS,
			entities.GSF_AIRCRAFT, entities.GSF_STATIONS, entities.GSF_CANALS,
			entities.GSF_CARGOES, entities.GSF_AIRPORTS, entities.GSF_RAILTYPES,
			entities.GSF_ROADTYPES, entities.GSF_TRAMTYPES, entities.GSF_BADGES,
			entities.GSF_SIGNALS, entities.GSF_NEWLANDSCAPE:
			var stored bool
			actGroup, stored = l.readRealGroup(r, feature, setid, typ)
			if !stored {
				return
			}

		case entities.GSF_HOUSES, entities.GSF_AIRPORTTILES, entities.GSF_OBJECTS,
			entities.GSF_INDUSTRYTILES, entities.GSF_ROADSTOPS:
			num := typ
			if num == 0 {
				num = 1
			}
			g := l.Groups.New(spritegroup.TILE_LAYOUT, l.cur.nfoLine)
			g.Layout = &spritegroup.TileLayout{}
			if !l.readSpriteLayout(r, num, true, feature, true, typ == 0, g.Layout) {
				return
			}
			actGroup = g

		case entities.GSF_INDUSTRIES:
			actGroup = l.readIndustryProduction(r, typ)
			if actGroup == nil && l.cur.skipSprites == -1 {
				return
			}

		default:
			glog.V(1).Infof("newSpriteGroup: unsupported feature %s, skipping", feature)
		}
	}

	f.setGroup(uint16(setid), actGroup)
}

func (l *Loader) readDeterministicGroup(r *grf.Reader, feature entities.Feature, setid, typ uint8) *spritegroup.Group {
	f := l.cur.file
	g := l.Groups.New(spritegroup.DETERMINISTIC, l.cur.nfoLine)
	dg := &spritegroup.DeterministicGroup{}
	g.Deterministic = dg

	if typ&0x02 != 0 {
		dg.Scope = spritegroup.SCOPE_PARENT
	}

	var varsize uint8
	switch (typ >> 2) & 3 {
	case 0:
		dg.Size = spritegroup.SIZE_BYTE
		varsize = 1
	case 1:
		dg.Size = spritegroup.SIZE_WORD
		varsize = 2
	case 2:
		dg.Size = spritegroup.SIZE_DWORD
		varsize = 4
	}

	// The first adjust carries no operation byte and always adds.
	for first := true; ; first = false {
		var adjust spritegroup.Adjust
		if first {
			adjust.Operation = spritegroup.OP_ADD
		} else {
			adjust.Operation = spritegroup.Operation(r.ReadByte())
		}

		rawVar := r.ReadByte()
		var rm *variableRemap
		if rawVar == 0x7E {
			adjust.Variable = rawVar
			adjust.Subroutine = l.groupFromID(setid, typ, uint16(r.ReadByte()))
		} else {
			adjust.Variable, rm = f.resolveVariable(feature, rawVar)
			if rawVar >= 0x60 && rawVar < 0x80 {
				adjust.Parameter = uint32(r.ReadByte())
			}
		}

		varadjust := r.ReadByte()
		adjust.ShiftNum = varadjust & 0x1F
		adjust.Type = spritegroup.AdjustType((varadjust >> 6) & 3)
		adjust.AndMask = r.ReadVarSize(varsize)
		if adjust.Type != spritegroup.ADJUST_NONE {
			adjust.AddVal = r.ReadVarSize(varsize)
			adjust.DivMod = r.ReadVarSize(varsize)
			if adjust.DivMod == 0 {
				adjust.DivMod = 1
			}
		}
		if rm != nil {
			l.foldVariableRemap(&adjust, rm)
		}
		dg.Adjusts = append(dg.Adjusts, adjust)

		if varadjust&0x20 == 0 {
			break
		}
	}

	nranges := int(r.ReadByte())
	ranges := make([]spritegroup.Range, nranges)
	for i := range ranges {
		ranges[i].Group = l.groupFromID(setid, typ, r.ReadWord())
		ranges[i].Low = r.ReadVarSize(varsize)
		ranges[i].High = r.ReadVarSize(varsize)
	}

	dg.Default = l.groupFromID(setid, typ, r.ReadWord())
	if nranges == 0 {
		dg.Error = dg.Default
	} else {
		dg.Error = ranges[0].Group
	}
	dg.CalculatedResult = nranges == 0
	dg.Ranges = spritegroup.CanonicalizeRanges(ranges, dg.Default)
	return g
}

func (l *Loader) readRandomizedGroup(r *grf.Reader, feature entities.Feature, setid, typ uint8) *spritegroup.Group {
	g := l.Groups.New(spritegroup.RANDOMIZED, l.cur.nfoLine)
	rg := &spritegroup.RandomizedGroup{}
	g.Randomized = rg

	if typ&0x02 != 0 {
		rg.Scope = spritegroup.SCOPE_PARENT
	}
	if typ&0x04 != 0 {
		if feature.IsVehicle() {
			rg.Scope = spritegroup.SCOPE_RELATIVE
		}
		rg.Count = r.ReadByte()
	}

	triggers := r.ReadByte()
	rg.Triggers = triggers & 0x7F
	if triggers&0x80 != 0 {
		rg.CmpMode = spritegroup.CMP_ALL
	}
	rg.LowestRandbit = r.ReadByte()

	numGroups := r.ReadByte()
	if numGroups == 0 || numGroups&(numGroups-1) != 0 {
		glog.V(1).Infof("newSpriteGroup: randomized group count %d is not a power of 2", numGroups)
	}
	for i := uint8(0); i < numGroups; i++ {
		rg.Groups = append(rg.Groups, l.groupFromID(setid, typ, r.ReadWord()))
	}
	return g
}

// readRealGroup reads the loaded and loading member lists. When both
// collapse into a single member the node itself is elided. stored is false
// when the feature has no current sprite sets; such definitions do not even
// shadow an earlier group under the same id.
func (l *Loader) readRealGroup(r *grf.Reader, feature entities.Feature, setid, typ uint8) (g *spritegroup.Group, stored bool) {
	f := l.cur.file
	numLoaded := typ
	numLoading := r.ReadByte()

	if !f.hasSpriteSets(feature) {
		glog.Errorf("newSpriteGroup: set 0x%02X of feature %s has no sprite set to work on, skipping", setid, feature)
		return nil, false
	}

	glog.V(6).Infof("newSpriteGroup: set 0x%02X, %d loaded, %d loading", setid, numLoaded, numLoading)

	if int(numLoaded)+int(numLoading) == 0 {
		glog.V(1).Infof("newSpriteGroup: set 0x%02X has no result, storing empty group", setid)
		return nil, true
	}

	if int(numLoaded)+int(numLoading) == 1 {
		return l.resultFromSetID(feature, setid, typ, r.ReadWord()), true
	}

	loaded := make([]uint16, numLoaded)
	for i := range loaded {
		loaded[i] = r.ReadWord()
	}
	loading := make([]uint16, numLoading)
	for i := range loading {
		loading[i] = r.ReadWord()
	}

	loadedSame := len(loaded) > 0 && allEqual(loaded)
	loadingSame := len(loading) > 0 && allEqual(loading)
	if loadedSame && loadingSame && loaded[0] == loading[0] {
		return l.resultFromSetID(feature, setid, typ, loaded[0]), true
	}

	g = l.Groups.New(spritegroup.REAL, l.cur.nfoLine)
	rg := &spritegroup.RealGroup{}
	g.Real = rg

	if loadedSame {
		loaded = loaded[:1]
	}
	for _, spriteid := range loaded {
		rg.Loaded = append(rg.Loaded, l.resultFromSetID(feature, setid, typ, spriteid))
	}
	if loadingSame {
		loading = loading[:1]
	}
	for _, spriteid := range loading {
		rg.Loading = append(rg.Loading, l.resultFromSetID(feature, setid, typ, spriteid))
	}
	return g, true
}

func allEqual(s []uint16) bool {
	for _, v := range s[1:] {
		if v != s[0] {
			return false
		}
	}
	return true
}

// Slot counts of the fixed-form industry production rules.
const (
	industryOriginalInputs  = 3
	industryOriginalOutputs = 2
)

// readIndustryProduction reads a production rule node. Versions 0 and 1 use
// the original fixed cargo slots; version 2 names its cargoes through the
// translation table. An untranslatable cargo is allowed as long as the node
// is never evaluated, so it only poisons the version marker.
func (l *Loader) readIndustryProduction(r *grf.Reader, typ uint8) *spritegroup.Group {
	if typ > 2 {
		glog.V(1).Infof("newSpriteGroup: unsupported industry production version %d, skipping", typ)
		return nil
	}

	g := l.Groups.New(spritegroup.INDUSTRY_PRODUCTION, l.cur.nfoLine)
	p := &spritegroup.IndustryProduction{Version: typ}
	g.Production = p

	switch typ {
	case 0:
		for i := 0; i < industryOriginalInputs; i++ {
			p.Inputs = append(p.Inputs, spritegroup.ProductionAmount{Cargo: uint8(i), Value: r.ReadWord()})
		}
		for i := 0; i < industryOriginalOutputs; i++ {
			p.Outputs = append(p.Outputs, spritegroup.ProductionAmount{Cargo: uint8(i), Value: r.ReadWord()})
		}
		p.AgainValue = r.ReadByte()

	case 1:
		for i := 0; i < industryOriginalInputs; i++ {
			p.Inputs = append(p.Inputs, spritegroup.ProductionAmount{Cargo: uint8(i), Value: uint16(r.ReadByte())})
		}
		for i := 0; i < industryOriginalOutputs; i++ {
			p.Outputs = append(p.Outputs, spritegroup.ProductionAmount{Cargo: uint8(i), Value: uint16(r.ReadByte())})
		}
		p.AgainValue = r.ReadByte()
		p.AgainIsReg = true

	case 2:
		if !l.readProductionList(r, p, &p.Inputs, "input") {
			return nil
		}
		if !l.readProductionList(r, p, &p.Outputs, "output") {
			return nil
		}
		p.AgainValue = r.ReadByte()
		p.AgainIsReg = true
	}
	return g
}

func (l *Loader) readProductionList(r *grf.Reader, p *spritegroup.IndustryProduction, list *[]spritegroup.ProductionAmount, what string) bool {
	count := int(r.ReadByte())
	if count > 16 {
		if e := l.disableGRF("invalid industry production callback", nil); e != nil {
			e.Data = "too many " + what + "s (max 16)"
		}
		return false
	}
	for i := 0; i < count; i++ {
		raw := r.ReadByte()
		cargo := l.cargoTranslation(raw, false)
		if cargo == entities.INVALID_CARGO {
			// Permitted while the node is unused; poison the version so an
			// evaluation can reject it.
			p.Version = 0xFF
		} else {
			for _, prev := range *list {
				if entities.CargoType(prev.Cargo) == cargo {
					if e := l.disableGRF("invalid industry production callback", nil); e != nil {
						e.Data = "duplicate " + what + " cargo"
					}
					return false
				}
			}
		}
		value := uint16(r.ReadByte())
		*list = append(*list, spritegroup.ProductionAmount{Cargo: uint8(cargo), Value: value})
	}
	return true
}
