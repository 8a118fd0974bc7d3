package newgrf

import (
	"github.com/golang/glog"

	"badc0de.net/pkg/go-newgrf/entities"
	"badc0de.net/pkg/go-newgrf/grf"
	"badc0de.net/pkg/go-newgrf/grftext"
)

// validateIndustryLayout rejects construction layouts with duplicate tile
// positions or without a single buildable tile.
func validateIndustryLayout(layout entities.IndustryLayout) bool {
	if len(layout) == 0 {
		return false
	}
	for i := 0; i < len(layout)-1; i++ {
		for j := i + 1; j < len(layout); j++ {
			if layout[i].X == layout[j].X && layout[i].Y == layout[j].Y {
				return false
			}
		}
	}
	for _, t := range layout {
		if t.Local || t.Gfx != entities.GFX_WATERTILE_SPECIALCHECK {
			return true
		}
	}
	return false
}

// growMultipliers widens an input/output multiplier matrix with zero rows
// and columns as needed.
func growMultipliers(m [][]uint16, rows, cols int) [][]uint16 {
	for len(m) < rows {
		m = append(m, nil)
	}
	for i := range m {
		for len(m[i]) < cols {
			m[i] = append(m[i], 0)
		}
	}
	return m
}

// ignoreIndustryProperty consumes one industry property value without
// applying it.
func ignoreIndustryProperty(r *grf.Reader, prop uint16) changeInfoResult {
	switch prop {
	case 0x09, 0x0B, 0x0F, 0x12, 0x13, 0x14, 0x17, 0x18, 0x19, 0x21, 0x22:
		r.ReadByte()

	case 0x0C, 0x0D, 0x0E, 0x1B, 0x1F, 0x24:
		r.ReadWord()

	case 0x11, 0x1A, 0x1C, 0x1D, 0x1E, 0x20, 0x23:
		r.ReadDWord()

	case 0x10:
		r.Skip(2)

	case 0x15:
		r.Skip(int(r.ReadByte()))

	case 0x16:
		r.Skip(3)

	case 0x0A:
		// The declared layout size is not trustworthy, so walk the
		// structure the same way the applier does.
		numLayouts := int(r.ReadByte())
		r.ReadDWord()
		for j := 0; j < numLayouts; j++ {
			for k := 0; ; k++ {
				x := r.ReadByte()
				if x == 0xFE && k == 0 {
					r.Skip(2)
					break
				}
				y := r.ReadByte()
				if x == 0 && y == 0x80 {
					break
				}
				if r.ReadByte() == 0xFE {
					r.ReadWord()
				}
			}
		}

	case 0x25, 0x26, 0x27:
		r.Skip(int(r.ReadByte()))

	case 0x28:
		inputs := int(r.ReadByte())
		outputs := int(r.ReadByte())
		r.Skip(inputs * outputs * 2)

	case 0x29:
		skipBadgeList(r)

	default:
		return CIR_UNKNOWN
	}
	return CIR_SUCCESS
}

// readIndustryLayouts reads the construction layout list of industry
// property 0x0A. The declared byte size only guards against overruns; the
// data itself is structured.
func (l *Loader) readIndustryLayouts(r *grf.Reader, id int) ([]entities.IndustryLayout, changeInfoResult) {
	f := l.cur.file

	numLayouts := int(r.ReadByte())
	defSize := r.ReadDWord()
	bytesRead := uint32(0)

	layouts := make([]entities.IndustryLayout, 0, numLayouts)
	for j := 0; j < numLayouts; j++ {
		var layout entities.IndustryLayout
		borrowed := false

		for k := 0; ; k++ {
			if bytesRead >= defSize {
				glog.V(3).Infof("readIndustryLayouts: industry %d overruns its declared layout size", id)
				defSize = 0xFFFFFFFF // warn once
			}

			x := r.ReadByte()
			bytesRead++

			if x == 0xFE && k == 0 {
				// Borrow a construction layout from an original industry.
				// The original tables are not part of the decode state, so
				// only the reference is checked.
				industryType := r.ReadByte()
				r.ReadByte() // layout index
				bytesRead += 2
				if int(industryType) >= entities.ORIGINAL_INDUSTRIES {
					glog.V(1).Infof("readIndustryLayouts: industry %d borrows a layout from invalid original %d",
						id, industryType)
					l.disableGRF("invalid entity id", nil)
					return nil, CIR_DISABLED
				}
				borrowed = true
				break
			}

			y := r.ReadByte()
			bytesRead++
			if x == 0 && y == 0x80 {
				break
			}

			gfx := r.ReadByte()
			bytesRead++

			tile := entities.IndustryLayoutTile{X: int8(x), Y: int8(y)}
			switch {
			case gfx == 0xFE: // a tile of this file, resolved after loading
				tile.Gfx = entities.IndustryGfx(r.ReadWord())
				tile.Local = true
				bytesRead += 2
			case entities.IndustryGfx(gfx) == entities.GFX_WATERTILE_SPECIALCHECK:
				tile.Gfx = entities.GFX_WATERTILE_SPECIALCHECK
				// Before version 8 the offsets were one 16 bit value, where
				// a negative x pushed y one tile over.
				if f.grfVersion < 8 && tile.X < 0 {
					tile.Y++
				}
			default:
				tile.Gfx = entities.IndustryGfx(gfx)
			}
			layout = append(layout, tile)
		}

		if borrowed {
			layouts = append(layouts, nil)
			continue
		}
		if !validateIndustryLayout(layout) {
			glog.V(1).Infof("readIndustryLayouts: invalid construction layout for industry %d, ignoring", id)
			continue
		}
		layouts = append(layouts, layout)
	}
	return layouts, CIR_SUCCESS
}

// industriesChangeInfo applies action 0 industry properties. Industries are
// independent of each other, so a bad id skips just that industry.
func industriesChangeInfo(l *Loader, r *grf.Reader, prop uint16, first, num int) changeInfoResult {
	f := l.cur.file

	if first+num > INDUSTRIES_PER_GRF {
		glog.V(1).Infof("industriesChangeInfo: industry %d out of range (max %d per file), ignoring",
			first+num-1, INDUSTRIES_PER_GRF)
		return CIR_INVALID_ID
	}

	if len(f.industries) < first+num {
		f.industries = append(f.industries, make([]*entities.IndustrySpec, first+num-len(f.industries))...)
	}

	for i := 0; i < num; i++ {
		spec := f.industries[first+i]

		if spec == nil && prop != 0x08 {
			glog.V(2).Infof("industriesChangeInfo: property 0x%02X for undefined industry %d, ignoring",
				prop, first+i)
			if cir := ignoreIndustryProperty(r, prop); cir != CIR_SUCCESS {
				return cir
			}
			continue
		}

		switch prop {
		case 0x08: // substitute type, defines the industry
			sub := r.ReadByte()
			if sub == 0xFF {
				// Not a definition: disables the original industry with
				// this id instead.
				if first+i < entities.ORIGINAL_INDUSTRIES {
					l.Tables.Industries.Spec(entities.IndustryID(first+i)).Enabled = false
				}
				continue
			}
			if int(sub) >= entities.ORIGINAL_INDUSTRIES {
				glog.V(2).Infof("industriesChangeInfo: substitute %d for industry %d is not an original type, ignoring",
					sub, first+i)
				continue
			}
			if spec == nil {
				is := *l.Tables.Industries.Spec(entities.IndustryID(sub))
				spec = &is
				spec.Enabled = true
				spec.Props = entities.GRFProps{}
				spec.Props.SetGRF(f.grfid, uint16(first+i))
				spec.SubstituteID = entities.IndustryID(sub)
				spec.OverrideID = entities.INVALID_INDUSTRY
				f.industries[first+i] = spec
			}

		case 0x09: // take over an original industry's appearances
			override := r.ReadByte()
			if int(override) >= entities.ORIGINAL_INDUSTRIES {
				glog.V(2).Infof("industriesChangeInfo: industry %d cannot override non-original %d, ignoring",
					first+i, override)
				continue
			}
			spec.OverrideID = entities.IndustryID(override)

		case 0x0A: // construction layouts
			layouts, cir := l.readIndustryLayouts(r, first+i)
			if cir != CIR_SUCCESS {
				return cir
			}
			spec.Layouts = layouts

		case 0x0B:
			spec.LifeType = r.ReadByte()

		case 0x0C:
			s := spec
			l.addStringForMapping(grftext.GRFStringID(r.ReadWord()), func(str grftext.StringID) {
				s.ClosureText = str
			})

		case 0x0D:
			s := spec
			l.addStringForMapping(grftext.GRFStringID(r.ReadWord()), func(str grftext.StringID) {
				s.ProductionUpText = str
			})

		case 0x0E:
			s := spec
			l.addStringForMapping(grftext.GRFStringID(r.ReadWord()), func(str grftext.StringID) {
				s.ProductionDownText = str
			})

		case 0x0F:
			spec.CostMultiplier = r.ReadByte()

		case 0x10: // produced cargo types, fixed two slots
			if len(spec.ProducedCargo) < 2 {
				spec.ProducedCargo = append(spec.ProducedCargo,
					make([]entities.CargoType, 2-len(spec.ProducedCargo))...)
			}
			for j := 0; j < 2; j++ {
				spec.ProducedCargo[j] = l.cargoTranslation(r.ReadByte(), false)
			}

		case 0x11: // accepted cargo types, fixed three slots
			if len(spec.AcceptedCargo) < 3 {
				spec.AcceptedCargo = append(spec.AcceptedCargo,
					make([]entities.CargoType, 3-len(spec.AcceptedCargo))...)
			}
			for j := 0; j < 3; j++ {
				spec.AcceptedCargo[j] = l.cargoTranslation(r.ReadByte(), false)
			}
			r.ReadByte() // unused

		case 0x12, 0x13: // production rates
			if len(spec.ProductionRates) < 2 {
				spec.ProductionRates = append(spec.ProductionRates,
					make([]uint8, 2-len(spec.ProductionRates))...)
			}
			spec.ProductionRates[prop-0x12] = r.ReadByte()

		case 0x14:
			spec.MinimalDistributed = r.ReadByte()

		case 0x15: // random sound effects
			count := int(r.ReadByte())
			sounds := make([]uint8, count)
			for j := range sounds {
				sounds[j] = r.ReadByte()
			}
			spec.Sounds = sounds

		case 0x16: // conflicting industry types
			for j := 0; j < 3; j++ {
				if raw := r.ReadByte(); raw == 0xFF {
					spec.Conflicting[j] = entities.INVALID_INDUSTRY
				} else {
					spec.Conflicting[j] = entities.IndustryID(raw)
				}
			}

		case 0x17:
			spec.AppearCreation = r.ReadByte()

		case 0x18:
			spec.AppearInGame = r.ReadByte()

		case 0x19:
			spec.MapColour = r.ReadByte()

		case 0x1A:
			spec.BehaviourFlags = r.ReadDWord()

		case 0x1B:
			s := spec
			l.addStringForMapping(grftext.GRFStringID(r.ReadWord()), func(str grftext.StringID) {
				s.NewIndustryText = str
			})

		case 0x1C, 0x1D, 0x1E: // input multipliers of the first three slots
			raw := r.ReadDWord()
			row := int(prop - 0x1C)
			spec.InputMultipliers = growMultipliers(spec.InputMultipliers, row+1, 2)
			spec.InputMultipliers[row][0] = uint16(raw)
			spec.InputMultipliers[row][1] = uint16(raw >> 16)

		case 0x1F:
			s := spec
			l.addStringForMapping(grftext.GRFStringID(r.ReadWord()), func(str grftext.StringID) {
				s.Name = str
			})

		case 0x20:
			spec.ProspectingChance = r.ReadDWord()

		case 0x21:
			spec.CallbackMask = spec.CallbackMask&0xFF00 | uint16(r.ReadByte())

		case 0x22:
			spec.CallbackMask = spec.CallbackMask&0x00FF | uint16(r.ReadByte())<<8

		case 0x23:
			spec.RemovalCostMultiplier = r.ReadDWord()

		case 0x24: // name for nearby stations, zero restores the default
			word := r.ReadWord()
			if word == 0 {
				spec.StationName = grftext.STR_EMPTY
				continue
			}
			s := spec
			l.addStringForMapping(grftext.GRFStringID(word), func(str grftext.StringID) {
				s.StationName = str
			})

		case 0x25: // produced cargo list
			count := int(r.ReadByte())
			if count > entities.INDUSTRY_NUM_OUTPUTS {
				e := l.disableGRF("list property too long", nil)
				if e != nil {
					e.ParamValues = []uint32{uint32(entities.GSF_INDUSTRIES), uint32(prop)}
				}
				return CIR_DISABLED
			}
			spec.ProducedCargo = make([]entities.CargoType, count)
			for j := range spec.ProducedCargo {
				spec.ProducedCargo[j] = l.cargoTranslation(r.ReadByte(), false)
			}

		case 0x26: // accepted cargo list
			count := int(r.ReadByte())
			if count > entities.INDUSTRY_NUM_INPUTS {
				e := l.disableGRF("list property too long", nil)
				if e != nil {
					e.ParamValues = []uint32{uint32(entities.GSF_INDUSTRIES), uint32(prop)}
				}
				return CIR_DISABLED
			}
			spec.AcceptedCargo = make([]entities.CargoType, count)
			for j := range spec.AcceptedCargo {
				spec.AcceptedCargo[j] = l.cargoTranslation(r.ReadByte(), false)
			}

		case 0x27: // production rate list
			count := int(r.ReadByte())
			if count > entities.INDUSTRY_NUM_OUTPUTS {
				e := l.disableGRF("list property too long", nil)
				if e != nil {
					e.ParamValues = []uint32{uint32(entities.GSF_INDUSTRIES), uint32(prop)}
				}
				return CIR_DISABLED
			}
			spec.ProductionRates = make([]uint8, count)
			for j := range spec.ProductionRates {
				spec.ProductionRates[j] = r.ReadByte()
			}

		case 0x28: // full input/output multiplier matrix
			inputs := int(r.ReadByte())
			outputs := int(r.ReadByte())
			if inputs > entities.INDUSTRY_NUM_INPUTS || outputs > entities.INDUSTRY_NUM_OUTPUTS {
				e := l.disableGRF("list property too long", nil)
				if e != nil {
					e.ParamValues = []uint32{uint32(entities.GSF_INDUSTRIES), uint32(prop)}
				}
				return CIR_DISABLED
			}
			m := make([][]uint16, inputs)
			for j := range m {
				m[j] = make([]uint16, outputs)
				for k := range m[j] {
					m[j][k] = r.ReadWord()
				}
			}
			spec.InputMultipliers = m

		case 0x29:
			spec.Badges = readBadgeList(l, r, entities.GSF_INDUSTRIES)

		default:
			return CIR_UNKNOWN
		}
	}
	return CIR_SUCCESS
}

// ignoreIndustryTileProperty consumes one industry tile property value
// without applying it.
func ignoreIndustryTileProperty(r *grf.Reader, prop uint16) changeInfoResult {
	switch prop {
	case 0x09, 0x0D, 0x0E, 0x10, 0x11, 0x12:
		r.ReadByte()

	case 0x0A, 0x0B, 0x0C, 0x0F:
		r.ReadWord()

	case 0x13:
		r.Skip(int(r.ReadByte()) * 2)

	case 0x14:
		skipBadgeList(r)

	default:
		return CIR_UNKNOWN
	}
	return CIR_SUCCESS
}

// industryTilesChangeInfo applies action 0 industry tile properties.
func industryTilesChangeInfo(l *Loader, r *grf.Reader, prop uint16, first, num int) changeInfoResult {
	f := l.cur.file

	if first+num > INDUSTRY_TILES_PER_GRF {
		glog.V(1).Infof("industryTilesChangeInfo: tile %d out of range (max %d per file), ignoring",
			first+num-1, INDUSTRY_TILES_PER_GRF)
		return CIR_INVALID_ID
	}

	if len(f.industryTiles) < first+num {
		f.industryTiles = append(f.industryTiles, make([]*entities.IndustryTileSpec, first+num-len(f.industryTiles))...)
	}

	for i := 0; i < num; i++ {
		spec := f.industryTiles[first+i]

		if spec == nil && prop != 0x08 {
			glog.V(2).Infof("industryTilesChangeInfo: property 0x%02X for undefined tile %d, ignoring",
				prop, first+i)
			if cir := ignoreIndustryTileProperty(r, prop); cir != CIR_SUCCESS {
				return cir
			}
			continue
		}

		switch prop {
		case 0x08: // substitute type, defines the tile
			sub := r.ReadByte()
			if int(sub) >= entities.ORIGINAL_INDUSTRY_TILES {
				glog.V(2).Infof("industryTilesChangeInfo: substitute %d for tile %d is not an original type, ignoring",
					sub, first+i)
				continue
			}
			if spec == nil {
				ts := *l.Tables.IndustryTiles.Spec(entities.IndustryGfx(sub))
				spec = &ts
				spec.Enabled = true
				spec.Props = entities.GRFProps{}
				spec.Props.SetGRF(f.grfid, uint16(first+i))
				spec.SubstituteID = entities.IndustryGfx(sub)
				spec.OverrideID = entities.INVALID_INDUSTRY_TILE
				f.industryTiles[first+i] = spec
			}

		case 0x09: // take over an original tile's appearances
			override := r.ReadByte()
			if int(override) >= entities.ORIGINAL_INDUSTRY_TILES {
				glog.V(2).Infof("industryTilesChangeInfo: tile %d cannot override non-original %d, ignoring",
					first+i, override)
				continue
			}
			spec.OverrideID = entities.IndustryGfx(override)

		case 0x0A, 0x0B, 0x0C: // acceptance slots, cargo and amount packed
			packed := r.ReadWord()
			amount := uint8(packed >> 8)
			if amount > 16 {
				amount = 16
			}
			spec.Acceptance[prop-0x0A] = entities.CargoAcceptance{
				Cargo:  l.cargoTranslation(uint8(packed), false),
				Amount: amount,
			}

		case 0x0D:
			spec.SlopesRefused = r.ReadByte()

		case 0x0E:
			spec.CallbackMask = r.ReadByte()

		case 0x0F:
			spec.Animation.Frames = r.ReadByte()
			spec.Animation.Status = r.ReadByte()

		case 0x10:
			spec.Animation.Speed = r.ReadByte()

		case 0x11:
			spec.Animation.Triggers = uint16(r.ReadByte())

		case 0x12:
			spec.SpecialFlags = r.ReadByte()

		case 0x13: // full acceptance list
			count := int(r.ReadByte())
			if count > len(spec.Acceptance) {
				e := l.disableGRF("list property too long", nil)
				if e != nil {
					e.ParamValues = []uint32{uint32(entities.GSF_INDUSTRYTILES), uint32(prop)}
				}
				return CIR_DISABLED
			}
			for j := range spec.Acceptance {
				if j < count {
					spec.Acceptance[j].Cargo = l.cargoTranslation(r.ReadByte(), false)
					// Negative amounts counteract the accept-all flag.
					spec.Acceptance[j].Amount = r.ReadByte()
				} else {
					spec.Acceptance[j] = entities.CargoAcceptance{Cargo: entities.INVALID_CARGO}
				}
			}

		case 0x14:
			spec.Badges = readBadgeList(l, r, entities.GSF_INDUSTRYTILES)

		default:
			return CIR_UNKNOWN
		}
	}
	return CIR_SUCCESS
}
