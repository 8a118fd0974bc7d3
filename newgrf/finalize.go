package newgrf

import (
	"github.com/golang/glog"

	"badc0de.net/pkg/go-newgrf/entities"
	"badc0de.net/pkg/go-newgrf/grftext"
)

// finalize runs once after the activation stage finished for every file. It
// folds the per-engine scratch state into the pools, binds the per-file
// entity definitions, propagates price base multipliers, resolves track
// type masks and drains the deferred string references.
func (l *Loader) finalize() {
	l.finalizeEngines()
	l.finalizeHouses()
	l.finalizeIndustries()
	l.finalizeAirports()
	l.finalizePriceBases()

	l.Tables.RailTypes.ResolveMasks()
	l.Tables.RoadTypes.ResolveMasks()

	l.resolveStringMappings()
	l.tempEngines = make(map[entities.EngineID]*engineTempData)
}

// finalizeEngines resolves everything a vehicle definition could only say
// symbolically while other files were still loading: track type labels,
// the road vehicle speed unit and the refit masks.
func (l *Loader) finalizeEngines() {
	for _, e := range l.Tables.Engines.All() {
		t := l.tempEngines[e.ID]

		switch e.Kind {
		case entities.VEH_TRAIN:
			l.finalizeRailType(e, t)
		case entities.VEH_ROAD:
			l.finalizeRoadType(e, t)
			if t != nil && t.rvMaxSpeed != 0 {
				// The speed property arrives in its halved unit.
				e.Road.Speed = uint16(t.rvMaxSpeed) * 4
			}
		}

		l.finalizeRefitMask(e, t)
	}
}

func (l *Loader) finalizeRailType(e *entities.Engine, t *engineTempData) {
	if t == nil || t.railTypeLabel == 0 {
		return
	}
	id := l.Tables.RailTypes.LabelLookup(t.railTypeLabel)
	if id == entities.INVALID_TRACK_TYPE {
		glog.V(1).Infof("finalize: engine %d wants unknown rail type %s, disabling it", e.ID, t.railTypeLabel)
		e.Info.ClimateAvailability = 0
		return
	}
	e.Rail.TrackType = uint8(id)
}

func (l *Loader) finalizeRoadType(e *entities.Engine, t *engineTempData) {
	if t == nil || t.roadTramType == 0 {
		return
	}
	f := l.fileByGRFID(e.Props.GRFID)
	if f == nil {
		return
	}
	raw := int(t.roadTramType - 1)

	list := f.roadTypeList
	slots := f.roadTypeMap[:]
	if e.Road.IsTram {
		list = f.tramTypeList
		slots = f.tramTypeMap[:]
	}
	// Files without a translation table address the stock slot zero only.
	if len(list) > 0 && raw >= len(list) {
		glog.V(1).Infof("finalize: engine %d track type %d outside the file's table, disabling it", e.ID, raw)
		e.Info.ClimateAvailability = 0
		return
	}
	if raw >= len(slots) || slots[raw] == entities.INVALID_TRACK_TYPE {
		glog.V(1).Infof("finalize: engine %d wants undefined track type %d, disabling it", e.ID, raw)
		e.Info.ClimateAvailability = 0
		return
	}
	e.Road.TrackType = uint8(slots[raw])
}

// finalizeRefitMask computes an engine's effective refit mask from the
// class sets and explicit lists its properties declared, then validates the
// default cargo against it.
func (l *Loader) finalizeRefitMask(e *entities.Engine, t *engineTempData) {
	ct := l.Tables.Cargo
	valid := ct.ValidMask()

	var onlyDefault bool
	if t != nil && t.refittability != REFIT_UNSET {
		var mask, notMask entities.CargoMask
		if t.cargoAllowed != 0 {
			mask = l.classRefitMask(t.cargoAllowed, t.cargoAllowedRequired)
		}
		notMask = ct.ClassMask(t.cargoDisallowed, 0)

		// A definition that spoke about refitting but added no cargo keeps
		// only its default cargo.
		onlyDefault = t.refittability != REFIT_NONEMPTY

		e.Info.RefitMask = ((mask &^ notMask) ^ e.Info.RefitMask) & valid
		e.Info.RefitMask |= t.cttInclude
		e.Info.RefitMask &^= t.cttExclude
		e.Info.RefitMask &= valid
	} else {
		e.Info.RefitMask &= valid
		onlyDefault = e.Info.RefitMask == 0
	}

	if !onlyDefault && e.Info.CargoType != entities.INVALID_CARGO &&
		e.Info.RefitMask&(1<<uint(e.Info.CargoType)) == 0 {
		e.Info.CargoType = entities.INVALID_CARGO
	}

	if e.Info.CargoType == entities.INVALID_CARGO && e.Info.RefitMask != 0 {
		e.Info.CargoType = l.pickDefaultCargo(e, t)
	}
	if e.Info.CargoType == entities.INVALID_CARGO && e.Props.HasGRF() {
		glog.V(2).Infof("finalize: engine %d carries nothing, unavailable", e.ID)
		e.Info.ClimateAvailability = 0
	}
}

// classRefitMask builds the cargo mask of the allowed classes, keeping only
// cargos that carry every required class.
func (l *Loader) classRefitMask(allowed, required entities.CargoClasses) entities.CargoMask {
	ct := l.Tables.Cargo
	var mask entities.CargoMask
	for i := 0; i < entities.NUM_CARGO; i++ {
		cs := ct.Spec(entities.CargoType(i))
		if !cs.IsValid() || cs.Classes&allowed == 0 {
			continue
		}
		if cs.Classes&required != required {
			continue
		}
		mask |= 1 << uint(i)
	}
	return mask
}

// pickDefaultCargo chooses a default cargo from a refit mask, preferring
// the order of the defining file's cargo translation table when it has one.
func (l *Loader) pickDefaultCargo(e *entities.Engine, t *engineTempData) entities.CargoType {
	f := t.fileForDefaultCargo(l, e)
	if f != nil && f.grfVersion >= 8 && len(f.cargoList) > 0 {
		best := entities.INVALID_CARGO
		bestSlot := uint8(0xFF)
		for i := 0; i < entities.NUM_CARGO; i++ {
			if e.Info.RefitMask&(1<<uint(i)) == 0 {
				continue
			}
			if slot := f.cargoMap[i]; slot < bestSlot {
				bestSlot = slot
				best = entities.CargoType(i)
			}
		}
		if best != entities.INVALID_CARGO {
			return best
		}
	}
	for i := 0; i < entities.NUM_CARGO; i++ {
		if e.Info.RefitMask&(1<<uint(i)) != 0 {
			return entities.CargoType(i)
		}
	}
	return entities.INVALID_CARGO
}

// fileForDefaultCargo returns the file whose cargo environment governs the
// default cargo choice: the one that set the default cargo property, or the
// engine's defining file.
func (t *engineTempData) fileForDefaultCargo(l *Loader, e *entities.Engine) *File {
	if t != nil && t.defaultCargoFile != nil {
		return t.defaultCargoFile
	}
	if e.Props.HasGRF() {
		return l.fileByGRFID(e.Props.GRFID)
	}
	return nil
}

// finalizeHouses copies every file's building definitions into the pool
// and resolves the visual overrides afterwards, first declaration winning.
func (l *Loader) finalizeHouses() {
	for _, f := range l.files {
		for _, hs := range f.houses {
			if hs == nil || !hs.Enabled {
				continue
			}
			id := l.Tables.Houses.Append(hs)
			glog.V(3).Infof("finalize: house %d of %s registered as %d", hs.Props.LocalID, f.Config.GetName(), id)
		}
	}
	l.Tables.Houses.ResolveOverrides()
}

func (l *Loader) finalizeIndustries() {
	for _, f := range l.files {
		for _, is := range f.industries {
			if is == nil || !is.Enabled {
				continue
			}
			l.Tables.Industries.Append(is)
		}
		for _, ts := range f.industryTiles {
			if ts == nil || !ts.Enabled {
				continue
			}
			l.Tables.IndustryTiles.Append(ts)
		}
	}
	l.Tables.Industries.ResolveOverrides()
	l.Tables.IndustryTiles.ResolveOverrides()
}

func (l *Loader) finalizeAirports() {
	for _, f := range l.files {
		for _, as := range f.airports {
			if as != nil {
				l.Tables.Airports.Append(as)
			}
		}
		for _, ts := range f.airportTiles {
			if ts != nil {
				l.Tables.AirportTiles.Append(ts)
			}
		}
	}
}

// Features whose price multipliers travel along an engine override
// declaration.
const priceOverrideFeatures uint32 = 1<<entities.GSF_TRAINS | 1<<entities.GSF_ROADVEHICLES |
	1<<entities.GSF_SHIPS | 1<<entities.GSF_AIRCRAFT

// finalizePriceBases applies the price base multipliers the files declared.
// Multipliers first travel along the engine override pairs, forward to an
// earlier base set and backward to a later one, then files that never ran
// their vehicle feature fall back per price, and finally the survivors hit
// the shared price table in load order.
func (l *Loader) finalizePriceBases() {
	n := len(l.files)
	overrides := make([]int, n)
	index := make(map[*File]int, n)
	for i, f := range l.files {
		index[f] = i
	}
	for i, f := range l.files {
		overrides[i] = -1
		scope := l.Tables.Engines.ScopeGRFID(f.grfid)
		if scope == f.grfid {
			continue
		}
		if dest := l.fileByGRFID(scope); dest != nil {
			overrides[i] = index[dest]
		}
	}

	// A set overriding an earlier base set hands its multipliers over.
	for i, f := range l.files {
		if overrides[i] < 0 || overrides[i] >= i {
			continue
		}
		dest := l.files[overrides[i]]
		features := (f.grfFeatures | dest.grfFeatures) & priceOverrideFeatures
		f.grfFeatures |= features
		dest.grfFeatures |= features
		for p := entities.PriceKind(0); p < entities.PR_END; p++ {
			spec := entities.PriceSpecFor(p)
			if spec.Feature >= entities.GSF_END || features&(1<<spec.Feature) == 0 {
				continue
			}
			if f.priceMultipliers[p] != entities.INVALID_PRICE_MODIFIER {
				dest.priceMultipliers[p] = f.priceMultipliers[p]
			}
		}
	}

	// Overriding a set that loads later only fills slots it left unset.
	for i, f := range l.files {
		if overrides[i] < 0 || overrides[i] <= i {
			continue
		}
		dest := l.files[overrides[i]]
		features := (f.grfFeatures | dest.grfFeatures) & priceOverrideFeatures
		f.grfFeatures |= features
		dest.grfFeatures |= features
		for p := entities.PriceKind(0); p < entities.PR_END; p++ {
			spec := entities.PriceSpecFor(p)
			if spec.Feature >= entities.GSF_END || features&(1<<spec.Feature) == 0 {
				continue
			}
			if f.priceMultipliers[p] != entities.INVALID_PRICE_MODIFIER &&
				dest.priceMultipliers[p] == entities.INVALID_PRICE_MODIFIER {
				dest.priceMultipliers[p] = f.priceMultipliers[p]
			}
		}
	}

	// Old files inherit unset slots along the per-price fallback chain.
	for _, f := range l.files {
		if f.grfVersion >= 8 {
			continue
		}
		for p := entities.PriceKind(0); p < entities.PR_END; p++ {
			fallback := entities.PriceSpecFor(p).Fallback
			if fallback != entities.INVALID_PRICE && f.priceMultipliers[p] == entities.INVALID_PRICE_MODIFIER {
				f.priceMultipliers[p] = f.priceMultipliers[fallback]
			}
		}
	}

	for _, f := range l.files {
		for p := entities.PriceKind(0); p < entities.PR_END; p++ {
			mod := f.priceMultipliers[p]
			if mod == entities.INVALID_PRICE_MODIFIER {
				continue
			}
			spec := entities.PriceSpecFor(p)
			if spec.Feature < entities.GSF_END && f.grfFeatures&(1<<spec.Feature) == 0 {
				glog.V(1).Infof("finalize: %s sets price %d without using its feature, ignoring", f.Config.GetName(), p)
				continue
			}
			l.Tables.Prices.ApplyMultiplier(p, mod)
		}
	}
}

// resolveStringMappings drains the deferred text references now that every
// file had its chance to define texts.
func (l *Loader) resolveStringMappings() {
	for _, m := range l.stringMappings {
		id := l.Strings.MapGRFStringID(m.grfid, m.source)
		if id == grftext.STR_UNDEFINED {
			glog.V(1).Infof("finalize: string 0x%04X of grf %08X never defined", uint16(m.source), m.grfid)
		}
		m.apply(id)
	}
	l.stringMappings = nil
}
