package newgrf

import (
	"github.com/golang/glog"

	"badc0de.net/pkg/go-newgrf/entities"
	"badc0de.net/pkg/go-newgrf/grf"
)

// changeInfoResult grades the outcome of applying one property to a run of
// entity ids.
type changeInfoResult uint8

const (
	CIR_SUCCESS    changeInfoResult = iota // applied, or safely discarded
	CIR_DISABLED                           // the applier already disabled the file
	CIR_UNHANDLED                          // known but ignored, bytes consumed
	CIR_UNKNOWN                            // no idea how big the value is
	CIR_INVALID_ID                         // entity id out of range
)

// propApplier applies one property of one feature to the ids first..first+num-1.
// The reader is positioned at the first value byte.
type propApplier func(l *Loader, r *grf.Reader, prop uint16, first, num int) changeInfoResult

// propAppliers is indexed by feature. Cargo definitions run during the
// reserve stage instead, and bridges keep their original table.
var propAppliers = [entities.GSF_END]propApplier{
	entities.GSF_TRAINS:        railVehicleChangeInfo,
	entities.GSF_ROADVEHICLES:  roadVehicleChangeInfo,
	entities.GSF_SHIPS:         shipVehicleChangeInfo,
	entities.GSF_AIRCRAFT:      aircraftVehicleChangeInfo,
	entities.GSF_STATIONS:      stationChangeInfo,
	entities.GSF_CANALS:        canalChangeInfo,
	entities.GSF_HOUSES:        townHouseChangeInfo,
	entities.GSF_GLOBALVAR:     globalVarChangeInfo,
	entities.GSF_INDUSTRYTILES: industryTilesChangeInfo,
	entities.GSF_INDUSTRIES:    industriesChangeInfo,
	entities.GSF_SOUNDFX:       soundEffectChangeInfo,
	entities.GSF_AIRPORTS:      airportChangeInfo,
	entities.GSF_SIGNALS:       signalsChangeInfo,
	entities.GSF_OBJECTS:       objectChangeInfo,
	entities.GSF_RAILTYPES:     railTypeChangeInfo,
	entities.GSF_AIRPORTTILES:  airportTilesChangeInfo,
	entities.GSF_ROADTYPES:     roadTypeChangeInfo,
	entities.GSF_TRAMTYPES:     tramTypeChangeInfo,
	entities.GSF_ROADSTOPS:     roadStopChangeInfo,
	entities.GSF_BADGES:        badgeChangeInfo,
	entities.GSF_NEWLANDSCAPE:  newLandscapeChangeInfo,
}

// handleChangeInfoResult reacts to an applier outcome. True means stop
// decoding the record.
func (l *Loader) handleChangeInfoResult(caller string, cir changeInfoResult, feature entities.Feature, prop uint16) bool {
	switch cir {
	case CIR_SUCCESS:
		return false

	case CIR_DISABLED:
		return true

	case CIR_UNHANDLED:
		glog.V(1).Infof("%s: ignoring property 0x%02X of %s (not implemented)", caller, prop, feature)
		return false

	case CIR_UNKNOWN:
		glog.Errorf("%s: unknown property 0x%02X of %s, disabling", caller, prop, feature)
		e := l.disableGRF("unknown property", nil)
		if e != nil {
			e.ParamValues = []uint32{uint32(feature), uint32(prop)}
		}
		return true

	case CIR_INVALID_ID:
		e := l.disableGRF("invalid entity id", nil)
		if e != nil {
			e.ParamValues = []uint32{uint32(feature), uint32(prop)}
		}
		return true
	}
	return true
}

// featureChangeInfo is the activation stage form of action 0: look up the
// feature's applier and run it once per property.
func featureChangeInfo(l *Loader, r *grf.Reader) {
	rawFeature := r.ReadByte()
	numProps := r.ReadByte()
	numInfo := int(r.ReadByte())
	firstID := int(r.ReadExtendedByte())

	feature, ok := l.resolveFeature(rawFeature)
	if !ok {
		return
	}
	if feature >= entities.GSF_END {
		glog.V(1).Infof("featureChangeInfo: unsupported feature 0x%02X, skipping", rawFeature)
		return
	}

	glog.V(6).Infof("featureChangeInfo: %s, %d properties for ids %d..%d",
		feature, numProps, firstID, firstID+numInfo-1)

	applier := propAppliers[feature]
	if applier == nil {
		if feature != entities.GSF_CARGOES {
			glog.V(1).Infof("featureChangeInfo: unsupported feature %s, skipping", feature)
		}
		return
	}

	l.cur.file.grfFeatures |= 1 << feature

	for ; numProps > 0 && r.HasData(); numProps-- {
		prop, payload := l.readPropertyID(r, feature)
		if prop == propFailed {
			return
		}
		if prop == propIgnored {
			continue
		}
		src := r
		if payload != nil {
			src = payload
		}
		if l.handleChangeInfoResult("featureChangeInfo", applier(l, src, prop, firstID, numInfo), feature, prop) {
			return
		}
	}
}

// safeChangeInfo decides whether an action 0 is acceptable in a static
// file. Bridge table tweaks are, and so are engine redirections whose
// sources all belong to static files. Everything else rejects the file.
func safeChangeInfo(l *Loader, r *grf.Reader) {
	rawFeature := r.ReadByte()
	numProps := r.ReadByte()
	numInfo := int(r.ReadByte())
	r.ReadExtendedByte() // first id

	feature, ok := l.resolveFeature(rawFeature)
	if !ok {
		return
	}

	if feature == entities.GSF_BRIDGES && numProps == 1 {
		prop, _ := l.readPropertyID(r, feature)
		// Rearranging bridge sprite tables touches no shared state.
		if prop == 0x0D {
			return
		}
	} else if feature == entities.GSF_GLOBALVAR && numProps == 1 {
		prop, _ := l.readPropertyID(r, feature)
		if prop == 0x11 {
			safe := true
			for i := 0; i < numInfo; i++ {
				source := r.ReadDWord()
				r.ReadDWord() // target
				c := l.GetGRFConfig(source, 0xFFFFFFFF)
				if c != nil && !c.HasFlag(GCF_STATIC) {
					safe = false
					break
				}
			}
			if safe {
				return
			}
		}
	}

	l.cur.cfg.Flags |= GCF_UNSAFE
	l.cur.skipSprites = -1
}

// reserveChangeInfo runs the action 0 subsets that must happen before
// activation: cargo definitions, translation tables, engine redirections
// and track type label allocation.
func reserveChangeInfo(l *Loader, r *grf.Reader) {
	rawFeature := r.ReadByte()

	feature, ok := l.resolveFeature(rawFeature)
	if !ok {
		return
	}
	switch feature {
	case entities.GSF_CARGOES, entities.GSF_GLOBALVAR, entities.GSF_RAILTYPES,
		entities.GSF_ROADTYPES, entities.GSF_TRAMTYPES:
	default:
		return
	}

	numProps := r.ReadByte()
	numInfo := int(r.ReadByte())
	firstID := int(r.ReadExtendedByte())

	for ; numProps > 0 && r.HasData(); numProps-- {
		prop, payload := l.readPropertyID(r, feature)
		if prop == propFailed {
			return
		}
		if prop == propIgnored {
			continue
		}
		src := r
		if payload != nil {
			src = payload
		}

		var cir changeInfoResult
		switch feature {
		case entities.GSF_CARGOES:
			cir = cargoChangeInfo(l, src, prop, firstID, numInfo)
		case entities.GSF_GLOBALVAR:
			cir = globalVarReserveInfo(l, src, prop, firstID, numInfo)
		case entities.GSF_RAILTYPES:
			cir = railTypeReserveInfo(l, src, prop, firstID, numInfo)
		case entities.GSF_ROADTYPES:
			cir = roadTypeReserveInfo(l, src, prop, firstID, numInfo, false)
		case entities.GSF_TRAMTYPES:
			cir = roadTypeReserveInfo(l, src, prop, firstID, numInfo, true)
		}

		if l.handleChangeInfoResult("reserveChangeInfo", cir, feature, prop) {
			return
		}
	}
}

// loadTranslationTable reads a label list into a per-file translation
// table. A file redirected into another file's engine scope shares its
// tables with the redirect target.
func (l *Loader) loadTranslationTable(r *grf.Reader, first, num int, table *[]grf.Label, name string, pick func(*File) *[]grf.Label) changeInfoResult {
	if first != 0 {
		glog.V(1).Infof("loadTranslationTable: %s table must start at zero", name)
		return CIR_INVALID_ID
	}

	*table = (*table)[:0]
	for i := 0; i < num; i++ {
		*table = append(*table, r.ReadLabel())
	}

	if target := l.engineOverrideTarget(); target != nil {
		*pick(target) = append([]grf.Label(nil), (*table)...)
	}
	return CIR_SUCCESS
}

// engineOverrideTarget returns the loaded file this file's engine
// definitions are redirected to, if any.
func (l *Loader) engineOverrideTarget() *File {
	scope := l.Tables.Engines.ScopeGRFID(l.cur.file.grfid)
	if scope == l.cur.file.grfid {
		return nil
	}
	return l.fileByGRFID(scope)
}

// globalVarReserveInfo handles the global variable properties that take
// effect before activation. The rest is consumed size-correctly and left
// to the activation pass.
func globalVarReserveInfo(l *Loader, r *grf.Reader, prop uint16, first, num int) changeInfoResult {
	f := l.cur.file

	switch prop {
	case 0x09:
		return l.loadTranslationTable(r, first, num, &f.cargoList, "cargo",
			func(t *File) *[]grf.Label { return &t.cargoList })
	case 0x12:
		return l.loadTranslationTable(r, first, num, &f.railTypeList, "rail type",
			func(t *File) *[]grf.Label { return &t.railTypeList })
	case 0x16:
		return l.loadTranslationTable(r, first, num, &f.roadTypeList, "road type",
			func(t *File) *[]grf.Label { return &t.roadTypeList })
	case 0x17:
		return l.loadTranslationTable(r, first, num, &f.tramTypeList, "tram type",
			func(t *File) *[]grf.Label { return &t.tramTypeList })
	}

	for id := first; id < first+num; id++ {
		switch prop {
		case 0x08, 0x15: // cost base factor, plural form
			r.ReadByte()

		case 0x0A, 0x0C, 0x0F: // currency names, options, euro dates
			r.ReadWord()

		case 0x0B, 0x0D, 0x0E: // currency multipliers, prefixes, suffixes
			r.ReadDWord()

		case 0x10:
			r.Skip(entities.SNOW_LINE_MONTHS * entities.SNOW_LINE_DAYS)

		case 0x11: // engine scope redirection
			source := r.ReadDWord()
			target := r.ReadDWord()
			l.Tables.Engines.AddOverride(source, target)

		case 0x13, 0x14: // gender and case tables
			for r.ReadByte() != 0 {
				r.ReadString()
			}

		default:
			return CIR_UNKNOWN
		}
	}
	return CIR_SUCCESS
}

// skipBadgeList consumes a badge reference list without applying it.
func skipBadgeList(r *grf.Reader) {
	n := r.ReadWord()
	for i := uint16(0); i < n; i++ {
		r.ReadWord()
	}
}

// readBadgeList resolves a badge reference list through the file's local
// badge ids and marks each badge as used by the feature.
func readBadgeList(l *Loader, r *grf.Reader, feature entities.Feature) []entities.BadgeID {
	f := l.cur.file
	n := int(r.ReadWord())
	out := make([]entities.BadgeID, 0, n)
	for i := 0; i < n; i++ {
		idx := r.ReadWord()
		id, ok := f.badgeMap[idx]
		if !ok {
			glog.V(1).Infof("readBadgeList: %s: badge %d not defined, skipping", feature, idx)
			continue
		}
		if b := l.Tables.Badges.Badge(id); b != nil {
			b.SeenFeatures |= 1 << feature
		}
		out = append(out, id)
	}
	return out
}
