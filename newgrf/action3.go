package newgrf

import (
	"github.com/golang/glog"

	"badc0de.net/pkg/go-newgrf/entities"
	"badc0de.net/pkg/go-newgrf/grf"
	"badc0de.net/pkg/go-newgrf/spritegroup"
)

// GenericCallback is a feature-wide callback chain bound without entity ids.
type GenericCallback struct {
	GRFID uint32
	Group *spritegroup.Group
}

// GenericCallbacks returns the feature-wide chains in bind order. Later
// files take precedence, so evaluators walk the list backwards.
func (l *Loader) GenericCallbacks(feature entities.Feature) []GenericCallback {
	if feature >= entities.GSF_END {
		return nil
	}
	return l.genericCallbacks[feature]
}

// mappedGroup resolves a binding reference. Bindings name defined groups
// only; they cannot carry inline callback results.
func (l *Loader) mappedGroup(caller string, groupid uint16) (*spritegroup.Group, bool) {
	f := l.cur.file
	if groupid > MAX_GROUP_ID || f.group(groupid) == nil {
		glog.V(1).Infof("%s: group 0x%04X out of range or empty, skipping", caller, groupid)
		return nil, false
	}
	return f.group(groupid), true
}

// translateCargo turns a cargo selector byte of a binding into a sprite
// group key. Two selector values are reserved: 0xFF keys the purchase list
// chain, and 0xFE the no-cargo default of station-like kinds.
func (l *Loader) translateCargo(feature entities.Feature, ctype uint8) (uint16, bool) {
	if (feature == entities.GSF_STATIONS || feature == entities.GSF_ROADSTOPS) && ctype == 0xFE {
		return entities.SG_DEFAULT_NA, true
	}
	if ctype == 0xFF {
		return entities.SG_PURCHASE, true
	}
	ct := l.cargoTranslation(ctype, false)
	if ct == entities.INVALID_CARGO {
		glog.V(5).Infof("translateCargo: cargo type %d unavailable, skipping", ctype)
		return 0, false
	}
	return uint16(ct), true
}

// featureMapSpriteGroup decodes an entity binding (action 3): a list of
// file-local entity ids, cargo-keyed chain references, and a trailing
// default. An empty id list declares a feature-wide callback instead.
func featureMapSpriteGroup(l *Loader, r *grf.Reader) {
	rawFeature := r.ReadByte()
	feature, ok := l.resolveFeature(rawFeature)
	if !ok {
		return
	}
	if feature >= entities.GSF_END {
		glog.V(1).Infof("featureMapSpriteGroup: unsupported feature 0x%02X, skipping", uint8(feature))
		return
	}

	idcount := r.ReadByte()

	if idcount == 0 {
		r.ReadByte() // cargo count, empty for feature-wide callbacks
		g, ok := l.mappedGroup("featureMapSpriteGroup", r.ReadWord())
		if !ok {
			return
		}
		glog.V(6).Infof("featureMapSpriteGroup: generic callback for feature %s", feature)
		l.genericCallbacks[feature] = append(l.genericCallbacks[feature], GenericCallback{l.cur.file.grfid, g})
		return
	}

	// Generic callbacks do not count as using the feature.
	l.cur.file.grfFeatures |= 1 << uint(feature)

	glog.V(6).Infof("featureMapSpriteGroup: feature %s, %d ids", feature, idcount)

	switch feature {
	case entities.GSF_TRAINS, entities.GSF_ROADVEHICLES, entities.GSF_SHIPS, entities.GSF_AIRCRAFT:
		l.mapVehicles(r, feature, idcount)
	case entities.GSF_STATIONS:
		l.mapStations(r, idcount)
	case entities.GSF_CANALS:
		l.mapCanals(r, idcount)
	case entities.GSF_HOUSES:
		l.mapHouses(r, idcount)
	case entities.GSF_INDUSTRIES:
		l.mapIndustries(r, idcount)
	case entities.GSF_INDUSTRYTILES:
		l.mapIndustryTiles(r, idcount)
	case entities.GSF_CARGOES:
		l.mapCargoes(r, idcount)
	case entities.GSF_AIRPORTS:
		l.mapAirports(r, idcount)
	case entities.GSF_AIRPORTTILES:
		l.mapAirportTiles(r, idcount)
	case entities.GSF_OBJECTS:
		l.mapObjects(r, idcount)
	case entities.GSF_ROADSTOPS:
		l.mapRoadStops(r, idcount)
	case entities.GSF_RAILTYPES:
		l.mapTrackTypes(r, idcount, "mapRailTypes", l.Tables.RailTypes, l.cur.file.railTypeMap[:])
	case entities.GSF_ROADTYPES:
		l.mapTrackTypes(r, idcount, "mapRoadTypes", l.Tables.RoadTypes, l.cur.file.roadTypeMap[:])
	case entities.GSF_TRAMTYPES:
		l.mapTrackTypes(r, idcount, "mapTramTypes", l.Tables.RoadTypes, l.cur.file.tramTypeMap[:])
	case entities.GSF_SIGNALS:
		l.mapSignals(r, idcount)
	case entities.GSF_BADGES:
		l.mapBadges(r, idcount)
	case entities.GSF_NEWLANDSCAPE:
		l.mapNewLandscape(r, idcount)
	default:
		glog.V(1).Infof("featureMapSpriteGroup: unsupported feature %s, skipping", feature)
	}
}

// mapVehicles binds engine graphics. A set id list with bit 7 of the count
// turns the record into a wagon override: the chains then apply to the
// listed wagons only while attached to the engines of the preceding plain
// binding.
func (l *Loader) mapVehicles(r *grf.Reader, feature entities.Feature, idcount uint8) {
	wagover := idcount&0x80 != 0
	idcount &= 0x7F

	if wagover {
		if len(l.lastEngines) == 0 {
			glog.Errorf("mapVehicles: wagon override with no engine to override")
			return
		}
		glog.V(6).Infof("mapVehicles: wagon override of %d engines on %d wagons", len(l.lastEngines), idcount)
	} else {
		l.lastEngines = l.lastEngines[:0]
	}

	engines := make([]entities.EngineID, 0, idcount)
	for i := uint8(0); i < idcount; i++ {
		e := l.engine(feature.VehicleKind(), r.ReadExtendedByte())
		if e == nil {
			// Half a binding is worse than none; the pool gave up.
			l.handleChangeInfoResult("mapVehicles", CIR_INVALID_ID, feature, 0)
			return
		}
		engines = append(engines, e.ID)
		if !wagover {
			l.lastEngines = append(l.lastEngines, e.ID)
		}
	}

	var leads []entities.EngineID
	if wagover {
		leads = append([]entities.EngineID(nil), l.lastEngines...)
	}

	cidcount := r.ReadByte()
	for c := uint8(0); c < cidcount; c++ {
		ctype := r.ReadByte()
		g, ok := l.mappedGroup("mapVehicles", r.ReadWord())
		if !ok {
			continue
		}
		key, ok := l.translateCargo(feature, ctype)
		if !ok {
			continue
		}
		for _, id := range engines {
			e := l.Tables.Engines.Engine(id)
			if wagover {
				e.AddWagonOverride(leads, key, g)
			} else {
				e.Props.SetSpriteGroup(key, g)
			}
		}
	}

	g, ok := l.mappedGroup("mapVehicles", r.ReadWord())
	if !ok {
		return
	}
	for _, id := range engines {
		e := l.Tables.Engines.Engine(id)
		if wagover {
			e.AddWagonOverride(leads, entities.SG_DEFAULT, g)
		} else {
			e.Props.SetSpriteGroup(entities.SG_DEFAULT, g)
		}
	}
}

func (l *Loader) mapStations(r *grf.Reader, idcount uint8) {
	f := l.cur.file
	if len(f.stations) == 0 {
		glog.V(1).Infof("mapStations: no stations defined, skipping")
		return
	}

	ids := make([]uint16, idcount)
	for i := range ids {
		ids[i] = r.ReadExtendedByte()
	}

	spec := func(id uint16) *entities.StationSpec {
		if int(id) >= len(f.stations) {
			return nil
		}
		return f.stations[id]
	}

	cidcount := r.ReadByte()
	for c := uint8(0); c < cidcount; c++ {
		ctype := r.ReadByte()
		g, ok := l.mappedGroup("mapStations", r.ReadWord())
		if !ok {
			continue
		}
		key, ok := l.translateCargo(entities.GSF_STATIONS, ctype)
		if !ok {
			continue
		}
		for _, id := range ids {
			s := spec(id)
			if s == nil {
				glog.V(1).Infof("mapStations: station %d undefined, skipping", id)
				continue
			}
			s.Props.SetSpriteGroup(key, g)
		}
	}

	g, ok := l.mappedGroup("mapStations", r.ReadWord())
	if !ok {
		return
	}
	for _, id := range ids {
		s := spec(id)
		if s == nil {
			glog.V(1).Infof("mapStations: station %d undefined, skipping", id)
			continue
		}
		if !s.Props.SetSpriteGroup(entities.SG_DEFAULT, g) {
			glog.V(1).Infof("mapStations: station %d mapped multiple times, skipping", id)
			continue
		}
		l.Tables.Stations.Insert(s)
	}
}

func (l *Loader) mapCanals(r *grf.Reader, idcount uint8) {
	ids := make([]uint16, idcount)
	for i := range ids {
		ids[i] = r.ReadExtendedByte()
	}

	cidcount := int(r.ReadByte())
	r.Skip(cidcount * 3)

	g, ok := l.mappedGroup("mapCanals", r.ReadWord())
	if !ok {
		return
	}
	for _, id := range ids {
		if id >= uint16(entities.CF_END) {
			glog.V(1).Infof("mapCanals: canal subset %d out of range, skipping", id)
			continue
		}
		cs := &l.Tables.Canals[id]
		cs.Props.GRFID = l.cur.file.grfid
		cs.Group = g
	}
}

func (l *Loader) mapHouses(r *grf.Reader, idcount uint8) {
	f := l.cur.file
	if len(f.houses) == 0 {
		glog.V(1).Infof("mapHouses: no houses defined, skipping")
		return
	}

	ids := make([]uint16, idcount)
	for i := range ids {
		ids[i] = r.ReadExtendedByte()
	}

	cidcount := int(r.ReadByte())
	r.Skip(cidcount * 3)

	g, ok := l.mappedGroup("mapHouses", r.ReadWord())
	if !ok {
		return
	}
	for _, id := range ids {
		if int(id) >= len(f.houses) || f.houses[id] == nil {
			glog.V(1).Infof("mapHouses: house %d undefined, skipping", id)
			continue
		}
		f.houses[id].Props.SetSpriteGroup(entities.SG_DEFAULT, g)
	}
}

func (l *Loader) mapIndustries(r *grf.Reader, idcount uint8) {
	f := l.cur.file
	if len(f.industries) == 0 {
		glog.V(1).Infof("mapIndustries: no industries defined, skipping")
		return
	}

	ids := make([]uint16, idcount)
	for i := range ids {
		ids[i] = r.ReadExtendedByte()
	}

	cidcount := int(r.ReadByte())
	r.Skip(cidcount * 3)

	g, ok := l.mappedGroup("mapIndustries", r.ReadWord())
	if !ok {
		return
	}
	for _, id := range ids {
		if int(id) >= len(f.industries) || f.industries[id] == nil {
			glog.V(1).Infof("mapIndustries: industry %d undefined, skipping", id)
			continue
		}
		f.industries[id].Props.SetSpriteGroup(entities.SG_DEFAULT, g)
	}
}

func (l *Loader) mapIndustryTiles(r *grf.Reader, idcount uint8) {
	f := l.cur.file
	if len(f.industryTiles) == 0 {
		glog.V(1).Infof("mapIndustryTiles: no industry tiles defined, skipping")
		return
	}

	ids := make([]uint16, idcount)
	for i := range ids {
		ids[i] = r.ReadExtendedByte()
	}

	cidcount := int(r.ReadByte())
	r.Skip(cidcount * 3)

	g, ok := l.mappedGroup("mapIndustryTiles", r.ReadWord())
	if !ok {
		return
	}
	for _, id := range ids {
		if int(id) >= len(f.industryTiles) || f.industryTiles[id] == nil {
			glog.V(1).Infof("mapIndustryTiles: industry tile %d undefined, skipping", id)
			continue
		}
		f.industryTiles[id].Props.SetSpriteGroup(entities.SG_DEFAULT, g)
	}
}

func (l *Loader) mapCargoes(r *grf.Reader, idcount uint8) {
	ids := make([]uint16, idcount)
	for i := range ids {
		ids[i] = r.ReadExtendedByte()
	}

	cidcount := int(r.ReadByte())
	r.Skip(cidcount * 3)

	g, ok := l.mappedGroup("mapCargoes", r.ReadWord())
	if !ok {
		return
	}
	for _, id := range ids {
		if id >= entities.NUM_CARGO {
			glog.V(1).Infof("mapCargoes: cargo type %d out of range, skipping", id)
			continue
		}
		cs := l.Tables.Cargo.Spec(entities.CargoType(id))
		cs.GRFID = l.cur.file.grfid
		cs.Group = g
	}
}

func (l *Loader) mapAirports(r *grf.Reader, idcount uint8) {
	f := l.cur.file
	if len(f.airports) == 0 {
		glog.V(1).Infof("mapAirports: no airports defined, skipping")
		return
	}

	ids := make([]uint16, idcount)
	for i := range ids {
		ids[i] = r.ReadExtendedByte()
	}

	cidcount := int(r.ReadByte())
	r.Skip(cidcount * 3)

	g, ok := l.mappedGroup("mapAirports", r.ReadWord())
	if !ok {
		return
	}
	for _, id := range ids {
		if int(id) >= len(f.airports) || f.airports[id] == nil {
			glog.V(1).Infof("mapAirports: airport %d undefined, skipping", id)
			continue
		}
		f.airports[id].Props.SetSpriteGroup(entities.SG_DEFAULT, g)
	}
}

func (l *Loader) mapAirportTiles(r *grf.Reader, idcount uint8) {
	f := l.cur.file
	if len(f.airportTiles) == 0 {
		glog.V(1).Infof("mapAirportTiles: no airport tiles defined, skipping")
		return
	}

	ids := make([]uint16, idcount)
	for i := range ids {
		ids[i] = r.ReadExtendedByte()
	}

	cidcount := int(r.ReadByte())
	r.Skip(cidcount * 3)

	g, ok := l.mappedGroup("mapAirportTiles", r.ReadWord())
	if !ok {
		return
	}
	for _, id := range ids {
		if int(id) >= len(f.airportTiles) || f.airportTiles[id] == nil {
			glog.V(1).Infof("mapAirportTiles: airport tile %d undefined, skipping", id)
			continue
		}
		f.airportTiles[id].Props.SetSpriteGroup(entities.SG_DEFAULT, g)
	}
}

func (l *Loader) mapObjects(r *grf.Reader, idcount uint8) {
	f := l.cur.file
	if len(f.objects) == 0 {
		glog.V(1).Infof("mapObjects: no objects defined, skipping")
		return
	}

	ids := make([]uint16, idcount)
	for i := range ids {
		ids[i] = r.ReadExtendedByte()
	}

	spec := func(id uint16) *entities.ObjectSpec {
		if int(id) >= len(f.objects) {
			return nil
		}
		return f.objects[id]
	}

	cidcount := r.ReadByte()
	for c := uint8(0); c < cidcount; c++ {
		ctype := r.ReadByte()
		g, ok := l.mappedGroup("mapObjects", r.ReadWord())
		if !ok {
			continue
		}
		// Objects accept only the purchase list selector here.
		if ctype != 0xFF {
			glog.V(1).Infof("mapObjects: invalid cargo selector %d for objects, skipping", ctype)
			continue
		}
		for _, id := range ids {
			s := spec(id)
			if s == nil {
				glog.V(1).Infof("mapObjects: object %d undefined, skipping", id)
				continue
			}
			s.Props.SetSpriteGroup(entities.SG_PURCHASE, g)
		}
	}

	g, ok := l.mappedGroup("mapObjects", r.ReadWord())
	if !ok {
		return
	}
	for _, id := range ids {
		s := spec(id)
		if s == nil {
			glog.V(1).Infof("mapObjects: object %d undefined, skipping", id)
			continue
		}
		if !s.Props.SetSpriteGroup(entities.SG_DEFAULT, g) {
			glog.V(1).Infof("mapObjects: object %d mapped multiple times, skipping", id)
			continue
		}
		l.Tables.Objects.Insert(s)
	}
}

func (l *Loader) mapRoadStops(r *grf.Reader, idcount uint8) {
	f := l.cur.file
	if len(f.roadStops) == 0 {
		glog.V(1).Infof("mapRoadStops: no road stops defined, skipping")
		return
	}

	ids := make([]uint16, idcount)
	for i := range ids {
		ids[i] = r.ReadExtendedByte()
	}

	spec := func(id uint16) *entities.RoadStopSpec {
		if int(id) >= len(f.roadStops) {
			return nil
		}
		return f.roadStops[id]
	}

	cidcount := r.ReadByte()
	for c := uint8(0); c < cidcount; c++ {
		ctype := r.ReadByte()
		g, ok := l.mappedGroup("mapRoadStops", r.ReadWord())
		if !ok {
			continue
		}
		key, ok := l.translateCargo(entities.GSF_ROADSTOPS, ctype)
		if !ok {
			continue
		}
		for _, id := range ids {
			s := spec(id)
			if s == nil {
				glog.V(1).Infof("mapRoadStops: road stop %d undefined, skipping", id)
				continue
			}
			s.Props.SetSpriteGroup(key, g)
		}
	}

	g, ok := l.mappedGroup("mapRoadStops", r.ReadWord())
	if !ok {
		return
	}
	for _, id := range ids {
		s := spec(id)
		if s == nil {
			glog.V(1).Infof("mapRoadStops: road stop %d undefined, skipping", id)
			continue
		}
		if !s.Props.SetSpriteGroup(entities.SG_DEFAULT, g) {
			glog.V(1).Infof("mapRoadStops: road stop %d mapped multiple times, skipping", id)
			continue
		}
		l.Tables.RoadStops.Insert(s)
	}
}

// mapTrackTypes binds rail, road or tram type chains. The ids go through
// the file's type translation; the chain kind byte replaces the cargo
// selector and there is no default chain.
func (l *Loader) mapTrackTypes(r *grf.Reader, idcount uint8, caller string, table *entities.TrackTypeTable, localMap []entities.TrackTypeID) {
	ids := make([]entities.TrackTypeID, idcount)
	for i := range ids {
		raw := r.ReadExtendedByte()
		ids[i] = entities.INVALID_TRACK_TYPE
		if int(raw) < len(localMap) {
			ids[i] = localMap[raw]
		}
	}

	cidcount := r.ReadByte()
	for c := uint8(0); c < cidcount; c++ {
		ctype := r.ReadByte()
		g, ok := l.mappedGroup(caller, r.ReadWord())
		if !ok {
			continue
		}
		for _, id := range ids {
			if id == entities.INVALID_TRACK_TYPE {
				continue
			}
			table.Info(id).BindGroup(ctype, g)
		}
	}

	r.ReadWord() // track types carry no default chain
}

func (l *Loader) mapSignals(r *grf.Reader, idcount uint8) {
	ids := make([]uint16, idcount)
	for i := range ids {
		ids[i] = r.ReadExtendedByte()
	}

	cidcount := int(r.ReadByte())
	r.Skip(cidcount * 3)

	g, ok := l.mappedGroup("mapSignals", r.ReadWord())
	if !ok {
		return
	}
	for _, id := range ids {
		if id != 0 {
			glog.V(1).Infof("mapSignals: signal id %d not implemented, skipping", id)
			continue
		}
		l.cur.file.signalGroup = g
	}
}

func (l *Loader) mapBadges(r *grf.Reader, idcount uint8) {
	f := l.cur.file

	ids := make([]uint16, idcount)
	for i := range ids {
		ids[i] = r.ReadExtendedByte()
	}

	cidcount := int(r.ReadByte())
	r.Skip(cidcount * 3)

	g, ok := l.mappedGroup("mapBadges", r.ReadWord())
	if !ok {
		return
	}
	for _, id := range ids {
		badgeID, ok := f.badgeMap[id]
		if !ok {
			glog.V(1).Infof("mapBadges: badge %d undefined, skipping", id)
			continue
		}
		l.Tables.Badges.Badge(badgeID).Group = g
	}
}

func (l *Loader) mapNewLandscape(r *grf.Reader, idcount uint8) {
	ids := make([]uint16, idcount)
	for i := range ids {
		ids[i] = r.ReadExtendedByte()
	}

	cidcount := int(r.ReadByte())
	r.Skip(cidcount * 3)

	g, ok := l.mappedGroup("mapNewLandscape", r.ReadWord())
	if !ok {
		return
	}
	for _, id := range ids {
		if id != uint16(entities.NEW_LANDSCAPE_ROCKS) {
			glog.V(1).Infof("mapNewLandscape: landscape id %d not implemented, skipping", id)
			continue
		}
		l.Tables.Landscape[id].Group = g
	}
}
