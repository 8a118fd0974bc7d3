package entities

// Tables aggregates every pool and registry the loaded files populate.
// A loader owns exactly one of these and rebuilds it from scratch when
// the file set or climate changes.
type Tables struct {
	Climate uint8

	Cargo   *CargoTable
	Engines *EnginePool

	Houses        *HousePool
	Industries    *IndustryPool
	IndustryTiles *IndustryTilePool
	Airports      *AirportPool
	AirportTiles  *AirportTilePool

	Stations  *StationClassList
	Objects   *ObjectClassList
	RoadStops *RoadStopClassList

	RailTypes *TrackTypeTable
	RoadTypes *TrackTypeTable

	Canals       CanalTable
	Sounds       *SoundPool
	Badges       *BadgeRegistry
	SignalStyles *SignalStyleList
	Prices       *PriceTable
	Currencies   CurrencyTable
	Snow         *SnowLine
	Landscape    [NEW_LANDSCAPE_END]NewLandscapeSpec
}

// NewTables builds a fresh set of pools for the given climate.
func NewTables(climate uint8) *Tables {
	return &Tables{
		Climate:       climate,
		Cargo:         NewCargoTable(climate),
		Engines:       NewEnginePool(),
		Houses:        NewHousePool(),
		Industries:    NewIndustryPool(),
		IndustryTiles: NewIndustryTilePool(),
		Airports:      NewAirportPool(),
		AirportTiles:  NewAirportTilePool(),
		Stations:      NewStationClassList(),
		Objects:       NewObjectClassList(),
		RoadStops:     NewRoadStopClassList(),
		RailTypes:     NewRailTypeTable(),
		RoadTypes:     NewRoadTypeTable(),
		Sounds:        NewSoundPool(),
		Badges:        NewBadgeRegistry(),
		SignalStyles:  NewSignalStyleList(),
		Prices:        NewPriceTable(),
		Currencies:    make(CurrencyTable),
	}
}
