package entities

import (
	"fmt"
)

// Feature identifies an entity kind as addressed by the container actions.
type Feature uint8

const (
	GSF_TRAINS        Feature = 0x00
	GSF_ROADVEHICLES  Feature = 0x01
	GSF_SHIPS         Feature = 0x02
	GSF_AIRCRAFT      Feature = 0x03
	GSF_STATIONS      Feature = 0x04
	GSF_CANALS        Feature = 0x05
	GSF_BRIDGES       Feature = 0x06
	GSF_HOUSES        Feature = 0x07
	GSF_GLOBALVAR     Feature = 0x08
	GSF_INDUSTRYTILES Feature = 0x09
	GSF_INDUSTRIES    Feature = 0x0A
	GSF_CARGOES       Feature = 0x0B
	GSF_SOUNDFX       Feature = 0x0C
	GSF_AIRPORTS      Feature = 0x0D
	GSF_SIGNALS       Feature = 0x0E
	GSF_OBJECTS       Feature = 0x0F
	GSF_RAILTYPES     Feature = 0x10
	GSF_AIRPORTTILES  Feature = 0x11
	GSF_ROADTYPES     Feature = 0x12
	GSF_TRAMTYPES     Feature = 0x13
	GSF_ROADSTOPS     Feature = 0x14
	GSF_BADGES        Feature = 0x15
	GSF_NEWLANDSCAPE  Feature = 0x16

	GSF_END     Feature = 0x17
	GSF_INVALID Feature = 0xFF
)

var featureNames = map[Feature]string{
	GSF_TRAINS:        "trains",
	GSF_ROADVEHICLES:  "road vehicles",
	GSF_SHIPS:         "ships",
	GSF_AIRCRAFT:      "aircraft",
	GSF_STATIONS:      "stations",
	GSF_CANALS:        "canals",
	GSF_BRIDGES:       "bridges",
	GSF_HOUSES:        "houses",
	GSF_GLOBALVAR:     "global variables",
	GSF_INDUSTRYTILES: "industry tiles",
	GSF_INDUSTRIES:    "industries",
	GSF_CARGOES:       "cargoes",
	GSF_SOUNDFX:       "sound effects",
	GSF_AIRPORTS:      "airports",
	GSF_SIGNALS:       "signals",
	GSF_OBJECTS:       "objects",
	GSF_RAILTYPES:     "rail types",
	GSF_AIRPORTTILES:  "airport tiles",
	GSF_ROADTYPES:     "road types",
	GSF_TRAMTYPES:     "tram types",
	GSF_ROADSTOPS:     "road stops",
	GSF_BADGES:        "badges",
	GSF_NEWLANDSCAPE:  "landscape",
}

func (f Feature) String() string {
	if n, ok := featureNames[f]; ok {
		return n
	}
	return fmt.Sprintf("feature 0x%02X", uint8(f))
}

// IsVehicle reports whether the feature is one of the four vehicle kinds.
func (f Feature) IsVehicle() bool { return f <= GSF_AIRCRAFT }

// VehicleKind converts a vehicle feature to its kind.
func (f Feature) VehicleKind() VehicleKind { return VehicleKind(f) }
