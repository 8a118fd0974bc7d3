package entities

import (
	"github.com/golang/glog"
)

// PriceKind indexes the base price table shared by all economy actions.
type PriceKind uint8

const (
	PR_STATION_VALUE PriceKind = iota
	PR_BUILD_RAIL
	PR_BUILD_ROAD
	PR_BUILD_SIGNALS
	PR_BUILD_BRIDGE
	PR_BUILD_DEPOT_TRAIN
	PR_BUILD_DEPOT_ROAD
	PR_BUILD_DEPOT_SHIP
	PR_BUILD_TUNNEL
	PR_BUILD_STATION_RAIL
	PR_BUILD_STATION_RAIL_LENGTH
	PR_BUILD_STATION_AIRPORT
	PR_BUILD_STATION_BUS
	PR_BUILD_STATION_TRUCK
	PR_BUILD_STATION_DOCK
	PR_BUILD_VEHICLE_TRAIN
	PR_BUILD_VEHICLE_WAGON
	PR_BUILD_VEHICLE_AIRCRAFT
	PR_BUILD_VEHICLE_ROAD
	PR_BUILD_VEHICLE_SHIP
	PR_BUILD_TREES
	PR_TERRAFORM
	PR_CLEAR_GRASS
	PR_CLEAR_ROUGH
	PR_CLEAR_ROCKS
	PR_CLEAR_FIELDS
	PR_CLEAR_TREES
	PR_CLEAR_RAIL
	PR_CLEAR_SIGNALS
	PR_CLEAR_BRIDGE
	PR_CLEAR_DEPOT_TRAIN
	PR_CLEAR_DEPOT_ROAD
	PR_CLEAR_DEPOT_SHIP
	PR_CLEAR_TUNNEL
	PR_CLEAR_WATER
	PR_CLEAR_STATION_RAIL
	PR_CLEAR_STATION_AIRPORT
	PR_CLEAR_STATION_BUS
	PR_CLEAR_STATION_TRUCK
	PR_CLEAR_STATION_DOCK
	PR_CLEAR_HOUSE
	PR_CLEAR_ROAD
	PR_RUNNING_TRAIN_STEAM
	PR_RUNNING_TRAIN_DIESEL
	PR_RUNNING_TRAIN_ELECTRIC
	PR_RUNNING_AIRCRAFT
	PR_RUNNING_ROADVEH
	PR_RUNNING_SHIP
	PR_BUILD_INDUSTRY

	PR_END
	INVALID_PRICE PriceKind = 0xFF
)

// INVALID_PRICE_MODIFIER marks a multiplier slot a file never wrote to.
// Real modifiers are small signed shift amounts around zero.
const INVALID_PRICE_MODIFIER int8 = MIN_PRICE_MODIFIER - 1

const (
	MIN_PRICE_MODIFIER int8 = -8
	MAX_PRICE_MODIFIER int8 = 16
)

// PriceSpec ties a price kind to the feature whose files may customize it
// and to the price it inherits a multiplier from when left unset.
type PriceSpec struct {
	StartCost int64
	Feature   Feature
	Fallback  PriceKind
}

var priceSpecs = [PR_END]PriceSpec{
	PR_STATION_VALUE:             {100, GSF_END, INVALID_PRICE},
	PR_BUILD_RAIL:                {100, GSF_END, INVALID_PRICE},
	PR_BUILD_ROAD:                {95, GSF_END, INVALID_PRICE},
	PR_BUILD_SIGNALS:             {65, GSF_END, INVALID_PRICE},
	PR_BUILD_BRIDGE:              {275, GSF_END, INVALID_PRICE},
	PR_BUILD_DEPOT_TRAIN:         {600, GSF_END, INVALID_PRICE},
	PR_BUILD_DEPOT_ROAD:          {500, GSF_END, INVALID_PRICE},
	PR_BUILD_DEPOT_SHIP:          {700, GSF_END, INVALID_PRICE},
	PR_BUILD_TUNNEL:              {450, GSF_END, INVALID_PRICE},
	PR_BUILD_STATION_RAIL:        {200, GSF_END, INVALID_PRICE},
	PR_BUILD_STATION_RAIL_LENGTH: {180, GSF_END, INVALID_PRICE},
	PR_BUILD_STATION_AIRPORT:     {600, GSF_END, INVALID_PRICE},
	PR_BUILD_STATION_BUS:         {200, GSF_END, INVALID_PRICE},
	PR_BUILD_STATION_TRUCK:       {200, GSF_END, INVALID_PRICE},
	PR_BUILD_STATION_DOCK:        {350, GSF_END, INVALID_PRICE},
	PR_BUILD_VEHICLE_TRAIN:       {400000, GSF_TRAINS, INVALID_PRICE},
	PR_BUILD_VEHICLE_WAGON:       {2000, GSF_TRAINS, PR_BUILD_VEHICLE_TRAIN},
	PR_BUILD_VEHICLE_AIRCRAFT:    {700000, GSF_AIRCRAFT, INVALID_PRICE},
	PR_BUILD_VEHICLE_ROAD:        {14000, GSF_ROADVEHICLES, INVALID_PRICE},
	PR_BUILD_VEHICLE_SHIP:        {65000, GSF_SHIPS, INVALID_PRICE},
	PR_BUILD_TREES:               {20, GSF_END, INVALID_PRICE},
	PR_TERRAFORM:                 {250, GSF_END, INVALID_PRICE},
	PR_CLEAR_GRASS:               {20, GSF_END, INVALID_PRICE},
	PR_CLEAR_ROUGH:               {40, GSF_END, INVALID_PRICE},
	PR_CLEAR_ROCKS:               {200, GSF_END, INVALID_PRICE},
	PR_CLEAR_FIELDS:              {500, GSF_END, INVALID_PRICE},
	PR_CLEAR_TREES:               {20, GSF_END, INVALID_PRICE},
	PR_CLEAR_RAIL:                {-70, GSF_END, INVALID_PRICE},
	PR_CLEAR_SIGNALS:             {10, GSF_END, INVALID_PRICE},
	PR_CLEAR_BRIDGE:              {50, GSF_END, INVALID_PRICE},
	PR_CLEAR_DEPOT_TRAIN:         {80, GSF_END, INVALID_PRICE},
	PR_CLEAR_DEPOT_ROAD:          {80, GSF_END, INVALID_PRICE},
	PR_CLEAR_DEPOT_SHIP:          {90, GSF_END, INVALID_PRICE},
	PR_CLEAR_TUNNEL:              {30, GSF_END, INVALID_PRICE},
	PR_CLEAR_WATER:               {10000, GSF_END, INVALID_PRICE},
	PR_CLEAR_STATION_RAIL:        {50, GSF_END, INVALID_PRICE},
	PR_CLEAR_STATION_AIRPORT:     {30, GSF_END, INVALID_PRICE},
	PR_CLEAR_STATION_BUS:         {50, GSF_END, INVALID_PRICE},
	PR_CLEAR_STATION_TRUCK:       {50, GSF_END, INVALID_PRICE},
	PR_CLEAR_STATION_DOCK:        {55, GSF_END, INVALID_PRICE},
	PR_CLEAR_HOUSE:               {90, GSF_END, INVALID_PRICE},
	PR_CLEAR_ROAD:                {-70, GSF_END, INVALID_PRICE},
	PR_RUNNING_TRAIN_STEAM:       {5600, GSF_TRAINS, INVALID_PRICE},
	PR_RUNNING_TRAIN_DIESEL:      {5200, GSF_TRAINS, PR_RUNNING_TRAIN_STEAM},
	PR_RUNNING_TRAIN_ELECTRIC:    {4800, GSF_TRAINS, PR_RUNNING_TRAIN_DIESEL},
	PR_RUNNING_AIRCRAFT:          {9600, GSF_AIRCRAFT, INVALID_PRICE},
	PR_RUNNING_ROADVEH:           {1600, GSF_ROADVEHICLES, INVALID_PRICE},
	PR_RUNNING_SHIP:              {5600, GSF_SHIPS, INVALID_PRICE},
	PR_BUILD_INDUSTRY:            {1000000, GSF_END, INVALID_PRICE},
}

// PriceSpecFor returns the static description of a price kind.
func PriceSpecFor(p PriceKind) PriceSpec { return priceSpecs[p] }

// PriceMultipliers is the per-file multiplier array. Every slot starts out
// as INVALID_PRICE_MODIFIER.
type PriceMultipliers [PR_END]int8

// NewPriceMultipliers returns an array with every slot unset.
func NewPriceMultipliers() PriceMultipliers {
	var m PriceMultipliers
	for i := range m {
		m[i] = INVALID_PRICE_MODIFIER
	}
	return m
}

// PriceTable holds the effective base costs after all files are applied.
type PriceTable struct {
	costs [PR_END]int64
}

// NewPriceTable returns a table seeded with the stock base costs.
func NewPriceTable() *PriceTable {
	t := &PriceTable{}
	for p := PriceKind(0); p < PR_END; p++ {
		t.costs[p] = priceSpecs[p].StartCost
	}
	return t
}

// Cost returns the current base cost of a price kind.
func (t *PriceTable) Cost(p PriceKind) int64 {
	if p >= PR_END {
		return 0
	}
	return t.costs[p]
}

// ApplyMultiplier shifts the stock base cost of a price kind by the given
// power of two. Negative values halve, positive values double.
func (t *PriceTable) ApplyMultiplier(p PriceKind, mod int8) {
	if p >= PR_END {
		return
	}
	if mod < MIN_PRICE_MODIFIER || mod > MAX_PRICE_MODIFIER {
		glog.Warningf("price multiplier %d for price %d out of range, ignoring", mod, p)
		return
	}
	cost := priceSpecs[p].StartCost
	if mod < 0 {
		cost >>= uint(-mod)
	} else {
		cost <<= uint(mod)
	}
	t.costs[p] = cost
	glog.V(3).Infof("base cost of price %d now %d (multiplier %d)", p, cost, mod)
}
