package entities

import (
	"badc0de.net/pkg/go-newgrf/spritegroup"
)

// Landscape (climate) identifiers.
const (
	LT_TEMPERATE uint8 = 0
	LT_ARCTIC    uint8 = 1
	LT_TROPIC    uint8 = 2
	LT_TOYLAND   uint8 = 3
)

// Snow line table dimensions: one height byte per day-of-month and month.
const (
	SNOW_LINE_MONTHS = 12
	SNOW_LINE_DAYS   = 32
)

// SnowLine is a calendar table of snow line heights. A nil table means the
// static default height is in effect.
type SnowLine struct {
	Table      [SNOW_LINE_MONTHS][SNOW_LINE_DAYS]uint8
	LowestVal  uint8
	HighestVal uint8
}

// NewSnowLine builds the table and precomputes its extremes.
func NewSnowLine(table [SNOW_LINE_MONTHS][SNOW_LINE_DAYS]uint8) *SnowLine {
	sl := &SnowLine{Table: table, LowestVal: 0xFF}
	for _, month := range table {
		for _, h := range month {
			if h < sl.LowestVal {
				sl.LowestVal = h
			}
			if h > sl.HighestVal {
				sl.HighestVal = h
			}
		}
	}
	return sl
}

// New-landscape graphics slots replace base terrain drawing per file.
const (
	NEW_LANDSCAPE_ROCKS uint8 = 0

	NEW_LANDSCAPE_END = 1
)

// NewLandscapeSpec carries the replacement graphics state for one
// new-landscape slot of one file.
type NewLandscapeSpec struct {
	EnableRecolour       bool
	EnableDrawSnowyRocks bool

	Group *spritegroup.Group
}
