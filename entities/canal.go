package entities

import (
	"badc0de.net/pkg/go-newgrf/spritegroup"
)

// Canal graphics slots. Each slot covers one family of water sprites and
// may be claimed by at most one file.
type CanalFeature uint8

const (
	CF_WATERSLOPE CanalFeature = iota
	CF_LOCKS
	CF_DIKES
	CF_ICON
	CF_FLAT
	CF_RIVER_SLOPE
	CF_RIVER_EDGE
	CF_RIVER_GUI
	CF_BUOY
	CF_END
)

const (
	CFF_HAS_FLAT_SPRITE uint8 = 1 << 0
)

// CanalSpec carries the per-slot customization state.
type CanalSpec struct {
	Props        GRFProps
	CallbackMask uint8
	Flags        uint8

	// Graphics chain for the slot; the last file to bind one wins.
	Group *spritegroup.Group
}

// CanalTable holds one spec per canal graphics slot.
type CanalTable [CF_END]CanalSpec
