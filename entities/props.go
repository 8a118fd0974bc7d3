package entities

import (
	"github.com/golang/glog"

	"badc0de.net/pkg/go-newgrf/spritegroup"
)

// Sprite group binding keys shared by all entity kinds. Keys below NUM_CARGO
// select a cargo-specific graphics chain; the values here select the
// purpose-specific chains.
const (
	SG_DEFAULT    uint16 = 0x100
	SG_PURCHASE   uint16 = 0x101
	SG_DEFAULT_NA uint16 = 0x102 // fallback chain when no cargo is waiting
)

// GRFProps carries the NewGRF provenance of an entity and its resolved
// sprite group bindings.
type GRFProps struct {
	GRFID   uint32
	LocalID uint16

	groups map[uint16]*spritegroup.Group
}

// HasGRF reports whether any file claimed the entity yet.
func (p *GRFProps) HasGRF() bool { return p.GRFID != 0 }

// SetGRF records the owning file if none is set yet.
func (p *GRFProps) SetGRF(grfid uint32, localID uint16) {
	if p.GRFID == 0 {
		p.GRFID = grfid
		p.LocalID = localID
	}
}

// SetSpriteGroup binds a graphics chain to a key. The first binding wins;
// a second attempt is logged and ignored, and false is returned.
func (p *GRFProps) SetSpriteGroup(key uint16, g *spritegroup.Group) bool {
	if p.groups == nil {
		p.groups = make(map[uint16]*spritegroup.Group)
	}
	if _, taken := p.groups[key]; taken {
		glog.V(2).Infof("SetSpriteGroup: key 0x%X already bound, keeping first binding", key)
		return false
	}
	p.groups[key] = g
	return true
}

// SpriteGroup returns the chain bound to key, falling back to SG_DEFAULT,
// then nil.
func (p *GRFProps) SpriteGroup(key uint16) *spritegroup.Group {
	if g, ok := p.groups[key]; ok {
		return g
	}
	return p.groups[SG_DEFAULT]
}

// BoundKeys returns how many keys have bindings, for dump tooling.
func (p *GRFProps) BoundKeys() int { return len(p.groups) }

// AnimationInfo describes tile animation the way several entity kinds store
// it: frame count and looping status, playback speed, and the bitmask of
// triggers restarting the animation.
type AnimationInfo struct {
	Frames   uint8
	Status   uint8
	Speed    uint8
	Triggers uint16
}

// Animation status values.
const (
	ANIM_STATUS_NON_LOOPING uint8 = 0
	ANIM_STATUS_LOOPING     uint8 = 1

	// ANIM_STATUS_NO_ANIMATION marks a tile that never animates.
	ANIM_STATUS_NO_ANIMATION uint8 = 0xFF
)
