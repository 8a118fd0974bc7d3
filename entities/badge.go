package entities

import (
	"strings"

	"github.com/golang/glog"

	"badc0de.net/pkg/go-newgrf/grftext"
	"badc0de.net/pkg/go-newgrf/spritegroup"
)

// BadgeID indexes the global badge registry.
type BadgeID uint16

const INVALID_BADGE BadgeID = 0xFFFF

const (
	BADGE_FLAG_COPY           uint32 = 1 << 0
	BADGE_FLAG_NAME_LIST_STOP uint32 = 1 << 1
	BADGE_FLAG_USE_COMPANY    uint32 = 1 << 2
)

// Badge is a label shared between files. The class is everything up to the
// first slash of the label, so "flag/nl" and "flag/de" sort together.
type Badge struct {
	Label string
	Index BadgeID
	Class BadgeID
	Name  grftext.StringID
	Flags uint32

	// Features that attached this badge to at least one entity.
	SeenFeatures uint32

	// Icon graphics chain; the last file to bind one wins.
	Group *spritegroup.Group
}

// BadgeRegistry interns badges by label. Labels are case-sensitive.
type BadgeRegistry struct {
	badges  []*Badge
	byLabel map[string]BadgeID
}

// NewBadgeRegistry returns an empty registry.
func NewBadgeRegistry() *BadgeRegistry {
	return &BadgeRegistry{byLabel: make(map[string]BadgeID)}
}

// GetOrCreate interns a badge label. The class badge (label up to the
// first slash) is interned first so class ids are stable.
func (r *BadgeRegistry) GetOrCreate(label string) *Badge {
	if id, ok := r.byLabel[label]; ok {
		return r.badges[id]
	}
	class := label
	if i := strings.IndexByte(label, '/'); i >= 0 {
		class = label[:i]
	}
	classID := INVALID_BADGE
	if class != label {
		classID = r.GetOrCreate(class).Index
	}
	b := &Badge{Label: label, Index: BadgeID(len(r.badges)), Class: classID, Name: grftext.STR_UNDEFINED}
	if classID == INVALID_BADGE {
		b.Class = b.Index
	}
	r.badges = append(r.badges, b)
	r.byLabel[label] = b.Index
	glog.V(3).Infof("badge %d: %q (class %d)", b.Index, label, b.Class)
	return b
}

// Badge returns the badge with the given id, or nil.
func (r *BadgeRegistry) Badge(id BadgeID) *Badge {
	if int(id) >= len(r.badges) {
		return nil
	}
	return r.badges[id]
}

// Lookup finds a badge by label without creating it.
func (r *BadgeRegistry) Lookup(label string) *Badge {
	if id, ok := r.byLabel[label]; ok {
		return r.badges[id]
	}
	return nil
}

// Len returns the number of interned badges.
func (r *BadgeRegistry) Len() int { return len(r.badges) }
