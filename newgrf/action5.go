package newgrf

import (
	"github.com/golang/glog"

	"badc0de.net/pkg/go-newgrf/grf"
)

type action5BlockKind uint8

const (
	A5BLOCK_INVALID      action5BlockKind = iota // no replaceable block, skip the run
	A5BLOCK_FIXED                                // whole block or nothing, no offset
	A5BLOCK_ALLOW_OFFSET                         // partial replacement at an offset
)

type action5Type struct {
	kind       action5BlockKind
	spriteBase uint32
	minSprites uint16
	maxSprites uint16
	name       string
}

// action5Types indexes the replaceable base graphics blocks by wire type.
// Slot bases continue the extra-graphics layout started in params.go.
var action5Types = [0x1E]action5Type{
	0x04: {A5BLOCK_ALLOW_OFFSET, 5632, 1, 240, "signal graphics"},
	0x05: {A5BLOCK_ALLOW_OFFSET, 5872, 1, 48, "rail catenary graphics"},
	0x06: {A5BLOCK_ALLOW_OFFSET, spriteBaseSlopes, 1, 90, "foundation graphics"},
	0x08: {A5BLOCK_ALLOW_OFFSET, 5920, 1, 65, "canal graphics"},
	0x09: {A5BLOCK_ALLOW_OFFSET, 5985, 1, 18, "one way road graphics"},
	0x0A: {A5BLOCK_ALLOW_OFFSET, spriteBase2CC, 1, 256, "2CC colour maps"},
	0x0B: {A5BLOCK_ALLOW_OFFSET, 6003, 1, 113, "tramway graphics"},
	0x0D: {A5BLOCK_FIXED, spriteBaseShore, 16, 18, "shore graphics"},
	0x0F: {A5BLOCK_ALLOW_OFFSET, 6116, 1, 12, "sloped rail track"},
	0x10: {A5BLOCK_ALLOW_OFFSET, 6128, 1, 15, "airport extra graphics"},
	0x11: {A5BLOCK_ALLOW_OFFSET, 6143, 1, 8, "road stop graphics"},
	0x12: {A5BLOCK_ALLOW_OFFSET, 6151, 1, 7, "aqueduct graphics"},
	0x13: {A5BLOCK_ALLOW_OFFSET, 6158, 1, 55, "autorail graphics"},
	0x14: {A5BLOCK_ALLOW_OFFSET, 6213, 1, 36, "flag graphics"},
	0x15: {A5BLOCK_ALLOW_OFFSET, 6249, 1, 175, "GUI graphics"},
	0x16: {A5BLOCK_ALLOW_OFFSET, 6424, 1, 9, "airport preview graphics"},
	0x17: {A5BLOCK_ALLOW_OFFSET, 6433, 1, 16, "railtype tunnel portals"},
	0x18: {A5BLOCK_ALLOW_OFFSET, 6449, 1, 1, "palette"},
	0x1C: {A5BLOCK_ALLOW_OFFSET, 6450, 1, 4, "road waypoint graphics"},
	0x1D: {A5BLOCK_ALLOW_OFFSET, 6454, 1, 32, "programmable signal graphics"},
}

// graphicsNew replaces a block of the extra base graphics (action 0x05).
// The replaced slots are fixed per block type, so the run consumes real
// sprites without assigning new sprite ids.
func graphicsNew(l *Loader, r *grf.Reader) {
	rawType := r.ReadByte()
	num := r.ReadExtendedByte()
	var offset uint16
	if rawType&0x80 != 0 {
		offset = r.ReadExtendedByte()
		rawType &^= 0x80
	}

	typ, ok := l.resolveAction5Type(rawType)
	if !ok {
		l.cur.skipSprites = int(num)
		return
	}

	if int(typ) >= len(action5Types) || action5Types[typ].kind == A5BLOCK_INVALID {
		glog.V(2).Infof("graphicsNew: unsupported graphics type 0x%02X, skipping %d sprites", typ, num)
		l.cur.skipSprites = int(num)
		return
	}
	at := &action5Types[typ]

	if at.kind != A5BLOCK_ALLOW_OFFSET && offset != 0 {
		glog.V(1).Infof("graphicsNew: %s does not take an offset, ignoring it", at.name)
		offset = 0
	}
	if at.kind == A5BLOCK_FIXED && num < at.minSprites {
		glog.V(1).Infof("graphicsNew: %s needs at least %d sprites, got %d, skipping", at.name, at.minSprites, num)
		l.cur.skipSprites = int(num)
		return
	}

	// Clamp the run to the replaceable slots. The remainder of the run is
	// consumed through the ordinary skip counter.
	load := num
	var skip uint16
	switch {
	case offset >= at.maxSprites:
		glog.V(1).Infof("graphicsNew: %s offset %d is past the %d replaceable sprites, skipping", at.name, offset, at.maxSprites)
		load, skip = 0, num
	case int(offset)+int(load) > int(at.maxSprites):
		glog.V(4).Infof("graphicsNew: %s run of %d sprites does not fit at offset %d, truncating", at.name, num, offset)
		load = at.maxSprites - offset
		skip = num - load
	}

	glog.V(2).Infof("graphicsNew: replacing %d of %s from slot %d", load, at.name, at.spriteBase+uint32(offset))
	for i := uint16(0); i < load; i++ {
		if !l.consumeRecord() {
			l.disableGRF("unexpected end of file", nil)
			return
		}
	}
	l.cur.skipSprites = int(skip)
}
