package newgrf

import (
	"io"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-newgrf/entities"
	"badc0de.net/pkg/go-newgrf/grf"
	"badc0de.net/pkg/go-newgrf/grftext"
	"badc0de.net/pkg/go-newgrf/spritegroup"
)

// grfLocation addresses one record of one file.
type grfLocation struct {
	grfid   uint32
	nfoLine int
}

// grmReservation is one resource range granted to a management request.
// Reservations are keyed by the requesting record so reruns across stages
// answer the same range.
type grmReservation struct {
	first uint32
	count uint16
}

// stringMapping defers the resolution of a text reference until every file
// had the chance to define the text.
type stringMapping struct {
	grfid  uint32
	source grftext.GRFStringID
	apply  func(grftext.StringID)
}

// current points at the record the decode loop is working on.
type current struct {
	cfg  *Config
	file *File
	grf  *grf.File

	nfoLine int

	// Number of upcoming records to skip, or -1 to skip the rest of the
	// file.
	skipSprites int
}

// Loader owns one decode session. Identify files with Scan, then hand the
// full set to Load; the tables the loader was built around hold the result.
type Loader struct {
	Tables  *entities.Tables
	Strings *grftext.Table
	Groups  *spritegroup.Builder
	Env     Env

	// Networking marks a synchronized load. Static files must not steer
	// the outcome then; tests observing them disable the static file.
	Networking bool

	configs []*Config
	files   []*File
	byGRFID map[uint32]*File

	stage LoadingStage
	cur   current

	// Payload substitutions keyed by the record they replace.
	overrides map[grfLocation][]byte

	// Resource management state.
	grmSprites map[grfLocation]grmReservation
	grmEngines [256]uint32
	grmCargoes [entities.NUM_CARGO * 2]uint32

	// Feature bits every loaded file shares, settable by assignments.
	miscFeatures uint32

	stringMappings []stringMapping
	tempEngines    map[entities.EngineID]*engineTempData

	// Lead engines of the last plain vehicle mapping, consumed by wagon
	// override mappings that follow it.
	lastEngines []entities.EngineID

	// Feature-wide callback chains bound without entity ids.
	genericCallbacks [entities.GSF_END][]GenericCallback

	// Sprite id accounting for the records the graphics actions consume.
	firstSpriteID uint32
	spriteID      uint32
}

// NewLoader builds a loader around the given tables. The environment fixes
// everything the files can observe, so equal inputs decode equally.
func NewLoader(tables *entities.Tables, strings *grftext.Table, env Env) *Loader {
	return &Loader{
		Tables:        tables,
		Strings:       strings,
		Groups:        spritegroup.NewBuilder(),
		Env:           env,
		byGRFID:       make(map[uint32]*File),
		overrides:     make(map[grfLocation][]byte),
		grmSprites:    make(map[grfLocation]grmReservation),
		tempEngines:   make(map[entities.EngineID]*engineTempData),
		firstSpriteID: originalSpriteEnd,
	}
}

// Files returns the decode state of every file the load created, in load
// order.
func (l *Loader) Files() []*File { return l.files }

// Configs returns the configs of the current load set.
func (l *Loader) Configs() []*Config { return l.configs }

// Scan identifies one file: its id, name, version, palette and parameter
// descriptions, without touching any tables. Static files additionally
// pass a safety scan; a file rejected there carries GCF_UNSAFE.
func (l *Loader) Scan(path string, static bool) (*Config, error) {
	c := &Config{Path: path, NumParams: 0xFF}
	if static {
		c.Flags |= GCF_STATIC
	}
	if err := l.scanConfig(c); err != nil {
		return c, err
	}
	return c, nil
}

func (l *Loader) scanConfig(c *Config) error {
	container, err := grf.Open(c.Path)
	if err != nil {
		c.Status = GCS_NOT_FOUND
		return errors.Wrapf(err, "scanning %s", c.Path)
	}
	c.remaps = newRemapTables()
	f := newFile(c, container)

	l.stage = GLS_FILESCAN
	l.loadFile(c, f)

	if c.GRFID == 0 {
		c.Status = GCS_DISABLED
		return errors.Errorf("scanning %s: no file id declared", c.Path)
	}
	if c.HasFlag(GCF_SYSTEM) {
		return errors.Errorf("scanning %s: reserved system id %08X", c.Path, c.GRFID)
	}

	if c.HasFlag(GCF_STATIC) {
		l.stage = GLS_SAFETYSCAN
		l.loadFile(c, f)
		if c.HasFlag(GCF_UNSAFE) {
			return errors.Errorf("scanning %s: file is unsafe for static use", c.Path)
		}
	}
	return nil
}

// Engine scope redirections for add-on sets known to modify a base set.
var defaultEngineOverrides = []struct{ source, target uint32 }{
	{0x02224444, 0x11014444}, // UKRS addons modifies UKRS
	{0x0204626D, 0x0104626D}, // DBSetXL ECS extension modifies DBSetXL
	{0x206F654D, 0x176F654D}, // LV4cut modifies LV4
}

// Load decodes the given files in order, running every loading stage over
// the whole set before moving to the next. Configs that were never scanned
// are scanned first. The error reports setup problems only; per-file
// problems disable the file and are recorded on its config.
func (l *Loader) Load(configs []*Config) error {
	l.configs = configs
	l.files = nil
	l.byGRFID = make(map[uint32]*File)
	fileOf := make(map[*Config]*File, len(configs))

	for _, c := range configs {
		if c.GRFID != 0 || c.Status != GCS_UNKNOWN {
			continue
		}
		if err := l.scanConfig(c); err != nil {
			glog.Errorf("Load: %v", err)
		}
	}

	for stage := GLS_LABELSCAN; stage <= GLS_ACTIVATION; stage++ {
		l.stage = stage

		// A file activated by an earlier stage must activate again in this
		// one to stay active.
		for _, c := range configs {
			if c.Status == GCS_ACTIVATED {
				c.Status = GCS_INITIALISED
			}
		}

		if stage == GLS_RESERVE {
			for _, o := range defaultEngineOverrides {
				l.Tables.Engines.AddOverride(o.source, o.target)
			}
		}

		l.spriteID = l.firstSpriteID

		for _, c := range configs {
			if c.Status == GCS_DISABLED || c.Status == GCS_NOT_FOUND {
				continue
			}
			if stage > GLS_INIT && c.HasFlag(GCF_INIT_ONLY) {
				continue
			}

			if stage == GLS_LABELSCAN {
				container, err := grf.Open(c.Path)
				if err != nil {
					glog.Errorf("Load: %s: %v", c.Path, err)
					c.Status = GCS_NOT_FOUND
					continue
				}
				f := newFile(c, container)
				fileOf[c] = f
				l.files = append(l.files, f)
				l.byGRFID[c.GRFID] = f
			}

			f := fileOf[c]
			if f == nil {
				continue
			}
			if stage == GLS_RESERVE && c.Status != GCS_INITIALISED {
				continue
			}
			if stage == GLS_ACTIVATION && !c.HasFlag(GCF_RESERVED) {
				continue
			}

			l.loadFile(c, f)

			switch {
			case stage == GLS_RESERVE:
				c.Flags |= GCF_RESERVED
			case stage == GLS_ACTIVATION:
				c.Flags &^= GCF_RESERVED
				l.buildCargoTranslationMap(f)
				f.clearTemporaryData()
				glog.V(2).Infof("Load: %d sprite ids accounted after %s", l.spriteID, c.GetName())
			case stage == GLS_INIT && c.HasFlag(GCF_INIT_ONLY):
				f.clearTemporaryData()
			}
		}
	}

	l.finalize()
	return nil
}

// loadFile walks the record stream of one file at the current stage.
func (l *Loader) loadFile(c *Config, f *File) {
	container := f.container
	l.cur = current{cfg: c, file: f, grf: container}
	defer func() { l.cur = current{} }()

	glog.V(2).Infof("loadFile: reading %s in stage %s", c.GetName(), l.stage)
	container.Restart()

	for {
		size, typ, err := container.ReadRecordHeader()
		if err == io.EOF {
			return
		}
		if err != nil {
			l.disableGRF("unexpected end of file", nil)
			return
		}
		l.cur.nfoLine++

		if typ == grf.RECORD_PSEUDO {
			if l.cur.skipSprites == 0 {
				if size > maxPseudoRecordSize {
					l.disableGRF("unexpectedly large pseudo record", nil)
					return
				}
				l.decodeRecord(size)
				if l.cur.skipSprites == -1 {
					return
				}
				// A skip count set by the record starts with the next one.
				continue
			}
			if err := container.SkipBytes(int(size)); err != nil {
				l.disableGRF("unexpected end of file", nil)
				return
			}
		} else {
			if l.cur.skipSprites == 0 {
				l.disableGRF("unexpected real sprite", nil)
				return
			}
			if err := l.skipRealSprite(size, typ); err != nil {
				l.disableGRF("unexpected end of file", nil)
				return
			}
		}

		if l.cur.skipSprites > 0 {
			l.cur.skipSprites--
		}
	}
}

func (l *Loader) skipRealSprite(size uint32, typ uint8) error {
	c := l.cur.grf
	if c.ContainerVersion() >= 2 && typ == grf.RECORD_REFERENCE {
		return c.SkipBytes(int(size))
	}
	if err := c.SkipBytes(7); err != nil {
		return err
	}
	return c.SkipSpriteData(typ, int(size)-8)
}

// decodeRecord reads one pseudo record and dispatches it to the handler for
// its action at the current stage. A read past the record's end unwinds to
// here and disables the file.
func (l *Loader) decodeRecord(size uint32) {
	data, err := l.cur.grf.ReadPseudo(size)
	if err != nil {
		l.disableGRF("unexpected end of file", nil)
		return
	}

	if override, ok := l.overrides[l.location(0)]; ok {
		glog.V(7).Infof("decodeRecord: using substituted record data")
		data = override
	}

	defer func() {
		if r := recover(); r != nil {
			oob, ok := r.(grf.OutOfBounds)
			if !ok {
				panic(r)
			}
			glog.V(1).Infof("%s: record %d: %v", l.cur.cfg.GetName(), l.cur.nfoLine, oob)
			l.disableGRF("attempt to read past the end of a record", nil)
		}
	}()

	r := grf.NewReader(data)
	action := r.ReadByte()

	switch {
	case action == 0xFF:
		glog.V(2).Infof("decodeRecord: unexpected data block, skipping")
	case action == 0xFE:
		glog.V(2).Infof("decodeRecord: unexpected import block, skipping")
	case int(action) >= len(actionHandlers):
		glog.V(7).Infof("decodeRecord: skipping unknown action 0x%02X", action)
	case actionHandlers[action][l.stage] == nil:
		glog.V(7).Infof("decodeRecord: skipping action 0x%02X in stage %s", action, l.stage)
	default:
		glog.V(7).Infof("decodeRecord: handling action 0x%02X in stage %s", action, l.stage)
		actionHandlers[action][l.stage](l, r)
	}
}

// location addresses a record of the current file relative to the one
// being decoded.
func (l *Loader) location(lineOffset int) grfLocation {
	return grfLocation{l.cur.file.grfid, l.cur.nfoLine + lineOffset}
}

// consumeRecord consumes the next container record as one real sprite
// without touching the sprite id counter. Pseudo records in sprite position
// hold palette remap data and are accepted. Reports false at end of file.
func (l *Loader) consumeRecord() bool {
	container := l.cur.grf
	size, typ, err := container.ReadRecordHeader()
	if err != nil {
		return false
	}
	l.cur.nfoLine++

	if typ == grf.RECORD_PSEUDO {
		err = container.SkipBytes(int(size))
	} else {
		err = l.skipRealSprite(size, typ)
	}
	return err == nil
}

// loadNextSprite consumes the next container record as one real sprite and
// assigns it the next sprite id. Reports false at end of file.
func (l *Loader) loadNextSprite() (uint32, bool) {
	if !l.consumeRecord() {
		return 0, false
	}
	id := l.spriteID
	l.spriteID++
	return id, true
}

// GetGRFConfig finds the config matching a file id under the given mask.
// The mask lets tests match a family of related ids at once.
func (l *Loader) GetGRFConfig(grfid, mask uint32) *Config {
	for _, c := range l.configs {
		if c.GRFID&mask == grfid&mask {
			return c
		}
	}
	return nil
}

// fileByGRFID finds the decode state of a loaded file.
func (l *Loader) fileByGRFID(grfid uint32) *File {
	return l.byGRFID[grfid]
}

// addStringForMapping queues a text reference for resolution after every
// file finished loading.
func (l *Loader) addStringForMapping(source grftext.GRFStringID, apply func(grftext.StringID)) {
	l.stringMappings = append(l.stringMappings, stringMapping{
		grfid:  l.cur.file.grfid,
		source: source,
		apply:  apply,
	})
}

// buildCargoTranslationMap fills the back-map from cargo table slots to the
// file's translation indexes once its activation pass is done. Without a
// translation table newer files address cargo by bit number and older ones
// by climate slot.
func (l *Loader) buildCargoTranslationMap(f *File) {
	for i := range f.cargoMap {
		f.cargoMap[i] = 0xFF
	}
	for slot := 0; slot < entities.NUM_CARGO; slot++ {
		cs := l.Tables.Cargo.Spec(entities.CargoType(slot))
		if !cs.IsValid() {
			continue
		}
		switch {
		case len(f.cargoList) > 0:
			for idx, label := range f.cargoList {
				if label == cs.Label {
					f.cargoMap[slot] = uint8(idx)
					break
				}
			}
		case f.grfVersion >= 7:
			f.cargoMap[slot] = cs.BitNum
		default:
			f.cargoMap[slot] = uint8(slot)
		}
	}
}
