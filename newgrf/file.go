package newgrf

import (
	"github.com/golang/glog"

	"badc0de.net/pkg/go-newgrf/entities"
	"badc0de.net/pkg/go-newgrf/grf"
	"badc0de.net/pkg/go-newgrf/grftext"
	"badc0de.net/pkg/go-newgrf/spritegroup"
)

// Per-file definition limits.
const (
	STATIONS_PER_GRF       = 255
	HOUSES_PER_GRF         = 512
	INDUSTRIES_PER_GRF     = 128
	INDUSTRY_TILES_PER_GRF = 256
	AIRPORTS_PER_GRF       = 128
	AIRPORT_TILES_PER_GRF  = 255
	OBJECTS_PER_GRF        = 255
	ROAD_STOPS_PER_GRF     = 255

	// Highest graphics chain set id addressable by the binding actions.
	MAX_GROUP_ID = 0xFF

	// Town name definition slots, 7 bits of the definition id.
	TOWN_NAME_LISTS = 0x80
)

// spriteSet records one range registered by a sprite set declaration: where
// its sprites start and how many sprites each set holds.
type spriteSet struct {
	first   uint32
	numEnts uint16
}

// gotoLabel is one jump target collected during the label scan.
type gotoLabel struct {
	label   uint8
	nfoLine int
	pos     int
}

// townNamePart is one candidate text of a town name part list: either a
// literal text or a reference to an earlier definition.
type townNamePart struct {
	Prob  uint8
	Text  string
	Ref   uint8
	IsRef bool
}

// townNamePartList selects one of its parts from a seed bit window.
type townNamePartList struct {
	BitStart uint8
	BitCount uint8
	Parts    []townNamePart
}

// townNameStyle is a final town name definition with its display name.
type townNameStyle struct {
	ID   uint8
	Name grftext.StringID
}

// townNames collects all town name definitions of one file.
type townNames struct {
	Styles []townNameStyle
	Lists  [TOWN_NAME_LISTS][]townNamePartList
}

// glyphRange records one font glyph block a file supplied.
type glyphRange struct {
	FontSize    uint8
	BaseChar    uint16
	NumChars    uint8
	FirstSprite uint32
}

// languageMapping pairs a file-local gender or case id with the name it
// should stand for in the host language.
type languageMapping struct {
	ID   uint8
	Name string
}

// languageInfo is the grammar data a file supplies for one language: how its
// strings choose plural forms and what its gender and case ids mean.
type languageInfo struct {
	PluralForm uint8
	Genders    []languageMapping
	Cases      []languageMapping
}

// File is the decode state of one GRF file. It exists from the label scan
// to the end of the load; the purely stage-local parts are dropped once the
// file finishes its activation pass.
type File struct {
	Config *Config

	container *grf.File

	grfid      uint32
	grfVersion uint8

	// Parameter values as far as defined; reads past the end yield zero and
	// a warning.
	params []uint32

	labels []gotoLabel

	// Graphics state built by the definition actions, keyed per feature and
	// per set id.
	spriteSets [entities.GSF_END]map[uint16]spriteSet
	groups     map[uint16]*spritegroup.Group

	// Translation tables. An empty cargo table means the climate default
	// (or bit numbers, depending on the format version) applies.
	cargoList    []grf.Label
	railTypeList []grf.Label
	roadTypeList []grf.Label
	tramTypeList []grf.Label

	railTypeMap [entities.NUM_RAILTYPES]entities.TrackTypeID
	roadTypeMap [entities.NUM_ROADTYPES]entities.TrackTypeID
	tramTypeMap [entities.NUM_ROADTYPES]entities.TrackTypeID

	// Local badge ids as the badge definition action declared them.
	badgeMap map[uint16]entities.BadgeID

	// Back-map from cargo table slots to this file's translation indexes,
	// built when the file finishes activation.
	cargoMap [entities.NUM_CARGO]uint8

	// Entity definitions local to this file until finalization copies them
	// into the shared pools.
	stations      []*entities.StationSpec
	houses        []*entities.HouseSpec
	industries    []*entities.IndustrySpec
	industryTiles []*entities.IndustryTileSpec
	airports      []*entities.AirportSpec
	airportTiles  []*entities.AirportTileSpec
	objects       []*entities.ObjectSpec
	roadStops     []*entities.RoadStopSpec

	// First sound slot allocated to this file and the declared count.
	soundOffset entities.SoundID
	numSounds   uint16

	// Features the file bound graphics for.
	grfFeatures uint32

	priceMultipliers entities.PriceMultipliers

	remaps remapTables

	townNames *townNames
	glyphs    []glyphRange
	languages map[uint8]*languageInfo

	// Graphics chain for plain signals, bound through the signal feature
	// with local id zero.
	signalGroup *spritegroup.Group

	// Style the signal definition properties currently apply to.
	curSignalStyle *entities.SignalStyle

	// Train sprite presentation tweaks, settable through the miscellaneous
	// parameter targets.
	trainPitch int8
	trainWide  bool
}

func newFile(c *Config, container *grf.File) *File {
	f := &File{
		Config:           c,
		container:        container,
		grfid:            c.GRFID,
		badgeMap:         make(map[uint16]entities.BadgeID),
		groups:           make(map[uint16]*spritegroup.Group),
		priceMultipliers: entities.NewPriceMultipliers(),
		remaps:           c.remaps,
	}
	if f.remaps.features == nil {
		f.remaps = newRemapTables()
	}
	f.params = append(f.params, c.Params...)
	if int(c.NumParams) < len(f.params) {
		f.params = f.params[:c.NumParams]
	}
	for _, p := range c.remaps.paramPresets {
		f.SetParam(p.slot, p.value)
	}
	for i := range f.railTypeMap {
		f.railTypeMap[i] = entities.INVALID_TRACK_TYPE
	}
	for i := range f.roadTypeMap {
		f.roadTypeMap[i] = entities.INVALID_TRACK_TYPE
		f.tramTypeMap[i] = entities.INVALID_TRACK_TYPE
	}
	// Files without translation tables address the stock types directly.
	f.railTypeMap[0] = entities.RAILTYPE_RAIL
	f.railTypeMap[1] = entities.RAILTYPE_ELECTRIC
	f.railTypeMap[2] = entities.RAILTYPE_MONO
	f.railTypeMap[3] = entities.RAILTYPE_MAGLEV
	f.roadTypeMap[0] = entities.ROADTYPE_ROAD
	f.tramTypeMap[0] = entities.ROADTYPE_TRAM
	for i := range f.cargoMap {
		f.cargoMap[i] = 0xFF
	}
	return f
}

func (f *File) GRFID() uint32        { return f.grfid }
func (f *File) GRFVersion() uint8    { return f.grfVersion }
func (f *File) Container() *grf.File { return f.container }

// Param returns a parameter value, zero when the slot is undefined.
func (f *File) Param(i uint8) uint32 {
	if int(i) < len(f.params) {
		return f.params[i]
	}
	glog.V(3).Infof("%s: parameter %d referenced but not set", f.Config.GetName(), i)
	return 0
}

// SetParam defines a parameter slot, growing the defined range with zeroes
// as needed.
func (f *File) SetParam(i uint8, v uint32) {
	for len(f.params) <= int(i) {
		f.params = append(f.params, 0)
	}
	f.params[i] = v
}

// ParamEnd returns the number of defined parameter slots.
func (f *File) ParamEnd() int { return len(f.params) }

// languageMap returns the grammar data for one language id, creating the
// entry on first use.
func (f *File) languageMap(lang uint8) *languageInfo {
	if f.languages == nil {
		f.languages = make(map[uint8]*languageInfo)
	}
	li := f.languages[lang]
	if li == nil {
		li = &languageInfo{}
		f.languages[lang] = li
	}
	return li
}

// addSpriteSets registers numSets consecutive sprite sets of numEnts sprites
// each, starting at set id firstSet and sprite id firstSprite.
func (f *File) addSpriteSets(feature entities.Feature, firstSprite uint32, firstSet, numSets, numEnts uint16) {
	if f.spriteSets[feature] == nil {
		f.spriteSets[feature] = make(map[uint16]spriteSet)
	}
	for i := uint16(0); i < numSets; i++ {
		f.spriteSets[feature][firstSet+i] = spriteSet{
			first:   firstSprite + uint32(i)*uint32(numEnts),
			numEnts: numEnts,
		}
	}
}

// hasSpriteSets reports whether any sprite set declaration ran for the
// feature in this activation pass.
func (f *File) hasSpriteSets(feature entities.Feature) bool {
	return len(f.spriteSets[feature]) > 0
}

func (f *File) isValidSpriteSet(feature entities.Feature, set uint16) bool {
	_, ok := f.spriteSets[feature][set]
	return ok
}

func (f *File) spriteSetFirst(feature entities.Feature, set uint16) uint32 {
	return f.spriteSets[feature][set].first
}

func (f *File) spriteSetNumEnts(feature entities.Feature, set uint16) uint16 {
	return f.spriteSets[feature][set].numEnts
}

// setGroup stores a graphics chain under its set id for later references.
// Redefinition replaces the chain, as later definitions shadow earlier ones
// within a file.
func (f *File) setGroup(setid uint16, g *spritegroup.Group) {
	f.groups[setid] = g
}

// group resolves a set id reference. Returns nil for never-defined ids.
func (f *File) group(setid uint16) *spritegroup.Group {
	return f.groups[setid]
}

// clearTemporaryData drops the state only the file's own later records
// could reference.
func (f *File) clearTemporaryData() {
	f.labels = nil
	f.groups = make(map[uint16]*spritegroup.Group)
	for i := range f.spriteSets {
		f.spriteSets[i] = nil
	}
}

// label finds the jump target for a label value: the first occurrence after
// the given line, or failing that the first occurrence anywhere.
func (f *File) label(value uint8, afterLine int) *gotoLabel {
	var choice *gotoLabel
	for i := range f.labels {
		l := &f.labels[i]
		if l.label != value {
			continue
		}
		if choice == nil {
			choice = l
		}
		if l.nfoLine > afterLine {
			return l
		}
	}
	return choice
}
