package newgrf

import (
	"github.com/golang/glog"

	"badc0de.net/pkg/go-newgrf/entities"
	"badc0de.net/pkg/go-newgrf/grf"
	"badc0de.net/pkg/go-newgrf/grftext"
)

// The meta info record (action 0x14) is a tree of nodes, each a kind byte
// followed by a four-character tag. Kind 0 ends a sibling list, 'C' opens a
// nested list, 'B' holds a word-length binary payload and 'T' a language
// byte plus a NUL-terminated text. Nodes whose (tag, kind) the reader does
// not know are skipped structurally so newer files keep loading.

type infoKey struct {
	tag  grf.Label
	kind uint8
}

// infoNode describes one recognized node. Exactly one of the fields is set,
// matching the node's kind. Handlers report false to stop the whole record;
// the file is expected to have been disabled by then.
type infoNode struct {
	children map[infoKey]*infoNode
	branch   func(r *grf.Reader) bool
	text     func(lang uint8, raw []byte) bool
	binary   func(r *grf.Reader, length int) bool
}

// staticGRFInfo decodes the meta info record. It only runs during the file
// scan; everything it learns lands on the file's config.
func staticGRFInfo(l *Loader, r *grf.Reader) {
	l.readInfoNodes(r, l.rootInfoTags())
}

// readInfoNodes walks one sibling list against its allowed-children table.
func (l *Loader) readInfoNodes(r *grf.Reader, allowed map[infoKey]*infoNode) bool {
	for {
		kind := r.ReadByte()
		if kind == 0 {
			return true
		}
		tag := r.ReadLabel()

		node := allowed[infoKey{tag, kind}]
		if node == nil {
			glog.V(3).Infof("staticGRFInfo: unknown node '%c' %q, skipping", kind, tag)
			if !l.skipInfoNode(r, kind) {
				return false
			}
			continue
		}

		switch kind {
		case 'C':
			if node.branch != nil {
				if !node.branch(r) {
					return false
				}
			} else if !l.readInfoNodes(r, node.children) {
				return false
			}
		case 'B':
			length := int(r.ReadWord())
			if !node.binary(grf.NewReader(r.ReadBytes(length)), length) {
				return false
			}
		case 'T':
			lang := r.ReadByte()
			if !node.text(lang, []byte(r.ReadString())) {
				return false
			}
		}
	}
}

// skipInfoNode consumes an unrecognized node without interpreting it.
func (l *Loader) skipInfoNode(r *grf.Reader, kind uint8) bool {
	switch kind {
	case 'C':
		for {
			k := r.ReadByte()
			if k == 0 {
				return true
			}
			r.ReadLabel()
			if !l.skipInfoNode(r, k) {
				return false
			}
		}
	case 'B':
		r.Skip(int(r.ReadWord()))
		return true
	case 'T':
		r.ReadByte()
		r.ReadString()
		return true
	}
	l.disableGRF("unknown meta info node kind", nil)
	return false
}

// preferTranslation decides whether a new translation should replace what a
// config field already holds: the default language always wins, English wins
// over anything but the default, and otherwise the first text stays.
func preferTranslation(current string, lang uint8) bool {
	if current == "" || lang == 0x7F {
		return true
	}
	return lang&0x7C == 0
}

func (l *Loader) rootInfoTags() map[infoKey]*infoNode {
	return map[infoKey]*infoNode{
		{grf.MakeLabel("INFO"), 'C'}: {children: l.infoTags()},
		{grf.MakeLabel("FIDM"), 'C'}: {branch: func(r *grf.Reader) bool { return l.readRemapEntries(r, "FIDM") }},
		{grf.MakeLabel("A0PM"), 'C'}: {branch: func(r *grf.Reader) bool { return l.readRemapEntries(r, "A0PM") }},
		{grf.MakeLabel("A2VM"), 'C'}: {branch: func(r *grf.Reader) bool { return l.readRemapEntries(r, "A2VM") }},
		{grf.MakeLabel("A5TM"), 'C'}: {branch: func(r *grf.Reader) bool { return l.readRemapEntries(r, "A5TM") }},
	}
}

func (l *Loader) infoTags() map[infoKey]*infoNode {
	c := l.cur.cfg
	text := func(dst *string, allowNewlines bool) *infoNode {
		return &infoNode{text: func(lang uint8, raw []byte) bool {
			if preferTranslation(*dst, lang) {
				*dst = grftext.TranslateTTDPatchCodes(c.GRFID, lang, allowNewlines, raw)
			}
			return true
		}}
	}

	return map[infoKey]*infoNode{
		{grf.MakeLabel("NAME"), 'T'}: text(&c.Name, false),
		{grf.MakeLabel("DESC"), 'T'}: text(&c.Info, true),
		{grf.MakeLabel("URL_"), 'T'}: text(&c.URL, false),

		{grf.MakeLabel("NPAR"), 'B'}: {binary: func(r *grf.Reader, length int) bool {
			if length < 1 {
				glog.V(1).Infof("staticGRFInfo: expected 1 byte for 'INFO'->'NPAR', ignoring")
				return true
			}
			c.NumParams = r.ReadByte()
			return true
		}},

		{grf.MakeLabel("PALS"), 'T'}: {text: func(lang uint8, raw []byte) bool {
			pal := uint8(GRFP_GRF_UNSET)
			switch {
			case len(raw) == 1 && raw[0] == 'D':
				pal = GRFP_GRF_DOS
			case len(raw) == 1 && raw[0] == 'W':
				pal = GRFP_GRF_WINDOWS
			case len(raw) == 1 && raw[0] == 'A':
				pal = GRFP_GRF_ANY
			default:
				glog.V(1).Infof("staticGRFInfo: unexpected palette %q, ignoring", raw)
			}
			if pal != GRFP_GRF_UNSET {
				c.Palette = c.Palette&^GRFP_GRF_MASK | pal
			}
			return true
		}},

		{grf.MakeLabel("BLTR"), 'T'}: {text: func(lang uint8, raw []byte) bool {
			if len(raw) == 1 && raw[0] == '3' {
				c.Palette = c.Palette&^GRFP_BLT_MASK | GRFP_BLT_32BPP
			} else if len(raw) != 1 || raw[0] != '8' {
				glog.V(1).Infof("staticGRFInfo: unexpected blitter %q, ignoring", raw)
			}
			return true
		}},

		{grf.MakeLabel("VRSN"), 'B'}: {binary: func(r *grf.Reader, length int) bool {
			if length < 4 {
				glog.V(1).Infof("staticGRFInfo: expected 4 bytes for 'INFO'->'VRSN', ignoring")
				return true
			}
			c.Version = r.ReadDWord()
			return true
		}},

		{grf.MakeLabel("MINV"), 'B'}: {binary: func(r *grf.Reader, length int) bool {
			if length < 4 {
				glog.V(1).Infof("staticGRFInfo: expected 4 bytes for 'INFO'->'MINV', ignoring")
				return true
			}
			c.MinLoadableVersion = r.ReadDWord()
			return true
		}},

		{grf.MakeLabel("PARA"), 'C'}: {branch: l.readParamDescriptors},
	}
}

// readParamDescriptors walks the 'PARA' list. Unlike everywhere else, each
// child's four tag bytes are not a label but the raw index of the parameter
// being described.
func (l *Loader) readParamDescriptors(r *grf.Reader) bool {
	c := l.cur.cfg
	for {
		kind := r.ReadByte()
		if kind == 0 {
			return true
		}
		index := r.ReadDWord()
		if kind != 'C' {
			glog.V(1).Infof("staticGRFInfo: expected branch for parameter %d", index)
			if !l.skipInfoNode(r, kind) {
				return false
			}
			continue
		}
		if index >= MAX_NUM_PARAMS {
			glog.V(1).Infof("staticGRFInfo: descriptor for out of range parameter %d, skipping", index)
			if !l.skipInfoNode(r, kind) {
				return false
			}
			continue
		}
		if !l.readInfoNodes(r, l.paramTags(c.SetParamInfo(int(index)))) {
			return false
		}
	}
}

func (l *Loader) paramTags(p *ParamInfo) map[infoKey]*infoNode {
	c := l.cur.cfg
	text := func(dst *string) *infoNode {
		return &infoNode{text: func(lang uint8, raw []byte) bool {
			if preferTranslation(*dst, lang) {
				*dst = grftext.TranslateTTDPatchCodes(c.GRFID, lang, false, raw)
			}
			return true
		}}
	}

	return map[infoKey]*infoNode{
		{grf.MakeLabel("NAME"), 'T'}: text(&p.Name),
		{grf.MakeLabel("DESC"), 'T'}: text(&p.Desc),

		{grf.MakeLabel("TYPE"), 'B'}: {binary: func(r *grf.Reader, length int) bool {
			if length < 1 {
				glog.V(1).Infof("staticGRFInfo: expected 1 byte for parameter type, ignoring")
				return true
			}
			p.Type = r.ReadByte()
			return true
		}},

		{grf.MakeLabel("LIMI"), 'B'}: {binary: func(r *grf.Reader, length int) bool {
			if length < 8 {
				glog.V(1).Infof("staticGRFInfo: expected 8 bytes for parameter limits, ignoring")
				return true
			}
			if p.Type != 0 {
				glog.V(1).Infof("staticGRFInfo: limits given for a non-scalar parameter, ignoring")
				return true
			}
			p.MinValue = r.ReadDWord()
			p.MaxValue = r.ReadDWord()
			return true
		}},

		{grf.MakeLabel("MASK"), 'B'}: {binary: func(r *grf.Reader, length int) bool {
			if length < 1 || length > 3 {
				glog.V(1).Infof("staticGRFInfo: expected 1 to 3 bytes for parameter mask, ignoring")
				return true
			}
			param := r.ReadByte()
			if param >= MAX_NUM_PARAMS {
				glog.V(1).Infof("staticGRFInfo: parameter mask slot %d out of range, ignoring", param)
				return true
			}
			p.Param = param
			if length >= 2 {
				p.FirstBit = r.ReadByte()
			}
			if length >= 3 {
				p.NumBits = r.ReadByte()
			}
			return true
		}},

		{grf.MakeLabel("DFLT"), 'B'}: {binary: func(r *grf.Reader, length int) bool {
			if length < 4 {
				glog.V(1).Infof("staticGRFInfo: expected 4 bytes for parameter default, ignoring")
				return true
			}
			p.DefaultValue = r.ReadDWord()
			return true
		}},

		{grf.MakeLabel("VALU"), 'C'}: {branch: func(r *grf.Reader) bool { return l.readParamValueNames(r, p) }},
	}
}

// readParamValueNames walks a 'VALU' list. Its children carry the raw value
// in the tag position and must be texts.
func (l *Loader) readParamValueNames(r *grf.Reader, p *ParamInfo) bool {
	c := l.cur.cfg
	for {
		kind := r.ReadByte()
		if kind == 0 {
			return true
		}
		value := r.ReadDWord()
		if kind != 'T' {
			glog.V(1).Infof("staticGRFInfo: expected text for parameter value %d", value)
			if !l.skipInfoNode(r, kind) {
				return false
			}
			continue
		}
		lang := r.ReadByte()
		raw := []byte(r.ReadString())
		if p.ValueNames == nil {
			p.ValueNames = make(map[uint32]string)
		}
		if preferTranslation(p.ValueNames[value], lang) {
			p.ValueNames[value] = grftext.TranslateTTDPatchCodes(c.GRFID, lang, false, raw)
		}
	}
}

// remapDecl accumulates the fields of one remap declaration entry before it
// is committed to the file's tables.
type remapDecl struct {
	name     string
	feature  uint8
	id       uint8
	fallback remapFallback
	setting  uint8

	hasFeature bool
	hasID      bool
	hasSetting bool

	inputShift  uint8
	inputMask   uint32
	outputShift uint8
	outputMask  uint32
	outputParam uint8
}

// readRemapEntries walks one of the four remap declaration tables. Each
// entry is a branch whose own tag carries no meaning.
func (l *Loader) readRemapEntries(r *grf.Reader, table string) bool {
	for {
		kind := r.ReadByte()
		if kind == 0 {
			return true
		}
		r.ReadLabel()
		if kind != 'C' {
			glog.V(1).Infof("staticGRFInfo: expected branch inside %q table", table)
			if !l.skipInfoNode(r, kind) {
				return false
			}
			continue
		}
		d := &remapDecl{inputMask: 0xFFFFFFFF, outputMask: 0xFFFFFFFF}
		if !l.readInfoNodes(r, l.remapEntryTags(d, table)) {
			return false
		}
		if !l.commitRemapDecl(d, table) {
			return false
		}
	}
}

func (l *Loader) remapEntryTags(d *remapDecl, table string) map[infoKey]*infoNode {
	byteField := func(dst *uint8, present *bool) *infoNode {
		return &infoNode{binary: func(r *grf.Reader, length int) bool {
			if length < 1 {
				glog.V(1).Infof("staticGRFInfo: short field in %q entry, ignoring", table)
				return true
			}
			*dst = r.ReadByte()
			if present != nil {
				*present = true
			}
			return true
		}}
	}
	dwordField := func(dst *uint32) *infoNode {
		return &infoNode{binary: func(r *grf.Reader, length int) bool {
			if length < 4 {
				glog.V(1).Infof("staticGRFInfo: short field in %q entry, ignoring", table)
				return true
			}
			*dst = r.ReadDWord()
			return true
		}}
	}

	tags := map[infoKey]*infoNode{
		{grf.MakeLabel("NAME"), 'T'}: {text: func(lang uint8, raw []byte) bool {
			d.name = string(raw)
			return true
		}},
		{grf.MakeLabel("FLBK"), 'B'}: {binary: func(r *grf.Reader, length int) bool {
			if length < 1 {
				glog.V(1).Infof("staticGRFInfo: short field in %q entry, ignoring", table)
				return true
			}
			d.fallback = remapFallback(r.ReadByte())
			return true
		}},
		{grf.MakeLabel("SETT"), 'B'}: byteField(&d.setting, &d.hasSetting),
	}

	switch table {
	case "FIDM":
		tags[infoKey{grf.MakeLabel("FTID"), 'B'}] = byteField(&d.id, &d.hasID)
	case "A0PM":
		tags[infoKey{grf.MakeLabel("FEAT"), 'B'}] = byteField(&d.feature, &d.hasFeature)
		tags[infoKey{grf.MakeLabel("PROP"), 'B'}] = byteField(&d.id, &d.hasID)
	case "A2VM":
		tags[infoKey{grf.MakeLabel("FEAT"), 'B'}] = byteField(&d.feature, &d.hasFeature)
		tags[infoKey{grf.MakeLabel("VARI"), 'B'}] = byteField(&d.id, &d.hasID)
		tags[infoKey{grf.MakeLabel("RSFT"), 'B'}] = byteField(&d.inputShift, nil)
		tags[infoKey{grf.MakeLabel("RMSK"), 'B'}] = dwordField(&d.inputMask)
		tags[infoKey{grf.MakeLabel("VSFT"), 'B'}] = byteField(&d.outputShift, nil)
		tags[infoKey{grf.MakeLabel("VMSK"), 'B'}] = dwordField(&d.outputMask)
		tags[infoKey{grf.MakeLabel("VPRM"), 'B'}] = byteField(&d.outputParam, nil)
	case "A5TM":
		tags[infoKey{grf.MakeLabel("TYPE"), 'B'}] = byteField(&d.id, &d.hasID)
	}
	return tags
}

// commitRemapDecl binds a finished declaration entry into the file's remap
// tables and presets its success-report parameter when one was asked for.
func (l *Loader) commitRemapDecl(d *remapDecl, table string) bool {
	c := l.cur.cfg
	f := l.cur.file

	if d.name == "" || !d.hasID {
		glog.V(1).Infof("staticGRFInfo: incomplete %q entry, ignoring", table)
		return true
	}

	// A declared feature byte may itself have been remapped by an earlier
	// entry; resolve it so the vocabulary comparison is against the real
	// feature.
	feat := entities.Feature(d.feature)
	if e, ok := f.remaps.features[d.feature]; ok && e.known {
		feat = e.target
	}

	var known bool
	switch table {
	case "FIDM":
		target, ok := remappableFeatureNames[d.name]
		known = ok
		f.remaps.features[d.id] = &featureRemap{name: d.name, target: target, known: ok, fallback: d.fallback}
	case "A0PM":
		if !d.hasFeature {
			glog.V(1).Infof("staticGRFInfo: property entry %q names no feature, ignoring", d.name)
			return true
		}
		target, ok := remappablePropertyNames[d.name]
		known = ok && target.feature == feat
		f.remaps.properties[propKey{feat, d.id}] = &propertyRemap{name: d.name, target: target.prop, known: known, fallback: d.fallback}
	case "A2VM":
		if !d.hasFeature {
			glog.V(1).Infof("staticGRFInfo: variable entry %q names no feature, ignoring", d.name)
			return true
		}
		target, ok := remappableVariableNames[d.name]
		known = ok && target.feature == feat
		f.remaps.variables[propKey{feat, d.id}] = &variableRemap{
			name:        d.name,
			target:      target.variable,
			known:       known,
			fallback:    d.fallback,
			inputShift:  d.inputShift,
			inputMask:   d.inputMask,
			outputShift: d.outputShift,
			outputMask:  d.outputMask,
			outputParam: d.outputParam,
		}
	case "A5TM":
		target, ok := remappableAction5Names[d.name]
		known = ok
		f.remaps.action5[d.id] = &action5Remap{name: d.name, target: target, known: ok, fallback: d.fallback}
	}

	glog.V(4).Infof("staticGRFInfo: %q entry %q -> 0x%02X, resolved: %t", table, d.name, d.id, known)

	if d.hasSetting && d.setting < MAX_NUM_PARAMS {
		value := uint32(0)
		if known {
			value = 1
		}
		c.remaps.paramPresets = append(c.remaps.paramPresets, paramPreset{slot: d.setting, value: value})
		f.SetParam(d.setting, value)
	}

	if !known && d.fallback == REMAP_DISABLE_NOW {
		l.disableGRF("unresolved "+table+" name \""+d.name+"\"", nil)
		return false
	}
	return true
}
