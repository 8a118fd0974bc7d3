package newgrf

import (
	"github.com/golang/glog"

	"badc0de.net/pkg/go-newgrf/entities"
	"badc0de.net/pkg/go-newgrf/grf"
)

// grfSound registers the sound effects following the declaration (action
// 0x11). The declared count of records comes right after this one; each is
// either an inline sample, a reference into the sprite section of a version
// 2 container, or an import of a sound another file already loaded. The
// samples themselves are not decoded, only their locations are recorded so
// a player can fetch them later.
func grfSound(l *Loader, r *grf.Reader) {
	num := int(r.ReadWord())
	if num == 0 {
		glog.V(7).Infof("grfSound: no sound effects, skipping")
		return
	}

	f := l.cur.file

	// The action runs in two stages; the pool slots are claimed on the
	// first one and reused afterwards.
	offset := f.soundOffset
	if offset == 0 {
		offset = entities.SoundID(l.Tables.Sounds.Len())
		f.soundOffset = offset
		f.numSounds = uint16(num)
		for i := 0; i < num; i++ {
			l.Tables.Sounds.Append(&entities.SoundEntry{GRFID: f.grfid, Path: f.container.Path()})
		}
	}

	glog.V(2).Infof("grfSound: %d sound effects from slot %d", num, offset)

	container := l.cur.grf
	for i := 0; i < num; i++ {
		size, typ, err := container.ReadRecordHeader()
		if err != nil {
			l.disableGRF("unexpected end of file", nil)
			return
		}
		l.cur.nfoLine++
		sound := l.Tables.Sounds.Entry(offset + entities.SoundID(i))

		switch {
		case typ == grf.RECORD_PSEUDO:
			pos := container.Pos()
			data, err := container.ReadPseudo(size)
			if err != nil {
				l.disableGRF("unexpected end of file", nil)
				return
			}
			l.loadSoundRecord(sound, data, pos)

		case container.ContainerVersion() >= 2 && typ == grf.RECORD_REFERENCE:
			data, err := container.ReadPseudo(size)
			if err != nil || len(data) < 4 {
				l.disableGRF("unexpected end of file", nil)
				return
			}
			sound.SectionID = grf.NewReader(data).ReadDWord()

		default:
			glog.V(1).Infof("grfSound: sound %d is a real sprite, ignoring", i)
			if err := l.skipRealSprite(size, typ); err != nil {
				l.disableGRF("unexpected end of file", nil)
				return
			}
		}
	}
}

// loadSoundRecord interprets one pseudo record in sound position: sample
// data led in by 0xFF, or an import of another file's sound led in by 0xFE.
func (l *Loader) loadSoundRecord(sound *entities.SoundEntry, data []byte, pos int) {
	r := grf.NewReader(data)
	switch lead := r.ReadByte(); lead {
	case 0xFF:
		// One pad byte, then the raw sample bytes to the end of the record.
		r.ReadByte()
		sound.Offset = pos + r.Pos()
		sound.Size = uint32(r.Remaining())

	case 0xFE:
		if r.ReadByte() != 0 {
			glog.V(1).Infof("grfSound: invalid sound import subtype, ignoring")
			return
		}
		grfid := r.ReadDWord()
		number := r.ReadWord()
		l.importGRFSound(sound, grfid, number)

	default:
		glog.V(1).Infof("grfSound: unexpected record lead-in 0x%02X, ignoring", lead)
	}
}

// importGRFSound points a sound slot at a sample another file supplied.
func (l *Loader) importGRFSound(sound *entities.SoundEntry, grfid uint32, number uint16) {
	source := l.fileByGRFID(grfid)
	if source == nil {
		glog.V(1).Infof("grfSound: cannot import sound %d from unknown grf %s", number, grf.SwappedLabel(grfid))
		return
	}
	if source.soundOffset == 0 || number >= source.numSounds {
		glog.V(1).Infof("grfSound: sound %d of %s does not exist, ignoring", number, source.Config.GetName())
		return
	}
	origin := l.Tables.Sounds.Entry(source.soundOffset + entities.SoundID(number))
	grfidOwn := sound.GRFID
	*sound = *origin
	sound.GRFID = grfidOwn
	glog.V(3).Infof("grfSound: imported sound %d of %s", number, source.Config.GetName())
}
