package newgrf

import (
	"badc0de.net/pkg/go-newgrf/entities"
	"badc0de.net/pkg/go-newgrf/grf"
)

// refitState tracks what kind of refit information a vehicle definition
// supplied, so finalization can tell "never said anything" apart from
// "explicitly refits to nothing".
type refitState uint8

const (
	REFIT_UNSET    refitState = iota // no refit property seen
	REFIT_EMPTY                      // only empty masks or exclusions seen
	REFIT_NONEMPTY                   // at least one property added cargoes
)

// engineTempData is the per-engine scratch state of one load. Properties
// that can only be resolved once every file has run park their raw values
// here; finalize folds them into the engine and the scratch map is dropped.
type engineTempData struct {
	cargoAllowed         entities.CargoClasses
	cargoAllowedRequired entities.CargoClasses
	cargoDisallowed      entities.CargoClasses
	cttInclude           entities.CargoMask
	cttExclude           entities.CargoMask
	refittability        refitState

	// The file whose cargo translation environment applies when the
	// default cargo has to be picked from the refit mask.
	defaultCargoFile *File

	// Rail vehicles carry the label of their track type until all label
	// tables are complete.
	railTypeLabel grf.Label

	// Road vehicles: the raw track type value plus one (zero means unset),
	// and the raw speed property awaiting its unit conversion.
	roadTramType uint8
	rvMaxSpeed   uint8
}

// updateRefittability records whether a refit property carried any cargo.
// Additions are sticky; an empty value only counts when nothing added
// cargo before it.
func (t *engineTempData) updateRefittability(nonEmpty bool) {
	if nonEmpty {
		t.refittability = REFIT_NONEMPTY
	} else if t.refittability == REFIT_UNSET {
		t.refittability = REFIT_EMPTY
	}
}

// tempEngine returns the scratch state of an engine, creating it on first
// use.
func (l *Loader) tempEngine(id entities.EngineID) *engineTempData {
	if t, ok := l.tempEngines[id]; ok {
		return t
	}
	t := &engineTempData{}
	l.tempEngines[id] = t
	return t
}

// engine resolves the definition target for an internal vehicle id of the
// current file, following the engine scope redirections. Static files only
// observe engines; they never claim or allocate slots.
func (l *Loader) engine(kind entities.VehicleKind, internal uint16) *entities.Engine {
	f := l.cur.file
	scope := l.Tables.Engines.ScopeGRFID(f.grfid)
	e := l.Tables.Engines.GetOrCreate(kind, internal, scope, l.cur.cfg.HasFlag(GCF_STATIC))
	if e == nil {
		return nil
	}
	e.Props.SetGRF(f.grfid, internal)
	return e
}
