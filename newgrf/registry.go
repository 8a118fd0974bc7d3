package newgrf

import (
	"badc0de.net/pkg/go-newgrf/entities"
	"badc0de.net/pkg/go-newgrf/grftext"
)

// Registry is the process-wide outcome of NewGRF loading: the entity tables,
// the string table and the file set of the most recent load. It hands out
// one Loader per load and rebuilds everything from stock state on Reset, so
// a changed file set or climate never sees leftovers from the previous one.
type Registry struct {
	Env     Env
	Tables  *entities.Tables
	Strings *grftext.Table

	loader *Loader
}

// NewRegistry builds a registry with stock tables for the environment's
// climate.
func NewRegistry(env Env) *Registry {
	r := &Registry{Env: env}
	r.Reset()
	return r
}

// Reset discards every loaded file and restores the stock tables. String
// ids handed out before the reset are no longer meaningful.
func (r *Registry) Reset() {
	r.Tables = entities.NewTables(r.Env.Climate)
	r.Strings = grftext.NewTable()
	r.loader = NewLoader(r.Tables, r.Strings, r.Env)
}

// Loader returns the loader of the current load generation.
func (r *Registry) Loader() *Loader { return r.loader }

// Load identifies the files at the given paths and drives them through all
// loading stages in argument order. Files that fail identification stay in
// the returned set with a disabled status.
func (r *Registry) Load(paths []string) ([]*Config, error) {
	configs := make([]*Config, 0, len(paths))
	for _, path := range paths {
		c, _ := r.loader.Scan(path, false)
		configs = append(configs, c)
	}
	return configs, r.loader.Load(configs)
}

// ConfigByGRFID finds the config of a loaded file.
func (r *Registry) ConfigByGRFID(grfid uint32) *Config {
	return r.loader.GetGRFConfig(grfid, 0xFFFFFFFF)
}

// ConfigByPath finds the config loaded from the given path.
func (r *Registry) ConfigByPath(path string) *Config {
	for _, c := range r.loader.Configs() {
		if c.Path == path {
			return c
		}
	}
	return nil
}

// Errors collects the load errors of every file of the current set, in
// load order.
func (r *Registry) Errors() []*LoadError {
	var errs []*LoadError
	for _, c := range r.loader.Configs() {
		if c.Error != nil {
			errs = append(errs, c.Error)
		}
	}
	return errs
}
