package venues

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/fixturecal/fixturecal/pkg/constants"
	"github.com/fixturecal/fixturecal/pkg/errors"
	"github.com/fixturecal/fixturecal/pkg/logging"
)

// storeFile is the on-disk shape of the registry: entries in insertion
// order, so saves are stable and diffs stay readable.
type storeFile struct {
	Venues []Entry `yaml:"venues"`
}

// Open loads a registry from the YAML file at path. A missing or
// unreadable file degrades to an empty registry rather than failing: the
// engine keeps running with lookups resolving to not-found, and the next
// successful save rewrites the file.
func Open(path string, opts ...Option) *Registry {
	r := NewRegistry(opts...)
	r.path = path

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logging.Warn().Err(err).Str("path", path).Msg("Venue store unreadable, starting empty")
		}
		return r
	}

	var file storeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		logging.Warn().Err(err).Str("path", path).Msg("Venue store corrupt, starting empty")
		return r
	}

	r.restore(file.Venues)
	logging.Debug().Int("venues", r.Len()).Str("path", path).Msg("Venue store loaded")
	return r
}

// Save persists the registry if and only if it has unsaved mutations.
// In-memory state is kept on failure so a later cycle retries the write.
func (r *Registry) Save() error {
	if !r.dirty {
		return nil
	}
	if r.path == "" {
		return errors.NewValidationError("path", "registry has no store path")
	}

	data, err := yaml.Marshal(storeFile{Venues: r.Entries()})
	if err != nil {
		return errors.WrapParse("yaml", r.path, err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}
	if err := os.WriteFile(r.path, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", r.path, err)
	}

	r.dirty = false
	logging.Debug().Int("venues", r.Len()).Str("path", r.path).Msg("Venue store saved")
	return nil
}
