package catalog

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"adviseek/internal/domain"
)

// DirSource reads reference data from a local directory laid out like the
// published data root.
type DirSource struct {
	Root string
}

func (s DirSource) read(path string, out any) error {
	full := filepath.Join(s.Root, filepath.FromSlash(path))
	b, err := os.ReadFile(full)
	if err != nil {
		return errors.Wrapf(err, "error reading %s", full)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return errors.Wrapf(err, "error parsing %s", full)
	}
	return nil
}

func (s DirSource) OccupationMappings(ctx context.Context) ([]domain.OccupationMajorMapping, error) {
	var list []domain.OccupationMajorMapping
	if err := s.read(OccupationMappingsPath, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s DirSource) PrefixMappings(ctx context.Context) (PrefixMap, error) {
	var f mappingsFile
	if err := s.read(PrefixMappingsPath, &f); err != nil {
		return nil, err
	}
	return f.prefixMap(), nil
}

func (s DirSource) Modules(ctx context.Context, school domain.School) ([]domain.Module, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var list []domain.Module
	if err := s.read(ModulesPath(school), &list); err != nil {
		return nil, err
	}
	return list, nil
}
