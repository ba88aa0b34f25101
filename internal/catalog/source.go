package catalog

import (
	"context"
	"fmt"

	"adviseek/internal/domain"
)

// Reference data paths, relative to the data root.
const (
	OccupationMappingsPath = "quiz_refer/occupation_major_mappings.json"
	PrefixMappingsPath     = "school-data/mappings.json"
	modulesPathFormat      = "school-data/Module_code_and_description/Module_code_and_description_%s.json"
)

// ModulesPath is the path of the module catalogue of school.
func ModulesPath(school domain.School) string {
	return fmt.Sprintf(modulesPathFormat, school)
}

// Source loads the reference data behind major and module recommendations.
type Source interface {
	OccupationMappings(ctx context.Context) ([]domain.OccupationMajorMapping, error)
	PrefixMappings(ctx context.Context) (PrefixMap, error)
	Modules(ctx context.Context, school domain.School) ([]domain.Module, error)
}
