package catalog

import (
	"context"
	"slices"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"adviseek/internal/concurrency"
	"adviseek/internal/domain"
	"adviseek/internal/httpx"
)

// DefaultMajorLimit is the number of recommended majors modules are drawn from.
const DefaultMajorLimit = 5

type majorPlan struct {
	major    string
	school   domain.School
	prefixes []string
}

// Recommend returns the modules offered for the first limit majors of recs
// (all of them when limit <= 0). Modules are matched on the module-code
// prefixes mapped to each major and de-duplicated by code: a module keeps
// the position of its first match and the data of its last one.
//
// A school whose catalogue cannot be loaded is skipped. Failing to load the
// prefix mappings, or ctx ending before the catalogues are in, is an error.
func Recommend(ctx context.Context, src Source, recs domain.MajorRecommendations, limit int) ([]domain.Module, error) {
	majors := recs.AllMajors()
	if limit > 0 && len(majors) > limit {
		majors = majors[:limit]
	}
	if len(majors) == 0 {
		log.Debug("no recommended majors")
		return []domain.Module{}, nil
	}

	prefixMap, err := src.PrefixMappings(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "error loading prefix mappings")
	}

	plans, schools := plan(majors, prefixMap)
	catalogues, err := loadCatalogues(ctx, src, schools)
	if err != nil {
		return nil, err
	}

	var order []string
	byCode := make(map[string]domain.Module)
	for _, p := range plans {
		for _, m := range catalogues[p.school] {
			if !hasPrefix(m.Code, p.prefixes) {
				continue
			}
			m.Institution = p.school
			if _, seen := byCode[m.Code]; !seen {
				order = append(order, m.Code)
			}
			byCode[m.Code] = m
		}
	}

	modules := make([]domain.Module, 0, len(order))
	for _, code := range order {
		m := byCode[code]
		if m.ID == 0 {
			m.ID = ModuleID(m.Code)
		}
		modules = append(modules, m)
	}

	log.WithFields(log.Fields{
		"majors":  len(majors),
		"modules": len(modules),
	}).Debug("recommended modules")
	return modules, nil
}

func plan(majors []string, prefixMap PrefixMap) ([]majorPlan, []domain.School) {
	var (
		plans   []majorPlan
		schools []domain.School
	)
	for _, major := range majors {
		school, name, ok := ParseMajor(major)
		if !ok {
			log.WithField("major", major).Debug("school not specified for major")
			continue
		}
		prefixes := PrefixesForMajor(prefixMap[school], name)
		if len(prefixes) == 0 {
			log.WithFields(log.Fields{"major": name, "school": school}).Debug("no prefixes for major")
			continue
		}
		plans = append(plans, majorPlan{major: major, school: school, prefixes: prefixes})
		if !slices.Contains(schools, school) {
			schools = append(schools, school)
		}
	}
	return plans, schools
}

func loadCatalogues(ctx context.Context, src Source, schools []domain.School) (map[domain.School][]domain.Module, error) {
	lists, errs := concurrency.ProcessParallel(ctx, schools, concurrency.ParallelOptions{MaxWorkers: len(schools)},
		func(ctx context.Context, _ int, school domain.School) ([]domain.Module, error) {
			mods, err := src.Modules(ctx, school)
			if err != nil {
				return nil, errors.Wrapf(err, "error loading modules for %s", school)
			}
			return mods, nil
		})
	// skipped schools leave no error behind
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "error loading module catalogues")
	}
	for _, err := range errs {
		if httpx.IsNotFound(err) {
			log.WithError(err).Warn("catalogue not published, skipping school")
			continue
		}
		log.WithError(err).Warn("skipping school catalogue")
	}

	out := make(map[domain.School][]domain.Module, len(schools))
	for i, school := range schools {
		out[school] = lists[i]
	}
	return out, nil
}
