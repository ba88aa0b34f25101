package matching

import (
	log "github.com/sirupsen/logrus"

	"adviseek/internal/domain"
	"adviseek/internal/mappers"
)

// OccupationLimit caps how many occupations each tier draws majors from.
const OccupationLimit = 3

// shortCodeLength is the longest RIASEC code matched by prefix instead of
// by permutation.
const shortCodeLength = 2

// MatchMajors ranks the majors of mappings against a user's RIASEC and work
// value codes. Tiers are evaluated independently over the whole list; the
// first non-empty tier decides MatchType and QuestionFiles.
func MatchMajors(mappings []domain.OccupationMajorMapping, riasec, workValue string) domain.MajorRecommendations {
	res := domain.MajorRecommendations{
		ExactMatches:       []string{},
		PermutationMatches: []string{},
		RiasecMatches:      []string{},
		WorkValueMatches:   []string{},
		QuestionFiles:      []string{},
		RiasecCode:         riasec,
		WorkValueCode:      workValue,
		MatchType:          domain.MatchNone,
	}

	m := matcher{riasec: riasec, workValue: workValue}
	tiers := []struct {
		kind  domain.MatchType
		keep  func(domain.OccupationMajorMapping) bool
		field *[]string
	}{
		{domain.MatchExact, m.exact, &res.ExactMatches},
		{domain.MatchPermutation, m.permutation, &res.PermutationMatches},
		{domain.MatchRiasec, m.riasecOnly, &res.RiasecMatches},
		{domain.MatchWorkValue, m.workValueOnly, &res.WorkValueMatches},
	}

	for _, tier := range tiers {
		majors := collect(mappings, tier.keep)
		*tier.field = majors
		if len(majors) > 0 && res.MatchType == domain.MatchNone {
			res.MatchType = tier.kind
			res.QuestionFiles = questionFiles(majors)
		}
	}

	log.WithFields(log.Fields{
		"riasec":          riasec,
		"work_value":      workValue,
		"exact":           len(res.ExactMatches),
		"permutation":     len(res.PermutationMatches),
		"riasec_only":     len(res.RiasecMatches),
		"work_value_only": len(res.WorkValueMatches),
		"match_type":      res.MatchType,
	}).Debug("matched majors")

	return res
}

func collect(mappings []domain.OccupationMajorMapping, keep func(domain.OccupationMajorMapping) bool) []string {
	var majors []string
	taken := 0
	for _, occ := range mappings {
		if taken == OccupationLimit {
			break
		}
		if !keep(occ) {
			continue
		}
		taken++
		majors = append(majors, occ.Majors...)
	}
	return domain.Unique(majors)
}

func questionFiles(majors []string) []string {
	files := make([]string, len(majors))
	for i, major := range majors {
		files[i] = mappers.SanitizeToFilename(major)
	}
	return files
}

type matcher struct {
	riasec    string
	workValue string
}

func (m matcher) exact(occ domain.OccupationMajorMapping) bool {
	return occ.RIASECCode != nil && occ.WorkValueCode != nil &&
		*occ.RIASECCode == m.riasec && *occ.WorkValueCode == m.workValue
}

func (m matcher) bothPermute(occ domain.OccupationMajorMapping) bool {
	return occ.RIASECCode != nil && occ.WorkValueCode != nil &&
		ArePermutations(*occ.RIASECCode, m.riasec) &&
		ArePermutations(*occ.WorkValueCode, m.workValue)
}

func (m matcher) permutation(occ domain.OccupationMajorMapping) bool {
	return m.bothPermute(occ) && !m.exact(occ)
}

// riasecMatches applies the RIASEC-only rule: short codes match by prefix,
// longer ones when equal or permuted.
func (m matcher) riasecMatches(code string) bool {
	if len([]rune(code)) <= shortCodeLength {
		return MatchShortCode(code, m.riasec)
	}
	return code == m.riasec || ArePermutations(code, m.riasec)
}

func (m matcher) riasecOnly(occ domain.OccupationMajorMapping) bool {
	if occ.RIASECCode == nil {
		return false
	}
	return m.riasecMatches(*occ.RIASECCode) && !m.exact(occ) && !m.bothPermute(occ)
}

func (m matcher) workValueOnly(occ domain.OccupationMajorMapping) bool {
	if occ.WorkValueCode == nil {
		return false
	}
	code := *occ.WorkValueCode
	if code != m.workValue && !ArePermutations(code, m.workValue) {
		return false
	}
	if m.exact(occ) || m.bothPermute(occ) {
		return false
	}
	if occ.RIASECCode != nil && (*occ.RIASECCode == m.riasec || m.riasecMatches(*occ.RIASECCode)) {
		return false
	}
	return true
}
