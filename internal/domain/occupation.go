package domain

// OccupationMajorMapping links an occupation's RIASEC and work-value codes to majors.
// A nil code means the source record had no code (JSON null).
type OccupationMajorMapping struct {
	Occupation    string   `json:"occupation" yaml:"occupation"`
	RIASECCode    *string  `json:"RIASEC_code" yaml:"RIASEC_code"`
	WorkValueCode *string  `json:"work_value_code" yaml:"work_value_code"`
	Majors        []string `json:"majors" yaml:"majors"`
}

// MatchType names the tier that produced the question files of a recommendation.
type MatchType string

const (
	MatchExact       MatchType = "exact"
	MatchPermutation MatchType = "permutation"
	MatchRiasec      MatchType = "riasec"
	MatchWorkValue   MatchType = "workValue"
	MatchNone        MatchType = "none"
)

// MajorRecommendations holds the majors found for a pair of signature codes, per tier.
type MajorRecommendations struct {
	ExactMatches       []string  `json:"exactMatches" yaml:"exactMatches"`
	PermutationMatches []string  `json:"permutationMatches" yaml:"permutationMatches"`
	RiasecMatches      []string  `json:"riasecMatches" yaml:"riasecMatches"`
	WorkValueMatches   []string  `json:"workValueMatches" yaml:"workValueMatches"`
	QuestionFiles      []string  `json:"questionFiles" yaml:"questionFiles"`
	RiasecCode         string    `json:"riasecCode" yaml:"riasecCode"`
	WorkValueCode      string    `json:"workValueCode" yaml:"workValueCode"`
	MatchType          MatchType `json:"matchType" yaml:"matchType"`
}

// AllMajors returns the majors of every tier, best tier first, without duplicates.
func (r *MajorRecommendations) AllMajors() []string {
	if r == nil {
		return nil
	}
	var all []string
	all = append(all, r.ExactMatches...)
	all = append(all, r.PermutationMatches...)
	all = append(all, r.RiasecMatches...)
	all = append(all, r.WorkValueMatches...)
	return Unique(all)
}

// Unique drops repeated values, keeping the first occurrence of each.
func Unique(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// StringPtr returns a pointer to s. Handy for building mappings in code.
func StringPtr(s string) *string {
	return &s
}
