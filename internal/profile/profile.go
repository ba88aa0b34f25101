// Package profile turns stored quiz responses into ranked category scores
// and signature codes.
package profile

import (
	"slices"

	"adviseek/internal/domain"
	"adviseek/internal/mappers"
)

// Kind is a family of quizzes whose responses score the same categories.
type Kind struct {
	Name      string
	QuizTypes []string
	Mapper    mappers.Mapper
}

var (
	RIASEC = Kind{
		Name:      "riasec",
		QuizTypes: []string{"riasec", "interest-part 1", "interest-part 2", "competence"},
		Mapper:    mappers.MapRiasecToCode,
	}
	WorkValues = Kind{
		Name:      "work-value",
		QuizTypes: []string{"work-values", "work_value"},
		Mapper:    mappers.MapWorkValueToCode,
	}
)

// Kinds lists every supported quiz family.
var Kinds = []Kind{RIASEC, WorkValues}

// KindByName returns the kind with the given name.
func KindByName(name string) (Kind, bool) {
	for _, k := range Kinds {
		if k.Name == name {
			return k, true
		}
	}
	return Kind{}, false
}

// Accepts reports whether responses of quizType count towards k.
func (k Kind) Accepts(quizType string) bool {
	return slices.Contains(k.QuizTypes, quizType)
}

// Score sums the scores of each component answered in a quiz of kind k and
// returns the components ordered by score, highest first. Ties keep the
// order in which components were first answered.
func Score(responses []domain.Response, k Kind) []domain.ScoredCategory {
	index := make(map[string]int)
	scores := []domain.ScoredCategory{}
	for _, r := range responses {
		if r.Component == "" || !k.Accepts(r.QuizType) {
			continue
		}
		i, ok := index[r.Component]
		if !ok {
			i = len(scores)
			index[r.Component] = i
			scores = append(scores, domain.ScoredCategory{Component: r.Component})
		}
		scores[i].Score += r.Score
		scores[i].Average = scores[i].Score
	}

	slices.SortStableFunc(scores, func(a, b domain.ScoredCategory) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		return 0
	})
	return scores
}

// Signature is the code formed from the top categories of Score.
func Signature(responses []domain.Response, k Kind) string {
	return mappers.FormCode(Score(responses, k), k.Mapper)
}
