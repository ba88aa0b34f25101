package mappers

import (
	"strings"

	"adviseek/internal/domain"
)

// SignatureLength is how many top-ranked categories make up a signature code.
const SignatureLength = 3

// Mapper turns a category label into its short code, or "" when the label is unknown.
type Mapper func(component string) string

// RIASEC interest dimensions. Full names and the codes themselves are accepted.
var riasecCodes = map[string]string{
	"R": "R",
	"I": "I",
	"A": "A",
	"S": "S",
	"E": "E",
	"C": "C",

	"Realistic":     "R",
	"Investigative": "I",
	"Artistic":      "A",
	"Social":        "S",
	"Enterprising":  "E",
	"Conventional":  "C",
}

// Work-value dimensions. Recognition and Altruism use two-letter codes.
var workValueCodes = map[string]string{
	"A":  "A",
	"R":  "R",
	"I":  "I",
	"Rc": "Rc",
	"W":  "W",
	"S":  "S",
	"Al": "Al",

	"Achievement":        "A",
	"Relationships":      "R",
	"Independence":       "I",
	"Recognition":        "Rc",
	"Working Conditions": "W",
	"Support":            "S",
	"Altruism":           "Al",
}

// MapRiasecToCode maps a RIASEC label ("Social" or "S") to its one-letter code.
// Unknown labels map to "".
func MapRiasecToCode(component string) string {
	return riasecCodes[component]
}

// MapWorkValueToCode maps a work-value label ("Recognition" or "Rc") to its code.
// Unknown labels map to "".
func MapWorkValueToCode(component string) string {
	return workValueCodes[component]
}

// FormCode builds a signature code from the first SignatureLength components,
// in the order given. The caller is responsible for ranking the list.
//
// Unknown labels contribute nothing, so the result can be shorter than expected
// and a work-value signature can no longer be split back into its codes.
func FormCode(components []domain.ScoredCategory, mapper Mapper) string {
	n := min(len(components), SignatureLength)

	var b strings.Builder
	for _, c := range components[:n] {
		if mapper == nil {
			continue
		}
		b.WriteString(mapper(c.Component))
	}
	return b.String()
}
