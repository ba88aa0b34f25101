package catalog

import (
	"regexp"
	"sort"
	"strings"

	"adviseek/internal/domain"
)

var schoolSuffixRe = regexp.MustCompile(` at (NUS|NTU|SMU)$`)

// PrefixMap holds, per school, the module-code prefix of every major.
type PrefixMap map[domain.School]map[string]string

type mappingsFile struct {
	NUS map[string]string `json:"nus_prefix_to_major"`
	NTU map[string]string `json:"ntu_prefix_to_major"`
	SMU map[string]string `json:"smu_prefix_to_major"`
}

func (f mappingsFile) prefixMap() PrefixMap {
	return PrefixMap{
		domain.SchoolNUS: f.NUS,
		domain.SchoolNTU: f.NTU,
		domain.SchoolSMU: f.SMU,
	}
}

// ParseMajor splits "Computer Science at NUS" into its school and major
// name. ok is false when the major names no known school.
func ParseMajor(major string) (school domain.School, name string, ok bool) {
	for _, s := range domain.Schools {
		if strings.Contains(major, "at "+string(s)) {
			school, ok = s, true
			break
		}
	}
	if !ok {
		return "", major, false
	}
	return school, schoolSuffixRe.ReplaceAllString(major, ""), true
}

// PrefixesForMajor returns the sorted prefixes mapped to major, compared
// case-insensitively.
func PrefixesForMajor(prefixes map[string]string, major string) []string {
	var out []string
	for prefix, mapped := range prefixes {
		if strings.EqualFold(mapped, major) {
			out = append(out, prefix)
		}
	}
	sort.Strings(out)
	return out
}

func hasPrefix(code string, prefixes []string) bool {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, p := range prefixes {
		if strings.HasPrefix(code, strings.ToUpper(strings.TrimSpace(p))) {
			return true
		}
	}
	return false
}
