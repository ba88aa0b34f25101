package mappers

import (
	"regexp"
	"strings"
)

var (
	atUniversityRe = regexp.MustCompile(`(?i)^(.*?)[\s\p{Zs}]+at[\s\p{Zs}]+(\w+)$`)
	uniSuffixRe    = regexp.MustCompile(`^(.*?)[\s\p{Zs}]+(NUS|NTU|SMU)$`)
	specialCharsRe = regexp.MustCompile(`[^\w\s\p{Zs}]`)
	whitespaceRe   = regexp.MustCompile(`[\s\p{Zs}]+`)
)

// SanitizeToFilename converts a major name into the name of its question file.
// "Business & Management at SMU" becomes "Business_and_Management_SMU.json".
func SanitizeToFilename(major string) string {
	name := major
	university := ""

	if m := atUniversityRe.FindStringSubmatch(name); m != nil {
		name, university = m[1], m[2]
	} else if m := uniSuffixRe.FindStringSubmatch(name); m != nil {
		name, university = m[1], m[2]
	}

	name = strings.ReplaceAll(name, "&", "and")
	name = specialCharsRe.ReplaceAllString(name, "")
	name = strings.TrimSpace(name)
	name = whitespaceRe.ReplaceAllString(name, "_")

	if university != "" {
		name += "_" + university
	}
	return name + ".json"
}
