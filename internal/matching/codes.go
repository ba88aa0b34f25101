package matching

import (
	"slices"
	"strings"
)

// ArePermutations reports whether a and b hold the same characters in any
// order. Empty codes never match.
func ArePermutations(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	ra, rb := []rune(a), []rune(b)
	if len(ra) != len(rb) {
		return false
	}
	slices.Sort(ra)
	slices.Sort(rb)
	return slices.Equal(ra, rb)
}

// MatchShortCode reports whether every character of short occurs within the
// first len(short) characters of long.
func MatchShortCode(short, long string) bool {
	if short == "" || long == "" {
		return false
	}
	rs, rl := []rune(short), []rune(long)
	if len(rs) > len(rl) {
		return false
	}

	head := string(rl[:len(rs)])
	for _, r := range rs {
		if !strings.ContainsRune(head, r) {
			return false
		}
	}
	return true
}
