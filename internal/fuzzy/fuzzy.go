// Package fuzzy scores the similarity of short strings such as character
// names, so that "Holmes" and "Sherlock Holmes" can be counted as one entity.
package fuzzy

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Ratio returns the edit-distance similarity of a and b on a 0-100 scale:
// the share of the longer string that needs no edit. Two empty strings are
// identical.
func Ratio(a, b string) int {
	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 100
	}
	dist := levenshtein.ComputeDistance(a, b)
	return int(math.Round(100 * float64(longest-dist) / float64(longest)))
}

// PartialRatio returns the best Ratio of the shorter string against every
// window of the longer string with the same length. It is 0 when either
// string is empty.
func PartialRatio(a, b string) int {
	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) == 0 {
		return 0
	}
	if len(short) == len(long) {
		return Ratio(a, b)
	}

	s := string(short)
	best := 0
	for i := 0; i+len(short) <= len(long); i++ {
		r := Ratio(s, string(long[i:i+len(short)]))
		if r > best {
			best = r
			if best == 100 {
				break
			}
		}
	}
	return best
}

var tokenRe = regexp.MustCompile(`[\p{L}\p{N}]+`)

// TokenSort lower-cases s and rewrites it as its word tokens in sorted
// order, so "Austen, Jane" and "Jane Austen" normalize to the same string.
func TokenSort(s string) string {
	tokens := tokenRe.FindAllString(strings.ToLower(s), -1)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// TokenSortPartialRatio is PartialRatio over the TokenSort forms of a and b.
func TokenSortPartialRatio(a, b string) int {
	return PartialRatio(TokenSort(a), TokenSort(b))
}

// BestMatch returns the candidate with the highest PartialRatio against s,
// provided it exceeds threshold. Ties go to the earlier candidate.
func BestMatch(candidates []string, s string, threshold int) (string, bool) {
	var (
		match string
		best  = threshold
		found bool
	)
	for _, c := range candidates {
		if r := PartialRatio(c, s); r > best {
			match, best, found = c, r, true
		}
	}
	return match, found
}
