// Package engine implements the parameter matching and threshold comparison
// core of the audit: fuzzy matching of parameter names across documents,
// operator-aware comparison of matched limits, and best-match selection with
// an optional relatedness oracle for the ambiguous middle band.
package engine

import (
	"strings"
	"unicode"
)

// stopTokens are generic qualifier tokens that carry no identity; they are
// dropped before token overlap so "ltv_ratio" and "ltv_max" still intersect.
var stopTokens = map[string]struct{}{
	"max":   {},
	"min":   {},
	"count": {},
	"ratio": {},
	"value": {},
}

// NormalizeName lowercases a parameter name and strips every
// non-alphanumeric character.
func NormalizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Tokenize splits a parameter name into lowercase tokens on underscores,
// whitespace, case transitions, and letter-digit boundaries.
func Tokenize(name string) []string {
	tokens := make([]string, 0, 4)
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, strings.ToLower(current.String()))
			current.Reset()
		}
	}

	runes := []rune(name)
	for i, r := range runes {
		switch {
		case r == '_' || unicode.IsSpace(r) || r == '-':
			flush()
		case i > 0 && boundary(runes[i-1], r):
			flush()
			current.WriteRune(r)
		default:
			current.WriteRune(r)
		}
	}
	flush()

	return tokens
}

func boundary(prev, curr rune) bool {
	if unicode.IsLower(prev) && unicode.IsUpper(curr) {
		return true
	}
	if unicode.IsLetter(prev) && unicode.IsDigit(curr) {
		return true
	}
	if unicode.IsDigit(prev) && unicode.IsLetter(curr) {
		return true
	}
	return false
}

func filteredTokenSet(name string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range Tokenize(name) {
		if len(tok) <= 2 {
			continue
		}
		if _, stop := stopTokens[tok]; stop {
			continue
		}
		set[tok] = struct{}{}
	}
	return set
}

// NameSimilarity scores how plausibly two parameter names refer to the same
// quantity. Tiers are evaluated in order and the first applicable wins:
// exact normalized equality (1.0), containment either direction (0.85),
// filtered token overlap (max of 0.7 and the Jaccard index), then a
// character-level subsequence ratio as the fallback. Empty input scores 0.
func NameSimilarity(a, b string) float64 {
	na, nb := NormalizeName(a), NormalizeName(b)
	if na == "" || nb == "" {
		return 0.0
	}

	if na == nb {
		return 1.0
	}

	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return 0.85
	}

	sa, sb := filteredTokenSet(a), filteredTokenSet(b)
	if overlap := jaccard(sa, sb); overlap > 0 {
		return max(0.7, overlap)
	}

	return lcsRatio(na, nb)
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	intersection := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			intersection++
		}
	}
	if intersection == 0 {
		return 0.0
	}

	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}

// lcsRatio computes 2*LCS(a,b) / (len(a)+len(b)), the longest common
// subsequence analogue of a sequence-match ratio, in [0, 1].
func lcsRatio(a, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0.0
	}

	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)

	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			if ra[i-1] == rb[j-1] {
				curr[j] = prev[j-1] + 1
			} else {
				curr[j] = max(prev[j], curr[j-1])
			}
		}
		prev, curr = curr, prev
	}

	lcs := prev[len(rb)]
	return 2.0 * float64(lcs) / float64(len(ra)+len(rb))
}
