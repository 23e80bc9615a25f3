package oracle

import (
	"context"
	"strings"

	"github.com/wardenhq/warden/internal/engine"
)

// Lexical is a deterministic, zero-latency oracle built on token overlap.
// It is the default provider and the substitute used in tests; audits run
// with it are fully reproducible.
type Lexical struct {
	relatednessThreshold float64
}

// NewLexical creates a Lexical oracle with the default relatedness threshold.
func NewLexical() *Lexical {
	return &Lexical{relatednessThreshold: 0.5}
}

// Similarity scores two rule statements by word-set overlap, weighted toward
// the smaller statement so a terse system rule embedded in verbose legal text
// still scores high.
func (l *Lexical) Similarity(_ context.Context, a, b string) (float64, error) {
	sa, sb := wordSet(a), wordSet(b)
	if len(sa) == 0 || len(sb) == 0 {
		return 0.0, nil
	}

	intersection := 0
	for w := range sa {
		if _, ok := sb[w]; ok {
			intersection++
		}
	}

	union := len(sa) + len(sb) - intersection
	jaccard := float64(intersection) / float64(union)

	smaller := min(len(sa), len(sb))
	containment := float64(intersection) / float64(smaller)

	// average keeps one-sided containment from dominating entirely
	return (jaccard + containment) / 2, nil
}

// Relatedness judges parameter names with the engine's own tiered name
// similarity, reporting the score as confidence.
func (l *Lexical) Relatedness(_ context.Context, a, b string) (engine.RelatednessResult, error) {
	sim := engine.NameSimilarity(a, b)

	return engine.RelatednessResult{
		Match:      sim >= l.relatednessThreshold,
		Confidence: sim,
		Reason:     "lexical name similarity",
	}, nil
}

func wordSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(text)) {
		w = strings.Trim(w, ".,;:()[]{}\"'")
		if len(w) <= 2 {
			continue
		}
		set[w] = struct{}{}
	}
	return set
}
