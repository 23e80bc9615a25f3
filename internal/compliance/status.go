package compliance

import (
	"context"
	"fmt"
	"strings"

	"github.com/wardenhq/warden/internal/engine"
	"github.com/wardenhq/warden/internal/extraction"
)

// Status is the per-document-class threshold verdict for one regulatory clause.
type Status string

const (
	StatusYes Status = "Yes"
	StatusNo  Status = "No"
	StatusNA  Status = "N/A"
)

// PoolThresholds flattens the thresholds of a clause set into match
// candidates tagged with their source clause.
func PoolThresholds(clauses []extraction.Clause) []engine.Candidate {
	pool := make([]engine.Candidate, 0)
	for _, c := range clauses {
		for _, t := range c.Thresholds {
			pool = append(pool, engine.Candidate{
				Threshold: t,
				Source:    c.ClauseID,
			})
		}
	}
	return pool
}

// CompareClause verifies every threshold of a regulatory clause against the
// pooled thresholds of one target document class. The verdict is fail-closed
// on match existence: an unmatched regulatory threshold yields No. It is
// fail-open on comparability: matched pairs that cannot be compared pass.
func CompareClause(ctx context.Context, matcher *engine.Matcher, reg extraction.Clause, pool []engine.Candidate, sourceType string) (Status, []string) {
	if len(reg.Thresholds) == 0 {
		return StatusNA, []string{"No thresholds to compare"}
	}

	if len(pool) == 0 {
		return StatusNo, []string{fmt.Sprintf("No %s rules with thresholds", sourceType)}
	}

	explanations := make([]string, 0, len(reg.Thresholds))
	allPass := true

	for _, t := range reg.Thresholds {
		match := matcher.FindBestMatch(ctx, t, pool)
		if match == nil {
			allPass = false
			explanations = append(explanations, fmt.Sprintf(
				"%s: ✗ NO MATCHING RULE FOUND - cannot verify compliance", t.Parameter,
			))
			continue
		}

		comparison := engine.Compare(t, match.Candidate.Threshold)
		mark := "✓"
		if !comparison.Passed {
			allPass = false
			mark = "✗"
		}

		explanations = append(explanations, fmt.Sprintf(
			"%s [%s]: %s %s",
			t.Parameter, match.Candidate.Source, mark, comparison.Explanation,
		))
	}

	if allPass {
		return StatusYes, explanations
	}
	return StatusNo, explanations
}

// JoinExplanations renders per-threshold explanations as one report cell.
func JoinExplanations(explanations []string) string {
	return strings.Join(explanations, "; ")
}
