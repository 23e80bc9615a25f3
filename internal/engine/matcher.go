package engine

import (
	"context"
	"log/slog"

	"github.com/wardenhq/warden/internal/extraction"
)

// Candidate is one pooled threshold from a target document, tagged with the
// clause it came from.
type Candidate struct {
	Threshold extraction.Threshold
	Source    string
}

// Match is the result of best-match selection. It is a fresh record; the
// pooled Candidate it references is never modified.
type Match struct {
	Candidate  Candidate
	Similarity float64
	Score      float64
	Semantic   bool
	Reason     string
}

// RelatednessResult is a semantic judgment on whether two parameter names
// refer to the same quantity.
type RelatednessResult struct {
	Match      bool
	Confidence float64
	Reason     string
}

// RelatednessOracle judges semantic relatedness of two parameter names.
// Consulted only for the ambiguous middle similarity band.
type RelatednessOracle interface {
	Relatedness(ctx context.Context, a, b string) (RelatednessResult, error)
}

// Matcher selects the best candidate threshold for a regulatory threshold.
type Matcher struct {
	cfg    Config
	oracle RelatednessOracle
	logger *slog.Logger
}

// NewMatcher creates a Matcher. oracle may be nil, in which case the middle
// similarity band is never accepted.
func NewMatcher(cfg Config, oracle RelatednessOracle, logger *slog.Logger) *Matcher {
	return &Matcher{
		cfg:    cfg,
		oracle: oracle,
		logger: logger.With("system", "engine"),
	}
}

// Config returns the matcher's active configuration.
func (m *Matcher) Config() Config {
	return m.cfg
}

// FindBestMatch scans the candidate pool for the threshold that most
// plausibly implements reg. Candidates with name similarity at or above the
// direct tier are accepted outright; the ambiguous band defers to the
// relatedness oracle; everything below is skipped. Returns nil when no
// candidate clears the acceptance floor: an unmatched regulatory threshold
// is unverifiable, never implicitly compliant.
func (m *Matcher) FindBestMatch(ctx context.Context, reg extraction.Threshold, pool []Candidate) *Match {
	var best *Match

	for _, candidate := range pool {
		sim := NameSimilarity(reg.Parameter, candidate.Threshold.Parameter)

		bonus := 0.0
		if OperatorsCompatible(reg.Operator, candidate.Threshold.Operator) {
			bonus = m.cfg.OperatorBonus
		}

		var match *Match
		switch {
		case sim >= m.cfg.DirectSimilarity:
			match = &Match{
				Candidate:  candidate,
				Similarity: sim,
				Score:      sim + bonus,
			}
		case sim >= m.cfg.OracleFloor && m.oracle != nil:
			match = m.consultOracle(ctx, reg, candidate, sim, bonus)
		}

		if match != nil && (best == nil || match.Score > best.Score) {
			match := *match
			best = &match
		}
	}

	if best == nil || best.Score < m.cfg.AcceptFloor {
		return nil
	}

	return best
}

// consultOracle queries the relatedness oracle for a mid-band candidate.
// Oracle failures degrade to no match for this candidate only.
func (m *Matcher) consultOracle(ctx context.Context, reg extraction.Threshold, candidate Candidate, sim, bonus float64) *Match {
	result, err := m.oracle.Relatedness(ctx, reg.Parameter, candidate.Threshold.Parameter)
	if err != nil {
		m.logger.WarnContext(
			ctx, "relatedness oracle failed",
			"parameter", reg.Parameter,
			"candidate", candidate.Threshold.Parameter,
			"error", err,
		)
		return nil
	}

	if !result.Match {
		return nil
	}

	return &Match{
		Candidate:  candidate,
		Similarity: sim,
		Score:      (sim+result.Confidence)/2 + bonus,
		Semantic:   true,
		Reason:     result.Reason,
	}
}
