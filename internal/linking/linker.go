// Package linking resolves, for each regulatory rule, the policy and system
// rules that most plausibly implement it.
package linking

import (
	"context"
	"log/slog"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/wardenhq/warden/internal/engine"
	"github.com/wardenhq/warden/internal/rules"
)

// SimilarityOracle scores whole-text similarity of two rule statements in [0, 1].
type SimilarityOracle interface {
	Similarity(ctx context.Context, a, b string) (float64, error)
}

// Match pairs a linked rule with its acceptance score.
type Match struct {
	Rule  rules.StructuredRule `json:"rule"`
	Score float64              `json:"score"`
}

// Link associates one regulatory rule with its best policy and system
// counterparts. A nil match means no candidate cleared its threshold.
type Link struct {
	Regulation rules.StructuredRule `json:"regulation"`
	Policy     *Match               `json:"policy,omitempty"`
	System     *Match               `json:"system,omitempty"`
}

// Linker builds trace links with bounded oracle concurrency.
type Linker struct {
	oracle SimilarityOracle
	cfg    engine.Config
	logger *slog.Logger
}

// New creates a Linker.
func New(oracle SimilarityOracle, cfg engine.Config, logger *slog.Logger) *Linker {
	return &Linker{
		oracle: oracle,
		cfg:    cfg,
		logger: logger.With("system", "linking"),
	}
}

// LinkAll builds one Link per regulatory rule. Regulations are processed
// concurrently up to the configured worker bound; output order follows
// input order regardless of completion order.
func (l *Linker) LinkAll(ctx context.Context, regulations, policies, systems []rules.StructuredRule) ([]Link, error) {
	links := make([]Link, len(regulations))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.cfg.Workers)

	for i, reg := range regulations {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			links[i] = Link{
				Regulation: reg,
				Policy:     l.bestMatch(gctx, reg, policies, l.cfg.LinkThreshold),
				System:     l.bestMatch(gctx, reg, systems, l.cfg.SystemLinkThreshold),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return links, nil
}

// bestMatch selects the candidate with the highest similarity score above
// threshold, tie-broken by first-seen order. An oracle failure scores that
// single pair zero rather than aborting the batch.
func (l *Linker) bestMatch(ctx context.Context, reg rules.StructuredRule, candidates []rules.StructuredRule, threshold float64) *Match {
	var best *Match
	var bestScore float64

	for _, candidate := range candidates {
		similarity, err := l.oracle.Similarity(ctx, reg.RawText, candidate.RawText)
		if err != nil {
			l.logger.WarnContext(
				ctx, "similarity oracle failed",
				"regulation", reg.RuleID,
				"candidate", candidate.RuleID,
				"error", err,
			)
			continue
		}

		score := similarity
		if reg.Metric != "" && reg.Metric == candidate.Metric {
			score += l.cfg.MetricBonus
		}
		score = math.Min(score, 1.0)

		if score < threshold {
			continue
		}

		if best == nil || score > bestScore {
			bestScore = score
			best = &Match{
				Rule:  candidate,
				Score: round3(score),
			}
		}
	}

	return best
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
