package compliance

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/wardenhq/warden/internal/engine"
	"github.com/wardenhq/warden/internal/extraction"
)

// Evaluator runs clause-level threshold verification across document classes.
// Per-clause evaluation shares no mutable state, so clauses are processed
// concurrently up to the engine's worker bound; report rows follow input
// order regardless of completion order.
type Evaluator struct {
	matcher *engine.Matcher
	logger  *slog.Logger
}

// NewEvaluator creates an Evaluator backed by the given matcher.
func NewEvaluator(matcher *engine.Matcher, logger *slog.Logger) *Evaluator {
	return &Evaluator{
		matcher: matcher,
		logger:  logger.With("system", "compliance"),
	}
}

// CompareClauses verifies every regulatory clause against the pooled policy
// and system thresholds and returns one report row per clause.
func (e *Evaluator) CompareClauses(ctx context.Context, regulations, policies, systems []extraction.Clause) ([]ReportRow, error) {
	policyPool := PoolThresholds(policies)
	systemPool := PoolThresholds(systems)

	rows := make([]ReportRow, len(regulations))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.matcher.Config().Workers)

	for i, reg := range regulations {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			policyStatus, policyExpl := CompareClause(gctx, e.matcher, reg, policyPool, "policy")
			systemStatus, systemExpl := CompareClause(gctx, e.matcher, reg, systemPool, "system")

			rows[i] = ReportRow{
				Clause:       reg.Label(),
				PolicyStatus: policyStatus,
				SystemStatus: systemStatus,
				Explanation: fmt.Sprintf(
					"Policy: %s | System: %s",
					JoinExplanations(policyExpl),
					JoinExplanations(systemExpl),
				),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	e.logger.InfoContext(
		ctx, "clause comparison complete",
		"regulations", len(regulations),
		"policy_thresholds", len(policyPool),
		"system_thresholds", len(systemPool),
	)

	return rows, nil
}
