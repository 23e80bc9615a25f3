package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/wardenhq/warden/internal/compliance"
	"github.com/wardenhq/warden/internal/engine"
)

// EvaluateNode returns a state node that derives findings from trace links
// and verifies every regulatory clause against the pooled policy and system
// thresholds, producing the flat report rows.
func EvaluateNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		audit, err := extractAuditState(s)
		if err != nil {
			return s, fmt.Errorf("evaluate: %w", err)
		}

		audit.Entries = compliance.EvaluateTraces(audit.Links)

		matcher := engine.NewMatcher(rt.Engine, rt.Oracle, rt.Logger)
		evaluator := compliance.NewEvaluator(matcher, rt.Logger)

		rows, err := evaluator.CompareClauses(
			ctx,
			audit.Regulation.Clauses,
			audit.Policy.Clauses,
			audit.System.Clauses,
		)
		if err != nil {
			return s, fmt.Errorf("evaluate: %w: %w", ErrEvaluateFailed, err)
		}
		audit.Rows = rows

		rt.Logger.InfoContext(
			ctx, "evaluate node complete",
			"entries", len(audit.Entries),
			"rows", len(audit.Rows),
		)

		s = s.Set(KeyAuditState, *audit)
		return s, nil
	})
}
