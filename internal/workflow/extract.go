package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/wardenhq/warden/internal/extraction"
	"github.com/wardenhq/warden/internal/rules"
)

// ExtractNode returns a state node that derives both rule representations
// from each ingested document: LLM-extracted clauses with typed thresholds,
// and keyword-classified structured rules for trace linking.
func ExtractNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		audit, err := extractAuditState(s)
		if err != nil {
			return s, fmt.Errorf("extract: %w", err)
		}

		extractor := extraction.NewExtractor(rt.Agent, rt.Engine.Workers, rt.Logger)

		targets := []struct {
			artifacts *DocumentArtifacts
			docType   rules.DocType
		}{
			{&audit.Regulation, rules.DocRegulation},
			{&audit.Policy, rules.DocPolicy},
			{&audit.System, rules.DocSystem},
		}

		for _, target := range targets {
			clauses, err := extractor.ExtractClauses(ctx, target.artifacts.Text)
			if err != nil {
				return s, fmt.Errorf("extract: %w: %s: %w", ErrExtractFailed, target.artifacts.Filename, err)
			}
			target.artifacts.Clauses = clauses

			candidates := rules.CandidatesFromElements(target.artifacts.Elements, target.docType)
			target.artifacts.Rules = rules.ExtractAll(candidates)
		}

		rt.Logger.InfoContext(
			ctx, "extract node complete",
			"regulation_clauses", len(audit.Regulation.Clauses),
			"regulation_rules", len(audit.Regulation.Rules),
			"policy_rules", len(audit.Policy.Rules),
			"system_rules", len(audit.System.Rules),
		)

		s = s.Set(KeyAuditState, *audit)
		return s, nil
	})
}

func extractAuditState(s state.State) (*AuditState, error) {
	val, ok := s.Get(KeyAuditState)
	if !ok {
		return nil, fmt.Errorf("%w: missing %s in state", ErrExtractFailed, KeyAuditState)
	}

	audit, ok := val.(AuditState)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not AuditState", ErrExtractFailed, KeyAuditState)
	}

	return &audit, nil
}
