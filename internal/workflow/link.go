package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/wardenhq/warden/internal/linking"
)

// LinkNode returns a state node that matches every regulatory rule against
// the policy and system rule sets, producing one trace link per regulation.
func LinkNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		audit, err := extractAuditState(s)
		if err != nil {
			return s, fmt.Errorf("link: %w", err)
		}

		linker := linking.New(rt.Oracle, rt.Engine, rt.Logger)

		links, err := linker.LinkAll(ctx, audit.Regulation.Rules, audit.Policy.Rules, audit.System.Rules)
		if err != nil {
			return s, fmt.Errorf("link: %w: %w", ErrLinkFailed, err)
		}
		audit.Links = links

		rt.Logger.InfoContext(
			ctx, "link node complete",
			"links", len(links),
		)

		s = s.Set(KeyAuditState, *audit)
		return s, nil
	})
}
