// Package oracle provides the similarity and relatedness collaborators the
// linker and matching engine consult. Every provider is injected at
// construction; nothing in this package is a process-wide singleton.
package oracle

import (
	"context"
	"fmt"
	"log/slog"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/wardenhq/warden/internal/engine"
)

// Oracle combines the two judgments the audit engine outsources: whole-text
// similarity between rule statements and semantic relatedness between
// parameter names.
type Oracle interface {
	Similarity(ctx context.Context, a, b string) (float64, error)
	Relatedness(ctx context.Context, a, b string) (engine.RelatednessResult, error)
}

// New constructs the oracle named by cfg.Provider.
func New(cfg *Config, agentCfg gaconfig.AgentConfig, logger *slog.Logger) (Oracle, error) {
	switch cfg.Provider {
	case ProviderLexical:
		return NewLexical(), nil
	case ProviderEmbedding:
		return NewEmbedding(cfg, logger), nil
	case ProviderAgent:
		return NewAgent(agentCfg, logger), nil
	default:
		return nil, fmt.Errorf("unknown oracle provider: %s", cfg.Provider)
	}
}
