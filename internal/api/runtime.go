package api

import (
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/wardenhq/warden/internal/config"
	"github.com/wardenhq/warden/internal/engine"
	"github.com/wardenhq/warden/internal/infrastructure"
	"github.com/wardenhq/warden/internal/oracle"
	"github.com/wardenhq/warden/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration and the
// engine collaborators that audit execution requires.
type Runtime struct {
	*infrastructure.Infrastructure
	Agent      gaconfig.AgentConfig
	Engine     engine.Config
	Oracle     oracle.Oracle
	Pagination pagination.Config
}

// NewRuntime creates an API runtime with a module-scoped logger and the
// oracle provider named by the configuration.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) (*Runtime, error) {
	logger := infra.Logger.With("module", "api")
	agentCfg := cfg.Agent.Resolve()

	orc, err := oracle.New(&cfg.Oracle, agentCfg, logger)
	if err != nil {
		return nil, err
	}

	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    logger,
			Database:  infra.Database,
			Storage:   infra.Storage,
		},
		Agent:      agentCfg,
		Engine:     cfg.Engine,
		Oracle:     orc,
		Pagination: cfg.API.Pagination,
	}, nil
}
