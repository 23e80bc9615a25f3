package workflow

import (
	"log/slog"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/wardenhq/warden/internal/documents"
	"github.com/wardenhq/warden/internal/engine"
	"github.com/wardenhq/warden/internal/oracle"
	"github.com/wardenhq/warden/pkg/storage"
)

// Runtime bundles the dependencies that workflow nodes require.
// It is constructed by higher-level composition code from Infrastructure and Domain systems.
type Runtime struct {
	Agent     gaconfig.AgentConfig
	Engine    engine.Config
	Oracle    oracle.Oracle
	Storage   storage.System
	Documents documents.System
	Logger    *slog.Logger
}
