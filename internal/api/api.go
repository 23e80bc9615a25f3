// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/wardenhq/warden/internal/config"
	"github.com/wardenhq/warden/internal/infrastructure"
	"github.com/wardenhq/warden/pkg/middleware"
	"github.com/wardenhq/warden/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
// The context is used for OIDC provider discovery when auth is enabled.
func NewModule(ctx context.Context, cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime, err := NewRuntime(cfg, infra)
	if err != nil {
		return nil, err
	}

	domain := NewDomain(runtime)

	mux := http.NewServeMux()
	registerRoutes(mux, domain, cfg, runtime)

	var verifier middleware.TokenVerifier
	if cfg.API.Auth.Enabled {
		verifier, err = middleware.NewOIDCVerifier(ctx, &cfg.API.Auth)
		if err != nil {
			return nil, fmt.Errorf("oidc verifier: %w", err)
		}
	}

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.Recover(runtime.Infrastructure.Logger))
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Auth(&cfg.API.Auth, verifier, runtime.Infrastructure.Logger))
	m.Use(middleware.Logger(runtime.Infrastructure.Logger))

	return m, nil
}
