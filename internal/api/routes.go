package api

import (
	"net/http"

	"github.com/wardenhq/warden/internal/config"
	"github.com/wardenhq/warden/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) {
	store := newStorageHandler(
		runtime.Storage,
		runtime.Infrastructure.Logger,
	)

	routes.Register(
		mux,
		domain.Documents.Handler(cfg.API.MaxUploadSizeBytes()).Routes(),
		domain.Audits.Handler().Routes(),
		store.routes(),
	)
}
