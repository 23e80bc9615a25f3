package api

import (
	"github.com/wardenhq/warden/internal/audits"
	"github.com/wardenhq/warden/internal/documents"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Documents documents.System
	Audits    audits.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	docsSystem := documents.New(
		runtime.Database.Connection(),
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
	)

	auditsSystem := audits.New(
		runtime.Database.Connection(),
		runtime.Agent,
		runtime.Engine,
		runtime.Oracle,
		runtime.Logger,
		runtime.Pagination,
		runtime.Storage,
		docsSystem,
	)

	return &Domain{
		Documents: docsSystem,
		Audits:    auditsSystem,
	}
}
