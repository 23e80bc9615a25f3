package audits

import (
	"context"

	"github.com/google/uuid"

	"github.com/wardenhq/warden/internal/compliance"
	"github.com/wardenhq/warden/pkg/pagination"
)

// System defines the public contract for audit domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[AuditRun], error)

	Find(ctx context.Context, id uuid.UUID) (*AuditRun, error)
	Run(ctx context.Context, cmd RunCommand) (*AuditRun, error)
	Report(ctx context.Context, id uuid.UUID) ([]compliance.ReportRow, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
