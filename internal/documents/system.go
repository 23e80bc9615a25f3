package documents

import (
	"context"

	"github.com/google/uuid"

	"github.com/wardenhq/warden/pkg/pagination"
	"github.com/wardenhq/warden/pkg/storage"
)

// System defines the public contract for document domain operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Document], error)

	Find(ctx context.Context, id uuid.UUID) (*Document, error)
	Create(ctx context.Context, cmd CreateCommand) (*Document, error)
	Download(ctx context.Context, id uuid.UUID) (*Document, *storage.DownloadResult, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
