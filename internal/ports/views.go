package ports

import (
	"context"

	"github.com/google/uuid"
)

// ViewInvalidator signals that cached renderings of listing/detail views must
// be recomputed on next access. The delivery mechanism is adapter-owned; the
// workflows only emit the signal after durable writes.
type ViewInvalidator interface {
	InvalidateListing(ctx context.Context) error
	InvalidateReport(ctx context.Context, avalancheID uuid.UUID) error
}
