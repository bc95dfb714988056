package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/powderline/avalanche-report-service/internal/domain"
)

// IdentityResolver wraps the external identity provider.
// ResolveCredential turns an inbound session credential into a stable identity;
// DisplayName asks the provider for the current display name of any user and
// may fail, in which case workflows degrade to a documented placeholder.
type IdentityResolver interface {
	ResolveCredential(ctx context.Context, credential string) (domain.Identity, error)
	DisplayName(ctx context.Context, userID uuid.UUID) (string, error)
}
