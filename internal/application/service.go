package application

import (
	"context"
	"fmt"
	"time"

	"github.com/powderline/avalanche-report-service/internal/domain"
	"github.com/powderline/avalanche-report-service/internal/ports"
)

// Config holds workflow-level tunables.
type Config struct {
	// ListingPageSize caps how many reports a public listing returns.
	ListingPageSize int
}

// Service orchestrates the report and comment workflows over the external
// collaborators. All durable state lives behind the ports; the service itself
// holds no mutable state and is safe for concurrent use.
type Service struct {
	cfg        Config
	reports    ports.ReportRepository
	comments   ports.CommentRepository
	identities ports.IdentityResolver
	media      ports.MediaStore
	views      ports.ViewInvalidator
	nowFn      func() time.Time
}

type Dependencies struct {
	Config     Config
	Reports    ports.ReportRepository
	Comments   ports.CommentRepository
	Identities ports.IdentityResolver
	Media      ports.MediaStore
	Views      ports.ViewInvalidator
}

func NewService(deps Dependencies) *Service {
	cfg := deps.Config
	if cfg.ListingPageSize <= 0 {
		cfg.ListingPageSize = 100
	}
	return &Service{
		cfg:        cfg,
		reports:    deps.Reports,
		comments:   deps.Comments,
		identities: deps.Identities,
		media:      deps.Media,
		views:      deps.Views,
		nowFn:      func() time.Time { return time.Now().UTC() },
	}
}

// ResolveCredential turns an inbound session credential into an identity.
// Resolution failures collapse to ErrUnauthenticated so the HTTP adapter maps
// them uniformly, without leaking provider details.
func (s *Service) ResolveCredential(ctx context.Context, credential string) (domain.Identity, error) {
	identity, err := s.identities.ResolveCredential(ctx, credential)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}
	return identity, nil
}
