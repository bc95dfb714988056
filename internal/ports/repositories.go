package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/powderline/avalanche-report-service/internal/domain"
)

// ReportUpdate is the partial mutable field set applied by Update.
// Reporter identity and creation timestamp are deliberately absent: they are
// immutable after creation. PhotoURL is a pointer-to-pointer so callers can
// distinguish "leave untouched" (nil) from "set/clear" (non-nil).
type ReportUpdate struct {
	ReportedAt         time.Time
	LocationName       *string
	Region             string
	ElevationM         *int
	SlopeAspect        domain.SlopeAspect
	AvalancheSize      int
	AvalancheSizeLabel *string
	TriggerType        domain.TriggerType
	MapURL             *string
	PhotoURL           **string
	AdditionalComments *string
}

// ReportRepository defines persistence operations for avalanche reports.
// ListPublic filters on the visibility flag; GetByID deliberately does not,
// so owners and admins can fetch records regardless of visibility.
type ReportRepository interface {
	Insert(ctx context.Context, report domain.Report) (domain.Report, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Report, error)
	ListPublic(ctx context.Context, limit int) ([]domain.Report, error)
	Update(ctx context.Context, id uuid.UUID, fields ReportUpdate) (domain.Report, error)
}

// CommentRepository manages comments attached to a report.
// Comments are insert-only; there is no edit or delete operation.
type CommentRepository interface {
	Insert(ctx context.Context, comment domain.Comment) (domain.Comment, error)
	ListByReport(ctx context.Context, avalancheID uuid.UUID) ([]domain.Comment, error)
}
