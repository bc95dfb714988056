package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/powderline/avalanche-report-service/internal/domain"
)

// AddComment attaches a remark to an existing report. The author's display
// name is resolved best-effort for the response; the stored row keeps only the
// author id.
func (s *Service) AddComment(ctx context.Context, identity *domain.Identity, avalancheID uuid.UUID, body string) (domain.Comment, error) {
	if identity == nil {
		return domain.Comment{}, fmt.Errorf("%w: commenting requires a signed-in user", domain.ErrUnauthenticated)
	}

	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return domain.Comment{}, fmt.Errorf("%w: comment body is required", domain.ErrInvalidInput)
	}

	// Every comment must reference an existing report.
	if _, err := s.reports.GetByID(ctx, avalancheID); err != nil {
		return domain.Comment{}, err
	}

	authorName := s.resolveDisplayName(ctx, identity.ID)

	created, err := s.comments.Insert(ctx, domain.Comment{
		AvalancheID: avalancheID,
		AuthorID:    identity.ID,
		Body:        trimmed,
		IsPublic:    true,
	})
	if err != nil {
		return domain.Comment{}, fmt.Errorf("insert comment: %w", err)
	}
	created.AuthorName = authorName

	s.invalidateReport(ctx, avalancheID)

	appLogger().InfoContext(ctx, "comment added",
		"operation", "add_comment",
		"outcome", "success",
		"report_id", avalancheID.String(),
		"comment_id", created.ID.String(),
	)
	return created, nil
}

// ListComments returns all comments for a report, newest first, each decorated
// with a best-effort display name. A failed resolution degrades that single
// comment to the placeholder instead of aborting the listing.
func (s *Service) ListComments(ctx context.Context, avalancheID uuid.UUID) ([]domain.Comment, error) {
	comments, err := s.comments.ListByReport(ctx, avalancheID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	// One provider round trip per distinct author.
	names := make(map[uuid.UUID]string)
	for i := range comments {
		name, ok := names[comments[i].AuthorID]
		if !ok {
			name = s.resolveDisplayName(ctx, comments[i].AuthorID)
			names[comments[i].AuthorID] = name
		}
		comments[i].AuthorName = name
	}
	return comments, nil
}
