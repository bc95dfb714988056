package application

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/powderline/avalanche-report-service/internal/domain"
)

func TestAddCommentRequiresIdentity(t *testing.T) {
	t.Parallel()

	f := newFixture()
	if _, err := f.service.AddComment(context.Background(), nil, uuid.New(), "nice catch"); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if len(f.comments.comments) != 0 {
		t.Fatalf("no comment row should be created")
	}
}

func TestAddCommentRejectsEmptyBody(t *testing.T) {
	t.Parallel()

	f := newFixture()
	author := f.knownIdentity("u2@example.com", "Jordi Ros")
	if _, err := f.service.AddComment(context.Background(), &author, uuid.New(), "   "); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAddCommentRequiresExistingReport(t *testing.T) {
	t.Parallel()

	f := newFixture()
	author := f.knownIdentity("u2@example.com", "Jordi Ros")
	if _, err := f.service.AddComment(context.Background(), &author, uuid.New(), "nice catch"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAddCommentPersistsAndInvalidatesDetail(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	reporter := f.knownIdentity("u1@example.com", "Maria Puig")
	author := f.knownIdentity("u2@example.com", "Jordi Ros")

	report, err := f.service.Submit(ctx, &reporter, validInput())
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	created, err := f.service.AddComment(ctx, &author, report.ID, " nice catch ")
	if err != nil {
		t.Fatalf("add comment failed: %v", err)
	}
	if created.Body != "nice catch" {
		t.Fatalf("expected trimmed body, got %q", created.Body)
	}
	if !created.IsPublic {
		t.Fatalf("new comments must be public")
	}
	if created.AuthorID != author.ID {
		t.Fatalf("author id mismatch")
	}
	if created.AuthorName != "Jordi Ros" {
		t.Fatalf("expected resolved author name, got %q", created.AuthorName)
	}
	if len(f.views.reports) != 1 || f.views.reports[0] != report.ID {
		t.Fatalf("expected detail invalidation for %s, got %v", report.ID, f.views.reports)
	}
}

func TestListCommentsNewestFirstWithNameFallback(t *testing.T) {
	t.Parallel()

	f := newFixture()
	ctx := context.Background()
	reporter := f.knownIdentity("u1@example.com", "Maria Puig")
	first := f.knownIdentity("u2@example.com", "Jordi Ros")
	second := f.knownIdentity("u3@example.com", "Clara Font")

	report, err := f.service.Submit(ctx, &reporter, validInput())
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if _, err := f.service.AddComment(ctx, &first, report.ID, "saw it too"); err != nil {
		t.Fatalf("add comment failed: %v", err)
	}
	if _, err := f.service.AddComment(ctx, &second, report.ID, "crown still visible"); err != nil {
		t.Fatalf("add comment failed: %v", err)
	}

	// Break resolution for the first author only.
	f.identities.failFor[first.ID] = true

	listed, err := f.service.ListComments(ctx, report.ID)
	if err != nil {
		t.Fatalf("list comments failed: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(listed))
	}
	if !listed[0].CreatedAt.After(listed[1].CreatedAt) {
		t.Fatalf("expected newest-first ordering")
	}
	if listed[0].AuthorName != "Clara Font" {
		t.Fatalf("expected resolved name for newest comment, got %q", listed[0].AuthorName)
	}
	if listed[1].AuthorName != "Anonymous" {
		t.Fatalf("expected Anonymous fallback for failed resolution, got %q", listed[1].AuthorName)
	}
}
