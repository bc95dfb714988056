package application

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/powderline/avalanche-report-service/internal/domain"
	"github.com/powderline/avalanche-report-service/internal/ports"
)

type fakeReportRepo struct {
	mu      sync.Mutex
	reports map[uuid.UUID]domain.Report
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: make(map[uuid.UUID]domain.Report)}
}

func (r *fakeReportRepo) Insert(_ context.Context, report domain.Report) (domain.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	report.ID = uuid.New()
	report.CreatedAt = time.Now().UTC()
	r.reports[report.ID] = report
	return report, nil
}

func (r *fakeReportRepo) GetByID(_ context.Context, id uuid.UUID) (domain.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	report, ok := r.reports[id]
	if !ok {
		return domain.Report{}, domain.ErrNotFound
	}
	return report, nil
}

func (r *fakeReportRepo) ListPublic(_ context.Context, limit int) ([]domain.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Report
	for _, report := range r.reports {
		if report.IsPublic {
			out = append(out, report)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReportedAt.After(out[j].ReportedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeReportRepo) Update(_ context.Context, id uuid.UUID, fields ports.ReportUpdate) (domain.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	report, ok := r.reports[id]
	if !ok {
		return domain.Report{}, domain.ErrNotFound
	}
	report.ReportedAt = fields.ReportedAt
	report.LocationName = fields.LocationName
	report.Region = fields.Region
	report.ElevationM = fields.ElevationM
	report.SlopeAspect = fields.SlopeAspect
	report.AvalancheSize = fields.AvalancheSize
	report.AvalancheSizeLabel = fields.AvalancheSizeLabel
	report.TriggerType = fields.TriggerType
	report.MapURL = fields.MapURL
	report.AdditionalComments = fields.AdditionalComments
	if fields.PhotoURL != nil {
		report.PhotoURL = *fields.PhotoURL
	}
	r.reports[id] = report
	return report, nil
}

func (r *fakeReportRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.reports)
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments []domain.Comment
}

func (r *fakeCommentRepo) Insert(_ context.Context, comment domain.Comment) (domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	comment.ID = uuid.New()
	comment.CreatedAt = time.Now().UTC().Add(time.Duration(len(r.comments)) * time.Second)
	r.comments = append(r.comments, comment)
	return comment, nil
}

func (r *fakeCommentRepo) ListByReport(_ context.Context, avalancheID uuid.UUID) ([]domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Comment
	for _, comment := range r.comments {
		if comment.AvalancheID == avalancheID {
			out = append(out, comment)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type fakeIdentityResolver struct {
	mu          sync.Mutex
	credentials map[string]domain.Identity
	names       map[uuid.UUID]string
	failFor     map[uuid.UUID]bool
}

func newFakeIdentityResolver() *fakeIdentityResolver {
	return &fakeIdentityResolver{
		credentials: make(map[string]domain.Identity),
		names:       make(map[uuid.UUID]string),
		failFor:     make(map[uuid.UUID]bool),
	}
}

func (r *fakeIdentityResolver) ResolveCredential(_ context.Context, credential string) (domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	identity, ok := r.credentials[credential]
	if !ok {
		return domain.Identity{}, fmt.Errorf("unknown credential")
	}
	return identity, nil
}

func (r *fakeIdentityResolver) DisplayName(_ context.Context, userID uuid.UUID) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failFor[userID] {
		return "", fmt.Errorf("provider unreachable")
	}
	name, ok := r.names[userID]
	if !ok {
		return "", fmt.Errorf("no such user")
	}
	return name, nil
}

type storedUpload struct {
	identityID uuid.UUID
	filename   string
}

type fakeMediaStore struct {
	mu      sync.Mutex
	fail    bool
	uploads []storedUpload
}

func (m *fakeMediaStore) Store(_ context.Context, identityID uuid.UUID, attachment ports.Attachment) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return "", fmt.Errorf("%w: bucket rejected write", domain.ErrUploadFailed)
	}
	if attachment.Body != nil {
		_, _ = io.Copy(io.Discard, attachment.Body)
	}
	m.uploads = append(m.uploads, storedUpload{identityID: identityID, filename: attachment.Filename})
	return fmt.Sprintf("https://media.test/%s/%s", identityID, attachment.Filename), nil
}

type fakeViews struct {
	mu      sync.Mutex
	listing int
	reports []uuid.UUID
}

func (v *fakeViews) InvalidateListing(_ context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.listing++
	return nil
}

func (v *fakeViews) InvalidateReport(_ context.Context, avalancheID uuid.UUID) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.reports = append(v.reports, avalancheID)
	return nil
}

type fixture struct {
	service    *Service
	reports    *fakeReportRepo
	comments   *fakeCommentRepo
	identities *fakeIdentityResolver
	media      *fakeMediaStore
	views      *fakeViews
}

func newFixture() *fixture {
	f := &fixture{
		reports:    newFakeReportRepo(),
		comments:   &fakeCommentRepo{},
		identities: newFakeIdentityResolver(),
		media:      &fakeMediaStore{},
		views:      &fakeViews{},
	}
	f.service = NewService(Dependencies{
		Reports:    f.reports,
		Comments:   f.comments,
		Identities: f.identities,
		Media:      f.media,
		Views:      f.views,
	})
	return f
}

// knownIdentity registers a user with the fake provider and returns it.
func (f *fixture) knownIdentity(handle, name string) domain.Identity {
	identity := domain.Identity{
		ID:              uuid.New(),
		Handle:          handle,
		DisplayNameHint: name,
		Administrator:   false,
	}
	f.identities.mu.Lock()
	f.identities.names[identity.ID] = name
	f.identities.mu.Unlock()
	return identity
}

func validInput() ReportInput {
	return ReportInput{
		Region:        "Pal",
		SlopeAspect:   "N",
		ReportedAt:    "2024-01-10T09:00",
		AvalancheSize: "3",
		TriggerType:   "natural",
	}
}
