package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/powderline/avalanche-report-service/internal/domain"
	"github.com/powderline/avalanche-report-service/internal/ports"
)

// Submit validates a new report, stores at most one attachment, snapshots the
// reporter's display name and persists the record publicly visible.
//
// The photo write and the record insert are two independent operations with no
// compensating rollback; a crash in between leaves an orphaned object, which
// is acceptable at this scope.
func (s *Service) Submit(ctx context.Context, identity *domain.Identity, in ReportInput) (domain.Report, error) {
	if identity == nil {
		return domain.Report{}, fmt.Errorf("%w: submitting a report requires a signed-in user", domain.ErrUnauthenticated)
	}

	fields, err := s.validateReportInput(in)
	if err != nil {
		return domain.Report{}, err
	}

	// First attachment wins; additional ones are silently ignored.
	var photoURL *string
	if len(in.Attachments) > 0 {
		url, storeErr := s.media.Store(ctx, identity.ID, in.Attachments[0])
		if storeErr != nil {
			return domain.Report{}, fmt.Errorf("store photo: %w", storeErr)
		}
		photoURL = &url
	}

	reporterName := s.resolveDisplayName(ctx, identity.ID)

	created, err := s.reports.Insert(ctx, domain.Report{
		ReportedAt:         fields.ReportedAt,
		LocationName:       fields.LocationName,
		Region:             fields.Region,
		ElevationM:         fields.ElevationM,
		SlopeAspect:        fields.SlopeAspect,
		AvalancheSize:      fields.AvalancheSize,
		AvalancheSizeLabel: domain.SizeLabel(fields.AvalancheSize),
		TriggerType:        fields.TriggerType,
		MapURL:             fields.MapURL,
		PhotoURL:           photoURL,
		AdditionalComments: fields.AdditionalComments,
		ReporterID:         identity.ID,
		ReporterName:       reporterName,
		IsPublic:           true,
	})
	if err != nil {
		return domain.Report{}, fmt.Errorf("insert report: %w", err)
	}

	s.invalidateListing(ctx)

	appLogger().InfoContext(ctx, "report submitted",
		"operation", "submit_report",
		"outcome", "success",
		"report_id", created.ID.String(),
		"reporter_id", identity.ID.String(),
		"has_photo", photoURL != nil,
	)
	return created, nil
}

// Update applies a validated field set to an existing report. Only the owner
// or an administrator may mutate; reporter identity and creation time never
// change. Photo replacement is best-effort: a failed upload keeps the
// previously stored URL instead of failing the update.
func (s *Service) Update(ctx context.Context, identity *domain.Identity, id uuid.UUID, in ReportInput) (domain.Report, error) {
	existing, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return domain.Report{}, err
	}

	if identity == nil {
		return domain.Report{}, fmt.Errorf("%w: updating a report requires a signed-in user", domain.ErrUnauthenticated)
	}
	if !canMutate(*identity, existing.ReporterID) {
		return domain.Report{}, fmt.Errorf("%w: only the reporter or an administrator may edit this report", domain.ErrForbidden)
	}

	fields, err := s.validateReportInput(in)
	if err != nil {
		return domain.Report{}, err
	}

	update := ports.ReportUpdate{
		ReportedAt:         fields.ReportedAt,
		LocationName:       fields.LocationName,
		Region:             fields.Region,
		ElevationM:         fields.ElevationM,
		SlopeAspect:        fields.SlopeAspect,
		AvalancheSize:      fields.AvalancheSize,
		AvalancheSizeLabel: domain.SizeLabel(fields.AvalancheSize),
		TriggerType:        fields.TriggerType,
		MapURL:             fields.MapURL,
		AdditionalComments: fields.AdditionalComments,
	}

	if len(in.Attachments) > 0 {
		url, storeErr := s.media.Store(ctx, identity.ID, in.Attachments[0])
		if storeErr != nil {
			appLogger().WarnContext(ctx, "photo replacement failed, keeping previous photo",
				"operation", "update_report",
				"outcome", "degraded",
				"report_id", id.String(),
				"error", storeErr.Error(),
			)
		} else {
			newURL := &url
			update.PhotoURL = &newURL
		}
	}

	updated, err := s.reports.Update(ctx, id, update)
	if err != nil {
		return domain.Report{}, fmt.Errorf("update report: %w", err)
	}

	s.invalidateListing(ctx)
	s.invalidateReport(ctx, id)

	appLogger().InfoContext(ctx, "report updated",
		"operation", "update_report",
		"outcome", "success",
		"report_id", id.String(),
		"caller_id", identity.ID.String(),
	)
	return updated, nil
}

// GetReport fetches a report by id. No visibility filter is applied on direct
// lookup so owners and admins can reach their own non-public records.
func (s *Service) GetReport(ctx context.Context, id uuid.UUID) (domain.Report, error) {
	return s.reports.GetByID(ctx, id)
}

// ListRecent returns public reports ordered by reportedAt descending, capped
// at the configured page size.
func (s *Service) ListRecent(ctx context.Context) ([]domain.Report, error) {
	return s.reports.ListPublic(ctx, s.cfg.ListingPageSize)
}

// invalidateListing emits the listing-view invalidation signal. Emission is
// fire-and-forget: the durable write already happened and stale views heal on
// the next recompute.
func (s *Service) invalidateListing(ctx context.Context) {
	if err := s.views.InvalidateListing(ctx); err != nil {
		appLogger().WarnContext(ctx, "listing view invalidation failed",
			"operation", "invalidate_listing",
			"outcome", "failure",
			"error", err.Error(),
		)
	}
}

func (s *Service) invalidateReport(ctx context.Context, id uuid.UUID) {
	if err := s.views.InvalidateReport(ctx, id); err != nil {
		appLogger().WarnContext(ctx, "detail view invalidation failed",
			"operation", "invalidate_report",
			"outcome", "failure",
			"report_id", id.String(),
			"error", err.Error(),
		)
	}
}
