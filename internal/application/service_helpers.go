package application

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/powderline/avalanche-report-service/internal/domain"
)

// anonymousName is the fallback when display-name resolution fails.
const anonymousName = "Anonymous"

func appLogger() *slog.Logger {
	return slog.Default().With(
		"service", "avalanche-report-service",
		"module", "application",
		"layer", "application",
	)
}

// reportFields is the validated, typed form of a ReportInput.
type reportFields struct {
	Region             string
	SlopeAspect        domain.SlopeAspect
	ReportedAt         time.Time
	AvalancheSize      int
	TriggerType        domain.TriggerType
	LocationName       *string
	ElevationM         *int
	MapURL             *string
	AdditionalComments *string
}

// reportedAtLayouts are the accepted timestamp formats. The second one is what
// HTML datetime-local inputs post.
var reportedAtLayouts = []string{time.RFC3339, "2006-01-02T15:04"}

// validateReportInput enforces the submission contract: required fields
// present and well-formed, size within [1,5], reportedAt not in the future.
func (s *Service) validateReportInput(in ReportInput) (reportFields, error) {
	var out reportFields

	out.Region = strings.TrimSpace(in.Region)
	if out.Region == "" {
		return out, fmt.Errorf("%w: region is required", domain.ErrInvalidInput)
	}

	aspect, ok := domain.ParseSlopeAspect(strings.TrimSpace(in.SlopeAspect))
	if !ok {
		return out, fmt.Errorf("%w: slopeAspect must be one of N, NE, E, SE, S, SW, W, NW", domain.ErrInvalidInput)
	}
	out.SlopeAspect = aspect

	reportedAt, err := parseReportedAt(in.ReportedAt)
	if err != nil {
		return out, err
	}
	if reportedAt.After(s.nowFn()) {
		return out, fmt.Errorf("%w: reportedAt cannot be in the future", domain.ErrInvalidInput)
	}
	out.ReportedAt = reportedAt

	size, err := strconv.Atoi(strings.TrimSpace(in.AvalancheSize))
	if err != nil {
		return out, fmt.Errorf("%w: avalancheSize must be an integer", domain.ErrInvalidInput)
	}
	if size < domain.MinAvalancheSize || size > domain.MaxAvalancheSize {
		return out, fmt.Errorf("%w: avalancheSize must be between %d and %d",
			domain.ErrInvalidInput, domain.MinAvalancheSize, domain.MaxAvalancheSize)
	}
	out.AvalancheSize = size

	trigger, ok := domain.ParseTriggerType(strings.TrimSpace(in.TriggerType))
	if !ok {
		return out, fmt.Errorf("%w: triggerType must be one of natural, accidental, remote, unknown", domain.ErrInvalidInput)
	}
	out.TriggerType = trigger

	out.LocationName = optionalText(in.LocationName)
	out.MapURL = optionalText(in.MapURL)
	out.AdditionalComments = optionalText(in.AdditionalComments)

	if raw := strings.TrimSpace(in.ElevationM); raw != "" {
		elevation, convErr := strconv.Atoi(raw)
		if convErr != nil {
			return out, fmt.Errorf("%w: elevationM must be an integer", domain.ErrInvalidInput)
		}
		if elevation < 0 {
			return out, fmt.Errorf("%w: elevationM cannot be negative", domain.ErrInvalidInput)
		}
		out.ElevationM = &elevation
	}

	return out, nil
}

func parseReportedAt(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("%w: reportedAt is required", domain.ErrInvalidInput)
	}
	for _, layout := range reportedAtLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: reportedAt is not a valid timestamp", domain.ErrInvalidInput)
}

func optionalText(raw string) *string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// resolveDisplayName asks the provider for the user's current display name.
// Resolution is best-effort: failures and empty answers degrade to the
// placeholder rather than failing the surrounding workflow.
func (s *Service) resolveDisplayName(ctx context.Context, userID uuid.UUID) string {
	name, err := s.identities.DisplayName(ctx, userID)
	if err != nil {
		appLogger().WarnContext(ctx, "display name resolution failed",
			"operation", "resolve_display_name",
			"outcome", "degraded",
			"user_id", userID.String(),
			"error", err.Error(),
		)
		return anonymousName
	}
	if strings.TrimSpace(name) == "" {
		return anonymousName
	}
	return name
}
