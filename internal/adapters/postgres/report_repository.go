package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/powderline/avalanche-report-service/internal/domain"
	"github.com/powderline/avalanche-report-service/internal/ports"
)

// maxListingPageSize is the hard cap on public listings regardless of the
// requested limit.
const maxListingPageSize = 100

type reportRepository struct {
	db *gorm.DB
}

func (r *reportRepository) Insert(ctx context.Context, report domain.Report) (domain.Report, error) {
	rec := avalancheModel{
		ReportedAt:         report.ReportedAt,
		LocationName:       report.LocationName,
		Region:             report.Region,
		ElevationM:         report.ElevationM,
		SlopeAspect:        string(report.SlopeAspect),
		AvalancheSize:      report.AvalancheSize,
		AvalancheSizeLabel: report.AvalancheSizeLabel,
		TriggerType:        string(report.TriggerType),
		MapURL:             report.MapURL,
		PhotoURL:           report.PhotoURL,
		AdditionalComments: report.AdditionalComments,
		ReporterID:         report.ReporterID,
		ReporterName:       report.ReporterName,
		IsPublic:           report.IsPublic,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return domain.Report{}, err
	}
	return toDomainReport(rec), nil
}

func (r *reportRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Report, error) {
	var rec avalancheModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Report{}, domain.ErrNotFound
		}
		return domain.Report{}, err
	}
	return toDomainReport(rec), nil
}

func (r *reportRepository) ListPublic(ctx context.Context, limit int) ([]domain.Report, error) {
	if limit <= 0 || limit > maxListingPageSize {
		limit = maxListingPageSize
	}
	var recs []avalancheModel
	err := r.db.WithContext(ctx).
		Where("is_public = ?", true).
		Order("reported_at DESC").
		Limit(limit).
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Report, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toDomainReport(rec))
	}
	return out, nil
}

func (r *reportRepository) Update(ctx context.Context, id uuid.UUID, fields ports.ReportUpdate) (domain.Report, error) {
	values := map[string]any{
		"reported_at":          fields.ReportedAt,
		"location_name":        fields.LocationName,
		"region":               fields.Region,
		"elevation_m":          fields.ElevationM,
		"slope_aspect":         string(fields.SlopeAspect),
		"avalanche_size":       fields.AvalancheSize,
		"avalanche_size_label": fields.AvalancheSizeLabel,
		"trigger_type":         string(fields.TriggerType),
		"map_url":              fields.MapURL,
		"additional_comments":  fields.AdditionalComments,
	}
	if fields.PhotoURL != nil {
		values["photo_url"] = *fields.PhotoURL
	}

	res := r.db.WithContext(ctx).
		Model(&avalancheModel{}).
		Where("id = ?", id).
		Updates(values)
	if res.Error != nil {
		return domain.Report{}, res.Error
	}
	if res.RowsAffected == 0 {
		return domain.Report{}, domain.ErrNotFound
	}
	return r.GetByID(ctx, id)
}
