package postgres

import (
	"github.com/powderline/avalanche-report-service/internal/domain"
)

func toDomainReport(rec avalancheModel) domain.Report {
	return domain.Report{
		ID:                 rec.ID,
		CreatedAt:          rec.CreatedAt,
		ReportedAt:         rec.ReportedAt,
		LocationName:       rec.LocationName,
		Region:             rec.Region,
		ElevationM:         rec.ElevationM,
		SlopeAspect:        domain.SlopeAspect(rec.SlopeAspect),
		AvalancheSize:      rec.AvalancheSize,
		AvalancheSizeLabel: rec.AvalancheSizeLabel,
		TriggerType:        domain.TriggerType(rec.TriggerType),
		MapURL:             rec.MapURL,
		PhotoURL:           rec.PhotoURL,
		AdditionalComments: rec.AdditionalComments,
		ReporterID:         rec.ReporterID,
		ReporterName:       rec.ReporterName,
		IsPublic:           rec.IsPublic,
	}
}

func toDomainComment(rec commentModel) domain.Comment {
	return domain.Comment{
		ID:          rec.ID,
		AvalancheID: rec.AvalancheID,
		AuthorID:    rec.UserID,
		Body:        rec.Body,
		CreatedAt:   rec.CreatedAt,
		IsPublic:    rec.IsPublic,
	}
}
