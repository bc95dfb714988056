package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/powderline/avalanche-report-service/internal/domain"
)

type commentRepository struct {
	db *gorm.DB
}

func (r *commentRepository) Insert(ctx context.Context, comment domain.Comment) (domain.Comment, error) {
	rec := commentModel{
		AvalancheID: comment.AvalancheID,
		UserID:      comment.AuthorID,
		Body:        comment.Body,
		IsPublic:    comment.IsPublic,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return domain.Comment{}, err
	}
	return toDomainComment(rec), nil
}

func (r *commentRepository) ListByReport(ctx context.Context, avalancheID uuid.UUID) ([]domain.Comment, error) {
	var recs []commentModel
	err := r.db.WithContext(ctx).
		Where("avalanche_id = ?", avalancheID).
		Order("created_at DESC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Comment, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toDomainComment(rec))
	}
	return out, nil
}
