package postgres

import (
	"gorm.io/gorm"

	"github.com/powderline/avalanche-report-service/internal/ports"
)

type Repositories struct {
	Reports  ports.ReportRepository
	Comments ports.CommentRepository
}

func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Reports:  &reportRepository{db: db},
		Comments: &commentRepository{db: db},
	}
}
