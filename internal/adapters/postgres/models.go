package postgres

import (
	"time"

	"github.com/google/uuid"
)

type avalancheModel struct {
	ID                 uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CreatedAt          time.Time `gorm:"column:created_at;default:now()"`
	ReportedAt         time.Time `gorm:"column:reported_at"`
	LocationName       *string   `gorm:"column:location_name"`
	Region             string    `gorm:"column:region"`
	ElevationM         *int      `gorm:"column:elevation_m"`
	SlopeAspect        string    `gorm:"column:slope_aspect;type:slope_aspect"`
	AvalancheSize      int       `gorm:"column:avalanche_size"`
	AvalancheSizeLabel *string   `gorm:"column:avalanche_size_label"`
	TriggerType        string    `gorm:"column:trigger_type;type:trigger_type"`
	MapURL             *string   `gorm:"column:map_url"`
	PhotoURL           *string   `gorm:"column:photo_url"`
	AdditionalComments *string   `gorm:"column:additional_comments"`
	ReporterID         uuid.UUID `gorm:"column:reporter_id"`
	ReporterName       string    `gorm:"column:reporter_name"`
	IsPublic           bool      `gorm:"column:is_public"`
}

func (avalancheModel) TableName() string { return "avalanches" }

type commentModel struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	AvalancheID uuid.UUID `gorm:"column:avalanche_id"`
	UserID      uuid.UUID `gorm:"column:user_id"`
	Body        string    `gorm:"column:body"`
	CreatedAt   time.Time `gorm:"column:created_at;default:now()"`
	IsPublic    bool      `gorm:"column:is_public"`
}

func (commentModel) TableName() string { return "comments" }
