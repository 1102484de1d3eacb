package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Workspace struct {
	UserId       uuid.UUID         `gorm:"type:uuid;primaryKey"`
	Notes        datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'"`
	DeletedNotes datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'"`
	Contact      datatypes.JSONMap `gorm:"type:jsonb"`
	DeletedAt    *time.Time
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (Workspace) TableName() string {
	return "workspaces"
}
