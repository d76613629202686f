package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AdminLogEntry struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey"`
	ActionTime    time.Time      `gorm:"not null;index"`
	UserId        uuid.UUID      `gorm:"type:uuid;not null;index"`
	ObjectType    string         `gorm:"type:varchar(50);not null"`
	ObjectId      string         `gorm:"type:text;not null"`
	ObjectRepr    string         `gorm:"type:varchar(200);not null"`
	ActionFlag    int16          `gorm:"not null"`
	ChangeMessage datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'"`
}

func (AdminLogEntry) TableName() string {
	return "admin_log_entries"
}
