package model

import (
	"time"

	"github.com/google/uuid"
)

// Timestamps are stamped by the repository, never by gorm callbacks.
type Note struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title     string    `gorm:"type:varchar(200);not null"`
	Content   string    `gorm:"type:text;not null"`
	OwnerId   uuid.UUID `gorm:"type:uuid;not null;index"`
	Owner     *User     `gorm:"foreignKey:OwnerId;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"autoCreateTime:false;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false;not null;index"`
}

func (Note) TableName() string {
	return "notes"
}
