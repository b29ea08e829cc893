package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel mirrors the 'users' table.
type UserModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username   string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Password   string    `gorm:"type:varchar(100);not null"`
	Provider   string    `gorm:"type:varchar(64);not null;default:local"`
	FamilyName string    `gorm:"type:varchar(255)"`
	GivenName  string    `gorm:"type:varchar(255)"`
	MiddleName string    `gorm:"type:varchar(255)"`
	Emails     []string  `gorm:"type:jsonb;serializer:json"`
	Photos     []string  `gorm:"type:jsonb;serializer:json"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// BeforeCreate assigns a UUID when the caller did not.
func (m *UserModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}
