package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/straye-as/concrete-calc/internal/calc"
	"gorm.io/gorm"
)

// Estimate is a saved calculation that can be shared by link and printed
// until it expires.
type Estimate struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Calculator string    `gorm:"type:varchar(50);not null;index"`
	Shape      string    `gorm:"type:varchar(50);not null"`
	Title      string    `gorm:"type:varchar(200)"`
	Notes      string    `gorm:"type:text"`
	// Input and Result are stored as JSON documents
	Input  calc.Request `gorm:"type:text;serializer:json;not null"`
	Result calc.Result  `gorm:"type:text;serializer:json;not null"`
	// GrossVolumeM3 is denormalised from Result for listing and reporting
	GrossVolumeM3 float64   `gorm:"not null;default:0"`
	CreatedAt     time.Time `gorm:"not null;index"`
	ExpiresAt     time.Time `gorm:"not null;index"`
}

// TableName pins the table name used by the goose migrations
func (Estimate) TableName() string {
	return "estimates"
}

// BeforeCreate assigns an id when the caller did not
func (e *Estimate) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// IsExpired reports whether the estimate is past its retention window at now
func (e *Estimate) IsExpired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}

// PrintKey is the storage key of the cached printable summary
func (e *Estimate) PrintKey() string {
	return PrintKey(e.ID)
}

// PrintKey is the storage key of the cached printable summary for id
func PrintKey(id uuid.UUID) string {
	return "prints/" + id.String() + ".html"
}
