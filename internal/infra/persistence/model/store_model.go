package model

import (
	"time"

	"github.com/google/uuid"
)

// StoreModel mirrors the 'stores' table. The aggregate columns are rewritten
// by the rating transaction; they are never incremented in place.
type StoreModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name             string    `gorm:"type:varchar(100);not null"`
	Email            string    `gorm:"type:varchar(255);not null;index"`
	Address          string    `gorm:"type:varchar(400)"`
	TotalRatingCount int64     `gorm:"not null;default:0"`
	TotalRatingSum   int64     `gorm:"not null;default:0"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Ratings []RatingModel `gorm:"foreignKey:StoreID"`
}

// TableName explicitly sets the table name for GORM.
func (StoreModel) TableName() string {
	return "stores"
}
