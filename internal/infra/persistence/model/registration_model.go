package model

import (
	"time"

	"github.com/google/uuid"
)

// PendingRegistrationModel mirrors the 'pending_registrations' table. One row
// per (role, email); restarting a registration replaces the row, which
// invalidates the earlier confirmation link.
type PendingRegistrationModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Token        string    `gorm:"type:varchar(128);not null;uniqueIndex"`
	Role         string    `gorm:"type:varchar(16);not null;uniqueIndex:idx_pending_role_email"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_pending_role_email"`
	Name         string    `gorm:"type:varchar(100);not null"`
	Address      string    `gorm:"type:varchar(400)"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	ExpiresAt    time.Time `gorm:"not null;index"`
	CreatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (PendingRegistrationModel) TableName() string {
	return "pending_registrations"
}
