// Package model holds the GORM table mappings for the persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
)

// AccountModel mirrors the 'accounts' table. PostgreSQL generates UUIDs via
// uuid_generate_v7(). The (role, email) pair is unique: the same email can
// hold one independent account per role.
type AccountModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Role         string    `gorm:"type:varchar(16);not null;uniqueIndex:idx_accounts_role_email"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_accounts_role_email"`
	Name         string    `gorm:"type:varchar(100);not null"`
	Address      string    `gorm:"type:varchar(400)"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	RefreshTokens []RefreshTokenModel `gorm:"foreignKey:AccountID"`
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}
