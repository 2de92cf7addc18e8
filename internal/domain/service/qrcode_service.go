package service

import (
	"github.com/google/uuid"
)

// QRCodeService defines the interface for QR code generation and parsing services
type QRCodeService interface {
	// GenerateStoreQR generates a QR code pointing at a store's review page.
	GenerateStoreQR(storeID uuid.UUID) ([]byte, error)

	// ParseStoreQR parses QR code data and returns the store ID.
	ParseStoreQR(qrData string) (uuid.UUID, error)
}
