package auth

import (
	"crypto/rand"
	"encoding/hex"

	"ratereview/internal/domain/service"

	"github.com/pkg/errors"
)

// confirmationTokenBytes is the entropy of a confirmation token; 32 random
// bytes render as 64 hex characters.
const confirmationTokenBytes = 32

type randomTokenSource struct{}

// NewConfirmationTokenSource returns a ConfirmationTokenSource backed by
// crypto/rand.
func NewConfirmationTokenSource() service.ConfirmationTokenSource {
	return &randomTokenSource{}
}

// Generate returns a new unguessable hex token.
func (s *randomTokenSource) Generate() (string, error) {
	buf := make([]byte, confirmationTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "failed to read random bytes")
	}

	return hex.EncodeToString(buf), nil
}
