package auth

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomTokenSource_Generate(t *testing.T) {
	source := NewConfirmationTokenSource()

	token, err := source.Generate()
	require.NoError(t, err)
	assert.Len(t, token, confirmationTokenBytes*2)

	_, err = hex.DecodeString(token)
	assert.NoError(t, err)
}

func TestRandomTokenSource_TokensAreUnique(t *testing.T) {
	source := NewConfirmationTokenSource()

	seen := make(map[string]struct{})
	for range 100 {
		token, err := source.Generate()
		require.NoError(t, err)

		_, dup := seen[token]
		require.False(t, dup, "duplicate token generated")
		seen[token] = struct{}{}
	}
}
