package token

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRefreshToken(t *testing.T) {
	tok, err := NewRefreshToken()
	require.NoError(t, err)
	assert.Len(t, tok, 64)
	_, err = hex.DecodeString(tok)
	assert.NoError(t, err)
}

func TestNewRefreshToken_Unique(t *testing.T) {
	seen := make(map[string]struct{}, 100)
	for i := 0; i < 100; i++ {
		tok, err := NewRefreshToken()
		require.NoError(t, err)
		if _, dup := seen[tok]; dup {
			t.Fatal("duplicate refresh token generated")
		}
		seen[tok] = struct{}{}
	}
}
