package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeParseCredential_RoundTrip(t *testing.T) {
	expiry := time.Date(2026, 9, 1, 12, 30, 0, 0, time.UTC)
	raw := EncodeCredential("ABC123", expiry)
	assert.Equal(t, "ABC123;2026-09-01T12:30:00Z", raw)

	cred, err := ParseCredential(raw)
	require.NoError(t, err)
	assert.Equal(t, "ABC123", cred.Value)
	assert.True(t, cred.ExpiresAt.Equal(expiry))
}

func TestParseCredential_WrongPartCount(t *testing.T) {
	_, err := ParseCredential("no-delimiter-here")
	assert.Error(t, err)

	_, err = ParseCredential("a;b;c")
	assert.Error(t, err)
}

func TestParseCredential_BadExpiry(t *testing.T) {
	_, err := ParseCredential("token;not-a-timestamp")
	assert.Error(t, err)
}

func TestStoredCredential_ExpiryBoundary(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	// Expiring exactly now counts as expired.
	assert.True(t, StoredCredential{ExpiresAt: now}.Expired(now))
	assert.True(t, StoredCredential{ExpiresAt: now.Add(-time.Second)}.Expired(now))
	assert.False(t, StoredCredential{ExpiresAt: now.Add(time.Second)}.Expired(now))
}
