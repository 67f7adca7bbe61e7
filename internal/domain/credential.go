package domain

import (
	"fmt"
	"strings"
	"time"
)

// Credential purposes stored per user. OTP codes and refresh tokens share the
// same single-slot storage shape: one live value per (user, provider, name),
// encoded as "payload;RFC3339-expiry".
const (
	CredentialProvider    = "CodeArena"
	CredentialNameOtp     = "otp"
	CredentialNameRefresh = "refresh_token"
)

// StoredCredential is the decoded form of a stored credential value.
type StoredCredential struct {
	Value     string
	ExpiresAt time.Time
}

// Expired reports whether the credential is no longer usable. The boundary is
// exclusive: a credential expiring exactly now is already expired.
func (c StoredCredential) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// EncodeCredential renders the single-slot storage encoding.
func EncodeCredential(value string, expiresAt time.Time) string {
	return value + ";" + expiresAt.UTC().Format(time.RFC3339)
}

// ParseCredential decodes a stored credential. Anything but exactly two
// ';'-delimited parts with a parsable RFC3339 expiry is a format error.
func ParseCredential(raw string) (StoredCredential, error) {
	parts := strings.Split(raw, ";")
	if len(parts) != 2 {
		return StoredCredential{}, fmt.Errorf("credential must have exactly two ';'-delimited parts, got %d", len(parts))
	}
	expiresAt, err := time.Parse(time.RFC3339, parts[1])
	if err != nil {
		return StoredCredential{}, fmt.Errorf("parse credential expiry: %w", err)
	}
	return StoredCredential{Value: parts[0], ExpiresAt: expiresAt}, nil
}
