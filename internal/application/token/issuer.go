package token

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/codearena/auth-api/internal/domain"
	"github.com/codearena/auth-api/internal/infrastructure/dynamo"
	"github.com/codearena/auth-api/internal/pkg/id"
	pkgtoken "github.com/codearena/auth-api/internal/pkg/token"
)

// ErrRefreshInvalid covers every refresh rejection: unknown, malformed,
// mismatched or expired presented token. Callers map it to a single client
// failure so the reason is not distinguishable.
var ErrRefreshInvalid = errors.New("refresh token invalid or expired")

type jwtSigner interface {
	Sign(userID, email, username, jti string, roles []string) (string, error)
}

type credentialStore interface {
	Set(ctx context.Context, userID, provider, name, value string) error
	Get(ctx context.Context, userID, provider, name string) (string, error)
	Remove(ctx context.Context, userID, provider, name string) error
}

// Issuer creates signed access tokens and opaque refresh tokens, and owns the
// single refresh-token slot per user.
type Issuer interface {
	IssueTokens(ctx context.Context, u *domain.User) (accessToken, refreshToken string, err error)
	GetRefreshExpiry(ctx context.Context, u *domain.User) (string, error)
	RefreshTokens(ctx context.Context, u *domain.User, presented string) (accessToken, refreshToken string, err error)
}

type issuer struct {
	signer     jwtSigner
	store      credentialStore
	refreshTTL time.Duration
}

type IssuerDeps struct {
	Signer     jwtSigner
	Store      credentialStore
	RefreshTTL time.Duration
}

func NewIssuer(deps IssuerDeps) Issuer {
	return &issuer{
		signer:     deps.Signer,
		store:      deps.Store,
		refreshTTL: deps.RefreshTTL,
	}
}

// IssueTokens rotates by replacement: any stored refresh token is removed
// before the new one is written, so there is never more than one valid
// refresh token per user, consumed or not.
func (i *issuer) IssueTokens(ctx context.Context, u *domain.User) (string, string, error) {
	if _, err := i.store.Get(ctx, u.UserID, domain.CredentialProvider, domain.CredentialNameRefresh); err == nil {
		if err := i.store.Remove(ctx, u.UserID, domain.CredentialProvider, domain.CredentialNameRefresh); err != nil {
			return "", "", fmt.Errorf("remove prior refresh token: %w", err)
		}
	}

	accessToken, err := i.signer.Sign(u.UserID, u.Email, u.Username, id.New(), u.Roles)
	if err != nil {
		return "", "", fmt.Errorf("sign access token: %w", err)
	}

	refreshToken, err := pkgtoken.NewRefreshToken()
	if err != nil {
		return "", "", err
	}
	encoded := domain.EncodeCredential(refreshToken, time.Now().UTC().Add(i.refreshTTL))
	if err := i.store.Set(ctx, u.UserID, domain.CredentialProvider, domain.CredentialNameRefresh, encoded); err != nil {
		return "", "", fmt.Errorf("store refresh token: %w", err)
	}

	return accessToken, refreshToken, nil
}

// GetRefreshExpiry returns the stored refresh token's expiry as an RFC3339
// string, or empty when no token is stored.
func (i *issuer) GetRefreshExpiry(ctx context.Context, u *domain.User) (string, error) {
	raw, err := i.store.Get(ctx, u.UserID, domain.CredentialProvider, domain.CredentialNameRefresh)
	if err != nil {
		if errors.Is(err, dynamo.ErrCredentialNotFound) {
			return "", nil
		}
		return "", err
	}
	cred, err := domain.ParseCredential(raw)
	if err != nil {
		return "", err
	}
	return cred.ExpiresAt.Format(time.RFC3339), nil
}

// RefreshTokens validates the presented token against the stored slot and
// rotates on success. On mismatch or expiry the stored token is removed so
// the client is forced to log in again.
func (i *issuer) RefreshTokens(ctx context.Context, u *domain.User, presented string) (string, string, error) {
	raw, err := i.store.Get(ctx, u.UserID, domain.CredentialProvider, domain.CredentialNameRefresh)
	if err != nil {
		if errors.Is(err, dynamo.ErrCredentialNotFound) {
			return "", "", ErrRefreshInvalid
		}
		return "", "", err
	}
	cred, err := domain.ParseCredential(raw)
	if err != nil {
		i.removeSlot(ctx, u.UserID)
		return "", "", ErrRefreshInvalid
	}
	if subtle.ConstantTimeCompare([]byte(cred.Value), []byte(presented)) != 1 {
		i.removeSlot(ctx, u.UserID)
		return "", "", ErrRefreshInvalid
	}
	if cred.Expired(time.Now().UTC()) {
		i.removeSlot(ctx, u.UserID)
		return "", "", ErrRefreshInvalid
	}
	return i.IssueTokens(ctx, u)
}

func (i *issuer) removeSlot(ctx context.Context, userID string) {
	if err := i.store.Remove(ctx, userID, domain.CredentialProvider, domain.CredentialNameRefresh); err != nil {
		slog.Warn("failed to remove refresh token slot", "user_id", userID, "err", err)
	}
}
