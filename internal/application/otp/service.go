package otp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/codearena/auth-api/internal/domain"
	"github.com/codearena/auth-api/internal/infrastructure/dynamo"
	pkgotp "github.com/codearena/auth-api/internal/pkg/otp"
)

const otpLifetime = 10 * time.Minute

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type credentialStore interface {
	Set(ctx context.Context, userID, provider, name, value string) error
	Get(ctx context.Context, userID, provider, name string) (string, error)
	Remove(ctx context.Context, userID, provider, name string) error
}

type mailer interface {
	SendOtpRegisterAccount(toEmail, otpCode string) error
}

// Service owns the one-time-code lifecycle for email confirmation:
// Issued(code, expiry) → Confirmed, or Issued → Expired/Invalidated.
type Service interface {
	Issue(ctx context.Context, userID, email string) error
	Verify(ctx context.Context, email, code string) domain.Result[string]
}

type service struct {
	users       userStore
	credentials credentialStore
	mailer      mailer
}

type ServiceDeps struct {
	UserRepo       userStore
	CredentialRepo credentialStore
	Mailer         mailer
}

func NewService(deps ServiceDeps) Service {
	return &service{
		users:       deps.UserRepo,
		credentials: deps.CredentialRepo,
		mailer:      deps.Mailer,
	}
}

// Issue generates and stores a fresh code, then emails it. Invoked by the
// user-registered event, never by a direct API call, so account creation is
// decoupled from delivery.
func (s *service) Issue(ctx context.Context, userID, email string) error {
	code, err := pkgotp.New()
	if err != nil {
		return err
	}
	encoded := domain.EncodeCredential(code, time.Now().UTC().Add(otpLifetime))
	if err := s.credentials.Set(ctx, userID, domain.CredentialProvider, domain.CredentialNameOtp, encoded); err != nil {
		return fmt.Errorf("store otp: %w", err)
	}
	if err := s.mailer.SendOtpRegisterAccount(email, code); err != nil {
		return fmt.Errorf("send otp email: %w", err)
	}
	return nil
}

// Verify walks the failure ladder in a fixed order so each state maps to one
// stable error code. On success the stored code is deleted before returning,
// which makes every code single-use.
func (s *service) Verify(ctx context.Context, email, code string) domain.Result[string] {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return domain.Failure[string](domain.ErrUserNotFound, "Verification failed")
	}
	if u.EmailConfirmed {
		return domain.Failure[string](domain.ErrEmailAlreadyConfirmed, "Verification failed")
	}
	raw, err := s.credentials.Get(ctx, u.UserID, domain.CredentialProvider, domain.CredentialNameOtp)
	if err != nil {
		if errors.Is(err, dynamo.ErrCredentialNotFound) {
			return domain.Failure[string](domain.ErrInvalidOtp, "Verification failed")
		}
		return domain.Failure[string](domain.NewError("Auth.UpdateFailed", err.Error()), "Verification failed")
	}
	cred, err := domain.ParseCredential(raw)
	if err != nil {
		return domain.Failure[string](domain.ErrInvalidTokenFormat, "Verification failed")
	}
	// Case-sensitive exact match.
	if cred.Value != code {
		return domain.Failure[string](domain.ErrWrongOtp, "Verification failed")
	}
	if cred.Expired(time.Now().UTC()) {
		return domain.Failure[string](domain.ErrOtpExpired, "Verification failed")
	}

	if err := s.users.Update(ctx, u.UserID, map[string]interface{}{"email_confirmed": true}); err != nil {
		return domain.Failure[string](domain.NewError("Auth.UpdateFailed", err.Error()), "Verification failed")
	}
	if err := s.credentials.Remove(ctx, u.UserID, domain.CredentialProvider, domain.CredentialNameOtp); err != nil {
		slog.Warn("failed to delete consumed otp", "user_id", u.UserID, "err", err)
	}
	return domain.Success("Email confirmed successfully", "Email confirmed")
}
