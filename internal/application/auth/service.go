package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tokenapp "github.com/codearena/auth-api/internal/application/token"
	"github.com/codearena/auth-api/internal/domain"
	"github.com/codearena/auth-api/internal/events"
	"github.com/codearena/auth-api/internal/pkg/id"
	"golang.org/x/crypto/bcrypt"
)

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Put(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type otpVerifier interface {
	Verify(ctx context.Context, email, code string) domain.Result[string]
}

// Service exposes the auth use cases. Every method returns a Result; errors
// never escape as Go errors or panics past this boundary.
type Service interface {
	Register(ctx context.Context, req domain.RegisterRequest) domain.Result[string]
	VerifyOtp(ctx context.Context, req domain.VerifyOtpRequest) domain.Result[string]
	Login(ctx context.Context, req domain.LoginRequest) domain.Result[domain.LoginResponse]
	Refresh(ctx context.Context, req domain.RefreshRequest) domain.Result[domain.LoginResponse]
}

type service struct {
	users  userStore
	otp    otpVerifier
	issuer tokenapp.Issuer
	bus    *events.Bus
	pepper string
}

type ServiceDeps struct {
	UserRepo userStore
	Otp      otpVerifier
	Issuer   tokenapp.Issuer
	Bus      *events.Bus
	Pepper   string
}

func NewService(deps ServiceDeps) Service {
	return &service{
		users:  deps.UserRepo,
		otp:    deps.Otp,
		issuer: deps.Issuer,
		bus:    deps.Bus,
		pepper: deps.Pepper,
	}
}

// pepperedPassword prefixes hashing input with the deployment-wide secret.
// This is supplementary to bcrypt's own per-hash salt, not a replacement for
// it; it is kept for compatibility with existing stored hashes.
func (s *service) pepperedPassword(password string) []byte {
	return []byte(password + s.pepper)
}

func (s *service) Register(ctx context.Context, req domain.RegisterRequest) (res domain.Result[string]) {
	defer func() {
		if r := recover(); r != nil {
			res = domain.Failure[string](domain.ErrRegisterUserException(fmt.Sprint(r)), "Registration failed")
		}
	}()

	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return domain.Failure[string](domain.ErrEmailExists, "Registration failed")
	}

	hash, err := bcrypt.GenerateFromPassword(s.pepperedPassword(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Failure[string](domain.ErrRegisterFailed(err.Error()), "Registration failed")
	}

	now := time.Now().UTC()
	u := &domain.User{
		UserID:        id.New(),
		Username:      req.Username,
		Email:         req.Email,
		PasswordHash:  string(hash),
		SecurityStamp: id.New(),
		Enable:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.users.Put(ctx, u); err != nil {
		return domain.Failure[string](domain.ErrRegisterFailed(err.Error()), "Registration failed")
	}

	s.bus.Publish(ctx, domain.UserRegistered{
		UserID:   u.UserID,
		Email:    u.Email,
		Username: u.Username,
	})

	return domain.Success(u.UserID, "User registered; a verification code has been sent to your email")
}

func (s *service) VerifyOtp(ctx context.Context, req domain.VerifyOtpRequest) (res domain.Result[string]) {
	defer func() {
		if r := recover(); r != nil {
			res = domain.Failure[string](domain.ErrVerifyOtpException(fmt.Sprint(r)), "Verification failed")
		}
	}()
	return s.otp.Verify(ctx, req.Email, req.OtpCode)
}

func (s *service) Login(ctx context.Context, req domain.LoginRequest) (res domain.Result[domain.LoginResponse]) {
	defer func() {
		if r := recover(); r != nil {
			res = domain.Failure[domain.LoginResponse](domain.ErrLoginException(fmt.Sprint(r)), "Login failed")
		}
	}()

	// Unknown email and wrong password produce byte-identical failures so the
	// response cannot be used to enumerate accounts.
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return domain.Failure[domain.LoginResponse](domain.ErrLoginFailed, "Invalid email or password")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), s.pepperedPassword(req.Password)) != nil {
		return domain.Failure[domain.LoginResponse](domain.ErrLoginFailed, "Invalid email or password")
	}
	if !u.EmailConfirmed {
		return domain.Failure[domain.LoginResponse](domain.ErrNotVerified, "Email is not verified")
	}
	if !u.Enable {
		return domain.Failure[domain.LoginResponse](domain.ErrLocked, "Account is locked")
	}

	accessToken, refreshToken, err := s.issuer.IssueTokens(ctx, u)
	if err != nil {
		return domain.Failure[domain.LoginResponse](domain.ErrLoginException(err.Error()), "Login failed")
	}
	refreshExpiry, err := s.issuer.GetRefreshExpiry(ctx, u)
	if err != nil {
		slog.Warn("failed to read refresh expiry", "user_id", u.UserID, "err", err)
	}

	if err := s.users.Update(ctx, u.UserID, map[string]interface{}{"last_login_at": time.Now().UTC()}); err != nil {
		slog.Warn("failed to update last login", "user_id", u.UserID, "err", err)
	}

	return domain.Success(domain.LoginResponse{
		UserID:             u.UserID,
		Email:              u.Email,
		Username:           u.Username,
		AccessToken:        accessToken,
		RefreshToken:       refreshToken,
		RefreshTokenExpiry: refreshExpiry,
		AvatarURL:          u.AvatarURL,
		Phone:              u.Phone,
		Role:               u.FirstRole(),
	}, "Login successful")
}

func (s *service) Refresh(ctx context.Context, req domain.RefreshRequest) (res domain.Result[domain.LoginResponse]) {
	defer func() {
		if r := recover(); r != nil {
			res = domain.Failure[domain.LoginResponse](domain.ErrLoginException(fmt.Sprint(r)), "Refresh failed")
		}
	}()

	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return domain.Failure[domain.LoginResponse](domain.ErrInvalidRefreshToken, "Refresh failed")
	}
	accessToken, refreshToken, err := s.issuer.RefreshTokens(ctx, u, req.RefreshToken)
	if err != nil {
		return domain.Failure[domain.LoginResponse](domain.ErrInvalidRefreshToken, "Refresh failed")
	}
	refreshExpiry, err := s.issuer.GetRefreshExpiry(ctx, u)
	if err != nil {
		slog.Warn("failed to read refresh expiry", "user_id", u.UserID, "err", err)
	}

	return domain.Success(domain.LoginResponse{
		UserID:             u.UserID,
		Email:              u.Email,
		Username:           u.Username,
		AccessToken:        accessToken,
		RefreshToken:       refreshToken,
		RefreshTokenExpiry: refreshExpiry,
		AvatarURL:          u.AvatarURL,
		Phone:              u.Phone,
		Role:               u.FirstRole(),
	}, "Tokens refreshed")
}
