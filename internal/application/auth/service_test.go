package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	tokenapp "github.com/codearena/auth-api/internal/application/token"
	"github.com/codearena/auth-api/internal/domain"
	"github.com/codearena/auth-api/internal/events"
	"github.com/codearena/auth-api/internal/infrastructure/dynamo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) Put(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}
func (m *mockUserStore) Update(ctx context.Context, userID string, updates map[string]interface{}) error {
	return m.Called(ctx, userID, updates).Error(0)
}

type mockOtpVerifier struct{ mock.Mock }

func (m *mockOtpVerifier) Verify(ctx context.Context, email, code string) domain.Result[string] {
	args := m.Called(ctx, email, code)
	return args.Get(0).(domain.Result[string])
}

type mockIssuer struct{ mock.Mock }

func (m *mockIssuer) IssueTokens(ctx context.Context, u *domain.User) (string, string, error) {
	args := m.Called(ctx, u)
	return args.String(0), args.String(1), args.Error(2)
}
func (m *mockIssuer) GetRefreshExpiry(ctx context.Context, u *domain.User) (string, error) {
	args := m.Called(ctx, u)
	return args.String(0), args.Error(1)
}
func (m *mockIssuer) RefreshTokens(ctx context.Context, u *domain.User, presented string) (string, string, error) {
	args := m.Called(ctx, u, presented)
	return args.String(0), args.String(1), args.Error(2)
}

const pepper = "test-pepper"

func newTestService(us *mockUserStore, otp *mockOtpVerifier, iss tokenapp.Issuer, bus *events.Bus) Service {
	return NewService(ServiceDeps{UserRepo: us, Otp: otp, Issuer: iss, Bus: bus, Pepper: pepper})
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password+pepper), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func registerReq() domain.RegisterRequest {
	return domain.RegisterRequest{
		Email:           "ana@example.com",
		Password:        "Aa1!secret",
		ConfirmPassword: "Aa1!secret",
		Username:        "ana",
	}
}

// --- Register ---

func TestRegister_Success(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "ana@example.com").Return(nil, dynamo.ErrUserNotFound)

	var saved *domain.User
	us.On("Put", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*domain.User) }).Return(nil)

	bus := events.NewBus(4)
	received := make(chan domain.UserRegistered, 1)
	bus.Subscribe(func(ctx context.Context, ev domain.UserRegistered) error {
		received <- ev
		return nil
	})
	defer bus.Close()

	res := newTestService(us, nil, nil, bus).Register(context.Background(), registerReq())
	require.True(t, res.IsSuccess())

	require.NotNil(t, saved)
	assert.Equal(t, res.Value(), saved.UserID)
	assert.NotEmpty(t, saved.SecurityStamp)
	assert.False(t, saved.EmailConfirmed, "new accounts start unverified")
	assert.True(t, saved.Enable)
	assert.NotEqual(t, "Aa1!secret", saved.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.PasswordHash), []byte("Aa1!secret"+pepper)))

	select {
	case ev := <-received:
		assert.Equal(t, saved.UserID, ev.UserID)
		assert.Equal(t, "ana@example.com", ev.Email)
	case <-time.After(time.Second):
		t.Fatal("registered event was not published")
	}
}

func TestRegister_EmailExists(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "ana@example.com").Return(&domain.User{UserID: "u1"}, nil)

	res := newTestService(us, nil, nil, events.NewBus(1)).Register(context.Background(), registerReq())
	require.True(t, res.IsFailure())
	assert.Equal(t, "Auth.EmailExists", res.FirstError().Code)
	us.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestRegister_PutFailure(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "ana@example.com").Return(nil, dynamo.ErrUserNotFound)
	us.On("Put", mock.Anything, mock.Anything).Return(errors.New("table unavailable"))

	res := newTestService(us, nil, nil, events.NewBus(1)).Register(context.Background(), registerReq())
	require.True(t, res.IsFailure())
	assert.Equal(t, "Auth.RegisterFailed", res.FirstError().Code)
}

func TestRegister_PanicBecomesFailure(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "ana@example.com").Return(nil, dynamo.ErrUserNotFound)
	us.On("Put", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { panic("store blew up") }).Return(nil)

	res := newTestService(us, nil, nil, events.NewBus(1)).Register(context.Background(), registerReq())
	require.True(t, res.IsFailure())
	assert.Equal(t, "Auth.RegisterUserException", res.FirstError().Code)
	assert.Contains(t, res.FirstError().Description, "store blew up")
}

// --- VerifyOtp ---

func TestVerifyOtp_Delegates(t *testing.T) {
	otp := &mockOtpVerifier{}
	otp.On("Verify", mock.Anything, "ana@example.com", "ABC123").
		Return(domain.Success("Email confirmed successfully", "Email confirmed"))

	res := newTestService(nil, otp, nil, nil).VerifyOtp(context.Background(), domain.VerifyOtpRequest{
		Email:   "ana@example.com",
		OtpCode: "ABC123",
	})
	require.True(t, res.IsSuccess())
	otp.AssertExpectations(t)
}

func TestVerifyOtp_PanicBecomesFailure(t *testing.T) {
	otp := &mockOtpVerifier{}
	otp.On("Verify", mock.Anything, mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { panic("verifier blew up") }).
		Return(domain.Result[string]{})

	res := newTestService(nil, otp, nil, nil).VerifyOtp(context.Background(), domain.VerifyOtpRequest{
		Email:   "ana@example.com",
		OtpCode: "ABC123",
	})
	require.True(t, res.IsFailure())
	assert.Equal(t, "Auth.VerifyOtpException", res.FirstError().Code)
}

// --- Login ---

func activeUser(t *testing.T) *domain.User {
	return &domain.User{
		UserID:         "u1",
		Username:       "ana",
		Email:          "ana@example.com",
		PasswordHash:   hashPassword(t, "Aa1!secret"),
		Roles:          []string{domain.RoleUser},
		EmailConfirmed: true,
		Enable:         true,
	}
}

func TestLogin_UnknownEmailAndWrongPasswordAreIndistinguishable(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, dynamo.ErrUserNotFound)
	us.On("GetByEmail", mock.Anything, "ana@example.com").Return(activeUser(t), nil)

	svc := newTestService(us, nil, nil, nil)
	unknown := svc.Login(context.Background(), domain.LoginRequest{Email: "ghost@example.com", Password: "whatever"})
	wrongPwd := svc.Login(context.Background(), domain.LoginRequest{Email: "ana@example.com", Password: "incorrect"})

	require.True(t, unknown.IsFailure())
	require.True(t, wrongPwd.IsFailure())
	assert.Equal(t, unknown.FirstError(), wrongPwd.FirstError())
	assert.Equal(t, unknown.Message(), wrongPwd.Message())
}

func TestLogin_UnverifiedEmail(t *testing.T) {
	us := &mockUserStore{}
	u := activeUser(t)
	u.EmailConfirmed = false
	us.On("GetByEmail", mock.Anything, "ana@example.com").Return(u, nil)

	res := newTestService(us, nil, nil, nil).Login(context.Background(), domain.LoginRequest{
		Email: "ana@example.com", Password: "Aa1!secret",
	})
	assert.Equal(t, "Auth.NotVerified", res.FirstError().Code)
}

func TestLogin_DisabledAccount(t *testing.T) {
	us := &mockUserStore{}
	u := activeUser(t)
	u.Enable = false
	us.On("GetByEmail", mock.Anything, "ana@example.com").Return(u, nil)

	res := newTestService(us, nil, nil, nil).Login(context.Background(), domain.LoginRequest{
		Email: "ana@example.com", Password: "Aa1!secret",
	})
	assert.Equal(t, "Auth.Locked", res.FirstError().Code)
}

func TestLogin_Success(t *testing.T) {
	us := &mockUserStore{}
	u := activeUser(t)
	us.On("GetByEmail", mock.Anything, "ana@example.com").Return(u, nil)

	iss := &mockIssuer{}
	iss.On("IssueTokens", mock.Anything, u).Return("access-token", "refresh-token", nil)
	iss.On("GetRefreshExpiry", mock.Anything, u).Return("2026-09-08T00:00:00Z", nil)

	var updates map[string]interface{}
	us.On("Update", mock.Anything, "u1", mock.Anything).
		Run(func(args mock.Arguments) { updates = args.Get(2).(map[string]interface{}) }).Return(nil)

	res := newTestService(us, nil, iss, nil).Login(context.Background(), domain.LoginRequest{
		Email: "ana@example.com", Password: "Aa1!secret",
	})
	require.True(t, res.IsSuccess())

	body := res.Value()
	assert.Equal(t, "u1", body.UserID)
	assert.Equal(t, "access-token", body.AccessToken)
	assert.Equal(t, "refresh-token", body.RefreshToken)
	assert.Equal(t, "2026-09-08T00:00:00Z", body.RefreshTokenExpiry)
	assert.Equal(t, domain.RoleUser, body.Role)

	require.Contains(t, updates, "last_login_at")
	assert.WithinDuration(t, time.Now().UTC(), updates["last_login_at"].(time.Time), time.Minute)
}

func TestLogin_IssuerFailure(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "ana@example.com").Return(activeUser(t), nil)

	iss := &mockIssuer{}
	iss.On("IssueTokens", mock.Anything, mock.Anything).Return("", "", errors.New("signer down"))

	res := newTestService(us, nil, iss, nil).Login(context.Background(), domain.LoginRequest{
		Email: "ana@example.com", Password: "Aa1!secret",
	})
	require.True(t, res.IsFailure())
	assert.Equal(t, "Auth.LoginException", res.FirstError().Code)
}

// --- Refresh ---

func TestRefresh_Success(t *testing.T) {
	us := &mockUserStore{}
	u := activeUser(t)
	us.On("GetByEmail", mock.Anything, "ana@example.com").Return(u, nil)

	iss := &mockIssuer{}
	iss.On("RefreshTokens", mock.Anything, u, "old-refresh").Return("new-access", "new-refresh", nil)
	iss.On("GetRefreshExpiry", mock.Anything, u).Return("2026-09-08T00:00:00Z", nil)

	res := newTestService(us, nil, iss, nil).Refresh(context.Background(), domain.RefreshRequest{
		Email: "ana@example.com", RefreshToken: "old-refresh",
	})
	require.True(t, res.IsSuccess())
	assert.Equal(t, "new-access", res.Value().AccessToken)
	assert.Equal(t, "new-refresh", res.Value().RefreshToken)
}

func TestRefresh_InvalidToken(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "ana@example.com").Return(activeUser(t), nil)

	iss := &mockIssuer{}
	iss.On("RefreshTokens", mock.Anything, mock.Anything, "stale").
		Return("", "", tokenapp.ErrRefreshInvalid)

	res := newTestService(us, nil, iss, nil).Refresh(context.Background(), domain.RefreshRequest{
		Email: "ana@example.com", RefreshToken: "stale",
	})
	require.True(t, res.IsFailure())
	assert.Equal(t, "Auth.InvalidRefreshToken", res.FirstError().Code)
}

func TestRefresh_UnknownEmail(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, dynamo.ErrUserNotFound)

	res := newTestService(us, nil, nil, nil).Refresh(context.Background(), domain.RefreshRequest{
		Email: "ghost@example.com", RefreshToken: "anything",
	})
	assert.Equal(t, "Auth.InvalidRefreshToken", res.FirstError().Code)
}
