package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/codearena/auth-api/internal/application/auth"
	otpapp "github.com/codearena/auth-api/internal/application/otp"
	roleapp "github.com/codearena/auth-api/internal/application/role"
	tokenapp "github.com/codearena/auth-api/internal/application/token"
	userapp "github.com/codearena/auth-api/internal/application/user"
	"github.com/codearena/auth-api/internal/config"
	"github.com/codearena/auth-api/internal/domain"
	"github.com/codearena/auth-api/internal/events"
	"github.com/codearena/auth-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/codearena/auth-api/internal/infrastructure/jwt"
	s3infra "github.com/codearena/auth-api/internal/infrastructure/s3"
	"github.com/codearena/auth-api/internal/infrastructure/smtp"
	"github.com/codearena/auth-api/internal/transport/http/handler"
	appmiddleware "github.com/codearena/auth-api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo       *dynamo.UserRepo
	RoleRepo       *dynamo.RoleRepo
	CredentialRepo *dynamo.CredentialRepo
	AvatarStore    *s3infra.Store
	Mailer         smtp.Mailer
	JWTProvider    *jwtinfra.Provider
	Bus            *events.Bus
}

// NewRouter builds and returns the application router, and wires the
// user-registered event subscribers (OTP issuance, default-role grant).
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// 5 requests/second with a burst of 10 on the sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	otpSvc := otpapp.NewService(otpapp.ServiceDeps{
		UserRepo:       deps.UserRepo,
		CredentialRepo: deps.CredentialRepo,
		Mailer:         deps.Mailer,
	})
	issuer := tokenapp.NewIssuer(tokenapp.IssuerDeps{
		Signer:     deps.JWTProvider,
		Store:      deps.CredentialRepo,
		RefreshTTL: cfg.RefreshTTL,
	})
	authSvc := auth.NewService(auth.ServiceDeps{
		UserRepo: deps.UserRepo,
		Otp:      otpSvc,
		Issuer:   issuer,
		Bus:      deps.Bus,
		Pepper:   cfg.PasswordPepper,
	})
	roleSvc := roleapp.NewService(deps.RoleRepo)
	userSvc := userapp.NewService(deps.UserRepo, deps.AvatarStore)

	deps.Bus.Subscribe(func(ctx context.Context, ev domain.UserRegistered) error {
		return otpSvc.Issue(ctx, ev.UserID, ev.Email)
	})
	deps.Bus.Subscribe(func(ctx context.Context, ev domain.UserRegistered) error {
		return deps.UserRepo.AddRole(ctx, ev.UserID, domain.RoleUser)
	})

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc)
	roleH := handler.NewRoleHandler(roleSvc)
	userH := handler.NewUserHandler(userSvc)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health-check", healthH.Ping)

		r.With(sensitiveRL.Limit).Post("/auth/register", authH.Register)
		r.With(sensitiveRL.Limit).Post("/auth/verify-otp", authH.VerifyOtp)
		r.With(sensitiveRL.Limit).Post("/auth/login", authH.Login)
		r.With(sensitiveRL.Limit).Post("/auth/refresh", authH.Refresh)

		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.Auth(deps.JWTProvider))

			r.Post("/users/avatar", userH.UploadAvatar)

			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleAdmin))

				r.Post("/roles", roleH.Create)
				r.Get("/roles", roleH.List)
				r.Get("/roles/{id}", roleH.Get)
				r.Delete("/roles/{id}", roleH.Delete)
			})
		})
	})

	return r
}
