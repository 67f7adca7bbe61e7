package handler

import (
	"encoding/json"
	"net/http"

	"github.com/codearena/auth-api/internal/application/auth"
	"github.com/codearena/auth-api/internal/domain"
	"github.com/codearena/auth-api/internal/validation"
)

// AuthHandler exposes the auth use cases. Requests flow through the
// validation pipeline before reaching the service, so a rule violation never
// touches the handler's side effects.
type AuthHandler struct {
	register  validation.Handler[domain.RegisterRequest, domain.Result[string]]
	verifyOtp validation.Handler[domain.VerifyOtpRequest, domain.Result[string]]
	login     validation.Handler[domain.LoginRequest, domain.Result[domain.LoginResponse]]
	refresh   validation.Handler[domain.RefreshRequest, domain.Result[domain.LoginResponse]]
}

func NewAuthHandler(svc auth.Service) *AuthHandler {
	return &AuthHandler{
		register:  validation.Validated(svc.Register, validation.Struct[domain.RegisterRequest]()),
		verifyOtp: validation.Validated(svc.VerifyOtp, validation.Struct[domain.VerifyOtpRequest]()),
		login:     validation.Validated(svc.Login, validation.Struct[domain.LoginRequest]()),
		refresh:   validation.Validated(svc.Refresh, validation.Struct[domain.RefreshRequest]()),
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badBody[string](w)
		return
	}
	writeResult(w, h.register(r.Context(), req))
}

func (h *AuthHandler) VerifyOtp(w http.ResponseWriter, r *http.Request) {
	var req domain.VerifyOtpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badBody[string](w)
		return
	}
	writeResult(w, h.verifyOtp(r.Context(), req))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badBody[domain.LoginResponse](w)
		return
	}
	writeResult(w, h.login(r.Context(), req))
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req domain.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badBody[domain.LoginResponse](w)
		return
	}
	writeResult(w, h.refresh(r.Context(), req))
}
