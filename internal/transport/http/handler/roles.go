package handler

import (
	"encoding/json"
	"net/http"

	"github.com/codearena/auth-api/internal/application/role"
	"github.com/codearena/auth-api/internal/domain"
	"github.com/codearena/auth-api/internal/validation"
	"github.com/go-chi/chi/v5"
)

// RoleHandler handles role CRUD endpoints (all admin-only).
type RoleHandler struct {
	svc    role.Service
	create validation.Handler[domain.CreateRoleRequest, domain.Result[domain.Role]]
}

func NewRoleHandler(svc role.Service) *RoleHandler {
	return &RoleHandler{
		svc:    svc,
		create: validation.Validated(svc.Create, validation.Struct[domain.CreateRoleRequest]()),
	}
}

func (h *RoleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badBody[domain.Role](w)
		return
	}
	writeResult(w, h.create(r.Context(), req))
}

func (h *RoleHandler) List(w http.ResponseWriter, r *http.Request) {
	writeResult(w, h.svc.List(r.Context()))
}

func (h *RoleHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeResult(w, h.svc.Get(r.Context(), chi.URLParam(r, "id")))
}

func (h *RoleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	writeResult(w, h.svc.Delete(r.Context(), chi.URLParam(r, "id")))
}
