package handler

import (
	"net/http"

	"github.com/codearena/auth-api/internal/application/user"
	"github.com/codearena/auth-api/internal/domain"
	s3infra "github.com/codearena/auth-api/internal/infrastructure/s3"
	"github.com/codearena/auth-api/internal/transport/http/middleware"
)

const maxAvatarBytes = 5 << 20 // 5 MiB

// UserHandler handles profile endpoints.
type UserHandler struct {
	svc user.Service
}

func NewUserHandler(svc user.Service) *UserHandler { return &UserHandler{svc: svc} }

func (h *UserHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeResult(w, domain.Failure[string](domain.NewError("Auth.Unauthorized", "unauthorized"), "Avatar upload failed"))
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarBytes)
	file, header, err := r.FormFile("avatar")
	if err != nil {
		badBody[string](w)
		return
	}
	defer file.Close()

	contentType := s3infra.DetectContentType(header.Filename)
	writeResult(w, h.svc.UploadAvatar(r.Context(), claims.Subject, header.Filename, file, contentType))
}
