package user

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/codearena/auth-api/internal/domain"
)

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type objectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
}

// Service handles profile operations outside the auth flows.
type Service interface {
	UploadAvatar(ctx context.Context, userID, filename string, r io.Reader, contentType string) domain.Result[string]
}

type service struct {
	users   userStore
	objects objectStore
}

func NewService(users userStore, objects objectStore) Service {
	return &service{users: users, objects: objects}
}

// UploadAvatar stores the image under a per-user key and records the URL on
// the profile. The key is stable per user, so re-uploading replaces the old
// avatar in place.
func (s *service) UploadAvatar(ctx context.Context, userID, filename string, r io.Reader, contentType string) domain.Result[string] {
	if _, err := s.users.Get(ctx, userID); err != nil {
		return domain.Failure[string](domain.ErrUserNotFound, "Avatar upload failed")
	}
	key := fmt.Sprintf("avatars/%s%s", userID, path.Ext(filename))
	url, err := s.objects.Upload(ctx, key, r, contentType)
	if err != nil {
		return domain.Failure[string](domain.NewError("User.AvatarUploadFailed", err.Error()), "Avatar upload failed")
	}
	if err := s.users.Update(ctx, userID, map[string]interface{}{"avatar_url": url}); err != nil {
		return domain.Failure[string](domain.NewError("User.UpdateFailed", err.Error()), "Avatar upload failed")
	}
	return domain.Success(url, "Avatar updated")
}
