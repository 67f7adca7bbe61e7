package role

import (
	"context"

	"github.com/codearena/auth-api/internal/domain"
	"github.com/codearena/auth-api/internal/pkg/id"
)

type roleStore interface {
	Put(ctx context.Context, role *domain.Role) error
	Get(ctx context.Context, roleID string) (*domain.Role, error)
	GetByName(ctx context.Context, name string) (*domain.Role, error)
	Scan(ctx context.Context) ([]domain.Role, error)
	Delete(ctx context.Context, roleID string) error
}

// Service is a thin CRUD layer over the role store.
type Service interface {
	Create(ctx context.Context, req domain.CreateRoleRequest) domain.Result[domain.Role]
	List(ctx context.Context) domain.Result[[]domain.Role]
	Get(ctx context.Context, roleID string) domain.Result[domain.Role]
	Delete(ctx context.Context, roleID string) domain.Result[string]
}

type service struct {
	roles roleStore
}

func NewService(roles roleStore) Service {
	return &service{roles: roles}
}

func (s *service) Create(ctx context.Context, req domain.CreateRoleRequest) domain.Result[domain.Role] {
	if _, err := s.roles.GetByName(ctx, req.Name); err == nil {
		return domain.Failure[domain.Role](domain.ErrRoleDuplicateName, "Role creation failed")
	}
	r := &domain.Role{
		RoleID:      id.NewSortable(),
		Name:        req.Name,
		Description: req.Description,
		Enable:      true,
	}
	if err := s.roles.Put(ctx, r); err != nil {
		return domain.Failure[domain.Role](domain.ErrRoleCreateFailed(err.Error()), "Role creation failed")
	}
	return domain.Success(*r, "Role created")
}

func (s *service) List(ctx context.Context) domain.Result[[]domain.Role] {
	roles, err := s.roles.Scan(ctx)
	if err != nil {
		return domain.Failure[[]domain.Role](domain.NewError("Role.ListFailed", err.Error()), "Could not list roles")
	}
	if roles == nil {
		roles = []domain.Role{}
	}
	return domain.Success(roles, "Roles listed")
}

func (s *service) Get(ctx context.Context, roleID string) domain.Result[domain.Role] {
	r, err := s.roles.Get(ctx, roleID)
	if err != nil {
		return domain.Failure[domain.Role](domain.ErrRoleNotFound, "Role not found")
	}
	return domain.Success(*r, "Role found")
}

func (s *service) Delete(ctx context.Context, roleID string) domain.Result[string] {
	if _, err := s.roles.Get(ctx, roleID); err != nil {
		return domain.Failure[string](domain.ErrRoleNotFound, "Role not found")
	}
	if err := s.roles.Delete(ctx, roleID); err != nil {
		return domain.Failure[string](domain.ErrRoleDeleteFailed(err.Error()), "Role deletion failed")
	}
	return domain.Success(roleID, "Role deleted")
}
