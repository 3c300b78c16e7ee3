package service

import (
	"context"
	"fmt"

	"github.com/labsuite/user-access-api/internal/core/domain"
	"github.com/labsuite/user-access-api/internal/core/ports"
)

// RoleService manages the role catalog.
type RoleService struct {
	repo ports.RoleRepository
}

func NewRoleService(repo ports.RoleRepository) *RoleService {
	return &RoleService{repo: repo}
}

// Initialize inserts the seed roles when the catalog is empty. Calling it on
// a populated catalog does nothing.
func (s *RoleService) Initialize(ctx context.Context) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count roles: %w", err)
	}
	if count > 0 {
		return nil
	}
	if err := s.repo.InsertMany(ctx, domain.SeedRoles()); err != nil {
		return fmt.Errorf("seed roles: %w", err)
	}
	return nil
}

func (s *RoleService) Get(ctx context.Context, name string) (*domain.Role, error) {
	return s.repo.FindByName(ctx, name)
}

func (s *RoleService) List(ctx context.Context) ([]domain.Role, error) {
	return s.repo.FindAll(ctx)
}

func (s *RoleService) Create(ctx context.Context, name string, permissions []string) (*domain.Role, error) {
	if name == "" {
		return nil, domain.ErrInvalidRole
	}
	if permissions == nil {
		permissions = []string{}
	}
	role := domain.Role{Name: name, Permissions: permissions}
	if err := s.repo.Insert(ctx, role); err != nil {
		return nil, err
	}
	return &role, nil
}

func (s *RoleService) UpdatePermissions(ctx context.Context, name string, permissions []string) error {
	if permissions == nil {
		permissions = []string{}
	}
	matched, err := s.repo.UpdatePermissions(ctx, name, permissions)
	if err != nil {
		return err
	}
	if matched == 0 {
		return domain.ErrRoleNotFound
	}
	return nil
}
