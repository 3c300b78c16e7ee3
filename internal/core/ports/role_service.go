package ports

import (
	"context"

	"github.com/labsuite/user-access-api/internal/core/domain"
)

// RoleService manages the role catalog.
type RoleService interface {
	// Initialize seeds the catalog when it is empty. Idempotent; safe to
	// call on every startup.
	Initialize(ctx context.Context) error
	Get(ctx context.Context, name string) (*domain.Role, error)
	List(ctx context.Context) ([]domain.Role, error)
	Create(ctx context.Context, name string, permissions []string) (*domain.Role, error)
	UpdatePermissions(ctx context.Context, name string, permissions []string) error
}
