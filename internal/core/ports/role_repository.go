package ports

import (
	"context"

	"github.com/labsuite/user-access-api/internal/core/domain"
)

// RoleRepository defines the persistence contract for the role catalog.
// Roles are never deleted.
type RoleRepository interface {
	Count(ctx context.Context) (int64, error)
	InsertMany(ctx context.Context, roles []domain.Role) error
	Insert(ctx context.Context, role domain.Role) error
	FindByName(ctx context.Context, name string) (*domain.Role, error)
	FindAll(ctx context.Context) ([]domain.Role, error)
	// UpdatePermissions replaces a role's permission set and returns the
	// number of matched documents (zero when the role does not exist).
	UpdatePermissions(ctx context.Context, name string, permissions []string) (int64, error)
}
