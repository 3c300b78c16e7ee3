package ports

import (
	"context"

	"github.com/labsuite/user-access-api/internal/core/domain"
)

// UserRepository defines the persistence contract for user records. The
// credential store owns these records exclusively; no other component writes
// them directly.
type UserRepository interface {
	Count(ctx context.Context) (int64, error)
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
	// SuperAdminExists reports whether a super-admin record exists,
	// optionally excluding one user ID (used when reassigning that user's
	// own role).
	SuperAdminExists(ctx context.Context, excludeID string) (bool, error)
	// AppendAction appends an entry to the action log of the given
	// super-admin user. It is a no-op match failure for any other role.
	AppendAction(ctx context.Context, userID string, entry domain.ActionEntry) error
}
