package ports

import (
	"context"

	"github.com/labsuite/user-access-api/internal/core/domain"
)

// RegisterInput carries the fields accepted when creating an account.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Document string
	Phone    string
	Address  string
	RoleName string
	Profile  domain.ProfilePatch
}

// UpdateInput carries the fields accepted when updating an account. Nil
// fields are left untouched.
type UpdateInput struct {
	Password *string
	Name     *string
	Document *string
	Phone    *string
	Address  *string
	Active   *bool
	RoleName *string
	Profile  *domain.ProfilePatch
}

// UserService is the account lifecycle manager.
type UserService interface {
	Register(ctx context.Context, actor domain.Actor, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, actor domain.Actor, id string) (*domain.User, error)
	Update(ctx context.Context, actor domain.Actor, id string, in UpdateInput) (*domain.User, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error
	// RecordAction appends to the calling super admin's own action log.
	RecordAction(ctx context.Context, actor domain.Actor, action string) error
}
