package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/labsuite/user-access-api/internal/core/domain"
	"github.com/labsuite/user-access-api/internal/core/ports"
)

// bcryptCost matches the cost used by all existing password hashes.
const bcryptCost = 10

// UserService is the account lifecycle manager. All permission policy that
// depends on record state (first-user rule, role-scoped deletes, self edits)
// lives here; the HTTP middleware only enforces the static per-route checks.
type UserService struct {
	users     ports.UserRepository
	roles     ports.RoleRepository
	tokens    ports.TokenService
	bootstrap ports.BootstrapChecker
	audit     ports.AuditRecorder
	tokenTTL  time.Duration
	now       func() time.Time
}

// NewUserService wires the lifecycle manager. bootstrap and audit may be nil
// (tests, or deployments without the async audit trail).
func NewUserService(
	users ports.UserRepository,
	roles ports.RoleRepository,
	tokens ports.TokenService,
	bootstrap ports.BootstrapChecker,
	audit ports.AuditRecorder,
	tokenTTL time.Duration,
) *UserService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &UserService{
		users:     users,
		roles:     roles,
		tokens:    tokens,
		bootstrap: bootstrap,
		audit:     audit,
		tokenTTL:  tokenTTL,
		now:       time.Now,
	}
}

// Register creates an account. In bootstrap mode the very first account must
// be the super admin and no permission check applies; afterwards the caller
// needs crear_usuarios.
func (s *UserService) Register(ctx context.Context, actor domain.Actor, in ports.RegisterInput) (*domain.User, error) {
	if in.Email == "" || in.Password == "" || in.RoleName == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if actor.Bootstrap {
		if in.RoleName != domain.RoleSuperAdmin {
			return nil, domain.ErrFirstUserMustBeSuperAdmin
		}
	} else if err := actor.Authorize(domain.PermCreateUsers); err != nil {
		return nil, err
	}

	role, err := s.roles.FindByName(ctx, in.RoleName)
	if err != nil {
		if errors.Is(err, domain.ErrRoleNotFound) {
			return nil, domain.ErrInvalidRole
		}
		return nil, err
	}

	if in.RoleName == domain.RoleSuperAdmin {
		exists, err := s.users.SuperAdminExists(ctx, "")
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrSuperAdminExists
		}
	}

	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Document:     in.Document,
		Phone:        in.Phone,
		Address:      in.Address,
		Active:       true,
		CreatedAt:    s.now().UTC(),
		Role:         domain.RoleRef{Name: role.Name, Permissions: role.Permissions},
		Profile:      domain.NewProfile(role.Name, in.Profile),
	}

	created, err := s.users.Insert(ctx, user)
	if err != nil {
		return nil, err
	}

	if s.bootstrap != nil {
		s.bootstrap.MarkOccupied()
	}
	s.recordAudit(actor, fmt.Sprintf("registered user %s (%s)", created.ID, created.Role.Name))

	return created, nil
}

// Login authenticates credentials and issues a token carrying the user's
// current role and permission snapshot. An unknown email, a wrong password,
// and a deactivated account all fail identically.
func (s *UserService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	if !user.Active {
		return "", nil, domain.ErrInvalidCredentials
	}

	// Re-resolve the catalog so a fresh login picks up permission changes
	// made since the embedded snapshot was taken.
	permissions := user.Role.Permissions
	if role, err := s.roles.FindByName(ctx, user.Role.Name); err == nil {
		permissions = role.Permissions
	} else if !errors.Is(err, domain.ErrRoleNotFound) {
		return "", nil, err
	}

	token, err := s.tokens.Issue(user.ID, user.Role.Name, permissions, s.tokenTTL)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

// GetByID returns a single user. Callers without ver_usuarios may only read
// their own record.
func (s *UserService) GetByID(ctx context.Context, actor domain.Actor, id string) (*domain.User, error) {
	if err := actor.Authorize(domain.PermViewUsers); err != nil {
		if !actor.IsSelf(id) {
			return nil, err
		}
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// Update mutates an account. Callers without editar_usuarios may edit their
// own record (perfil_propio), but only the holder of editar_usuarios may
// change roles or the active flag.
func (s *UserService) Update(ctx context.Context, actor domain.Actor, id string, in ports.UpdateInput) (*domain.User, error) {
	selfEdit := false
	if err := actor.Authorize(domain.PermEditUsers); err != nil {
		if !actor.IsSelf(id) || actor.Authorize(domain.PermOwnProfile) != nil {
			return nil, err
		}
		selfEdit = true
	}
	if selfEdit && (in.RoleName != nil || in.Active != nil) {
		return nil, domain.ErrInsufficientPermissions
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.RoleName != nil && *in.RoleName != user.Role.Name {
		role, err := s.roles.FindByName(ctx, *in.RoleName)
		if err != nil {
			if errors.Is(err, domain.ErrRoleNotFound) {
				return nil, domain.ErrInvalidRole
			}
			return nil, err
		}
		if role.Name == domain.RoleSuperAdmin {
			exists, err := s.users.SuperAdminExists(ctx, user.ID)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, domain.ErrSuperAdminExists
			}
		}
		user.Role = domain.RoleRef{Name: role.Name, Permissions: role.Permissions}
		// The profile variant must match the role; rebuild it for the
		// new role before any patch is applied.
		user.Profile = domain.NewProfile(role.Name, domain.ProfilePatch{})
	}

	if in.Profile != nil {
		user.Profile.Merge(user.Role.Name, *in.Profile)
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Document != nil {
		user.Document = *in.Document
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.Address != nil {
		user.Address = *in.Address
	}
	if in.Active != nil {
		user.Active = *in.Active
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.recordAudit(actor, fmt.Sprintf("updated user %s", user.ID))

	updated := *user
	updated.PasswordHash = ""
	return &updated, nil
}

// Delete removes an account. The blanket eliminar_usuarios deletes anyone;
// otherwise the caller needs the permission scoped to the target's role.
func (s *UserService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if actor.Authorize(domain.PermDeleteUsers) != nil {
		scoped, ok := domain.ScopedDeletePermission(user.Role.Name)
		if !ok || actor.Authorize(scoped) != nil {
			return domain.ErrForbidden
		}
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	s.recordAudit(actor, fmt.Sprintf("deleted user %s (%s)", user.ID, user.Role.Name))
	return nil
}

// RecordAction appends to the calling super admin's own action log.
func (s *UserService) RecordAction(ctx context.Context, actor domain.Actor, action string) error {
	if !actor.IsSuperAdmin() {
		return domain.ErrForbidden
	}
	entry := domain.ActionEntry{Action: action, At: s.now().UTC()}
	return s.users.AppendAction(ctx, actor.Claim.SubjectID, entry)
}

// recordAudit enqueues an async audit entry when the acting caller is the
// super admin. Bootstrap registrations have no actor to attribute.
func (s *UserService) recordAudit(actor domain.Actor, action string) {
	if s.audit == nil || !actor.IsSuperAdmin() {
		return
	}
	s.audit.Record(actor.Claim.SubjectID, domain.ActionEntry{Action: action, At: s.now().UTC()})
}
