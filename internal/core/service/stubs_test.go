package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/labsuite/user-access-api/internal/core/domain"
)

// stubUserRepo is an in-memory ports.UserRepository. It mirrors the store's
// uniqueness behaviour: duplicate emails and a second super admin are
// rejected the way the real indexes would reject them.
type stubUserRepo struct {
	mu     sync.Mutex
	seq    int
	users  map[string]*domain.User
	countE error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.countE != nil {
		return 0, r.countE
	}
	return int64(len(r.users)), nil
}

func (r *stubUserRepo) Insert(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
		if user.Role.Name == domain.RoleSuperAdmin && u.Role.Name == domain.RoleSuperAdmin {
			return nil, domain.ErrSuperAdminExists
		}
	}
	r.seq++
	created := cloneUser(user)
	created.ID = fmt.Sprintf("user_%d", r.seq)
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	if user.Role.Name == domain.RoleSuperAdmin {
		for id, u := range r.users {
			if id != user.ID && u.Role.Name == domain.RoleSuperAdmin {
				return domain.ErrSuperAdminExists
			}
		}
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) SuperAdminExists(_ context.Context, excludeID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, u := range r.users {
		if id != excludeID && u.Role.Name == domain.RoleSuperAdmin {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) AppendAction(_ context.Context, userID string, entry domain.ActionEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok || u.Role.Name != domain.RoleSuperAdmin || u.Profile.SuperAdmin == nil {
		return domain.ErrUserNotFound
	}
	u.Profile.SuperAdmin.ActionLog = append(u.Profile.SuperAdmin.ActionLog, entry)
	return nil
}

// stubRoleRepo is an in-memory ports.RoleRepository preserving insert order.
type stubRoleRepo struct {
	mu    sync.Mutex
	names []string
	roles map[string]domain.Role
}

func newStubRoleRepo() *stubRoleRepo {
	return &stubRoleRepo{roles: make(map[string]domain.Role)}
}

func (r *stubRoleRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.roles)), nil
}

func (r *stubRoleRepo) InsertMany(_ context.Context, roles []domain.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, role := range roles {
		if _, ok := r.roles[role.Name]; ok {
			return domain.ErrDuplicateRole
		}
		r.roles[role.Name] = role
		r.names = append(r.names, role.Name)
	}
	return nil
}

func (r *stubRoleRepo) Insert(_ context.Context, role domain.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.roles[role.Name]; ok {
		return domain.ErrDuplicateRole
	}
	r.roles[role.Name] = role
	r.names = append(r.names, role.Name)
	return nil
}

func (r *stubRoleRepo) FindByName(_ context.Context, name string) (*domain.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	role, ok := r.roles[name]
	if !ok {
		return nil, domain.ErrRoleNotFound
	}
	return &role, nil
}

func (r *stubRoleRepo) FindAll(_ context.Context) ([]domain.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Role, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, r.roles[name])
	}
	return out, nil
}

func (r *stubRoleRepo) UpdatePermissions(_ context.Context, name string, permissions []string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	role, ok := r.roles[name]
	if !ok {
		return 0, nil
	}
	role.Permissions = permissions
	r.roles[name] = role
	return 1, nil
}

// stubAudit records entries synchronously for assertions.
type stubAudit struct {
	mu      sync.Mutex
	entries []domain.ActionEntry
	actors  []string
}

func (a *stubAudit) Record(actorID string, entry domain.ActionEntry) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.actors = append(a.actors, actorID)
	a.entries = append(a.entries, entry)
}
