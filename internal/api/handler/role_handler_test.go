package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/labsuite/user-access-api/internal/core/domain"
)

type stubRoleService struct {
	roles       []domain.Role
	createdName string
	updatedName string
	updatedSet  []string
	err         error
}

func (s *stubRoleService) Initialize(context.Context) error { return nil }

func (s *stubRoleService) Get(_ context.Context, name string) (*domain.Role, error) {
	for i := range s.roles {
		if s.roles[i].Name == name {
			return &s.roles[i], nil
		}
	}
	return nil, domain.ErrRoleNotFound
}

func (s *stubRoleService) List(context.Context) ([]domain.Role, error) {
	return s.roles, s.err
}

func (s *stubRoleService) Create(_ context.Context, name string, permissions []string) (*domain.Role, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.createdName = name
	return &domain.Role{Name: name, Permissions: permissions}, nil
}

func (s *stubRoleService) UpdatePermissions(_ context.Context, name string, permissions []string) error {
	s.updatedName = name
	s.updatedSet = permissions
	return s.err
}

func TestRoleHandler_ListEmptyCatalogRendersArray(t *testing.T) {
	h := NewRoleHandler(&stubRoleService{})

	c, rec := newJSONContext(http.MethodGet, "/roles", "")
	if err := h.List(c); err != nil {
		t.Fatalf("list: %v", err)
	}
	// Clients get [] rather than null.
	if body := rec.Body.String(); body != "[]\n" {
		t.Fatalf("body = %q, want empty array", body)
	}
}

func TestRoleHandler_Create(t *testing.T) {
	svc := &stubRoleService{}
	h := NewRoleHandler(svc)

	c, rec := newJSONContext(http.MethodPost, "/roles",
		`{"name":"auditor_externo","permissions":["ver_usuarios"]}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if svc.createdName != "auditor_externo" {
		t.Fatalf("name not forwarded: %q", svc.createdName)
	}

	var role domain.Role
	if err := json.Unmarshal(rec.Body.Bytes(), &role); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(role.Permissions) != 1 || role.Permissions[0] != domain.PermViewUsers {
		t.Fatalf("unexpected role: %+v", role)
	}
}

func TestRoleHandler_CreateValidation(t *testing.T) {
	h := NewRoleHandler(&stubRoleService{})

	c, _ := newJSONContext(http.MethodPost, "/roles", `{"name":"auditor_externo"}`)
	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing permissions, got %v", err)
	}
}

func TestRoleHandler_UpdatePermissions(t *testing.T) {
	svc := &stubRoleService{}
	h := NewRoleHandler(svc)

	c, rec := newJSONContext(http.MethodPut, "/roles/cliente",
		`{"permissions":["perfil_propio","ver_resultados"]}`)
	c.SetParamNames("name")
	c.SetParamValues("cliente")

	if err := h.UpdatePermissions(c); err != nil {
		t.Fatalf("update: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if svc.updatedName != domain.RoleClient || len(svc.updatedSet) != 2 {
		t.Fatalf("update not forwarded: %q %v", svc.updatedName, svc.updatedSet)
	}
}

func TestRoleHandler_UpdateMissingRole(t *testing.T) {
	h := NewRoleHandler(&stubRoleService{err: domain.ErrRoleNotFound})

	c, _ := newJSONContext(http.MethodPut, "/roles/no_such_role",
		`{"permissions":["ver_usuarios"]}`)
	c.SetParamNames("name")
	c.SetParamValues("no_such_role")

	if err := h.UpdatePermissions(c); err != domain.ErrRoleNotFound {
		t.Fatalf("expected ErrRoleNotFound, got %v", err)
	}
}
