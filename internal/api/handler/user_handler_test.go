package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/labsuite/user-access-api/internal/api/middleware"
	"github.com/labsuite/user-access-api/internal/core/domain"
	"github.com/labsuite/user-access-api/internal/core/ports"
)

// stubUserService records the inputs it receives and returns canned results.
type stubUserService struct {
	registerIn  ports.RegisterInput
	registerOut *domain.User
	registerErr error

	loginEmail string
	loginToken string
	loginUser  *domain.User
	loginErr   error

	deletedID string
}

func (s *stubUserService) Register(_ context.Context, _ domain.Actor, in ports.RegisterInput) (*domain.User, error) {
	s.registerIn = in
	return s.registerOut, s.registerErr
}

func (s *stubUserService) Login(_ context.Context, email, _ string) (string, *domain.User, error) {
	s.loginEmail = email
	return s.loginToken, s.loginUser, s.loginErr
}

func (s *stubUserService) List(context.Context) ([]domain.User, error) { return nil, nil }

func (s *stubUserService) GetByID(context.Context, domain.Actor, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubUserService) Update(context.Context, domain.Actor, string, ports.UpdateInput) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubUserService) Delete(_ context.Context, _ domain.Actor, id string) error {
	s.deletedID = id
	return nil
}

func (s *stubUserService) RecordAction(context.Context, domain.Actor, string) error { return nil }

func sampleUser() *domain.User {
	return &domain.User{
		ID:        "user_1",
		Email:     "c@x.com",
		Name:      "C",
		Active:    true,
		CreatedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Role:      domain.RoleRef{Name: domain.RoleClient, Permissions: []string{domain.PermOwnProfile}},
		Profile:   domain.NewProfile(domain.RoleClient, domain.ProfilePatch{}),
	}
}

func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestUserHandler_Register(t *testing.T) {
	svc := &stubUserService{registerOut: sampleUser()}
	h := NewUserHandler(svc)

	c, rec := newJSONContext(http.MethodPost, "/users/register",
		`{"email":"c@x.com","password":"pass123","name":"C","role":"cliente"}`)
	c.Set(middleware.ContextBootstrap, true)

	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if svc.registerIn.RoleName != domain.RoleClient {
		t.Fatalf("role not forwarded: %q", svc.registerIn.RoleName)
	}

	var resp userResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != "user_1" || resp.Role != domain.RoleClient {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("response leaks password material: %s", rec.Body.String())
	}
}

func TestUserHandler_RegisterValidation(t *testing.T) {
	h := NewUserHandler(&stubUserService{})

	cases := []struct {
		name string
		body string
	}{
		{"missing email", `{"password":"pass123","name":"C","role":"cliente"}`},
		{"bad email", `{"email":"nope","password":"pass123","name":"C","role":"cliente"}`},
		{"short password", `{"email":"c@x.com","password":"abc","name":"C","role":"cliente"}`},
		{"missing role", `{"email":"c@x.com","password":"pass123","name":"C"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newJSONContext(http.MethodPost, "/users/register", tc.body)
			c.Set(middleware.ContextBootstrap, true)

			err := h.Register(c)
			he, ok := err.(*echo.HTTPError)
			if !ok || he.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %v", err)
			}
		})
	}
}

func TestUserHandler_RegisterWithoutGate(t *testing.T) {
	h := NewUserHandler(&stubUserService{registerOut: sampleUser()})

	// No bootstrap marker, no claim: the request never passed Auth.
	c, _ := newJSONContext(http.MethodPost, "/users/register",
		`{"email":"c@x.com","password":"pass123","name":"C","role":"cliente"}`)
	if err := h.Register(c); err != domain.ErrTokenMissing {
		t.Fatalf("expected ErrTokenMissing, got %v", err)
	}
}

func TestUserHandler_Login(t *testing.T) {
	svc := &stubUserService{loginToken: "tok123", loginUser: sampleUser()}
	h := NewUserHandler(svc)

	c, rec := newJSONContext(http.MethodPost, "/users/login",
		`{"email":"c@x.com","password":"pass123"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token != "tok123" || resp.User.Email != "c@x.com" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestUserHandler_LoginRejected(t *testing.T) {
	h := NewUserHandler(&stubUserService{loginErr: domain.ErrInvalidCredentials})

	c, _ := newJSONContext(http.MethodPost, "/users/login",
		`{"email":"c@x.com","password":"wrong"}`)
	if err := h.Login(c); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestUserHandler_Delete(t *testing.T) {
	svc := &stubUserService{}
	h := NewUserHandler(svc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/users/user_9", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("user_9")
	c.Set(middleware.ContextClaim, &domain.Claim{
		SubjectID:   "caller_1",
		RoleName:    domain.RoleSuperAdmin,
		Permissions: []string{domain.PermDeleteUsers},
	})

	if err := h.Delete(c); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if svc.deletedID != "user_9" {
		t.Fatalf("wrong target: %q", svc.deletedID)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
