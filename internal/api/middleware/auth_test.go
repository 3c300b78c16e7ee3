package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/labsuite/user-access-api/internal/core/domain"
	"github.com/labsuite/user-access-api/internal/core/service"
)

type stubBootstrap struct {
	empty bool
	err   error
}

func (s *stubBootstrap) Bootstrapping(context.Context) (bool, error) { return s.empty, s.err }
func (s *stubBootstrap) MarkOccupied()                               {}

func runAuth(t *testing.T, tokens *service.TokenService, bootstrap *stubBootstrap, header string) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	mw := Auth(tokens, bootstrap, zerolog.Nop())
	err := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })(c)
	return c, err
}

func TestAuth_ValidToken(t *testing.T) {
	tokens := service.NewTokenService("secret", time.Hour, nil)
	token, err := tokens.Issue("u1", domain.RoleAdmin, []string{domain.PermViewUsers}, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	c, err := runAuth(t, tokens, &stubBootstrap{}, "Bearer "+token)
	if err != nil {
		t.Fatalf("auth rejected valid token: %v", err)
	}
	claim, ok := c.Get(ContextClaim).(*domain.Claim)
	if !ok {
		t.Fatalf("claim not injected into context")
	}
	if claim.SubjectID != "u1" || claim.RoleName != domain.RoleAdmin {
		t.Fatalf("unexpected claim: %+v", claim)
	}
}

func TestAuth_MissingToken(t *testing.T) {
	tokens := service.NewTokenService("secret", time.Hour, nil)
	if _, err := runAuth(t, tokens, &stubBootstrap{}, ""); !errors.Is(err, domain.ErrTokenMissing) {
		t.Fatalf("expected ErrTokenMissing, got %v", err)
	}
}

func TestAuth_MalformedHeader(t *testing.T) {
	tokens := service.NewTokenService("secret", time.Hour, nil)
	for _, header := range []string{"tok123", "Basic tok123"} {
		if _, err := runAuth(t, tokens, &stubBootstrap{}, header); !errors.Is(err, domain.ErrTokenInvalid) {
			t.Fatalf("header %q: expected ErrTokenInvalid, got %v", header, err)
		}
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	past := time.Now().Add(-2 * time.Hour)
	issuer := service.NewTokenService("secret", time.Hour, func() time.Time { return past })
	token, err := issuer.Issue("u1", domain.RoleAdmin, nil, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	verifier := service.NewTokenService("secret", time.Hour, nil)
	if _, err := runAuth(t, verifier, &stubBootstrap{}, "Bearer "+token); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestAuth_TamperedToken(t *testing.T) {
	tokens := service.NewTokenService("secret", time.Hour, nil)
	token, err := service.NewTokenService("other-secret", time.Hour, nil).
		Issue("u1", domain.RoleAdmin, nil, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := runAuth(t, tokens, &stubBootstrap{}, "Bearer "+token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestAuth_BootstrapBypassesToken(t *testing.T) {
	tokens := service.NewTokenService("secret", time.Hour, nil)
	c, err := runAuth(t, tokens, &stubBootstrap{empty: true}, "")
	if err != nil {
		t.Fatalf("bootstrap request rejected: %v", err)
	}
	if b, _ := c.Get(ContextBootstrap).(bool); !b {
		t.Fatalf("bootstrap marker not set")
	}
}

func TestAuth_BootstrapCheckFailureFailsClosed(t *testing.T) {
	tokens := service.NewTokenService("secret", time.Hour, nil)
	bootstrap := &stubBootstrap{empty: false, err: errors.New("store down")}

	// The store error must not grant the bootstrap bypass; the request
	// still needs a token.
	if _, err := runAuth(t, tokens, bootstrap, ""); !errors.Is(err, domain.ErrTokenMissing) {
		t.Fatalf("expected ErrTokenMissing, got %v", err)
	}
}
