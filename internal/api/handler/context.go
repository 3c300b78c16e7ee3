package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/labsuite/user-access-api/internal/api/middleware"
	"github.com/labsuite/user-access-api/internal/core/domain"
)

// actorFromContext reconstructs the caller identity injected by the Auth
// middleware: either the bootstrap marker or a verified claim. A request
// carrying neither never passed the gate.
func actorFromContext(c echo.Context) (domain.Actor, error) {
	if b, _ := c.Get(middleware.ContextBootstrap).(bool); b {
		return domain.Actor{Bootstrap: true}, nil
	}
	claim, ok := c.Get(middleware.ContextClaim).(*domain.Claim)
	if !ok {
		return domain.Actor{}, domain.ErrTokenMissing
	}
	return domain.Actor{Claim: claim}, nil
}
