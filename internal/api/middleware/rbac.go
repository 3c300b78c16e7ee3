package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/labsuite/user-access-api/internal/api/metrics"
	"github.com/labsuite/user-access-api/internal/core/domain"
)

// RequirePermission is the authorization gate. Holding any one of the given
// permissions suffices; an empty requirement always passes. Bootstrap
// requests pass unconditionally, since no permission check is possible before
// any account exists.
func RequirePermission(permissions ...string) echo.MiddlewareFunc {
	denialLabel := strings.Join(permissions, ",")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if b, _ := c.Get(ContextBootstrap).(bool); b {
				return next(c)
			}

			claim, ok := c.Get(ContextClaim).(*domain.Claim)
			if !ok {
				return domain.ErrTokenMissing
			}

			actor := domain.Actor{Claim: claim}
			if err := actor.Authorize(permissions...); err != nil {
				metrics.AuthzDenialsTotal.WithLabelValues(denialLabel).Inc()
				return err
			}
			return next(c)
		}
	}
}
