package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/labsuite/user-access-api/internal/api/metrics"
	"github.com/labsuite/user-access-api/internal/core/domain"
	"github.com/labsuite/user-access-api/internal/core/ports"
)

// Context keys set by the authentication gate.
const (
	ContextClaim     = "claim"
	ContextBootstrap = "bootstrap"
)

// Auth is the authentication gate. While the store holds no users it marks
// the request as bootstrap and skips token handling entirely, so the very
// first account can be created without credentials. Otherwise it requires a
// valid bearer token and injects the verified claim into the context.
func Auth(tokens ports.TokenService, bootstrap ports.BootstrapChecker, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			empty, err := bootstrap.Bootstrapping(c.Request().Context())
			if err != nil {
				// Fail closed: an unreachable store grants no
				// bootstrap bypass; the token path below still
				// applies.
				log.Warn().Err(err).Msg("bootstrap check failed")
			}
			if empty {
				c.Set(ContextBootstrap, true)
				metrics.AuthAttemptsTotal.WithLabelValues("bootstrap").Inc()
				return next(c)
			}

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.AuthAttemptsTotal.WithLabelValues("missing_token").Inc()
				return domain.ErrTokenMissing
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.AuthAttemptsTotal.WithLabelValues("invalid").Inc()
				return domain.ErrTokenInvalid
			}

			claim, err := tokens.Verify(parts[1])
			if err != nil {
				if errors.Is(err, domain.ErrTokenExpired) {
					metrics.AuthAttemptsTotal.WithLabelValues("expired").Inc()
				} else {
					metrics.AuthAttemptsTotal.WithLabelValues("invalid").Inc()
				}
				return err
			}

			c.Set(ContextClaim, claim)
			metrics.AuthAttemptsTotal.WithLabelValues("ok").Inc()
			return next(c)
		}
	}
}
