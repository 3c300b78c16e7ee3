package ports

import (
	"time"

	"github.com/labsuite/user-access-api/internal/core/domain"
)

// TokenService issues and verifies signed, time-bound session tokens.
// Verification is self-contained: it never consults the credential store, so
// role or account changes are not reflected until the token expires.
type TokenService interface {
	// Issue signs a token for the subject with the given role and
	// permission snapshot. A non-positive ttl selects the service default.
	Issue(subjectID, roleName string, permissions []string, ttl time.Duration) (string, error)
	// Verify checks signature and expiry and returns the canonical claim.
	// Fails with domain.ErrTokenExpired or domain.ErrTokenInvalid.
	Verify(token string) (*domain.Claim, error)
}
