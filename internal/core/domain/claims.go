package domain

import "time"

// Claim is the decoded, verified payload of a bearer token. Permissions are a
// point-in-time snapshot taken at issue; role changes made afterwards are not
// visible until the caller re-authenticates.
type Claim struct {
	SubjectID   string
	RoleName    string
	Permissions []string
	IssuedAt    time.Time
	ExpiresAt   time.Time
}

// HasAny reports whether the claim holds at least one of the given
// permissions. An empty requirement is always satisfied.
func (c *Claim) HasAny(required ...string) bool {
	if len(required) == 0 {
		return true
	}
	for _, have := range c.Permissions {
		for _, want := range required {
			if have == want {
				return true
			}
		}
	}
	return false
}

// Actor identifies the caller of an operation: either a verified claim, or
// the bootstrap marker used before any account exists.
type Actor struct {
	Bootstrap bool
	Claim     *Claim
}

// Authorize decides whether the actor may perform an operation guarded by the
// given permissions. Holding any one of them suffices. Bootstrap actors are
// always allowed; no permission check is possible before accounts exist.
func (a Actor) Authorize(required ...string) error {
	if a.Bootstrap {
		return nil
	}
	if a.Claim == nil {
		return ErrTokenMissing
	}
	if !a.Claim.HasAny(required...) {
		return ErrInsufficientPermissions
	}
	return nil
}

// IsSuperAdmin reports whether the actor carries a verified super-admin claim.
func (a Actor) IsSuperAdmin() bool {
	return a.Claim != nil && a.Claim.RoleName == RoleSuperAdmin
}

// IsSelf reports whether the actor's claim identifies the given user.
func (a Actor) IsSelf(userID string) bool {
	return a.Claim != nil && a.Claim.SubjectID == userID
}
