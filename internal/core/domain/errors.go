package domain

import "errors"

// Authentication failures (401).
var (
	ErrTokenMissing = errors.New("missing bearer token")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")

	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password. Callers must never be able to tell the two apart.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Authorization failures (403).
var (
	ErrInsufficientPermissions   = errors.New("insufficient permissions")
	ErrForbidden                 = errors.New("access forbidden")
	ErrFirstUserMustBeSuperAdmin = errors.New("first registered user must be a super admin")
)

// Validation failures (400).
var ErrInvalidRole = errors.New("invalid role")

// Not found (404).
var (
	ErrUserNotFound = errors.New("user not found")
	ErrRoleNotFound = errors.New("role not found")
)

// Conflicts (409).
var (
	ErrEmailTaken       = errors.New("email already registered")
	ErrSuperAdminExists = errors.New("a super admin already exists")
	ErrDuplicateRole    = errors.New("role already exists")
)

// ErrUnavailable signals that the backing store timed out or is unreachable.
// It surfaces as a generic 503 without internal detail.
var ErrUnavailable = errors.New("service unavailable")
