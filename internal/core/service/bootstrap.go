package service

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/labsuite/user-access-api/internal/core/ports"
)

const defaultBootstrapTTL = 60 * time.Second

// bootstrapSnapshot is the cached answer plus the time it was taken.
// Replaced atomically as a whole; readers never see a torn pair.
type bootstrapSnapshot struct {
	empty     bool
	checkedAt time.Time
}

// BootstrapChecker caches the "does any user exist yet" answer so the
// authentication gate does not hit the store on every request.
//
// Once a non-empty store has been observed the result is sticky: the checker
// never reports bootstrap mode again without a fresh count saying otherwise,
// and a positive MarkOccupied closes the window immediately. An empty answer
// is re-checked after the refresh interval, so bootstrap mode may outlive the
// first registration by at most that interval.
type BootstrapChecker struct {
	users ports.UserRepository
	ttl   time.Duration
	now   func() time.Time
	snap  atomic.Pointer[bootstrapSnapshot]
}

// NewBootstrapChecker creates a checker with the given refresh interval.
// Non-positive ttl falls back to 60s; nil now selects time.Now.
func NewBootstrapChecker(users ports.UserRepository, ttl time.Duration, now func() time.Time) *BootstrapChecker {
	if ttl <= 0 {
		ttl = defaultBootstrapTTL
	}
	if now == nil {
		now = time.Now
	}
	return &BootstrapChecker{users: users, ttl: ttl, now: now}
}

// Bootstrapping reports whether no account exists yet.
func (b *BootstrapChecker) Bootstrapping(ctx context.Context) (bool, error) {
	if s := b.snap.Load(); s != nil {
		if !s.empty {
			return false, nil
		}
		if b.now().Sub(s.checkedAt) < b.ttl {
			return true, nil
		}
	}

	count, err := b.users.Count(ctx)
	if err != nil {
		return false, err
	}
	s := &bootstrapSnapshot{empty: count == 0, checkedAt: b.now()}
	b.snap.Store(s)
	return s.empty, nil
}

// MarkOccupied records that at least one user now exists.
func (b *BootstrapChecker) MarkOccupied() {
	b.snap.Store(&bootstrapSnapshot{empty: false, checkedAt: b.now()})
}
