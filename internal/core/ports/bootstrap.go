package ports

import "context"

// BootstrapChecker reports whether the system is still in bootstrap mode,
// i.e. no account exists yet. Implementations may cache the answer briefly,
// but must never report an occupied store before the first user actually
// exists.
type BootstrapChecker interface {
	Bootstrapping(ctx context.Context) (bool, error)
	// MarkOccupied records that at least one user now exists, closing the
	// staleness window immediately after the first registration.
	MarkOccupied()
}
