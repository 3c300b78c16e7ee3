package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/labsuite/user-access-api/internal/core/domain"
)

// storeErr wraps a driver error, collapsing timeouts and connectivity
// failures into domain.ErrUnavailable so the API boundary can answer 503
// without leaking driver detail.
func storeErr(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) ||
		mongo.IsTimeout(err) ||
		mongo.IsNetworkError(err) {
		return fmt.Errorf("%s: %w", op, domain.ErrUnavailable)
	}
	return fmt.Errorf("%s: %w", op, err)
}
