package ports

import "github.com/labsuite/user-access-api/internal/core/domain"

// AuditRecorder accepts action-log entries for asynchronous persistence.
// Record must not block the calling request beyond queueing.
type AuditRecorder interface {
	Record(actorID string, entry domain.ActionEntry)
}
