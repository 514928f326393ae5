package queue

import "github.com/hibiken/asynq"

const (
	TypeVerificationCleanup = "verification:cleanup"
)

// NewVerificationCleanupTask sweeps stale pending signups. It carries no
// payload; the worker owns the retention window.
func NewVerificationCleanupTask() *asynq.Task {
	return asynq.NewTask(TypeVerificationCleanup, nil)
}
