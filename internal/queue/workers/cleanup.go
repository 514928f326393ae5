package workers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/akshat231/Chatbot-GPT-Backend/internal/account"
)

// CleanupWorker removes pending signups older than the retention window.
type CleanupWorker struct {
	accounts  *account.Service
	retention time.Duration
}

func NewCleanupWorker(accounts *account.Service, retention time.Duration) *CleanupWorker {
	return &CleanupWorker{
		accounts:  accounts,
		retention: retention,
	}
}

func (w *CleanupWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	deleted, err := w.accounts.CleanupPending(ctx, w.retention)
	if err != nil {
		return fmt.Errorf("cleanup pending signups: %w", err)
	}

	slog.Info("pending signups swept", "deleted", deleted, "retention", w.retention)
	return nil
}
