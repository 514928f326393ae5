package account

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/akshat231/Chatbot-GPT-Backend/internal/models"
)

// Store persists verified users and the pending-signup rows the OTP
// lifecycle runs on. Lookups return (nil, nil) when no row matches so the
// service can distinguish "absent" from storage failure.
type Store interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	CreateUser(ctx context.Context, email, passwordHash, username string) error
	UserByCredentials(ctx context.Context, email, passwordHash string) (*models.User, error)

	UpsertPending(ctx context.Context, p models.PendingSignup) (uuid.UUID, error)
	Pending(ctx context.Context, email string) (*models.PendingSignup, error)
	PendingByOTP(ctx context.Context, email, otpHash string, now time.Time) (*models.PendingSignup, error)
	ResetPendingOTP(ctx context.Context, email, otpHash string, expiresAt, sentAt time.Time) error
	UpdateAttempts(ctx context.Context, email string, attempts int) error
	DeletePending(ctx context.Context, email string) error
	DeletePendingBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
