package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/akshat231/Chatbot-GPT-Backend/internal/models"
)

type PgStore struct {
	db *pgxpool.Pool
}

func NewPgStore(db *pgxpool.Pool) *PgStore {
	return &PgStore{db: db}
}

func (s *PgStore) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)", email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return exists, nil
}

func (s *PgStore) CreateUser(ctx context.Context, email, passwordHash, username string) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, username, created_at)
		 VALUES ($1, $2, $3, $4, now())`,
		uuid.New(), email, passwordHash, username,
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *PgStore) UserByCredentials(ctx context.Context, email, passwordHash string) (*models.User, error) {
	var u models.User
	err := s.db.QueryRow(ctx,
		`SELECT id, email, username, created_at FROM users
		 WHERE email = $1 AND password_hash = $2`,
		email, passwordHash,
	).Scan(&u.ID, &u.Email, &u.Username, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by credentials: %w", err)
	}
	return &u, nil
}

func (s *PgStore) UpsertPending(ctx context.Context, p models.PendingSignup) (uuid.UUID, error) {
	var id uuid.UUID
	err := s.db.QueryRow(ctx,
		`INSERT INTO email_verifications
		   (id, email, otp_hash, password_hash, username, expires_at, created_at, last_sent_at, attempt)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0)
		 ON CONFLICT (email) DO UPDATE SET
		   otp_hash = EXCLUDED.otp_hash,
		   password_hash = EXCLUDED.password_hash,
		   username = EXCLUDED.username,
		   expires_at = EXCLUDED.expires_at,
		   created_at = EXCLUDED.created_at,
		   last_sent_at = EXCLUDED.last_sent_at,
		   attempt = 0
		 RETURNING id`,
		uuid.New(), p.Email, p.OTPHash, p.PasswordHash, p.Username, p.ExpiresAt, p.CreatedAt, p.LastSentAt,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("upsert pending signup: %w", err)
	}
	return id, nil
}

func (s *PgStore) Pending(ctx context.Context, email string) (*models.PendingSignup, error) {
	var p models.PendingSignup
	err := s.db.QueryRow(ctx,
		`SELECT id, email, otp_hash, password_hash, username, expires_at, created_at, last_sent_at, attempt
		 FROM email_verifications WHERE email = $1`,
		email,
	).Scan(&p.ID, &p.Email, &p.OTPHash, &p.PasswordHash, &p.Username, &p.ExpiresAt, &p.CreatedAt, &p.LastSentAt, &p.Attempts)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get pending signup: %w", err)
	}
	return &p, nil
}

func (s *PgStore) PendingByOTP(ctx context.Context, email, otpHash string, now time.Time) (*models.PendingSignup, error) {
	var p models.PendingSignup
	err := s.db.QueryRow(ctx,
		`SELECT id, email, otp_hash, password_hash, username, expires_at, created_at, last_sent_at, attempt
		 FROM email_verifications
		 WHERE email = $1 AND otp_hash = $2 AND expires_at >= $3`,
		email, otpHash, now,
	).Scan(&p.ID, &p.Email, &p.OTPHash, &p.PasswordHash, &p.Username, &p.ExpiresAt, &p.CreatedAt, &p.LastSentAt, &p.Attempts)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("match pending signup: %w", err)
	}
	return &p, nil
}

func (s *PgStore) ResetPendingOTP(ctx context.Context, email, otpHash string, expiresAt, sentAt time.Time) error {
	_, err := s.db.Exec(ctx,
		`UPDATE email_verifications
		 SET otp_hash = $2, expires_at = $3, created_at = $4, last_sent_at = $4, attempt = 0
		 WHERE email = $1`,
		email, otpHash, expiresAt, sentAt,
	)
	if err != nil {
		return fmt.Errorf("reset pending otp: %w", err)
	}
	return nil
}

func (s *PgStore) UpdateAttempts(ctx context.Context, email string, attempts int) error {
	_, err := s.db.Exec(ctx,
		"UPDATE email_verifications SET attempt = $2 WHERE email = $1",
		email, attempts,
	)
	if err != nil {
		return fmt.Errorf("update attempts: %w", err)
	}
	return nil
}

func (s *PgStore) DeletePending(ctx context.Context, email string) error {
	_, err := s.db.Exec(ctx, "DELETE FROM email_verifications WHERE email = $1", email)
	if err != nil {
		return fmt.Errorf("delete pending signup: %w", err)
	}
	return nil
}

func (s *PgStore) DeletePendingBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := s.db.Exec(ctx, "DELETE FROM email_verifications WHERE created_at <= $1", cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete stale pending signups: %w", err)
	}
	return tag.RowsAffected(), nil
}
