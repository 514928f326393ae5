package account

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/akshat231/Chatbot-GPT-Backend/internal/auth"
	"github.com/akshat231/Chatbot-GPT-Backend/internal/mail"
	"github.com/akshat231/Chatbot-GPT-Backend/internal/models"
	"github.com/akshat231/Chatbot-GPT-Backend/internal/otpdigest"
)

var (
	ErrEmailTaken      = errors.New("email is already registered")
	ErrNotFound        = errors.New("user not found")
	ErrInvalidOTP      = errors.New("otp attempt failed")
	ErrTooManyAttempts = errors.New("too many attempts")
	ErrRateLimited     = errors.New("otp regeneration rate limited")
)

const (
	otpTTL         = 10 * time.Minute
	resendCooldown = 60 * time.Second
	maxAttempts    = 6

	mailSubject = "Verify your email"
)

// Service drives the pending-signup lifecycle:
// None -> Pending(attempt=0) -> Pending(attempt=n, n<6) ->
// {Verified(deleted) | Expired/Exhausted(deleted)}.
type Service struct {
	store  Store
	digest *otpdigest.Digest
	mailer mail.Sender
	issuer *auth.Issuer

	now func() time.Time
	otp func() (string, error)
}

func NewService(store Store, digest *otpdigest.Digest, mailer mail.Sender, issuer *auth.Issuer) *Service {
	return &Service{
		store:  store,
		digest: digest,
		mailer: mailer,
		issuer: issuer,
		now:    time.Now,
		otp:    generateOTP,
	}
}

type Session struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

// Signup stages a pending signup and sends a verification code. The returned
// token carries a provisional identity so verify/regenerate can be called
// before the user exists.
func (s *Service) Signup(ctx context.Context, email, password, username string) (*Session, error) {
	exists, err := s.store.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	code, err := s.otp()
	if err != nil {
		return nil, fmt.Errorf("generate otp: %w", err)
	}

	otpHash, err := s.digest.Sum(code)
	if err != nil {
		return nil, fmt.Errorf("digest otp: %w", err)
	}
	passwordHash, err := s.digest.Sum(password)
	if err != nil {
		return nil, fmt.Errorf("digest password: %w", err)
	}

	now := s.now()
	id, err := s.store.UpsertPending(ctx, models.PendingSignup{
		Email:        email,
		OTPHash:      otpHash,
		PasswordHash: passwordHash,
		Username:     username,
		ExpiresAt:    now.Add(otpTTL),
		CreatedAt:    now,
		LastSentAt:   now,
	})
	if err != nil {
		return nil, err
	}

	if err := s.mailer.Send(ctx, email, mailSubject, verificationBody(code)); err != nil {
		return nil, fmt.Errorf("send verification mail: %w", err)
	}

	token, err := s.issuer.Issue(id, email, username)
	if err != nil {
		return nil, err
	}

	slog.Info("pending signup created", "email", email)
	return &Session{Email: email, Username: username, Token: token}, nil
}

// VerifyOTP compares the digest of the submitted code against the stored
// hash and the expiry. A match promotes the pending signup to a user row and
// deletes the pending row; the two are never present at the same time.
func (s *Service) VerifyOTP(ctx context.Context, email, otp string) error {
	otpHash, err := s.digest.Sum(otp)
	if err != nil {
		return fmt.Errorf("digest otp: %w", err)
	}

	pending, err := s.store.PendingByOTP(ctx, email, otpHash, s.now())
	if err != nil {
		return err
	}
	if pending != nil {
		if err := s.store.CreateUser(ctx, pending.Email, pending.PasswordHash, pending.Username); err != nil {
			return err
		}
		if err := s.store.DeletePending(ctx, email); err != nil {
			return err
		}
		slog.Info("user verified", "email", email)
		return nil
	}

	pending, err = s.store.Pending(ctx, email)
	if err != nil {
		return err
	}
	if pending == nil {
		return ErrNotFound
	}

	attempts := pending.Attempts + 1
	if attempts >= maxAttempts {
		if err := s.store.DeletePending(ctx, email); err != nil {
			return err
		}
		slog.Info("pending signup exhausted", "email", email, "attempts", attempts)
		return ErrTooManyAttempts
	}

	if err := s.store.UpdateAttempts(ctx, email, attempts); err != nil {
		return err
	}
	return ErrInvalidOTP
}

func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	passwordHash, err := s.digest.Sum(password)
	if err != nil {
		return nil, fmt.Errorf("digest password: %w", err)
	}

	user, err := s.store.UserByCredentials(ctx, email, passwordHash)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	token, err := s.issuer.Issue(user.ID, user.Email, user.Username)
	if err != nil {
		return nil, err
	}
	return &Session{Email: user.Email, Username: user.Username, Token: token}, nil
}

// RegenerateOTP issues a fresh code for an existing pending signup, resetting
// the attempt counter and expiry. Calls within the cooldown window fail
// without touching the stored hash or expiry.
func (s *Service) RegenerateOTP(ctx context.Context, email string) error {
	pending, err := s.store.Pending(ctx, email)
	if err != nil {
		return err
	}
	if pending == nil {
		return ErrNotFound
	}

	now := s.now()
	if now.Sub(pending.LastSentAt) < resendCooldown {
		return ErrRateLimited
	}

	code, err := s.otp()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}
	otpHash, err := s.digest.Sum(code)
	if err != nil {
		return fmt.Errorf("digest otp: %w", err)
	}

	if err := s.store.ResetPendingOTP(ctx, email, otpHash, now.Add(otpTTL), now); err != nil {
		return err
	}

	if err := s.mailer.Send(ctx, email, mailSubject, verificationBody(code)); err != nil {
		return fmt.Errorf("send verification mail: %w", err)
	}

	slog.Info("otp regenerated", "email", email)
	return nil
}

// CleanupPending deletes pending signups created before the retention window.
// Run by the background sweep; relies on row-level DB semantics for any
// overlap with in-flight verifications.
func (s *Service) CleanupPending(ctx context.Context, retention time.Duration) (int64, error) {
	return s.store.DeletePendingBefore(ctx, s.now().Add(-retention))
}

// generateOTP returns a 6-digit numeric code.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+100000), nil
}

func verificationBody(code string) string {
	return fmt.Sprintf("Your verification code is: %s (valid for 10 minutes)", code)
}
