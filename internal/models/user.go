package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// PendingSignup is a signup awaiting OTP verification. A pending row and a
// users row for the same email never coexist: the former is deleted exactly
// when the latter is created.
type PendingSignup struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	OTPHash      string    `json:"-" db:"otp_hash"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Username     string    `json:"username" db:"username"`
	ExpiresAt    time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	LastSentAt   time.Time `json:"last_sent_at" db:"last_sent_at"`
	Attempts     int       `json:"attempts" db:"attempt"`
}
