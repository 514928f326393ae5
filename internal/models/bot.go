package models

import (
	"time"

	"github.com/google/uuid"
)

type Bot struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// BotConfig is one-to-one with Bot, created with server defaults at bot
// creation and replaceable wholesale.
type BotConfig struct {
	BotID         uuid.UUID `json:"bot_id" db:"bot_id"`
	ModelName     string    `json:"model_name" db:"model_name"`
	ModelProvider string    `json:"model_provider" db:"model_provider"`
	APIKey        string    `json:"-" db:"api_key"`
	Temperature   float64   `json:"temperature" db:"temperature"`
}

type Document struct {
	ID        uuid.UUID `json:"id" db:"id"`
	BotID     uuid.UUID `json:"bot_id" db:"bot_id"`
	Name      string    `json:"name" db:"name"`
	Source    string    `json:"source" db:"source"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type QueryLog struct {
	ID              uuid.UUID   `json:"id" db:"id"`
	BotID           uuid.UUID   `json:"bot_id" db:"bot_id"`
	Question        string      `json:"question" db:"question"`
	Answer          string      `json:"answer" db:"answer"`
	MatchedChunkIDs []uuid.UUID `json:"matched_chunk_ids" db:"matched_chunk_ids"`
	CreatedAt       time.Time   `json:"created_at" db:"created_at"`
}
