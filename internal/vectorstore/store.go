package vectorstore

import (
	"context"

	"github.com/google/uuid"
)

// Chunk is immutable once written.
type Chunk struct {
	ID         uuid.UUID
	BotID      uuid.UUID
	DocumentID uuid.UUID
	Content    string
	Embedding  []float32
}

type SearchResult struct {
	ChunkID    uuid.UUID `json:"chunk_id"`
	DocumentID uuid.UUID `json:"document_id"`
	Content    string    `json:"content"`
	Score      float64   `json:"score"`
}

type Store interface {
	// InsertBatch writes all chunks in a single transaction; a failure on any
	// chunk rolls back the whole batch.
	InsertBatch(ctx context.Context, chunks []Chunk) error
	Search(ctx context.Context, botID uuid.UUID, query []float32, topK int) ([]SearchResult, error)
}
