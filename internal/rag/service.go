// Package rag answers questions against a bot's indexed content.
package rag

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/akshat231/Chatbot-GPT-Backend/internal/bot"
	"github.com/akshat231/Chatbot-GPT-Backend/internal/embedding"
	"github.com/akshat231/Chatbot-GPT-Backend/internal/llm"
	"github.com/akshat231/Chatbot-GPT-Backend/internal/models"
	"github.com/akshat231/Chatbot-GPT-Backend/internal/vectorstore"
)

// ErrNoResults is returned when the vector search finds nothing for
// the question. Nothing is logged in that case.
var ErrNoResults = errors.New("no relevant result found")

const systemPrompt = `You are a helpful assistant. Answer the user's question using only the provided context. If the context does not contain the answer, say so.`

type Answer struct {
	Answer   string      `json:"answer"`
	ChunkIDs []uuid.UUID `json:"-"`
}

// ProviderFunc builds an LLM client for a bot's stored configuration.
// Swappable in tests.
type ProviderFunc func(provider, apiKey string) (llm.Provider, error)

type Service struct {
	bots      bot.Store
	embedder  *embedding.Service
	vectors   vectorstore.Store
	forConfig ProviderFunc
	topK      int
	logger    *slog.Logger
}

func NewService(bots bot.Store, embedder *embedding.Service, vectors vectorstore.Store, topK int, logger *slog.Logger) *Service {
	return &Service{
		bots:      bots,
		embedder:  embedder,
		vectors:   vectors,
		forConfig: llm.ForConfig,
		topK:      topK,
		logger:    logger,
	}
}

// Query embeds the question, retrieves the closest chunks for the bot
// and asks the bot's configured model for a grounded answer. Each
// answered question is recorded in the query log.
func (s *Service) Query(ctx context.Context, botID uuid.UUID, question string) (*Answer, error) {
	cfg, err := s.bots.Config(ctx, botID)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, bot.ErrConfigNotFound
	}

	queryVec, err := s.embedder.EmbedSingle(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}

	results, err := s.vectors.Search(ctx, botID, queryVec, s.topK)
	if err != nil {
		return nil, fmt.Errorf("search chunks: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrNoResults
	}

	provider, err := s.forConfig(cfg.ModelProvider, cfg.APIKey)
	if err != nil {
		return nil, err
	}

	answer, err := s.complete(ctx, provider, cfg, question, results)
	if err != nil {
		return nil, err
	}

	chunkIDs := make([]uuid.UUID, len(results))
	for i, r := range results {
		chunkIDs[i] = r.ChunkID
	}

	log := models.QueryLog{
		BotID:           botID,
		Question:        question,
		Answer:          answer,
		MatchedChunkIDs: chunkIDs,
	}
	if err := s.bots.InsertQueryLog(ctx, log); err != nil {
		return nil, fmt.Errorf("record query: %w", err)
	}

	s.logger.Info("query answered", "bot_id", botID, "chunks", len(results))
	return &Answer{Answer: answer, ChunkIDs: chunkIDs}, nil
}

func (s *Service) complete(ctx context.Context, provider llm.Provider, cfg *models.BotConfig, question string, results []vectorstore.SearchResult) (string, error) {
	var b strings.Builder
	b.WriteString("Context:\n")
	for i, r := range results {
		fmt.Fprintf(&b, "[%d] %s\n", i+1, r.Content)
	}
	b.WriteString("\nQuestion: ")
	b.WriteString(question)
	b.WriteString("\n\nRespond with a JSON object of the form {\"answer\": \"...\"}.")

	raw, err := provider.Complete(ctx, llm.CompletionRequest{
		Model:       cfg.ModelName,
		System:      systemPrompt,
		Prompt:      b.String(),
		Temperature: cfg.Temperature,
		ForceJSON:   true,
	})
	if err != nil {
		return "", fmt.Errorf("complete: %w", err)
	}

	var parsed struct {
		Answer string `json:"answer"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		// Some models wrap JSON in prose despite the format hint.
		return strings.TrimSpace(raw), nil
	}
	return parsed.Answer, nil
}
