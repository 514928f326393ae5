package embedding

import (
	"context"
	"fmt"

	"github.com/akshat231/Chatbot-GPT-Backend/internal/llm"
)

// Service produces embeddings with the server-level provider key; bot
// configs only override the completion side.
type Service struct {
	provider llm.Provider
	model    string
}

func NewService(provider llm.Provider, model string) *Service {
	if model == "" {
		model = "text-embedding-3-small"
	}
	return &Service{provider: provider, model: model}
}

func (s *Service) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	// Batch in groups of 100 for API limits
	const batchSize = 100
	var all [][]float32

	for i := 0; i < len(texts); i += batchSize {
		end := min(i+batchSize, len(texts))

		vecs, err := s.provider.Embed(ctx, s.model, texts[i:end])
		if err != nil {
			return nil, fmt.Errorf("embed batch %d: %w", i/batchSize, err)
		}
		all = append(all, vecs...)
	}

	return all, nil
}

func (s *Service) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	vecs, err := s.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vecs) == 0 {
		return nil, fmt.Errorf("no embedding returned")
	}
	return vecs[0], nil
}
