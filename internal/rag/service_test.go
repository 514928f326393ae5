package rag

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akshat231/Chatbot-GPT-Backend/internal/bot"
	"github.com/akshat231/Chatbot-GPT-Backend/internal/embedding"
	"github.com/akshat231/Chatbot-GPT-Backend/internal/llm"
	"github.com/akshat231/Chatbot-GPT-Backend/internal/models"
	"github.com/akshat231/Chatbot-GPT-Backend/internal/vectorstore"
)

type fakeBotStore struct {
	config *models.BotConfig
	logs   []models.QueryLog
}

func (s *fakeBotStore) Config(ctx context.Context, botID uuid.UUID) (*models.BotConfig, error) {
	return s.config, nil
}

func (s *fakeBotStore) InsertQueryLog(ctx context.Context, log models.QueryLog) error {
	s.logs = append(s.logs, log)
	return nil
}

func (s *fakeBotStore) CreateBot(ctx context.Context, name string, userID uuid.UUID) (*models.Bot, error) {
	return nil, nil
}
func (s *fakeBotStore) UpdateBot(ctx context.Context, botID, userID uuid.UUID, name string) error {
	return nil
}
func (s *fakeBotStore) DeleteBot(ctx context.Context, botID, userID uuid.UUID) error { return nil }
func (s *fakeBotStore) Bots(ctx context.Context, userID uuid.UUID) ([]models.Bot, error) {
	return nil, nil
}
func (s *fakeBotStore) InsertConfig(ctx context.Context, cfg models.BotConfig) error  { return nil }
func (s *fakeBotStore) ReplaceConfig(ctx context.Context, cfg models.BotConfig) error { return nil }
func (s *fakeBotStore) AddDocument(ctx context.Context, botID uuid.UUID, name, source string) (uuid.UUID, error) {
	return uuid.Nil, nil
}
func (s *fakeBotStore) Document(ctx context.Context, botID, docID uuid.UUID) (*models.Document, error) {
	return nil, nil
}
func (s *fakeBotStore) Documents(ctx context.Context, botID uuid.UUID, page, limit int) ([]models.Document, error) {
	return nil, nil
}
func (s *fakeBotStore) DeleteDocument(ctx context.Context, botID, docID uuid.UUID) error { return nil }

type fakeVectorStore struct {
	results []vectorstore.SearchResult
	gotTopK int
}

func (s *fakeVectorStore) InsertBatch(ctx context.Context, chunks []vectorstore.Chunk) error {
	return nil
}

func (s *fakeVectorStore) Search(ctx context.Context, botID uuid.UUID, query []float32, topK int) ([]vectorstore.SearchResult, error) {
	s.gotTopK = topK
	return s.results, nil
}

type fakeProvider struct {
	completion string
	err        error
	gotReq     llm.CompletionRequest
}

func (p *fakeProvider) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	p.gotReq = req
	if p.err != nil {
		return "", p.err
	}
	return p.completion, nil
}

func (p *fakeProvider) Embed(ctx context.Context, model string, inputs []string) ([][]float32, error) {
	vecs := make([][]float32, len(inputs))
	for i := range inputs {
		vecs[i] = []float32{1, 2, 3}
	}
	return vecs, nil
}

func (p *fakeProvider) Name() string { return "fake" }

func testConfig(botID uuid.UUID) *models.BotConfig {
	return &models.BotConfig{
		BotID:         botID,
		ModelName:     "gpt-4o-mini",
		ModelProvider: "openai",
		APIKey:        "bot-key",
		Temperature:   0.4,
	}
}

func newTestService(bots *fakeBotStore, vectors *fakeVectorStore, provider *fakeProvider) *Service {
	embedder := embedding.NewService(provider, "test-model")
	svc := NewService(bots, embedder, vectors, 10, slog.Default())
	svc.forConfig = func(name, apiKey string) (llm.Provider, error) {
		return provider, nil
	}
	return svc
}

func TestQueryAnswersAndLogs(t *testing.T) {
	botID := uuid.New()
	chunkID := uuid.New()

	bots := &fakeBotStore{config: testConfig(botID)}
	vectors := &fakeVectorStore{results: []vectorstore.SearchResult{
		{ChunkID: chunkID, DocumentID: uuid.New(), Content: "Shipping takes five days.", Score: 0.93},
	}}
	provider := &fakeProvider{completion: `{"answer": "Delivery takes five days."}`}

	svc := newTestService(bots, vectors, provider)

	answer, err := svc.Query(context.Background(), botID, "How long is delivery?")
	require.NoError(t, err)
	assert.Equal(t, "Delivery takes five days.", answer.Answer)
	assert.Equal(t, []uuid.UUID{chunkID}, answer.ChunkIDs)

	assert.Equal(t, 10, vectors.gotTopK)
	assert.Equal(t, "gpt-4o-mini", provider.gotReq.Model)
	assert.InDelta(t, 0.4, provider.gotReq.Temperature, 1e-9)
	assert.True(t, provider.gotReq.ForceJSON)
	assert.Contains(t, provider.gotReq.Prompt, "Shipping takes five days.")
	assert.Contains(t, provider.gotReq.Prompt, "How long is delivery?")

	require.Len(t, bots.logs, 1)
	assert.Equal(t, botID, bots.logs[0].BotID)
	assert.Equal(t, "How long is delivery?", bots.logs[0].Question)
	assert.Equal(t, "Delivery takes five days.", bots.logs[0].Answer)
	assert.Equal(t, []uuid.UUID{chunkID}, bots.logs[0].MatchedChunkIDs)
}

func TestQueryMissingConfig(t *testing.T) {
	bots := &fakeBotStore{config: nil}
	svc := newTestService(bots, &fakeVectorStore{}, &fakeProvider{})

	_, err := svc.Query(context.Background(), uuid.New(), "anything")
	assert.ErrorIs(t, err, bot.ErrConfigNotFound)
	assert.Empty(t, bots.logs)
}

func TestQueryNoResultsNotLogged(t *testing.T) {
	botID := uuid.New()
	bots := &fakeBotStore{config: testConfig(botID)}
	vectors := &fakeVectorStore{results: nil}

	svc := newTestService(bots, vectors, &fakeProvider{completion: `{"answer": "unused"}`})

	_, err := svc.Query(context.Background(), botID, "unknown topic")
	assert.ErrorIs(t, err, ErrNoResults)
	assert.Empty(t, bots.logs)
}

func TestQueryNonJSONCompletionReturnedVerbatim(t *testing.T) {
	botID := uuid.New()
	bots := &fakeBotStore{config: testConfig(botID)}
	vectors := &fakeVectorStore{results: []vectorstore.SearchResult{
		{ChunkID: uuid.New(), Content: "context"},
	}}
	provider := &fakeProvider{completion: "A plain text answer."}

	svc := newTestService(bots, vectors, provider)

	answer, err := svc.Query(context.Background(), botID, "question")
	require.NoError(t, err)
	assert.Equal(t, "A plain text answer.", answer.Answer)
}

func TestQueryCompletionFailure(t *testing.T) {
	botID := uuid.New()
	bots := &fakeBotStore{config: testConfig(botID)}
	vectors := &fakeVectorStore{results: []vectorstore.SearchResult{
		{ChunkID: uuid.New(), Content: "context"},
	}}
	provider := &fakeProvider{err: fmt.Errorf("provider down")}

	svc := newTestService(bots, vectors, provider)

	_, err := svc.Query(context.Background(), botID, "question")
	require.Error(t, err)
	assert.Empty(t, bots.logs)
}
