package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akshat231/Chatbot-GPT-Backend/internal/embedding"
	"github.com/akshat231/Chatbot-GPT-Backend/internal/llm"
	"github.com/akshat231/Chatbot-GPT-Backend/internal/models"
	"github.com/akshat231/Chatbot-GPT-Backend/internal/storage"
	"github.com/akshat231/Chatbot-GPT-Backend/internal/vectorstore"
	"github.com/akshat231/Chatbot-GPT-Backend/pkg/chunker"
)

type docRecord struct {
	id     uuid.UUID
	name   string
	source string
}

type fakeBotStore struct {
	docs []docRecord
}

func (s *fakeBotStore) AddDocument(ctx context.Context, botID uuid.UUID, name, source string) (uuid.UUID, error) {
	id := uuid.New()
	s.docs = append(s.docs, docRecord{id: id, name: name, source: source})
	return id, nil
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
func (s *fakeBotStore) Config(ctx context.Context, botID uuid.UUID) (*models.BotConfig, error) {
	return nil, nil
}
func (s *fakeBotStore) Document(ctx context.Context, botID, docID uuid.UUID) (*models.Document, error) {
	return nil, nil
}
func (s *fakeBotStore) Documents(ctx context.Context, botID uuid.UUID, page, limit int) ([]models.Document, error) {
	return nil, nil
}
func (s *fakeBotStore) DeleteDocument(ctx context.Context, botID, docID uuid.UUID) error { return nil }
func (s *fakeBotStore) InsertQueryLog(ctx context.Context, log models.QueryLog) error    { return nil }

type fakeVectorStore struct {
	batches [][]vectorstore.Chunk
	failErr error
}

func (s *fakeVectorStore) InsertBatch(ctx context.Context, chunks []vectorstore.Chunk) error {
	if s.failErr != nil {
		return s.failErr
	}
	s.batches = append(s.batches, chunks)
	return nil
}

func (s *fakeVectorStore) Search(ctx context.Context, botID uuid.UUID, query []float32, topK int) ([]vectorstore.SearchResult, error) {
	return nil, nil
}

type fakeEmbedProvider struct {
	calls int
	err   error
}

func (p *fakeEmbedProvider) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	return "", nil
}

func (p *fakeEmbedProvider) Embed(ctx context.Context, model string, inputs []string) ([][]float32, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	vecs := make([][]float32, len(inputs))
	for i := range inputs {
		vecs[i] = []float32{float32(len(inputs[i])), 1}
	}
	return vecs, nil
}

func (p *fakeEmbedProvider) Name() string { return "fake" }

func newTestService(t *testing.T, bots *fakeBotStore, vectors *fakeVectorStore, provider *fakeEmbedProvider, storageURL string) *Service {
	t.Helper()
	embedder := embedding.NewService(provider, "test-model")
	sc := storage.NewClient(storageURL, "test-key", "documents")
	opts := chunker.Options{ChunkSize: 50, ChunkOverlap: 10}
	return NewService(bots, vectors, embedder, sc, opts, slog.Default())
}

func TestAddContentRawText(t *testing.T) {
	bots := &fakeBotStore{}
	vectors := &fakeVectorStore{}
	provider := &fakeEmbedProvider{}
	svc := newTestService(t, bots, vectors, provider, "http://storage.invalid")

	botID := uuid.New()
	err := svc.AddContent(context.Background(), botID, "support-bot", Sources{
		RawText: []string{"Our product ships worldwide. Delivery takes five days."},
	})
	require.NoError(t, err)

	require.Len(t, bots.docs, 1)
	assert.Equal(t, "support-bot-raw-1", bots.docs[0].name)
	assert.Equal(t, "raw", bots.docs[0].source)

	require.Len(t, vectors.batches, 1)
	for _, c := range vectors.batches[0] {
		assert.Equal(t, botID, c.BotID)
		assert.Equal(t, bots.docs[0].id, c.DocumentID)
		assert.NotEmpty(t, c.Content)
		assert.Len(t, c.Embedding, 2)
	}
}

func TestAddContentURL(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head><script>ignored()</script></head><body><p>Visible page text.</p></body></html>`)
	}))
	defer page.Close()

	bots := &fakeBotStore{}
	vectors := &fakeVectorStore{}
	svc := newTestService(t, bots, vectors, &fakeEmbedProvider{}, "http://storage.invalid")

	err := svc.AddContent(context.Background(), uuid.New(), "bot", Sources{URLs: []string{page.URL}})
	require.NoError(t, err)

	require.Len(t, bots.docs, 1)
	assert.Equal(t, page.URL, bots.docs[0].name)
	assert.Equal(t, "url", bots.docs[0].source)

	require.Len(t, vectors.batches, 1)
	assert.Equal(t, "Visible page text.", vectors.batches[0][0].Content)
}

func TestAddContentUnsupportedFileKeepsDocument(t *testing.T) {
	files := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("binary junk"))
	}))
	defer files.Close()

	bots := &fakeBotStore{}
	vectors := &fakeVectorStore{}
	svc := newTestService(t, bots, vectors, &fakeEmbedProvider{}, "http://storage.invalid")

	err := svc.AddContent(context.Background(), uuid.New(), "bot", Sources{
		Files: []FileRef{{Name: "image.png", URL: files.URL + "/image.png"}},
	})
	require.Error(t, err)

	// The document record is created before the extension is checked, so a
	// rejected file still leaves its record behind with no chunks.
	require.Len(t, bots.docs, 1)
	assert.Equal(t, "image.png", bots.docs[0].name)
	assert.Empty(t, vectors.batches)
}

func TestAddContentTxtFile(t *testing.T) {
	files := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("plain file content"))
	}))
	defer files.Close()

	bots := &fakeBotStore{}
	vectors := &fakeVectorStore{}
	svc := newTestService(t, bots, vectors, &fakeEmbedProvider{}, "http://storage.invalid")

	fileURL := files.URL + "/notes.txt"
	err := svc.AddContent(context.Background(), uuid.New(), "bot", Sources{
		Files: []FileRef{{Name: "notes.txt", URL: fileURL}},
	})
	require.NoError(t, err)

	require.Len(t, bots.docs, 1)
	assert.Equal(t, fileURL, bots.docs[0].source)
	require.Len(t, vectors.batches, 1)
	assert.Equal(t, "plain file content", vectors.batches[0][0].Content)
}

func TestAddContentFirstFailureAborts(t *testing.T) {
	bots := &fakeBotStore{}
	vectors := &fakeVectorStore{}
	svc := newTestService(t, bots, vectors, &fakeEmbedProvider{}, "http://storage.invalid")

	err := svc.AddContent(context.Background(), uuid.New(), "bot", Sources{
		RawText: []string{"first source text"},
		URLs:    []string{"http://127.0.0.1:1/unreachable"},
		Files:   []FileRef{{Name: "never.txt", URL: "http://127.0.0.1:1/never"}},
	})
	require.Error(t, err)

	// Raw text succeeded and stays; the file source is never reached.
	assert.Len(t, vectors.batches, 1)
	require.Len(t, bots.docs, 2)
	assert.Equal(t, "url", bots.docs[1].source)
}

func TestAddContentEmbeddingFailureSkipsInsert(t *testing.T) {
	bots := &fakeBotStore{}
	vectors := &fakeVectorStore{}
	provider := &fakeEmbedProvider{err: fmt.Errorf("quota exceeded")}
	svc := newTestService(t, bots, vectors, provider, "http://storage.invalid")

	err := svc.AddContent(context.Background(), uuid.New(), "bot", Sources{
		RawText: []string{"some text to embed"},
	})
	require.Error(t, err)
	assert.Empty(t, vectors.batches)
}
