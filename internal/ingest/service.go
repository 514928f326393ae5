// Package ingest turns raw text, web pages and uploaded files into
// embedded chunks a bot can retrieve over.
package ingest

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/akshat231/Chatbot-GPT-Backend/internal/bot"
	"github.com/akshat231/Chatbot-GPT-Backend/internal/embedding"
	"github.com/akshat231/Chatbot-GPT-Backend/internal/storage"
	"github.com/akshat231/Chatbot-GPT-Backend/internal/vectorstore"
	"github.com/akshat231/Chatbot-GPT-Backend/pkg/chunker"
	"github.com/akshat231/Chatbot-GPT-Backend/pkg/textextract"
)

const embedBatchSize = 100

// FileRef points at an uploaded file sitting in external storage.
type FileRef struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Sources carries the content to ingest for a single request. Any
// combination of the three kinds may be present.
type Sources struct {
	RawText []string  `json:"rawText"`
	URLs    []string  `json:"urls"`
	Files   []FileRef `json:"files"`
}

func (s Sources) Empty() bool {
	return len(s.RawText) == 0 && len(s.URLs) == 0 && len(s.Files) == 0
}

type Service struct {
	bots     bot.Store
	vectors  vectorstore.Store
	embedder *embedding.Service
	storage  *storage.Client
	http     *http.Client
	chunkOpt chunker.Options
	logger   *slog.Logger
}

func NewService(bots bot.Store, vectors vectorstore.Store, embedder *embedding.Service, sc *storage.Client, chunkOpt chunker.Options, logger *slog.Logger) *Service {
	return &Service{
		bots:     bots,
		vectors:  vectors,
		embedder: embedder,
		storage:  sc,
		http:     &http.Client{Timeout: 30 * time.Second},
		chunkOpt: chunkOpt,
		logger:   logger,
	}
}

// AddContent ingests every source sequentially. The first source that
// fails aborts the whole request; sources already ingested stay.
func (s *Service) AddContent(ctx context.Context, botID uuid.UUID, botName string, src Sources) error {
	for i, text := range src.RawText {
		name := fmt.Sprintf("%s-raw-%d", botName, i+1)
		if err := s.addRawText(ctx, botID, name, text); err != nil {
			return fmt.Errorf("raw text %q: %w", name, err)
		}
	}

	for _, url := range src.URLs {
		if err := s.addURL(ctx, botID, url); err != nil {
			return fmt.Errorf("url %s: %w", url, err)
		}
	}

	for _, file := range src.Files {
		if err := s.addFile(ctx, botID, file); err != nil {
			return fmt.Errorf("file %s: %w", file.Name, err)
		}
	}

	return nil
}

func (s *Service) addRawText(ctx context.Context, botID uuid.UUID, name, text string) error {
	docID, err := s.bots.AddDocument(ctx, botID, name, "raw")
	if err != nil {
		return err
	}
	return s.ingestText(ctx, botID, docID, text)
}

func (s *Service) addURL(ctx context.Context, botID uuid.UUID, url string) error {
	docID, err := s.bots.AddDocument(ctx, botID, url, "url")
	if err != nil {
		return err
	}

	text, err := s.scrape(ctx, url)
	if err != nil {
		return err
	}
	return s.ingestText(ctx, botID, docID, text)
}

func (s *Service) addFile(ctx context.Context, botID uuid.UUID, file FileRef) error {
	docID, err := s.bots.AddDocument(ctx, botID, file.Name, file.URL)
	if err != nil {
		return err
	}

	data, err := s.storage.Fetch(ctx, file.URL)
	if err != nil {
		return err
	}

	text, err := textextract.FromFile(file.Name, data)
	if err != nil {
		return err
	}
	return s.ingestText(ctx, botID, docID, text)
}

// scrape fetches url and returns the visible text of its body.
func (s *Service) scrape(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch page: status %d", resp.StatusCode)
	}

	page, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse page: %w", err)
	}

	page.Find("script, style, noscript").Remove()
	text := page.Find("body").Text()
	return collapseWhitespace(text), nil
}

// ingestText chunks the text, embeds the chunks and stores them in a
// single batch so a document is either fully indexed or not at all.
func (s *Service) ingestText(ctx context.Context, botID, docID uuid.UUID, text string) error {
	pieces := chunker.Split(text, s.chunkOpt)
	if len(pieces) == 0 {
		s.logger.Warn("no chunks produced", "document_id", docID)
		return nil
	}

	embeddings := make([][]float32, len(pieces))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for start := 0; start < len(pieces); start += embedBatchSize {
		start := start
		end := start + embedBatchSize
		if end > len(pieces) {
			end = len(pieces)
		}
		g.Go(func() error {
			vecs, err := s.embedder.Embed(gctx, pieces[start:end])
			if err != nil {
				return err
			}
			copy(embeddings[start:end], vecs)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("embed chunks: %w", err)
	}

	chunks := make([]vectorstore.Chunk, len(pieces))
	for i, piece := range pieces {
		chunks[i] = vectorstore.Chunk{
			BotID:      botID,
			DocumentID: docID,
			Content:    piece,
			Embedding:  embeddings[i],
		}
	}

	if err := s.vectors.InsertBatch(ctx, chunks); err != nil {
		return fmt.Errorf("store chunks: %w", err)
	}

	s.logger.Info("document indexed", "document_id", docID, "chunks", len(chunks))
	return nil
}

func collapseWhitespace(s string) string {
	var b bytes.Buffer
	inSpace := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			inSpace = true
			continue
		}
		if inSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inSpace = false
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}
