package bot

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/akshat231/Chatbot-GPT-Backend/internal/config"
	"github.com/akshat231/Chatbot-GPT-Backend/internal/models"
)

var ErrConfigNotFound = errors.New("bot config not found")

type Service struct {
	store    Store
	defaults config.LLMConfig
}

func NewService(store Store, defaults config.LLMConfig) *Service {
	return &Service{store: store, defaults: defaults}
}

// Create inserts the bot and its default config in one step; every bot has
// exactly one config row from the moment it exists.
func (s *Service) Create(ctx context.Context, name string, userID uuid.UUID) (*models.Bot, error) {
	b, err := s.store.CreateBot(ctx, name, userID)
	if err != nil {
		return nil, err
	}

	err = s.store.InsertConfig(ctx, models.BotConfig{
		BotID:         b.ID,
		ModelName:     s.defaults.DefaultModel,
		ModelProvider: s.defaults.DefaultProvider,
		APIKey:        s.defaults.OpenAIKey,
		Temperature:   s.defaults.DefaultTemperature,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("bot created", "bot_id", b.ID, "name", name)
	return b, nil
}

func (s *Service) Rename(ctx context.Context, botID, userID uuid.UUID, name string) error {
	return s.store.UpdateBot(ctx, botID, userID, name)
}

func (s *Service) Delete(ctx context.Context, botID, userID uuid.UUID) error {
	return s.store.DeleteBot(ctx, botID, userID)
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]models.Bot, error) {
	return s.store.Bots(ctx, userID)
}

func (s *Service) Documents(ctx context.Context, botID uuid.UUID, page, limit int) ([]models.Document, error) {
	return s.store.Documents(ctx, botID, page, limit)
}

func (s *Service) Document(ctx context.Context, botID, docID uuid.UUID) (*models.Document, error) {
	return s.store.Document(ctx, botID, docID)
}

func (s *Service) DeleteDocument(ctx context.Context, botID, docID uuid.UUID) error {
	return s.store.DeleteDocument(ctx, botID, docID)
}

func (s *Service) ReplaceConfig(ctx context.Context, cfg models.BotConfig) error {
	return s.store.ReplaceConfig(ctx, cfg)
}

func (s *Service) Config(ctx context.Context, botID uuid.UUID) (*models.BotConfig, error) {
	cfg, err := s.store.Config(ctx, botID)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, ErrConfigNotFound
	}
	return cfg, nil
}
