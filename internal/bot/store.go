package bot

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/akshat231/Chatbot-GPT-Backend/internal/models"
)

// Store persists bots, their one-to-one config, document records, and query
// logs. All bot mutations are scoped by owner user id.
type Store interface {
	CreateBot(ctx context.Context, name string, userID uuid.UUID) (*models.Bot, error)
	UpdateBot(ctx context.Context, botID, userID uuid.UUID, name string) error
	DeleteBot(ctx context.Context, botID, userID uuid.UUID) error
	Bots(ctx context.Context, userID uuid.UUID) ([]models.Bot, error)

	InsertConfig(ctx context.Context, cfg models.BotConfig) error
	ReplaceConfig(ctx context.Context, cfg models.BotConfig) error
	Config(ctx context.Context, botID uuid.UUID) (*models.BotConfig, error)

	AddDocument(ctx context.Context, botID uuid.UUID, name, source string) (uuid.UUID, error)
	Document(ctx context.Context, botID, docID uuid.UUID) (*models.Document, error)
	Documents(ctx context.Context, botID uuid.UUID, page, limit int) ([]models.Document, error)
	DeleteDocument(ctx context.Context, botID, docID uuid.UUID) error

	InsertQueryLog(ctx context.Context, log models.QueryLog) error
}

type PgStore struct {
	db *pgxpool.Pool
}

func NewPgStore(db *pgxpool.Pool) *PgStore {
	return &PgStore{db: db}
}

func (s *PgStore) CreateBot(ctx context.Context, name string, userID uuid.UUID) (*models.Bot, error) {
	var b models.Bot
	err := s.db.QueryRow(ctx,
		`INSERT INTO bots (id, user_id, name, created_at)
		 VALUES ($1, $2, $3, now())
		 RETURNING id, user_id, name, created_at`,
		uuid.New(), userID, name,
	).Scan(&b.ID, &b.UserID, &b.Name, &b.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert bot: %w", err)
	}
	return &b, nil
}

func (s *PgStore) UpdateBot(ctx context.Context, botID, userID uuid.UUID, name string) error {
	_, err := s.db.Exec(ctx,
		"UPDATE bots SET name = $3 WHERE id = $1 AND user_id = $2",
		botID, userID, name,
	)
	if err != nil {
		return fmt.Errorf("update bot: %w", err)
	}
	return nil
}

func (s *PgStore) DeleteBot(ctx context.Context, botID, userID uuid.UUID) error {
	_, err := s.db.Exec(ctx,
		"DELETE FROM bots WHERE id = $1 AND user_id = $2",
		botID, userID,
	)
	if err != nil {
		return fmt.Errorf("delete bot: %w", err)
	}
	return nil
}

func (s *PgStore) Bots(ctx context.Context, userID uuid.UUID) ([]models.Bot, error) {
	rows, err := s.db.Query(ctx,
		"SELECT id, user_id, name, created_at FROM bots WHERE user_id = $1 ORDER BY created_at",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list bots: %w", err)
	}
	defer rows.Close()

	var bots []models.Bot
	for rows.Next() {
		var b models.Bot
		if err := rows.Scan(&b.ID, &b.UserID, &b.Name, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan bot: %w", err)
		}
		bots = append(bots, b)
	}
	return bots, rows.Err()
}

func (s *PgStore) InsertConfig(ctx context.Context, cfg models.BotConfig) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO bot_config (bot_id, model_name, model_provider, api_key, temperature)
		 VALUES ($1, $2, $3, $4, $5)`,
		cfg.BotID, cfg.ModelName, cfg.ModelProvider, cfg.APIKey, cfg.Temperature,
	)
	if err != nil {
		return fmt.Errorf("insert bot config: %w", err)
	}
	return nil
}

func (s *PgStore) ReplaceConfig(ctx context.Context, cfg models.BotConfig) error {
	_, err := s.db.Exec(ctx,
		`UPDATE bot_config
		 SET model_name = $2, model_provider = $3, api_key = $4, temperature = $5
		 WHERE bot_id = $1`,
		cfg.BotID, cfg.ModelName, cfg.ModelProvider, cfg.APIKey, cfg.Temperature,
	)
	if err != nil {
		return fmt.Errorf("replace bot config: %w", err)
	}
	return nil
}

func (s *PgStore) Config(ctx context.Context, botID uuid.UUID) (*models.BotConfig, error) {
	var cfg models.BotConfig
	err := s.db.QueryRow(ctx,
		`SELECT bot_id, model_name, model_provider, api_key, temperature
		 FROM bot_config WHERE bot_id = $1`,
		botID,
	).Scan(&cfg.BotID, &cfg.ModelName, &cfg.ModelProvider, &cfg.APIKey, &cfg.Temperature)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get bot config: %w", err)
	}
	return &cfg, nil
}

func (s *PgStore) AddDocument(ctx context.Context, botID uuid.UUID, name, source string) (uuid.UUID, error) {
	var id uuid.UUID
	err := s.db.QueryRow(ctx,
		`INSERT INTO documents (id, bot_id, name, source, created_at)
		 VALUES ($1, $2, $3, $4, now())
		 RETURNING id`,
		uuid.New(), botID, name, source,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert document: %w", err)
	}
	return id, nil
}

func (s *PgStore) Document(ctx context.Context, botID, docID uuid.UUID) (*models.Document, error) {
	var d models.Document
	err := s.db.QueryRow(ctx,
		"SELECT id, bot_id, name, source, created_at FROM documents WHERE bot_id = $1 AND id = $2",
		botID, docID,
	).Scan(&d.ID, &d.BotID, &d.Name, &d.Source, &d.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select document: %w", err)
	}
	return &d, nil
}

func (s *PgStore) Documents(ctx context.Context, botID uuid.UUID, page, limit int) ([]models.Document, error) {
	offset := (page - 1) * limit
	rows, err := s.db.Query(ctx,
		`SELECT id, bot_id, name, source, created_at FROM documents
		 WHERE bot_id = $1 ORDER BY created_at LIMIT $2 OFFSET $3`,
		botID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []models.Document
	for rows.Next() {
		var d models.Document
		if err := rows.Scan(&d.ID, &d.BotID, &d.Name, &d.Source, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func (s *PgStore) DeleteDocument(ctx context.Context, botID, docID uuid.UUID) error {
	_, err := s.db.Exec(ctx,
		"DELETE FROM documents WHERE bot_id = $1 AND id = $2",
		botID, docID,
	)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

func (s *PgStore) InsertQueryLog(ctx context.Context, log models.QueryLog) error {
	ids := make([]uuid.UUID, len(log.MatchedChunkIDs))
	copy(ids, log.MatchedChunkIDs)
	_, err := s.db.Exec(ctx,
		`INSERT INTO query_logs (id, bot_id, question, answer, matched_chunk_ids, created_at)
		 VALUES ($1, $2, $3, $4, $5, now())`,
		uuid.New(), log.BotID, log.Question, log.Answer, ids,
	)
	if err != nil {
		return fmt.Errorf("insert query log: %w", err)
	}
	return nil
}
