package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Crypto   CryptoConfig
	SMTP     SMTPConfig
	Storage  StorageConfig
	LLM      LLMConfig
	Ingest   IngestConfig
	Cleanup  CleanupConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type DatabaseConfig struct {
	URL            string
	MaxConns       int
	MinConns       int
	MigrationsPath string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// CryptoConfig holds the fixed key/IV for the deterministic OTP digest.
// Key must be 32 bytes and IV 16 bytes, both hex-encoded in the environment.
type CryptoConfig struct {
	Key []byte
	IV  []byte
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type StorageConfig struct {
	SupabaseURL string
	ServiceKey  string
	Bucket      string
}

type LLMConfig struct {
	OpenAIKey          string
	EmbeddingModel     string
	DefaultModel       string
	DefaultProvider    string
	DefaultTemperature float64
}

type IngestConfig struct {
	ChunkSize    int
	ChunkOverlap int
	TopK         int
}

type CleanupConfig struct {
	Retention time.Duration
}

func Load() (*Config, error) {
	port, err := getEnvInt("SERVER_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	maxConns, err := getEnvInt("DB_MAX_CONNS", 20)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}

	minConns, err := getEnvInt("DB_MIN_CONNS", 5)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	smtpPort, err := getEnvInt("SMTP_PORT", 587)
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	chunkSize, err := getEnvInt("CHUNK_SIZE", 800)
	if err != nil {
		return nil, fmt.Errorf("invalid CHUNK_SIZE: %w", err)
	}

	chunkOverlap, err := getEnvInt("CHUNK_OVERLAP", 200)
	if err != nil {
		return nil, fmt.Errorf("invalid CHUNK_OVERLAP: %w", err)
	}

	topK, err := getEnvInt("RETRIEVAL_TOP_K", 10)
	if err != nil {
		return nil, fmt.Errorf("invalid RETRIEVAL_TOP_K: %w", err)
	}

	retentionHours, err := getEnvInt("PENDING_SIGNUP_RETENTION_HOURS", 6)
	if err != nil {
		return nil, fmt.Errorf("invalid PENDING_SIGNUP_RETENTION_HOURS: %w", err)
	}

	temperature, err := getEnvFloat("LLM_DEFAULT_TEMPERATURE", 0.7)
	if err != nil {
		return nil, fmt.Errorf("invalid LLM_DEFAULT_TEMPERATURE: %w", err)
	}

	key, err := hex.DecodeString(getEnv("CRYPTO_KEY", ""))
	if err != nil {
		return nil, fmt.Errorf("invalid CRYPTO_KEY: %w", err)
	}

	iv, err := hex.DecodeString(getEnv("CRYPTO_IV", ""))
	if err != nil {
		return nil, fmt.Errorf("invalid CRYPTO_IV: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: port,
		},
		Database: DatabaseConfig{
			URL:            getEnv("DATABASE_URL", ""),
			MaxConns:       maxConns,
			MinConns:       minConns,
			MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
			TokenTTL:  time.Hour,
		},
		Crypto: CryptoConfig{
			Key: key,
			IV:  iv,
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:     smtpPort,
			User:     getEnv("SMTP_USER", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", ""),
		},
		Storage: StorageConfig{
			SupabaseURL: getEnv("SUPABASE_URL", ""),
			ServiceKey:  getEnv("SUPABASE_SERVICE_KEY", ""),
			Bucket:      getEnv("STORAGE_BUCKET", "documents"),
		},
		LLM: LLMConfig{
			OpenAIKey:          getEnv("OPENAI_API_KEY", ""),
			EmbeddingModel:     getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
			DefaultModel:       getEnv("LLM_DEFAULT_MODEL", "gpt-4o-mini"),
			DefaultProvider:    getEnv("LLM_DEFAULT_PROVIDER", "openai"),
			DefaultTemperature: temperature,
		},
		Ingest: IngestConfig{
			ChunkSize:    chunkSize,
			ChunkOverlap: chunkOverlap,
			TopK:         topK,
		},
		Cleanup: CleanupConfig{
			Retention: time.Duration(retentionHours) * time.Hour,
		},
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) Validate() error {
	var missing []string
	if c.Database.URL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.Auth.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(c.Crypto.Key) == 0 {
		missing = append(missing, "CRYPTO_KEY")
	}
	if len(c.Crypto.IV) == 0 {
		missing = append(missing, "CRYPTO_IV")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required env vars: %s", strings.Join(missing, ", "))
	}
	if len(c.Crypto.Key) != 32 {
		return fmt.Errorf("CRYPTO_KEY must be 32 bytes, got %d", len(c.Crypto.Key))
	}
	if len(c.Crypto.IV) != 16 {
		return fmt.Errorf("CRYPTO_IV must be 16 bytes, got %d", len(c.Crypto.IV))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(v, 64)
}
