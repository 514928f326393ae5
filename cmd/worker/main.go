package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/hibiken/asynq"

	"github.com/akshat231/Chatbot-GPT-Backend/internal/account"
	"github.com/akshat231/Chatbot-GPT-Backend/internal/auth"
	"github.com/akshat231/Chatbot-GPT-Backend/internal/config"
	"github.com/akshat231/Chatbot-GPT-Backend/internal/database"
	"github.com/akshat231/Chatbot-GPT-Backend/internal/mail"
	"github.com/akshat231/Chatbot-GPT-Backend/internal/otpdigest"
	"github.com/akshat231/Chatbot-GPT-Backend/internal/queue"
	"github.com/akshat231/Chatbot-GPT-Backend/internal/queue/workers"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	db, err := database.NewPool(ctx, cfg.Database)
	if err != nil {
		slog.Error("database unavailable", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	digest, err := otpdigest.New(cfg.Crypto.Key, cfg.Crypto.IV)
	if err != nil {
		slog.Error("failed to build otp digest", "error", err)
		os.Exit(1)
	}

	issuer := auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	mailer := mail.NewSMTPSender(cfg.SMTP)
	accounts := account.NewService(account.NewPgStore(db), digest, mailer, issuer)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: 5,
		},
	)

	mux := asynq.NewServeMux()
	cleanup := workers.NewCleanupWorker(accounts, cfg.Cleanup.Retention)
	mux.Handle(queue.TypeVerificationCleanup, asynq.HandlerFunc(cleanup.ProcessTask))

	sched, err := queue.NewScheduler(cfg.Redis)
	if err != nil {
		slog.Error("failed to build scheduler", "error", err)
		os.Exit(1)
	}

	go func() {
		slog.Info("starting scheduler")
		if err := sched.Run(); err != nil {
			slog.Error("scheduler error", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("starting worker", "concurrency", 5)
	if err := srv.Run(mux); err != nil {
		slog.Error("worker error", "error", err)
		os.Exit(1)
	}
}
