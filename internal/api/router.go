// Package api assembles the HTTP surface: router, middleware stack and
// service wiring.
package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/akshat231/Chatbot-GPT-Backend/internal/account"
	"github.com/akshat231/Chatbot-GPT-Backend/internal/api/handlers"
	"github.com/akshat231/Chatbot-GPT-Backend/internal/api/middleware"
	"github.com/akshat231/Chatbot-GPT-Backend/internal/auth"
	"github.com/akshat231/Chatbot-GPT-Backend/internal/bot"
	"github.com/akshat231/Chatbot-GPT-Backend/internal/config"
	"github.com/akshat231/Chatbot-GPT-Backend/internal/embedding"
	"github.com/akshat231/Chatbot-GPT-Backend/internal/ingest"
	"github.com/akshat231/Chatbot-GPT-Backend/internal/llm"
	"github.com/akshat231/Chatbot-GPT-Backend/internal/mail"
	"github.com/akshat231/Chatbot-GPT-Backend/internal/otpdigest"
	"github.com/akshat231/Chatbot-GPT-Backend/internal/rag"
	"github.com/akshat231/Chatbot-GPT-Backend/internal/storage"
	"github.com/akshat231/Chatbot-GPT-Backend/internal/vectorstore"
	"github.com/akshat231/Chatbot-GPT-Backend/pkg/chunker"
)

type Router struct {
	mux   *chi.Mux
	db    *pgxpool.Pool
	redis *redis.Client
	cfg   *config.Config
}

func NewRouter(db *pgxpool.Pool, rdb *redis.Client, cfg *config.Config) *Router {
	return &Router{
		mux:   chi.NewRouter(),
		db:    db,
		redis: rdb,
		cfg:   cfg,
	}
}

func (rt *Router) Setup() (http.Handler, error) {
	r := rt.mux

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))

	rl := middleware.NewRateLimiter(100, 200)
	r.Use(rl.Limit)

	health := handlers.NewHealthHandler(rt.db, rt.redis)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)

	digest, err := otpdigest.New(rt.cfg.Crypto.Key, rt.cfg.Crypto.IV)
	if err != nil {
		return nil, fmt.Errorf("build otp digest: %w", err)
	}

	issuer := auth.NewIssuer(rt.cfg.Auth.JWTSecret, rt.cfg.Auth.TokenTTL)
	authn := auth.NewMiddleware(issuer)

	mailer := mail.NewSMTPSender(rt.cfg.SMTP)
	accounts := account.NewService(account.NewPgStore(rt.db), digest, mailer, issuer)

	botStore := bot.NewPgStore(rt.db)
	bots := bot.NewService(botStore, rt.cfg.LLM)

	vs := vectorstore.NewPgVectorStore(rt.db)
	embedder := embedding.NewService(llm.NewOpenAIProvider(rt.cfg.LLM.OpenAIKey), rt.cfg.LLM.EmbeddingModel)
	store := storage.NewClient(rt.cfg.Storage.SupabaseURL, rt.cfg.Storage.ServiceKey, rt.cfg.Storage.Bucket)

	chunkOpt := chunker.Options{
		ChunkSize:    rt.cfg.Ingest.ChunkSize,
		ChunkOverlap: rt.cfg.Ingest.ChunkOverlap,
	}
	ingestSvc := ingest.NewService(botStore, vs, embedder, store, chunkOpt, slog.Default())
	ragSvc := rag.NewService(botStore, embedder, vs, rt.cfg.Ingest.TopK, slog.Default())

	userH := handlers.NewUserHandler(accounts)
	botH := handlers.NewBotHandler(bots, ingestSvc, ragSvc)
	docH := handlers.NewDocHandler(bots, store)

	r.Route("/api/user", func(r chi.Router) {
		r.Post("/signup", userH.Signup)
		r.Post("/login", userH.Login)

		r.Group(func(r chi.Router) {
			r.Use(authn.Authenticate)
			r.Post("/verify", userH.Verify)
			r.Get("/regenerateOtp", userH.RegenerateOTP)
		})
	})

	r.Route("/api/bot", func(r chi.Router) {
		r.Use(authn.Authenticate)

		r.Post("/query", botH.Query)
		r.Post("/addContent", botH.AddContent)
		r.Get("/createBot", botH.Create)
		r.Post("/updateBot", botH.Update)
		r.Post("/updateBotConfig", botH.UpdateConfig)
		r.Post("/getBotConfig", botH.GetConfig)
		r.Delete("/deleteBot", botH.Delete)
		r.Get("/getBots", botH.List)
		r.Post("/getBot", botH.Get)
	})

	r.Route("/api/doc", func(r chi.Router) {
		r.Use(authn.Authenticate)

		r.Post("/upload", docH.Upload)
		r.Delete("/deleteDoc", docH.Delete)
	})

	return r, nil
}
