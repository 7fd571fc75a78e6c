package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/rahulverma/legalclarity/internal/analysis"
	"github.com/rahulverma/legalclarity/internal/api/handlers"
	"github.com/rahulverma/legalclarity/internal/api/middleware"
	"github.com/rahulverma/legalclarity/internal/audio"
	"github.com/rahulverma/legalclarity/internal/auth"
	"github.com/rahulverma/legalclarity/internal/cache"
	"github.com/rahulverma/legalclarity/internal/config"
	"github.com/rahulverma/legalclarity/internal/document"
	"github.com/rahulverma/legalclarity/internal/history"
	"github.com/rahulverma/legalclarity/internal/llm"
)

type Router struct {
	mux   *chi.Mux
	db    *pgxpool.Pool
	redis *redis.Client
	cfg   *config.Config
	authn *auth.Middleware
	llmGW llm.Gateway
}

func NewRouter(db *pgxpool.Pool, rdb *redis.Client, cfg *config.Config) *Router {
	return &Router{
		mux:   chi.NewRouter(),
		db:    db,
		redis: rdb,
		cfg:   cfg,
		authn: auth.NewMiddleware(cfg.Auth.JWTSecret),
		llmGW: llm.NewGateway(cfg.LLM),
	}
}

func (rt *Router) Setup() http.Handler {
	r := rt.mux

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           3600,
	}))

	var c *cache.Cache
	if rt.redis != nil {
		c = cache.NewCache(rt.redis)
	}
	rl := middleware.NewRateLimiter(c, rt.cfg.Limits.RateRPS, rt.cfg.Limits.RateBurst)
	r.Use(rl.Limit)

	// Health endpoints (no auth)
	var redisCheck handlers.RedisPinger
	if rt.redis != nil {
		redisCheck = rt.redis
	}
	health := handlers.NewHealthHandler(rt.db, redisCheck)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)

	// Services
	structured := llm.NewStructured(rt.llmGW, rt.cfg.LLM.DefaultModel)
	ocr := document.NewOCRService(rt.llmGW, rt.cfg.LLM.VisionModel)
	extractor := document.NewExtractor(ocr)
	analyzer := analysis.NewAnalyzer(structured)
	caps := analysis.NewCapabilities(structured)
	repo := history.NewRepository(rt.db)
	svc := analysis.NewService(extractor, analyzer, caps, repo)
	var speech handlers.SpeechService
	if rt.cfg.LLM.OpenAIKey != "" {
		speech = audio.NewSynthesizer(rt.cfg.LLM.OpenAIKey, rt.cfg.Audio.TTSModel, rt.cfg.Audio.Voice)
	} else {
		slog.Warn("speech synthesis disabled: OPENAI_API_KEY not set")
	}

	// API v1 — every route requires a resolved identity
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rt.authn.Authenticate)

		analysisH := handlers.NewAnalysisHandler(svc, repo)
		r.Route("/analyses", func(r chi.Router) {
			r.Post("/", analysisH.Create)
			r.Get("/", analysisH.List)
			r.Get("/{id}", analysisH.Get)
		})

		capH := handlers.NewCapabilityHandler(svc, speech)
		r.Post("/qa", capH.Answer)
		r.Post("/simplify", capH.Simplify)
		r.Post("/compare", capH.Compare)
		r.Post("/amendments", capH.SuggestAmendment)
		r.Post("/audio", capH.Audio)
	})

	return r
}
