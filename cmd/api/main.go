package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vrusha-mor/yojanasaathi/internal/app/migrate"
	"github.com/vrusha-mor/yojanasaathi/internal/config"
	"github.com/vrusha-mor/yojanasaathi/internal/crypto"
	"github.com/vrusha-mor/yojanasaathi/internal/geocode"
	httpx "github.com/vrusha-mor/yojanasaathi/internal/http"
	"github.com/vrusha-mor/yojanasaathi/internal/llm"
	"github.com/vrusha-mor/yojanasaathi/internal/llm/gemini"
	"github.com/vrusha-mor/yojanasaathi/internal/llm/openrouter"
	"github.com/vrusha-mor/yojanasaathi/internal/logger"
	"github.com/vrusha-mor/yojanasaathi/internal/repository/postgres"
	"github.com/vrusha-mor/yojanasaathi/internal/service/account"
	"github.com/vrusha-mor/yojanasaathi/internal/service/office"
	"github.com/vrusha-mor/yojanasaathi/internal/service/scam"
	"github.com/vrusha-mor/yojanasaathi/internal/service/scheme"
)

func main() {
	cfg := config.LoadAPIConfig()
	log := logger.New("api", slog.LevelInfo)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dsn := cfg.DatabaseDSN()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	runner, err := migrate.New(pool, dsn, cfg.MigrationsDir, log)
	if err != nil {
		log.Error("failed to configure migrations", "error", err)
		os.Exit(1)
	}
	defer runner.Close()
	if err := runner.Ping(ctx); err != nil {
		log.Error("database ping failed", "error", err)
		os.Exit(1)
	}
	if err := runner.Ensure(ctx); err != nil {
		log.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	gateway, err := buildGateway(ctx, cfg)
	if err != nil {
		log.Error("failed to configure model gateway", "provider", cfg.ModelProvider, "error", err)
		os.Exit(1)
	}

	repo := postgres.New(pool)
	hasher := crypto.NewBcryptHasher()
	geocoder := geocode.New(geocode.WithBaseURL(cfg.GeocoderBaseURL))

	accountSvc := account.New(repo, hasher, log)
	schemeSvc := scheme.New(gateway, log)
	scamSvc := scam.New(gateway, log)
	officeSvc := office.New(repo, geocoder, log)

	limiter := httpx.NewMemoryRateLimiter()
	if addr := strings.TrimSpace(cfg.RateLimitRedisAddr); addr != "" {
		redisLimiter, err := httpx.NewRedisRateLimiter(addr, cfg.RateLimitRedisPass, cfg.RateLimitRedisDB, log)
		if err != nil {
			log.Warn("redis rate limiter unavailable", "error", err)
		} else {
			limiter = redisLimiter
		}
	}

	router := httpx.NewRouter(log, accountSvc, schemeSvc, scamSvc, officeSvc, limiter, pool.Ping)
	defer router.Close()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errorCh := make(chan error, 1)
	go func() {
		log.Info("api server starting", "addr", cfg.Addr)
		errorCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
		log.Info("api server stopped")
	case err := <-errorCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}
}

func buildGateway(ctx context.Context, cfg config.APIConfig) (llm.Gateway, error) {
	policy := llm.Policy{
		MaxAttempts: cfg.ModelMaxAttempts,
		Backoff:     cfg.ModelBackoff,
		Timeout:     cfg.ModelTimeout,
	}
	switch strings.ToLower(strings.TrimSpace(cfg.ModelProvider)) {
	case "gemini":
		return gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, policy)
	default:
		return openrouter.New(cfg.OpenRouterAPIKey,
			openrouter.WithBaseURL(cfg.OpenRouterBaseURL),
			openrouter.WithModel(cfg.OpenRouterModel),
			openrouter.WithAttribution(cfg.OpenRouterReferer, cfg.OpenRouterTitle),
			openrouter.WithPolicy(policy),
		)
	}
}
