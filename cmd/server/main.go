// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal domain packages.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"webforms/internal/contact"
	contacthandler "webforms/internal/contact/handler"
	"webforms/internal/newsletter"
	newsletterhandler "webforms/internal/newsletter/handler"
	"webforms/internal/notify"
	"webforms/internal/platform/config"
	"webforms/internal/platform/httpserver"
	"webforms/internal/platform/logger"
	"webforms/internal/platform/metrics"
	"webforms/internal/platform/postgres"
	platformredis "webforms/internal/platform/redis"
	"webforms/internal/ratelimit"
	httptransport "webforms/internal/transport/http"
	"webforms/migrations"
)

func main() {
	_ = godotenv.Load()

	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New(prometheus.DefaultRegisterer)

	ctx := context.Background()
	var checks []httptransport.HealthCheck

	// Stores degrade to memory implementations when no database is
	// configured; the process then keeps submissions only for its lifetime.
	var contactStore contact.Store = contact.NewInMemoryStore()
	newsletterFallback := newsletter.NewInMemoryStore()
	var newsletterStore newsletter.Store = newsletterFallback

	if cfg.DatabaseURL != "" {
		if err := migrateUp(cfg.DatabaseURL); err != nil {
			log.Error("failed to apply migrations", "error", err)
			os.Exit(1)
		}

		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		contactStore = contact.NewPostgresStore(pool)
		newsletterStore = newsletter.NewPostgresStore(pool)
		checks = append(checks, httptransport.HealthCheck{Name: "postgres", Check: pool.Ping})
	} else {
		log.Warn("DATABASE_URL not set, using in-memory stores")
	}

	// The rate limiter shares windows across instances only when Redis is
	// configured; otherwise limits are enforced per process.
	var limiterStore ratelimit.Store = ratelimit.NewInMemoryStore()
	if cfg.RedisURL != "" {
		redisClient, err := platformredis.New(ctx, cfg.RedisURL)
		if err != nil {
			log.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()

		limiterStore = ratelimit.NewRedisStore(redisClient.Client)
		checks = append(checks, httptransport.HealthCheck{Name: "redis", Check: redisClient.Health})
	}

	limiterOpts := []ratelimit.Option{
		ratelimit.WithMetrics(m),
		ratelimit.WithDisabled(cfg.RateLimitDisabled),
	}
	contactLimiter, err := ratelimit.NewLimiter("contact",
		cfg.Contact.MaxAttempts, cfg.Contact.Window, limiterStore, log, limiterOpts...)
	if err != nil {
		fatal(log, "contact limiter", err)
	}
	newsletterLimiter, err := ratelimit.NewLimiter("newsletter",
		cfg.Newsletter.MaxAttempts, cfg.Newsletter.Window, limiterStore, log, limiterOpts...)
	if err != nil {
		fatal(log, "newsletter limiter", err)
	}

	notifier := notify.NewLogNotifier(log)

	contactService, err := contact.NewService(contactStore, notifier, log, m)
	if err != nil {
		fatal(log, "contact service", err)
	}
	newsletterService, err := newsletter.NewService(newsletterStore, newsletterFallback, notifier, log, m)
	if err != nil {
		fatal(log, "newsletter service", err)
	}

	router := httptransport.NewRouter(log, []httptransport.Registrar{
		contacthandler.New(contactService, contactLimiter, log),
		newsletterhandler.New(newsletterService, newsletterLimiter, log),
	}, checks)

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting webforms server", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

func fatal(log *slog.Logger, component string, err error) {
	log.Error("startup failed", "component", component, "error", err)
	os.Exit(1)
}

// migrateUp applies pending schema migrations through the database/sql
// driver; the server itself talks to Postgres through pgx pools.
func migrateUp(databaseURL string) error {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	return migrations.Run(db)
}
