package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/celiadunsmore/counselling-platform/internal/api/router"
	"github.com/celiadunsmore/counselling-platform/internal/availability"
	"github.com/celiadunsmore/counselling-platform/internal/bookings"
	"github.com/celiadunsmore/counselling-platform/internal/calendar"
	appconfig "github.com/celiadunsmore/counselling-platform/internal/config"
	"github.com/celiadunsmore/counselling-platform/internal/contacts"
	"github.com/celiadunsmore/counselling-platform/internal/locations"
	"github.com/celiadunsmore/counselling-platform/internal/notify"
	"github.com/celiadunsmore/counselling-platform/internal/observability/metrics"
	"github.com/celiadunsmore/counselling-platform/internal/triage"
	"github.com/celiadunsmore/counselling-platform/pkg/logging"
)

func main() {
	// Load .env in development; missing file is fine.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting counselling-platform API server",
		"env", cfg.Env,
		"port", cfg.Port,
		"calendar_provider", cfg.CalendarProvider,
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	ctx := context.Background()

	// Repositories: Postgres when DATABASE_URL is set, in-memory otherwise.
	var bookingsRepo bookings.Repository = bookings.NewInMemoryRepository()
	var contactsRepo contacts.Repository = contacts.NewInMemoryRepository()
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to create database pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		if err := pool.Ping(ctx); err != nil {
			logger.Error("database unreachable", "error", err)
			os.Exit(1)
		}
		bookingsRepo = bookings.NewPostgresRepository(pool)
		contactsRepo = contacts.NewPostgresRepository(pool)
		logger.Info("using postgres repositories")
	}

	availRepo := availability.NewInMemoryRepository()
	locationsRepo := locations.NewInMemoryRepository()
	tokenStore := calendar.NewTokenStore()

	// Calendar provider selection.
	var provider calendar.Provider
	switch cfg.CalendarProvider {
	case "google":
		if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" {
			logger.Error("CALENDAR_PROVIDER=google requires GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET")
			os.Exit(1)
		}
		provider = calendar.NewGoogleProvider(calendar.GoogleConfig{
			ClientID:       cfg.GoogleClientID,
			ClientSecret:   cfg.GoogleClientSecret,
			RedirectURI:    cfg.GoogleOAuthRedirectURI,
			Timezone:       cfg.CalendarDefaultTimezone,
			RequestTimeout: cfg.CalendarRequestTimeout,
		}, tokenStore, logger)
	default:
		provider = calendar.NewMockProvider(tokenStore, cfg.CalendarDefaultTimezone, logger)
	}
	syncer := calendar.NewSyncer(provider, availRepo, m, logger)
	scheduler := calendar.NewScheduler(provider, cfg.CalendarDefaultTimezone, logger)

	// Triage classifier and optional LLM-backed assistant.
	classifier := triage.NewKeywordClassifier()

	var llm triage.LLMClient
	if cfg.OpenAIAPIKey != "" {
		openaiClient, err := triage.NewOpenAILLMClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		if err != nil {
			logger.Error("failed to create openai client", "error", err)
			os.Exit(1)
		}
		llm = openaiClient
	}
	if cfg.GeminiAPIKey != "" {
		geminiClient, err := triage.NewGeminiLLMClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Error("failed to create gemini client", "error", err)
			os.Exit(1)
		}
		if llm != nil {
			llm = triage.NewFallbackLLMClient(llm, geminiClient, logger)
		} else {
			llm = geminiClient
		}
	}
	if llm == nil {
		logger.Info("no LLM API key configured, chat assistant uses canned replies")
	}

	var history *triage.HistoryStore
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Error("redis unreachable", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		history = triage.NewHistoryStore(redisClient)
		logger.Info("chat history enabled", "redis_addr", cfg.RedisAddr)
	}

	assistant := triage.NewAssistant(classifier, llm, history, m, logger)

	// Email notifications.
	var emailSender notify.EmailSender
	if sg := notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
	}, logger); sg != nil {
		emailSender = sg
	} else {
		logger.Info("SENDGRID_API_KEY not set, using stub email sender")
		emailSender = notify.NewStubEmailSender(logger)
	}
	notifier := notify.NewService(emailSender, cfg.PracticeEmail, cfg.PracticePhone, m, logger)

	// Setup router
	r := router.New(&router.Config{
		Logger:              logger,
		BookingsHandler:     bookings.NewHandler(bookingsRepo, notifier, scheduler, m, logger),
		ContactsHandler:     contacts.NewHandler(contactsRepo, classifier, notifier, m, logger),
		AvailabilityHandler: availability.NewHandler(availRepo, logger),
		LocationsHandler:    locations.NewHandler(locationsRepo, logger),
		CalendarHandler:     calendar.NewHandler(provider, syncer, cfg.CalendarSyncMaxDays, logger),
		AssistantHandler:    triage.NewHandler(assistant, logger),
		MetricsHandler:      promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		AdminToken:          cfg.AdminToken,
		GoogleMapsAPIKey:    cfg.GoogleMapsAPIKey,
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
		RateLimitPerSecond:  cfg.RateLimitPerSecond,
		RateLimitBurst:      cfg.RateLimitBurst,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
