package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/mglaser/bankdesk/internal/auth"
	"github.com/mglaser/bankdesk/internal/bridge"
	"github.com/mglaser/bankdesk/internal/callgen"
	"github.com/mglaser/bankdesk/internal/chatbot"
	"github.com/mglaser/bankdesk/internal/config"
	"github.com/mglaser/bankdesk/internal/crm"
	"github.com/mglaser/bankdesk/internal/intake"
	"github.com/mglaser/bankdesk/internal/metrics"
	"github.com/mglaser/bankdesk/internal/notify"
	"github.com/mglaser/bankdesk/internal/remote"
	"github.com/mglaser/bankdesk/internal/scheduler"
	"github.com/mglaser/bankdesk/internal/session"
	"github.com/mglaser/bankdesk/internal/storage"
	"github.com/mglaser/bankdesk/internal/store"
	"github.com/mglaser/bankdesk/pkg/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Configure logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Set log level
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("level", cfg.LogLevel).Msg("invalid log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Info().
		Str("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Str("log_level", cfg.LogLevel).
		Msg("starting bankdesk server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// WebSocket hub for operator UIs
	hub := notify.NewHub(log.Logger)
	go hub.Run()
	notifier := notify.NewNotifier(hub, log.Logger)
	wsHandler := notify.NewHandler(hub, cfg, log.Logger)

	// Call archive (DynamoDB or noop, per DYNAMO_MODE)
	archive, err := storage.NewStore(ctx, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize call archive")
	}

	// Remote call-state backend: Postgres when configured, local-only
	// simulation otherwise.
	var backend session.Backend
	if cfg.DatabaseURL != "" {
		pg, err := remote.NewPostgres(ctx, cfg.DatabaseURL, log.Logger)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to remote backend")
		}
		defer pg.Close()
		backend = pg
	} else {
		log.Info().Msg("DATABASE_URL not set, using local-only call backend")
		backend = remote.NewNoopBackend(log.Logger)
	}

	// CRM repository doubles as the interaction sink for finished calls
	crmRepo := crm.NewSeededRepository()

	callStore := store.NewSeeded()
	ctrl := session.NewController(callStore, backend, notifier, log.Logger, session.Options{
		OperatorID:        cfg.OperatorID,
		AutoRejectSeconds: cfg.AutoRejectSeconds,
		Archive:           archive,
		Interactions:      crmRepo,
	})

	// Incoming-call scheduler
	generator := callgen.New()
	sched := scheduler.New(ctrl, generator, cfg.SchedulerInterval, cfg.CallProbability, log.Logger)
	go sched.Start(ctx)

	// Bridge from the remote backend's notification channel
	if cfg.DatabaseURL != "" {
		listener := remote.NewListener(cfg.DatabaseURL, cfg.ListenChannel, log.Logger)
		br := bridge.New(listener, ctrl, log.Logger)
		go br.Start(ctx)
	}

	sessionHandler := session.NewHandler(ctrl, callStore, generator, log.Logger)
	historyHandler := storage.NewHistoryHandler(archive, log.Logger)
	crmHandler := crm.NewHandler(crmRepo, log.Logger)
	chatHandler := chatbot.NewHandler(chatbot.New(), log.Logger)
	intakeHandler := intake.NewHandler(backend, log.Logger)

	// Create router
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Public routes (no auth required)
	r.Get("/health", healthHandler)

	// Internal routes (no auth - for operators' dashboards and scrapers)
	r.Route("/internal", func(r chi.Router) {
		r.Get("/metrics", metrics.Get().Handler())
	})

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware)

		r.Get("/ws", wsHandler.ServeHTTP)

		r.Route("/api", func(r chi.Router) {
			r.Get("/session", sessionHandler.HandleState)
			r.Post("/session/accept", sessionHandler.HandleAccept)
			r.Post("/session/reject", sessionHandler.HandleReject)
			r.Post("/session/end", sessionHandler.HandleEnd)
			r.Post("/session/simulate", sessionHandler.HandleSimulateIncoming)

			r.Get("/calls", sessionHandler.HandleListCalls)
			r.Get("/calls/overview", sessionHandler.HandleOverview)
			r.Post("/calls/simulate", sessionHandler.HandleSimulateQueued)
			r.Get("/archive", historyHandler.GetCalls)

			r.Post("/chat", chatHandler.HandleChat)
			r.Post("/intake", intakeHandler.HandleRequestCall)

			r.Mount("/", crmHandler.Routes())
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Msgf("server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Stop the scheduler, bridge, and timers
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

// healthHandler handles health check requests
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"ok","service":"bankdesk"}`)
}
