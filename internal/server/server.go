// Package server assembles the HTTP server: Connect services, the receipt
// upload endpoint, health and metrics endpoints, and static files.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/splitapp/internal/auth"
	"github.com/mmynk/splitapp/internal/config"
	"github.com/mmynk/splitapp/internal/metrics"
	"github.com/mmynk/splitapp/internal/middleware"
	"github.com/mmynk/splitapp/internal/receipt"
	"github.com/mmynk/splitapp/internal/reminder"
	"github.com/mmynk/splitapp/internal/service"
	"github.com/mmynk/splitapp/internal/storage"
	"github.com/mmynk/splitapp/internal/storage/postgres"
	"github.com/mmynk/splitapp/internal/storage/sqlite"
	"github.com/mmynk/splitapp/pkg/api/apiconnect"
)

const shutdownTimeout = 10 * time.Second

// Server owns every long-lived dependency of the process.
type Server struct {
	cfg       *config.Config
	store     storage.Store
	metrics   *metrics.Metrics
	jwt       *auth.JWTManager
	redis     *redis.Client
	scheduler *reminder.Scheduler
	handler   http.Handler
}

// OpenStore opens the configured storage backend.
func OpenStore(ctx context.Context, cfg config.DatabaseConfig) (storage.Store, error) {
	switch strings.ToLower(cfg.Driver) {
	case "sqlite":
		return sqlite.New(cfg.Path)
	case "postgres":
		return postgres.New(ctx, cfg.URL)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

// New wires the server from configuration.
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	store, err := OpenStore(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	slog.Info("Storage initialized", "driver", cfg.Database.Driver)

	s := &Server{
		cfg:     cfg,
		store:   store,
		metrics: metrics.New(),
		jwt:     auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenDuration),
	}

	var throttle reminder.Throttle = reminder.NewMemoryThrottle()
	if cfg.Reminders.RedisAddr != "" {
		s.redis = redis.NewClient(&redis.Options{Addr: cfg.Reminders.RedisAddr})
		if err := s.redis.Ping(ctx).Err(); err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		throttle = reminder.NewRedisThrottle(s.redis)
		slog.Info("Reminder throttle using redis", "addr", cfg.Reminders.RedisAddr)
	}

	var sender reminder.Sender = reminder.LogSender{}
	if cfg.Email.Host != "" {
		sender = reminder.NewSMTPSender(reminder.SMTPConfig{
			Host:     cfg.Email.Host,
			Port:     cfg.Email.Port,
			Username: cfg.Email.Username,
			Password: cfg.Email.Password,
			From:     cfg.Email.From,
		})
	} else {
		slog.Warn("SMTP not configured, reminders will only be logged")
	}
	notifier := reminder.NewNotifier(store, sender, throttle, cfg.Reminders.Cooldown, s.metrics)

	if cfg.Reminders.Schedule != "" {
		s.scheduler, err = reminder.NewScheduler(cfg.Reminders.Schedule, store, notifier)
		if err != nil {
			s.Close()
			return nil, err
		}
	}

	var extractor receipt.Extractor
	if cfg.Receipts.APIKey != "" {
		extractor = receipt.NewOpenAIExtractor(receipt.OpenAIConfig{
			APIKey:  cfg.Receipts.APIKey,
			BaseURL: cfg.Receipts.BaseURL,
			Model:   cfg.Receipts.Model,
		})
	} else {
		slog.Warn("Receipt extraction disabled, no API key configured")
	}

	s.handler = s.routes(notifier, extractor)
	return s, nil
}

func (s *Server) routes(notifier *reminder.Notifier, extractor receipt.Extractor) http.Handler {
	opts := connect.WithInterceptors(
		middleware.MetricsInterceptor(s.metrics),
		middleware.RequireAuth(s.jwt),
		middleware.LoggingInterceptor(),
	)
	receipts := service.NewReceiptService(s.store, extractor, s.metrics)

	r := mux.NewRouter()
	mount := func(path string, h http.Handler) {
		r.PathPrefix(path).Handler(h)
	}
	mount(apiconnect.NewGroupServiceHandler(service.NewGroupService(s.store), opts))
	mount(apiconnect.NewExpenseServiceHandler(service.NewExpenseService(s.store), opts))
	mount(apiconnect.NewBalanceServiceHandler(service.NewBalanceService(s.store), opts))
	mount(apiconnect.NewReceiptServiceHandler(receipts, opts))
	mount(apiconnect.NewReminderServiceHandler(service.NewReminderService(s.store, notifier), opts))

	// OPTIONS must match for corsMiddleware to answer browser preflights.
	r.Handle("/api/receipts/scan", middleware.RequireAuthHTTP(s.jwt, receipts.UploadHandler())).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/healthz", s.healthz).Methods(http.MethodGet)
	r.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)

	if s.cfg.Server.StaticPath != "" {
		static, err := staticHandler(s.cfg.Server.StaticPath)
		if err != nil {
			slog.Warn("Static files disabled", "path", s.cfg.Server.StaticPath, "error", err)
		} else {
			r.PathPrefix("/").Handler(static)
		}
	}

	r.Use(corsMiddleware, loggingMiddleware)
	return r
}

// Handler returns the root handler, wrapped for HTTP/2 cleartext.
func (s *Server) Handler() http.Handler {
	return h2c.NewHandler(s.handler, &http2.Server{})
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		slog.Error("Health check failed", "error", err)
		http.Error(w, "unhealthy", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.cfg.Server.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.scheduler != nil {
		s.scheduler.Start()
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.scheduler != nil {
		s.scheduler.Stop(shutdownCtx)
	}
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Close releases the store and redis connections.
func (s *Server) Close() error {
	var errs []error
	if s.redis != nil {
		errs = append(errs, s.redis.Close())
	}
	if s.store != nil {
		errs = append(errs, s.store.Close())
	}
	return errors.Join(errs...)
}
