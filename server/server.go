package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"meditation-backend/config"
	"meditation-backend/core/auth"
	"meditation-backend/db"
	"meditation-backend/logger"
	"meditation-backend/storage"

	"github.com/gorilla/mux"
)

// route registers handler for path with and without the trailing slash so
// clients need not agree on one form.
func route(r *mux.Router, path string, handler http.HandlerFunc, methods ...string) {
	trimmed := strings.TrimSuffix(path, "/")
	r.HandleFunc(trimmed, handler).Methods(methods...)
	r.HandleFunc(trimmed+"/", handler).Methods(methods...)
}

// NewRouter builds the HTTP handler tree for h.
func NewRouter(cfg *config.Config, h *APIHandler) http.Handler {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not Found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	router.Use(timeoutMiddleware(cfg.RequestTimeout))

	api := router.PathPrefix("/api/v1").Subrouter()

	route(api, "/health", h.HealthHandler, http.MethodGet)

	// Accounts
	route(api, "/auth/register", h.RegisterHandler, http.MethodPost)
	route(api, "/auth/login", h.LoginHandler, http.MethodPost)
	route(api, "/auth/me", h.AuthMiddleware(h.MeHandler), http.MethodGet)

	// Public catalog
	route(api, "/meditations", h.ListMeditationsHandler, http.MethodGet)
	route(api, "/meditations/{id:[0-9]+}", h.GetMeditationHandler, http.MethodGet)

	// Catalog administration
	route(api, "/admin/meditations", h.AdminMiddleware(h.CreateMeditationHandler), http.MethodPost)
	route(api, "/admin/meditations/{id:[0-9]+}", h.AdminMiddleware(h.UpdateMeditationHandler), http.MethodPatch)
	route(api, "/admin/meditations/{id:[0-9]+}", h.AdminMiddleware(h.DeleteMeditationHandler), http.MethodDelete)
	route(api, "/admin/meditations/{id:[0-9]+}/upload-audio", h.AdminMiddleware(h.UploadAudioHandler), http.MethodPost)

	// Listening sessions
	route(api, "/sessions/start", h.StartSessionHandler, http.MethodPost)
	route(api, "/sessions/{id:[0-9]+}/complete", h.CompleteSessionHandler, http.MethodPost)
	route(api, "/sessions/stats/{device_id:-?[0-9]+}", h.StatsHandler, http.MethodGet)

	// CORS wraps the router so preflight is answered before route matching.
	return loggingMiddleware(corsMiddleware(cfg.CORSOrigins)(router))
}

// HealthHandler reports whether the database answers.
func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(r.Context())
	}
	if err != nil {
		logger.Error("Health check failed", logger.ErrorField(err))
		writeError(w, http.StatusServiceUnavailable, "Database unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Start connects the database and object storage, then serves HTTP until ctx
// is cancelled or SIGINT/SIGTERM arrives.
func Start(ctx context.Context, cfg *config.Config) error {
	gdb, err := db.Connect(cfg)
	if err != nil {
		return err
	}
	defer db.Close(gdb)

	if err := db.AutoMigrate(gdb); err != nil {
		return err
	}
	if err := db.Seed(ctx, gdb, cfg); err != nil {
		return err
	}

	blobs, err := storage.NewS3Store(cfg)
	if err != nil {
		return err
	}
	if cfg.S3AutoCreateBucket {
		if err := blobs.EnsureBucket(ctx); err != nil {
			return err
		}
	}

	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.JWTTTL)
	if err != nil {
		return fmt.Errorf("invalid token configuration: %w", err)
	}

	handler := NewAPIHandler(cfg, gdb, tokens, blobs, nil)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      NewRouter(cfg, handler),
		ReadTimeout:  cfg.RequestTimeout + 30*time.Second, // uploads may be slow
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", logger.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}
