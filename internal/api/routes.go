package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// SetupRoutes registers the table endpoints on router.
func SetupRoutes(router chi.Router, svc Service) {
	handlers := NewHandlers(svc)

	router.Route("/api/tables", func(r chi.Router) {
		r.Get("/", handlers.ListTables)
		r.Route("/{table}", func(r chi.Router) {
			r.Get("/rows", handlers.Rows)
			r.Get("/fields", handlers.Fields) // ?key= switches to the edit form
			r.Post("/records", handlers.Create)
			r.Put("/records/{key}", handlers.Update)
			r.Delete("/records/{key}", handlers.Delete)
		})
	})
}

// NewRouter builds the complete handler with middleware.
func NewRouter(svc Service, logger *slog.Logger) http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		requestLogger(logger),
		middleware.Recoverer,
	)
	SetupRoutes(r, svc)
	return r
}

// requestLogger logs one line per request through slog.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info("request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", middleware.GetReqID(r.Context())))
		})
	}
}
