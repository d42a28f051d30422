package router

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"secure-petstore/internal/platform/logger"
	"secure-petstore/internal/response"
)

const limiterCleanupInterval = 10 * time.Minute

func registerHealth(r chi.Router, ready func(ctx context.Context) error) {
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		response.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		response.WriteJSON(w, http.StatusOK, map[string]string{"status": "alive"})
	})

	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := ready(r.Context()); err != nil {
			logger.FromContext(r.Context()).Warn("readiness check failed", map[string]any{
				"error": err,
			})
			response.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status":   "not ready",
				"database": "disconnected",
			})
			return
		}
		response.WriteJSON(w, http.StatusOK, map[string]string{
			"status":   "ready",
			"database": "connected",
		})
	})
}
