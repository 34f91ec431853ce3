package main

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/lookog/scoot-assist-ai/cmd/support-engine-api/handlers"
	appmw "github.com/lookog/scoot-assist-ai/cmd/support-engine-api/middleware"
	"github.com/lookog/scoot-assist-ai/internal/engine"
	"github.com/lookog/scoot-assist-ai/internal/observability"
)

// newHTTPRouter assembles the chi router with middleware and routes.
func newHTTPRouter(logger *observability.Logger, eng *engine.Engine, db *sql.DB) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(appmw.RequestID)
	r.Use(appmw.RequestLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(appmw.CORS)
	r.Use(chimw.Timeout(60 * time.Second))

	health := handlers.NewHealthHandler(db)
	r.Get("/health", health.Health)
	r.Get("/ready", health.Ready)

	chat := handlers.NewChatHandler(logger, eng)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/chat/query", chat.Query)
	})

	return r
}
