package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/pd-tracker/internal/config"
	"github.com/pd-tracker/internal/transport/http/handler"
	appmiddleware "github.com/pd-tracker/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the local API router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// 5 requests/second, burst of 10; the message endpoint is reachable
	// from the page context and a login storm must not flood the bridge.
	messageRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	healthH := handler.NewHealthHandler()
	messageH := handler.NewMessageHandler(deps.Bridge)
	stateH := handler.NewStateHandler(deps.State)
	feedH := handler.NewFeedHandler(deps.Feed)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health-check/{action}", healthH.Ping)
		r.Post("/health-check/{action}", healthH.Ping)

		// Credential sync bridge (page-context collaborator).
		r.With(messageRL.Limit).Post("/messages", messageH.Receive)

		// Presentation layer read contract.
		r.Get("/state", stateH.Get)
		r.Get("/state/credential", stateH.GetCredential)
		r.Delete("/state/credential", stateH.ClearCredential)
		r.Get("/feed", feedH.Fetch)
		r.Get("/feed/stats", feedH.Stats)
		r.Get("/feed/snapshot", feedH.Snapshot)
	})

	return r
}
