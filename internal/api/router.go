package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/laguz/internal/blocktree"
	"github.com/starford/laguz/internal/vocab"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *vocab.Service, blocks *blocktree.Store, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc, blocks)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Vocabulary flows.
	r.Post("/extract", h.Extract)
	r.Post("/export", h.Export)

	// Export ledger.
	r.Get("/exports", h.ListExports)
	r.Delete("/exports", h.ResetExports)

	// Block tree.
	r.Get("/blocks/{id}", h.GetBlock)
	r.Put("/blocks/{id}", h.PutBlock)
	r.Get("/blocks/{id}/children", h.GetBlockChildren)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
