package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/laguz/internal/apperr"
	"github.com/starford/laguz/internal/blocktree"
	"github.com/starford/laguz/internal/models"
	"github.com/starford/laguz/internal/vocab"
)

// Handler holds API route handlers.
type Handler struct {
	svc    *vocab.Service
	blocks *blocktree.Store
}

// NewHandler creates a new Handler.
func NewHandler(svc *vocab.Service, blocks *blocktree.Store) *Handler {
	return &Handler{svc: svc, blocks: blocks}
}

// Extract handles POST /api/extract.
func (h *Handler) Extract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.BlockID == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("block_id is required"))
		return
	}

	res, err := h.svc.Extract(r.Context(), req.BlockID, req.Text)
	if err != nil {
		writeVocabError(w, "extract", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Export handles POST /api/export.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.BlockID == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("block_id is required"))
		return
	}

	sum, err := h.svc.Export(r.Context(), req.BlockID, req.Text, req.Deck)
	if err != nil {
		writeVocabError(w, "export", err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

// ListExports handles GET /api/exports.
func (h *Handler) ListExports(w http.ResponseWriter, r *http.Request) {
	recs, err := h.svc.ListExports(r.URL.Query().Get("block_id"))
	if err != nil {
		slog.Error("list exports failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	if recs == nil {
		recs = []models.ExportRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"exports": recs,
		"total":   len(recs),
	})
}

// ResetExports handles DELETE /api/exports.
func (h *Handler) ResetExports(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.ResetExports(r.URL.Query().Get("block_id"))
	if err != nil {
		slog.Error("reset exports failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, ResetResponse{Removed: n})
}

// GetBlock handles GET /api/blocks/{id}.
func (h *Handler) GetBlock(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	text, err := h.blocks.GetBlockText(id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("get block failed", slog.String("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id, "text": text})
}

// PutBlock handles PUT /api/blocks/{id}: the host pushes a source
// block's text into the daemon.
func (h *Handler) PutBlock(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	id := chi.URLParam(r, "id")
	var req BlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	h.blocks.Put(id, req.Text)
	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

// GetBlockChildren handles GET /api/blocks/{id}/children.
func (h *Handler) GetBlockChildren(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	children, err := h.blocks.QueryChildren(id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("get children failed", slog.String("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"children": children})
}

// writeVocabError maps service errors onto HTTP statuses. Sentinels get
// specific statuses; everything else is a 500 with a generic body.
func writeVocabError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("block not found"))
	case errors.Is(err, apperr.ErrNoMarkedTerms):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody("no marked terms in block"))
	case errors.Is(err, apperr.ErrExportInFlight):
		writeJSON(w, http.StatusConflict, errorBody("an export is already running"))
	case errors.Is(err, apperr.ErrSinkUnavailable):
		writeJSON(w, http.StatusServiceUnavailable, errorBody("flashcard sink unreachable"))
	case errors.Is(err, apperr.ErrMalformedModelOutput):
		writeJSON(w, http.StatusBadGateway, errorBody("model returned malformed output"))
	default:
		slog.Error(op+" failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}
