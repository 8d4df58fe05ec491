package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pribylovaa/news-reader-api/internal/models"
	"github.com/pribylovaa/news-reader-api/internal/service"
	"github.com/pribylovaa/news-reader-api/internal/transport/http/apierrors"
	"github.com/pribylovaa/news-reader-api/internal/transport/http/middleware"
)

type markAsReadRequest struct {
	NewsID uuid.UUID `json:"newsId"`
}

// MarkAsRead — POST /reading-history, тело {newsId}.
// Повторная отметка той же новости идемпотентна (обновляется read_at).
func (h *Handlers) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		apierrors.WriteError(w, r, service.ErrInvalidToken)
		return
	}

	var req markAsReadRequest
	if err := decodeStrict(r, &req); err != nil || req.NewsID == uuid.Nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	if err := h.Service.MarkAsRead(r.Context(), userID, req.NewsID); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// History — GET /reading-history?limit&cursor&categoryId&search.
// Сортировка фиксированная: read_at DESC.
func (h *Handlers) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		apierrors.WriteError(w, r, service.ErrInvalidToken)
		return
	}

	opts, err := cursorListOptions(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	page, err := h.Service.History(r.Context(), userID, opts)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// RemoveFromHistory — DELETE /reading-history/{newsId}.
func (h *Handlers) RemoveFromHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		apierrors.WriteError(w, r, service.ErrInvalidToken)
		return
	}

	newsID, err := uuid.Parse(chi.URLParam(r, "newsId"))
	if err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	if err := h.Service.RemoveFromHistory(r.Context(), userID, newsID); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.SuccessResponse{Success: true})
}
