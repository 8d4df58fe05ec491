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

// AddFavorite — POST /favorites/{newsId}: добавить новость в закладки.
func (h *Handlers) AddFavorite(w http.ResponseWriter, r *http.Request) {
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

	created, err := h.Service.AddFavorite(r.Context(), userID, newsID)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// RemoveFavorite — DELETE /favorites/{favoriteId}.
func (h *Handlers) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		apierrors.WriteError(w, r, service.ErrInvalidToken)
		return
	}

	favoriteID, err := uuid.Parse(chi.URLParam(r, "favoriteId"))
	if err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	if err := h.Service.RemoveFavorite(r.Context(), userID, favoriteID); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// ListFavorites — GET /favorites?limit&cursor&categoryId&sortOrder&search.
func (h *Handlers) ListFavorites(w http.ResponseWriter, r *http.Request) {
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

	page, err := h.Service.ListFavorites(r.Context(), userID, opts)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// cursorListOptions разбирает query-параметры курсорной пагинации.
func cursorListOptions(r *http.Request) (models.CursorListOptions, error) {
	var opts models.CursorListOptions

	limit, err := queryInt32(r, "limit")
	if err != nil {
		return opts, err
	}
	opts.Limit = limit

	categoryID, err := queryUUID(r, "categoryId")
	if err != nil {
		return opts, err
	}
	opts.CategoryID = categoryID

	opts.Cursor = r.URL.Query().Get("cursor")
	opts.Search = r.URL.Query().Get("search")
	opts.Sort = models.ParseSortOrder(r.URL.Query().Get("sortOrder"))

	return opts, nil
}
