package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pribylovaa/news-reader-api/internal/models"
	"github.com/pribylovaa/news-reader-api/internal/service"
	"github.com/pribylovaa/news-reader-api/internal/transport/http/apierrors"
)

// ListNews — GET /news: общая лента с offset-пагинацией.
func (h *Handlers) ListNews(w http.ResponseWriter, r *http.Request) {
	h.listNews(w, r, nil)
}

// ListBreaking — GET /news/breaking: лента «молний».
func (h *Handlers) ListBreaking(w http.ResponseWriter, r *http.Request) {
	breaking := true
	h.listNews(w, r, &breaking)
}

// ListRecommendations — GET /news/recommendations: рекомендательная лента.
func (h *Handlers) ListRecommendations(w http.ResponseWriter, r *http.Request) {
	breaking := false
	h.listNews(w, r, &breaking)
}

func (h *Handlers) listNews(w http.ResponseWriter, r *http.Request, breaking *bool) {
	opts, err := newsListOptions(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	resp, err := h.Service.ListNews(r.Context(), opts, breaking)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// BreakingHighlight — GET /news/breaking/highlight?limit.
func (h *Handlers) BreakingHighlight(w http.ResponseWriter, r *http.Request) {
	h.highlight(w, r, service.HighlightBreaking)
}

// RecommendationsHighlight — GET /news/recommendations/highlight?limit.
func (h *Handlers) RecommendationsHighlight(w http.ResponseWriter, r *http.Request) {
	h.highlight(w, r, service.HighlightRecommendations)
}

func (h *Handlers) highlight(w http.ResponseWriter, r *http.Request, kind string) {
	limit, err := queryInt32(r, "limit")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	resp, err := h.Service.Highlights(r.Context(), kind, limit)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetNewsByID — GET /news/{id}: детальная карточка.
func (h *Handlers) GetNewsByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	resp, err := h.Service.NewsByID(r.Context(), id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// newsListOptions разбирает query-параметры offset-пагинации.
func newsListOptions(r *http.Request) (models.NewsListOptions, error) {
	var opts models.NewsListOptions

	page, err := queryInt32(r, "page")
	if err != nil {
		return opts, err
	}
	opts.Page = page

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

	opts.Search = r.URL.Query().Get("search")
	opts.Sort = models.ParseSortOrder(r.URL.Query().Get("sortOrder"))

	return opts, nil
}

// queryInt32 — параметр-число; пустое значение -> 0 (нормализует сервис).
func queryInt32(r *http.Request, name string) (int32, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}

	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil || n < 0 {
		return 0, service.ErrInvalidArgument
	}

	return int32(n), nil
}

// queryUUID — опциональный UUID-параметр; пустое значение -> nil.
func queryUUID(r *http.Request, name string) (*uuid.UUID, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, nil
	}

	id, err := uuid.Parse(v)
	if err != nil {
		return nil, service.ErrInvalidArgument
	}

	return &id, nil
}
