package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"

	"github.com/pribylovaa/news-reader-api/internal/cache"
	"github.com/pribylovaa/news-reader-api/internal/models"
	"github.com/pribylovaa/news-reader-api/internal/storage"
	"github.com/pribylovaa/news-reader-api/pkg/log"
)

// Виды топ-лент.
const (
	HighlightBreaking        = "breaking"
	HighlightRecommendations = "recommendations"
)

// ListNews возвращает страницу ленты с offset-пагинацией и сквозным кэшем.
//
// breaking == nil — общая лента (news:list); true/false фиксируют ленту
// «молний»/рекомендаций с собственными префиксами ключей.
//
// Правила нормализации: page < 1 -> 1; limit — по конфигу (default/max).
func (s *Service) ListNews(ctx context.Context, opts models.NewsListOptions, breaking *bool) (*models.NewsListResponse, error) {
	const op = "service.news.ListNews"

	if opts.Page < 1 {
		opts.Page = 1
	}
	opts.Limit = s.limitOrDefault(opts.Limit)
	if opts.Sort == "" {
		opts.Sort = models.SortDesc
	}

	prefix := cache.NewsListPrefix
	if breaking != nil {
		if *breaking {
			prefix = cache.BreakingListPrefix
		} else {
			prefix = cache.RecommendationsListPrefix
		}
	}

	key := cache.NewsListKey(prefix, opts)

	var cached models.NewsListResponse
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	items, total, err := s.storage.ListNews(ctx, opts, breaking)
	if err != nil {
		log.From(ctx).Error("list_news_storage_error",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp := &models.NewsListResponse{
		Data: make([]models.NewsListItem, 0, len(items)),
		Meta: models.ListMeta{
			Total:      total,
			Page:       opts.Page,
			Limit:      opts.Limit,
			TotalPages: int64(math.Ceil(float64(total) / float64(opts.Limit))),
		},
	}
	for _, n := range items {
		resp.Data = append(resp.Data, models.NewsRef(n))
	}

	s.cachePut(ctx, key, resp, s.cfg.Cache.NewsTTL)

	log.From(ctx).Info("list_news_ok",
		slog.String("op", op),
		slog.Int("items", len(resp.Data)),
		slog.Int64("total", total),
	)

	return resp, nil
}

// Highlights возвращает топ-N ленты без пагинации.
// kind — "breaking" или "recommendations"; иное — ErrInvalidArgument.
func (s *Service) Highlights(ctx context.Context, kind string, limit int32) (*models.HighlightsResponse, error) {
	const op = "service.news.Highlights"

	if kind != HighlightBreaking && kind != HighlightRecommendations {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if limit <= 0 {
		limit = s.cfg.Limits.Highlight
	}
	if s.cfg.Limits.Max > 0 && limit > s.cfg.Limits.Max {
		limit = s.cfg.Limits.Max
	}

	key := cache.HighlightKey(kind, limit)

	var cached models.HighlightsResponse
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	items, err := s.storage.Highlights(ctx, kind == HighlightBreaking, limit)
	if err != nil {
		log.From(ctx).Error("highlights_storage_error",
			slog.String("op", op),
			slog.String("kind", kind),
			slog.String("err", err.Error()),
		)

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp := &models.HighlightsResponse{Data: make([]models.NewsListItem, 0, len(items))}
	for _, n := range items {
		resp.Data = append(resp.Data, models.NewsRef(n))
	}

	s.cachePut(ctx, key, resp, s.cfg.Cache.NewsTTL)

	return resp, nil
}

// NewsByID возвращает детальную карточку новости.
//
// Ошибки:
// - ErrNewsNotFound — запись отсутствует (маппинг storage.ErrNotFound).
func (s *Service) NewsByID(ctx context.Context, id uuid.UUID) (*models.NewsDetail, error) {
	const op = "service.news.NewsByID"

	key := cache.NewsDetailKey(id)

	var cached models.NewsDetail
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	news, err := s.storage.NewsByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.From(ctx).Warn("news_by_id_not_found",
				slog.String("op", op),
				slog.String("id", id.String()),
			)

			return nil, fmt.Errorf("%s: %w", op, ErrNewsNotFound)
		}

		log.From(ctx).Error("news_by_id_storage_error",
			slog.String("op", op),
			slog.String("id", id.String()),
			slog.String("err", err.Error()),
		)

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	detail := newsDetail(*news)
	s.cachePut(ctx, key, detail, s.cfg.Cache.NewsTTL)

	return detail, nil
}

// newsDetail собирает детальную карточку. Источник/рубрика опциональны:
// новость без привязки отдаётся с null-полями, а не падает на доступе.
func newsDetail(n models.News) *models.NewsDetail {
	detail := &models.NewsDetail{
		ID:          n.ID,
		Title:       n.Title,
		Content:     n.Content,
		ImageURL:    n.ImageURL,
		PublishedAt: n.PublishedAt,
		IsBreaking:  n.IsBreaking,
	}

	if n.Source != nil {
		detail.Source = &models.SourceRef{ID: n.Source.ID, Name: n.Source.Name, LogoURL: n.Source.LogoURL}
	}

	if n.Category != nil {
		detail.Category = &models.CategoryRef{ID: n.Category.ID, Name: n.Category.Name}
	}

	return detail
}
