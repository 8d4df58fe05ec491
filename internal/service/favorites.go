package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pribylovaa/news-reader-api/internal/cache"
	"github.com/pribylovaa/news-reader-api/internal/models"
	"github.com/pribylovaa/news-reader-api/internal/storage"
	"github.com/pribylovaa/news-reader-api/pkg/log"
)

// AddFavorite добавляет новость в закладки пользователя.
//
// Порядок строго фиксирован: проверки существования -> вставка ->
// инвалидация кэша листингов. Дубль пары (user, news) — ErrAlreadyFavorite;
// гонку конкурентных вставок закрывает UNIQUE-ограничение БД.
func (s *Service) AddFavorite(ctx context.Context, userID, newsID uuid.UUID) (*models.CreatedFavorite, error) {
	const op = "service.favorites.AddFavorite"

	if _, err := s.storage.UserByID(ctx, userID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.storage.NewsByID(ctx, newsID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNewsNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	fav, err := s.storage.SaveFavorite(ctx, userID, newsID)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, fmt.Errorf("%s: %w", op, ErrAlreadyFavorite)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.invalidate(ctx, cache.FavoritesPattern(userID))

	log.From(ctx).Info("favorite_added",
		slog.String("op", op),
		slog.String("user_id", userID.String()),
		slog.String("news_id", newsID.String()),
	)

	return &models.CreatedFavorite{
		ID:        fav.ID,
		UserID:    fav.UserID,
		NewsID:    fav.NewsID,
		CreatedAt: fav.CreatedAt,
	}, nil
}

// RemoveFavorite удаляет закладку пользователя и инвалидирует его листинги.
func (s *Service) RemoveFavorite(ctx context.Context, userID, favoriteID uuid.UUID) error {
	const op = "service.favorites.RemoveFavorite"

	if err := s.storage.DeleteFavorite(ctx, userID, favoriteID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrFavoriteNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	s.invalidate(ctx, cache.FavoritesPattern(userID))

	log.From(ctx).Info("favorite_removed",
		slog.String("op", op),
		slog.String("user_id", userID.String()),
		slog.String("favorite_id", favoriteID.String()),
	)

	return nil
}

// ListFavorites возвращает курсорную страницу закладок пользователя.
//
// Курсор — RFC3339-таймстемп created_at последнего элемента предыдущей
// страницы; выборка строго исключающая. Читаем limit+1 строк: лишняя
// строка означает наличие следующей страницы.
func (s *Service) ListFavorites(ctx context.Context, userID uuid.UUID, opts models.CursorListOptions) (*models.FavoritesPage, error) {
	const op = "service.favorites.ListFavorites"

	opts.Limit = s.limitOrDefault(opts.Limit)
	if opts.Sort == "" {
		opts.Sort = models.SortDesc
	}

	before, err := parseCursor(opts.Cursor)
	if err != nil {
		log.From(ctx).Warn("list_favorites_invalid_cursor",
			slog.String("op", op),
			slog.String("cursor", opts.Cursor),
		)

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCursor)
	}

	key := cache.FavoritesKey(userID, opts)

	var cached models.FavoritesPage
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	rows, err := s.storage.ListFavorites(ctx, userID, models.CursorQuery{
		Limit:      opts.Limit + 1,
		Before:     before,
		CategoryID: opts.CategoryID,
		Search:     opts.Search,
		Sort:       opts.Sort,
	})
	if err != nil {
		log.From(ctx).Error("list_favorites_storage_error",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	page := &models.FavoritesPage{Items: make([]models.FavoriteItem, 0, len(rows))}

	hasMore := len(rows) > int(opts.Limit)
	if hasMore {
		rows = rows[:opts.Limit]
	}

	for _, f := range rows {
		item := models.FavoriteItem{ID: f.ID, CreatedAt: f.CreatedAt}
		if f.News != nil {
			item.News = models.NewsRef(*f.News)
		}

		page.Items = append(page.Items, item)
	}

	if hasMore {
		cur := formatCursor(rows[len(rows)-1].CreatedAt)
		page.NextCursor = &cur
	}

	s.cachePut(ctx, key, page, s.cfg.Cache.FavoritesTTL)

	log.From(ctx).Info("list_favorites_ok",
		slog.String("op", op),
		slog.Int("items", len(page.Items)),
		slog.Bool("has_next_page", page.NextCursor != nil),
	)

	return page, nil
}

// parseCursor разбирает курсор клиента; пустая строка — первая страница.
func parseCursor(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}

	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return nil, err
	}

	utc := t.UTC()

	return &utc, nil
}

// formatCursor — единое представление курсора в ответах:
// RFC3339Nano-строка, одинаково для закладок и истории чтения.
func formatCursor(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
