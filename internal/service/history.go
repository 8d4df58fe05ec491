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

// MarkAsRead — идемпотентная отметка «прочитано».
//
// Повторный вызов для той же пары (user, news) обновляет read_at
// существующей строки (touch), дубликатов не появляется. После записи
// инвалидируются все кэшированные страницы истории пользователя.
func (s *Service) MarkAsRead(ctx context.Context, userID, newsID uuid.UUID) error {
	const op = "service.history.MarkAsRead"

	if _, err := s.storage.UserByID(ctx, userID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.storage.NewsByID(ctx, newsID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNewsNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.TouchHistory(ctx, userID, newsID, time.Now().UTC()); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.invalidate(ctx, cache.HistoryPattern(userID))

	log.From(ctx).Info("history_touched",
		slog.String("op", op),
		slog.String("user_id", userID.String()),
		slog.String("news_id", newsID.String()),
	)

	return nil
}

// History возвращает курсорную страницу истории чтения.
// Сортировка фиксирована: read_at DESC; курсор строго исключающий.
func (s *Service) History(ctx context.Context, userID uuid.UUID, opts models.CursorListOptions) (*models.HistoryPage, error) {
	const op = "service.history.History"

	opts.Limit = s.limitOrDefault(opts.Limit)
	opts.Sort = models.SortDesc

	before, err := parseCursor(opts.Cursor)
	if err != nil {
		log.From(ctx).Warn("history_invalid_cursor",
			slog.String("op", op),
			slog.String("cursor", opts.Cursor),
		)

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCursor)
	}

	key := cache.HistoryKey(userID, opts)

	var cached models.HistoryPage
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	rows, err := s.storage.ListHistory(ctx, userID, models.CursorQuery{
		Limit:      opts.Limit + 1,
		Before:     before,
		CategoryID: opts.CategoryID,
		Search:     opts.Search,
		Sort:       models.SortDesc,
	})
	if err != nil {
		log.From(ctx).Error("history_storage_error",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	page := &models.HistoryPage{Items: make([]models.HistoryItem, 0, len(rows))}

	hasMore := len(rows) > int(opts.Limit)
	if hasMore {
		rows = rows[:opts.Limit]
	}

	for _, h := range rows {
		item := models.HistoryItem{ID: h.ID, ReadAt: h.ReadAt}
		if h.News != nil {
			item.News = models.NewsRef(*h.News)
		}

		page.Items = append(page.Items, item)
	}

	if hasMore {
		cur := formatCursor(rows[len(rows)-1].ReadAt)
		page.NextCursor = &cur
	}

	// История меняется реже лент — TTL длиннее (по умолчанию 5 минут).
	s.cachePut(ctx, key, page, s.cfg.Cache.HistoryTTL)

	log.From(ctx).Info("history_ok",
		slog.String("op", op),
		slog.Int("items", len(page.Items)),
		slog.Bool("has_next_page", page.NextCursor != nil),
	)

	return page, nil
}

// RemoveFromHistory удаляет запись истории по паре (user, news).
func (s *Service) RemoveFromHistory(ctx context.Context, userID, newsID uuid.UUID) error {
	const op = "service.history.RemoveFromHistory"

	if err := s.storage.DeleteHistory(ctx, userID, newsID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrHistoryNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	s.invalidate(ctx, cache.HistoryPattern(userID))

	log.From(ctx).Info("history_removed",
		slog.String("op", op),
		slog.String("user_id", userID.String()),
		slog.String("news_id", newsID.String()),
	)

	return nil
}
