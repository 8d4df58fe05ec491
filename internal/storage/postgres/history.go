package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pribylovaa/news-reader-api/internal/models"
	"github.com/pribylovaa/news-reader-api/internal/storage"
)

// TouchHistory — идемпотентная отметка «прочитано»: upsert по паре
// (user, news). Повторное прочтение обновляет read_at существующей
// строки, дубликатов не возникает.
func (s *Storage) TouchHistory(ctx context.Context, userID, newsID uuid.UUID, readAt time.Time) error {
	const op = "storage.postgres.TouchHistory"

	_, err := s.db.Exec(ctx, `
	INSERT INTO reading_history (id, user_id, news_id, read_at)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (user_id, news_id) DO UPDATE
	SET read_at = EXCLUDED.read_at
	`, uuid.New(), userID, newsID, readAt.UTC())
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ListHistory возвращает до opts.Limit записей истории с присоединёнными
// новостями. Сортировка фиксирована: read_at DESC; курсор строго
// исключающий (read_at < cursor).
func (s *Storage) ListHistory(ctx context.Context, userID uuid.UUID, opts models.CursorQuery) ([]models.ReadingHistory, error) {
	const op = "storage.postgres.ListHistory"

	args := []any{userID}
	conds := []string{"h.user_id = $1"}

	if opts.CategoryID != nil {
		args = append(args, *opts.CategoryID)
		conds = append(conds, fmt.Sprintf("n.category_id = $%d", len(args)))
	}

	if opts.Search != "" {
		args = append(args, likePattern(opts.Search))
		p := len(args)
		conds = append(conds, fmt.Sprintf("(n.title ILIKE $%d OR n.content ILIKE $%d)", p, p))
	}

	if opts.Before != nil {
		args = append(args, opts.Before.UTC())
		conds = append(conds, fmt.Sprintf("h.read_at < $%d", len(args)))
	}

	args = append(args, opts.Limit)

	query := fmt.Sprintf(`
	SELECT h.id, h.user_id, h.news_id, h.read_at, %s
	FROM reading_history h
	JOIN news n ON n.id = h.news_id
	%s
	WHERE %s
	ORDER BY h.read_at DESC
	LIMIT $%d
	`, newsColumns, newsJoins, strings.Join(conds, " AND "), len(args))

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var items []models.ReadingHistory
	for rows.Next() {
		entry, scanErr := scanHistory(rows.Scan)
		if scanErr != nil {
			return nil, fmt.Errorf("%s: scan row: %w", op, scanErr)
		}

		items = append(items, *entry)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, rows.Err())
	}

	return items, nil
}

// DeleteHistory удаляет запись по паре (user, news).
// Ноль затронутых строк — storage.ErrNotFound.
func (s *Storage) DeleteHistory(ctx context.Context, userID, newsID uuid.UUID) error {
	const op = "storage.postgres.DeleteHistory"

	tag, err := s.db.Exec(ctx, `
	DELETE FROM reading_history
	WHERE user_id = $1 AND news_id = $2
	`, userID, newsID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

func scanHistory(scan func(dest ...any) error) (*models.ReadingHistory, error) {
	var entry models.ReadingHistory
	var news models.News
	var (
		catID   *uuid.UUID
		catName *string
		srcID   *uuid.UUID
		srcName *string
		srcLogo *string
	)

	if err := scan(
		&entry.ID,
		&entry.UserID,
		&entry.NewsID,
		&entry.ReadAt,
		&news.ID,
		&news.Title,
		&news.Content,
		&news.ImageURL,
		&news.PublishedAt,
		&news.IsBreaking,
		&catID,
		&catName,
		&srcID,
		&srcName,
		&srcLogo,
	); err != nil {
		return nil, err
	}

	entry.ReadAt = entry.ReadAt.UTC()
	news.PublishedAt = news.PublishedAt.UTC()

	if catID != nil {
		news.Category = &models.Category{ID: *catID, Name: derefString(catName)}
	}

	if srcID != nil {
		news.Source = &models.Source{ID: *srcID, Name: derefString(srcName), LogoURL: derefString(srcLogo)}
	}

	entry.News = &news

	return &entry, nil
}
