package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/pribylovaa/news-reader-api/internal/models"
	"github.com/pribylovaa/news-reader-api/internal/storage"
)

// Выборки новостей всегда идут с присоединёнными рубрикой и источником,
// поэтому список колонок и join-часть зафиксированы в одном месте.
const newsColumns = `n.id, n.title, n.content, n.image_url, n.published_at, n.is_breaking,
	c.id, c.name, s.id, s.name, s.logo_url`

const newsJoins = `LEFT JOIN categories c ON c.id = n.category_id
	LEFT JOIN sources s ON s.id = n.source_id`

// buildNewsFilter превращает неизменяемую спецификацию фильтра в готовый
// WHERE-фрагмент и аргументы. Ветвление — только по заполненным полям;
// никакого мутируемого query-объекта, протаскиваемого через опции.
func buildNewsFilter(opts models.NewsListOptions, breaking *bool) (string, []any) {
	var conds []string
	var args []any

	if opts.CategoryID != nil {
		args = append(args, *opts.CategoryID)
		conds = append(conds, fmt.Sprintf("n.category_id = $%d", len(args)))
	}

	if opts.Search != "" {
		args = append(args, likePattern(opts.Search))
		p := len(args)
		conds = append(conds, fmt.Sprintf("(n.title ILIKE $%d OR n.content ILIKE $%d OR s.name ILIKE $%d)", p, p, p))
	}

	if breaking != nil {
		args = append(args, *breaking)
		conds = append(conds, fmt.Sprintf("n.is_breaking = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}

	return "WHERE " + strings.Join(conds, " AND "), args
}

// ListNews возвращает страницу новостей по фильтру и общее число строк,
// подходящих под фильтр без учёта пагинации (для meta.total).
func (s *Storage) ListNews(ctx context.Context, opts models.NewsListOptions, breaking *bool) ([]models.News, int64, error) {
	const op = "storage.postgres.ListNews"

	where, args := buildNewsFilter(opts, breaking)

	countQuery := fmt.Sprintf(`SELECT count(*) FROM news n %s %s`, newsJoins, where)

	var total int64
	if err := s.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: count: %w", op, err)
	}

	order := "DESC"
	if opts.Sort == models.SortAsc {
		order = "ASC"
	}

	args = append(args, opts.Limit)
	limitArg := len(args)
	// OFFSET считаем в int64: произведение больших page*limit в int32
	// переполняется и уходит в Postgres отрицательным.
	args = append(args, int64(opts.Page-1)*int64(opts.Limit))
	offsetArg := len(args)

	listQuery := fmt.Sprintf(`
	SELECT %s
	FROM news n %s
	%s
	ORDER BY n.published_at %s
	LIMIT $%d OFFSET $%d
	`, newsColumns, newsJoins, where, order, limitArg, offsetArg)

	rows, err := s.db.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var items []models.News
	for rows.Next() {
		news, scanErr := scanJoinedNews(rows.Scan)
		if scanErr != nil {
			return nil, 0, fmt.Errorf("%s: scan row: %w", op, scanErr)
		}

		items = append(items, *news)
	}

	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("%s: rows: %w", op, rows.Err())
	}

	return items, total, nil
}

// Highlights возвращает топ-N новостей по published_at DESC с фильтром
// по признаку «молнии».
func (s *Storage) Highlights(ctx context.Context, breaking bool, limit int32) ([]models.News, error) {
	const op = "storage.postgres.Highlights"

	query := fmt.Sprintf(`
	SELECT %s
	FROM news n %s
	WHERE n.is_breaking = $1
	ORDER BY n.published_at DESC
	LIMIT $2
	`, newsColumns, newsJoins)

	rows, err := s.db.Query(ctx, query, breaking, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var items []models.News
	for rows.Next() {
		news, scanErr := scanJoinedNews(rows.Scan)
		if scanErr != nil {
			return nil, fmt.Errorf("%s: scan row: %w", op, scanErr)
		}

		items = append(items, *news)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, rows.Err())
	}

	return items, nil
}

// NewsByID возвращает новость по идентификатору.
// Если запись не найдена — storage.ErrNotFound.
func (s *Storage) NewsByID(ctx context.Context, id uuid.UUID) (*models.News, error) {
	const op = "storage.postgres.NewsByID"

	query := fmt.Sprintf(`
	SELECT %s
	FROM news n %s
	WHERE n.id = $1
	`, newsColumns, newsJoins)

	news, err := scanJoinedNews(s.db.QueryRow(ctx, query, id).Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return news, nil
}

// scanJoinedNews разбирает строку news + LEFT JOIN рубрики/источника.
// Отсутствующая привязка даёт nil-поле, а не нулевые значения.
func scanJoinedNews(scan func(dest ...any) error) (*models.News, error) {
	var news models.News
	var (
		catID   *uuid.UUID
		catName *string
		srcID   *uuid.UUID
		srcName *string
		srcLogo *string
	)

	if err := scan(
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

	// Нормализация в UTC.
	news.PublishedAt = news.PublishedAt.UTC()

	if catID != nil {
		news.Category = &models.Category{ID: *catID, Name: derefString(catName)}
	}

	if srcID != nil {
		news.Source = &models.Source{ID: *srcID, Name: derefString(srcName), LogoURL: derefString(srcLogo)}
	}

	return &news, nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
