package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pribylovaa/news-reader-api/internal/models"
	"github.com/pribylovaa/news-reader-api/internal/storage"
)

// SaveFavorite вставляет закладку.
// Дубль пары (user, news) ловится ограничением UNIQUE и отдаётся как
// storage.ErrAlreadyExists — проверка «существует ли» на сервисном слое
// не закрывает гонку конкурентных вставок, ограничение закрывает.
func (s *Storage) SaveFavorite(ctx context.Context, userID, newsID uuid.UUID) (*models.Favorite, error) {
	const op = "storage.postgres.SaveFavorite"

	fav := models.Favorite{
		ID:     uuid.New(),
		UserID: userID,
		NewsID: newsID,
	}

	err := s.db.QueryRow(ctx, `
	INSERT INTO favorites (id, user_id, news_id, created_at)
	VALUES ($1, $2, $3, now())
	RETURNING created_at
	`, fav.ID, userID, newsID).Scan(&fav.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	fav.CreatedAt = fav.CreatedAt.UTC()

	return &fav, nil
}

// DeleteFavorite удаляет закладку по (userID, favoriteID).
// Ноль затронутых строк — storage.ErrNotFound.
func (s *Storage) DeleteFavorite(ctx context.Context, userID, favoriteID uuid.UUID) error {
	const op = "storage.postgres.DeleteFavorite"

	tag, err := s.db.Exec(ctx, `
	DELETE FROM favorites
	WHERE id = $1 AND user_id = $2
	`, favoriteID, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// ListFavorites возвращает до opts.Limit закладок пользователя с
// присоединёнными новостями. Курсор строго исключающий: < для DESC,
// > для ASC — страницы не пересекаются и не теряют строк.
func (s *Storage) ListFavorites(ctx context.Context, userID uuid.UUID, opts models.CursorQuery) ([]models.Favorite, error) {
	const op = "storage.postgres.ListFavorites"

	args := []any{userID}
	conds := []string{"f.user_id = $1"}

	if opts.CategoryID != nil {
		args = append(args, *opts.CategoryID)
		conds = append(conds, fmt.Sprintf("n.category_id = $%d", len(args)))
	}

	if opts.Search != "" {
		args = append(args, likePattern(opts.Search))
		p := len(args)
		conds = append(conds, fmt.Sprintf("(n.title ILIKE $%d OR n.content ILIKE $%d)", p, p))
	}

	order, cursorOp := "DESC", "<"
	if opts.Sort == models.SortAsc {
		order, cursorOp = "ASC", ">"
	}

	if opts.Before != nil {
		args = append(args, opts.Before.UTC())
		conds = append(conds, fmt.Sprintf("f.created_at %s $%d", cursorOp, len(args)))
	}

	args = append(args, opts.Limit)

	query := fmt.Sprintf(`
	SELECT f.id, f.user_id, f.news_id, f.created_at, %s
	FROM favorites f
	JOIN news n ON n.id = f.news_id
	%s
	WHERE %s
	ORDER BY f.created_at %s
	LIMIT $%d
	`, newsColumns, newsJoins, strings.Join(conds, " AND "), order, len(args))

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var items []models.Favorite
	for rows.Next() {
		fav, scanErr := scanFavorite(rows.Scan)
		if scanErr != nil {
			return nil, fmt.Errorf("%s: scan row: %w", op, scanErr)
		}

		items = append(items, *fav)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, rows.Err())
	}

	return items, nil
}

func scanFavorite(scan func(dest ...any) error) (*models.Favorite, error) {
	var fav models.Favorite
	var news models.News
	var (
		catID   *uuid.UUID
		catName *string
		srcID   *uuid.UUID
		srcName *string
		srcLogo *string
	)

	if err := scan(
		&fav.ID,
		&fav.UserID,
		&fav.NewsID,
		&fav.CreatedAt,
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

	fav.CreatedAt = fav.CreatedAt.UTC()
	news.PublishedAt = news.PublishedAt.UTC()

	if catID != nil {
		news.Category = &models.Category{ID: *catID, Name: derefString(catName)}
	}

	if srcID != nil {
		news.Source = &models.Source{ID: *srcID, Name: derefString(srcName), LogoURL: derefString(srcLogo)}
	}

	fav.News = &news

	return &fav, nil
}
