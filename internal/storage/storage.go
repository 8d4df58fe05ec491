// storage определяет контракты доступа к БД для сервиса чтения новостей.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/pribylovaa/news-reader-api/internal/models"
)

var (
	// ErrNotFound — сущность отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — конфликт уникальности (дубль закладки, занятый email).
	ErrAlreadyExists = errors.New("already exists")
)

// NewsStorage описывает read-only операции над сущностью models.News.
type NewsStorage interface {
	// ListNews возвращает страницу новостей по фильтру и общее число
	// строк, подходящих под фильтр без учёта пагинации.
	ListNews(ctx context.Context, opts models.NewsListOptions, breaking *bool) ([]models.News, int64, error)
	// Highlights возвращает топ-N новостей по published_at DESC с
	// фильтром по признаку «молнии».
	Highlights(ctx context.Context, breaking bool, limit int32) ([]models.News, error)
	// NewsByID возвращает новость с присоединёнными рубрикой/источником.
	// Если запись не найдена — ErrNotFound.
	NewsByID(ctx context.Context, id uuid.UUID) (*models.News, error)
}

// FavoritesStorage описывает операции над закладками.
type FavoritesStorage interface {
	// SaveFavorite вставляет закладку; дубль пары (user, news) — ErrAlreadyExists.
	SaveFavorite(ctx context.Context, userID, newsID uuid.UUID) (*models.Favorite, error)
	// DeleteFavorite удаляет закладку по (userID, favoriteID); ноль строк — ErrNotFound.
	DeleteFavorite(ctx context.Context, userID, favoriteID uuid.UUID) error
	// ListFavorites возвращает до opts.Limit закладок с присоединёнными
	// новостями, строго за курсором opts.Before.
	ListFavorites(ctx context.Context, userID uuid.UUID, opts models.CursorQuery) ([]models.Favorite, error)
}

// HistoryStorage описывает операции над историей чтения.
type HistoryStorage interface {
	// TouchHistory — идемпотентная отметка «прочитано»: upsert по паре
	// (user, news), повторный вызов обновляет read_at.
	TouchHistory(ctx context.Context, userID, newsID uuid.UUID, readAt time.Time) error
	// ListHistory возвращает до opts.Limit записей, отсортированных по
	// read_at DESC, строго за курсором opts.Before.
	ListHistory(ctx context.Context, userID uuid.UUID, opts models.CursorQuery) ([]models.ReadingHistory, error)
	// DeleteHistory удаляет запись по паре (user, news); ноль строк — ErrNotFound.
	DeleteHistory(ctx context.Context, userID, newsID uuid.UUID) error
}

// UsersStorage описывает операции над учётными записями.
type UsersStorage interface {
	// SaveUser сохраняет пользователя; занятый email — ErrAlreadyExists.
	SaveUser(ctx context.Context, user *models.User) error
	// UserByEmail возвращает пользователя по нормализованному email.
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	// UserByID возвращает пользователя по идентификатору.
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Storage задаёт контракт доступа к хранилищу целиком.
type Storage interface {
	NewsStorage
	FavoritesStorage
	HistoryStorage
	UsersStorage
	Close()
}
