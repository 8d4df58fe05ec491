package service

// Тесты закладок (internal/service/favorites.go).
//
//  Проверяем:
//  - happy-path добавления с инвалидацией favorites:user:{uid}:*;
//  - дубль пары (user, news) -> ErrAlreadyFavorite;
//  - маппинг отсутствующих user/news;
//  - курсорную пагинацию: limit+1-выборку, усечение страницы, nextCursor;
//  - невалидный курсор -> ErrInvalidCursor без похода в БД;
//  - чтение из кэша без обращения к storage.

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/news-reader-api/internal/cache"
	"github.com/pribylovaa/news-reader-api/internal/models"
	"github.com/pribylovaa/news-reader-api/internal/storage"
)

func TestService_AddFavorite_OK(t *testing.T) {
	s, st, ch, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	uid := uuid.New()
	newsID := uuid.New()
	now := time.Now().UTC()

	st.EXPECT().UserByID(gomock.Any(), uid).Return(&models.User{ID: uid}, nil)
	st.EXPECT().NewsByID(gomock.Any(), newsID).Return(&models.News{ID: newsID}, nil)
	st.EXPECT().SaveFavorite(gomock.Any(), uid, newsID).Return(&models.Favorite{
		ID: uuid.New(), UserID: uid, NewsID: newsID, CreatedAt: now,
	}, nil)
	// Инвалидация всех закладочных выборок пользователя после вставки.
	ch.EXPECT().DeleteByPattern(gomock.Any(), "favorites:user:"+uid.String()+":*").Return(nil)

	created, err := s.AddFavorite(context.Background(), uid, newsID)
	require.NoError(t, err)
	require.Equal(t, uid, created.UserID)
	require.Equal(t, newsID, created.NewsID)
	require.Equal(t, now, created.CreatedAt)
}

// Дубль: storage.ErrAlreadyExists -> ErrAlreadyFavorite, кэш не трогаем.
func TestService_AddFavorite_Duplicate(t *testing.T) {
	s, st, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	uid := uuid.New()
	newsID := uuid.New()

	st.EXPECT().UserByID(gomock.Any(), uid).Return(&models.User{ID: uid}, nil)
	st.EXPECT().NewsByID(gomock.Any(), newsID).Return(&models.News{ID: newsID}, nil)
	st.EXPECT().SaveFavorite(gomock.Any(), uid, newsID).Return(nil, storage.ErrAlreadyExists)

	_, err := s.AddFavorite(context.Background(), uid, newsID)
	require.ErrorIs(t, err, ErrAlreadyFavorite)
}

func TestService_AddFavorite_UserNotFound(t *testing.T) {
	s, st, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	uid := uuid.New()

	st.EXPECT().UserByID(gomock.Any(), uid).Return(nil, storage.ErrNotFound)

	_, err := s.AddFavorite(context.Background(), uid, uuid.New())
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestService_AddFavorite_NewsNotFound(t *testing.T) {
	s, st, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	uid := uuid.New()
	newsID := uuid.New()

	st.EXPECT().UserByID(gomock.Any(), uid).Return(&models.User{ID: uid}, nil)
	st.EXPECT().NewsByID(gomock.Any(), newsID).Return(nil, storage.ErrNotFound)

	_, err := s.AddFavorite(context.Background(), uid, newsID)
	require.ErrorIs(t, err, ErrNewsNotFound)
}

func TestService_RemoveFavorite_OK(t *testing.T) {
	s, st, ch, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	uid := uuid.New()
	favID := uuid.New()

	st.EXPECT().DeleteFavorite(gomock.Any(), uid, favID).Return(nil)
	ch.EXPECT().DeleteByPattern(gomock.Any(), cache.FavoritesPattern(uid)).Return(nil)

	require.NoError(t, s.RemoveFavorite(context.Background(), uid, favID))
}

func TestService_RemoveFavorite_NotFound(t *testing.T) {
	s, st, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	uid := uuid.New()
	favID := uuid.New()

	st.EXPECT().DeleteFavorite(gomock.Any(), uid, favID).Return(storage.ErrNotFound)

	err := s.RemoveFavorite(context.Background(), uid, favID)
	require.ErrorIs(t, err, ErrFavoriteNotFound)
}

// Сценарий обхода по курсору: три закладки, limit=2.
// Первая страница: 2 элемента + nextCursor = createdAt второго.
// Вторая страница (по курсору): 1 элемент, nextCursor == nil.
func TestService_ListFavorites_CursorWalk(t *testing.T) {
	s, st, ch, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	uid := uuid.New()
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	mkFav := func(offset time.Duration) models.Favorite {
		n := mustNews(uuid.New(), "item", base)
		return models.Favorite{
			ID: uuid.New(), UserID: uid, NewsID: n.ID,
			CreatedAt: base.Add(offset), News: &n,
		}
	}

	// DESC: свежие первыми.
	f3 := mkFav(3 * time.Hour)
	f2 := mkFav(2 * time.Hour)
	f1 := mkFav(1 * time.Hour)

	// Страница 1: кэш-промах, выборка limit+1=3, nextCursor от второго элемента.
	ch.EXPECT().Get(gomock.Any(), gomock.Any()).Return("", cache.ErrMiss)
	st.EXPECT().ListFavorites(gomock.Any(), uid, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, q models.CursorQuery) ([]models.Favorite, error) {
			require.EqualValues(t, 3, q.Limit)
			require.Nil(t, q.Before)
			return []models.Favorite{f3, f2, f1}, nil
		})
	ch.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), time.Minute).Return(nil)

	page1, err := s.ListFavorites(context.Background(), uid, models.CursorListOptions{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page1.Items, 2)
	require.NotNil(t, page1.NextCursor)
	require.Equal(t, f2.CreatedAt.Format(time.RFC3339Nano), *page1.NextCursor)
	require.Equal(t, f3.ID, page1.Items[0].ID)
	require.Equal(t, f2.ID, page1.Items[1].ID)

	// Страница 2: курсор передаётся в storage как Before, хвост без nextCursor.
	ch.EXPECT().Get(gomock.Any(), gomock.Any()).Return("", cache.ErrMiss)
	st.EXPECT().ListFavorites(gomock.Any(), uid, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, q models.CursorQuery) ([]models.Favorite, error) {
			require.NotNil(t, q.Before)
			require.True(t, q.Before.Equal(f2.CreatedAt))
			return []models.Favorite{f1}, nil
		})
	ch.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), time.Minute).Return(nil)

	page2, err := s.ListFavorites(context.Background(), uid, models.CursorListOptions{
		Limit:  2,
		Cursor: *page1.NextCursor,
	})
	require.NoError(t, err)
	require.Len(t, page2.Items, 1)
	require.Nil(t, page2.NextCursor)
	require.Equal(t, f1.ID, page2.Items[0].ID)

	// Элементы страниц не пересекаются.
	require.NotEqual(t, page1.Items[1].ID, page2.Items[0].ID)
}

// Невалидный курсор отклоняется до похода в БД и кэш.
func TestService_ListFavorites_InvalidCursor(t *testing.T) {
	s, _, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	_, err := s.ListFavorites(context.Background(), uuid.New(), models.CursorListOptions{
		Cursor: "not-a-timestamp",
	})
	require.ErrorIs(t, err, ErrInvalidCursor)
}

// Кэш-попадание: storage не вызывается вовсе.
func TestService_ListFavorites_CacheHit(t *testing.T) {
	s, _, ch, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	uid := uuid.New()
	want := models.FavoritesPage{Items: []models.FavoriteItem{{ID: uuid.New(), CreatedAt: time.Now().UTC()}}}
	raw, err := json.Marshal(want)
	require.NoError(t, err)

	ch.EXPECT().Get(gomock.Any(), gomock.Any()).Return(string(raw), nil)

	got, err := s.ListFavorites(context.Background(), uid, models.CursorListOptions{})
	require.NoError(t, err)
	require.Equal(t, want.Items[0].ID, got.Items[0].ID)
}

// Ошибка кэша (не ErrMiss) трактуется как промах: запрос обслуживается из БД.
func TestService_ListFavorites_CacheErrorDegradesToMiss(t *testing.T) {
	s, st, ch, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	uid := uuid.New()

	ch.EXPECT().Get(gomock.Any(), gomock.Any()).Return("", context.DeadlineExceeded)
	st.EXPECT().ListFavorites(gomock.Any(), uid, gomock.Any()).Return(nil, nil)
	ch.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	got, err := s.ListFavorites(context.Background(), uid, models.CursorListOptions{})
	require.NoError(t, err)
	require.Empty(t, got.Items)
	require.Nil(t, got.NextCursor)
}
