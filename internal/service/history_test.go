package service

// Тесты истории чтения (internal/service/history.go).
//
//  Проверяем:
//  - идемпотентность MarkAsRead: повторная отметка — это touch, а не вставка;
//  - инвалидацию reading-history:{uid}:* после мутаций;
//  - единый ключ кэша для одинаковых логических запросов
//    (нормализация отсутствующих фильтров);
//  - фиксированную сортировку read_at DESC и курсорную пагинацию;
//  - маппинг отсутствующей записи на ErrHistoryNotFound.

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/news-reader-api/internal/cache"
	"github.com/pribylovaa/news-reader-api/internal/models"
	"github.com/pribylovaa/news-reader-api/internal/storage"
)

// Повторная отметка той же новости не создаёт дубликата: оба вызова
// уходят в TouchHistory (UPSERT по паре user+news), оба инвалидируют кэш.
func TestService_MarkAsRead_Idempotent(t *testing.T) {
	s, st, ch, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	uid := uuid.New()
	newsID := uuid.New()

	st.EXPECT().UserByID(gomock.Any(), uid).Return(&models.User{ID: uid}, nil).Times(2)
	st.EXPECT().NewsByID(gomock.Any(), newsID).Return(&models.News{ID: newsID}, nil).Times(2)
	st.EXPECT().TouchHistory(gomock.Any(), uid, newsID, gomock.Any()).Return(nil).Times(2)
	ch.EXPECT().DeleteByPattern(gomock.Any(), cache.HistoryPattern(uid)).Return(nil).Times(2)

	require.NoError(t, s.MarkAsRead(context.Background(), uid, newsID))
	require.NoError(t, s.MarkAsRead(context.Background(), uid, newsID))
}

func TestService_MarkAsRead_NewsNotFound(t *testing.T) {
	s, st, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	uid := uuid.New()
	newsID := uuid.New()

	st.EXPECT().UserByID(gomock.Any(), uid).Return(&models.User{ID: uid}, nil)
	st.EXPECT().NewsByID(gomock.Any(), newsID).Return(nil, storage.ErrNotFound)

	err := s.MarkAsRead(context.Background(), uid, newsID)
	require.ErrorIs(t, err, ErrNewsNotFound)
}

// Неудачная инвалидация не валит мутацию: touch прошёл — операция успешна.
func TestService_MarkAsRead_InvalidateFailureIsNonFatal(t *testing.T) {
	s, st, ch, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	uid := uuid.New()
	newsID := uuid.New()

	st.EXPECT().UserByID(gomock.Any(), uid).Return(&models.User{ID: uid}, nil)
	st.EXPECT().NewsByID(gomock.Any(), newsID).Return(&models.News{ID: newsID}, nil)
	st.EXPECT().TouchHistory(gomock.Any(), uid, newsID, gomock.Any()).Return(nil)
	ch.EXPECT().DeleteByPattern(gomock.Any(), cache.HistoryPattern(uid)).Return(context.DeadlineExceeded)

	require.NoError(t, s.MarkAsRead(context.Background(), uid, newsID))
}

// Одинаковый логический запрос даёт одинаковый ключ кэша: второй вызов
// с теми же параметрами обслуживается тем значением, что было записано
// первым (ключи совпадают байт-в-байт).
func TestService_History_StableCacheKey(t *testing.T) {
	s, st, ch, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	uid := uuid.New()

	var firstKey, secondKey string

	gomock.InOrder(
		ch.EXPECT().Get(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, key string) (string, error) {
				firstKey = key
				return "", cache.ErrMiss
			}),
		ch.EXPECT().Get(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, key string) (string, error) {
				secondKey = key
				return "", cache.ErrMiss
			}),
	)
	st.EXPECT().ListHistory(gomock.Any(), uid, gomock.Any()).Return(nil, nil).Times(2)
	ch.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), 5*time.Minute).Return(nil).Times(2)

	_, err := s.History(context.Background(), uid, models.CursorListOptions{})
	require.NoError(t, err)
	_, err = s.History(context.Background(), uid, models.CursorListOptions{})
	require.NoError(t, err)

	require.NotEmpty(t, firstKey)
	require.Equal(t, firstKey, secondKey)
	// Отсутствующие фильтры нормализованы до "none".
	require.Equal(t, "reading-history:"+uid.String()+":10:none:none:none", firstKey)
}

// Сортировка истории всегда read_at DESC, что бы ни пришло в опциях.
func TestService_History_ForcesDescOrder(t *testing.T) {
	s, st, ch, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	uid := uuid.New()

	ch.EXPECT().Get(gomock.Any(), gomock.Any()).Return("", cache.ErrMiss)
	st.EXPECT().ListHistory(gomock.Any(), uid, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, q models.CursorQuery) ([]models.ReadingHistory, error) {
			require.Equal(t, models.SortDesc, q.Sort)
			return nil, nil
		})
	ch.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	_, err := s.History(context.Background(), uid, models.CursorListOptions{Sort: models.SortAsc})
	require.NoError(t, err)
}

// Курсорная страница истории: limit+1-выборка и nextCursor от последнего элемента.
func TestService_History_NextCursor(t *testing.T) {
	s, st, ch, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	uid := uuid.New()
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	mkEntry := func(offset time.Duration) models.ReadingHistory {
		n := mustNews(uuid.New(), "read", base)
		return models.ReadingHistory{
			ID: uuid.New(), UserID: uid, NewsID: n.ID,
			ReadAt: base.Add(offset), News: &n,
		}
	}

	h3 := mkEntry(3 * time.Minute)
	h2 := mkEntry(2 * time.Minute)
	h1 := mkEntry(1 * time.Minute)

	ch.EXPECT().Get(gomock.Any(), gomock.Any()).Return("", cache.ErrMiss)
	st.EXPECT().ListHistory(gomock.Any(), uid, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, q models.CursorQuery) ([]models.ReadingHistory, error) {
			require.EqualValues(t, 3, q.Limit)
			return []models.ReadingHistory{h3, h2, h1}, nil
		})
	ch.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), 5*time.Minute).Return(nil)

	page, err := s.History(context.Background(), uid, models.CursorListOptions{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	require.NotNil(t, page.NextCursor)
	require.Equal(t, h2.ReadAt.Format(time.RFC3339Nano), *page.NextCursor)
}

func TestService_RemoveFromHistory_OK(t *testing.T) {
	s, st, ch, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	uid := uuid.New()
	newsID := uuid.New()

	st.EXPECT().DeleteHistory(gomock.Any(), uid, newsID).Return(nil)
	ch.EXPECT().DeleteByPattern(gomock.Any(), cache.HistoryPattern(uid)).Return(nil)

	require.NoError(t, s.RemoveFromHistory(context.Background(), uid, newsID))
}

func TestService_RemoveFromHistory_NotFound(t *testing.T) {
	s, st, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	uid := uuid.New()
	newsID := uuid.New()

	st.EXPECT().DeleteHistory(gomock.Any(), uid, newsID).Return(storage.ErrNotFound)

	err := s.RemoveFromHistory(context.Background(), uid, newsID)
	require.ErrorIs(t, err, ErrHistoryNotFound)
}
