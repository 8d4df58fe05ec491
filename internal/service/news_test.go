package service

// Тесты лент новостей (internal/service/news.go).
//
//  Проверяем:
//  - нормализацию page/limit/sort и расчёт meta;
//  - раздельные префиксы ключей для общей/breaking/recommendations лент;
//  - read-through: промах -> БД -> запись в кэш; попадание -> без БД;
//  - Highlights: дефолтный limit и валидацию kind;
//  - NewsByID: маппинг отсутствующей записи и null-guard карточки.

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/news-reader-api/internal/cache"
	"github.com/pribylovaa/news-reader-api/internal/models"
	"github.com/pribylovaa/news-reader-api/internal/storage"
)

func TestService_ListNews_NormalizationAndMeta(t *testing.T) {
	s, st, ch, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	now := time.Now().UTC()
	items := []models.News{mustNews(uuid.New(), "a", now), mustNews(uuid.New(), "b", now)}

	ch.EXPECT().Get(gomock.Any(), gomock.Any()).Return("", cache.ErrMiss)
	st.EXPECT().ListNews(gomock.Any(), gomock.Any(), (*bool)(nil)).
		DoAndReturn(func(_ context.Context, opts models.NewsListOptions, _ *bool) ([]models.News, int64, error) {
			// page<1 -> 1, limit<=0 -> default, sort "" -> DESC.
			require.EqualValues(t, 1, opts.Page)
			require.EqualValues(t, 10, opts.Limit)
			require.Equal(t, models.SortDesc, opts.Sort)
			return items, 25, nil
		})
	ch.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), time.Minute).Return(nil)

	resp, err := s.ListNews(context.Background(), models.NewsListOptions{Page: 0, Limit: 0}, nil)
	require.NoError(t, err)
	require.Len(t, resp.Data, 2)
	require.EqualValues(t, 25, resp.Meta.Total)
	require.EqualValues(t, 1, resp.Meta.Page)
	require.EqualValues(t, 10, resp.Meta.Limit)
	require.EqualValues(t, 3, resp.Meta.TotalPages)
}

// Каждая лента живёт под своим префиксом ключа.
func TestService_ListNews_KeyPrefixes(t *testing.T) {
	cases := []struct {
		name       string
		breaking   *bool
		wantPrefix string
	}{
		{"all", nil, "news:list"},
		{"breaking", ptrBool(true), "news:breaking:list"},
		{"recommendations", ptrBool(false), "news:recommendations:list"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			s, st, ch, ctrl := newServiceWithMocks(t)
			defer ctrl.Finish()

			var seenKey string
			ch.EXPECT().Get(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, key string) (string, error) {
					seenKey = key
					return "", cache.ErrMiss
				})
			st.EXPECT().ListNews(gomock.Any(), gomock.Any(), tc.breaking).Return(nil, int64(0), nil)
			ch.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

			_, err := s.ListNews(context.Background(), models.NewsListOptions{}, tc.breaking)
			require.NoError(t, err)
			require.True(t, strings.HasPrefix(seenKey, tc.wantPrefix+"?"), "key %q", seenKey)
		})
	}
}

func TestService_ListNews_CacheHitSkipsStorage(t *testing.T) {
	s, _, ch, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	want := models.NewsListResponse{
		Data: []models.NewsListItem{{ID: uuid.New(), Title: "cached"}},
		Meta: models.ListMeta{Total: 1, Page: 1, Limit: 10, TotalPages: 1},
	}
	raw, err := json.Marshal(want)
	require.NoError(t, err)

	ch.EXPECT().Get(gomock.Any(), gomock.Any()).Return(string(raw), nil)

	got, err := s.ListNews(context.Background(), models.NewsListOptions{}, nil)
	require.NoError(t, err)
	require.Equal(t, want.Data[0].Title, got.Data[0].Title)
}

func TestService_Highlights_DefaultLimit(t *testing.T) {
	s, st, ch, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	ch.EXPECT().Get(gomock.Any(), "news:breaking:highlight:limit=5").Return("", cache.ErrMiss)
	st.EXPECT().Highlights(gomock.Any(), true, int32(5)).Return(nil, nil)
	ch.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	_, err := s.Highlights(context.Background(), HighlightBreaking, 0)
	require.NoError(t, err)
}

func TestService_Highlights_UnknownKind(t *testing.T) {
	s, _, _, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	_, err := s.Highlights(context.Background(), "trending", 5)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestService_NewsByID_NotFound(t *testing.T) {
	s, st, ch, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	id := uuid.New()

	ch.EXPECT().Get(gomock.Any(), "news:detail:"+id.String()).Return("", cache.ErrMiss)
	st.EXPECT().NewsByID(gomock.Any(), id).Return(nil, storage.ErrNotFound)

	_, err := s.NewsByID(context.Background(), id)
	require.ErrorIs(t, err, ErrNewsNotFound)
}

// Карточка без category/source не паникует: опциональные блоки остаются nil.
func TestService_NewsByID_NullGuardedRefs(t *testing.T) {
	s, st, ch, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()

	id := uuid.New()
	bare := &models.News{ID: id, Title: "orphan", PublishedAt: time.Now().UTC()}

	ch.EXPECT().Get(gomock.Any(), gomock.Any()).Return("", cache.ErrMiss)
	st.EXPECT().NewsByID(gomock.Any(), id).Return(bare, nil)
	ch.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), time.Minute).Return(nil)

	detail, err := s.NewsByID(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, "orphan", detail.Title)
	require.Nil(t, detail.Category)
	require.Nil(t, detail.Source)
}

func ptrBool(b bool) *bool { return &b }
