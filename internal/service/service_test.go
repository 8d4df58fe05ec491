package service

// Общие хелперы тестов сервисного слоя.
//
// Моки сгенерированы в пакете /mocks (MockStorage, MockCache).
// Подготовка окружения:
//   go test ./internal/service -v -race -count=1

import (
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"

	"github.com/pribylovaa/news-reader-api/internal/config"
	"github.com/pribylovaa/news-reader-api/internal/models"
	"github.com/pribylovaa/news-reader-api/mocks"
)

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:        "test-secret",
			AccessTokenTTL:   15 * time.Minute,
			RefreshTokenTTL:  168 * time.Hour,
			Issuer:           "news-reader-api",
			Audience:         []string{"mobile-app"},
			LoginWindow:      time.Minute,
			LoginMaxAttempts: 5,
		},
		Cache: config.CacheConfig{
			NewsTTL:      time.Minute,
			FavoritesTTL: time.Minute,
			HistoryTTL:   5 * time.Minute,
		},
		Limits: config.LimitsConfig{
			Default:   10,
			Max:       100,
			Highlight: 5,
		},
	}
}

func newServiceWithMocks(t *testing.T) (*Service, *mocks.MockStorage, *mocks.MockCache, *gomock.Controller) {
	t.Helper()
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStorage(ctrl)
	ch := mocks.NewMockCache(ctrl)
	s := New(st, ch, testConfig())
	return s, st, ch, ctrl
}

// mustNews — быстрый хелпер для сборки новости.
func mustNews(id uuid.UUID, title string, publishedAt time.Time) models.News {
	return models.News{
		ID:          id,
		Title:       title,
		Content:     "content of " + title,
		PublishedAt: publishedAt.UTC(),
		Category:    &models.Category{ID: uuid.New(), Name: "tech"},
		Source:      &models.Source{ID: uuid.New(), Name: "wire", LogoURL: "https://cdn.example.com/wire.png"},
	}
}
