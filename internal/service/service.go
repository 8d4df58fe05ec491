// service содержит бизнес-логику сервиса чтения новостей: кэшируемые
// выборки лент/закладок/истории, мутации с инвалидацией кэша и вход
// пользователей с троттлингом.
//
// Основные аспекты:
//   - Экземпляр Service безопасен для конкурентного использования при
//     условии потокобезопасности переданных storage.Storage и cache.Cache.
//   - Кэш — производное состояние: любая ошибка кэша на пути чтения
//     трактуется как промах, ошибка записи в кэш после успешного чтения
//     из БД логируется и не валит запрос.
//   - Порядок в мутациях фиксирован: сначала БД, потом инвалидация,
//     никогда наоборот. Узкая гонка «чтение стартовало до коммита,
//     дозаполнило кэш после инвалидации» сознательно не закрыта —
//     её ограничивают короткие TTL (60s/300s).
//   - Ошибки возвращаются и далее маппятся транспортом на HTTP-статусы
//     (см. комментарии к переменным ошибок ниже).
package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/pribylovaa/news-reader-api/internal/cache"
	"github.com/pribylovaa/news-reader-api/internal/config"
	"github.com/pribylovaa/news-reader-api/internal/storage"
	"github.com/pribylovaa/news-reader-api/pkg/log"
)

var (
	// ErrUserNotFound — пользователь отсутствует. Транспорт: 404.
	ErrUserNotFound = errors.New("user not found")

	// ErrNewsNotFound — новость отсутствует. Транспорт: 404.
	ErrNewsNotFound = errors.New("news not found")

	// ErrFavoriteNotFound — закладка отсутствует. Транспорт: 404.
	ErrFavoriteNotFound = errors.New("favorite not found")

	// ErrHistoryNotFound — записи истории нет. Транспорт: 404.
	ErrHistoryNotFound = errors.New("history entry not found")

	// ErrAlreadyFavorite — новость уже в закладках. Транспорт: 409.
	ErrAlreadyFavorite = errors.New("already added to favorites")

	// ErrInvalidCursor — курсор не парсится как временная метка. Транспорт: 400.
	ErrInvalidCursor = errors.New("invalid cursor format")

	// ErrInvalidArgument — некорректные входные аргументы. Транспорт: 400.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidCredentials — пара логин/пароль неверна или пользователь
	// не найден. Транспорт: 401.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTooManyAttempts — превышен лимит попыток входа в окне. Транспорт: 401.
	ErrTooManyAttempts = errors.New("too many login attempts")

	// ErrEmailTaken — e-mail уже занят другим пользователем. Транспорт: 409.
	ErrEmailTaken = errors.New("email already taken")

	// ErrInvalidToken — токен (access/refresh) некорректен по формату/подписи
	// или отсутствует в хранилище. Транспорт: 401.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired — срок действия токена истёк. Транспорт: 401.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenRevoked — токен отозван и недействителен независимо от срока.
	// Транспорт: 401.
	ErrTokenRevoked = errors.New("token revoked")
)

// Service — бизнес-логика сервиса чтения новостей.
type Service struct {
	storage storage.Storage
	cache   cache.Cache
	cfg     config.Config
}

// New создаёт новый экземпляр Service.
func New(storage storage.Storage, cache cache.Cache, cfg config.Config) *Service {
	return &Service{
		storage: storage,
		cache:   cache,
		cfg:     cfg,
	}
}

// limitOrDefault приводит запрошенный размер страницы к [Default, Max].
func (s *Service) limitOrDefault(limit int32) int32 {
	if limit <= 0 {
		limit = s.cfg.Limits.Default
	}

	if s.cfg.Limits.Max > 0 && limit > s.cfg.Limits.Max {
		limit = s.cfg.Limits.Max
	}

	return limit
}

// cacheGet читает и десериализует запись кэша в dst.
// Любая ошибка (включая битый payload) трактуется как промах.
func (s *Service) cacheGet(ctx context.Context, key string, dst any) bool {
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			log.From(ctx).Warn("cache_get_failed",
				slog.String("key", key),
				slog.String("err", err.Error()),
			)
		}

		return false
	}

	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		log.From(ctx).Warn("cache_payload_corrupt",
			slog.String("key", key),
			slog.String("err", err.Error()),
		)

		return false
	}

	return true
}

// cachePut сериализует value и кладёт в кэш best-effort: свежий результат
// из БД уже на руках, неудачная запись копии не должна валить запрос.
func (s *Service) cachePut(ctx context.Context, key string, value any, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		log.From(ctx).Warn("cache_marshal_failed",
			slog.String("key", key),
			slog.String("err", err.Error()),
		)

		return
	}

	if err := s.cache.Set(ctx, key, string(raw), ttl); err != nil {
		log.From(ctx).Warn("cache_set_failed",
			slog.String("key", key),
			slog.String("err", err.Error()),
		)
	}
}

// invalidate удаляет кэшированные выборки по шаблону ПОСЛЕ успешной
// мутации БД. Неудача логируется, но не откатывает мутацию: кэш
// производен, TTL ограничивает время жизни устаревшей записи.
func (s *Service) invalidate(ctx context.Context, pattern string) {
	if err := s.cache.DeleteByPattern(ctx, pattern); err != nil {
		log.From(ctx).Error("cache_invalidate_failed",
			slog.String("pattern", pattern),
			slog.String("err", err.Error()),
		)
	}
}
