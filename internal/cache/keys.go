package cache

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/pribylovaa/news-reader-api/internal/models"
)

// Построение ключей кэша.
//
// Несущий инвариант: семантически одинаковый запрос обязан давать
// байт-в-байт одинаковый ключ независимо от порядка сборки фильтра и
// наличия «пустых» полей. Иначе кэш из lookup-таблицы превращается в
// утечку keyspace. Переименование схемы ключей требует согласованного
// сброса кэша.

// BuildKey сериализует фильтр в ключ: nil-значения отбрасываются,
// остальные пары сортируются по имени и склеиваются как k=v через '&'
// после "prefix?". Пустой фильтр схлопывается до голого префикса.
func BuildKey(prefix string, filter map[string]any) string {
	parts := make([]string, 0, len(filter))
	for k, v := range filter {
		if v == nil {
			continue
		}

		parts = append(parts, k+"="+fmt.Sprintf("%v", v))
	}

	if len(parts) == 0 {
		return prefix
	}

	sort.Strings(parts)

	return prefix + "?" + strings.Join(parts, "&")
}

// Префиксы лент новостей.
const (
	NewsListPrefix            = "news:list"
	BreakingListPrefix        = "news:breaking:list"
	RecommendationsListPrefix = "news:recommendations:list"
)

// NewsListKey — ключ страницы ленты новостей для данного префикса.
func NewsListKey(prefix string, opts models.NewsListOptions) string {
	filter := map[string]any{
		"page":      opts.Page,
		"limit":     opts.Limit,
		"sortOrder": string(opts.Sort),
	}

	if opts.CategoryID != nil {
		filter["categoryId"] = opts.CategoryID.String()
	}

	if opts.Search != "" {
		filter["search"] = opts.Search
	}

	return BuildKey(prefix, filter)
}

// NewsDetailKey — ключ детальной карточки.
func NewsDetailKey(id uuid.UUID) string {
	return "news:detail:" + id.String()
}

// HighlightKey — ключ топ-N ленты ("breaking" | "recommendations").
func HighlightKey(kind string, limit int32) string {
	return "news:" + kind + ":highlight:limit=" + strconv.FormatInt(int64(limit), 10)
}

// FavoritesKey — ключ страницы закладок пользователя. Статический контекст
// (владелец) кодируется литеральными сегментами, отсутствующие фильтры — "null".
func FavoritesKey(userID uuid.UUID, opts models.CursorListOptions) string {
	return strings.Join([]string{
		"favorites", "user", userID.String(),
		strconv.FormatInt(int64(opts.Limit), 10),
		orDefault(opts.Cursor, "null"),
		categoryOr(opts.CategoryID, "null"),
		string(opts.Sort),
		orDefault(opts.Search, "null"),
	}, ":")
}

// FavoritesPattern — glob инвалидации всех закладочных выборок пользователя.
func FavoritesPattern(userID uuid.UUID) string {
	return "favorites:user:" + userID.String() + ":*"
}

// HistoryKey — ключ страницы истории чтения; отсутствующие фильтры — "none".
func HistoryKey(userID uuid.UUID, opts models.CursorListOptions) string {
	return strings.Join([]string{
		"reading-history", userID.String(),
		strconv.FormatInt(int64(opts.Limit), 10),
		orDefault(opts.Cursor, "none"),
		categoryOr(opts.CategoryID, "none"),
		orDefault(opts.Search, "none"),
	}, ":")
}

// HistoryPattern — glob инвалидации истории чтения пользователя.
func HistoryPattern(userID uuid.UUID) string {
	return "reading-history:" + userID.String() + ":*"
}

// LoginAttemptsKey — счётчик попыток входа (fixed window).
func LoginAttemptsKey(email string) string {
	return "login:attempts:" + email
}

// RefreshTokenKey — запись refresh-токена по его sha256-хэшу.
func RefreshTokenKey(hash string) string {
	return "auth:rt:" + hash
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}

	return s
}

func categoryOr(id *uuid.UUID, def string) string {
	if id == nil {
		return def
	}

	return id.String()
}
