package models

import (
	"time"

	"github.com/google/uuid"
)

// Ответные формы API. Эти же структуры сериализуются в кэш,
// поэтому набор json-тегов — часть контракта хранения.

// CategoryRef — компактная ссылка на рубрику в списках.
type CategoryRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// SourceRef — компактная ссылка на источник в списках.
type SourceRef struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	LogoURL string    `json:"logoUrl"`
}

// NewsListItem — элемент ленты.
type NewsListItem struct {
	ID          uuid.UUID    `json:"id"`
	Title       string       `json:"title"`
	ImageURL    string       `json:"imageUrl"`
	PublishedAt time.Time    `json:"publishedAt"`
	Source      *SourceRef   `json:"source"`
	Category    *CategoryRef `json:"category"`
}

// NewsDetail — детальная карточка; в отличие от элемента списка несёт
// полный текст. Source/Category остаются опциональными: новость без
// привязки отдаётся с null, а не падает.
type NewsDetail struct {
	ID          uuid.UUID    `json:"id"`
	Title       string       `json:"title"`
	Content     string       `json:"content"`
	ImageURL    string       `json:"imageUrl"`
	PublishedAt time.Time    `json:"publishedAt"`
	IsBreaking  bool         `json:"isBreaking"`
	Source      *SourceRef   `json:"source"`
	Category    *CategoryRef `json:"category"`
}

// ListMeta — метаданные offset-пагинации.
type ListMeta struct {
	Total      int64 `json:"total"`
	Page       int32 `json:"page"`
	Limit      int32 `json:"limit"`
	TotalPages int64 `json:"totalPages"`
}

// NewsListResponse — страница ленты с метаданными.
type NewsListResponse struct {
	Data []NewsListItem `json:"data"`
	Meta ListMeta       `json:"meta"`
}

// HighlightsResponse — топ-N без пагинации.
type HighlightsResponse struct {
	Data []NewsListItem `json:"data"`
}

// FavoriteItem — закладка в выдаче листинга.
type FavoriteItem struct {
	ID        uuid.UUID    `json:"id"`
	CreatedAt time.Time    `json:"createdAt"`
	News      NewsListItem `json:"news"`
}

// FavoritesPage — курсорная страница закладок.
// NextCursor — RFC3339Nano-таймстемп последнего элемента или null.
type FavoritesPage struct {
	Items      []FavoriteItem `json:"items"`
	NextCursor *string        `json:"nextCursor"`
}

// HistoryItem — запись истории чтения в выдаче.
type HistoryItem struct {
	ID     uuid.UUID    `json:"id"`
	ReadAt time.Time    `json:"readAt"`
	News   NewsListItem `json:"news"`
}

// HistoryPage — курсорная страница истории чтения.
type HistoryPage struct {
	Items      []HistoryItem `json:"items"`
	NextCursor *string       `json:"nextCursor"`
}

// CreatedFavorite — ответ на добавление закладки.
type CreatedFavorite struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	NewsID    uuid.UUID `json:"newsId"`
	CreatedAt time.Time `json:"createdAt"`
}

// SuccessResponse — минимальный ответ мутаций без полезной нагрузки.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// NewsRef конвертирует доменную новость в элемент списка.
func NewsRef(n News) NewsListItem {
	item := NewsListItem{
		ID:          n.ID,
		Title:       n.Title,
		ImageURL:    n.ImageURL,
		PublishedAt: n.PublishedAt,
	}

	if n.Source != nil {
		item.Source = &SourceRef{ID: n.Source.ID, Name: n.Source.Name, LogoURL: n.Source.LogoURL}
	}

	if n.Category != nil {
		item.Category = &CategoryRef{ID: n.Category.ID, Name: n.Category.Name}
	}

	return item
}
