package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// SortOrder — направление сортировки списков.
type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// ParseSortOrder нормализует пользовательский ввод; пустое/неизвестное
// значение трактуется как DESC (свежее — первым).
func ParseSortOrder(s string) SortOrder {
	if strings.EqualFold(strings.TrimSpace(s), "asc") {
		return SortAsc
	}

	return SortDesc
}

// NewsListOptions — фильтр offset-пагинируемой выборки новостей.
//
// Значение участвует в построении ключа кэша: одинаковый логический
// запрос обязан давать байт-в-байт одинаковый ключ.
type NewsListOptions struct {
	Page  int32
	Limit int32
	// CategoryID — фильтр по рубрике; nil — без фильтра.
	CategoryID *uuid.UUID
	// Search — подстрока для регистронезависимого поиска по
	// заголовку/тексту/названию источника; "" — без поиска.
	Search string
	Sort   SortOrder
}

// CursorListOptions — фильтр курсорной выборки (закладки, история чтения).
//
// Cursor — «сырой» RFC3339-таймстемп последнего элемента предыдущей
// страницы; валидируется сервисным слоем.
type CursorListOptions struct {
	Limit      int32
	Cursor     string
	CategoryID *uuid.UUID
	Search     string
	Sort       SortOrder
}

// CursorQuery — разобранный фильтр для слоя хранилища.
//
// Before — значение курсора после парсинга; выборка строго исключающая
// (< для DESC, > для ASC), чтобы страницы не пересекались.
type CursorQuery struct {
	Limit      int32
	Before     *time.Time
	CategoryID *uuid.UUID
	Search     string
	Sort       SortOrder
}
