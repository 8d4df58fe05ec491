package models

import (
	"time"

	"github.com/google/uuid"
)

// Favorite — закладка пользователя на новость.
//
// Инвариант уникальности: не более одной записи на пару (user, news);
// обеспечивается ограничением UNIQUE в БД.
type Favorite struct {
	ID     uuid.UUID
	UserID uuid.UUID
	NewsID uuid.UUID
	// CreatedAt — момент добавления (UTC); ключ курсорной пагинации.
	CreatedAt time.Time
	// News — присоединённая новость; заполняется при листинге, nil после вставки.
	News *News
}

// ReadingHistory — отметка «прочитано» для пары (user, news).
//
// Инвариант уникальности: одна строка на пару; повторное прочтение
// обновляет ReadAt существующей строки (touch), а не создаёт дубликат.
type ReadingHistory struct {
	ID     uuid.UUID
	UserID uuid.UUID
	NewsID uuid.UUID
	// ReadAt — момент последнего прочтения (UTC); ключ курсорной пагинации.
	ReadAt time.Time
	// News — присоединённая новость; заполняется при листинге.
	News *News
}
