// models содержит доменные сущности сервиса чтения новостей.
// Эти типы используются слоями бизнес-логики, хранилища и транспорта.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Category — рубрика новости.
type Category struct {
	ID   uuid.UUID
	Name string
}

// Source — источник (издание) новости.
type Source struct {
	ID      uuid.UUID
	Name    string
	LogoURL string
}

// News — доменная сущность новости.
//
// Особенности:
//   - ID — UUIDv4;
//   - временные метки — в UTC;
//   - Category/Source опциональны (nil, если не привязаны);
//   - с точки зрения этого сервиса новость неизменяема.
type News struct {
	// ID — уникальный идентификатор новости.
	ID uuid.UUID
	// Title — заголовок.
	Title string
	// Content — полный текст.
	Content string
	// ImageURL — ссылка на обложку.
	ImageURL string
	// PublishedAt — время публикации (UTC).
	PublishedAt time.Time
	// IsBreaking — признак «молнии».
	IsBreaking bool
	// Category — рубрика; nil, если не задана.
	Category *Category
	// Source — источник; nil, если не задан.
	Source *Source
}
