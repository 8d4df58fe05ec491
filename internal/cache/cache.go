// cache определяет контракт key/value-кэша сервиса и его Redis-реализацию.
//
// Кэш — производное состояние: источником истины всегда остаётся БД.
// Ошибки соединения отдаются вызывающему как есть; политика «ошибка
// чтения == промах» реализуется сервисным слоем, не здесь.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss — ключ отсутствует или истёк.
var ErrMiss = errors.New("cache miss")

// Cache — минимальный контракт кэша.
//
// Помимо обычных get/set/delete контракт несёт две операции, на которых
// держится корректность сервиса:
//   - DeleteByPattern — инвалидация всех закэшированных выборок по
//     glob-шаблону (одна запись на каждую комбинацию фильтров);
//   - IncrementWithExpiry — атомарный счётчик fixed-window лимитера.
type Cache interface {
	// Get возвращает сырое значение или ErrMiss.
	Get(ctx context.Context, key string) (string, error)
	// Set сохраняет значение; ttl <= 0 — без срока действия.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Delete удаляет ключ; отсутствие ключа — не ошибка.
	Delete(ctx context.Context, key string) error
	// DeleteByPattern удаляет все ключи по glob-шаблону инкрементальным
	// сканом (никогда не блокирующим KEYS).
	DeleteByPattern(ctx context.Context, pattern string) error
	// IncrementWithExpiry атомарно инкрементирует счётчик; при создании
	// счётчик получает ttl, при последующих инкрементах окно НЕ продлевается.
	IncrementWithExpiry(ctx context.Context, key string, ttl time.Duration) (int64, error)
	// Close закрывает соединение с кэшем.
	Close() error
}
