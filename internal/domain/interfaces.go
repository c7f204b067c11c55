package domain

import (
	"context"
	"time"
)

// FeedFetcher скачивает сырой XML фида.
type FeedFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// FeedParser извлекает последнюю запись активности из сырого фида.
// Разбор не возвращает ошибку: отсутствующие поля деградируют до пустых
// строк, а полностью пустая запись отсеивается оркестратором.
type FeedParser interface {
	Parse(raw []byte) FeedEntry
}

// SeenRepo хранит отпечатки уже обработанных записей.
type SeenRepo interface {
	Exists(ctx context.Context, fingerprint string) (bool, error)
	Insert(ctx context.Context, fingerprint string) error
}

// Enricher дополняет запись метаданными фильма. Никогда не падает:
// после исчерпания попыток возвращает запись-заглушку.
type Enricher interface {
	Enrich(ctx context.Context, entry FeedEntry) MovieMetadata
}

// Publisher доставляет готовое уведомление в канал.
type Publisher interface {
	Publish(ctx context.Context, imageURL, caption string) error
}

// Cache используется для простых TTL-хранилищ.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
