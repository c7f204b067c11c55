package omdb

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"letterboxd-channel-bot/internal/domain"
	"letterboxd-channel-bot/internal/infra/metrics"
)

const (
	lookupAttempts = 3
	lookupWait     = 30 * time.Second
)

// Enricher дополняет запись метаданными фильма. После исчерпания попыток
// возвращает заглушку: конвейер не должен застревать на обогащении.
type Enricher struct {
	client   *Client
	cache    domain.Cache
	log      zerolog.Logger
	attempts int
	wait     time.Duration
	cacheTTL time.Duration
}

var _ domain.Enricher = (*Enricher)(nil)

// NewEnricher создаёт обогатитель. cache может быть nil.
func NewEnricher(client *Client, cache domain.Cache, cacheTTL time.Duration, logger zerolog.Logger) *Enricher {
	if cacheTTL <= 0 {
		cacheTTL = 24 * time.Hour
	}
	return &Enricher{
		client:   client,
		cache:    cache,
		log:      logger,
		attempts: lookupAttempts,
		wait:     lookupWait,
		cacheTTL: cacheTTL,
	}
}

// Enrich возвращает метаданные фильма либо заглушку.
func (e *Enricher) Enrich(ctx context.Context, entry domain.FeedEntry) domain.MovieMetadata {
	key := cacheKey(entry.FilmTitle, entry.FilmYear)
	if meta, ok := e.fromCache(ctx, key); ok {
		return meta
	}

	for attempt := 1; attempt <= e.attempts; attempt++ {
		meta, err := e.client.Lookup(ctx, entry.FilmTitle, entry.FilmYear)
		if err == nil {
			e.toCache(ctx, key, meta)
			return meta
		}
		e.log.Warn().Err(err).
			Str("film", entry.FilmTitle).
			Int("attempt", attempt).
			Msg("обогащение не удалось")
		if attempt == e.attempts {
			break
		}
		select {
		case <-ctx.Done():
			metrics.EnrichmentFallbacks.Inc()
			return domain.PlaceholderMetadata(entry.FilmTitle, entry.FilmYear)
		case <-time.After(e.wait):
		}
	}

	metrics.EnrichmentFallbacks.Inc()
	e.log.Error().Str("film", entry.FilmTitle).Msg("попытки обогащения исчерпаны, используем заглушку")
	return domain.PlaceholderMetadata(entry.FilmTitle, entry.FilmYear)
}

func (e *Enricher) fromCache(ctx context.Context, key string) (domain.MovieMetadata, bool) {
	if e.cache == nil {
		return domain.MovieMetadata{}, false
	}
	data, err := e.cache.Get(ctx, key)
	if err != nil || len(data) == 0 {
		return domain.MovieMetadata{}, false
	}
	var meta domain.MovieMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return domain.MovieMetadata{}, false
	}
	return meta, true
}

func (e *Enricher) toCache(ctx context.Context, key string, meta domain.MovieMetadata) {
	if e.cache == nil {
		return
	}
	data, err := json.Marshal(meta)
	if err != nil {
		return
	}
	if err := e.cache.Set(ctx, key, data, e.cacheTTL); err != nil {
		e.log.Debug().Err(err).Str("key", key).Msg("не удалось записать метаданные в кэш")
	}
}

func cacheKey(title, year string) string {
	return fmt.Sprintf("omdb:%s:%s", title, year)
}
