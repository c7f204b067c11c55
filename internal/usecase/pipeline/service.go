package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"letterboxd-channel-bot/internal/domain"
	"letterboxd-channel-bot/internal/infra/metrics"
)

// Service последовательно проводит записи фидов по конвейеру
// загрузка → разбор → дедупликация → обогащение → публикация.
// Один логический воркер: фиды обходятся строго по очереди.
type Service struct {
	fetcher   domain.FeedFetcher
	parser    domain.FeedParser
	seen      domain.SeenRepo
	enricher  domain.Enricher
	publisher domain.Publisher
	urls      []string
	interval  time.Duration
	log       zerolog.Logger
}

// NewService создаёт оркестратор конвейера.
func NewService(
	fetcher domain.FeedFetcher,
	parser domain.FeedParser,
	seen domain.SeenRepo,
	enricher domain.Enricher,
	publisher domain.Publisher,
	urls []string,
	interval time.Duration,
	logger zerolog.Logger,
) *Service {
	return &Service{
		fetcher:   fetcher,
		parser:    parser,
		seen:      seen,
		enricher:  enricher,
		publisher: publisher,
		urls:      urls,
		interval:  interval,
		log:       logger,
	}
}

// Run крутит цикл опроса до отмены контекста.
func (s *Service) Run(ctx context.Context) error {
	for {
		s.RunCycle(ctx)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.interval):
		}
	}
}

// RunCycle один раз обходит все настроенные фиды. Сбой одного фида не
// останавливает обход остальных.
func (s *Service) RunCycle(ctx context.Context) {
	logger := s.log.With().Str("cycle", uuid.NewString()).Logger()
	start := time.Now()
	for _, url := range s.urls {
		if ctx.Err() != nil {
			return
		}
		if err := s.ProcessFeed(ctx, url); err != nil {
			logger.Error().Err(err).Str("url", url).Msg("фид пропущен в этом цикле")
		}
	}
	metrics.PollCycleSeconds.Observe(time.Since(start).Seconds())
	logger.Debug().Dur("took", time.Since(start)).Msg("цикл опроса завершён")
}

// ProcessFeed обрабатывает последнюю запись одного фида.
func (s *Service) ProcessFeed(ctx context.Context, url string) error {
	raw, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		metrics.FeedFetchErrors.Inc()
		return fmt.Errorf("загрузка фида: %w", err)
	}

	entry := s.parser.Parse(raw)
	if entry.IsEmpty() {
		metrics.EntriesSkipped.WithLabelValues("empty").Inc()
		s.log.Debug().Str("url", url).Msg("пустая запись, пропускаем")
		return nil
	}

	fingerprint := entry.Fingerprint()
	seen, err := s.seen.Exists(ctx, fingerprint)
	if err != nil {
		return fmt.Errorf("проверка отпечатка: %w", err)
	}
	if seen {
		metrics.EntriesSkipped.WithLabelValues("duplicate").Inc()
		s.log.Debug().Str("film", entry.FilmTitle).Msg("запись уже публиковалась")
		return nil
	}

	meta := s.enricher.Enrich(ctx, entry)
	caption := FormatCaption(entry, meta)

	// Отпечаток фиксируем только после подтверждённой доставки:
	// неудачная публикация оставляет запись на повтор в следующем цикле.
	if err := s.publisher.Publish(ctx, entry.ImageURL, caption); err != nil {
		return fmt.Errorf("публикация записи: %w", err)
	}
	if err := s.seen.Insert(ctx, fingerprint); err != nil {
		return fmt.Errorf("сохранение отпечатка: %w", err)
	}
	metrics.EntriesPublished.Inc()
	s.log.Info().Str("film", entry.FilmTitle).Str("creator", entry.Creator).Msg("запись опубликована")
	return nil
}
