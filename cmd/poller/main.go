package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"letterboxd-channel-bot/internal/adapters/feed"
	"letterboxd-channel-bot/internal/adapters/omdb"
	"letterboxd-channel-bot/internal/adapters/repo"
	"letterboxd-channel-bot/internal/adapters/telegram"
	"letterboxd-channel-bot/internal/domain"
	"letterboxd-channel-bot/internal/infra/cache"
	"letterboxd-channel-bot/internal/infra/config"
	"letterboxd-channel-bot/internal/infra/db"
	"letterboxd-channel-bot/internal/infra/httpserver"
	applog "letterboxd-channel-bot/internal/infra/log"
	"letterboxd-channel-bot/internal/infra/metrics"
	"letterboxd-channel-bot/internal/usecase/pipeline"
)

func main() {
	cfg := config.Load()
	logger := applog.NewLogger(cfg.AppEnv)

	pool, err := db.Connect(cfg.PGDSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("не удалось подключиться к БД")
	}
	defer pool.Close()

	seenRepo := repo.NewPostgres(pool)
	if err := seenRepo.EnsureSchema(context.Background()); err != nil {
		logger.Fatal().Err(err).Msg("не удалось подготовить схему БД")
	}

	var metaCache domain.Cache
	if cfg.RedisAddr != "" {
		metaCache = cache.NewRedis(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
	}

	botAPI, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		logger.Fatal().Err(err).Msg("не удалось создать бота")
	}

	omdbClient := omdb.NewClient(cfg.OMDB.APIKey, cfg.OMDB.BaseURL, cfg.OMDB.Timeout)
	enricher := omdb.NewEnricher(omdbClient, metaCache, cfg.OMDB.CacheTTL, logger)
	publisher := telegram.NewPublisher(botAPI, cfg.Telegram.ChatID, logger)
	parser := feed.NewParser(domain.ParseCreatorMap(cfg.CreatorMapping))

	svc := pipeline.NewService(
		feed.NewFetcher(),
		parser,
		seenRepo,
		enricher,
		publisher,
		cfg.FeedURLs,
		cfg.PollInterval,
		logger,
	)

	metrics.MustRegister(prometheus.DefaultRegisterer)
	srv := httpserver.New(logger, fmt.Sprintf(":%d", cfg.Port))
	go srv.Start()

	runCtx, cancel := context.WithCancel(context.Background())
	go func() {
		logger.Info().
			Int("feeds", len(cfg.FeedURLs)).
			Dur("interval", cfg.PollInterval).
			Msg("поллер запущен")
		_ = svc.Run(runCtx)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)
	<-stop
	logger.Info().Msg("остановка поллера")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
}
