package config

import (
	"log"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// AppConfig описывает конфигурацию поллера. Строится один раз в main и
// передаётся компонентам по ссылке: никто не читает окружение напрямую.
type AppConfig struct {
	AppEnv string `envconfig:"APP_ENV" default:"dev"`
	Port   int    `envconfig:"PORT" default:"8080"`

	Telegram struct {
		Token  string `envconfig:"TG_BOT_TOKEN"`
		ChatID int64  `envconfig:"TG_CHAT_ID"`
	} `envconfig:""`

	OMDB struct {
		APIKey   string        `envconfig:"OMDB_API_KEY"`
		BaseURL  string        `envconfig:"OMDB_BASE_URL" default:"http://www.omdbapi.com"`
		Timeout  time.Duration `envconfig:"OMDB_TIMEOUT" default:"30s"`
		CacheTTL time.Duration `envconfig:"OMDB_CACHE_TTL" default:"24h"`
	} `envconfig:""`

	FeedURLs []string `envconfig:"RSS_URLS"`

	CreatorMapping string `envconfig:"USERNAME_CREATOR_MAPPING"`

	PGDSN string `envconfig:"PG_DSN"`

	RedisAddr string `envconfig:"REDIS_ADDR"`

	PollInterval time.Duration `envconfig:"POLL_INTERVAL" default:"10m"`
}

// Load загружает конфиг из окружения.
func Load() AppConfig {
	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("не удалось загрузить конфиг: %v", err)
	}
	return cfg
}
