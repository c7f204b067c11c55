package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	FeedFetchErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "feed_fetch_errors_total",
		Help: "Ошибки загрузки RSS-фидов",
	})
	EntriesPublished = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "entries_published_total",
		Help: "Успешно опубликованные записи",
	})
	EntriesSkipped = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "entries_skipped_total",
		Help: "Пропущенные записи по причинам",
	}, []string{"reason"})
	EnrichmentFallbacks = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "enrichment_fallbacks_total",
		Help: "Случаи подстановки заглушки вместо метаданных",
	})
	PublishErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "publish_errors_total",
		Help: "Ошибки отправки уведомлений в канал",
	})
	PollCycleSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "poll_cycle_seconds",
		Help:    "Длительность одного цикла опроса фидов",
		Buckets: prometheus.DefBuckets,
	})

	NetworkRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "network_request_duration_seconds",
		Help:    "Длительность сетевых запросов",
		Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 15, 20, 30, 45, 60},
	}, []string{"component", "operation", "target", "status"})

	NetworkRequestTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "network_request_total",
		Help: "Количество сетевых запросов",
	}, []string{"component", "operation", "target", "status"})
)

// MustRegister регистрирует метрики.
func MustRegister(registerer prometheus.Registerer) {
	registerer.MustRegister(
		FeedFetchErrors,
		EntriesPublished,
		EntriesSkipped,
		EnrichmentFallbacks,
		PublishErrors,
		PollCycleSeconds,
		NetworkRequestDuration,
		NetworkRequestTotal,
	)
}

// ObserveNetworkRequest записывает длительность и статус сетевого запроса.
func ObserveNetworkRequest(component, operation, target string, start time.Time, err error) {
	if component == "" {
		component = "unknown"
	}
	if operation == "" {
		operation = "unknown"
	}
	if target == "" {
		target = "unknown"
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	duration := time.Since(start).Seconds()
	NetworkRequestDuration.WithLabelValues(component, operation, target, status).Observe(duration)
	NetworkRequestTotal.WithLabelValues(component, operation, target, status).Inc()
}
