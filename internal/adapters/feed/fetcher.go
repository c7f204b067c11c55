package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"letterboxd-channel-bot/internal/infra/metrics"
)

// Fetcher скачивает сырой XML фида по HTTP.
type Fetcher struct {
	client *http.Client
}

// NewFetcher создаёт фетчер с ограниченным временем запроса.
func NewFetcher() *Fetcher {
	return &Fetcher{client: &http.Client{Timeout: 20 * time.Second}}
}

// Fetch возвращает тело фида. Ошибка означает «пропустить URL в этом
// цикле»: повторные попытки на этом уровне не делаются.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	resp, err := f.client.Do(req)
	metrics.ObserveNetworkRequest("feed", "fetch", url, start, err)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("фид ответил статусом %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
