package omdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"letterboxd-channel-bot/internal/domain"
	"letterboxd-channel-bot/internal/infra/metrics"
)

const defaultBaseURL = "http://www.omdbapi.com"

// Client выполняет запросы к каталогу OMDB.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
}

// NewClient создаёт клиента OMDB.
func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// lookupResponse описывает тело ответа OMDB. Response="False" означает
// ошибку уровня API при успешном HTTP-статусе.
type lookupResponse struct {
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Rated      string `json:"Rated"`
	Released   string `json:"Released"`
	Runtime    string `json:"Runtime"`
	Genre      string `json:"Genre"`
	Director   string `json:"Director"`
	Writer     string `json:"Writer"`
	Actors     string `json:"Actors"`
	Plot       string `json:"Plot"`
	Language   string `json:"Language"`
	Country    string `json:"Country"`
	Awards     string `json:"Awards"`
	Poster     string `json:"Poster"`
	Metascore  string `json:"Metascore"`
	IMDBRating string `json:"imdbRating"`
	IMDBVotes  string `json:"imdbVotes"`
	IMDBID     string `json:"imdbID"`
	Response   string `json:"Response"`
	Error      string `json:"Error"`
}

// Lookup ищет фильм по названию и году. Успех требует непустого Title в
// теле: HTTP 200 с пустым или ошибочным телом успехом не считается.
func (c *Client) Lookup(ctx context.Context, title, year string) (domain.MovieMetadata, error) {
	query := url.Values{}
	query.Set("apikey", c.apiKey)
	query.Set("t", title)
	query.Set("y", year)
	query.Set("r", "JSON")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/?"+query.Encode(), nil)
	if err != nil {
		return domain.MovieMetadata{}, err
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.ObserveNetworkRequest("omdb", "lookup", c.baseURL, start, err)
	if err != nil {
		return domain.MovieMetadata{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.MovieMetadata{}, fmt.Errorf("каталог ответил статусом %d", resp.StatusCode)
	}

	var body lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.MovieMetadata{}, fmt.Errorf("разбор ответа каталога: %w", err)
	}
	if strings.EqualFold(body.Response, "False") {
		return domain.MovieMetadata{}, fmt.Errorf("каталог вернул ошибку: %s", body.Error)
	}
	if strings.TrimSpace(body.Title) == "" {
		return domain.MovieMetadata{}, fmt.Errorf("каталог вернул пустой ответ")
	}

	return body.toDomain(), nil
}

func (r lookupResponse) toDomain() domain.MovieMetadata {
	return domain.MovieMetadata{
		Title:      orNA(r.Title),
		Year:       orNA(r.Year),
		Rated:      orNA(r.Rated),
		Released:   orNA(r.Released),
		Runtime:    orNA(r.Runtime),
		Genre:      orNA(r.Genre),
		Director:   orNA(r.Director),
		Writer:     orNA(r.Writer),
		Actors:     orNA(r.Actors),
		Plot:       orNA(r.Plot),
		Language:   orNA(r.Language),
		Country:    orNA(r.Country),
		Awards:     orNA(r.Awards),
		Poster:     orNA(r.Poster),
		Metascore:  orNA(r.Metascore),
		IMDBRating: orNA(r.IMDBRating),
		IMDBVotes:  orNA(r.IMDBVotes),
		IMDBID:     orNA(r.IMDBID),
	}
}

// orNA нормализует отсутствующее значение в domain.NotAvailable.
func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return domain.NotAvailable
	}
	return s
}
