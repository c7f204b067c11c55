package omdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"letterboxd-channel-bot/internal/domain"
)

func TestLookupSuccess(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"apikey": r.URL.Query().Get("apikey"),
			"t":      r.URL.Query().Get("t"),
			"y":      r.URL.Query().Get("y"),
			"r":      r.URL.Query().Get("r"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"Title": "Oppenheimer",
			"Year": "2023",
			"Genre": "Biography, Drama, History",
			"Plot": "The story of J. Robert Oppenheimer.",
			"Language": "English",
			"imdbRating": "8.3",
			"imdbID": "tt15398776",
			"Response": "True"
		}`))
	}))
	defer srv.Close()

	client := NewClient("secret", srv.URL, 0)
	meta, err := client.Lookup(context.Background(), "Oppenheimer", "2023")
	if err != nil {
		t.Fatalf("не ожидали ошибку: %v", err)
	}

	if gotQuery["apikey"] != "secret" || gotQuery["t"] != "Oppenheimer" || gotQuery["y"] != "2023" || gotQuery["r"] != "JSON" {
		t.Fatalf("неожиданные параметры запроса: %v", gotQuery)
	}
	if meta.Title != "Oppenheimer" || meta.IMDBID != "tt15398776" {
		t.Fatalf("неожиданные метаданные: %+v", meta)
	}
	// отсутствующие в ответе поля нормализуются
	if meta.Awards != domain.NotAvailable || meta.Director != domain.NotAvailable {
		t.Fatalf("пустые поля должны стать %q: %+v", domain.NotAvailable, meta)
	}
}

func TestLookupAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"Response":"False","Error":"Movie not found!"}`))
	}))
	defer srv.Close()

	if _, err := NewClient("k", srv.URL, 0).Lookup(context.Background(), "Nope", "1900"); err == nil {
		t.Fatalf("Response=False должен считаться ошибкой")
	}
}

func TestLookupEmptyTitle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"Title":"","Response":"True"}`))
	}))
	defer srv.Close()

	if _, err := NewClient("k", srv.URL, 0).Lookup(context.Background(), "X", ""); err == nil {
		t.Fatalf("пустой Title должен считаться ошибкой")
	}
}

func TestLookupHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if _, err := NewClient("k", srv.URL, 0).Lookup(context.Background(), "X", ""); err == nil {
		t.Fatalf("ожидали ошибку на статус 503")
	}
}
