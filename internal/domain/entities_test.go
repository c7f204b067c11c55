package domain

import "testing"

func TestFingerprintDeterministic(t *testing.T) {
	a := FeedEntry{
		FilmTitle:    "Oppenheimer",
		FilmYear:     "2023",
		MemberRating: "4.5",
		TotalRating:  "5",
		ImageURL:     "https://example.com/poster.jpg",
		ReviewText:   "Incredible.",
	}
	b := a
	if a.Fingerprint() != b.Fingerprint() {
		t.Fatalf("одинаковые записи дали разные отпечатки")
	}

	b.ReviewText = "Другой текст"
	if a.Fingerprint() == b.Fingerprint() {
		t.Fatalf("разные записи дали одинаковый отпечаток")
	}
}

func TestFingerprintIgnoresCreator(t *testing.T) {
	a := FeedEntry{FilmTitle: "Dune", Creator: "Alice"}
	b := FeedEntry{FilmTitle: "Dune", Creator: "Bob"}
	if a.Fingerprint() != b.Fingerprint() {
		t.Fatalf("имя автора не должно входить в отпечаток")
	}
}

func TestIsEmpty(t *testing.T) {
	if !(FeedEntry{}).IsEmpty() {
		t.Fatalf("пустая запись должна считаться пустой")
	}
	if !(FeedEntry{Creator: "Alice"}).IsEmpty() {
		t.Fatalf("запись только с автором должна считаться пустой")
	}
	if (FeedEntry{FilmTitle: "Dune"}).IsEmpty() {
		t.Fatalf("запись с названием не пустая")
	}
}

func TestPlaceholderMetadata(t *testing.T) {
	meta := PlaceholderMetadata("Dune", "2021")
	if meta.Title != "Dune" || meta.Year != "2021" {
		t.Fatalf("заглушка должна сохранять название и год: %+v", meta)
	}
	if meta.Plot != "Information not available" {
		t.Fatalf("неожиданный плейсхолдер сюжета: %q", meta.Plot)
	}
	for name, value := range map[string]string{
		"Genre":      meta.Genre,
		"Language":   meta.Language,
		"Awards":     meta.Awards,
		"IMDBRating": meta.IMDBRating,
		"IMDBID":     meta.IMDBID,
	} {
		if value != NotAvailable {
			t.Fatalf("поле %s должно быть %q, получили %q", name, NotAvailable, value)
		}
	}
}

func TestParseCreatorMap(t *testing.T) {
	m := ParseCreatorMap("alice:Алиса, bob : Боб ,broken,also:")
	if len(m) != 2 {
		t.Fatalf("ожидали 2 пары, получили %d", len(m))
	}
	if m.Resolve("alice") != "Алиса" {
		t.Fatalf("ожидали Алиса, получили %q", m.Resolve("alice"))
	}
	if m.Resolve(" bob ") != "Боб" {
		t.Fatalf("ожидали Боб, получили %q", m.Resolve(" bob "))
	}
	if m.Resolve("unknown") != DefaultCreator {
		t.Fatalf("неизвестный пользователь должен давать %q", DefaultCreator)
	}
}
