package pipeline

import (
	"strings"
	"testing"

	"letterboxd-channel-bot/internal/domain"
)

func fullEntry() domain.FeedEntry {
	return domain.FeedEntry{
		FilmTitle:    "Oppenheimer",
		FilmYear:     "2023",
		MemberRating: "4.5",
		TotalRating:  "5",
		ImageURL:     "https://a.ltrbxd.com/resized/poster.jpg",
		ReviewText:   "Incredible.",
		Creator:      "Alice",
	}
}

func fullMetadata() domain.MovieMetadata {
	meta := domain.PlaceholderMetadata("Oppenheimer", "2023")
	meta.Genre = "Biography, Drama, History"
	meta.Plot = "The story of J. Robert Oppenheimer."
	meta.Language = "English"
	meta.Awards = "Won 7 Oscars"
	meta.IMDBRating = "8.3"
	meta.IMDBID = "tt15398776"
	return meta
}

func TestEscapeMarkdownRoundTrip(t *testing.T) {
	input := `plain _*` + "`" + `[](){}#+-.!:/ text`
	escaped := EscapeMarkdown(input)

	for _, r := range markdownReserved {
		if !strings.Contains(input, string(r)) {
			continue
		}
		if strings.Contains(escaped, string(r)) && !strings.Contains(escaped, `\`+string(r)) {
			t.Fatalf("символ %q не экранирован в %q", r, escaped)
		}
	}
	// каждый зарезервированный символ встречается только с обратным слэшем
	for i := 0; i < len(escaped); i++ {
		if strings.ContainsRune(markdownReserved, rune(escaped[i])) {
			if i == 0 || escaped[i-1] != '\\' {
				t.Fatalf("символ %q на позиции %d без экранирования: %q", escaped[i], i, escaped)
			}
		}
	}

	if got := unescapeMarkdown(escaped); got != input {
		t.Fatalf("round-trip не сошёлся: %q != %q", got, input)
	}
}

func unescapeMarkdown(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if runes[i] == '\\' && i+1 < len(runes) && strings.ContainsRune(markdownReserved, runes[i+1]) {
			continue
		}
		b.WriteRune(runes[i])
	}
	return b.String()
}

func TestFormatGenres(t *testing.T) {
	got := FormatGenres("Biography, Drama , History")
	if got != "#Biography #Drama #History" {
		t.Fatalf("неожиданные хэштеги: %q", got)
	}
	if FormatGenres("") != "" {
		t.Fatalf("пустой жанр должен давать пустую строку")
	}
}

func TestFormatCaptionFull(t *testing.T) {
	caption := FormatCaption(fullEntry(), fullMetadata())

	for _, fragment := range []string{
		`*Title*\: Oppenheimer\(2023\)`,
		`*Language*\: English`,
		`*IMDB Rating*\: 8\.3`,
		`*IMDb URL*\: https\:\/\/www\.imdb\.com\/title\/tt15398776`,
		`\#Biography \#Drama \#History`,
		`*Story Line*\: The story of J\. Robert Oppenheimer\.`,
		`*Awards*\: Won 7 Oscars`,
		`*Alice\'s Rating*\: 4\.5\/5`,
		`*Review*\: Incredible\.`,
		"\\- `Alice`",
	} {
		if !strings.Contains(caption, fragment) {
			t.Fatalf("в подписи нет фрагмента %q:\n%s", fragment, caption)
		}
	}
}

func TestFormatCaptionFixedOrder(t *testing.T) {
	caption := FormatCaption(fullEntry(), fullMetadata())
	order := []string{"*Title*", "*Language*", "*IMDB Rating*", "*IMDb URL*", "*Genre*", "*Story Line*", "*Awards*", `\'s Rating*`, "*Review*", "\\- `"}
	last := -1
	for _, marker := range order {
		idx := strings.Index(caption, marker)
		if idx < 0 {
			t.Fatalf("нет блока %q", marker)
		}
		if idx < last {
			t.Fatalf("блок %q стоит не по порядку", marker)
		}
		last = idx
	}
}

func TestFormatCaptionOmitsAwardsWhenNotAvailable(t *testing.T) {
	meta := fullMetadata()
	meta.Awards = domain.NotAvailable
	caption := FormatCaption(fullEntry(), meta)
	if strings.Contains(caption, "*Awards*") {
		t.Fatalf("блок наград должен опускаться: %s", caption)
	}
}

func TestFormatCaptionOmitsRatingWhenAbsent(t *testing.T) {
	entry := fullEntry()
	entry.MemberRating = ""
	entry.TotalRating = ""
	caption := FormatCaption(entry, fullMetadata())
	if strings.Contains(caption, `\'s Rating`) {
		t.Fatalf("без оценки не должно быть строки рейтинга: %s", caption)
	}
}

func TestFormatCaptionOmitsEmptyReview(t *testing.T) {
	entry := fullEntry()
	entry.ReviewText = ""
	caption := FormatCaption(entry, fullMetadata())
	if strings.Contains(caption, "*Review*") {
		t.Fatalf("пустая рецензия не должна давать блок Review: %s", caption)
	}
}

func TestFormatCaptionPlaceholderMetadata(t *testing.T) {
	entry := fullEntry()
	caption := FormatCaption(entry, domain.PlaceholderMetadata(entry.FilmTitle, entry.FilmYear))
	if !strings.Contains(caption, `*Language*\: N\/A`) {
		t.Fatalf("заглушка должна давать N/A в языке: %s", caption)
	}
	if !strings.Contains(caption, `*Story Line*\: Information not available`) {
		t.Fatalf("заглушка должна давать плейсхолдер сюжета: %s", caption)
	}
}
