package pipeline

import (
	"strings"

	"letterboxd-channel-bot/internal/domain"
)

const imdbTitleURL = "https://www.imdb.com/title/"

// Зарезервированные символы MarkdownV2: подставленный текст не должен
// ломать разметку подписи.
const markdownReserved = "_*`[](){}#+-.!:/"

// EscapeMarkdown экранирует каждый зарезервированный символ обратным
// слэшем.
func EscapeMarkdown(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if strings.ContainsRune(markdownReserved, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FormatGenres превращает список жанров через запятую в строку хэштегов.
func FormatGenres(genre string) string {
	tokens := strings.Split(genre, ",")
	tags := make([]string, 0, len(tokens))
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		tags = append(tags, "#"+token)
	}
	return strings.Join(tags, " ")
}

// FormatCaption собирает подпись уведомления. Чистая функция: порядок
// строк фиксированный, необязательные блоки опускаются целиком.
func FormatCaption(entry domain.FeedEntry, movie domain.MovieMetadata) string {
	var b strings.Builder
	b.WriteString("*Title*\\: " + EscapeMarkdown(entry.FilmTitle) + "\\(" + EscapeMarkdown(entry.FilmYear) + "\\)\n")
	b.WriteString("*Language*\\: " + EscapeMarkdown(movie.Language) + "\n")
	b.WriteString("*IMDB Rating*\\: " + EscapeMarkdown(movie.IMDBRating) + "\n")
	b.WriteString("*IMDb URL*\\: " + EscapeMarkdown(imdbTitleURL) + movie.IMDBID + "\n")
	b.WriteString("*Genre*\\: " + EscapeMarkdown(FormatGenres(movie.Genre)) + "\n")
	b.WriteString("*Story Line*\\: " + EscapeMarkdown(movie.Plot) + "\n")
	if movie.Awards != domain.NotAvailable {
		b.WriteString("*Awards*\\: " + EscapeMarkdown(movie.Awards) + "\n")
	}
	if entry.MemberRating != "" {
		b.WriteString("*" + EscapeMarkdown(entry.Creator) + "\\'s Rating*\\: " + EscapeMarkdown(entry.MemberRating) + "\\/" + EscapeMarkdown(entry.TotalRating) + "\n")
	}
	if entry.ReviewText != "" {
		b.WriteString("*Review*\\: " + EscapeMarkdown(entry.ReviewText) + "\n\n")
	}
	b.WriteString("\\- `" + EscapeMarkdown(entry.Creator) + "`")
	return b.String()
}
