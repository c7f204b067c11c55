package domain

import "strings"

// TotalRatingScale — фиксированный знаменатель оценки Letterboxd.
const TotalRatingScale = "5"

// NotAvailable — маркер отсутствующего значения в метаданных.
const NotAvailable = "N/A"

// FeedEntry описывает последнюю запись активности из RSS-фида.
type FeedEntry struct {
	FilmTitle    string
	FilmYear     string
	MemberRating string
	// TotalRating заполняется только вместе с MemberRating.
	TotalRating string
	ImageURL    string
	ReviewText  string
	Creator     string
}

// Fingerprint возвращает детерминированный ключ дедупликации записи.
// Ключ строится конкатенацией видимых полей, совместимой с ранее
// сохранёнными ключами.
func (e FeedEntry) Fingerprint() string {
	return e.FilmTitle + e.FilmYear + e.MemberRating + e.TotalRating + e.ImageURL + e.ReviewText
}

// IsEmpty сообщает, что из фида не удалось извлечь ничего осмысленного.
func (e FeedEntry) IsEmpty() bool {
	return strings.TrimSpace(e.Fingerprint()) == ""
}

// MovieMetadata содержит сведения о фильме из внешнего каталога.
// Пустые значения нормализуются в NotAvailable ещё в адаптере, поэтому
// форматирование ниже по конвейеру не проверяет поля на пустоту.
type MovieMetadata struct {
	Title      string
	Year       string
	Rated      string
	Released   string
	Runtime    string
	Genre      string
	Director   string
	Writer     string
	Actors     string
	Plot       string
	Language   string
	Country    string
	Awards     string
	Poster     string
	Metascore  string
	IMDBRating string
	IMDBVotes  string
	IMDBID     string
}

// PlaceholderMetadata строит запись-заглушку, когда каталог недоступен.
func PlaceholderMetadata(filmTitle, filmYear string) MovieMetadata {
	return MovieMetadata{
		Title:      filmTitle,
		Year:       filmYear,
		Rated:      NotAvailable,
		Released:   NotAvailable,
		Runtime:    NotAvailable,
		Genre:      NotAvailable,
		Director:   NotAvailable,
		Writer:     NotAvailable,
		Actors:     NotAvailable,
		Plot:       "Information not available",
		Language:   NotAvailable,
		Country:    NotAvailable,
		Awards:     NotAvailable,
		Poster:     NotAvailable,
		Metascore:  NotAvailable,
		IMDBRating: NotAvailable,
		IMDBVotes:  NotAvailable,
		IMDBID:     NotAvailable,
	}
}
