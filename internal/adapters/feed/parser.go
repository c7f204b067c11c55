package feed

import (
	"bytes"
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"letterboxd-channel-bot/internal/domain"
)

// Letterboxd помечает автосгенерированные заметки без текста рецензии.
const watchedMarker = "watched on"

const letterboxdNamespace = "letterboxd"

// Parser извлекает последнюю запись активности из фида Letterboxd.
type Parser struct {
	fp       *gofeed.Parser
	creators domain.CreatorMap
}

// NewParser создаёт парсер с готовой картой авторов.
func NewParser(creators domain.CreatorMap) *Parser {
	return &Parser{fp: gofeed.NewParser(), creators: creators}
}

// Parse разбирает сырой XML и возвращает запись по первому item фида.
// Фид трактуется как «последняя активность»: остальные элементы
// игнорируются. Любое отсутствующее поле деградирует до пустой строки.
func (p *Parser) Parse(raw []byte) domain.FeedEntry {
	parsed, err := p.fp.Parse(bytes.NewReader(raw))
	if err != nil || parsed == nil || len(parsed.Items) == 0 {
		return domain.FeedEntry{}
	}
	item := parsed.Items[0]

	entry := domain.FeedEntry{
		FilmTitle:    letterboxdField(item, "filmTitle"),
		FilmYear:     letterboxdField(item, "filmYear"),
		MemberRating: letterboxdField(item, "memberRating"),
		Creator:      p.creators.Resolve(creatorUsername(item)),
	}
	if entry.MemberRating != "" {
		entry.TotalRating = domain.TotalRatingScale
	}

	entry.ImageURL, entry.ReviewText = parseDescription(item.Description)
	return entry
}

// letterboxdField читает значение расширения letterboxd у элемента фида.
func letterboxdField(item *gofeed.Item, name string) string {
	values, ok := item.Extensions[letterboxdNamespace][name]
	if !ok || len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0].Value)
}

// creatorUsername достаёт username автора из dc:creator.
func creatorUsername(item *gofeed.Item) string {
	if item.DublinCoreExt != nil && len(item.DublinCoreExt.Creator) > 0 {
		return strings.TrimSpace(item.DublinCoreExt.Creator[0])
	}
	return ""
}

// parseDescription разбирает HTML-фрагмент из description: картинка — src
// первого img, рецензия — текст последнего абзаца. Абзац, начинающийся с
// "Watched on", означает автозаметку без комментария.
func parseDescription(description string) (imageURL, review string) {
	decoded := strings.TrimSpace(html.UnescapeString(description))
	if decoded == "" {
		return "", ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(decoded))
	if err != nil {
		return "", ""
	}
	imageURL, _ = doc.Find("img").First().Attr("src")
	review = strings.TrimSpace(doc.Find("p").Last().Text())
	if strings.HasPrefix(strings.ToLower(review), watchedMarker) {
		review = ""
	}
	return imageURL, review
}
