package domain

import "strings"

// DefaultCreator используется для неизвестных пользователей фида.
const DefaultCreator = "Who?"

// CreatorMap сопоставляет username из фида отображаемому имени.
// Карта строится один раз на старте процесса и далее только читается.
type CreatorMap map[string]string

// ParseCreatorMap разбирает строку вида "user1:Имя,user2:Имя".
// Некорректные пары молча пропускаются.
func ParseCreatorMap(raw string) CreatorMap {
	m := make(CreatorMap)
	for _, pair := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		m[key] = value
	}
	return m
}

// Resolve возвращает отображаемое имя или DefaultCreator.
func (m CreatorMap) Resolve(username string) string {
	if name, ok := m[strings.TrimSpace(username)]; ok {
		return name
	}
	return DefaultCreator
}
