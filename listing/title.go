package listing

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// stockMarker identifies an "in stock in Taiwan" prefix from any store.
const stockMarker = "台灣現貨"

// markerWindow is how far into the title, in runes, an old prefix may start.
const markerWindow = 4

// ApplyTitlePrefix puts the store's prefix at the start of title. A title that
// already carries it is returned as is, minus leading whitespace. Another
// store's prefix found near the start is replaced, including the emoji that
// close it.
func ApplyTitlePrefix(title string, profile StoreProfile) string {
	text := strings.TrimLeftFunc(title, unicode.IsSpace)
	if profile.TitlePrefix == "" {
		return text
	}
	if strings.HasPrefix(text, profile.TitlePrefix) {
		return text
	}

	if idx := strings.Index(text, stockMarker); idx >= 0 && utf8.RuneCountInString(text[:idx]) <= markerWindow {
		after := strings.TrimLeftFunc(text[idx+len(stockMarker):], isDecoration)
		return profile.TitlePrefix + after
	}

	return profile.TitlePrefix + text
}

// isDecoration matches spaces, emoji and the joiners and selectors that
// follow them.
func isDecoration(r rune) bool {
	return unicode.IsSpace(r) ||
		unicode.Is(unicode.So, r) ||
		unicode.Is(unicode.Sk, r) ||
		unicode.Is(unicode.Mn, r) ||
		unicode.Is(unicode.Cf, r)
}
