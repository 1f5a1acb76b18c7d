package offerpage

import (
	"net/url"
	"regexp"
	"strings"
)

const defaultScheme = "https"

var (
	offerPath = regexp.MustCompile(`^/offer/[^/]+`)

	thumbTail    = regexp.MustCompile(`(?i)(\.(?:jpe?g|png|webp|gif))_.+$`)
	thumbSize    = regexp.MustCompile(`(?i)_(\d+x\d+)(q\d+)?\.(jpe?g|png|webp|gif)(\?|#|$)`)
	absImage     = regexp.MustCompile(`(?i)https?://[^"'\\\s<>]+?\.(?:jpg|jpeg|png|webp)(?:\?[^"'\\\s<>]*)?`)
	relImage     = regexp.MustCompile(`(?i)//[^"'\\\s<>]+?\.(?:jpg|jpeg|png|webp)(?:\?[^"'\\\s<>]*)?`)
	escapedSlash = strings.NewReplacer(`\u002F`, "/", `\u002f`, "/", `\/`, "/")
)

// IsOfferURL reports whether raw points at a 1688 offer page.
func IsOfferURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return u.Scheme == "https" && u.Host == "detail.1688.com" && offerPath.MatchString(u.Path)
}

// NormalizeURL resolves protocol-relative URLs against scheme and strips the
// CDN thumbnail suffixes so every size of an image maps to one URL. Blank
// input returns "".
func NormalizeURL(raw, scheme string) string {
	u := strings.TrimSpace(raw)
	if u == "" {
		return ""
	}
	if scheme == "" {
		scheme = defaultScheme
	}
	if strings.HasPrefix(u, "//") {
		u = scheme + ":" + u
	}
	u = thumbTail.ReplaceAllString(u, "$1")
	u = thumbSize.ReplaceAllString(u, ".${3}${4}")
	return u
}

// ExtractImageURLs finds absolute and protocol-relative image URLs in text,
// normalised and deduplicated in order of appearance.
func ExtractImageURLs(text, scheme string) []string {
	var found []string
	for _, m := range absImage.FindAllString(text, -1) {
		found = append(found, NormalizeURL(m, scheme))
	}
	for _, loc := range relImage.FindAllStringIndex(text, -1) {
		// Skip the tail of an absolute URL already matched above.
		if loc[0] > 0 && text[loc[0]-1] == ':' {
			continue
		}
		found = append(found, NormalizeURL(text[loc[0]:loc[1]], scheme))
	}
	return uniq(found)
}

func unescapeSlashes(s string) string {
	return escapedSlash.Replace(s)
}

func isHTTPURL(u string) bool {
	return strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://")
}

// uniq drops blanks and repeats, keeping first occurrences in order.
func uniq(urls []string) []string {
	seen := make(map[string]struct{}, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if u == "" {
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}
