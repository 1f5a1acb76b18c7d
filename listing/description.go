package listing

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// maxStripRounds bounds how often stale templates are stripped; templates
// can be stacked when a listing moved between stores several times.
const maxStripRounds = 5

// ApplyDescription rewrites a plain-text description for profile: every known
// template prefix and suffix is removed, then the profile's own are added
// around the remaining body.
func ApplyDescription(text string, profile StoreProfile, stores *Stores) string {
	var prefixes, suffixes []string
	if stores != nil {
		prefixes, suffixes = stores.Templates()
	}
	if profile.DescPrefix != "" {
		prefixes = append(prefixes, profile.DescPrefix)
	}
	if profile.DescSuffix != "" {
		suffixes = append(suffixes, profile.DescSuffix)
	}

	for round := 0; round < maxStripRounds; round++ {
		before := text
		for _, p := range prefixes {
			text = strings.Replace(text, p, "", 1)
		}
		for _, s := range suffixes {
			text = strings.Replace(text, s, "", 1)
		}
		if before == text {
			break
		}
	}

	body := strings.TrimSpace(text)
	var sb strings.Builder
	sb.WriteString(profile.DescPrefix)
	sb.WriteString(body)
	if body != "" {
		sb.WriteString("\n")
	}
	sb.WriteString(profile.DescSuffix)
	return sb.String()
}

// ApplyDescriptionHTML rewrites a rich-text description. The span from the
// first image to the last one is kept and wrapped in the profile's templates;
// without images the whole body is kept.
func ApplyDescriptionHTML(fragment string, profile StoreProfile) string {
	middle := strings.TrimSpace(fragment)
	if start, end, ok := imageSpan(fragment); ok {
		middle = strings.TrimSpace(fragment[start:end])
	}

	var sb strings.Builder
	sb.WriteString(textToHTML(profile.DescPrefix))
	sb.WriteString("<br/>")
	sb.WriteString(middle)
	if middle != "" {
		sb.WriteString("<br/>")
	}
	sb.WriteString(textToHTML(profile.DescSuffix))
	return sb.String()
}

// imageSpan returns the byte range from the start of the first <img> tag to
// the end of the last one. Tags inside comments, scripts and attribute values
// do not count.
func imageSpan(fragment string) (start, end int, ok bool) {
	z := html.NewTokenizer(strings.NewReader(fragment))
	pos := 0
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return start, end, ok
		}
		n := len(z.Raw())
		if tt == html.StartTagToken || tt == html.SelfClosingTagToken {
			if name, _ := z.TagName(); string(name) == "img" {
				if !ok {
					start, ok = pos, true
				}
				end = pos + n
			}
		}
		pos += n
	}
}

func textToHTML(s string) string {
	return strings.ReplaceAll(s, "\n", "<br/>")
}

// KeepFirstImages removes every image after the first n from an HTML
// fragment. Fragments with n images or fewer are returned unchanged.
func KeepFirstImages(fragment string, n int) (string, error) {
	if n < 0 {
		n = 0
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", err
	}

	imgs := doc.Find("img")
	if imgs.Length() <= n {
		return fragment, nil
	}
	imgs.Slice(n, goquery.ToEnd).Remove()

	return doc.Find("body").Html()
}

// CountImages returns the number of <img> elements in an HTML fragment.
func CountImages(fragment string) int {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return 0
	}
	return doc.Find("img").Length()
}
