package offerpage

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// DefaultProductName is used when a page yields no usable title.
const DefaultProductName = "1688_product"

const (
	minTitleLen    = 10
	minSupplierLen = 8
)

var (
	whitespaceRun  = regexp.MustCompile(`\s+`)
	alibabaSuffix  = regexp.MustCompile(`\s*-\s*阿里巴巴\s*$`)
	siteSuffix     = regexp.MustCompile(`(?i)\s*-\s*1688\.com\s*$`)
	supplierWords  = regexp.MustCompile(`选品中心|供应商|厂家|工厂|公司|商行|店|旗舰店|专营店|官方|国际|中心|集团|企业|批发|市场|仓|仓库|店铺`)
	embeddedTitles = []*regexp.Regexp{
		regexp.MustCompile(`"offerTitle"\s*:\s*"([^"]{4,200})"`),
		regexp.MustCompile(`"subject"\s*:\s*"([^"]{4,200})"`),
	}
)

const titleSelector = `[class*="title"] h1,[class*="od-title"],[data-role*="title"],[data-title]`

// CleanProductTitle collapses whitespace and drops the marketplace suffix a
// page title carries.
func CleanProductTitle(s string) string {
	s = strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
	s = strings.TrimSpace(alibabaSuffix.ReplaceAllString(s, ""))
	s = strings.TrimSpace(siteSuffix.ReplaceAllString(s, ""))
	return s
}

// IsLikelySupplierName reports whether s reads like a shop or company name
// rather than a product title. Very short strings count as supplier names.
func IsLikelySupplierName(s string) bool {
	if s == "" {
		return false
	}
	return supplierWords.MatchString(s) || utf8.RuneCountInString(s) < minSupplierLen
}

func productName(doc *goquery.Document, scripts string) string {
	var candidates []string
	add := func(s string) {
		if s = CleanProductTitle(s); s != "" {
			candidates = append(candidates, s)
		}
	}

	for _, re := range embeddedTitles {
		if m := re.FindStringSubmatch(scripts); m != nil {
			add(m[1])
			break
		}
	}
	if og, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok {
		add(og)
	}
	add(doc.Find("h1").First().Text())
	add(doc.Find(titleSelector).First().Text())
	add(doc.Find("title").First().Text())

	for _, c := range candidates {
		if utf8.RuneCountInString(c) >= minTitleLen && !IsLikelySupplierName(c) {
			return c
		}
	}

	best := ""
	for _, c := range candidates {
		if utf8.RuneCountInString(c) > utf8.RuneCountInString(best) {
			best = c
		}
	}
	if best == "" {
		return DefaultProductName
	}
	return best
}
