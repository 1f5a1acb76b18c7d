// Package offerpage extracts the product name, image groups and video of a
// 1688 offer page from its HTML.
package offerpage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sevigo/listingkit/schema"
)

var ErrEmptyPage = errors.New("offer page is empty")

// lazyAttrs are the attributes lazy-loading galleries keep image URLs in.
var lazyAttrs = []string{"src", "data-src", "data-original", "data-lazy-src", "data-ks-lazyload", "data-img", "data-url"}

const (
	gallerySelector = `[class*="gallery"],[class*="swiper"],[class*="slider"],[class*="pic"],[class*="image"],[class*="preview"]`
	skuSelector     = `[class*="sku"],[class*="spec"],[class*="prop"],[id*="sku"],[id*="spec"],[class*="od-sku"],[class*="sku-selection"]`

	// minEmbeddedScript skips tiny inline scripts when looking for page data.
	minEmbeddedScript = 50
)

var (
	mainImageBlock = regexp.MustCompile(`(?s)"mainImage"\s*:\s*\[(.*?)\]`)
	quotedURL      = regexp.MustCompile(`"((?:https?:)?(?:\\/\\/|//)[^"]+)"`)
	skuModelBlock  = regexp.MustCompile(`(?s)"skuModel".*?\}\s*,\s*"`)
	skuImageField  = regexp.MustCompile(`(?i)"(?:imageUrl|image|imgUrl)"\s*:\s*"([^"]+)"`)
	detailURLField = regexp.MustCompile(`(?i)"detailUrl"\s*:\s*"([^"]+)"`)
	descIframeSrc  = regexp.MustCompile(`(?i)offer_desc\.htm|desc\.htm|description`)
	videoURLField  = regexp.MustCompile(`(?i)"videoUrl"\s*:\s*"([^"]+)"`)
	wirelessVideo  = regexp.MustCompile(`(?is)"wirelessVideo"\s*:\s*\{.*?"videoUrls"\s*:\s*\{.*?"(?:ios|android)"\s*:\s*"([^"]+)"`)
	anyVideoURL    = regexp.MustCompile(`(?i)https?://[^"'\\\s<>]+?\.(?:mp4|m3u8|webm|mov)(?:\?[^"'\\\s<>]*)?`)
)

// Parser turns offer page HTML into OfferMedia. Description images usually
// live in a separate document; the fetcher is used to load it.
type Parser struct {
	fetcher schema.TextFetcher
	logger  *slog.Logger
}

// NewParser creates a parser. A nil fetcher limits detail images to what the
// page itself contains.
func NewParser(fetcher schema.TextFetcher, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{
		fetcher: fetcher,
		logger:  logger.With("component", "offer_page_parser"),
	}
}

type page struct {
	doc      *goquery.Document
	scheme   string
	scripts  string
	embedded string
}

// Parse extracts the media of the offer page at pageURL.
func (p *Parser) Parse(ctx context.Context, html, pageURL string) (*schema.OfferMedia, error) {
	if strings.TrimSpace(html) == "" {
		return nil, ErrEmptyPage
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse offer page: %w", err)
	}

	pg := newPage(doc, pageURL)

	scriptMain, scriptSKU := pg.scriptImages()
	domMain, domSKU := pg.domImages()

	media := &schema.OfferMedia{
		ProductName: productName(doc, pg.scripts),
		Groups: schema.MediaGroups{
			Main:    uniq(append(scriptMain, domMain...)),
			SKU:     uniq(append(scriptSKU, domSKU...)),
			Details: p.detailImages(ctx, pg),
		},
		VideoURL: pg.videoURL(),
	}

	p.logger.DebugContext(ctx, "Parsed offer page",
		"url", pageURL,
		"product", media.ProductName,
		"main", len(media.Groups.Main),
		"sku", len(media.Groups.SKU),
		"details", len(media.Groups.Details),
		"has_video", media.VideoURL != "")

	return media, nil
}

func newPage(doc *goquery.Document, pageURL string) *page {
	scheme := defaultScheme
	if u, err := url.Parse(pageURL); err == nil && u.Scheme != "" {
		scheme = u.Scheme
	}

	var all, embedded []string
	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		text := s.Text()
		all = append(all, text)
		if len(text) > minEmbeddedScript {
			embedded = append(embedded, text)
		}
	})

	return &page{
		doc:      doc,
		scheme:   scheme,
		scripts:  strings.Join(all, "\n"),
		embedded: strings.Join(embedded, "\n"),
	}
}

func (pg *page) normalize(raw string) string {
	return NormalizeURL(unescapeSlashes(raw), pg.scheme)
}

// scriptImages reads the gallery and SKU images from the page's embedded
// JSON.
func (pg *page) scriptImages() (main, sku []string) {
	if m := mainImageBlock.FindStringSubmatch(pg.embedded); m != nil {
		for _, q := range quotedURL.FindAllStringSubmatch(m[1], -1) {
			main = append(main, pg.normalize(q[1]))
		}
	}

	skuText := pg.embedded
	if blocks := skuModelBlock.FindAllString(pg.embedded, -1); len(blocks) > 0 {
		skuText = strings.Join(blocks, "\n")
	}
	for _, m := range skuImageField.FindAllStringSubmatch(skuText, -1) {
		if u := pg.normalize(m[1]); isHTTPURL(u) {
			sku = append(sku, u)
		}
	}

	return uniq(main), uniq(sku)
}

// domImages collects images from the gallery and SKU containers, or from the
// whole page when a container is missing.
func (pg *page) domImages() (main, sku []string) {
	return pg.imagesIn(pg.scope(gallerySelector)), pg.imagesIn(pg.scope(skuSelector))
}

func (pg *page) scope(selector string) *goquery.Selection {
	if s := pg.doc.Find(selector).First(); s.Length() > 0 {
		return s
	}
	return pg.doc.Selection
}

func (pg *page) imagesIn(scope *goquery.Selection) []string {
	var urls []string
	scope.Find("img").Each(func(_ int, img *goquery.Selection) {
		for _, attr := range lazyAttrs {
			if v, ok := img.Attr(attr); ok {
				urls = append(urls, pg.normalize(v))
			}
		}
	})
	return uniq(urls)
}

// detailImages loads the description document, trying the detailUrl from the
// page data first and the description iframe second. Without either it falls
// back to every image on the page.
func (p *Parser) detailImages(ctx context.Context, pg *page) []string {
	if m := detailURLField.FindStringSubmatch(pg.embedded); m != nil {
		detailURL := NormalizeURL(strings.ReplaceAll(unescapeSlashes(m[1]), "&amp;", "&"), pg.scheme)
		if urls, ok := p.fetchImages(ctx, pg, detailURL); ok {
			return urls
		}
	}

	var iframeURL string
	pg.doc.Find("iframe").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if src, _ := s.Attr("src"); descIframeSrc.MatchString(src) {
			iframeURL = pg.normalize(src)
			return false
		}
		return true
	})
	if iframeURL != "" {
		if urls, ok := p.fetchImages(ctx, pg, iframeURL); ok {
			return urls
		}
	}

	p.logger.DebugContext(ctx, "No description document, scanning page images")
	return pg.imagesIn(pg.doc.Selection)
}

func (p *Parser) fetchImages(ctx context.Context, pg *page, target string) ([]string, bool) {
	if p.fetcher == nil || target == "" {
		return nil, false
	}

	text, err := p.fetcher.FetchText(ctx, target)
	if err != nil {
		p.logger.WarnContext(ctx, "Failed to fetch description document", "url", target, "error", err)
		return nil, false
	}
	if text == "" {
		return nil, false
	}
	return ExtractImageURLs(text, pg.scheme), true
}

func (pg *page) videoURL() string {
	if video := pg.doc.Find("video").First(); video.Length() > 0 {
		if src, ok := video.Attr("src"); ok && strings.TrimSpace(src) != "" {
			return pg.normalize(src)
		}
		if src, ok := video.Find("source").First().Attr("src"); ok && strings.TrimSpace(src) != "" {
			return pg.normalize(src)
		}
	}

	if m := videoURLField.FindStringSubmatch(pg.scripts); m != nil {
		return pg.normalize(m[1])
	}
	if m := wirelessVideo.FindStringSubmatch(pg.scripts); m != nil {
		return pg.normalize(m[1])
	}
	if m := anyVideoURL.FindString(pg.scripts); m != "" {
		return pg.normalize(m)
	}
	return ""
}
