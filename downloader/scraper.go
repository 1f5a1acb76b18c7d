package downloader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sevigo/listingkit/offerpage"
)

var ErrNotOfferURL = errors.New("not a 1688 offer page, expected https://detail.1688.com/offer/...")

// Scraper runs a full scrape: fetch the offer page, extract its media and
// download it.
type Scraper struct {
	downloader *Downloader
	parser     *offerpage.Parser
	logger     *slog.Logger
}

// NewScraper creates a scraper that fetches pages with d's client.
func NewScraper(d *Downloader, logger *slog.Logger) *Scraper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scraper{
		downloader: d,
		parser:     offerpage.NewParser(d.Client(), logger),
		logger:     logger.With("component", "scraper"),
	}
}

// Scrape downloads the media of the offer at offerURL.
func (s *Scraper) Scrape(ctx context.Context, offerURL string, minSize int) (*Report, error) {
	if !offerpage.IsOfferURL(offerURL) {
		return nil, fmt.Errorf("%w: %q", ErrNotOfferURL, offerURL)
	}

	html, err := s.downloader.Client().FetchText(ctx, offerURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch offer page: %w", err)
	}

	media, err := s.parser.Parse(ctx, html, offerURL)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Collected offer media",
		"product", media.ProductName,
		"main", len(media.Groups.Main),
		"sku", len(media.Groups.SKU),
		"details", len(media.Groups.Details))

	return s.downloader.Run(ctx, media, minSize)
}
