package downloader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/sevigo/listingkit/schema"
)

var ErrNoMedia = errors.New("no media to download")

const lazyLoadNote = "No images >= min size. If the page uses lazy/JS data, scroll to the details section and open the 详情/图文详情 tab once, then run again."

// Report summarises one download run.
type Report struct {
	RunID       uuid.UUID
	ProductName string
	Folder      string
	// Counts holds the number of images per group that passed the size
	// filter.
	Counts     map[schema.MediaGroup]int
	Downloaded int
	Failed     int
	Files      []string
	Note       string
}

// Downloader filters offer media by image size and saves what is left.
type Downloader struct {
	client      *Client
	logger      *slog.Logger
	outputDir   string
	concurrency int
}

// New creates a downloader writing below outputDir.
func New(outputDir string, opts ...Option) *Downloader {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if outputDir == "" {
		outputDir = "."
	}
	return &Downloader{
		client:      newClient(o),
		logger:      o.logger.With("component", "downloader"),
		outputDir:   outputDir,
		concurrency: o.concurrency,
	}
}

// Client returns the client used for fetching and saving.
func (d *Downloader) Client() *Client {
	return d.client
}

// Run probes every image of media once and downloads those at least minSize
// pixels in both dimensions. The video is downloaded best-effort. Failed
// image downloads are counted, not returned; only cancellation aborts a run.
func (d *Downloader) Run(ctx context.Context, media *schema.OfferMedia, minSize int) (*Report, error) {
	if media == nil {
		return nil, ErrNoMedia
	}
	if minSize < 1 {
		minSize = 1
	}

	report := &Report{
		RunID:       uuid.New(),
		ProductName: media.ProductName,
		Folder:      filepath.Join(d.outputDir, SanitizeName(media.ProductName)),
		Counts:      make(map[schema.MediaGroup]int, len(schema.DownloadOrder)),
	}
	logger := d.logger.With("run_id", report.RunID.String())

	groups := dedupeGroups(media.Groups)
	accepted, err := d.probeAll(ctx, logger, groups, minSize)
	if err != nil {
		return nil, err
	}

	filtered := &schema.OfferMedia{ProductName: media.ProductName, VideoURL: media.VideoURL}
	for _, group := range schema.DownloadOrder {
		var keep []string
		for _, u := range groups.Get(group) {
			if accepted[u] {
				keep = append(keep, u)
			}
		}
		filtered.Groups.Set(group, keep)
		report.Counts[group] = len(keep)
	}

	for _, job := range Plan(filtered) {
		target := filepath.Join(d.outputDir, filepath.FromSlash(job.Path))
		written, err := d.client.Download(ctx, job.URL, target)
		if err != nil {
			if ctx.Err() != nil {
				return report, ctx.Err()
			}
			if job.Group == "" {
				logger.WarnContext(ctx, "Skipping video", "url", job.URL, "error", err)
				continue
			}
			logger.WarnContext(ctx, "Failed to download image", "url", job.URL, "group", job.Group, "error", err)
			report.Failed++
			continue
		}
		report.Files = append(report.Files, written)
		if job.Group != "" {
			report.Downloaded++
		}
	}

	if report.Downloaded == 0 {
		report.Note = lazyLoadNote
	}

	logger.InfoContext(ctx, "Download run finished",
		"product", media.ProductName,
		"downloaded", report.Downloaded,
		"failed", report.Failed)

	return report, nil
}

// probeAll checks each distinct URL once, in DownloadOrder, with at most
// d.concurrency probes in flight.
func (d *Downloader) probeAll(ctx context.Context, logger *slog.Logger, groups schema.MediaGroups, minSize int) (map[string]bool, error) {
	var urls []string
	seen := make(map[string]struct{})
	for _, group := range schema.DownloadOrder {
		for _, u := range groups.Get(group) {
			if _, ok := seen[u]; ok {
				continue
			}
			seen[u] = struct{}{}
			urls = append(urls, u)
		}
	}

	ok := make([]bool, len(urls))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.concurrency)
	for i, u := range urls {
		i, u := i, u
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			w, h, err := d.client.ProbeImage(gctx, u)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				logger.DebugContext(gctx, "Image probe failed", "url", u, "error", err)
				return nil
			}
			ok[i] = w >= minSize && h >= minSize
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("image probing interrupted: %w", err)
	}

	accepted := make(map[string]bool, len(urls))
	for i, u := range urls {
		accepted[u] = ok[i]
	}
	return accepted, nil
}

func dedupeGroups(groups schema.MediaGroups) schema.MediaGroups {
	var out schema.MediaGroups
	for _, group := range schema.DownloadOrder {
		seen := make(map[string]struct{})
		var urls []string
		for _, u := range groups.Get(group) {
			if u == "" {
				continue
			}
			if _, ok := seen[u]; ok {
				continue
			}
			seen[u] = struct{}{}
			urls = append(urls, u)
		}
		out.Set(group, urls)
	}
	return out
}
