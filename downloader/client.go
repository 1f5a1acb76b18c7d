// Package downloader fetches offer pages and saves their images and video to
// disk, skipping images below a minimum size.
package downloader

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/afero"
	_ "golang.org/x/image/webp"

	"github.com/sevigo/listingkit/schema"
)

var (
	ErrBadURL = errors.New("bad url")
	ErrStatus = errors.New("unexpected http status")
)

var httpURL = regexp.MustCompile(`(?i)^https?://`)

const maxTextBytes = 16 << 20

// Client performs the HTTP and filesystem work of a scrape.
type Client struct {
	httpClient   *http.Client
	logger       *slog.Logger
	fs           afero.Fs
	probeTimeout time.Duration
	userAgent    string
}

var _ schema.TextFetcher = (*Client)(nil)

// NewClient creates a client. By default it writes to the OS filesystem.
func NewClient(opts ...Option) *Client {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return newClient(o)
}

func newClient(o *options) *Client {
	return &Client{
		httpClient:   o.httpClient,
		logger:       o.logger.With("component", "download_client"),
		fs:           o.fs,
		probeTimeout: o.probeTimeout,
		userAgent:    o.userAgent,
	}
}

func (c *Client) get(ctx context.Context, rawURL string) (*http.Response, error) {
	if !httpURL.MatchString(rawURL) {
		return nil, fmt.Errorf("%w: %q", ErrBadURL, rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %d for %s", ErrStatus, resp.StatusCode, rawURL)
	}
	return resp, nil
}

// FetchText returns the body of an http(s) URL.
func (c *Client) FetchText(ctx context.Context, rawURL string) (string, error) {
	resp, err := c.get(ctx, rawURL)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxTextBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	return string(body), nil
}

// ProbeImage reads just enough of an image to learn its dimensions.
func (c *Client) ProbeImage(ctx context.Context, rawURL string) (width, height int, err error) {
	ctx, cancel := context.WithTimeout(ctx, c.probeTimeout)
	defer cancel()

	resp, err := c.get(ctx, rawURL)
	if err != nil {
		return 0, 0, err
	}
	defer resp.Body.Close()

	cfg, _, err := image.DecodeConfig(resp.Body)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode image header: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}

// Download saves rawURL to path. An existing file is never overwritten: the
// name gets a " (1)", " (2)", ... suffix instead. It returns the path written.
func (c *Client) Download(ctx context.Context, rawURL, path string) (string, error) {
	resp, err := c.get(ctx, rawURL)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	dir := filepath.Dir(path)
	if err := c.fs.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := afero.TempFile(c.fs, dir, ".download-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		_ = c.fs.Remove(tmpName)
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = c.fs.Remove(tmpName)
		return "", fmt.Errorf("failed to close %s: %w", path, err)
	}

	target, err := c.uniquePath(path)
	if err != nil {
		_ = c.fs.Remove(tmpName)
		return "", err
	}
	if err := c.fs.Rename(tmpName, target); err != nil {
		_ = c.fs.Remove(tmpName)
		return "", fmt.Errorf("failed to move download into place: %w", err)
	}

	c.logger.DebugContext(ctx, "Downloaded file", "url", rawURL, "path", target)
	return target, nil
}

func (c *Client) uniquePath(path string) (string, error) {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)

	candidate := path
	for i := 1; ; i++ {
		exists, err := afero.Exists(c.fs, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to stat %s: %w", candidate, err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s (%d)%s", base, i, ext)
	}
}
