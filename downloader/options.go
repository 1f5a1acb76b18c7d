package downloader

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/afero"
)

const (
	DefaultProbeTimeout = 12 * time.Second
	DefaultConcurrency  = 4
	DefaultMinSize      = 500
)

type options struct {
	httpClient   *http.Client
	logger       *slog.Logger
	fs           afero.Fs
	probeTimeout time.Duration
	concurrency  int
	userAgent    string
}

// Option configures a Client or Downloader.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		httpClient:   &http.Client{Timeout: 2 * time.Minute},
		logger:       slog.Default(),
		fs:           afero.NewOsFs(),
		probeTimeout: DefaultProbeTimeout,
		concurrency:  DefaultConcurrency,
		userAgent:    "listingkit/1.0",
	}
}

// WithHTTPClient allows providing a custom http.Client.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		if client != nil {
			o.httpClient = client
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithFs sets the filesystem downloads are written to.
func WithFs(fs afero.Fs) Option {
	return func(o *options) {
		if fs != nil {
			o.fs = fs
		}
	}
}

// WithProbeTimeout bounds each image size probe.
func WithProbeTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.probeTimeout = d
		}
	}
}

// WithConcurrency sets how many images are probed at once.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		if ua != "" {
			o.userAgent = ua
		}
	}
}
