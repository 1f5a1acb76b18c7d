package downloader_test

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/listingkit/downloader"
	"github.com/sevigo/listingkit/schema"
	"github.com/sevigo/listingkit/testutil"
)

// rewriteTransport sends every request to the test server, whatever host the
// URL names.
type rewriteTransport struct {
	target *url.URL
}

func (rt rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.URL.Scheme = rt.target.Scheme
	r.URL.Host = rt.target.Host
	return http.DefaultTransport.RoundTrip(r)
}

type imageServer struct {
	mu   sync.Mutex
	hits map[string]int
	srv  *httptest.Server
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func newImageServer(t *testing.T, pages map[string]string) *imageServer {
	t.Helper()

	files := map[string][]byte{
		"/big.png":    pngBytes(t, 600, 600),
		"/detail.png": pngBytes(t, 600, 700),
		"/small.png":  pngBytes(t, 100, 100),
		"/video.mp4":  []byte("video"),
	}

	s := &imageServer{hits: make(map[string]int)}
	s.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.hits[r.URL.Path]++
		s.mu.Unlock()

		if body, ok := files[r.URL.Path]; ok {
			_, _ = w.Write(body)
			return
		}
		if page, ok := pages[r.URL.Path]; ok {
			_, _ = w.Write([]byte(page))
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(s.srv.Close)
	return s
}

func (s *imageServer) httpClient(t *testing.T) *http.Client {
	t.Helper()
	target, err := url.Parse(s.srv.URL)
	require.NoError(t, err)
	return &http.Client{Transport: rewriteTransport{target: target}}
}

func (s *imageServer) hitCount(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

func newDownloader(t *testing.T, s *imageServer, fs afero.Fs) *downloader.Downloader {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	return downloader.New("out",
		downloader.WithHTTPClient(s.httpClient(t)),
		downloader.WithLogger(logger),
		downloader.WithFs(fs),
		downloader.WithConcurrency(2),
	)
}

func readFile(t *testing.T, fs afero.Fs, path string) []byte {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	return data
}

func TestDownloader_Run(t *testing.T) {
	s := newImageServer(t, nil)
	fs := afero.NewMemMapFs()
	d := newDownloader(t, s, fs)

	media := &schema.OfferMedia{
		ProductName: "眼影盤/10色",
		Groups: schema.MediaGroups{
			Main:    []string{"https://img.example.com/big.png", "https://img.example.com/small.png", "https://img.example.com/big.png"},
			SKU:     []string{"https://img.example.com/big.png"},
			Details: []string{"https://img.example.com/detail.png", "https://img.example.com/broken.jpg"},
		},
		VideoURL: "https://img.example.com/video.mp4",
	}

	report, err := d.Run(context.Background(), media, 500)
	require.NoError(t, err)

	assert.NotEmpty(t, report.RunID.String())
	assert.Equal(t, "out/眼影盤_10色", report.Folder)
	assert.Equal(t, map[schema.MediaGroup]int{
		schema.MediaGroupDetails: 1,
		schema.MediaGroupMain:    1,
		schema.MediaGroupSKU:     1,
	}, report.Counts)
	assert.Equal(t, 3, report.Downloaded)
	assert.Equal(t, 0, report.Failed)
	assert.Empty(t, report.Note)
	assert.Equal(t, []string{
		"out/眼影盤_10色/video.mp4",
		"out/眼影盤_10色/details/001.png",
		"out/眼影盤_10色/main/001.png",
		"out/眼影盤_10色/sku/001.png",
	}, report.Files)

	assert.Equal(t, []byte("video"), readFile(t, fs, "out/眼影盤_10色/video.mp4"))
	assert.Equal(t, pngBytes(t, 600, 700), readFile(t, fs, "out/眼影盤_10色/details/001.png"))

	// One probe plus one download per group it was kept in.
	assert.Equal(t, 3, s.hitCount("/big.png"))
	assert.Equal(t, 1, s.hitCount("/small.png"))
}

func TestDownloader_RunEdgeCases(t *testing.T) {
	t.Run("nil media", func(t *testing.T) {
		s := newImageServer(t, nil)
		_, err := newDownloader(t, s, afero.NewMemMapFs()).Run(context.Background(), nil, 500)
		require.ErrorIs(t, err, downloader.ErrNoMedia)
	})

	t.Run("nothing large enough leaves a note", func(t *testing.T) {
		s := newImageServer(t, nil)
		media := &schema.OfferMedia{Groups: schema.MediaGroups{Main: []string{"https://img.example.com/small.png"}}}

		report, err := newDownloader(t, s, afero.NewMemMapFs()).Run(context.Background(), media, 500)
		require.NoError(t, err)
		assert.Equal(t, 0, report.Downloaded)
		assert.NotEmpty(t, report.Note)
		assert.Equal(t, "out/"+downloader.DefaultFolderName, report.Folder)
	})

	t.Run("min size below one is clamped", func(t *testing.T) {
		s := newImageServer(t, nil)
		media := &schema.OfferMedia{Groups: schema.MediaGroups{Main: []string{"https://img.example.com/small.png"}}}

		report, err := newDownloader(t, s, afero.NewMemMapFs()).Run(context.Background(), media, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, report.Downloaded)
	})

	t.Run("cancelled context", func(t *testing.T) {
		s := newImageServer(t, nil)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		media := &schema.OfferMedia{Groups: schema.MediaGroups{Main: []string{"https://img.example.com/big.png"}}}

		_, err := newDownloader(t, s, afero.NewMemMapFs()).Run(ctx, media, 1)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestClient(t *testing.T) {
	s := newImageServer(t, map[string]string{"/page.html": "<p>hello</p>"})
	fs := afero.NewMemMapFs()
	client := downloader.NewClient(downloader.WithHTTPClient(s.httpClient(t)), downloader.WithFs(fs))
	ctx := context.Background()

	t.Run("fetch text", func(t *testing.T) {
		text, err := client.FetchText(ctx, "https://shop.example.com/page.html")
		require.NoError(t, err)
		assert.Equal(t, "<p>hello</p>", text)
	})

	t.Run("fetch rejects non-http urls", func(t *testing.T) {
		_, err := client.FetchText(ctx, "ftp://shop.example.com/page.html")
		require.ErrorIs(t, err, downloader.ErrBadURL)
	})

	t.Run("fetch reports error statuses", func(t *testing.T) {
		_, err := client.FetchText(ctx, "https://shop.example.com/missing.html")
		require.ErrorIs(t, err, downloader.ErrStatus)
	})

	t.Run("probe image", func(t *testing.T) {
		w, h, err := client.ProbeImage(ctx, "https://img.example.com/detail.png")
		require.NoError(t, err)
		assert.Equal(t, 600, w)
		assert.Equal(t, 700, h)

		_, _, err = client.ProbeImage(ctx, "https://img.example.com/video.mp4")
		require.Error(t, err)
	})

	t.Run("download never overwrites", func(t *testing.T) {
		first, err := client.Download(ctx, "https://img.example.com/video.mp4", "dl/clip.mp4")
		require.NoError(t, err)
		second, err := client.Download(ctx, "https://img.example.com/video.mp4", "dl/clip.mp4")
		require.NoError(t, err)
		third, err := client.Download(ctx, "https://img.example.com/video.mp4", "dl/clip.mp4")
		require.NoError(t, err)

		assert.Equal(t, "dl/clip.mp4", first)
		assert.Equal(t, "dl/clip (1).mp4", second)
		assert.Equal(t, "dl/clip (2).mp4", third)

		entries, err := afero.ReadDir(fs, "dl")
		require.NoError(t, err)
		assert.Len(t, entries, 3)
	})
}

func TestScraper_Scrape(t *testing.T) {
	const page = `<html><head><title>卡泡维妮十色眼影盘哑光珠光大地色</title></head><body>
<div class="main-gallery"><img src="https://img.example.com/big.png"></div>
</body></html>`

	s := newImageServer(t, map[string]string{"/offer/1.html": page})
	fs := afero.NewMemMapFs()
	logger, _ := testutil.NewTestLogger(t)
	scraper := downloader.NewScraper(newDownloader(t, s, fs), logger)

	t.Run("rejects other pages", func(t *testing.T) {
		_, err := scraper.Scrape(context.Background(), "https://example.com/offer/1.html", 500)
		require.ErrorIs(t, err, downloader.ErrNotOfferURL)
	})

	t.Run("downloads every group", func(t *testing.T) {
		report, err := scraper.Scrape(context.Background(), "https://detail.1688.com/offer/1.html", 500)
		require.NoError(t, err)

		assert.Equal(t, "卡泡维妮十色眼影盘哑光珠光大地色", report.ProductName)
		assert.Equal(t, 3, report.Downloaded)
		for _, group := range []string{"details", "main", "sku"} {
			exists, err := afero.Exists(fs, "out/卡泡维妮十色眼影盘哑光珠光大地色/"+group+"/001.png")
			require.NoError(t, err)
			assert.True(t, exists, group)
		}
	})
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "a_b_c______d", downloader.SanitizeName(`a/b:c*?"<>|d`))
	assert.Equal(t, "a b c", downloader.SanitizeName(" a   b\tc "))
	assert.Equal(t, downloader.DefaultFolderName, downloader.SanitizeName("   "))
	assert.Equal(t, strings.Repeat("眼", 80), downloader.SanitizeName(strings.Repeat("眼", 100)))
}

func TestGuessExt(t *testing.T) {
	assert.Equal(t, "jpg", downloader.GuessImageExt("https://x/a.JPEG?x=1"))
	assert.Equal(t, "webp", downloader.GuessImageExt("https://x/a.webp#top"))
	assert.Equal(t, "gif", downloader.GuessImageExt("https://x/a.gif"))
	assert.Equal(t, "jpg", downloader.GuessImageExt("https://x/a"))

	assert.Equal(t, "m3u8", downloader.GuessVideoExt("https://x/a.m3u8?t=1"))
	assert.Equal(t, "mov", downloader.GuessVideoExt("https://x/a.MOV"))
	assert.Equal(t, "mp4", downloader.GuessVideoExt("https://x/a"))
}

func TestPlan(t *testing.T) {
	assert.Nil(t, downloader.Plan(nil))

	jobs := downloader.Plan(&schema.OfferMedia{
		Groups: schema.MediaGroups{
			Main:    []string{"https://x/a.jpg", "https://x/b.png"},
			Details: []string{"https://x/c.webp"},
		},
		VideoURL: "https://x/v.mov",
	})

	assert.Equal(t, []downloader.Job{
		{URL: "https://x/v.mov", Path: "1688_product/video.mov"},
		{Group: schema.MediaGroupDetails, URL: "https://x/c.webp", Path: "1688_product/details/001.webp"},
		{Group: schema.MediaGroupMain, URL: "https://x/a.jpg", Path: "1688_product/main/001.jpg"},
		{Group: schema.MediaGroupMain, URL: "https://x/b.png", Path: "1688_product/main/002.png"},
	}, jobs)
}
