package offerpage_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/listingkit/offerpage"
	"github.com/sevigo/listingkit/schema/fake"
	"github.com/sevigo/listingkit/testutil"
)

const offerURL = "https://detail.1688.com/offer/123456.html"

const fullPage = `<html><head>
<title>某某化妆品有限公司 - 阿里巴巴</title>
<meta property="og:title" content="卡泡维妮十色眼影盘哑光珠光大地色 - 1688.com">
<script>window.__INIT_DATA__ = {"mainImage":["https:\/\/cbu01.alicdn.com\/img\/main1.jpg_220x220q90.jpg","\/\/cbu01.alicdn.com\/img\/main2.jpg"],"detailUrl":"https:\/\/itemcdn.tmall.com\/1688offer\/desc.html?a=1&amp;b=2","skuModel":{"skuProps":[{"value":[{"name":"01","imageUrl":"https:\/\/cbu01.alicdn.com\/img\/sku1.jpg"},{"name":"02","imageUrl":"https:\/\/cbu01.alicdn.com\/img\/sku2.jpg"}]}]},"videoUrl":"https:\/\/cloud.video.taobao.com\/play\/v1.mp4"}</script>
</head><body>
<h1>供应商旗舰店</h1>
<div class="detail-gallery-wrap"><img src="//cbu01.alicdn.com/img/main2_60x60.jpg"><img data-src="//cbu01.alicdn.com/img/main3.jpg"></div>
<div class="sku-wrapper"><img data-lazy-src="https://cbu01.alicdn.com/img/sku2.jpg"></div>
</body></html>`

const detailDoc = `<p><img src="https://cbu01.alicdn.com/img/d1.jpg"><img src="//cbu01.alicdn.com/img/d2.jpg?x=1"></p>`

func TestParser_Parse(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	detailURL := "https://itemcdn.tmall.com/1688offer/desc.html?a=1&b=2"
	fetcher := fake.NewFetcher(map[string]string{detailURL: detailDoc})

	media, err := offerpage.NewParser(fetcher, logger).Parse(context.Background(), fullPage, offerURL)
	require.NoError(t, err)

	assert.Equal(t, "卡泡维妮十色眼影盘哑光珠光大地色", media.ProductName)
	assert.Equal(t, []string{
		"https://cbu01.alicdn.com/img/main1.jpg",
		"https://cbu01.alicdn.com/img/main2.jpg",
		"https://cbu01.alicdn.com/img/main3.jpg",
	}, media.Groups.Main)
	assert.Equal(t, []string{
		"https://cbu01.alicdn.com/img/sku1.jpg",
		"https://cbu01.alicdn.com/img/sku2.jpg",
	}, media.Groups.SKU)
	assert.Equal(t, []string{
		"https://cbu01.alicdn.com/img/d1.jpg",
		"https://cbu01.alicdn.com/img/d2.jpg?x=1",
	}, media.Groups.Details)
	assert.Equal(t, "https://cloud.video.taobao.com/play/v1.mp4", media.VideoURL)
	assert.Equal(t, []string{detailURL}, fetcher.Calls())
}

func TestParser_DetailFallbacks(t *testing.T) {
	const page = `<html><head>
<script>var data = {"detailUrl":"https:\/\/itemcdn.tmall.com\/1688offer\/missing.html","padding":"................"};</script>
</head><body>
<img src="https://cbu01.alicdn.com/img/page.jpg">
<iframe src="//desc.1688.com/offer_desc.htm?id=1"></iframe>
</body></html>`
	iframeURL := "https://desc.1688.com/offer_desc.htm?id=1"

	t.Run("iframe is used when the detail document fails", func(t *testing.T) {
		logger, buf := testutil.NewTestLogger(t)
		fetcher := fake.NewFetcher(map[string]string{iframeURL: detailDoc})

		media, err := offerpage.NewParser(fetcher, logger).Parse(context.Background(), page, offerURL)
		require.NoError(t, err)

		assert.Equal(t, []string{
			"https://cbu01.alicdn.com/img/d1.jpg",
			"https://cbu01.alicdn.com/img/d2.jpg?x=1",
		}, media.Groups.Details)
		assert.Equal(t, []string{"https://itemcdn.tmall.com/1688offer/missing.html", iframeURL}, fetcher.Calls())
		assert.Contains(t, buf.String(), "Failed to fetch description document")
	})

	t.Run("page images when every fetch fails", func(t *testing.T) {
		logger, _ := testutil.NewTestLogger(t)
		fetcher := fake.NewFetcher(nil)
		fetcher.ErrToReturn = errors.New("offline")

		media, err := offerpage.NewParser(fetcher, logger).Parse(context.Background(), page, offerURL)
		require.NoError(t, err)
		assert.Equal(t, []string{"https://cbu01.alicdn.com/img/page.jpg"}, media.Groups.Details)
	})

	t.Run("no fetcher", func(t *testing.T) {
		media, err := offerpage.NewParser(nil, nil).Parse(context.Background(), page, offerURL)
		require.NoError(t, err)
		assert.Equal(t, []string{"https://cbu01.alicdn.com/img/page.jpg"}, media.Groups.Details)
	})
}

func TestParser_ProductNameAndVideo(t *testing.T) {
	parser := offerpage.NewParser(nil, nil)
	ctx := context.Background()

	tests := []struct {
		name      string
		html      string
		wantName  string
		wantVideo string
	}{
		{
			name:      "Short supplier title is used when nothing better exists",
			html:      `<html><head><title>美妆店</title></head><body><video><source src="//v.example.com/a.mp4"></video></body></html>`,
			wantName:  "美妆店",
			wantVideo: "https://v.example.com/a.mp4",
		},
		{
			name:     "Empty page falls back to the default name",
			html:     `<html><body><p>nothing</p></body></html>`,
			wantName: offerpage.DefaultProductName,
		},
		{
			name:      "Embedded subject and wireless video",
			html:      `<html><head><script>{"subject":"水潤顯色持久防水眼線液筆","wirelessVideo":{"videoUrls":{"android":"https:\/\/v.example.com\/w.mp4"}}}</script></head><body></body></html>`,
			wantName:  "水潤顯色持久防水眼線液筆",
			wantVideo: "https://v.example.com/w.mp4",
		},
		{
			name:      "Video element src wins",
			html:      `<html><body><h1>卡泡维妮十色眼影盘哑光珠光</h1><video src="https://v.example.com/direct.mp4"></video></body></html>`,
			wantName:  "卡泡维妮十色眼影盘哑光珠光",
			wantVideo: "https://v.example.com/direct.mp4",
		},
		{
			name:      "Any video URL in scripts",
			html:      `<html><head><script>var v = "https://v.example.com/clip.m3u8?t=1";</script></head><body></body></html>`,
			wantName:  offerpage.DefaultProductName,
			wantVideo: "https://v.example.com/clip.m3u8?t=1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			media, err := parser.Parse(ctx, tt.html, offerURL)
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, media.ProductName)
			assert.Equal(t, tt.wantVideo, media.VideoURL)
		})
	}
}

func TestParser_EmptyPage(t *testing.T) {
	_, err := offerpage.NewParser(nil, nil).Parse(context.Background(), "  ", offerURL)
	require.ErrorIs(t, err, offerpage.ErrEmptyPage)
}

func TestIsOfferURL(t *testing.T) {
	assert.True(t, offerpage.IsOfferURL(offerURL))
	assert.True(t, offerpage.IsOfferURL(" https://detail.1688.com/offer/9.html?spm=a "))
	assert.False(t, offerpage.IsOfferURL("http://detail.1688.com/offer/9.html"))
	assert.False(t, offerpage.IsOfferURL("https://detail.1688.com/shop/9.html"))
	assert.False(t, offerpage.IsOfferURL("https://example.com/offer/9.html"))
	assert.False(t, offerpage.IsOfferURL("::"))
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		raw      string
		scheme   string
		expected string
	}{
		{raw: "//img.example.com/a.jpg", scheme: "https", expected: "https://img.example.com/a.jpg"},
		{raw: "//img.example.com/a.jpg", scheme: "", expected: "https://img.example.com/a.jpg"},
		{raw: "//img.example.com/a.jpg", scheme: "http", expected: "http://img.example.com/a.jpg"},
		{raw: "https://img.example.com/a.jpg_400x400.jpg", expected: "https://img.example.com/a.jpg"},
		{raw: "https://img.example.com/a_220x220q90.png", expected: "https://img.example.com/a.png"},
		{raw: "https://img.example.com/a_220x220.webp?x=1", expected: "https://img.example.com/a.webp?x=1"},
		{raw: "  ", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, offerpage.NormalizeURL(tt.raw, tt.scheme))
		})
	}
}

func TestExtractImageURLs(t *testing.T) {
	text := `<img src="https://a.example.com/1.jpg"> <img src='//b.example.com/2.PNG'> https://a.example.com/1.jpg_100x100.jpg "http://c.example.com/3.webp?v=2"`

	assert.Equal(t, []string{
		"https://a.example.com/1.jpg",
		"http://c.example.com/3.webp?v=2",
		"https://b.example.com/2.PNG",
	}, offerpage.ExtractImageURLs(text, "https"))
	assert.Empty(t, offerpage.ExtractImageURLs("no images here", "https"))
}

func TestCleanProductTitle(t *testing.T) {
	assert.Equal(t, "卡泡维妮 眼影盘", offerpage.CleanProductTitle("  卡泡维妮   眼影盘 - 阿里巴巴 "))
	assert.Equal(t, "Eyeliner", offerpage.CleanProductTitle("Eyeliner - 1688.COM"))
	assert.Equal(t, "", offerpage.CleanProductTitle("   "))
}

func TestIsLikelySupplierName(t *testing.T) {
	assert.True(t, offerpage.IsLikelySupplierName("义乌市美妆批发商行有限责任"))
	assert.True(t, offerpage.IsLikelySupplierName("短"))
	assert.False(t, offerpage.IsLikelySupplierName("卡泡维妮十色眼影盘哑光"))
	assert.False(t, offerpage.IsLikelySupplierName(""))
}
