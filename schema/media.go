package schema

// MediaGroup names a folder of images collected from an offer page.
type MediaGroup string

const (
	MediaGroupMain    MediaGroup = "main"
	MediaGroupSKU     MediaGroup = "sku"
	MediaGroupDetails MediaGroup = "details"
)

// DownloadOrder is the order groups are probed and downloaded in.
var DownloadOrder = []MediaGroup{MediaGroupDetails, MediaGroupMain, MediaGroupSKU}

// MediaGroups holds the image URLs found for each group, deduplicated and in
// page order.
type MediaGroups struct {
	Main    []string `json:"main"`
	SKU     []string `json:"sku"`
	Details []string `json:"details"`
}

// Get returns the URLs of one group.
func (g MediaGroups) Get(group MediaGroup) []string {
	switch group {
	case MediaGroupMain:
		return g.Main
	case MediaGroupSKU:
		return g.SKU
	case MediaGroupDetails:
		return g.Details
	default:
		return nil
	}
}

// Set replaces the URLs of one group.
func (g *MediaGroups) Set(group MediaGroup, urls []string) {
	switch group {
	case MediaGroupMain:
		g.Main = urls
	case MediaGroupSKU:
		g.SKU = urls
	case MediaGroupDetails:
		g.Details = urls
	}
}

// OfferMedia is everything collected from one offer page.
type OfferMedia struct {
	ProductName string      `json:"productName"`
	Groups      MediaGroups `json:"groups"`
	VideoURL    string      `json:"videoUrl,omitempty"`
}
