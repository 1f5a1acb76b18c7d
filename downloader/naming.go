package downloader

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/sevigo/listingkit/schema"
)

// DefaultFolderName is used for products without a usable name.
const DefaultFolderName = "1688_product"

const maxFolderRunes = 80

var (
	reservedChars = regexp.MustCompile(`[\\/:*?"<>|]`)
	spaceRun      = regexp.MustCompile(`\s+`)
	imageExt      = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|webp|gif)(\?|#|$)`)
	videoExt      = regexp.MustCompile(`(?i)\.(mp4|m3u8|webm|mov)(\?|#|$)`)
)

// SanitizeName turns a product name into a folder name that is safe on every
// common filesystem.
func SanitizeName(name string) string {
	name = reservedChars.ReplaceAllString(strings.TrimSpace(name), "_")
	name = strings.TrimSpace(spaceRun.ReplaceAllString(name, " "))
	if name == "" {
		return DefaultFolderName
	}
	if r := []rune(name); len(r) > maxFolderRunes {
		name = string(r[:maxFolderRunes])
	}
	return name
}

// GuessImageExt returns the image extension of rawURL, "jpg" when unknown.
func GuessImageExt(rawURL string) string {
	m := imageExt.FindStringSubmatch(rawURL)
	if m == nil {
		return "jpg"
	}
	ext := strings.ToLower(m[1])
	if ext == "jpeg" {
		return "jpg"
	}
	return ext
}

// GuessVideoExt returns the video extension of rawURL, "mp4" when unknown.
func GuessVideoExt(rawURL string) string {
	m := videoExt.FindStringSubmatch(rawURL)
	if m == nil {
		return "mp4"
	}
	return strings.ToLower(m[1])
}

// Job is one file to download. Group is empty for the video.
type Job struct {
	Group schema.MediaGroup
	URL   string
	Path  string
}

// Plan lays out the files for media under a folder named after the product:
// folder/<group>/NNN.ext per image, numbered from 1 within each group, and
// folder/video.ext. The video comes first, then groups in DownloadOrder.
func Plan(media *schema.OfferMedia) []Job {
	if media == nil {
		return nil
	}

	folder := SanitizeName(media.ProductName)
	var jobs []Job
	if media.VideoURL != "" {
		jobs = append(jobs, Job{
			URL:  media.VideoURL,
			Path: path.Join(folder, "video."+GuessVideoExt(media.VideoURL)),
		})
	}
	for _, group := range schema.DownloadOrder {
		for i, u := range media.Groups.Get(group) {
			jobs = append(jobs, Job{
				Group: group,
				URL:   u,
				Path:  path.Join(folder, string(group), fmt.Sprintf("%03d.%s", i+1, GuessImageExt(u))),
			})
		}
	}
	return jobs
}
