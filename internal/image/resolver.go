// Package image resolves the artwork URL of a market item, either straight from a CDN
// or by scraping the market's rendered listing HTML
package image

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	// NoImage is returned when a listing carries no image. It is a value, not an error
	NoImage = "No image available"

	// CDNAppID is the only app (Counter-Strike) with a dedicated asset CDN
	CDNAppID = 730

	// DefaultSize is the pixel size used when callers leave it unset
	DefaultSize = 360

	listingImageSelector = "img.market_listing_item_img"
	thumbnailToken       = "62fx62f"
)

// CDN resolves item names to image URLs without touching the market
type CDN interface {
	// Ready reports whether the CDN has loaded its data and can answer lookups
	Ready() bool
	// ItemURL returns the image URL for a market hash name, or false on a miss
	ItemURL(marketHashName string) (string, bool)
}

// Parser extracts the listing image source from a rendered listing fragment
type Parser func(html string) (src string, ok bool)

// Resolver picks between the CDN and the HTML scrape
type Resolver struct {
	parse Parser
}

// Option configures a Resolver
type Option func(*Resolver)

// WithParser overrides the HTML parser
func WithParser(p Parser) Option {
	return func(r *Resolver) {
		r.parse = p
	}
}

// NewResolver creates a Resolver using goquery for the scrape path
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{parse: ParseListingImage}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CanUseFastPath reports whether cdn may answer for an item of appID
func CanUseFastPath(cdn CDN, appID int) bool {
	return cdn != nil && cdn.Ready() && appID == CDNAppID
}

// FromCDN asks the CDN for the item when the fast path is eligible
func (r *Resolver) FromCDN(cdn CDN, marketHashName string, appID int) (string, bool) {
	if !CanUseFastPath(cdn, appID) {
		return "", false
	}
	url, ok := cdn.ItemURL(marketHashName)
	if !ok || url == "" {
		return "", false
	}
	return url, true
}

// FromHTML scrapes the listing image out of html and resizes it to size pixels
func (r *Resolver) FromHTML(html string, size int) string {
	src, ok := r.parse(html)
	if !ok {
		return NoImage
	}
	return Resize(src, size)
}

// Resolve returns the image URL for an item: the CDN answer when eligible, otherwise the
// resized listing image, otherwise NoImage. A CDN miss falls through to the scrape
func (r *Resolver) Resolve(cdn CDN, marketHashName string, appID int, html string, size int) string {
	if url, ok := r.FromCDN(cdn, marketHashName, appID); ok {
		return url
	}
	return r.FromHTML(html, size)
}

// Resize swaps the default 62px thumbnail token for one of size pixels. URLs that are not
// resizable thumbnails come back unchanged
func Resize(url string, size int) string {
	if !strings.Contains(url, thumbnailToken) {
		return url
	}
	return strings.Replace(url, thumbnailToken, fmt.Sprintf("%dfx%df", size, size), 1)
}

// ParseListingImage returns the src of the first market listing image in html.
// An empty src counts as no image
func ParseListingImage(html string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", false
	}
	src, exists := doc.Find(listingImageSelector).First().Attr("src")
	if !exists || src == "" {
		return "", false
	}
	return src, true
}
