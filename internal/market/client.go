// Package market is a typed client for the Steam Community Market read endpoints.
//
// Every endpoint method validates its parameters before any request is made and
// returns a *fetcher.ValidationError synchronously when they are malformed. A valid call
// either delivers its outcome to params.Callback exactly once, returning a nil Pending,
// or returns a Pending to Wait on
package market

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"marketfetcher/internal/fetcher"
	"marketfetcher/internal/image"
	"marketfetcher/internal/metrics"
	"marketfetcher/internal/ratelimit"
)

const (
	defaultPageSize        = MaxCount
	defaultPageConcurrency = 1
)

// Client wraps the market endpoints. It is safe for concurrent use; the Configuration
// is never modified after New
type Client struct {
	config          Configuration
	transport       fetcher.Transport
	resolver        *image.Resolver
	logger          *slog.Logger
	pageSize        int
	pageConcurrency int
}

// Option configures a Client
type Option func(*Client)

// WithTransport replaces the default resty transport
func WithTransport(t fetcher.Transport) Option {
	return func(c *Client) {
		c.transport = t
	}
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithResolver overrides the image resolver
func WithResolver(r *image.Resolver) Option {
	return func(c *Client) {
		c.resolver = r
	}
}

// WithPageSize sets the search page size used when collecting all listings.
// Values outside 1..100 are ignored
func WithPageSize(size int) Option {
	return func(c *Client) {
		if size > 0 && size <= MaxCount {
			c.pageSize = size
		}
	}
}

// WithPageConcurrency lets pages after the first be fetched n at a time. Results are
// still concatenated in start order
func WithPageConcurrency(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.pageConcurrency = n
		}
	}
}

// New creates a client from raw options. Unknown currencies and formats fall back to
// the defaults
func New(opts Options, options ...Option) *Client {
	c := &Client{
		config:          Normalize(opts),
		logger:          slog.Default(),
		pageSize:        defaultPageSize,
		pageConcurrency: defaultPageConcurrency,
	}
	for _, opt := range options {
		opt(c)
	}
	if c.transport == nil {
		c.transport = fetcher.NewRestyTransport(fetcher.DefaultBaseURL, 0,
			fetcher.WithLimiter(ratelimit.NewDefault()),
			fetcher.WithTransportLogger(c.logger))
	}
	if c.resolver == nil {
		c.resolver = image.NewResolver()
	}
	return c
}

// Configuration returns the normalized configuration
func (c *Client) Configuration() Configuration {
	return c.config
}

// get performs req and records the outcome
func (c *Client) get(ctx context.Context, req *fetcher.Request, out any) error {
	start := time.Now()
	err := c.transport.Get(ctx, req, out)
	metrics.RequestDuration.WithLabelValues(req.Operation).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.RequestsTotal.WithLabelValues(req.Operation, metrics.OutcomeError).Inc()
		c.logger.Debug("market request failed", "operation", req.Operation, "error", err)
		return err
	}
	metrics.RequestsTotal.WithLabelValues(req.Operation, metrics.OutcomeSuccess).Inc()
	return nil
}

// reject records a validation failure and hands it back
func (c *Client) reject(op string, err error) error {
	var ve *fetcher.ValidationError
	if errors.As(err, &ve) {
		metrics.ValidationFailuresTotal.WithLabelValues(ve.Param).Inc()
	}
	c.logger.Debug("market call rejected", "operation", op, "error", err)
	return err
}

// fetchInto returns an operation that decodes req's response into a new T
func fetchInto[T any](c *Client, req *fetcher.Request) func(context.Context) (*T, error) {
	return func(ctx context.Context) (*T, error) {
		var out T
		if err := c.get(ctx, req, &out); err != nil {
			return nil, err
		}
		return &out, nil
	}
}

func itemKey(op string, appID int, name string) string {
	return fmt.Sprintf("%s:%d:%s", op, appID, name)
}

// ItemPrice gets the price overview of the first listing matching the item
func (c *Client) ItemPrice(ctx context.Context, p ItemPriceParams) (*Pending[*PriceOverview], error) {
	req, err := buildItemPrice(c.config, p)
	if err != nil {
		return nil, c.reject(OpItemPrice, err)
	}
	key := itemKey(OpItemPrice, p.AppID, p.MarketHashName)
	return invoke(ctx, key, p.Callback, fetchInto[PriceOverview](c, req)), nil
}

// ItemImage resolves the item's image URL. A ready CDN answers Counter-Strike items
// without a market request; everything else is scraped from the rendered listing.
// Listings without artwork resolve to image.NoImage
func (c *Client) ItemImage(ctx context.Context, p ItemImageParams) (*Pending[string], error) {
	req, err := buildItemImage(c.config, p)
	if err != nil {
		return nil, c.reject(OpItemImage, err)
	}

	size := p.Size
	if size == 0 {
		size = image.DefaultSize
	}

	key := itemKey(OpItemImage, p.AppID, p.MarketHashName)
	return invoke(ctx, key, p.Callback, func(ctx context.Context) (string, error) {
		if url, ok := c.resolver.FromCDN(c.config.CDN, p.MarketHashName, p.AppID); ok {
			metrics.ImageResolutionsTotal.WithLabelValues(metrics.ImagePathCDN).Inc()
			return url, nil
		}

		var render listingRender
		if err := c.get(ctx, req, &render); err != nil {
			return "", err
		}

		url := c.resolver.FromHTML(render.ResultsHTML, size)
		if url == image.NoImage {
			metrics.ImageResolutionsTotal.WithLabelValues(metrics.ImagePathNone).Inc()
		} else {
			metrics.ImageResolutionsTotal.WithLabelValues(metrics.ImagePathScrape).Inc()
		}
		return url, nil
	}), nil
}

// PriceHistory gets the item's price history. It needs a logged-in session cookie
func (c *Client) PriceHistory(ctx context.Context, p PriceHistoryParams) (*Pending[*PriceHistory], error) {
	req, err := buildPriceHistory(c.config, p)
	if err != nil {
		return nil, c.reject(OpPriceHistory, err)
	}
	key := itemKey(OpPriceHistory, p.AppID, p.MarketHashName)
	return invoke(ctx, key, p.Callback, fetchInto[PriceHistory](c, req)), nil
}

// MarketListings gets one page of search results for an app
func (c *Client) MarketListings(ctx context.Context, p MarketListingsParams) (*Pending[*SearchResult], error) {
	req, err := buildMarketListings(c.config, p)
	if err != nil {
		return nil, c.reject(OpMarketListings, err)
	}
	key := fmt.Sprintf("%s:%d:%s:%d", OpMarketListings, p.AppID, p.Query, p.Start)
	return invoke(ctx, key, p.Callback, fetchInto[SearchResult](c, req)), nil
}

// ItemActivity gets the recent order activity of an item
func (c *Client) ItemActivity(ctx context.Context, p ActivityParams) (*Pending[*OrderActivity], error) {
	req, err := buildItemActivity(c.config, p)
	if err != nil {
		return nil, c.reject(OpItemActivity, err)
	}
	return invoke(ctx, OpItemActivity+":"+p.ItemNameID, p.Callback, fetchInto[OrderActivity](c, req)), nil
}

// ItemHistogram gets the buy and sell order histogram of an item
func (c *Client) ItemHistogram(ctx context.Context, p HistogramParams) (*Pending[*OrderHistogram], error) {
	req, err := buildItemHistogram(c.config, p)
	if err != nil {
		return nil, c.reject(OpItemHistogram, err)
	}
	return invoke(ctx, OpItemHistogram+":"+p.ItemNameID, p.Callback, fetchInto[OrderHistogram](c, req)), nil
}

// MyHistory gets the market history of the session owner
func (c *Client) MyHistory(ctx context.Context, p MyHistoryParams) (*Pending[*MyHistory], error) {
	req, err := buildMyHistory(c.config, p)
	if err != nil {
		return nil, c.reject(OpMyHistory, err)
	}
	return invoke(ctx, OpMyHistory, p.Callback, fetchInto[MyHistory](c, req)), nil
}

// MyListings gets the active listings and buy orders of the session owner
func (c *Client) MyListings(ctx context.Context, p MyListingsParams) (*Pending[*MyListings], error) {
	req, err := buildMyListings(c.config, p)
	if err != nil {
		return nil, c.reject(OpMyListings, err)
	}
	return invoke(ctx, OpMyListings, p.Callback, fetchInto[MyListings](c, req)), nil
}

// PopularListings gets the most popular listings across the market
func (c *Client) PopularListings(ctx context.Context, p PopularListingsParams) (*Pending[*PopularListings], error) {
	req, err := buildPopularListings(c.config, p)
	if err != nil {
		return nil, c.reject(OpPopularListings, err)
	}
	key := fmt.Sprintf("%s:%d", OpPopularListings, p.Start)
	return invoke(ctx, key, p.Callback, fetchInto[PopularListings](c, req)), nil
}

// RecentListings gets the most recent listings across the market
func (c *Client) RecentListings(ctx context.Context, p RecentListingsParams) (*Pending[*RecentListings], error) {
	req, err := buildRecentListings(c.config, p)
	if err != nil {
		return nil, c.reject(OpRecentListings, err)
	}
	return invoke(ctx, OpRecentListings, p.Callback, fetchInto[RecentListings](c, req)), nil
}
