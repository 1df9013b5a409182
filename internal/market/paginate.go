package market

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"marketfetcher/internal/metrics"
)

// pageCount returns how many pages of size cover total. At least one page is always
// requested, even when total is zero
func pageCount(total, size int) int {
	if total <= 0 {
		return 1
	}
	return (total + size - 1) / size
}

// AllMarketListings collects every search page for the query and returns the listings
// concatenated in start order. Pages are not deduplicated: if the live total changes
// while collecting, listings may repeat or be skipped. A failed page discards everything
func (c *Client) AllMarketListings(ctx context.Context, p AllMarketListingsParams) (*Pending[[]Listing], error) {
	first := c.pageParams(p, 0)
	if _, err := buildMarketListings(c.config, first); err != nil {
		return nil, c.reject(OpAllListings, err)
	}

	key := fmt.Sprintf("%s:%d:%s", OpAllListings, p.AppID, p.Query)
	return invoke(ctx, key, p.Callback, func(ctx context.Context) ([]Listing, error) {
		return c.collect(ctx, p)
	}), nil
}

func (c *Client) pageParams(p AllMarketListingsParams, start int) MarketListingsParams {
	return MarketListingsParams{
		Query:        p.Query,
		Descriptions: p.Descriptions,
		AppID:        p.AppID,
		Start:        start,
		Count:        c.pageSize,
	}
}

// fetchPage gets the search page beginning at start
func (c *Client) fetchPage(ctx context.Context, p AllMarketListingsParams, start int) (*SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req, err := buildMarketListings(c.config, c.pageParams(p, start))
	if err != nil {
		return nil, err
	}

	var page SearchResult
	if err := c.get(ctx, req, &page); err != nil {
		return nil, fmt.Errorf("fetching page at start %d: %w", start, err)
	}
	metrics.ListingPagesTotal.Inc()
	return &page, nil
}

func (c *Client) collect(ctx context.Context, p AllMarketListingsParams) ([]Listing, error) {
	first, err := c.fetchPage(ctx, p, 0)
	if err != nil {
		return nil, err
	}

	pages := pageCount(first.TotalCount, c.pageSize)
	results := make([][]Listing, pages)
	results[0] = first.Results

	// Pages are issued in start order; with a limit of one they also run in that order
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.pageConcurrency)
	for i := 1; i < pages; i++ {
		g.Go(func() error {
			page, err := c.fetchPage(gctx, p, i*c.pageSize)
			if err != nil {
				return err
			}
			results[i] = page.Results
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	c.logger.Debug("collected market listings",
		"appid", p.AppID,
		"query", p.Query,
		"pages", pages,
		"total_count", first.TotalCount)

	var all []Listing
	for _, r := range results {
		all = append(all, r...)
	}
	if all == nil {
		all = []Listing{}
	}
	return all, nil
}
