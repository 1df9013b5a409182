package coordinator

import (
	"context"
	"fmt"
	"io"
	"sync"

	"marketfetcher/internal/fetcher"
	"marketfetcher/internal/market"
)

// PriceSource is the part of the market client the coordinator needs
type PriceSource interface {
	ItemPrice(ctx context.Context, p market.ItemPriceParams) (*market.Pending[*market.PriceOverview], error)
}

// Item is one entry of the watch list
type Item struct {
	MarketHashName string
	AppID          int
}

// Key identifies the item in the output
func (i Item) Key() string {
	return fmt.Sprintf("%d:%s", i.AppID, i.MarketHashName)
}

// Coordinator prices a watch list concurrently and aggregates results
type Coordinator struct {
	source PriceSource
	items  []Item
}

// New creates a new Coordinator for the given items
func New(source PriceSource, items []Item) *Coordinator {
	return &Coordinator{
		source: source,
		items:  items,
	}
}

// Run issues one price lookup per item and writes results to w as they arrive
// in the format:
//   - Success: "KEY: lowest (median median, volume sold)"
//   - Error: "KEY: ERROR - error message"
//
// Per-item failures are reported in the output, not returned
func (c *Coordinator) Run(ctx context.Context, w io.Writer) error {
	if len(c.items) == 0 {
		return fmt.Errorf("no items configured")
	}

	resultChan := make(chan fetcher.Result[*market.PriceOverview], len(c.items))

	var wg sync.WaitGroup

	for _, item := range c.items {
		key := item.Key()
		wg.Add(1)

		_, err := c.source.ItemPrice(ctx, market.ItemPriceParams{
			MarketHashName: item.MarketHashName,
			AppID:          item.AppID,
			Callback: func(err error, overview *market.PriceOverview) {
				defer wg.Done()
				if err != nil {
					resultChan <- fetcher.Failure[*market.PriceOverview](key, err)
					return
				}
				resultChan <- fetcher.Success(key, overview)
			},
		})
		if err != nil {
			// rejected before any request, the callback will never fire
			resultChan <- fetcher.Failure[*market.PriceOverview](key, err)
			wg.Done()
		}
	}

	// Close the result channel when all callbacks have fired
	go func() {
		wg.Wait()
		close(resultChan)
	}()

	for result := range resultChan {
		if result.Err != nil {
			fmt.Fprintf(w, "%s: ERROR - %v\n", result.Key, result.Err)
			continue
		}
		fmt.Fprintln(w, formatOverview(result.Key, result.Value))
	}

	return nil
}

func formatOverview(key string, o *market.PriceOverview) string {
	if o == nil || !o.Success {
		return fmt.Sprintf("%s: no listings", key)
	}
	lowest := o.LowestPrice
	if lowest == "" {
		lowest = "n/a"
	}
	if o.MedianPrice == "" && o.Volume == "" {
		return fmt.Sprintf("%s: %s", key, lowest)
	}
	return fmt.Sprintf("%s: %s (median %s, volume %s)", key, lowest, o.MedianPrice, o.Volume)
}
