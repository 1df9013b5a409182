package market

import "marketfetcher/internal/fetcher"

// Validation parameter names, reported in fetcher.ValidationError.Param
const (
	ParamItemKey      = "item key"
	ParamAppID        = "app id"
	ParamCookie       = "cookie"
	ParamDescriptions = "descriptions"
	ParamStart        = "start"
	ParamCount        = "count"
	ParamSize         = "size"
	ParamItemNameID   = "item nameid"
)

const (
	// MaxCount is the largest page Steam serves
	MaxCount = 100

	defaultCount = MaxCount
)

// ItemPriceParams selects the item whose price overview is requested
type ItemPriceParams struct {
	MarketHashName string
	AppID          int
	Callback       Callback[*PriceOverview]
}

// ItemImageParams selects the item whose image is resolved. Size 0 means 360 pixels
type ItemImageParams struct {
	MarketHashName string
	AppID          int
	Size           int
	Callback       Callback[string]
}

// PriceHistoryParams requires a steamLoginSecure cookie value
type PriceHistoryParams struct {
	MarketHashName string
	AppID          int
	Cookie         string
	Callback       Callback[*PriceHistory]
}

// MarketListingsParams describes one search page. Descriptions is 0 or 1; Count 0 means 100
type MarketListingsParams struct {
	Query        string
	Descriptions int
	AppID        int
	Start        int
	Count        int
	Callback     Callback[*SearchResult]
}

// AllMarketListingsParams describes a search collected across every page
type AllMarketListingsParams struct {
	Query        string
	Descriptions int
	AppID        int
	Callback     Callback[[]Listing]
}

// ActivityParams selects an item by its numeric market nameid
type ActivityParams struct {
	ItemNameID string
	Callback   Callback[*OrderActivity]
}

// HistogramParams selects an item by its numeric market nameid
type HistogramParams struct {
	ItemNameID string
	Callback   Callback[*OrderHistogram]
}

// MyHistoryParams requires a steamLoginSecure cookie value
type MyHistoryParams struct {
	Cookie   string
	Callback Callback[*MyHistory]
}

// MyListingsParams requires a steamLoginSecure cookie value
type MyListingsParams struct {
	Cookie   string
	Callback Callback[*MyListings]
}

// PopularListingsParams pages through the most popular listings. Count 0 means 100
type PopularListingsParams struct {
	Start    int
	Count    int
	Callback Callback[*PopularListings]
}

// RecentListingsParams has no inputs besides the callback
type RecentListingsParams struct {
	Callback Callback[*RecentListings]
}

func checkItemKey(name string) error {
	if name == "" {
		return fetcher.NewValidationError(ParamItemKey)
	}
	return nil
}

// App ids are positive; zero is the unset value
func checkAppID(id int) error {
	if id <= 0 {
		return fetcher.NewValidationError(ParamAppID)
	}
	return nil
}

func checkCookie(cookie string) error {
	if cookie == "" {
		return fetcher.NewValidationError(ParamCookie)
	}
	return nil
}

func checkDescriptions(d int) error {
	if d != 0 && d != 1 {
		return fetcher.NewValidationError(ParamDescriptions)
	}
	return nil
}

func checkStart(start int) error {
	if start < 0 {
		return fetcher.NewValidationError(ParamStart)
	}
	return nil
}

func checkCount(count int) error {
	if count < 0 || count > MaxCount {
		return fetcher.NewValidationError(ParamCount)
	}
	return nil
}

func checkSize(size int) error {
	if size < 0 {
		return fetcher.NewValidationError(ParamSize)
	}
	return nil
}

func checkItemNameID(id string) error {
	if id == "" {
		return fetcher.NewValidationError(ParamItemNameID)
	}
	return nil
}

// firstError runs checks in order and returns the first failure
func firstError(checks ...error) error {
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	return nil
}

func countOrDefault(count int) int {
	if count == 0 {
		return defaultCount
	}
	return count
}
