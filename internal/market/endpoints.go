package market

import (
	"fmt"
	"net/url"
	"strconv"

	"marketfetcher/internal/fetcher"
	"marketfetcher/internal/ratelimit"
)

// Operation names used in requests, logs and metrics
const (
	OpItemPrice       = "item_price"
	OpItemImage       = "item_image"
	OpPriceHistory    = "price_history"
	OpMarketListings  = "market_listings"
	OpAllListings     = "all_market_listings"
	OpItemActivity    = "item_activity"
	OpItemHistogram   = "item_histogram"
	OpMyHistory       = "my_history"
	OpMyListings      = "my_listings"
	OpPopularListings = "popular_listings"
	OpRecentListings  = "recent_listings"
)

const (
	pathPriceOverview = "/market/priceoverview/"
	pathPriceHistory  = "/market/pricehistory/"
	pathSearch        = "/market/search/render/"
	pathActivity      = "/market/itemordersactivity"
	pathHistogram     = "/market/itemordershistogram"
	pathMyHistory     = "/market/myhistory"
	pathMyListings    = "/market/mylistings"
	pathPopular       = "/market/popular"
	pathRecent        = "/market/recent"

	// SessionCookieName is the Steam cookie carrying the login session
	SessionCookieName = "steamLoginSecure"

	country  = "US"
	language = "english"
)

func itoa(n int) string {
	return strconv.Itoa(n)
}

// sessionHeader keeps the credential out of the URL
func sessionHeader(cookie string) map[string]string {
	return map[string]string{"Cookie": SessionCookieName + "=" + cookie}
}

func buildItemPrice(cfg Configuration, p ItemPriceParams) (*fetcher.Request, error) {
	if err := firstError(checkItemKey(p.MarketHashName), checkAppID(p.AppID)); err != nil {
		return nil, err
	}

	req := &fetcher.Request{Operation: OpItemPrice, Group: ratelimit.GroupMarket, Path: pathPriceOverview}
	req.Query.Add("market_hash_name", p.MarketHashName)
	req.Query.Add("appid", itoa(p.AppID))
	req.Query.Add("currency", itoa(cfg.CurrencyID))
	return req, nil
}

// listingRenderPath is /market/listings/{appid}/{market_hash_name}/render
func listingRenderPath(appID int, marketHashName string) string {
	return fmt.Sprintf("/market/listings/%d/%s/render", appID, url.PathEscape(marketHashName))
}

func buildItemImage(cfg Configuration, p ItemImageParams) (*fetcher.Request, error) {
	err := firstError(checkItemKey(p.MarketHashName), checkAppID(p.AppID), checkSize(p.Size))
	if err != nil {
		return nil, err
	}

	req := &fetcher.Request{
		Operation: OpItemImage,
		Group:     ratelimit.GroupMarket,
		Path:      listingRenderPath(p.AppID, p.MarketHashName),
	}
	req.Query.Add("start", "0")
	req.Query.Add("count", "1")
	req.Query.Add("currency", itoa(cfg.CurrencyID))
	req.Query.Add("format", string(cfg.Format))
	return req, nil
}

func buildPriceHistory(cfg Configuration, p PriceHistoryParams) (*fetcher.Request, error) {
	err := firstError(checkItemKey(p.MarketHashName), checkAppID(p.AppID), checkCookie(p.Cookie))
	if err != nil {
		return nil, err
	}

	req := &fetcher.Request{
		Operation:    OpPriceHistory,
		Group:        ratelimit.GroupAccount,
		Path:         pathPriceHistory,
		Header:       sessionHeader(p.Cookie),
		RequiresAuth: true,
	}
	req.Query.Add("currency", itoa(cfg.CurrencyID))
	req.Query.Add("appid", itoa(p.AppID))
	req.Query.Add("market_hash_name", p.MarketHashName)
	return req, nil
}

func buildMarketListings(_ Configuration, p MarketListingsParams) (*fetcher.Request, error) {
	err := firstError(
		checkDescriptions(p.Descriptions),
		checkAppID(p.AppID),
		checkStart(p.Start),
		checkCount(p.Count),
	)
	if err != nil {
		return nil, err
	}

	req := &fetcher.Request{Operation: OpMarketListings, Group: ratelimit.GroupMarket, Path: pathSearch}
	req.Query.Add("query", p.Query)
	req.Query.Add("search_descriptions", itoa(p.Descriptions))
	req.Query.Add("appid", itoa(p.AppID))
	req.Query.Add("start", itoa(p.Start))
	req.Query.Add("count", itoa(countOrDefault(p.Count)))
	req.Query.Add("norender", "1")
	return req, nil
}

func buildItemActivity(cfg Configuration, p ActivityParams) (*fetcher.Request, error) {
	if err := checkItemNameID(p.ItemNameID); err != nil {
		return nil, err
	}

	req := &fetcher.Request{Operation: OpItemActivity, Group: ratelimit.GroupMarket, Path: pathActivity}
	req.Query.Add("country", country)
	req.Query.Add("language", language)
	req.Query.Add("currency", itoa(cfg.CurrencyID))
	req.Query.Add("item_nameid", p.ItemNameID)
	req.Query.Add("two_factor", "0")
	return req, nil
}

func buildItemHistogram(cfg Configuration, p HistogramParams) (*fetcher.Request, error) {
	if err := checkItemNameID(p.ItemNameID); err != nil {
		return nil, err
	}

	req := &fetcher.Request{Operation: OpItemHistogram, Group: ratelimit.GroupMarket, Path: pathHistogram}
	req.Query.Add("norender", "1")
	req.Query.Add("country", country)
	req.Query.Add("language", language)
	req.Query.Add("currency", itoa(cfg.CurrencyID))
	req.Query.Add("item_nameid", p.ItemNameID)
	req.Query.Add("two_factor", "0")
	return req, nil
}

func buildAccountRequest(op, path, cookie string) (*fetcher.Request, error) {
	if err := checkCookie(cookie); err != nil {
		return nil, err
	}

	req := &fetcher.Request{
		Operation:    op,
		Group:        ratelimit.GroupAccount,
		Path:         path,
		Header:       sessionHeader(cookie),
		RequiresAuth: true,
	}
	req.Query.Add("norender", "1")
	return req, nil
}

func buildMyHistory(_ Configuration, p MyHistoryParams) (*fetcher.Request, error) {
	return buildAccountRequest(OpMyHistory, pathMyHistory, p.Cookie)
}

func buildMyListings(_ Configuration, p MyListingsParams) (*fetcher.Request, error) {
	return buildAccountRequest(OpMyListings, pathMyListings, p.Cookie)
}

func buildPopularListings(cfg Configuration, p PopularListingsParams) (*fetcher.Request, error) {
	if err := firstError(checkStart(p.Start), checkCount(p.Count)); err != nil {
		return nil, err
	}

	req := &fetcher.Request{Operation: OpPopularListings, Group: ratelimit.GroupMarket, Path: pathPopular}
	req.Query.Add("country", country)
	req.Query.Add("language", language)
	req.Query.Add("currency", itoa(cfg.CurrencyID))
	req.Query.Add("norender", "1")
	req.Query.Add("start", itoa(p.Start))
	req.Query.Add("count", itoa(countOrDefault(p.Count)))
	return req, nil
}

func buildRecentListings(cfg Configuration, _ RecentListingsParams) (*fetcher.Request, error) {
	req := &fetcher.Request{Operation: OpRecentListings, Group: ratelimit.GroupMarket, Path: pathRecent}
	req.Query.Add("country", country)
	req.Query.Add("language", language)
	req.Query.Add("currency", itoa(cfg.CurrencyID))
	req.Query.Add("norender", "1")
	return req, nil
}
