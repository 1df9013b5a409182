package market

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// PriceOverview represents the /market/priceoverview response
type PriceOverview struct {
	Success     bool   `json:"success"`
	LowestPrice string `json:"lowest_price"`
	Volume      string `json:"volume"`
	MedianPrice string `json:"median_price"`
}

// PriceHistory represents the /market/pricehistory response
type PriceHistory struct {
	Success     bool         `json:"success"`
	PricePrefix string       `json:"price_prefix"`
	PriceSuffix string       `json:"price_suffix"`
	Prices      []PricePoint `json:"prices"`
}

// PricePoint is one [date, median price, volume] tuple of a price history
type PricePoint struct {
	Date   string
	Price  float64
	Volume string
}

// UnmarshalJSON decodes the positional array form Steam sends
func (p *PricePoint) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("price point: %w", err)
	}
	if len(raw) != 3 {
		return fmt.Errorf("price point: expected 3 elements, got %d", len(raw))
	}
	if err := json.Unmarshal(raw[0], &p.Date); err != nil {
		return fmt.Errorf("price point date: %w", err)
	}
	if err := json.Unmarshal(raw[1], &p.Price); err != nil {
		return fmt.Errorf("price point price: %w", err)
	}
	volume, err := stringOrNumber(raw[2])
	if err != nil {
		return fmt.Errorf("price point volume: %w", err)
	}
	p.Volume = volume
	return nil
}

// MarshalJSON writes the positional array form back out
func (p PricePoint) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{p.Date, p.Price, p.Volume})
}

// stringOrNumber accepts "12" as well as 12
func stringOrNumber(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", err
	}
	return n.String(), nil
}

// listingRender is the /market/listings/{appid}/{name}/render response; only the HTML is used
type listingRender struct {
	Success     bool   `json:"success"`
	TotalCount  int    `json:"total_count"`
	ResultsHTML string `json:"results_html"`
}

// SearchResult represents one /market/search/render page
type SearchResult struct {
	Success    bool      `json:"success"`
	Start      int       `json:"start"`
	PageSize   int       `json:"pagesize"`
	TotalCount int       `json:"total_count"`
	Results    []Listing `json:"results"`
}

// Listing is one search result row
type Listing struct {
	Name             string          `json:"name"`
	HashName         string          `json:"hash_name"`
	SellListings     int             `json:"sell_listings"`
	SellPrice        int             `json:"sell_price"`
	SellPriceText    string          `json:"sell_price_text"`
	SalePriceText    string          `json:"sale_price_text"`
	AppIcon          string          `json:"app_icon"`
	AppName          string          `json:"app_name"`
	AssetDescription json.RawMessage `json:"asset_description,omitempty"`
}

// OrderActivity represents the /market/itemordersactivity response
type OrderActivity struct {
	Success   int               `json:"success"`
	Activity  []json.RawMessage `json:"activity"`
	Timestamp int64             `json:"timestamp"`
}

// OrderHistogram represents the /market/itemordershistogram response
type OrderHistogram struct {
	Success          int             `json:"success"`
	SellOrderTable   json.RawMessage `json:"sell_order_table,omitempty"`
	SellOrderSummary string          `json:"sell_order_summary"`
	BuyOrderTable    json.RawMessage `json:"buy_order_table,omitempty"`
	BuyOrderSummary  string          `json:"buy_order_summary"`
	HighestBuyOrder  string          `json:"highest_buy_order"`
	LowestSellOrder  string          `json:"lowest_sell_order"`
	BuyOrderGraph    []OrderLevel    `json:"buy_order_graph"`
	SellOrderGraph   []OrderLevel    `json:"sell_order_graph"`
	GraphMaxY        float64         `json:"graph_max_y"`
	GraphMinX        float64         `json:"graph_min_x"`
	GraphMaxX        float64         `json:"graph_max_x"`
	PricePrefix      string          `json:"price_prefix"`
	PriceSuffix      string          `json:"price_suffix"`
}

// OrderLevel is one [price, cumulative quantity, label] point of an order graph
type OrderLevel struct {
	Price    float64
	Quantity int
	Label    string
}

// UnmarshalJSON decodes the positional array form Steam sends
func (o *OrderLevel) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("order level: %w", err)
	}
	if len(raw) != 3 {
		return fmt.Errorf("order level: expected 3 elements, got %d", len(raw))
	}
	if err := json.Unmarshal(raw[0], &o.Price); err != nil {
		return fmt.Errorf("order level price: %w", err)
	}
	qty, err := stringOrNumber(raw[1])
	if err != nil {
		return fmt.Errorf("order level quantity: %w", err)
	}
	if o.Quantity, err = strconv.Atoi(qty); err != nil {
		return fmt.Errorf("order level quantity: %w", err)
	}
	if err := json.Unmarshal(raw[2], &o.Label); err != nil {
		return fmt.Errorf("order level label: %w", err)
	}
	return nil
}

// MarshalJSON writes the positional array form back out
func (o OrderLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{o.Price, o.Quantity, o.Label})
}

// AssetTree holds asset records keyed appid -> contextid -> assetid
type AssetTree map[string]map[string]map[string]json.RawMessage

// decodeAssets decodes an asset tree. Steam sends [] instead of {} when there are none
func decodeAssets(raw json.RawMessage) (AssetTree, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("[]")) || bytes.Equal(trimmed, []byte("null")) {
		return AssetTree{}, nil
	}
	var tree AssetTree
	if err := json.Unmarshal(trimmed, &tree); err != nil {
		return nil, fmt.Errorf("decoding assets: %w", err)
	}
	return tree, nil
}

// MyHistory represents the /market/myhistory response
type MyHistory struct {
	Success    bool            `json:"success"`
	PageSize   int             `json:"pagesize"`
	TotalCount int             `json:"total_count"`
	Start      int             `json:"start"`
	Assets     json.RawMessage `json:"assets,omitempty"`
	Events     json.RawMessage `json:"events,omitempty"`
	Purchases  json.RawMessage `json:"purchases,omitempty"`
	Listings   json.RawMessage `json:"listings,omitempty"`
}

// AssetTree decodes the assets keyed appid -> contextid -> assetid
func (h *MyHistory) AssetTree() (AssetTree, error) {
	return decodeAssets(h.Assets)
}

// MyListings represents the /market/mylistings response
type MyListings struct {
	Success           bool              `json:"success"`
	PageSize          int               `json:"pagesize"`
	TotalCount        int               `json:"total_count"`
	Start             int               `json:"start"`
	NumActiveListings int               `json:"num_active_listings"`
	Assets            json.RawMessage   `json:"assets,omitempty"`
	Listings          []json.RawMessage `json:"listings"`
	ListingsOnHold    []json.RawMessage `json:"listings_on_hold"`
	ListingsToConfirm []json.RawMessage `json:"listings_to_confirm"`
	BuyOrders         []json.RawMessage `json:"buy_orders"`
}

// AssetTree decodes the assets keyed appid -> contextid -> assetid
func (l *MyListings) AssetTree() (AssetTree, error) {
	return decodeAssets(l.Assets)
}

// PopularListings represents the /market/popular response
type PopularListings struct {
	Success     bool            `json:"success"`
	Start       int             `json:"start"`
	PageSize    int             `json:"pagesize"`
	TotalCount  int             `json:"total_count"`
	ListingInfo json.RawMessage `json:"listinginfo,omitempty"`
	Assets      json.RawMessage `json:"assets,omitempty"`
}

// AssetTree decodes the assets keyed appid -> contextid -> assetid
func (p *PopularListings) AssetTree() (AssetTree, error) {
	return decodeAssets(p.Assets)
}

// RecentListings represents the /market/recent response
type RecentListings struct {
	Success     bool            `json:"success"`
	More        bool            `json:"more"`
	ListingInfo json.RawMessage `json:"listinginfo,omitempty"`
	Assets      json.RawMessage `json:"assets,omitempty"`
	LastTime    int64           `json:"last_time"`
	LastListing string          `json:"last_listing"`
}

// AssetTree decodes the assets keyed appid -> contextid -> assetid
func (r *RecentListings) AssetTree() (AssetTree, error) {
	return decodeAssets(r.Assets)
}
