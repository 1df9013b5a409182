package market

import (
	"reflect"

	"marketfetcher/internal/catalog"
	"marketfetcher/internal/image"
)

// Options are the raw constructor settings. Unknown or empty values are not errors:
// they fall back to the catalog defaults
type Options struct {
	// Currency is an ISO code from the currency catalog, e.g. "EUR". Defaults to USD
	Currency string
	// Format is one of json, vdf or xml. Defaults to json
	Format string
	// CDN resolves Counter-Strike item images without scraping. Optional
	CDN image.CDN
}

// Configuration is the normalized, immutable client configuration
type Configuration struct {
	CurrencyID int
	Format     catalog.Format
	CDN        image.CDN
}

// Normalize resolves raw options against the catalog tables
func Normalize(opts Options) Configuration {
	cfg := Configuration{
		CurrencyID: catalog.DefaultCurrencyID(),
		Format:     catalog.DefaultFormat(),
	}

	if id, ok := catalog.CurrencyID(opts.Currency); ok {
		cfg.CurrencyID = id
	}
	if catalog.ValidFormat(opts.Format) {
		cfg.Format = catalog.Format(opts.Format)
	}
	if !isNil(opts.CDN) {
		cfg.CDN = opts.CDN
	}

	return cfg
}

// isNil also catches typed nil pointers stored in the interface
func isNil(cdn image.CDN) bool {
	if cdn == nil {
		return true
	}
	v := reflect.ValueOf(cdn)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}
