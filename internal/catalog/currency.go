// Package catalog holds the static lookup tables used by the Steam Community Market:
// currency codes mapped to Steam's numeric currency ids and the accepted data formats
package catalog

// DefaultCurrency is the currency used when an unknown code is supplied
const DefaultCurrency = "USD"

// currencies maps ISO currency codes to Steam currency ids. Ids 33 and 36 are unused by Steam
var currencies = map[string]int{
	"USD": 1,  // United States Dollar
	"GBP": 2,  // Pound Sterling
	"EUR": 3,  // Euro
	"CHF": 4,  // Swiss Franc
	"RUB": 5,  // Russian Ruble
	"PLN": 6,  // Polish Zloty
	"BRL": 7,  // Brazilian Real
	"JPY": 8,  // Japanese Yen
	"SEK": 9,  // Swedish Krona
	"IDR": 10, // Indonesian Rupiah
	"MYR": 11, // Malaysian Ringgit
	"PHP": 12, // Philippine Peso
	"SGD": 13, // Singapore Dollar
	"THB": 14, // Thai Baht
	"VND": 15, // Vietnamese Dong
	"KRW": 16, // South Korean Won
	"TRY": 17, // Turkish Lira
	"UAH": 18, // Ukrainian Hryvnia
	"MXN": 19, // Mexican Peso
	"CAD": 20, // Canadian Dollar
	"AUD": 21, // Australian Dollar
	"NZD": 22, // New Zealand Dollar
	"CNY": 23, // Chinese Yuan Renminbi
	"INR": 24, // Indian Rupee
	"CLP": 25, // Chilean Peso
	"PEN": 26, // Peruvian Sol
	"COP": 27, // Colombian Peso
	"ZAR": 28, // South African Rand
	"HKD": 29, // Hong Kong Dollar
	"TWD": 30, // New Taiwan Dollar
	"SRD": 31, // Surinamese Dollar
	"AED": 32, // UAE Dirham
	"ARS": 34, // Argentine Peso
	"ILS": 35, // Israeli Shekel
	"KZT": 37, // Kazakhstani Tenge
	"KWD": 38, // Kuwaiti Dinar
	"QAR": 39, // Qatari Riyal
	"CRC": 40, // Costa Rican Colon
	"UYU": 41, // Uruguayan Peso
}

// CurrencyID returns the Steam id for code and whether code is a known currency
func CurrencyID(code string) (int, bool) {
	id, ok := currencies[code]
	return id, ok
}

// DefaultCurrencyID returns the id of DefaultCurrency
func DefaultCurrencyID() int {
	return currencies[DefaultCurrency]
}

// ValidCurrencyID reports whether id belongs to a catalog currency
func ValidCurrencyID(id int) bool {
	for _, v := range currencies {
		if v == id {
			return true
		}
	}
	return false
}

// Currencies returns a copy of the currency table
func Currencies() map[string]int {
	out := make(map[string]int, len(currencies))
	for k, v := range currencies {
		out[k] = v
	}
	return out
}
