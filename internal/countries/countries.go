// Package countries holds the static country registry: which currency each
// storefront country prices in, and display names for reporting.
package countries

var currencyByCountry = map[string]string{
	"US": "USD", "GB": "GBP", "DE": "EUR", "FR": "EUR", "IT": "EUR", "ES": "EUR",
	"NL": "EUR", "BE": "EUR", "AT": "EUR", "CH": "CHF", "SE": "SEK", "NO": "NOK",
	"DK": "DKK", "PL": "PLN", "CZ": "CZK", "IE": "EUR", "PT": "EUR", "GR": "EUR",
	"FI": "EUR", "HU": "HUF", "RO": "RON", "SK": "EUR", "BG": "BGN", "HR": "HRK",
	"JP": "JPY", "CN": "CNY", "KR": "KRW", "IN": "INR", "AU": "AUD", "NZ": "NZD",
	"CA": "CAD", "MX": "MXN", "BR": "BRL", "AR": "ARS", "CL": "CLP", "CO": "COP",
	"PE": "PEN", "ZA": "ZAR", "AE": "AED", "SA": "SAR", "IL": "ILS", "TR": "TRY",
	"RU": "RUB", "SG": "SGD", "HK": "HKD", "TW": "TWD", "TH": "THB", "MY": "MYR",
	"ID": "IDR", "PH": "PHP", "VN": "VND", "QA": "QAR", "KW": "KWD", "BH": "BHD",
	"OM": "OMR", "EG": "EGP", "NG": "NGN", "KE": "KES", "GH": "GHS", "MA": "MAD",
}

var nameByCountry = map[string]string{
	"US": "United States", "GB": "United Kingdom", "DE": "Germany", "FR": "France",
	"IT": "Italy", "ES": "Spain", "NL": "Netherlands", "BE": "Belgium",
	"AT": "Austria", "CH": "Switzerland", "SE": "Sweden", "NO": "Norway",
	"DK": "Denmark", "PL": "Poland", "CZ": "Czech Republic", "IE": "Ireland",
	"PT": "Portugal", "GR": "Greece", "FI": "Finland", "HU": "Hungary",
	"RO": "Romania", "SK": "Slovakia", "BG": "Bulgaria", "HR": "Croatia",
	"JP": "Japan", "CN": "China", "KR": "South Korea", "IN": "India",
	"AU": "Australia", "NZ": "New Zealand", "CA": "Canada", "MX": "Mexico",
	"BR": "Brazil", "AR": "Argentina", "CL": "Chile", "CO": "Colombia",
	"PE": "Peru", "ZA": "South Africa", "AE": "United Arab Emirates",
	"SA": "Saudi Arabia", "IL": "Israel", "TR": "Turkey", "RU": "Russia",
	"SG": "Singapore", "HK": "Hong Kong", "TW": "Taiwan", "TH": "Thailand",
	"MY": "Malaysia", "ID": "Indonesia", "PH": "Philippines", "VN": "Vietnam",
	"QA": "Qatar", "KW": "Kuwait", "BH": "Bahrain", "OM": "Oman",
	"EG": "Egypt", "NG": "Nigeria", "KE": "Kenya", "GH": "Ghana", "MA": "Morocco",
}

// CurrencyMap returns a copy of the country to currency table so callers
// cannot mutate the registry.
func CurrencyMap() map[string]string {
	m := make(map[string]string, len(currencyByCountry))
	for k, v := range currencyByCountry {
		m[k] = v
	}
	return m
}

// Currency returns the storefront currency for a country code.
func Currency(code string) (string, bool) {
	c, ok := currencyByCountry[code]
	return c, ok
}

// Name returns the display name for a country code, or the code itself when
// the country is not in the registry.
func Name(code string) string {
	if n, ok := nameByCountry[code]; ok {
		return n
	}
	return code
}
